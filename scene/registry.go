package scene

import "sort"

// Base identifies what a registered class instantiates.
type Base uint8

const (
	BaseNode Base = iota
	BaseContainer
	BaseModifier
)

// Placeholder classes used when a class key cannot be resolved.
const (
	UnknownNodeClass      = "PLScene::SNUnknown"
	UnknownContainerClass = "PLScene::SCUnknown"
	UnknownModifierClass  = "PLScene::SNMUnknown"

	SceneContainerClass = "PLScene::SceneContainer"
)

// A Class describes a node or modifier type that can be created by name.
type Class struct {
	Name string
	Base Base
	Kind NodeKind

	// Creates the kind specific payload; may be nil.
	New func() Payload
}

func (c Class) newPayload() Payload {
	if c.New == nil {
		return nil
	}
	return c.New()
}

// A Registry maps class keys to classes. Keys are case-sensitive.
type Registry struct {
	classes map[string]Class
}

// Create an empty registry that only knows the placeholder classes.
func NewRegistry() *Registry {
	r := &Registry{classes: make(map[string]Class)}
	r.Register(Class{Name: UnknownNodeClass, Base: BaseNode, Kind: KindUnknown})
	r.Register(Class{Name: UnknownContainerClass, Base: BaseContainer, Kind: KindUnknown})
	r.Register(Class{Name: UnknownModifierClass, Base: BaseModifier, Kind: KindUnknown})
	return r
}

// Create a registry with the built-in node, container and modifier classes.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range []Class{
		{Name: SceneContainerClass, Base: BaseContainer, Kind: KindContainer},
		{Name: "PLScene::SCCell", Base: BaseContainer, Kind: KindCell, New: newCell},
		{Name: "PLScene::SNCamera", Base: BaseNode, Kind: KindCamera, New: newCamera},
		{Name: "PLScene::SNPointLight", Base: BaseNode, Kind: KindLight, New: newLight},
		{Name: "PLScene::SNDirectionalLight", Base: BaseNode, Kind: KindLight, New: newLight},
		{Name: "PLScene::SNSpotLight", Base: BaseNode, Kind: KindLight, New: newSpotLight},
		{Name: "PLScene::SNMesh", Base: BaseNode, Kind: KindObject, New: newMesh},
		{Name: "PLScene::SNSpline", Base: BaseNode, Kind: KindSpline, New: newSpline},
		{Name: "PLScene::SNCellPortal", Base: BaseNode, Kind: KindCellPortal, New: newPortal},
		{Name: "PLScene::SNAntiPortal", Base: BaseNode, Kind: KindAntiPortal},
		{Name: "PLScene::SNHelper", Base: BaseNode, Kind: KindHelper},
		{Name: "PLScene::SNMRotationLinearAnimation", Base: BaseModifier, New: newRotationAnimation},
		{Name: "PLScene::SNMPositionLinearAnimation", Base: BaseModifier, New: newPositionAnimation},
		{Name: "PLScene::SNMAnchor", Base: BaseModifier, New: newAnchor},
	} {
		r.Register(c)
	}
	return r
}

// Register a class, replacing any class with the same name.
func (r *Registry) Register(c Class) {
	r.classes[c.Name] = c
}

// Lookup a class by its exact key.
func (r *Registry) Lookup(name string) (Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Get the sorted list of registered class names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
