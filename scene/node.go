package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cofenberg/pixellight-sub004/types"
)

// NodeID is a stable handle to a node within its scene.
type NodeID uint32

// NoNode is the handle of a missing node.
const NoNode NodeID = ^NodeID(0)

type nodeState uint8

const (
	stateContainer nodeState = 1 << iota
	stateInitialized
	stateBoxDirty
	stateDestroyed
)

var (
	defaultScale        = types.Vec3{1, 1, 1}
	defaultContainerBox = types.AABox{
		Min: types.Vec3{-10000, -10000, -10000},
		Max: types.Vec3{10000, 10000, 10000},
	}
)

// Node is a scene graph element. The fields shared by all node kinds live
// here; kind specific data is held by the payload.
type Node struct {
	id     NodeID
	scene  *Scene
	parent NodeID

	name  string
	class string
	kind  NodeKind
	flags Flags
	state nodeState

	position types.Vec3
	rotation types.Vec3
	scale    types.Vec3
	aabb     types.AABox

	// Cached aabb in the space of the owning container.
	containerBox types.AABox

	modifiers []*Modifier

	// Parameters not recognized by the node, kept verbatim.
	extras []Param

	payload   Payload
	container *Container
}

func (n *Node) ID() NodeID { return n.id }

// Key returns the hierarchy key of the node.
func (n *Node) Key() uint32 { return uint32(n.id) }

func (n *Node) Scene() *Scene { return n.scene }

func (n *Node) Name() string { return n.name }

// The class key the node was created from. Placeholders report the key that
// could not be resolved.
func (n *Node) Class() string { return n.class }

func (n *Node) Kind() NodeKind { return n.kind }

func (n *Node) Payload() Payload { return n.payload }

// Returns true if the node stands in for a class that could not be resolved.
func (n *Node) IsPlaceholder() bool { return n.kind == KindUnknown }

func (n *Node) IsContainer() bool { return n.state&stateContainer != 0 }

// Get the container view of this node or nil if it is not a container.
func (n *Node) AsContainer() *Container { return n.container }

// Get the container owning this node; nil for the root and detached nodes.
func (n *Node) Container() *Container {
	if n.parent == NoNode {
		return nil
	}
	if p := n.scene.Node(n.parent); p != nil {
		return p.container
	}
	return nil
}

func (n *Node) IsInitialized() bool { return n.state&stateInitialized != 0 }

func (n *Node) IsDestroyed() bool { return n.state&stateDestroyed != 0 }

func (n *Node) Flags() Flags { return n.flags }

func (n *Node) SetFlags(flags Flags) { n.flags = flags }

func (n *Node) IsActive() bool { return n.flags&Inactive == 0 }

func (n *Node) SetActive(active bool) {
	if active {
		n.flags &^= Inactive
	} else {
		n.flags |= Inactive
	}
}

func (n *Node) Position() types.Vec3 { return n.position }
func (n *Node) Rotation() types.Vec3 { return n.rotation }
func (n *Node) Scale() types.Vec3    { return n.scale }

// The node space bounding box.
func (n *Node) AABox() types.AABox { return n.aabb }

func (n *Node) SetPosition(v types.Vec3) {
	if n.position != v {
		n.position = v
		n.transformChanged()
	}
}

// Set the rotation as Euler angles in degrees.
func (n *Node) SetRotation(v types.Vec3) {
	if n.rotation != v {
		n.rotation = v
		n.transformChanged()
	}
}

func (n *Node) SetScale(v types.Vec3) {
	if n.scale != v {
		n.scale = v
		n.transformChanged()
	}
}

func (n *Node) SetAABox(box types.AABox) {
	if n.aabb != box {
		n.aabb = box
		n.transformChanged()
	}
}

// The transform from node space into the space of the owning container.
func (n *Node) Transform() types.Mat4 {
	return types.TRS(n.position, n.rotation, n.scale)
}

// The node bounding box in the space of the owning container.
func (n *Node) ContainerAABox() types.AABox {
	if n.state&stateBoxDirty != 0 {
		n.containerBox = n.aabb.Transform(n.Transform())
		n.state &^= stateBoxDirty
	}
	return n.containerBox
}

// The box and the hierarchy placement are recalculated lazily.
func (n *Node) transformChanged() {
	n.state |= stateBoxDirty
	if c := n.Container(); c != nil {
		c.queueRefresh(n)
	}
}

// Get the absolute dotted path of the node, e.g. "Root.Level.Lamp".
func (n *Node) Path() string {
	if n.kind == KindSceneRoot {
		return n.name
	}
	parts := []string{n.name}
	for c := n.Container(); c != nil; c = c.Container() {
		parts = append(parts, c.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Rename the node. The name must not be empty, reserved, dotted or used by
// a sibling.
func (n *Node) SetName(name string) error {
	switch {
	case name == "":
		return ErrEmptyName
	case strings.Contains(name, "."):
		return ErrInvalidName
	}
	if _, reserved := reservedNames[name]; reserved {
		return ErrReservedName
	}

	c := n.Container()
	if c == nil {
		n.name = name
		return nil
	}
	if owner := c.names.Get(name); owner != nil && owner != n {
		return ErrNameTaken
	}
	c.names.Insert(n, name)
	return nil
}

// Assign a property from its string form. Properties not recognized by the
// node or its payload are kept verbatim and written back on save.
func (n *Node) SetValue(name, value string) error {
	var err error
	switch name {
	case "Class", "Name":
		// Assigned by the factory and the name registry.
		return nil
	case "Flags":
		var flags Flags
		if flags, err = ParseFlags(value); err == nil {
			n.SetFlags(flags)
		}
	case "Position", "Rotation", "Scale", "AABBMin", "AABBMax":
		var v types.Vec3
		if v, err = types.ParseVec3(value); err == nil {
			n.setVecValue(name, v)
		}
	case "Hierarchy":
		if n.container == nil {
			n.extras = setExtra(n.extras, name, value)
			return nil
		}
		err = n.container.SetHierarchyClass(value)
	default:
		if n.payload != nil {
			var handled bool
			if handled, err = n.payload.SetAttribute(name, value); handled {
				break
			}
		}
		n.extras = setExtra(n.extras, name, value)
	}

	if err != nil {
		return fmt.Errorf("scene: invalid value %q for %s: %w", value, name, err)
	}
	return nil
}

func (n *Node) setVecValue(name string, v types.Vec3) {
	switch name {
	case "Position":
		n.SetPosition(v)
	case "Rotation":
		n.SetRotation(v)
	case "Scale":
		n.SetScale(v)
	case "AABBMin":
		n.SetAABox(types.AABox{Min: v, Max: n.aabb.Max})
	case "AABBMax":
		n.SetAABox(types.AABox{Min: n.aabb.Min, Max: v})
	}
}

// Assign all params in order. Invalid values are skipped and reported in the
// returned error.
func (n *Node) SetValues(params []Param) error {
	var errs []error
	for _, p := range params {
		if err := n.SetValue(p.Name, p.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get the node properties in save order. If noDefault is set, properties
// equal to their declared default are skipped. Class and Name are not
// included.
func (n *Node) Values(noDefault bool) []Param {
	defBox := types.AABox{}
	if n.IsContainer() {
		defBox = defaultContainerBox
	}

	attrs := []Attribute{
		{Name: "Flags", Value: n.flags.String()},
		vecAttr("Position", n.position, types.Vec3{}),
		vecAttr("Rotation", n.rotation, types.Vec3{}),
		vecAttr("Scale", n.scale, defaultScale),
		vecAttr("AABBMin", n.aabb.Min, defBox.Min),
		vecAttr("AABBMax", n.aabb.Max, defBox.Max),
	}
	if n.container != nil {
		attrs = append(attrs, Attribute{Name: "Hierarchy", Value: n.container.hierarchyClass, Default: defaultHierarchyClass})
	}
	if n.payload != nil {
		attrs = append(attrs, n.payload.Attributes()...)
	}
	return filterValues(attrs, n.extras, noDefault)
}

// Parameters that were not recognized by the node.
func (n *Node) Extras() []Param {
	return append([]Param(nil), n.extras...)
}

// Remove the node from its container and release it together with all its
// descendants and modifiers. The scene root can not be destroyed.
func (n *Node) Destroy() bool {
	if n.IsDestroyed() {
		return false
	}
	if n.kind == KindSceneRoot {
		n.scene.logger.Error("the scene root can't be destroyed")
		return false
	}
	if c := n.Container(); c != nil {
		c.Remove(n, true)
	}
	n.release()
	return true
}

func (n *Node) release() {
	if c := n.container; c != nil {
		for _, id := range c.elements {
			if child := n.scene.Node(id); child != nil {
				child.parent = NoNode
				child.release()
			}
		}
		c.elements = nil
		c.names = newNameRegistry()
		c.hierarchy = nil
		c.refresh.Clear()
	}
	n.ClearModifiers()
	n.state &^= stateInitialized
	n.scene.free(n)
}

func (n *Node) init() {
	n.state |= stateInitialized
}

func (n *Node) deinit() {
	n.state &^= stateInitialized
}
