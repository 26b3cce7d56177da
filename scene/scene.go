package scene

import (
	"github.com/cofenberg/pixellight-sub004/log"
	"github.com/cofenberg/pixellight-sub004/scene/hierarchy"
	"github.com/cofenberg/pixellight-sub004/timing"
)

// The name of a new root container.
const RootName = "Root"

// Options control the defaults of a scene.
type Options struct {
	// Hierarchy class assigned to new containers.
	HierarchyClass string

	// Minimum number of items per leaf for BVH hierarchies.
	BVHLeafItems int
}

// Get the default scene options.
func DefaultOptions() Options {
	return Options{
		HierarchyClass: hierarchy.ClassList,
		BVHLeafItems:   4,
	}
}

// A Scene owns every node of one container tree. Nodes are stored in an
// arena and refer to each other through NodeID handles which are never
// reused while the scene is alive.
type Scene struct {
	logger   log.Logger
	registry *Registry
	clock    *timing.Clock
	opts     Options

	nodes []*Node
	live  int
	root  *Container
}

// Create a new scene with an empty root container. A nil registry selects
// the default class registry.
func New(registry *Registry, opts Options) *Scene {
	if registry == nil {
		registry = DefaultRegistry()
	}
	defaults := DefaultOptions()
	if opts.HierarchyClass == "" {
		opts.HierarchyClass = defaults.HierarchyClass
	}
	if opts.BVHLeafItems < 1 {
		opts.BVHLeafItems = defaults.BVHLeafItems
	}

	s := &Scene{
		logger:   log.New("scene"),
		registry: registry,
		clock:    timing.Default(),
		opts:     opts,
	}

	cls, ok := registry.Lookup(SceneContainerClass)
	if !ok || cls.Base != BaseContainer {
		cls = Class{Name: SceneContainerClass, Base: BaseContainer, Kind: KindContainer}
	}
	root := s.newNode(cls)
	root.kind = KindSceneRoot
	root.name = RootName
	root.state |= stateInitialized
	s.root = root.container
	return s
}

// The top-level container.
func (s *Scene) Root() *Container { return s.root }

// The class registry used to create nodes and modifiers.
func (s *Scene) Registry() *Registry { return s.registry }

// The clock paused while loading into this scene.
func (s *Scene) Clock() *timing.Clock { return s.clock }

// Replace the scene clock.
func (s *Scene) SetClock(clock *timing.Clock) { s.clock = clock }

// The scene options.
func (s *Scene) Options() Options { return s.opts }

// Lookup a live node by handle.
func (s *Scene) Node(id NodeID) *Node {
	if int(id) >= len(s.nodes) {
		return nil
	}
	return s.nodes[id]
}

// Number of live nodes including the root.
func (s *Scene) Len() int { return s.live }

func (s *Scene) hierarchyOptions() hierarchy.Options {
	return hierarchy.Options{LeafItems: s.opts.BVHLeafItems}
}

func (s *Scene) newNode(cls Class) *Node {
	n := &Node{
		id:      NodeID(len(s.nodes)),
		scene:   s,
		parent:  NoNode,
		class:   cls.Name,
		kind:    cls.Kind,
		scale:   defaultScale,
		payload: cls.newPayload(),
		state:   stateBoxDirty,
	}
	if cls.Base == BaseContainer {
		n.state |= stateContainer
		n.aabb = defaultContainerBox
		n.container = newContainer(n)
	}
	s.nodes = append(s.nodes, n)
	s.live++
	return n
}

func (s *Scene) free(n *Node) {
	s.nodes[n.id] = nil
	s.live--
	n.state |= stateDestroyed
}
