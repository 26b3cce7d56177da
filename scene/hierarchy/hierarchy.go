package hierarchy

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cofenberg/pixellight-sub004/types"
)

// Class names of the built-in hierarchies.
const (
	ClassList = "PLScene::SHList"
	ClassBVH  = "PLScene::SHBvh"
)

var (
	ErrUnknownClass = errors.New("hierarchy: unknown hierarchy class")
)

// The Item interface is implemented by scene nodes that can be indexed by a
// hierarchy. Keys must be unique among the items of one hierarchy.
type Item interface {
	Key() uint32
	ContainerAABox() types.AABox
}

// A Hierarchy is a spatial index over the direct children of a container.
type Hierarchy interface {
	// The class name this hierarchy was created from.
	Class() string

	// Set up the root bounds. Any existing membership is dropped.
	Init(min, max types.Vec3)

	// The current root bounds.
	Bounds() types.AABox

	// Add an item. Adding an item twice is a no-op.
	AddSceneNode(item Item)

	// Remove an item. Removing an unknown item is a no-op.
	RemoveSceneNode(item Item)

	// Re-evaluate the placement of a single item after it moved.
	RefreshSceneNode(item Item)

	// Invalidate any cached spatial state so it gets recomputed on the next query.
	Touch()

	// Number of indexed items.
	Len() int

	// Returns true if an item with this key is indexed.
	Contains(key uint32) bool

	// Invoke fn for every item whose box intersects box. Iteration stops
	// when fn returns false.
	Query(box types.AABox, fn func(Item) bool)
}

// Options for hierarchy construction.
type Options struct {
	// Minimum number of items per BVH leaf.
	LeafItems int
}

// A Factory creates an uninitialized hierarchy.
type Factory func(opts Options) Hierarchy

var (
	factoryMu sync.RWMutex
	factories = map[string]Factory{
		ClassList: func(Options) Hierarchy { return NewList() },
		ClassBVH:  func(opts Options) Hierarchy { return NewBVH(opts.LeafItems) },
	}
)

// Register a hierarchy factory under a class name, replacing any previous one.
func Register(class string, factory Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[class] = factory
}

// Returns true if class names a registered hierarchy.
func IsRegistered(class string) bool {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	_, ok := factories[class]
	return ok
}

// Get the sorted list of registered class names.
func Classes() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate a hierarchy by class name.
func New(class string, opts Options) (Hierarchy, error) {
	factoryMu.RLock()
	factory, ok := factories[class]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownClass, class)
	}
	return factory(opts), nil
}
