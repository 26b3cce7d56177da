package scene

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/cofenberg/pixellight-sub004/scene/hierarchy"
	"github.com/cofenberg/pixellight-sub004/types"
)

// The declared default of the Hierarchy property.
const defaultHierarchyClass = hierarchy.ClassList

// A Container is a scene node owning an ordered list of child nodes. Child
// names are unique within the container. The spatial hierarchy over the
// children is created lazily.
type Container struct {
	*Node

	elements []NodeID
	names    NameRegistry

	hierarchyClass string
	hierarchy      hierarchy.Hierarchy

	// Children whose hierarchy placement must be refreshed before the next
	// hierarchy access.
	refresh *roaring.Bitmap
}

func newContainer(n *Node) *Container {
	return &Container{
		Node:           n,
		names:          newNameRegistry(),
		hierarchyClass: n.scene.opts.HierarchyClass,
		refresh:        roaring.New(),
	}
}

// Create a node by class key, apply params and add it under name. Returns nil
// and logs an error if the key does not name a node or container class.
func (c *Container) Create(class, name string, params []Param) *Node {
	cls, ok := c.scene.registry.Lookup(class)
	if !ok || cls.Base == BaseModifier {
		c.scene.logger.Errorf("%q is not a valid scene node class", class)
		return nil
	}
	return c.create(cls, class, name, params)
}

// Create an unknown node or container standing in for class. The
// placeholder keeps all unrecognized params so that it is saved back
// unchanged.
func (c *Container) CreatePlaceholder(class, name string, params []Param, container bool) *Node {
	key, base := UnknownNodeClass, BaseNode
	if container {
		key, base = UnknownContainerClass, BaseContainer
	}
	cls, ok := c.scene.registry.Lookup(key)
	if !ok || cls.Base != base {
		cls = Class{Name: key, Base: base, Kind: KindUnknown}
	}
	return c.create(cls, class, name, params)
}

func (c *Container) create(cls Class, class, name string, params []Param) *Node {
	n := c.scene.newNode(cls)
	n.class = class
	if err := n.SetValues(params); err != nil {
		c.scene.logger.Warningf("node %q (%s): %v", name, class, err)
	}
	c.Add(n, name, true)
	return n
}

// Append n to the children, register it under a unique name derived from
// name and optionally initialize it. A node owned by another container is
// moved.
func (c *Container) Add(n *Node, name string, init bool) bool {
	if n == nil || n.IsDestroyed() {
		return false
	}
	if n.scene != c.scene {
		c.scene.logger.Errorf("can't add %q to %q: node belongs to another scene", n.name, c.Path())
		return false
	}
	for p := c.Node; p != nil; p = nodeOf(p.Container()) {
		if p == n {
			c.scene.logger.Errorf("can't add %q to its own descendant %q", n.Path(), c.Path())
			return false
		}
	}
	if old := n.Container(); old != nil {
		old.Remove(n, false)
	}

	c.elements = append(c.elements, n.id)
	n.parent = c.id
	c.names.Insert(n, name)
	n.state |= stateBoxDirty
	if init {
		n.init()
	}
	if c.hierarchy != nil {
		c.hierarchy.AddSceneNode(n)
	}
	return true
}

func nodeOf(c *Container) *Node {
	if c == nil {
		return nil
	}
	return c.Node
}

// Remove n from the children. Fails without side effects if n is not
// registered under its own name in this container.
func (c *Container) Remove(n *Node, deInit bool) bool {
	if n == nil || c.names.Get(n.name) != n {
		return false
	}
	if deInit {
		n.deinit()
	}
	c.names.Remove(n)

	removed := false
	for i, id := range c.elements {
		if id == n.id {
			c.elements = append(c.elements[:i], c.elements[i+1:]...)
			removed = true
			break
		}
	}
	if c.hierarchy != nil {
		c.hierarchy.RemoveSceneNode(n)
	}
	c.refresh.Remove(n.Key())
	n.parent = NoNode
	return removed
}

// Destroy all children.
func (c *Container) Clear() {
	for len(c.elements) > 0 {
		child := c.scene.Node(c.elements[len(c.elements)-1])
		if child == nil || !child.Destroy() {
			c.elements = c.elements[:len(c.elements)-1]
		}
	}
}

// Number of children.
func (c *Container) Len() int { return len(c.elements) }

// Get the child at index or nil if out of range.
func (c *Container) GetAt(index int) *Node {
	if index < 0 || index >= len(c.elements) {
		return nil
	}
	return c.scene.Node(c.elements[index])
}

// Get the children in order.
func (c *Container) Nodes() []*Node {
	out := make([]*Node, 0, len(c.elements))
	for _, id := range c.elements {
		if n := c.scene.Node(id); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// The class of the hierarchy used by this container.
func (c *Container) HierarchyClass() string { return c.hierarchyClass }

// Select the hierarchy class. An existing hierarchy of another class is
// dropped and the new one is created on the next access.
func (c *Container) SetHierarchyClass(class string) error {
	if !hierarchy.IsRegistered(class) {
		return hierarchy.ErrUnknownClass
	}
	c.hierarchyClass = class
	if c.hierarchy != nil && c.hierarchy.Class() != class {
		c.hierarchy = nil
		c.refresh.Clear()
	}
	return nil
}

// Returns true if the hierarchy has been created.
func (c *Container) HasHierarchy() bool { return c.hierarchy != nil }

// Create a hierarchy of the given class holding all children. If a hierarchy
// of that class exists it is returned as is. Returns nil and keeps the
// current hierarchy if the class is unknown.
func (c *Container) CreateHierarchy(class string) hierarchy.Hierarchy {
	if c.hierarchy != nil && c.hierarchyClass == class {
		return c.hierarchy
	}

	h, err := hierarchy.New(class, c.scene.hierarchyOptions())
	if err != nil {
		c.scene.logger.Errorf("container %q: %v", c.Path(), err)
		return nil
	}
	h.Init(c.aabb.Min, c.aabb.Max)
	for _, n := range c.Nodes() {
		h.AddSceneNode(n)
	}
	h.Touch()

	c.hierarchy = h
	c.hierarchyClass = class
	c.refresh.Clear()
	return h
}

// Get the hierarchy, creating it with the configured class on first use.
// Pending placement refreshes are applied first, once per moved child no
// matter how often it moved.
func (c *Container) HierarchyInstance() hierarchy.Hierarchy {
	if c.hierarchy == nil {
		return c.CreateHierarchy(c.hierarchyClass)
	}

	if !c.refresh.IsEmpty() {
		it := c.refresh.Iterator()
		for it.HasNext() {
			n := c.scene.Node(NodeID(it.Next()))
			if n != nil && n.parent == c.id {
				c.hierarchy.RefreshSceneNode(n)
			}
		}
		c.refresh.Clear()
	}
	return c.hierarchy
}

// Number of children waiting for a hierarchy refresh.
func (c *Container) PendingRefresh() int {
	return int(c.refresh.GetCardinality())
}

func (c *Container) queueRefresh(n *Node) {
	if c.hierarchy != nil {
		c.refresh.Add(n.Key())
	}
}

// Calculate the union of the container space boxes of all children and
// assign it as the container box. Without children the empty box is
// returned and the container box is left untouched.
func (c *Container) CalculateAABoundingBox() types.AABox {
	box := types.EmptyAABox()
	for _, n := range c.Nodes() {
		box = box.Union(n.ContainerAABox())
	}
	if len(c.elements) > 0 && !box.IsEmpty() {
		c.SetAABox(box)
	}
	return box
}

// Get the matrix that transforms from the space of this container into the
// space of other. Returns false if other belongs to another scene or one of
// the container transforms on the way down can not be inverted.
func (c *Container) TransformMatrixTo(other *Container) (types.Mat4, bool) {
	if other == nil || other.scene != c.scene {
		return types.Ident4(), false
	}
	if other == c {
		return types.Ident4(), true
	}

	// Up to the root, stopping early if other is an ancestor
	m := c.Transform()
	for p := c.Container(); p != nil; p = p.Container() {
		if p == other {
			return m, true
		}
		m = p.Transform().Mul(m)
	}

	// Down from the root to other
	var stack []*Container
	for p := other; p != nil; p = p.Container() {
		stack = append(stack, p)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		inv, ok := stack[i].Transform().InverseAffine()
		if !ok {
			return types.Ident4(), false
		}
		m = inv.Mul(m)
	}
	return m, true
}

// Visit the container and all its descendants depth-first.
func (c *Container) Walk(fn func(n *Node)) {
	fn(c.Node)
	for _, n := range c.Nodes() {
		if n.container != nil {
			n.container.Walk(fn)
		} else {
			fn(n)
		}
	}
}
