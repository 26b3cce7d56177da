package hierarchy

import "github.com/cofenberg/pixellight-sub004/types"

// List is the simplest hierarchy: a flat ordered list of items queried
// linearly. It is the default hierarchy of new containers.
type List struct {
	members
	bounds types.AABox
}

// Create an empty list hierarchy.
func NewList() *List {
	return &List{
		members: newMembers(),
		bounds:  types.EmptyAABox(),
	}
}

func (l *List) Class() string { return ClassList }

func (l *List) Init(min, max types.Vec3) {
	l.reset()
	l.bounds = types.NewAABox(min, max)
}

func (l *List) Bounds() types.AABox { return l.bounds }

// Items outside the current bounds grow them.
func (l *List) AddSceneNode(item Item) {
	if l.add(item) {
		l.bounds = l.bounds.Union(item.ContainerAABox())
	}
}

func (l *List) RemoveSceneNode(item Item) {
	l.remove(item)
}

func (l *List) RefreshSceneNode(item Item) {
	if l.contains(item.Key()) {
		l.bounds = l.bounds.Union(item.ContainerAABox())
	}
}

// A list keeps no per-item spatial state.
func (l *List) Touch() {}

func (l *List) Len() int { return len(l.items) }

func (l *List) Contains(key uint32) bool { return l.contains(key) }

func (l *List) Query(box types.AABox, fn func(Item) bool) {
	for _, item := range l.items {
		if item.ContainerAABox().Intersects(box) && !fn(item) {
			return
		}
	}
}
