package hierarchy

import (
	"github.com/cofenberg/pixellight-sub004/log"
	"github.com/cofenberg/pixellight-sub004/types"
)

// Leafs that grow past this multiple of the configured leaf size through
// incremental inserts trigger a rebuild on the next query.
const leafOverflowFactor = 4

// BVH is a bounding volume hierarchy built with the surface area heuristic.
//
// The tree is built lazily on the first query after Init or Touch. Once
// built, single item additions, removals and refreshes are applied in place
// by updating the affected leaf and refitting the boxes on the path to the
// root.
type BVH struct {
	members

	logger    log.Logger
	leafItems int
	bounds    types.AABox

	nodes  []bvhNode
	leafOf map[uint32]int32
	stale  bool
}

// Create an empty BVH hierarchy with the given minimum leaf size.
func NewBVH(leafItems int) *BVH {
	if leafItems < 1 {
		leafItems = 1
	}
	return &BVH{
		members:   newMembers(),
		logger:    log.New("hierarchy"),
		leafItems: leafItems,
		bounds:    types.EmptyAABox(),
		leafOf:    make(map[uint32]int32),
		stale:     true,
	}
}

func (h *BVH) Class() string { return ClassBVH }

func (h *BVH) Init(min, max types.Vec3) {
	h.reset()
	h.bounds = types.NewAABox(min, max)
	h.nodes = nil
	h.leafOf = make(map[uint32]int32)
	h.stale = true
}

func (h *BVH) Bounds() types.AABox { return h.bounds }

func (h *BVH) AddSceneNode(item Item) {
	if !h.add(item) {
		return
	}
	h.bounds = h.bounds.Union(itemBox(item))
	if !h.stale {
		h.insert(item)
	}
}

func (h *BVH) RemoveSceneNode(item Item) {
	if !h.remove(item) {
		return
	}
	if !h.stale {
		h.detach(item.Key())
	}
}

func (h *BVH) RefreshSceneNode(item Item) {
	if !h.contains(item.Key()) {
		return
	}
	h.bounds = h.bounds.Union(itemBox(item))
	if !h.stale {
		h.detach(item.Key())
		h.insert(item)
	}
}

func (h *BVH) Touch() {
	h.stale = true
}

func (h *BVH) Len() int { return len(h.items) }

func (h *BVH) Contains(key uint32) bool { return h.contains(key) }

func (h *BVH) Query(box types.AABox, fn func(Item) bool) {
	h.build()

	stack := []int32{0}
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &h.nodes[index]
		if !node.box.Intersects(box) {
			continue
		}
		if !node.isLeaf() {
			stack = append(stack, node.right, node.left)
			continue
		}
		for _, item := range node.items {
			if itemBox(item).Intersects(box) && !fn(item) {
				return
			}
		}
	}
}

// Rebuild the tree if it has been invalidated.
func (h *BVH) build() {
	if !h.stale {
		return
	}
	h.nodes = buildBVH(h.logger, h.items, h.leafItems)
	h.leafOf = make(map[uint32]int32, len(h.items))
	for index := range h.nodes {
		for _, item := range h.nodes[index].items {
			h.leafOf[item.Key()] = int32(index)
		}
	}
	h.stale = false
}

// Add item to the leaf whose box needs the least enlargement to contain it.
func (h *BVH) insert(item Item) {
	box := itemBox(item)
	index := int32(0)
	for !h.nodes[index].isLeaf() {
		node := &h.nodes[index]
		if enlargement(h.nodes[node.right].box, box) < enlargement(h.nodes[node.left].box, box) {
			index = node.right
		} else {
			index = node.left
		}
	}

	leaf := &h.nodes[index]
	leaf.items = append(leaf.items, item)
	h.leafOf[item.Key()] = index
	h.refit(index)

	if len(leaf.items) > leafOverflowFactor*h.leafItems {
		h.stale = true
	}
}

func (h *BVH) detach(key uint32) {
	index, ok := h.leafOf[key]
	if !ok {
		return
	}
	delete(h.leafOf, key)

	leaf := &h.nodes[index]
	for i, item := range leaf.items {
		if item.Key() == key {
			leaf.items = append(leaf.items[:i], leaf.items[i+1:]...)
			break
		}
	}
	h.refit(index)
}

// Recalculate the boxes of index and all its ancestors.
func (h *BVH) refit(index int32) {
	for index != noChild {
		node := &h.nodes[index]
		node.box = types.EmptyAABox()
		if node.isLeaf() {
			for _, item := range node.items {
				node.box = node.box.Union(itemBox(item))
			}
		} else {
			node.box = h.nodes[node.left].box.Union(h.nodes[node.right].box)
		}
		index = node.parent
	}
}

func enlargement(nodeBox, box types.AABox) float32 {
	return nodeBox.Union(box).SurfaceArea() - nodeBox.SurfaceArea()
}
