package hierarchy

import (
	"math"
	"time"

	"github.com/cofenberg/pixellight-sub004/log"
	"github.com/cofenberg/pixellight-sub004/types"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis

	// The builder will not attempt to calculate split candidates
	// if the node bbox along an axis is less than this threshold.
	minSideLength float32 = 1e-3

	// If the split step (calculated as side length / (1024 / (depth+1)))
	// is less than this threshold the builder will not evaluate
	// split candidates.
	minSplitStep float32 = 1e-5

	noChild int32 = -1
)

type bvhNode struct {
	box         types.AABox
	parent      int32
	left, right int32

	// Only populated for leafs.
	items []Item
}

func (n *bvhNode) isLeaf() bool {
	return n.left == noChild
}

type splitScore struct {
	axis       Axis
	splitPoint float32

	leftCount, rightCount int
	score                 float32
}

// Returns true if s is a better split than other. Equal scores are ordered
// by axis and split point so the outcome does not depend on the order in
// which the scoring goroutines report back.
func (s splitScore) betterThan(other splitScore) bool {
	if s.score != other.score {
		return s.score < other.score
	}
	if s.axis != other.axis {
		return s.axis < other.axis
	}
	return s.splitPoint < other.splitPoint
}

type buildStats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type builder struct {
	logger log.Logger

	// Nodes stored as a contiguous list; the root is at index 0.
	nodes []bvhNode

	// The minimum number of items that are required for creating a leaf.
	minLeafItems int

	// A channel for receiving score results.
	scoreChan chan splitScore

	stats buildStats
}

// Partition items into a BVH using the surface area heuristic (SAH):
// score = item count * node bbox face area.
//
// Work lists with at most minLeafItems items always become leafs.
func buildBVH(logger log.Logger, items []Item, minLeafItems int) []bvhNode {
	if minLeafItems < 1 {
		minLeafItems = 1
	}
	b := &builder{
		logger:       logger,
		nodes:        make([]bvhNode, 0, 2*len(items)/minLeafItems+1),
		minLeafItems: minLeafItems,
		scoreChan:    make(chan splitScore),
	}

	start := time.Now()
	b.partition(append([]Item(nil), items...), noChild, 0)
	b.logger.Debugf(
		"BVH build time: %d ms, items: %d, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		len(items), b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)
	return b.nodes
}

// Partition worklist and return node index.
func (b *builder) partition(workList []Item, parent int32, depth int) int32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	node := bvhNode{
		box:    types.EmptyAABox(),
		parent: parent,
		left:   noChild,
		right:  noChild,
	}
	for _, item := range workList {
		node.box = node.box.Union(itemBox(item))
	}

	if len(workList) <= b.minLeafItems {
		return b.createLeaf(node, workList)
	}

	best := splitScore{score: scorePartition(workList)}
	found := false

	// Run axis split tests in parallel
	pendingScores := 0
	side := node.box.Max.Sub(node.box.Min)
	for axis := XAxis; axis <= ZAxis; axis++ {
		if side[axis] < minSideLength {
			continue
		}

		// We want the split steps to become more granular the deeper we go
		splitStep := side[axis] / (1024.0 / float32(depth+1))
		if splitStep < minSplitStep {
			continue
		}

		// Step count is fixed up front; far from the origin splitStep may be
		// below the float32 resolution of the coordinates.
		steps := int(math.Ceil(float64(side[axis] / splitStep)))
		lastPoint := float32(math.Inf(-1))
		for step := 0; step < steps; step++ {
			splitPoint := node.box.Min[axis] + float32(step)*splitStep
			if splitPoint >= node.box.Max[axis] {
				break
			}
			if splitPoint == lastPoint {
				continue
			}
			lastPoint = splitPoint

			pendingScores++
			go func(axis Axis, splitPoint float32) {
				lCount, rCount, score := scoreSplit(workList, axis, splitPoint)
				b.scoreChan <- splitScore{
					axis:       axis,
					splitPoint: splitPoint,
					leftCount:  lCount,
					rightCount: rCount,
					score:      score,
				}
			}(axis, splitPoint)
		}
	}

	for ; pendingScores > 0; pendingScores-- {
		candidate := <-b.scoreChan
		if (!found && candidate.score < best.score) || (found && candidate.betterThan(best)) {
			best = candidate
			found = true
		}
	}

	// If no split improves the current node score create a leaf
	if !found {
		return b.createLeaf(node, workList)
	}

	leftWorkList := make([]Item, 0, best.leftCount)
	rightWorkList := make([]Item, 0, best.rightCount)
	for _, item := range workList {
		if itemBox(item).Center()[best.axis] < best.splitPoint {
			leftWorkList = append(leftWorkList, item)
		} else {
			rightWorkList = append(rightWorkList, item)
		}
	}

	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, node)
	b.stats.nodes++

	left := b.partition(leftWorkList, nodeIndex, depth+1)
	right := b.partition(rightWorkList, nodeIndex, depth+1)
	b.nodes[nodeIndex].left = left
	b.nodes[nodeIndex].right = right

	return nodeIndex
}

func (b *builder) createLeaf(node bvhNode, workList []Item) int32 {
	node.items = workList

	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, node)
	b.stats.leafs++

	return nodeIndex
}

// Items without a box are placed as a point at the container origin.
func itemBox(item Item) types.AABox {
	box := item.ContainerAABox()
	if box.IsEmpty() {
		return types.AABox{}
	}
	return box
}

// Score a split based on the surface area heuristic (lower is better):
//
// left count * left BBOX area + right count * right BBOX area.
//
// Splits that generate empty partitions get the worst possible score.
func scoreSplit(workList []Item, axis Axis, splitPoint float32) (leftCount, rightCount int, score float32) {
	lbox := types.EmptyAABox()
	rbox := types.EmptyAABox()
	for _, item := range workList {
		box := itemBox(item)
		if box.Center()[axis] < splitPoint {
			leftCount++
			lbox = lbox.Union(box)
		} else {
			rightCount++
			rbox = rbox.Union(box)
		}
	}

	if leftCount == 0 || rightCount == 0 {
		return leftCount, rightCount, math.MaxFloat32
	}

	score = float32(leftCount)*lbox.SurfaceArea() + float32(rightCount)*rbox.SurfaceArea()
	return leftCount, rightCount, score
}

// Calculate the score of an unsplit work list: count * BBOX area.
func scorePartition(workList []Item) float32 {
	if len(workList) == 0 {
		return math.MaxFloat32
	}

	box := types.EmptyAABox()
	for _, item := range workList {
		box = box.Union(itemBox(item))
	}
	return float32(len(workList)) * box.SurfaceArea()
}
