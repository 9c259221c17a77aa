package picker

import (
	"math"
	"sort"

	"github.com/philipparndt/meshnote/pkg/geometry"
)

const maxLeafSize = 4

// bvhNode is either an inner node (left/right set) or a leaf covering
// order[first : first+count]
type bvhNode struct {
	bounds      geometry.BoundingBox
	left, right int32
	first       int32
	count       int32
}

func (n *bvhNode) isLeaf() bool {
	return n.count > 0
}

type bvh struct {
	nodes []bvhNode
	order []int // triangle indices, grouped by leaf
}

// Stats describes the shape of a hierarchy
type Stats struct {
	Nodes  int
	Leaves int
	Depth  int
}

type bvhItem struct {
	bounds   geometry.BoundingBox
	centroid geometry.Vector3
	index    int
}

func buildBVH(triangles []geometry.Triangle) *bvh {
	tree := &bvh{}
	if len(triangles) == 0 {
		return tree
	}

	items := make([]bvhItem, len(triangles))
	for i, tri := range triangles {
		items[i] = bvhItem{
			bounds:   tri.Bounds(),
			centroid: tri.Center(),
			index:    i,
		}
	}

	tree.order = make([]int, 0, len(triangles))
	tree.build(items)
	return tree
}

// build appends the subtree for items and returns its node index
func (t *bvh) build(items []bvhItem) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, bvhNode{left: -1, right: -1})

	bounds := geometry.NewBoundingBox()
	centroids := geometry.NewBoundingBox()
	for _, it := range items {
		bounds.Union(it.bounds)
		centroids.Extend(it.centroid)
	}
	t.nodes[idx].bounds = bounds

	if len(items) <= maxLeafSize || centroids.Diagonal() == 0 {
		t.nodes[idx].first = int32(len(t.order))
		t.nodes[idx].count = int32(len(items))
		for _, it := range items {
			t.order = append(t.order, it.index)
		}
		return idx
	}

	// Median split along the longest axis of the centroid bounds
	axis := centroids.LongestAxis()
	sort.Slice(items, func(i, j int) bool {
		return items[i].centroid.Component(axis) < items[j].centroid.Component(axis)
	})
	mid := len(items) / 2

	left := t.build(items[:mid])
	right := t.build(items[mid:])
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	return idx
}

// intersect returns the triangle index and distance of the nearest hit
func (t *bvh) intersect(ray Ray, triangles []geometry.Triangle) (int, float64, bool) {
	if len(t.nodes) == 0 {
		return -1, 0, false
	}

	invDir := ray.inverseDirection()
	best := math.Inf(1)
	bestIndex := -1

	stack := []int32{0}
	for len(stack) > 0 {
		nodeIdx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[nodeIdx]

		tMin, _, ok := node.bounds.IntersectRay(ray.Origin, invDir)
		if !ok || tMin > best {
			continue
		}

		if node.isLeaf() {
			for _, triIdx := range t.order[node.first : node.first+node.count] {
				dist, hit := triangles[triIdx].IntersectRay(ray.Origin, ray.Direction)
				if hit && dist < best {
					best = dist
					bestIndex = triIdx
				}
			}
			continue
		}
		stack = append(stack, node.left, node.right)
	}

	if bestIndex < 0 {
		return -1, 0, false
	}
	return bestIndex, best, true
}

func (t *bvh) stats() Stats {
	var s Stats
	if len(t.nodes) == 0 {
		return s
	}

	type entry struct {
		node  int32
		depth int
	}
	stack := []entry{{0, 1}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.Nodes++
		if e.depth > s.Depth {
			s.Depth = e.depth
		}
		node := &t.nodes[e.node]
		if node.isLeaf() {
			s.Leaves++
			continue
		}
		stack = append(stack, entry{node.left, e.depth + 1}, entry{node.right, e.depth + 1})
	}
	return s
}
