package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/meshnote/pkg/geometry"
	"github.com/philipparndt/meshnote/pkg/stl"
)

// LengthStats summarizes a set of lengths. Mesh edges and annotation
// segments are both described with it.
type LengthStats struct {
	Count int
	Min   float64
	Max   float64
	Total float64
}

// Add records one length
func (s *LengthStats) Add(length float64) {
	if s.Count == 0 || length < s.Min {
		s.Min = length
	}
	if length > s.Max {
		s.Max = length
	}
	s.Total += length
	s.Count++
}

// Mean returns the average length, 0 when empty
func (s LengthStats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Total / float64(s.Count)
}

// Edge is a unique mesh edge with the triangles sharing it
type Edge struct {
	Start     geometry.Vector3
	End       geometry.Vector3
	Length    float64
	Triangles []int
}

// Open reports whether only one triangle uses the edge
func (e Edge) Open() bool {
	return len(e.Triangles) == 1
}

// ModelResult describes the geometry a session annotates
type ModelResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	TriangleCount int
	// Edges holds every distinct edge once, in first-seen order
	Edges     []Edge
	EdgeStats LengthStats
	// OpenEdges counts edges with a single triangle; zero for a closed surface
	OpenEdges int
}

type edgeKey struct {
	a, b geometry.Vector3
}

// newEdgeKey orders the endpoints so both windings map to one key
func newEdgeKey(p, q geometry.Vector3) edgeKey {
	if lessVector(q, p) {
		p, q = q, p
	}
	return edgeKey{a: p, b: q}
}

func lessVector(p, q geometry.Vector3) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.Z < q.Z
}

// AnalyzeModel measures model and collects its distinct edges
func AnalyzeModel(model *stl.Model) *ModelResult {
	result := &ModelResult{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
	}
	result.Dimensions = result.BoundingBox.Size()
	result.Volume = result.BoundingBox.Volume()

	index := make(map[edgeKey]int)
	for i, tri := range model.Triangles {
		for _, e := range [3][2]geometry.Vector3{{tri.V1, tri.V2}, {tri.V2, tri.V3}, {tri.V3, tri.V1}} {
			key := newEdgeKey(e[0], e[1])
			if at, ok := index[key]; ok {
				result.Edges[at].Triangles = append(result.Edges[at].Triangles, i)
				continue
			}
			index[key] = len(result.Edges)
			result.Edges = append(result.Edges, Edge{
				Start:     e[0],
				End:       e[1],
				Length:    e[0].Distance(e[1]),
				Triangles: []int{i},
			})
		}
	}

	for _, e := range result.Edges {
		result.EdgeStats.Add(e.Length)
		if e.Open() {
			result.OpenEdges++
		}
	}
	return result
}

// EdgesBetween returns the edges with minLength <= length <= maxLength
func (r *ModelResult) EdgesBetween(minLength, maxLength float64) []Edge {
	var edges []Edge
	for _, e := range r.Edges {
		if e.Length >= minLength && e.Length <= maxLength {
			edges = append(edges, e)
		}
	}
	return edges
}

// LongestEdges returns up to n edges, longest first
func (r *ModelResult) LongestEdges(n int) []Edge {
	return r.sortedEdges(n, func(a, b Edge) bool { return a.Length > b.Length })
}

// ShortestEdges returns up to n edges, shortest first
func (r *ModelResult) ShortestEdges(n int) []Edge {
	return r.sortedEdges(n, func(a, b Edge) bool { return a.Length < b.Length })
}

func (r *ModelResult) sortedEdges(n int, less func(a, b Edge) bool) []Edge {
	edges := append([]Edge(nil), r.Edges...)
	sort.SliceStable(edges, func(i, j int) bool { return less(edges[i], edges[j]) })
	if n < len(edges) {
		edges = edges[:max(n, 0)]
	}
	return edges
}

// VertexSnapper moves picked points onto the nearest mesh vertex within
// Radius. It implements annotation.Snapper.
type VertexSnapper struct {
	vertices []geometry.Vector3
	Radius   float64
}

// NewVertexSnapper indexes the distinct vertices of model
func NewVertexSnapper(model *stl.Model, radius float64) *VertexSnapper {
	seen := make(map[geometry.Vector3]bool)
	vs := &VertexSnapper{Radius: radius}
	for _, tri := range model.Triangles {
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			if !seen[v] {
				seen[v] = true
				vs.vertices = append(vs.vertices, v)
			}
		}
	}
	return vs
}

// Nearest returns the vertex closest to p and its distance; ok is false for
// an empty model
func (vs *VertexSnapper) Nearest(p geometry.Vector3) (vertex geometry.Vector3, dist float64, ok bool) {
	dist = math.Inf(1)
	for _, v := range vs.vertices {
		if d := p.Distance(v); d < dist {
			vertex, dist, ok = v, d, true
		}
	}
	return vertex, dist, ok
}

// Snap returns the nearest vertex when it lies within Radius, otherwise p
func (vs *VertexSnapper) Snap(p geometry.Vector3) geometry.Vector3 {
	if v, d, ok := vs.Nearest(p); ok && d <= vs.Radius {
		return v
	}
	return p
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
