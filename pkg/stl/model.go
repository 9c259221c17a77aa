package stl

import (
	"github.com/philipparndt/meshnote/pkg/geometry"
)

// Model is a triangle soup loaded from an STL file
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox returns the box around all vertices, or a zero box at the
// origin for an empty model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Union(triangle.Bounds())
	}
	if bbox.IsEmpty() {
		return geometry.BoundingBox{}
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// DegenerateCount returns the number of zero-area triangles. They can never
// be picked.
func (m *Model) DegenerateCount() int {
	n := 0
	for _, triangle := range m.Triangles {
		if triangle.Area() == 0 {
			n++
		}
	}
	return n
}

// RecomputeNormals replaces every stored facet normal with the one implied
// by the vertex winding. Shading relies on it; exporters often write zeros.
func (m *Model) RecomputeNormals() {
	for i := range m.Triangles {
		m.Triangles[i].Normal = m.Triangles[i].CalculateNormal()
	}
}
