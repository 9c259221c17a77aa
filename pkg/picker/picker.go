// Package picker resolves rays against a triangle mesh. It is the surface
// picking service used by annotation sessions: given a ray it returns the
// nearest surface point and normal, or reports that nothing was hit.
package picker

import (
	"math"

	"github.com/philipparndt/meshnote/pkg/geometry"
	"github.com/philipparndt/meshnote/pkg/stl"
)

// Hit describes where a ray met the surface
type Hit struct {
	Point    geometry.Vector3
	Normal   geometry.Vector3 // unit normal facing the ray origin
	Distance float64          // distance from the ray origin
	Triangle int              // index into the model's triangles
}

// Picker resolves a ray to the nearest surface hit
type Picker interface {
	Pick(ray Ray) (Hit, bool)
}

// MeshPicker picks against the triangles of a model using a bounding volume
// hierarchy. It is read-only after construction and safe for concurrent use.
type MeshPicker struct {
	triangles []geometry.Triangle
	tree      *bvh
}

// NewMeshPicker builds the acceleration structure for model
func NewMeshPicker(model *stl.Model) *MeshPicker {
	return &MeshPicker{
		triangles: model.Triangles,
		tree:      buildBVH(model.Triangles),
	}
}

// Pick returns the nearest hit along ray
func (p *MeshPicker) Pick(ray Ray) (Hit, bool) {
	if ray.Direction.Length() == 0 {
		return Hit{}, false
	}
	ray.Direction = ray.Direction.Normalize()

	index, dist, ok := p.tree.intersect(ray, p.triangles)
	if !ok {
		return Hit{}, false
	}
	return p.hit(ray, index, dist), true
}

// Stats returns the shape of the acceleration structure
func (p *MeshPicker) Stats() Stats {
	return p.tree.stats()
}

func (p *MeshPicker) hit(ray Ray, index int, dist float64) Hit {
	normal := p.triangles[index].CalculateNormal()
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Mul(-1)
	}
	return Hit{
		Point:    ray.At(dist),
		Normal:   normal,
		Distance: dist,
		Triangle: index,
	}
}

// BruteForcePicker tests every triangle. It is used to cross-check the
// hierarchy and is adequate for tiny meshes.
type BruteForcePicker struct {
	Triangles []geometry.Triangle
}

// Pick returns the nearest hit along ray
func (p BruteForcePicker) Pick(ray Ray) (Hit, bool) {
	if ray.Direction.Length() == 0 {
		return Hit{}, false
	}
	ray.Direction = ray.Direction.Normalize()

	best := math.Inf(1)
	bestIndex := -1
	for i, tri := range p.Triangles {
		if dist, ok := tri.IntersectRay(ray.Origin, ray.Direction); ok && dist < best {
			best = dist
			bestIndex = i
		}
	}
	if bestIndex < 0 {
		return Hit{}, false
	}
	mp := MeshPicker{triangles: p.Triangles}
	return mp.hit(ray, bestIndex, best), true
}
