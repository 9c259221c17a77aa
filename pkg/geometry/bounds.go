package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box that any point will extend
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Union expands the bounding box to include another box
func (b *BoundingBox) Union(other BoundingBox) {
	b.Min = b.Min.Min(other.Min)
	b.Max = b.Max.Max(other.Max)
}

// IsEmpty reports whether no point has been added yet
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
		Z: (b.Min.Z + b.Max.Z) / 2.0,
	}
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	size := b.Size()
	return size.Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// LongestAxis returns 0, 1 or 2 for the axis with the largest extent
func (b BoundingBox) LongestAxis() int {
	size := b.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > size.Component(axis) {
		axis = 2
	}
	return axis
}

// IntersectRay performs the slab test and returns the entry and exit distances
// of the ray along dir. invDir holds the per-axis reciprocals of dir so callers
// traversing many boxes compute it once.
func (b BoundingBox) IntersectRay(origin, invDir Vector3) (tMin, tMax float64, ok bool) {
	tMin = math.Inf(-1)
	tMax = math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := origin.Component(axis)
		inv := invDir.Component(axis)
		lo := (b.Min.Component(axis) - o) * inv
		hi := (b.Max.Component(axis) - o) * inv
		// 0 * Inf is NaN for a ray lying on the slab plane; treat it as inside
		if math.IsNaN(lo) || math.IsNaN(hi) {
			continue
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		tMin = math.Max(tMin, lo)
		tMax = math.Min(tMax, hi)
		if tMin > tMax {
			return 0, 0, false
		}
	}

	if tMax < 0 {
		return 0, 0, false
	}
	return tMin, tMax, true
}
