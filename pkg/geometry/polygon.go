package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewPoints is returned when a polygon has fewer than three vertices
	ErrTooFewPoints = errors.New("polygon needs at least 3 points")
	// ErrDegeneratePolygon is returned when the vertices do not span a plane
	ErrDegeneratePolygon = errors.New("polygon is degenerate (collinear or coincident points)")
)

// degenerateTolerance is relative to the squared extent of the point set,
// because the Newell normal scales with area.
const degenerateTolerance = 1e-12

// LineLength returns the length of the polyline through points.
// Fewer than two points have length 0.
func LineLength(points []Vector3) float64 {
	length := 0.0
	for i := 1; i < len(points); i++ {
		length += points[i-1].Distance(points[i])
	}
	return length
}

// NewellNormal returns the unnormalized normal of the closed polygon using
// Newell's method. Its length is twice the area of the polygon when the
// points are coplanar.
func NewellNormal(points []Vector3) Vector3 {
	var n Vector3
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// PolygonArea returns the area of a closed polygon in 3D space. The points are
// projected onto their best-fit plane before the shoelace formula is applied,
// so small deviations from planarity are tolerated. Fewer than three points and
// degenerate input (collinear or coincident points) yield 0.
func PolygonArea(points []Vector3) float64 {
	area, err := PolygonAreaChecked(points)
	if err != nil {
		return 0
	}
	return area
}

// PolygonAreaChecked is PolygonArea with the reason reported when no area can
// be computed.
func PolygonAreaChecked(points []Vector3) (float64, error) {
	if len(points) < 3 {
		return 0, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}

	u, v, err := planeBasis(points)
	if err != nil {
		return 0, err
	}

	origin := points[0]
	area := 0.0
	for i := range points {
		a := points[i].Sub(origin)
		b := points[(i+1)%len(points)].Sub(origin)
		x1, y1 := a.Dot(u), a.Dot(v)
		x2, y2 := b.Dot(u), b.Dot(v)
		area += x1*y2 - x2*y1
	}
	return math.Abs(area) * 0.5, nil
}

// PolygonPlanarity returns the largest distance of any vertex from the
// best-fit plane through the centroid. Planar polygons return 0 (up to
// rounding), as do inputs without a plane.
func PolygonPlanarity(points []Vector3) float64 {
	if len(points) < 3 {
		return 0
	}
	normal, ok := bestFitNormal(points)
	if !ok {
		return 0
	}

	var centroid Vector3
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1.0 / float64(len(points)))

	deviation := 0.0
	for _, p := range points {
		deviation = math.Max(deviation, math.Abs(p.Sub(centroid).Dot(normal)))
	}
	return deviation
}

// bestFitNormal returns the normalized Newell normal, or false when the
// points are too close to a line to define one.
func bestFitNormal(points []Vector3) (Vector3, bool) {
	bbox := NewBoundingBox()
	for _, p := range points {
		bbox.Extend(p)
	}
	extent := bbox.Diagonal()

	n := NewellNormal(points)
	length := n.Length()
	if length == 0 || length <= degenerateTolerance*extent*extent {
		return Vector3{}, false
	}
	return n.Mul(1.0 / length), true
}

// planeBasis builds an orthonormal in-plane basis (u, v). u follows the first
// edge leaving points[0] that has non-zero length.
func planeBasis(points []Vector3) (u, v Vector3, err error) {
	normal, ok := bestFitNormal(points)
	if !ok {
		return Vector3{}, Vector3{}, ErrDegeneratePolygon
	}

	for _, p := range points[1:] {
		edge := p.Sub(points[0])
		// Remove the out-of-plane part so the basis stays orthonormal for
		// slightly non-planar input
		inPlane := edge.Sub(normal.Mul(edge.Dot(normal)))
		if inPlane.Length() > 0 {
			u = inPlane.Normalize()
			v = normal.Cross(u).Normalize()
			return u, v, nil
		}
	}
	return Vector3{}, Vector3{}, ErrDegeneratePolygon
}
