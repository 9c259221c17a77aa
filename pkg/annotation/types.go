package annotation

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/philipparndt/meshnote/pkg/geometry"
)

// PointAnnotation marks a single picked surface point
type PointAnnotation struct {
	ID       uuid.UUID
	Position geometry.Vector3
	Color    color.NRGBA
}

// LabelAnchor returns where the presenter attaches the label
func (p PointAnnotation) LabelAnchor() geometry.Vector3 {
	return p.Position
}

// LineAnnotation is a finalized polyline of at least two points
type LineAnnotation struct {
	ID     uuid.UUID
	Points []geometry.Vector3
	Color  color.NRGBA
}

// Length returns the total length of the polyline
func (l LineAnnotation) Length() float64 {
	return geometry.LineLength(l.Points)
}

// LabelAnchor returns the point at index len/2, a reproducible anchor on the
// polyline itself
func (l LineAnnotation) LabelAnchor() geometry.Vector3 {
	return labelAnchor(l.Points)
}

// PolygonAnnotation is a finalized closed polygon of at least three points.
// The last point connects back to the first.
type PolygonAnnotation struct {
	ID     uuid.UUID
	Points []geometry.Vector3
	Color  color.NRGBA
}

// Area returns the area after projection onto the best-fit plane
func (p PolygonAnnotation) Area() float64 {
	return geometry.PolygonArea(p.Points)
}

// Perimeter returns the length of the closed outline
func (p PolygonAnnotation) Perimeter() float64 {
	if len(p.Points) < 2 {
		return 0
	}
	return geometry.LineLength(p.Points) + p.Points[len(p.Points)-1].Distance(p.Points[0])
}

// LabelAnchor returns the point at index len/2
func (p PolygonAnnotation) LabelAnchor() geometry.Vector3 {
	return labelAnchor(p.Points)
}

func labelAnchor(points []geometry.Vector3) geometry.Vector3 {
	if len(points) == 0 {
		return geometry.Vector3{}
	}
	return points[len(points)/2]
}

func clonePoints(points []geometry.Vector3) []geometry.Vector3 {
	if len(points) == 0 {
		return nil
	}
	out := make([]geometry.Vector3, len(points))
	copy(out, points)
	return out
}

func (l LineAnnotation) clone() LineAnnotation {
	l.Points = clonePoints(l.Points)
	return l
}

func (p PolygonAnnotation) clone() PolygonAnnotation {
	p.Points = clonePoints(p.Points)
	return p
}

// Snapshot is a read-only copy of the session state handed to presenters.
// Mutating a snapshot never affects the session.
type Snapshot struct {
	Mode      Mode
	DrawColor color.NRGBA
	Points    []PointAnnotation
	Lines     []LineAnnotation
	Polygons  []PolygonAnnotation

	// InProgress holds the buffer of the active mode; empty in point mode
	InProgress []geometry.Vector3
	// Preview is the hovered surface point, nil when the pointer is off the model
	Preview *geometry.Vector3
}

// Empty reports whether nothing has been drawn or started
func (s Snapshot) Empty() bool {
	return len(s.Points) == 0 && len(s.Lines) == 0 && len(s.Polygons) == 0 && len(s.InProgress) == 0
}
