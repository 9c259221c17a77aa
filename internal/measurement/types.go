package measurement

import (
	"image/color"

	"github.com/philipparndt/meshnote/pkg/geometry"
)

// Fixed pixel sizes shared by the presenters
const (
	MarkerRadius  = 3
	LineThickness = 2
	// FillAlpha is the opacity applied to polygon fills
	FillAlpha = 0.3
)

// Marker is a dot drawn at a world position
type Marker struct {
	Position geometry.Vector3
	Color    color.NRGBA
	// Preview marks the hovered point, drawn hollow
	Preview bool
}

// Segment represents a single overlay line between two points
type Segment struct {
	Start geometry.Vector3
	End   geometry.Vector3
	Color color.NRGBA
}

// Fill is a translucent polygon. Its color carries straight, not
// premultiplied, alpha.
type Fill struct {
	Points []geometry.Vector3
	Color  color.NRGBA
}

// Overlay is everything a presenter draws on top of the model for one
// session snapshot, in world coordinates
type Overlay struct {
	Fills    []Fill
	Segments []Segment
	Markers  []Marker
	Labels   []Label
}

// Empty reports whether the overlay draws nothing
func (o Overlay) Empty() bool {
	return len(o.Fills) == 0 && len(o.Segments) == 0 && len(o.Markers) == 0 && len(o.Labels) == 0
}
