// Package measurement turns annotation snapshots into presenter-neutral
// overlay primitives.
package measurement

import (
	"image/color"

	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/geometry"
)

// Build derives the overlay for a snapshot. Fills come first so outlines and
// markers stay visible on top of them.
func Build(s annotation.Snapshot) Overlay {
	var o Overlay

	for _, p := range s.Polygons {
		o.Fills = append(o.Fills, Fill{
			Points: p.Points,
			Color:  translucent(p.Color, FillAlpha),
		})
		o.addStrip(p.Points, p.Color, true)
		o.Labels = append(o.Labels, Label{
			Text:   FormatArea(p.Area()),
			Anchor: p.LabelAnchor(),
			Color:  p.Color,
		})
	}

	for _, l := range s.Lines {
		o.addStrip(l.Points, l.Color, false)
		o.Labels = append(o.Labels, Label{
			Text:   FormatLength(l.Length()),
			Anchor: l.LabelAnchor(),
			Color:  l.Color,
		})
	}

	for _, p := range s.Points {
		o.Markers = append(o.Markers, Marker{Position: p.Position, Color: p.Color})
	}

	o.addInProgress(s)
	return o
}

func (o *Overlay) addInProgress(s annotation.Snapshot) {
	in := s.InProgress
	o.addStrip(in, annotation.InProgressColor, false)

	if s.Preview == nil {
		return
	}
	preview := *s.Preview
	if len(in) > 0 {
		o.Segments = append(o.Segments, Segment{
			Start: in[len(in)-1],
			End:   preview,
			Color: annotation.InProgressColor,
		})
		// Closing edge of the polygon being drawn
		if s.Mode == annotation.ModePolygon && len(in) >= 2 {
			o.Segments = append(o.Segments, Segment{
				Start: preview,
				End:   in[0],
				Color: translucent(annotation.InProgressColor, 0.5),
			})
		}
	}
	o.Markers = append(o.Markers, Marker{
		Position: preview,
		Color:    annotation.InProgressColor,
		Preview:  true,
	})
}

// addStrip adds connected segments and one marker per vertex
func (o *Overlay) addStrip(points []geometry.Vector3, c color.NRGBA, closed bool) {
	for i := 0; i+1 < len(points); i++ {
		o.Segments = append(o.Segments, Segment{Start: points[i], End: points[i+1], Color: c})
	}
	if closed && len(points) > 2 {
		o.Segments = append(o.Segments, Segment{Start: points[len(points)-1], End: points[0], Color: c})
	}
	for _, p := range points {
		o.Markers = append(o.Markers, Marker{Position: p, Color: c})
	}
}

func translucent(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return c
}
