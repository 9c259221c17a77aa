package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/geometry"
)

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

func TestBuildEmpty(t *testing.T) {
	o := Build(annotation.NewSession().Snapshot())
	assert.True(t, o.Empty())
}

func TestBuildLine(t *testing.T) {
	s := annotation.NewSession(annotation.WithMode(annotation.ModeLine))
	s.Pick(v(0, 0, 0))
	s.Pick(v(3, 4, 0))
	s.Pick(v(3, 4, 2))
	require.True(t, s.Finalize())

	o := Build(s.Snapshot())

	require.Len(t, o.Labels, 1)
	assert.Equal(t, "7.00 m", o.Labels[0].Text)
	assert.Equal(t, v(3, 4, 0), o.Labels[0].Anchor)
	assert.Len(t, o.Segments, 2)
	assert.Len(t, o.Markers, 3)
	assert.Empty(t, o.Fills)
	for _, m := range o.Markers {
		assert.Equal(t, annotation.DefaultDrawColor, m.Color)
	}
}

func TestBuildPolygon(t *testing.T) {
	s := annotation.NewSession(annotation.WithMode(annotation.ModePolygon))
	for _, p := range []geometry.Vector3{v(0, 0, 0), v(2, 0, 0), v(2, 2, 0), v(0, 2, 0)} {
		s.Pick(p)
	}
	require.True(t, s.Finalize())

	o := Build(s.Snapshot())

	require.Len(t, o.Fills, 1)
	assert.Equal(t, uint8(77), o.Fills[0].Color.A)
	assert.Len(t, o.Segments, 4, "outline is closed")
	require.Len(t, o.Labels, 1)
	assert.Equal(t, "4.00 m²", o.Labels[0].Text)
	assert.Equal(t, v(2, 2, 0), o.Labels[0].Anchor)
}

func TestBuildInProgressWithPreview(t *testing.T) {
	s := annotation.NewSession(annotation.WithMode(annotation.ModePolygon))
	s.Pick(v(0, 0, 0))
	s.Pick(v(1, 0, 0))
	s.PointerMove(v(1, 1, 0))

	o := Build(s.Snapshot())

	// strip, rubber band, closing edge
	require.Len(t, o.Segments, 3)
	assert.Equal(t, v(1, 0, 0), o.Segments[1].Start)
	assert.Equal(t, v(1, 1, 0), o.Segments[1].End)
	assert.Equal(t, v(0, 0, 0), o.Segments[2].End)
	for _, seg := range o.Segments[:2] {
		assert.Equal(t, annotation.InProgressColor, seg.Color)
	}

	require.Len(t, o.Markers, 3)
	assert.True(t, o.Markers[2].Preview)
	assert.Empty(t, o.Labels)
}

func TestBuildPoints(t *testing.T) {
	s := annotation.NewSession()
	s.Pick(v(1, 2, 3))
	s.PointerMove(v(0, 0, 0))

	o := Build(s.Snapshot())

	require.Len(t, o.Markers, 2)
	assert.False(t, o.Markers[0].Preview)
	assert.True(t, o.Markers[1].Preview)
	assert.Empty(t, o.Segments)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.23 m", FormatLength(1.2345))
	assert.Equal(t, "0.00 m²", FormatArea(0))
}
