package viewer

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshnote/pkg/annotation"
)

func newTestRenderer(t *testing.T, mode annotation.Mode) (*ModelRenderer, *annotation.Session) {
	t.Helper()
	test.NewTempApp(t)

	model := plateModel()
	session := annotation.NewSession(annotation.WithMode(mode))
	r := NewModelRenderer(model, session, nil)
	r.Resize(fyne.NewSize(400, 400))
	t.Cleanup(r.Close)
	return r, session
}

func TestModelRendererTapPicks(t *testing.T) {
	r, session := newTestRenderer(t, annotation.ModePoint)

	r.Tapped(&fyne.PointEvent{Position: fyne.NewPos(200, 200)})
	points := session.Points()
	require.Len(t, points, 1)
	assert.InDelta(t, 0, points[0].Position.Z, 1e-9)

	// corner of the widget looks past the plate
	r.Tapped(&fyne.PointEvent{Position: fyne.NewPos(0, 0)})
	assert.Len(t, session.Points(), 1)
}

func TestModelRendererLineGesture(t *testing.T) {
	r, session := newTestRenderer(t, annotation.ModeLine)

	r.Tapped(&fyne.PointEvent{Position: fyne.NewPos(190, 200)})
	r.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(210, 205)}})
	_, ok := session.Preview()
	assert.True(t, ok)

	r.Tapped(&fyne.PointEvent{Position: fyne.NewPos(210, 205)})
	r.DoubleTapped(&fyne.PointEvent{Position: fyne.NewPos(210, 205)})

	require.Len(t, session.Lines(), 1)
	assert.Greater(t, session.Lines()[0].Length(), 0.0)

	r.MouseOut()
	_, ok = session.Preview()
	assert.False(t, ok)
}

func TestModelRendererKeys(t *testing.T) {
	r, session := newTestRenderer(t, annotation.ModePolygon)

	r.Tapped(&fyne.PointEvent{Position: fyne.NewPos(190, 190)})
	r.Tapped(&fyne.PointEvent{Position: fyne.NewPos(210, 190)})
	r.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.Empty(t, session.InProgress())

	for _, pos := range []fyne.Position{fyne.NewPos(190, 190), fyne.NewPos(210, 190), fyne.NewPos(200, 210)} {
		r.Tapped(&fyne.PointEvent{Position: pos})
	}
	r.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Len(t, session.Polygons(), 1)
}

func TestModelRendererCameraGestures(t *testing.T) {
	r, _ := newTestRenderer(t, annotation.ModePoint)
	before := r.Camera()

	r.Dragged(&fyne.DragEvent{Dragged: fyne.NewDelta(10, 0)})
	r.DragEnd()
	assert.InDelta(t, before.RotationY+0.1, r.Camera().RotationY, 1e-6)

	r.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -100)})
	assert.Greater(t, r.Camera().Distance, before.Distance)
}

func TestModelRendererStopsAfterClose(t *testing.T) {
	r, session := newTestRenderer(t, annotation.ModePoint)
	r.Close()
	session.Pick(plateModel().Triangles[0].V1)
	assert.True(t, r.overlay.Empty())
}

func TestModelRendererLight(t *testing.T) {
	r, _ := newTestRenderer(t, annotation.ModePoint)
	assert.Equal(t, DefaultLight, r.Light())

	dim := Light{Intensity: 0.2, Color: DefaultLight.Color}
	require.NoError(t, r.SetLight(dim))
	assert.Equal(t, dim, r.Light())

	err := r.SetLight(Light{Intensity: 9})
	assert.ErrorIs(t, err, ErrInvalidLight)
	assert.Equal(t, dim, r.Light())

	img := r.draw(64, 64).(*image.RGBA)
	assert.Less(t, img.RGBAAt(32, 32).R, uint8(120))
}
