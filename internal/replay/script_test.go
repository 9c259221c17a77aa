package replay

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/geometry"
	"github.com/philipparndt/meshnote/pkg/picker"
	"github.com/philipparndt/meshnote/pkg/stl"
)

func plate() picker.Picker {
	model := stl.NewModel("plate")
	a := geometry.NewVector3(-10, -10, 0)
	b := geometry.NewVector3(10, -10, 0)
	c := geometry.NewVector3(10, 10, 0)
	d := geometry.NewVector3(-10, 10, 0)
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, b, c))
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, c, d))
	return picker.NewMeshPicker(model)
}

func run(t *testing.T, src string) *annotation.Session {
	t.Helper()
	script, err := Parse([]byte(src))
	require.NoError(t, err)
	session := annotation.NewSession()
	require.NoError(t, script.Run(context.Background(), session, plate(), nil))
	return session
}

func TestLineScenario(t *testing.T) {
	s := run(t, `
mode: line
events:
  - pick: [0, 0, 0]
  - pick: [3, 4, 0]
  - finalize: true
`)
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.InDelta(t, 5.0, lines[0].Length(), 1e-12)
	assert.Empty(t, s.InProgress())
}

func TestPrematureFinalize(t *testing.T) {
	s := run(t, `
mode: line
events:
  - pick: [0, 0, 0]
  - finalize: true
`)
	assert.Empty(t, s.Lines())
	assert.Len(t, s.InProgress(), 1)
}

func TestPolygonWithRays(t *testing.T) {
	s := run(t, `
mode: polygon
drawColor: "#00ff00"
events:
  - pickRay: {origin: [0, 0, 5], direction: [0, 0, -1]}
  - pickRay: {origin: [2, 0, 5], direction: [0, 0, -1]}
  - pickRay: {origin: [50, 50, 5], direction: [0, 0, -1]}
  - hoverRay: {origin: [1, 1, 5], direction: [0, 0, -1]}
  - pickRay: {origin: [2, 2, 5], direction: [0, 0, -1]}
  - finalize: true
`)
	polygons := s.Polygons()
	require.Len(t, polygons, 1)
	assert.Len(t, polygons[0].Points, 3, "the missed ray adds nothing")
	assert.InDelta(t, 2.0, polygons[0].Area(), 1e-9)
	assert.Equal(t, uint8(255), polygons[0].Color.G)
	_, ok := s.Preview()
	assert.False(t, ok)
}

func TestModeSwitchAndColor(t *testing.T) {
	s := run(t, `
events:
  - pick: [1, 1, 1]
  - mode: line
  - pick: [0, 0, 0]
  - move: [1, 0, 0]
  - leave: true
  - mode: polygon
  - color: orange
  - mode: point
  - pick: [2, 2, 2]
  - cancel: true
`)
	points := s.Points()
	require.Len(t, points, 2)
	assert.Equal(t, annotation.DefaultDrawColor, points[0].Color)
	assert.Equal(t, annotation.InProgressColor, points[1].Color)
	assert.Empty(t, s.Lines())
	assert.Equal(t, annotation.ModePoint, s.Mode())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
		msg  string
	}{
		{"two actions", "events:\n  - pick: [0, 0, 0]\n    finalize: true\n", ErrInvalidEvent, "event 0"},
		{"no action", "events:\n  - finalize: true\n  - {}\n", ErrInvalidEvent, "event 1"},
		{"bad mode", "events:\n  - mode: circle\n", annotation.ErrUnknownMode, "event 0"},
		{"bad color", "events:\n  - pick: [0, 0, 0]\n  - color: nope\n", annotation.ErrInvalidColor, "event 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	_, err := Parse([]byte("events: [\n"))
	assert.Error(t, err)
}

func TestRunInvalidHeader(t *testing.T) {
	script, err := Parse([]byte("mode: hexagon\nevents: []\n"))
	require.NoError(t, err)
	err = script.Run(context.Background(), annotation.NewSession(), nil, nil)
	assert.ErrorIs(t, err, annotation.ErrUnknownMode)
}

func TestRunWithoutPicker(t *testing.T) {
	script, err := Parse([]byte("events:\n  - pickRay: {origin: [0, 0, 1], direction: [0, 0, -1]}\n"))
	require.NoError(t, err)
	err = script.Run(context.Background(), annotation.NewSession(), nil, nil)
	assert.ErrorIs(t, err, ErrNoPicker)
}

func TestRunCancelled(t *testing.T) {
	script, err := Parse([]byte("events:\n  - pick: [0, 0, 0]\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	session := annotation.NewSession()

	err = script.Run(ctx, session, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, session.Points())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: line\nevents:\n  - pick: [0, 0, 0]\n"), 0o644))

	script, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "line", script.Mode)
	assert.Len(t, script.Events, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
