package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleSTL = `solid tri
facet normal 0 0 0
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
endsolid tri
`

func TestLoadSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.STL")
	require.NoError(t, os.WriteFile(path, []byte(triangleSTL), 0o644))

	src, err := Load(context.Background(), path, nil)
	require.NoError(t, err)

	assert.False(t, src.OpenSCAD)
	assert.Equal(t, []string{path}, src.Files)
	require.Equal(t, 1, src.Model.TriangleCount())
	assert.InDelta(t, 1, src.Model.Triangles[0].Normal.Z, 1e-12, "zero facet normals are recomputed")
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load(context.Background(), "model.obj", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.stl"), nil)
	assert.Error(t, err)
}
