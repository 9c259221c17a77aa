package picker

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshnote/pkg/geometry"
	"github.com/philipparndt/meshnote/pkg/stl"
)

// addQuad adds the square [0,size]x[0,size] at height z as two triangles
func addQuad(model *stl.Model, offsetX, offsetY, size, z float64) {
	v := func(x, y float64) geometry.Vector3 {
		return geometry.NewVector3(offsetX+x, offsetY+y, z)
	}
	up := geometry.NewVector3(0, 0, 1)
	model.AddTriangle(geometry.NewTriangle(up, v(0, 0), v(size, 0), v(size, size)))
	model.AddTriangle(geometry.NewTriangle(up, v(0, 0), v(size, size), v(0, size)))
}

// gridModel builds an n x n grid of unit quads with a sine height field
func gridModel(n int) *stl.Model {
	model := stl.NewModel("grid")
	height := func(x, y float64) float64 { return math.Sin(x*0.7) * math.Cos(y*0.4) }
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x, y := float64(i), float64(j)
			a := geometry.NewVector3(x, y, height(x, y))
			b := geometry.NewVector3(x+1, y, height(x+1, y))
			c := geometry.NewVector3(x+1, y+1, height(x+1, y+1))
			d := geometry.NewVector3(x, y+1, height(x, y+1))
			model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, b, c))
			model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, c, d))
		}
	}
	return model
}

func TestMeshPickerNearestHit(t *testing.T) {
	model := stl.NewModel("stack")
	addQuad(model, 0, 0, 2, 0)
	addQuad(model, 0, 0, 2, 1)
	p := NewMeshPicker(model)

	hit, ok := p.Pick(NewRay(geometry.NewVector3(1, 0.5, 5), geometry.NewVector3(0, 0, -1)))
	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.Distance, 1e-9)
	assert.True(t, hit.Point.ApproxEqual(geometry.NewVector3(1, 0.5, 1), 1e-9), "point %v", hit.Point)
	assert.GreaterOrEqual(t, hit.Triangle, 2, "upper quad triangles come second")
	assert.Equal(t, geometry.NewVector3(0, 0, 1), hit.Normal)

	// From below the lower quad is nearest and the normal flips toward the ray
	hit, ok = p.Pick(NewRay(geometry.NewVector3(1, 0.5, -3), geometry.NewVector3(0, 0, 1)))
	require.True(t, ok)
	assert.InDelta(t, 3.0, hit.Distance, 1e-9)
	assert.Equal(t, geometry.NewVector3(0, 0, -1), hit.Normal)
}

func TestMeshPickerMiss(t *testing.T) {
	model := stl.NewModel("quad")
	addQuad(model, 0, 0, 2, 0)
	p := NewMeshPicker(model)

	_, ok := p.Pick(NewRay(geometry.NewVector3(5, 5, 5), geometry.NewVector3(0, 0, -1)))
	assert.False(t, ok)

	_, ok = p.Pick(NewRay(geometry.NewVector3(1, 1, 5), geometry.NewVector3(0, 0, 1)))
	assert.False(t, ok, "surface behind the ray must not be hit")

	_, ok = p.Pick(Ray{Origin: geometry.NewVector3(1, 1, 5)})
	assert.False(t, ok, "zero direction never hits")
}

func TestMeshPickerEmptyModel(t *testing.T) {
	p := NewMeshPicker(stl.NewModel("empty"))

	_, ok := p.Pick(NewRay(geometry.Vector3{}, geometry.NewVector3(0, 0, 1)))
	assert.False(t, ok)
	assert.Equal(t, Stats{}, p.Stats())
}

func TestMeshPickerMatchesBruteForce(t *testing.T) {
	model := gridModel(12)
	fast := NewMeshPicker(model)
	slow := BruteForcePicker{Triangles: model.Triangles}

	stats := fast.Stats()
	assert.Greater(t, stats.Leaves, 1)
	assert.Equal(t, 2*stats.Leaves-1, stats.Nodes)

	rng := rand.New(rand.NewSource(7))
	hits := 0
	for i := 0; i < 300; i++ {
		origin := geometry.NewVector3(rng.Float64()*16-2, rng.Float64()*16-2, 4+rng.Float64()*4)
		target := geometry.NewVector3(rng.Float64()*12, rng.Float64()*12, 0)
		ray := NewRay(origin, target.Sub(origin))

		want, wantOK := slow.Pick(ray)
		got, gotOK := fast.Pick(ray)
		require.Equal(t, wantOK, gotOK, "ray %d", i)
		if !wantOK {
			continue
		}
		hits++
		assert.InDelta(t, want.Distance, got.Distance, 1e-9, "ray %d", i)
		assert.True(t, want.Point.ApproxEqual(got.Point, 1e-9), "ray %d", i)
	}
	assert.Greater(t, hits, 100)
}

func TestRayDistanceToPoint(t *testing.T) {
	ray := NewRay(geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 0, 0))

	assert.Equal(t, geometry.NewVector3(1, 0, 0), ray.Direction)
	assert.InDelta(t, 3.0, ray.DistanceToPoint(geometry.NewVector3(5, 3, 0)), 1e-12)
	// Behind the origin the distance is to the origin
	assert.InDelta(t, 5.0, ray.DistanceToPoint(geometry.NewVector3(-3, 4, 0)), 1e-12)
}
