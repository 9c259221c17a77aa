package main

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/meshnote/pkg/geometry"
	"github.com/philipparndt/meshnote/pkg/stl"
	"github.com/philipparndt/meshnote/pkg/viewer"
)

var (
	meshColor      = color.RGBA{R: 100, G: 120, B: 200, A: 255}
	wireframeColor = rl.NewColor(100, 100, 100, 200)
)

// lightDirection is fixed in world space since colors are baked per vertex
var lightDirection = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

// bakeColors returns RGBA bytes for every vertex of model, three per
// triangle, shaded by light
func bakeColors(model *stl.Model, light viewer.Light) []uint8 {
	colors := make([]uint8, len(model.Triangles)*3*4)
	for i, tri := range model.Triangles {
		c := light.Shade(meshColor, math.Abs(tri.CalculateNormal().Dot(lightDirection)))
		for v := 0; v < 3; v++ {
			at := (i*3 + v) * 4
			colors[at+0] = c.R
			colors[at+1] = c.G
			colors[at+2] = c.B
			colors[at+3] = c.A
		}
	}
	return colors
}

// toRaylibMesh converts model into an uploaded mesh with baked lighting
func toRaylibMesh(model *stl.Model, light viewer.Light) rl.Mesh {
	triangleCount := len(model.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := bakeColors(model, light)

	idx := 0
	for _, tri := range model.Triangles {
		normal := tri.CalculateNormal()
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			idx++
		}
	}

	if vertexCount > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	rl.UploadMesh(&mesh, false)
	return mesh
}

// rebuildMesh uploads the current model with the current light
func (app *App) rebuildMesh() {
	app.unloadMesh()
	if app.Model.model.TriangleCount() == 0 {
		return
	}
	app.Model.mesh = toRaylibMesh(app.Model.model, app.View.light)
	app.Model.uploaded = true
}

func (app *App) unloadMesh() {
	if app.Model.uploaded {
		rl.UnloadMesh(&app.Model.mesh)
		app.Model.mesh = rl.Mesh{}
		app.Model.uploaded = false
	}
}

// drawWireframe draws every distinct model edge once
func (app *App) drawWireframe() {
	for _, e := range app.Model.result.Edges {
		rl.DrawLine3D(toRaylib(e.Start), toRaylib(e.End), wireframeColor)
	}
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromRaylib(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}
