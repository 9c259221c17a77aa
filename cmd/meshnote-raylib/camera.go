package main

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/meshnote/pkg/geometry"
)

const (
	defaultAngle  = 0.3
	maxElevation  = 1.5
	rotateSpeed   = 0.01
	zoomStep      = 0.1
	minZoomFactor = 0.01
)

// frame points the camera at box from twice its largest extent
func (c *CameraState) frame(box geometry.BoundingBox) {
	size := box.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim == 0 {
		maxDim = 1
	}
	c.center = toRaylib(box.Center())
	c.defaultDist = float32(maxDim * 2)
	c.camera = rl.Camera3D{
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	c.reset()
}

func (c *CameraState) reset() {
	c.distance = c.defaultDist
	c.angleX = defaultAngle
	c.angleY = defaultAngle
	c.target = c.center
}

// setView applies a preset; the target returns to the model center
func (c *CameraState) setView(angleX, angleY float32) {
	c.angleX = angleX
	c.angleY = angleY
	c.target = c.center
}

// rotate orbits by a mouse delta, clamping elevation short of the poles
func (c *CameraState) rotate(delta rl.Vector2) {
	c.angleY += delta.X * rotateSpeed
	c.angleX -= delta.Y * rotateSpeed
	c.angleX = rl.Clamp(c.angleX, -maxElevation, maxElevation)
}

// zoom moves toward the target for positive wheel values
func (c *CameraState) zoom(wheel float32) {
	c.distance *= 1 - wheel*zoomStep
	c.distance = max(c.distance, c.defaultDist*minZoomFactor)
}

func (c *CameraState) pan(delta rl.Vector2) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.target, c.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, c.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	speed := c.distance * 0.001
	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(right, -delta.X*speed))
	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(up, delta.Y*speed))
}

// update places the camera on its orbit around target
func (c *CameraState) update() {
	cosX := float32(math.Cos(float64(c.angleX)))
	c.camera.Position = rl.Vector3{
		X: c.target.X + c.distance*cosX*float32(math.Sin(float64(c.angleY))),
		Y: c.target.Y + c.distance*float32(math.Sin(float64(c.angleX))),
		Z: c.target.Z + c.distance*cosX*float32(math.Cos(float64(c.angleY))),
	}
	c.camera.Target = c.target
}

// inFront reports whether p lies in front of the camera; GetWorldToScreen
// mirrors points behind it onto the screen
func (c *CameraState) inFront(p geometry.Vector3) bool {
	forward := rl.Vector3Subtract(c.camera.Target, c.camera.Position)
	return rl.Vector3DotProduct(rl.Vector3Subtract(toRaylib(p), c.camera.Position), forward) > 0
}
