package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/meshnote/pkg/geometry"
	"github.com/philipparndt/meshnote/pkg/picker"
)

// Camera is an orbit camera looking at Target from Distance
type Camera struct {
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Field of view in radians
	Distance  float64
	RotationX float64 // Pitch, clamped short of the poles
	RotationY float64 // Yaw around the up axis
}

// NewCamera creates a camera framing a bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance <= 0 {
		distance = 1
	}

	return &Camera{
		Target:    bbox.Center(),
		Up:        geometry.NewVector3(0, 1, 0),
		FOV:       math.Pi / 4, // 45 degrees
		Distance:  distance,
		RotationX: 0.4,
		RotationY: 0.6,
	}
}

// Position returns the eye position derived from the orbit angles
func (c *Camera) Position() geometry.Vector3 {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)
	return c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	c.RotationX = math.Max(-maxAngle, math.Min(maxAngle, c.RotationX))
}

// Zoom scales the camera distance by 1+delta
func (c *Camera) Zoom(delta float64) {
	c.Distance *= 1.0 + delta
	if c.Distance < 1e-3 {
		c.Distance = 1e-3
	}
}

// Near and Far return the clip planes, scaled with the orbit distance
func (c *Camera) Near() float64 { return c.Distance / 100 }
func (c *Camera) Far() float64  { return c.Distance * 100 }

// ViewProjection returns projection * view for a viewport aspect ratio
func (c *Camera) ViewProjection(width, height float64) mgl64.Mat4 {
	view := mgl64.LookAtV(toVec3(c.Position()), toVec3(c.Target), toVec3(c.Up))
	projection := mgl64.Perspective(c.FOV, width/height, c.Near(), c.Far())
	return projection.Mul4(view)
}

// Project maps a world point to pixel coordinates. depth is the distance
// along the view axis; points with depth <= Near are behind the camera.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64) {
	clip := c.ViewProjection(width, height).Mul4x1(mgl64.Vec4{point.X, point.Y, point.Z, 1})
	depth = clip.W()
	if depth <= 0 {
		return 0, 0, depth
	}
	ndcX := clip.X() / depth
	ndcY := clip.Y() / depth
	return (ndcX + 1) / 2 * width, (1 - ndcY) / 2 * height, depth
}

// Unproject returns the pick ray through a pixel
func (c *Camera) Unproject(screenX, screenY, width, height float64) picker.Ray {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	inv := c.ViewProjection(width, height).Inv()
	far := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})
	farPoint := geometry.NewVector3(far.X()/far.W(), far.Y()/far.W(), far.Z()/far.W())

	eye := c.Position()
	return picker.NewRay(eye, farPoint.Sub(eye))
}

func toVec3(v geometry.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
