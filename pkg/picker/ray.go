package picker

import (
	"math"

	"github.com/philipparndt/meshnote/pkg/geometry"
)

// Ray is a half-line starting at Origin. Direction is unit length when the
// ray was built with NewRay.
type Ray struct {
	Origin    geometry.Vector3
	Direction geometry.Vector3
}

// NewRay creates a ray with a normalized direction
func NewRay(origin, direction geometry.Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) geometry.Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// DistanceToPoint returns the distance from the ray to a point. Points behind
// the origin are measured to the origin.
func (r Ray) DistanceToPoint(point geometry.Vector3) float64 {
	t := point.Sub(r.Origin).Dot(r.Direction)
	if t < 0 {
		t = 0
	}
	return point.Distance(r.At(t))
}

// inverseDirection returns the reciprocal direction used by slab tests
func (r Ray) inverseDirection() geometry.Vector3 {
	inv := func(v float64) float64 {
		if v == 0 {
			return math.Inf(1)
		}
		return 1 / v
	}
	return geometry.NewVector3(inv(r.Direction.X), inv(r.Direction.Y), inv(r.Direction.Z))
}
