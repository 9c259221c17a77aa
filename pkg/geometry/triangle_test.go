package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	lengths := tri.EdgeLengths()

	// Expected lengths: 3, 5, 4 (Pythagorean triple)
	if math.Abs(lengths[0]-3.0) > 1e-10 {
		t.Errorf("Edge 0 length failed: expected 3.0, got %v", lengths[0])
	}
	if math.Abs(lengths[1]-5.0) > 1e-10 {
		t.Errorf("Edge 1 length failed: expected 5.0, got %v", lengths[1])
	}
	if math.Abs(lengths[2]-4.0) > 1e-10 {
		t.Errorf("Edge 2 length failed: expected 4.0, got %v", lengths[2])
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleIntersectRay(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(4, 0, 0),
		NewVector3(0, 4, 0),
	)

	dist, ok := tri.IntersectRay(NewVector3(1, 1, 5), NewVector3(0, 0, -1))
	if !ok {
		t.Fatal("IntersectRay failed: expected a hit")
	}
	if math.Abs(dist-5.0) > 1e-10 {
		t.Errorf("IntersectRay distance failed: expected 5, got %v", dist)
	}

	// Back face is hit as well
	dist, ok = tri.IntersectRay(NewVector3(1, 1, -2), NewVector3(0, 0, 1))
	if !ok || math.Abs(dist-2.0) > 1e-10 {
		t.Errorf("IntersectRay from below failed: got %v, %v", dist, ok)
	}
}

func TestTriangleIntersectRayMiss(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(4, 0, 0),
		NewVector3(0, 4, 0),
	)

	cases := []struct {
		name        string
		origin, dir Vector3
	}{
		{"outside", NewVector3(5, 5, 5), NewVector3(0, 0, -1)},
		{"parallel", NewVector3(1, 1, 1), NewVector3(1, 0, 0)},
		{"behind", NewVector3(1, 1, 5), NewVector3(0, 0, 1)},
	}

	for _, tc := range cases {
		if _, ok := tri.IntersectRay(tc.origin, tc.dir); ok {
			t.Errorf("%s: expected no hit", tc.name)
		}
	}
}

func TestTriangleIntersectRayMicroscale(t *testing.T) {
	// sub-micrometre facets in a model measured in metres
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(5e-7, 0, 0),
		NewVector3(0, 5e-7, 0),
	)

	dist, ok := tri.IntersectRay(NewVector3(1e-7, 1e-7, 5e-7), NewVector3(0, 0, -1))
	if !ok {
		t.Fatal("IntersectRay failed: expected a hit on a tiny triangle")
	}
	if math.Abs(dist-5e-7) > 1e-18 {
		t.Errorf("IntersectRay distance failed: expected 5e-7, got %v", dist)
	}

	if _, ok := tri.IntersectRay(NewVector3(1e-7, 1e-7, 1e-7), NewVector3(1, 0, 0)); ok {
		t.Error("IntersectRay failed: parallel ray must miss")
	}
}

func TestTriangleCalculateNormal(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)

	if got := tri.CalculateNormal(); got != NewVector3(0, 0, 1) {
		t.Errorf("CalculateNormal failed: expected (0,0,1), got %v", got)
	}
}
