package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxSize(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(10, 20, 30))

	size := bbox.Size()
	expected := NewVector3(10, 20, 30)

	if size != expected {
		t.Errorf("Size failed: expected %v, got %v", expected, size)
	}
}

func TestBoundingBoxCenter(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(10, 20, 30))

	center := bbox.Center()
	expected := NewVector3(5, 10, 15)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestBoundingBoxVolume(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(2, 3, 4))

	volume := bbox.Volume()
	expected := 24.0 // 2 * 3 * 4 = 24

	if math.Abs(volume-expected) > 1e-10 {
		t.Errorf("Volume failed: expected %v, got %v", expected, volume)
	}
}

func TestBoundingBoxLongestAxis(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(1, 5, 2))

	if axis := bbox.LongestAxis(); axis != 1 {
		t.Errorf("LongestAxis failed: expected 1, got %d", axis)
	}
}

func TestBoundingBoxIsEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Error("IsEmpty failed: new box should be empty")
	}
	bbox.Extend(NewVector3(1, 1, 1))
	if bbox.IsEmpty() {
		t.Error("IsEmpty failed: box with a point should not be empty")
	}
}

func TestBoundingBoxIntersectRay(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(-1, -1, -1))
	bbox.Extend(NewVector3(1, 1, 1))

	inv := func(d Vector3) Vector3 { return NewVector3(1/d.X, 1/d.Y, 1/d.Z) }

	tMin, tMax, ok := bbox.IntersectRay(NewVector3(0, 0, 5), inv(NewVector3(0, 0, -1)))
	if !ok {
		t.Fatal("IntersectRay failed: expected a hit")
	}
	if math.Abs(tMin-4) > 1e-10 || math.Abs(tMax-6) > 1e-10 {
		t.Errorf("IntersectRay failed: expected [4, 6], got [%v, %v]", tMin, tMax)
	}

	if _, _, ok := bbox.IntersectRay(NewVector3(3, 0, 5), inv(NewVector3(0, 0, -1))); ok {
		t.Error("IntersectRay failed: ray beside the box should miss")
	}

	if _, _, ok := bbox.IntersectRay(NewVector3(0, 0, 5), inv(NewVector3(0, 0, 1))); ok {
		t.Error("IntersectRay failed: box behind the ray should miss")
	}
}
