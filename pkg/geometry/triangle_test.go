package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func rightTriangle() Triangle {
	return NewTriangle(
		mgl32.Vec3{0, 0, 1},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{3, 0, 0},
		mgl32.Vec3{0, 4, 0},
	)
}

func TestTriangleArea(t *testing.T) {
	area := rightTriangle().Area()
	expected := float32(6.0) // (3 * 4) / 2 = 6

	if math.Abs(float64(area-expected)) > 1e-6 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	lengths := rightTriangle().EdgeLengths()

	// Expected lengths: 3, 5, 4 (Pythagorean triple)
	expected := [3]float32{3, 5, 4}
	for i := range expected {
		if math.Abs(float64(lengths[i]-expected[i])) > 1e-6 {
			t.Errorf("Edge %d length failed: expected %v, got %v", i, expected[i], lengths[i])
		}
	}
}

func TestTrianglePerimeter(t *testing.T) {
	perimeter := rightTriangle().Perimeter()
	expected := float32(12.0)

	if math.Abs(float64(perimeter-expected)) > 1e-6 {
		t.Errorf("Perimeter failed: expected %v, got %v", expected, perimeter)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		mgl32.Vec3{0, 0, 1},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{3, 0, 0},
		mgl32.Vec3{0, 3, 0},
	)

	center := tri.Center()
	expected := mgl32.Vec3{1, 1, 0}

	if !center.ApproxEqual(expected) {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleCalculateNormal(t *testing.T) {
	normal := rightTriangle().CalculateNormal()
	if !normal.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Normal failed: expected +Z, got %v", normal)
	}
}

func TestTriangleIntersect(t *testing.T) {
	tri := rightTriangle()

	front := NewRay(mgl32.Vec3{0.5, 0.5, 5}, mgl32.Vec3{0, 0, -1})
	dist, ok := tri.Intersect(front)
	if !ok || math.Abs(float64(dist-5)) > 1e-5 {
		t.Errorf("expected hit at 5, got %v (hit=%v)", dist, ok)
	}

	// Double sided: a ray from behind hits as well
	back := NewRay(mgl32.Vec3{0.5, 0.5, -2}, mgl32.Vec3{0, 0, 1})
	if _, ok := tri.Intersect(back); !ok {
		t.Error("expected back-side hit")
	}

	miss := NewRay(mgl32.Vec3{3, 3, 5}, mgl32.Vec3{0, 0, -1})
	if _, ok := tri.Intersect(miss); ok {
		t.Error("expected miss outside the triangle")
	}

	away := NewRay(mgl32.Vec3{0.5, 0.5, 5}, mgl32.Vec3{0, 0, 1})
	if _, ok := tri.Intersect(away); ok {
		t.Error("expected miss for ray pointing away")
	}
}
