package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line with a normalized direction
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction mgl32.Vec3) Ray {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform maps the ray through an affine matrix. The direction is not
// renormalized so that parameters stay comparable with the source space.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    mgl32.TransformCoordinate(r.Origin, m),
		Direction: mgl32.TransformNormal(r.Direction, m),
	}
}

// IntersectBox performs a slab test and returns the entry parameter.
// A ray starting inside the box reports t = 0.
func (r Ray) IntersectBox(b AABB) (float32, bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for i := 0; i < 3; i++ {
		if r.Direction[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Direction[i]
		t1 := (b.Min[i] - r.Origin[i]) * inv
		t2 := (b.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}
