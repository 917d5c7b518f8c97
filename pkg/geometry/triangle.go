package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     mgl32.Vec3
	V1, V2, V3 mgl32.Vec3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 mgl32.Vec3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the normal vector for the triangle from its winding
func (t Triangle) CalculateNormal() mgl32.Vec3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	n := edge1.Cross(edge2)
	if n.Len() == 0 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float32 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Len() / 2.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float32 {
	return [3]float32{
		t.V2.Sub(t.V1).Len(),
		t.V3.Sub(t.V2).Len(),
		t.V1.Sub(t.V3).Len(),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float32 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() mgl32.Vec3 {
	return t.V1.Add(t.V2).Add(t.V3).Mul(1.0 / 3.0)
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// triangle and the origin. Summed over a closed mesh it gives the enclosed volume.
func (t Triangle) SignedVolume() float32 {
	return t.V1.Dot(t.V2.Cross(t.V3)) / 6.0
}

// Intersect tests the ray against the triangle from both sides using the
// Möller–Trumbore algorithm and returns the ray parameter of the hit.
func (t Triangle) Intersect(r Ray) (float32, bool) {
	const epsilon = 1e-7

	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if float32(math.Abs(float64(det))) < epsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(t.V1)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(q) * inv
	if dist <= epsilon {
		return 0, false
	}
	return dist, true
}
