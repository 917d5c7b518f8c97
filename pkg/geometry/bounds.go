package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB creates an empty bounding box that any point will extend
func NewAABB() AABB {
	return AABB{
		Min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Empty reports whether no point has been added yet
func (b AABB) Empty() bool {
	return b.Min.X() > b.Max.X()
}

// Extend expands the bounding box to include a point
func (b *AABB) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union returns a box enclosing both boxes
func (b AABB) Union(other AABB) AABB {
	if other.Empty() {
		return b
	}
	out := b
	out.Extend(other.Min)
	out.Extend(other.Max)
	return out
}

// Size returns the dimensions of the bounding box
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the bounding box diagonal
func (b AABB) Diagonal() float32 {
	return b.Size().Len()
}

// Volume returns the volume of the bounding box
func (b AABB) Volume() float32 {
	s := b.Size()
	return s.X() * s.Y() * s.Z()
}

// Contains reports whether p lies inside the box (inclusive)
func (b AABB) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}
