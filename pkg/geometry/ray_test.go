package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRayIntersectBox(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	dist, ok := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}).IntersectBox(box)
	assert.True(t, ok)
	assert.InDelta(t, 4.0, dist, 1e-5)

	dist, ok = NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}).IntersectBox(box)
	assert.True(t, ok, "origin inside the box")
	assert.Zero(t, dist)

	_, ok = NewRay(mgl32.Vec3{0, 3, 5}, mgl32.Vec3{0, 0, -1}).IntersectBox(box)
	assert.False(t, ok, "parallel ray outside the slab")

	_, ok = NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}).IntersectBox(box)
	assert.False(t, ok, "box behind the ray")
}

func TestRayTransformKeepsParameters(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	m := mgl32.Translate3D(0, 2, 0)

	moved := r.Transform(m)
	assert.True(t, moved.At(5).ApproxEqual(mgl32.Vec3{0, 2, 0}))
}

func TestAABB(t *testing.T) {
	box := NewAABB()
	assert.True(t, box.Empty())

	box.Extend(mgl32.Vec3{-1, 0, 2})
	box.Extend(mgl32.Vec3{3, 4, -2})
	assert.False(t, box.Empty())
	assert.Equal(t, mgl32.Vec3{4, 4, 4}, box.Size())
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, box.Center())
	assert.InDelta(t, 64.0, box.Volume(), 1e-5)
	assert.True(t, box.Contains(mgl32.Vec3{0, 1, 0}))
	assert.False(t, box.Contains(mgl32.Vec3{0, 5, 0}))
}
