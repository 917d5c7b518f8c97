package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
)

// Camera is a perspective camera looking at a target point
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32 // vertical field of view in degrees
	Near     float32
	Far      float32
	Width    int
	Height   int
}

// NewCamera creates a camera at position looking at target
func NewCamera(position, target mgl32.Vec3, fovY, near, far float32, width, height int) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     fovY,
		Near:     near,
		Far:      far,
		Width:    width,
		Height:   height,
	}
}

// SetSize updates the viewport size and therefore the aspect ratio
func (c *Camera) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Width = width
	c.Height = height
}

// Aspect returns width / height
func (c *Camera) Aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// LookAt points the camera at target
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// Distance returns the distance between camera and target
func (c *Camera) Distance() float32 {
	return c.Target.Sub(c.Position).Len()
}

// ViewMatrix returns the world to camera transform
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect(), c.Near, c.Far)
}

// ViewProjection returns projection * view
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Project projects a world point to pixel coordinates. The returned depth is
// the NDC z in [-1, 1]; ok is false for points behind the camera.
func (c *Camera) Project(point mgl32.Vec3) (x, y, depth float32, ok bool) {
	clip := c.ViewProjection().Mul4x1(point.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * float32(c.Width)
	y = (1 - ndc.Y()) / 2 * float32(c.Height)
	return x, y, ndc.Z(), true
}

// NDC converts pixel coordinates to normalized device coordinates
func (c *Camera) NDC(px, py float32) (float32, float32) {
	return px/float32(c.Width)*2 - 1, -(py/float32(c.Height))*2 + 1
}

// Ray returns the pick ray through the pixel (px, py)
func (c *Camera) Ray(px, py float32) geometry.Ray {
	nx, ny := c.NDC(px, py)
	inv := c.ViewProjection().Inv()

	near := unprojectNDC(inv, mgl32.Vec3{nx, ny, -1})
	far := unprojectNDC(inv, mgl32.Vec3{nx, ny, 1})
	return geometry.NewRay(c.Position, far.Sub(near))
}

func unprojectNDC(inv mgl32.Mat4, ndc mgl32.Vec3) mgl32.Vec3 {
	v := inv.Mul4x1(ndc.Vec4(1))
	if math.Abs(float64(v.W())) < 1e-12 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}
