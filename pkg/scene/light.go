package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// AmbientLight lights every surface equally
type AmbientLight struct {
	Color     color.RGBA
	Intensity float32
}

// PointLight emits from a position without falloff
type PointLight struct {
	Color     color.RGBA
	Intensity float32
	Position  mgl32.Vec3
}

// Lighting is the light setup of a scene
type Lighting struct {
	Ambient AmbientLight
	Point   PointLight
}

func colorVec(c color.RGBA) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// Shade returns the per-channel light factor for a surface point
func (l Lighting) Shade(position, normal mgl32.Vec3) mgl32.Vec3 {
	factor := colorVec(l.Ambient.Color).Mul(l.Ambient.Intensity)

	toLight := l.Point.Position.Sub(position)
	if toLight.Len() == 0 || normal.Len() == 0 {
		return factor
	}
	lambert := normal.Normalize().Dot(toLight.Normalize())
	if lambert > 0 {
		factor = factor.Add(colorVec(l.Point.Color).Mul(l.Point.Intensity * lambert))
	}
	return factor
}

// Apply multiplies a base color by a light factor, saturating each channel
func Apply(base color.RGBA, factor mgl32.Vec3) color.RGBA {
	ch := func(v uint8, f float32) uint8 {
		out := float32(v) * f
		if out > 255 {
			return 255
		}
		if out < 0 {
			return 0
		}
		return uint8(out + 0.5)
	}
	return color.RGBA{
		R: ch(base.R, factor.X()),
		G: ch(base.G, factor.Y()),
		B: ch(base.B, factor.Z()),
		A: base.A,
	}
}
