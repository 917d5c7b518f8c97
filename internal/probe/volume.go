package probe

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
	"github.com/philipparndt/probeview/pkg/scene"
)

// VolumeOptions describes the translucent target region
type VolumeOptions struct {
	RadiusTop      float32
	RadiusBottom   float32
	Height         float32
	RadialSegments int
	Color          color.RGBA
	Opacity        float32
	Y              float32
	RenderOrder    int
}

// DefaultVolumeOptions returns a slightly tapered green cylinder below the probe
func DefaultVolumeOptions() VolumeOptions {
	return VolumeOptions{
		RadiusTop:      4.2,
		RadiusBottom:   4,
		Height:         3,
		RadialSegments: 128,
		Color:          color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff},
		Opacity:        0.1,
		Y:              -10,
		RenderOrder:    1,
	}
}

// NewTargetVolume builds the static, non-interactive volume node
func NewTargetVolume(opts VolumeOptions) *scene.Node {
	mesh := geometry.Cylinder(geometry.CylinderOptions{
		RadiusTop:      opts.RadiusTop,
		RadiusBottom:   opts.RadiusBottom,
		Height:         opts.Height,
		RadialSegments: opts.RadialSegments,
	})
	node := scene.NewMeshNode("target-volume", mesh, scene.NewTranslucentMaterial(opts.Color, opts.Opacity))
	node.Position = mgl32.Vec3{0, opts.Y, 0}
	node.RenderOrder = opts.RenderOrder
	return node
}
