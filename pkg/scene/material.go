package scene

import (
	"image"
	"image/color"
)

// Material describes how a mesh is shaded
type Material struct {
	Color       color.RGBA
	Opacity     float32
	Transparent bool
	DepthWrite  bool
	DepthTest   bool
	DoubleSided bool
	// Unlit materials ignore scene lights
	Unlit   bool
	Texture *image.RGBA

	// Version is bumped whenever the color changes so renderers can refresh
	Version int
}

// NewStandardMaterial creates an opaque lit material
func NewStandardMaterial(c color.RGBA) *Material {
	return &Material{
		Color:      c,
		Opacity:    1,
		DepthWrite: true,
		DepthTest:  true,
	}
}

// NewTranslucentMaterial creates a lit material that does not write depth
func NewTranslucentMaterial(c color.RGBA, opacity float32) *Material {
	return &Material{
		Color:       c,
		Opacity:     opacity,
		Transparent: true,
		DepthWrite:  false,
		DepthTest:   true,
	}
}

// NewDecalMaterial creates an unlit textured material drawn on top of everything
func NewDecalMaterial(tex *image.RGBA) *Material {
	return &Material{
		Color:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Opacity:     1,
		Transparent: true,
		DepthWrite:  false,
		DepthTest:   false,
		Unlit:       true,
		Texture:     tex,
	}
}

// SetColor changes the base color
func (m *Material) SetColor(c color.RGBA) {
	if m.Color == c {
		return
	}
	m.Color = c
	m.Version++
}

// Alpha returns the opacity as an 8-bit alpha value
func (m *Material) Alpha() uint8 {
	o := m.Opacity
	if o < 0 {
		o = 0
	}
	if o > 1 {
		o = 1
	}
	return uint8(o*255 + 0.5)
}
