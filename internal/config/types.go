package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/internal/probe"
	"gopkg.in/yaml.v3"
)

// Color is an RGBA color written as "#rrggbb" or "#rrggbbaa"
type Color color.RGBA

// ParseColor parses "#rrggbb", "#rrggbbaa", "0xrrggbb" or "rrggbb"
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustColor is ParseColor for literals
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Std returns the color as image/color RGBA
func (c Color) Std() color.RGBA {
	return color.RGBA(c)
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: color must be a string: %w", value.Line, err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// Vec3 is a point written as a three element list
type Vec3 [3]float32

// Mgl returns the vector as mgl32.Vec3
func (v Vec3) Mgl() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var list []float32
	if err := value.Decode(&list); err != nil {
		return fmt.Errorf("line %d: vector must be a list: %w", value.Line, err)
	}
	if len(list) != 3 {
		return fmt.Errorf("line %d: vector needs 3 components, got %d", value.Line, len(list))
	}
	copy(v[:], list)
	return nil
}

func (v Vec3) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range v {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(float64(f), 'g', -1, 32),
		})
	}
	return node, nil
}

// PaletteSpec is either a preset name or an explicit list of colors
type PaletteSpec struct {
	Preset string
	Colors []string
}

func (p *PaletteSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = PaletteSpec{Preset: value.Value}
		return nil
	case yaml.SequenceNode:
		var colors []string
		if err := value.Decode(&colors); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*p = PaletteSpec{Colors: colors}
		return nil
	default:
		return fmt.Errorf("line %d: palette must be a preset name or a list of colors", value.Line)
	}
}

func (p PaletteSpec) MarshalYAML() (any, error) {
	if len(p.Colors) > 0 {
		node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, c := range p.Colors {
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: c})
		}
		return node, nil
	}
	return p.Preset, nil
}

// Palette resolves the spec
func (p PaletteSpec) Palette() (probe.Palette, error) {
	if p.Colors != nil {
		return probe.ParsePalette(p.Colors)
	}
	return probe.PalettePreset(p.Preset)
}
