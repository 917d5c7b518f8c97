package probe

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// FillColor is the display state of a segment
type FillColor int

const (
	Neutral FillColor = iota
	Blue
	Red
)

// AllFillColors lists every fill color in declaration order
var AllFillColors = []FillColor{Neutral, Blue, Red}

// RGBA returns the display color
func (c FillColor) RGBA() color.RGBA {
	switch c {
	case Neutral:
		return color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	case Blue:
		return color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	case Red:
		return color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	default:
		panic(fmt.Sprintf("unknown fill color %d", int(c)))
	}
}

func (c FillColor) String() string {
	switch c {
	case Neutral:
		return "neutral"
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("FillColor(%d)", int(c))
	}
}

// ParseFillColor parses a color name as produced by String
func ParseFillColor(s string) (FillColor, error) {
	for _, c := range AllFillColors {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}
	return Neutral, fmt.Errorf("unknown fill color %q", s)
}

// Palette is the ordered cycle of colors a segment steps through on click
type Palette struct {
	colors []FillColor
}

// Preset names
const (
	PresetTriState = "tri-state"
	PresetToggle   = "toggle"
)

// NewPalette creates a palette from a non-empty list without duplicates
func NewPalette(colors ...FillColor) (Palette, error) {
	if len(colors) == 0 {
		return Palette{}, errors.New("palette is empty")
	}
	seen := make(map[FillColor]bool, len(colors))
	for _, c := range colors {
		if c < Neutral || c > Red {
			return Palette{}, fmt.Errorf("palette: unknown fill color %d", int(c))
		}
		if seen[c] {
			return Palette{}, fmt.Errorf("palette: duplicate color %s", c)
		}
		seen[c] = true
	}
	return Palette{colors: append([]FillColor(nil), colors...)}, nil
}

// TriState cycles neutral, blue, red
func TriState() Palette {
	return Palette{colors: []FillColor{Neutral, Blue, Red}}
}

// Toggle alternates between blue and red
func Toggle() Palette {
	return Palette{colors: []FillColor{Blue, Red}}
}

// PalettePreset returns a named palette
func PalettePreset(name string) (Palette, error) {
	switch name {
	case PresetTriState, "":
		return TriState(), nil
	case PresetToggle:
		return Toggle(), nil
	default:
		return Palette{}, fmt.Errorf("unknown palette preset %q", name)
	}
}

// ParsePalette builds a palette from color names
func ParsePalette(names []string) (Palette, error) {
	colors := make([]FillColor, 0, len(names))
	for _, n := range names {
		c, err := ParseFillColor(n)
		if err != nil {
			return Palette{}, err
		}
		colors = append(colors, c)
	}
	return NewPalette(colors...)
}

// Len returns the cycle period
func (p Palette) Len() int {
	return len(p.colors)
}

// Colors returns a copy of the cycle
func (p Palette) Colors() []FillColor {
	return append([]FillColor(nil), p.colors...)
}

// Default returns the initial color of every segment
func (p Palette) Default() FillColor {
	if len(p.colors) == 0 {
		return Neutral
	}
	return p.colors[0]
}

// Next returns the color following c. A color outside the palette restarts
// the cycle at the default.
func (p Palette) Next(c FillColor) FillColor {
	for i, pc := range p.colors {
		if pc == c {
			return p.colors[(i+1)%len(p.colors)]
		}
	}
	return p.Default()
}

// Contains reports whether c is part of the cycle
func (p Palette) Contains(c FillColor) bool {
	for _, pc := range p.colors {
		if pc == c {
			return true
		}
	}
	return false
}

func (p Palette) String() string {
	names := make([]string, len(p.colors))
	for i, c := range p.colors {
		names[i] = c.String()
	}
	return strings.Join(names, " -> ")
}
