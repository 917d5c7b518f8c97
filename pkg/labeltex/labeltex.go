// Package labeltex rasterizes short labels into square RGBA textures with
// outlined lettering, ready to be mapped onto a decal.
package labeltex

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Options controls label rendering
type Options struct {
	Size        int     // edge length of the square texture in pixels
	FontSize    float64 // in pixels
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
	Background  color.RGBA
}

// DefaultOptions returns white 48px bold text with a 4px black outline on a
// transparent 128x128 texture.
func DefaultOptions() Options {
	return Options{
		Size:        128,
		FontSize:    48,
		Fill:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Stroke:      color.RGBA{A: 255},
		StrokeWidth: 4,
	}
}

var (
	parseOnce  sync.Once
	parsedFont *sfnt.Font
	parseErr   error

	facesMu sync.Mutex
	faces   = make(map[float64]font.Face)
)

func face(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsedFont, parseErr = opentype.Parse(gobold.TTF)
	})
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", parseErr)
	}

	facesMu.Lock()
	defer facesMu.Unlock()

	if f, ok := faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label font face: %w", err)
	}
	faces[size] = f
	return f, nil
}

// Render draws text centered on a new square image
func Render(text string, opts Options) (*image.RGBA, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid texture size %d", opts.Size)
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	if opts.Background.A > 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	if text == "" {
		return img, nil
	}

	f, err := face(opts.FontSize)
	if err != nil {
		return nil, err
	}

	// Center on the advance width and the ascent/descent box
	advance := font.MeasureString(f, text)
	metrics := f.Metrics()
	size := fixed.I(opts.Size)
	origin := fixed.Point26_6{
		X: (size - advance) / 2,
		Y: (size + metrics.Ascent - metrics.Descent) / 2,
	}

	if opts.StrokeWidth > 0 && opts.Stroke.A > 0 {
		stroke := &font.Drawer{Dst: img, Src: image.NewUniform(opts.Stroke), Face: f}
		for _, off := range discOffsets(opts.StrokeWidth / 2) {
			stroke.Dot = origin.Add(off)
			stroke.DrawString(text)
		}
	}

	fill := &font.Drawer{Dst: img, Src: image.NewUniform(opts.Fill), Face: f, Dot: origin}
	fill.DrawString(text)

	return img, nil
}

// MustRender is Render for callers that only use valid options
func MustRender(text string, opts Options) *image.RGBA {
	img, err := Render(text, opts)
	if err != nil {
		panic(err)
	}
	return img
}

// discOffsets returns integer pixel offsets inside a disc, origin excluded
func discOffsets(radius float64) []fixed.Point26_6 {
	r := int(math.Ceil(radius))
	var out []fixed.Point26_6
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if float64(dx*dx+dy*dy) <= radius*radius {
				out = append(out, fixed.P(dx, dy))
			}
		}
	}
	return out
}
