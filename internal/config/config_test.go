package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/probeview/internal/orbit"
	"github.com/philipparndt/probeview/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probeview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts, err := cfg.ProbeOptions()
	require.NoError(t, err)
	assert.Equal(t, probe.TriState().Colors(), opts.Palette.Colors())
	assert.Equal(t, probe.DefaultLabels(), opts.Labels)
	assert.Equal(t, float32(-4), opts.Assembly.InitialOffset)
	assert.Equal(t, uint8(0x57), opts.Background.R)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
debug: true
background: "#101010"
palette: toggle
labels:
  - {text: "1", slot: 0}
  - {text: "2A", gap: true, slot: 1}
camera:
  position: [0, -10, 30]
animation:
  enabled: true
controls:
  mouse:
    left: pan
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, MustColor("#101010"), cfg.Background)
	assert.Len(t, cfg.Labels, 2)
	assert.Equal(t, Vec3{0, -10, 30}, cfg.Camera.Position)
	assert.True(t, cfg.Animation.Enabled)
	assert.Equal(t, float32(-8), cfg.Animation.Lower, "unlisted keys keep defaults")

	palette, err := cfg.Palette.Palette()
	require.NoError(t, err)
	assert.Equal(t, 2, palette.Len())

	orbitOpts, err := cfg.OrbitOptions()
	require.NoError(t, err)
	assert.Equal(t, orbit.Pan, orbitOpts.Bindings.Left)
	assert.Equal(t, orbit.Dolly, orbitOpts.Bindings.Middle)

	assert.True(t, cfg.LoopOptions().Animation.Enabled)
}

func TestLoadExplicitPalette(t *testing.T) {
	cfg, err := Load(writeConfig(t, "palette: [red, neutral]\n"))
	require.NoError(t, err)

	palette, err := cfg.Palette.Palette()
	require.NoError(t, err)
	assert.Equal(t, []probe.FillColor{probe.Red, probe.Neutral}, palette.Colors())
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad color", "background: \"#12\"\n"},
		{"bad vector", "camera:\n  position: [1, 2]\n"},
		{"bad palette node", "palette: {a: b}\n"},
		{"not yaml", "labels: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }},
		{"fps", func(c *Config) { c.Window.TargetFPS = 0 }},
		{"fov", func(c *Config) { c.Camera.Fov = 180 }},
		{"clip planes", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"camera on target", func(c *Config) { c.Camera.Position = c.Camera.Target }},
		{"no labels", func(c *Config) { c.Labels = nil }},
		{"empty label", func(c *Config) { c.Labels[0].Text = "" }},
		{"duplicate slot", func(c *Config) { c.Labels[1].Slot = c.Labels[0].Slot }},
		{"empty palette", func(c *Config) { c.Palette = PaletteSpec{Colors: []string{}} }},
		{"duplicate palette", func(c *Config) { c.Palette = PaletteSpec{Colors: []string{"red", "red"}} }},
		{"unknown preset", func(c *Config) { c.Palette = PaletteSpec{Preset: "rainbow"} }},
		{"segment radius", func(c *Config) { c.Segment.Radius = 0 }},
		{"segment resolution", func(c *Config) { c.Segment.RadialSegments = 2 }},
		{"gap angle", func(c *Config) { c.Segment.GapAngle = 0 }},
		{"decal inside tube", func(c *Config) { c.Decal.Offset = 0.3 }},
		{"decal texture", func(c *Config) { c.Decal.TextureSize = 0 }},
		{"capsule length", func(c *Config) { c.Capsule.Length = -1 }},
		{"capsule opacity", func(c *Config) { c.Capsule.Opacity = 2 }},
		{"volume height", func(c *Config) { c.Volume.Height = 0 }},
		{"volume radii", func(c *Config) { c.Volume.RadiusTop, c.Volume.RadiusBottom = 0, 0 }},
		{"slider range", func(c *Config) { c.Slider.Min = c.Slider.Max }},
		{"slider step", func(c *Config) { c.Slider.Step = -1 }},
		{"animation bounds", func(c *Config) { c.Animation.Lower = c.Animation.Upper }},
		{"animation step", func(c *Config) { c.Animation.Step = 0 }},
		{"damping factor", func(c *Config) { c.Controls.DampingFactor = 0 }},
		{"polar limits", func(c *Config) { c.Controls.MinPolar = 3; c.Controls.MaxPolar = 1 }},
		{"mouse action", func(c *Config) { c.Controls.Mouse.Right = "spin" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestLoadWrapsValidationError(t *testing.T) {
	_, err := Load(writeConfig(t, "slider: {min: 1, max: 0}\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Palette = PaletteSpec{Colors: []string{"blue", "red"}}
	cfg.Background = MustColor("#12345678")

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("0x0000ff")
	require.NoError(t, err)
	assert.Equal(t, Color{B: 0xff, A: 0xff}, c)
	assert.Equal(t, "#0000ff", c.String())

	c, err = ParseColor("#00ff0080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)
	assert.Equal(t, "#00ff0080", c.String())

	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestNewSlider(t *testing.T) {
	s, err := Default().NewSlider(-4)
	require.NoError(t, err)
	assert.Equal(t, float32(-4), s.Value())
	assert.Equal(t, float32(-15), s.Min)
	assert.Equal(t, float32(5), s.Max)
}
