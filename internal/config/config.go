// Package config loads the viewer configuration from YAML. Every field has a
// default, so a file only needs to list what it changes.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/philipparndt/probeview/internal/control"
	"github.com/philipparndt/probeview/internal/orbit"
	"github.com/philipparndt/probeview/internal/probe"
	"github.com/philipparndt/probeview/pkg/labeltex"
	"github.com/philipparndt/probeview/pkg/scene"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given
const DefaultPath = "probeview.yaml"

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid config")

type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

type Camera struct {
	Fov      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
}

type Lights struct {
	Ambient          Color   `yaml:"ambient"`
	AmbientIntensity float32 `yaml:"ambient_intensity"`
	Point            Color   `yaml:"point"`
	PointIntensity   float32 `yaml:"point_intensity"`
	PointPosition    Vec3    `yaml:"point_position"`
}

type Label struct {
	Text string `yaml:"text"`
	Gap  bool   `yaml:"gap"`
	Slot int    `yaml:"slot"`
}

type Segment struct {
	Radius         float32 `yaml:"radius"`
	Height         float32 `yaml:"height"`
	RadialSegments int     `yaml:"radial_segments"`
	Spacing        float32 `yaml:"spacing"`
	GapAngle       float32 `yaml:"gap_angle"`
}

type Decal struct {
	Offset      float32 `yaml:"offset"`
	Size        float32 `yaml:"size"`
	TextureSize int     `yaml:"texture_size"`
	FontSize    float64 `yaml:"font_size"`
	StrokeWidth float64 `yaml:"stroke_width"`
	Fill        Color   `yaml:"fill"`
	Stroke      Color   `yaml:"stroke"`
}

type Capsule struct {
	Radius         float32 `yaml:"radius"`
	Length         float32 `yaml:"length"`
	CapSegments    int     `yaml:"cap_segments"`
	RadialSegments int     `yaml:"radial_segments"`
	Color          Color   `yaml:"color"`
	Opacity        float32 `yaml:"opacity"`
	Y              float32 `yaml:"y"`
}

type Volume struct {
	RadiusTop      float32 `yaml:"radius_top"`
	RadiusBottom   float32 `yaml:"radius_bottom"`
	Height         float32 `yaml:"height"`
	RadialSegments int     `yaml:"radial_segments"`
	Color          Color   `yaml:"color"`
	Opacity        float32 `yaml:"opacity"`
	Y              float32 `yaml:"y"`
	RenderOrder    int     `yaml:"render_order"`
}

type Slider struct {
	Min  float32 `yaml:"min"`
	Max  float32 `yaml:"max"`
	Step float32 `yaml:"step"`
}

type Animation struct {
	Enabled bool    `yaml:"enabled"`
	Lower   float32 `yaml:"lower"`
	Upper   float32 `yaml:"upper"`
	Step    float32 `yaml:"step"`
}

type Rotation struct {
	Enabled bool    `yaml:"enabled"`
	Speed   float32 `yaml:"speed"`
}

type Mouse struct {
	Left   string `yaml:"left"`
	Middle string `yaml:"middle"`
	Right  string `yaml:"right"`
}

type Controls struct {
	Damping       bool    `yaml:"damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	MinPolar      float32 `yaml:"min_polar"`
	MaxPolar      float32 `yaml:"max_polar"`
	MinDistance   float32 `yaml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance"`
	RotateSpeed   float32 `yaml:"rotate_speed"`
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	PanSpeed      float32 `yaml:"pan_speed"`
	Mouse         Mouse   `yaml:"mouse"`
}

// Config is the complete viewer configuration
type Config struct {
	Debug         bool        `yaml:"debug"`
	Window        Window      `yaml:"window"`
	Background    Color       `yaml:"background"`
	Camera        Camera      `yaml:"camera"`
	Lights        Lights      `yaml:"lights"`
	Labels        []Label     `yaml:"labels"`
	Palette       PaletteSpec `yaml:"palette"`
	Segment       Segment     `yaml:"segment"`
	Decal         Decal       `yaml:"decal"`
	Capsule       Capsule     `yaml:"capsule"`
	Volume        Volume      `yaml:"volume"`
	InitialOffset float32     `yaml:"initial_offset"`
	Slider        Slider      `yaml:"slider"`
	Animation     Animation   `yaml:"animation"`
	Rotation      Rotation    `yaml:"rotation"`
	Controls      Controls    `yaml:"controls"`
}

// Default returns the built-in configuration
func Default() *Config {
	labels := probe.DefaultLabels()
	cfgLabels := make([]Label, len(labels))
	for i, l := range labels {
		cfgLabels[i] = Label{Text: l.Text, Gap: l.HasGap, Slot: l.Slot}
	}

	return &Config{
		Window: Window{
			Width:     1280,
			Height:    800,
			Title:     "probeview",
			TargetFPS: 60,
		},
		Background: MustColor("#575757"),
		Camera: Camera{
			Fov:      75,
			Near:     0.1,
			Far:      1000,
			Position: Vec3{0, -15, 20},
			Target:   Vec3{0, 0, 0},
		},
		Lights: Lights{
			Ambient:          MustColor("#404040"),
			AmbientIntensity: 1,
			Point:            MustColor("#ffffff"),
			PointIntensity:   1,
			PointPosition:    Vec3{5, 5, 5},
		},
		Labels:  cfgLabels,
		Palette: PaletteSpec{Preset: probe.PresetTriState},
		Segment: Segment{
			Radius:         0.4,
			Height:         2,
			RadialSegments: 128,
			Spacing:        0.5,
			GapAngle:       math.Pi / 8,
		},
		Decal: Decal{
			Offset:      0.42,
			Size:        1,
			TextureSize: 128,
			FontSize:    48,
			StrokeWidth: 4,
			Fill:        MustColor("#ffffff"),
			Stroke:      MustColor("#000000"),
		},
		Capsule: Capsule{
			Radius:         0.3,
			Length:         15,
			CapSegments:    64,
			RadialSegments: 128,
			Color:          MustColor("#ffffff"),
			Opacity:        0.8,
			Y:              5,
		},
		Volume: Volume{
			RadiusTop:      4.2,
			RadiusBottom:   4,
			Height:         3,
			RadialSegments: 128,
			Color:          MustColor("#00ff00"),
			Opacity:        0.1,
			Y:              -10,
			RenderOrder:    1,
		},
		InitialOffset: -4,
		Slider:        Slider{Min: -15, Max: 5, Step: 0.1},
		Animation:     Animation{Enabled: false, Lower: -8, Upper: 2, Step: 0.02},
		Rotation:      Rotation{Enabled: false, Speed: 0.01},
		Controls: Controls{
			Damping:       true,
			DampingFactor: 0.5,
			MinPolar:      0,
			MaxPolar:      2 * math.Pi,
			MinDistance:   0,
			MaxDistance:   0,
			RotateSpeed:   1,
			ZoomSpeed:     1,
			PanSpeed:      1,
			Mouse:         Mouse{Left: "rotate", Middle: "dolly", Right: "pan"},
		},
	}
}

// Load reads a config file over the defaults and validates it. An empty path
// or a missing default file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal encodes the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every section and returns the first problem found
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS <= 0 {
		return invalid("target_fps must be positive")
	}

	cam := c.Camera
	if cam.Fov <= 0 || cam.Fov >= 180 {
		return invalid("camera fov %.1f out of range", cam.Fov)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return invalid("camera clip planes near=%.2f far=%.2f", cam.Near, cam.Far)
	}
	if cam.Position.Mgl().Sub(cam.Target.Mgl()).Len() == 0 {
		return invalid("camera position equals target")
	}

	if err := probe.ValidateLabels(c.probeLabels()); err != nil {
		return invalid("labels: %v", err)
	}
	if _, err := c.Palette.Palette(); err != nil {
		return invalid("palette: %v", err)
	}

	s := c.Segment
	if s.Radius <= 0 || s.Height <= 0 {
		return invalid("segment radius and height must be positive")
	}
	if s.RadialSegments < 3 {
		return invalid("segment radial_segments must be at least 3")
	}
	if s.Spacing < 0 {
		return invalid("segment spacing must not be negative")
	}
	if s.GapAngle <= 0 || s.GapAngle >= 2*math.Pi {
		return invalid("segment gap_angle %.3f out of range", s.GapAngle)
	}

	d := c.Decal
	if d.Offset <= s.Radius {
		return invalid("decal offset %.2f must lie outside the segment radius %.2f", d.Offset, s.Radius)
	}
	if d.Size <= 0 || d.TextureSize <= 0 || d.FontSize <= 0 || d.StrokeWidth < 0 {
		return invalid("decal sizes must be positive")
	}

	cp := c.Capsule
	if cp.Radius <= 0 || cp.Length <= 0 {
		return invalid("capsule radius and length must be positive")
	}
	if cp.CapSegments < 1 || cp.RadialSegments < 3 {
		return invalid("capsule needs at least 1 cap segment and 3 radial segments")
	}
	if cp.Opacity < 0 || cp.Opacity > 1 {
		return invalid("capsule opacity %.2f out of range", cp.Opacity)
	}

	v := c.Volume
	if v.RadiusTop < 0 || v.RadiusBottom < 0 || (v.RadiusTop == 0 && v.RadiusBottom == 0) || v.Height <= 0 {
		return invalid("volume dimensions")
	}
	if v.RadialSegments < 3 {
		return invalid("volume radial_segments must be at least 3")
	}
	if v.Opacity < 0 || v.Opacity > 1 {
		return invalid("volume opacity %.2f out of range", v.Opacity)
	}

	if c.Slider.Min >= c.Slider.Max {
		return invalid("slider min %.2f must be below max %.2f", c.Slider.Min, c.Slider.Max)
	}
	if c.Slider.Step < 0 {
		return invalid("slider step must not be negative")
	}

	if err := c.bounce().Validate(); err != nil {
		return invalid("animation: %v", err)
	}

	ct := c.Controls
	if ct.DampingFactor <= 0 || ct.DampingFactor > 1 {
		return invalid("controls damping_factor %.2f out of range (0, 1]", ct.DampingFactor)
	}
	if ct.MinPolar > ct.MaxPolar {
		return invalid("controls min_polar above max_polar")
	}
	if ct.MinDistance < 0 || (ct.MaxDistance > 0 && ct.MaxDistance < ct.MinDistance) {
		return invalid("controls distance limits")
	}
	if _, err := c.bindings(); err != nil {
		return invalid("controls: %v", err)
	}
	return nil
}

func (c *Config) probeLabels() []probe.Label {
	out := make([]probe.Label, len(c.Labels))
	for i, l := range c.Labels {
		out[i] = probe.Label{Text: l.Text, HasGap: l.Gap, Slot: l.Slot}
	}
	return out
}

func (c *Config) bounce() control.Bounce {
	return control.Bounce{
		Enabled: c.Animation.Enabled,
		Lower:   c.Animation.Lower,
		Upper:   c.Animation.Upper,
		Step:    c.Animation.Step,
	}
}

func (c *Config) bindings() (orbit.Bindings, error) {
	var b orbit.Bindings
	var err error
	if b.Left, err = orbit.ParseAction(c.Controls.Mouse.Left); err != nil {
		return b, err
	}
	if b.Middle, err = orbit.ParseAction(c.Controls.Mouse.Middle); err != nil {
		return b, err
	}
	if b.Right, err = orbit.ParseAction(c.Controls.Mouse.Right); err != nil {
		return b, err
	}
	return b, nil
}

// ProbeOptions converts the scene sections for probe.Compose
func (c *Config) ProbeOptions() (probe.Options, error) {
	palette, err := c.Palette.Palette()
	if err != nil {
		return probe.Options{}, err
	}

	tex := labeltex.DefaultOptions()
	tex.Size = c.Decal.TextureSize
	tex.FontSize = c.Decal.FontSize
	tex.StrokeWidth = c.Decal.StrokeWidth
	tex.Fill = c.Decal.Fill.Std()
	tex.Stroke = c.Decal.Stroke.Std()

	return probe.Options{
		Width:      c.Window.Width,
		Height:     c.Window.Height,
		Background: c.Background.Std(),
		Camera: probe.CameraOptions{
			FovY:     c.Camera.Fov,
			Near:     c.Camera.Near,
			Far:      c.Camera.Far,
			Position: c.Camera.Position.Mgl(),
			Target:   c.Camera.Target.Mgl(),
		},
		Lighting: scene.Lighting{
			Ambient: scene.AmbientLight{Color: c.Lights.Ambient.Std(), Intensity: c.Lights.AmbientIntensity},
			Point: scene.PointLight{
				Color:     c.Lights.Point.Std(),
				Intensity: c.Lights.PointIntensity,
				Position:  c.Lights.PointPosition.Mgl(),
			},
		},
		Labels:  c.probeLabels(),
		Palette: palette,
		Assembly: probe.AssemblyOptions{
			Segment: probe.SegmentOptions{
				Radius:         c.Segment.Radius,
				Height:         c.Segment.Height,
				RadialSegments: c.Segment.RadialSegments,
				Spacing:        c.Segment.Spacing,
				GapAngle:       c.Segment.GapAngle,
			},
			Decal: probe.DecalOptions{
				Offset:  c.Decal.Offset,
				Size:    c.Decal.Size,
				Texture: tex,
			},
			Capsule: probe.CapsuleOptions{
				Radius:         c.Capsule.Radius,
				Length:         c.Capsule.Length,
				CapSegments:    c.Capsule.CapSegments,
				RadialSegments: c.Capsule.RadialSegments,
				Color:          c.Capsule.Color.Std(),
				Opacity:        c.Capsule.Opacity,
				Y:              c.Capsule.Y,
			},
			InitialOffset: c.InitialOffset,
		},
		Volume: probe.VolumeOptions{
			RadiusTop:      c.Volume.RadiusTop,
			RadiusBottom:   c.Volume.RadiusBottom,
			Height:         c.Volume.Height,
			RadialSegments: c.Volume.RadialSegments,
			Color:          c.Volume.Color.Std(),
			Opacity:        c.Volume.Opacity,
			Y:              c.Volume.Y,
			RenderOrder:    c.Volume.RenderOrder,
		},
		AutoRotate: c.Rotation.Enabled,
	}, nil
}

// OrbitOptions converts the controls section
func (c *Config) OrbitOptions() (orbit.Options, error) {
	b, err := c.bindings()
	if err != nil {
		return orbit.Options{}, err
	}
	opts := orbit.DefaultOptions()
	opts.Damping = c.Controls.Damping
	opts.DampingFactor = c.Controls.DampingFactor
	opts.MinPolar = c.Controls.MinPolar
	opts.MaxPolar = c.Controls.MaxPolar
	opts.MinDistance = c.Controls.MinDistance
	if c.Controls.MaxDistance > 0 {
		opts.MaxDistance = c.Controls.MaxDistance
	}
	opts.RotateSpeed = c.Controls.RotateSpeed
	opts.ZoomSpeed = c.Controls.ZoomSpeed
	opts.PanSpeed = c.Controls.PanSpeed
	opts.FPS = c.Window.TargetFPS
	opts.Bindings = b
	return opts, nil
}

// LoopOptions converts the animation and rotation sections
func (c *Config) LoopOptions() control.LoopOptions {
	return control.LoopOptions{
		RotateSpeed: c.Rotation.Speed,
		Animation:   c.bounce(),
	}
}

// NewSlider creates the offset slider model starting at value
func (c *Config) NewSlider(value float32) (*control.Slider, error) {
	return control.NewSlider(c.Slider.Min, c.Slider.Max, c.Slider.Step, value)
}
