package probe

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/scene"
	"github.com/philipparndt/probeview/pkg/viewer"
)

// Rotate button labels
const (
	StartRotationLabel = "Start Rotation"
	StopRotationLabel  = "Stop Rotation"
)

// CameraOptions configures the perspective camera
type CameraOptions struct {
	FovY     float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// Options configures Compose
type Options struct {
	Width      int
	Height     int
	Background color.RGBA
	Camera     CameraOptions
	Lighting   scene.Lighting
	Labels     []Label
	Palette    Palette
	Assembly   AssemblyOptions
	Volume     VolumeOptions
	AutoRotate bool
}

// DefaultOptions returns the standard scene
func DefaultOptions() Options {
	return Options{
		Width:      1280,
		Height:     800,
		Background: color.RGBA{R: 0x57, G: 0x57, B: 0x57, A: 0xff},
		Camera: CameraOptions{
			FovY:     75,
			Near:     0.1,
			Far:      1000,
			Position: mgl32.Vec3{0, -15, 20},
		},
		Lighting: scene.Lighting{
			Ambient: scene.AmbientLight{Color: color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}, Intensity: 1},
			Point: scene.PointLight{
				Color:     color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
				Intensity: 1,
				Position:  mgl32.Vec3{5, 5, 5},
			},
		},
		Labels:   DefaultLabels(),
		Palette:  TriState(),
		Assembly: DefaultAssemblyOptions(),
		Volume:   DefaultVolumeOptions(),
	}
}

// Session is the complete state of one viewer: scene graph, camera, the
// probe and the interaction flags. It is owned by the entry point and passed
// to the controller and the render loop.
type Session struct {
	Scene    *scene.Scene
	Camera   *viewer.Camera
	Assembly *Assembly
	Volume   *scene.Node
	Palette  Palette

	autoRotate bool
}

// Compose builds a session from options
func Compose(opts Options) (*Session, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", opts.Width, opts.Height)
	}
	if opts.Palette.Len() == 0 {
		return nil, fmt.Errorf("palette is empty")
	}

	s := scene.New(opts.Background)
	s.Lighting = opts.Lighting

	c := opts.Camera
	cam := viewer.NewCamera(c.Position, c.Target, c.FovY, c.Near, c.Far, opts.Width, opts.Height)

	volume := NewTargetVolume(opts.Volume)
	s.Add(volume)

	assembly, err := NewAssembly(opts.Labels, opts.Palette, opts.Assembly)
	if err != nil {
		return nil, fmt.Errorf("failed to build probe: %w", err)
	}
	s.Add(assembly.Group)

	return &Session{
		Scene:      s,
		Camera:     cam,
		Assembly:   assembly,
		Volume:     volume,
		Palette:    opts.Palette,
		autoRotate: opts.AutoRotate,
	}, nil
}

// AutoRotate reports whether the scene spins continuously
func (s *Session) AutoRotate() bool {
	return s.autoRotate
}

// SetAutoRotate enables or disables continuous rotation
func (s *Session) SetAutoRotate(on bool) {
	s.autoRotate = on
}

// ToggleAutoRotate flips continuous rotation and returns the new state
func (s *Session) ToggleAutoRotate() bool {
	s.autoRotate = !s.autoRotate
	return s.autoRotate
}

// RotateLabel is the caption of the rotate button for the current state
func (s *Session) RotateLabel() string {
	if s.autoRotate {
		return StopRotationLabel
	}
	return StartRotationLabel
}

// Rotation returns the scene rotation about the vertical axis
func (s *Session) Rotation() float32 {
	return s.Scene.Root.Rotation.Y()
}

// Rotate turns the whole scene about the vertical axis
func (s *Session) Rotate(angle float32) {
	s.Scene.Root.Rotation[1] += angle
}

// Adopt carries interactive state over from a previous session: segment
// colors (matched by label, when the palette still contains them), offset,
// bounce direction, rotation and camera pose.
func (s *Session) Adopt(prev *Session) {
	if prev == nil {
		return
	}
	for text, c := range prev.Assembly.Colors() {
		if seg := s.Assembly.Segment(text); seg != nil && s.Palette.Contains(c) {
			seg.SetColor(c)
		}
	}
	s.Assembly.SetOffset(prev.Assembly.Offset())
	s.Assembly.SetDirection(prev.Assembly.Direction())
	s.autoRotate = prev.autoRotate
	s.Scene.Root.Rotation = prev.Scene.Root.Rotation

	s.Camera.Position = prev.Camera.Position
	s.Camera.Target = prev.Camera.Target
	s.Camera.SetSize(prev.Camera.Width, prev.Camera.Height)
}
