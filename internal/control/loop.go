package control

import (
	"fmt"

	"github.com/philipparndt/probeview/pkg/scene"
	"github.com/philipparndt/probeview/pkg/viewer"
)

// Renderer draws a scene from a camera onto its surface
type Renderer interface {
	Render(s *scene.Scene, cam *viewer.Camera) error
	Resize(width, height int)
}

// CameraControls updates the camera once per frame
type CameraControls interface {
	Update(cam *viewer.Camera) bool
}

// LoopOptions configures per-frame behavior
type LoopOptions struct {
	// RotateSpeed is the scene rotation per frame while auto-rotate is on
	RotateSpeed float32
	Animation   Bounce
}

// DefaultLoopOptions rotates by 0.01 rad per frame with the bounce disabled
func DefaultLoopOptions() LoopOptions {
	return LoopOptions{
		RotateSpeed: 0.01,
		Animation:   DefaultBounce(),
	}
}

// Loop runs one frame at a time: events, animation, rotation, camera, draw
type Loop struct {
	controller *Controller
	controls   CameraControls
	renderer   Renderer
	opts       LoopOptions

	frames int
}

// NewLoop creates a loop. controls and renderer may be nil.
func NewLoop(controller *Controller, controls CameraControls, renderer Renderer, opts LoopOptions) *Loop {
	return &Loop{
		controller: controller,
		controls:   controls,
		renderer:   renderer,
		opts:       opts,
	}
}

// Options returns the loop options
func (l *Loop) Options() LoopOptions {
	return l.opts
}

// SetAnimation enables or disables the bounce animation
func (l *Loop) SetAnimation(on bool) {
	l.opts.Animation.Enabled = on
}

// SetControls swaps the camera controls
func (l *Loop) SetControls(c CameraControls) {
	l.controls = c
}

// Frames returns the number of completed frames
func (l *Loop) Frames() int {
	return l.frames
}

// Frame runs one tick
func (l *Loop) Frame() error {
	l.controller.Drain()
	s := l.controller.Session()

	if l.opts.Animation.Enabled {
		a := s.Assembly
		offset, dir := l.opts.Animation.Advance(a.Offset(), a.Direction())
		a.SetOffset(offset)
		a.SetDirection(dir)
		if slider := l.controller.Slider(); slider != nil {
			slider.Sync(offset)
		}
	}

	if s.AutoRotate() {
		s.Rotate(l.opts.RotateSpeed)
	}

	if l.controls != nil {
		l.controls.Update(s.Camera)
	}

	if l.renderer != nil {
		if err := l.renderer.Render(s.Scene, s.Camera); err != nil {
			return fmt.Errorf("render frame %d: %w", l.frames, err)
		}
	}
	l.frames++
	return nil
}

// Run executes n frames, stopping at the first error
func (l *Loop) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := l.Frame(); err != nil {
			return err
		}
	}
	return nil
}
