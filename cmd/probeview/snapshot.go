package main

import (
	"fmt"

	"github.com/philipparndt/probeview/internal/config"
	"github.com/philipparndt/probeview/internal/control"
	"github.com/philipparndt/probeview/internal/logging"
	"github.com/philipparndt/probeview/internal/orbit"
	"github.com/philipparndt/probeview/internal/probe"
	"github.com/philipparndt/probeview/pkg/viewer"
	"github.com/spf13/cobra"
)

// snapshotOptions describes a headless run: the events to feed and how many
// frames to render afterwards
type snapshotOptions struct {
	Width     int
	Height    int
	Frames    int
	Offset    *float32
	Clicks    [][2]float32
	Segments  []string // contact labels to click at their projected center
	Rotate    bool
	Animate   bool
	Wireframe bool
}

var (
	snapWidth     int
	snapHeight    int
	snapFrames    int
	snapOffset    float32
	snapClicks    []string
	snapSegments  []string
	snapRotate    bool
	snapAnimate   bool
	snapWireframe bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <out.png>",
	Short: "Render the scene headless to a PNG",
	Long: `Run the interaction loop without a window using the software rasterizer.
Events given as flags are applied in order (offset, clicks, rotation) before
the requested number of frames is rendered. The last frame is written as PNG.`,
	Example: `  probeview snapshot probe.png --segment 2A --segment 2A --offset -2
  probeview snapshot spin.png --rotate --frames 90 --width 640 --height 400`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	f := snapshotCmd.Flags()
	f.IntVar(&snapWidth, "width", 0, "image width (default: window width)")
	f.IntVar(&snapHeight, "height", 0, "image height (default: window height)")
	f.IntVar(&snapFrames, "frames", 1, "frames to render after the events")
	f.Float32Var(&snapOffset, "offset", 0, "probe offset set through the slider")
	f.StringArrayVar(&snapClicks, "click", nil, "click at pixel x,y (repeatable)")
	f.StringArrayVar(&snapSegments, "segment", nil, "click the contact with this label (repeatable)")
	f.BoolVar(&snapRotate, "rotate", false, "toggle auto-rotation")
	f.BoolVar(&snapAnimate, "animate", false, "enable the bounce animation")
	f.BoolVar(&snapWireframe, "wireframe", false, "overlay triangle edges")
	rootCmd.AddCommand(snapshotCmd)
}

func parseClick(s string) ([2]float32, error) {
	var x, y float32
	if _, err := fmt.Sscanf(s, "%g,%g", &x, &y); err != nil {
		return [2]float32{}, fmt.Errorf("invalid click %q (want x,y): %w", s, err)
	}
	return [2]float32{x, y}, nil
}

// renderSnapshot composes a session from cfg and drives it through the
// control loop with a software rasterizer holding the final frame
func renderSnapshot(cfg *config.Config, opts snapshotOptions, log logging.Logger) (*viewer.Rasterizer, *probe.Session, error) {
	log = logging.OrNop(log)
	if opts.Width > 0 {
		cfg.Window.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Window.Height = opts.Height
	}
	if opts.Frames < 1 {
		return nil, nil, fmt.Errorf("frames must be at least 1, got %d", opts.Frames)
	}

	probeOpts, err := cfg.ProbeOptions()
	if err != nil {
		return nil, nil, err
	}
	orbitOpts, err := cfg.OrbitOptions()
	if err != nil {
		return nil, nil, err
	}
	session, err := probe.Compose(probeOpts)
	if err != nil {
		return nil, nil, err
	}
	slider, err := cfg.NewSlider(session.Assembly.Offset())
	if err != nil {
		return nil, nil, err
	}

	raster := viewer.NewRasterizer(cfg.Window.Width, cfg.Window.Height)
	raster.Wireframe = opts.Wireframe

	controller := control.NewController(session, raster, slider, log)
	loop := control.NewLoop(controller, orbit.New(session.Camera, orbitOpts), raster, cfg.LoopOptions())
	if opts.Animate {
		loop.SetAnimation(true)
	}

	// The offset lands first so contacts are clicked where they end up
	if opts.Offset != nil {
		controller.Dispatch(control.SliderInput{Value: *opts.Offset})
		if err := loop.Frame(); err != nil {
			return nil, nil, err
		}
	}

	for _, c := range opts.Clicks {
		controller.Dispatch(control.Click{X: c[0], Y: c[1]})
	}
	for _, label := range opts.Segments {
		seg := session.Assembly.Segment(label)
		if seg == nil {
			return nil, nil, fmt.Errorf("no contact labeled %q", label)
		}
		x, y, _, ok := session.Camera.Project(seg.Node.WorldPosition())
		if !ok {
			return nil, nil, fmt.Errorf("contact %s is behind the camera", label)
		}
		controller.Dispatch(control.Click{X: x, Y: y})
	}
	if opts.Rotate {
		controller.Dispatch(control.ToggleRotate{})
	}

	if err := loop.Run(opts.Frames); err != nil {
		return nil, nil, err
	}
	for text, c := range session.Assembly.Colors() {
		log.Debugf("contact %s: %s", text, c)
	}
	return raster, session, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	opts := snapshotOptions{
		Width:     snapWidth,
		Height:    snapHeight,
		Frames:    snapFrames,
		Segments:  snapSegments,
		Rotate:    snapRotate,
		Animate:   snapAnimate,
		Wireframe: snapWireframe,
	}
	if cmd.Flags().Changed("offset") {
		opts.Offset = &snapOffset
	}
	for _, s := range snapClicks {
		c, err := parseClick(s)
		if err != nil {
			return err
		}
		opts.Clicks = append(opts.Clicks, c)
	}

	raster, _, err := renderSnapshot(cfg, opts, log)
	if err != nil {
		return err
	}
	if err := raster.WritePNG(args[0]); err != nil {
		return err
	}
	w, h := raster.Size()
	log.Infof("wrote %dx%d snapshot to %s", w, h, args[0])
	return nil
}
