package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/probeview/internal/config"
	"github.com/philipparndt/probeview/internal/control"
	"github.com/philipparndt/probeview/internal/logging"
	"github.com/philipparndt/probeview/internal/orbit"
	"github.com/philipparndt/probeview/internal/probe"
	"golang.org/x/image/font/gofont/goregular"
)

// Options configures the interactive viewer
type Options struct {
	Config     *config.Config
	ConfigPath string // file to watch when Watch is set
	Watch      bool
	Log        logging.Logger
}

// App is the interactive viewer window and its per-frame state
type App struct {
	Viewer      ViewerState
	View        ViewSettings
	Interaction InteractionState
	Widgets     WidgetState
	FileWatch   FileWatchState
	UI          UIState

	renderer *gpuRenderer
	log      logging.Logger
}

// newViewerState composes a session from cfg and wires the controller,
// camera controls and frame loop around it
func newViewerState(cfg *config.Config, renderer control.Renderer, log logging.Logger) (ViewerState, error) {
	probeOpts, err := cfg.ProbeOptions()
	if err != nil {
		return ViewerState{}, err
	}
	orbitOpts, err := cfg.OrbitOptions()
	if err != nil {
		return ViewerState{}, err
	}

	session, err := probe.Compose(probeOpts)
	if err != nil {
		return ViewerState{}, fmt.Errorf("failed to compose scene: %w", err)
	}
	slider, err := cfg.NewSlider(session.Assembly.Offset())
	if err != nil {
		return ViewerState{}, err
	}

	controls := orbit.New(session.Camera, orbitOpts)
	controller := control.NewController(session, renderer, slider, log)
	loop := control.NewLoop(controller, controls, renderer, cfg.LoopOptions())

	return ViewerState{
		config:     cfg,
		controller: controller,
		controls:   controls,
		loop:       loop,
	}, nil
}

// Run opens the window and runs the render loop until it is closed
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := logging.OrNop(opts.Log)

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))

	app := &App{
		renderer: newGPURenderer(log),
		log:      log,
		FileWatch: FileWatchState{
			configPath: opts.ConfigPath,
		},
	}

	viewer, err := newViewerState(cfg, app.renderer, log)
	if err != nil {
		return err
	}
	app.Viewer = viewer
	app.renderer.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	app.renderer.overlay = app.drawUI

	// The window may open at a different size than requested
	app.Viewer.controller.Dispatch(control.Resize{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()})

	if opts.Watch && opts.ConfigPath != "" {
		if err := app.setupFileWatcher(); err != nil {
			log.Warnf("failed to set up file watching: %v", err)
			log.Warnf("auto-reload will not be available")
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	// Printable ASCII is all the HUD needs
	chars := make([]rune, 0, 95)
	for c := rune(32); c < 127; c++ {
		chars = append(chars, c)
	}
	app.UI.font = rl.LoadFontFromMemory(".ttf", goregular.TTF, 48, chars)
	defer rl.UnloadFont(app.UI.font)
	defer app.renderer.Reset()

	log.Infof("probe: %d segments, palette %s", len(app.Viewer.controller.Session().Assembly.Segments), app.Viewer.controller.Session().Palette)

	for !rl.WindowShouldClose() {
		if app.FileWatch.needsReload.Swap(false) {
			app.reloadConfig()
		}

		app.handleInput()

		if err := app.Viewer.loop.Frame(); err != nil {
			return err
		}
	}
	return nil
}
