package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/probeview/internal/config"
	"github.com/philipparndt/probeview/internal/control"
	"github.com/philipparndt/probeview/internal/orbit"
	"github.com/philipparndt/probeview/pkg/watcher"
)

// ViewerState holds the session wiring rebuilt on every (re)load
type ViewerState struct {
	config     *config.Config
	controller *control.Controller
	controls   *orbit.Controls
	loop       *control.Loop
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showWireframe bool
	showHelp      bool
}

// InteractionState holds mouse state for click vs drag detection
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	dragAction   orbit.Action // action bound to the button that started the drag
	dragging     bool
	overWidget   bool // the press started on a widget, not the scene
}

// WidgetState holds the bounds and drag state of the on-screen controls
type WidgetState struct {
	panelBounds   rl.Rectangle
	sliderBounds  rl.Rectangle
	buttonBounds  rl.Rectangle
	sliderHovered bool
	buttonHovered bool
	sliderActive  bool
}

// FileWatchState holds config watching and reload state
type FileWatchState struct {
	configPath  string
	fileWatcher *watcher.FileWatcher
	needsReload atomic.Bool // set by the watcher goroutine, consumed by the loop
	lastReload  time.Time
	lastError   string
}

// UIState holds UI resources
type UIState struct {
	font rl.Font
}
