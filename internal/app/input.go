package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/probeview/internal/control"
	"github.com/philipparndt/probeview/internal/orbit"
)

// clickThreshold is how far the mouse may travel between press and release
// for the gesture to count as a click rather than a drag
const clickThreshold = 5.0

// isClick reports whether a press/release pair is a click
func isClick(down, up rl.Vector2) bool {
	dx := float64(up.X - down.X)
	dy := float64(up.Y - down.Y)
	return math.Hypot(dx, dy) <= clickThreshold
}

// pressedAction returns the action bound to a button pressed this frame
func pressedAction(b orbit.Bindings) (orbit.Action, bool) {
	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		return b.Left, true
	case rl.IsMouseButtonPressed(rl.MouseMiddleButton):
		return b.Middle, true
	case rl.IsMouseButtonPressed(rl.MouseRightButton):
		return b.Right, true
	}
	return orbit.None, false
}

func anyButtonDown() bool {
	return rl.IsMouseButtonDown(rl.MouseLeftButton) ||
		rl.IsMouseButtonDown(rl.MouseMiddleButton) ||
		rl.IsMouseButtonDown(rl.MouseRightButton)
}

// handleInput turns raw input into controller events and camera movement
func (app *App) handleInput() {
	controller := app.Viewer.controller
	controls := app.Viewer.controls
	session := controller.Session()

	if rl.IsWindowResized() {
		controller.Dispatch(control.Resize{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()})
	}
	app.layoutWidgets()

	// Keyboard shortcuts
	if rl.IsKeyPressed(rl.KeySpace) {
		controller.Dispatch(control.ToggleRotate{})
	}
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
		app.renderer.wireframe = app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyA) {
		on := !app.Viewer.loop.Options().Animation.Enabled
		app.Viewer.loop.SetAnimation(on)
		app.log.Infof("animation: %v", on)
	}
	if rl.IsKeyPressed(rl.KeyD) {
		damping := !controls.Options().Damping
		controls.SetDamping(damping)
		app.log.Infof("damping: %v", damping)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyH) || rl.IsKeyPressed(rl.KeyF1) {
		app.View.showHelp = !app.View.showHelp
	}

	// Widgets take the mouse first
	captured := app.handleWidgetInput()

	mousePos := rl.GetMousePosition()
	if action, ok := pressedAction(controls.Bindings()); ok && !app.Interaction.dragging {
		app.Interaction.mouseDownPos = mousePos
		app.Interaction.mouseMoved = false
		app.Interaction.dragAction = action
		app.Interaction.dragging = true
		app.Interaction.overWidget = captured
	}

	if app.Interaction.dragging && !app.Interaction.overWidget && anyButtonDown() {
		delta := rl.GetMouseDelta()
		if !isClick(app.Interaction.mouseDownPos, mousePos) {
			app.Interaction.mouseMoved = true
		}
		if app.Interaction.mouseMoved && (delta.X != 0 || delta.Y != 0) {
			controls.Drag(app.Interaction.dragAction, delta.X, delta.Y, session.Camera)
		}
	}

	if app.Interaction.dragging && !anyButtonDown() {
		// A left click that never became a drag picks a segment
		released := rl.IsMouseButtonReleased(rl.MouseLeftButton)
		if released && !app.Interaction.overWidget && !app.Interaction.mouseMoved {
			controller.Dispatch(control.Click{X: mousePos.X, Y: mousePos.Y})
		}
		app.Interaction.dragging = false
		app.Interaction.overWidget = false
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !captured {
		controls.Zoom(wheel)
	}
}

// resetCameraView returns the camera to the configured pose
func (app *App) resetCameraView() {
	cfg := app.Viewer.config
	cam := app.Viewer.controller.Session().Camera
	cam.Position = cfg.Camera.Position.Mgl()
	cam.Target = cfg.Camera.Target.Mgl()
	app.Viewer.controls.Sync(cam)
}
