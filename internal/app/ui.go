package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/probeview/version"
)

var helpLines = []string{
	"Left click     cycle segment color",
	"Left drag      rotate",
	"Middle drag    dolly",
	"Right drag     pan",
	"Wheel          zoom",
	"Space          toggle rotation",
	"A              toggle bounce animation",
	"D              toggle damping",
	"W              toggle wireframe",
	"Home           reset camera",
	"H / F1         toggle this help",
}

// drawUI draws the HUD and the control panel
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	session := app.Viewer.controller.Session()
	assembly := session.Assembly

	// === PROBE ===
	rl.DrawTextEx(app.UI.font, "Probe:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Offset: %.2f", assembly.Offset()), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Palette: %s", session.Palette), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight

	for _, seg := range assembly.Segments {
		c := seg.Color()
		swatch := c.RGBA()
		rl.DrawRectangle(18, int32(y)+3, 10, 10, rl.NewColor(swatch.R, swatch.G, swatch.B, 255))
		rl.DrawRectangleLines(18, int32(y)+3, 10, 10, rl.LightGray)
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("%-3s %s", seg.Label.Text, c), rl.Vector2{X: 34, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
	}
	y += lineHeight / 2

	// === STATE ===
	rl.DrawTextEx(app.UI.font, "View:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	app.drawFlag("Rotation", session.AutoRotate(), y)
	y += lineHeight
	app.drawFlag("Animation", app.Viewer.loop.Options().Animation.Enabled, y)
	y += lineHeight
	app.drawFlag("Damping", app.Viewer.controls.Options().Damping, y)
	y += lineHeight
	app.drawFlag("Wireframe", app.View.showWireframe, y)
	y += lineHeight

	if app.FileWatch.fileWatcher != nil {
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Watching: %s", app.FileWatch.configPath), rl.Vector2{X: 10, Y: y}, fontSize12, 1, rl.LightGray)
		y += lineHeight
	}

	// Reload status (top-right corner)
	app.drawReloadStatus(screenWidth)

	// Help overlay
	if app.View.showHelp {
		boxWidth := float32(330)
		boxHeight := float32(len(helpLines))*18 + 20
		boxX := screenWidth - boxWidth - 20
		boxY := float32(80)
		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)
		for i, line := range helpLines {
			rl.DrawTextEx(app.UI.font, line, rl.Vector2{X: boxX + 10, Y: boxY + 10 + float32(i)*18}, fontSize12, 1, rl.White)
		}
	} else {
		hint := "H: help"
		size := rl.MeasureTextEx(app.UI.font, hint, fontSize12, 1)
		rl.DrawTextEx(app.UI.font, hint, rl.Vector2{X: screenWidth - size.X - 20, Y: 80}, fontSize12, 1, rl.Gray)
	}

	app.drawWidgets()

	// Version and FPS (bottom)
	versionText := fmt.Sprintf("probeview %s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 20, Y: screenHeight - 28}, fontSize12, 1, rl.Gray)
	fpsText := fmt.Sprintf("%d FPS", rl.GetFPS())
	fpsSize := rl.MeasureTextEx(app.UI.font, fpsText, fontSize12, 1)
	rl.DrawTextEx(app.UI.font, fpsText, rl.Vector2{X: screenWidth - fpsSize.X - 20, Y: screenHeight - 28}, fontSize12, 1, rl.Gray)
}

func (app *App) drawFlag(name string, on bool, y float32) {
	state, color := "off", rl.NewColor(200, 100, 100, 255)
	if on {
		state, color = "on", rl.NewColor(100, 255, 100, 255)
	}
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  %-10s %s", name+":", state), rl.Vector2{X: 10, Y: y}, 14, 1, color)
}

// drawReloadStatus shows the outcome of the last config reload for a few seconds
func (app *App) drawReloadStatus(screenWidth float32) {
	if app.FileWatch.lastReload.IsZero() || time.Since(app.FileWatch.lastReload) > 4*time.Second {
		return
	}

	text := "Config reloaded"
	color := rl.Green
	if app.FileWatch.lastError != "" {
		text = "Reload failed: " + app.FileWatch.lastError
		color = rl.Red
	}

	textSize := rl.MeasureTextEx(app.UI.font, text, 16, 1)
	boxWidth := textSize.X + 20
	boxHeight := float32(40)
	boxX := screenWidth - boxWidth - 20
	boxY := float32(20)
	rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), color)
	rl.DrawTextEx(app.UI.font, text, rl.Vector2{X: boxX + 10, Y: boxY + (boxHeight-textSize.Y)/2}, 16, 1, color)
}
