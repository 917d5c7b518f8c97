package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/probeview/internal/control"
)

const (
	panelWidth         = float32(340)
	panelHeight        = float32(110)
	panelPadding       = float32(12)
	panelTitleHeight   = float32(28)
	sliderWidth        = float32(200)
	sliderHeight       = float32(6)
	sliderHandleRadius = float32(8)
	buttonWidth        = float32(140)
	buttonHeight       = float32(26)
)

// layoutWidgets positions the control panel in the bottom-left corner
func (app *App) layoutWidgets() {
	screenHeight := float32(rl.GetScreenHeight())

	panelX := float32(20)
	panelY := screenHeight - panelHeight - 40 // above version/FPS
	app.Widgets.panelBounds = rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth, Height: panelHeight}

	trackX := panelX + panelPadding + 55
	trackY := panelY + panelTitleHeight + 14
	app.Widgets.sliderBounds = rl.Rectangle{
		X:      trackX - sliderHandleRadius,
		Y:      trackY - sliderHandleRadius,
		Width:  sliderWidth + sliderHandleRadius*2,
		Height: sliderHeight + sliderHandleRadius*2,
	}

	app.Widgets.buttonBounds = rl.Rectangle{
		X:      panelX + panelPadding,
		Y:      panelY + panelHeight - buttonHeight - panelPadding,
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

// sliderFraction maps a mouse x position to [0, 1] along the slider track
func sliderFraction(mouseX float32, bounds rl.Rectangle) float32 {
	trackX := bounds.X + sliderHandleRadius
	trackWidth := bounds.Width - sliderHandleRadius*2
	if trackWidth <= 0 {
		return 0
	}
	f := (mouseX - trackX) / trackWidth
	return float32(math.Max(0, math.Min(1, float64(f))))
}

// handleWidgetInput feeds the slider and the rotate button. It reports
// whether the mouse is captured by a widget this frame.
func (app *App) handleWidgetInput() bool {
	mousePos := rl.GetMousePosition()
	w := &app.Widgets

	w.sliderHovered = rl.CheckCollisionPointRec(mousePos, w.sliderBounds)
	w.buttonHovered = rl.CheckCollisionPointRec(mousePos, w.buttonBounds)
	overPanel := rl.CheckCollisionPointRec(mousePos, w.panelBounds)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if w.sliderHovered {
			w.sliderActive = true
		}
		if w.buttonHovered {
			app.Viewer.controller.Dispatch(control.ToggleRotate{})
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		w.sliderActive = false
	}

	if w.sliderActive {
		slider := app.Viewer.controller.Slider()
		value := slider.SetFraction(sliderFraction(mousePos.X, w.sliderBounds))
		app.Viewer.controller.Dispatch(control.SliderInput{Value: value})
	}

	return overPanel || w.sliderActive
}

// drawWidgets draws the control panel with the offset slider and the rotate button
func (app *App) drawWidgets() {
	w := &app.Widgets
	panel := w.panelBounds

	bgColor := rl.NewColor(20, 25, 35, 230)
	rl.DrawRectangleRounded(panel, 0.1, 8, bgColor)
	borderColor := rl.NewColor(80, 160, 255, 255)
	rl.DrawRectangleRoundedLines(panel, 0.1, 8, borderColor)

	titleColor := rl.NewColor(100, 200, 255, 255)
	rl.DrawTextEx(app.UI.font, "PROBE", rl.Vector2{X: panel.X + panelPadding, Y: panel.Y + 6}, 16, 1, titleColor)

	separatorY := panel.Y + panelTitleHeight
	rl.DrawLineEx(
		rl.Vector2{X: panel.X + panelPadding, Y: separatorY},
		rl.Vector2{X: panel.X + panel.Width - panelPadding, Y: separatorY},
		1, rl.NewColor(60, 80, 120, 255),
	)

	app.drawOffsetSlider()
	app.drawRotateButton()
}

func (app *App) drawOffsetSlider() {
	w := &app.Widgets
	slider := app.Viewer.controller.Slider()

	trackX := w.sliderBounds.X + sliderHandleRadius
	trackY := w.sliderBounds.Y + sliderHandleRadius

	labelY := trackY - 5
	rl.DrawTextEx(app.UI.font, "Offset", rl.Vector2{X: w.panelBounds.X + panelPadding, Y: labelY}, 13, 1, rl.LightGray)

	trackBounds := rl.Rectangle{X: trackX, Y: trackY, Width: sliderWidth, Height: sliderHeight}
	trackBg := rl.NewColor(40, 45, 55, 255)
	if w.sliderHovered {
		trackBg = rl.NewColor(50, 55, 65, 255)
	}
	rl.DrawRectangleRounded(trackBounds, 0.5, 8, trackBg)

	accent := rl.NewColor(80, 160, 255, 255)
	handleX := trackX + slider.Fraction()*sliderWidth

	fillColor := accent
	fillColor.A = 100
	rl.DrawRectangleRounded(rl.Rectangle{X: trackX, Y: trackY, Width: handleX - trackX, Height: sliderHeight}, 0.5, 8, fillColor)

	handleColor := accent
	if w.sliderActive {
		handleColor = rl.White
	} else if w.sliderHovered {
		handleColor.R = uint8(math.Min(float64(handleColor.R)+30, 255))
		handleColor.G = uint8(math.Min(float64(handleColor.G)+30, 255))
		handleColor.B = uint8(math.Min(float64(handleColor.B)+30, 255))
	}
	handleY := trackY + sliderHeight/2
	rl.DrawCircleV(rl.Vector2{X: handleX, Y: handleY}, sliderHandleRadius, handleColor)
	rl.DrawCircleLines(int32(handleX), int32(handleY), sliderHandleRadius, rl.NewColor(255, 255, 255, 150))

	valueText := fmt.Sprintf("%.1f", slider.Value())
	rl.DrawTextEx(app.UI.font, valueText, rl.Vector2{X: trackX + sliderWidth + 14, Y: labelY}, 13, 1, rl.LightGray)
}

func (app *App) drawRotateButton() {
	w := &app.Widgets
	b := w.buttonBounds
	text := app.Viewer.controller.Session().RotateLabel()

	textColor := rl.NewColor(200, 200, 200, 255)
	if app.Viewer.controller.Session().AutoRotate() {
		textColor = rl.NewColor(100, 255, 100, 255)
	}
	bg := rl.NewColor(40, 45, 55, 255)
	if w.buttonHovered {
		bg = rl.NewColor(50, 55, 65, 255)
	}
	rl.DrawRectangleRounded(b, 0.3, 8, bg)
	rl.DrawRectangleRoundedLines(b, 0.3, 8, textColor)

	size := rl.MeasureTextEx(app.UI.font, text, 14, 1)
	pos := rl.Vector2{X: b.X + (b.Width-size.X)/2, Y: b.Y + (b.Height-size.Y)/2}
	rl.DrawTextEx(app.UI.font, text, pos, 14, 1, textColor)
}
