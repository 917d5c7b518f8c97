package control

import "fmt"

// Event is an input message applied at the start of the next frame
type Event interface {
	event()
}

// Click is a primary button press without drag, in pixels
type Click struct {
	X, Y float32
}

// SliderInput carries the new slider value
type SliderInput struct {
	Value float32
}

// ToggleRotate flips auto-rotation
type ToggleRotate struct{}

// Resize reports a new output surface size
type Resize struct {
	Width, Height int
}

func (Click) event()        {}
func (SliderInput) event()  {}
func (ToggleRotate) event() {}
func (Resize) event()       {}

func describe(e Event) string {
	switch e := e.(type) {
	case Click:
		return fmt.Sprintf("click at (%.0f, %.0f)", e.X, e.Y)
	case SliderInput:
		return fmt.Sprintf("slider %.2f", e.Value)
	case ToggleRotate:
		return "toggle rotation"
	case Resize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	default:
		return fmt.Sprintf("%T", e)
	}
}
