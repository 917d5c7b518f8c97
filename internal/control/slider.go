package control

import (
	"fmt"
	"math"
)

// Slider is the value model behind the offset slider
type Slider struct {
	Min   float32
	Max   float32
	Step  float32
	value float32
}

// NewSlider creates a slider; value is clamped into range but not snapped
func NewSlider(min, max, step, value float32) (*Slider, error) {
	if min >= max {
		return nil, fmt.Errorf("slider min %.2f must be below max %.2f", min, max)
	}
	if step < 0 {
		return nil, fmt.Errorf("slider step %.2f must not be negative", step)
	}
	s := &Slider{Min: min, Max: max, Step: step}
	s.Sync(value)
	return s, nil
}

// Value returns the current value
func (s *Slider) Value() float32 {
	return s.value
}

// Fraction returns the position of the value within the range, 0..1
func (s *Slider) Fraction() float32 {
	return (s.value - s.Min) / (s.Max - s.Min)
}

// SetValue clamps v to the range, snaps it to the step grid and returns it
func (s *Slider) SetValue(v float32) float32 {
	v = s.clamp(v)
	if s.Step > 0 {
		steps := math.Round(float64(v-s.Min) / float64(s.Step))
		v = s.clamp(float32(float64(s.Min) + steps*float64(s.Step)))
	}
	s.value = v
	return v
}

// SetFraction sets the value from a position within the range
func (s *Slider) SetFraction(f float32) float32 {
	f = float32(math.Max(0, math.Min(1, float64(f))))
	return s.SetValue(s.Min + f*(s.Max-s.Min))
}

// Sync follows an externally driven value without snapping
func (s *Slider) Sync(v float32) {
	s.value = s.clamp(v)
}

func (s *Slider) clamp(v float32) float32 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}
