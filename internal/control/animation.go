package control

import "fmt"

// Bounce moves the probe back and forth between two bounds
type Bounce struct {
	Enabled bool
	Lower   float32
	Upper   float32
	Step    float32
}

// DefaultBounce returns a disabled bounce over the lower part of the range
func DefaultBounce() Bounce {
	return Bounce{
		Enabled: false,
		Lower:   -8,
		Upper:   2,
		Step:    0.02,
	}
}

// Validate checks the bounds
func (b Bounce) Validate() error {
	if b.Lower >= b.Upper {
		return fmt.Errorf("animation lower bound %.2f must be below upper bound %.2f", b.Lower, b.Upper)
	}
	if b.Step <= 0 {
		return fmt.Errorf("animation step %.2f must be positive", b.Step)
	}
	return nil
}

// Advance moves offset one step in direction. Reaching or crossing a bound
// clamps to it and reverses the direction.
func (b Bounce) Advance(offset, direction float32) (float32, float32) {
	next := offset + b.Step*direction
	switch {
	case next >= b.Upper:
		return b.Upper, -1
	case next <= b.Lower:
		return b.Lower, 1
	default:
		return next, direction
	}
}
