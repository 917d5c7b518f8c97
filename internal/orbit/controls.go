// Package orbit implements orbit camera controls around a target point with
// spring based damping.
package orbit

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/viewer"
)

// Action is what a mouse drag does
type Action int

const (
	None Action = iota
	Rotate
	Dolly
	Pan
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case Rotate:
		return "rotate"
	case Dolly:
		return "dolly"
	case Pan:
		return "pan"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction parses an action name
func ParseAction(s string) (Action, error) {
	for _, a := range []Action{None, Rotate, Dolly, Pan} {
		if strings.EqualFold(strings.TrimSpace(s), a.String()) {
			return a, nil
		}
	}
	return None, fmt.Errorf("unknown mouse action %q", s)
}

// Bindings maps mouse buttons to actions
type Bindings struct {
	Left   Action
	Middle Action
	Right  Action
}

// Options configures the controls
type Options struct {
	Damping       bool
	DampingFactor float32
	MinPolar      float32
	MaxPolar      float32
	MinDistance   float32
	MaxDistance   float32
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32
	FPS           int
	Bindings      Bindings
}

// DefaultOptions returns damped controls with the usual mouse layout
func DefaultOptions() Options {
	return Options{
		Damping:       true,
		DampingFactor: 0.5,
		MinPolar:      0,
		MaxPolar:      2 * math.Pi,
		MinDistance:   0,
		MaxDistance:   float32(math.Inf(1)),
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		FPS:           60,
		Bindings:      Bindings{Left: Rotate, Middle: Dolly, Right: Pan},
	}
}

// frequencyPerFactor converts the damping factor to a spring angular frequency
const frequencyPerFactor = 30.0

// epsilon keeps the polar angle away from the poles
const epsilon = 1e-6

// axis is one damped scalar chasing its goal
type axis struct {
	value  float64
	vel    float64
	goal   float64
	spring harmonica.Spring
}

func (a *axis) update(damping bool) {
	if !damping {
		a.value = a.goal
		a.vel = 0
		return
	}
	a.value, a.vel = a.spring.Update(a.value, a.vel, a.goal)
}

func (a *axis) settle() {
	a.value = a.goal
	a.vel = 0
}

// Controls orbits a camera around a target using spherical coordinates:
// phi is the polar angle from +Y, theta the azimuth about Y starting at +Z.
type Controls struct {
	opts Options

	theta, phi, radius axis
	target             [3]axis
}

// New creates controls initialized from the camera pose
func New(cam *viewer.Camera, opts Options) *Controls {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	spring := harmonica.NewSpring(harmonica.FPS(opts.FPS), frequencyPerFactor*float64(opts.DampingFactor), 1.0)

	c := &Controls{opts: opts}
	for _, a := range c.axes() {
		a.spring = spring
	}
	c.Sync(cam)
	return c
}

func (c *Controls) axes() []*axis {
	return []*axis{&c.theta, &c.phi, &c.radius, &c.target[0], &c.target[1], &c.target[2]}
}

// Options returns the active options
func (c *Controls) Options() Options {
	return c.opts
}

// Bindings returns the mouse button mapping
func (c *Controls) Bindings() Bindings {
	return c.opts.Bindings
}

// SetDamping enables or disables damping. Disabling snaps to the goals.
func (c *Controls) SetDamping(on bool) {
	c.opts.Damping = on
	if !on {
		for _, a := range c.axes() {
			a.settle()
		}
	}
}

// Sync resets goals and current values to the camera pose
func (c *Controls) Sync(cam *viewer.Camera) {
	offset := cam.Position.Sub(cam.Target)
	radius := float64(offset.Len())
	theta := math.Atan2(float64(offset.X()), float64(offset.Z()))
	phi := 0.0
	if radius > 0 {
		phi = math.Acos(clamp(float64(offset.Y())/radius, -1, 1))
	}

	c.theta.goal, c.phi.goal, c.radius.goal = theta, c.clampPolar(phi), radius
	for i := range c.target {
		c.target[i].goal = float64(cam.Target[i])
	}
	for _, a := range c.axes() {
		a.settle()
	}
}

// Rotate orbits by a pointer movement in pixels. A full viewport height
// corresponds to a full turn.
func (c *Controls) Rotate(dx, dy float32, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	h := float64(viewportHeight)
	speed := float64(c.opts.RotateSpeed)
	c.theta.goal -= 2 * math.Pi * float64(dx) / h * speed
	c.phi.goal = c.clampPolar(c.phi.goal - 2*math.Pi*float64(dy)/h*speed)
}

// Dolly multiplies the distance to the target by scale
func (c *Controls) Dolly(scale float32) {
	if scale <= 0 {
		return
	}
	c.radius.goal = c.clampDistance(c.radius.goal * float64(scale))
}

// zoomScale is the dolly factor of one zoom step
func (c *Controls) zoomScale() float64 {
	return math.Pow(0.95, float64(c.opts.ZoomSpeed))
}

// Zoom dollies by wheel steps; positive steps move closer
func (c *Controls) Zoom(steps float32) {
	c.Dolly(float32(math.Pow(c.zoomScale(), float64(steps))))
}

// DollyDrag dollies by a vertical pointer movement; dragging down moves away
func (c *Controls) DollyDrag(dy float32) {
	switch {
	case dy > 0:
		c.Dolly(float32(1 / c.zoomScale()))
	case dy < 0:
		c.Dolly(float32(c.zoomScale()))
	}
}

// Pan moves the target with the pointer. Horizontal movement follows the
// camera's right vector, vertical movement the view direction projected on
// the ground plane.
func (c *Controls) Pan(dx, dy float32, cam *viewer.Camera) {
	if cam.Height <= 0 {
		return
	}
	distance := c.radius.value * math.Tan(float64(mgl32.DegToRad(cam.FovY))/2)
	scale := 2 * distance / float64(cam.Height) * float64(c.opts.PanSpeed)

	forward := cam.Target.Sub(cam.Position)
	right := forward.Cross(cam.Up)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	ahead := cam.Up.Cross(right).Normalize()

	move := right.Mul(float32(-float64(dx) * scale)).Add(ahead.Mul(float32(float64(dy) * scale)))
	for i := range c.target {
		c.target[i].goal += float64(move[i])
	}
}

// Drag applies the action bound to a mouse movement
func (c *Controls) Drag(action Action, dx, dy float32, cam *viewer.Camera) {
	switch action {
	case Rotate:
		c.Rotate(dx, dy, cam.Height)
	case Dolly:
		c.DollyDrag(dy)
	case Pan:
		c.Pan(dx, dy, cam)
	case None:
	}
}

// Update advances damping by one frame and writes the pose to the camera.
// It reports whether the camera moved.
func (c *Controls) Update(cam *viewer.Camera) bool {
	for _, a := range c.axes() {
		a.update(c.opts.Damping)
	}

	target := mgl32.Vec3{float32(c.target[0].value), float32(c.target[1].value), float32(c.target[2].value)}
	phi := c.clampPolar(c.phi.value)
	r := math.Max(c.radius.value, epsilon)
	sinPhi := math.Sin(phi)
	offset := mgl32.Vec3{
		float32(r * sinPhi * math.Sin(c.theta.value)),
		float32(r * math.Cos(phi)),
		float32(r * sinPhi * math.Cos(c.theta.value)),
	}

	position := target.Add(offset)
	moved := !position.ApproxEqualThreshold(cam.Position, 1e-6) || !target.ApproxEqualThreshold(cam.Target, 1e-6)
	cam.Position = position
	cam.Target = target
	return moved
}

// Settled reports whether every damped value has reached its goal
func (c *Controls) Settled() bool {
	for _, a := range c.axes() {
		if math.Abs(a.value-a.goal) > 1e-4 || math.Abs(a.vel) > 1e-4 {
			return false
		}
	}
	return true
}

// Polar returns the current polar angle goal
func (c *Controls) Polar() float64 {
	return c.phi.goal
}

// Distance returns the current distance goal
func (c *Controls) Distance() float64 {
	return c.radius.goal
}

func (c *Controls) clampPolar(phi float64) float64 {
	lo := math.Max(float64(c.opts.MinPolar), epsilon)
	hi := math.Min(float64(c.opts.MaxPolar), math.Pi-epsilon)
	return clamp(phi, lo, hi)
}

func (c *Controls) clampDistance(r float64) float64 {
	return clamp(r, float64(c.opts.MinDistance), float64(c.opts.MaxDistance))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
