package control

import (
	"github.com/philipparndt/probeview/internal/logging"
	"github.com/philipparndt/probeview/internal/probe"
	"github.com/philipparndt/probeview/pkg/scene"
)

// Surface is the output the controller resizes
type Surface interface {
	Resize(width, height int)
}

// Controller queues input events and applies them to the session
type Controller struct {
	session *probe.Session
	surface Surface
	slider  *Slider
	log     logging.Logger

	queue []Event
}

// NewController creates a controller. surface and slider may be nil.
func NewController(session *probe.Session, surface Surface, slider *Slider, log logging.Logger) *Controller {
	return &Controller{
		session: session,
		surface: surface,
		slider:  slider,
		log:     logging.OrNop(log),
	}
}

// Session returns the controlled session
func (c *Controller) Session() *probe.Session {
	return c.session
}

// SetSession swaps the controlled session, dropping queued events
func (c *Controller) SetSession(s *probe.Session) {
	c.session = s
	c.queue = c.queue[:0]
}

// Slider returns the slider model
func (c *Controller) Slider() *Slider {
	return c.slider
}

// Dispatch enqueues an event for the next frame
func (c *Controller) Dispatch(e Event) {
	c.queue = append(c.queue, e)
}

// Pending returns the number of queued events
func (c *Controller) Pending() int {
	return len(c.queue)
}

// Drain applies all queued events in arrival order and returns how many ran
func (c *Controller) Drain() int {
	n := 0
	// events dispatched while draining wait for the next frame
	queued := c.queue
	c.queue = nil
	for _, e := range queued {
		c.apply(e)
		n++
	}
	return n
}

func (c *Controller) apply(e Event) {
	c.log.Debugf("event: %s", describe(e))

	switch e := e.(type) {
	case Click:
		c.click(e.X, e.Y)
	case SliderInput:
		c.setOffset(e.Value)
	case ToggleRotate:
		on := c.session.ToggleAutoRotate()
		c.log.Debugf("auto-rotate: %v", on)
	case Resize:
		c.resize(e.Width, e.Height)
	}
}

// Pick returns the segment under the pixel, skipping decals, or nil
func (c *Controller) Pick(x, y float32) *probe.Segment {
	ray := c.session.Camera.Ray(x, y)
	hits := scene.Intersect(ray, c.session.Assembly.Interactive(), true)
	for _, h := range hits {
		if h.Node.Decal {
			continue
		}
		return c.session.Assembly.SegmentFor(h.Node)
	}
	return nil
}

func (c *Controller) click(x, y float32) {
	seg := c.Pick(x, y)
	if seg == nil {
		return
	}
	color := seg.Advance(c.session.Palette)
	c.log.Infof("segment %s: %s", seg.Label.Text, color)
}

func (c *Controller) setOffset(v float32) {
	if c.slider != nil {
		c.slider.Sync(v)
		v = c.slider.Value()
	}
	c.session.Assembly.SetOffset(v)
}

func (c *Controller) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.session.Camera.SetSize(w, h)
	if c.surface != nil {
		c.surface.Resize(w, h)
	}
}
