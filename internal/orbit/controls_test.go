package orbit

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCamera() *viewer.Camera {
	return viewer.NewCamera(mgl32.Vec3{0, -15, 20}, mgl32.Vec3{}, 75, 0.1, 1000, 800, 600)
}

func undamped() Options {
	opts := DefaultOptions()
	opts.Damping = false
	return opts
}

func TestSyncKeepsPose(t *testing.T) {
	cam := testCamera()
	c := New(cam, undamped())

	c.Update(cam)
	assert.InDelta(t, 0, cam.Position.X(), 1e-4)
	assert.InDelta(t, -15, cam.Position.Y(), 1e-4)
	assert.InDelta(t, 20, cam.Position.Z(), 1e-4)
	assert.InDelta(t, 25, c.Distance(), 1e-4)

	assert.False(t, c.Update(cam), "no input, no movement")
}

func TestRotateUndamped(t *testing.T) {
	cam := testCamera()
	c := New(cam, undamped())

	// a quarter of the viewport height is a quarter turn
	c.Rotate(-150, 0, 600)
	require.True(t, c.Update(cam))

	assert.InDelta(t, 25, cam.Position.Len(), 1e-3)
	assert.InDelta(t, 20, cam.Position.X(), 1e-3)
	assert.InDelta(t, 0, cam.Position.Z(), 1e-3)
	assert.InDelta(t, -15, cam.Position.Y(), 1e-3)
}

func TestRotateDampedConverges(t *testing.T) {
	cam := testCamera()
	c := New(cam, DefaultOptions())

	c.Rotate(-150, 0, 600)
	c.Update(cam)
	assert.Less(t, cam.Position.X(), float32(19.9), "first frame only moves part of the way")
	assert.Greater(t, cam.Position.X(), float32(0))
	assert.False(t, c.Settled())

	for i := 0; i < 240 && !c.Settled(); i++ {
		c.Update(cam)
	}
	assert.True(t, c.Settled())
	assert.InDelta(t, 20, cam.Position.X(), 1e-2)
}

func TestPolarClamp(t *testing.T) {
	cam := testCamera()
	c := New(cam, undamped())

	c.Rotate(0, 100000, 600)
	c.Update(cam)
	assert.Greater(t, c.Polar(), 0.0)
	assert.LessOrEqual(t, cam.Position.Y(), float32(25))

	c.Rotate(0, -100000, 600)
	c.Update(cam)
	assert.Less(t, c.Polar(), math.Pi)
	assert.GreaterOrEqual(t, cam.Position.Y(), float32(-25))

	opts := undamped()
	opts.MaxPolar = math.Pi / 2
	limited := New(testCamera(), opts)
	assert.InDelta(t, math.Pi/2, limited.Polar(), 1e-6, "initial pose is clamped too")
}

func TestZoomAndDolly(t *testing.T) {
	cam := testCamera()
	c := New(cam, undamped())

	c.Zoom(1)
	assert.InDelta(t, 25*0.95, c.Distance(), 1e-4)

	c.DollyDrag(5)
	assert.InDelta(t, 25, c.Distance(), 1e-4)

	c.Dolly(0)
	assert.InDelta(t, 25, c.Distance(), 1e-4, "non-positive scale is ignored")

	opts := undamped()
	opts.MinDistance = 20
	limited := New(testCamera(), opts)
	limited.Dolly(0.1)
	assert.InDelta(t, 20, limited.Distance(), 1e-6)
}

func TestPanMovesTarget(t *testing.T) {
	cam := testCamera()
	c := New(cam, undamped())

	c.Pan(100, 0, cam)
	c.Update(cam)

	assert.Less(t, cam.Target.X(), float32(0), "dragging right moves the target left")
	assert.InDelta(t, 0, cam.Target.Y(), 1e-5, "horizontal pan stays in the ground plane")
	assert.InDelta(t, 25, cam.Position.Sub(cam.Target).Len(), 1e-3)

	c.Pan(0, 100, cam)
	c.Update(cam)
	assert.InDelta(t, 0, cam.Target.Y(), 1e-5)
	assert.Less(t, cam.Target.Z(), float32(0), "dragging down moves the target forward")
}

func TestDragDispatch(t *testing.T) {
	cam := testCamera()
	c := New(cam, undamped())

	c.Drag(None, 100, 100, cam)
	c.Drag(c.Bindings().Middle, 0, -1, cam)
	assert.InDelta(t, 25*0.95, c.Distance(), 1e-4)
}

func TestSetDampingSnaps(t *testing.T) {
	cam := testCamera()
	c := New(cam, DefaultOptions())
	c.Zoom(2)
	c.SetDamping(false)
	assert.True(t, c.Settled())
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("Pan")
	require.NoError(t, err)
	assert.Equal(t, Pan, a)

	_, err = ParseAction("spin")
	assert.Error(t, err)
}
