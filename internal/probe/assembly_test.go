package probe

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallOptions keeps meshes coarse so tests stay fast
func smallOptions() AssemblyOptions {
	opts := DefaultAssemblyOptions()
	opts.Segment.RadialSegments = 24
	opts.Capsule.CapSegments = 6
	opts.Capsule.RadialSegments = 16
	return opts
}

func TestValidateLabels(t *testing.T) {
	assert.NoError(t, ValidateLabels(DefaultLabels()))
	assert.Error(t, ValidateLabels(nil))
	assert.Error(t, ValidateLabels([]Label{{Text: ""}}))
	assert.Error(t, ValidateLabels([]Label{{Text: "1", Slot: -1}}))
	assert.Error(t, ValidateLabels([]Label{{Text: "1", Slot: 0}, {Text: "2", Slot: 0}}))
}

func TestNewAssemblyLayout(t *testing.T) {
	a, err := NewAssembly(DefaultLabels(), TriState(), smallOptions())
	require.NoError(t, err)
	require.Len(t, a.Segments, 4)

	assert.Equal(t, float32(-4), a.Offset())
	assert.Equal(t, float32(1), a.Direction())

	for i, s := range a.Segments {
		assert.InDelta(t, float64(i)*2.5, s.Node.Position.Y(), 1e-6, s.Label.Text)
		assert.Equal(t, Neutral, s.Color())
		assert.Same(t, s, a.SegmentFor(s.Node))
		assert.Nil(t, a.SegmentFor(s.Decal))

		assert.True(t, s.Decal.Decal)
		assert.Greater(t, s.Decal.Position.Z(), float32(0.4), "decal sits outside the tube")
		assert.False(t, s.Decal.Material.DepthTest)
		assert.NotNil(t, s.Decal.Material.Texture)
	}

	// gapped tubes share one mesh and differ from the full tubes
	assert.Same(t, a.Segment("2A").Node.Mesh, a.Segment("3A").Node.Mesh)
	assert.Same(t, a.Segment("1").Node.Mesh, a.Segment("4").Node.Mesh)
	assert.NotSame(t, a.Segment("1").Node.Mesh, a.Segment("2A").Node.Mesh)

	assert.Equal(t, float32(5), a.Capsule.Position.Y())
	assert.False(t, a.Capsule.Material.DepthWrite)
	assert.Len(t, a.Interactive(), 4)
}

func TestSetOffsetMovesEverything(t *testing.T) {
	a, err := NewAssembly(DefaultLabels(), TriState(), smallOptions())
	require.NoError(t, err)

	before := make([]mgl32.Vec3, 0)
	for _, s := range a.Segments {
		before = append(before, s.Decal.WorldPosition())
	}
	capsuleBefore := a.Capsule.WorldPosition()

	a.SetOffset(1)
	assert.Equal(t, float32(1), a.Offset())

	for i, s := range a.Segments {
		assert.InDelta(t, before[i].Y()+5, s.Decal.WorldPosition().Y(), 1e-5)
	}
	assert.InDelta(t, capsuleBefore.Y()+5, a.Capsule.WorldPosition().Y(), 1e-5)
}

func TestSegmentAdvance(t *testing.T) {
	a, err := NewAssembly(DefaultLabels(), Toggle(), smallOptions())
	require.NoError(t, err)

	s := a.Segment("4")
	assert.Equal(t, Blue, s.Color())
	assert.Equal(t, Red, s.Advance(Toggle()))
	assert.Equal(t, Red.RGBA(), s.Node.Material.Color)
	assert.Equal(t, Blue, s.Advance(Toggle()))
}

func TestSetDirection(t *testing.T) {
	a, err := NewAssembly(DefaultLabels(), TriState(), smallOptions())
	require.NoError(t, err)

	a.SetDirection(-0.5)
	assert.Equal(t, float32(-1), a.Direction())
	a.SetDirection(0)
	assert.Equal(t, float32(1), a.Direction())
}

func TestNewAssemblyRejectsBadInput(t *testing.T) {
	_, err := NewAssembly([]Label{{Text: "1"}, {Text: "2"}}, TriState(), smallOptions())
	assert.Error(t, err)

	opts := smallOptions()
	opts.Segment.Height = 0
	_, err = NewAssembly(DefaultLabels(), TriState(), opts)
	assert.Error(t, err)
}

func TestTargetVolume(t *testing.T) {
	opts := DefaultVolumeOptions()
	opts.RadialSegments = 16
	v := NewTargetVolume(opts)

	assert.Equal(t, float32(-10), v.Position.Y())
	assert.Equal(t, 1, v.RenderOrder)
	assert.True(t, v.Material.Transparent)
	assert.False(t, v.Material.DepthWrite)
	assert.InDelta(t, 0.1, v.Material.Opacity, 1e-6)
	assert.InDelta(t, 3.0, v.Mesh.Bounds().Size().Y(), 1e-5)
}
