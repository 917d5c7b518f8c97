package analysis

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
	"github.com/philipparndt/probeview/pkg/stl"
	"github.com/stretchr/testify/assert"
)

func modelOf(mesh *geometry.Mesh, offset mgl32.Vec3) *stl.Model {
	m := stl.NewModel("test")
	m.AddMesh(mesh, mgl32.Translate3D(offset.X(), offset.Y(), offset.Z()))
	return m
}

func TestAnalyzeFullTube(t *testing.T) {
	const r, h = 0.4, 2.0
	result := AnalyzeModel(modelOf(geometry.FullTube(r, h, 128), mgl32.Vec3{3, -4, 1}))

	assert.Equal(t, 128*4, result.TriangleCount)
	assert.Equal(t, result.TriangleCount*3, result.EdgeCount)
	assert.InDelta(t, h, result.Dimensions.Y(), 1e-4)

	cylinder := math.Pi * r * r * h
	assert.InDelta(t, cylinder, result.Volume, cylinder*0.01)
	assert.InDelta(t, 2*math.Pi*r*h, result.LateralArea, 2*math.Pi*r*h*0.01)
	assert.InDelta(t, 2*math.Pi*r*h+2*math.Pi*r*r, result.SurfaceArea, 0.05)
	assert.LessOrEqual(t, result.MinEdgeLength, result.AvgEdgeLength)
	assert.LessOrEqual(t, result.AvgEdgeLength, result.MaxEdgeLength)
}

func TestAnalyzeGappedTube(t *testing.T) {
	const r, h = 0.4, 2.0
	gap := float32(math.Pi / 8)
	result := AnalyzeModel(modelOf(geometry.GappedTube(r, h, 128, gap), mgl32.Vec3{}))

	fraction := (2*math.Pi - float64(gap)) / (2 * math.Pi)
	assert.InDelta(t, 2*math.Pi*r*h*fraction, result.LateralArea, 0.02)
	assert.InDelta(t, math.Pi*r*r*h*fraction, result.Volume, 0.01)
}

func TestAnalyzeEmpty(t *testing.T) {
	result := AnalyzeModel(stl.NewModel("empty"))
	assert.Zero(t, result.TriangleCount)
	assert.Zero(t, result.Volume)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.5000 mm", FormatMeasurement(1.5, "mm"))
	assert.Equal(t, "2.0000 units", FormatMeasurement(2, ""))
	assert.Equal(t, "(1.0000, -2.0000, 0.5000)", FormatVector(mgl32.Vec3{1, -2, 0.5}))
}
