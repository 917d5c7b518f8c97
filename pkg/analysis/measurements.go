package analysis

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
	"github.com/philipparndt/probeview/pkg/stl"
)

// MeasurementResult contains measurements of a triangle model
type MeasurementResult struct {
	BoundingBox   geometry.AABB
	Dimensions    mgl32.Vec3
	Volume        float32 // enclosed volume, valid for closed meshes
	BoxVolume     float32
	SurfaceArea   float32
	LateralArea   float32 // area of the outer wall around the vertical axis
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float32
	MaxEdgeLength float32
	AvgEdgeLength float32
}

// AnalyzeModel measures an STL model
func AnalyzeModel(model *stl.Model) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
	}
	if result.TriangleCount == 0 {
		return result
	}

	result.Dimensions = result.BoundingBox.Size()
	result.BoxVolume = result.BoundingBox.Volume()

	minLength := float32(math.MaxFloat32)
	maxLength := float32(0)
	totalLength := float32(0)
	signedVolume := float32(0)

	// signed volumes are taken relative to the box center to limit cancellation
	center := result.BoundingBox.Center()

	for _, triangle := range model.Triangles {
		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			minLength = min(minLength, length)
			maxLength = max(maxLength, length)
			result.EdgeCount++
		}

		local := geometry.Triangle{
			V1: triangle.V1.Sub(center),
			V2: triangle.V2.Sub(center),
			V3: triangle.V3.Sub(center),
		}
		signedVolume += local.SignedVolume()
	}

	result.MinEdgeLength = minLength
	result.MaxEdgeLength = maxLength
	result.AvgEdgeLength = totalLength / float32(result.EdgeCount)
	result.Volume = float32(math.Abs(float64(signedVolume)))
	result.LateralArea = LateralArea(model)

	return result
}

// LateralArea sums the triangles whose vertices all lie on the outermost
// radius around the vertical axis through the model center. Caps and the cut
// faces of a slit touch the axis and are excluded.
func LateralArea(model *stl.Model) float32 {
	center := model.BoundingBox().Center()
	radial := func(v mgl32.Vec3) float32 {
		return mgl32.Vec2{v.X() - center.X(), v.Z() - center.Z()}.Len()
	}

	maxRadius := float32(0)
	for _, t := range model.Triangles {
		maxRadius = max(maxRadius, radial(t.V1), radial(t.V2), radial(t.V3))
	}
	if maxRadius == 0 {
		return 0
	}

	threshold := maxRadius * 0.95
	area := float32(0)
	for _, t := range model.Triangles {
		if radial(t.V1) >= threshold && radial(t.V2) >= threshold && radial(t.V3) >= threshold {
			area += t.Area()
		}
	}
	return area
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float32, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.4f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X(), v.Y(), v.Z())
}
