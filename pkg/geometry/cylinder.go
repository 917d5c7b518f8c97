package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultGapAngle is the angular width of the slit in a gapped tube
const DefaultGapAngle = math.Pi / 8

// CylinderOptions configures a revolved tube. Angles are measured about +Y
// starting at +Z, so a side vertex sits at (r·sinθ, y, r·cosθ).
type CylinderOptions struct {
	RadiusTop      float32
	RadiusBottom   float32
	Height         float32
	RadialSegments int
	ThetaStart     float32
	ThetaLength    float32
	OpenEnded      bool
	// CloseCut caps the two flat faces left open by a partial revolution.
	CloseCut bool
}

// Cylinder builds a tube mesh from the options
func Cylinder(opts CylinderOptions) *Mesh {
	if opts.RadialSegments < 3 {
		opts.RadialSegments = 3
	}
	if opts.ThetaLength == 0 {
		opts.ThetaLength = 2 * math.Pi
	}

	m := NewMesh()
	halfHeight := opts.Height / 2
	slope := (opts.RadiusBottom - opts.RadiusTop) / opts.Height
	segments := opts.RadialSegments

	// Side: row 0 is the top ring, row 1 the bottom ring
	var rows [2][]uint32
	for y := 0; y < 2; y++ {
		v := float32(y)
		radius := v*(opts.RadiusBottom-opts.RadiusTop) + opts.RadiusTop
		rows[y] = make([]uint32, segments+1)
		for x := 0; x <= segments; x++ {
			u := float32(x) / float32(segments)
			theta := u*opts.ThetaLength + opts.ThetaStart
			sin, cos := sincos(theta)

			pos := mgl32.Vec3{radius * sin, -v*opts.Height + halfHeight, radius * cos}
			normal := mgl32.Vec3{sin, slope, cos}.Normalize()
			rows[y][x] = m.addVertex(pos, normal, mgl32.Vec2{u, 1 - v})
		}
	}
	for x := 0; x < segments; x++ {
		a := rows[0][x]
		b := rows[1][x]
		c := rows[1][x+1]
		d := rows[0][x+1]
		m.addTriangle(a, b, d)
		m.addTriangle(b, c, d)
	}

	if !opts.OpenEnded {
		if opts.RadiusTop > 0 {
			m.addCap(opts, true)
		}
		if opts.RadiusBottom > 0 {
			m.addCap(opts, false)
		}
	}

	if opts.CloseCut && opts.ThetaLength < 2*math.Pi {
		m.addCutFace(opts, opts.ThetaStart, true)
		m.addCutFace(opts, opts.ThetaStart+opts.ThetaLength, false)
	}

	return m
}

func (m *Mesh) addCap(opts CylinderOptions, top bool) {
	radius := opts.RadiusBottom
	sign := float32(-1)
	if top {
		radius = opts.RadiusTop
		sign = 1
	}
	y := opts.Height / 2 * sign
	normal := mgl32.Vec3{0, sign, 0}

	centerStart := uint32(len(m.Positions))
	for x := 1; x <= opts.RadialSegments; x++ {
		m.addVertex(mgl32.Vec3{0, y, 0}, normal, mgl32.Vec2{0.5, 0.5})
	}

	rimStart := uint32(len(m.Positions))
	for x := 0; x <= opts.RadialSegments; x++ {
		u := float32(x) / float32(opts.RadialSegments)
		theta := u*opts.ThetaLength + opts.ThetaStart
		sin, cos := sincos(theta)
		m.addVertex(
			mgl32.Vec3{radius * sin, y, radius * cos},
			normal,
			mgl32.Vec2{cos*0.5 + 0.5, sin*0.5*sign + 0.5},
		)
	}

	for x := 0; x < opts.RadialSegments; x++ {
		c := centerStart + uint32(x)
		i := rimStart + uint32(x)
		if top {
			m.addTriangle(i, i+1, c)
		} else {
			m.addTriangle(i+1, i, c)
		}
	}
}

// addCutFace closes the rectangle between the axis and the rim at angle theta.
// The solid lies on the increasing-theta side of the start face and on the
// decreasing side of the end face.
func (m *Mesh) addCutFace(opts CylinderOptions, theta float32, start bool) {
	sin, cos := sincos(theta)
	halfHeight := opts.Height / 2

	tangent := mgl32.Vec3{cos, 0, -sin}
	normal := tangent
	if start {
		normal = tangent.Mul(-1)
	}

	axisTop := mgl32.Vec3{0, halfHeight, 0}
	axisBottom := mgl32.Vec3{0, -halfHeight, 0}
	rimBottom := mgl32.Vec3{opts.RadiusBottom * sin, -halfHeight, opts.RadiusBottom * cos}
	rimTop := mgl32.Vec3{opts.RadiusTop * sin, halfHeight, opts.RadiusTop * cos}

	m.addQuad(axisTop, axisBottom, rimBottom, rimTop, normal)
}

// FullTube builds a closed cylinder of constant radius
func FullTube(radius, height float32, radialSegments int) *Mesh {
	return Cylinder(CylinderOptions{
		RadiusTop:      radius,
		RadiusBottom:   radius,
		Height:         height,
		RadialSegments: radialSegments,
		ThetaLength:    2 * math.Pi,
	})
}

// GappedTube builds a cylinder revolved through 2π - gap. The cut faces are
// capped and the slit is centered on +Z.
func GappedTube(radius, height float32, radialSegments int, gap float32) *Mesh {
	m := Cylinder(CylinderOptions{
		RadiusTop:      radius,
		RadiusBottom:   radius,
		Height:         height,
		RadialSegments: radialSegments,
		ThetaStart:     gap/2 - math.Pi/2,
		ThetaLength:    2*math.Pi - gap,
		CloseCut:       true,
	})
	m.RotateY(math.Pi / 2)
	return m
}

func sincos(theta float32) (float32, float32) {
	s, c := math.Sincos(float64(theta))
	return float32(s), float32(c)
}
