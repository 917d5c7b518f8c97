package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lathe revolves a profile (x = radius, y = height) about the Y axis.
// The profile should run bottom to top so normals face outward.
func Lathe(points []mgl32.Vec2, segments int, phiStart, phiLength float32) *Mesh {
	m := NewMesh()
	n := len(points)
	if n < 2 {
		return m
	}
	if segments < 3 {
		segments = 3
	}

	profileNormals := make([]mgl32.Vec2, n)
	for j := range points {
		prev := points[max(j-1, 0)]
		next := points[min(j+1, n-1)]
		t := next.Sub(prev)
		normal := mgl32.Vec2{t.Y(), -t.X()}
		if normal.Len() > 0 {
			normal = normal.Normalize()
		}
		profileNormals[j] = normal
	}

	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments)
		phi := phiStart + u*phiLength
		sin, cos := sincos(phi)
		for j, p := range points {
			pos := mgl32.Vec3{p.X() * sin, p.Y(), p.X() * cos}
			pn := profileNormals[j]
			normal := mgl32.Vec3{pn.X() * sin, pn.Y(), pn.X() * cos}
			m.addVertex(pos, normal, mgl32.Vec2{u, float32(j) / float32(n-1)})
		}
	}

	for i := 0; i < segments; i++ {
		for j := 0; j < n-1; j++ {
			base := uint32(j + i*n)
			a := base
			b := base + uint32(n)
			c := base + uint32(n) + 1
			d := base + 1
			m.addTriangle(a, b, d)
			m.addTriangle(c, d, b)
		}
	}

	return m
}

// Capsule builds a cylinder of the given straight length with hemispherical
// ends, centered on the origin along Y.
func Capsule(radius, length float32, capSegments, radialSegments int) *Mesh {
	if capSegments < 1 {
		capSegments = 1
	}
	half := length / 2
	points := make([]mgl32.Vec2, 0, 2*(capSegments+1))

	for i := 0; i <= capSegments; i++ {
		a := -math.Pi/2 + math.Pi/2*float32(i)/float32(capSegments)
		sin, cos := sincos(a)
		points = append(points, mgl32.Vec2{radius * cos, -half + radius*sin})
	}
	for i := 0; i <= capSegments; i++ {
		a := math.Pi / 2 * float32(i) / float32(capSegments)
		sin, cos := sincos(a)
		points = append(points, mgl32.Vec2{radius * cos, half + radius*sin})
	}

	return Lathe(points, radialSegments, 0, 2*math.Pi)
}

// Plane builds a rectangle in the XY plane facing +Z
func Plane(width, height float32) *Mesh {
	m := NewMesh()
	w := width / 2
	h := height / 2
	normal := mgl32.Vec3{0, 0, 1}

	tl := m.addVertex(mgl32.Vec3{-w, h, 0}, normal, mgl32.Vec2{0, 1})
	tr := m.addVertex(mgl32.Vec3{w, h, 0}, normal, mgl32.Vec2{1, 1})
	bl := m.addVertex(mgl32.Vec3{-w, -h, 0}, normal, mgl32.Vec2{0, 0})
	br := m.addVertex(mgl32.Vec3{w, -h, 0}, normal, mgl32.Vec2{1, 0})

	m.addTriangle(tl, bl, tr)
	m.addTriangle(bl, br, tr)
	return m
}
