package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle mesh. Texture coordinates use a bottom-left
// origin: v = 1 is the top row of the image.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32

	bounds      AABB
	boundsValid bool
}

// NewMesh creates an empty mesh
func NewMesh() *Mesh {
	return &Mesh{
		Positions: make([]mgl32.Vec3, 0),
		Normals:   make([]mgl32.Vec3, 0),
		UVs:       make([]mgl32.Vec2, 0),
		Indices:   make([]uint32, 0),
	}
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the i-th triangle with its winding normal
func (m *Mesh) Triangle(i int) Triangle {
	a := m.Positions[m.Indices[i*3]]
	b := m.Positions[m.Indices[i*3+1]]
	c := m.Positions[m.Indices[i*3+2]]
	t := Triangle{V1: a, V2: b, V3: c}
	t.Normal = t.CalculateNormal()
	return t
}

// Triangles returns all triangles of the mesh
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, m.TriangleCount())
	for i := range out {
		out[i] = m.Triangle(i)
	}
	return out
}

// Bounds returns the local bounding box
func (m *Mesh) Bounds() AABB {
	if !m.boundsValid {
		m.bounds = NewAABB()
		for _, p := range m.Positions {
			m.bounds.Extend(p)
		}
		m.boundsValid = true
	}
	return m.bounds
}

// SurfaceArea returns the summed area of all triangles
func (m *Mesh) SurfaceArea() float32 {
	total := float32(0)
	for i := 0; i < m.TriangleCount(); i++ {
		total += m.Triangle(i).Area()
	}
	return total
}

// Transform returns a copy of the mesh with positions and normals mapped through mat
func (m *Mesh) Transform(mat mgl32.Mat4) *Mesh {
	normalMat := mat.Mat3().Inv().Transpose()

	out := &Mesh{
		Positions: make([]mgl32.Vec3, len(m.Positions)),
		Normals:   make([]mgl32.Vec3, len(m.Normals)),
		UVs:       append([]mgl32.Vec2(nil), m.UVs...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for i, p := range m.Positions {
		out.Positions[i] = mgl32.TransformCoordinate(p, mat)
	}
	for i, n := range m.Normals {
		tn := normalMat.Mul3x1(n)
		if tn.Len() > 0 {
			tn = tn.Normalize()
		}
		out.Normals[i] = tn
	}
	return out
}

// RotateY rotates the mesh in place about the Y axis
func (m *Mesh) RotateY(angle float32) {
	rot := mgl32.Rotate3DY(angle)
	for i := range m.Positions {
		m.Positions[i] = rot.Mul3x1(m.Positions[i])
	}
	for i := range m.Normals {
		m.Normals[i] = rot.Mul3x1(m.Normals[i])
	}
	m.boundsValid = false
}

// Intersect returns the nearest hit of the ray with the mesh
func (m *Mesh) Intersect(r Ray) (float32, bool) {
	if _, ok := r.IntersectBox(m.Bounds()); !ok {
		return 0, false
	}

	best := float32(math.MaxFloat32)
	hit := false
	for i := 0; i < m.TriangleCount(); i++ {
		if t, ok := m.Triangle(i).Intersect(r); ok && t < best {
			best = t
			hit = true
		}
	}
	return best, hit
}

func (m *Mesh) addVertex(p, n mgl32.Vec3, uv mgl32.Vec2) uint32 {
	m.Positions = append(m.Positions, p)
	m.Normals = append(m.Normals, n)
	m.UVs = append(m.UVs, uv)
	m.boundsValid = false
	return uint32(len(m.Positions) - 1)
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// addQuad adds a flat quad p0..p3 (in perimeter order), winding the two
// triangles so that they face along normal.
func (m *Mesh) addQuad(p0, p1, p2, p3, normal mgl32.Vec3) {
	i0 := m.addVertex(p0, normal, mgl32.Vec2{0, 1})
	i1 := m.addVertex(p1, normal, mgl32.Vec2{0, 0})
	i2 := m.addVertex(p2, normal, mgl32.Vec2{1, 0})
	i3 := m.addVertex(p3, normal, mgl32.Vec2{1, 1})

	if p1.Sub(p0).Cross(p2.Sub(p0)).Dot(normal) >= 0 {
		m.addTriangle(i0, i1, i2)
		m.addTriangle(i0, i2, i3)
	} else {
		m.addTriangle(i0, i2, i1)
		m.addTriangle(i0, i3, i2)
	}
}
