package stl

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
)

// Model is a triangle soup as stored in an STL file
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// AddMesh appends the triangles of mesh transformed by world. Degenerate
// triangles are skipped.
func (m *Model) AddMesh(mesh *geometry.Mesh, world mgl32.Mat4) int {
	added := 0
	for _, t := range mesh.Transform(world).Triangles() {
		if t.Area() == 0 {
			continue
		}
		m.AddTriangle(t)
		added++
	}
	return added
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.AABB {
	bbox := geometry.NewAABB()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float32 {
	total := float32(0)
	for _, triangle := range m.Triangles {
		total += triangle.Area()
	}
	return total
}
