package viewer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
	"github.com/philipparndt/probeview/pkg/scene"
)

// MeshBuffers holds a mesh flattened into the interleaved-free arrays a GPU
// upload expects. Texture coordinates are flipped to a top-left origin.
type MeshBuffers struct {
	Vertices  []float32
	Normals   []float32
	Texcoords []float32
	Indices   []uint16
}

// VertexCount returns the number of vertices
func (b *MeshBuffers) VertexCount() int {
	return len(b.Vertices) / 3
}

// TriangleCount returns the number of triangles
func (b *MeshBuffers) TriangleCount() int {
	return len(b.Indices) / 3
}

// Flatten converts a mesh to GPU arrays. 16-bit indices limit a mesh to
// 65535 vertices.
func Flatten(mesh *geometry.Mesh) (*MeshBuffers, error) {
	n := mesh.VertexCount()
	if n > math.MaxUint16 {
		return nil, fmt.Errorf("mesh has %d vertices, limit is %d", n, math.MaxUint16)
	}

	b := &MeshBuffers{
		Vertices:  make([]float32, n*3),
		Normals:   make([]float32, n*3),
		Texcoords: make([]float32, n*2),
		Indices:   make([]uint16, len(mesh.Indices)),
	}
	for i, p := range mesh.Positions {
		copy(b.Vertices[i*3:], p[:])
		if i < len(mesh.Normals) {
			copy(b.Normals[i*3:], mesh.Normals[i][:])
		}
		if i < len(mesh.UVs) {
			b.Texcoords[i*2] = mesh.UVs[i].X()
			b.Texcoords[i*2+1] = 1 - mesh.UVs[i].Y()
		}
	}
	for i, idx := range mesh.Indices {
		b.Indices[i] = uint16(idx)
	}
	return b, nil
}

// BakeColors computes one RGBA color per vertex: the material color lit in
// world space, with the material alpha. out is reused when large enough.
func BakeColors(out []uint8, mesh *geometry.Mesh, mat *scene.Material, world mgl32.Mat4, lighting scene.Lighting) []uint8 {
	n := mesh.VertexCount()
	if cap(out) < n*4 {
		out = make([]uint8, n*4)
	}
	out = out[:n*4]

	alpha := mat.Alpha()
	normalMat := world.Mat3().Inv().Transpose()
	for i, p := range mesh.Positions {
		c := mat.Color
		if !mat.Unlit && i < len(mesh.Normals) {
			n := normalMat.Mul3x1(mesh.Normals[i])
			c = scene.Apply(c, lighting.Shade(mgl32.TransformCoordinate(p, world), n))
		}
		out[i*4] = c.R
		out[i*4+1] = c.G
		out[i*4+2] = c.B
		out[i*4+3] = alpha
	}
	return out
}

// Edges returns each undirected triangle edge once, as index pairs
func Edges(mesh *geometry.Mesh) [][2]uint32 {
	seen := make(map[[2]uint32]bool, len(mesh.Indices))
	var out [][2]uint32
	for t := 0; t < mesh.TriangleCount(); t++ {
		tri := mesh.Indices[t*3 : t*3+3]
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]uint32{a, b}
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out
}
