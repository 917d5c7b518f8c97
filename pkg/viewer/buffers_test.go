package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
	"github.com/philipparndt/probeview/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenPlane(t *testing.T) {
	b, err := Flatten(geometry.Plane(2, 2))
	require.NoError(t, err)

	assert.Equal(t, 4, b.VertexCount())
	assert.Equal(t, 2, b.TriangleCount())
	// top-left corner: v = 1 in mesh space is row 0 in texture space
	assert.Equal(t, []float32{-1, 1, 0}, b.Vertices[0:3])
	assert.Equal(t, []float32{0, 0}, b.Texcoords[0:2])
	assert.Equal(t, []float32{0, 0, 1}, b.Normals[0:3])
}

func TestFlattenRejectsLargeMesh(t *testing.T) {
	m := geometry.NewMesh()
	m.Positions = make([]mgl32.Vec3, 70000)
	_, err := Flatten(m)
	assert.Error(t, err)
}

func TestBakeColorsUnlit(t *testing.T) {
	mat := scene.NewTranslucentMaterial(red, 0.5)
	mat.Unlit = true
	out := BakeColors(nil, geometry.Plane(1, 1), mat, mgl32.Ident4(), scene.Lighting{})

	require.Len(t, out, 16)
	assert.Equal(t, []uint8{255, 0, 0, mat.Alpha()}, out[0:4])
}

func TestBakeColorsLit(t *testing.T) {
	lighting := scene.Lighting{
		Point: scene.PointLight{Color: red, Intensity: 1, Position: mgl32.Vec3{0, 0, 10}},
	}
	mat := scene.NewStandardMaterial(red)
	lit := BakeColors(nil, geometry.Plane(1, 1), mat, mgl32.Ident4(), lighting)
	assert.Greater(t, lit[0], uint8(200))

	// turned away from the light only ambient (none here) remains
	away := BakeColors(lit, geometry.Plane(1, 1), mat, mgl32.HomogRotate3DY(3.14159), lighting)
	assert.Equal(t, uint8(0), away[0])
}

func TestEdgesDeduplicates(t *testing.T) {
	assert.Len(t, Edges(geometry.Plane(1, 1)), 5)
}
