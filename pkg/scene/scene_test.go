package scene

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grey = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 255}

func TestWorldMatrixFollowsParent(t *testing.T) {
	group := NewNode("group")
	group.Position = mgl32.Vec3{0, -4, 0}

	child := NewNode("child")
	child.Position = mgl32.Vec3{0, 5, 0}
	group.Add(child)

	assert.True(t, child.WorldPosition().ApproxEqual(mgl32.Vec3{0, 1, 0}))

	group.Rotation = mgl32.Vec3{0, math.Pi / 2, 0}
	child.Position = mgl32.Vec3{0, 0, 1}
	// absolute tolerance: the rotation leaves a tiny residue where 0 is expected
	assert.Less(t, child.WorldPosition().Sub(mgl32.Vec3{1, -4, 0}).Len(), float32(1e-5))
}

func TestAddReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")

	a.Add(c)
	b.Add(c)

	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{c}, b.Children())
	assert.Same(t, b, c.Parent())
}

func TestNodeIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, NewNode("x").ID, NewNode("x").ID)
}

func TestIntersectSortsByDistance(t *testing.T) {
	near := NewMeshNode("near", geometry.Plane(1, 1), NewStandardMaterial(grey))
	near.Position = mgl32.Vec3{0, 0, 1}
	far := NewMeshNode("far", geometry.Plane(1, 1), NewStandardMaterial(grey))

	ray := geometry.NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	hits := Intersect(ray, []*Node{far, near}, false)

	require.Len(t, hits, 2)
	assert.Same(t, near, hits[0].Node)
	assert.InDelta(t, 4.0, hits[0].Distance, 1e-5)
	assert.Same(t, far, hits[1].Node)
	assert.InDelta(t, 5.0, hits[1].Distance, 1e-5)
}

func TestIntersectRecursive(t *testing.T) {
	parent := NewMeshNode("tube", geometry.FullTube(0.4, 2, 32), NewStandardMaterial(grey))
	parent.Position = mgl32.Vec3{0, 3, 0}
	decal := NewMeshNode("decal", geometry.Plane(1, 1), NewDecalMaterial(nil))
	decal.Decal = true
	decal.Position = mgl32.Vec3{0, 0, 0.42}
	parent.Add(decal)

	ray := geometry.NewRay(mgl32.Vec3{0.05, 3, 10}, mgl32.Vec3{0, 0, -1})

	flat := Intersect(ray, []*Node{parent}, false)
	require.Len(t, flat, 1)
	assert.Same(t, parent, flat[0].Node)

	deep := Intersect(ray, []*Node{parent}, true)
	require.Len(t, deep, 2)
	assert.Same(t, decal, deep[0].Node, "decal sits in front of the tube")
	assert.Same(t, parent, deep[1].Node)
}

func TestIntersectSkipsInvisible(t *testing.T) {
	n := NewMeshNode("plane", geometry.Plane(1, 1), NewStandardMaterial(grey))
	n.Visible = false

	ray := geometry.NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	assert.Empty(t, Intersect(ray, []*Node{n}, true))
}

func TestRenderablesOrder(t *testing.T) {
	s := New(color.RGBA{A: 255})
	decal := NewMeshNode("decal", geometry.Plane(1, 1), NewDecalMaterial(nil))
	volume := NewMeshNode("volume", geometry.Plane(1, 1), NewTranslucentMaterial(grey, 0.1))
	volume.RenderOrder = 1
	capsule := NewMeshNode("capsule", geometry.Plane(1, 1), NewTranslucentMaterial(grey, 0.8))
	solid := NewMeshNode("solid", geometry.Plane(1, 1), NewStandardMaterial(grey))
	hidden := NewMeshNode("hidden", geometry.Plane(1, 1), NewStandardMaterial(grey))
	hidden.Visible = false

	for _, n := range []*Node{decal, volume, capsule, solid, hidden} {
		s.Add(n)
	}

	assert.Equal(t, []*Node{solid, capsule, volume, decal}, s.Renderables())
}

func TestShade(t *testing.T) {
	l := Lighting{
		Ambient: AmbientLight{Color: grey, Intensity: 1},
		Point:   PointLight{Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}, Intensity: 1, Position: mgl32.Vec3{0, 0, 10}},
	}

	facing := l.Shade(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})
	away := l.Shade(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})

	assert.InDelta(t, 0x40/255.0+1, facing.X(), 1e-5)
	assert.InDelta(t, 0x40/255.0, away.X(), 1e-5)

	lit := Apply(color.RGBA{R: 220, A: 128}, facing)
	assert.Equal(t, uint8(255), lit.R)
	assert.Equal(t, uint8(128), lit.A)
}

func TestWorldLightingFollowsRoot(t *testing.T) {
	s := New(color.RGBA{A: 255})
	s.Lighting.Point.Position = mgl32.Vec3{0, 0, 10}
	assert.Equal(t, s.Lighting, s.WorldLighting())

	s.Root.Rotation = mgl32.Vec3{0, math.Pi / 2, 0}
	got := s.WorldLighting().Point.Position
	assert.Less(t, got.Sub(mgl32.Vec3{10, 0, 0}).Len(), float32(1e-4))
	// the configured position is left alone
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, s.Lighting.Point.Position)
}

func TestMaterialVersion(t *testing.T) {
	m := NewStandardMaterial(grey)
	m.SetColor(grey)
	assert.Equal(t, 0, m.Version)
	m.SetColor(color.RGBA{B: 255, A: 255})
	assert.Equal(t, 1, m.Version)
	assert.Equal(t, uint8(204), (&Material{Opacity: 0.8}).Alpha())
}
