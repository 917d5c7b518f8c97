package viewer

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
	"github.com/philipparndt/probeview/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	background = color.RGBA{R: 0x57, G: 0x57, B: 0x57, A: 255}
	red        = color.RGBA{R: 255, A: 255}
	blue       = color.RGBA{B: 255, A: 255}
)

func frontCamera() *Camera {
	return NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 60, 0.1, 100, 64, 64)
}

func unlitScene() *scene.Scene {
	return scene.New(background)
}

func unlit(c color.RGBA) *scene.Material {
	m := scene.NewStandardMaterial(c)
	m.Unlit = true
	return m
}

func TestRenderClearsToBackground(t *testing.T) {
	r := NewRasterizer(64, 64)
	require.NoError(t, r.Render(unlitScene(), frontCamera()))
	assert.Equal(t, background, r.Image().RGBAAt(10, 10))
}

func TestRenderDrawsFacingPlane(t *testing.T) {
	s := unlitScene()
	s.Add(scene.NewMeshNode("plane", geometry.Plane(1, 1), unlit(red)))

	r := NewRasterizer(64, 64)
	require.NoError(t, r.Render(s, frontCamera()))

	assert.Equal(t, red, r.Image().RGBAAt(32, 32))
	assert.Equal(t, background, r.Image().RGBAAt(1, 1))
}

func TestRenderCullsBackFaces(t *testing.T) {
	s := unlitScene()
	plane := scene.NewMeshNode("plane", geometry.Plane(1, 1), unlit(red))
	plane.Rotation = mgl32.Vec3{0, math.Pi, 0}
	s.Add(plane)

	r := NewRasterizer(64, 64)
	require.NoError(t, r.Render(s, frontCamera()))
	assert.Equal(t, background, r.Image().RGBAAt(32, 32))

	plane.Material.DoubleSided = true
	require.NoError(t, r.Render(s, frontCamera()))
	assert.Equal(t, red, r.Image().RGBAAt(32, 32))
}

func TestRenderDepthOrder(t *testing.T) {
	s := unlitScene()
	near := scene.NewMeshNode("near", geometry.Plane(1, 1), unlit(blue))
	near.Position = mgl32.Vec3{0, 0, 1}
	far := scene.NewMeshNode("far", geometry.Plane(2, 2), unlit(red))
	s.Add(near)
	s.Add(far)

	r := NewRasterizer(64, 64)
	require.NoError(t, r.Render(s, frontCamera()))
	assert.Equal(t, blue, r.Image().RGBAAt(32, 32))
}

func TestRenderDecalIgnoresDepth(t *testing.T) {
	tex := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range tex.Pix {
		tex.Pix[i] = 255
	}

	s := unlitScene()
	wall := scene.NewMeshNode("wall", geometry.Plane(2, 2), unlit(red))
	wall.Position = mgl32.Vec3{0, 0, 1}
	decal := scene.NewMeshNode("decal", geometry.Plane(1, 1), scene.NewDecalMaterial(tex))
	decal.Decal = true
	s.Add(wall)
	s.Add(decal)

	r := NewRasterizer(64, 64)
	require.NoError(t, r.Render(s, frontCamera()))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, r.Image().RGBAAt(32, 32))
}

func TestRenderBlendsTranslucent(t *testing.T) {
	s := unlitScene()
	m := scene.NewTranslucentMaterial(red, 0.5)
	m.Unlit = true
	s.Add(scene.NewMeshNode("glass", geometry.Plane(1, 1), m))

	r := NewRasterizer(64, 64)
	require.NoError(t, r.Render(s, frontCamera()))

	px := r.Image().RGBAAt(32, 32)
	assert.Greater(t, px.R, background.R)
	assert.Less(t, px.G, background.G)
	assert.Equal(t, uint8(255), px.A)
}

func TestRenderRejectsViewportMismatch(t *testing.T) {
	r := NewRasterizer(32, 32)
	assert.Error(t, r.Render(unlitScene(), frontCamera()))

	r.Resize(64, 64)
	assert.NoError(t, r.Render(unlitScene(), frontCamera()))
}

func TestWritePNG(t *testing.T) {
	r := NewRasterizer(8, 8)
	cam := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 60, 0.1, 100, 8, 8)
	require.NoError(t, r.Render(unlitScene(), cam))

	path := filepath.Join(t.TempDir(), "out.png")
	assert.NoError(t, r.WritePNG(path))
}
