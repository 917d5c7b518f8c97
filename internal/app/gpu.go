package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/philipparndt/probeview/internal/logging"
	"github.com/philipparndt/probeview/pkg/scene"
	"github.com/philipparndt/probeview/pkg/viewer"
)

// gpuMesh is one uploaded scene node. Lighting is baked into vertex colors,
// so the upload is refreshed whenever the node moves or its material changes.
type gpuMesh struct {
	buffers  *viewer.MeshBuffers
	colors   []uint8
	mesh     rl.Mesh
	material rl.Material
	texture  *rl.Texture2D
	edges    [][2]uint32

	world   mgl32.Mat4
	version int
	lights  scene.Lighting
	loaded  bool
}

// gpuRenderer draws a scene with raylib. Meshes and textures are cached by
// node ID and released by Reset.
type gpuRenderer struct {
	cache   map[uuid.UUID]*gpuMesh
	width   int
	height  int
	log     logging.Logger
	overlay func()

	wireframe bool
	wireColor rl.Color
}

func newGPURenderer(log logging.Logger) *gpuRenderer {
	return &gpuRenderer{
		cache:     make(map[uuid.UUID]*gpuMesh),
		log:       logging.OrNop(log),
		wireColor: rl.NewColor(100, 100, 100, 200),
	}
}

// Resize records the surface size. raylib resizes the framebuffer itself.
func (r *gpuRenderer) Resize(width, height int) {
	r.width = width
	r.height = height
	r.log.Debugf("surface resized to %dx%d", width, height)
}

// Render draws one complete frame, including the 2D overlay
func (r *gpuRenderer) Render(s *scene.Scene, cam *viewer.Camera) error {
	nodes := s.Renderables()
	for _, n := range nodes {
		if err := r.sync(s, n); err != nil {
			return err
		}
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(s.Background.R, s.Background.G, s.Background.B, 255))

	rl.BeginMode3D(toCamera3D(cam))
	for _, n := range nodes {
		r.draw(n)
	}
	if r.wireframe {
		rl.DrawRenderBatchActive()
		for _, n := range nodes {
			r.drawWireframe(n)
		}
	}
	rl.EndMode3D()

	if r.overlay != nil {
		r.overlay()
	}
	rl.EndDrawing()
	return nil
}

// sync uploads a node on first sight and re-bakes its colors when needed
func (r *gpuRenderer) sync(s *scene.Scene, n *scene.Node) error {
	g, ok := r.cache[n.ID]
	if !ok {
		buffers, err := viewer.Flatten(n.Mesh)
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", n.Name, err)
		}
		g = &gpuMesh{buffers: buffers, material: rl.LoadMaterialDefault()}
		if n.Material.Texture != nil {
			img := rl.NewImageFromImage(n.Material.Texture)
			tex := rl.LoadTextureFromImage(img)
			rl.UnloadImage(img)
			g.texture = &tex
			rl.SetMaterialTexture(&g.material, rl.MapDiffuse, tex)
		}
		r.cache[n.ID] = g
		r.log.Debugf("uploaded %s: %d vertices, %d triangles", n.Name, buffers.VertexCount(), buffers.TriangleCount())
	}

	world := n.WorldMatrix()
	lights := s.WorldLighting()
	if g.loaded && g.world == world && g.version == n.Material.Version && g.lights == lights {
		return nil
	}
	g.colors = viewer.BakeColors(g.colors, n.Mesh, n.Material, world, lights)
	g.world = world
	g.version = n.Material.Version
	g.lights = lights
	r.upload(g)
	return nil
}

// upload (re)creates the GPU buffers of a mesh
func (r *gpuRenderer) upload(g *gpuMesh) {
	if g.loaded {
		rl.UnloadMesh(&g.mesh)
	}
	b := g.buffers
	g.mesh = rl.Mesh{
		VertexCount:   int32(b.VertexCount()),
		TriangleCount: int32(b.TriangleCount()),
	}
	if len(b.Vertices) > 0 {
		g.mesh.Vertices = &b.Vertices[0]
		g.mesh.Normals = &b.Normals[0]
		g.mesh.Texcoords = &b.Texcoords[0]
		g.mesh.Colors = &g.colors[0]
	}
	if len(b.Indices) > 0 {
		g.mesh.Indices = &b.Indices[0]
	}
	rl.UploadMesh(&g.mesh, false)
	g.loaded = true
}

func (r *gpuRenderer) draw(n *scene.Node) {
	g := r.cache[n.ID]
	if g == nil || !g.loaded {
		return
	}
	mat := n.Material

	if !mat.DepthWrite {
		rl.DisableDepthMask()
	}
	if !mat.DepthTest {
		rl.DisableDepthTest()
	}
	if mat.DoubleSided {
		rl.DisableBackfaceCulling()
	}

	rl.DrawMesh(g.mesh, g.material, toMatrix(g.world))

	rl.EnableDepthMask()
	rl.EnableDepthTest()
	rl.EnableBackfaceCulling()
}

// Reset releases every cached GPU resource
func (r *gpuRenderer) Reset() {
	for id, g := range r.cache {
		if g.loaded {
			rl.UnloadMesh(&g.mesh)
		}
		if g.texture != nil {
			rl.UnloadTexture(*g.texture)
		}
		delete(r.cache, id)
	}
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout, which
// stores the same column-major order in M0..M15.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func toCamera3D(cam *viewer.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(cam.Position),
		Target:     toVector3(cam.Target),
		Up:         toVector3(cam.Up),
		Fovy:       cam.FovY,
		Projection: rl.CameraPerspective,
	}
}
