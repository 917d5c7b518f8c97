package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/scene"
)

// Rasterizer renders a scene into an in-memory image without a GPU
type Rasterizer struct {
	img   *image.RGBA
	depth []float32

	// Wireframe overlays triangle edges in WireColor
	Wireframe bool
	WireColor color.RGBA
}

// NewRasterizer creates a rasterizer with a width x height surface
func NewRasterizer(width, height int) *Rasterizer {
	r := &Rasterizer{WireColor: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	r.Resize(width, height)
	return r
}

// Resize reallocates the output surface
func (r *Rasterizer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if r.img != nil && r.img.Bounds().Dx() == width && r.img.Bounds().Dy() == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.depth = make([]float32, width*height)
}

// Size returns the surface size
func (r *Rasterizer) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the last rendered frame
func (r *Rasterizer) Image() *image.RGBA {
	return r.img
}

// WritePNG writes the last rendered frame to path
func (r *Rasterizer) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, r.img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

type rasterVertex struct {
	x, y, z float32 // pixel position and NDC depth
	invW    float32
	col     mgl32.Vec4 // lit color, 0..255
	uv      mgl32.Vec2
}

// Render draws the scene as seen by the camera
func (r *Rasterizer) Render(s *scene.Scene, cam *Camera) error {
	width, height := r.Size()
	if cam.Width != width || cam.Height != height {
		return fmt.Errorf("camera viewport %dx%d does not match surface %dx%d", cam.Width, cam.Height, width, height)
	}

	bg := s.Background
	bg.A = 255
	for i := 0; i < len(r.img.Pix); i += 4 {
		r.img.Pix[i] = bg.R
		r.img.Pix[i+1] = bg.G
		r.img.Pix[i+2] = bg.B
		r.img.Pix[i+3] = 255
	}
	for i := range r.depth {
		r.depth[i] = math.MaxFloat32
	}

	viewProj := cam.ViewProjection()
	lights := s.WorldLighting()
	for _, node := range s.Renderables() {
		r.drawNode(node, lights, viewProj)
	}
	return nil
}

func (r *Rasterizer) drawNode(node *scene.Node, lights scene.Lighting, viewProj mgl32.Mat4) {
	mesh := node.Mesh
	mat := node.Material
	world := node.WorldMatrix()
	mvp := viewProj.Mul4(world)
	normalMat := world.Mat3().Inv().Transpose()

	width, height := r.Size()
	alpha := float32(mat.Alpha())

	verts := make([]rasterVertex, len(mesh.Positions))
	valid := make([]bool, len(mesh.Positions))
	for i, p := range mesh.Positions {
		clip := mvp.Mul4x1(p.Vec4(1))
		if clip.W() <= 1e-6 {
			continue
		}
		invW := 1 / clip.W()
		ndc := clip.Vec3().Mul(invW)

		c := mat.Color
		if !mat.Unlit {
			n := normalMat.Mul3x1(mesh.Normals[i])
			c = scene.Apply(c, lights.Shade(mgl32.TransformCoordinate(p, world), n))
		}

		v := rasterVertex{
			x:    (ndc.X() + 1) / 2 * float32(width),
			y:    (1 - ndc.Y()) / 2 * float32(height),
			z:    ndc.Z(),
			invW: invW,
			col:  mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), alpha},
		}
		if i < len(mesh.UVs) {
			v.uv = mesh.UVs[i]
		}
		verts[i] = v
		valid[i] = true
	}

	for t := 0; t < mesh.TriangleCount(); t++ {
		a, b, c := mesh.Indices[t*3], mesh.Indices[t*3+1], mesh.Indices[t*3+2]
		if !valid[a] || !valid[b] || !valid[c] {
			continue
		}
		r.fillTriangle(verts[a], verts[b], verts[c], mat)
		if r.Wireframe {
			r.drawLine(verts[a], verts[b])
			r.drawLine(verts[b], verts[c])
			r.drawLine(verts[c], verts[a])
		}
	}
}

// fillTriangle rasterizes with edge functions over the bounding box. Screen y
// points down, so a counter-clockwise front face has negative area.
func (r *Rasterizer) fillTriangle(v0, v1, v2 rasterVertex, mat *scene.Material) {
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 || (area > 0 && !mat.DoubleSided) {
		return
	}

	width, height := r.Size()
	minX := max(0, int(math.Floor(float64(min(v0.x, v1.x, v2.x)))))
	maxX := min(width-1, int(math.Ceil(float64(max(v0.x, v1.x, v2.x)))))
	minY := max(0, int(math.Floor(float64(min(v0.y, v1.y, v2.y)))))
	maxY := min(height-1, int(math.Ceil(float64(max(v0.y, v1.y, v2.y)))))

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			w0 := edge(v1.x, v1.y, v2.x, v2.y, px, py) / area
			w1 := edge(v2.x, v2.y, v0.x, v0.y, px, py) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*v0.z + w1*v1.z + w2*v2.z
			if z < -1 || z > 1 {
				continue
			}
			idx := y*width + x
			if mat.DepthTest && z >= r.depth[idx] {
				continue
			}

			col := v0.col.Mul(w0).Add(v1.col.Mul(w1)).Add(v2.col.Mul(w2))
			if mat.Texture != nil {
				// perspective correct texture coordinates
				iw := w0*v0.invW + w1*v1.invW + w2*v2.invW
				uv := v0.uv.Mul(w0 * v0.invW).Add(v1.uv.Mul(w1 * v1.invW)).Add(v2.uv.Mul(w2 * v2.invW)).Mul(1 / iw)
				texel := sample(mat.Texture, uv)
				col = mgl32.Vec4{
					col.X() * float32(texel.R) / 255,
					col.Y() * float32(texel.G) / 255,
					col.Z() * float32(texel.B) / 255,
					col.W() * float32(texel.A) / 255,
				}
			}
			if col.W() <= 0 {
				continue
			}

			r.blend(x, y, col)
			if mat.DepthWrite {
				r.depth[idx] = z
			}
		}
	}
}

func (r *Rasterizer) blend(x, y int, col mgl32.Vec4) {
	i := r.img.PixOffset(x, y)
	a := col.W() / 255
	if a > 1 {
		a = 1
	}
	for ch := 0; ch < 3; ch++ {
		dst := float32(r.img.Pix[i+ch])
		r.img.Pix[i+ch] = uint8(clamp255(col[ch]*a + dst*(1-a)))
	}
	r.img.Pix[i+3] = 255
}

// sample returns the nearest texel; v = 1 is the top row of the image
func sample(tex *image.RGBA, uv mgl32.Vec2) color.RGBA {
	b := tex.Bounds()
	u := min(max(uv.X(), 0), 1)
	v := min(max(uv.Y(), 0), 1)
	x := b.Min.X + int(u*float32(b.Dx()-1)+0.5)
	y := b.Min.Y + int((1-v)*float32(b.Dy()-1)+0.5)
	return tex.RGBAAt(x, y)
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v + 0.5
}

// drawLine draws a line on the surface using Bresenham's algorithm
func (r *Rasterizer) drawLine(a, b rasterVertex) {
	bounds := r.img.Bounds()
	x1, y1 := int(a.x), int(a.y)
	x2, y2 := int(b.x), int(b.y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			r.img.SetRGBA(x1, y1, r.WireColor)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
