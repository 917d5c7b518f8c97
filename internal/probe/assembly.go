package probe

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
	"github.com/philipparndt/probeview/pkg/labeltex"
	"github.com/philipparndt/probeview/pkg/scene"
)

// SegmentOptions sizes the electrode tubes
type SegmentOptions struct {
	Radius         float32
	Height         float32
	RadialSegments int
	Spacing        float32
	GapAngle       float32
}

// DecalOptions places and renders the label decals
type DecalOptions struct {
	// Offset is the distance from the segment axis along +Z
	Offset  float32
	Size    float32
	Texture labeltex.Options
}

// CapsuleOptions describes the rounded lead body running through the segments
type CapsuleOptions struct {
	Radius         float32
	Length         float32
	CapSegments    int
	RadialSegments int
	Color          color.RGBA
	Opacity        float32
	// Y is the capsule center in assembly space
	Y float32
}

// AssemblyOptions configures NewAssembly
type AssemblyOptions struct {
	Segment       SegmentOptions
	Decal         DecalOptions
	Capsule       CapsuleOptions
	InitialOffset float32
}

// DefaultAssemblyOptions returns the standard lead dimensions
func DefaultAssemblyOptions() AssemblyOptions {
	return AssemblyOptions{
		Segment: SegmentOptions{
			Radius:         0.4,
			Height:         2,
			RadialSegments: 128,
			Spacing:        0.5,
			GapAngle:       geometry.DefaultGapAngle,
		},
		Decal: DecalOptions{
			Offset:  0.42,
			Size:    1,
			Texture: labeltex.DefaultOptions(),
		},
		Capsule: CapsuleOptions{
			Radius:         0.3,
			Length:         15,
			CapSegments:    64,
			RadialSegments: 128,
			Color:          color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			Opacity:        0.8,
			Y:              5,
		},
		InitialOffset: -4,
	}
}

// Segment is one labeled electrode
type Segment struct {
	Label Label
	Node  *scene.Node
	Decal *scene.Node

	color FillColor
}

// Color returns the current fill color
func (s *Segment) Color() FillColor {
	return s.color
}

// SetColor changes the fill color and the material
func (s *Segment) SetColor(c FillColor) {
	s.color = c
	s.Node.Material.SetColor(c.RGBA())
}

// Advance moves the segment one step along the palette
func (s *Segment) Advance(p Palette) FillColor {
	s.SetColor(p.Next(s.color))
	return s.color
}

// Assembly groups the segments and the capsule so they move together
type Assembly struct {
	Group    *scene.Node
	Segments []*Segment
	Capsule  *scene.Node

	direction float32
	byNode    map[*scene.Node]*Segment
}

// NewAssembly builds segment meshes, decals and the capsule
func NewAssembly(labels []Label, palette Palette, opts AssemblyOptions) (*Assembly, error) {
	if err := ValidateLabels(labels); err != nil {
		return nil, err
	}
	seg := opts.Segment
	if seg.Radius <= 0 || seg.Height <= 0 {
		return nil, fmt.Errorf("invalid segment size %.2f x %.2f", seg.Radius, seg.Height)
	}

	a := &Assembly{
		Group:     scene.NewNode("probe"),
		direction: 1,
		byNode:    make(map[*scene.Node]*Segment),
	}
	a.Group.Position = mgl32.Vec3{0, opts.InitialOffset, 0}

	// Tubes of one kind share a mesh
	full := geometry.FullTube(seg.Radius, seg.Height, seg.RadialSegments)
	var gapped *geometry.Mesh
	decalMesh := geometry.Plane(opts.Decal.Size, opts.Decal.Size)

	for _, l := range labels {
		mesh := full
		if l.HasGap {
			if gapped == nil {
				gapped = geometry.GappedTube(seg.Radius, seg.Height, seg.RadialSegments, seg.GapAngle)
			}
			mesh = gapped
		}

		node := scene.NewMeshNode("segment-"+l.Text, mesh, scene.NewStandardMaterial(palette.Default().RGBA()))
		node.Position = mgl32.Vec3{0, float32(l.Slot) * (seg.Height + seg.Spacing), 0}

		tex, err := labeltex.Render(l.Text, opts.Decal.Texture)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", l.Text, err)
		}
		decal := scene.NewMeshNode("decal-"+l.Text, decalMesh, scene.NewDecalMaterial(tex))
		decal.Decal = true
		decal.Position = mgl32.Vec3{0, 0, opts.Decal.Offset}
		node.Add(decal)

		s := &Segment{Label: l, Node: node, Decal: decal, color: palette.Default()}
		a.Segments = append(a.Segments, s)
		a.byNode[node] = s
		a.Group.Add(node)
	}

	c := opts.Capsule
	capMat := scene.NewTranslucentMaterial(c.Color, c.Opacity)
	a.Capsule = scene.NewMeshNode("capsule", geometry.Capsule(c.Radius, c.Length, c.CapSegments, c.RadialSegments), capMat)
	a.Capsule.Position = mgl32.Vec3{0, c.Y, 0}
	a.Group.Add(a.Capsule)

	return a, nil
}

// Offset returns the vertical position of the assembly
func (a *Assembly) Offset() float32 {
	return a.Group.Position.Y()
}

// SetOffset moves the assembly along the vertical axis
func (a *Assembly) SetOffset(y float32) {
	a.Group.Position[1] = y
}

// Direction returns the bounce direction, +1 or -1
func (a *Assembly) Direction() float32 {
	return a.direction
}

// SetDirection sets the bounce direction; any non-negative value means up
func (a *Assembly) SetDirection(d float32) {
	if d < 0 {
		a.direction = -1
	} else {
		a.direction = 1
	}
}

// Interactive returns the nodes eligible for click tests
func (a *Assembly) Interactive() []*scene.Node {
	nodes := make([]*scene.Node, len(a.Segments))
	for i, s := range a.Segments {
		nodes[i] = s.Node
	}
	return nodes
}

// SegmentFor returns the segment owning node, or nil
func (a *Assembly) SegmentFor(n *scene.Node) *Segment {
	return a.byNode[n]
}

// Segment returns the segment with the given label text, or nil
func (a *Assembly) Segment(text string) *Segment {
	for _, s := range a.Segments {
		if s.Label.Text == text {
			return s
		}
	}
	return nil
}

// Colors returns the fill color of every segment keyed by label
func (a *Assembly) Colors() map[string]FillColor {
	out := make(map[string]FillColor, len(a.Segments))
	for _, s := range a.Segments {
		out[s.Label.Text] = s.color
	}
	return out
}
