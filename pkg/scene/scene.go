package scene

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is a node tree with a background and lights
type Scene struct {
	Root       *Node
	Background color.RGBA
	Lighting   Lighting
}

// New creates an empty scene
func New(background color.RGBA) *Scene {
	return &Scene{
		Root:       NewNode("scene"),
		Background: background,
	}
}

// Add attaches a node to the scene root
func (s *Scene) Add(n *Node) {
	s.Root.Add(n)
}

// WorldLighting returns the lighting with the point light carried by the root
// transform. Lights belong to the scene and turn with it.
func (s *Scene) WorldLighting() Lighting {
	l := s.Lighting
	l.Point.Position = mgl32.TransformCoordinate(l.Point.Position, s.Root.WorldMatrix())
	return l
}

// Renderables returns visible mesh nodes in draw order: opaque first, then
// transparent by render order, then nodes that ignore the depth buffer.
func (s *Scene) Renderables() []*Node {
	var out []*Node
	s.Root.Traverse(func(n *Node) {
		if n.Mesh != nil && n.Material != nil && n.EffectiveVisible() {
			out = append(out, n)
		}
	})

	rank := func(n *Node) int {
		switch {
		case !n.Material.DepthTest:
			return 2
		case n.Material.Transparent:
			return 1
		default:
			return 0
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i].RenderOrder < out[j].RenderOrder
	})
	return out
}
