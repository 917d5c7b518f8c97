package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
)

// Hit is a ray intersection with a node
type Hit struct {
	Node     *Node
	Distance float32
	Point    mgl32.Vec3
}

// Intersect tests the ray against the given nodes and returns hits ordered by
// distance, nearest first. With recursive set, descendants are tested too.
// Invisible nodes and nodes without a mesh produce no hits.
func Intersect(ray geometry.Ray, nodes []*Node, recursive bool) []Hit {
	var hits []Hit

	var visit func(n *Node)
	visit = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.Mesh != nil {
			if hit, ok := intersectNode(ray, n); ok {
				hits = append(hits, hit)
			}
		}
		if recursive {
			for _, c := range n.children {
				visit(c)
			}
		}
	}
	for _, n := range nodes {
		visit(n)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func intersectNode(ray geometry.Ray, n *Node) (Hit, bool) {
	world := n.WorldMatrix()
	if world.Det() == 0 {
		return Hit{}, false
	}

	local := ray.Transform(world.Inv())
	t, ok := n.Mesh.Intersect(local)
	if !ok {
		return Hit{}, false
	}

	point := mgl32.TransformCoordinate(local.At(t), world)
	return Hit{
		Node:     n,
		Distance: point.Sub(ray.Origin).Len(),
		Point:    point,
	}, true
}
