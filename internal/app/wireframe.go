package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/scene"
	"github.com/philipparndt/probeview/pkg/viewer"
)

// drawWireframe draws the triangle edges of a node in world space
func (r *gpuRenderer) drawWireframe(n *scene.Node) {
	g := r.cache[n.ID]
	if g == nil {
		return
	}
	// Edges are collected on first use
	if g.edges == nil {
		g.edges = viewer.Edges(n.Mesh)
	}

	world := g.world
	positions := n.Mesh.Positions
	for _, e := range g.edges {
		a := mgl32.TransformCoordinate(positions[e[0]], world)
		b := mgl32.TransformCoordinate(positions[e[1]], world)
		rl.DrawLine3D(toVector3(a), toVector3(b), r.wireColor)
	}
}
