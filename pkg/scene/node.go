package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/philipparndt/probeview/pkg/geometry"
)

// Node is an element of the scene graph. A node without a mesh acts as a group.
type Node struct {
	ID   uuid.UUID
	Name string

	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    mgl32.Vec3

	Mesh     *geometry.Mesh
	Material *Material

	// Decal marks overlay geometry that must never be returned by hit tests
	Decal       bool
	Visible     bool
	RenderOrder int

	parent   *Node
	children []*Node
}

// NewNode creates a visible node with identity transform
func NewNode(name string) *Node {
	return &Node{
		ID:      uuid.New(),
		Name:    name,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
	}
}

// NewMeshNode creates a node rendering mesh with material
func NewMeshNode(name string, mesh *geometry.Mesh, material *Material) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	n.Material = material
	return n
}

// Add attaches child to the node, detaching it from any previous parent
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from the node
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Children returns the direct children of the node
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent node or nil for a root
func (n *Node) Parent() *Node {
	return n.parent
}

// LocalMatrix composes translation, rotation and scale
func (n *Node) LocalMatrix() mgl32.Mat4 {
	rotation := mgl32.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation.Z()))

	return mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z()).
		Mul4(rotation).
		Mul4(mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
}

// WorldMatrix returns the transform from node space to world space
func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul4(n.LocalMatrix())
}

// WorldPosition returns the origin of the node in world space
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// EffectiveVisible reports whether the node and all of its ancestors are visible
func (n *Node) EffectiveVisible() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if !cur.Visible {
			return false
		}
	}
	return true
}

// Traverse calls fn for the node and all descendants, depth first
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Find returns the first descendant (or the node itself) with the given name
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(c *Node) {
		if found == nil && c.Name == name {
			found = c
		}
	})
	return found
}
