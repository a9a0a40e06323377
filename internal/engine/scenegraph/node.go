// Package scenegraph provides the hierarchical scene model the viewer renders:
// named nodes (meshes, lights, groups) with transforms, plus name-based lookup
// and traversal over a loaded graph.
package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies what a node contributes to the scene.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindPointLight
	KindSpotLight
	KindAmbientLight
	KindHemisphereLight
	KindDirectionalLight
	KindSky
)

// String returns a readable kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindPointLight:
		return "point-light"
	case KindSpotLight:
		return "spot-light"
	case KindAmbientLight:
		return "ambient-light"
	case KindHemisphereLight:
		return "hemisphere-light"
	case KindDirectionalLight:
		return "directional-light"
	case KindSky:
		return "sky"
	default:
		return "unknown"
	}
}

// Material holds the surface parameters of a mesh node.
type Material struct {
	BaseColor mgl32.Vec3
	Roughness float32
	Metalness float32
	ColorMap  string // texture map path, optional
	NormalMap string // texture map path, optional
}

// Node is a single element of the scene graph.
type Node struct {
	Name string
	Kind Kind

	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3

	// Light parameters, meaningful for light and sky kinds.
	Intensity float32
	Color     mgl32.Vec3
	Direction mgl32.Vec3

	Material *Material

	parent   *Node
	children []*Node
}

// NewNode creates a node with identity transform.
func NewNode(name string, kind Kind) *Node {
	return &Node{
		Name:     name,
		Kind:     kind,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Color:    mgl32.Vec3{1, 1, 1},
	}
}

// AddChild attaches c under n, detaching it from any previous parent.
func (n *Node) AddChild(c *Node) {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

// RemoveChild detaches c from n. No-op if c is not a child of n.
func (n *Node) RemoveChild(c *Node) {
	for i, child := range n.children {
		if child == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// Children returns the node's direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// LocalMatrix returns the node's local transform (T * R * S).
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Translation.X(), n.Translation.Y(), n.Translation.Z())
	r := n.Rotation.Mat4()
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the node's transform composed with all ancestors.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}
