package scenegraph

// Graph is a scene graph with a single root group node.
type Graph struct {
	root *Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{root: NewNode("root", KindGroup)}
}

// Root returns the graph's root node.
func (g *Graph) Root() *Node {
	return g.root
}

// Attach adds a node (typically the root of a loaded sub-scene) under the root.
func (g *Graph) Attach(n *Node) {
	g.root.AddChild(n)
}

// FindByName returns the first node with the given name in depth-first
// pre-order, or nil when absent. Node names are the capability the loaded
// assets expose; the graph shape beyond that is not assumed.
func (g *Graph) FindByName(name string) *Node {
	var found *Node
	g.Traverse(func(n *Node) bool {
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Traverse visits every node in depth-first pre-order, starting at the root.
// Returning false from fn stops the traversal.
func (g *Graph) Traverse(fn func(*Node) bool) {
	walk(g.root, fn)
}

func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
