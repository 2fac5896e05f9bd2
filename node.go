package howitzer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrDuplicateNode is returned when a node name is already used in the graph.
	ErrDuplicateNode = errors.New("howitzer: duplicate node name")
	// ErrUnknownParent is returned when a node is attached to a handle the
	// graph does not contain.
	ErrUnknownParent = errors.New("howitzer: unknown parent node")
	// ErrUnknownPrimitive is returned for primitive names outside the fixed set.
	ErrUnknownPrimitive = errors.New("howitzer: unknown primitive")
)

// NodeID is a stable handle into a Graph's node arena.
type NodeID int32

// NoParent is the parent handle of the root node.
const NoParent NodeID = -1

// Node is one element of the hierarchy. Only Translation and Rotation are
// expected to change after the graph is built.
type Node struct {
	Name string

	// Local transform. Rotation is in degrees, applied Z, then Y, then X.
	Translation mgl64.Vec3
	Rotation    mgl64.Vec3
	Scale       mgl64.Vec3

	// Color is nil when the node inherits its parent's color.
	Color     *Color
	Primitive Primitive

	// InheritScale is false for nodes whose world scale must not pick up the
	// parent's scale. Translation and rotation are always inherited.
	InheritScale bool

	parent   NodeID
	children []NodeID
}

// NodeSpec holds the construction-time fields of a node.
type NodeSpec struct {
	Name         string
	Translation  mgl64.Vec3
	Rotation     mgl64.Vec3
	Scale        *mgl64.Vec3 // nil means (1, 1, 1)
	Color        *Color
	Primitive    Primitive
	InheritScale *bool // nil means true
}

// Parent returns the handle of the node's parent, or NoParent for the root.
func (n *Node) Parent() NodeID {
	return n.parent
}

// Children returns the node's children in draw order. The returned slice
// MUST NOT be mutated by the caller.
func (n *Node) Children() []NodeID {
	return n.children
}

// Graph is an arena of nodes forming a single tree. Nodes are only ever
// appended under an existing parent, so the parent chain is acyclic.
type Graph struct {
	nodes  []Node
	byName map[string]NodeID
}

// NewGraph creates a graph containing only the root node.
func NewGraph(root NodeSpec) (*Graph, error) {
	g := &Graph{byName: make(map[string]NodeID)}
	if _, err := g.add(NoParent, root); err != nil {
		return nil, err
	}
	return g, nil
}

// Root returns the handle of the root node.
func (g *Graph) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// AddChild appends a new node under parent and returns its handle.
func (g *Graph) AddChild(parent NodeID, spec NodeSpec) (NodeID, error) {
	if !g.valid(parent) {
		return NoParent, fmt.Errorf("%w: %d", ErrUnknownParent, parent)
	}
	return g.add(parent, spec)
}

func (g *Graph) add(parent NodeID, spec NodeSpec) (NodeID, error) {
	if _, ok := g.byName[spec.Name]; ok {
		return NoParent, fmt.Errorf("%w: %q", ErrDuplicateNode, spec.Name)
	}
	n := Node{
		Name:         spec.Name,
		Translation:  spec.Translation,
		Rotation:     spec.Rotation,
		Scale:        mgl64.Vec3{1, 1, 1},
		Color:        spec.Color,
		Primitive:    spec.Primitive,
		InheritScale: true,
		parent:       parent,
	}
	if spec.Scale != nil {
		n.Scale = *spec.Scale
	}
	if spec.InheritScale != nil {
		n.InheritScale = *spec.InheritScale
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.byName[spec.Name] = id
	if parent != NoParent {
		g.nodes[parent].children = append(g.nodes[parent].children, id)
	}
	return id, nil
}

// Node returns the node for id, or nil if the handle is not in the graph.
// The pointer stays valid until the next AddChild.
func (g *Graph) Node(id NodeID) *Node {
	if !g.valid(id) {
		return nil
	}
	return &g.nodes[id]
}

// Lookup resolves a node name to its handle.
func (g *Graph) Lookup(name string) (NodeID, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// Find returns the named node, or nil when the graph has no such node.
func (g *Graph) Find(name string) *Node {
	id, ok := g.byName[name]
	if !ok {
		return nil
	}
	return &g.nodes[id]
}

// Walk calls fn for every node in depth-first order starting at the root.
func (g *Graph) Walk(fn func(id NodeID, n *Node)) {
	if len(g.nodes) == 0 {
		return
	}
	g.walk(g.Root(), fn)
}

func (g *Graph) walk(id NodeID, fn func(NodeID, *Node)) {
	fn(id, &g.nodes[id])
	for _, c := range g.nodes[id].children {
		g.walk(c, fn)
	}
}

// Depth returns the number of edges between id and the root.
func (g *Graph) Depth(id NodeID) int {
	depth := 0
	for p := g.nodes[id].parent; p != NoParent; p = g.nodes[p].parent {
		depth++
	}
	return depth
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}
