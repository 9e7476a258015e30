package marionette

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Skeleton owns a transform hierarchy as a flat, append-only node table.
// Animations and mixers address nodes by table index, so a skeleton never
// transfers node ownership: samplers write through the table, nothing else.
type Skeleton struct {
	nodes  []*Node
	roots  []*Node
	byName map[string]*Node
}

// NewSkeleton creates an empty skeleton.
func NewSkeleton() *Skeleton {
	return &Skeleton{byName: make(map[string]*Node)}
}

// NewNode appends a node to the skeleton's table and returns it. A nil
// parent makes the node a root. Panics if parent belongs to a different
// skeleton.
func (s *Skeleton) NewNode(name string, parent *Node) *Node {
	if parent != nil && (parent.index >= len(s.nodes) || s.nodes[parent.index] != parent) {
		panic("marionette: parent node belongs to a different skeleton")
	}
	n := &Node{
		Name:            name,
		Parent:          parent,
		index:           len(s.nodes),
		Rotation:        mgl32.QuatIdent(),
		Scale:           mgl32.Vec3{1, 1, 1},
		LocalTransform:  mgl32.Ident4(),
		GlobalTransform: mgl32.Ident4(),
	}
	s.nodes = append(s.nodes, n)
	if parent == nil {
		s.roots = append(s.roots, n)
	} else {
		parent.children = append(parent.children, n)
	}
	s.byName[name] = n
	return n
}

// Node returns the node at the given table index.
func (s *Skeleton) Node(index int) *Node {
	return s.nodes[index]
}

// Find returns the node with the given name, or nil if none exists. When
// names collide, the most recently added node wins.
func (s *Skeleton) Find(name string) *Node {
	return s.byName[name]
}

// Len returns the number of nodes in the table.
func (s *Skeleton) Len() int {
	return len(s.nodes)
}

// Roots returns the root nodes. The returned slice MUST NOT be mutated by
// the caller.
func (s *Skeleton) Roots() []*Node {
	return s.roots
}

// CalculateTransforms recomputes every node's transforms: local matrices are
// recomposed from the static pose for nodes no sampler touched, then global
// matrices are composed parent-first down the tree. Mixers call this after
// committing a blend; call it directly after mutating static poses by hand.
func (s *Skeleton) CalculateTransforms() {
	for _, n := range s.nodes {
		n.calculateLocalTransform()
	}
	for _, root := range s.roots {
		updateGlobalTransform(root, mgl32.Ident4(), false)
	}
}

// updateGlobalTransform walks a subtree composing global transforms
// parent-first.
func updateGlobalTransform(n *Node, parent mgl32.Mat4, hasParent bool) {
	if hasParent {
		n.GlobalTransform = parent.Mul4(n.LocalTransform)
	} else {
		n.GlobalTransform = n.LocalTransform
	}
	for _, child := range n.children {
		updateGlobalTransform(child, n.GlobalTransform, true)
	}
}
