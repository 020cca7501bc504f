package scrollscape

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color.
var ColorWhite = Color{1, 1, 1, 1}

// nodeIDCounter is a plain counter (no atomic — scrollscape is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene-node write sink a motion generator owns. The engine only
// writes poses into nodes; meshes, materials and drawing belong to the host,
// which reads the fields back each frame.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation holds Euler angles in radians applied in
	// X, Y, Z order (pitch, yaw, roll).
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	// Material scalars
	Color    Color
	Emissive float64
	Opacity  float64

	Visible bool

	// Metadata
	UserData any

	// Computed
	world          affine3
	transformDirty bool

	disposed bool
}

// NewNode creates a node with unit scale, full opacity and white color.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		Scale:          Vec3{1, 1, 1},
		Color:          ColorWhite,
		Opacity:        1,
		Visible:        true,
		transformDirty: true,
	}
}

// NewNodeAt creates a node positioned at p.
func NewNodeAt(name string, p Vec3) *Node {
	n := NewNode(name)
	n.Position = p
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, either node is disposed, or child is an ancestor of
// this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scrollscape: cannot add nil child")
	}
	if n.disposed || child.disposed {
		panic("scrollscape: AddChild on disposed node")
	}
	if isAncestor(child, n) {
		panic("scrollscape: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node. No-op if child is not a direct
// child.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent != n {
		return
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns the node's children. The returned slice MUST NOT be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Walk calls fn for n and every descendant, depth-first in child order.
// Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// ApplyPose writes the fields selected by p.Fields into the node and marks
// its transform dirty. Writes to a disposed node are ignored.
func (n *Node) ApplyPose(p Pose) {
	if n.disposed {
		return
	}
	if p.Fields&PosePosition != 0 {
		n.Position = p.Position
	}
	if p.Fields&PosePositionY != 0 {
		n.Position.Y = p.Position.Y
	}
	if p.Fields&PoseRotation != 0 {
		n.Rotation = p.Rotation
	}
	if p.Fields&PoseScale != 0 {
		n.Scale = p.Scale
	}
	if p.Fields&PoseEmissive != 0 {
		n.Emissive = p.Emissive
	}
	if p.Fields&PoseOpacity != 0 {
		n.Opacity = p.Opacity
	}
	if p.Fields&(PosePosition|PosePositionY|PoseRotation|PoseScale) != 0 {
		n.MarkDirty()
	}
}

// Pose returns the node's current state as a Pose with every field set.
func (n *Node) Pose() Pose {
	return Pose{
		Fields:   PoseAll,
		Position: n.Position,
		Rotation: n.Rotation,
		Scale:    n.Scale,
		Emissive: n.Emissive,
		Opacity:  n.Opacity,
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Entities bound to a disposed node
// detach themselves on their next tick without writing.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
