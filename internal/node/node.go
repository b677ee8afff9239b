package node

import (
	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/nodeid"
)

// Kind distinguishes the roles a node plays in the navigation tree.
type Kind int

const (
	// Group is an interior node that only aggregates children (the root).
	Group Kind = iota
	// Platform represents one rigid platform and owns its surface points.
	Platform
	// Floor is a standing point on top of a platform.
	Floor
	// Drop is a point just past a platform's edge. It is only ever the source
	// of a fall.
	Drop
	// Wall is a point against a vertical surface. It may start a jump or a fall.
	Wall
)

func (k Kind) String() string {
	switch k {
	case Group:
		return "group"
	case Platform:
		return "platform"
	case Floor:
		return "floor"
	case Drop:
		return "drop"
	case Wall:
		return "wall"
	default:
		return "unknown"
	}
}

// Anchor is a live handle to whatever body a node rides on. The navigation
// layer asks it for the current position on every lookup, so moving bodies
// move their subtree without a rebuild. ok is false once the body is gone.
type Anchor interface {
	Position() (pos geom.Vec2, ok bool)
}

// MotionProfile marks a node whose body oscillates between two endpoints.
type MotionProfile struct {
	From geom.Vec2
	To   geom.Vec2
}

// Node is a single vertex in the navigation tree. Leaves are points an agent
// can stand on; interior nodes group their children.
type Node struct {
	// addr is the node's position in the tree.
	addr nodeid.Address
	kind Kind

	// offset is the position relative to the parent, used when no anchor is set.
	offset geom.Vec2
	anchor Anchor
	motion *MotionProfile

	children []*Node
	edges    []Edge

	// caches holds the last planned path per agent at this level.
	caches map[uuid.UUID]*PathCache
}

// New creates a detached node at the given address.
func New(addr nodeid.Address, kind Kind, offset geom.Vec2) *Node {
	return &Node{
		addr:   nodeid.New(addr.Path...),
		kind:   kind,
		offset: offset,
		caches: make(map[uuid.UUID]*PathCache),
	}
}

// NewRoot creates the group node at the top of a tree.
func NewRoot() *Node {
	return New(nodeid.Root(0), Group, geom.Vec2{})
}

// AddChild appends a child in the next free slot and returns it. The child
// inherits every agent slot its parent currently has.
func (n *Node) AddChild(kind Kind, offset geom.Vec2) *Node {
	child := New(n.addr.Child(len(n.children)), kind, offset)
	for id := range n.caches {
		child.AddAgent(id)
	}
	n.children = append(n.children, child)
	return child
}

// AddEdge appends an outgoing edge.
func (n *Node) AddEdge(e Edge) {
	n.edges = append(n.edges, e)
}

// SetAnchor binds the node's offset to a live body.
func (n *Node) SetAnchor(a Anchor) { n.anchor = a }

// SetMotion marks the node as riding between two endpoints.
func (n *Node) SetMotion(m MotionProfile) { n.motion = &m }

func (n *Node) Address() nodeid.Address { return n.addr }
func (n *Node) Kind() Kind              { return n.kind }
func (n *Node) Children() []*Node       { return n.children }
func (n *Node) Edges() []Edge           { return n.edges }
func (n *Node) Motion() *MotionProfile  { return n.motion }
func (n *Node) IsLeaf() bool            { return len(n.children) == 0 }

// LocalOffset is the offset recorded at construction, ignoring any anchor.
func (n *Node) LocalOffset() geom.Vec2 { return n.offset }

// Offset is the node's current position relative to its parent.
func (n *Node) Offset() (geom.Vec2, bool) {
	if n.anchor != nil {
		return n.anchor.Position()
	}
	return n.offset, true
}

// Child returns the child in the given local slot, or nil.
func (n *Node) Child(slot int) *Node {
	if slot < 0 || slot >= len(n.children) {
		return nil
	}
	return n.children[slot]
}

// Resolve returns the descendant at addr, n itself included, or nil when addr
// does not fall under this subtree.
func (n *Node) Resolve(addr nodeid.Address) *Node {
	if addr.Equal(n.addr) {
		return n
	}
	if !n.addr.Contains(addr) {
		return nil
	}
	child := n.Child(addr.SegmentAt(n.addr.Depth() + 1))
	if child == nil {
		return nil
	}
	return child.Resolve(addr)
}

// PositionOf sums the offsets from n down to the node at addr. Called on the
// root it yields world coordinates. ok is false for unknown addresses and for
// nodes whose anchor has been detached.
func (n *Node) PositionOf(addr nodeid.Address) (geom.Vec2, bool) {
	own, ok := n.Offset()
	if !ok {
		return geom.Vec2{}, false
	}
	if addr.Equal(n.addr) {
		return own, true
	}
	if !n.addr.Contains(addr) {
		return geom.Vec2{}, false
	}
	child := n.Child(addr.SegmentAt(n.addr.Depth() + 1))
	if child == nil {
		return geom.Vec2{}, false
	}
	rel, ok := child.PositionOf(addr)
	if !ok {
		return geom.Vec2{}, false
	}
	return own.Add(rel), true
}

// NearestLeaf scans the subtree depth first and returns the leaf closest to p
// together with its position. Ties go to the earlier child. Detached subtrees
// are skipped. Positions are relative to n's parent, so call it on the root.
func (n *Node) NearestLeaf(p geom.Vec2) (*Node, geom.Vec2, bool) {
	if n.IsLeaf() {
		return nil, geom.Vec2{}, false
	}
	return n.nearestLeaf(p, geom.Vec2{})
}

func (n *Node) nearestLeaf(p, origin geom.Vec2) (*Node, geom.Vec2, bool) {
	own, ok := n.Offset()
	if !ok {
		return nil, geom.Vec2{}, false
	}
	here := origin.Add(own)
	if n.IsLeaf() {
		return n, here, true
	}

	var (
		best    *Node
		bestPos geom.Vec2
		bestD   float64
	)
	for _, child := range n.children {
		leaf, pos, ok := child.nearestLeaf(p, here)
		if !ok {
			continue
		}
		if d := pos.Dist(p); best == nil || d < bestD {
			best, bestPos, bestD = leaf, pos, d
		}
	}
	return best, bestPos, best != nil
}
