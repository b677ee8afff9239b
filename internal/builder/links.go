package builder

import (
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/node"
)

// linker holds what cross linking needs for one Populate call.
type linker struct {
	root      *node.Node
	probe     Feasibility
	penalties node.Penalties
}

// linkBoth adds edges between two platforms in each direction and returns the
// number of leaf edges created.
func (l *linker) linkBoth(a, b *node.Node) int {
	return l.linkFromTo(a, b) + l.linkFromTo(b, a)
}

// linkFromTo adds leaf edges from src's leaves to dst's leaves and, if any
// exist, one high level edge from src to dst.
func (l *linker) linkFromTo(src, dst *node.Node) int {
	added := 0
	for _, from := range src.Children() {
		fromSpots := l.candidates(src, from)
		for _, to := range dst.Children() {
			toSpots := l.candidates(dst, to)
			if edge, ok := l.bestEdge(from, to, fromSpots, toSpots); ok {
				from.AddEdge(edge)
				added++
			}
		}
	}
	if added == 0 {
		return 0
	}

	srcPos, ok1 := l.root.PositionOf(src.Address())
	dstPos, ok2 := l.root.PositionOf(dst.Address())
	if ok1 && ok2 {
		src.AddEdge(node.NewEdge(dst.Address(), srcPos.Dist(dstPos), node.HighLevel))
	}
	return added
}

// candidates lists every position the leaf can occupy: where it is now, and
// where it would be at each rail endpoint.
func (l *linker) candidates(platform, leaf *node.Node) []geom.Vec2 {
	spots := make([]geom.Vec2, 0, 3)
	if pos, ok := l.root.PositionOf(leaf.Address()); ok {
		spots = append(spots, pos)
	}
	if m := platform.Motion(); m != nil {
		base, ok := l.root.PositionOf(platform.Address().Parent())
		if ok {
			spots = append(spots,
				base.Add(m.From).Add(leaf.LocalOffset()),
				base.Add(m.To).Add(leaf.LocalOffset()),
			)
		}
	}
	return spots
}

// bestEdge tests every position combination and keeps the cheapest feasible
// one as the pair's single edge.
func (l *linker) bestEdge(from, to *node.Node, fromSpots, toSpots []geom.Vec2) (node.Edge, bool) {
	var (
		best  node.Edge
		found bool
	)
	for _, a := range fromSpots {
		for _, b := range toSpots {
			kind, ok := l.traversal(from.Kind(), to.Kind(), a, b)
			if !ok {
				continue
			}
			cost := l.penalties.Cost(a.Dist(b), kind)
			if !found || cost < best.Cost {
				best = node.NewEdge(to.Address(), cost, kind)
				found = true
			}
		}
	}
	return best, found
}

// traversal decides how a character would get from a point of one kind to a
// point of another. Drop points are never landed on. Falls are checked first.
func (l *linker) traversal(srcKind, dstKind node.Kind, src, dst geom.Vec2) (node.Traversal, bool) {
	if dstKind == node.Drop {
		return 0, false
	}
	if (srcKind == node.Drop || srcKind == node.Wall) && l.probe.CanFall(src, dst) {
		return node.Fall, true
	}
	if (srcKind == node.Floor || srcKind == node.Wall) && l.probe.CanJump(src, dst) {
		return node.Jump, true
	}
	return 0, false
}
