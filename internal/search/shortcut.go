package search

import (
	"github.com/specialistvlad/jumpgridgo/internal/node"
	"github.com/specialistvlad/jumpgridgo/internal/nodeid"
)

// Shortcut returns a path of at most two addresses from start toward end.
//
// When both share a parent the path is just end. Otherwise siblings is
// scanned for the node nearest start (by local offset) that owns an edge
// landing anywhere under end; the path is that exit node, skipped when it is
// start itself, followed by the edge's target. Nil when no sibling qualifies.
func Shortcut(start, end *node.Node, siblings []*node.Node, root *node.Node) []nodeid.Address {
	if end.Address().SameParent(start.Address()) {
		return []nodeid.Address{end.Address()}
	}

	endAddr := end.Address()
	origin := start.LocalOffset()

	var (
		exit    *node.Node
		landing nodeid.Address
	)
	for _, n := range siblings {
		if exit != nil && n.LocalOffset().Dist(origin) >= exit.LocalOffset().Dist(origin) {
			continue
		}
		for _, e := range n.Edges() {
			if e.Target.EqualAtDepth(endAddr, endAddr.Depth()) {
				exit = n
				landing = e.Target
			}
		}
	}
	if exit == nil || root.Resolve(landing) == nil {
		return nil
	}

	path := make([]nodeid.Address, 0, 2)
	if !exit.Address().Equal(start.Address()) {
		path = append(path, exit.Address())
	}
	return append(path, landing)
}
