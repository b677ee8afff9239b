package search

import (
	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/node"
	"github.com/specialistvlad/jumpgridgo/internal/nodeid"
)

// DefaultHeuristicWeight scales goal distance in the A* ordering.
const DefaultHeuristicWeight = 10.0

// Planner answers cache-aware path queries over one tree.
type Planner struct {
	root   *node.Node
	weight float64
}

// NewPlanner creates a planner over root. A non-positive weight selects
// DefaultHeuristicWeight.
func NewPlanner(root *node.Node, weight float64) *Planner {
	if weight <= 0 {
		weight = DefaultHeuristicWeight
	}
	return &Planner{root: root, weight: weight}
}

// Path returns the agent's next leg from start toward end. At the leaf level
// this is the Shortcut result; at coarser levels the plan is refined into the
// first hop only. Nil when start equals end, the agent has no slot, or no
// route exists.
func (p *Planner) Path(agent uuid.UUID, start, end nodeid.Address, goal geom.Vec2) []nodeid.Address {
	return p.path(p.root, agent, start, end, goal)
}

func (p *Planner) path(n *node.Node, agent uuid.UUID, start, end nodeid.Address, goal geom.Vec2) []nodeid.Address {
	if !n.HasAgent(agent) || start.Equal(end) {
		return nil
	}

	next := n.Address().Depth() + 1
	if start.EqualAtDepth(end, next) {
		child := n.Child(start.SegmentAt(next))
		if child == nil {
			return nil
		}
		return p.path(child, agent, start, end, goal)
	}

	route, ok := n.CachedPath(agent, start, end)
	if !ok {
		route, ok = n.SharedPath(agent, start, end)
		if !ok {
			route = p.generate(n, start, end, goal)
		}
		if len(route) == 0 {
			n.ClearPath(agent)
			return nil
		}
		n.StorePath(agent, start, end, route)
	}

	if start.Depth() == next {
		return route
	}
	if len(route) < 2 {
		return nil
	}
	child := n.Child(route[0].SegmentAt(next))
	if child == nil {
		return nil
	}
	return p.path(child, agent, start, route[1], goal)
}

func (p *Planner) generate(n *node.Node, start, end nodeid.Address, goal geom.Vec2) []nodeid.Address {
	depth := n.Address().Depth()
	next := depth + 1

	from := n.Child(start.SegmentAt(next))
	var to *node.Node
	if start.EqualAtDepth(end, depth) {
		to = n.Child(end.SegmentAt(next))
	} else {
		to = p.root.Resolve(end)
	}
	if from == nil || to == nil {
		return nil
	}

	if start.Depth() == next {
		return Shortcut(from, to, n.Children(), p.root)
	}
	route, _, _ := AStar(p.root, from, to, n.Children(), goal, p.weight)
	return route
}
