package search

import (
	"math"
	"slices"

	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/node"
	"github.com/specialistvlad/jumpgridgo/internal/nodeid"
)

// visit is the per-search bookkeeping for one address.
type visit struct {
	prev    nodeid.Address
	hasPrev bool
	// score orders the open set: accumulated cost plus heuristic.
	score float64
	// cost is the plain sum of edge costs from the start.
	cost float64
}

// AStar searches the nodes in siblings, the layer start lives on, for a path
// to end. end may sit on the same layer or one layer above, in which case any
// of its children counts as arrival. goal is the world point the heuristic
// measures toward, scaled by weight.
//
// The returned path includes start and the arrival node. cost is the sum of
// edge costs along it. ok is false when the open set runs dry.
func AStar(root, start, end *node.Node, siblings []*node.Node, goal geom.Vec2, weight float64) (path []nodeid.Address, cost float64, ok bool) {
	lists := [][]*node.Node{siblings, end.Children()}
	lookup := func(addr nodeid.Address) *node.Node {
		parent := addr.Parent()
		for _, list := range lists {
			if len(list) == 0 || !parent.Equal(list[0].Address().Parent()) {
				continue
			}
			local := addr.Local()
			if local < 0 || local >= len(list) {
				return nil
			}
			return list[local]
		}
		return nil
	}
	heuristic := func(addr nodeid.Address) float64 {
		pos, ok := root.PositionOf(addr)
		if !ok {
			return 0
		}
		return pos.Dist(goal) * weight
	}

	endAddr := end.Address()
	visits := map[string]*visit{start.Address().Key(): {}}
	open := []nodeid.Address{start.Address()}
	inOpen := map[string]bool{start.Address().Key(): true}
	closed := map[string]bool{}

	for len(open) > 0 {
		idx := 0
		for i := 1; i < len(open); i++ {
			if visits[open[i].Key()].score < visits[open[idx].Key()].score {
				idx = i
			}
		}
		current := open[idx]
		curKey := current.Key()
		curVisit := visits[curKey]

		if current.EqualAtDepth(endAddr, endAddr.Depth()) {
			return retrace(visits, current), curVisit.cost, true
		}

		if curNode := lookup(current); curNode != nil {
			for _, e := range curNode.Edges() {
				key := e.Target.Key()
				if closed[key] || lookup(e.Target) == nil {
					continue
				}
				score := math.Abs(curVisit.score + e.Cost + heuristic(e.Target))
				cost := curVisit.cost + e.Cost

				if !inOpen[key] {
					open = append(open, e.Target)
					inOpen[key] = true
					visits[key] = &visit{prev: current, hasPrev: true, score: score, cost: cost}
				} else if v := visits[key]; v.score > score {
					v.prev, v.hasPrev, v.score, v.cost = current, true, score, cost
				}
			}
		}

		closed[curKey] = true
		inOpen[curKey] = false
		open = slices.Delete(open, idx, idx+1)
	}

	return nil, 0, false
}

func retrace(visits map[string]*visit, from nodeid.Address) []nodeid.Address {
	path := []nodeid.Address{from}
	for v := visits[from.Key()]; v != nil && v.hasPrev; v = visits[v.prev.Key()] {
		path = append(path, v.prev)
	}
	slices.Reverse(path)
	return path
}
