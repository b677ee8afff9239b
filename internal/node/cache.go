package node

import (
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/nodeid"
)

// PathCache is one agent's last path query at one tree level.
type PathCache struct {
	Origin nodeid.Address
	Dest   nodeid.Address
	Path   []nodeid.Address
}

func (c *PathCache) matches(origin, dest nodeid.Address) bool {
	return len(c.Path) > 0 && c.Origin.Equal(origin) && c.Dest.Equal(dest)
}

// AddAgent gives the agent an empty cache slot here and in every descendant.
func (n *Node) AddAgent(id uuid.UUID) {
	if _, ok := n.caches[id]; !ok {
		n.caches[id] = &PathCache{}
	}
	for _, child := range n.children {
		child.AddAgent(id)
	}
}

// RemoveAgent drops the agent's slot here and in every descendant.
func (n *Node) RemoveAgent(id uuid.UUID) {
	delete(n.caches, id)
	for _, child := range n.children {
		child.RemoveAgent(id)
	}
}

// HasAgent reports whether the agent has a slot at this node.
func (n *Node) HasAgent(id uuid.UUID) bool {
	_, ok := n.caches[id]
	return ok
}

// AgentCount is the number of agent slots held at this node.
func (n *Node) AgentCount() int {
	return len(n.caches)
}

// CachedPath returns the agent's own path when it was computed for exactly
// this origin and destination.
func (n *Node) CachedPath(id uuid.UUID, origin, dest nodeid.Address) ([]nodeid.Address, bool) {
	c, ok := n.caches[id]
	if !ok || !c.matches(origin, dest) {
		return nil, false
	}
	return c.Path, true
}

// SharedPath looks for another agent that already planned the same query and
// returns a copy of its path. Agents are checked in id order.
func (n *Node) SharedPath(id uuid.UUID, origin, dest nodeid.Address) ([]nodeid.Address, bool) {
	others := make([]uuid.UUID, 0, len(n.caches))
	for other := range n.caches {
		if other != id {
			others = append(others, other)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })

	for _, other := range others {
		if c := n.caches[other]; c.matches(origin, dest) {
			return slices.Clone(c.Path), true
		}
	}
	return nil, false
}

// StorePath records the agent's path for the query. A no-op for unknown agents.
func (n *Node) StorePath(id uuid.UUID, origin, dest nodeid.Address, path []nodeid.Address) {
	c, ok := n.caches[id]
	if !ok {
		return
	}
	c.Origin = origin
	c.Dest = dest
	c.Path = slices.Clone(path)
}

// ClearPath forgets the agent's cached query at this node.
func (n *Node) ClearPath(id uuid.UUID) {
	if c, ok := n.caches[id]; ok {
		*c = PathCache{}
	}
}
