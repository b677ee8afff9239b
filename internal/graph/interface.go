package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/node"
	"github.com/specialistvlad/jumpgridgo/internal/nodeid"
)

// Navigator is the view of the navigation graph a controller needs.
//
// # Usage Patterns
//
// **Controller** each tick:
//   - Replan: RefreshPath()
//   - Locate itself: NodeAt()
//   - Pick a destination: NextWaypoint()
//   - Turn addresses into coordinates: WorldPosition()
//
// **Roster** on spawn and despawn:
//   - AddAgent(), RemoveAgent()
type Navigator interface {
	// RefreshPath replans the agent's path from the leaf nearest position to
	// the leaf nearest the current goal.
	//
	// Unknown agents and positions with no nearby leaf are ignored. A failed
	// search leaves the agent with an empty path, never a stale one.
	RefreshPath(ctx context.Context, agent uuid.UUID, position geom.Vec2)

	// NodeAt returns the leaf nearest p, or nil when that leaf is farther
	// than the snap radius (the point is not standing on anything).
	NodeAt(p geom.Vec2) *node.Node

	// NextWaypoint returns the node the agent should head for, or nil when it
	// has no path. An airborne agent (current == nil) gets the first entry.
	NextWaypoint(agent uuid.UUID, current *node.Node) *node.Node

	// WorldPosition returns the live world position of the node at addr.
	WorldPosition(addr nodeid.Address) (geom.Vec2, bool)

	// AddAgent and RemoveAgent register and drop the agent's path state at
	// every level of the tree.
	AddAgent(agent uuid.UUID)
	RemoveAgent(agent uuid.UUID)
}

var _ Navigator = (*Graph)(nil)
