// Package graph is the navigation facade the agent controllers talk to.
//
// # Why Graph Package Exists
//
// Navigation state is spread over several places: the node tree built by
// package builder, the per-agent caches hanging off every tree level, the
// planner that fills those caches, and the shared goal all agents chase.
// Controllers should not coordinate these themselves. Graph owns all of them
// and exposes the handful of queries a controller makes each tick.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│            graph.Graph              │
//	│  goal · per-agent paths · options   │
//	└──────────┬────────────┬─────────────┘
//	           │            │
//	           ▼            ▼
//	  ┌────────────┐  ┌────────────────┐
//	  │ node tree  │  │ search.Planner │
//	  │ (builder)  │  │ (cache-aware)  │
//	  └────────────┘  └────────────────┘
//
// The tree is populated once per level and never rebuilt. Platform nodes
// carry an anchor to their physics body, so moving platforms drag their leaves
// along without any notification from the physics side.
//
// # Per-tick usage
//
//	g.RefreshPath(ctx, id, position)   // replan toward the shared goal
//	current := g.NodeAt(position)      // nil while airborne
//	dest := g.NextWaypoint(id, current)
//
// NextWaypoint skips the waypoints still on the agent's platform, so a
// controller sees either the end of an on-platform path or the first point
// on the next platform.
//
// # Agent identity
//
// Agents are keyed by uuid. AddAgent and RemoveAgent keep the graph's own
// path table and every tree-level cache in step; there is no slot index to
// drift out of alignment.
//
// # Thread-Safety
//
// Graph is not safe for concurrent use. The simulation mutates it from a
// single tick loop.
package graph
