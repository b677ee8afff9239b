package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/roster"
)

// Snapshot is the state of the world after one tick.
type Snapshot struct {
	Tick   int            `json:"tick"`
	Time   float64        `json:"time"`
	Goal   geom.Vec2      `json:"goal"`
	Agents []AgentState   `json:"agents"`
	Lifts  []geom.Vec2    `json:"lifts,omitempty"`
	Events []roster.Event `json:"events,omitempty"`
}

// AgentState is one agent's entry in a snapshot.
type AgentState struct {
	ID       uuid.UUID `json:"id"`
	State    string    `json:"state"`
	Position geom.Vec2 `json:"position"`
	Velocity geom.Vec2 `json:"velocity"`
	Radius   float64   `json:"radius"`
	// Node is the address the agent stands on, empty when airborne.
	Node     string `json:"node,omitempty"`
	Waypoint string `json:"waypoint,omitempty"`
	PathLen  int    `json:"path_len"`
}

// Observer receives every snapshot. An error stops the simulation.
type Observer interface {
	Observe(ctx context.Context, snap *Snapshot) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, snap *Snapshot) error

func (f ObserverFunc) Observe(ctx context.Context, snap *Snapshot) error { return f(ctx, snap) }
