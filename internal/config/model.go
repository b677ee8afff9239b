package config

import (
	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

// DefaultKillPlane is used when a level does not set one.
const DefaultKillPlane = 700

// Level is the format-agnostic representation of one scene.
type Level struct {
	Name      string
	Gravity   geom.Vec2
	KillPlane float64

	Platforms []Box
	Lifts     []Lift
	Hazards   []Box
	Spawns    []Spawn
	Goal      Goal
}

// Box is an axis-aligned rectangle given by its centre and size.
type Box struct {
	Name   string
	Center geom.Vec2
	Width  float64
	Height float64
}

// Lift is a platform riding back and forth between two points.
type Lift struct {
	Name   string
	Width  float64
	Height float64
	From   geom.Vec2
	To     geom.Vec2
	Speed  float64
	// Dampen is the time spent speeding up and slowing down at each end.
	Dampen float64
}

// Spawn is a point agents appear at.
type Spawn struct {
	Name     string
	Position geom.Vec2
}

// Goal is where every agent heads. When Patrol is set, the goal cycles
// through the patrol points, staying Dwell seconds at each.
type Goal struct {
	Position geom.Vec2
	Patrol   []geom.Vec2
	Dwell    float64
}

// Merge appends the contents of other to l. Scalar settings from other win
// when they are set.
func (l *Level) Merge(other *Level) {
	if other.Name != "" {
		l.Name = other.Name
	}
	if !other.Gravity.IsZero() {
		l.Gravity = other.Gravity
	}
	if other.KillPlane != 0 {
		l.KillPlane = other.KillPlane
	}
	l.Platforms = append(l.Platforms, other.Platforms...)
	l.Lifts = append(l.Lifts, other.Lifts...)
	l.Hazards = append(l.Hazards, other.Hazards...)
	l.Spawns = append(l.Spawns, other.Spawns...)
	if !other.Goal.Position.IsZero() || len(other.Goal.Patrol) > 0 {
		l.Goal = other.Goal
	}
}

// SpawnPoints returns the spawn positions in declaration order.
func (l *Level) SpawnPoints() []geom.Vec2 {
	out := make([]geom.Vec2, len(l.Spawns))
	for i, s := range l.Spawns {
		out[i] = s.Position
	}
	return out
}
