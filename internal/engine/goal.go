package engine

import (
	"slices"

	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

// GoalSource decides where the shared goal is at simulation time t.
type GoalSource interface {
	GoalAt(t float64) geom.Vec2
}

// Patrol holds the goal still, or walks it through a list of points,
// staying dwell seconds at each and wrapping around.
type Patrol struct {
	home   geom.Vec2
	points []geom.Vec2
	dwell  float64
}

// NewPatrol creates a patrol. With fewer than two points, or no dwell, the
// goal stays at home (or at the single point when one is given).
func NewPatrol(home geom.Vec2, points []geom.Vec2, dwell float64) *Patrol {
	return &Patrol{home: home, points: slices.Clone(points), dwell: dwell}
}

func (p *Patrol) GoalAt(t float64) geom.Vec2 {
	switch {
	case len(p.points) == 0:
		return p.home
	case len(p.points) == 1 || p.dwell <= 0 || t < 0:
		return p.points[0]
	}
	i := int(t/p.dwell) % len(p.points)
	return p.points[i]
}

// Fixed is a goal that never moves.
type Fixed geom.Vec2

func (f Fixed) GoalAt(float64) geom.Vec2 { return geom.Vec2(f) }
