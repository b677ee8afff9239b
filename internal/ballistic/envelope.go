package ballistic

import (
	"math"

	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

// Envelope describes what a character can physically do in the air.
type Envelope struct {
	// JumpVelocity is the vertical velocity applied by a jump (negative is up).
	JumpVelocity float64
	// HorizontalAccel is the magnitude of the acceleration steering input gives.
	HorizontalAccel float64
	// Radius of the character's collision circle.
	Radius float64
}

// Apex returns the time to reach the top of a standing jump and the vertical
// displacement at that moment.
func (e Envelope) Apex(g float64) (t, dy float64) {
	t = TimeToVelocity(e.JumpVelocity, g, 0)
	return t, Displacement(e.JumpVelocity, g, t)
}

// reachTime is the latest time at which full horizontal acceleration toward
// dx, starting at vx, crosses dx. NaN when it never does.
func (e Envelope) reachTime(dx, vx float64) float64 {
	roots := SolveTime(dx, vx, e.HorizontalAccel*geom.Sign(dx))
	if !roots.Valid() {
		return math.NaN()
	}
	return roots.Largest()
}

// CanJump reports whether a jump started with horizontal velocity vx can land
// at rel, the destination relative to the take-off point.
func (e Envelope) CanJump(rel geom.Vec2, vx, g float64) bool {
	tApex, maxY := e.Apex(g)
	if rel.Y < maxY {
		return false
	}

	t := e.reachTime(rel.X, vx)
	if math.IsNaN(t) {
		return false
	}
	if t <= tApex {
		return true
	}

	yAtDest := maxY + Displacement(0, g, t-tApex)
	return yAtDest <= rel.Y
}

// CanFall reports whether dropping from rest vertically, while steering with
// horizontal velocity vx, can reach rel.
func (e Envelope) CanFall(rel geom.Vec2, vx, g float64) bool {
	if rel.Y < 0 {
		return false
	}

	t := e.reachTime(rel.X, vx)
	if math.IsNaN(t) {
		return false
	}
	return Displacement(0, g, t) <= rel.Y
}

// JumpDuration is the flight time of a jump that ends dy below its take-off
// point, on the descending part of the arc.
func (e Envelope) JumpDuration(dy, g float64) float64 {
	return SolveTime(dy, e.JumpVelocity, g).First
}

// FallDuration is the time to drop dy from rest. NaN when dy is above.
func FallDuration(dy, g float64) float64 {
	roots := SolveTime(dy, 0, g)
	if !roots.Valid() {
		return math.NaN()
	}
	return roots.Largest()
}

// SteeringDuration returns how long horizontal input must be held during a
// jump so the arc lands on rel. The sign gives the direction: positive is
// right. Braking against the current travel direction returns the opposite
// sign. NaN means the jump cannot be steered onto the target.
func (e Envelope) SteeringDuration(rel geom.Vec2, vx, g float64) float64 {
	dx := rel.X
	accel := e.HorizontalAccel
	dir := 1.0

	if dx < 0 {
		dx = -dx
		vx = -vx
		dir = -1
	}

	total := e.JumpDuration(rel.Y, g)

	if vx > 0 {
		natural := Displacement(vx, 0, total)
		if natural > dx {
			dir = -dir
			accel = -accel

			if Displacement(vx, accel, total) > dx {
				return math.NaN()
			}

			overshoot := natural - dx
			undershoot := Displacement(0, -accel, total) - overshoot
			coasting := SolveTime(undershoot, 0, -accel).First
			return (total - coasting) * dir
		}
	}

	overshoot := Displacement(vx, accel, total) - dx
	coasting := SolveTime(overshoot, 0, accel).First
	return (total - coasting) * dir
}
