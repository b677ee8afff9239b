package physics

import (
	"slices"

	"github.com/specialistvlad/jumpgridgo/internal/ballistic"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

// DefaultGravity points down the screen.
var DefaultGravity = geom.V(0, 98)

const (
	// HazardShrink is the radius a character loses per hazard contact.
	HazardShrink = 0.5
	// HazardCooldown is the time a character is immune after a hazard contact.
	HazardCooldown = 1.0
)

// World holds every body and steps them together. It is not safe for
// concurrent use.
type World struct {
	gravity  geom.Vec2
	envelope ballistic.Envelope

	statics    []*Body
	lifts      []*Lift
	hazards    []geom.AABB
	characters []*Character
}

// NewWorld creates an empty world. envelope is the jump envelope used for
// the feasibility queries.
func NewWorld(gravity geom.Vec2, envelope ballistic.Envelope) *World {
	return &World{gravity: gravity, envelope: envelope}
}

func (w *World) Gravity() geom.Vec2           { return w.gravity }
func (w *World) Envelope() ballistic.Envelope { return w.envelope }

// AddStatic adds an immovable box and returns its body.
func (w *World) AddStatic(center geom.Vec2, width, height float64) *Body {
	b := NewBox(center, width, height)
	w.statics = append(w.statics, b)
	return b
}

// AddLift adds a moving platform.
func (w *World) AddLift(cfg LiftConfig) *Lift {
	l := NewLift(cfg)
	w.lifts = append(w.lifts, l)
	return l
}

// AddHazard adds a region that shrinks characters touching it. Hazards are
// not solid.
func (w *World) AddHazard(box geom.AABB) {
	w.hazards = append(w.hazards, box)
}

// AddCharacter puts c into the world.
func (w *World) AddCharacter(c *Character) {
	c.body.removed = false
	w.characters = append(w.characters, c)
}

// Remove takes c out of the world. Its body reports no position afterwards.
func (w *World) Remove(c *Character) {
	w.characters = slices.DeleteFunc(w.characters, func(o *Character) bool { return o == c })
	c.body.removed = true
}

func (w *World) Statics() []*Body         { return w.statics }
func (w *World) Lifts() []*Lift           { return w.lifts }
func (w *World) Hazards() []geom.AABB     { return w.hazards }
func (w *World) Characters() []*Character { return w.characters }

// StepLifts advances every lift's schedule.
func (w *World) StepLifts(dt float64) {
	for _, l := range w.lifts {
		l.Step(dt)
	}
}

// Step integrates lifts and characters over dt, then resolves character
// contacts against static boxes and lifts, then applies hazards.
func (w *World) Step(dt float64) {
	for _, l := range w.lifts {
		l.body.step(dt, w.gravity)
	}
	for _, c := range w.characters {
		c.body.step(dt, w.gravity)
	}

	for _, c := range w.characters {
		for _, s := range w.statics {
			resolve(c.body, s)
		}
		for _, l := range w.lifts {
			resolve(c.body, l.body)
		}
	}

	for _, c := range w.characters {
		if c.body.cooldown > 0 {
			continue
		}
		for _, h := range w.hazards {
			if h.CircleHits(c.body.pos, c.body.radius) {
				c.body.Shrink(HazardShrink)
				c.body.cooldown = HazardCooldown
				break
			}
		}
	}
}

// CanJump reports whether a character leaving src with horizontal velocity
// vx can land on dst without its arc passing through a static box.
func (w *World) CanJump(src, dst geom.Vec2, vx float64) bool {
	g := w.gravity.Y
	if !w.envelope.CanJump(dst.Sub(src), vx, g) {
		return false
	}
	for _, s := range w.statics {
		if w.envelope.JumpHitsBox(s.Bounds(), src, dst, vx, g) {
			return false
		}
	}
	return true
}

// CanFall reports whether a character dropping from src, already moving at
// vx, can reach dst without passing through a static box.
func (w *World) CanFall(src, dst geom.Vec2, vx float64) bool {
	g := w.gravity.Y
	if !w.envelope.CanFall(dst.Sub(src), vx, g) {
		return false
	}
	for _, s := range w.statics {
		if w.envelope.FallHitsBox(s.Bounds(), src, dst, g) {
			return false
		}
	}
	return true
}

// Probe answers feasibility for a character starting at rest, the question
// asked while building the navigation graph.
type Probe struct{ w *World }

// Probe returns the at-rest feasibility view of the world.
func (w *World) Probe() Probe { return Probe{w: w} }

func (p Probe) CanJump(src, dst geom.Vec2) bool { return p.w.CanJump(src, dst, 0) }
func (p Probe) CanFall(src, dst geom.Vec2) bool { return p.w.CanFall(src, dst, 0) }
