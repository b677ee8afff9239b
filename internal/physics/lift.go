package physics

import "github.com/specialistvlad/jumpgridgo/internal/geom"

// LiftConfig describes a box shuttling between From and To.
type LiftConfig struct {
	Width, Height float64
	From, To      geom.Vec2
	// Speed is the cruising speed.
	Speed float64
	// Dampen is the time spent accelerating from rest to Speed and braking
	// back. It is capped at half the travel time.
	Dampen float64
}

// Lift moves a box back and forth, easing in and out at each end.
type Lift struct {
	body *Body
	from geom.Vec2
	to   geom.Vec2

	dir     geom.Vec2
	speed   float64
	cruise  float64
	travel  float64
	elapsed float64
	dampen  float64
	accel   float64
}

// NewLift creates a lift at rest at cfg.From heading toward cfg.To.
func NewLift(cfg LiftConfig) *Lift {
	disp := cfg.To.Sub(cfg.From)
	l := &Lift{
		from:   cfg.From,
		to:     cfg.To,
		dir:    disp.Normalized(),
		cruise: cfg.Speed,
	}
	if cfg.Speed > 0 {
		l.travel = disp.Len() / cfg.Speed
	}
	l.dampen = min(cfg.Dampen, l.travel/2)
	if l.dampen > 0 {
		l.accel = cfg.Speed / l.dampen
	}

	body := NewBox(cfg.From, cfg.Width, cfg.Height)
	body.movable = true
	l.body = body
	return l
}

func (l *Lift) Body() *Body     { return l.body }
func (l *Lift) From() geom.Vec2 { return l.from }
func (l *Lift) To() geom.Vec2   { return l.to }
func (l *Lift) Speed() float64  { return l.speed }

// Step advances the lift's schedule by dt and sets its velocity. Reaching the
// end of a leg stops it and turns it around.
func (l *Lift) Step(dt float64) {
	l.elapsed += dt

	switch {
	case l.elapsed > l.travel:
		l.speed = 0
		l.dir = l.dir.Scale(-1)
		l.elapsed = 0
	case l.dampen <= 0:
		l.speed = l.cruise
	case l.elapsed < l.dampen:
		l.speed += l.accel * dt
	case l.travel-l.elapsed < l.dampen:
		l.speed -= l.accel * dt
	}

	l.body.vel = l.dir.Scale(l.speed)
}
