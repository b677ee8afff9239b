package physics

import "github.com/specialistvlad/jumpgridgo/internal/geom"

// Shape is the collision shape of a Body.
type Shape int

const (
	Circle Shape = iota
	Rect
)

// DefaultMaxSpeed caps the speed of every movable body.
const DefaultMaxSpeed = 500.0

const (
	staticFriction  = 0.8
	dynamicFriction = 0.6
)

// Body is a point mass with a circle or box shape.
type Body struct {
	shape  Shape
	radius float64
	size   geom.Vec2

	pos   geom.Vec2
	vel   geom.Vec2
	force geom.Vec2
	mass  float64

	movable  bool
	gravity  bool
	reactive bool
	maxSpeed float64

	normal  geom.Vec2
	touches bool

	cooldown float64
	removed  bool
}

// NewBox creates an immovable box of the given size centred on pos.
func NewBox(pos geom.Vec2, width, height float64) *Body {
	return &Body{shape: Rect, size: geom.V(width, height), pos: pos, mass: 200, maxSpeed: DefaultMaxSpeed}
}

// NewBall creates a dynamic circle: it moves, falls and reacts to forces.
func NewBall(pos geom.Vec2, radius, mass float64) *Body {
	return &Body{
		shape:    Circle,
		radius:   radius,
		pos:      pos,
		mass:     mass,
		movable:  true,
		gravity:  true,
		reactive: true,
		maxSpeed: DefaultMaxSpeed,
	}
}

func (b *Body) Shape() Shape { return b.shape }

// Position reports the body's centre. ok is false once the body has been
// removed from its world.
func (b *Body) Position() (geom.Vec2, bool) {
	if b.removed {
		return geom.Vec2{}, false
	}
	return b.pos, true
}

func (b *Body) Velocity() geom.Vec2     { return b.vel }
func (b *Body) SetVelocity(v geom.Vec2) { b.vel = v }
func (b *Body) SetPosition(p geom.Vec2) { b.pos = p }
func (b *Body) Radius() float64         { return b.radius }
func (b *Body) Mass() float64           { return b.mass }
func (b *Body) Removed() bool           { return b.removed }

// AddForce accumulates a force for the next Step. Bodies that do not react to
// forces ignore it.
func (b *Body) AddForce(f geom.Vec2) {
	if b.reactive {
		b.force = b.force.Add(f)
	}
}

// Contact returns the normal of the last surface the body was pushed out of,
// pointing away from that surface. ok is false while airborne.
func (b *Body) Contact() (geom.Vec2, bool) { return b.normal, b.touches }

// LocalBounds is the body's extent relative to its centre.
func (b *Body) LocalBounds() geom.AABB {
	if b.shape == Circle {
		return geom.Box(geom.Vec2{}, 2*b.radius, 2*b.radius)
	}
	return geom.Box(geom.Vec2{}, b.size.X, b.size.Y)
}

// Bounds is the body's extent in world coordinates.
func (b *Body) Bounds() geom.AABB { return b.LocalBounds().Translate(b.pos) }

// Shrink reduces a circle's radius by d, never below zero.
func (b *Body) Shrink(d float64) {
	b.radius -= d
	if b.radius < 0 {
		b.radius = 0
	}
}

// step integrates the body over dt with a four-stage velocity average, then
// clears the accumulated force and the contact.
func (b *Body) step(dt float64, g geom.Vec2) {
	if b.cooldown > 0 {
		b.cooldown -= dt
	}
	if !b.movable {
		return
	}

	accel := b.force.Scale(1 / b.mass)
	if b.gravity {
		accel = accel.Add(g)
	}

	b.vel = b.vel.Add(accel.Scale(dt))
	if b.vel.Len() > b.maxSpeed {
		b.vel = b.vel.Normalized().Scale(b.maxSpeed)
	}

	k1 := b.vel.Add(accel.Scale(dt))
	k2 := b.vel.Add(k1.Scale(dt / 2))
	k3 := b.vel.Add(k2.Scale(dt / 2))
	k4 := b.vel.Add(k3.Scale(dt))
	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	b.pos = b.pos.Add(sum.Scale(dt / 6))

	b.force = geom.Vec2{}
	b.normal = geom.Vec2{}
	b.touches = false
}
