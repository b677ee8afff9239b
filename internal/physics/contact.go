package physics

import (
	"math"

	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

const penetrationSlop = 0.01

// circleBoxContact returns the normal pointing from the box toward the circle
// and how deep the circle sinks into the box. ok is false when they do not
// touch. A centre inside the box is pushed out through the nearest side.
func circleBoxContact(c geom.Vec2, r float64, box geom.AABB) (normal geom.Vec2, depth float64, ok bool) {
	if box.Contains(c) {
		side, dist := nearestSide(c, box)
		return side, dist + r, true
	}
	closest := box.ClosestPoint(c)
	d := c.Sub(closest)
	dist := d.Len()
	if dist >= r {
		return geom.Vec2{}, 0, false
	}
	return d.Scale(1 / dist), r - dist, true
}

// nearestSide returns the outward normal of the side of box closest to p, and
// p's distance to it.
func nearestSide(p geom.Vec2, box geom.AABB) (geom.Vec2, float64) {
	sides := [...]struct {
		normal geom.Vec2
		dist   float64
	}{
		{geom.V(0, -1), p.Y - box.Min.Y},
		{geom.V(-1, 0), p.X - box.Min.X},
		{geom.V(1, 0), box.Max.X - p.X},
		{geom.V(0, 1), box.Max.Y - p.Y},
	}
	best := sides[0]
	for _, s := range sides[1:] {
		if s.dist < best.dist {
			best = s
		}
	}
	return best.normal, best.dist
}

// resolve pushes a reactive ball out of an immovable box, removes the
// velocity component driving it into the box (relative to the box's own
// motion) and applies Coulomb friction along the surface.
func resolve(ball, box *Body) {
	normal, depth, ok := circleBoxContact(ball.pos, ball.radius, box.Bounds())
	if !ok {
		return
	}

	rel := ball.vel.Sub(box.vel)
	vn := rel.Dot(normal)
	if vn > 0 {
		return
	}

	// Elasticity is zero, so the normal impulse exactly cancels vn.
	impulse := -vn * ball.mass
	ball.vel = ball.vel.Add(normal.Scale(-vn))
	ball.normal = normal
	ball.touches = true
	ball.pos = ball.pos.Add(normal.Scale(math.Max(depth-penetrationSlop, 0)))

	tangent := rel.Sub(normal.Scale(vn)).Normalized()
	if tangent.IsZero() {
		return
	}
	jt := -rel.Dot(tangent) * ball.mass
	mu := math.Hypot(staticFriction, staticFriction)
	var friction geom.Vec2
	if math.Abs(jt) < impulse*mu {
		friction = tangent.Scale(jt)
	} else {
		friction = tangent.Scale(-impulse * math.Hypot(dynamicFriction, dynamicFriction))
	}
	ball.vel = ball.vel.Add(friction.Scale(1 / ball.mass))
}
