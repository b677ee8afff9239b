package ballistic

import (
	"math"

	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

// arc is one constant-acceleration segment of a trajectory.
type arc struct {
	origin   geom.Vec2
	velocity geom.Vec2
	accel    geom.Vec2
	duration float64
}

// crossings returns the points where the arc meets the line axis == value,
// where axis 0 is x and 1 is y. Only crossings strictly inside the segment's
// duration are reported.
func (a arc) crossings(axis int, value float64) []geom.Vec2 {
	var u, acc, o float64
	if axis == 0 {
		u, acc, o = a.velocity.X, a.accel.X, a.origin.X
	} else {
		u, acc, o = a.velocity.Y, a.accel.Y, a.origin.Y
	}

	roots := SolveTime(value-o, u, acc)
	out := make([]geom.Vec2, 0, 2)
	for _, t := range []float64{roots.First, roots.Second} {
		if math.IsNaN(t) || t <= 0 || t >= a.duration {
			continue
		}
		p := a.at(t)
		if axis == 0 {
			p.X = value
		} else {
			p.Y = value
		}
		out = append(out, p)
	}
	return out
}

func (a arc) at(t float64) geom.Vec2 {
	return geom.Vec2{
		X: a.origin.X + Displacement(a.velocity.X, a.accel.X, t),
		Y: a.origin.Y + Displacement(a.velocity.Y, a.accel.Y, t),
	}
}

// end returns the arc that continues from where this one finishes.
func (a arc) end() (geom.Vec2, geom.Vec2) {
	return a.at(a.duration), a.velocity.Add(a.accel.Scale(a.duration))
}

// edgePoints returns, for each side of box, the crossing closest to the
// middle of that side.
func (a arc) edgePoints(box geom.AABB) []geom.Vec2 {
	center := box.Center()
	var out []geom.Vec2

	pick := func(points []geom.Vec2, dist func(geom.Vec2) float64) {
		if len(points) == 0 {
			return
		}
		best := points[0]
		for _, p := range points[1:] {
			if dist(p) < dist(best) {
				best = p
			}
		}
		out = append(out, best)
	}
	byX := func(p geom.Vec2) float64 { return math.Abs(p.X - center.X) }
	byY := func(p geom.Vec2) float64 { return math.Abs(p.Y - center.Y) }

	pick(a.crossings(1, box.Min.Y), byX)
	pick(a.crossings(1, box.Max.Y), byX)
	pick(a.crossings(0, box.Min.X), byY)
	pick(a.crossings(0, box.Max.X), byY)
	return out
}

// outOfReach is the coarse bounding test shared by the jump and fall checks.
func (e Envelope) outOfReach(box geom.AABB, src, dst geom.Vec2, top float64) bool {
	r := e.Radius
	switch {
	case top-r > box.Max.Y:
		return true
	case math.Max(src.Y, dst.Y)+r < box.Min.Y:
		return true
	case box.Max.X < math.Min(src.X, dst.X)-r:
		return true
	case math.Max(src.X, dst.X)+r < box.Min.X:
		return true
	}
	return false
}

// JumpHitsBox reports whether the steered jump from src to dst passes through
// box. The arc is split at the end of steering and each half is sampled where
// it crosses the box's edge lines. A jump that cannot be steered is reported
// as a hit.
func (e Envelope) JumpHitsBox(box geom.AABB, src, dst geom.Vec2, vx, g float64) bool {
	maxY := BrakingDistance(e.JumpVelocity, 0, g)
	if e.outOfReach(box, src, dst, src.Y+maxY) {
		return false
	}

	rel := dst.Sub(src)
	steer := e.SteeringDuration(rel, vx, g)
	total := e.JumpDuration(rel.Y, g)
	if math.IsNaN(total) || total < 0 {
		return false
	}
	if math.IsNaN(steer) {
		return true
	}

	sign := geom.Sign(steer)
	steer = math.Abs(steer)

	first := arc{
		origin:   src,
		velocity: geom.V(vx, e.JumpVelocity),
		accel:    geom.V(e.HorizontalAccel*sign, g),
		duration: steer,
	}
	pos, vel := first.end()
	second := arc{
		origin:   pos,
		velocity: vel,
		accel:    geom.V(0, g),
		duration: total - steer,
	}

	for _, seg := range []arc{first, second} {
		for _, p := range seg.edgePoints(box) {
			if box.CircleHits(p, e.Radius) {
				return true
			}
		}
	}
	return false
}

// FallHitsBox reports whether a fall from src to dst, approximated as a
// constant horizontal acceleration from rest, passes through box.
func (e Envelope) FallHitsBox(box geom.AABB, src, dst geom.Vec2, g float64) bool {
	if e.outOfReach(box, src, dst, src.Y) {
		return false
	}

	rel := dst.Sub(src)
	t := FallDuration(rel.Y, g)
	if math.IsNaN(t) || t <= 0 {
		return false
	}
	ax := AccelerationFor(rel.X, 0, t)

	hit := func(p geom.Vec2) bool {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return false
		}
		return box.CircleHits(src.Add(p), e.Radius)
	}

	for _, edgeX := range []float64{box.Min.X, box.Max.X} {
		dx := edgeX - src.X
		roots := SolveTime(dx, 0, ax)
		for _, tt := range []float64{roots.First, roots.Second} {
			if hit(geom.V(dx, Displacement(0, g, tt))) {
				return true
			}
		}
	}
	for _, edgeY := range []float64{box.Min.Y, box.Max.Y} {
		dy := edgeY - src.Y
		roots := SolveTime(dy, 0, g)
		for _, tt := range []float64{roots.First, roots.Second} {
			if hit(geom.V(Displacement(0, ax, tt), dy)) {
				return true
			}
		}
	}
	return false
}
