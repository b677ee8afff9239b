// Package ballistic solves the constant-acceleration motion equations used to
// decide whether a jump or a fall between two points is achievable, and to
// turn an achievable jump into a timed steering plan.
//
// All quantities follow screen coordinates: y grows downward, so gravity is
// positive and a jump impulse is negative.
package ballistic

import "math"

// Roots holds the two solutions of the displacement quadratic. A missing
// solution is NaN; when First is NaN, Second is NaN as well.
type Roots struct {
	First  float64
	Second float64
}

// Valid reports whether at least one real solution exists.
func (r Roots) Valid() bool {
	return !math.IsNaN(r.First)
}

// Largest returns the larger real solution, ignoring a missing Second.
func (r Roots) Largest() float64 {
	if !math.IsNaN(r.Second) && r.Second > r.First {
		return r.Second
	}
	return r.First
}

// SolveTime returns the times t at which s = u·t + a·t²/2.
//
// With no acceleration the single solution is s/u. A negative discriminant
// yields NaN for both roots. A zero discriminant yields one root in First.
func SolveTime(s, u, a float64) Roots {
	qa := a / 2
	qb := u
	qc := -s

	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return Roots{First: math.NaN(), Second: math.NaN()}
	}

	if qa == 0 {
		return Roots{First: s / u, Second: math.NaN()}
	}
	if disc == 0 {
		return Roots{First: -qb / (2 * qa), Second: math.NaN()}
	}
	sq := math.Sqrt(disc)
	return Roots{
		First:  (-qb + sq) / (2 * qa),
		Second: (-qb - sq) / (2 * qa),
	}
}

// Displacement is s = u·t + a·t²/2.
func Displacement(u, a, t float64) float64 {
	return u*t + a*t*t/2
}

// Velocity is v = u + a·t.
func Velocity(u, a, t float64) float64 {
	return u + a*t
}

// TimeToVelocity is t = (v − u) / a.
func TimeToVelocity(u, a, v float64) float64 {
	return (v - u) / a
}

// BrakingDistance is the displacement covered while changing speed from u to
// v under acceleration a: s = (v² − u²) / 2a.
func BrakingDistance(u, v, a float64) float64 {
	return (v*v - u*u) / (2 * a)
}

// AccelerationFor is the constant acceleration that covers s in time t from
// initial velocity u.
func AccelerationFor(s, u, t float64) float64 {
	return 2 * (s - u*t) / (t * t)
}
