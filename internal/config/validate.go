package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

// Validate reports every problem in the level at once.
func (l *Level) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(finiteVec(l.Gravity), "gravity must be finite")
	check(finite(l.KillPlane), "kill_plane must be finite")

	for _, b := range l.Platforms {
		check(b.Width > 0 && b.Height > 0, "platform %q: size must be positive, got %gx%g", b.Name, b.Width, b.Height)
		check(finiteVec(b.Center), "platform %q: center must be finite", b.Name)
	}
	for _, h := range l.Hazards {
		check(h.Width > 0 && h.Height > 0, "hazard %q: size must be positive, got %gx%g", h.Name, h.Width, h.Height)
		check(finiteVec(h.Center), "hazard %q: center must be finite", h.Name)
	}
	for _, lf := range l.Lifts {
		check(lf.Width > 0 && lf.Height > 0, "lift %q: size must be positive, got %gx%g", lf.Name, lf.Width, lf.Height)
		check(finiteVec(lf.From) && finiteVec(lf.To), "lift %q: endpoints must be finite", lf.Name)
		check(lf.Speed > 0, "lift %q: speed must be positive, got %g", lf.Name, lf.Speed)
		check(lf.Dampen >= 0, "lift %q: dampen must not be negative, got %g", lf.Name, lf.Dampen)
		check(lf.From != lf.To, "lift %q: from and to must differ", lf.Name)
	}

	check(len(l.Spawns) > 0, "at least one spawn point is required")
	for _, s := range l.Spawns {
		check(finiteVec(s.Position), "spawn %q: position must be finite", s.Name)
	}

	check(finiteVec(l.Goal.Position), "goal position must be finite")
	for i, p := range l.Goal.Patrol {
		check(finiteVec(p), "goal patrol point %d must be finite", i)
	}
	check(l.Goal.Dwell >= 0, "goal dwell must not be negative, got %g", l.Goal.Dwell)
	check(len(l.Goal.Patrol) < 2 || l.Goal.Dwell > 0, "goal dwell must be positive when patrolling")

	return errors.Join(errs...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v geom.Vec2) bool {
	return finite(v.X) && finite(v.Y)
}
