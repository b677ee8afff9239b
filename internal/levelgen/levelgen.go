// Package levelgen generates tiered platform levels from layered simplex
// noise. Generated levels are ordinary config.Level values, so they run
// through the same validation and assembly as hand-written ones.
package levelgen

import (
	"context"
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/specialistvlad/jumpgridgo/internal/config"
	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

// Options shape a generated level.
type Options struct {
	Seed    int64
	Columns int
	Tiers   int
	// Width is the span of the ground. Columns divide it evenly.
	Width float64
	// TierHeight is the vertical gap between tiers. Keep it under the jump
	// apex or upper tiers are reachable only by lift.
	TierHeight float64
	Thickness  float64
	MinWidth   float64
	MaxWidth   float64
	// Density is the noise threshold above which a cell holds a platform.
	Density float64
	// LiftChance is the noise threshold above which an empty cell holds a
	// vertical lift instead.
	LiftChance float64
}

// DefaultOptions returns an eight column, five tier level.
func DefaultOptions() Options {
	return Options{
		Columns:    8,
		Tiers:      5,
		Width:      1600,
		TierHeight: 110,
		Thickness:  20,
		MinWidth:   60,
		MaxWidth:   180,
		Density:    0.35,
		LiftChance: 0.6,
	}
}

const groundTop = 660.0

// Generate builds a level. The same options always produce the same level.
func Generate(opts Options, agentRadius float64) *config.Level {
	layout := opensimplex.NewNormalized(opts.Seed)
	size := opensimplex.NewNormalized(opts.Seed + 1)
	jitter := opensimplex.NewNormalized(opts.Seed + 2)

	level := &config.Level{
		Name:      fmt.Sprintf("generated-%d", opts.Seed),
		KillPlane: groundTop + 200,
	}
	level.Platforms = append(level.Platforms, config.Box{
		Name:   "ground",
		Center: geom.V(opts.Width/2, groundTop+40),
		Width:  opts.Width + 200,
		Height: 80,
	})
	addSpawn := func(name string, top geom.Vec2) {
		level.Spawns = append(level.Spawns, config.Spawn{Name: name, Position: top.Sub(geom.V(0, agentRadius+1))})
	}
	addSpawn("ground-left", geom.V(opts.Width*0.1, groundTop))
	addSpawn("ground-right", geom.V(opts.Width*0.9, groundTop))

	colWidth := opts.Width / float64(max(opts.Columns, 1))
	highest := geom.V(opts.Width/2, groundTop)

	for tier := 1; tier <= opts.Tiers; tier++ {
		y := groundTop - float64(tier)*opts.TierHeight
		for col := 0; col < opts.Columns; col++ {
			fx, fy := float64(col)*0.9, float64(tier)*0.9
			x := (float64(col) + 0.5) * colWidth
			x += (jitter.Eval2(fx, fy) - 0.5) * colWidth * 0.4

			if layout.Eval2(fx, fy) < opts.Density {
				if tier < opts.Tiers && size.Eval2(fx+50, fy) > opts.LiftChance {
					level.Lifts = append(level.Lifts, config.Lift{
						Name:   fmt.Sprintf("lift-%d-%d", tier, col),
						Width:  60,
						Height: 10,
						From:   geom.V(x, y+opts.TierHeight),
						To:     geom.V(x, y-opts.TierHeight),
						Speed:  40,
						Dampen: 1,
					})
				}
				continue
			}

			w := opts.MinWidth + size.Eval2(fx, fy)*(opts.MaxWidth-opts.MinWidth)
			name := fmt.Sprintf("ledge-%d-%d", tier, col)
			level.Platforms = append(level.Platforms, config.Box{
				Name:   name,
				Center: geom.V(x, y+opts.Thickness/2),
				Width:  w,
				Height: opts.Thickness,
			})
			if tier <= 2 {
				addSpawn(name, geom.V(x, y))
			}
			if y < highest.Y {
				highest = geom.V(x, y)
			}
		}
	}

	level.Goal = config.Goal{Position: highest.Sub(geom.V(0, agentRadius+1))}
	return level
}

// Loader is a config.Loader that ignores its paths and generates a level.
type Loader struct {
	opts Options
}

// NewLoader creates a generating loader.
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts}
}

var _ config.Loader = (*Loader)(nil)

func (l *Loader) Load(ctx context.Context, env config.Env, _ ...string) (*config.Level, error) {
	level := Generate(l.opts, env.AgentRadius)
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("generated level %q is invalid: %w", level.Name, err)
	}
	ctxlog.FromContext(ctx).Debug("Level generated.", "level", level.Name,
		"platforms", len(level.Platforms), "lifts", len(level.Lifts), "spawns", len(level.Spawns))
	return level, nil
}
