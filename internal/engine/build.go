package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/jumpgridgo/internal/builder"
	"github.com/specialistvlad/jumpgridgo/internal/config"
	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/graph"
	"github.com/specialistvlad/jumpgridgo/internal/node"
	"github.com/specialistvlad/jumpgridgo/internal/physics"
	"github.com/specialistvlad/jumpgridgo/internal/roster"
	"github.com/specialistvlad/jumpgridgo/internal/tuning"
)

// Build creates the physics world, populates the navigation graph and sets
// up the roster for level. seed drives spawn point selection.
func Build(ctx context.Context, level *config.Level, t tuning.Tuning, seed uint64) (*Simulation, error) {
	logger := ctxlog.FromContext(ctx)

	gravity := level.Gravity
	if gravity.IsZero() {
		gravity = physics.DefaultGravity
	}
	killPlane := level.KillPlane
	if killPlane == 0 {
		killPlane = config.DefaultKillPlane
	}

	world := physics.NewWorld(gravity, t.Roster.Character.Envelope())
	in := builder.Input{
		Radius:    t.Roster.Character.Radius,
		Probe:     world.Probe(),
		Penalties: t.Graph.Penalties,
	}

	for _, p := range level.Platforms {
		body := world.AddStatic(p.Center, p.Width, p.Height)
		in.Static = append(in.Static, builder.Platform{
			Name:     p.Name,
			Anchor:   body,
			Position: p.Center,
			Bounds:   body.LocalBounds(),
		})
	}
	for _, lf := range level.Lifts {
		lift := world.AddLift(physics.LiftConfig{
			Width: lf.Width, Height: lf.Height,
			From: lf.From, To: lf.To,
			Speed: lf.Speed, Dampen: lf.Dampen,
		})
		in.Moving = append(in.Moving, builder.Platform{
			Name:     lf.Name,
			Anchor:   lift.Body(),
			Position: lf.From,
			Bounds:   lift.Body().LocalBounds(),
			Motion:   &node.MotionProfile{From: lf.From, To: lf.To},
		})
	}
	for _, h := range level.Hazards {
		world.AddHazard(geom.Box(h.Center, h.Width, h.Height))
	}

	nav := graph.New(t.Graph)
	if err := nav.Populate(ctx, in); err != nil {
		return nil, fmt.Errorf("failed to build level %q: %w", level.Name, err)
	}

	opts := t.Roster
	opts.KillPlane = killPlane
	opts.Seed = seed
	ros := roster.New(world, nav, level.SpawnPoints(), opts)

	goal := NewPatrol(level.Goal.Position, level.Goal.Patrol, level.Goal.Dwell)

	logger.Info("Level built.", "level", level.Name,
		"platforms", len(level.Platforms), "lifts", len(level.Lifts),
		"hazards", len(level.Hazards), "spawns", len(level.Spawns), "seed", seed)
	return New(world, nav, ros, goal), nil
}
