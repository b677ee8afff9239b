package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/graph"
	"github.com/specialistvlad/jumpgridgo/internal/physics"
	"github.com/specialistvlad/jumpgridgo/internal/roster"
)

// Simulation owns one level's world, graph and roster and advances them
// together. It is not safe for concurrent use; observers run on the ticking
// goroutine.
type Simulation struct {
	world     *physics.World
	nav       *graph.Graph
	roster    *roster.Manager
	goal      GoalSource
	observers []Observer

	tick    int
	elapsed float64
}

// New wires an already built world, graph and roster together.
func New(world *physics.World, nav *graph.Graph, ros *roster.Manager, goal GoalSource) *Simulation {
	return &Simulation{world: world, nav: nav, roster: ros, goal: goal}
}

// AddObserver registers o to receive every snapshot.
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) World() *physics.World   { return s.world }
func (s *Simulation) Graph() *graph.Graph     { return s.nav }
func (s *Simulation) Roster() *roster.Manager { return s.roster }
func (s *Simulation) Ticks() int              { return s.tick }
func (s *Simulation) Elapsed() float64        { return s.elapsed }

// Tick advances the simulation by dt seconds and returns the snapshot handed
// to the observers.
func (s *Simulation) Tick(ctx context.Context, dt float64) (*Snapshot, error) {
	s.nav.SetGoal(s.goal.GoalAt(s.elapsed))
	s.world.StepLifts(dt)
	events := s.roster.Step(ctx, dt)
	s.world.Step(dt)

	s.tick++
	s.elapsed += dt
	snap := s.snapshot(events)
	for _, o := range s.observers {
		if err := o.Observe(ctx, snap); err != nil {
			return snap, fmt.Errorf("observer failed at tick %d: %w", s.tick, err)
		}
	}
	return snap, nil
}

// Run ticks until ticks have passed or ctx is cancelled. ticks <= 0 runs
// until cancellation. Cancellation is a normal stop and returns nil.
func (s *Simulation) Run(ctx context.Context, ticks int, dt float64) error {
	return s.run(ctx, ticks, dt, nil)
}

// RunRealtime is Run paced by the wall clock, one tick per dt seconds.
func (s *Simulation) RunRealtime(ctx context.Context, ticks int, dt float64) error {
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()
	return s.run(ctx, ticks, dt, ticker.C)
}

func (s *Simulation) run(ctx context.Context, ticks int, dt float64, pace <-chan time.Time) error {
	logger := ctxlog.FromContext(ctx)
	if dt <= 0 {
		return fmt.Errorf("tick length must be positive, got %g", dt)
	}
	logger.Info("Simulation started.", "ticks", ticks, "dt", dt, "realtime", pace != nil)

	for n := 0; ticks <= 0 || n < ticks; n++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return s.stopped(ctx)
			case <-pace:
			}
		} else if ctx.Err() != nil {
			return s.stopped(ctx)
		}
		if _, err := s.Tick(ctx, dt); err != nil {
			return err
		}
	}

	logger.Info("Simulation finished.", "ticks", s.tick, "elapsed", s.elapsed, "agents", s.roster.Len())
	return nil
}

func (s *Simulation) stopped(ctx context.Context) error {
	ctxlog.FromContext(ctx).Info("Simulation stopped.", "ticks", s.tick, "elapsed", s.elapsed, "agents", s.roster.Len())
	return nil
}

func (s *Simulation) snapshot(events []roster.Event) *Snapshot {
	snap := &Snapshot{
		Tick:   s.tick,
		Time:   s.elapsed,
		Goal:   s.nav.Goal(),
		Events: events,
	}
	for _, l := range s.world.Lifts() {
		if p, ok := l.Body().Position(); ok {
			snap.Lifts = append(snap.Lifts, p)
		}
	}

	agents := s.roster.Agents()
	snap.Agents = make([]AgentState, 0, len(agents))
	for _, a := range agents {
		pos, ok := a.Character.Position()
		if !ok {
			continue
		}
		st := AgentState{
			ID:       a.ID,
			State:    a.Controller.State().String(),
			Position: pos,
			Velocity: a.Character.Velocity(),
			Radius:   a.Character.Radius(),
			PathLen:  len(s.nav.Path(a.ID)),
		}
		if n := a.Controller.Current(); n != nil {
			st.Node = n.Address().String()
		}
		if n := a.Controller.Destination(); n != nil {
			st.Waypoint = n.Address().String()
		}
		snap.Agents = append(snap.Agents, st)
	}
	return snap
}

var _ GoalSource = Fixed(geom.Vec2{})
