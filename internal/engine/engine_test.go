package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/jumpgridgo/internal/config"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/physics"
	"github.com/specialistvlad/jumpgridgo/internal/roster"
	"github.com/specialistvlad/jumpgridgo/internal/tuning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func TestPatrol_GoalAt(t *testing.T) {
	a, b, c := geom.V(0, 0), geom.V(100, 0), geom.V(200, 0)
	home := geom.V(-1, -1)

	testCases := []struct {
		name   string
		patrol *Patrol
		t      float64
		want   geom.Vec2
	}{
		{name: "no points stays home", patrol: NewPatrol(home, nil, 5), t: 100, want: home},
		{name: "single point", patrol: NewPatrol(home, []geom.Vec2{b}, 5), t: 100, want: b},
		{name: "no dwell holds first point", patrol: NewPatrol(home, []geom.Vec2{a, b}, 0), t: 100, want: a},
		{name: "first leg", patrol: NewPatrol(home, []geom.Vec2{a, b, c}, 5), t: 4.9, want: a},
		{name: "second leg", patrol: NewPatrol(home, []geom.Vec2{a, b, c}, 5), t: 5, want: b},
		{name: "wraps around", patrol: NewPatrol(home, []geom.Vec2{a, b, c}, 5), t: 16, want: a},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.patrol.GoalAt(tc.t))
		})
	}
}

// flatLevel is a single 600 wide floor with its top at y = 0.
func flatLevel() *config.Level {
	return &config.Level{
		Name:      "flat",
		Platforms: []config.Box{{Name: "floor", Center: geom.V(0, 40), Width: 600, Height: 80}},
		Lifts: []config.Lift{{
			Name: "shuttle", Width: 60, Height: 10,
			From: geom.V(0, -200), To: geom.V(200, -200), Speed: 50, Dampen: 1,
		}},
		Spawns: []config.Spawn{{Name: "left", Position: geom.V(-200, -20)}},
		Goal:   config.Goal{Position: geom.V(200, -10)},
	}
}

func fastSpawning() tuning.Tuning {
	t := tuning.Defaults()
	t.Roster.SpawnInterval = 0.5
	return t
}

func TestBuild_WiresLevelIntoWorldAndGraph(t *testing.T) {
	// --- Arrange ---
	level := flatLevel()
	level.Hazards = []config.Box{{Name: "pit", Center: geom.V(0, 10), Width: 20, Height: 20}}

	// --- Act ---
	sim, err := Build(context.Background(), level, tuning.Defaults(), 1)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultGravity, sim.World().Gravity(), "zero gravity falls back to the default")
	assert.Len(t, sim.World().Statics(), 1)
	assert.Len(t, sim.World().Lifts(), 1)
	assert.Len(t, sim.World().Hazards(), 1)
	assert.Len(t, sim.Graph().Root().Children(), 2, "one platform node per static box and lift")
	assert.NotNil(t, sim.Graph().NodeAt(geom.V(0, -9)))
	assert.Zero(t, sim.Roster().Len())
}

func TestSimulation_TickOrderAndSnapshots(t *testing.T) {
	// --- Arrange ---
	level := flatLevel()
	level.Goal.Patrol = []geom.Vec2{geom.V(-100, -10), geom.V(100, -10)}
	level.Goal.Dwell = 1
	sim, err := Build(context.Background(), level, fastSpawning(), 1)
	require.NoError(t, err)

	var snaps []*Snapshot
	sim.AddObserver(ObserverFunc(func(ctx context.Context, s *Snapshot) error {
		snaps = append(snaps, s)
		return nil
	}))

	// --- Act ---
	require.NoError(t, sim.Run(context.Background(), 120, dt))

	// --- Assert ---
	require.Len(t, snaps, 120)
	assert.Equal(t, 1, snaps[0].Tick)
	assert.Equal(t, 120, sim.Ticks())
	assert.InDelta(t, 2.0, sim.Elapsed(), 1e-9)
	assert.Equal(t, geom.V(-100, -10), snaps[0].Goal, "goal sampled at the start of the tick")
	assert.Equal(t, geom.V(100, -10), snaps[119].Goal)
	assert.Len(t, snaps[0].Lifts, 1)

	var spawned int
	for _, s := range snaps {
		for _, e := range s.Events {
			if e.Kind == roster.Spawned {
				spawned++
			}
		}
	}
	assert.Equal(t, sim.Roster().Len(), spawned)
	require.NotEmpty(t, snaps[119].Agents)
	first := snaps[119].Agents[0]
	assert.Equal(t, 9.0, first.Radius)
	assert.NotEmpty(t, first.State)
}

func TestSimulation_ObserverErrorStopsRun(t *testing.T) {
	sim, err := Build(context.Background(), flatLevel(), tuning.Defaults(), 1)
	require.NoError(t, err)
	boom := errors.New("disk full")
	sim.AddObserver(ObserverFunc(func(ctx context.Context, s *Snapshot) error {
		if s.Tick == 3 {
			return boom
		}
		return nil
	}))

	err = sim.Run(context.Background(), 10, dt)

	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "observer failed at tick 3")
	assert.Equal(t, 3, sim.Ticks())
}

func TestSimulation_CancelledRunStopsCleanly(t *testing.T) {
	sim, err := Build(context.Background(), flatLevel(), tuning.Defaults(), 1)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	sim.AddObserver(ObserverFunc(func(_ context.Context, s *Snapshot) error {
		if s.Tick == 5 {
			cancel()
		}
		return nil
	}))

	err = sim.Run(ctx, 0, dt)

	require.NoError(t, err)
	assert.Equal(t, 5, sim.Ticks())
}

func TestSimulation_RealtimeRun(t *testing.T) {
	sim, err := Build(context.Background(), flatLevel(), tuning.Defaults(), 1)
	require.NoError(t, err)

	require.NoError(t, sim.RunRealtime(context.Background(), 3, 0.001))

	assert.Equal(t, 3, sim.Ticks())
}

func TestSimulation_RejectsNonPositiveStep(t *testing.T) {
	sim, err := Build(context.Background(), flatLevel(), tuning.Defaults(), 1)
	require.NoError(t, err)

	assert.ErrorContains(t, sim.Run(context.Background(), 1, 0), "tick length must be positive")
}

func TestSimulation_AgentReachesGoal(t *testing.T) {
	sim, err := Build(context.Background(), flatLevel(), fastSpawning(), 1)
	require.NoError(t, err)
	a, ok := sim.Roster().Spawn(context.Background(), geom.V(-200, -10))
	require.True(t, ok)

	require.NoError(t, sim.Run(context.Background(), 900, dt))

	pos, ok := a.Character.Position()
	require.True(t, ok)
	assert.Greater(t, pos.X, 150.0)
	assert.Less(t, pos.X, 250.0)
}
