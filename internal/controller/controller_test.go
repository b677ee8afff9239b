package controller

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/ballistic"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/node"
	"github.com/specialistvlad/jumpgridgo/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

var gravity = geom.V(0, 98)

func envelope() ballistic.Envelope {
	return ballistic.Envelope{JumpVelocity: -25000.0 / 145, HorizontalAccel: 25000.0 / 120, Radius: 9}
}

// fakeNav serves fixed answers over a real tree so addresses and positions
// stay consistent.
type fakeNav struct {
	root      *node.Node
	current   *node.Node
	dest      *node.Node
	refreshes int
}

func (n *fakeNav) RefreshPath(ctx context.Context, id uuid.UUID, p geom.Vec2) { n.refreshes++ }
func (n *fakeNav) NodeAt(p geom.Vec2) *node.Node                              { return n.current }
func (n *fakeNav) NextWaypoint(id uuid.UUID, cur *node.Node) *node.Node       { return n.dest }
func (n *fakeNav) AddAgent(id uuid.UUID)                                      {}
func (n *fakeNav) RemoveAgent(id uuid.UUID)                                   {}
func (n *fakeNav) WorldPosition(a nodeid.Address) (geom.Vec2, bool) {
	return n.root.PositionOf(a)
}

type fakePilot struct {
	pos      geom.Vec2
	detached bool
	vel      geom.Vec2
	contact  *geom.Vec2
	held     map[Direction]bool
}

func (p *fakePilot) Begin(d Direction)            { p.held[d] = true }
func (p *fakePilot) End(d Direction)              { p.held[d] = false }
func (p *fakePilot) Position() (geom.Vec2, bool)  { return p.pos, !p.detached }
func (p *fakePilot) Velocity() geom.Vec2          { return p.vel }
func (p *fakePilot) Envelope() ballistic.Envelope { return envelope() }
func (p *fakePilot) Contact() (geom.Vec2, bool) {
	if p.contact == nil {
		return geom.Vec2{}, false
	}
	return *p.contact, true
}

type fakeWorld struct {
	jumpable bool
}

func (w *fakeWorld) Gravity() geom.Vec2                          { return gravity }
func (w *fakeWorld) CanJump(src, dst geom.Vec2, vx float64) bool { return w.jumpable }

var floorNormal = geom.V(0, -1)

type fixture struct {
	nav   *fakeNav
	pilot *fakePilot
	world *fakeWorld
	ctrl  *Controller
	// a has leaves at x = 0, 50, 100; b has leaves at x = 200, 250. All at y = -15.
	a, b *node.Node
}

func newFixture() *fixture {
	root := node.NewRoot()
	a := root.AddChild(node.Platform, geom.V(0, 0))
	b := root.AddChild(node.Platform, geom.V(200, 0))
	for _, x := range []float64{0, 50, 100} {
		a.AddChild(node.Floor, geom.V(x, -15))
	}
	for _, x := range []float64{0, 50} {
		b.AddChild(node.Floor, geom.V(x, -15))
	}

	f := &fixture{
		nav:   &fakeNav{root: root},
		pilot: &fakePilot{held: make(map[Direction]bool)},
		world: &fakeWorld{},
		a:     a,
		b:     b,
	}
	f.ctrl = New(uuid.New(), f.nav, f.world, f.pilot, DefaultParams())
	return f
}

func (f *fixture) standOn(n *node.Node) {
	pos, _ := f.nav.root.PositionOf(n.Address())
	f.pilot.pos = pos
	f.pilot.contact = &floorNormal
	f.nav.current = n
}

func TestController_WalkFromRestMovesTowardDestination(t *testing.T) {
	// --- Arrange ---
	f := newFixture()
	f.standOn(f.a.Child(0))
	f.nav.dest = f.a.Child(1)

	// --- Act ---
	f.ctrl.Step(context.Background(), dt)

	// --- Assert ---
	assert.Equal(t, Walking, f.ctrl.State())
	assert.True(t, f.pilot.held[Right])
	assert.False(t, f.pilot.held[Left])
	assert.False(t, f.pilot.held[Up])
	assert.Empty(t, f.ctrl.Plan(), "zero duration directives last one tick")
	assert.Equal(t, 1, f.nav.refreshes)
}

func TestController_WalkingLaw(t *testing.T) {
	testCases := []struct {
		name   string
		x      float64
		vx     float64
		target int
		want   Direction
		none   bool
	}{
		{name: "accelerates toward a far target", vx: 0, target: 2, want: Right},
		{name: "brakes when stopping distance covers the gap", vx: 300, target: 1, want: Left},
		{name: "turns around when moving away", vx: -100, target: 2, want: Right},
		{name: "holds speed once at walking speed", x: -1000, vx: 500, target: 2, none: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.standOn(f.a.Child(0))
			f.pilot.pos.X = tc.x
			f.nav.dest = f.a.Child(tc.target)
			f.pilot.vel = geom.V(tc.vx, 0)
			f.ctrl.state = Walking

			f.ctrl.Step(context.Background(), dt)

			require.Equal(t, Walking, f.ctrl.State())
			if tc.none {
				for _, d := range Directions {
					assert.False(t, f.pilot.held[d], d.String())
				}
				return
			}
			assert.True(t, f.pilot.held[tc.want])
		})
	}
}

func TestController_AirborneWithoutNodeFalls(t *testing.T) {
	for _, prior := range []State{Waiting, Walking, Falling} {
		t.Run(prior.String(), func(t *testing.T) {
			f := newFixture()
			f.pilot.pos = geom.V(40, -200)
			f.nav.dest = f.a.Child(1)
			f.ctrl.state = prior

			f.ctrl.Step(context.Background(), dt)

			assert.Equal(t, Falling, f.ctrl.State())
		})
	}
}

func TestController_AirborneMidJumpFinishesTheJumpFirst(t *testing.T) {
	// --- Arrange ---
	f := newFixture()
	f.pilot.pos = geom.V(40, -200)
	f.nav.dest = f.a.Child(1)
	f.ctrl.state = Jumping
	f.ctrl.jumping = true
	f.ctrl.cooldown = 0.5

	// --- Act & Assert ---
	f.ctrl.Step(context.Background(), dt)
	assert.Equal(t, Jumping, f.ctrl.State(), "flight time still running")
	assert.InDelta(t, 0.5-dt, f.ctrl.cooldown, 1e-9)

	f.ctrl.cooldown = 0
	f.ctrl.Step(context.Background(), dt)
	assert.Equal(t, Waiting, f.ctrl.State(), "a finished jump always hands over to waiting")
	assert.False(t, f.ctrl.jumping)

	f.ctrl.Step(context.Background(), dt)
	assert.Equal(t, Falling, f.ctrl.State())
}

func TestController_FallingSteersOntoTarget(t *testing.T) {
	testCases := []struct {
		name string
		vx   float64
		want Direction
	}{
		{name: "too slow accelerates toward target", vx: 0, want: Right},
		{name: "too fast brakes", vx: 400, want: Left},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.pilot.pos = geom.V(0, -100)
			f.pilot.vel = geom.V(tc.vx, 0)
			f.nav.dest = f.a.Child(1)
			f.ctrl.state = Falling

			f.ctrl.Step(context.Background(), dt)

			require.Equal(t, Falling, f.ctrl.State())
			assert.True(t, f.pilot.held[tc.want])
		})
	}
}

func TestController_FallingWithoutDestinationDoesNothing(t *testing.T) {
	f := newFixture()
	f.pilot.pos = geom.V(0, -100)

	f.ctrl.Step(context.Background(), dt)

	assert.Equal(t, Falling, f.ctrl.State())
	assert.Empty(t, f.pilot.held)
}

func TestController_JumpQueuesWholePlanOnce(t *testing.T) {
	// --- Arrange ---
	f := newFixture()
	f.standOn(f.a.Child(2))
	f.nav.dest = f.b.Child(0)
	f.world.jumpable = true
	env := envelope()
	wantFlight := env.JumpDuration(0, gravity.Y)
	wantSteer := env.SteeringDuration(geom.V(100, 0), 0, gravity.Y)
	require.Greater(t, wantSteer, 0.0)

	// --- Act ---
	f.ctrl.Step(context.Background(), dt)

	// --- Assert ---
	assert.Equal(t, Jumping, f.ctrl.State())
	assert.True(t, f.pilot.held[Up], "impulse applied first")
	assert.InDelta(t, wantFlight, f.ctrl.cooldown, 1e-9)
	plan := f.ctrl.Plan()
	require.Len(t, plan, 2)
	assert.Equal(t, MoveRight, plan[0].Action)
	assert.InDelta(t, wantSteer, plan[0].Remaining, 1e-9)
	assert.Equal(t, None, plan[1].Action)

	// The next ticks only consume the plan.
	f.pilot.contact = nil
	f.nav.current = nil
	f.ctrl.Step(context.Background(), dt)
	assert.Equal(t, Jumping, f.ctrl.State())
	assert.True(t, f.pilot.held[Right])
	assert.False(t, f.pilot.held[Up])
	plan = f.ctrl.Plan()
	require.Len(t, plan, 2)
	assert.InDelta(t, wantSteer-dt, plan[0].Remaining, 1e-9)
}

func TestController_JumpEndsWhenFlightTimeRunsOut(t *testing.T) {
	f := newFixture()
	f.standOn(f.a.Child(2))
	f.nav.dest = f.b.Child(0)
	f.world.jumpable = true

	f.ctrl.Step(context.Background(), dt)
	require.Equal(t, Jumping, f.ctrl.State())
	f.ctrl.cooldown = dt / 2

	f.ctrl.Step(context.Background(), dt)
	assert.Equal(t, Jumping, f.ctrl.State(), "the tick that empties the timer still counts as jumping")

	f.world.jumpable = false
	f.ctrl.Step(context.Background(), dt)
	assert.Equal(t, Waiting, f.ctrl.State())
	assert.False(t, f.ctrl.jumping, "latch cleared on exit")
}

func TestController_NoJumpWhileAirborneOrInfeasible(t *testing.T) {
	testCases := []struct {
		name     string
		grounded bool
		jumpable bool
	}{
		{name: "airborne", grounded: false, jumpable: true},
		{name: "infeasible", grounded: true, jumpable: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.standOn(f.a.Child(2))
			if !tc.grounded {
				f.pilot.contact = nil
			}
			f.nav.dest = f.b.Child(0)
			f.world.jumpable = tc.jumpable

			f.ctrl.Step(context.Background(), dt)

			assert.NotEqual(t, Jumping, f.ctrl.State())
		})
	}
}

func TestController_WaitingCentresOnCurrentNode(t *testing.T) {
	f := newFixture()
	f.standOn(f.a.Child(1))
	f.pilot.pos = f.pilot.pos.Add(geom.V(4, 0))

	f.ctrl.Step(context.Background(), dt)

	assert.Equal(t, Waiting, f.ctrl.State())
	assert.True(t, f.pilot.held[Left])
	assert.False(t, f.pilot.held[Right])
}

func TestController_DetachedPilotIsIgnored(t *testing.T) {
	f := newFixture()
	f.pilot.detached = true

	f.ctrl.Step(context.Background(), dt)

	assert.Zero(t, f.nav.refreshes)
	assert.Equal(t, Waiting, f.ctrl.State())
}

func TestController_TimedDirectiveSpansTicks(t *testing.T) {
	f := newFixture()
	f.ctrl.plan = []Directive{{Action: MoveLeft | MoveDown, Remaining: 2.5 * dt}, {Action: None}}

	for i := 0; i < 3; i++ {
		f.ctrl.applyHead(dt)
		assert.True(t, f.pilot.held[Left], "tick %d", i)
		assert.True(t, f.pilot.held[Down], "tick %d", i)
	}
	f.ctrl.applyHead(dt)

	for _, d := range Directions {
		assert.False(t, f.pilot.held[d], d.String())
	}
	assert.Empty(t, f.ctrl.Plan())
}

func TestAction(t *testing.T) {
	testCases := []struct {
		action Action
		want   string
	}{
		{None, "none"},
		{MoveLeft, "left"},
		{MoveRight | MoveUp, "right|up"},
		{MoveLeft | MoveRight | MoveUp | MoveDown, "left|right|up|down"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.action.String())
	}
	assert.True(t, (MoveUp | MoveDown).Has(Down))
	assert.False(t, MoveUp.Has(Left))
}
