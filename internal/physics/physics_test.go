package physics

import (
	"testing"

	"github.com/specialistvlad/jumpgridgo/internal/controller"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func newWorld() *World {
	return NewWorld(DefaultGravity, DefaultCharacter().Envelope())
}

// settle drops a character onto a wide floor and runs until it rests.
func settle(t *testing.T) (*World, *Character) {
	t.Helper()
	w := newWorld()
	w.AddStatic(geom.V(0, 40), 1000, 80)
	c := NewCharacter(geom.V(0, -20), DefaultCharacter())
	w.AddCharacter(c)
	for i := 0; i < 240; i++ {
		c.Step()
		w.Step(dt)
	}
	_, grounded := c.Contact()
	require.True(t, grounded, "character should rest on the floor")
	return w, c
}

func TestBody_FreeFallAccelerates(t *testing.T) {
	b := NewBall(geom.V(0, 0), 9, 120)

	b.step(dt, DefaultGravity)

	assert.InDelta(t, 98*dt, b.Velocity().Y, 1e-9)
	pos, ok := b.Position()
	require.True(t, ok)
	assert.Greater(t, pos.Y, 0.0)
	assert.Zero(t, pos.X)
}

func TestBody_SpeedIsCapped(t *testing.T) {
	b := NewBall(geom.V(0, 0), 9, 120)
	b.SetVelocity(geom.V(499, 0))
	b.AddForce(geom.V(1e6, 0))

	b.step(dt, geom.Vec2{})

	assert.InDelta(t, DefaultMaxSpeed, b.Velocity().Len(), 1e-9)
}

func TestBody_StaticBoxesIgnoreForces(t *testing.T) {
	b := NewBox(geom.V(10, 10), 20, 20)
	b.AddForce(geom.V(100, 100))

	b.step(dt, DefaultGravity)

	pos, _ := b.Position()
	assert.Equal(t, geom.V(10, 10), pos)
	assert.Equal(t, geom.AABB{Min: geom.V(0, 0), Max: geom.V(20, 20)}, b.Bounds())
}

func TestLift_EasesAndReverses(t *testing.T) {
	// Four seconds per leg with one second of easing at each end.
	l := NewLift(LiftConfig{Width: 60, Height: 10, From: geom.V(0, 0), To: geom.V(0, -200), Speed: 50, Dampen: 1})

	l.Step(0.5)
	assert.InDelta(t, 25, l.Speed(), 1e-9, "half way through the ramp")
	assert.InDelta(t, -25, l.Body().Velocity().Y, 1e-9)

	for i := 0; i < 5; i++ {
		l.Step(0.1)
	}
	ramped := l.Speed()
	assert.Greater(t, ramped, 25.0)

	l.Step(0.8)
	l.Step(1.0)
	assert.Equal(t, ramped, l.Speed(), "cruising")

	l.Step(0.4)
	assert.InDelta(t, ramped-20, l.Speed(), 1e-9, "braking near the end")

	l.Step(1.0)
	assert.Zero(t, l.Speed(), "stopped at the end")
	l.Step(0.5)
	assert.Greater(t, l.Body().Velocity().Y, 0.0, "heading back")
}

func TestLift_DampenCappedAtHalfTravel(t *testing.T) {
	l := NewLift(LiftConfig{Width: 10, Height: 10, From: geom.V(0, 0), To: geom.V(100, 0), Speed: 50, Dampen: 10})

	assert.InDelta(t, 1.0, l.dampen, 1e-9)
	assert.InDelta(t, 50.0, l.accel, 1e-9)
}

func TestWorld_CharacterRestsOnFloor(t *testing.T) {
	_, c := settle(t)

	normal, _ := c.Contact()
	assert.InDelta(t, -1, normal.Y, 1e-6)
	pos, _ := c.Position()
	assert.InDelta(t, -9, pos.Y, 0.1)
	assert.InDelta(t, 0, c.Velocity().Y, 2)
}

func TestCharacter_JumpsOnlyWhenGrounded(t *testing.T) {
	w, c := settle(t)

	c.Begin(controller.Up)
	c.Step()
	assert.InDelta(t, c.Envelope().JumpVelocity, c.Velocity().Y, 2)
	assert.False(t, c.Holding(controller.Up), "jump input is consumed")
	w.Step(dt)

	_, grounded := c.Contact()
	require.False(t, grounded)
	vy := c.Velocity().Y
	c.Begin(controller.Up)
	c.Step()
	assert.Equal(t, vy, c.Velocity().Y, "no jump in mid air")
	assert.True(t, c.Holding(controller.Up))
}

func TestCharacter_InputsBecomeForces(t *testing.T) {
	testCases := []struct {
		name string
		held []controller.Direction
		want geom.Vec2
	}{
		{name: "right", held: []controller.Direction{controller.Right}, want: geom.V(25000, 0)},
		{name: "left", held: []controller.Direction{controller.Left}, want: geom.V(-25000, 0)},
		{name: "both cancel", held: []controller.Direction{controller.Left, controller.Right}, want: geom.V(0, 0)},
		{name: "down while airborne", held: []controller.Direction{controller.Down}, want: geom.V(0, 25000)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCharacter(geom.V(0, 0), DefaultCharacter())
			for _, d := range tc.held {
				c.Begin(d)
			}

			c.Step()

			assert.Equal(t, tc.want, c.body.force)
		})
	}
}

func TestCharacter_Envelope(t *testing.T) {
	c := NewCharacter(geom.V(0, 0), DefaultCharacter())
	c.Body().Shrink(2)

	env := c.Envelope()

	assert.InDelta(t, -25000.0/145, env.JumpVelocity, 1e-9)
	assert.InDelta(t, 25000.0/120, env.HorizontalAccel, 1e-9)
	assert.Equal(t, 7.0, env.Radius)
}

func TestWorld_RemoveDetachesBody(t *testing.T) {
	w := newWorld()
	c := NewCharacter(geom.V(0, 0), DefaultCharacter())
	w.AddCharacter(c)

	w.Remove(c)

	_, ok := c.Position()
	assert.False(t, ok)
	assert.Empty(t, w.Characters())
}

func TestWorld_HazardShrinksWithCooldown(t *testing.T) {
	w := NewWorld(geom.Vec2{}, DefaultCharacter().Envelope())
	w.AddHazard(geom.Box(geom.V(0, 0), 50, 50))
	c := NewCharacter(geom.V(0, 0), DefaultCharacter())
	w.AddCharacter(c)

	w.Step(dt)
	assert.Equal(t, 8.5, c.Radius())

	w.Step(dt)
	assert.Equal(t, 8.5, c.Radius(), "immune during cooldown")

	for i := 0; i < 61; i++ {
		w.Step(dt)
	}
	assert.Equal(t, 8.0, c.Radius())
}

func TestWorld_FeasibilityCullsStaticBoxes(t *testing.T) {
	src := geom.V(0, 0)
	dst := geom.V(150, 0)

	open := newWorld()
	require.True(t, open.CanJump(src, dst, 0))
	require.True(t, open.Probe().CanJump(src, dst))

	walled := newWorld()
	walled.AddStatic(geom.V(75, -50), 10, 300)
	assert.False(t, walled.CanJump(src, dst, 0))
	assert.False(t, walled.Probe().CanJump(src, dst))

	below := geom.V(60, 200)
	require.True(t, open.Probe().CanFall(src, below))
	walled.AddStatic(geom.V(30, 100), 10, 250)
	assert.False(t, walled.Probe().CanFall(src, below))
}

func TestWorld_OutOfRangeIsInfeasible(t *testing.T) {
	w := newWorld()

	assert.False(t, w.CanJump(geom.V(0, 0), geom.V(2000, 0), 0))
	assert.False(t, w.CanJump(geom.V(0, 0), geom.V(0, -500), 0), "above the apex")
	assert.False(t, w.CanFall(geom.V(0, 0), geom.V(0, -10), 0), "falling upward")
}

func TestResolve_CentreInsideBoxPushedThroughNearestSide(t *testing.T) {
	box := NewBox(geom.V(0, 0), 100, 20)
	ball := NewBall(geom.V(30, -8), 9, 120)
	ball.SetVelocity(geom.V(0, 50))

	resolve(ball, box)

	normal, ok := ball.Contact()
	require.True(t, ok)
	assert.Equal(t, geom.V(0, -1), normal)
	pos, _ := ball.Position()
	assert.InDelta(t, -10-9+penetrationSlop, pos.Y, 1e-9)
	assert.InDelta(t, 0, ball.Velocity().Y, 1e-9)
}

func TestResolve_SeparatingBallUntouched(t *testing.T) {
	box := NewBox(geom.V(0, 0), 100, 20)
	ball := NewBall(geom.V(0, -15), 9, 120)
	ball.SetVelocity(geom.V(0, -30))

	resolve(ball, box)

	_, ok := ball.Contact()
	assert.False(t, ok)
	assert.Equal(t, geom.V(0, -30), ball.Velocity())
}
