package controller

import (
	"context"
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/ballistic"
	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/graph"
	"github.com/specialistvlad/jumpgridgo/internal/node"
)

// State is the controller's current mode of movement.
type State int

const (
	Waiting State = iota
	Walking
	Jumping
	Falling
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Walking:
		return "walking"
	case Jumping:
		return "jumping"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}

// Pilot is the character a controller drives.
type Pilot interface {
	Begin(d Direction)
	End(d Direction)

	// Position is the character's centre; ok is false once it left the world.
	Position() (pos geom.Vec2, ok bool)
	Velocity() geom.Vec2
	// Contact is the normal of the surface the character touches, if any.
	Contact() (normal geom.Vec2, ok bool)
	Envelope() ballistic.Envelope
}

// Physics is what the controller needs from the simulated world.
type Physics interface {
	Gravity() geom.Vec2
	CanJump(src, dst geom.Vec2, vx float64) bool
}

// Params tunes the control law.
type Params struct {
	// WalkingSpeed is the horizontal speed a walking agent accelerates to.
	WalkingSpeed float64 `yaml:"walking_speed"`
	// FallSpeed is the downward speed above which a grounded agent still
	// counts as falling.
	FallSpeed float64 `yaml:"fall_speed"`
}

// DefaultParams returns walking speed 500 and fall speed 10.
func DefaultParams() Params {
	return Params{WalkingSpeed: 500, FallSpeed: 10}
}

// Controller is one agent's state machine.
type Controller struct {
	id     uuid.UUID
	nav    graph.Navigator
	world  Physics
	pilot  Pilot
	params Params

	state    State
	jumping  bool
	cooldown float64
	plan     []Directive

	current *node.Node
	dest    *node.Node
}

// New creates a controller in the Waiting state.
func New(id uuid.UUID, nav graph.Navigator, world Physics, pilot Pilot, params Params) *Controller {
	return &Controller{
		id:     id,
		nav:    nav,
		world:  world,
		pilot:  pilot,
		params: params,
		state:  Waiting,
	}
}

func (c *Controller) ID() uuid.UUID { return c.id }
func (c *Controller) State() State  { return c.state }

// Current is the node the agent stood on at the last step, nil when airborne.
func (c *Controller) Current() *node.Node { return c.current }

// Destination is the waypoint chosen at the last step.
func (c *Controller) Destination() *node.Node { return c.dest }

// Plan returns a copy of the queued directives.
func (c *Controller) Plan() []Directive { return slices.Clone(c.plan) }

// Step advances the controller by dt seconds: replan, pick a state, queue
// that state's directives and apply the head of the queue.
func (c *Controller) Step(ctx context.Context, dt float64) {
	pos, ok := c.pilot.Position()
	if !ok {
		return
	}

	c.nav.RefreshPath(ctx, c.id, pos)
	c.current = c.nav.NodeAt(pos)
	c.dest = c.nav.NextWaypoint(c.id, c.current)

	prev := c.state
	c.state = c.nextState(pos)
	if prev != c.state {
		ctxlog.FromContext(ctx).Debug("Controller: State changed.",
			"agent", c.id, "from", prev.String(), "to", c.state.String())
	}

	switch c.state {
	case Waiting:
		c.stepWaiting(pos)
	case Walking:
		c.stepWalking(pos)
	case Jumping:
		c.stepJumping(dt)
	case Falling:
		c.stepFalling(pos)
	}

	c.applyHead(dt)
}

func (c *Controller) push(a Action, d float64) {
	c.plan = append(c.plan, Directive{Action: a, Remaining: d})
}

// toward returns the action that accelerates along sign.
func toward(sign float64) Action {
	if sign < 0 {
		return MoveLeft
	}
	return MoveRight
}

func (c *Controller) applyHead(dt float64) {
	if len(c.plan) == 0 {
		return
	}
	head := &c.plan[0]
	for _, d := range Directions {
		if head.Action.Has(d) {
			c.pilot.Begin(d)
		} else {
			c.pilot.End(d)
		}
	}
	head.Remaining -= dt
	if head.Remaining <= 0 {
		c.plan = c.plan[1:]
	}
}

func (c *Controller) position(n *node.Node) (geom.Vec2, bool) {
	if n == nil {
		return geom.Vec2{}, false
	}
	return c.nav.WorldPosition(n.Address())
}

// stepWaiting nudges the agent toward the node it is standing on.
func (c *Controller) stepWaiting(pos geom.Vec2) {
	target, ok := c.position(c.current)
	if !ok {
		return
	}
	c.push(toward(target.X-pos.X), 0)
}

// stepWalking is a bang-bang law: brake when braking now would only just
// stop at the destination, otherwise accelerate up to walking speed.
func (c *Controller) stepWalking(pos geom.Vec2) {
	target, ok := c.position(c.dest)
	if !ok {
		return
	}
	dx := target.X - pos.X
	sign := geom.Sign(dx)

	vx := c.pilot.Velocity().X
	motion := geom.Sign(vx)
	braking := -ballistic.BrakingDistance(vx, 0, c.pilot.Envelope().HorizontalAccel) * motion

	switch {
	case dx*sign < braking*sign:
		c.push(toward(-sign), 0)
	case motion != sign || math.Abs(vx) < c.params.WalkingSpeed:
		c.push(toward(sign), 0)
	default:
		c.push(None, 0)
	}
}

// stepJumping queues the whole jump on the first tick in the state and only
// counts the flight time down afterwards.
func (c *Controller) stepJumping(dt float64) {
	c.cooldown -= dt
	if c.jumping {
		return
	}
	c.jumping = true

	from, ok1 := c.position(c.current)
	to, ok2 := c.position(c.dest)
	if !ok1 || !ok2 {
		return
	}
	env := c.pilot.Envelope()
	g := c.world.Gravity().Y
	rel := to.Sub(from)

	c.cooldown = env.JumpDuration(rel.Y, g)
	c.push(MoveUp, 0)
	steer := env.SteeringDuration(rel, c.pilot.Velocity().X, g)
	switch {
	case math.IsNaN(steer):
	case steer < 0:
		c.push(MoveLeft, -steer)
	default:
		c.push(MoveRight, steer)
	}
	c.push(None, 0)
}

// stepFalling steers so that the horizontal distance covered by the time the
// agent drops to the destination's height matches the distance still to go.
func (c *Controller) stepFalling(pos geom.Vec2) {
	target, ok := c.position(c.dest)
	if !ok {
		return
	}
	disp := target.Sub(pos)
	sign := geom.Sign(disp.X)

	vel := c.pilot.Velocity()
	t := ballistic.SolveTime(disp.Y, vel.Y, c.world.Gravity().Y).First
	if math.IsNaN(t) {
		t = 0
	}
	projected := vel.X * t

	if disp.X*sign > projected*sign {
		c.push(toward(sign), 0)
	} else {
		c.push(toward(-sign), 0)
	}
}

func (c *Controller) canWalk() bool {
	if c.current == nil || c.dest == nil {
		return false
	}
	return c.current.Address().SameParent(c.dest.Address())
}

func (c *Controller) canJump(pos geom.Vec2) bool {
	if c.current == nil || c.dest == nil {
		return false
	}
	if _, grounded := c.pilot.Contact(); !grounded {
		return false
	}
	target, ok := c.position(c.dest)
	if !ok {
		return false
	}
	return c.world.CanJump(pos, target, c.pilot.Velocity().X)
}

func (c *Controller) canFall() bool {
	if c.current == nil {
		return true
	}
	if c.dest == nil {
		return false
	}
	if _, grounded := c.pilot.Contact(); !grounded {
		return true
	}
	return c.pilot.Velocity().Y > c.params.FallSpeed
}

func (c *Controller) nextState(pos geom.Vec2) State {
	switch c.state {
	case Waiting:
		switch {
		case c.canWalk():
			return Walking
		case c.canJump(pos):
			return Jumping
		case c.canFall():
			return Falling
		}
	case Walking:
		switch {
		case c.canWalk():
			return Walking
		case c.canFall():
			return Falling
		case c.canJump(pos):
			return Jumping
		}
	case Jumping:
		if c.cooldown > 0 {
			return Jumping
		}
		c.jumping = false
	case Falling:
		switch {
		case c.canFall():
			return Falling
		case c.canWalk():
			return Walking
		}
	}
	return Waiting
}
