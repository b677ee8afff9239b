package physics

import (
	"github.com/specialistvlad/jumpgridgo/internal/ballistic"
	"github.com/specialistvlad/jumpgridgo/internal/controller"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

// CharacterConfig sizes a character. Speed drives every derived force.
type CharacterConfig struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
	Mass   float64 `yaml:"mass"`
}

// DefaultCharacter returns radius 9, speed 25000, mass 120.
func DefaultCharacter() CharacterConfig {
	return CharacterConfig{Radius: 9, Speed: 25000, Mass: 120}
}

// Envelope derives the jump envelope a character of this configuration has.
func (c CharacterConfig) Envelope() ballistic.Envelope {
	return ballistic.Envelope{
		JumpVelocity:    -c.Speed / 145,
		HorizontalAccel: c.Speed / c.Mass,
		Radius:          c.Radius,
	}
}

// Character is a ball steered by four held inputs.
type Character struct {
	body *Body
	cfg  CharacterConfig
	held [len(controller.Directions)]bool
}

// NewCharacter creates a character at pos. It is not part of any world until
// World.AddCharacter is called.
func NewCharacter(pos geom.Vec2, cfg CharacterConfig) *Character {
	return &Character{body: NewBall(pos, cfg.Radius, cfg.Mass), cfg: cfg}
}

func (c *Character) Body() *Body { return c.body }

// Begin starts holding d.
func (c *Character) Begin(d controller.Direction) { c.held[d] = true }

// End releases d.
func (c *Character) End(d controller.Direction) { c.held[d] = false }

// Holding reports whether d is held.
func (c *Character) Holding(d controller.Direction) bool { return c.held[d] }

func (c *Character) Position() (geom.Vec2, bool) { return c.body.Position() }
func (c *Character) Velocity() geom.Vec2         { return c.body.Velocity() }
func (c *Character) Contact() (geom.Vec2, bool)  { return c.body.Contact() }
func (c *Character) Radius() float64             { return c.body.Radius() }

// Envelope reports the character's jump envelope with its current radius.
func (c *Character) Envelope() ballistic.Envelope {
	env := c.cfg.Envelope()
	env.Radius = c.body.radius
	return env
}

// Step turns the held inputs into forces for the next integration. A held Up
// jumps once when grounded and is then released; Down pushes the character
// toward the ground while it is not jumping.
func (c *Character) Step() {
	var force geom.Vec2
	if c.held[controller.Right] {
		force.X += c.cfg.Speed
	}
	if c.held[controller.Left] {
		force.X -= c.cfg.Speed
	}

	_, grounded := c.body.Contact()
	switch {
	case grounded && c.held[controller.Up]:
		c.body.vel.Y += c.Envelope().JumpVelocity
		c.held[controller.Up] = false
	case c.held[controller.Down]:
		force.Y += c.cfg.Speed
	}

	c.body.AddForce(force)
}

var _ controller.Pilot = (*Character)(nil)
