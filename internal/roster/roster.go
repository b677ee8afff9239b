package roster

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/controller"
	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/graph"
	"github.com/specialistvlad/jumpgridgo/internal/physics"
)

// World is the part of the physics world the roster manages agents in.
type World interface {
	controller.Physics
	AddCharacter(c *physics.Character)
	Remove(c *physics.Character)
}

// Options tunes the roster.
type Options struct {
	MaxAgents     int     `yaml:"max_agents"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	// MinRadius is the radius below which an agent is removed.
	MinRadius float64 `yaml:"min_radius"`
	// KillPlane is the y below which (numerically above) agents are removed.
	KillPlane float64 `yaml:"-"`
	Seed      uint64  `yaml:"-"`

	Character physics.CharacterConfig `yaml:"character"`
	Control   controller.Params       `yaml:"control"`
}

// DefaultOptions returns 30 agents, one spawn every 2 s and removal below
// radius 6.
func DefaultOptions() Options {
	return Options{
		MaxAgents:     30,
		SpawnInterval: 2,
		MinRadius:     6,
		KillPlane:     700,
		Character:     physics.DefaultCharacter(),
		Control:       controller.DefaultParams(),
	}
}

// Agent is one live agent.
type Agent struct {
	ID         uuid.UUID
	Character  *physics.Character
	Controller *controller.Controller
	SpawnedAt  float64
}

// Manager is the bounded pool of live agents.
type Manager struct {
	opts   Options
	world  World
	nav    graph.Navigator
	spawns []geom.Vec2
	rng    *rand.Rand

	agents     []*Agent
	elapsed    float64
	sinceSpawn float64
	pending    []Event
}

// New creates an empty roster spawning at the given points.
func New(world World, nav graph.Navigator, spawns []geom.Vec2, opts Options) *Manager {
	return &Manager{
		opts:   opts,
		world:  world,
		nav:    nav,
		spawns: slices.Clone(spawns),
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
}

// Len returns the number of live agents.
func (m *Manager) Len() int { return len(m.agents) }

// Agents returns the live agents in spawn order.
func (m *Manager) Agents() []*Agent { return slices.Clone(m.agents) }

// Get returns the agent with the given id.
func (m *Manager) Get(id uuid.UUID) (*Agent, bool) {
	i := m.index(id)
	if i < 0 {
		return nil, false
	}
	return m.agents[i], true
}

func (m *Manager) index(id uuid.UUID) int {
	return slices.IndexFunc(m.agents, func(a *Agent) bool { return a.ID == id })
}

// Spawn adds an agent at pos. It returns false when the roster is full.
func (m *Manager) Spawn(ctx context.Context, pos geom.Vec2) (*Agent, bool) {
	if len(m.agents) >= m.opts.MaxAgents {
		return nil, false
	}

	id := uuid.New()
	char := physics.NewCharacter(pos, m.opts.Character)
	m.world.AddCharacter(char)
	m.nav.AddAgent(id)
	a := &Agent{
		ID:         id,
		Character:  char,
		Controller: controller.New(id, m.nav, m.world, char, m.opts.Control),
		SpawnedAt:  m.elapsed,
	}
	m.agents = append(m.agents, a)

	ctxlog.FromContext(ctx).Debug("Agent spawned.", "agent", id, "x", pos.X, "y", pos.Y, "live", len(m.agents))
	m.pending = append(m.pending, Event{Kind: Spawned, Agent: id, Position: pos, At: m.elapsed})
	return a, true
}

// Despawn removes the agent from the physics world, the navigation graph and
// the roster. Unknown ids are ignored.
func (m *Manager) Despawn(ctx context.Context, id uuid.UUID, reason Reason) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	a := m.agents[i]
	pos, _ := a.Character.Position()

	m.world.Remove(a.Character)
	m.nav.RemoveAgent(id)
	m.agents = slices.Delete(m.agents, i, i+1)

	ctxlog.FromContext(ctx).Debug("Agent despawned.", "agent", id, "reason", reason.String(), "live", len(m.agents))
	m.pending = append(m.pending, Event{Kind: Despawned, Agent: id, Reason: reason, Position: pos, At: m.elapsed})
	return true
}

// Step runs one tick: remove agents that should die, advance everyone else's
// controller and input, then spawn when the interval has passed. It returns
// the events of the tick.
func (m *Manager) Step(ctx context.Context, dt float64) []Event {
	m.elapsed += dt

	var doomed []mark
	for _, a := range m.agents {
		if reason, dead := m.shouldDespawn(a); dead {
			doomed = append(doomed, mark{a.ID, reason})
			continue
		}
		a.Controller.Step(ctx, dt)
		a.Character.Step()
	}
	for _, d := range doomed {
		m.Despawn(ctx, d.id, d.reason)
	}

	m.sinceSpawn += dt
	if m.sinceSpawn > m.opts.SpawnInterval && len(m.spawns) > 0 {
		m.Spawn(ctx, m.spawns[m.rng.IntN(len(m.spawns))])
		m.sinceSpawn = 0
	}

	events := m.pending
	m.pending = nil
	return events
}

type mark struct {
	id     uuid.UUID
	reason Reason
}

func (m *Manager) shouldDespawn(a *Agent) (Reason, bool) {
	pos, ok := a.Character.Position()
	switch {
	case !ok:
		return Detached, true
	case a.Character.Radius() < m.opts.MinRadius:
		return Shrunk, true
	case pos.Y > m.opts.KillPlane:
		return OutOfBounds, true
	}
	return 0, false
}
