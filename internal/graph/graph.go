package graph

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/builder"
	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/node"
	"github.com/specialistvlad/jumpgridgo/internal/nodeid"
	"github.com/specialistvlad/jumpgridgo/internal/search"
)

// DefaultSnapRadius is how far a point may be from a leaf and still count as
// standing on it.
const DefaultSnapRadius = 25.0

// ErrPopulated is returned when Populate is called on a graph that already
// holds a level.
var ErrPopulated = errors.New("graph already populated")

// Options tunes a Graph.
type Options struct {
	SnapRadius      float64        `yaml:"snap_radius"`
	HeuristicWeight float64        `yaml:"heuristic_weight"`
	Penalties       node.Penalties `yaml:"penalties"`
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		SnapRadius:      DefaultSnapRadius,
		HeuristicWeight: search.DefaultHeuristicWeight,
		Penalties:       node.DefaultPenalties(),
	}
}

// Graph owns the node tree, the shared goal and every agent's current path.
type Graph struct {
	opts    Options
	root    *node.Node
	planner *search.Planner
	goal    geom.Vec2
	paths   map[uuid.UUID][]nodeid.Address
}

// New creates an empty graph. Zero option fields fall back to the defaults.
func New(opts Options) *Graph {
	def := DefaultOptions()
	if opts.SnapRadius <= 0 {
		opts.SnapRadius = def.SnapRadius
	}
	if opts.HeuristicWeight <= 0 {
		opts.HeuristicWeight = def.HeuristicWeight
	}
	if opts.Penalties == (node.Penalties{}) {
		opts.Penalties = def.Penalties
	}
	root := node.NewRoot()
	return &Graph{
		opts:    opts,
		root:    root,
		planner: search.NewPlanner(root, opts.HeuristicWeight),
		paths:   make(map[uuid.UUID][]nodeid.Address),
	}
}

// Populate builds the tree from the level's platforms. It runs once; agents
// registered beforehand receive slots in the new nodes.
func (g *Graph) Populate(ctx context.Context, in builder.Input) error {
	if len(g.root.Children()) > 0 {
		return ErrPopulated
	}
	in.Penalties = g.opts.Penalties
	if err := builder.Populate(ctx, g.root, in); err != nil {
		return fmt.Errorf("failed to populate navigation graph: %w", err)
	}
	for id := range g.paths {
		g.root.AddAgent(id)
	}
	return nil
}

// Root exposes the tree for inspection.
func (g *Graph) Root() *node.Node { return g.root }

// SetGoal moves the shared goal every agent paths toward.
func (g *Graph) SetGoal(p geom.Vec2) { g.goal = p }

// Goal returns the shared goal.
func (g *Graph) Goal() geom.Vec2 { return g.goal }

// AddAgent registers the agent. Registering twice is harmless.
func (g *Graph) AddAgent(id uuid.UUID) {
	if _, ok := g.paths[id]; ok {
		return
	}
	g.paths[id] = nil
	g.root.AddAgent(id)
}

// RemoveAgent drops the agent's path and every cache slot it owns.
func (g *Graph) RemoveAgent(id uuid.UUID) {
	delete(g.paths, id)
	g.root.RemoveAgent(id)
}

// HasAgent reports whether the agent is registered.
func (g *Graph) HasAgent(id uuid.UUID) bool {
	_, ok := g.paths[id]
	return ok
}

// AgentCount returns the number of registered agents.
func (g *Graph) AgentCount() int { return len(g.paths) }

// Path returns a copy of the agent's current path.
func (g *Graph) Path(id uuid.UUID) []nodeid.Address {
	return slices.Clone(g.paths[id])
}

// RefreshPath implements Navigator.
func (g *Graph) RefreshPath(ctx context.Context, id uuid.UUID, position geom.Vec2) {
	if !g.HasAgent(id) {
		return
	}
	start, _, ok := g.root.NearestLeaf(position)
	if !ok {
		return
	}
	end, _, ok := g.root.NearestLeaf(g.goal)
	if !ok {
		return
	}

	g.paths[id] = nil
	path := g.planner.Path(id, start.Address(), end.Address(), g.goal)
	if len(path) == 0 {
		if !start.Address().Equal(end.Address()) {
			ctxlog.FromContext(ctx).Debug("RefreshPath: No route to goal.",
				"agent", id, "from", start.Address().String(), "to", end.Address().String())
		}
		return
	}
	g.paths[id] = path
}

// NodeAt implements Navigator.
func (g *Graph) NodeAt(p geom.Vec2) *node.Node {
	leaf, pos, ok := g.root.NearestLeaf(p)
	if !ok || pos.Dist(p) > g.opts.SnapRadius {
		return nil
	}
	return leaf
}

// NextWaypoint implements Navigator. With a current node it skips every path
// entry still on the current node's platform and returns the first one that
// changes platform, or the last entry when none does.
func (g *Graph) NextWaypoint(id uuid.UUID, current *node.Node) *node.Node {
	path := g.paths[id]
	if len(path) == 0 {
		return nil
	}
	if current == nil {
		return g.root.Resolve(path[0])
	}

	plat := current.Address().Parent()
	for _, addr := range path {
		if !addr.Parent().Equal(plat) {
			return g.root.Resolve(addr)
		}
	}
	return g.root.Resolve(path[len(path)-1])
}

// WorldPosition implements Navigator.
func (g *Graph) WorldPosition(addr nodeid.Address) (geom.Vec2, bool) {
	return g.root.PositionOf(addr)
}
