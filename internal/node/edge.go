package node

import "github.com/specialistvlad/jumpgridgo/internal/nodeid"

// Traversal is the motion needed to follow an edge.
type Traversal int

const (
	// HighLevel links two platform nodes whose surfaces are connected.
	HighLevel Traversal = iota
	Walk
	Jump
	Fall
)

func (t Traversal) String() string {
	switch t {
	case HighLevel:
		return "high_level"
	case Walk:
		return "walk"
	case Jump:
		return "jump"
	case Fall:
		return "fall"
	default:
		return "unknown"
	}
}

// Edge is an immutable directed link to another node.
type Edge struct {
	Target    nodeid.Address
	Cost      float64
	Traversal Traversal
}

// NewEdge copies target so the edge never aliases the caller's address.
func NewEdge(target nodeid.Address, cost float64, t Traversal) Edge {
	return Edge{Target: nodeid.New(target.Path...), Cost: cost, Traversal: t}
}

// Penalties are the fixed costs added to an edge's length per traversal kind.
// They bias routes away from risky moves.
type Penalties struct {
	Walk float64 `yaml:"walk"`
	Fall float64 `yaml:"fall"`
	Jump float64 `yaml:"jump"`
}

// DefaultPenalties returns walk 2, fall 5, jump 20.
func DefaultPenalties() Penalties {
	return Penalties{Walk: 2, Fall: 5, Jump: 20}
}

// Cost is distance plus the penalty for t. High level edges carry none.
func (p Penalties) Cost(distance float64, t Traversal) float64 {
	switch t {
	case Walk:
		return distance + p.Walk
	case Fall:
		return distance + p.Fall
	case Jump:
		return distance + p.Jump
	default:
		return distance
	}
}
