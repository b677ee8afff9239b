package roster

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
)

// EventKind tells spawns from despawns.
type EventKind int

const (
	Spawned EventKind = iota
	Despawned
)

func (k EventKind) String() string {
	if k == Spawned {
		return "spawned"
	}
	return "despawned"
}

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *EventKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "spawned":
		*k = Spawned
	case "despawned":
		*k = Despawned
	default:
		return fmt.Errorf("unknown event kind %q", b)
	}
	return nil
}

// Reason says why an agent was despawned.
type Reason int

const (
	Requested Reason = iota
	Shrunk
	OutOfBounds
	Detached
)

func (r Reason) String() string {
	switch r {
	case Requested:
		return "requested"
	case Shrunk:
		return "shrunk"
	case OutOfBounds:
		return "out_of_bounds"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Reason) UnmarshalText(b []byte) error {
	for c := Requested; c <= Detached; c++ {
		if c.String() == string(b) {
			*r = c
			return nil
		}
	}
	return fmt.Errorf("unknown despawn reason %q", b)
}

// Event records a roster change.
type Event struct {
	Kind     EventKind `json:"kind"`
	Agent    uuid.UUID `json:"agent"`
	Reason   Reason    `json:"reason"`
	Position geom.Vec2 `json:"position"`
	// At is the simulation time in seconds.
	At float64 `json:"at"`
}
