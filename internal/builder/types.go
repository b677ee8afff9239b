package builder

import (
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/node"
)

// Platform is one rigid surface to decompose into nodes.
type Platform struct {
	// Name is used for logging only.
	Name string
	// Anchor reports the body's live position. When nil the platform is fixed
	// at Position.
	Anchor node.Anchor
	// Position is the body's position at build time.
	Position geom.Vec2
	// Bounds is the body's extent relative to Position.
	Bounds geom.AABB
	// Motion is set for platforms riding between two endpoints.
	Motion *node.MotionProfile
}

// Feasibility answers whether a standing character could get from src to dst.
type Feasibility interface {
	CanJump(src, dst geom.Vec2) bool
	CanFall(src, dst geom.Vec2) bool
}

// Input is everything Populate needs.
type Input struct {
	Static []Platform
	Moving []Platform
	// Radius is the agent's collision radius. It sets leaf clearance and spacing.
	Radius    float64
	Probe     Feasibility
	Penalties node.Penalties
}
