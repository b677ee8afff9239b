package config

import "context"

// Env is what a loader may expose to the level source while loading, such
// as the agent radius for placing spawn points above a surface.
type Env struct {
	AgentRadius float64
}

// Loader is the interface for a format-specific level loader.
type Loader interface {
	// Load reads the level from the given paths and returns the merged,
	// validated model.
	Load(ctx context.Context, env Env, paths ...string) (*Level, error)
}
