// Package tuning loads the YAML file that overrides the navigation and agent
// defaults.
package tuning

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/jumpgridgo/internal/graph"
	"github.com/specialistvlad/jumpgridgo/internal/roster"
	"gopkg.in/yaml.v3"
)

// Tuning is every knob that is not part of a level.
type Tuning struct {
	Graph  graph.Options  `yaml:"graph"`
	Roster roster.Options `yaml:"roster"`
}

// Defaults returns the stock tuning.
func Defaults() Tuning {
	return Tuning{
		Graph:  graph.DefaultOptions(),
		Roster: roster.DefaultOptions(),
	}
}

// Load reads path and overlays it on Defaults. Keys missing from the file
// keep their default; unknown keys are an error. An empty path returns the
// defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return Parse(raw)
}

// Parse overlays raw YAML on Defaults and validates the result.
func Parse(raw []byte) (Tuning, error) {
	t := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Validate rejects values the simulation cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}
	g, r := t.Graph, t.Roster
	check(g.SnapRadius > 0, "graph.snap_radius must be positive")
	check(g.HeuristicWeight >= 0, "graph.heuristic_weight must not be negative")
	check(g.Penalties.Walk >= 0 && g.Penalties.Fall >= 0 && g.Penalties.Jump >= 0, "graph.penalties must not be negative")
	check(r.MaxAgents > 0, "roster.max_agents must be positive")
	check(r.SpawnInterval > 0, "roster.spawn_interval must be positive")
	check(r.MinRadius >= 0, "roster.min_radius must not be negative")
	check(r.Character.Radius > r.MinRadius, "roster.character.radius must exceed roster.min_radius")
	check(r.Character.Speed > 0, "roster.character.speed must be positive")
	check(r.Character.Mass > 0, "roster.character.mass must be positive")
	check(r.Control.WalkingSpeed > 0, "roster.control.walking_speed must be positive")
	check(r.Control.FallSpeed >= 0, "roster.control.fall_speed must not be negative")
	return errors.Join(errs...)
}
