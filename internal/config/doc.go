// Package config defines the format-agnostic level model and the Loader
// interface that produces it.
//
// A `config.Level` is the single source of truth for building a simulation:
// the static boxes, lifts, hazards, spawn points and goal of one scene.
// Concrete loaders live in separate packages: `hcl` reads level files and
// `levelgen` generates levels procedurally.
package config
