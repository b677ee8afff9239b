// Package app contains the core application logic. It defines the main App
// struct, its configuration and the run lifecycle: load the tuning and the
// level, build the simulation, attach the recorders and telemetry, run, and
// shut everything down. It is decoupled from any specific entrypoint.
package app
