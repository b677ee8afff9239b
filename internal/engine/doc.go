// Package engine assembles a level into a running simulation and drives it
// tick by tick.
//
// # Tick order
//
// Each Simulation.Tick runs the same fixed sequence:
//
//  1. the goal source is sampled and the shared goal is moved;
//  2. lifts advance their schedules;
//  3. the roster despawns dead agents, steps every live controller and
//     character, then spawns on its interval;
//  4. the physics world integrates and resolves contacts;
//  5. a Snapshot is built and handed to every Observer.
//
// Observers (the recorder, the trace writer and the telemetry publishers)
// see the world after physics, so a snapshot always describes a consistent
// state.
//
// # Assembly
//
// Build turns a config.Level plus tuning into the physics world, the
// populated navigation graph and the roster, all wired to each other.
package engine
