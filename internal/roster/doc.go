// Package roster owns the live agents.
//
// An Agent bundles everything one agent needs (its id, its physics character
// and its controller) in a single record. The Manager keeps those records,
// spawns new agents on a timer at seeded-random spawn points and removes
// agents that shrank too far or fell below the kill plane.
//
// Removal happens only in Manager.Despawn, which takes the agent out of the
// physics world, the navigation graph and the roster together. Step never
// removes agents while it is iterating them: it marks them first and
// despawns after the pass.
package roster
