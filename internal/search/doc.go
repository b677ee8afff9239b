// Package search finds paths through the navigation tree.
//
// # Strategies
//
// Two strategies are used, chosen by tree depth:
//   - Shortcut: a greedy, leaf-level lookup. It assumes every point on a
//     platform can walk to every other, and only picks the exit point nearest
//     the start that has an edge onto the target platform.
//   - AStar: a best-first search over the children of one tree node, biased by
//     the distance of each candidate to the shared goal. The bias uses the
//     global goal rather than the local target, so results are goal seeking
//     but not guaranteed optimal.
//
// # Planner
//
// Planner ties both strategies together. It descends the tree while start and
// destination share a child, plans at the level where they diverge, and then
// recurses into the first hop of that plan. Each level keeps a per-agent cache
// of its last query, and an agent will reuse another agent's identical query
// before searching itself.
//
// Search state lives in maps owned by a single call. Nodes carry no scratch
// fields, so a tree can be searched repeatedly without a reset pass.
package search
