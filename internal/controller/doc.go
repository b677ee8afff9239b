// Package controller turns an agent's next waypoint into movement input.
//
// Each agent owns one Controller. Every tick it asks the navigation graph for
// a fresh path, locates the agent on the graph, picks the next waypoint and
// runs a four-state machine over the result:
//
//	WAITING  -> walk, jump, fall (first that applies)
//	WALKING  -> walk, fall, jump
//	JUMPING  -> stays until the flight time runs out, then WAITING
//	FALLING  -> fall, walk
//
// Anything that matches nothing drops back to WAITING.
//
// # Directives
//
// States do not touch the character directly. They append Directives to a
// queue, and only the head of the queue is applied each tick. A zero duration
// directive applies for exactly one tick. Walking, falling and waiting only
// ever queue zero duration directives and decide again next tick; a jump
// queues its whole plan at once (impulse, steering, release) and cannot be
// revised mid-flight.
//
// Applying a directive begins every direction whose bit is set and ends every
// other one. A directive with no bits ends all four.
package controller
