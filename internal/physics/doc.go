// Package physics is the small rigid body world the agents live in.
//
// It knows three kinds of bodies: static boxes, lifts (boxes that shuttle
// between two points) and characters (circles driven by directional input).
// Only characters react to contacts; boxes behave as if infinitely heavy.
//
// A tick is StepLifts (lifts pick their velocity for the tick), then each
// character's input step (inputs become forces), then Step (integration and
// contact resolution).
//
// The world also answers the two feasibility questions the navigation layer
// asks while building its graph and while steering: can a character jump, or
// fall, from one point to another without its arc passing through a static
// box. Lifts are ignored by that culling.
//
// Coordinates are screen coordinates: y grows downward and gravity is +y.
package physics
