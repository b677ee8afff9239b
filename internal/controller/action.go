package controller

import "strings"

// Direction is one of the four inputs a character accepts.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in bit order.
var Directions = [...]Direction{Left, Right, Up, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Action is a set of directions held at once.
type Action uint8

const (
	None      Action = 0
	MoveLeft  Action = 1 << Left
	MoveRight Action = 1 << Right
	MoveUp    Action = 1 << Up
	MoveDown  Action = 1 << Down
)

// Has reports whether d is part of the action.
func (a Action) Has(d Direction) bool { return a&(1<<d) != 0 }

func (a Action) String() string {
	if a == None {
		return "none"
	}
	var parts []string
	for _, d := range Directions {
		if a.Has(d) {
			parts = append(parts, d.String())
		}
	}
	return strings.Join(parts, "|")
}

// Directive holds an action for a number of seconds.
type Directive struct {
	Action    Action
	Remaining float64
}
