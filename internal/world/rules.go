package world

import (
	"errors"
	"fmt"
)

// NoToken is the held value when the player carries nothing.
const NoToken = 0

// Rejection kinds. None of them ends the session.
var (
	ErrOutOfRange    = errors.New("target out of range")
	ErrInvalidPickup = errors.New("nothing to pick up")
	ErrInvalidCraft  = errors.New("cannot craft")
)

// Outcome is the result kind of one interaction.
type Outcome int

const (
	OutcomeTooFar Outcome = iota
	OutcomeNothingToPickUp
	OutcomePickup
	OutcomeCellEmpty
	OutcomeMismatch
	OutcomeCraft
)

// String returns a short name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeTooFar:
		return "too_far"
	case OutcomeNothingToPickUp:
		return "nothing_to_pick_up"
	case OutcomePickup:
		return "pickup"
	case OutcomeCellEmpty:
		return "cell_empty"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeCraft:
		return "craft"
	default:
		return "unknown"
	}
}

// Err maps rejecting outcomes to the error taxonomy. Nil for success.
func (o Outcome) Err() error {
	switch o {
	case OutcomeTooFar:
		return ErrOutOfRange
	case OutcomeNothingToPickUp:
		return ErrInvalidPickup
	case OutcomeCellEmpty, OutcomeMismatch:
		return ErrInvalidCraft
	default:
		return nil
	}
}

// Rejected reports whether the interaction left the state unchanged.
func (o Outcome) Rejected() bool {
	return o.Err() != nil
}

// Rules holds the interaction constants.
type Rules struct {
	InteractionRadius int
	GoalValue         int
}

// Decision is the pure result of applying Rules to one interaction.
// Held and Cell are the values after the interaction.
type Decision struct {
	Outcome     Outcome
	Held        int
	Cell        int
	GoalReached bool

	// values before the interaction, kept for the status text
	prevHeld int
	prevCell int
}

// Resolve decides a single interaction. The distance check comes first so
// an out-of-range cell never reveals its contents.
func (r Rules) Resolve(held, cell, distance int) Decision {
	d := Decision{Held: held, Cell: cell, prevHeld: held, prevCell: cell}

	switch {
	case distance > r.InteractionRadius:
		d.Outcome = OutcomeTooFar
	case held == NoToken && cell == 0:
		d.Outcome = OutcomeNothingToPickUp
	case held == NoToken:
		d.Outcome = OutcomePickup
		d.Held = cell
		d.Cell = 0
	case cell == 0:
		d.Outcome = OutcomeCellEmpty
	case cell != held:
		d.Outcome = OutcomeMismatch
	default:
		d.Outcome = OutcomeCraft
		d.Cell = held * 2
		d.Held = NoToken
		d.GoalReached = d.Cell >= r.GoalValue
	}

	return d
}

// Message returns the status line for the decision.
func (d Decision) Message() string {
	switch d.Outcome {
	case OutcomeTooFar:
		return "That cell is too far away."
	case OutcomeNothingToPickUp:
		return "Nothing to pick up here."
	case OutcomePickup:
		return fmt.Sprintf("Picked up a %d token.", d.Held)
	case OutcomeCellEmpty:
		return fmt.Sprintf("That cell is empty, cannot craft your %d token.", d.prevHeld)
	case OutcomeMismatch:
		return fmt.Sprintf("Cannot craft: you hold %d but the cell has %d.", d.prevHeld, d.prevCell)
	case OutcomeCraft:
		if d.GoalReached {
			return fmt.Sprintf("Crafted a %d token! Goal reached!", d.Cell)
		}
		return fmt.Sprintf("Crafted a %d token!", d.Cell)
	default:
		return ""
	}
}
