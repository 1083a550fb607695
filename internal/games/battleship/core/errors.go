package core

import (
	"errors"
	"fmt"
)

var (
	// ErrPlacementExhausted is matched by *PlacementExhaustedError.
	ErrPlacementExhausted = errors.New("battleship: ship placement exhausted")

	// ErrInvalidTurn is matched by *InvalidTurnError.
	ErrInvalidTurn = errors.New("battleship: invalid turn operation")

	// ErrOutOfBounds is returned for coordinates outside the board.
	ErrOutOfBounds = errors.New("battleship: coordinate out of bounds")

	// ErrNoTargets is returned when every cell has already been fired upon.
	ErrNoTargets = errors.New("battleship: no untargeted cells remain")

	// ErrInvalidBoard is returned when ships are placed on a board without
	// any cells.
	ErrInvalidBoard = errors.New("battleship: board needs at least one row and column")
)

// PlacementExhaustedError reports a ship that found no valid position
// within the attempt budget. The board is left partially populated and
// should be discarded.
type PlacementExhaustedError struct {
	Ship     ShipKind
	Attempts int
}

func (e *PlacementExhaustedError) Error() string {
	return fmt.Sprintf("battleship: could not place %s after %d attempts", e.Ship, e.Attempts)
}

func (e *PlacementExhaustedError) Unwrap() error {
	return ErrPlacementExhausted
}

// InvalidTurnError reports an operation attempted in the wrong phase.
type InvalidTurnError struct {
	Op    string
	Phase Phase
}

func (e *InvalidTurnError) Error() string {
	return fmt.Sprintf("battleship: %s not allowed while %s", e.Op, e.Phase)
}

func (e *InvalidTurnError) Unwrap() error {
	return ErrInvalidTurn
}
