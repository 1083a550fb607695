// Package core implements the battleship rules: boards and ship placement,
// the hunt/target AI, and the turn controller. It has no UI dependencies.
package core

import (
	"cmp"
	"fmt"
	"slices"
)

// DefaultRows and DefaultCols are the classic board dimensions.
const (
	DefaultRows = 10
	DefaultCols = 10

	// DefaultPlacementAttempts is the per-ship random draw budget.
	DefaultPlacementAttempts = 100
)

// Board owns a cell grid and the ships placed on it.
type Board struct {
	rows  int
	cols  int
	cells [][]CellState
	ships []PlacedShip
}

// NewBoard creates an empty board. Negative dimensions are treated as zero;
// ships cannot be placed on such a board.
func NewBoard(rows, cols int) *Board {
	rows, cols = max(rows, 0), max(cols, 0)
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([][]CellState, rows),
	}
	for r := range b.cells {
		b.cells[r] = make([]CellState, cols)
		for c := range b.cells[r] {
			b.cells[r][c] = CellState{Status: CellEmpty, ShipID: NoShip}
		}
	}
	return b
}

// GenerateBoard creates a board and places the whole fleet at random.
func GenerateBoard(rows, cols int, fleet []ShipSpec, rng Rand, maxAttempts int) (*Board, error) {
	b := NewBoard(rows, cols)
	if err := b.PlaceAll(fleet, rng, maxAttempts); err != nil {
		return nil, err
	}
	return b, nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// CellAt returns the state of a cell. Out-of-bounds coordinates read as Miss
// so callers scanning neighbours never treat them as targets.
func (b *Board) CellAt(c Coord) CellState {
	if !b.InBounds(c) {
		return CellState{Status: CellMiss, ShipID: NoShip}
	}
	return b.cells[c.Row][c.Col]
}

// Unknown reports whether c is on the board and has not been fired upon.
func (b *Board) Unknown(c Coord) bool {
	return b.InBounds(c) && b.cells[c.Row][c.Col].Unknown()
}

// Ships returns a copy of the placed ships in placement order.
func (b *Board) Ships() []PlacedShip {
	out := make([]PlacedShip, len(b.ships))
	for i, s := range b.ships {
		s.HitMask = slices.Clone(s.HitMask)
		out[i] = s
	}
	return out
}

// Ship returns the ship with the given ID.
func (b *Board) Ship(id int) (PlacedShip, bool) {
	if id < 0 || id >= len(b.ships) {
		return PlacedShip{}, false
	}
	s := b.ships[id]
	s.HitMask = slices.Clone(s.HitMask)
	return s, true
}

// CanPlace reports whether a ship fits entirely on empty, in-bounds cells.
func (b *Board) CanPlace(spec ShipSpec, origin Coord, o Orientation) bool {
	if spec.Length <= 0 {
		return false
	}
	for _, c := range Footprint(origin, o, spec.Length) {
		if !b.InBounds(c) || b.cells[c.Row][c.Col].Status != CellEmpty {
			return false
		}
	}
	return true
}

// Place puts a ship on the board and returns its ID.
// It panics if CanPlace would return false.
func (b *Board) Place(spec ShipSpec, origin Coord, o Orientation) int {
	if !b.CanPlace(spec, origin, o) {
		panic(fmt.Sprintf("battleship: cannot place %s at %s %s", spec.Kind, origin, o))
	}

	id := len(b.ships)
	for _, c := range Footprint(origin, o, spec.Length) {
		b.cells[c.Row][c.Col] = CellState{Status: CellOccupied, ShipID: id}
	}
	b.ships = append(b.ships, PlacedShip{
		Spec:        spec,
		Origin:      origin,
		Orientation: o,
		HitMask:     make([]bool, spec.Length),
	})
	return id
}

// PlaceAll places the fleet longest-first, drawing up to maxAttempts random
// origins and orientations per ship. On failure the board is partially
// populated and must be discarded.
func (b *Board) PlaceAll(fleet []ShipSpec, rng Rand, maxAttempts int) error {
	if b.rows == 0 || b.cols == 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidBoard, b.rows, b.cols)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultPlacementAttempts
	}

	ordered := slices.Clone(fleet)
	slices.SortStableFunc(ordered, func(a, b ShipSpec) int {
		return cmp.Compare(b.Length, a.Length)
	})

	for _, spec := range ordered {
		placed := false
		for range maxAttempts {
			o := Horizontal
			if rng.Intn(2) == 1 {
				o = Vertical
			}
			origin := C(rng.Intn(b.rows), rng.Intn(b.cols))
			if b.CanPlace(spec, origin, o) {
				b.Place(spec, origin, o)
				placed = true
				break
			}
		}
		if !placed {
			return &PlacementExhaustedError{Ship: spec.Kind, Attempts: maxAttempts}
		}
	}
	return nil
}

// ReceiveShot fires at c. A cell that was already fired upon yields
// OutcomeAlreadyTargeted and leaves the board unchanged.
func (b *Board) ReceiveShot(c Coord) (ShotResult, error) {
	if !b.InBounds(c) {
		return ShotResult{}, fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, c, b.rows, b.cols)
	}

	cell := &b.cells[c.Row][c.Col]
	switch cell.Status {
	case CellOccupied:
		cell.Status = CellHit
		ship := &b.ships[cell.ShipID]
		ship.HitMask[ship.segment(c)] = true
		return ShotResult{
			Coord:   c,
			Outcome: OutcomeHit,
			Ship:    ship.Spec.Kind,
			ShipID:  cell.ShipID,
			Sunk:    ship.Sunk(),
		}, nil
	case CellEmpty:
		cell.Status = CellMiss
		return ShotResult{Coord: c, Outcome: OutcomeMiss, ShipID: NoShip}, nil
	default:
		return ShotResult{Coord: c, Outcome: OutcomeAlreadyTargeted, ShipID: cell.ShipID}, nil
	}
}

// ShipSunk reports whether the ship with the given ID is sunk.
func (b *Board) ShipSunk(id int) bool {
	if id < 0 || id >= len(b.ships) {
		return false
	}
	return b.ships[id].Sunk()
}

// AllShipsSunk reports whether every placed ship is sunk.
func (b *Board) AllShipsSunk() bool {
	for _, s := range b.ships {
		if !s.Sunk() {
			return false
		}
	}
	return true
}

// ShipsAfloat returns the number of ships not yet sunk.
func (b *Board) ShipsAfloat() int {
	n := 0
	for _, s := range b.ships {
		if !s.Sunk() {
			n++
		}
	}
	return n
}
