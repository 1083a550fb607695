package core

// CellStatus is the state of one grid cell.
type CellStatus int

const (
	CellEmpty CellStatus = iota
	CellOccupied
	CellHit
	CellMiss
)

func (s CellStatus) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// NoShip is the ShipID of cells that do not belong to a ship.
const NoShip = -1

// CellState is a tagged cell value. ShipID indexes Board.Ships and is
// NoShip unless Status is CellOccupied or CellHit.
type CellState struct {
	Status CellStatus
	ShipID int
}

// Unknown reports whether the cell has not been fired upon yet.
func (c CellState) Unknown() bool {
	return c.Status == CellEmpty || c.Status == CellOccupied
}

// HasShip reports whether a ship occupies the cell.
func (c CellState) HasShip() bool {
	return c.Status == CellOccupied || c.Status == CellHit
}

// Outcome is the kind of result a shot produced.
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
	OutcomeAlreadyTargeted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeHit:
		return "hit"
	case OutcomeAlreadyTargeted:
		return "already targeted"
	default:
		return "unknown"
	}
}

// ShotResult describes what a shot at Coord did. Ship, ShipID and Sunk are
// only meaningful when Outcome is OutcomeHit.
type ShotResult struct {
	Coord   Coord
	Outcome Outcome
	Ship    ShipKind
	ShipID  int
	Sunk    bool // this hit completed the ship
}

// Hit reports whether the shot struck a ship.
func (r ShotResult) Hit() bool {
	return r.Outcome == OutcomeHit
}
