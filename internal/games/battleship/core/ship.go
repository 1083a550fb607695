package core

// ShipKind identifies one of the five standard ships.
type ShipKind int

const (
	Carrier ShipKind = iota
	Battleship
	Cruiser
	Submarine
	Destroyer
)

func (k ShipKind) String() string {
	switch k {
	case Carrier:
		return "Carrier"
	case Battleship:
		return "Battleship"
	case Cruiser:
		return "Cruiser"
	case Submarine:
		return "Submarine"
	case Destroyer:
		return "Destroyer"
	default:
		return "Unknown"
	}
}

// ShipSpec is an immutable ship definition.
type ShipSpec struct {
	Kind   ShipKind
	Length int
}

// standardFleet is the classic five-ship catalog.
var standardFleet = []ShipSpec{
	{Kind: Carrier, Length: 5},
	{Kind: Battleship, Length: 4},
	{Kind: Cruiser, Length: 3},
	{Kind: Submarine, Length: 3},
	{Kind: Destroyer, Length: 2},
}

// StandardFleet returns a copy of the standard ship catalog.
func StandardFleet() []ShipSpec {
	fleet := make([]ShipSpec, len(standardFleet))
	copy(fleet, standardFleet)
	return fleet
}

// FleetCells returns the total number of cells a fleet occupies.
func FleetCells(fleet []ShipSpec) int {
	total := 0
	for _, s := range fleet {
		total += s.Length
	}
	return total
}

// Orientation is the axis a ship extends along from its origin.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// step returns the offset between consecutive footprint cells.
func (o Orientation) step() Delta {
	if o == Vertical {
		return Delta{DRow: 1}
	}
	return Delta{DCol: 1}
}

// Footprint returns the cells a ship of the given length covers.
func Footprint(origin Coord, o Orientation, length int) []Coord {
	cells := make([]Coord, length)
	c := origin
	for i := range length {
		cells[i] = c
		c = c.Add(o.step())
	}
	return cells
}

// PlacedShip is a ship positioned on a board.
type PlacedShip struct {
	Spec        ShipSpec
	Origin      Coord
	Orientation Orientation
	HitMask     []bool
}

// Footprint returns the cells this ship covers, origin first.
func (s PlacedShip) Footprint() []Coord {
	return Footprint(s.Origin, s.Orientation, s.Spec.Length)
}

// Hits returns how many of the ship's cells have been hit.
func (s PlacedShip) Hits() int {
	n := 0
	for _, h := range s.HitMask {
		if h {
			n++
		}
	}
	return n
}

// Sunk reports whether every cell of the ship has been hit.
func (s PlacedShip) Sunk() bool {
	for _, h := range s.HitMask {
		if !h {
			return false
		}
	}
	return true
}

// segment returns the index of c along the ship, or -1.
func (s PlacedShip) segment(c Coord) int {
	for i, fc := range s.Footprint() {
		if fc == c {
			return i
		}
	}
	return -1
}
