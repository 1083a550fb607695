package core

import "fmt"

// Coord is a grid position. Row 0 is the top row, Col 0 the leftmost column.
type Coord struct {
	Row int
	Col int
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Delta is a row/column offset between two coordinates.
type Delta struct {
	DRow int
	DCol int
}

// Axis-aligned neighbour offsets, in the order they are enumerated.
var neighborDeltas = [4]Delta{
	{DRow: 0, DCol: 1},
	{DRow: 0, DCol: -1},
	{DRow: 1, DCol: 0},
	{DRow: -1, DCol: 0},
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Delta) Coord {
	return Coord{Row: c.Row + d.DRow, Col: c.Col + d.DCol}
}

// Sub returns the offset that leads from o to c.
func (c Coord) Sub(o Coord) Delta {
	return Delta{DRow: c.Row - o.Row, DCol: c.Col - o.Col}
}

// Neighbors returns the four axis-aligned neighbours of c.
// Results may lie outside the board.
func (c Coord) Neighbors() [4]Coord {
	var out [4]Coord
	for i, d := range neighborDeltas {
		out[i] = c.Add(d)
	}
	return out
}

// Parity reports whether (row+col) is even.
func (c Coord) Parity() bool {
	return (c.Row+c.Col)%2 == 0
}

// Label returns the player-facing name of the cell, e.g. "A1" for (0,0).
func (c Coord) Label() string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.Row), c.Col+1)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (d Delta) String() string {
	return fmt.Sprintf("(%d,%d)", d.DRow, d.DCol)
}
