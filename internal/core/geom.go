// Package core provides the platform primitives shared by the battleship
// shell and the terminal front ends: a colored screen buffer, input frames
// and screen geometry. It does not import Bubble Tea, so games stay
// testable without a terminal.
package core

// Rect is an axis-aligned screen area. Boards use it to map mouse
// positions to grid cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle at (x, y) of size w x h.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past r.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row below r.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether (x, y) lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// GridCell maps (x, y) to the column and row of a grid drawn in r with
// cells cellW characters wide and one line tall.
func (r Rect) GridCell(x, y, cellW int) (col, row int, ok bool) {
	if cellW <= 0 || !r.Contains(x, y) {
		return 0, 0, false
	}
	return (x - r.X) / cellW, y - r.Y, true
}

// GridOrigin is the inverse of GridCell: the screen position of the
// leftmost character of a cell.
func (r Rect) GridOrigin(col, row, cellW int) (x, y int) {
	return r.X + col*cellW, r.Y + row
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}
