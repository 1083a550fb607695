package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(12, 5, 30, 10)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"first cell", 12, 5, true},
		{"last cell", 41, 14, true},
		{"right edge exclusive", 42, 5, false},
		{"bottom edge exclusive", 12, 15, false},
		{"row label column", 11, 7, false},
		{"above the grid", 20, 4, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestRectGridCell(t *testing.T) {
	r := NewRect(12, 5, 30, 10) // 10x10 grid, 3 columns per cell

	tests := []struct {
		x, y     int
		col, row int
		ok       bool
	}{
		{12, 5, 0, 0, true},
		{14, 5, 0, 0, true}, // Right padding of A1
		{15, 5, 1, 0, true},
		{41, 14, 9, 9, true},
		{27, 8, 5, 3, true},
		{42, 8, 0, 0, false},
		{11, 8, 0, 0, false},
	}

	for _, tc := range tests {
		col, row, ok := r.GridCell(tc.x, tc.y, 3)
		if col != tc.col || row != tc.row || ok != tc.ok {
			t.Errorf("GridCell(%d, %d) = %d, %d, %v; want %d, %d, %v",
				tc.x, tc.y, col, row, ok, tc.col, tc.row, tc.ok)
		}
		if !ok {
			continue
		}
		x, y := r.GridOrigin(col, row, 3)
		if back, _, _ := r.GridCell(x, y, 3); back != col || y != tc.y {
			t.Errorf("GridOrigin(%d, %d) = %d, %d does not map back", col, row, x, y)
		}
	}

	if _, _, ok := r.GridCell(12, 5, 0); ok {
		t.Error("zero cell width should never hit")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 9, 5},
		{-1, 0, 9, 0}, // Cursor moved off the top
		{10, 0, 9, 9}, // and off the right
		{0, 0, 9, 0},
		{9, 0, 9, 9},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tc.val, tc.lo, tc.hi, got, tc.want)
		}
	}
}
