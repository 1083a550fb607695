package battleship

import platformcore "github.com/vovakirdan/tui-battleship/internal/core"

// UIState is the message banner shown under the boards.
type UIState struct {
	Message string
	Color   platformcore.Color
	Ticks   int // Remaining display ticks; 0 keeps the message until replaced
}

// Show replaces the banner.
func (u *UIState) Show(msg string, color platformcore.Color, ticks int) {
	u.Message = msg
	u.Color = color
	u.Ticks = ticks
}

// Tick counts the banner down and clears it when it expires.
func (u *UIState) Tick() {
	if u.Ticks <= 0 {
		return
	}
	u.Ticks--
	if u.Ticks == 0 {
		u.Message = ""
	}
}

// Active reports whether a message is showing.
func (u UIState) Active() bool {
	return u.Message != ""
}

type boardSide int

const (
	sideNone boardSide = iota
	sidePlayer
	sideEnemy
)

// sinkFlash blinks the cells of a freshly sunk ship.
type sinkFlash struct {
	side   boardSide
	shipID int
	ticks  int
}

func (f *sinkFlash) tick() {
	if f.ticks > 0 {
		f.ticks--
		if f.ticks == 0 {
			f.side = sideNone
		}
	}
}

// lit reports whether the given ship should draw in its flash color this
// tick. The flash toggles every four ticks.
func (f sinkFlash) lit(side boardSide, shipID int) bool {
	return f.ticks > 0 && f.side == side && f.shipID == shipID && (f.ticks/4)%2 == 0
}
