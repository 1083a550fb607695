package battleship

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-battleship/internal/config"
	platformcore "github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship/core"
)

const (
	cellWidth  = 3 // Each grid cell is drawn as " X "
	labelWidth = 3 // Row label column
	boardGap   = 6 // Space between the two boards
	gridTop    = 5 // Screen row of the first grid row
)

// Glyphs
const (
	glyphWater = '~'
	glyphShip  = '■'
	glyphHit   = 'X'
	glyphSunk  = '#'
	glyphMiss  = 'o'
)

// MinScreenSize returns the smallest screen that fits both boards and the
// HUD for the given config.
func MinScreenSize(cfg config.BattleshipConfig) (w, h int) {
	bw := labelWidth + cfg.Board.Cols*cellWidth
	return 2*bw + boardGap, gridTop + cfg.Board.Rows + 5
}

// layout holds the left edge of each board.
type layout struct {
	defX int
	atkX int
}

func (g *Game) layout() layout {
	minW, _ := MinScreenSize(g.cfg)
	x := (g.screenW - minW) / 2
	bw := labelWidth + g.cfg.Board.Cols*cellWidth
	return layout{defX: x, atkX: x + bw + boardGap}
}

// attackRect is the clickable area of the attacking grid.
func (g *Game) attackRect() platformcore.Rect {
	l := g.layout()
	return platformcore.NewRect(l.atkX+labelWidth, gridTop, g.cfg.Board.Cols*cellWidth, g.cfg.Board.Rows)
}

// AttackCellAt maps a screen position to a cell of the attacking board.
func (g *Game) AttackCellAt(x, y int) (core.Coord, bool) {
	if g.tooSmall {
		return core.Coord{}, false
	}
	col, row, ok := g.attackRect().GridCell(x, y, cellWidth)
	if !ok {
		return core.Coord{}, false
	}
	return core.C(row, col), true
}

// AttackCellOrigin returns the screen position of the leftmost column of a
// cell on the attacking board.
func (g *Game) AttackCellOrigin(c core.Coord) (x, y int) {
	return g.attackRect().GridOrigin(c.Col, c.Row, cellWidth)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.ctrl == nil {
		dst.DrawTextCenteredColored(g.screenH/2-1, "Could not set up the fleets", platformcore.ColorBrightRed)
		if g.setupErr != nil {
			dst.DrawTextCentered(g.screenH/2, g.setupErr.Error())
		}
		dst.DrawTextCentered(g.screenH/2+1, "Press R to retry or Q to quit")
		return
	}

	l := g.layout()
	g.renderHUD(dst)

	over := g.ctrl.State().GameOver()
	dst.DrawTextColored(l.defX+labelWidth, gridTop-2, "Defensive Board", platformcore.ColorBrightWhite)
	dst.DrawTextColored(l.atkX+labelWidth, gridTop-2, "Attacking Board", platformcore.ColorBrightWhite)

	g.renderGrid(dst, l.defX, g.ctrl.PlayerBoard(), sidePlayer, true)
	g.renderGrid(dst, l.atkX, g.ctrl.OpponentBoard(), sideEnemy, over)

	if g.ctrl.State().Phase == core.PhaseAwaitingPlayerShot && !g.paused {
		g.renderCursor(dst)
	}

	footY := gridTop + g.cfg.Board.Rows + 1
	player, enemy := g.ctrl.PlayerBoard(), g.ctrl.OpponentBoard()
	dst.DrawText(l.defX+labelWidth, footY, fmt.Sprintf("Ships afloat: %d/%d", player.ShipsAfloat(), len(player.Ships())))
	dst.DrawText(l.atkX+labelWidth, footY, fmt.Sprintf("Enemy ships left: %d/%d", enemy.ShipsAfloat(), len(enemy.Ships())))

	if g.ui.Active() {
		dst.DrawTextCenteredColored(footY+2, g.ui.Message, g.ui.Color)
	}

	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	minW, minH := MinScreenSize(g.cfg)
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH))
}

// renderHUD draws the title and turn line.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	dst.DrawTextCenteredColored(0, "B A T T L E S H I P", platformcore.ColorBrightCyan)

	var turn string
	switch st := g.ctrl.State(); {
	case st.Winner == core.WinnerPlayer:
		turn = "You won"
	case st.Winner == core.WinnerAI:
		turn = "You lost"
	case st.Phase == core.PhaseAwaitingAIShot:
		turn = "Enemy turn"
	default:
		turn = "Your turn"
	}

	stats := g.ctrl.Stats()
	line := fmt.Sprintf("%s  |  Shots %d  Hits %d  |  Enemy shots %d  |  %s",
		turn, stats.PlayerShots, stats.PlayerHits, stats.AIShots, g.Difficulty())
	dst.DrawTextCentered(1, line)
}

// renderGrid draws one board with its row and column labels. Ships are only
// drawn when reveal is set.
func (g *Game) renderGrid(dst *platformcore.Screen, boardX int, b *core.Board, side boardSide, reveal bool) {
	for col := range b.Cols() {
		dst.DrawTextColored(boardX+labelWidth+col*cellWidth+1, gridTop-1, strconv.Itoa(col+1), platformcore.ColorGray)
	}

	for row := range b.Rows() {
		y := gridTop + row
		dst.SetColored(boardX+1, y, 'A'+rune(row), platformcore.ColorGray)
		for col := range b.Cols() {
			r, color := g.cellGlyph(b, core.C(row, col), side, reveal)
			dst.SetColored(boardX+labelWidth+col*cellWidth+1, y, r, color)
		}
	}
}

// cellGlyph picks the rune and color for one cell.
func (g *Game) cellGlyph(b *core.Board, c core.Coord, side boardSide, reveal bool) (rune, platformcore.Color) {
	cell := b.CellAt(c)
	switch cell.Status {
	case core.CellOccupied:
		if reveal {
			return glyphShip, platformcore.ColorWhite
		}
		return glyphWater, platformcore.ColorBlue
	case core.CellHit:
		switch {
		case g.flash.lit(side, cell.ShipID):
			return glyphSunk, platformcore.ColorBrightYellow
		case b.ShipSunk(cell.ShipID):
			return glyphSunk, platformcore.ColorOrange
		default:
			return glyphHit, platformcore.ColorBrightRed
		}
	case core.CellMiss:
		return glyphMiss, platformcore.ColorGray
	default:
		return glyphWater, platformcore.ColorBlue
	}
}

// renderCursor brackets the targeted cell.
func (g *Game) renderCursor(dst *platformcore.Screen) {
	x, y := g.AttackCellOrigin(g.cursor)
	dst.SetColored(x, y, '[', platformcore.ColorBrightYellow)
	dst.SetColored(x+2, y, ']', platformcore.ColorBrightYellow)
}

// renderOverlays draws pause and game over boxes.
func (g *Game) renderOverlays(dst *platformcore.Screen) {
	if g.paused {
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
		return
	}

	st := g.ctrl.State()
	if !st.GameOver() {
		return
	}

	stats := g.ctrl.Stats()
	accuracy := 0
	if stats.PlayerShots > 0 {
		accuracy = stats.PlayerHits * 100 / stats.PlayerShots
	}
	title := "YOU WIN!"
	if st.Winner == core.WinnerAI {
		title = "YOU LOSE"
	}
	g.drawOverlay(dst, title,
		fmt.Sprintf("Shots: %d  Accuracy: %d%%", stats.PlayerShots, accuracy),
		"R: Rematch | B: Menu | Q: Quit")
}

// drawOverlay draws a centered text box over the boards.
func (g *Game) drawOverlay(dst *platformcore.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := (g.screenW - boxW) / 2
	boxY := gridTop + (g.cfg.Board.Rows-boxH)/2

	area := platformcore.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(area)
	dst.DrawBox(area, platformcore.ColorBrightCyan)
	for i, line := range lines {
		x := boxX + (boxW-len([]rune(line)))/2
		dst.DrawTextColored(x, boxY+1+i, line, platformcore.ColorBrightWhite)
	}
}
