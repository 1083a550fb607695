package battleship

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlayerTurn  GameStateType = "player_turn"
	StateAITurn      GameStateType = "ai_turn"
	StateWon         GameStateType = "won"
	StateLost        GameStateType = "lost"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
	StateSetupFailed GameStateType = "setup_failed"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	State        GameStateType
	Cursor       core.Coord
	Stats        core.Stats
	AIMode       core.Mode
	Banner       string
	PlayerFleet  string // Ship placements, e.g. "Carrier@(0,0)h"
	EnemyFleet   string
	PlayerAfloat int
	EnemyAfloat  int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.ctrl == nil {
		return Snapshot{Tick: g.tick, State: StateSetupFailed}
	}

	st := g.ctrl.State()
	state := StatePlayerTurn
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case st.Winner == core.WinnerPlayer:
		state = StateWon
	case st.Winner == core.WinnerAI:
		state = StateLost
	case g.paused:
		state = StatePaused
	case st.Phase == core.PhaseAwaitingAIShot:
		state = StateAITurn
	}

	return Snapshot{
		Tick:         g.tick,
		State:        state,
		Cursor:       g.cursor,
		Stats:        g.ctrl.Stats(),
		AIMode:       g.ctrl.AI().Mode(),
		Banner:       g.ui.Message,
		PlayerFleet:  fleetString(g.ctrl.PlayerBoard()),
		EnemyFleet:   fleetString(g.ctrl.OpponentBoard()),
		PlayerAfloat: g.ctrl.PlayerBoard().ShipsAfloat(),
		EnemyAfloat:  g.ctrl.OpponentBoard().ShipsAfloat(),
	}
}

func fleetString(b *core.Board) string {
	parts := make([]string, 0, len(b.Ships()))
	for _, s := range b.Ships() {
		parts = append(parts, fmt.Sprintf("%s@%s%c", s.Spec.Kind, s.Origin, s.Orientation.String()[0]))
	}
	return strings.Join(parts, " ")
}
