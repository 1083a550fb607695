package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	bscore "github.com/vovakirdan/tui-battleship/internal/games/battleship/core"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *battleship.Game) {
	t.Helper()
	cfg := config.DefaultBattleshipConfig()
	cfg.Pacing.AIDelayTicks = 0

	game := battleship.New(cfg, config.DifficultyHard, nil)
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 30, Seed: 42}, nil)
	m.Init()
	if game.Err() != nil {
		t.Fatalf("game setup failed: %v", game.Err())
	}
	return m, game
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func leftClick(g *battleship.Game, c bscore.Coord) tea.MouseMsg {
	x, y := g.AttackCellOrigin(c)
	return tea.MouseMsg{X: x + 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func nextUnknown(g *battleship.Game) bscore.Coord {
	b := g.Controller().OpponentBoard()
	for r := range b.Rows() {
		for c := range b.Cols() {
			if b.Unknown(bscore.C(r, c)) {
				return bscore.C(r, c)
			}
		}
	}
	return bscore.Coord{}
}

// playOut clicks unknown cells until the match ends.
func playOut(t *testing.T, m Model, g *battleship.Game) Model {
	t.Helper()
	for tick := 0; !g.State().GameOver; tick++ {
		if tick > 2000 {
			t.Fatal("match did not finish")
		}
		if g.Controller().State().Phase == bscore.PhaseAwaitingPlayerShot {
			m = update(m, leftClick(g, nextUnknown(g)))
		}
		m = update(m, TickMsg{})
	}
	return m
}

func TestModelMouseClickFires(t *testing.T) {
	m, g := newTestModel(t, nil)
	target := bscore.C(4, 6)

	m = update(m, leftClick(g, target))
	m = update(m, TickMsg{})

	if g.Controller().OpponentBoard().Unknown(target) {
		t.Errorf("cell %v not fired upon", target)
	}
	if g.Controller().Stats().PlayerShots != 1 {
		t.Errorf("player shots = %d, want 1", g.Controller().Stats().PlayerShots)
	}
}

func TestModelIgnoresOtherMouseEvents(t *testing.T) {
	m, g := newTestModel(t, nil)
	x, y := g.AttackCellOrigin(bscore.C(0, 0))

	m = update(m, tea.MouseMsg{X: x + 1, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = update(m, tea.MouseMsg{X: x + 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	update(m, TickMsg{})

	if g.Controller().Stats().PlayerShots != 0 {
		t.Error("non left-press mouse event fired a shot")
	}
}

func TestModelKeyboardFire(t *testing.T) {
	m, g := newTestModel(t, nil)
	start := g.Cursor()

	m = update(m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(m, TickMsg{})
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	update(m, TickMsg{})

	want := bscore.C(start.Row, start.Col+1)
	if g.Controller().OpponentBoard().Unknown(want) {
		t.Errorf("enter did not fire at %v", want)
	}
}

func TestModelResizeKeepsMatch(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = update(m, leftClick(g, bscore.C(0, 0)))
	m = update(m, TickMsg{})
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.Controller().Stats().PlayerShots != 1 {
		t.Error("resize restarted the match")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30-helpHeight {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelRecordsMatchOnce(t *testing.T) {
	store := openStore(t)
	m, g := newTestModel(t, store)

	m = playOut(t, m, g)
	for range 5 {
		m = update(m, TickMsg{})
	}

	matches, err := store.RecentMatches(0)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("saved %d matches, want 1", len(matches))
	}

	res, _ := g.Result()
	got := matches[0]
	if got.Difficulty != "hard" || got.Seed != 42 || got.PlayerShots != res.Stats.PlayerShots {
		t.Errorf("saved match = %+v, result = %+v", got, res)
	}
	wantWinner := storage.WinnerAI
	if res.Winner == bscore.WinnerPlayer {
		wantWinner = storage.WinnerPlayer
	}
	if got.Winner != wantWinner {
		t.Errorf("winner = %q, want %q", got.Winner, wantWinner)
	}
}

func TestModelRematch(t *testing.T) {
	store := openStore(t)
	m, g := newTestModel(t, store)

	m = playOut(t, m, g)
	m = update(m, runeKey('r'))
	m = update(m, TickMsg{})

	if g.State().GameOver {
		t.Fatal("r after game over should start a new match")
	}
	if g.Controller().Stats().PlayerShots != 0 {
		t.Error("rematch kept the old stats")
	}

	playOut(t, m, g)
	matches, _ := store.RecentMatches(0)
	if len(matches) != 2 {
		t.Errorf("saved %d matches after a rematch, want 2", len(matches))
	}
}

func TestModelBackOnlyAfterGameOver(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = update(m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("b during a match should not leave it")
	}
	m.inputFrame.Clear()

	m = playOut(t, m, g)
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc after game over should go back to the menu")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty once quitting")
	}
}

func TestModelViewShowsBoardsAndHelp(t *testing.T) {
	m, _ := newTestModel(t, nil)
	out := m.View()

	for _, want := range []string{"Attacking Board", "Defensive Board", "fire"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMatchRecord(t *testing.T) {
	res := battleship.MatchResult{
		Winner:     bscore.WinnerPlayer,
		Stats:      bscore.Stats{PlayerShots: 50, PlayerHits: 17, AIShots: 49, AIHits: 12},
		Difficulty: config.DifficultyEasy,
		Seed:       7,
	}
	got := matchRecord(res)
	if got.Winner != storage.WinnerPlayer || got.PlayerHits != 17 || got.AIHits != 12 || got.Difficulty != "easy" || got.Seed != 7 {
		t.Errorf("matchRecord() = %+v", got)
	}

	res.Winner = bscore.WinnerAI
	if matchRecord(res).Winner != storage.WinnerAI {
		t.Error("AI win not recorded as ai")
	}
}
