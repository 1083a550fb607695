package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship/core"
)

// newDuel builds a one-destroyer game: the player's destroyer at (0,0)-(0,1)
// and the AI's at (5,5)-(5,6).
func newDuel(rng core.Rand) *core.Controller {
	player := core.NewBoard(10, 10)
	player.Place(destroyer(), core.C(0, 0), core.Horizontal)
	opponent := core.NewBoard(10, 10)
	opponent.Place(destroyer(), core.C(5, 5), core.Horizontal)

	fleet := []core.ShipSpec{destroyer()}
	ai := core.NewTargetingAI(fleet, rng, core.DefaultAIConfig(), nil)
	return core.NewController(player, opponent, ai, nil)
}

func TestControllerStartsWithPlayer(t *testing.T) {
	c := newDuel(&scriptedRand{})
	if st := c.State(); st.Phase != core.PhaseAwaitingPlayerShot || st.Winner != core.WinnerNone {
		t.Errorf("initial state = %+v", st)
	}
}

func TestPlayerHitKeepsTurn(t *testing.T) {
	c := newDuel(&scriptedRand{})

	res, err := c.SubmitPlayerShot(core.C(5, 5))
	if err != nil {
		t.Fatalf("SubmitPlayerShot failed: %v", err)
	}
	if !res.Hit() {
		t.Errorf("outcome = %v, want hit", res.Outcome)
	}
	if c.State().Phase != core.PhaseAwaitingPlayerShot {
		t.Errorf("phase after hit = %v, want player", c.State().Phase)
	}
}

func TestPlayerMissPassesTurn(t *testing.T) {
	c := newDuel(&scriptedRand{})

	if _, err := c.SubmitPlayerShot(core.C(9, 9)); err != nil {
		t.Fatalf("SubmitPlayerShot failed: %v", err)
	}
	if c.State().Phase != core.PhaseAwaitingAIShot {
		t.Errorf("phase after miss = %v, want AI", c.State().Phase)
	}
}

func TestRepeatedPlayerShotChangesNothing(t *testing.T) {
	c := newDuel(&scriptedRand{})
	c.SubmitPlayerShot(core.C(5, 5))
	before := c.Stats()

	res, err := c.SubmitPlayerShot(core.C(5, 5))
	if err != nil {
		t.Fatalf("SubmitPlayerShot failed: %v", err)
	}
	if res.Outcome != core.OutcomeAlreadyTargeted {
		t.Errorf("outcome = %v, want already targeted", res.Outcome)
	}
	if c.State().Phase != core.PhaseAwaitingPlayerShot {
		t.Errorf("phase = %v, want player", c.State().Phase)
	}
	if c.Stats() != before {
		t.Errorf("stats changed: %+v -> %+v", before, c.Stats())
	}
}

func TestTurnOrderEnforced(t *testing.T) {
	c := newDuel(&scriptedRand{})

	_, err := c.RunAITurn()
	if !errors.Is(err, core.ErrInvalidTurn) {
		t.Fatalf("RunAITurn on player turn error = %v, want ErrInvalidTurn", err)
	}
	var ite *core.InvalidTurnError
	if !errors.As(err, &ite) || ite.Phase != core.PhaseAwaitingPlayerShot {
		t.Errorf("expected *InvalidTurnError in player phase, got %v", err)
	}

	c.SubmitPlayerShot(core.C(9, 9))
	if _, err := c.SubmitPlayerShot(core.C(9, 8)); !errors.Is(err, core.ErrInvalidTurn) {
		t.Errorf("player shot on AI turn error = %v, want ErrInvalidTurn", err)
	}
}

func TestPlayerWins(t *testing.T) {
	c := newDuel(&scriptedRand{})
	c.SubmitPlayerShot(core.C(5, 5))
	res, _ := c.SubmitPlayerShot(core.C(5, 6))

	if !res.Sunk {
		t.Error("second hit should sink the destroyer")
	}
	st := c.State()
	if !st.GameOver() || st.Winner != core.WinnerPlayer {
		t.Errorf("state = %+v, want player win", st)
	}
	if _, err := c.SubmitPlayerShot(core.C(0, 0)); !errors.Is(err, core.ErrInvalidTurn) {
		t.Errorf("shot after game over error = %v, want ErrInvalidTurn", err)
	}

	stats := c.Stats()
	if stats.PlayerShots != 2 || stats.PlayerHits != 2 || stats.AIShots != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAIWinsWithExtraTurns(t *testing.T) {
	// Intn always returns 0: hunt takes (0,0), target takes (0,1).
	c := newDuel(&scriptedRand{})
	c.SubmitPlayerShot(core.C(9, 9))

	first, err := c.RunAITurn()
	if err != nil {
		t.Fatalf("RunAITurn failed: %v", err)
	}
	if first.Coord != core.C(0, 0) || !first.Hit() {
		t.Fatalf("first AI shot = %+v, want hit at (0,0)", first)
	}
	if c.State().Phase != core.PhaseAwaitingAIShot {
		t.Fatalf("phase after AI hit = %v, want AI", c.State().Phase)
	}

	second, err := c.RunAITurn()
	if err != nil {
		t.Fatalf("RunAITurn failed: %v", err)
	}
	if second.Coord != core.C(0, 1) || !second.Sunk {
		t.Errorf("second AI shot = %+v, want sinking hit at (0,1)", second)
	}

	st := c.State()
	if !st.GameOver() || st.Winner != core.WinnerAI {
		t.Errorf("state = %+v, want AI win", st)
	}
	if stats := c.Stats(); stats.AIShots != 2 || stats.AIHits != 2 || stats.PlayerShots != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAIMissReturnsTurn(t *testing.T) {
	// (0,0) is the player's destroyer, so steer the hunt to (0,2).
	c := newDuel(&scriptedRand{ints: []int{1}})
	c.SubmitPlayerShot(core.C(9, 9))

	res, err := c.RunAITurn()
	if err != nil {
		t.Fatalf("RunAITurn failed: %v", err)
	}
	if res.Coord != core.C(0, 2) || res.Outcome != core.OutcomeMiss {
		t.Errorf("AI shot = %+v, want miss at (0,2)", res)
	}
	if c.State().Phase != core.PhaseAwaitingPlayerShot {
		t.Errorf("phase = %v, want player", c.State().Phase)
	}
}

func TestNewGameIsDeterministic(t *testing.T) {
	opts := core.DefaultOptions()

	g1, err := core.NewGame(opts, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	g2, err := core.NewGame(opts, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	for _, pair := range [][2]*core.Board{
		{g1.PlayerBoard(), g2.PlayerBoard()},
		{g1.OpponentBoard(), g2.OpponentBoard()},
	} {
		s1, s2 := pair[0].Ships(), pair[1].Ships()
		for i := range s1 {
			if s1[i].Origin != s2[i].Origin || s1[i].Orientation != s2[i].Orientation {
				t.Errorf("ship %d differs: %+v vs %+v", i, s1[i], s2[i])
			}
		}
	}
}

func TestNewGameSurfacesPlacementExhaustion(t *testing.T) {
	opts := core.DefaultOptions()
	opts.Rows, opts.Cols = 4, 4
	opts.PlacementAttempts = 10
	opts.MaxRegenerations = 2

	_, err := core.NewGame(opts, rand.New(rand.NewSource(1)))
	if !errors.Is(err, core.ErrPlacementExhausted) {
		t.Errorf("NewGame on 4x4 board error = %v, want ErrPlacementExhausted", err)
	}
}

func TestNewGameNegativeRegenerations(t *testing.T) {
	opts := core.DefaultOptions()
	opts.MaxRegenerations = -1

	c, err := core.NewGame(opts, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if c.PlayerBoard() == nil || c.OpponentBoard() == nil {
		t.Fatal("NewGame returned a controller without boards")
	}
	if _, err := c.SubmitPlayerShot(core.C(0, 0)); err != nil {
		t.Errorf("SubmitPlayerShot failed: %v", err)
	}

	// One attempt is still made, and its failure is reported.
	opts.Rows, opts.Cols = 4, 4
	c, err = core.NewGame(opts, rand.New(rand.NewSource(3)))
	if !errors.Is(err, core.ErrPlacementExhausted) || c != nil {
		t.Errorf("NewGame on 4x4 board = %v, %v; want nil, ErrPlacementExhausted", c, err)
	}
}

func TestNewGameZeroOptions(t *testing.T) {
	c, err := core.NewGame(core.Options{}, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewGame(Options{}) failed: %v", err)
	}
	for _, b := range []*core.Board{c.PlayerBoard(), c.OpponentBoard()} {
		if b.Rows() != core.DefaultRows || b.Cols() != core.DefaultCols {
			t.Errorf("board = %dx%d, want %dx%d", b.Rows(), b.Cols(), core.DefaultRows, core.DefaultCols)
		}
		if len(b.Ships()) != len(core.StandardFleet()) {
			t.Errorf("ships = %d, want the standard fleet", len(b.Ships()))
		}
	}
}

func TestNewGameRejectsNegativeSize(t *testing.T) {
	opts := core.DefaultOptions()
	opts.Rows = -3

	c, err := core.NewGame(opts, rand.New(rand.NewSource(1)))
	if !errors.Is(err, core.ErrInvalidBoard) || c != nil {
		t.Errorf("NewGame with -3 rows = %v, %v; want nil, ErrInvalidBoard", c, err)
	}
}

func TestVictoryMatchesBoardState(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		c, err := core.NewGame(core.DefaultOptions(), rng)
		if err != nil {
			t.Fatalf("seed %d: NewGame failed: %v", seed, err)
		}

		// The player sweeps row-major; the AI plays its heuristic.
		next := 0
		for turns := 0; !c.State().GameOver(); turns++ {
			if turns > 400 {
				t.Fatalf("seed %d: game did not finish", seed)
			}
			switch c.State().Phase {
			case core.PhaseAwaitingPlayerShot:
				target := core.C(next/10, next%10)
				next++
				if _, err := c.SubmitPlayerShot(target); err != nil {
					t.Fatalf("seed %d: SubmitPlayerShot failed: %v", seed, err)
				}
			case core.PhaseAwaitingAIShot:
				if _, err := c.RunAITurn(); err != nil {
					t.Fatalf("seed %d: RunAITurn failed: %v", seed, err)
				}
			}
		}

		st := c.State()
		switch st.Winner {
		case core.WinnerPlayer:
			if !c.OpponentBoard().AllShipsSunk() || c.PlayerBoard().AllShipsSunk() {
				t.Errorf("seed %d: player win with inconsistent boards", seed)
			}
		case core.WinnerAI:
			if !c.PlayerBoard().AllShipsSunk() || c.OpponentBoard().AllShipsSunk() {
				t.Errorf("seed %d: AI win with inconsistent boards", seed)
			}
		default:
			t.Errorf("seed %d: game over without a winner", seed)
		}
	}
}
