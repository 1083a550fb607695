package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Phase is the controller's turn state.
type Phase int

const (
	PhaseAwaitingPlayerShot Phase = iota
	PhaseAwaitingAIShot
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPlayerShot:
		return "awaiting player shot"
	case PhaseAwaitingAIShot:
		return "awaiting AI shot"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Winner names who won a finished game.
type Winner int

const (
	WinnerNone Winner = iota
	WinnerPlayer
	WinnerAI
)

func (w Winner) String() string {
	switch w {
	case WinnerPlayer:
		return "player"
	case WinnerAI:
		return "ai"
	default:
		return "none"
	}
}

// State is the externally visible controller state. Winner is set only in
// PhaseGameOver.
type State struct {
	Phase  Phase
	Winner Winner
}

// GameOver reports whether the game has ended.
func (s State) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Stats counts shots that landed on an untargeted cell.
type Stats struct {
	PlayerShots int
	PlayerHits  int
	AIShots     int
	AIHits      int
}

// Options configures NewGame.
type Options struct {
	Rows  int
	Cols  int
	Fleet []ShipSpec

	// PlacementAttempts is the per-ship random draw budget.
	PlacementAttempts int

	// MaxRegenerations is how many times a board is rebuilt from scratch
	// after placement is exhausted before giving up.
	MaxRegenerations int

	AI     AIConfig
	Logger *log.Logger
}

// DefaultOptions returns a classic 10x10 game with the standard fleet.
func DefaultOptions() Options {
	return Options{
		Rows:              DefaultRows,
		Cols:              DefaultCols,
		Fleet:             StandardFleet(),
		PlacementAttempts: DefaultPlacementAttempts,
		MaxRegenerations:  10,
		AI:                DefaultAIConfig(),
	}
}

// Controller runs one human-vs-AI game. It exclusively owns both boards
// and the AI for the game's lifetime.
type Controller struct {
	playerBoard *Board // human fleet, fired on by the AI
	aiBoard     *Board // AI fleet, fired on by the human
	ai          *TargetingAI
	state       State
	stats       Stats
	logger      *log.Logger
}

// NewController assembles a game from prepared boards. A nil logger
// discards output.
func NewController(playerBoard, aiBoard *Board, ai *TargetingAI, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		playerBoard: playerBoard,
		aiBoard:     aiBoard,
		ai:          ai,
		state:       State{Phase: PhaseAwaitingPlayerShot},
		logger:      logger,
	}
}

// NewGame generates both fleets and the AI from a single random source.
// Zero dimensions, fleet or attempt budget fall back to the defaults.
func NewGame(opts Options, rng Rand) (*Controller, error) {
	if opts.Rows == 0 {
		opts.Rows = DefaultRows
	}
	if opts.Cols == 0 {
		opts.Cols = DefaultCols
	}
	if len(opts.Fleet) == 0 {
		opts.Fleet = StandardFleet()
	}
	if opts.PlacementAttempts <= 0 {
		opts.PlacementAttempts = DefaultPlacementAttempts
	}

	playerBoard, err := generateBoard(opts, rng)
	if err != nil {
		return nil, fmt.Errorf("battleship: player board: %w", err)
	}
	aiBoard, err := generateBoard(opts, rng)
	if err != nil {
		return nil, fmt.Errorf("battleship: AI board: %w", err)
	}

	ai := NewTargetingAI(opts.Fleet, rng, opts.AI, opts.Logger)
	return NewController(playerBoard, aiBoard, ai, opts.Logger), nil
}

// generateBoard retries whole-board generation on placement exhaustion.
func generateBoard(opts Options, rng Rand) (*Board, error) {
	var lastErr error
	for range max(opts.MaxRegenerations, 0) + 1 {
		b, err := GenerateBoard(opts.Rows, opts.Cols, opts.Fleet, rng, opts.PlacementAttempts)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrPlacementExhausted) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// State returns the current turn state.
func (c *Controller) State() State {
	return c.state
}

// Stats returns shot counters for both sides.
func (c *Controller) Stats() Stats {
	return c.stats
}

// PlayerBoard returns the human's board. Callers must treat it as read-only.
func (c *Controller) PlayerBoard() *Board {
	return c.playerBoard
}

// OpponentBoard returns the AI's board. Callers must treat it as read-only.
func (c *Controller) OpponentBoard() *Board {
	return c.aiBoard
}

// AI returns the targeting AI.
func (c *Controller) AI() *TargetingAI {
	return c.ai
}

// SubmitPlayerShot fires the human's shot at the AI board. A hit keeps the
// turn, a miss passes it to the AI, and a repeated cell changes nothing.
func (c *Controller) SubmitPlayerShot(target Coord) (ShotResult, error) {
	if c.state.Phase != PhaseAwaitingPlayerShot {
		return ShotResult{}, &InvalidTurnError{Op: "player shot", Phase: c.state.Phase}
	}

	res, err := c.aiBoard.ReceiveShot(target)
	if err != nil {
		return ShotResult{}, err
	}

	switch res.Outcome {
	case OutcomeHit:
		c.stats.PlayerShots++
		c.stats.PlayerHits++
	case OutcomeMiss:
		c.stats.PlayerShots++
		c.state.Phase = PhaseAwaitingAIShot
	case OutcomeAlreadyTargeted:
		return res, nil
	}
	c.logger.Debug("player shot", "at", target.Label(), "outcome", res.Outcome)

	c.CheckVictory()
	return res, nil
}

// RunAITurn lets the AI pick and fire one shot at the player's board.
func (c *Controller) RunAITurn() (ShotResult, error) {
	if c.state.Phase != PhaseAwaitingAIShot {
		return ShotResult{}, &InvalidTurnError{Op: "AI turn", Phase: c.state.Phase}
	}

	target, err := c.ai.ChooseTarget(c.playerBoard)
	if err != nil {
		return ShotResult{}, err
	}

	res, err := c.playerBoard.ReceiveShot(target)
	if err != nil {
		return ShotResult{}, err
	}
	c.ai.RecordResult(res)

	switch res.Outcome {
	case OutcomeHit:
		c.stats.AIShots++
		c.stats.AIHits++
	case OutcomeMiss:
		c.stats.AIShots++
		c.state.Phase = PhaseAwaitingPlayerShot
	case OutcomeAlreadyTargeted:
		return res, nil
	}
	c.logger.Debug("AI shot", "at", target.Label(), "outcome", res.Outcome, "mode", c.ai.Mode())

	c.CheckVictory()
	return res, nil
}

// CheckVictory ends the game once either fleet is fully sunk.
func (c *Controller) CheckVictory() State {
	if c.state.GameOver() {
		return c.state
	}

	switch {
	case c.aiBoard.AllShipsSunk():
		c.state = State{Phase: PhaseGameOver, Winner: WinnerPlayer}
	case c.playerBoard.AllShipsSunk():
		c.state = State{Phase: PhaseGameOver, Winner: WinnerAI}
	default:
		return c.state
	}

	c.logger.Info("game over",
		"winner", c.state.Winner,
		"player_shots", c.stats.PlayerShots,
		"ai_shots", c.stats.AIShots,
	)
	return c.state
}
