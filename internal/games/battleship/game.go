// Package battleship provides the terminal shell around the battleship
// rules: cursor and mouse targeting, turn pacing, banners and rendering.
package battleship

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/config"
	platformcore "github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship/core"
)

// Game is one human-vs-AI battleship match driven at a fixed tick rate.
type Game struct {
	cfg        config.BattleshipConfig
	difficulty config.DifficultyPreset
	logger     *log.Logger

	rng      *rand.Rand
	seed     int64
	tickRate int
	tick     uint64
	ctrl     *core.Controller
	setupErr error

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
	paused   bool

	cursor  core.Coord
	ui      UIState
	flash   sinkFlash
	aiDelay int // Ticks left before the AI fires

	overTick uint64 // Tick the game ended on, 0 while running
}

// New creates a game with the given configuration. A nil logger discards
// output.
func New(cfg config.BattleshipConfig, difficulty config.DifficultyPreset, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:        cfg,
		difficulty: difficulty,
		logger:     logger,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "battleship"
}

// Options converts a loaded config into controller options.
func Options(cfg config.BattleshipConfig, logger *log.Logger) core.Options {
	return core.Options{
		Rows:              cfg.Board.Rows,
		Cols:              cfg.Board.Cols,
		Fleet:             core.StandardFleet(),
		PlacementAttempts: cfg.Placement.MaxAttempts,
		MaxRegenerations:  cfg.Placement.MaxRegenerations,
		AI: core.AIConfig{
			AbandonProbability: cfg.AI.AbandonProbability,
			ParityHunt:         cfg.AI.ParityHunt,
			ResetOnSink:        cfg.AI.ResetOnSink,
		},
		Logger: logger,
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.seed = cfg.Seed
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = platformcore.DefaultTickRate
	}
	g.tick = 0
	g.overTick = 0
	g.paused = false
	g.ui = UIState{}
	g.flash = sinkFlash{}
	g.aiDelay = 0

	g.ctrl, g.setupErr = core.NewGame(Options(g.cfg, g.logger), g.rng)
	if g.setupErr != nil {
		g.logger.Error("board generation failed", "err", g.setupErr, "seed", cfg.Seed)
	}

	g.cursor = core.C(g.cfg.Board.Rows/2, g.cfg.Board.Cols/2)
	g.ui.Show("Your turn. Pick a target on the attacking board.", platformcore.ColorCyan, g.cfg.Pacing.BannerTicks)

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()
}

// Resize updates the screen dimensions without restarting the match.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if both boards and the HUD fit.
func (g *Game) checkScreenSize() {
	minW, minH := MinScreenSize(g.cfg)
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Err returns the error that prevented the match from starting, if any.
func (g *Game) Err() error {
	return g.setupErr
}

// Controller exposes the rules engine for read-only inspection.
func (g *Game) Controller() *core.Controller {
	return g.ctrl
}

// Cursor returns the targeted cell on the attacking board.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}

// Difficulty returns the preset the game was built with.
func (g *Game) Difficulty() config.DifficultyPreset {
	if g.difficulty == "" {
		return config.DifficultyNormal
	}
	return g.difficulty
}

// Banner returns the current message banner.
func (g *Game) Banner() UIState {
	return g.ui
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall || g.ctrl == nil {
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(platformcore.ActionPause) && !g.ctrl.State().GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.ui.Tick()
	g.flash.tick()

	// Restart and back are handled by the platform
	if g.ctrl.State().GameOver() {
		return platformcore.StepResult{State: g.State()}
	}

	switch g.ctrl.State().Phase {
	case core.PhaseAwaitingPlayerShot:
		g.handlePlayerInput(in)
	case core.PhaseAwaitingAIShot:
		if g.aiDelay > 0 {
			g.aiDelay--
		} else {
			g.runAI()
		}
	}

	if g.ctrl.State().GameOver() && g.overTick == 0 {
		g.overTick = g.tick
	}
	return platformcore.StepResult{State: g.State()}
}

// handlePlayerInput moves the cursor and fires. A click on the attacking
// board moves the cursor there and fires in the same tick.
func (g *Game) handlePlayerInput(in platformcore.InputFrame) {
	for _, click := range in.Clicks {
		if c, ok := g.AttackCellAt(click.X, click.Y); ok {
			g.cursor = c
			g.fire(c)
			return
		}
	}

	switch {
	case in.Has(platformcore.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(platformcore.ActionDown):
		g.moveCursor(1, 0)
	case in.Has(platformcore.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(platformcore.ActionRight):
		g.moveCursor(0, 1)
	}

	if in.Has(platformcore.ActionFire) {
		g.fire(g.cursor)
	}
}

func (g *Game) moveCursor(dRow, dCol int) {
	g.cursor.Row = platformcore.Clamp(g.cursor.Row+dRow, 0, g.cfg.Board.Rows-1)
	g.cursor.Col = platformcore.Clamp(g.cursor.Col+dCol, 0, g.cfg.Board.Cols-1)
}

// fire submits the player's shot and updates the banner.
func (g *Game) fire(c core.Coord) {
	res, err := g.ctrl.SubmitPlayerShot(c)
	if err != nil {
		g.logger.Warn("player shot rejected", "at", c, "err", err)
		return
	}

	banner := g.cfg.Pacing.BannerTicks
	switch {
	case res.Outcome == core.OutcomeAlreadyTargeted:
		g.ui.Show(fmt.Sprintf("You already fired at %s.", c.Label()), platformcore.ColorGray, banner)
	case res.Sunk:
		g.ui.Show(fmt.Sprintf("You sank the enemy %s!", res.Ship), platformcore.ColorBrightYellow, banner)
		g.flash = sinkFlash{side: sideEnemy, shipID: res.ShipID, ticks: g.cfg.Pacing.SinkFlashTicks}
	case res.Hit():
		g.ui.Show(fmt.Sprintf("Hit at %s! Fire again.", c.Label()), platformcore.ColorBrightRed, banner)
	default:
		g.ui.Show(fmt.Sprintf("Miss at %s. The enemy is aiming...", c.Label()), platformcore.ColorWhite, banner)
		g.aiDelay = g.cfg.Pacing.AIDelayTicks
	}

	if g.ctrl.State().Winner == core.WinnerPlayer {
		g.ui.Show("Victory! The enemy fleet is destroyed.", platformcore.ColorGreen, 0)
	}
}

// runAI lets the computer take one shot.
func (g *Game) runAI() {
	res, err := g.ctrl.RunAITurn()
	if err != nil {
		if errors.Is(err, core.ErrNoTargets) {
			g.logger.Error("AI has no targets left", "tick", g.tick)
		}
		return
	}

	banner := g.cfg.Pacing.BannerTicks
	switch {
	case res.Sunk:
		g.ui.Show(fmt.Sprintf("The enemy sank your %s!", res.Ship), platformcore.ColorOrange, banner)
		g.flash = sinkFlash{side: sidePlayer, shipID: res.ShipID, ticks: g.cfg.Pacing.SinkFlashTicks}
	case res.Hit():
		g.ui.Show(fmt.Sprintf("The enemy hit your %s at %s.", res.Ship, res.Coord.Label()), platformcore.ColorRed, banner)
	default:
		g.ui.Show(fmt.Sprintf("The enemy missed at %s. Your turn.", res.Coord.Label()), platformcore.ColorCyan, banner)
	}

	// A hit keeps the AI's turn; pace the next shot too
	if g.ctrl.State().Phase == core.PhaseAwaitingAIShot {
		g.aiDelay = g.cfg.Pacing.AIDelayTicks
	}
	if g.ctrl.State().Winner == core.WinnerAI {
		g.ui.Show("Defeat. Your fleet has been sunk.", platformcore.ColorBrightRed, 0)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	over := g.setupErr != nil || (g.ctrl != nil && g.ctrl.State().GameOver())
	return platformcore.GameState{
		GameOver: over,
		Paused:   g.paused || g.tooSmall,
	}
}

// MatchResult summarizes a finished match for the history store.
type MatchResult struct {
	Winner     core.Winner
	Stats      core.Stats
	Difficulty config.DifficultyPreset
	Seed       int64
	Duration   time.Duration
}

// Result returns the match summary once the game is over.
func (g *Game) Result() (MatchResult, bool) {
	if g.ctrl == nil || !g.ctrl.State().GameOver() {
		return MatchResult{}, false
	}
	ticks := g.overTick
	if ticks == 0 {
		ticks = g.tick
	}
	return MatchResult{
		Winner:     g.ctrl.State().Winner,
		Stats:      g.ctrl.Stats(),
		Difficulty: g.difficulty,
		Seed:       g.seed,
		Duration:   time.Duration(ticks) * time.Second / time.Duration(g.tickRate),
	}, true
}
