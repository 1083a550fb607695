package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a match",
	Long: `Start a match against the computer right away.

Controls:
  Arrows/hjkl/wasd - Aim on the attacking board
  Space/Enter      - Fire at the cursor
  Left click       - Fire at the clicked cell
  P                - Pause
  R                - Rematch (after game over)
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot

Difficulty options:
  easy   - The AI sweeps every cell and often loses a damaged ship
  normal - Checkerboard hunt, follows hits through sunk ships
  hard   - Checkerboard hunt, rarely gives up, restarts the hunt after a sink

Examples:
  battleship play
  battleship play --difficulty hard
  battleship play --seed 42
  battleship play --config ./my-battleship.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game := battleship.New(cfg, preset, logger)
	if _, err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
