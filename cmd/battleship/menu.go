package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with its start page",
	Long: `Start the game on its start page.

Use arrow keys or j/k to navigate, Enter to select.
After a match ends, press B to return to the start page.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Tab          - Match history
  Q            - Quit

Examples:
  battleship menu
  battleship menu --difficulty easy
  battleship menu --db ./matches.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	rt := runtimeConfig()
	for {
		res, err := tui.RunStart(store, rt, string(preset))
		if err != nil {
			return err
		}
		// Keep any size changes
		rt.ScreenW, rt.ScreenH = res.Config.ScreenW, res.Config.ScreenH

		switch res.Choice {
		case tui.ChoiceHistory:
			goBack, err := tui.RunHistory(store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return nil
			}

		case tui.ChoiceStart:
			game := battleship.New(cfg, preset, logger)
			goBack, err := tui.Run(game, store, rt, logger)
			if err != nil {
				return fmt.Errorf("error running game: %w", err)
			}
			if !goBack {
				return nil
			}
			// Fresh boards for the next match
			rt.Seed = time.Now().UnixNano()

		default:
			return nil
		}
	}
}
