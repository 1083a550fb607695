package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/sim"
)

var flagSimGames int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Benchmark the AI against random boards",
	Long: `Let the AI clear randomly generated fleets and report how many shots
it needed. Game i uses seed+i, so a fixed --seed repeats the run exactly.
The AI settings come from --config and --difficulty.

Examples:
  battleship sim
  battleship sim --games 1000 --difficulty hard
  battleship sim --seed 7 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 100, "Number of boards to clear")
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rules := battleship.Options(cfg, logger)
	opts := sim.Options{
		Games:             flagSimGames,
		Seed:              seed,
		Rows:              rules.Rows,
		Cols:              rules.Cols,
		Fleet:             rules.Fleet,
		PlacementAttempts: rules.PlacementAttempts,
		AI:                rules.AI,
		Logger:            logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	rep, err := sim.Run(ctx, opts)
	if err != nil && ctx.Err() == nil {
		return err
	}
	if err != nil {
		fmt.Println("Interrupted, partial results:")
	}

	fmt.Printf("AI benchmark (%s, %dx%d, seed %d)\n", preset, opts.Rows, opts.Cols, seed)
	fmt.Println()
	fmt.Printf("  Games:     %d\n", rep.Games)
	if rep.Abandoned > 0 {
		fmt.Printf("  Abandoned: %d (fleet did not fit)\n", rep.Abandoned)
	}
	if rep.Games == 0 {
		return nil
	}
	fmt.Printf("  Average:   %.2f shots\n", rep.AvgShots)
	fmt.Printf("  Min:       %d shots\n", rep.MinShots)
	fmt.Printf("  Max:       %d shots\n", rep.MaxShots)
	fmt.Printf("  Accuracy:  %.1f%%\n", rep.Accuracy()*100)
	fmt.Printf("  Elapsed:   %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
