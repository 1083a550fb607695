package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches and totals",
	Long: `Print the most recent matches followed by totals per difficulty.

Examples:
  battleship history
  battleship history --limit 5
  battleship history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the whole history")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening match database: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearMatches(); err != nil {
			return err
		}
		fmt.Println("Match history cleared.")
		return nil
	}

	matches, err := store.RecentMatches(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("error retrieving matches: %w", err)
	}

	fmt.Println("Match History")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'battleship play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-6s  %-5s  %-4s  %-8s  %-8s  %-6s  %s\n", "Result", "Shots", "Acc", "AI shots", "Level", "Time", "Date")
	fmt.Printf("  %-6s  %-5s  %-4s  %-8s  %-8s  %-6s  %s\n", "------", "-----", "---", "--------", "-----", "----", "----")
	for _, m := range matches {
		result := "Won"
		if m.Winner == storage.WinnerAI {
			result = "Lost"
		}
		fmt.Printf("  %-6s  %-5d  %3.0f%%  %-8d  %-8s  %-6s  %s\n",
			result,
			m.PlayerShots,
			m.PlayerAccuracy()*100,
			m.AIShots,
			m.Difficulty,
			m.Duration.Round(time.Second),
			m.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	totals, err := store.Stats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	byDifficulty, err := store.StatsByDifficulty()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}

	fmt.Println()
	printStats("All", totals)
	names := make([]string, 0, len(byDifficulty))
	for name := range byDifficulty {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		printStats(name, byDifficulty[name])
	}
	return nil
}

func printStats(label string, st *storage.MatchStats) {
	best := "-"
	if st.BestWinShots > 0 {
		best = fmt.Sprintf("%d", st.BestWinShots)
	}
	fmt.Printf("  %-7s %3d games  %3d won  win rate %3.0f%%  accuracy %3.0f%%  best win %s shots  AI avg %.1f shots\n",
		label+":",
		st.Games,
		st.PlayerWins,
		st.WinRate()*100,
		st.Accuracy()*100,
		best,
		st.AvgAIShots,
	)
}
