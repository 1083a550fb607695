// battleship is a terminal Battleship game against a hunt/target AI.
//
// Usage:
//
//	battleship play            - Start a match directly
//	battleship menu            - Start page to pick a match or the history
//	battleship history         - Print recent matches and totals
//	battleship sim --games N   - Benchmark the AI on random boards
//	battleship serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.battleship/matches.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - easy, normal or hard
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

// Environment variables that supply flag defaults. A .env file in the
// working directory is loaded first.
const (
	envDBPath     = "BATTLESHIP_DB"
	envDifficulty = "BATTLESHIP_DIFFICULTY"
	envLogLevel   = "BATTLESHIP_LOG_LEVEL"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "battleship",
	Short: "Battleship - sink the AI's fleet in your terminal",
	Long: `Battleship is a terminal game: you and a computer opponent each hide a
fleet of five ships on a 10x10 grid and take turns firing. A hit earns
another shot. The first side to sink the whole enemy fleet wins.

Available commands:
  play     - Start a match directly
  menu     - Start page with match history
  history  - Print recent matches and totals
  sim      - Benchmark the AI against random boards
  serve    - Start SSH server for remote play

Examples:
  battleship play
  battleship play --difficulty hard --seed 42
  battleship menu
  battleship sim --games 1000
  battleship serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnvDefaults,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.battleship/matches.db", "Path to match history database (env "+envDBPath+")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard (env "+envDifficulty+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive modes log nothing otherwise)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error (env "+envLogLevel+")")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyEnvDefaults loads .env and fills flags the user did not set from
// the environment.
func applyEnvDefaults(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	flags := cmd.Flags()
	for name, env := range map[string]string{
		"db":         envDBPath,
		"difficulty": envDifficulty,
		"log-level":  envLogLevel,
	} {
		v, ok := os.LookupEnv(env)
		if !ok || v == "" || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}
	return nil
}
