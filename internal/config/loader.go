package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the battleship config file name in every search location.
const ConfigFile = "battleship.yaml"

// LoadBattleship loads battleship configuration.
// Search order: customPath -> ~/.battleship/configs/battleship.yaml ->
// ./configs/battleship.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names.
func LoadBattleship(customPath string) (BattleshipConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readConfig(customPath)
		if err != nil {
			return DefaultBattleshipConfig(), err
		}
		if err := cfg.Validate(); err != nil {
			return DefaultBattleshipConfig(), fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		if cfg, err := readConfig(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultBattleshipConfig()
	if err := yaml.Unmarshal(defaultBattleshipYAML, &cfg); err != nil {
		return DefaultBattleshipConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readConfig decodes a YAML file over the default config.
func readConfig(path string) (BattleshipConfig, error) {
	cfg := DefaultBattleshipConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".battleship", "configs", filename)
}

// Board size limits. Rows are labelled A-Z and the smallest board must
// still hold a Carrier.
const (
	MinBoardSize = 5
	MaxBoardSize = 26
)

// Validate reports every malformed value in the config.
func (c BattleshipConfig) Validate() error {
	var errs []error
	if c.Board.Rows < MinBoardSize || c.Board.Rows > MaxBoardSize {
		errs = append(errs, fmt.Errorf("board.rows must be in [%d, %d], got %d", MinBoardSize, MaxBoardSize, c.Board.Rows))
	}
	if c.Board.Cols < MinBoardSize || c.Board.Cols > MaxBoardSize {
		errs = append(errs, fmt.Errorf("board.cols must be in [%d, %d], got %d", MinBoardSize, MaxBoardSize, c.Board.Cols))
	}
	if c.Placement.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("placement.max_attempts must be positive, got %d", c.Placement.MaxAttempts))
	}
	if c.Placement.MaxRegenerations < 0 {
		errs = append(errs, fmt.Errorf("placement.max_regenerations must not be negative, got %d", c.Placement.MaxRegenerations))
	}
	if c.AI.AbandonProbability < 0 || c.AI.AbandonProbability > 1 {
		errs = append(errs, fmt.Errorf("ai.abandon_probability must be in [0, 1], got %g", c.AI.AbandonProbability))
	}
	if c.Pacing.AIDelayTicks < 0 || c.Pacing.BannerTicks < 0 || c.Pacing.SinkFlashTicks < 0 {
		errs = append(errs, errors.New("pacing ticks must not be negative"))
	}
	return errors.Join(errs...)
}
