// Package config provides YAML-based game configuration loading and
// difficulty presets for battleship.
package config

// BattleshipConfig contains all configuration for a battleship match.
type BattleshipConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Placement PlacementConfig `yaml:"placement"`
	AI        AIConfig        `yaml:"ai"`
	Pacing    PacingConfig    `yaml:"pacing"`
}

// BoardConfig defines the grid size shared by both fleets.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// PlacementConfig bounds random fleet placement.
type PlacementConfig struct {
	MaxAttempts      int `yaml:"max_attempts"`      // Random draws per ship
	MaxRegenerations int `yaml:"max_regenerations"` // Whole-board retries after exhaustion
}

// AIConfig defines the computer opponent's targeting heuristics.
type AIConfig struct {
	AbandonProbability float64 `yaml:"abandon_probability"` // Chance a miss ends a multi-hit streak
	ParityHunt         bool    `yaml:"parity_hunt"`         // Hunt on the (row+col) even checkerboard first
	ResetOnSink        bool    `yaml:"reset_on_sink"`       // Drop the streak as soon as a ship sinks
}

// PacingConfig defines presentation timings in simulation ticks.
type PacingConfig struct {
	AIDelayTicks   int `yaml:"ai_delay_ticks"`   // Pause before each AI shot
	BannerTicks    int `yaml:"banner_ticks"`     // How long hit/miss messages stay up
	SinkFlashTicks int `yaml:"sink_flash_ticks"` // How long a sunk ship flashes
}
