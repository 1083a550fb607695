package config

import (
	_ "embed"
)

//go:embed defaults/battleship.yaml
var defaultBattleshipYAML []byte

// DefaultBattleshipConfig returns the default battleship configuration.
// It matches defaults/battleship.yaml.
func DefaultBattleshipConfig() BattleshipConfig {
	return BattleshipConfig{
		Board: BoardConfig{
			Rows: 10,
			Cols: 10,
		},
		Placement: PlacementConfig{
			MaxAttempts:      100,
			MaxRegenerations: 10,
		},
		AI: AIConfig{
			AbandonProbability: 0.3,
			ParityHunt:         true,
			ResetOnSink:        false,
		},
		Pacing: PacingConfig{
			AIDelayTicks:   15,
			BannerTicks:    60,
			SinkFlashTicks: 24,
		},
	}
}
