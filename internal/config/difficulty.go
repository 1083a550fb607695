package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets from easiest to hardest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset converts a flag value to a preset. Matching is
// case-insensitive; the empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// presetAI holds the AI parameters easy and hard force. Normal keeps the
// loaded config.
var presetAI = map[DifficultyPreset]AIConfig{
	// Easy hunts every cell and often loses track of a damaged ship.
	DifficultyEasy: {
		AbandonProbability: 0.5,
		ParityHunt:         false,
		ResetOnSink:        true,
	},
	DifficultyHard: {
		AbandonProbability: 0.1,
		ParityHunt:         true,
		ResetOnSink:        true,
	},
}

// ApplyBattleshipPreset modifies the AI section of cfg based on a preset.
// Normal leaves a loaded config untouched so custom files keep their values.
func ApplyBattleshipPreset(cfg *BattleshipConfig, preset DifficultyPreset) {
	if ai, ok := presetAI[preset]; ok {
		cfg.AI = ai
	}
}
