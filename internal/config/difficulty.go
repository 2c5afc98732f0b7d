package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyDefault DifficultyPreset = ""
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyFixed   DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name from the command line.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyDefault, DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// StartTierForPreset returns the starting speed tier for a preset given the
// number of tiers in the speed table.
// Easy starts at the slowest tier, normal a third of the way up, hard two thirds.
func StartTierForPreset(preset DifficultyPreset, tiers int) int {
	if tiers <= 0 {
		return 0
	}
	switch preset {
	case DifficultyNormal:
		return tiers / 3
	case DifficultyHard:
		return 2 * tiers / 3
	default:
		return 0
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// The default preset leaves the config untouched.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyDefault:
		return
	case DifficultyFixed:
		cfg.Speed.Fixed = true
	default:
		cfg.Speed.Fixed = false
		cfg.Speed.StartTier = StartTierForPreset(preset, len(cfg.Speed.IntervalsMS))
	}
}
