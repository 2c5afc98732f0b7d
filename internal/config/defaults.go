package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Field: FieldConfig{
			Sizes:       []int{20, 25, 30, 35, 40},
			DefaultSize: 0,
		},
		Snake: BodyConfig{
			InitialLength: 3,
		},
		Apple: AppleConfig{
			Delay: 4,
		},
		Speed: SpeedConfig{
			IntervalsMS: []int{310, 280, 250, 220, 190, 170, 150, 140, 130, 120, 110, 90, 80, 70, 60},
			StartTier:   0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
