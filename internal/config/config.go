// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// MinFieldSize is the smallest field side length that leaves a playable interior.
const MinFieldSize = 5

// MaxFieldPresets is the number of field sizes reachable from the keyboard (keys 1-5).
const MaxFieldPresets = 5

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Field FieldConfig `yaml:"field"`
	Snake BodyConfig  `yaml:"snake"`
	Apple AppleConfig `yaml:"apple"`
	Speed SpeedConfig `yaml:"speed"`
}

// FieldConfig defines the selectable field sizes.
type FieldConfig struct {
	Sizes       []int `yaml:"sizes"`        // Side lengths, border included
	DefaultSize int   `yaml:"default_size"` // Index into Sizes
}

// BodyConfig defines the snake placed at the start of each round.
type BodyConfig struct {
	InitialLength int `yaml:"initial_length"`
}

// AppleConfig defines apple respawn behaviour.
type AppleConfig struct {
	Delay int `yaml:"delay"` // Ticks between an apple being eaten and the next one appearing
}

// SpeedConfig defines the tick interval table.
type SpeedConfig struct {
	IntervalsMS []int `yaml:"intervals_ms"` // Slowest first
	StartTier   int   `yaml:"start_tier"`
	Fixed       bool  `yaml:"fixed"` // Disables speed progression
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid snake config")

// Intervals returns the speed table as durations.
func (s SpeedConfig) Intervals() []time.Duration {
	out := make([]time.Duration, len(s.IntervalsMS))
	for i, ms := range s.IntervalsMS {
		out[i] = time.Duration(ms) * time.Millisecond
	}
	return out
}

// StartSize returns the side length of the default field.
func (c SnakeConfig) StartSize() int {
	return c.Field.Sizes[c.Field.DefaultSize]
}

// SetStartSize picks the field size used when the game starts by its
// one-based preset number, as shown on the ready screen.
func (c *SnakeConfig) SetStartSize(preset int) error {
	if preset < 1 || preset > len(c.Field.Sizes) {
		return fmt.Errorf("%w: field size preset %d out of range 1-%d", ErrInvalidConfig, preset, len(c.Field.Sizes))
	}
	c.Field.DefaultSize = preset - 1
	return nil
}

// Validate checks that the configuration can produce a playable round.
func (c SnakeConfig) Validate() error {
	if len(c.Field.Sizes) == 0 || len(c.Field.Sizes) > MaxFieldPresets {
		return fmt.Errorf("%w: need 1 to %d field sizes, got %d", ErrInvalidConfig, MaxFieldPresets, len(c.Field.Sizes))
	}
	if c.Field.DefaultSize < 0 || c.Field.DefaultSize >= len(c.Field.Sizes) {
		return fmt.Errorf("%w: default_size %d out of range", ErrInvalidConfig, c.Field.DefaultSize)
	}
	if c.Snake.InitialLength < 2 {
		return fmt.Errorf("%w: initial_length must be at least 2, got %d", ErrInvalidConfig, c.Snake.InitialLength)
	}
	for _, size := range c.Field.Sizes {
		if size < MinFieldSize {
			return fmt.Errorf("%w: field size %d is below minimum %d", ErrInvalidConfig, size, MinFieldSize)
		}
		// The initial snake spans [mid-1, mid+len-2] on the middle row and must stay off the border.
		mid := size / 2
		if mid+c.Snake.InitialLength-2 > size-2 {
			return fmt.Errorf("%w: snake of length %d does not fit field size %d", ErrInvalidConfig, c.Snake.InitialLength, size)
		}
	}
	if c.Apple.Delay < 1 {
		return fmt.Errorf("%w: apple delay must be at least 1, got %d", ErrInvalidConfig, c.Apple.Delay)
	}
	if len(c.Speed.IntervalsMS) == 0 {
		return fmt.Errorf("%w: speed table is empty", ErrInvalidConfig)
	}
	for i, ms := range c.Speed.IntervalsMS {
		if ms <= 0 {
			return fmt.Errorf("%w: speed tier %d has non-positive interval %d", ErrInvalidConfig, i, ms)
		}
		if i > 0 && ms > c.Speed.IntervalsMS[i-1] {
			return fmt.Errorf("%w: speed tier %d is slower than tier %d", ErrInvalidConfig, i, i-1)
		}
	}
	if c.Speed.StartTier < 0 || c.Speed.StartTier >= len(c.Speed.IntervalsMS) {
		return fmt.Errorf("%w: start_tier %d out of range", ErrInvalidConfig, c.Speed.StartTier)
	}
	return nil
}
