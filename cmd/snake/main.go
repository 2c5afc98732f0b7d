// snake is the classic Snake game for the terminal.
//
// Usage:
//
//	snake                    - Play (same as snake play)
//	snake play               - Play in this terminal
//	snake sizes              - List the selectable field sizes
//	snake scores [size]      - Show high scores
//	snake serve              - Start the SSH server, optionally with an HTTP leaderboard
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible apple placement
//	--db <path>           - Set database path (default: ~/.snake/scores.db)
//	--config <path>       - Load a custom snake.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--size <1-5>          - Field size preset selected at start
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSize       int
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Steer the snake around a walled field, eat apples and grow.
Every apple makes the snake faster. Hitting a wall or your own
body ends the round.

Available commands:
  play     - Play in this terminal (default)
  sizes    - List the selectable field sizes
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  snake
  snake play --size 1 --difficulty hard
  snake scores 25
  snake serve --ssh :2222 --http :8080`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	flags.StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.IntVar(&flagSize, "size", 0, "Field size preset 1-5 selected at start (0 = config default)")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(sizesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadGameConfig loads the snake config and applies the difficulty and size flags.
func loadGameConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplySnakePreset(&cfg, preset)

	if flagSize != 0 {
		if err := cfg.SetStartSize(flagSize); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

// newLogger builds the logger from the log flags. Without --log-file, logs
// go to fallback. The returned close function releases the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "snake",
	})
	return logger, closeFn, nil
}

// seed returns the --seed flag, or a clock-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
