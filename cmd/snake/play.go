package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a round in the current terminal.

Controls:
  Enter        - Start the round
  1-5          - Pick a field size (before starting)
  Arrows/WASD  - Steer
  P            - Pause
  Esc/R        - Back to the start screen after game over
  Tab          - High scores (before starting)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at the slowest speed
  normal - Start a third of the way up the speed table
  hard   - Start two thirds of the way up
  fixed  - Never speed up

Examples:
  snake play
  snake play --size 1
  snake play --difficulty hard
  snake play --config ./my-snake.yaml --log-file ./snake.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with scores (default: $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Logs would draw over the game screen, so they only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	rc := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    seed(),
		Player:  player,
	}
	round, err := snake.NewRound(cfg, rc)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores will not be saved", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	logger.Info("starting round", "size", round.Size(), "seed", rc.Seed, "player", player)
	return tui.Run(round, store, logger, rc)
}
