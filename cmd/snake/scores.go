package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [size]",
	Short: "Show high scores",
	Long: `Display the best rounds, most apples first. With a size, only
rounds on that field size are shown.

Examples:
  snake scores
  snake scores 25
  snake scores -i
  snake scores --clear 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", storage.DefaultLimit, "Number of rounds to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded rounds (all sizes unless a size is given)")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	size := 0
	if len(args) == 1 {
		size, err = strconv.Atoi(args[0])
		if err != nil || size <= 0 {
			return fmt.Errorf("invalid field size %q", args[0])
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(ctx, size); err != nil {
			return err
		}
		if size > 0 {
			fmt.Fprintf(out, "Cleared scores for %dx%d\n", size, size)
		} else {
			fmt.Fprintln(out, "Cleared all scores")
		}
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		current := size
		if current == 0 {
			current = cfg.StartSize()
		}
		return tui.RunScoreboard(store, cfg.Field.Sizes, current, width, height)
	}

	scores, err := store.TopScores(ctx, size, flagScoresLimit)
	if err != nil {
		return err
	}

	if size > 0 {
		fmt.Fprintf(out, "High Scores - %dx%d\n\n", size, size)
	} else {
		fmt.Fprint(out, "High Scores - all sizes\n\n")
	}

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'snake play' and eat an apple to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-7s  %-5s  %-12s  %s\n", "Rank", "Apples", "Field", "Speed", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-7s  %-5s  %-12s  %s\n", "----", "------", "-----", "-----", "------", "----")
	for i, e := range scores {
		apples := strconv.Itoa(e.Apples)
		if e.Won {
			apples += "*"
		}
		field := fmt.Sprintf("%dx%d", e.BoardSize, e.BoardSize)
		fmt.Fprintf(out, "  %-4d  %-6s  %-7s  %-5d  %-12s  %s\n",
			i+1, apples, field, e.SpeedTier+1, e.Player, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if size > 0 {
		fmt.Fprintln(out)
		if best, err := store.HighScore(ctx, size); err == nil {
			fmt.Fprintf(out, "Best: %d\n", best)
		}
		if st, err := store.Stats(ctx, size); err == nil {
			fmt.Fprintf(out, "Rounds: %d  Average: %.1f\n", st.Rounds, st.AvgApples)
		}
	}
	return nil
}
