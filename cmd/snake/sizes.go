package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List the selectable field sizes",
	Long: `Show the field sizes reachable with keys 1-5 on the start screen,
the terminal size each one needs, and which one is selected at start.`,
	Args: cobra.NoArgs,
	RunE: runSizes,
}

func runSizes(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Field sizes:")
	fmt.Fprintln(out)
	for i, n := range cfg.Field.Sizes {
		marker := " "
		if i == cfg.Field.DefaultSize {
			marker = "*"
		}
		// Two columns per cell plus three status rows and the help line.
		fmt.Fprintf(out, "  %s %d  %2dx%-2d  (terminal %dx%d)\n", marker, i+1, n, n, n*2, n+4)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Speed tiers: %d, starting at %d\n", len(cfg.Speed.IntervalsMS), cfg.Speed.StartTier+1)
	fmt.Fprintln(out, "Press the number on the start screen to switch size.")
	return nil
}
