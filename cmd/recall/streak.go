package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/recall/internal/tui"
)

var streakJSON bool

func init() {
	rootCmd.AddCommand(streakCmd)
	streakCmd.Flags().BoolVar(&streakJSON, "json", false, "Output streak state as JSON")
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the study streak",
	Long: `Show the current and longest study streak with recent daily activity.

A day counts toward the streak when at least one session ends on it (UTC).

Examples:
  # Show the streak
  recall streak`,
	RunE: runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	st, err := eng.Streak(context.Background())
	if err != nil {
		return err
	}

	if streakJSON {
		return outputJSON(st)
	}

	cmd.Print(tui.RenderStreak(st, time.Now()))
	return nil
}
