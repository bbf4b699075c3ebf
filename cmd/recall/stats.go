package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/recall/internal/tui"
)

var (
	statsWeekly bool
	statsWeeks  int
	statsJSON   bool
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsWeekly, "weekly", false, "Show a week-by-week activity table instead")
	statsCmd.Flags().IntVar(&statsWeeks, "weeks", 8, "Weeks covered by --weekly")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output statistics as JSON")
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Long: `Show collection statistics: card counts by tier, review accuracy,
streaks, recent activity and tag distribution.

Examples:
  # Collection overview
  recall stats

  # Week-by-week activity
  recall stats --weekly

  # Cover a whole quarter
  recall stats --weekly --weeks 13

  # Output as JSON
  recall stats --json`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	eng, err := initEngine()
	if err != nil {
		return err
	}

	if statsWeekly {
		weeks, err := eng.WeeklyStats(ctx, statsWeeks)
		if err != nil {
			return fmt.Errorf("failed to collect weekly stats: %w", err)
		}
		if statsJSON {
			return outputJSON(weeks)
		}
		cmd.Print(tui.RenderWeekly(weeks))
		return nil
	}

	snap, err := eng.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect stats: %w", err)
	}
	if statsJSON {
		return outputJSON(snap)
	}

	tags, err := eng.TagDistribution(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect tag distribution: %w", err)
	}
	volume, err := eng.DailyVolume(ctx, 30)
	if err != nil {
		return fmt.Errorf("failed to collect review volume: %w", err)
	}

	cmd.Print(tui.RenderStats(snap, tags, volume))
	return nil
}
