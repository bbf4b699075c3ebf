package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/recall/internal/tui"
)

var achievementsJSON bool

func init() {
	rootCmd.AddCommand(achievementsCmd)
	achievementsCmd.Flags().BoolVar(&achievementsJSON, "json", false, "Output achievements as JSON")
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"achievement"},
	Short:   "Show achievement progress",
	Long: `Show all achievements with unlock dates and progress toward the
locked ones.

Examples:
  # Show achievements
  recall achievements`,
	RunE: runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	achs, err := eng.Achievements(context.Background())
	if err != nil {
		return err
	}

	if achievementsJSON {
		return outputJSON(achs)
	}

	cmd.Print(tui.RenderAchievements(achs))
	return nil
}
