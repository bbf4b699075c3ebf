package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/recall/internal/tui"
)

var showJSON bool

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the card as JSON")
}

var showCmd = &cobra.Command{
	Use:   "show <card-id>",
	Short: "Show a card's full state",
	Long: `Show one card with its scheduling state.

Examples:
  # Show a card
  recall show V1StGXR8_Z5jdHi6B-myT

  # Output as JSON
  recall show V1StGXR8_Z5jdHi6B-myT --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	card, err := eng.GetCard(context.Background(), args[0])
	if err != nil {
		return err
	}

	if showJSON {
		return outputJSON(card)
	}

	cmd.Printf("ID: %s\n", card.ID)
	cmd.Printf("Front: %s\n", card.Front)
	cmd.Printf("Back: %s\n", card.Back)
	if len(card.Tags) > 0 {
		cmd.Printf("Tags: %s\n", strings.Join(card.Tags, ", "))
	}
	cmd.Printf("Tier: %s\n", card.Tier())
	cmd.Printf("Easiness: %.2f\n", card.Easiness)
	cmd.Printf("Interval: %s\n", tui.FormatInterval(card.Interval))
	cmd.Printf("Repetitions: %d\n", card.Repetitions)
	cmd.Printf("Created: %s\n", card.CreatedAt.Local().Format("2006-01-02 15:04"))
	if card.LastReview != nil {
		cmd.Printf("Last review: %s\n", card.LastReview.Local().Format("2006-01-02 15:04"))
	} else {
		cmd.Printf("Last review: never\n")
	}
	cmd.Printf("Next review: %s (%s)\n",
		card.NextReview.Local().Format("2006-01-02 15:04"),
		tui.FormatDue(card.NextReview, time.Now()))

	return nil
}
