package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	addTags []string
	addJSON bool
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Tag the card (repeatable, or comma-separated)")
	addCmd.Flags().BoolVar(&addJSON, "json", false, "Output the new card as JSON")
}

var addCmd = &cobra.Command{
	Use:   "add <front> <back>",
	Short: "Add a new card",
	Long: `Add a new card to the collection.

The front is the prompt shown during review; the back is the answer. New
cards are due immediately. Tags are lowercased and deduplicated.

Examples:
  # Add a plain card
  recall add "Capital of France?" "Paris"

  # Add a tagged card
  recall add "What does := do?" "Declares and initializes a variable" --tag go,syntax`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	card, err := eng.AddCard(context.Background(), args[0], args[1], addTags)
	if err != nil {
		return fmt.Errorf("failed to add card: %w", err)
	}

	if addJSON {
		return outputJSON(card)
	}

	cmd.Printf("Added card %s\n", card.ID)
	cmd.Printf("Front: %s\n", card.Front)
	if len(card.Tags) > 0 {
		cmd.Printf("Tags: %s\n", strings.Join(card.Tags, ", "))
	}
	cmd.Printf("Due: now\n")

	return nil
}
