package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage card tags",
	Long: `Add or remove tags on a card.

Tags are lowercased and deduplicated; removing a tag the card does not
carry is not an error.

Examples:
  # Tag a card
  recall tag add V1StGXR8_Z5jdHi6B-myT go concurrency

  # Untag a card
  recall tag remove V1StGXR8_Z5jdHi6B-myT concurrency`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <card-id> <tag>...",
	Short: "Add tags to a card",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagAdd,
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove <card-id> <tag>...",
	Short: "Remove tags from a card",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagRemove,
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	return editTags(cmd, args[0], args[1:], nil)
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	return editTags(cmd, args[0], nil, args[1:])
}

func editTags(cmd *cobra.Command, cardID string, add, remove []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	card, err := eng.EditTags(context.Background(), cardID, add, remove)
	if err != nil {
		return fmt.Errorf("failed to edit tags: %w", err)
	}

	if len(card.Tags) == 0 {
		cmd.Printf("Card %s has no tags\n", card.ID)
	} else {
		cmd.Printf("Card %s tags: %s\n", card.ID, strings.Join(card.Tags, ", "))
	}

	return nil
}
