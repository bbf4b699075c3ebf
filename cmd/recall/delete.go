package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <card-id>",
	Short: "Delete a card",
	Long: `Delete a card from the collection.

The card's review history inside past session records is kept; only the
card itself is removed.

Examples:
  # Delete a card
  recall delete V1StGXR8_Z5jdHi6B-myT`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	if err := eng.DeleteCard(context.Background(), args[0]); err != nil {
		return err
	}

	cmd.Printf("Deleted card %s\n", args[0])
	return nil
}
