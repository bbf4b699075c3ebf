package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <deck.toml>",
	Short: "Import cards from a TOML deck file",
	Long: `Import cards from a TOML deck file. Imported cards start fresh and
are due immediately.

The file holds a list of cards:

  [[cards]]
  front = "What does := do?"
  back = "Declares and initializes a variable"
  tags = ["go", "syntax"]

The import is all-or-nothing: one bad card rejects the whole file.

Examples:
  # Import a deck
  recall import go-basics.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Export the collection to a JSON file",
	Long: `Export every card, including its scheduling state, to a JSON file.

Examples:
  # Back up the collection
  recall export cards-backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runImport(cmd *cobra.Command, args []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	n, err := eng.ImportDeck(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d card(s) from %s\n", n, args[0])
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	n, err := eng.ExportDeck(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Printf("Exported %d card(s) to %s\n", n, args[0])
	return nil
}
