package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/recall/internal/config"
	"github.com/fyrsmithlabs/recall/internal/seed"
	"github.com/fyrsmithlabs/recall/internal/store"
)

var initSample bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initSample, "sample", false, "Install a small starter deck")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the card collection",
	Long: `Initialize the recall collection and config directory.

Creates the data directory with an empty collection file. Running init on
an existing collection is harmless; nothing is overwritten.

Examples:
  # Create an empty collection
  recall init

  # Create a collection pre-loaded with a starter deck
  recall init --sample`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := config.EnsureConfigDir(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.NewFileStore(cfg.CollectionPath(), store.WithBackups(cfg.Data.Backups))
	if err != nil {
		return fmt.Errorf("failed to open collection store: %w", err)
	}

	if st.Exists() {
		cmd.Printf("Collection already initialized at %s\n", st.Path())
	} else {
		if err := st.Save(ctx, store.DefaultState()); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		cmd.Printf("Initialized empty collection at %s\n", st.Path())
	}

	if !initSample {
		return nil
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	added := 0
	for _, entry := range seed.Deck() {
		if _, err := eng.AddCard(ctx, entry.Front, entry.Back, entry.Tags); err != nil {
			return fmt.Errorf("failed to add starter card %q: %w", truncate(entry.Front, 40), err)
		}
		added++
	}
	cmd.Printf("Added %d starter cards. Study them with 'recall review'.\n", added)

	return nil
}
