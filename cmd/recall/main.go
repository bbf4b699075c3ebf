// Package main implements the recall CLI for spaced-repetition flashcard study.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/recall/internal/config"
	"github.com/fyrsmithlabs/recall/internal/engine"
	"github.com/fyrsmithlabs/recall/internal/logging"
	"github.com/fyrsmithlabs/recall/internal/store"
	"github.com/fyrsmithlabs/recall/internal/tui"
)

var (
	// configPath overrides the default config file location
	configPath string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Spaced-repetition flashcards in the terminal",
	Long: `recall is a terminal flashcard program built on the SM-2 spaced-repetition
algorithm. Cards live in a single JSON collection under your data directory;
sessions, streaks and achievements are tracked across runs.

Start with 'recall init', add cards with 'recall add', then study with
'recall review'.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/recall/config.yaml)")
}

// loadConfig loads configuration honoring the --config override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// buildEngine wires logger, store and engine under the given config.
func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	st, err := store.NewFileStore(cfg.CollectionPath(), store.WithBackups(cfg.Data.Backups))
	if err != nil {
		return nil, fmt.Errorf("failed to open collection store: %w", err)
	}

	eng, err := engine.New(&engine.Config{
		FailureRetryDelay: cfg.Scheduler.FailureRetryDelay.Duration(),
		MaxIntervalDays:   cfg.Scheduler.MaxIntervalDays,
		HistoryCap:        cfg.Data.HistoryCap,
		DefaultLimit:      cfg.Session.DefaultLimit,
		Shuffle:           cfg.Session.Shuffle,
	}, st, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	return eng, nil
}

// initEngine is the common construction path for commands.
func initEngine() (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.UI.Color {
		tui.DisableColor()
	}
	return buildEngine(cfg)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
