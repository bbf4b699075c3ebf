package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/srs"
	"github.com/fyrsmithlabs/recall/internal/tui"
)

var (
	reviewType    string
	reviewTags    []string
	reviewQuery   string
	reviewTier    string
	reviewLimit   int
	reviewShuffle bool
)

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().StringVar(&reviewType, "type", "due", "Session type (due, new, review, custom)")
	reviewCmd.Flags().StringSliceVarP(&reviewTags, "tag", "t", nil, "Keep cards carrying at least one of these tags")
	reviewCmd.Flags().StringVarP(&reviewQuery, "query", "q", "", "Substring match against front, back and tags")
	reviewCmd.Flags().StringVar(&reviewTier, "tier", "", "Keep cards in a difficulty tier (new, learning, young, mature)")
	reviewCmd.Flags().IntVar(&reviewLimit, "limit", 0, "Cards in the session (0 = no limit, default from config)")
	reviewCmd.Flags().BoolVar(&reviewShuffle, "shuffle", false, "Shuffle the study set (default from config)")
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a study session",
	Long: `Start an interactive study session.

Each card shows its front first; reveal the answer with space, then grade
your recall from 0 (blackout) to 5 (perfect). Grades of 3 and up push the
card further into the future; lower grades bring it back within minutes.
Progress is saved after every card, so quitting mid-session loses nothing
already graded.

Session types:
  due     - cards whose review date has arrived (default)
  new     - cards never studied
  review  - previously studied cards, due or not
  custom  - exactly the cards matching your filters

Examples:
  # Study what's due
  recall review

  # Ten new cards
  recall review --type new --limit 10

  # Cram everything tagged go, in deck order
  recall review --type custom --tag go --shuffle=false`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	typ, err := session.ParseType(reviewType)
	if err != nil {
		return err
	}

	f := deck.Filter{
		Query: reviewQuery,
		Tags:  reviewTags,
	}
	if reviewTier != "" {
		tier, err := srs.ParseTier(reviewTier)
		if err != nil {
			return err
		}
		f.Tier = &tier
	}

	var limit *int
	if cmd.Flags().Changed("limit") {
		limit = &reviewLimit
	}
	var shuffle *bool
	if cmd.Flags().Changed("shuffle") {
		shuffle = &reviewShuffle
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.UI.Color {
		tui.DisableColor()
	}

	// Logs on stderr would tear the interactive repaint. Keep errors
	// only, unless a log file is configured to take the full stream.
	if cfg.Logging.Output.File == "" {
		if cfg.Logging.Level < zapcore.ErrorLevel {
			cfg.Logging.Level = zapcore.ErrorLevel
		}
	} else {
		cfg.Logging.Output.Stderr = false
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	cards, err := eng.StudySet(ctx, typ, f, limit, shuffle)
	if err != nil {
		return fmt.Errorf("failed to build study set: %w", err)
	}

	if len(cards) == 0 {
		cmd.Println("No cards to study")
		if typ == session.TypeDue {
			cmd.Println("Try 'recall review --type new' to learn new cards, or 'recall list' to see what's scheduled.")
		}
		return nil
	}

	if _, err := eng.StartSession(ctx, typ, &f); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	// Inline rendering keeps the closing summary in the terminal after
	// the program exits.
	p := tea.NewProgram(tui.NewReview(eng, cards))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run review session: %w", err)
	}

	return nil
}
