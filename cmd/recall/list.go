package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/srs"
	"github.com/fyrsmithlabs/recall/internal/tui"
)

var (
	listTags  []string
	listQuery string
	listTier  string
	listDue   bool
	listSort  string
	listDesc  bool
	listLimit int
	listJSON  bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "Keep cards carrying at least one of these tags")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Substring match against front, back and tags")
	listCmd.Flags().StringVar(&listTier, "tier", "", "Keep cards in a difficulty tier (new, learning, young, mature)")
	listCmd.Flags().BoolVar(&listDue, "due", false, "Keep only cards due for review")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort by field (created, next-review, last-review, easiness, interval, repetitions)")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Reverse the sort direction")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum cards to show (0 = all)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output cards as JSON")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards in the collection",
	Long: `List cards, optionally filtered, sorted and limited.

Examples:
  # All cards
  recall list

  # Due cards only
  recall list --due

  # Cards tagged go or rust, hardest first
  recall list --tag go,rust --sort easiness

  # Most recently added
  recall list --sort created --desc --limit 10

  # Search fronts, backs and tags
  recall list --query defer`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	f := deck.Filter{
		Query:   listQuery,
		Tags:    listTags,
		DueOnly: listDue,
	}
	if listTier != "" {
		tier, err := srs.ParseTier(listTier)
		if err != nil {
			return err
		}
		f.Tier = &tier
	}

	var opts deck.Options
	if listSort != "" {
		field, err := deck.ParseSortField(listSort)
		if err != nil {
			return err
		}
		opts.SortBy = field
		opts.SortDesc = listDesc
	}
	if listLimit > 0 {
		opts.Limit = &listLimit
	}

	eng, err := initEngine()
	if err != nil {
		return err
	}

	cards, err := eng.ListCards(context.Background(), f, opts)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	if listJSON {
		return outputJSON(cards)
	}

	if len(cards) == 0 {
		cmd.Println("No cards found")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFRONT\tTAGS\tTIER\tREPS\tEASE\tDUE")
	for _, c := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
			c.ID,
			truncate(c.Front, 40),
			truncate(strings.Join(c.Tags, ","), 20),
			c.Tier(),
			c.Repetitions,
			c.Easiness,
			tui.FormatDue(c.NextReview, now),
		)
	}
	w.Flush()
	cmd.Printf("\n%d card(s)\n", len(cards))

	return nil
}
