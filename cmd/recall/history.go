package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/recall/internal/tui"
)

var (
	historyLimit int
	historyJSON  bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Most recent sessions to show (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output session records as JSON")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past study sessions",
	Long: `Show past study sessions, most recent first.

Examples:
  # Recent sessions
  recall history

  # Everything on record
  recall history --limit 0`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	records, err := eng.History(context.Background())
	if err != nil {
		return err
	}

	// Oldest first on record; show most recent first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if historyLimit > 0 && len(records) > historyLimit {
		records = records[:historyLimit]
	}

	if historyJSON {
		return outputJSON(records)
	}

	if len(records) == 0 {
		cmd.Println("No sessions recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tTYPE\tSTUDIED\tCORRECT\tSKIPPED\tACCURACY\tTIME\tENDED")
	for _, r := range records {
		accuracy := "-"
		if r.CardsStudied > 0 {
			accuracy = tui.FormatAccuracy(r.Accuracy())
		}
		ended := "completed"
		if r.QuitEarly {
			ended = "quit early"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			r.StartTime.Local().Format("2006-01-02 15:04"),
			r.Type,
			r.CardsStudied,
			r.CorrectAnswers,
			r.SkippedCards,
			accuracy,
			tui.FormatDuration(r.Duration()),
			ended,
		)
	}
	w.Flush()

	return nil
}
