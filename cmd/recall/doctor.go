package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var doctorJSON bool

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output findings as JSON")
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the collection for inconsistencies",
	Long: `Check the collection for inconsistencies: duplicate card ids, scheduling
state out of range, malformed streak dates, session records that do not
add up.

The check is read-only; nothing is repaired. Exits non-zero when issues
are found.

Examples:
  # Check the collection
  recall doctor`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	eng, err := initEngine()
	if err != nil {
		return err
	}

	issues, err := eng.Doctor(context.Background())
	if err != nil {
		return fmt.Errorf("doctor check failed: %w", err)
	}

	if doctorJSON {
		if err := outputJSON(issues); err != nil {
			return err
		}
	} else if len(issues) == 0 {
		cmd.Printf("Collection at %s is healthy\n", eng.CollectionPath())
		return nil
	} else {
		for _, issue := range issues {
			cmd.Printf("  %s\n", issue)
		}
	}

	if len(issues) > 0 {
		return fmt.Errorf("%d issue(s) found", len(issues))
	}
	return nil
}
