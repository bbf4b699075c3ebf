package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Build information (set via ldflags)
var (
	gitCommit = "unknown"
	buildDate = "unknown"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show version and build information.

Examples:
  # Show the version
  recall version`,
	Run: runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	cmd.Printf("recall %s\n", version)
	cmd.Printf("Commit:     %s\n", gitCommit)
	cmd.Printf("Build Date: %s\n", buildDate)
	cmd.Printf("Go Version: %s\n", runtime.Version())
}
