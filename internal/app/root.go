// Package app contains the Cobra command tree for notewatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
	flagInput   string
)

var rootCmd = &cobra.Command{
	Use:   "notewatch",
	Short: "Time-windowed analytics for voice-note transcripts",
	Long: `notewatch ingests transcripts from the transcript service (or a local
JSON export) and computes time-windowed analytics: totals, period-over-period
growth, hour-of-day activity, and sentiment trends.

Run 'notewatch' with no arguments to see a quick summary for the default range.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSummary,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/notewatch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagInput, "input", "", "Local JSON export to analyze instead of the remote source")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
