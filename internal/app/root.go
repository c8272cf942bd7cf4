// Package app contains the Cobra command tree for wellwatch.
package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/wellwatch/internal/logging"
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
)

var rootCmd = &cobra.Command{
	Use:   "wellwatch",
	Short: "Track habits, tasks and wellbeing from the terminal",
	Long: `wellwatch tracks tasks, daily habits, wellness check-ins, goals and
notes in a local SQLite database. It computes habit streaks and completion
rates and turns the data into ranked, actionable recommendations.

Run 'wellwatch' with no arguments to see today's summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithCommand(cmd.Context(), cmd.CommandPath())
		cmd.SetContext(ctx)
		return nil
	},
	RunE: runStats,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/wellwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	addStatsFlags(rootCmd)
}
