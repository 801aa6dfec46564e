package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hours",
	Short: "Review and correct monthly working-hours reports",
	Long: `hours shows monthly working-hours reports and lets you correct the
start and end time of each day. Worked hours are recomputed on every edit
and the whole report set is kept in a local cache.

On first use the reports are fetched from the configured remote endpoint;
afterwards the cached copy is used until you run 'hours fetch'.

Usage:
  hours                                   Launch the interactive terminal UI
  hours months                            List the available months
  hours show [month] [--filter text]      Print a month, or search all months by date
  hours edit <date> --start 09:00         Correct the start time of a day
  hours edit <date> --end 17:30           Correct the end time of a day
  hours fetch                             Replace the cache with the remote reports
  hours restore [n]                       Restore a cache backup (file backend)
  hours config                            Show the effective configuration

Times use the 24-hour HH:MM format. Dates use YYYY-MM-DD.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"hours version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute loads a .env file from the working directory when present and runs
// the root command
func Execute() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Failed to read .env file: %v\n", err)
	}
	return rootCmd.Execute()
}
