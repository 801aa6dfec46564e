package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/hours/internal/cli"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Replace the cached reports with the remote ones",
	Long: `Fetch the report set from remote_url and overwrite the local cache.

The cache always takes precedence on startup, so run this command to pick up
reports changed on the server. Local edits that were not sent anywhere else
are replaced.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fetchReports(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

// fetchReports refreshes the cache from the remote source
func fetchReports(ctx context.Context) {
	services, cfg, ok := openServices()
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	if err := services.Report.Refresh(ctx); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to fetch reports")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that %s is reachable, or set remote_url in the config file\n", cfg.RemoteURL)
		deps.Exit(1)
		return
	}

	count := len(services.Report.Months())
	_, _ = fmt.Fprintf(deps.Stdout, "Fetched %d %s from %s\n", count, cli.Pluralize("month", count), cfg.RemoteURL)
}
