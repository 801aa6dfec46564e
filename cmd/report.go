package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/hours/internal/cli"
)

// monthsCmd represents the months command
var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List the months with reports",
	Long: `List the month keys of the report set in their stored order.

The active month, the one shown by 'hours show' without arguments, is
marked with '*'.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listMonths(cmd.Context())
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [month]",
	Short: "Print the entries of a month",
	Long: `Print the entries of a month as a table with the total worked hours.

Without a month argument the active month is shown. With --filter every
month is searched and only days whose date contains the filter text are
printed, whatever month is selected.

Examples:
  hours show                    Show the active month
  hours show 2024-02            Show February 2024
  hours show --filter 2024-01   Show every day whose date contains 2024-01
  hours show --filter -15       Show the 15th of every month`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filterText, _ := cmd.Flags().GetString("filter")
		showReport(cmd.Context(), args, filterText)
	},
}

func init() {
	rootCmd.AddCommand(monthsCmd)
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("filter", "f", "", "Only show days whose date contains this text, across all months")
}

// listMonths prints the month keys, marking the active month
func listMonths(ctx context.Context) {
	services, _, ok := openServices()
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	report := services.Report
	report.Load(ctx)

	months := report.Months()
	if len(months) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No reports available")
		return
	}

	_, _ = fmt.Fprint(deps.Stdout, cli.FormatMonths(months, report.ActiveMonth()))
}

// showReport prints the derived view for the given month and filter
func showReport(ctx context.Context, args []string, filterText string) {
	services, _, ok := openServices()
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	report := services.Report
	report.Load(ctx)

	if len(args) > 0 {
		report.SelectMonth(args[0])
	}
	report.SetFilter(filterText)

	view := report.View()
	if view.IsEmpty() {
		if filterText != "" {
			_, _ = fmt.Fprintf(deps.Stdout, "No entries match '%s'\n", filterText)
		} else if report.ActiveMonth() == "" {
			_, _ = fmt.Fprintln(deps.Stdout, "No month selected")
			_, _ = fmt.Fprintln(deps.Stdout, "Hint: Pass a month (hours show 2024-01) or set default_month in the config file")
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s\n", report.ActiveMonth())
		}
		return
	}

	_, _ = fmt.Fprint(deps.Stdout, cli.FormatReport(view))
}
