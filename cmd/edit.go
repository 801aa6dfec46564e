package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/hours/internal/cli"
	"github.com/xolan/hours/internal/entry"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <date>",
	Short: "Correct the start or end time of a day",
	Long: `Correct the start and/or end time of the entry dated <date> (YYYY-MM-DD).
The worked hours are recomputed and the report set is saved to the cache.

Usage:
  hours edit <date> --start 09:00              Update the start time
  hours edit <date> --end 17:30                Update the end time
  hours edit <date> --start 09:00 --end 17:30  Update both

Times use the 24-hour HH:MM format with two-digit hours (09:00, not 9:00).
At least one flag (--start or --end) is required.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		editEntry(cmd.Context(), args[0], start, end)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("start", "", "New start time (HH:MM)")
	editCmd.Flags().String("end", "", "New end time (HH:MM)")
}

// editEntry applies the start edit, then the end edit, to the entry dated date
func editEntry(ctx context.Context, date, start, end string) {
	if start == "" && end == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one flag (--start or --end) is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  hours edit <date> --start 09:00")
		_, _ = fmt.Fprintln(deps.Stderr, "  hours edit <date> --end 17:30")
		deps.Exit(1)
		return
	}

	services, _, ok := openServices()
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	report := services.Report
	report.Load(ctx)

	if _, found := report.Find(date); !found {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry dated '%s'\n", date)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: List the days of a month with 'hours show %s'\n", entry.MonthKey(date))
		deps.Exit(1)
		return
	}

	edits := []struct {
		field entry.Field
		value string
	}{
		{entry.FieldStart, start},
		{entry.FieldEnd, end},
	}

	for _, edit := range edits {
		if edit.value == "" {
			continue
		}
		if err := report.Edit(date, edit.field, edit.value); err != nil {
			var validationErr *entry.ValidationError
			if errors.As(err, &validationErr) {
				_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", report.ErrorMessage())
				_, _ = fmt.Fprintf(deps.Stderr, "Details: %s is '%s'\n", validationErr.Field, validationErr.Value)
				_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use two-digit 24-hour times like 09:00 or 17:30")
			} else {
				_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save the edit")
				_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			}
			deps.Exit(1)
			return
		}
	}

	e, _ := report.Find(date)
	_, _ = fmt.Fprintf(deps.Stdout, "Updated %s\n", cli.FormatEntry(e))
}
