// Package cli provides the CLI presentation layer for the hours application.
// It handles command-line output formatting.
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/xolan/hours/internal/entry"
)

// FormatHours formats worked hours with one decimal place
// Examples: "8.0h", "7.5h", "-1.0h"
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

// TotalHours sums the hours of entries, rounded to one decimal place
func TotalHours(entries []entry.Entry) float64 {
	total := 0.0
	for _, e := range entries {
		total += e.Hours
	}
	return math.Round(total*10) / 10
}

// FormatEntry formats an entry as one table row
// Example: "2024-01-02  09:00  17:30   8.5h"
func FormatEntry(e entry.Entry) string {
	return fmt.Sprintf("%-10s  %-5s  %-5s  %6s", e.Date, e.Start, e.End, FormatHours(e.Hours))
}

// FormatReport renders every month of view as a table with a total line.
// Returns an empty string for an empty view.
func FormatReport(view entry.MonthlyCollection) string {
	var b strings.Builder

	for i, month := range view.Months() {
		entries, _ := view.Get(month)
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "%s (%d %s)\n", month, len(entries), Pluralize("day", len(entries)))
		b.WriteString(strings.Repeat("-", 34) + "\n")
		fmt.Fprintf(&b, "%-10s  %-5s  %-5s  %6s\n", "Date", "Start", "End", "Hours")
		for _, e := range entries {
			b.WriteString(FormatEntry(e) + "\n")
		}
		b.WriteString(strings.Repeat("-", 34) + "\n")
		fmt.Fprintf(&b, "Total: %s\n", FormatHours(TotalHours(entries)))
	}

	return b.String()
}

// FormatMonths lists month keys one per line, marking the active month with '*'
func FormatMonths(months []string, active string) string {
	var b strings.Builder
	for _, month := range months {
		marker := " "
		if month == active {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, month)
	}
	return b.String()
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
