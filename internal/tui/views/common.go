package views

import (
	"fmt"
	"strings"

	"github.com/xolan/hours/internal/cli"
	"github.com/xolan/hours/internal/entry"
	"github.com/xolan/hours/internal/tui/ui"
)

// Row is one displayed entry together with the month it is listed under
type Row struct {
	Month string
	Entry entry.Entry
}

// FlattenView lists the entries of view in display order
func FlattenView(view entry.MonthlyCollection) []Row {
	var rows []Row
	for _, month := range view.Months() {
		entries, _ := view.Get(month)
		for _, e := range entries {
			rows = append(rows, Row{Month: month, Entry: e})
		}
	}
	return rows
}

// RenderReportTable renders every month of view with aligned columns and a
// total per month. cursor is the index of the highlighted row across all
// months, or -1 for none.
func RenderReportTable(view entry.MonthlyCollection, styles ui.Styles, width, cursor int) string {
	var b strings.Builder
	rule := strings.Repeat("─", min(40, max(width, 1)))
	index := 0

	for i, month := range view.Months() {
		entries, _ := view.Get(month)
		if i > 0 {
			b.WriteString("\n")
		}

		b.WriteString(styles.StatValue.Render(month))
		b.WriteString("\n")
		b.WriteString(styles.StatLabel.Render(fmt.Sprintf("%-12s%-7s%-7s%8s", "Date", "Start", "End", "Hours")))
		b.WriteString("\n")

		for _, e := range entries {
			style := styles.RowNormal
			if index == cursor {
				style = styles.RowSelected
			}
			line := styles.RowDate.Render(e.Date) +
				styles.RowTime.Render(e.Start) +
				styles.RowTime.Render(e.End) +
				styles.RowHours.Render(cli.FormatHours(e.Hours))
			b.WriteString(style.Render(line))
			b.WriteString("\n")
			index++
		}

		b.WriteString(rule)
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Total: %s (%d %s)\n",
			cli.FormatHours(cli.TotalHours(entries)),
			len(entries),
			cli.Pluralize("day", len(entries))))
	}

	return b.String()
}

// RenderMonthStrip renders the month keys on one line with the active month highlighted
func RenderMonthStrip(months []string, active string, styles ui.Styles) string {
	parts := make([]string, len(months))
	for i, month := range months {
		if month == active {
			parts[i] = styles.MonthActive.Render(month)
		} else {
			parts[i] = styles.MonthInactive.Render(month)
		}
	}
	return strings.Join(parts, "  ")
}
