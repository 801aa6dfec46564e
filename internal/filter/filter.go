// Package filter derives the displayed subset of a monthly collection.
package filter

import (
	"strings"

	"github.com/xolan/hours/internal/entry"
)

// DeriveView returns the part of c to display.
//
// With an empty filterText the view holds only selectedMonth (or nothing if
// that month does not exist). With a non-empty filterText every month is
// searched and only entries whose date contains filterText are kept; months
// without a match are dropped. The selected month does not restrict a text
// search.
func DeriveView(c entry.MonthlyCollection, selectedMonth, filterText string) entry.MonthlyCollection {
	view := entry.NewMonthlyCollection()

	if filterText == "" {
		if entries, ok := c.Get(selectedMonth); ok {
			view = view.With(selectedMonth, entries)
		}
		return view
	}

	for _, month := range c.Months() {
		entries, _ := c.Get(month)
		matched := FilterEntries(entries, filterText)
		if len(matched) > 0 {
			view = view.With(month, matched)
		}
	}
	return view
}

// FilterEntries returns the entries whose date contains text.
// An empty text matches all entries.
func FilterEntries(entries []entry.Entry, text string) []entry.Entry {
	if text == "" {
		return entries
	}

	filtered := make([]entry.Entry, 0)
	for _, e := range entries {
		if MatchesDate(e, text) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// MatchesDate returns true if text is a substring of the entry's date
func MatchesDate(e entry.Entry, text string) bool {
	return strings.Contains(e.Date, text)
}
