package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Month strip
	MonthActive   lipgloss.Style
	MonthInactive lipgloss.Style

	// Report rows
	RowSelected lipgloss.Style
	RowNormal   lipgloss.Style
	RowDate     lipgloss.Style
	RowTime     lipgloss.Style
	RowHours    lipgloss.Style

	// Labels and values
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Dialog
	Dialog lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the styles of DefaultTheme
func DefaultStyles() Styles {
	return NewThemeProvider(DefaultTheme).Styles()
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// This maps theme colors to semantic UI elements:
// - Primary: Purple (tabs, titles, active month)
// - Secondary: Cyan (times, keys)
// - Accent: BrightPurple (hours)
// - Muted: BrightBlack (inactive elements, labels)
// - Success/Warning/Error: Green/Yellow/Red
func NewStylesFromRegistry(r *tint.Registry) Styles {
	primary := r.Purple()
	secondary := r.Cyan()
	accent := r.BrightPurple()
	muted := r.BrightBlack()
	success := r.Green()
	warning := r.Yellow()
	errorColor := r.Red()
	fg := r.Fg()
	bg := r.Bg()

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted),
		TabActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		MonthActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Underline(true),
		MonthInactive: lipgloss.NewStyle().
			Foreground(muted),

		RowSelected: lipgloss.NewStyle().
			Background(muted).
			Bold(true),
		RowNormal: lipgloss.NewStyle(),
		RowDate: lipgloss.NewStyle().
			Foreground(fg).
			Width(12),
		RowTime: lipgloss.NewStyle().
			Foreground(secondary).
			Width(7),
		RowHours: lipgloss.NewStyle().
			Foreground(accent).
			Width(8).
			Align(lipgloss.Right),

		StatLabel: lipgloss.NewStyle().
			Foreground(muted).
			Width(16),
		StatValue: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2).
			Width(50),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}
