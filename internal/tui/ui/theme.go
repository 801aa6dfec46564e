package ui

import (
	"sort"
	"strings"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the tint shown when the config names no theme or an unknown one
const DefaultTheme = "dracula"

// ThemeProvider holds the tint registry behind the TUI styles
type ThemeProvider struct {
	registry *tint.Registry
	ids      []string
	missing  string
}

// NewThemeProvider creates a ThemeProvider showing the configured theme.
// Names are matched case-insensitively. An unknown name keeps DefaultTheme
// and is reported by Missing.
func NewThemeProvider(configured string) *ThemeProvider {
	tints := tint.DefaultTints()

	fallback := tints[0]
	for _, t := range tints {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, tints...)}
	tp.ids = tp.registry.TintIDs()
	sort.Strings(tp.ids)

	if name := normalizeTheme(configured); name != "" && !tp.SetTheme(name) {
		tp.missing = configured
	}
	return tp
}

// SetTheme selects a theme by ID and reports whether it exists
func (tp *ThemeProvider) SetTheme(name string) bool {
	id, ok := tp.resolve(name)
	if !ok {
		return false
	}
	return tp.registry.SetTintID(id)
}

// resolve finds the theme ID matching name, ignoring case and surrounding space
func (tp *ThemeProvider) resolve(name string) (string, bool) {
	want := normalizeTheme(name)
	for _, id := range tp.ids {
		if normalizeTheme(id) == want {
			return id, true
		}
	}
	return "", false
}

// CurrentName returns the ID of the selected theme
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// Missing returns the configured theme name that could not be found, or ""
func (tp *ThemeProvider) Missing() string {
	return tp.missing
}

// AvailableThemes returns the theme IDs in alphabetical order
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := make([]string, len(tp.ids))
	copy(ids, tp.ids)
	return ids
}

// Styles builds the styles for the selected theme
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}

func normalizeTheme(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
