package ui

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// StatusMsg carries a one-line notice for the status area of a view.
// IsError selects the error style.
type StatusMsg struct {
	Text    string
	IsError bool
}
