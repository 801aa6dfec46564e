// Package tui provides the Terminal User Interface for the hours application.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/hours/internal/service"
	"github.com/xolan/hours/internal/tui/ui"
	"github.com/xolan/hours/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabReport Tab = iota
	TabConfig
)

var tabNames = []string{"Report", "Config"}

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool
	status    ui.StatusMsg

	// View models
	reportView views.ReportModel
	configView views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(ctx context.Context, services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	var status ui.StatusMsg
	if missing := themeProvider.Missing(); missing != "" {
		status = ui.StatusMsg{
			Text:    fmt.Sprintf("Unknown theme '%s', using %s", missing, themeProvider.CurrentName()),
			IsError: true,
		}
	}

	return Model{
		services:      services,
		activeTab:     TabReport,
		status:        status,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		reportView:    views.NewReportModel(ctx, services.Report, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.reportView.Init(),
		m.configView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		capturingKeys := m.isCapturingKeys()

		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !capturingKeys:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturingKeys:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !capturingKeys:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab) && !capturingKeys:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1) && !capturingKeys:
			m.activeTab = TabReport
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2) && !capturingKeys:
			m.activeTab = TabConfig
			return m, m.initCurrentView()
		}

		switch m.activeTab {
		case TabReport:
			m.reportView, cmd = m.reportView.Update(msg)
		case TabConfig:
			m.configView, cmd = m.configView.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4
		m.reportView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.reportView, _ = m.reportView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveThemeConfig(newTheme)

	case ui.StatusMsg:
		m.status = msg
		return m, nil
	}

	// Results of background commands reach their view whichever tab is shown
	var reportCmd, configCmd tea.Cmd
	m.reportView, reportCmd = m.reportView.Update(msg)
	m.configView, configCmd = m.configView.Update(msg)
	return m, tea.Batch(reportCmd, configCmd)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabReport:
		b.WriteString(m.reportView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	if m.status.Text != "" {
		if m.status.IsError {
			b.WriteString(m.styles.Error.Render(m.status.Text))
		} else {
			b.WriteString(m.styles.Success.Render(m.status.Text))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isCapturingKeys() {
		parts = append(parts, m.renderKeyHelp("Enter", "apply"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabReport:
			parts = append(parts, m.renderKeyHelp("[/]", "month"))
			parts = append(parts, m.renderKeyHelp("s", "start"))
			parts = append(parts, m.renderKeyHelp("e", "end"))
			parts = append(parts, m.renderKeyHelp("/", "filter"))
			parts = append(parts, m.renderKeyHelp("r", "fetch"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-2", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isCapturingKeys checks if the current view is capturing keyboard input
func (m Model) isCapturingKeys() bool {
	switch m.activeTab {
	case TabReport:
		return m.reportView.IsInputMode()
	case TabConfig:
		return m.configView.IsSelecting()
	}
	return false
}

// initCurrentView reloads the current view when switching tabs.
// The report view keeps its state; it is loaded once at startup.
func (m Model) initCurrentView() tea.Cmd {
	if m.activeTab == TabConfig {
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Config.SetTheme(themeName); err != nil {
			return ui.StatusMsg{Text: fmt.Sprintf("Could not save theme: %v", err), IsError: true}
		}
		return ui.StatusMsg{Text: fmt.Sprintf("Theme set to %s", themeName)}
	}
}

// renderHelpOverlay renders the keyboard shortcuts for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-2    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabReport:
		help.WriteString(m.styles.StatLabel.Render("Report:"))
		help.WriteString("\n")
		help.WriteString("  [/]        Previous/next month\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  s          Edit start time\n")
		help.WriteString("  e          Edit end time\n")
		help.WriteString("  /          Filter days by date\n")
		help.WriteString("  Esc        Clear filter\n")
		help.WriteString("  r          Fetch reports again\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(ctx context.Context, services *service.Services) error {
	p := tea.NewProgram(New(ctx, services), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
