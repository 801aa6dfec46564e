package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/hours/internal/entry"
	"github.com/xolan/hours/internal/service"
	"github.com/xolan/hours/internal/tui/ui"
)

// reportMode represents the current mode of the report view
type reportMode int

const (
	reportModeNormal reportMode = iota
	reportModeEditStart
	reportModeEditEnd
	reportModeFilter
)

// ReportModel is the model for the report view.
//
// The ReportService is only touched from Update, except for the load and
// refresh commands, which run while busy is set and every key is ignored.
type ReportModel struct {
	ctx    context.Context
	report *service.ReportService
	styles ui.Styles
	keys   ui.KeyMap

	// UI state
	width   int
	height  int
	cursor  int
	busy    bool
	notice  string
	isError bool

	// Copied from the service after every change
	months      []string
	activeMonth string
	filterText  string
	rows        []Row
	view        entry.MonthlyCollection
	errMessage  string

	// Input mode state
	mode  reportMode
	input textinput.Model
}

// NewReportModel creates a new report view model
func NewReportModel(ctx context.Context, report *service.ReportService, styles ui.Styles, keys ui.KeyMap) ReportModel {
	input := textinput.New()
	input.CharLimit = 20
	input.Width = 20

	m := ReportModel{
		ctx:    ctx,
		report: report,
		styles: styles,
		keys:   keys,
		input:  input,
		busy:   true,
	}
	m.sync()
	return m
}

// reportsLoadedMsg is sent when the startup load has finished
type reportsLoadedMsg struct {
	result service.LoadResult
}

// reportsRefreshedMsg is sent when a fetch requested with the refresh key has finished
type reportsRefreshedMsg struct {
	err error
}

// Init implements tea.Model
func (m ReportModel) Init() tea.Cmd {
	return m.loadReports()
}

// Update implements tea.Model
func (m ReportModel) Update(msg tea.Msg) (ReportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch m.mode {
		case reportModeEditStart, reportModeEditEnd:
			return m.handleEditMode(msg)
		case reportModeFilter:
			return m.handleFilterMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevMonth):
			m.shiftMonth(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextMonth):
			m.shiftMonth(1)
			return m, nil
		case key.Matches(msg, m.keys.EditStart):
			return m.startEdit(reportModeEditStart)
		case key.Matches(msg, m.keys.EditEnd):
			return m.startEdit(reportModeEditEnd)
		case key.Matches(msg, m.keys.Filter):
			m.mode = reportModeFilter
			m.input.Placeholder = "Date contains..."
			m.input.SetValue(m.filterText)
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Back):
			if m.filterText != "" {
				m.report.SetFilter("")
				m.sync()
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.busy = true
			m.notice = "Fetching reports..."
			m.isError = false
			return m, m.refreshReports()
		}

	case reportsLoadedMsg:
		m.busy = false
		m.sync()
		switch {
		case msg.result.Err != nil:
			m.notice = fmt.Sprintf("Could not fetch reports: %v", msg.result.Err)
			m.isError = true
		case msg.result.Source == service.SourceCache:
			m.notice = "Loaded from cache (press r to fetch)"
			m.isError = false
		default:
			m.notice = ""
		}
		return m, nil

	case reportsRefreshedMsg:
		m.busy = false
		m.sync()
		if msg.err != nil {
			m.notice = fmt.Sprintf("Fetch failed: %v", msg.err)
			m.isError = true
		} else {
			m.notice = "Reports fetched"
			m.isError = false
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode != reportModeNormal {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// startEdit opens the time input for the selected row
func (m ReportModel) startEdit(mode reportMode) (ReportModel, tea.Cmd) {
	row, ok := m.SelectedRow()
	if !ok {
		return m, nil
	}

	m.mode = mode
	m.input.Placeholder = "HH:MM"
	if mode == reportModeEditStart {
		m.input.SetValue(row.Entry.Start)
	} else {
		m.input.SetValue(row.Entry.End)
	}
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

// handleEditMode handles key events while a start or end time is typed
func (m ReportModel) handleEditMode(msg tea.KeyMsg) (ReportModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		row, ok := m.SelectedRow()
		field := entry.FieldStart
		if m.mode == reportModeEditEnd {
			field = entry.FieldEnd
		}
		m.mode = reportModeNormal
		m.input.Blur()
		if !ok {
			return m, nil
		}

		err := m.report.Edit(row.Entry.Date, field, strings.TrimSpace(m.input.Value()))
		m.sync()

		var validationErr *entry.ValidationError
		switch {
		case err == nil:
			m.notice = ""
		case errors.As(err, &validationErr):
			// Shown through the service's error message
		default:
			m.notice = err.Error()
			m.isError = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.mode = reportModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleFilterMode handles key events while the filter is typed.
// The view follows every keystroke.
func (m ReportModel) handleFilterMode(msg tea.KeyMsg) (ReportModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.mode = reportModeNormal
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.mode = reportModeNormal
		m.input.Blur()
		m.report.SetFilter("")
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.report.SetFilter(m.input.Value())
	m.sync()
	return m, cmd
}

// shiftMonth selects the month delta positions away from the active one.
// An active month missing from the list jumps to the first month.
func (m *ReportModel) shiftMonth(delta int) {
	if len(m.months) == 0 {
		return
	}

	idx := -1
	for i, month := range m.months {
		if month == m.activeMonth {
			idx = i
			break
		}
	}

	next := 0
	if idx >= 0 {
		next = (idx + delta + len(m.months)) % len(m.months)
	}

	m.report.SelectMonth(m.months[next])
	m.cursor = 0
	m.sync()
}

// sync copies the displayed state from the service
func (m *ReportModel) sync() {
	m.months = m.report.Months()
	m.activeMonth = m.report.ActiveMonth()
	m.filterText = m.report.Filter()
	m.errMessage = m.report.ErrorMessage()
	m.view = m.report.View()
	m.rows = FlattenView(m.view)
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

// SelectedRow returns the row under the cursor
func (m ReportModel) SelectedRow() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

// View implements tea.Model
func (m ReportModel) View() string {
	var b strings.Builder

	title := "Report"
	switch {
	case m.filterText != "":
		title = fmt.Sprintf("Days matching '%s'", m.filterText)
	case m.activeMonth != "":
		title = fmt.Sprintf("Report for %s", m.activeMonth)
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if m.busy && len(m.months) == 0 {
		b.WriteString("Loading...")
		return b.String()
	}

	if len(m.months) > 0 {
		b.WriteString(RenderMonthStrip(m.months, m.activeMonth, m.styles))
		b.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		switch {
		case len(m.months) == 0:
			b.WriteString(m.styles.StatLabel.Render("No reports available"))
		case m.filterText != "":
			b.WriteString(m.styles.StatLabel.Render("No days match the filter"))
		default:
			b.WriteString(m.styles.StatLabel.Render("No entries for this month"))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(RenderReportTable(m.view, m.styles, m.width, m.cursor))
	}

	switch m.mode {
	case reportModeEditStart, reportModeEditEnd:
		row, _ := m.SelectedRow()
		label := "Start"
		if m.mode == reportModeEditEnd {
			label = "End"
		}
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("%s %s:", label, row.Entry.Date)))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case reportModeFilter:
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Filter:"))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.errMessage != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.errMessage))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		if m.isError {
			b.WriteString(m.styles.Warning.Render(m.notice))
		} else {
			b.WriteString(m.styles.StatLabel.Render(m.notice))
		}
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *ReportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadReports creates a command running the startup load
func (m ReportModel) loadReports() tea.Cmd {
	return func() tea.Msg {
		return reportsLoadedMsg{result: m.report.Load(m.ctx)}
	}
}

// refreshReports creates a command fetching the reports again
func (m ReportModel) refreshReports() tea.Cmd {
	return func() tea.Msg {
		return reportsRefreshedMsg{err: m.report.Refresh(m.ctx)}
	}
}

// IsInputMode returns true when the view is capturing keyboard input
func (m ReportModel) IsInputMode() bool {
	return m.mode != reportModeNormal
}

// Busy returns true while reports are being loaded or fetched
func (m ReportModel) Busy() bool {
	return m.busy
}
