package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/hours/internal/config"
	"github.com/xolan/hours/internal/entry"
	"github.com/xolan/hours/internal/logging"
	"github.com/xolan/hours/internal/service"
	"github.com/xolan/hours/internal/storage"
	"github.com/xolan/hours/internal/tui/ui"
)

type stubFetcher struct {
	collection entry.MonthlyCollection
}

func (f stubFetcher) Fetch(ctx context.Context) (entry.MonthlyCollection, error) {
	return f.collection, nil
}

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.CacheBackend = storage.BackendMemory
	cfg.DefaultMonth = "2024-01"
	configPath := filepath.Join(t.TempDir(), "config.toml")

	fetcher := stubFetcher{collection: entry.NewMonthlyCollection().With("2024-01", []entry.Entry{
		{Date: "2024-01-01", Start: "09:00", End: "17:00", Hours: 8},
	})}
	return service.NewServicesWithStore(storage.NewMemoryStore(), fetcher, configPath, cfg, logging.Discard())
}

// loadedModel returns a sized model whose reports have been loaded
func loadedModel(t *testing.T) Model {
	t.Helper()
	model := New(context.Background(), setupTestServices(t))

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := newModel.(Model)
	newModel, _ = m.Update(m.reportView.Init()())
	return newModel.(Model)
}

func TestNew(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	if model.activeTab != TabReport {
		t.Errorf("expected initial tab to be Report, got %d", model.activeTab)
	}
	if model.services == nil {
		t.Error("expected services to be set")
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
}

func TestNew_ThemeFromConfig(t *testing.T) {
	services := setupTestServices(t)
	cfg := services.Config.Get()
	cfg.Theme = "nord"
	services = service.NewServicesWithStore(services.Store(), stubFetcher{}, services.Config.GetPath(), cfg, logging.Discard())

	model := New(context.Background(), services)
	if model.themeProvider.CurrentName() != "nord" {
		t.Errorf("expected theme nord, got %q", model.themeProvider.CurrentName())
	}
}

func TestNew_UnknownTheme(t *testing.T) {
	services := setupTestServices(t)
	cfg := services.Config.Get()
	cfg.Theme = "no-such-theme"
	services = service.NewServicesWithStore(services.Store(), stubFetcher{}, services.Config.GetPath(), cfg, logging.Discard())

	model := New(context.Background(), services)
	if !model.status.IsError || !strings.Contains(model.status.Text, "Unknown theme 'no-such-theme'") {
		t.Errorf("expected unknown theme status, got %+v", model.status)
	}
}

func TestInit(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	if cmd := model.Init(); cmd == nil {
		t.Error("expected Init to return a command")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m := newModel.(Model)

	if m.width != 100 {
		t.Errorf("expected width 100, got %d", m.width)
	}
	if m.height != 50 {
		t.Errorf("expected height 50, got %d", m.height)
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestUpdate_HelpKey(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m := newModel.(Model)
	if !m.showHelp {
		t.Error("expected showHelp to be true after pressing ?")
	}
	m.width = 80
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help overlay in view")
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newModel.(Model)
	if m.showHelp {
		t.Error("expected showHelp to be false after pressing ? again")
	}
}

func TestUpdate_TabNavigation(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	m := newModel.(Model)
	if m.activeTab != TabConfig {
		t.Errorf("expected TabConfig after pressing tab, got %d", m.activeTab)
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = newModel.(Model)
	if m.activeTab != TabReport {
		t.Errorf("expected TabReport (wraparound) after tab, got %d", m.activeTab)
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = newModel.(Model)
	if m.activeTab != TabConfig {
		t.Errorf("expected TabConfig (wraparound) after shift+tab, got %d", m.activeTab)
	}
}

func TestUpdate_DirectTabKeys(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	tests := []struct {
		key      rune
		expected Tab
	}{
		{'2', TabConfig},
		{'1', TabReport},
	}

	for _, tt := range tests {
		newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
		model = newModel.(Model)

		if model.activeTab != tt.expected {
			t.Errorf("pressing %c: expected tab %d, got %d", tt.key, tt.expected, model.activeTab)
		}
	}
}

func TestInitCurrentView(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	model.activeTab = TabReport
	if cmd := model.initCurrentView(); cmd != nil {
		t.Error("expected no reload for the report tab")
	}

	model.activeTab = TabConfig
	if cmd := model.initCurrentView(); cmd == nil {
		t.Error("expected config tab to reload")
	}
}

func TestView_Loading(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	if view := model.View(); !strings.Contains(view, "Loading") {
		t.Errorf("expected 'Loading...' when width is 0, got %q", view)
	}
}

func TestView_WithReports(t *testing.T) {
	m := loadedModel(t)
	view := m.View()

	for _, want := range []string{"Report", "Config", "2024-01-01", "8.0h", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestView_ConfigTab(t *testing.T) {
	m := loadedModel(t)

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = newModel.(Model)
	newModel, _ = m.Update(cmd())
	m = newModel.(Model)

	if !strings.Contains(m.View(), "Configuration") {
		t.Errorf("expected config view, got:\n%s", m.View())
	}
}

func TestRenderTabs(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))
	tabs := model.renderTabs()

	for _, name := range tabNames {
		if !strings.Contains(tabs, name) {
			t.Errorf("expected tab name %s in rendered tabs", name)
		}
	}
}

func TestRenderStatusBar(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))
	model.width = 80

	statusBar := model.renderStatusBar()
	for _, want := range []string{"1-2", "quit", "?", "month", "filter", "fetch"} {
		if !strings.Contains(statusBar, want) {
			t.Errorf("expected %q in status bar", want)
		}
	}

	model.activeTab = TabConfig
	if !strings.Contains(model.renderStatusBar(), "themes") {
		t.Error("expected 'themes' in status bar for config tab")
	}
}

func TestRenderKeyHelp(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))
	help := model.renderKeyHelp("q", "quit")

	if !strings.Contains(help, "q") || !strings.Contains(help, "quit") {
		t.Errorf("unexpected key help %q", help)
	}
}

func TestTabNames(t *testing.T) {
	expected := []string{"Report", "Config"}
	if len(tabNames) != len(expected) {
		t.Fatalf("expected %d tab names, got %d", len(expected), len(tabNames))
	}
	for i, name := range expected {
		if tabNames[i] != name {
			t.Errorf("expected tab name %d to be %s, got %s", i, name, tabNames[i])
		}
	}
}

func TestUpdate_InputModeBlocksGlobalKeys(t *testing.T) {
	m := loadedModel(t)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = newModel.(Model)
	if !m.isCapturingKeys() {
		t.Fatal("expected filter input to capture keys")
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = newModel.(Model)

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = newModel.(Model)
	if m.activeTab != TabReport {
		t.Errorf("expected to stay on TabReport while typing, got %d", m.activeTab)
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = newModel.(Model)
	if m.activeTab != TabReport {
		t.Errorf("expected Tab to NOT switch views while typing, got %d", m.activeTab)
	}

	if m.services.Report.Filter() != "q2" {
		t.Errorf("expected filter 'q2', got %q", m.services.Report.Filter())
	}
}

func TestUpdate_ThemeChangeRequest(t *testing.T) {
	m := loadedModel(t)

	newModel, cmd := m.Update(ui.ThemeChangeRequestMsg{ThemeName: "nord"})
	m = newModel.(Model)
	if m.themeProvider.CurrentName() != "nord" {
		t.Errorf("expected theme nord, got %q", m.themeProvider.CurrentName())
	}
	if cmd == nil {
		t.Fatal("expected save command")
	}

	status, ok := cmd().(ui.StatusMsg)
	if !ok {
		t.Fatal("expected StatusMsg from save command")
	}
	if status.IsError {
		t.Errorf("unexpected error status: %s", status.Text)
	}

	cfg, err := config.Load(m.services.Config.GetPath())
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if cfg.Theme != "nord" {
		t.Errorf("expected saved theme nord, got %q", cfg.Theme)
	}

	newModel, _ = m.Update(status)
	m = newModel.(Model)
	if !strings.Contains(m.View(), "Theme set to nord") {
		t.Error("expected status text in view")
	}
}

func TestSaveThemeConfig_Error(t *testing.T) {
	services := setupTestServices(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	services = service.NewServicesWithStore(services.Store(), stubFetcher{}, filepath.Join(blocker, "config.toml"), services.Config.Get(), logging.Discard())

	model := New(context.Background(), services)
	status, ok := model.saveThemeConfig("nord")().(ui.StatusMsg)
	if !ok {
		t.Fatal("expected StatusMsg")
	}
	if !status.IsError {
		t.Error("expected error status when the config cannot be written")
	}
}
