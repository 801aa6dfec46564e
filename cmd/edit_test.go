package cmd

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestEditEntry_Start(t *testing.T) {
	srv, _ := reportServer(t, http.StatusOK, reportsJSON)
	configPath := writeTestConfig(t, "bolt", srv.URL, "")

	d, stdout, stderr := testDeps(configPath)
	SetDeps(d)
	defer ResetDeps()

	editEntry(context.Background(), "2024-01-02", "10:00", "")

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Updated 2024-01-02  10:00  17:00    7.0h") {
		t.Errorf("Unexpected output: %q", stdout.String())
	}

	// The edit is read back from the cache
	stdout.Reset()
	showReport(context.Background(), []string{"2024-01"}, "")
	if !strings.Contains(stdout.String(), "Total: 15.0h") {
		t.Errorf("Expected edited total, got: %s", stdout.String())
	}
}

func TestEditEntry_StartAndEnd(t *testing.T) {
	srv, _ := reportServer(t, http.StatusOK, reportsJSON)
	configPath := writeTestConfig(t, "file", srv.URL, "")

	d, stdout, _ := testDeps(configPath)
	SetDeps(d)
	defer ResetDeps()

	editEntry(context.Background(), "2024-02-01", "08:30", "18:00")

	if !strings.Contains(stdout.String(), "08:30  18:00    9.5h") {
		t.Errorf("Unexpected output: %q", stdout.String())
	}
}

func TestEditEntry_Errors(t *testing.T) {
	srv, _ := reportServer(t, http.StatusOK, reportsJSON)

	tests := []struct {
		name     string
		date     string
		start    string
		end      string
		expected []string
	}{
		{"no flags", "2024-01-01", "", "", []string{"At least one flag"}},
		{"unknown date", "2024-03-01", "09:00", "", []string{"No entry dated '2024-03-01'", "hours show 2024-03"}},
		{"invalid start", "2024-01-01", "9:00", "", []string{"Invalid start time format. Expected HH:MM", "start is '9:00'"}},
		{"invalid end", "2024-01-01", "", "24:00", []string{"Invalid end time format. Expected HH:MM", "end is '24:00'"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeTestConfig(t, "memory", srv.URL, "")
			exitCode := 0
			d, stdout, stderr := testDeps(configPath)
			d.Exit = func(code int) { exitCode = code }
			SetDeps(d)
			defer ResetDeps()

			editEntry(context.Background(), tt.date, tt.start, tt.end)

			if exitCode != 1 {
				t.Errorf("Expected exit code 1, got %d", exitCode)
			}
			if stdout.Len() > 0 {
				t.Errorf("Expected no stdout output, got: %s", stdout.String())
			}
			for _, want := range tt.expected {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("Expected %q in stderr, got: %s", want, stderr.String())
				}
			}
		})
	}
}

func TestEditEntry_InvalidEndKeepsValidStart(t *testing.T) {
	srv, _ := reportServer(t, http.StatusOK, reportsJSON)
	configPath := writeTestConfig(t, "sqlite", srv.URL, "")

	d, stdout, _ := testDeps(configPath)
	SetDeps(d)
	defer ResetDeps()

	editEntry(context.Background(), "2024-01-01", "08:00", "bad")

	stdout.Reset()
	showReport(context.Background(), []string{"2024-01"}, "")
	if !strings.Contains(stdout.String(), "2024-01-01  08:00  17:00") {
		t.Errorf("Expected the start edit to be saved, got: %s", stdout.String())
	}
}
