package cmd

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestFetchReports_Success(t *testing.T) {
	srv, requests := reportServer(t, http.StatusOK, reportsJSON)
	configPath := writeTestConfig(t, "bolt", srv.URL, "")

	d, stdout, stderr := testDeps(configPath)
	SetDeps(d)
	defer ResetDeps()

	fetchReports(context.Background())

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Fetched 2 months from "+srv.URL) {
		t.Errorf("Unexpected output: %s", stdout.String())
	}
	if requests.Load() != 1 {
		t.Errorf("Expected 1 request, got %d", requests.Load())
	}
}

func TestFetchReports_ReplacesEditedCache(t *testing.T) {
	srv, requests := reportServer(t, http.StatusOK, reportsJSON)
	configPath := writeTestConfig(t, "bolt", srv.URL, "")

	d, stdout, _ := testDeps(configPath)
	SetDeps(d)
	defer ResetDeps()

	editEntry(context.Background(), "2024-01-01", "06:00", "")
	fetchReports(context.Background())

	stdout.Reset()
	showReport(context.Background(), []string{"2024-01"}, "")
	if !strings.Contains(stdout.String(), "2024-01-01  09:00  17:00") {
		t.Errorf("Expected the fetched entry to replace the edit, got: %s", stdout.String())
	}
	if requests.Load() != 2 {
		t.Errorf("Expected 2 requests, got %d", requests.Load())
	}
}

func TestFetchReports_Failure(t *testing.T) {
	srv, _ := reportServer(t, http.StatusNotFound, "")
	configPath := writeTestConfig(t, "memory", srv.URL, "")

	exitCode := 0
	d, _, stderr := testDeps(configPath)
	d.Exit = func(code int) { exitCode = code }
	SetDeps(d)
	defer ResetDeps()

	fetchReports(context.Background())

	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	output := stderr.String()
	if !strings.Contains(output, "Failed to fetch reports") || !strings.Contains(output, "404") {
		t.Errorf("Unexpected stderr: %s", output)
	}
}
