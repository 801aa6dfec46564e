package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/hours/internal/osutil"
	"github.com/xolan/hours/internal/storage"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RemoteURL != DefaultRemoteURL {
		t.Errorf("DefaultConfig().RemoteURL = %q, expected %q", cfg.RemoteURL, DefaultRemoteURL)
	}
	if cfg.CacheBackend != storage.BackendBolt {
		t.Errorf("DefaultConfig().CacheBackend = %q, expected %q", cfg.CacheBackend, storage.BackendBolt)
	}
	if cfg.CacheKey != "monthlyReports" {
		t.Errorf("DefaultConfig().CacheKey = %q, expected %q", cfg.CacheKey, "monthlyReports")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("DefaultConfig().LogLevel = %q, expected %q", cfg.LogLevel, "info")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() is invalid: %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name            string
		configContent   string
		expectedBackend string
		expectedURL     string
		expectedMonth   string
	}{
		{
			name: "all fields set",
			configContent: `remote_url = "https://reports.example.com/employee"
cache_backend = "sqlite"
cache_path = "/tmp/hours.db"
cache_key = "reports"
default_month = "2024-03"
theme = "nord"
log_level = "debug"
log_file = "/tmp/hours.log"`,
			expectedBackend: "sqlite",
			expectedURL:     "https://reports.example.com/employee",
			expectedMonth:   "2024-03",
		},
		{
			name:            "partial config keeps defaults",
			configContent:   `cache_backend = "file"`,
			expectedBackend: "file",
			expectedURL:     DefaultRemoteURL,
			expectedMonth:   "",
		},
		{
			name:            "mixed case backend normalized",
			configContent:   `cache_backend = "Bolt"`,
			expectedBackend: "bolt",
			expectedURL:     DefaultRemoteURL,
			expectedMonth:   "",
		},
		{
			name:            "empty file",
			configContent:   ``,
			expectedBackend: "bolt",
			expectedURL:     DefaultRemoteURL,
			expectedMonth:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(createTempConfigFile(t, tt.configContent))
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if cfg.CacheBackend != tt.expectedBackend {
				t.Errorf("CacheBackend = %q, expected %q", cfg.CacheBackend, tt.expectedBackend)
			}
			if cfg.RemoteURL != tt.expectedURL {
				t.Errorf("RemoteURL = %q, expected %q", cfg.RemoteURL, tt.expectedURL)
			}
			if cfg.DefaultMonth != tt.expectedMonth {
				t.Errorf("DefaultMonth = %q, expected %q", cfg.DefaultMonth, tt.expectedMonth)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.toml"))
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
	}{
		{"malformed TOML", `cache_backend = "bolt`},
		{"invalid syntax", `this is not valid TOML at all`},
		{"missing quotes", `cache_backend = bolt`},
		{"unknown key", `cache_size = 10`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(createTempConfigFile(t, tt.configContent))
			if err == nil {
				t.Fatal("Load() should return error for invalid TOML")
			}
			if !strings.Contains(err.Error(), "failed to parse config file") {
				t.Errorf("Error message should mention parsing failure, got: %v", err)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name           string
		configContent  string
		errorSubstring string
	}{
		{"unknown backend", `cache_backend = "redis"`, "invalid cache_backend"},
		{"bad url scheme", `remote_url = "ftp://example.com"`, "invalid remote_url"},
		{"url without host", `remote_url = "http://"`, "invalid remote_url"},
		{"bad month", `default_month = "2024-13"`, "invalid default_month"},
		{"month with day", `default_month = "2024-01-01"`, "invalid default_month"},
		{"empty cache key", `cache_key = ""`, "invalid cache_key"},
		{"bad log level", `log_level = "trace"`, "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(createTempConfigFile(t, tt.configContent))
			if err == nil {
				t.Fatal("Load() should return error")
			}
			if !strings.Contains(err.Error(), tt.errorSubstring) {
				t.Errorf("expected error containing %q, got: %v", tt.errorSubstring, err)
			}
		})
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "does_not_exist.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error for non-existent file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadOrDefault() = %+v, expected defaults", cfg)
	}
}

func TestLoadOrDefault_ExistingInvalidFile(t *testing.T) {
	_, err := LoadOrDefault(createTempConfigFile(t, `cache_backend = "tape"`))
	if err == nil {
		t.Fatal("LoadOrDefault() should return error for invalid config file")
	}
	if !strings.Contains(err.Error(), "invalid cache_backend") {
		t.Errorf("Error should mention invalid cache_backend, got: %v", err)
	}
}

func TestLoadOrDefault_StatError(t *testing.T) {
	parentDir := filepath.Join(t.TempDir(), "parent")
	if err := os.Mkdir(parentDir, 0755); err != nil {
		t.Fatalf("Failed to create parent directory: %v", err)
	}
	if err := os.Chmod(parentDir, 0000); err != nil {
		t.Skipf("Cannot change directory permissions: %v", err)
	}
	defer func() { _ = os.Chmod(parentDir, 0755) }()

	// Root ignores directory permissions
	if _, err := os.Stat(filepath.Join(parentDir, "config.toml")); os.IsNotExist(err) {
		t.Skip("directory permissions are not enforced")
	}

	if _, err := LoadOrDefault(filepath.Join(parentDir, "config.toml")); err == nil {
		t.Error("LoadOrDefault() should return error when os.Stat fails with permission error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRemoteURL:    "https://example.com/reports",
		EnvCacheBackend: "SQLITE",
		EnvLogLevel:     "warn",
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv returned unexpected error: %v", err)
	}

	if cfg.RemoteURL != "https://example.com/reports" {
		t.Errorf("RemoteURL = %q", cfg.RemoteURL)
	}
	if cfg.CacheBackend != BackendSQLite {
		t.Errorf("CacheBackend = %q, expected %q", cfg.CacheBackend, BackendSQLite)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	// Unset variables keep their values
	if cfg.CacheKey != DefaultCacheKey {
		t.Errorf("CacheKey = %q", cfg.CacheKey)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvCacheBackend {
			return "floppy"
		}
		return ""
	})
	if err == nil || !strings.Contains(err.Error(), "invalid cache_backend") {
		t.Errorf("expected invalid cache_backend error, got %v", err)
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	content := GenerateSampleConfig()

	for _, expected := range []string{
		"# hours configuration file",
		"# remote_url",
		"# cache_backend",
		"# cache_path",
		"# cache_key",
		"# default_month",
		"# theme",
		"# log_level",
		"# log_file",
	} {
		if !strings.Contains(content, expected) {
			t.Errorf("GenerateSampleConfig() missing expected content: %q", expected)
		}
	}

	// The sample is fully commented out, so it decodes to the defaults
	cfg, err := Load(createTempConfigFile(t, content))
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("sample config = %+v, expected defaults", cfg)
	}
}

func TestGetConfigPath(t *testing.T) {
	defer osutil.ResetProvider()
	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
	})

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, AppName, ConfigFile) {
		t.Errorf("GetConfigPath() = %q", path)
	}
}

func TestGetConfigPath_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return "", os.ErrPermission },
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when UserConfigDir fails")
	}
}

func TestGetCacheDir_MkdirAllError(t *testing.T) {
	defer osutil.ResetProvider()
	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userCacheDirFn: func() (string, error) { return tmpDir, nil },
		mkdirAllFn:     func(path string, perm os.FileMode) error { return os.ErrPermission },
	})

	if _, err := GetCacheDir(); err == nil {
		t.Error("GetCacheDir() should return error when MkdirAll fails")
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	userCacheDirFn  func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) UserCacheDir() (string, error) {
	if m.userCacheDirFn != nil {
		return m.userCacheDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return os.MkdirAll(path, perm)
}
