package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xolan/hours/internal/osutil"
	"github.com/xolan/hours/internal/storage"
)

const (
	// AppName is the application name used for config and cache directories
	AppName = "hours"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"

	// DefaultRemoteURL is the report source used when none is configured
	DefaultRemoteURL = "http://localhost:3001/employee"
	// DefaultCacheKey is the key the report snapshot is stored under
	DefaultCacheKey = "monthlyReports"
)

// Environment variables that override config file values
const (
	EnvRemoteURL    = "HOURS_REMOTE_URL"
	EnvCacheBackend = "HOURS_CACHE_BACKEND"
	EnvCachePath    = "HOURS_CACHE_PATH"
	EnvLogLevel     = "HOURS_LOG_LEVEL"
	EnvLogFile      = "HOURS_LOG_FILE"
)

var (
	validBackends  = []string{storage.BackendBolt, storage.BackendSQLite, storage.BackendFile, storage.BackendMemory}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Config represents the application configuration
type Config struct {
	// RemoteURL is the endpoint the monthly reports are fetched from
	RemoteURL string `toml:"remote_url"`
	// CacheBackend selects the durable cache store (bolt, sqlite, file or memory)
	CacheBackend string `toml:"cache_backend"`
	// CachePath overrides the cache location; empty uses the user cache directory
	CachePath string `toml:"cache_path"`
	// CacheKey is the key the report snapshot is stored under
	CacheKey string `toml:"cache_key"`
	// DefaultMonth is the month (YYYY-MM) shown when reports come from the remote source
	DefaultMonth string `toml:"default_month"`
	// Theme is the bubbletint theme ID used by the TUI
	Theme string `toml:"theme"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
	// LogFile is where the TUI writes its log; empty uses hours.log in the cache directory
	LogFile string `toml:"log_file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RemoteURL:    DefaultRemoteURL,
		CacheBackend: storage.BackendBolt,
		CachePath:    "",
		CacheKey:     DefaultCacheKey,
		DefaultMonth: "",
		Theme:        "",
		LogLevel:     "info",
		LogFile:      "",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	appDir, err := osutil.AppDir(osutil.Provider.UserConfigDir, AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, ConfigFile), nil
}

// GetCacheDir returns the directory holding the cache and log files.
// Creates the directory if it doesn't exist.
func GetCacheDir() (string, error) {
	return osutil.AppDir(osutil.Provider.UserCacheDir, AppName)
}

// Load reads and validates the config file at path.
// Values missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("failed to parse config file: unknown keys: %s", strings.Join(keys, ", "))
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file at path, or returns DefaultConfig when
// the file does not exist. An existing but invalid file is an error.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// ApplyEnv overrides config values with the HOURS_* environment variables
// that are set, then normalizes and validates the result.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	overrides := map[string]*string{
		EnvRemoteURL:    &c.RemoteURL,
		EnvCacheBackend: &c.CacheBackend,
		EnvCachePath:    &c.CachePath,
		EnvLogLevel:     &c.LogLevel,
		EnvLogFile:      &c.LogFile,
	}
	for name, field := range overrides {
		if v := getenv(name); v != "" {
			*field = v
		}
	}

	c.Normalize()
	return c.Validate()
}

// Normalize lowercases enum values and trims whitespace
func (c *Config) Normalize() {
	c.RemoteURL = strings.TrimSpace(c.RemoteURL)
	c.CacheBackend = strings.ToLower(strings.TrimSpace(c.CacheBackend))
	c.CachePath = strings.TrimSpace(c.CachePath)
	c.DefaultMonth = strings.TrimSpace(c.DefaultMonth)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFile = strings.TrimSpace(c.LogFile)
}

// Validate checks every field and returns the first problem found
func (c Config) Validate() error {
	if c.RemoteURL != "" {
		u, err := url.Parse(c.RemoteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid remote_url %q: must be an http or https URL", c.RemoteURL)
		}
	}

	if !contains(validBackends, c.CacheBackend) {
		return fmt.Errorf("invalid cache_backend %q: must be one of %s", c.CacheBackend, strings.Join(validBackends, ", "))
	}

	if c.CacheKey == "" {
		return errors.New("invalid cache_key: must not be empty")
	}

	if c.DefaultMonth != "" {
		if _, err := time.Parse("2006-01", c.DefaultMonth); err != nil {
			return fmt.Errorf("invalid default_month %q: expected YYYY-MM", c.DefaultMonth)
		}
	}

	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	return nil
}

// GenerateSampleConfig returns a commented sample config file
func GenerateSampleConfig() string {
	return `# hours configuration file
# All settings are optional; the values shown are the defaults.

# Endpoint returning the monthly reports
# remote_url = "http://localhost:3001/employee"

# Durable cache backend: "bolt", "sqlite", "file" or "memory"
# cache_backend = "bolt"

# Cache location (file for bolt/sqlite, directory for file); empty uses the user cache directory
# cache_path = ""

# Key the report snapshot is stored under
# cache_key = "monthlyReports"

# Month shown after reports are fetched from the remote source (YYYY-MM)
# default_month = "2024-01"

# TUI theme (bubbletint ID, e.g. "dracula", "nord")
# theme = "dracula"

# Log level: "debug", "info", "warn" or "error"
# log_level = "info"

# Log file used by the TUI; empty uses hours.log in the cache directory
# log_file = ""
`
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
