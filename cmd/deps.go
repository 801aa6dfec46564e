package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/xolan/hours/internal/config"
	"github.com/xolan/hours/internal/logging"
	"github.com/xolan/hours/internal/service"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Exit       func(code int)
	Getenv     func(key string) string
	ConfigPath func() (string, error)
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Exit:       os.Exit,
		Getenv:     os.Getenv,
		ConfigPath: config.GetConfigPath,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// loadConfig reads the config file and applies HOURS_* environment overrides.
// Errors are reported to stderr; ok is false when the command must stop.
func loadConfig() (cfg config.Config, configPath string, ok bool) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return cfg, "", false
	}

	cfg, err = config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", configPath)
		deps.Exit(1)
		return cfg, configPath, false
	}

	if err := cfg.ApplyEnv(deps.Getenv); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid environment override")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check the HOURS_* environment variables and your .env file")
		deps.Exit(1)
		return cfg, configPath, false
	}

	return cfg, configPath, true
}

// openServices loads the configuration and opens the services with a logger
// writing to stderr. The caller must Close the returned services.
func openServices() (*service.Services, config.Config, bool) {
	cfg, configPath, ok := loadConfig()
	if !ok {
		return nil, cfg, false
	}

	logger := logging.New(deps.Stderr, cfg.LogLevel)
	services, err := service.NewServices(cfg, configPath, logger)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open the report cache")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check cache_backend and cache_path, or close other running hours processes")
		deps.Exit(1)
		return nil, cfg, false
	}

	return services, cfg, true
}
