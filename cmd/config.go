package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/hours/internal/config"
	"github.com/xolan/hours/internal/service"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for hours.

Shows the configuration file location, whether it exists, and all current
settings. Values come from the config file merged with defaults, then from
HOURS_* environment variables (also read from a .env file in the working
directory).

By default, hours works without any configuration file:
  - remote_url:    http://localhost:3001/employee
  - cache_backend: bolt
  - cache_key:     monthlyReports
  - log_level:     info

Environment overrides:
  HOURS_REMOTE_URL, HOURS_CACHE_BACKEND, HOURS_CACHE_PATH,
  HOURS_LOG_LEVEL, HOURS_LOG_FILE

Configuration file location:
  ~/.config/hours/config.toml        Linux
  %APPDATA%\hours\config.toml        Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	cfg, configPath, ok := loadConfig()
	if !ok {
		return
	}

	svc := service.NewConfigService(configPath, cfg)

	cachePath, err := service.CachePath(cfg)
	if err != nil {
		cachePath = fmt.Sprintf("(unavailable: %v)", err)
	} else if cachePath == "" {
		cachePath = "(in memory)"
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for hours")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", configPath)
	if svc.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Remote URL:      %s\n", cfg.RemoteURL)
	_, _ = fmt.Fprintf(deps.Stdout, "Cache Backend:   %s\n", cfg.CacheBackend)
	_, _ = fmt.Fprintf(deps.Stdout, "Cache Path:      %s\n", cachePath)
	_, _ = fmt.Fprintf(deps.Stdout, "Cache Key:       %s\n", cfg.CacheKey)
	_, _ = fmt.Fprintf(deps.Stdout, "Default Month:   %s\n", orDefault(cfg.DefaultMonth))
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s\n", orDefault(cfg.Theme))
	_, _ = fmt.Fprintf(deps.Stdout, "Log Level:       %s\n", cfg.LogLevel)
	_, _ = fmt.Fprintf(deps.Stdout, "Log File:        %s\n", orDefault(cfg.LogFile))
	_, _ = fmt.Fprintln(deps.Stdout)

	if !svc.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'hours config init' to create a commented config file.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig writes the sample config file
func initConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	svc := service.NewConfigService(configPath, config.DefaultConfig())
	if err := svc.Init(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", configPath)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}

func orDefault(value string) string {
	if value == "" {
		return "(default)"
	}
	return value
}
