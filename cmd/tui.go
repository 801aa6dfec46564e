package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xolan/hours/internal/config"
	"github.com/xolan/hours/internal/logging"
	"github.com/xolan/hours/internal/service"
	"github.com/xolan/hours/internal/tui"
)

// LogFile is the name of the TUI log in the cache directory
const LogFile = "hours.log"

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for hours.

Running 'hours' without a command does the same.

Views available:
  - Report: Browse a month, filter days by date, and correct start/end times
  - Config: View the effective configuration and pick a theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-2: Jump to specific view
  - [ and ]: Previous/next month
  - s/e: Edit the start/end time of the selected day
  - /: Filter days by date
  - r: Fetch the reports again
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI initializes and runs the TUI application.
// The TUI owns the terminal, so logs go to a file instead of stderr.
func runTUI() {
	cfg, configPath, ok := loadConfig()
	if !ok {
		return
	}

	logger, closer := openLogFile(cfg)
	defer func() { _ = closer.Close() }()

	services, err := service.NewServices(cfg, configPath, logger)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open the report cache")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check cache_backend and cache_path, or close other running hours processes")
		deps.Exit(1)
		return
	}
	defer func() { _ = services.Close() }()

	if err := tui.Run(context.Background(), services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to run the terminal UI: %v\n", err)
		deps.Exit(1)
		return
	}
}

// openLogFile opens the TUI log at log_file, or hours.log in the cache
// directory. When the log cannot be opened a warning is printed and logging
// is discarded.
func openLogFile(cfg config.Config) (*slog.Logger, io.Closer) {
	path := cfg.LogFile
	if path == "" {
		dir, err := config.GetCacheDir()
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: Logging disabled: %v\n", err)
			return logging.Discard(), io.NopCloser(nil)
		}
		path = filepath.Join(dir, LogFile)
	}

	logger, closer, err := logging.Open(path, cfg.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Logging disabled: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}
