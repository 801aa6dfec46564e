package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/hours/internal/cli"
	"github.com/xolan/hours/internal/storage"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore the report cache from a backup",
	Long: `Restore the cached report set from a backup.

Backups are kept by the file cache backend (cache_backend = "file"), which
saves the previous snapshot before every write. Each backup is listed with
the months it holds and when it was written.

By default, restores from the most recent backup (.bak.1).
Optionally specify a backup number to restore from (1-3).

Examples:
  hours restore       Restore from most recent backup
  hours restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

// restoreFromBackup lists the cache backups and restores the chosen one
func restoreFromBackup(args []string) {
	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	services, cfg, ok := openServices()
	if !ok {
		return
	}
	defer func() { _ = services.Close() }()

	fileStore, isFile := services.Store().(*storage.FileStore)
	if !isFile {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: The %s cache backend does not keep backups\n", cfg.CacheBackend)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Set cache_backend = \"file\" in the config file to enable backups")
		deps.Exit(1)
		return
	}

	backups, err := fileStore.Backups(cfg.CacheKey)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	found := false
	for _, backup := range backups {
		line := fmt.Sprintf("  %d: %s  %s", backup.Number, backup.ModTime.Format("2006-01-02 15:04"), describeBackup(backup.Path))
		if backup.Number == 1 {
			line += " (most recent)"
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
		found = found || backup.Number == backupNum
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	if !found {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", backupNum)
		deps.Exit(1)
		return
	}

	if err := fileStore.Restore(cfg.CacheKey, backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
}

// describeBackup summarises the months held by a backup file
func describeBackup(path string) string {
	c, err := storage.ReadSnapshotFile(path)
	if err != nil {
		return "(unreadable)"
	}
	if c.Len() == 0 {
		return "(empty)"
	}
	return fmt.Sprintf("%d %s: %s", c.Len(), cli.Pluralize("month", c.Len()), strings.Join(c.Months(), ", "))
}
