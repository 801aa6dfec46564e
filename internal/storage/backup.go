package storage

import (
	"fmt"
	"os"
	"time"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupPath returns the path to backup number n of the file at path.
// Backup files are named <path>.bak.N; lower numbers are more recent.
func BackupPath(path string, n int) string {
	return fmt.Sprintf("%s%s.%d", path, BackupSuffix, n)
}

// rotateBackups shifts existing backup files to make room for a new backup.
// It renames .bak.1 -> .bak.2, .bak.2 -> .bak.3, and deletes the oldest .bak.3
// if it exists. Missing files are skipped.
func rotateBackups(path string) error {
	if err := os.Remove(BackupPath(path, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(path, i), BackupPath(path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// CreateBackup rotates existing backups and copies the file at path to .bak.1.
// If the file doesn't exist, no backup is created and no error is returned.
func CreateBackup(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(path); err != nil {
		return err
	}

	return copyFile(path, BackupPath(path, 1))
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number  int       // The backup number (1 is the most recent)
	Path    string    // The full path to the backup file
	ModTime time.Time // When the backed up snapshot was written
}

// ListBackups returns the existing backups of the file at path sorted by recency.
// Returns an empty slice if no backups exist.
func ListBackups(path string) ([]BackupInfo, error) {
	backups := []BackupInfo{}

	for i := 1; i <= MaxBackupCount; i++ {
		backupPath := BackupPath(path, i)
		info, err := os.Stat(backupPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		backups = append(backups, BackupInfo{Number: i, Path: backupPath, ModTime: info.ModTime()})
	}

	return backups, nil
}

// RestoreBackup copies backup number n over the file at path.
// The current file is backed up first, so a restore can itself be undone.
func RestoreBackup(path string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	backupPath := BackupPath(path, n)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	// Read before rotating, since rotation renames the backup being restored
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return err
	}

	if err := CreateBackup(path); err != nil {
		return err
	}

	return writeFileAtomic(path, data)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = sourceFile.Close() }()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = destFile.Close() }()

	_, err = destFile.ReadFrom(sourceFile)
	return err
}
