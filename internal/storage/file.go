package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// FileExt is the extension of the per-key files written by FileStore
const FileExt = ".json"

// FileStore is a Store keeping one file per key inside a directory.
// Every Set backs up the previous value and replaces the file atomically.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a FileStore rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file holding key
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+FileExt)
}

// Get implements Store
func (s *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set implements Store.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func (s *FileStore) Set(key, value string) error {
	path := s.Path(key)

	if err := CreateBackup(path); err != nil {
		return fmt.Errorf("backup %q: %w", key, err)
	}

	return writeFileAtomic(path, []byte(value))
}

// Backups lists the backups kept for key, most recent first
func (s *FileStore) Backups(key string) ([]BackupInfo, error) {
	return ListBackups(s.Path(key))
}

// Restore replaces the value of key with backup number n
func (s *FileStore) Restore(key string, n int) error {
	return RestoreBackup(s.Path(key), n)
}

// Close implements Store
func (s *FileStore) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	// Close temp file before rename
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}
