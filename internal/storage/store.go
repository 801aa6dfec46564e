// Package storage provides the durable key-value cache that holds the report
// snapshot between runs.
package storage

import (
	"errors"
	"fmt"
)

// Backend names accepted by Open
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown cache backend")

// Store is a string-keyed get/set store. Set overwrites unconditionally.
type Store interface {
	// Get returns the value stored under key, or ok == false when the key was never set.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Close releases the underlying resources.
	Close() error
}

// Open opens the store for backend at path. For the file backend path is a
// directory; for bolt and sqlite it is the database file. The memory backend
// ignores path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendBolt:
		return NewBoltStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendFile:
		return NewFileStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// DefaultName returns the file or directory name used for backend inside the
// cache directory.
func DefaultName(backend string) string {
	switch backend {
	case BackendBolt:
		return "cache.bolt"
	case BackendSQLite:
		return "cache.db"
	case BackendFile:
		return "cache"
	}
	return ""
}
