package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketCache = "cache" // key: cache key -> raw value

// BoltStore is a Store backed by a bbolt database file.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens or creates the bbolt database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt cache: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketCache))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bolt bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Get implements Store
func (s *BoltStore) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(boltBucketCache)).Get([]byte(key))
		if data == nil {
			return nil
		}
		// data is only valid inside the transaction
		value, ok = string(data), true
		return nil
	})
	return value, ok, err
}

// Set implements Store
func (s *BoltStore) Set(key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketCache)).Put([]byte(key), []byte(value))
	})
}

// Close implements Store
func (s *BoltStore) Close() error {
	return s.db.Close()
}
