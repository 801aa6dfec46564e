package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xolan/hours/internal/entry"
)

// emptySnapshots are stored values that count as "no snapshot". "undefined"
// is what a browser-side cache writes when asked to serialize nothing.
var emptySnapshots = []string{"", "null", "undefined"}

// LoadSnapshot reads the collection stored under key.
// found is false when nothing usable is stored. A value that is present but
// cannot be decoded is returned as an error.
func LoadSnapshot(s Store, key string) (c entry.MonthlyCollection, found bool, err error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return entry.NewMonthlyCollection(), false, fmt.Errorf("read snapshot: %w", err)
	}
	if !ok || isEmptySnapshot(raw) {
		return entry.NewMonthlyCollection(), false, nil
	}

	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return entry.NewMonthlyCollection(), false, fmt.Errorf("decode snapshot: %w", err)
	}
	return c, true, nil
}

// SaveSnapshot stores the full collection under key, replacing any previous snapshot
func SaveSnapshot(s Store, key string, c entry.MonthlyCollection) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.Set(key, string(data)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshotFile decodes a snapshot written to disk, such as a FileStore backup.
// An empty file decodes to an empty collection.
func ReadSnapshotFile(path string) (entry.MonthlyCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entry.NewMonthlyCollection(), err
	}
	if isEmptySnapshot(string(data)) {
		return entry.NewMonthlyCollection(), nil
	}

	var c entry.MonthlyCollection
	if err := json.Unmarshal(data, &c); err != nil {
		return entry.NewMonthlyCollection(), fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

func isEmptySnapshot(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, empty := range emptySnapshots {
		if trimmed == empty {
			return true
		}
	}
	return false
}
