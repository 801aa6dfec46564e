package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MonthlyCollection maps month keys (YYYY-MM) to the entries recorded in that month.
// Month keys keep their insertion order, which is also the order used when the
// collection is encoded to or decoded from a JSON object.
//
// A MonthlyCollection is treated as a value: methods never modify the receiver,
// and callers must not modify the slices returned by Get.
type MonthlyCollection struct {
	keys   []string
	months map[string][]Entry
}

// NewMonthlyCollection creates an empty collection
func NewMonthlyCollection() MonthlyCollection {
	return MonthlyCollection{months: map[string][]Entry{}}
}

// Months returns the month keys in insertion order
func (c MonthlyCollection) Months() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Get returns the entries stored under month and whether the month exists
func (c MonthlyCollection) Get(month string) ([]Entry, bool) {
	entries, ok := c.months[month]
	return entries, ok
}

// Has reports whether month is present in the collection
func (c MonthlyCollection) Has(month string) bool {
	_, ok := c.months[month]
	return ok
}

// Len returns the number of months in the collection
func (c MonthlyCollection) Len() int {
	return len(c.keys)
}

// IsEmpty returns true if the collection holds no months
func (c MonthlyCollection) IsEmpty() bool {
	return len(c.keys) == 0
}

// With returns a new collection where month holds entries.
// An existing month keeps its position; a new month is appended.
// Entry slices of other months are shared with the receiver.
func (c MonthlyCollection) With(month string, entries []Entry) MonthlyCollection {
	next := MonthlyCollection{
		keys:   make([]string, len(c.keys), len(c.keys)+1),
		months: make(map[string][]Entry, len(c.months)+1),
	}
	copy(next.keys, c.keys)
	for k, v := range c.months {
		next.months[k] = v
	}

	if _, ok := next.months[month]; !ok {
		next.keys = append(next.keys, month)
	}
	next.months[month] = entries
	return next
}

// Equal reports whether both collections hold the same months, in the same
// order, with equal entries.
func (c MonthlyCollection) Equal(other MonthlyCollection) bool {
	if len(c.keys) != len(other.keys) {
		return false
	}
	for i, month := range c.keys {
		if other.keys[i] != month {
			return false
		}
		a, b := c.months[month], other.months[month]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the collection as a JSON object with months in insertion order
func (c MonthlyCollection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, month := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(month)
		if err != nil {
			return nil, err
		}
		entries := c.months[month]
		if entries == nil {
			entries = []Entry{}
		}
		value, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of month keys to entry arrays, keeping key order.
// JSON null decodes to an empty collection.
func (c *MonthlyCollection) UnmarshalJSON(data []byte) error {
	decoded := NewMonthlyCollection()

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = decoded
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("monthly collection: expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		month, ok := tok.(string)
		if !ok {
			return fmt.Errorf("monthly collection: expected month key, got %v", tok)
		}

		var entries []Entry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("monthly collection: month %q: %w", month, err)
		}
		if entries == nil {
			entries = []Entry{}
		}

		if _, seen := decoded.months[month]; !seen {
			decoded.keys = append(decoded.keys, month)
		}
		decoded.months[month] = entries
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = decoded
	return nil
}
