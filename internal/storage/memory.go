package storage

// MemoryStore keeps values in a map for the lifetime of the process.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Get implements Store
func (s *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements Store
func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

// Close implements Store
func (s *MemoryStore) Close() error {
	return nil
}
