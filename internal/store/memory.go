package store

import (
	"slices"
	"sync"
)

// MemoryStore is an in-process store, mainly for tests and short-lived
// tools. Stored slices are copied on the way in and out.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]float64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]float64)}
}

// Load returns a copy of the coefficients stored under key.
func (s *MemoryStore) Load(key string) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coeffs, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(coeffs), nil
}

// Save stores a copy of coeffs under key.
func (s *MemoryStore) Save(key string, coeffs []float64) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = slices.Clone(coeffs)
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
