package recipe

import (
	"sync"
)

// Store holds the live catalog behind a full-table swap. Concurrent matches
// read a consistent snapshot; Swap replaces the whole catalog at once, never
// a partially updated one.
type Store struct {
	mu      sync.RWMutex
	catalog *Catalog
	pantry  []string
}

// NewStore creates a store seeded with the given catalog and pantry staples.
func NewStore(catalog *Catalog, pantry []string) *Store {
	return &Store{catalog: catalog, pantry: pantry}
}

// Catalog returns the current catalog snapshot.
func (s *Store) Catalog() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Pantry returns the current pantry staples.
func (s *Store) Pantry() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pantry
}

// Swap atomically replaces the catalog. In-flight matches keep the snapshot
// they already loaded.
func (s *Store) Swap(catalog *Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
}
