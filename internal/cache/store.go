package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bassista/dockhand/internal/metrics"
)

// Store is an in-memory key-value cache with per-entry TTLs. Values are
// stored as marshalled JSON so callers get an independent copy on every
// read. Expired entries are treated as absent on Get and collected by
// the background sweeper.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value     json.RawMessage
	expiresAt time.Time
}

// NewStore creates an empty cache store.
func NewStore() *Store {
	return &Store{entries: map[string]entry{}}
}

// Get returns the cached JSON value for key, or false when the key is
// absent or expired.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		metrics.CacheMisses.Inc()
		return nil, false
	}
	metrics.CacheHits.Inc()
	return e.value, true
}

// Set marshals value and stores it under key for ttl.
func (s *Store) Set(key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: raw, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete removes key from the cache. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Len returns the number of entries, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// sweep removes expired entries and returns how many were dropped.
func (s *Store) sweep() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
			dropped++
		}
	}
	return dropped
}
