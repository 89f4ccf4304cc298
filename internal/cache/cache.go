// Package cache provides a session-scoped key-value store. Entries live
// until the process exits; there is no eviction and no revalidation, which
// is the intended staleness policy for one dashboard session.
package cache

import "sync"

// Session is a mutex-guarded in-memory store. Values are opaque serialized
// snapshots; reads and writes happen at whole-snapshot granularity only.
type Session struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New creates an empty session cache.
func New() *Session {
	return &Session{entries: make(map[string][]byte)}
}

// Get returns the value stored under key and whether it was present.
func (s *Session) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores value under key, replacing any previous entry.
func (s *Session) Set(key string, value []byte) {
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
}
