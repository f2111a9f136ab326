// Package cache provides the Facade's pattern-result cache (spec.md §4.10:
// "The facade derives a cache key from a hash of (pattern, flags,
// canonicalized-options); the cache itself is provided by an adapter").
// KeyValueStore is the adapter port; MemoryStore is the one reference
// adapter this module ships — an external store (Redis, a shared LRU
// process) implements the same two methods.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// KeyValueStore is the external cache adapter port. Get reports whether
// key was present; Set always overwrites. Implementations must be safe
// for concurrent use, since the facade's operations are pure functions
// callers may invoke from multiple goroutines (spec.md §5).
type KeyValueStore interface {
	Get(key string) (value any, ok bool)
	Set(key string, value any)
}

// MemoryStore is an in-process KeyValueStore backed by a sync.Map,
// following the same "pool mutable state behind a concurrency-safe stdlib
// primitive" idiom meta.Engine.statePool uses for per-search scratch
// state — here the pooled resource is a cached result rather than a
// PikeVM, so a sync.Map replaces the sync.Pool, but the intent (let many
// goroutines share one compiled-pattern's derived data without a mutex)
// is the same.
type MemoryStore struct {
	m sync.Map
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(key string) (any, bool) {
	return s.m.Load(key)
}

func (s *MemoryStore) Set(key string, value any) {
	s.m.Store(key, value)
}

// Delete removes key, if present. Not part of the KeyValueStore port
// (callers never need to evict a pure function's result by key alone),
// but useful for tests and for an adapter wanting manual invalidation.
func (s *MemoryStore) Delete(key string) {
	s.m.Delete(key)
}

// Key derives the facade's cache key: a hex-encoded SHA-256 digest of the
// pattern, its flags, and its canonicalized option string. Canonicalizing
// the options (a caller's job — see Options.canonical in the facade
// package) before hashing ensures two Options values that differ only in
// field order or zero-value defaults collapse to the same key.
func Key(pattern string, flags uint16, canonicalOptions string) string {
	h := sha256.New()
	h.Write([]byte(pattern))
	h.Write([]byte{byte(flags), byte(flags >> 8)})
	h.Write([]byte(canonicalOptions))
	return hex.EncodeToString(h.Sum(nil))
}
