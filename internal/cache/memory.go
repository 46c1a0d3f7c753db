package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

const sweepEvery = 1024

type memoryEntry struct {
	value     string
	hits      []time.Time
	expiresAt time.Time
}

// MemoryStore is a process-local Store guarded by a mutex
type MemoryStore struct {
	mu     sync.Mutex
	items  map[string]*memoryEntry
	now    func() time.Time
	writes int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*memoryEntry),
		now:   time.Now,
	}
}

// WithClock replaces the clock used for expiry (tests)
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(key)
	if e == nil {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = &memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	s.wrote()
	return nil
}

func (s *MemoryStore) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if e := s.live(key); e != nil {
		parsed, err := strconv.ParseInt(e.value, 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	s.items[key] = &memoryEntry{value: strconv.FormatInt(n, 10), expiresAt: s.now().Add(ttl)}
	s.wrote()
	return n, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (s *MemoryStore) SlidingWindow(_ context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(key)
	if e == nil {
		e = &memoryEntry{}
		s.items[key] = e
	}

	cutoff := now.Add(-window)
	kept := e.hits[:0]
	for _, hit := range e.hits {
		if hit.After(cutoff) {
			kept = append(kept, hit)
		}
	}
	e.hits = kept

	if len(e.hits) >= limit {
		return false, len(e.hits), nil
	}

	e.hits = append(e.hits, now)
	e.expiresAt = s.now().Add(window)
	s.wrote()
	return true, len(e.hits), nil
}

// live returns the entry for key, dropping it if expired; caller holds mu
func (s *MemoryStore) live(key string) *memoryEntry {
	e, ok := s.items[key]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.items, key)
		return nil
	}
	return e
}

// wrote counts a write and periodically evicts expired keys; caller holds mu
func (s *MemoryStore) wrote() {
	s.writes++
	if s.writes < sweepEvery {
		return
	}
	s.writes = 0
	now := s.now()
	for key, e := range s.items {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.items, key)
		}
	}
}
