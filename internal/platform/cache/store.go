// Package cache is a process-local TTL cache. Standings and team listings
// are recomputed through it, with single-flight loading so a cold key does
// not fan out into duplicate work.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/Porizovatel/kulda/internal/platform/resilience"
)

type record struct {
	value    any
	deadline time.Time
}

func (r record) expired(now time.Time) bool {
	return !r.deadline.IsZero() && !r.deadline.After(now)
}

type Store struct {
	mu      sync.RWMutex
	records map[string]record
	ttl     time.Duration
	flight  resilience.SingleFlight
}

// NewStore builds a store whose entries live for ttl. A non-positive ttl
// means entries never expire.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		records: make(map[string]record),
		ttl:     ttl,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	r, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if r.expired(time.Now()) {
		s.mu.Lock()
		delete(s.records, key)
		s.mu.Unlock()
		return nil, false
	}

	return r.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	r := record{value: value}
	if s.ttl > 0 {
		r.deadline = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.records[key] = r
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix. Writers use it to
// invalidate all cached variants of a view at once.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.records {
		if strings.HasPrefix(key, prefix) {
			delete(s.records, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or runs loader once across
// all concurrent callers and caches the result. Load errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, crerr.New("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// Another caller may have populated the key while we queued.
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
