package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/platform/resilience"
)

type item struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process TTL cache for read-mostly reference data
// (player catalog, gameweek list). A zero TTL means entries never expire.
type Store struct {
	mu       sync.RWMutex
	items    map[string]item
	ttl      time.Duration
	disabled bool
	flight   resilience.Flight

	now func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]item),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Disabled returns a store that never retains entries. Lets callers keep
// one code path whether caching is switched on or off.
func Disabled() *Store {
	s := NewStore(0)
	s.disabled = true
	return s
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" || s.disabled {
		return nil, false
	}

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !it.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, false
	}

	return it.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" || s.disabled {
		return
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.items[key] = item{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) Invalidate(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

func (s *Store) InvalidatePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, running loader at most once
// across concurrent callers on a miss.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
