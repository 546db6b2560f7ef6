package agent

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Cache is the key/value backend a Store sits on.
type Cache[S any] interface {
	Set(ctx context.Context, key string, val S) error
	Get(ctx context.Context, key string) (S, bool, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type MemoryCache[S any] struct {
	mu sync.RWMutex
	m  map[string]S
}

func NewMemoryCache[S any]() *MemoryCache[S] {
	return &MemoryCache[S]{m: map[string]S{}}
}

func (m *MemoryCache[S]) Set(ctx context.Context, key string, val S) error {
	m.mu.Lock()
	m.m[key] = val
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[S]) Get(ctx context.Context, key string) (S, bool, error) {
	m.mu.RLock()
	val, ok := m.m[key]
	m.mu.RUnlock()
	return val, ok, nil
}

func (m *MemoryCache[S]) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.m, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[S]) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	_, ok := m.m[key]
	m.mu.RUnlock()
	return ok, nil
}

// Keys returns the sorted keys starting with prefix.
func (m *MemoryCache[S]) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	keys := make([]string, 0, len(m.m))
	for k := range m.m {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	m.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}

var _ Cache[int] = (*MemoryCache[int])(nil)
