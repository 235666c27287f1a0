package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

type memoryList struct {
	values    []string
	expiresAt time.Time
}

// memoryCache is a process-local Cache used in tests and as a fallback
// when no Redis address is configured.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	lists   map[string]memoryList
	now     func() time.Time
}

func NewMemoryCache() Cache {
	return &memoryCache{
		entries: map[string]memoryEntry{},
		lists:   map[string]memoryList{},
		now:     time.Now,
	}
}

// NewMemoryCacheWithClock injects a clock for TTL tests.
func NewMemoryCacheWithClock(now func() time.Time) Cache {
	return &memoryCache{
		entries: map[string]memoryEntry{},
		lists:   map[string]memoryList{},
		now:     now,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		delete(c.lists, key)
	}
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if matched, _ := path.Match(pattern, key); matched {
			delete(c.entries, key)
		}
	}
	for key := range c.lists {
		if matched, _ := path.Match(pattern, key); matched {
			delete(c.lists, key)
		}
	}
	return nil
}

func (c *memoryCache) PushFront(_ context.Context, key, value string, capacity int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.lists[key]
	if !list.expiresAt.IsZero() && c.now().After(list.expiresAt) {
		list = memoryList{}
	}
	list.values = append([]string{value}, list.values...)
	if capacity > 0 && int64(len(list.values)) > capacity {
		list.values = list.values[:capacity]
	}
	if ttl > 0 {
		list.expiresAt = c.now().Add(ttl)
	}
	c.lists[key] = list
	return nil
}

func (c *memoryCache) Range(_ context.Context, key string, start, stop int64) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.lists[key]
	if !ok {
		return nil, nil
	}
	if !list.expiresAt.IsZero() && c.now().After(list.expiresAt) {
		delete(c.lists, key)
		return nil, nil
	}
	n := int64(len(list.values))
	if start < 0 {
		start = n + start
	}
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return nil, nil
	}
	out := make([]string, 0, stop-start+1)
	out = append(out, list.values[start:stop+1]...)
	return out, nil
}

func (c *memoryCache) Close() error { return nil }
