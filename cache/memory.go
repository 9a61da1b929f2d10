package cache

import (
	"context"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// maxEntries bounds the map: at this size Set drops expired entries, then the oldest one
const maxEntries = 1024

type memoryEntry struct {
	Entry
	expiresAt time.Time
}

// MemoryBackend keeps entries in the process, shared by all requests
type MemoryBackend struct {
	entries cmap.ConcurrentMap[string, memoryEntry]
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		entries: cmap.New[memoryEntry](),
	}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (Entry, bool, error) {
	e, ok := m.entries.Get(key)
	if !ok {
		return Entry{}, false, nil
	}
	return e.Entry, true, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, entry Entry, ttl time.Duration) error {
	if !m.entries.Has(key) && m.entries.Count() >= maxEntries {
		m.sweep(entry.StoredAt)
		if m.entries.Count() >= maxEntries {
			m.evictOldest()
		}
	}
	m.entries.Set(key, memoryEntry{Entry: entry, expiresAt: entry.StoredAt.Add(ttl)})
	return nil
}

func (m *MemoryBackend) Flush(_ context.Context) error {
	m.entries.Clear()
	return nil
}

func (m *MemoryBackend) Len() int {
	return m.entries.Count()
}

func (m *MemoryBackend) sweep(now time.Time) {
	expired := []string{}
	m.entries.IterCb(func(key string, e memoryEntry) {
		if !now.Before(e.expiresAt) {
			expired = append(expired, key)
		}
	})
	for _, key := range expired {
		m.entries.Remove(key)
	}
}

func (m *MemoryBackend) evictOldest() {
	oldestKey := ""
	var oldest time.Time
	m.entries.IterCb(func(key string, e memoryEntry) {
		if oldestKey == "" || e.StoredAt.Before(oldest) {
			oldestKey, oldest = key, e.StoredAt
		}
	})
	if oldestKey != "" {
		m.entries.Remove(oldestKey)
	}
}
