// Package cache keeps rendered page output for a fixed time window.
//
// Entries are returned verbatim until they are ttl old, no matter what happened to the
// data they were rendered from. Flush drops everything at once. Freshness is always
// judged with the Cache's clock, backends only store entries.
package cache

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"yatube/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

var SystemClock Clock = ClockFunc(time.Now)

type Entry struct {
	Value    []byte    `json:"v"`
	StoredAt time.Time `json:"t"`
}

type Backend interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	// Set may use ttl to let the backend drop the entry on its own
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	Flush(ctx context.Context) error
}

type Cache struct {
	backend Backend
	ttl     time.Duration
	clock   Clock
	group   singleflight.Group
	// generation is bumped by Flush, results computed in an older generation are never stored
	generation atomic.Uint64
	flushMu    sync.RWMutex
}

type Option func(*Cache)

func WithClock(clock Clock) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

func New(backend Backend, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		backend: backend,
		ttl:     ttl,
		clock:   SystemClock,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the value only while it is fresh. Backend failures count as a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	entry, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		utils.Logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok || c.clock.Now().Sub(entry.StoredAt) >= c.ttl {
		return nil, false
	}
	return entry.Value, true
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	return c.backend.Set(ctx, key, Entry{Value: value, StoredAt: c.clock.Now()}, c.ttl)
}

// GetOrCompute returns the fresh cached value or stores the result of compute.
// Concurrent misses on the same key share a single compute call, which does not
// stop when the first caller goes away.
func (c *Cache) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	generation := c.generation.Load()
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}
	flightKey := strconv.FormatUint(generation, 10) + ":" + key
	result, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		shared := context.WithoutCancel(ctx)
		// another caller may have filled it while we waited
		if value, ok := c.Get(shared, key); ok {
			return value, nil
		}
		value, err := compute(shared)
		if err != nil {
			return nil, err
		}
		c.setIfGeneration(shared, generation, key, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// setIfGeneration skips the write when a Flush happened since generation was read
func (c *Cache) setIfGeneration(ctx context.Context, generation uint64, key string, value []byte) {
	c.flushMu.RLock()
	defer c.flushMu.RUnlock()
	if c.generation.Load() != generation {
		return
	}
	if err := c.Set(ctx, key, value); err != nil {
		utils.Logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Flush drops every entry. Computes already running when it is called still answer
// their callers but don't store anything, the next read recomputes.
func (c *Cache) Flush(ctx context.Context) error {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()
	c.generation.Add(1)
	return c.backend.Flush(ctx)
}
