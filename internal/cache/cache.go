// Package cache provides a concurrency-safe in-memory key/value store with
// per-entry time-to-live, used in front of the aggregator.
package cache

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// DefaultSweepInterval is how often expired entries are removed in the
// background.
const DefaultSweepInterval = 60 * time.Second

// Entry is a cached value with its bookkeeping.
type Entry[T any] struct {
	Data      T
	CachedAt  time.Time
	ExpiresAt time.Time
	Hits      int64
}

func (e *Entry[T]) expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Stats is a snapshot of cache usage.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// Cache is a TTL cache. Expired entries are evicted lazily on read and by a
// periodic sweep; Close stops the sweep.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]*Entry[T]
	hits    int64
	misses  int64

	sweepInterval time.Duration
	nowFunc       func() time.Time

	stopCh    chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	sweepInterval time.Duration
	nowFunc       func() time.Time
}

// WithSweepInterval sets the background sweep interval. Zero or negative
// disables the sweep.
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) {
		o.sweepInterval = d
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(o *options) {
		o.nowFunc = f
	}
}

// New creates a cache and starts its sweep goroutine.
func New[T any](opts ...Option) *Cache[T] {
	o := options{
		sweepInterval: DefaultSweepInterval,
		nowFunc:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cache[T]{
		entries:       make(map[string]*Entry[T]),
		sweepInterval: o.sweepInterval,
		nowFunc:       o.nowFunc,
		stopCh:        make(chan struct{}),
	}

	if c.sweepInterval > 0 {
		c.wg.Add(1)
		go c.sweepLoop()
	}

	return c
}

// Get returns the value stored under key. Expired entries are removed and
// reported as a miss.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	now := c.nowFunc()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if e.expired(now) {
		delete(c.entries, key)
		c.misses++
		return zero, false
	}

	e.Hits++
	c.hits++
	return e.Data, true
}

// Set stores data under key for ttl.
func (c *Cache[T]) Set(key string, data T, ttl time.Duration) {
	now := c.nowFunc()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry[T]{
		Data:      data,
		CachedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Has reports whether key holds a live entry. It does not count as a hit.
func (c *Cache[T]) Has(key string) bool {
	now := c.nowFunc()

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return ok && !e.expired(now)
}

// Delete removes key and reports whether it was present.
func (c *Cache[T]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear removes every entry and resets the hit and miss counters.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry[T])
	c.hits = 0
	c.misses = 0
}

// Invalidate removes every key containing substr and returns the count.
func (c *Cache[T]) Invalidate(substr string) int {
	return c.removeWhere(func(key string) bool {
		return strings.Contains(key, substr)
	})
}

// InvalidateRegexp removes every key matching re and returns the count.
func (c *Cache[T]) InvalidateRegexp(re *regexp.Regexp) int {
	return c.removeWhere(re.MatchString)
}

func (c *Cache[T]) removeWhere(match func(string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if match(key) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Stats returns the current entry count and hit/miss counters.
func (c *Cache[T]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// Sweep removes expired entries and returns how many were removed.
func (c *Cache[T]) Sweep() int {
	now := c.nowFunc()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Done is closed once Close has been called.
func (c *Cache[T]) Done() <-chan struct{} {
	return c.stopCh
}

// Close stops the background sweep. It is safe to call more than once.
func (c *Cache[T]) Close() {
	c.closeOnce.Do(func() {
		close(c.stopCh)
		c.wg.Wait()
	})
}

func (c *Cache[T]) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-c.stopCh:
			return
		}
	}
}
