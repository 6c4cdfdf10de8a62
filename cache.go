// Package bcache implements a bounded in-memory cache with LRU eviction,
// per-entry TTL expiry and safe concurrent access.
//
// A Cache holds at most capacity entries. Writing a new key at capacity
// evicts the least recently used live entry; expired entries are removed
// lazily when an operation encounters them. All operations are guarded by
// a single mutex and complete in amortized O(1) time.
package bcache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ovasilenko/go-bcache/internal/clock"
)

// Cache is a generic bounded LRU cache with per-entry TTL.
// A Cache instance may be shared by any number of goroutines.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	root    entry[K, V] // recency list sentinel
	cost    int64       // sum of live entry costs

	capacity int
	cfg      *config[K, V]
	nowFn    func() int64
	metrics  *Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

// Item represents an item to be stored in the cache.
type Item[K comparable, V any] struct {
	Key   K
	Value V
	TTL   time.Duration
}

// removed records an entry dropped under the lock so its callback can run
// after the lock is released. expired distinguishes TTL expiry from
// capacity/cost eviction.
type removed[K comparable, V any] struct {
	key     K
	value   V
	cost    int64
	expired bool
}

// New creates a cache holding at most capacity entries.
// Capacity is fixed for the lifetime of the cache and must be positive.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Cache[K, V]{
		entries:  make(map[K]*entry[K, V], capacity),
		capacity: capacity,
		cfg:      cfg,
		nowFn:    clock.NowNano,
		metrics:  newMetrics(),
	}
	c.root.next = &c.root
	c.root.prev = &c.root

	if cfg.Now != nil {
		c.nowFn = cfg.Now
	}

	if cfg.CleanupInterval > 0 {
		c.ctx, c.cancel = context.WithCancel(context.Background())
		c.wg.Add(1)
		go c.janitor()
	}

	return c, nil
}

// Set inserts or updates key with the given value and TTL.
// A non-positive ttl is rejected with ErrInvalidTTL and leaves the cache
// unchanged. Updating an existing key refreshes its value and expiry and
// marks it most recently used without changing the entry count.
func (c *Cache[K, V]) Set(key K, value V, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	if isEmptyKey(key) {
		return ErrEmptyKey
	}

	cost := int64(1)
	if c.cfg.CostFunc != nil {
		if cost = c.cfg.CostFunc(value); cost < 1 {
			cost = 1
		}
	}
	now := c.nowFn()
	expireAt := now + int64(ttl)

	var dropped []removed[K, V]

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.cost += cost - e.cost
		e.value = value
		e.cost = cost
		e.expireAt = expireAt
		c.moveToFront(e)
		dropped = c.enforceCostLocked(now, dropped)
	} else {
		dropped = c.makeRoomLocked(now, dropped)
		e := &entry[K, V]{key: key, value: value, cost: cost, expireAt: expireAt}
		c.entries[key] = e
		c.pushFront(e)
		c.cost += cost
		dropped = c.enforceCostLocked(now, dropped)
	}
	c.mu.Unlock()

	c.metrics.incSet()
	c.metrics.addCost(cost)
	c.notify(dropped)
	return nil
}

// SetDefault inserts or updates key using the TTL configured via
// WithDefaultTTL. Returns ErrInvalidTTL when no default is configured.
func (c *Cache[K, V]) SetDefault(key K, value V) error {
	return c.Set(key, value, c.cfg.DefaultTTL)
}

// Get retrieves a value by key. A hit marks the entry most recently used.
// An entry discovered expired is removed before reporting a miss.
// Absence is a normal outcome, not an error.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	now := c.nowFn()

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		c.metrics.incMiss()
		return zero, false
	}
	if e.expired(now) {
		dropped := c.removeLocked(e, true)
		c.mu.Unlock()
		c.metrics.incMiss()
		c.notify([]removed[K, V]{dropped})
		return zero, false
	}
	c.moveToFront(e)
	value := e.value
	c.mu.Unlock()

	c.metrics.incHit()
	return value, true
}

// Peek retrieves a value by key without updating its recency.
// Expired entries are removed and reported as absent.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	var zero V
	now := c.nowFn()

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return zero, false
	}
	if e.expired(now) {
		dropped := c.removeLocked(e, true)
		c.mu.Unlock()
		c.notify([]removed[K, V]{dropped})
		return zero, false
	}
	value := e.value
	c.mu.Unlock()
	return value, true
}

// Has reports whether key is present and not expired, without updating
// its recency.
func (c *Cache[K, V]) Has(key K) bool {
	_, ok := c.Peek(key)
	return ok
}

// Delete removes key from the cache. Deleting an absent key is a no-op.
// Returns whether an entry was removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.entries, key)
	c.unlink(e)
	c.cost -= e.cost
	c.mu.Unlock()

	c.metrics.incDelete()
	return true
}

// Len returns the current entry count. The count may transiently include
// expired entries that no operation has encountered yet; call ExpireNow
// first for an exact count of live entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cost returns the sum of costs of entries currently held.
func (c *Cache[K, V]) Cost() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cost
}

// Capacity returns the fixed entry capacity the cache was created with.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// ExpireNow sweeps all expired entries and returns the number removed.
func (c *Cache[K, V]) ExpireNow() int {
	now := c.nowFn()
	var dropped []removed[K, V]

	c.mu.Lock()
	for _, e := range c.entries {
		if e.expired(now) {
			dropped = append(dropped, c.removeLocked(e, true))
		}
	}
	c.mu.Unlock()

	c.notify(dropped)
	return len(dropped)
}

// Keys returns a snapshot of live keys in most-to-least recently used
// order.
func (c *Cache[K, V]) Keys() []K {
	now := c.nowFn()

	c.mu.Lock()
	keys := make([]K, 0, len(c.entries))
	for e := c.root.next; e != &c.root; e = e.next {
		if !e.expired(now) {
			keys = append(keys, e.key)
		}
	}
	c.mu.Unlock()
	return keys
}

// Range calls fn for each live entry in most-to-least recently used
// order until fn returns false. fn observes a snapshot taken when Range
// was called and runs outside the cache lock, so it may safely call back
// into the cache.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	now := c.nowFn()

	c.mu.Lock()
	snapshot := make([]Item[K, V], 0, len(c.entries))
	for e := c.root.next; e != &c.root; e = e.next {
		if !e.expired(now) {
			snapshot = append(snapshot, Item[K, V]{Key: e.key, Value: e.value})
		}
	}
	c.mu.Unlock()

	for _, it := range snapshot {
		if !fn(it.Key, it.Value) {
			return
		}
	}
}

// GetMany retrieves multiple values. Returns a map of found keys to
// their values.
func (c *Cache[K, V]) GetMany(keys []K) map[K]V {
	result := make(map[K]V, len(keys))
	for _, key := range keys {
		if value, ok := c.Get(key); ok {
			result[key] = value
		}
	}
	return result
}

// SetMany stores multiple items, stopping at the first invalid one.
// Returns the number of items stored.
func (c *Cache[K, V]) SetMany(items []Item[K, V]) (int, error) {
	for i, it := range items {
		if err := c.Set(it.Key, it.Value, it.TTL); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

// DeleteMany removes multiple keys. Returns the number of entries
// removed.
func (c *Cache[K, V]) DeleteMany(keys []K) int {
	count := 0
	for _, key := range keys {
		if c.Delete(key) {
			count++
		}
	}
	return count
}

// Clear removes all entries without invoking callbacks.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]*entry[K, V], c.capacity)
	c.root.next = &c.root
	c.root.prev = &c.root
	c.cost = 0
	c.mu.Unlock()
}

// Metrics returns a point-in-time snapshot of cache statistics.
func (c *Cache[K, V]) Metrics() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// Close stops the background sweeper, if one was configured. The cache
// remains usable after Close; lazy expiry continues to apply. Safe to
// call multiple times.
func (c *Cache[K, V]) Close() {
	if c.closed.Swap(true) {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.wg.Wait()
	}
}

// makeRoomLocked frees a slot for a new entry when the cache is full.
// Expired entries found at the LRU end are discarded as expirations; if
// none are expired the least recently used live entry is evicted.
func (c *Cache[K, V]) makeRoomLocked(now int64, dropped []removed[K, V]) []removed[K, V] {
	for len(c.entries) >= c.capacity {
		victim := c.back()
		if victim == nil {
			return dropped
		}
		dropped = append(dropped, c.removeLocked(victim, victim.expired(now)))
	}
	return dropped
}

// enforceCostLocked evicts from the LRU end until total cost fits the
// configured bound. No-op unless WithMaxCost is set.
func (c *Cache[K, V]) enforceCostLocked(now int64, dropped []removed[K, V]) []removed[K, V] {
	if c.cfg.MaxCost <= 0 {
		return dropped
	}
	for c.cost > c.cfg.MaxCost {
		victim := c.back()
		if victim == nil {
			return dropped
		}
		dropped = append(dropped, c.removeLocked(victim, victim.expired(now)))
	}
	return dropped
}

// removeLocked unlinks e from both structures and accounts for the
// removal. The caller must hold c.mu.
func (c *Cache[K, V]) removeLocked(e *entry[K, V], expired bool) removed[K, V] {
	delete(c.entries, e.key)
	c.unlink(e)
	c.cost -= e.cost
	if expired {
		c.metrics.incExpiration()
	} else {
		c.metrics.incEviction()
		c.metrics.addEvictedCost(e.cost)
	}
	return removed[K, V]{key: e.key, value: e.value, cost: e.cost, expired: expired}
}

// notify invokes removal callbacks outside the lock, so a callback may
// call back into the cache without deadlocking.
func (c *Cache[K, V]) notify(dropped []removed[K, V]) {
	for _, r := range dropped {
		if r.expired {
			if c.cfg.OnExpire != nil {
				c.cfg.OnExpire(r.key, r.value)
			}
		} else if c.cfg.OnEvict != nil {
			c.cfg.OnEvict(r.key, r.value, r.cost)
		}
	}
}

// janitor periodically sweeps expired entries until Close.
func (c *Cache[K, V]) janitor() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.ExpireNow()
		}
	}
}

// isEmptyKey reports whether key is the empty string. Non-string key
// types have no emptiness check.
func isEmptyKey[K comparable](key K) bool {
	s, ok := any(key).(string)
	return ok && s == ""
}
