package bcache

import "time"

// config holds the configuration for a Cache instance.
type config[K comparable, V any] struct {
	// TTL
	DefaultTTL time.Duration // TTL used by SetDefault

	// Cost bound (optional, in addition to entry-count capacity)
	MaxCost  int64               // Maximum total cost (0 = unbounded)
	CostFunc func(value V) int64 // Custom cost calculator (default cost 1)

	// Callbacks, invoked outside the cache lock
	OnEvict  func(key K, value V, cost int64) // Called when an entry is evicted
	OnExpire func(key K, value V)             // Called when an entry expires

	// Time source
	Now func() int64 // Nanosecond clock override

	// Background sweeping
	CleanupInterval time.Duration // 0 = lazy expiry only

	// Key handling (sharded cache)
	KeyHasher func(K) uint64
}

// Option is a function that configures a Cache.
type Option[K comparable, V any] func(*config[K, V])

// defaultConfig returns the default configuration.
func defaultConfig[K comparable, V any]() *config[K, V] {
	return &config[K, V]{}
}

// WithDefaultTTL sets the TTL applied by SetDefault.
func WithDefaultTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *config[K, V]) {
		c.DefaultTTL = ttl
	}
}

// WithMaxCost bounds the total cost of entries in addition to the entry
// capacity. When the bound is exceeded, entries are evicted from the
// least recently used end until total cost fits.
// A value of 0 means unbounded cost (default).
func WithMaxCost[K comparable, V any](cost int64) Option[K, V] {
	return func(c *config[K, V]) {
		c.MaxCost = cost
	}
}

// WithCostFunc sets a custom function to calculate the cost of a value.
// If not set, each entry has a cost of 1. Costs below 1 are raised to 1.
func WithCostFunc[K comparable, V any](fn func(V) int64) Option[K, V] {
	return func(c *config[K, V]) {
		c.CostFunc = fn
	}
}

// WithOnEvict sets a callback invoked when an entry is evicted by the
// capacity or cost bound. The callback runs outside the cache lock and
// may call back into the cache.
func WithOnEvict[K comparable, V any](fn func(K, V, int64)) Option[K, V] {
	return func(c *config[K, V]) {
		c.OnEvict = fn
	}
}

// WithOnExpire sets a callback invoked when an entry is removed because
// its TTL elapsed. The callback runs outside the cache lock.
func WithOnExpire[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *config[K, V]) {
		c.OnExpire = fn
	}
}

// WithNowFunc overrides the nanosecond time source used for expiry
// checks. Useful for deterministic TTL tests and for plugging in a
// cached coarse clock on hot read paths.
func WithNowFunc[K comparable, V any](fn func() int64) Option[K, V] {
	return func(c *config[K, V]) {
		c.Now = fn
	}
}

// WithCleanupInterval starts a background goroutine sweeping expired
// entries at the given interval. Lazy expiry applies regardless; the
// sweeper only bounds memory held by expired entries that are never
// accessed again. Stop it with Close.
func WithCleanupInterval[K comparable, V any](d time.Duration) Option[K, V] {
	return func(c *config[K, V]) {
		c.CleanupInterval = d
	}
}

// WithKeyHasher sets a custom key hasher for the sharded cache.
// Single caches ignore it.
func WithKeyHasher[K comparable, V any](fn func(K) uint64) Option[K, V] {
	return func(c *config[K, V]) {
		c.KeyHasher = fn
	}
}
