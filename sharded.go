package bcache

import (
	"hash/maphash"
	"time"

	"github.com/ovasilenko/go-bcache/internal/hash"
)

// DefaultShardCount is the shard count used when NewSharded is given a
// non-positive count.
const DefaultShardCount = 16

var shardSeed = maphash.MakeSeed()

// Sharded stripes keys across independent Cache instances to reduce lock
// contention under heavy concurrent load. Each shard enforces its own
// slice of the total capacity, so the aggregate bound is the sum of the
// per-shard bounds; the single-cache capacity invariant holds per shard.
type Sharded[K comparable, V any] struct {
	shards []*Cache[K, V]
	mask   uint64
	hasher func(K) uint64
}

// NewSharded creates a striped cache with the given total capacity split
// evenly across shardCount shards. shardCount is rounded up to a power
// of two; a non-positive count selects DefaultShardCount.
func NewSharded[K comparable, V any](shardCount, capacity int, opts ...Option[K, V]) (*Sharded[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	shardCount = nextPowerOf2(shardCount)

	perShard := (capacity + shardCount - 1) / shardCount
	if perShard < 1 {
		perShard = 1
	}

	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(cfg)
	}
	hasher := cfg.KeyHasher
	if hasher == nil {
		hasher = defaultKeyHasher[K]
	}

	s := &Sharded[K, V]{
		shards: make([]*Cache[K, V], shardCount),
		mask:   uint64(shardCount - 1),
		hasher: hasher,
	}
	for i := range s.shards {
		shard, err := New[K, V](perShard, opts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = shard
	}
	return s, nil
}

// shard returns the cache responsible for key.
func (s *Sharded[K, V]) shard(key K) *Cache[K, V] {
	return s.shards[s.hasher(key)&s.mask]
}

// Set inserts or updates key in its shard.
func (s *Sharded[K, V]) Set(key K, value V, ttl time.Duration) error {
	return s.shard(key).Set(key, value, ttl)
}

// SetDefault inserts or updates key using the configured default TTL.
func (s *Sharded[K, V]) SetDefault(key K, value V) error {
	return s.shard(key).SetDefault(key, value)
}

// Get retrieves a value by key.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shard(key).Get(key)
}

// Peek retrieves a value by key without updating its recency.
func (s *Sharded[K, V]) Peek(key K) (V, bool) {
	return s.shard(key).Peek(key)
}

// Has reports whether key is present and not expired.
func (s *Sharded[K, V]) Has(key K) bool {
	return s.shard(key).Has(key)
}

// Delete removes key. Returns whether an entry was removed.
func (s *Sharded[K, V]) Delete(key K) bool {
	return s.shard(key).Delete(key)
}

// Len returns the total entry count across all shards.
func (s *Sharded[K, V]) Len() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

// Cost returns the total cost across all shards.
func (s *Sharded[K, V]) Cost() int64 {
	var total int64
	for _, shard := range s.shards {
		total += shard.Cost()
	}
	return total
}

// ExpireNow sweeps expired entries in every shard and returns the total
// number removed.
func (s *Sharded[K, V]) ExpireNow() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.ExpireNow()
	}
	return total
}

// Clear removes all entries from every shard.
func (s *Sharded[K, V]) Clear() {
	for _, shard := range s.shards {
		shard.Clear()
	}
}

// Metrics returns aggregated statistics across all shards.
func (s *Sharded[K, V]) Metrics() MetricsSnapshot {
	var agg MetricsSnapshot
	for _, shard := range s.shards {
		agg.merge(shard.Metrics())
	}
	return agg
}

// Close stops every shard's background sweeper.
func (s *Sharded[K, V]) Close() {
	for _, shard := range s.shards {
		shard.Close()
	}
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n int) int {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// defaultKeyHasher hashes common key types directly and falls back to
// maphash for other comparable types.
func defaultKeyHasher[K comparable](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return hash.String(k)
	case int:
		return hash.Int(k)
	case int64:
		return hash.Int64(k)
	case uint64:
		return hash.Uint64(k)
	case int32:
		return hash.Int32(k)
	case uint32:
		return hash.Uint32(k)
	default:
		return maphash.Comparable(shardSeed, key)
	}
}
