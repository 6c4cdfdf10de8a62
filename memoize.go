package bcache

import (
	"time"

	"golang.org/x/sync/singleflight"
)

// Memoize wraps compute so its results are cached in c under keys
// derived by keyFn. This is the explicit-composition form of
// function-result caching: the caller owns the cache instance and the
// key derivation, and nothing is hidden behind process-wide state.
//
// Concurrent calls whose arguments derive the same key share a single
// in-flight computation. Errors from compute are returned to every
// waiting caller and are never cached.
func Memoize[A any, V any](c *Cache[string, V], keyFn func(A) string, ttl time.Duration, compute func(A) (V, error)) func(A) (V, error) {
	var group singleflight.Group

	return func(arg A) (V, error) {
		key := keyFn(arg)
		if value, ok := c.Get(key); ok {
			return value, nil
		}

		result, err, _ := group.Do(key, func() (interface{}, error) {
			// Another caller may have populated the cache while this
			// one waited for the flight slot.
			if value, ok := c.Get(key); ok {
				return value, nil
			}
			value, err := compute(arg)
			if err != nil {
				return nil, err
			}
			if err := c.Set(key, value, ttl); err != nil {
				return nil, err
			}
			return value, nil
		})
		if err != nil {
			var zero V
			return zero, err
		}
		return result.(V), nil
	}
}
