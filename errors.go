package bcache

import "errors"

var (
	// ErrInvalidCapacity is returned by New when capacity is not positive.
	ErrInvalidCapacity = errors.New("bcache: capacity must be > 0")

	// ErrInvalidTTL is returned by Set when ttl is not positive, and by
	// SetDefault when no default TTL is configured.
	ErrInvalidTTL = errors.New("bcache: ttl must be > 0")

	// ErrEmptyKey is returned by Set for string-keyed caches when the key
	// is empty.
	ErrEmptyKey = errors.New("bcache: key must not be empty")
)
