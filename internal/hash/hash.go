// Package hash provides hash functions for shard selection.
package hash

const (
	// FNV-1a constants
	offset64 = 14695981039346656037
	prime64  = 1099511628211
)

// String computes FNV-1a hash of a string without allocations.
func String(s string) uint64 {
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

// Bytes computes FNV-1a hash of a byte slice.
func Bytes(b []byte) uint64 {
	h := uint64(offset64)
	for i := 0; i < len(b); i++ {
		h ^= uint64(b[i])
		h *= prime64
	}
	return h
}

// Uint64 computes a hash for a uint64 key using splitmix64 for good
// distribution of sequential values.
func Uint64(k uint64) uint64 {
	x := k
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Int64 computes a hash for an int64 key.
func Int64(k int64) uint64 {
	return Uint64(uint64(k))
}

// Int computes a hash for an int key.
func Int(k int) uint64 {
	return Uint64(uint64(int64(k)))
}

// Uint computes a hash for a uint key.
func Uint(k uint) uint64 {
	return Uint64(uint64(k))
}

// Int32 computes a hash for an int32 key.
func Int32(k int32) uint64 {
	return Uint64(uint64(int64(k)))
}

// Uint32 computes a hash for a uint32 key.
func Uint32(k uint32) uint64 {
	return Uint64(uint64(k))
}
