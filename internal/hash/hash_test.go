package hash

import (
	"testing"
)

func TestStringHash(t *testing.T) {
	// Same input should produce same hash
	h1 := String("hello")
	h2 := String("hello")
	if h1 != h2 {
		t.Error("Same string should produce same hash")
	}

	// Different input should produce different hash
	h3 := String("world")
	if h1 == h3 {
		t.Error("Different strings should produce different hashes")
	}

	// Empty string should work
	h4 := String("")
	if h4 == 0 {
		t.Error("Empty string should not produce zero hash")
	}
}

func TestBytesHash(t *testing.T) {
	h1 := Bytes([]byte("hello"))
	h2 := Bytes([]byte("hello"))
	if h1 != h2 {
		t.Error("Same bytes should produce same hash")
	}

	// Should match String hash
	h3 := String("hello")
	if h1 != h3 {
		t.Error("Bytes and String should produce same hash for same content")
	}
}

func TestIntHashes(t *testing.T) {
	h1 := Int64(12345)
	h2 := Int64(12345)
	if h1 != h2 {
		t.Error("Same int64 should produce same hash")
	}

	h3 := Int64(12346)
	if h1 == h3 {
		t.Error("Different int64 should produce different hashes")
	}

	// Negative numbers should work
	h5 := Int64(-12345)
	if h5 == h1 {
		t.Error("Negative int64 should produce different hash")
	}
}

func TestUintHashes(t *testing.T) {
	h1 := Uint64(12345)
	h2 := Uint64(12345)
	if h1 != h2 {
		t.Error("Same uint64 should produce same hash")
	}

	h3 := Uint(123)
	h4 := Uint(123)
	if h3 != h4 {
		t.Error("Same uint should produce same hash")
	}
}

func TestNarrowIntHashes(t *testing.T) {
	if Int32(12345) != Int32(12345) {
		t.Error("Same int32 should produce same hash")
	}
	if Uint32(12345) != Uint32(12345) {
		t.Error("Same uint32 should produce same hash")
	}
	if Int(12345) != Int(12345) {
		t.Error("Same int should produce same hash")
	}
}

func TestHashDistribution(t *testing.T) {
	// Sequential keys should spread across low-bit buckets
	const n = 10000
	buckets := make(map[uint64]int)

	for i := 0; i < n; i++ {
		h := Int64(int64(i))
		bucket := h & 0xFF
		buckets[bucket]++
	}

	if len(buckets) < 200 {
		t.Errorf("Expected better distribution, only %d buckets used", len(buckets))
	}

	// No bucket should have >5x the average
	avg := n / 256
	for bucket, count := range buckets {
		if count > avg*5 {
			t.Errorf("Bucket %d has %d items, average is %d (severe imbalance)", bucket, count, avg)
		}
	}
}

func BenchmarkString(b *testing.B) {
	s := "user:12345:profile"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		String(s)
	}
}

func BenchmarkInt64(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Int64(int64(i))
	}
}
