package bcache

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoizeCachesResults(t *testing.T) {
	c, _ := New[string, int](16)
	defer c.Close()

	var calls atomic.Int64
	square := Memoize(c,
		func(n int) string { return strconv.Itoa(n) },
		time.Hour,
		func(n int) (int, error) {
			calls.Add(1)
			return n * n, nil
		},
	)

	for i := 0; i < 5; i++ {
		v, err := square(7)
		if err != nil {
			t.Fatalf("square failed: %v", err)
		}
		if v != 49 {
			t.Fatalf("Expected 49, got %d", v)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("Expected 1 computation, got %d", calls.Load())
	}

	// A different argument derives a different key and computes again.
	if v, _ := square(8); v != 64 {
		t.Errorf("Expected 64, got %d", v)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected 2 computations, got %d", calls.Load())
	}
}

func TestMemoizeErrorsNotCached(t *testing.T) {
	c, _ := New[string, int](16)
	defer c.Close()

	boom := errors.New("boom")
	var calls atomic.Int64
	fn := Memoize(c,
		func(n int) string { return strconv.Itoa(n) },
		time.Hour,
		func(n int) (int, error) {
			if calls.Add(1) == 1 {
				return 0, boom
			}
			return n, nil
		},
	)

	if _, err := fn(1); err != boom {
		t.Fatalf("Expected boom, got %v", err)
	}
	// The failure was not cached; the next call computes again and
	// succeeds.
	if v, err := fn(1); err != nil || v != 1 {
		t.Fatalf("Expected recovery, got %d, %v", v, err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected 2 computations, got %d", calls.Load())
	}
}

func TestMemoizeDeduplicatesConcurrentCalls(t *testing.T) {
	c, _ := New[string, int](16)
	defer c.Close()

	var calls atomic.Int64
	slow := Memoize(c,
		func(n int) string { return strconv.Itoa(n) },
		time.Hour,
		func(n int) (int, error) {
			calls.Add(1)
			time.Sleep(50 * time.Millisecond)
			return n * 2, nil
		},
	)

	var wg sync.WaitGroup
	for g := 0; g < 50; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, err := slow(21); err != nil || v != 42 {
				t.Errorf("Expected 42, got %d, %v", v, err)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("Expected concurrent callers to share 1 computation, got %d", calls.Load())
	}
}

func TestMemoizeExpiredRecomputes(t *testing.T) {
	fc := newFakeClock()
	c, _ := New[string, int](16, WithNowFunc[string, int](fc.Now))
	defer c.Close()

	var calls atomic.Int64
	fn := Memoize(c,
		func(n int) string { return strconv.Itoa(n) },
		time.Minute,
		func(n int) (int, error) {
			calls.Add(1)
			return n, nil
		},
	)

	fn(1)
	fc.Advance(2 * time.Minute)
	fn(1)

	if calls.Load() != 2 {
		t.Errorf("Expected recomputation after expiry, got %d calls", calls.Load())
	}
}
