package clock

import (
	"testing"
	"time"
)

func TestNowNano(t *testing.T) {
	before := time.Now().UnixNano()
	got := NowNano()
	after := time.Now().UnixNano()

	if got < before || got > after {
		t.Errorf("NowNano %d outside [%d, %d]", got, before, after)
	}
}

func TestCachedAdvances(t *testing.T) {
	c := NewCached(time.Millisecond)
	defer c.Stop()

	first := c.NowNano()
	if first == 0 {
		t.Fatal("Cached clock should be initialized before first tick")
	}

	deadline := time.Now().Add(time.Second)
	for c.NowNano() == first {
		if time.Now().After(deadline) {
			t.Fatal("Cached clock never advanced")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestCachedStopIdempotent(t *testing.T) {
	c := NewCached(time.Millisecond)
	c.Stop()
	c.Stop()

	// Reads remain valid after Stop; the value is just frozen.
	if c.NowNano() == 0 {
		t.Error("Expected a frozen but valid time after Stop")
	}
}
