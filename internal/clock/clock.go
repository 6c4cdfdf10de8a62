// Package clock provides time sources for expiry checks.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// NowNano returns the current time in Unix nanoseconds.
func NowNano() int64 {
	return time.Now().UnixNano()
}

// Cached is a coarse time source updated on a fixed interval. It trades
// up to one resolution interval of staleness for avoiding time.Now()
// calls in hot read paths. Callers that need it plug Cached.NowNano into
// the cache via an option; Stop releases the updater goroutine.
type Cached struct {
	nano atomic.Int64
	done chan struct{}
	once sync.Once
}

// NewCached starts a cached time source with the given resolution.
func NewCached(resolution time.Duration) *Cached {
	if resolution <= 0 {
		resolution = time.Millisecond
	}
	c := &Cached{done: make(chan struct{})}
	c.nano.Store(time.Now().UnixNano())
	go c.run(resolution)
	return c
}

func (c *Cached) run(resolution time.Duration) {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case t := <-ticker.C:
			c.nano.Store(t.UnixNano())
		}
	}
}

// NowNano returns the cached current time in Unix nanoseconds.
// It may be stale by up to one resolution interval.
func (c *Cached) NowNano() int64 {
	return c.nano.Load()
}

// Stop terminates the updater goroutine. Safe to call multiple times.
func (c *Cached) Stop() {
	c.once.Do(func() { close(c.done) })
}
