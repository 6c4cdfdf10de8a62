package bcache

// entry is a node of the recency list. Entries form a doubly linked ring
// around the cache's sentinel root: root.next is the most recently used
// entry, root.prev the least recently used.
type entry[K comparable, V any] struct {
	key      K
	value    V
	expireAt int64 // Unix nanoseconds
	cost     int64

	prev, next *entry[K, V]
}

// expired reports whether the entry is logically absent at time now.
func (e *entry[K, V]) expired(now int64) bool {
	return now >= e.expireAt
}

// pushFront inserts e at the most-recently-used position.
func (c *Cache[K, V]) pushFront(e *entry[K, V]) {
	e.prev = &c.root
	e.next = c.root.next
	e.prev.next = e
	e.next.prev = e
}

// unlink removes e from the recency list.
func (c *Cache[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}

// moveToFront marks e as most recently used.
func (c *Cache[K, V]) moveToFront(e *entry[K, V]) {
	if c.root.next == e {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = &c.root
	e.next = c.root.next
	e.prev.next = e
	e.next.prev = e
}

// back returns the least-recently-used entry, or nil if the cache is empty.
func (c *Cache[K, V]) back() *entry[K, V] {
	if c.root.prev == &c.root {
		return nil
	}
	return c.root.prev
}
