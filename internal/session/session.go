// Package session holds the caller-owned state a schema browser is drawn
// from. It is populated only by completed bridge operations and read by the
// caller's tick loop; nothing here touches the network.
package session

// ConnectionState tracks where the session is in its connection lifecycle.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateError
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "disconnected"
	}
}

// Cache is the keyed schema store. Tables and views are keyed by database
// name, so listings that resolve out of order can never clobber another
// database's entry; re-resolution for the same key overwrites it wholesale
// (last-write-wins, no merging of partial data).
type Cache[T any] struct {
	entries map[string]T
}

// Put stores value under key, replacing any previous value.
func (c *Cache[T]) Put(key string, value T) {
	if c.entries == nil {
		c.entries = make(map[string]T)
	}
	c.entries[key] = value
}

// Get returns the cached value for key.
func (c *Cache[T]) Get(key string) (T, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Drop removes the entry for key, if any.
func (c *Cache[T]) Drop(key string) {
	delete(c.entries, key)
}

// Clear removes every entry, for a wholesale refresh after reconnecting.
func (c *Cache[T]) Clear() {
	c.entries = nil
}

// Len returns the number of cached keys.
func (c *Cache[T]) Len() int { return len(c.entries) }
