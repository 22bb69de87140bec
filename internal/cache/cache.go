// Package cache provides the in-memory TTL cache for analytics responses.
//
// Entries expire a fixed duration after insertion (wall clock, not access
// time). Identical keys within the TTL window return the stored payload
// without a network call; concurrent misses for the same key are not
// deduplicated — the expected render path is a single sequential pass.
package cache

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"riskpilot/internal/models"
)

type entry struct {
	payload    models.Payload
	insertedAt time.Time
	ttl        time.Duration
}

// ResponseCache is a mutex-guarded key -> (payload, inserted-at) map.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty response cache.
func New() *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// SetClock replaces the cache's clock. Test hook.
func (c *ResponseCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the payload stored under key if it has not expired.
func (c *ResponseCache) Get(key string) (models.Payload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) >= e.ttl {
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key with the given TTL, replacing any existing
// entry and restarting its expiry window.
func (c *ResponseCache) Set(key string, payload models.Payload, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{payload: payload, insertedAt: c.now(), ttl: ttl}
}

// Clear wipes every entry immediately. Wired to the manual refresh action.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, expired or not.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Key derives a cache key from an endpoint identifier and its arguments.
// Slices are joined in order so identical portfolios produce identical keys
// regardless of call site; floats are formatted at full precision.
func Key(endpoint string, parts ...interface{}) string {
	var b strings.Builder
	b.WriteString(endpoint)
	for _, part := range parts {
		b.WriteByte('|')
		writePart(&b, part)
	}
	return b.String()
}

func writePart(b *strings.Builder, part interface{}) {
	switch v := part.(type) {
	case nil:
		b.WriteString("~")
	case string:
		b.WriteString(v)
	case []string:
		b.WriteString(strings.Join(v, ","))
	case []float64:
		for i, f := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
		}
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		b.WriteString(strconv.Itoa(v))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	default:
		fmt.Fprintf(b, "%v", v)
	}
}
