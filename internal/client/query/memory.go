package query

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	op  string
	val []byte
	at  time.Time
}

// MemoryCache keeps entries in process memory for ttl. A ttl <= 0
// disables caching: Set stores nothing.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now, entries: make(map[string]entry)}
}

func (c *MemoryCache) Get(_ context.Context, key Key, dst any) (bool, error) {
	k := key.String()

	c.mu.Lock()
	e, ok := c.entries[k]
	if ok && c.now().Sub(e.at) > c.ttl {
		delete(c.entries, k)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.val, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key Key, v any) error {
	if c.ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.String()] = entry{op: key.Operation, val: b, at: c.now()}
	return nil
}

func (c *MemoryCache) InvalidateOperation(_ context.Context, op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if e.op == op {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}

// Len counts stored entries. Stale ones are dropped on the next Get.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
