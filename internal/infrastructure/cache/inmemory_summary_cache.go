package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultCleanupInterval = 30 * time.Second

// InMemorySummaryCache implements SummaryCache with process-local
// storage. Suitable for single-instance deployments and tests; expired
// entries are swept by a background goroutine.
type InMemorySummaryCache struct {
	entries sync.Map // map[string]*summaryEntry
	stopCh  chan struct{}
	stopped int32
}

type summaryEntry struct {
	payload   []byte
	expiresAt time.Time
}

func (e *summaryEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemorySummaryCache creates an in-memory summary cache
func NewInMemorySummaryCache() *InMemorySummaryCache {
	cache := &InMemorySummaryCache{stopCh: make(chan struct{})}
	go cache.cleanupExpired()
	return cache
}

// Get retrieves a cached payload, reporting a miss without error
func (c *InMemorySummaryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := c.entries.Load(key)
	if !ok {
		return nil, false, nil
	}
	entry := value.(*summaryEntry)
	if entry.isExpired() {
		c.entries.Delete(key)
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// Set stores a payload with a TTL
func (c *InMemorySummaryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	c.entries.Store(key, &summaryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Invalidate removes cached payloads
func (c *InMemorySummaryCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		c.entries.Delete(key)
	}
	return nil
}

// Close stops the background cleanup goroutine
func (c *InMemorySummaryCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// cleanupExpired periodically sweeps expired entries so the map does not
// grow without bound between reads
func (c *InMemorySummaryCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*summaryEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

var _ SummaryCache = (*InMemorySummaryCache)(nil)
