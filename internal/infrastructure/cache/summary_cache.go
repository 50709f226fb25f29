package cache

import (
	"context"
	"time"
)

// SummaryCache caches rendered summary payloads. Keys are scoped per
// caller and view, so one user's dashboard never leaks into another's.
// A miss is (nil, false, nil); errors are reserved for backend failures.
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	Close() error
}

// NoopSummaryCache disables caching entirely
type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopSummaryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return nil
}

func (NoopSummaryCache) Invalidate(ctx context.Context, keys ...string) error {
	return nil
}

func (NoopSummaryCache) Close() error {
	return nil
}

var _ SummaryCache = NoopSummaryCache{}
