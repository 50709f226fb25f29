package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSummaryCache implements SummaryCache using Redis. This is the
// deployment choice when several gateway instances share cache state.
type RedisSummaryCache struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisSummaryCache creates a Redis-backed summary cache
func NewRedisSummaryCache(cfg RedisConfig) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSummaryCache{
		client:     client,
		ownsClient: true,
		keyPrefix:  "summary:",
	}, nil
}

// NewRedisSummaryCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisSummaryCacheWithClient(client *redis.Client, keyPrefix string) *RedisSummaryCache {
	if keyPrefix == "" {
		keyPrefix = "summary:"
	}
	return &RedisSummaryCache{client: client, keyPrefix: keyPrefix}
}

// Get retrieves a cached payload, reporting a miss without error
func (c *RedisSummaryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached summary: %w", err)
	}
	return payload, true, nil
}

// Set stores a payload with a TTL
func (c *RedisSummaryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// Invalidate removes cached payloads, typically after a write-through
// operation changes what a summary would show
func (c *RedisSummaryCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = c.keyPrefix + key
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached summaries: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisSummaryCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ SummaryCache = (*RedisSummaryCache)(nil)
