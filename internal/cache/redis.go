package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/pitchside/internal/scrape"
)

// RedisCache caches fixture lists so a resubmitted season does not refetch
// the schedule page. Cache failures are logged and treated as misses.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Get returns the cached fixture list for key, or false on a miss
func (rc *RedisCache) Get(ctx context.Context, key string) ([]scrape.FixtureReference, bool) {
	raw, err := rc.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] get %s failed: %v", key, err)
		return nil, false
	}

	var fixtures []scrape.FixtureReference
	if err := json.Unmarshal([]byte(raw), &fixtures); err != nil {
		log.Printf("[cache] corrupt entry for %s: %v", key, err)
		return nil, false
	}
	return fixtures, true
}

// Set stores a fixture list under key with the given TTL
func (rc *RedisCache) Set(ctx context.Context, key string, fixtures []scrape.FixtureReference, ttl time.Duration) {
	raw, err := json.Marshal(fixtures)
	if err != nil {
		log.Printf("[cache] marshal for %s failed: %v", key, err)
		return
	}
	if err := rc.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("[cache] set %s failed: %v", key, err)
	}
}
