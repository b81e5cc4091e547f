package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/pitchside/internal/jobs"
)

// MatchScrapedStream receives one event per stored match
const MatchScrapedStream = "match.scraped.football"

// RedisStreamPublisher publishes scrape events to Redis streams
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishMatchScraped publishes a per-match event after its records are stored
func (rsp *RedisStreamPublisher) PublishMatchScraped(ctx context.Context, event jobs.MatchEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: MatchScrapedStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
