package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/patient-transport/internal/domain"
)

// DefaultChannel is the Redis pub/sub channel trip events go to.
const DefaultChannel = "patient-transport.trips"

// RedisPublisher publishes events as JSON messages on a Redis channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher returns a publisher writing to channel through client.
// An empty channel selects DefaultChannel.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("events.NewRedisClient: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("events.NewRedisClient: ping: %w", err)
	}
	return client, nil
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, ev domain.TripEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events.RedisPublisher.Publish: marshal: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("events.RedisPublisher.Publish: %w", err)
	}
	return nil
}
