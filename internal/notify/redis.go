package notify

import (
	"context" // Context for Redis operations

	"github.com/redis/go-redis/v9" // Redis client
)

// RedisPublisher publishes messages over Redis pub/sub, one topic per event
type RedisPublisher struct {
	rdb *redis.Client // Redis client
}

// NewRedisPublisher builds a RedisPublisher
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// Publish sends one serialized message to a channel
func (p *RedisPublisher) Publish(ctx context.Context, channel string, message []byte) error {
	return p.rdb.Publish(ctx, channel, message).Err()
}
