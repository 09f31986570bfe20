package events

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher подмножество команд redis для pub/sub
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}
