package systemconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Cache кеш конфигурации платформы в redis
type Cache struct {
	client RedisClient
	key    string
	ttl    time.Duration
}

// NewCache создает кеш конфигурации
func NewCache(client RedisClient, key string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Get читает конфигурацию из кеша
func (c *Cache) Get(ctx context.Context) (*domain.SystemConfig, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - key=%s: %v", ErrCacheRead, c.key, err)
	}

	var cfg domain.SystemConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: Get - key=%s: %v", ErrDecode, c.key, err)
	}

	return &cfg, nil
}

// Set кладет конфигурацию в кеш на ttl
func (c *Cache) Set(ctx context.Context, cfg domain.SystemConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - key=%s: %v", ErrCacheWrite, c.key, err)
	}

	return nil
}

// Invalidate удаляет конфигурацию из кеша
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - key=%s: %v", ErrCacheWrite, c.key, err)
	}
	return nil
}
