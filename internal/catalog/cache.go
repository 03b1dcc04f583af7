package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Skotchmaster/aura_shop/internal/models"
)

// Cache keeps the last good catalog snapshot outside the process.
type Cache interface {
	Load(ctx context.Context) ([]models.Product, bool, error)
	Store(ctx context.Context, products []models.Product) error
}

const DefaultCacheKey = "storefront:catalog:snapshot"

type RedisCache struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, Key: DefaultCacheKey, TTL: ttl}
}

func (c *RedisCache) Load(ctx context.Context) ([]models.Product, bool, error) {
	raw, err := c.Client.Get(ctx, c.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", c.Key, err)
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("decode cached catalog: %w", err)
	}
	return products, true, nil
}

func (c *RedisCache) Store(ctx context.Context, products []models.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := c.Client.Set(ctx, c.Key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.Key, err)
	}
	return nil
}
