package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/terravista/projection-service/internal/domain/model"
)

// RedisCalculationCache implements port.CalculationCache on Redis. Results
// are stored as JSON under the caller-supplied digest key.
type RedisCalculationCache struct {
	client *redis.Client
}

// NewRedisCalculationCache creates a cache backed by the given client.
func NewRedisCalculationCache(client *redis.Client) *RedisCalculationCache {
	return &RedisCalculationCache{client: client}
}

// Get loads a cached calculation result. A missing key is not an error.
func (c *RedisCalculationCache) Get(ctx context.Context, key string) (model.CalculationResult, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.CalculationResult{}, false, nil
		}
		return model.CalculationResult{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var result model.CalculationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return model.CalculationResult{}, false, fmt.Errorf("unmarshal cached result: %w", err)
	}
	return result, true, nil
}

// Set stores a calculation result with the given TTL.
func (c *RedisCalculationCache) Set(ctx context.Context, key string, result model.CalculationResult, ttl time.Duration) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
