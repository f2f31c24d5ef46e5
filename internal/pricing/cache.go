package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/keyhold-backend/pkg/redis"
)

// Cache stores configurations in front of the repository. Writers use Set,
// readers populate with Add, which never replaces an existing entry.
type Cache interface {
	Get(ctx context.Context, propertyID string) (*PricingConfiguration, error)
	Set(ctx context.Context, cfg PricingConfiguration) error
	Add(ctx context.Context, cfg PricingConfiguration) error
	Delete(ctx context.Context, propertyID string) error
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	PricingConfigKey(propertyID string) string
}

type redisCache struct {
	store kvStore
	ttl   time.Duration
}

// NewRedisCache returns a JSON cache backed by redis. A nil store yields nil.
func NewRedisCache(store kvStore, ttl time.Duration) Cache {
	if store == nil {
		return nil
	}
	return &redisCache{store: store, ttl: ttl}
}

// Get returns nil without error on a miss.
func (c *redisCache) Get(ctx context.Context, propertyID string) (*PricingConfiguration, error) {
	raw, err := c.store.Get(ctx, c.store.PricingConfigKey(propertyID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cached configuration: %w", err)
	}
	var cfg PricingConfiguration
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decode cached configuration: %w", err)
	}
	return &cfg, nil
}

func (c *redisCache) Set(ctx context.Context, cfg PricingConfiguration) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	if err := c.store.Set(ctx, c.store.PricingConfigKey(cfg.PropertyID), payload, c.ttl); err != nil {
		return fmt.Errorf("write cached configuration: %w", err)
	}
	return nil
}

func (c *redisCache) Add(ctx context.Context, cfg PricingConfiguration) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	if _, err := c.store.SetNX(ctx, c.store.PricingConfigKey(cfg.PropertyID), payload, c.ttl); err != nil {
		return fmt.Errorf("populate cached configuration: %w", err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, propertyID string) error {
	if err := c.store.Del(ctx, c.store.PricingConfigKey(propertyID)); err != nil {
		return fmt.Errorf("evict cached configuration: %w", err)
	}
	return nil
}
