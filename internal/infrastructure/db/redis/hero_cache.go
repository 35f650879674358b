package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/superheromanager/hero-service/internal/core/domain"
	"github.com/superheromanager/hero-service/internal/core/ports"
)

const (
	cacheTTL   = 30 * time.Second
	versionKey = "heroes:list:ver"
)

// HeroCache caches serialized hero list results per filter. Invalidation bumps
// a version counter embedded in every key, so stale entries simply expire
// instead of being scanned and deleted.
type HeroCache struct {
	client *redis.Client
}

// NewHeroCache creates a HeroCache wrapping the given Redis client.
func NewHeroCache(client *redis.Client) *HeroCache {
	return &HeroCache{client: client}
}

// Get returns the cached result for filter, or (nil, nil) on a miss.
func (c *HeroCache) Get(ctx context.Context, filter ports.ListHeroesFilter) ([]*domain.Hero, error) {
	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var heroes []*domain.Hero
	if err := json.Unmarshal(raw, &heroes); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return heroes, nil
}

// Set stores the result for filter with a short TTL.
func (c *HeroCache) Set(ctx context.Context, filter ports.ListHeroesFilter, heroes []*domain.Hero) error {
	key, err := c.key(ctx, filter)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(heroes)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, key, raw, cacheTTL).Err()
}

// Invalidate discards every cached list result by bumping the version counter.
func (c *HeroCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}

func (c *HeroCache) key(ctx context.Context, filter ports.ListHeroesFilter) (string, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("cache version: %w", err)
	}
	return fmt.Sprintf("heroes:list:%d:%s|%s|%s", ver, filter.Search, filter.Universe, filter.Sort), nil
}
