package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/catalog-api/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// ProductCache keeps JSON snapshots of products keyed by id.
// Key format: product:<id>
type ProductCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewProductCache wraps client. A non-positive ttl falls back to defaultCacheTTL.
func NewProductCache(client redis.Cmdable, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ProductCache{client: client, ttl: ttl}
}

// Get returns nil, nil on a miss.
func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("product cache get: %w", err)
	}

	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("product cache decode: %w", err)
	}
	return &p, nil
}

func (c *ProductCache) Set(ctx context.Context, p *domain.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("product cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(p.ID), raw, c.ttl).Err()
}

func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *ProductCache) key(id string) string {
	return "product:" + id
}
