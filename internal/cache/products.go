package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/jimitchavdadev/ecommerce-platform/internal/models"
)

const productListKey = "products:all"

// ProductCache keeps the full catalog listing in Redis between catalog
// mutations. A nil *ProductCache is valid and behaves as a permanent miss, so
// callers need no guards when Redis is not configured.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.SugaredLogger
}

func NewProductCache(rdb *redis.Client, ttl time.Duration, log *zap.SugaredLogger) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *ProductCache) GetList(ctx context.Context) ([]models.Product, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, productListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnw("product cache read failed", "err", err)
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *ProductCache) SetList(ctx context.Context, products []models.Product) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, productListKey, raw, c.ttl).Err(); err != nil {
		c.log.Warnw("product cache write failed", "err", err)
	}
}

// Invalidate drops the cached listing after any catalog or stock mutation.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, productListKey).Err(); err != nil {
		c.log.Warnw("product cache invalidation failed", "err", err)
	}
}
