package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ridgelinemotors/moto-reservations/internal/models"
	"github.com/ridgelinemotors/moto-reservations/internal/usecase/booking"
)

const (
	cacheKey = "inventory:settings"
	cacheTTL = 5 * time.Minute
)

// Cache is a read-through cache over the singleton settings row. The
// availability endpoints hit settings on every request, so the hot path
// reads redis and falls back to the database on miss or outage. A nil
// settings result with nil error means no row exists yet.
type Cache struct {
	store  booking.Store
	rdb    *redis.Client
	logger *zap.Logger
}

func NewCache(store booking.Store, rdb *redis.Client, logger *zap.Logger) *Cache {
	return &Cache{store: store, rdb: rdb, logger: logger}
}

func (c *Cache) Settings(ctx context.Context) (*models.InventorySettings, error) {

	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var s models.InventorySettings
			if jsonErr := json.Unmarshal([]byte(raw), &s); jsonErr == nil {
				return &s, nil
			}
			// Unreadable payload, fall through to the DB and rewrite.
		} else if err != redis.Nil {
			c.logger.Warn("settings cache read failed", zap.Error(err))
		}
	}

	s, err := c.store.GetSettings(ctx)
	if err == booking.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if c.rdb != nil {
		if raw, err := json.Marshal(s); err == nil {
			if err := c.rdb.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
				c.logger.Warn("settings cache write failed", zap.Error(err))
			}
		}
	}

	return s, nil
}

// Invalidate drops the cached row. Called by the admin update path
// after a successful write.
func (c *Cache) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Warn("settings cache invalidation failed", zap.Error(err))
	}
}
