package availability

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SlotCache keeps rendered slot grids in Redis. A nil *SlotCache (or one
// built with a nil client) is a no-op, so callers never branch on whether
// caching is configured. Cache failures are logged and treated as misses.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	if client == nil {
		return nil
	}
	return &SlotCache{client: client, ttl: ttl}
}

func slotKey(date time.Time) string {
	return "slots:" + date.Format(DateLayout)
}

func (c *SlotCache) Get(ctx context.Context, date time.Time) ([]CourtSlots, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, slotKey(date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("slot cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var grid []CourtSlots
	if err := json.Unmarshal(data, &grid); err != nil {
		zap.L().Warn("slot cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return grid, true
}

func (c *SlotCache) Set(ctx context.Context, date time.Time, grid []CourtSlots) {
	if c == nil {
		return
	}
	data, err := json.Marshal(grid)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, slotKey(date), data, c.ttl).Err(); err != nil {
		zap.L().Warn("slot cache set failed", zap.Error(err))
	}
}

// Invalidate drops the grid for a date after a booking create or cancel.
func (c *SlotCache) Invalidate(ctx context.Context, date time.Time) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, slotKey(date)).Err(); err != nil {
		zap.L().Warn("slot cache invalidate failed", zap.Error(err))
	}
}
