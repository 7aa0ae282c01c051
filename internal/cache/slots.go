package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
)

const (
	keyPrefix  = "slots:"
	DefaultTTL = 5 * time.Minute
)

// RedisSlotCache caches slot discovery results per owner. Every owner has
// a version counter that is part of each result key; bumping it orphans
// all of that owner's cached results, which then expire by TTL.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisSlotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisSlotCache{client: client, ttl: ttl, log: log}
}

func versionKey(ownerID uint) string {
	return fmt.Sprintf("%sver:%d", keyPrefix, ownerID)
}

func resultKey(q domain.SlotQuery, version domain.CacheVersion) string {
	return fmt.Sprintf("%s%d:v%d:%d:%s:%d",
		keyPrefix, q.OwnerID, int64(version), int(q.Weekday), q.Date, q.Duration)
}

func (c *RedisSlotCache) version(ctx context.Context, ownerID uint) (domain.CacheVersion, error) {
	v, err := c.client.Get(ctx, versionKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return domain.NoCacheVersion, err
	}
	return domain.CacheVersion(v), nil
}

func (c *RedisSlotCache) Get(ctx context.Context, q domain.SlotQuery) ([]domain.Slot, domain.CacheVersion, bool) {
	v, err := c.version(ctx, q.OwnerID)
	if err != nil {
		c.log.Warn("slot cache version read failed", zap.Uint("owner", q.OwnerID), zap.Error(err))
		return nil, domain.NoCacheVersion, false
	}

	raw, err := c.client.Get(ctx, resultKey(q, v)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("slot cache read failed", zap.Uint("owner", q.OwnerID), zap.Error(err))
		}
		return nil, v, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warn("slot cache payload corrupt", zap.Uint("owner", q.OwnerID), zap.Error(err))
		return nil, v, false
	}
	if slots == nil {
		slots = []domain.Slot{}
	}
	return slots, v, true
}

// Set stores slots under the version the caller observed before computing
// them. If the owner was invalidated since, the entry is written under a
// dead key and only expires.
func (c *RedisSlotCache) Set(ctx context.Context, q domain.SlotQuery, version domain.CacheVersion, slots []domain.Slot) {
	if version < 0 {
		return
	}

	data, err := json.Marshal(slots)
	if err != nil {
		c.log.Warn("slot cache encode failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, resultKey(q, version), data, c.ttl).Err(); err != nil {
		c.log.Warn("slot cache write failed", zap.Uint("owner", q.OwnerID), zap.Error(err))
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, ownerID uint) {
	if err := c.client.Incr(ctx, versionKey(ownerID)).Err(); err != nil {
		c.log.Warn("slot cache invalidate failed", zap.Uint("owner", ownerID), zap.Error(err))
	}
}

// Noop never hits.
type Noop struct{}

func (Noop) Get(context.Context, domain.SlotQuery) ([]domain.Slot, domain.CacheVersion, bool) {
	return nil, domain.NoCacheVersion, false
}

func (Noop) Set(context.Context, domain.SlotQuery, domain.CacheVersion, []domain.Slot) {}

func (Noop) Invalidate(context.Context, uint) {}

var (
	_ domain.SlotCache = (*RedisSlotCache)(nil)
	_ domain.SlotCache = Noop{}
)
