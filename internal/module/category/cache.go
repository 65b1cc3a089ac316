package category

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CountsCache stores computed category counts for a short TTL. Both methods
// are best-effort: a miss or failure means the caller recomputes.
type CountsCache interface {
	Get(ctx context.Context, ownerID uint) (map[string]int, bool)
	Set(ctx context.Context, ownerID uint, counts map[string]int)
}

const countsKeyPrefix = "catalog:counts:"

// redisCountsCache implements CountsCache on a Redis client.
type redisCountsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCountsCache creates a CountsCache backed by the given Redis client.
func NewRedisCountsCache(client *redis.Client, ttl time.Duration) CountsCache {
	return &redisCountsCache{client: client, ttl: ttl}
}

func countsKey(ownerID uint) string {
	return countsKeyPrefix + strconv.FormatUint(uint64(ownerID), 10)
}

func (c *redisCountsCache) Get(ctx context.Context, ownerID uint) (map[string]int, bool) {
	raw, err := c.client.Get(ctx, countsKey(ownerID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Cache trouble is invisible to callers; they fall through
			// to the database.
			return nil, false
		}
		return nil, false
	}

	var counts map[string]int
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return nil, false
	}
	return counts, true
}

func (c *redisCountsCache) Set(ctx context.Context, ownerID uint, counts map[string]int) {
	payload, err := json.Marshal(counts)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, countsKey(ownerID), payload, c.ttl).Err()
}
