package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache is a versioned JSON cache on Redis. Bump moves every reader to a new
// key space; stale entries simply expire. A nil *Cache, a nil client or a zero
// TTL disables it: reads always miss and writes are dropped.
type Cache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCache(rdb *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

func (c *Cache) versionKey() string { return c.prefix + ":version" }

func (c *Cache) key(ctx context.Context, name string) (string, error) {
	v, err := c.rdb.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%s:v%d:%s", c.prefix, v, name), nil
}

// GetOrLoad decodes the entry name into dst. On a miss it runs load, which
// must fill dst, then stores dst under the version read before load ran, so a
// Bump during load leaves the result unreachable. Redis errors are logged and
// treated as a miss; only load errors are returned.
func (c *Cache) GetOrLoad(ctx context.Context, name string, dst interface{}, load func() error) error {
	if !c.enabled() {
		return load()
	}
	key, err := c.key(ctx, name)
	if err != nil {
		log.Warn().Err(err).Str("cache", c.prefix).Msg("cache: version lookup failed")
		return load()
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if json.Unmarshal(raw, dst) == nil {
			return nil
		}
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("cache: get failed")
	}

	if err := load(); err != nil {
		return err
	}
	data, err := json.Marshal(dst)
	if err != nil {
		return nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: set failed")
	}
	return nil
}

// Bump invalidates every entry written so far.
func (c *Cache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Incr(ctx, c.versionKey()).Err()
}
