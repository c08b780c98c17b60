// Package cache stores computed dashboard results per user so repeated
// requests skip the database fetch and the projection.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a per-user key/value store for JSON-encodable results.
//
// Each user has a generation that Invalidate advances. A value computed from
// data read under generation g is only stored while the user is still at g,
// so a result racing with a write never outlives the write.
type Cache interface {
	// Get decodes the value stored under key into dst and reports whether it
	// was found.
	Get(ctx context.Context, userID, key string, dst any) (bool, error)
	// Generation returns the user's current generation. Read it before
	// loading the data a cached value is derived from.
	Generation(ctx context.Context, userID string) (int64, error)
	// Set stores value under key if the user is still at generation gen.
	// A stale write is dropped without error.
	Set(ctx context.Context, userID, key string, gen int64, value any) error
	// Invalidate drops every entry stored for the user and advances the
	// generation.
	Invalidate(ctx context.Context, userID string) error
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// redisCache keeps one hash per user next to a generation counter.
type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, opts Options) (Cache, func() error, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return NewRedisWithClient(rdb, opts.TTL), rdb.Close, nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(rdb *redis.Client, ttl time.Duration) Cache {
	return &redisCache{rdb: rdb, ttl: ttl}
}

func userKey(userID string) string {
	return "dashboard:" + userID
}

func generationKey(userID string) string {
	return "dashboard-gen:" + userID
}

// setIfCurrent writes one hash field when the generation key still holds the
// expected value. A missing generation key counts as 0.
var setIfCurrent = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if not current then current = '0' end
if current ~= ARGV[1] then return 0 end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
if tonumber(ARGV[4]) > 0 then redis.call('PEXPIRE', KEYS[1], ARGV[4]) end
return 1
`)

func (c *redisCache) Get(ctx context.Context, userID, key string, dst any) (bool, error) {
	raw, err := c.rdb.HGet(ctx, userKey(userID), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis hget: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *redisCache) Generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

func (c *redisCache) Set(ctx context.Context, userID, key string, gen int64, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	keys := []string{userKey(userID), generationKey(userID)}
	err = setIfCurrent.Run(ctx, c.rdb, keys, strconv.FormatInt(gen, 10), key, raw, c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, userID string) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(userID))
		pipe.Del(ctx, userKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

// Noop never stores anything; every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string, string, any) (bool, error) { return false, nil }
func (Noop) Generation(context.Context, string) (int64, error) { return 0, nil }
func (Noop) Set(context.Context, string, string, int64, any) error { return nil }
func (Noop) Invalidate(context.Context, string) error { return nil }
