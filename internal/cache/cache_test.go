package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	Total  string   `json:"total"`
	Series []string `json:"series"`
}

func newTestCache(t *testing.T, ttl time.Duration) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisWithClient(rdb, ttl), mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	var got result
	found, err := c.Get(ctx, "u1", "cash-flow:2017-03-20", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := result{Total: "10150.00", Series: []string{"1", "2"}}
	require.NoError(t, c.Set(ctx, "u1", "cash-flow:2017-03-20", 0, want))

	found, err = c.Get(ctx, "u1", "cash-flow:2017-03-20", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestRedisCache_InvalidateIsPerUser(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", "a", 0, result{Total: "1"}))
	require.NoError(t, c.Set(ctx, "u1", "b", 0, result{Total: "2"}))
	require.NoError(t, c.Set(ctx, "u2", "a", 0, result{Total: "3"}))

	require.NoError(t, c.Invalidate(ctx, "u1"))

	gen, err := c.Generation(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	gen, err = c.Generation(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	var got result
	found, _ := c.Get(ctx, "u1", "a", &got)
	assert.False(t, found)
	found, _ = c.Get(ctx, "u1", "b", &got)
	assert.False(t, found)
	found, _ = c.Get(ctx, "u2", "a", &got)
	assert.True(t, found)
	assert.Equal(t, "3", got.Total)
}

func TestRedisCache_DropsWritesFromStaleGeneration(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx, "u1")
	require.NoError(t, err)

	// A write lands while the result is being computed.
	require.NoError(t, c.Invalidate(ctx, "u1"))
	require.NoError(t, c.Set(ctx, "u1", "a", gen, result{Total: "old"}))

	var got result
	found, err := c.Get(ctx, "u1", "a", &got)
	require.NoError(t, err)
	assert.False(t, found, "stale result must not be cached")

	gen, err = c.Generation(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "u1", "a", gen, result{Total: "new"}))
	found, err = c.Get(ctx, "u1", "a", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new", got.Total)
}

func TestRedisCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", "a", 0, result{Total: "1"}))
	assert.Equal(t, 30*time.Second, mr.TTL("dashboard:u1"))

	mr.FastForward(31 * time.Second)

	var got result
	found, err := c.Get(ctx, "u1", "a", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	var got result
	_, err := c.Get(context.Background(), "u1", "a", &got)
	assert.Error(t, err)
}

func TestNewRedis_FailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := NewRedis(context.Background(), Options{Addr: addr})
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", "a", 0, result{Total: "1"}))
	var got result
	found, err := c.Get(ctx, "u1", "a", &got)
	require.NoError(t, err)
	assert.False(t, found)
	gen, err := c.Generation(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, gen)
	assert.NoError(t, c.Invalidate(ctx, "u1"))
}
