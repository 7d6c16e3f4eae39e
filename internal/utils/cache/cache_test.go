package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Food-Rescue-Backend/internal/utils/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type failingCache struct {
	sets int
}

func (f *failingCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (f *failingCache) Set(context.Context, string, []byte, time.Duration) error {
	f.sets++
	return errors.New("connection refused")
}

func (f *failingCache) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedisCache(client)
}

func TestRemember(t *testing.T) {
	ctx := context.Background()

	t.Run("computes once then serves from cache", func(t *testing.T) {
		store := cache.NewStore(cache.NewMemoryCache(time.Minute), nil)
		calls := 0
		compute := func(context.Context) (payload, error) {
			calls++
			return payload{Name: "dashboard", Count: calls}, nil
		}

		first, err := cache.Remember(ctx, store, "admin:dashboard", time.Minute, compute)
		require.NoError(t, err)
		second, err := cache.Remember(ctx, store, "admin:dashboard", time.Minute, compute)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, first, second)
	})

	t.Run("compute error is returned and not cached", func(t *testing.T) {
		store := cache.NewStore(cache.NewMemoryCache(time.Minute), nil)
		boom := errors.New("query failed")

		_, err := cache.Remember(ctx, store, "k", time.Minute, func(context.Context) (int, error) {
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := cache.Remember(ctx, store, "k", time.Minute, func(context.Context) (int, error) {
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, got)
	})

	t.Run("backend failure degrades to recomputation", func(t *testing.T) {
		backend := &failingCache{}
		store := cache.NewStore(backend, nil)

		got, err := cache.Remember(ctx, store, "waste:available", time.Minute, func(context.Context) ([]string, error) {
			return []string{"a", "b"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
		assert.Equal(t, 1, backend.sets)

		store.Invalidate(ctx, "waste:available")
	})

	t.Run("undecodable entry is treated as a miss", func(t *testing.T) {
		backend := cache.NewMemoryCache(time.Minute)
		require.NoError(t, backend.Set(ctx, "k", []byte("{not json"), time.Minute))
		store := cache.NewStore(backend, nil)

		got, err := cache.Remember(ctx, store, "k", time.Minute, func(context.Context) (payload, error) {
			return payload{Name: "fresh"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", got.Name)
	})

	t.Run("nil store computes directly", func(t *testing.T) {
		got, err := cache.Remember(ctx, nil, "k", time.Minute, func(context.Context) (int, error) {
			return 3, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("entry expires after ttl", func(t *testing.T) {
		mr, backend := newRedis(t)
		store := cache.NewStore(backend, nil)
		calls := 0
		compute := func(context.Context) (int, error) {
			calls++
			return calls, nil
		}

		first, err := cache.Remember(ctx, store, "myClaims:u1", 30*time.Second, compute)
		require.NoError(t, err)
		cached, err := cache.Remember(ctx, store, "myClaims:u1", 30*time.Second, compute)
		require.NoError(t, err)
		assert.Equal(t, first, cached)

		mr.FastForward(31 * time.Second)

		fresh, err := cache.Remember(ctx, store, "myClaims:u1", 30*time.Second, compute)
		require.NoError(t, err)
		assert.Equal(t, 2, fresh)
	})
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(time.Minute)

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, c.Set(ctx, "myClaims:1", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "myClaims:2", []byte("2"), time.Minute))
	require.NoError(t, c.Set(ctx, "waste:available", []byte("w"), time.Minute))

	require.NoError(t, c.Delete(ctx, "myClaims:*"))

	_, err = c.Get(ctx, "myClaims:1")
	assert.ErrorIs(t, err, cache.ErrMiss)
	_, err = c.Get(ctx, "myClaims:2")
	assert.ErrorIs(t, err, cache.ErrMiss)

	got, err := c.Get(ctx, "waste:available")
	require.NoError(t, err)
	assert.Equal(t, []byte("w"), got)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)
	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, c := newRedis(t)

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, c.Set(ctx, "myClaims:1", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "myClaims:2", []byte("2"), time.Minute))
	require.NoError(t, c.Set(ctx, "admin:users:list", []byte("[]"), 5*time.Minute))

	ttl := mr.TTL("admin:users:list")
	assert.Equal(t, 5*time.Minute, ttl)

	require.NoError(t, c.Delete(ctx, "myClaims:*"))
	assert.False(t, mr.Exists("myClaims:1"))
	assert.False(t, mr.Exists("myClaims:2"))
	assert.True(t, mr.Exists("admin:users:list"))

	require.NoError(t, c.Delete(ctx, "admin:users:list"))
	assert.False(t, mr.Exists("admin:users:list"))

	mr.Close()
	_, err = c.Get(ctx, "anything")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrMiss)
}
