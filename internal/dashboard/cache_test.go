package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestFetchJSONCachesLoader(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return Stats{Currency: "IQD", StudentCount: 12}, nil
	}

	key, err := cache.BuildKey(ctx, "stats", "IQD")
	require.NoError(t, err)

	var first Stats
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	assert.Equal(t, int64(12), first.StudentCount)

	var second Stats
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, loads, "second fetch must come from the cache")
}

func TestBumpShiftsKeys(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	before, err := cache.BuildKey(ctx, "stats", "IQD")
	require.NoError(t, err)

	require.NoError(t, cache.Bump(ctx))

	after, err := cache.BuildKey(ctx, "stats", "IQD")
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestVersionInitialises(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	ver, err := cache.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ver)

	require.NoError(t, cache.Bump(ctx))
	ver, err = cache.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ver)
}

func TestNilCacheFallsBackToLoader(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return Stats{Currency: "USD"}, nil
	}

	var out Stats
	require.NoError(t, cache.FetchJSON(ctx, "stats:USD", &out, loader))
	require.NoError(t, cache.FetchJSON(ctx, "stats:USD", &out, loader))
	assert.Equal(t, "USD", out.Currency)
	assert.Equal(t, 2, loads)
	assert.NoError(t, cache.Bump(ctx))
}
