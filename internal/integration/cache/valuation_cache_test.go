package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

func newTestCache(t *testing.T, ttl time.Duration) (adapter.ValuationCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewValuationCache(client, ttl), server
}

func TestValuationCache(t *testing.T) {
	ctx := context.Background()
	cache, server := newTestCache(t, time.Hour)

	investmentID := uuid.New()
	version := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	key := adapter.ValuationKey{InvestmentID: investmentID, Version: version, Month: 12}

	_, found, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, key, 1126.8250301319697))

	value, found, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1126.8250301319697, value)

	t.Run("another version misses", func(t *testing.T) {
		stale := key
		stale.Version = version.Add(time.Second)
		_, found, err := cache.Get(ctx, stale)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("entries expire", func(t *testing.T) {
		assert.Equal(t, time.Hour, server.TTL("valuation:"+investmentID.String()))
	})

	t.Run("evict drops every month", func(t *testing.T) {
		other := key
		other.Month = 24
		require.NoError(t, cache.Set(ctx, other, 1269.73))
		require.NoError(t, cache.Evict(ctx, investmentID))

		for _, k := range []adapter.ValuationKey{key, other} {
			_, found, err := cache.Get(ctx, k)
			require.NoError(t, err)
			assert.False(t, found)
		}
	})
}

func TestValuationCacheReportsServerErrors(t *testing.T) {
	ctx := context.Background()
	cache, server := newTestCache(t, 0)
	server.Close()

	_, _, err := cache.Get(ctx, adapter.ValuationKey{InvestmentID: uuid.New()})
	assert.Error(t, err)
	assert.Error(t, cache.Set(ctx, adapter.ValuationKey{InvestmentID: uuid.New()}, 1))
}
