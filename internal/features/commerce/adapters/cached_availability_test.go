package adapter

import (
	"context"
	"testing"
	"time"

	"provide-client/internal/core/cache"
	"provide-client/internal/features/commerce/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedAvailability(t *testing.T, responses ...queued) (*CachedAvailability, *queuedTransport, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	redisCache, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "provide:")
	require.NoError(t, err)
	t.Cleanup(func() { redisCache.Close() })

	provider, transport, _ := newTestAdapter(t, responses...)
	return NewCachedAvailability(provider, redisCache, 5*time.Minute), transport, mr
}

const availableDates = `{"ProductAvailabilities":[{"Date":"/Date(1390521600000)/"}]}`

// TestCachedAvailability_Hit verifies the second lookup is served from Redis.
func TestCachedAvailability_Hit(t *testing.T) {
	cached, transport, mr := newCachedAvailability(t, ok(availableDates))
	ctx := context.Background()

	dates, err := cached.GetProductAvailability(ctx, "P1", "94102")
	require.NoError(t, err)
	assert.Equal(t, []string{"2014-01-24"}, dates)

	dates, err = cached.GetProductAvailability(ctx, "P1", "94102-1234")
	require.NoError(t, err)
	assert.Equal(t, []string{"2014-01-24"}, dates)

	assert.Len(t, transport.requests, 1)
	assert.True(t, mr.Exists("provide:availability:P1:94102"))
	assert.Equal(t, 5*time.Minute, mr.TTL("provide:availability:P1:94102"))
}

// TestCachedAvailability_Expiry verifies entries are refetched after the TTL.
func TestCachedAvailability_Expiry(t *testing.T) {
	cached, transport, mr := newCachedAvailability(t, ok(availableDates), ok(`{"ProductAvailabilities":[]}`))
	ctx := context.Background()

	_, err := cached.GetProductAvailability(ctx, "P1", "")
	require.NoError(t, err)

	mr.FastForward(6 * time.Minute)

	dates, err := cached.GetProductAvailability(ctx, "P1", "")
	require.NoError(t, err)
	assert.Empty(t, dates)
	assert.Len(t, transport.requests, 2)
}

// TestCachedAvailability_ErrorsNotCached verifies provider failures are not stored.
func TestCachedAvailability_ErrorsNotCached(t *testing.T) {
	cached, _, mr := newCachedAvailability(t, fault("ServerError", "boom"))

	_, err := cached.GetProductAvailability(context.Background(), "P1", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindProvider, domain.KindOf(err))
	assert.Empty(t, mr.Keys())
}

// TestCachedAvailability_CacheDown verifies an unreachable cache falls through to the provider.
func TestCachedAvailability_CacheDown(t *testing.T) {
	cached, transport, mr := newCachedAvailability(t, ok(availableDates))
	mr.Close()

	dates, err := cached.GetProductAvailability(context.Background(), "P1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2014-01-24"}, dates)
	assert.Len(t, transport.requests, 1)
}

// TestCachedAvailability_CorruptEntry verifies unreadable entries are replaced.
func TestCachedAvailability_CorruptEntry(t *testing.T) {
	cached, transport, mr := newCachedAvailability(t, ok(availableDates))
	require.NoError(t, mr.Set("provide:availability:P1:", "not json"))

	dates, err := cached.GetProductAvailability(context.Background(), "P1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2014-01-24"}, dates)
	assert.Len(t, transport.requests, 1)

	stored, err := mr.Get("provide:availability:P1:")
	require.NoError(t, err)
	assert.JSONEq(t, `["2014-01-24"]`, stored)
}

// TestCachedAvailability_PassThrough verifies other operations reach the provider.
func TestCachedAvailability_PassThrough(t *testing.T) {
	cached, transport, _ := newCachedAvailability(t, ok(`{"CustomerExists":true}`))

	exists, err := cached.CustomerExists(context.Background(), "someone@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Len(t, transport.requests, 1)
}
