package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"provide-client/internal/core/cache"
	"provide-client/internal/core/logger"
	"provide-client/internal/features/commerce/normalize"
	"provide-client/internal/features/commerce/ports"

	"go.uber.org/zap"
)

const availabilityKeyPrefix = "availability:"

// CachedAvailability caches GetProductAvailability results of the wrapped
// provider. Every other operation passes straight through. A failing cache
// never fails a call.
type CachedAvailability struct {
	ports.CommerceProvider
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedAvailability wraps provider with an availability cache.
func NewCachedAvailability(provider ports.CommerceProvider, c cache.Cache, ttl time.Duration) *CachedAvailability {
	return &CachedAvailability{
		CommerceProvider: provider,
		cache:            c,
		ttl:              ttl,
		logger:           logger.Named("availability_cache"),
	}
}

// availabilityKey normalizes the zip the same way the request does so
// equivalent lookups share an entry.
func availabilityKey(productID, zipCode string) string {
	if zipCode != "" {
		zipCode = normalize.FixZipCode(zipCode)
	}
	return availabilityKeyPrefix + productID + ":" + zipCode
}

// GetProductAvailability returns cached dates when present, otherwise asks
// the provider and stores a successful answer.
func (c *CachedAvailability) GetProductAvailability(ctx context.Context, productID, zipCode string) ([]string, error) {
	key := availabilityKey(productID, zipCode)

	data, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		var dates []string
		if err := json.Unmarshal(data, &dates); err == nil {
			return dates, nil
		}
		c.logger.Warn("discarding corrupt cache entry", zap.String("key", key))
	case !errors.Is(err, cache.ErrKeyNotFound):
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	dates, err := c.CommerceProvider.GetProductAvailability(ctx, productID, zipCode)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(dates)
	if err == nil {
		err = c.cache.Set(ctx, key, data, c.ttl)
	}
	if err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}

	return dates, nil
}
