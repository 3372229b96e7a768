// Package cache implements the valuation cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

const keyPrefix = "valuation"

// valuationCache implements adapter.ValuationCache. Values of one investment
// live in a single hash, so eviction is a single DEL.
type valuationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValuationCache creates a Redis backed valuation cache.
func NewValuationCache(client *redis.Client, ttl time.Duration) adapter.ValuationCache {
	return &valuationCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached value and whether it was found.
func (c *valuationCache) Get(ctx context.Context, key adapter.ValuationKey) (float64, bool, error) {
	raw, err := c.client.HGet(ctx, hashKey(key.InvestmentID), field(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read cached valuation: %w", err)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse cached valuation %q: %w", raw, err)
	}
	return value, true, nil
}

// Set stores a value and refreshes the TTL of the investment's hash.
func (c *valuationCache) Set(ctx context.Context, key adapter.ValuationKey, value float64) error {
	hk := hashKey(key.InvestmentID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hk, field(key), strconv.FormatFloat(value, 'g', -1, 64))
		if c.ttl > 0 {
			pipe.Expire(ctx, hk, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache valuation: %w", err)
	}
	return nil
}

// Evict removes every cached value of an investment.
func (c *valuationCache) Evict(ctx context.Context, investmentID uuid.UUID) error {
	if err := c.client.Del(ctx, hashKey(investmentID)).Err(); err != nil {
		return fmt.Errorf("failed to evict cached valuations: %w", err)
	}
	return nil
}

func hashKey(investmentID uuid.UUID) string {
	return keyPrefix + ":" + investmentID.String()
}

func field(key adapter.ValuationKey) string {
	return strconv.FormatInt(key.Version.UnixNano(), 10) + ":" + strconv.Itoa(key.Month)
}
