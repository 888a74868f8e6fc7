// Package redisstore provides a Redis-backed implementation of the rate
// cache port, selectable via RATE_CACHE_BACKEND for deployments that
// already run Redis and don't want rate lookups touching Postgres.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/budgetloop/currency_service/internal/apperrors"
	"github.com/budgetloop/currency_service/internal/core/domain"
	portsrepo "github.com/budgetloop/currency_service/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rate_cache:"

// RedisRateCacheRepository stores one JSON-encoded record per currency
// under rate_cache:<CODE>. Keys never expire: staleness is the
// manager's decision, and expired-but-present records are still needed
// as fetch-failure fallbacks.
type RedisRateCacheRepository struct {
	client *redis.Client
}

// NewRedisRateCacheRepository creates a Redis-backed rate cache.
func NewRedisRateCacheRepository(client *redis.Client) portsrepo.RateCacheRepository {
	return &RedisRateCacheRepository{client: client}
}

// GetRate retrieves the cached record for a currency code.
func (r *RedisRateCacheRepository) GetRate(ctx context.Context, currencyCode string) (*domain.ExchangeRateRecord, error) {
	payload, err := r.client.Get(ctx, rateKey(currencyCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cached rate for %s: %w", currencyCode, err)
	}

	var record domain.ExchangeRateRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to decode cached rate for %s: %w", currencyCode, err)
	}
	return &record, nil
}

// PutRate stores a record, replacing any previous one for the currency.
func (r *RedisRateCacheRepository) PutRate(ctx context.Context, record domain.ExchangeRateRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode rate for %s: %w", record.CurrencyCode, err)
	}
	if err := r.client.Set(ctx, rateKey(record.CurrencyCode), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store rate for %s: %w", record.CurrencyCode, err)
	}
	return nil
}

func rateKey(currencyCode string) string {
	return keyPrefix + strings.ToUpper(currencyCode)
}
