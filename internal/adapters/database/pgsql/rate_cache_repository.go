package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/budgetloop/currency_service/internal/apperrors"
	"github.com/budgetloop/currency_service/internal/core/domain"
	portsrepo "github.com/budgetloop/currency_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateCacheRepository implements the RateCacheRepository port on
// PostgreSQL. One row per currency code, replaced on write; the fetch
// timestamp is stored verbatim and returned verbatim.
type PgxRateCacheRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRateCacheRepository creates a Postgres-backed rate cache.
func NewPgxRateCacheRepository(pool *pgxpool.Pool) portsrepo.RateCacheRepository {
	return &PgxRateCacheRepository{pool: pool}
}

// GetRate retrieves the cached record for a currency code.
func (r *PgxRateCacheRepository) GetRate(ctx context.Context, currencyCode string) (*domain.ExchangeRateRecord, error) {
	query := `
		SELECT currency_code, rate, fetched_at
		FROM exchange_rate_cache
		WHERE currency_code = $1;
	`

	var record domain.ExchangeRateRecord
	err := r.pool.QueryRow(ctx, query, strings.ToUpper(currencyCode)).Scan(
		&record.CurrencyCode,
		&record.Rate,
		&record.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cached rate for %s: %w", currencyCode, err)
	}
	return &record, nil
}

// PutRate stores a record, replacing any previous one for the currency.
func (r *PgxRateCacheRepository) PutRate(ctx context.Context, record domain.ExchangeRateRecord) error {
	query := `
		INSERT INTO exchange_rate_cache (currency_code, rate, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (currency_code) DO UPDATE SET
			rate = EXCLUDED.rate,
			fetched_at = EXCLUDED.fetched_at;
	`

	_, err := r.pool.Exec(ctx, query,
		strings.ToUpper(record.CurrencyCode),
		record.Rate,
		record.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store rate for %s: %w", record.CurrencyCode, err)
	}
	return nil
}
