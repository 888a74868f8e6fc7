package repositories

import (
	"context"

	"github.com/budgetloop/currency_service/internal/core/domain"
)

// RateCacheRepository persists one exchange-rate record per display
// currency. It is pure storage: no expiry logic lives here, records are
// returned verbatim with their original fetch timestamp, and staleness
// decisions belong to the caller.
type RateCacheRepository interface {
	// GetRate retrieves the cached record for a currency code.
	// Returns apperrors.ErrNotFound when no record exists.
	GetRate(ctx context.Context, currencyCode string) (*domain.ExchangeRateRecord, error)

	// PutRate stores a record, replacing any previous one for the same
	// currency code. The write must survive process restarts.
	PutRate(ctx context.Context, record domain.ExchangeRateRecord) error
}
