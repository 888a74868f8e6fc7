package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider fetches a fresh exchange rate for a display currency
// relative to the base currency. It is the only component that performs
// network I/O.
//
// A returned rate of exactly 1 for a non-base currency is suspicious
// (a genuine 1:1 rate against the base is extremely unlikely); providers
// log a warning but still return the value so callers can use it as a
// last resort.
type RateProvider interface {
	FetchRate(ctx context.Context, currencyCode string) (decimal.Decimal, error)
}
