package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateRecord stores the most recently fetched conversion rate
// for one display currency: 1 unit of the base currency equals Rate
// units of CurrencyCode. Records are replaced wholesale, never mutated.
type ExchangeRateRecord struct {
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"` // always positive
	FetchedAt    time.Time       `json:"fetchedAt"`
}

// Age reports how long ago the record was fetched.
func (r ExchangeRateRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.FetchedAt)
}

// IdentityRate builds the implicit record for the base currency, or the
// degraded 1:1 fallback used when no rate can be obtained.
func IdentityRate(currencyCode string, now time.Time) ExchangeRateRecord {
	return ExchangeRateRecord{
		CurrencyCode: currencyCode,
		Rate:         decimal.NewFromInt(1),
		FetchedAt:    now,
	}
}
