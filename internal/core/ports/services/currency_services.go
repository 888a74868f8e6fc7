package services

import (
	"context"

	"github.com/budgetloop/currency_service/internal/core/domain"
)

// FormatOptions tweaks amount formatting for a single call.
type FormatOptions struct {
	// DisableAbbreviations suppresses k/M/B magnitude suffixes for
	// large amounts.
	DisableAbbreviations bool
}

// TransactionDisplay is a fully resolved transaction amount: the value
// chosen for display, its formatted rendering in the active currency,
// and an optional secondary caption (e.g. "EUR 85.00" under a converted
// primary amount). Caption is empty when no caption applies.
type TransactionDisplay struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
	Caption   string  `json:"caption,omitempty"`
}

// CurrencyReaderSvc defines the synchronous, I/O-free read surface of
// the currency facade. Conversions and formatting read the currently
// held rate; they never block on network or storage.
type CurrencyReaderSvc interface {
	// ActiveCurrency returns the currently selected display currency.
	ActiveCurrency() domain.Currency

	// ListCurrencies returns the supported currency registry.
	ListCurrencies() []domain.Currency

	// CurrencySymbol returns the active currency's symbol.
	CurrencySymbol() string

	// ShowDecimals reports the persisted decimal-display preference.
	ShowDecimals() bool

	// ActiveRate returns the exchange-rate record currently in effect.
	ActiveRate() domain.ExchangeRateRecord

	// Degraded reports whether the session is operating on the 1:1
	// fallback rate because neither cache nor provider could supply one.
	Degraded() bool

	// ConvertToUSD converts a display-currency amount to the base
	// currency. Identity when the active currency is the base currency.
	ConvertToUSD(amount float64) float64

	// ConvertFromUSD converts a base-currency amount to the active
	// display currency. Exact multiplicative inverse of ConvertToUSD
	// given the same rate.
	ConvertFromUSD(amount float64) float64

	// FormatCurrency renders an amount in the active currency.
	FormatCurrency(amount float64, opts FormatOptions) string

	// TransactionDisplayAmount picks the value to display for a
	// transaction: the original amount when it was entered in the
	// active currency, the converted ledger amount otherwise.
	TransactionDisplayAmount(tx domain.TransactionAmount) float64

	// FormatTransactionAmount formats the display value chosen by
	// TransactionDisplayAmount in the active currency.
	FormatTransactionAmount(tx domain.TransactionAmount) string

	// ResolveTransaction returns the display value, its formatted
	// rendering and the secondary caption in one shot.
	ResolveTransaction(tx domain.TransactionAmount) TransactionDisplay
}

// CurrencyWriterSvc defines the operations that mutate persisted state.
type CurrencyWriterSvc interface {
	// SetCurrency persists the new display currency and awaits a rate
	// for it before the switch becomes externally visible. A provider
	// failure does not block the switch; the fallback rate is used.
	SetCurrency(ctx context.Context, code string) error

	// SetShowDecimals persists the decimal-display preference.
	SetShowDecimals(ctx context.Context, show bool) error
}

// CurrencySvcFacade combines the full public surface of the currency
// subsystem consumed by the rest of the application.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
