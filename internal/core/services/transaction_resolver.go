package services

import (
	"strings"

	"github.com/budgetloop/currency_service/internal/core/domain"
)

// Caption is the secondary line shown beneath a transaction's primary
// formatted amount, carrying the value in a currency other than the one
// the primary amount is rendered in.
type Caption struct {
	Amount   float64
	Currency domain.Currency
}

// TransactionResolver decides which value a transaction displays and
// whether a secondary caption accompanies it.
type TransactionResolver struct{}

// NewTransactionResolver creates a resolver.
func NewTransactionResolver() *TransactionResolver {
	return &TransactionResolver{}
}

// DisplayAmount picks the value to show for a transaction. When the
// transaction was entered in the currently active currency, the recorded
// original amount is exact and lossless and takes precedence over any
// converted figure. Otherwise the ledger amount is converted with the
// active rate.
func (r *TransactionResolver) DisplayAmount(tx domain.TransactionAmount, activeCode string, convertFromBase func(float64) float64) float64 {
	if tx.HasOriginal() && strings.EqualFold(tx.OriginalCurrency, activeCode) {
		return *tx.OriginalAmount
	}
	return convertFromBase(tx.Amount)
}

// ResolveCaption decides the secondary caption:
//   - original currency recorded and different from the active one:
//     the original amount in its own currency;
//   - no original currency and the active currency is not the base:
//     the raw ledger amount in the base currency, so the user can see
//     the underlying recorded value;
//   - otherwise nothing, the primary amount already tells the whole story.
func (r *TransactionResolver) ResolveCaption(tx domain.TransactionAmount, activeCode string) (Caption, bool) {
	if tx.OriginalCurrency != "" {
		if strings.EqualFold(tx.OriginalCurrency, activeCode) || !tx.HasOriginal() {
			return Caption{}, false
		}
		cur, ok := domain.CurrencyByCode(tx.OriginalCurrency)
		if !ok {
			// Unknown currency: still show the value, with the raw code
			// standing in for a symbol.
			code := strings.ToUpper(tx.OriginalCurrency)
			cur = domain.Currency{Code: code, Symbol: code + " "}
		}
		return Caption{Amount: *tx.OriginalAmount, Currency: cur}, true
	}

	if !strings.EqualFold(activeCode, domain.BaseCurrencyCode) {
		return Caption{Amount: tx.Amount, Currency: domain.BaseCurrency()}, true
	}

	return Caption{}, false
}
