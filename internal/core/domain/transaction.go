package domain

import "math"

// TransactionAmount is a transaction's monetary value as recorded.
// Amount is always present and denominated in the base currency.
// OriginalAmount/OriginalCurrency are set when the user entered the
// transaction in a different currency; OriginalCurrency need not match
// either the base currency or the currently active display currency.
type TransactionAmount struct {
	Amount           float64  `json:"amount"`
	OriginalAmount   *float64 `json:"originalAmount,omitempty"`
	OriginalCurrency string   `json:"originalCurrency,omitempty"`
}

// HasOriginal reports whether the transaction carries a usable
// original-currency value.
func (t TransactionAmount) HasOriginal() bool {
	return t.OriginalCurrency != "" &&
		t.OriginalAmount != nil &&
		!math.IsNaN(*t.OriginalAmount) &&
		!math.IsInf(*t.OriginalAmount, 0)
}
