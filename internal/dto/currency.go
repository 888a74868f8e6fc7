package dto

import (
	"time"

	"github.com/budgetloop/currency_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyResponse defines the data returned for a registry currency.
type CurrencyResponse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	FlagGlyph string `json:"flagGlyph"`
}

// ToCurrencyResponse converts a domain.Currency to its DTO.
func ToCurrencyResponse(cur domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:      cur.Code,
		Name:      cur.Name,
		Symbol:    cur.Symbol,
		FlagGlyph: cur.FlagGlyph,
	}
}

// ToListCurrencyResponse converts a slice of domain currencies to DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, cur := range currencies {
		res[i] = ToCurrencyResponse(cur)
	}
	return res
}

// SetCurrencyRequest defines the payload for switching the display
// currency.
type SetCurrencyRequest struct {
	Code string `json:"code" binding:"required,len=3,alpha"`
}

// ActiveCurrencyResponse describes the currently active display
// currency along with the rate in effect for it.
type ActiveCurrencyResponse struct {
	Currency      CurrencyResponse `json:"currency"`
	Rate          decimal.Decimal  `json:"rate"`
	RateFetchedAt time.Time        `json:"rateFetchedAt"`
	Degraded      bool             `json:"degraded"`
}
