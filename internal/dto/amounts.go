package dto

// Conversion directions accepted by the convert endpoint.
const (
	DirectionToUSD   = "toUSD"
	DirectionFromUSD = "fromUSD"
)

// ConvertRequest defines the payload for a currency conversion. Amount
// is a pointer so a legitimate zero passes the required check.
type ConvertRequest struct {
	Amount    *float64 `json:"amount" binding:"required"`
	Direction string   `json:"direction" binding:"required,oneof=toUSD fromUSD"`
}

// ConvertResponse carries the conversion result.
type ConvertResponse struct {
	Amount       float64 `json:"amount"`
	Converted    float64 `json:"converted"`
	Direction    string  `json:"direction"`
	CurrencyCode string  `json:"currencyCode"`
}

// FormatRequest defines the payload for formatting a ledger amount in
// the active currency.
type FormatRequest struct {
	Amount               *float64 `json:"amount" binding:"required"`
	DisableAbbreviations bool     `json:"disableAbbreviations"`
}

// FormatResponse carries the formatted rendering.
type FormatResponse struct {
	Formatted string `json:"formatted"`
}

// TransactionDisplayRequest defines the payload for resolving a
// transaction's display amount. Amount is the ledger (base currency)
// value; the original fields record what the user actually entered when
// it differed from the base currency.
type TransactionDisplayRequest struct {
	Amount           *float64 `json:"amount" binding:"required"`
	OriginalAmount   *float64 `json:"originalAmount"`
	OriginalCurrency string   `json:"originalCurrency" binding:"omitempty,len=3,alpha"`
}

// TransactionDisplayResponse carries the resolved display value, its
// formatted rendering and the optional secondary caption.
type TransactionDisplayResponse struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
	Caption   string  `json:"caption,omitempty"`
}
