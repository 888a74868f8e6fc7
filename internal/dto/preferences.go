package dto

// PreferencesResponse defines the persisted display preferences.
type PreferencesResponse struct {
	CurrencyCode string `json:"currencyCode"`
	ShowDecimals bool   `json:"showDecimals"`
}

// UpdateDecimalsRequest defines the payload for the decimal-display
// toggle. A pointer distinguishes "false" from "missing".
type UpdateDecimalsRequest struct {
	ShowDecimals *bool `json:"showDecimals" binding:"required"`
}
