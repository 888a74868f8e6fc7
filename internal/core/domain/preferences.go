package domain

// Preferences holds the user's persisted display settings. They survive
// process restarts and are independent of each other: changing the
// currency never touches the decimals toggle and vice versa.
type Preferences struct {
	CurrencyCode string `json:"currencyCode"`
	ShowDecimals bool   `json:"showDecimals"`
}

// DefaultPreferences is the state of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		CurrencyCode: BaseCurrencyCode,
		ShowDecimals: true,
	}
}
