package domain

import "strings"

// BaseCurrencyCode is the fixed ledger currency. Every persisted
// transaction amount is denominated in it.
const BaseCurrencyCode = "USD"

// Currency describes a display currency the user can pick.
type Currency struct {
	Code      string `json:"code"` // ISO-4217, e.g. "USD"
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	FlagGlyph string `json:"flagGlyph"`
}

// supportedCurrencies is the static registry of currencies the product
// offers. Kept as a fixed table on purpose; currency support is a
// product decision, not runtime data.
var supportedCurrencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$", FlagGlyph: "🇺🇸"},
	{Code: "EUR", Name: "Euro", Symbol: "€", FlagGlyph: "🇪🇺"},
	{Code: "GBP", Name: "British Pound", Symbol: "£", FlagGlyph: "🇬🇧"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", FlagGlyph: "🇯🇵"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", FlagGlyph: "🇮🇳"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "CA$", FlagGlyph: "🇨🇦"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", FlagGlyph: "🇦🇺"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF", FlagGlyph: "🇨🇭"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "CN¥", FlagGlyph: "🇨🇳"},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩", FlagGlyph: "🇰🇷"},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$", FlagGlyph: "🇧🇷"},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "MX$", FlagGlyph: "🇲🇽"},
	{Code: "SEK", Name: "Swedish Krona", Symbol: "kr", FlagGlyph: "🇸🇪"},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$", FlagGlyph: "🇳🇿"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", FlagGlyph: "🇸🇬"},
	{Code: "AED", Name: "UAE Dirham", Symbol: "د.إ", FlagGlyph: "🇦🇪"},
}

var currencyIndex = func() map[string]Currency {
	idx := make(map[string]Currency, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		idx[c.Code] = c
	}
	return idx
}()

// SupportedCurrencies returns the full registry in display order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// CurrencyByCode looks up a currency by its ISO code, case-insensitively.
func CurrencyByCode(code string) (Currency, bool) {
	c, ok := currencyIndex[strings.ToUpper(code)]
	return c, ok
}

// BaseCurrency returns the registry entry for the ledger currency.
func BaseCurrency() Currency {
	return currencyIndex[BaseCurrencyCode]
}
