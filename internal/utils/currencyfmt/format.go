// Package currencyfmt renders monetary amounts for display: either as a
// locale-aware grouped decimal or, for large magnitudes, abbreviated
// with k/M/B suffixes.
package currencyfmt

import (
	"log/slog"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// AbbreviationThreshold is the absolute amount at and above which
// magnitude suffixes kick in.
const AbbreviationThreshold = 100_000

// Options controls a single Format call.
type Options struct {
	// ShowDecimals selects 2 fraction digits instead of 0.
	ShowDecimals bool
	// DisableAbbreviation forces full locale-grouped rendering even for
	// amounts past the abbreviation threshold.
	DisableAbbreviation bool
}

// currencyLocales maps ISO currency codes to the grouping convention
// used when rendering amounts in that currency. Fixed table; unknown
// codes fall back to a generic English locale.
var currencyLocales = map[string]language.Tag{
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"JPY": language.Japanese,
	"INR": language.MustParse("en-IN"),
	"CAD": language.MustParse("en-CA"),
	"AUD": language.MustParse("en-AU"),
	"CHF": language.MustParse("de-CH"),
	"CNY": language.MustParse("zh-CN"),
	"KRW": language.Korean,
	"BRL": language.BrazilianPortuguese,
	"MXN": language.MustParse("es-MX"),
	"SEK": language.Swedish,
	"NZD": language.MustParse("en-NZ"),
	"SGD": language.MustParse("en-SG"),
}

// Formatter renders amounts. Invalid inputs never escape as errors or
// panics; they are logged and formatted as zero.
type Formatter struct {
	logger *slog.Logger
}

// New creates a Formatter. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Formatter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Formatter{logger: logger}
}

// Format renders amount with the given currency symbol. The currency
// code selects the grouping locale. The sign is preserved as a leading
// "-" ahead of the symbol.
func (f *Formatter) Format(amount float64, symbol, currencyCode string, opts Options) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		f.logger.Warn("invalid amount passed to formatter, substituting zero",
			slog.String("currency_code", currencyCode))
		amount = 0
	}

	sign := ""
	abs := amount
	if abs < 0 {
		sign = "-"
		abs = -abs
	}

	decimals := 0
	if opts.ShowDecimals {
		decimals = 2
	}

	if !opts.DisableAbbreviation && abs >= AbbreviationThreshold {
		return sign + symbol + abbreviate(abs, decimals)
	}

	p := message.NewPrinter(localeFor(currencyCode))
	grouped := p.Sprintf("%v", number.Decimal(abs,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals)))
	return sign + symbol + grouped
}

// abbreviate renders an absolute amount >= 1e3 with a magnitude suffix.
func abbreviate(abs float64, decimals int) string {
	var divisor float64
	var suffix string
	switch {
	case abs >= 1e9:
		divisor, suffix = 1e9, "B"
	case abs >= 1e6:
		divisor, suffix = 1e6, "M"
	default:
		divisor, suffix = 1e3, "k"
	}
	return strconv.FormatFloat(abs/divisor, 'f', decimals, 64) + suffix
}

func localeFor(currencyCode string) language.Tag {
	if tag, ok := currencyLocales[currencyCode]; ok {
		return tag
	}
	return language.English
}
