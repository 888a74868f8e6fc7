package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/budgetloop/currency_service/internal/apperrors"
	"github.com/budgetloop/currency_service/internal/core/domain"
	portsrepo "github.com/budgetloop/currency_service/internal/core/ports/repositories"
	portssvc "github.com/budgetloop/currency_service/internal/core/ports/services"
	"github.com/budgetloop/currency_service/internal/utils/currencyfmt"
	"github.com/shopspring/decimal"
)

// CurrencyFacade is the public surface of the currency subsystem. One
// instance is constructed at process start, initialized explicitly with
// Init, and shared by all callers. All conversions and formatting read
// the manager's currently held rate synchronously.
type CurrencyFacade struct {
	prefs     portsrepo.PreferenceRepository
	manager   *ExchangeRateManager
	formatter *currencyfmt.Formatter
	resolver  *TransactionResolver
	logger    *slog.Logger

	mu           sync.RWMutex
	active       domain.Currency
	showDecimals bool
}

var _ portssvc.CurrencySvcFacade = (*CurrencyFacade)(nil)

// NewCurrencyFacade creates the facade. Call Init before handing it to
// callers.
func NewCurrencyFacade(prefs portsrepo.PreferenceRepository, manager *ExchangeRateManager, formatter *currencyfmt.Formatter, logger *slog.Logger) *CurrencyFacade {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurrencyFacade{
		prefs:        prefs,
		manager:      manager,
		formatter:    formatter,
		resolver:     NewTransactionResolver(),
		logger:       logger,
		active:       domain.BaseCurrency(),
		showDecimals: true,
	}
}

// Init loads the persisted preferences and warms the exchange rate for
// the persisted currency. Every failure path recovers to defaults; Init
// never blocks startup on a missing preference row or an unreachable
// provider.
func (s *CurrencyFacade) Init(ctx context.Context) {
	stored, err := s.prefs.GetPreferences(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("failed to load preferences, using defaults",
				slog.String("error", err.Error()))
		}
		defaults := domain.DefaultPreferences()
		stored = &defaults
	}

	cur, ok := domain.CurrencyByCode(stored.CurrencyCode)
	if !ok {
		s.logger.Warn("persisted currency not in registry, falling back to base",
			slog.String("currency_code", stored.CurrencyCode))
		cur = domain.BaseCurrency()
	}

	s.manager.Activate(ctx, cur.Code)

	s.mu.Lock()
	s.active = cur
	s.showDecimals = stored.ShowDecimals
	s.mu.Unlock()
}

// ActiveCurrency returns the currently selected display currency.
func (s *CurrencyFacade) ActiveCurrency() domain.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// ListCurrencies returns the supported currency registry.
func (s *CurrencyFacade) ListCurrencies() []domain.Currency {
	return domain.SupportedCurrencies()
}

// CurrencySymbol returns the active currency's symbol.
func (s *CurrencyFacade) CurrencySymbol() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.Symbol
}

// ShowDecimals reports the persisted decimal-display preference.
func (s *CurrencyFacade) ShowDecimals() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showDecimals
}

// ActiveRate returns the exchange-rate record currently in effect.
func (s *CurrencyFacade) ActiveRate() domain.ExchangeRateRecord {
	return s.manager.ActiveRate()
}

// Degraded reports whether the session runs on the 1:1 fallback rate.
func (s *CurrencyFacade) Degraded() bool {
	return s.manager.Degraded()
}

// SetCurrency persists the new display currency, awaits a rate for it,
// and only then makes the new currency externally visible, so no caller
// can render the new symbol against the old rate. A provider failure
// still completes the
// switch using the fallback rate. Setting the already-active currency is
// a no-op: no fetch, no cache writes.
func (s *CurrencyFacade) SetCurrency(ctx context.Context, code string) error {
	cur, ok := domain.CurrencyByCode(code)
	if !ok {
		return fmt.Errorf("%w: unsupported currency code %q", apperrors.ErrValidation, code)
	}

	s.mu.RLock()
	same := s.active.Code == cur.Code
	showDecimals := s.showDecimals
	s.mu.RUnlock()
	if same {
		return nil
	}

	if err := s.prefs.SavePreferences(ctx, domain.Preferences{
		CurrencyCode: cur.Code,
		ShowDecimals: showDecimals,
	}); err != nil {
		// The switch must not block on a persistence failure; the
		// selection just won't survive a restart.
		s.logger.Warn("failed to persist currency preference",
			slog.String("currency_code", cur.Code),
			slog.String("error", err.Error()))
	}

	s.manager.Activate(ctx, cur.Code)

	s.mu.Lock()
	s.active = cur
	s.mu.Unlock()
	return nil
}

// SetShowDecimals persists the decimal-display preference. Persistence
// failures are logged and recovered; the in-memory toggle still flips.
func (s *CurrencyFacade) SetShowDecimals(ctx context.Context, show bool) error {
	s.mu.Lock()
	s.showDecimals = show
	code := s.active.Code
	s.mu.Unlock()

	if err := s.prefs.SavePreferences(ctx, domain.Preferences{
		CurrencyCode: code,
		ShowDecimals: show,
	}); err != nil {
		s.logger.Warn("failed to persist decimals preference",
			slog.String("error", err.Error()))
	}
	return nil
}

// ConvertFromUSD converts a base-currency amount into the active display
// currency using the currently held rate. Identity for the base
// currency; invalid input converts to zero with a warning.
func (s *CurrencyFacade) ConvertFromUSD(amount float64) float64 {
	if invalidAmount(amount) {
		s.logger.Warn("invalid amount passed to ConvertFromUSD, substituting zero")
		return 0
	}
	s.mu.RLock()
	code := s.active.Code
	s.mu.RUnlock()
	if code == domain.BaseCurrencyCode {
		return amount
	}
	rate := s.manager.ActiveRate().Rate
	return decimal.NewFromFloat(amount).Mul(rate).InexactFloat64()
}

// ConvertToUSD converts a display-currency amount back to the base
// currency. Exact multiplicative inverse of ConvertFromUSD given the
// same rate, up to floating-point rounding.
func (s *CurrencyFacade) ConvertToUSD(amount float64) float64 {
	if invalidAmount(amount) {
		s.logger.Warn("invalid amount passed to ConvertToUSD, substituting zero")
		return 0
	}
	s.mu.RLock()
	code := s.active.Code
	s.mu.RUnlock()
	if code == domain.BaseCurrencyCode {
		return amount
	}
	rate := s.manager.ActiveRate().Rate
	if rate.IsZero() {
		// Rates are validated positive everywhere they enter the system;
		// guard against division by zero all the same.
		return amount
	}
	return decimal.NewFromFloat(amount).Div(rate).InexactFloat64()
}

// FormatCurrency converts a base-currency amount to the active currency
// and renders it with the active symbol and locale.
func (s *CurrencyFacade) FormatCurrency(amount float64, opts portssvc.FormatOptions) string {
	s.mu.RLock()
	cur := s.active
	showDecimals := s.showDecimals
	s.mu.RUnlock()

	return s.formatter.Format(s.ConvertFromUSD(amount), cur.Symbol, cur.Code, currencyfmt.Options{
		ShowDecimals:        showDecimals,
		DisableAbbreviation: opts.DisableAbbreviations,
	})
}

// TransactionDisplayAmount picks the value a transaction displays: the
// recorded original amount when it was entered in the active currency,
// the converted ledger amount otherwise.
func (s *CurrencyFacade) TransactionDisplayAmount(tx domain.TransactionAmount) float64 {
	s.mu.RLock()
	code := s.active.Code
	s.mu.RUnlock()
	return s.resolver.DisplayAmount(tx, code, s.ConvertFromUSD)
}

// FormatTransactionAmount renders the resolved display value in the
// active currency.
func (s *CurrencyFacade) FormatTransactionAmount(tx domain.TransactionAmount) string {
	return s.ResolveTransaction(tx).Formatted
}

// ResolveTransaction returns the display value, its rendering and the
// secondary caption in one shot.
func (s *CurrencyFacade) ResolveTransaction(tx domain.TransactionAmount) portssvc.TransactionDisplay {
	s.mu.RLock()
	cur := s.active
	showDecimals := s.showDecimals
	s.mu.RUnlock()

	amount := s.resolver.DisplayAmount(tx, cur.Code, s.ConvertFromUSD)
	formatted := s.formatter.Format(amount, cur.Symbol, cur.Code, currencyfmt.Options{
		ShowDecimals: showDecimals,
	})

	display := portssvc.TransactionDisplay{
		Amount:    amount,
		Formatted: formatted,
	}

	if caption, ok := s.resolver.ResolveCaption(tx, cur.Code); ok {
		// Captions show the underlying recorded value, so they are never
		// abbreviated.
		display.Caption = s.formatter.Format(caption.Amount, caption.Currency.Symbol, caption.Currency.Code, currencyfmt.Options{
			ShowDecimals:        showDecimals,
			DisableAbbreviation: true,
		})
	}
	return display
}

func invalidAmount(amount float64) bool {
	return math.IsNaN(amount) || math.IsInf(amount, 0)
}
