package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/budgetloop/currency_service/internal/apperrors"
	"github.com/budgetloop/currency_service/internal/core/domain"
	portsprov "github.com/budgetloop/currency_service/internal/core/ports/providers"
	portsrepo "github.com/budgetloop/currency_service/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// DefaultRateTTL is how long a cached exchange rate is trusted before a
// refetch is attempted.
const DefaultRateTTL = time.Hour

var one = decimal.NewFromInt(1)

// ensuredRate pairs a usable record with the degraded flag: degraded is
// set only when neither the provider nor the cache could supply a rate
// and the 1:1 identity fallback is in effect.
type ensuredRate struct {
	record   domain.ExchangeRateRecord
	degraded bool
}

// ExchangeRateManager decides whether to trust the rate cache, when to
// refetch, and what to do when the provider fails. It owns the single
// active rate for the session; conversions read it synchronously with
// no I/O on that path.
type ExchangeRateManager struct {
	cache    portsrepo.RateCacheRepository
	provider portsprov.RateProvider
	ttl      time.Duration
	logger   *slog.Logger

	group singleflight.Group

	mu         sync.RWMutex
	activeCode string
	active     domain.ExchangeRateRecord
	degraded   bool
}

// NewExchangeRateManager creates a manager. A non-positive ttl falls
// back to DefaultRateTTL; a nil logger falls back to slog.Default.
func NewExchangeRateManager(cache portsrepo.RateCacheRepository, provider portsprov.RateProvider, ttl time.Duration, logger *slog.Logger) *ExchangeRateManager {
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExchangeRateManager{
		cache:      cache,
		provider:   provider,
		ttl:        ttl,
		logger:     logger,
		activeCode: domain.BaseCurrencyCode,
		active:     domain.IdentityRate(domain.BaseCurrencyCode, time.Now()),
	}
}

// EnsureRate returns a usable rate for currencyCode. The base currency
// short-circuits to rate 1 with no cache or network touch. Otherwise the
// cache is consulted first; a fetch happens only on a miss, an expired
// record, or a suspect cached value. EnsureRate never fails: provider
// errors fall back to the last cached record regardless of its age, and
// to the identity rate (degraded=true) when no record exists.
func (m *ExchangeRateManager) EnsureRate(ctx context.Context, currencyCode string) (domain.ExchangeRateRecord, bool) {
	code := strings.ToUpper(currencyCode)
	if code == domain.BaseCurrencyCode {
		return domain.IdentityRate(code, time.Now()), false
	}

	cached, err := m.cache.GetRate(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			// Storage failure is treated like a cache miss.
			m.logger.Warn("rate cache read failed, proceeding to fetch",
				slog.String("currency_code", code),
				slog.String("error", err.Error()))
		}
		cached = nil
	}

	if cached != nil && cached.Age(time.Now()) < m.ttl {
		if cached.Rate.Equal(one) {
			// A 1:1 rate for a non-base currency is almost certainly a
			// previously stored fallback. Refetch instead of letting it
			// poison the session for the rest of the TTL. Known false
			// positive for genuinely pegged currencies.
			m.logger.Warn("cached rate of exactly 1 for non-base currency, treating as stale",
				slog.String("currency_code", code))
		} else {
			return *cached, false
		}
	}

	return m.refresh(ctx, code, cached)
}

// Activate makes currencyCode the current selection and ensures a rate
// for it before returning. Only a fetch whose currency still matches the
// selection when it completes may update the externally visible active
// rate, so a slow fetch for an abandoned selection cannot clobber it.
func (m *ExchangeRateManager) Activate(ctx context.Context, currencyCode string) (domain.ExchangeRateRecord, bool) {
	code := strings.ToUpper(currencyCode)

	m.mu.Lock()
	m.activeCode = code
	m.mu.Unlock()

	record, degraded := m.EnsureRate(ctx, code)

	m.mu.Lock()
	if m.activeCode == code {
		m.active = record
		m.degraded = degraded
	}
	m.mu.Unlock()

	return record, degraded
}

// ActiveRate returns the record currently in effect for conversions.
func (m *ExchangeRateManager) ActiveRate() domain.ExchangeRateRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Degraded reports whether the active rate is the 1:1 identity fallback.
func (m *ExchangeRateManager) Degraded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.degraded
}

// refresh fetches a fresh rate, de-duplicated per currency: a second
// request for the same currency while a fetch is in flight awaits the
// first fetch's result rather than issuing a duplicate network call.
func (m *ExchangeRateManager) refresh(ctx context.Context, code string, lastKnown *domain.ExchangeRateRecord) (domain.ExchangeRateRecord, bool) {
	v, _, _ := m.group.Do(code, func() (interface{}, error) {
		rate, err := m.provider.FetchRate(ctx, code)
		if err != nil {
			m.logger.Warn("rate fetch failed",
				slog.String("currency_code", code),
				slog.String("error", err.Error()))
			if lastKnown != nil {
				// A stale rate beats no rate.
				return ensuredRate{record: *lastKnown}, nil
			}
			return ensuredRate{record: domain.IdentityRate(code, time.Now()), degraded: true}, nil
		}

		record := domain.ExchangeRateRecord{
			CurrencyCode: code,
			Rate:         rate,
			FetchedAt:    time.Now(),
		}
		if putErr := m.cache.PutRate(ctx, record); putErr != nil {
			// The fetched rate is still good for this session even if it
			// could not be persisted.
			m.logger.Warn("rate cache write failed",
				slog.String("currency_code", code),
				slog.String("error", putErr.Error()))
		}
		return ensuredRate{record: record}, nil
	})

	res := v.(ensuredRate)
	return res.record, res.degraded
}
