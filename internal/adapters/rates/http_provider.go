// Package rates provides the remote exchange-rate provider adapter.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/budgetloop/currency_service/internal/apperrors"
	"github.com/budgetloop/currency_service/internal/core/domain"
	portsprov "github.com/budgetloop/currency_service/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

// rateResponse is the only shape this adapter assumes of the remote
// provider: a JSON object carrying the rate relative to the base
// currency.
type rateResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

// HTTPRateProvider fetches rates from a configured HTTP endpoint with a
// ?currency=<CODE> query parameter.
type HTTPRateProvider struct {
	client   *http.Client
	endpoint string
	logger   *slog.Logger
}

var _ portsprov.RateProvider = (*HTTPRateProvider)(nil)

// NewHTTPRateProvider creates the provider. A non-positive timeout falls
// back to 10s; a nil logger falls back to slog.Default.
func NewHTTPRateProvider(endpoint string, timeout time.Duration, logger *slog.Logger) *HTTPRateProvider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPRateProvider{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		logger:   logger,
	}
}

// FetchRate requests the rate for currencyCode relative to the base
// currency. A rate of exactly 1 for a non-base currency is logged as
// suspected-invalid but still returned; callers may use it as a last
// resort.
func (p *HTTPRateProvider) FetchRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	code := strings.ToUpper(currencyCode)

	reqURL, err := url.Parse(p.endpoint)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate provider endpoint: %w", err)
	}
	q := reqURL.Query()
	q.Set("currency", code)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request for %s: %w", code, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, fmt.Errorf("%w: provider returned status %d for %s", apperrors.ErrRateUnavailable, resp.StatusCode, code)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
	}
	if body.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s for %s", apperrors.ErrMalformedResponse, body.Rate, code)
	}

	if code != domain.BaseCurrencyCode && body.Rate.Equal(decimal.NewFromInt(1)) {
		p.logger.Warn("provider returned rate of exactly 1 for non-base currency, suspected invalid",
			slog.String("currency_code", code))
	}

	return body.Rate, nil
}
