package rates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/budgetloop/currency_service/internal/adapters/rates"
	"github.com/budgetloop/currency_service/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRate_Success(t *testing.T) {
	var gotCurrency string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCurrency = r.URL.Query().Get("currency")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rate": 0.92}`))
	}))
	defer server.Close()

	provider := rates.NewHTTPRateProvider(server.URL, time.Second, nil)
	rate, err := provider.FetchRate(context.Background(), "eur")

	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.92)))
	assert.Equal(t, "EUR", gotCurrency, "currency code is uppercased on the wire")
}

func TestFetchRate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := rates.NewHTTPRateProvider(server.URL, time.Second, nil)
	_, err := provider.FetchRate(context.Background(), "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestFetchRate_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	provider := rates.NewHTTPRateProvider(server.URL, time.Second, nil)
	_, err := provider.FetchRate(context.Background(), "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestFetchRate_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	provider := rates.NewHTTPRateProvider(server.URL, time.Second, nil)
	_, err := provider.FetchRate(context.Background(), "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
}

func TestFetchRate_NonPositiveRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rate": 0}`))
	}))
	defer server.Close()

	provider := rates.NewHTTPRateProvider(server.URL, time.Second, nil)
	_, err := provider.FetchRate(context.Background(), "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
}

func TestFetchRate_SuspectedInvalidRateStillReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rate": 1}`))
	}))
	defer server.Close()

	provider := rates.NewHTTPRateProvider(server.URL, time.Second, nil)
	rate, err := provider.FetchRate(context.Background(), "EUR")

	// A 1:1 rate for a non-base currency is suspicious but usable.
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
}
