package services_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/budgetloop/currency_service/internal/apperrors"
	"github.com/budgetloop/currency_service/internal/core/domain"
	portssvc "github.com/budgetloop/currency_service/internal/core/ports/services"
	"github.com/budgetloop/currency_service/internal/core/services"
	"github.com/budgetloop/currency_service/internal/utils/currencyfmt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyFacadeTestSuite struct {
	suite.Suite
	mockPrefs    *MockPreferenceRepository
	mockCache    *MockRateCacheRepository
	mockProvider *MockRateProvider
	facade       *services.CurrencyFacade
}

func (suite *CurrencyFacadeTestSuite) SetupTest() {
	suite.mockPrefs = new(MockPreferenceRepository)
	suite.mockCache = new(MockRateCacheRepository)
	suite.mockProvider = new(MockRateProvider)

	manager := services.NewExchangeRateManager(suite.mockCache, suite.mockProvider, time.Hour, nil)
	suite.facade = services.NewCurrencyFacade(suite.mockPrefs, manager, currencyfmt.New(nil), nil)
}

// initWithDefaults brings the facade up as on a fresh install: no stored
// preferences, base currency active.
func (suite *CurrencyFacadeTestSuite) initWithDefaults() {
	suite.mockPrefs.On("GetPreferences", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.facade.Init(context.Background())
}

// switchToEUR performs a USD→EUR switch against an empty cache with the
// provider returning the given rate.
func (suite *CurrencyFacadeTestSuite) switchToEUR(rate float64) {
	suite.mockPrefs.On("SavePreferences", mock.Anything, mock.AnythingOfType("domain.Preferences")).Return(nil).Once()
	suite.mockCache.On("GetRate", mock.Anything, "EUR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchRate", mock.Anything, "EUR").Return(decimal.NewFromFloat(rate), nil).Once()
	suite.mockCache.On("PutRate", mock.Anything, mock.AnythingOfType("domain.ExchangeRateRecord")).Return(nil).Once()

	suite.Require().NoError(suite.facade.SetCurrency(context.Background(), "EUR"))
}

func (suite *CurrencyFacadeTestSuite) TestInit_DefaultsWhenNoStoredPreferences() {
	suite.initWithDefaults()

	suite.Equal("USD", suite.facade.ActiveCurrency().Code)
	suite.True(suite.facade.ShowDecimals())
	suite.False(suite.facade.Degraded())
	// Base currency never touches cache or network.
	suite.mockCache.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRate", mock.Anything, mock.Anything)
}

func (suite *CurrencyFacadeTestSuite) TestInit_LoadsPersistedCurrencyAndWarmsRate() {
	stored := &domain.Preferences{CurrencyCode: "EUR", ShowDecimals: false}
	cached := &domain.ExchangeRateRecord{
		CurrencyCode: "EUR",
		Rate:         decimal.NewFromFloat(0.92),
		FetchedAt:    time.Now().Add(-10 * time.Minute),
	}
	suite.mockPrefs.On("GetPreferences", mock.Anything).Return(stored, nil).Once()
	suite.mockCache.On("GetRate", mock.Anything, "EUR").Return(cached, nil).Once()

	suite.facade.Init(context.Background())

	suite.Equal("EUR", suite.facade.ActiveCurrency().Code)
	suite.False(suite.facade.ShowDecimals())
	suite.True(suite.facade.ActiveRate().Rate.Equal(decimal.NewFromFloat(0.92)))
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRate", mock.Anything, mock.Anything)
}

func (suite *CurrencyFacadeTestSuite) TestInit_UnknownPersistedCurrencyFallsBackToBase() {
	stored := &domain.Preferences{CurrencyCode: "ZZZ", ShowDecimals: true}
	suite.mockPrefs.On("GetPreferences", mock.Anything).Return(stored, nil).Once()

	suite.facade.Init(context.Background())

	suite.Equal("USD", suite.facade.ActiveCurrency().Code)
}

func (suite *CurrencyFacadeTestSuite) TestSetCurrency_SwitchScenario() {
	suite.initWithDefaults()

	// Before the switch completes, formatting reads the base currency.
	suite.Equal("$100.00", suite.facade.FormatCurrency(100, portssvc.FormatOptions{}))

	suite.switchToEUR(0.92)

	suite.Equal("EUR", suite.facade.ActiveCurrency().Code)
	suite.Equal("€", suite.facade.CurrencySymbol())
	// 100 USD at 0.92, rendered with the EUR grouping convention.
	suite.Equal("€92,00", suite.facade.FormatCurrency(100, portssvc.FormatOptions{}))
	suite.mockPrefs.AssertExpectations(suite.T())
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *CurrencyFacadeTestSuite) TestSetCurrency_UnsupportedCode() {
	suite.initWithDefaults()

	err := suite.facade.SetCurrency(context.Background(), "ZZZ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("USD", suite.facade.ActiveCurrency().Code)
}

func (suite *CurrencyFacadeTestSuite) TestSetCurrency_IdempotentWhenAlreadyActive() {
	suite.initWithDefaults()

	suite.Require().NoError(suite.facade.SetCurrency(context.Background(), "USD"))

	suite.mockPrefs.AssertNotCalled(suite.T(), "SavePreferences", mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "PutRate", mock.Anything, mock.Anything)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRate", mock.Anything, mock.Anything)
}

func (suite *CurrencyFacadeTestSuite) TestSetCurrency_CompletesOnFetchFailure() {
	suite.initWithDefaults()
	suite.mockPrefs.On("SavePreferences", mock.Anything, mock.AnythingOfType("domain.Preferences")).Return(nil).Once()
	suite.mockCache.On("GetRate", mock.Anything, "EUR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchRate", mock.Anything, "EUR").Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	// The switch never blocks the user: it completes on the fallback rate.
	suite.Require().NoError(suite.facade.SetCurrency(context.Background(), "EUR"))

	suite.Equal("EUR", suite.facade.ActiveCurrency().Code)
	suite.True(suite.facade.Degraded())
	suite.True(suite.facade.ActiveRate().Rate.Equal(decimal.NewFromInt(1)))
}

func (suite *CurrencyFacadeTestSuite) TestConvert_IdentityForBaseCurrency() {
	suite.initWithDefaults()

	for _, x := range []float64{0, 0.01, 1, 99.99, 123456.78} {
		suite.Equal(x, suite.facade.ConvertToUSD(x))
		suite.Equal(x, suite.facade.ConvertFromUSD(x))
	}
}

func (suite *CurrencyFacadeTestSuite) TestConvert_InverseProperty() {
	suite.initWithDefaults()
	suite.switchToEUR(0.92)

	for _, x := range []float64{0.01, 1, 99.99, 12345.678, 1e9} {
		roundTripped := suite.facade.ConvertToUSD(suite.facade.ConvertFromUSD(x))
		suite.InDelta(x, roundTripped, math.Abs(x)*1e-9+1e-12)
	}
}

func (suite *CurrencyFacadeTestSuite) TestConvert_InvalidAmountSubstitutesZero() {
	suite.initWithDefaults()

	suite.Equal(0.0, suite.facade.ConvertFromUSD(math.NaN()))
	suite.Equal(0.0, suite.facade.ConvertToUSD(math.Inf(1)))
	suite.Equal("$0.00", suite.facade.FormatCurrency(math.NaN(), portssvc.FormatOptions{}))
}

func (suite *CurrencyFacadeTestSuite) TestFormatCurrency_DisableAbbreviations() {
	suite.initWithDefaults()

	suite.Equal("$250.00k", suite.facade.FormatCurrency(250000, portssvc.FormatOptions{}))
	suite.Equal("$250,000.00", suite.facade.FormatCurrency(250000, portssvc.FormatOptions{DisableAbbreviations: true}))
}

func (suite *CurrencyFacadeTestSuite) TestSetShowDecimals_PersistsAndApplies() {
	suite.initWithDefaults()
	suite.mockPrefs.On("SavePreferences", mock.Anything, domain.Preferences{
		CurrencyCode: "USD",
		ShowDecimals: false,
	}).Return(nil).Once()

	suite.Require().NoError(suite.facade.SetShowDecimals(context.Background(), false))

	suite.False(suite.facade.ShowDecimals())
	suite.Equal("$100", suite.facade.FormatCurrency(100, portssvc.FormatOptions{}))
	suite.mockPrefs.AssertExpectations(suite.T())
}

func (suite *CurrencyFacadeTestSuite) TestTransactionResolution_OriginalMatchesActiveCurrency() {
	suite.initWithDefaults()
	suite.switchToEUR(0.92)

	original := 85.0
	tx := domain.TransactionAmount{Amount: 100, OriginalAmount: &original, OriginalCurrency: "EUR"}

	// The original amount is exact; it beats the converted figure.
	suite.Equal(85.0, suite.facade.TransactionDisplayAmount(tx))
	display := suite.facade.ResolveTransaction(tx)
	suite.Equal("€85,00", display.Formatted)
	suite.Empty(display.Caption, "fully represented by the primary amount")
}

func (suite *CurrencyFacadeTestSuite) TestTransactionResolution_OriginalDiffersFromActiveCurrency() {
	suite.initWithDefaults()
	// Switch to GBP with a cached fresh rate.
	suite.mockPrefs.On("SavePreferences", mock.Anything, mock.AnythingOfType("domain.Preferences")).Return(nil).Once()
	suite.mockCache.On("GetRate", mock.Anything, "GBP").Return(&domain.ExchangeRateRecord{
		CurrencyCode: "GBP",
		Rate:         decimal.NewFromFloat(0.80),
		FetchedAt:    time.Now(),
	}, nil).Once()
	suite.Require().NoError(suite.facade.SetCurrency(context.Background(), "GBP"))

	original := 85.0
	tx := domain.TransactionAmount{Amount: 100, OriginalAmount: &original, OriginalCurrency: "EUR"}

	// Converted ledger amount is primary; the EUR entry becomes a caption.
	suite.InDelta(80.0, suite.facade.TransactionDisplayAmount(tx), 1e-9)
	display := suite.facade.ResolveTransaction(tx)
	suite.Equal("£80.00", display.Formatted)
	suite.Equal("€85,00", display.Caption)
}

func (suite *CurrencyFacadeTestSuite) TestTransactionResolution_NoOriginalNonBaseActiveShowsUSDCaption() {
	suite.initWithDefaults()
	suite.switchToEUR(0.92)

	tx := domain.TransactionAmount{Amount: 100}

	display := suite.facade.ResolveTransaction(tx)
	suite.InDelta(92.0, display.Amount, 1e-9)
	suite.Equal("€92,00", display.Formatted)
	suite.Equal("$100.00", display.Caption, "underlying recorded value stays visible")
}

func (suite *CurrencyFacadeTestSuite) TestTransactionResolution_NoOriginalBaseActiveNoCaption() {
	suite.initWithDefaults()

	tx := domain.TransactionAmount{Amount: 100}

	display := suite.facade.ResolveTransaction(tx)
	suite.Equal(100.0, display.Amount)
	suite.Equal("$100.00", display.Formatted)
	suite.Empty(display.Caption)
}

func TestCurrencyFacadeTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyFacadeTestSuite))
}
