package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/budgetloop/currency_service/internal/apperrors"
	portssvc "github.com/budgetloop/currency_service/internal/core/ports/services"
	"github.com/budgetloop/currency_service/internal/dto"
	"github.com/budgetloop/currency_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests for the currency registry and
// the active display currency.
type currencyHandler struct {
	currencySvc portssvc.CurrencySvcFacade
}

func newCurrencyHandler(svc portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencySvc: svc}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, svc portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(svc)

	rg.GET("/currencies", h.listCurrencies)
	currency := rg.Group("/currency")
	{
		currency.GET("", h.getActiveCurrency)
		currency.PUT("", h.setCurrency)
	}
}

// listCurrencies returns the supported currency registry.
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(h.currencySvc.ListCurrencies()))
}

// getActiveCurrency returns the active display currency plus the rate
// currently in effect for it.
func (h *currencyHandler) getActiveCurrency(c *gin.Context) {
	rate := h.currencySvc.ActiveRate()
	c.JSON(http.StatusOK, dto.ActiveCurrencyResponse{
		Currency:      dto.ToCurrencyResponse(h.currencySvc.ActiveCurrency()),
		Rate:          rate.Rate,
		RateFetchedAt: rate.FetchedAt,
		Degraded:      h.currencySvc.Degraded(),
	})
}

// setCurrency switches the display currency. The response is only sent
// once a rate for the new currency is in effect, so callers never render
// the new currency against the old rate.
func (h *currencyHandler) setCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to set currency", slog.String("currency_code", req.Code))

	if err := h.currencySvc.SetCurrency(c.Request.Context(), req.Code); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting currency", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set currency"})
		}
		return
	}

	rate := h.currencySvc.ActiveRate()
	logger.Info("Currency switched", slog.String("currency_code", req.Code), slog.Bool("degraded", h.currencySvc.Degraded()))
	c.JSON(http.StatusOK, dto.ActiveCurrencyResponse{
		Currency:      dto.ToCurrencyResponse(h.currencySvc.ActiveCurrency()),
		Rate:          rate.Rate,
		RateFetchedAt: rate.FetchedAt,
		Degraded:      h.currencySvc.Degraded(),
	})
}
