package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/budgetloop/currency_service/internal/core/ports/services"
	"github.com/budgetloop/currency_service/internal/dto"
	"github.com/budgetloop/currency_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// preferenceHandler handles HTTP requests for the persisted display
// preferences.
type preferenceHandler struct {
	currencySvc portssvc.CurrencySvcFacade
}

func newPreferenceHandler(svc portssvc.CurrencySvcFacade) *preferenceHandler {
	return &preferenceHandler{currencySvc: svc}
}

// registerPreferenceRoutes registers routes related to preferences.
func registerPreferenceRoutes(rg *gin.RouterGroup, svc portssvc.CurrencySvcFacade) {
	h := newPreferenceHandler(svc)

	prefs := rg.Group("/preferences")
	{
		prefs.GET("", h.getPreferences)
		prefs.PUT("/decimals", h.setShowDecimals)
	}
}

// getPreferences returns the display preferences in effect.
func (h *preferenceHandler) getPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PreferencesResponse{
		CurrencyCode: h.currencySvc.ActiveCurrency().Code,
		ShowDecimals: h.currencySvc.ShowDecimals(),
	})
}

// setShowDecimals updates the decimal-display toggle.
func (h *preferenceHandler) setShowDecimals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateDecimalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetShowDecimals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.currencySvc.SetShowDecimals(c.Request.Context(), *req.ShowDecimals); err != nil {
		logger.Error("Failed to set decimals preference", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preference"})
		return
	}

	c.JSON(http.StatusOK, dto.PreferencesResponse{
		CurrencyCode: h.currencySvc.ActiveCurrency().Code,
		ShowDecimals: h.currencySvc.ShowDecimals(),
	})
}
