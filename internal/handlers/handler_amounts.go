package handlers

import (
	"log/slog"
	"net/http"

	"github.com/budgetloop/currency_service/internal/core/domain"
	portssvc "github.com/budgetloop/currency_service/internal/core/ports/services"
	"github.com/budgetloop/currency_service/internal/dto"
	"github.com/budgetloop/currency_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// amountHandler handles conversion, formatting and transaction display
// requests. All of these are synchronous reads of the active rate.
type amountHandler struct {
	currencySvc portssvc.CurrencySvcFacade
}

func newAmountHandler(svc portssvc.CurrencySvcFacade) *amountHandler {
	return &amountHandler{currencySvc: svc}
}

// registerAmountRoutes registers routes related to amounts.
func registerAmountRoutes(rg *gin.RouterGroup, svc portssvc.CurrencySvcFacade) {
	h := newAmountHandler(svc)

	rg.POST("/convert", h.convert)
	rg.POST("/format", h.format)
	rg.POST("/transactions/display", h.transactionDisplay)
}

// convert converts an amount between the base and active currencies.
func (h *amountHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var converted float64
	switch req.Direction {
	case dto.DirectionToUSD:
		converted = h.currencySvc.ConvertToUSD(*req.Amount)
	case dto.DirectionFromUSD:
		converted = h.currencySvc.ConvertFromUSD(*req.Amount)
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:       *req.Amount,
		Converted:    converted,
		Direction:    req.Direction,
		CurrencyCode: h.currencySvc.ActiveCurrency().Code,
	})
}

// format renders a ledger amount in the active currency.
func (h *amountHandler) format(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	formatted := h.currencySvc.FormatCurrency(*req.Amount, portssvc.FormatOptions{
		DisableAbbreviations: req.DisableAbbreviations,
	})
	c.JSON(http.StatusOK, dto.FormatResponse{Formatted: formatted})
}

// transactionDisplay resolves which value a transaction shows and how,
// including the secondary original-currency or base-currency caption.
func (h *amountHandler) transactionDisplay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransactionDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransactionDisplay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	display := h.currencySvc.ResolveTransaction(domain.TransactionAmount{
		Amount:           *req.Amount,
		OriginalAmount:   req.OriginalAmount,
		OriginalCurrency: req.OriginalCurrency,
	})

	c.JSON(http.StatusOK, dto.TransactionDisplayResponse{
		Amount:    display.Amount,
		Formatted: display.Formatted,
		Caption:   display.Caption,
	})
}
