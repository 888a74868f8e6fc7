package handlers

import (
	portssvc "github.com/budgetloop/currency_service/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting the currency
// facade through its service interface.
func RegisterRoutes(r *gin.Engine, currencySvc portssvc.CurrencySvcFacade) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	registerCurrencyRoutes(v1, currencySvc)
	registerPreferenceRoutes(v1, currencySvc)
	registerAmountRoutes(v1, currencySvc)
}
