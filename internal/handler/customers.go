package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abd-ElghanyMohammed/myflash/internal/middleware"
	"github.com/Abd-ElghanyMohammed/myflash/internal/service"
)

type CustomersHandler struct{ ledger service.LedgerService }

func NewCustomersHandler(ledger service.LedgerService) *CustomersHandler {
	return &CustomersHandler{ledger: ledger}
}

func (h *CustomersHandler) List(c *gin.Context) {
	customers, err := h.ledger.List(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customers, "total": len(customers)})
}

// GetHistory looks a customer up by name; lookup is case- and
// whitespace-insensitive, same as ledger writes.
func (h *CustomersHandler) GetHistory(c *gin.Context) {
	customer, err := h.ledger.GetHistory(c.Request.Context(), middleware.TenantID(c), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
