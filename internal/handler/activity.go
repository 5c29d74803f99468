package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abd-ElghanyMohammed/myflash/internal/apierror"
	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/middleware"
	"github.com/Abd-ElghanyMohammed/myflash/internal/service"
)

// ActivityHandler serves the transfer/sale operations and the four
// activity journals.
type ActivityHandler struct {
	inventory service.InventoryService
	journal   service.JournalService
}

func NewActivityHandler(inventory service.InventoryService, journal service.JournalService) *ActivityHandler {
	return &ActivityHandler{inventory: inventory, journal: journal}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid record id"))
		return uuid.Nil, false
	}
	return id, true
}

// ── Transfers ────────────────────────────────────────────────────────────────

func (h *ActivityHandler) CreateTransfer(c *gin.Context) {
	var req dto.TransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	transfer, err := h.inventory.Transfer(c.Request.Context(), middleware.TenantID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transfer)
}

func (h *ActivityHandler) ListTransfers(c *gin.Context) {
	transfers, err := h.journal.ListTransfers(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": transfers, "total": len(transfers)})
}

func (h *ActivityHandler) EditTransfer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.EditTransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	transfer, err := h.journal.EditTransfer(c.Request.Context(), middleware.TenantID(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, transfer)
}

func (h *ActivityHandler) DeleteTransfer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.journal.DeleteTransfer(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Sales ────────────────────────────────────────────────────────────────────

func (h *ActivityHandler) CreateSale(c *gin.Context) {
	var req dto.SellRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.inventory.Sell(c.Request.Context(), middleware.TenantID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *ActivityHandler) ListSales(c *gin.Context) {
	sales, err := h.journal.ListSales(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sales, "total": len(sales)})
}

func (h *ActivityHandler) EditSale(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.EditSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.journal.EditSale(c.Request.Context(), middleware.TenantID(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *ActivityHandler) DeleteSale(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.journal.DeleteSale(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Deletions ────────────────────────────────────────────────────────────────

func (h *ActivityHandler) ListDeletions(c *gin.Context) {
	deletions, err := h.journal.ListDeletions(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": deletions, "total": len(deletions)})
}

func (h *ActivityHandler) DeleteDeletion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.journal.DeleteDeletion(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Modifications ────────────────────────────────────────────────────────────

func (h *ActivityHandler) ListModifications(c *gin.Context) {
	mods, err := h.journal.ListModifications(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": mods, "total": len(mods)})
}

func (h *ActivityHandler) DeleteModification(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.journal.DeleteModification(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
