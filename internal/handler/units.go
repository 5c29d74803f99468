package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abd-ElghanyMohammed/myflash/internal/apierror"
	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/middleware"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/service"
)

type UnitsHandler struct {
	svc       service.InventoryService
	migration service.MigrationService
	hub       *service.SnapshotHub
}

func NewUnitsHandler(svc service.InventoryService, migration service.MigrationService, hub *service.SnapshotHub) *UnitsHandler {
	return &UnitsHandler{svc: svc, migration: migration, hub: hub}
}

func (h *UnitsHandler) List(c *gin.Context) {
	var filter dto.UnitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.TenantID(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UnitsHandler) Add(c *gin.Context) {
	var req dto.AddUnitsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Add(c.Request.Context(), middleware.TenantID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UnitsHandler) Edit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid unit id"))
		return
	}
	var req dto.EditUnitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	unit, err := h.svc.Edit(c.Request.Context(), middleware.TenantID(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *UnitsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid unit id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UnitsHandler) DeleteByName(c *gin.Context) {
	var req dto.DeleteByNameRequest
	if !bindAndValidate(c, &req) {
		return
	}
	deleted, err := h.svc.DeleteByName(c.Request.Context(), middleware.TenantID(c), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteByNameResponse{Deleted: deleted})
}

func (h *UnitsHandler) DeleteAll(c *gin.Context) {
	if err := h.svc.DeleteAll(c.Request.Context(), middleware.TenantID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UnitsHandler) Migrate(c *gin.Context) {
	resp, err := h.migration.Sweep(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stream pushes the tenant's full unit collection as a server-sent
// event whenever it changes, plus one snapshot on connect. Clients
// re-render from each event the way they would from a fresh List.
func (h *UnitsHandler) Stream(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	snapshots, cancel := h.hub.Subscribe(tenantID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Seed the stream with current state so the client never waits for
	// the first mutation.
	if resp, err := h.svc.List(c.Request.Context(), tenantID, dto.UnitFilter{}); err == nil {
		c.SSEvent("snapshot", unitsPayload(resp.Data))
		c.Writer.Flush()
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case units, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", unitsPayload(units))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func unitsPayload(units []model.Unit) gin.H {
	return gin.H{"data": units, "total": len(units)}
}
