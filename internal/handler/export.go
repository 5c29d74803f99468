package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Abd-ElghanyMohammed/myflash/internal/apierror"
	"github.com/Abd-ElghanyMohammed/myflash/internal/middleware"
	"github.com/Abd-ElghanyMohammed/myflash/internal/service"
)

type ExportHandler struct{ svc service.ExportService }

func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) UnitsCSV(c *gin.Context) {
	data, err := h.svc.UnitsCSV(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	serveDownload(c, data, "text/csv; charset=utf-8", "products_export_%s.csv")
}

func (h *ExportHandler) UnitsXLSX(c *gin.Context) {
	data, err := h.svc.UnitsXLSX(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	serveDownload(c, data,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"products_export_%s.xlsx")
}

func (h *ExportHandler) SalesCSV(c *gin.Context) {
	data, err := h.svc.SalesCSV(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	serveDownload(c, data, "text/csv; charset=utf-8", "sales_export_%s.csv")
}

// ImportUnits accepts a multipart "file" field holding an xlsx
// workbook. mode=replace wipes existing stock first; the default merge
// skips duplicate serials.
func (h *ExportHandler) ImportUnits(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("multipart file field required"))
		return
	}
	defer file.Close()

	mode := service.ImportMode(c.DefaultQuery("mode", string(service.ImportMerge)))
	report, err := h.svc.ImportUnitsXLSX(c.Request.Context(), middleware.TenantID(c), file, mode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func serveDownload(c *gin.Context, data []byte, contentType, namePattern string) {
	filename := fmt.Sprintf(namePattern, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
