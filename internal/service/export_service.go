package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/errs"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/repository"
	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// utf8BOM makes Excel open the CSV files as UTF-8 so the Arabic
// headers and warehouse names survive.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var unitHeaders = []string{"م", "رقم المسلسل", "اسم المنتج", "كود المستودع"}
var saleHeaders = []string{"م", "#عميل", "العدد", "الاسعار", "التاريخ", "المستودع", "ارقام المسلسلات"}

// ImportMode controls what happens to existing stock on spreadsheet import.
type ImportMode string

const (
	// ImportMerge adds imported rows, skipping serials already in stock.
	ImportMerge ImportMode = "merge"
	// ImportReplace wipes the tenant's stock first. Not reversible.
	ImportReplace ImportMode = "replace"
)

type ExportService interface {
	UnitsCSV(ctx context.Context, tenantID uuid.UUID) ([]byte, error)
	UnitsXLSX(ctx context.Context, tenantID uuid.UUID) ([]byte, error)
	SalesCSV(ctx context.Context, tenantID uuid.UUID) ([]byte, error)
	ImportUnitsXLSX(ctx context.Context, tenantID uuid.UUID, r io.Reader, mode ImportMode) (*dto.ImportReport, error)
}

type exportService struct {
	units    repository.UnitRepository
	activity repository.ActivityRepository
	hub      *SnapshotHub
}

func NewExportService(units repository.UnitRepository, activity repository.ActivityRepository, hub *SnapshotHub) ExportService {
	return &exportService{units: units, activity: activity, hub: hub}
}

func (s *exportService) UnitsCSV(ctx context.Context, tenantID uuid.UUID) ([]byte, error) {
	units, err := s.units.List(ctx, tenantID, dto.UnitFilter{})
	if err != nil {
		return nil, errs.NewPersistence("load units for export", err)
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Write(unitHeaders)
	for i, u := range units {
		w.Write([]string{
			fmt.Sprint(i + 1),
			u.SerialNumber,
			u.Name,
			warehouse.Code(u.Warehouse),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) UnitsXLSX(ctx context.Context, tenantID uuid.UUID) ([]byte, error) {
	units, err := s.units.List(ctx, tenantID, dto.UnitFilter{})
	if err != nil {
		return nil, errs.NewPersistence("load units for export", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for col, h := range unitHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, u := range units {
		row := []interface{}{i + 1, u.SerialNumber, u.Name, warehouse.Code(u.Warehouse)}
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) SalesCSV(ctx context.Context, tenantID uuid.UUID) ([]byte, error) {
	sales, err := s.activity.ListSales(ctx, tenantID)
	if err != nil {
		return nil, errs.NewPersistence("load sales for export", err)
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Write(saleHeaders)
	for i, sale := range sales {
		serials := make([]string, len(sale.Items))
		for j, it := range sale.Items {
			serials[j] = it.SerialNumber
		}
		joined := "-"
		if len(serials) > 0 {
			joined = strings.Join(serials, " - ")
		}
		w.Write([]string{
			fmt.Sprint(i + 1),
			sale.CustomerName,
			fmt.Sprint(sale.ItemCount),
			sale.Price.String(),
			sale.ReleaseDate,
			warehouse.DisplayName(string(sale.Warehouse)),
			joined,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportUnitsXLSX reads the first sheet of an uploaded workbook. The
// header row is sniffed for serial/name/warehouse columns by a list of
// known labels (Arabic and English); columns that cannot be matched
// fall back to positions A, B, C. Rows without both a serial and a
// name are skipped.
func (s *exportService) ImportUnitsXLSX(ctx context.Context, tenantID uuid.UUID, r io.Reader, mode ImportMode) (*dto.ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.NewValidation("not a readable xlsx workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, errs.NewValidation("cannot read first sheet: %v", err)
	}
	if len(rows) < 2 {
		return nil, errs.NewValidation("workbook has no data rows")
	}

	serialCol, nameCol, whCol := sniffColumns(rows[0])

	report := &dto.ImportReport{}
	incoming := make([]model.Unit, 0, len(rows)-1)
	for _, row := range rows[1:] {
		serial := cellAt(row, serialCol)
		name := cellAt(row, nameCol)
		if serial == "" && name == "" {
			continue
		}
		if serial == "" {
			report.Skipped++
			continue
		}
		if name == "" {
			name = "Unknown"
		}
		incoming = append(incoming, model.Unit{
			TenantID:     tenantID,
			SerialNumber: serial,
			Name:         name,
			Warehouse:    warehouse.Resolve(cellAt(row, whCol)),
			Quantity:     1,
		})
	}
	if len(incoming) == 0 {
		return nil, errs.NewValidation("no importable rows found")
	}

	switch mode {
	case ImportReplace:
		if err := s.units.DeleteAll(ctx, tenantID); err != nil {
			return nil, errs.NewPersistence("clear stock before import", err)
		}
	case ImportMerge, "":
		existing, err := s.units.List(ctx, tenantID, dto.UnitFilter{})
		if err != nil {
			return nil, errs.NewPersistence("load existing stock", err)
		}
		seen := make(map[string]struct{}, len(existing))
		for _, u := range existing {
			seen[u.SerialNumber] = struct{}{}
		}
		kept := incoming[:0]
		for _, u := range incoming {
			if _, dup := seen[u.SerialNumber]; dup {
				report.Skipped++
				continue
			}
			kept = append(kept, u)
		}
		incoming = kept
	default:
		return nil, errs.NewValidation("unknown import mode %q", mode)
	}

	if len(incoming) > 0 {
		if err := s.units.CreateBatch(ctx, incoming); err != nil {
			return nil, errs.NewPersistence("store imported units", err)
		}
	}
	report.Imported = len(incoming)

	log.Info().
		Str("tenant", tenantID.String()).
		Str("mode", string(mode)).
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Msg("spreadsheet import")

	s.publishSnapshot(ctx, tenantID)
	return report, nil
}

var (
	serialLabels    = []string{"serial", "serialnumber", "serial number", "sn", "رقم المسلسل", "مسلسل"}
	nameLabels      = []string{"name", "product", "productname", "product name", "اسم المنتج", "منتج"}
	warehouseLabels = []string{"warehouse", "location", "store", "مستودع", "المستودع"}
)

func sniffColumns(header []string) (serialCol, nameCol, whCol int) {
	serialCol, nameCol, whCol = -1, -1, -1
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		if lower == "" {
			continue
		}
		switch {
		case serialCol == -1 && matchesAny(lower, serialLabels):
			serialCol = i
		case nameCol == -1 && matchesAny(lower, nameLabels):
			nameCol = i
		case whCol == -1 && matchesAny(lower, warehouseLabels):
			whCol = i
		}
	}
	if serialCol == -1 && len(header) > 0 {
		serialCol = 0
	}
	if nameCol == -1 && len(header) > 1 {
		nameCol = 1
	}
	if whCol == -1 && len(header) > 2 {
		whCol = 2
	}
	return serialCol, nameCol, whCol
}

func matchesAny(header string, labels []string) bool {
	for _, l := range labels {
		if strings.Contains(header, l) {
			return true
		}
	}
	return false
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func (s *exportService) publishSnapshot(ctx context.Context, tenantID uuid.UUID) {
	if s.hub == nil {
		return
	}
	units, err := s.units.List(ctx, tenantID, dto.UnitFilter{})
	if err != nil {
		return
	}
	s.hub.Publish(tenantID, units)
}
