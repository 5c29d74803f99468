package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/errs"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/repository"
	"github.com/Abd-ElghanyMohammed/myflash/internal/serial"
	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// Notifier receives completed transfers and sales for asynchronous
// outbound delivery. Implementations must not block the caller.
type Notifier interface {
	NotifyTransfer(ctx context.Context, t model.Transfer)
	NotifySale(ctx context.Context, s model.Sale)
}

// InventoryService is the unit lifecycle engine. Every operation is a
// terminal or in-place transition of active units:
//
//	Add/Migrate → active → Transfer/Edit (still active) → Sell/Delete (gone)
//
// Removed units survive only in the activity journal. The engine never
// caches authoritative state; the unit store owns it.
type InventoryService interface {
	Add(ctx context.Context, tenantID uuid.UUID, req dto.AddUnitsRequest) (*dto.AddUnitsResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter dto.UnitFilter) (*dto.UnitListResponse, error)
	Transfer(ctx context.Context, tenantID uuid.UUID, req dto.TransferRequest) (*model.Transfer, error)
	Sell(ctx context.Context, tenantID uuid.UUID, req dto.SellRequest) (*model.Sale, error)
	Edit(ctx context.Context, tenantID, unitID uuid.UUID, req dto.EditUnitRequest) (*model.Unit, error)
	Delete(ctx context.Context, tenantID, unitID uuid.UUID) error
	DeleteByName(ctx context.Context, tenantID uuid.UUID, name string) (int, error)
	DeleteAll(ctx context.Context, tenantID uuid.UUID) error
}

type inventoryService struct {
	units    repository.UnitRepository
	activity repository.ActivityRepository
	ledger   LedgerService
	hub      *SnapshotHub
	notifier Notifier
}

func NewInventoryService(
	units repository.UnitRepository,
	activity repository.ActivityRepository,
	ledger LedgerService,
	hub *SnapshotHub,
	notifier Notifier,
) InventoryService {
	return &inventoryService{
		units:    units,
		activity: activity,
		ledger:   ledger,
		hub:      hub,
		notifier: notifier,
	}
}

// ── Add ──────────────────────────────────────────────────────────────────────

// Add expands the serial range and commits every generated unit in one
// batch write. Bounds violations reject the whole request; nothing is
// partially applied.
func (s *inventoryService) Add(ctx context.Context, tenantID uuid.UUID, req dto.AddUnitsRequest) (*dto.AddUnitsResponse, error) {
	intents, err := serial.ExpandRange(req.SerialPrefix, req.Name, req.FromSerial, req.ToSerial, warehouse.ID(req.Warehouse))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	units := make([]model.Unit, 0, len(intents))
	for _, in := range intents {
		units = append(units, model.Unit{
			TenantID:     tenantID,
			SerialNumber: in.SerialNumber,
			Name:         req.Name,
			Warehouse:    warehouse.ID(req.Warehouse),
			FromSerial:   in.Index,
			ToSerial:     in.Index,
			Quantity:     1,
			CreatedAt:    now,
		})
	}

	if err := s.units.CreateBatch(ctx, units); err != nil {
		return nil, errs.NewPersistence("add units", err)
	}
	s.publishSnapshot(ctx, tenantID)

	return &dto.AddUnitsResponse{
		Created: len(units),
		First:   units[0].SerialNumber,
		Last:    units[len(units)-1].SerialNumber,
	}, nil
}

func (s *inventoryService) List(ctx context.Context, tenantID uuid.UUID, filter dto.UnitFilter) (*dto.UnitListResponse, error) {
	units, err := s.units.List(ctx, tenantID, filter)
	if err != nil {
		return nil, errs.NewPersistence("list units", err)
	}
	return &dto.UnitListResponse{Data: units, Total: len(units)}, nil
}

// ── Transfer ─────────────────────────────────────────────────────────────────

// Transfer moves a non-empty selection between two different warehouses.
// The source is explicit and every selected unit must currently be in
// it. The transfer record (with frozen item snapshots) is written
// before the batched warehouse reassignment, matching the store-call
// ordering the activity feed relies on.
func (s *inventoryService) Transfer(ctx context.Context, tenantID uuid.UUID, req dto.TransferRequest) (*model.Transfer, error) {
	from := warehouse.ID(req.FromWarehouse)
	to := warehouse.ID(req.ToWarehouse)

	if len(req.UnitIDs) == 0 {
		return nil, errs.NewValidation("select at least one unit to transfer")
	}
	if !warehouse.Valid(from) {
		return nil, errs.NewValidation("unknown source warehouse %q", req.FromWarehouse)
	}
	if !warehouse.Valid(to) {
		return nil, errs.NewValidation("unknown destination warehouse %q", req.ToWarehouse)
	}
	if from == to {
		return nil, errs.NewValidation("units are already in warehouse %s", warehouse.DisplayName(req.ToWarehouse))
	}

	ids, err := parseUUIDs(req.UnitIDs)
	if err != nil {
		return nil, err
	}
	units, err := s.units.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, errs.NewPersistence("resolve units", err)
	}
	if len(units) != len(ids) {
		return nil, errs.NewNotFound("%d of %d selected units no longer exist", len(ids)-len(units), len(ids))
	}
	for _, u := range units {
		if u.Warehouse != from {
			return nil, errs.NewValidation("unit %s is in warehouse %s, not %s",
				u.SerialNumber, warehouse.DisplayName(string(u.Warehouse)), warehouse.DisplayName(string(from)))
		}
	}

	now := time.Now().UTC()
	transfer := &model.Transfer{
		TenantID:      tenantID,
		FromWarehouse: from,
		ToWarehouse:   to,
		Items:         freezeItems(units, ""),
		ItemCount:     len(units),
		TransferredAt: now,
	}
	if err := s.activity.CreateTransfer(ctx, transfer); err != nil {
		return nil, errs.NewPersistence("record transfer", err)
	}

	if err := s.units.ReassignWarehouse(ctx, tenantID, ids, to, now); err != nil {
		// The transfer record is already committed; the reassignment is
		// the later step of the protocol, so report how far we got.
		return nil, &errs.PartialFailure{Op: "transfer units", Done: 1, Total: 2, Err: err}
	}
	s.publishSnapshot(ctx, tenantID)

	if s.notifier != nil {
		s.notifier.NotifyTransfer(ctx, *transfer)
	}
	return transfer, nil
}

// ── Sell ─────────────────────────────────────────────────────────────────────

// Sell removes a selection from inventory and books it against a
// customer. Ordering is load-bearing: (a) sale record, (b) ledger
// update, (c) unit removal. A failure in (a) or (b) aborts with
// inventory untouched; a failure during (c) leaves an already-recorded
// sale with units still present — detectable, never rolled back.
func (s *inventoryService) Sell(ctx context.Context, tenantID uuid.UUID, req dto.SellRequest) (*model.Sale, error) {
	wh := warehouse.ID(req.Warehouse)

	if len(req.UnitIDs) == 0 {
		return nil, errs.NewValidation("select at least one unit to sell")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, errs.NewValidation("customer name is required")
	}
	if strings.TrimSpace(req.ReleaseDate) == "" {
		return nil, errs.NewValidation("release date is required")
	}
	if !warehouse.Valid(wh) {
		return nil, errs.NewValidation("unknown warehouse %q", req.Warehouse)
	}

	ids, err := parseUUIDs(req.UnitIDs)
	if err != nil {
		return nil, err
	}
	units, err := s.units.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, errs.NewPersistence("resolve units", err)
	}
	if len(units) == 0 {
		return nil, errs.NewNotFound("selected units no longer exist")
	}

	price := req.Price
	if price.IsNegative() {
		price = decimal.Zero
	}

	sale := &model.Sale{
		TenantID:     tenantID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Items:        freezeItems(units, wh),
		ItemCount:    len(units),
		Warehouse:    wh,
		Description:  strings.TrimSpace(req.Description),
		Price:        price,
		ReleaseDate:  req.ReleaseDate,
		SoldAt:       time.Now().UTC(),
	}
	if err := s.activity.CreateSale(ctx, sale); err != nil {
		return nil, errs.NewPersistence("record sale", err)
	}

	if err := s.ledger.RecordPurchase(ctx, tenantID, sale); err != nil {
		return nil, &errs.PartialFailure{Op: "sell units", Done: 1, Total: 3, Err: err}
	}

	if err := s.units.DeleteByIDs(ctx, tenantID, unitIDsOf(units)); err != nil {
		return nil, &errs.PartialFailure{Op: "sell units", Done: 2, Total: 3, Err: err}
	}
	s.publishSnapshot(ctx, tenantID)

	if s.notifier != nil {
		s.notifier.NotifySale(ctx, *sale)
	}
	return sale, nil
}

// ── Edit ─────────────────────────────────────────────────────────────────────

// Edit rewrites a unit's name and warehouse. A modification record is
// appended iff the warehouse actually changed; it captures the name the
// unit carried before the edit. Name-only edits leave no journal trace.
func (s *inventoryService) Edit(ctx context.Context, tenantID, unitID uuid.UUID, req dto.EditUnitRequest) (*model.Unit, error) {
	wh := warehouse.ID(req.Warehouse)
	if !warehouse.Valid(wh) {
		return nil, errs.NewValidation("unknown warehouse %q", req.Warehouse)
	}

	unit, err := s.units.FindByID(ctx, tenantID, unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("unit %s not found", unitID)
		}
		return nil, errs.NewPersistence("find unit", err)
	}

	oldName := unit.Name
	oldWarehouse := unit.Warehouse
	now := time.Now().UTC()

	if err := s.units.UpdateFields(ctx, tenantID, unitID, map[string]interface{}{
		"name":       req.Name,
		"warehouse":  wh,
		"updated_at": now,
	}); err != nil {
		return nil, errs.NewPersistence("update unit", err)
	}

	if oldWarehouse != wh {
		mod := &model.Modification{
			TenantID:     tenantID,
			SerialNumber: unit.SerialNumber,
			ProductName:  oldName,
			OldWarehouse: oldWarehouse,
			NewWarehouse: wh,
			ModifiedAt:   now,
		}
		if err := s.activity.CreateModification(ctx, mod); err != nil {
			return nil, &errs.PartialFailure{Op: "edit unit", Done: 1, Total: 2, Err: err}
		}
	}
	s.publishSnapshot(ctx, tenantID)

	unit.Name = req.Name
	unit.Warehouse = wh
	unit.UpdatedAt = &now
	return unit, nil
}

// ── Delete variants ──────────────────────────────────────────────────────────

// Delete records a deletion snapshot and then removes the unit. A
// nonexistent id is a no-op: no record, no error.
func (s *inventoryService) Delete(ctx context.Context, tenantID, unitID uuid.UUID) error {
	unit, err := s.units.FindByID(ctx, tenantID, unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return errs.NewPersistence("find unit", err)
	}

	record := &model.Deletion{
		TenantID:     tenantID,
		SerialNumber: unit.SerialNumber,
		ProductName:  unit.Name,
		Warehouse:    unit.Warehouse,
		DeletedAt:    time.Now().UTC(),
	}
	if err := s.activity.CreateDeletion(ctx, record); err != nil {
		return errs.NewPersistence("record deletion", err)
	}

	if err := s.units.Delete(ctx, tenantID, unitID); err != nil {
		return &errs.PartialFailure{Op: "delete unit", Done: 1, Total: 2, Err: err}
	}
	s.publishSnapshot(ctx, tenantID)
	return nil
}

// DeleteByName batch-removes every unit whose name matches
// case-insensitively. Unlike single Delete it writes no deletion
// records — kept as a separate named operation until the audit
// question is settled, rather than silently aligned either way.
func (s *inventoryService) DeleteByName(ctx context.Context, tenantID uuid.UUID, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errs.NewValidation("product name is required")
	}

	units, err := s.units.FindByName(ctx, tenantID, name)
	if err != nil {
		return 0, errs.NewPersistence("find units by name", err)
	}
	if len(units) == 0 {
		return 0, errs.NewNotFound("no units named %q", name)
	}

	if err := s.units.DeleteByIDs(ctx, tenantID, unitIDsOf(units)); err != nil {
		return 0, errs.NewPersistence("delete units by name", err)
	}
	s.publishSnapshot(ctx, tenantID)

	log.Info().
		Str("tenant", tenantID.String()).
		Str("name", name).
		Int("count", len(units)).
		Msg("batch delete by name")
	return len(units), nil
}

// DeleteAll drops the tenant's whole unit collection. Journal-silent,
// like DeleteByName.
func (s *inventoryService) DeleteAll(ctx context.Context, tenantID uuid.UUID) error {
	if err := s.units.DeleteAll(ctx, tenantID); err != nil {
		return errs.NewPersistence("delete all units", err)
	}
	s.publishSnapshot(ctx, tenantID)
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// publishSnapshot re-delivers the tenant's entire current unit set to
// every subscriber. There is no incremental diff on purpose: observers
// always see a complete, self-consistent collection.
func (s *inventoryService) publishSnapshot(ctx context.Context, tenantID uuid.UUID) {
	if s.hub == nil {
		return
	}
	units, err := s.units.List(ctx, tenantID, dto.UnitFilter{})
	if err != nil {
		log.Error().Err(err).Str("tenant", tenantID.String()).Msg("snapshot publish failed")
		return
	}
	s.hub.Publish(tenantID, units)
}

// freezeItems copies the identifying fields of each unit into immutable
// snapshots. When wh is non-empty (sales) it is stamped on every item.
func freezeItems(units []model.Unit, wh warehouse.ID) model.ItemList {
	items := make(model.ItemList, 0, len(units))
	for _, u := range units {
		item := model.ItemSnapshot{SerialNumber: u.SerialNumber, Name: u.Name}
		if wh != "" {
			item.Warehouse = string(wh)
		}
		items = append(items, item)
	}
	return items
}

func unitIDsOf(units []model.Unit) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ID)
	}
	return ids
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, errs.NewValidation("invalid unit id %q", r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
