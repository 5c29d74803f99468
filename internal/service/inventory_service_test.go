package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/errs"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

type fixture struct {
	units    *stubUnitRepo
	activity *stubActivityRepo
	ledger   *stubCustomerRepo
	notifier *stubNotifier
	svc      InventoryService
	tenant   uuid.UUID
}

func newFixture() *fixture {
	units := newStubUnitRepo()
	activity := newStubActivityRepo()
	customers := newStubCustomerRepo()
	notifier := &stubNotifier{}
	svc := NewInventoryService(units, activity, NewLedgerService(customers), NewSnapshotHub(), notifier)
	return &fixture{
		units:    units,
		activity: activity,
		ledger:   customers,
		notifier: notifier,
		svc:      svc,
		tenant:   uuid.New(),
	}
}

func (f *fixture) addUnits(t *testing.T, name string, from, to int) []string {
	t.Helper()
	_, err := f.svc.Add(context.Background(), f.tenant, dto.AddUnitsRequest{
		SerialPrefix: "AB",
		Name:         name,
		Warehouse:    string(warehouse.Faisal),
		FromSerial:   from,
		ToSerial:     to,
	})
	require.NoError(t, err)

	stored, err := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	require.NoError(t, err)
	ids := make([]string, 0, len(stored))
	for _, u := range stored {
		if u.Name == name {
			ids = append(ids, u.ID.String())
		}
	}
	return ids
}

// ── Add ──────────────────────────────────────────────────────────────────────

func TestAddCreatesOneUnitPerIndex(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.Add(context.Background(), f.tenant, dto.AddUnitsRequest{
		SerialPrefix: "AB",
		Name:         "Router X",
		Warehouse:    string(warehouse.Faisal),
		FromSerial:   3,
		ToSerial:     15,
	})
	require.NoError(t, err)
	assert.Equal(t, 13, resp.Created)
	assert.Equal(t, "AB1500003", resp.First)
	assert.Equal(t, "AB1500015", resp.Last)

	stored, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	require.Len(t, stored, 13)
	for _, u := range stored {
		assert.Equal(t, warehouse.Faisal, u.Warehouse)
		assert.Equal(t, 1, u.Quantity)
		assert.Equal(t, u.FromSerial, u.ToSerial)
	}
}

func TestAddRejectsBadBoundsWithoutCreating(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Add(context.Background(), f.tenant, dto.AddUnitsRequest{
		SerialPrefix: "AB",
		Name:         "Router X",
		Warehouse:    string(warehouse.Faisal),
		FromSerial:   10,
		ToSerial:     5,
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	stored, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	assert.Empty(t, stored)
}

// ── Transfer ─────────────────────────────────────────────────────────────────

func TestTransferMovesUnitsAndRecords(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 3)

	transfer, err := f.svc.Transfer(context.Background(), f.tenant, dto.TransferRequest{
		UnitIDs:       ids,
		FromWarehouse: string(warehouse.Faisal),
		ToWarehouse:   string(warehouse.Bini),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, transfer.ItemCount)
	assert.Equal(t, warehouse.Faisal, transfer.FromWarehouse)
	assert.Equal(t, warehouse.Bini, transfer.ToWarehouse)

	// Transfer snapshots carry no per-item warehouse stamp.
	for _, item := range transfer.Items {
		assert.Empty(t, item.Warehouse)
		assert.NotEmpty(t, item.SerialNumber)
	}

	stored, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	for _, u := range stored {
		assert.Equal(t, warehouse.Bini, u.Warehouse)
		assert.NotNil(t, u.TransferredAt)
	}

	require.Len(t, f.notifier.transfers, 1)
}

func TestTransferRejectsSameWarehouse(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 2)

	_, err := f.svc.Transfer(context.Background(), f.tenant, dto.TransferRequest{
		UnitIDs:       ids,
		FromWarehouse: string(warehouse.Faisal),
		ToWarehouse:   string(warehouse.Faisal),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Empty(t, f.activity.transfers)
}

func TestTransferRejectsEmptySelection(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Transfer(context.Background(), f.tenant, dto.TransferRequest{
		FromWarehouse: string(warehouse.Faisal),
		ToWarehouse:   string(warehouse.Bini),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestTransferRejectsUnitsOutsideSource(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 2)

	_, err := f.svc.Transfer(context.Background(), f.tenant, dto.TransferRequest{
		UnitIDs:       ids,
		FromWarehouse: string(warehouse.Bini), // units are in Faisal
		ToWarehouse:   string(warehouse.BabAlWaq),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestTransferMissingUnitIsNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Transfer(context.Background(), f.tenant, dto.TransferRequest{
		UnitIDs:       []string{uuid.NewString()},
		FromWarehouse: string(warehouse.Faisal),
		ToWarehouse:   string(warehouse.Bini),
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestTransferReassignFailureKeepsRecord(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 2)
	f.units.failReassign = errors.New("connection reset")

	_, err := f.svc.Transfer(context.Background(), f.tenant, dto.TransferRequest{
		UnitIDs:       ids,
		FromWarehouse: string(warehouse.Faisal),
		ToWarehouse:   string(warehouse.Bini),
	})
	require.Error(t, err)

	var pf *errs.PartialFailure
	require.True(t, errors.As(err, &pf))
	assert.Equal(t, 1, pf.Done)
	assert.Equal(t, 2, pf.Total)

	// The transfer record committed before the failing step; no rollback.
	assert.Len(t, f.activity.transfers, 1)
	stored, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	for _, u := range stored {
		assert.Equal(t, warehouse.Faisal, u.Warehouse)
	}
}

// ── Sell ─────────────────────────────────────────────────────────────────────

func TestSellRecordsLedgerAndRemovesUnits(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 3)

	sale, err := f.svc.Sell(context.Background(), f.tenant, dto.SellRequest{
		UnitIDs:      ids,
		CustomerName: "Jane Doe",
		Warehouse:    string(warehouse.Faisal),
		ReleaseDate:  "2026-08-30",
		Price:        decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, sale.ItemCount)

	// Sale snapshots are stamped with the sale warehouse.
	for _, item := range sale.Items {
		assert.Equal(t, string(warehouse.Faisal), item.Warehouse)
	}

	stored, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	assert.Empty(t, stored)

	cust, err := f.ledger.FindByNormalizedName(context.Background(), f.tenant, "jane doe")
	require.NoError(t, err)
	assert.Equal(t, 3, cust.TotalPurchases)
	assert.Len(t, cust.PurchaseHistory, 1)

	require.Len(t, f.notifier.sales, 1)
}

func TestSellMergesLedgerEntriesByNormalizedName(t *testing.T) {
	f := newFixture()
	first := f.addUnits(t, "Router X", 1, 3)

	_, err := f.svc.Sell(context.Background(), f.tenant, dto.SellRequest{
		UnitIDs:      first,
		CustomerName: "Jane Doe",
		Warehouse:    string(warehouse.Faisal),
		ReleaseDate:  "2026-08-30",
	})
	require.NoError(t, err)

	second := f.addUnits(t, "Modem Y", 1, 2)
	_, err = f.svc.Sell(context.Background(), f.tenant, dto.SellRequest{
		UnitIDs:      second,
		CustomerName: "  JANE DOE ",
		Warehouse:    string(warehouse.Faisal),
		ReleaseDate:  "2026-08-31",
	})
	require.NoError(t, err)

	cust, err := f.ledger.FindByNormalizedName(context.Background(), f.tenant, "jane doe")
	require.NoError(t, err)
	assert.Equal(t, 5, cust.TotalPurchases)
	assert.Len(t, cust.PurchaseHistory, 2)
	// Display name follows the latest sale's casing.
	assert.Equal(t, "JANE DOE", cust.Name)
}

func TestSellNegativePriceBecomesZero(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 1)

	sale, err := f.svc.Sell(context.Background(), f.tenant, dto.SellRequest{
		UnitIDs:      ids,
		CustomerName: "Jane Doe",
		Warehouse:    string(warehouse.Faisal),
		ReleaseDate:  "2026-08-30",
		Price:        decimal.NewFromInt(-50),
	})
	require.NoError(t, err)
	assert.True(t, sale.Price.IsZero())
}

func TestSellRemovalFailureKeepsSaleAndLedger(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 2)
	f.units.failDelete = errors.New("connection reset")

	_, err := f.svc.Sell(context.Background(), f.tenant, dto.SellRequest{
		UnitIDs:      ids,
		CustomerName: "Jane Doe",
		Warehouse:    string(warehouse.Faisal),
		ReleaseDate:  "2026-08-30",
	})
	require.Error(t, err)

	var pf *errs.PartialFailure
	require.True(t, errors.As(err, &pf))
	assert.Equal(t, 2, pf.Done)
	assert.Equal(t, 3, pf.Total)

	// Sale and ledger committed; units still present.
	assert.Len(t, f.activity.sales, 1)
	_, ledgerErr := f.ledger.FindByNormalizedName(context.Background(), f.tenant, "jane doe")
	assert.NoError(t, ledgerErr)
	stored, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	assert.Len(t, stored, 2)
}

// ── Edit ─────────────────────────────────────────────────────────────────────

func TestEditWarehouseChangeWritesModification(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 1)
	id := uuid.MustParse(ids[0])

	unit, err := f.svc.Edit(context.Background(), f.tenant, id, dto.EditUnitRequest{
		Name:      "Router X v2",
		Warehouse: string(warehouse.Bini),
	})
	require.NoError(t, err)
	assert.Equal(t, "Router X v2", unit.Name)
	assert.Equal(t, warehouse.Bini, unit.Warehouse)

	require.Len(t, f.activity.modifications, 1)
	mod := f.activity.modifications[0]
	// The record captures the name the unit carried before the edit.
	assert.Equal(t, "Router X", mod.ProductName)
	assert.Equal(t, warehouse.Faisal, mod.OldWarehouse)
	assert.Equal(t, warehouse.Bini, mod.NewWarehouse)
}

func TestEditNameOnlyLeavesNoJournalTrace(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 1)
	id := uuid.MustParse(ids[0])

	_, err := f.svc.Edit(context.Background(), f.tenant, id, dto.EditUnitRequest{
		Name:      "Router X v2",
		Warehouse: string(warehouse.Faisal),
	})
	require.NoError(t, err)
	assert.Empty(t, f.activity.modifications)
}

func TestEditMissingUnitIsNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Edit(context.Background(), f.tenant, uuid.New(), dto.EditUnitRequest{
		Name:      "x",
		Warehouse: string(warehouse.Faisal),
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

// ── Delete variants ──────────────────────────────────────────────────────────

func TestDeleteWritesDeletionRecord(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 1)
	id := uuid.MustParse(ids[0])

	require.NoError(t, f.svc.Delete(context.Background(), f.tenant, id))

	require.Len(t, f.activity.deletions, 1)
	assert.Equal(t, "Router X", f.activity.deletions[0].ProductName)
	stored, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	assert.Empty(t, stored)
}

func TestDeleteMissingUnitIsNoOp(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Delete(context.Background(), f.tenant, uuid.New()))
	assert.Empty(t, f.activity.deletions)
}

func TestDeleteByNameIsJournalSilent(t *testing.T) {
	f := newFixture()
	f.addUnits(t, "Router X", 1, 5)
	f.addUnits(t, "Modem Y", 1, 2)

	deleted, err := f.svc.DeleteByName(context.Background(), f.tenant, "router x")
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)
	assert.Empty(t, f.activity.deletions)

	stored, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	assert.Len(t, stored, 2)
}

func TestDeleteByNameUnknownIsNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.DeleteByName(context.Background(), f.tenant, "nonexistent")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteAllClearsOnlyThisTenant(t *testing.T) {
	f := newFixture()
	f.addUnits(t, "Router X", 1, 3)

	other := uuid.New()
	require.NoError(t, f.units.CreateBatch(context.Background(), []model.Unit{
		{TenantID: other, SerialNumber: "ZZ0100001", Name: "Other", Warehouse: warehouse.Faisal, Quantity: 1},
	}))

	require.NoError(t, f.svc.DeleteAll(context.Background(), f.tenant))

	mine, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	assert.Empty(t, mine)
	theirs, _ := f.units.List(context.Background(), other, dto.UnitFilter{})
	assert.Len(t, theirs, 1)
}
