package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/errs"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

func TestListTransfersNewestFirst(t *testing.T) {
	activity := newStubActivityRepo()
	tenant := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, activity.CreateTransfer(context.Background(), &model.Transfer{
			TenantID:      tenant,
			FromWarehouse: warehouse.Faisal,
			ToWarehouse:   warehouse.Bini,
			ItemCount:     i + 1,
			TransferredAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	svc := NewJournalService(activity)
	transfers, err := svc.ListTransfers(context.Background(), tenant)
	require.NoError(t, err)
	require.Len(t, transfers, 3)
	assert.Equal(t, 3, transfers[0].ItemCount)
	assert.Equal(t, 1, transfers[2].ItemCount)
}

func TestEditTransferTouchesOnlyAllowedFields(t *testing.T) {
	activity := newStubActivityRepo()
	tenant := uuid.New()
	tr := &model.Transfer{
		TenantID:      tenant,
		FromWarehouse: warehouse.Faisal,
		ToWarehouse:   warehouse.Bini,
		Items:         model.ItemList{{SerialNumber: "AB0100001", Name: "Router X"}},
		ItemCount:     1,
		TransferredAt: time.Now().UTC(),
	}
	require.NoError(t, activity.CreateTransfer(context.Background(), tr))

	svc := NewJournalService(activity)
	updated, err := svc.EditTransfer(context.Background(), tenant, tr.ID, dto.EditTransferRequest{
		ToWarehouse: string(warehouse.BabAlWaq),
		ItemCount:   7,
	})
	require.NoError(t, err)
	assert.Equal(t, warehouse.BabAlWaq, updated.ToWarehouse)
	assert.Equal(t, 7, updated.ItemCount)
	// Source warehouse and item snapshots are immutable through edits.
	assert.Equal(t, warehouse.Faisal, updated.FromWarehouse)
	assert.Len(t, updated.Items, 1)
}

func TestEditTransferRejectsBadWarehouse(t *testing.T) {
	activity := newStubActivityRepo()
	tenant := uuid.New()
	tr := &model.Transfer{TenantID: tenant, TransferredAt: time.Now().UTC()}
	require.NoError(t, activity.CreateTransfer(context.Background(), tr))

	svc := NewJournalService(activity)
	_, err := svc.EditTransfer(context.Background(), tenant, tr.ID, dto.EditTransferRequest{
		ToWarehouse: "bodega",
		ItemCount:   1,
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestEditTransferMissingIsNotFound(t *testing.T) {
	svc := NewJournalService(newStubActivityRepo())
	_, err := svc.EditTransfer(context.Background(), uuid.New(), uuid.New(), dto.EditTransferRequest{
		ToWarehouse: string(warehouse.Bini),
		ItemCount:   1,
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestEditSaleRestrictedFields(t *testing.T) {
	activity := newStubActivityRepo()
	tenant := uuid.New()
	sale := &model.Sale{
		TenantID:     tenant,
		CustomerName: "Jane Doe",
		Warehouse:    warehouse.Faisal,
		Price:        decimal.NewFromInt(100),
		SoldAt:       time.Now().UTC(),
	}
	require.NoError(t, activity.CreateSale(context.Background(), sale))

	svc := NewJournalService(activity)
	updated, err := svc.EditSale(context.Background(), tenant, sale.ID, dto.EditSaleRequest{
		CustomerName: "John Roe",
		Warehouse:    string(warehouse.Bini),
		Price:        decimal.NewFromInt(250),
		Description:  "bulk order",
	})
	require.NoError(t, err)
	assert.Equal(t, "John Roe", updated.CustomerName)
	assert.Equal(t, warehouse.Bini, updated.Warehouse)
	assert.True(t, decimal.NewFromInt(250).Equal(updated.Price))
	assert.Equal(t, "bulk order", updated.Description)
}

func TestEditSaleRejectsNegativePrice(t *testing.T) {
	activity := newStubActivityRepo()
	tenant := uuid.New()
	sale := &model.Sale{TenantID: tenant, SoldAt: time.Now().UTC()}
	require.NoError(t, activity.CreateSale(context.Background(), sale))

	svc := NewJournalService(activity)
	_, err := svc.EditSale(context.Background(), tenant, sale.ID, dto.EditSaleRequest{
		CustomerName: "Jane Doe",
		Warehouse:    string(warehouse.Faisal),
		Price:        decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestDeleteJournalEntriesDoNotTouchInventory(t *testing.T) {
	f := newFixture()
	ids := f.addUnits(t, "Router X", 1, 2)

	transfer, err := f.svc.Transfer(context.Background(), f.tenant, dto.TransferRequest{
		UnitIDs:       ids,
		FromWarehouse: string(warehouse.Faisal),
		ToWarehouse:   string(warehouse.Bini),
	})
	require.NoError(t, err)

	journal := NewJournalService(f.activity)
	require.NoError(t, journal.DeleteTransfer(context.Background(), f.tenant, transfer.ID))

	// Removing the record leaves the moved units where they are.
	stored, _ := f.units.List(context.Background(), f.tenant, dto.UnitFilter{})
	require.Len(t, stored, 2)
	for _, u := range stored {
		assert.Equal(t, warehouse.Bini, u.Warehouse)
	}
}
