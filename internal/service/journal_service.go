package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/errs"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/repository"
	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// JournalService reads and maintains the activity journals. Edits are
// restricted to descriptive fields; journal edits never touch the unit
// store, so an edited transfer does not move any stock.
type JournalService interface {
	ListTransfers(ctx context.Context, tenantID uuid.UUID) ([]model.Transfer, error)
	EditTransfer(ctx context.Context, tenantID, id uuid.UUID, req dto.EditTransferRequest) (*model.Transfer, error)
	DeleteTransfer(ctx context.Context, tenantID, id uuid.UUID) error

	ListSales(ctx context.Context, tenantID uuid.UUID) ([]model.Sale, error)
	EditSale(ctx context.Context, tenantID, id uuid.UUID, req dto.EditSaleRequest) (*model.Sale, error)
	DeleteSale(ctx context.Context, tenantID, id uuid.UUID) error

	ListDeletions(ctx context.Context, tenantID uuid.UUID) ([]model.Deletion, error)
	DeleteDeletion(ctx context.Context, tenantID, id uuid.UUID) error

	ListModifications(ctx context.Context, tenantID uuid.UUID) ([]model.Modification, error)
	DeleteModification(ctx context.Context, tenantID, id uuid.UUID) error
}

type journalService struct {
	activity repository.ActivityRepository
}

func NewJournalService(activity repository.ActivityRepository) JournalService {
	return &journalService{activity: activity}
}

func (s *journalService) ListTransfers(ctx context.Context, tenantID uuid.UUID) ([]model.Transfer, error) {
	return s.activity.ListTransfers(ctx, tenantID)
}

func (s *journalService) EditTransfer(ctx context.Context, tenantID, id uuid.UUID, req dto.EditTransferRequest) (*model.Transfer, error) {
	tr, err := s.activity.FindTransfer(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("transfer %s not found", id)
		}
		return nil, errs.NewPersistence("load transfer", err)
	}

	if !warehouse.Valid(warehouse.ID(req.ToWarehouse)) {
		return nil, errs.NewValidation("unknown warehouse %q", req.ToWarehouse)
	}
	if req.ItemCount < 1 {
		return nil, errs.NewValidation("item count must be positive")
	}
	fields := map[string]interface{}{
		"to_warehouse": req.ToWarehouse,
		"item_count":   req.ItemCount,
	}
	tr.ToWarehouse = warehouse.ID(req.ToWarehouse)
	tr.ItemCount = req.ItemCount
	if err := s.activity.UpdateTransfer(ctx, tenantID, id, fields); err != nil {
		return nil, errs.NewPersistence("update transfer", err)
	}
	return tr, nil
}

func (s *journalService) DeleteTransfer(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.activity.DeleteTransfer(ctx, tenantID, id)
}

func (s *journalService) ListSales(ctx context.Context, tenantID uuid.UUID) ([]model.Sale, error) {
	return s.activity.ListSales(ctx, tenantID)
}

func (s *journalService) EditSale(ctx context.Context, tenantID, id uuid.UUID, req dto.EditSaleRequest) (*model.Sale, error) {
	sale, err := s.activity.FindSale(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("sale %s not found", id)
		}
		return nil, errs.NewPersistence("load sale", err)
	}

	if !warehouse.Valid(warehouse.ID(req.Warehouse)) {
		return nil, errs.NewValidation("unknown warehouse %q", req.Warehouse)
	}
	if req.Price.IsNegative() {
		return nil, errs.NewValidation("price must not be negative")
	}
	fields := map[string]interface{}{
		"customer_name": req.CustomerName,
		"warehouse":     req.Warehouse,
		"price":         req.Price,
		"description":   req.Description,
	}
	sale.CustomerName = req.CustomerName
	sale.Warehouse = warehouse.ID(req.Warehouse)
	sale.Price = req.Price
	sale.Description = req.Description
	if err := s.activity.UpdateSale(ctx, tenantID, id, fields); err != nil {
		return nil, errs.NewPersistence("update sale", err)
	}
	return sale, nil
}

func (s *journalService) DeleteSale(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.activity.DeleteSale(ctx, tenantID, id)
}

func (s *journalService) ListDeletions(ctx context.Context, tenantID uuid.UUID) ([]model.Deletion, error) {
	return s.activity.ListDeletions(ctx, tenantID)
}

func (s *journalService) DeleteDeletion(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.activity.DeleteDeletion(ctx, tenantID, id)
}

func (s *journalService) ListModifications(ctx context.Context, tenantID uuid.UUID) ([]model.Modification, error) {
	return s.activity.ListModifications(ctx, tenantID)
}

func (s *journalService) DeleteModification(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.activity.DeleteModification(ctx, tenantID, id)
}
