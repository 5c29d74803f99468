package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abd-ElghanyMohammed/myflash/internal/errs"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/repository"
)

// LedgerService maintains the per-customer purchase ledger derived from
// sales. Entries are keyed by the normalized (trim + case-fold) name;
// the display name keeps the casing of whichever sale touched it last.
type LedgerService interface {
	// RecordPurchase appends the sale to the customer's history and bumps
	// the running total. It is a read-then-write, NOT an atomic
	// increment: two concurrent sales to the same normalized customer can
	// lose one update. Accepted — single logical writer per tenant.
	RecordPurchase(ctx context.Context, tenantID uuid.UUID, sale *model.Sale) error
	GetHistory(ctx context.Context, tenantID uuid.UUID, customerName string) (*model.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]model.Customer, error)
}

type ledgerService struct {
	customers repository.CustomerRepository
}

func NewLedgerService(customers repository.CustomerRepository) LedgerService {
	return &ledgerService{customers: customers}
}

// NormalizeCustomerName is the ledger key derivation: trimmed and
// case-folded. "Jane Doe" and " jane doe " share one entry.
func NormalizeCustomerName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *ledgerService) RecordPurchase(ctx context.Context, tenantID uuid.UUID, sale *model.Sale) error {
	normalized := NormalizeCustomerName(sale.CustomerName)
	if normalized == "" {
		return errs.NewValidation("customer name is required")
	}
	display := strings.TrimSpace(sale.CustomerName)

	purchase := model.Purchase{
		SaleID:      sale.ID.String(),
		Items:       sale.Items,
		ItemCount:   sale.ItemCount,
		Warehouse:   string(sale.Warehouse),
		Price:       sale.Price,
		ReleaseDate: sale.ReleaseDate,
		PurchasedAt: sale.SoldAt,
	}

	existing, err := s.customers.FindByNormalizedName(ctx, tenantID, normalized)
	switch {
	case err == nil:
		existing.Name = display
		existing.LastPurchase = sale.SoldAt
		existing.TotalPurchases += sale.ItemCount
		existing.PurchaseHistory = append(existing.PurchaseHistory, purchase)
		if err := s.customers.Save(ctx, existing); err != nil {
			return errs.NewPersistence("update customer ledger", err)
		}
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		entry := &model.Customer{
			TenantID:        tenantID,
			NormalizedName:  normalized,
			Name:            display,
			CreatedAt:       time.Now().UTC(),
			LastPurchase:    sale.SoldAt,
			TotalPurchases:  sale.ItemCount,
			PurchaseHistory: model.PurchaseList{purchase},
		}
		if err := s.customers.Create(ctx, entry); err != nil {
			return errs.NewPersistence("create customer ledger entry", err)
		}
		return nil

	default:
		return errs.NewPersistence("read customer ledger", err)
	}
}

func (s *ledgerService) GetHistory(ctx context.Context, tenantID uuid.UUID, customerName string) (*model.Customer, error) {
	entry, err := s.customers.FindByNormalizedName(ctx, tenantID, NormalizeCustomerName(customerName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("no purchase history for %q", strings.TrimSpace(customerName))
		}
		return nil, errs.NewPersistence("read customer ledger", err)
	}
	return entry, nil
}

func (s *ledgerService) List(ctx context.Context, tenantID uuid.UUID) ([]model.Customer, error) {
	entries, err := s.customers.List(ctx, tenantID)
	if err != nil {
		return nil, errs.NewPersistence("list customers", err)
	}
	return entries, nil
}
