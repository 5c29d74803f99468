package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
)

// CustomerRepository persists the per-customer purchase ledger.
type CustomerRepository interface {
	FindByNormalizedName(ctx context.Context, tenantID uuid.UUID, normalizedName string) (*model.Customer, error)
	Create(ctx context.Context, c *model.Customer) error
	Save(ctx context.Context, c *model.Customer) error
	List(ctx context.Context, tenantID uuid.UUID) ([]model.Customer, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) FindByNormalizedName(ctx context.Context, tenantID uuid.UUID, normalizedName string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND normalized_name = ?", tenantID, normalizedName).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) Save(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) List(ctx context.Context, tenantID uuid.UUID) ([]model.Customer, error) {
	var out []model.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("last_purchase DESC").
		Find(&out).Error
	return out, err
}
