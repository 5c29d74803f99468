package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
)

// ActivityRepository persists the four append-only activity logs.
// Each list is returned descending by its record's own timestamp field.
// Removing a journal entry never cascades into inventory.
type ActivityRepository interface {
	CreateTransfer(ctx context.Context, t *model.Transfer) error
	ListTransfers(ctx context.Context, tenantID uuid.UUID) ([]model.Transfer, error)
	FindTransfer(ctx context.Context, tenantID, id uuid.UUID) (*model.Transfer, error)
	UpdateTransfer(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error
	DeleteTransfer(ctx context.Context, tenantID, id uuid.UUID) error

	CreateSale(ctx context.Context, s *model.Sale) error
	ListSales(ctx context.Context, tenantID uuid.UUID) ([]model.Sale, error)
	FindSale(ctx context.Context, tenantID, id uuid.UUID) (*model.Sale, error)
	UpdateSale(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error
	DeleteSale(ctx context.Context, tenantID, id uuid.UUID) error

	CreateDeletion(ctx context.Context, d *model.Deletion) error
	ListDeletions(ctx context.Context, tenantID uuid.UUID) ([]model.Deletion, error)
	DeleteDeletion(ctx context.Context, tenantID, id uuid.UUID) error

	CreateModification(ctx context.Context, m *model.Modification) error
	ListModifications(ctx context.Context, tenantID uuid.UUID) ([]model.Modification, error)
	DeleteModification(ctx context.Context, tenantID, id uuid.UUID) error
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepo{db: db} }

// ── Transfers ────────────────────────────────────────────────────────────────

func (r *activityRepo) CreateTransfer(ctx context.Context, t *model.Transfer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *activityRepo) ListTransfers(ctx context.Context, tenantID uuid.UUID) ([]model.Transfer, error) {
	var out []model.Transfer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("transferred_at DESC").
		Find(&out).Error
	return out, err
}

func (r *activityRepo) FindTransfer(ctx context.Context, tenantID, id uuid.UUID) (*model.Transfer, error) {
	var t model.Transfer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *activityRepo) UpdateTransfer(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Transfer{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(fields).Error
}

func (r *activityRepo) DeleteTransfer(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.Transfer{}).Error
}

// ── Sales ────────────────────────────────────────────────────────────────────

func (r *activityRepo) CreateSale(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *activityRepo) ListSales(ctx context.Context, tenantID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sold_at DESC").
		Find(&out).Error
	return out, err
}

func (r *activityRepo) FindSale(ctx context.Context, tenantID, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *activityRepo) UpdateSale(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(fields).Error
}

func (r *activityRepo) DeleteSale(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.Sale{}).Error
}

// ── Deletions ────────────────────────────────────────────────────────────────

func (r *activityRepo) CreateDeletion(ctx context.Context, d *model.Deletion) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *activityRepo) ListDeletions(ctx context.Context, tenantID uuid.UUID) ([]model.Deletion, error) {
	var out []model.Deletion
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("deleted_at DESC").
		Find(&out).Error
	return out, err
}

func (r *activityRepo) DeleteDeletion(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.Deletion{}).Error
}

// ── Modifications ────────────────────────────────────────────────────────────

func (r *activityRepo) CreateModification(ctx context.Context, m *model.Modification) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *activityRepo) ListModifications(ctx context.Context, tenantID uuid.UUID) ([]model.Modification, error) {
	var out []model.Modification
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("modified_at DESC").
		Find(&out).Error
	return out, err
}

func (r *activityRepo) DeleteModification(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.Modification{}).Error
}
