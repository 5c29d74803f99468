package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// UnitRepository is the data access contract for serialized units.
// Every method is tenant-scoped; services depend on this interface so
// tests can substitute an in-memory stub.
type UnitRepository interface {
	CreateBatch(ctx context.Context, units []model.Unit) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Unit, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]model.Unit, error)
	List(ctx context.Context, tenantID uuid.UUID, filter dto.UnitFilter) ([]model.Unit, error)
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]model.Unit, error)
	UpdateFields(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error
	ReassignWarehouse(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, to warehouse.ID, at time.Time) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error
	DeleteAll(ctx context.Context, tenantID uuid.UUID) error
}

type unitRepo struct{ db *gorm.DB }

func NewUnitRepository(db *gorm.DB) UnitRepository { return &unitRepo{db: db} }

func (r *unitRepo) CreateBatch(ctx context.Context, units []model.Unit) error {
	if len(units) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&units).Error
}

func (r *unitRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Unit, error) {
	var u model.Unit
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *unitRepo) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&units).Error
	return units, err
}

func (r *unitRepo) List(ctx context.Context, tenantID uuid.UUID, filter dto.UnitFilter) ([]model.Unit, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if filter.Warehouse != "" {
		q = q.Where("warehouse = ?", filter.Warehouse)
	}
	if filter.Name != "" {
		q = q.Where("LOWER(name) = LOWER(?)", filter.Name)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("serial_number ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	var units []model.Unit
	err := q.Order("serial_number ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Find(&units).Error
	return units, err
}

func (r *unitRepo) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Unit{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(fields).Error
}

// ReassignWarehouse moves every listed unit in one batched UPDATE, the
// equivalent of the store's multi-path write.
func (r *unitRepo) ReassignWarehouse(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, to warehouse.ID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Unit{}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Updates(map[string]interface{}{
			"warehouse":      to,
			"transferred_at": at,
		}).Error
}

func (r *unitRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.Unit{}).Error
}

func (r *unitRepo) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Delete(&model.Unit{}).Error
}

func (r *unitRepo) DeleteAll(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&model.Unit{}).Error
}
