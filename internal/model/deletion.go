package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// Deletion is the append-only trace of a single-unit delete, captured
// before the unit record is removed. Batch deletes (by name, delete-all)
// intentionally do not write these.
type Deletion struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	SerialNumber string       `gorm:"not null" json:"serialNumber"`
	ProductName  string       `gorm:"not null" json:"productName"`
	Warehouse    warehouse.ID `gorm:"not null" json:"warehouse"`
	DeletedAt    time.Time    `gorm:"not null;index" json:"deletedAt"`
}

func (Deletion) TableName() string { return "deletions" }
