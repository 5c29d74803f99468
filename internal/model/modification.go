package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// Modification records a warehouse reassignment made through Edit.
// Name-only edits never produce one. ProductName is the name the unit
// carried before the edit.
type Modification struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	SerialNumber string       `gorm:"not null" json:"serialNumber"`
	ProductName  string       `gorm:"not null" json:"productName"`
	OldWarehouse warehouse.ID `gorm:"not null" json:"oldWarehouse"`
	NewWarehouse warehouse.ID `gorm:"not null" json:"newWarehouse"`
	ModifiedAt   time.Time    `gorm:"not null;index" json:"modifiedAt"`
}

func (Modification) TableName() string { return "modifications" }
