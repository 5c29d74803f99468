package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// Unit is one physical serialized item. Units are created by a range
// Add or by the legacy migration, mutated in place by Edit/Transfer
// (name and warehouse only — the serial number and id never change),
// and removed by Delete or a Sale. Once removed, a unit survives only
// inside the activity records that mention it.
//
// SerialNumber is not declared unique: the legacy spreadsheet-import
// path may insert duplicates and that data must still load.
type Unit struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_units_tenant" json:"-"`
	SerialNumber string       `gorm:"not null;index" json:"serialNumber"`
	Name         string       `gorm:"not null;index" json:"name"`
	Warehouse    warehouse.ID `gorm:"not null" json:"warehouse"`

	// FromSerial == ToSerial for every unit created after the
	// one-unit-per-record migration; both are kept for lineage.
	FromSerial int `gorm:"not null" json:"fromSerial"`
	ToSerial   int `gorm:"not null" json:"toSerial"`
	Quantity   int `gorm:"not null;default:1" json:"quantity"`

	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
	TransferredAt *time.Time `json:"transferredAt,omitempty"`
	MigratedAt    *time.Time `json:"migratedAt,omitempty"`
}

func (Unit) TableName() string { return "units" }
