package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// Transfer records one batch warehouse move. Written once per transfer
// operation; only ToWarehouse and ItemCount may later be corrected, and
// such a correction never re-touches the moved units.
type Transfer struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	FromWarehouse warehouse.ID `gorm:"not null" json:"fromWarehouse"`
	ToWarehouse   warehouse.ID `gorm:"not null" json:"toWarehouse"`
	Items         ItemList     `gorm:"type:jsonb;not null" json:"items"`
	ItemCount     int          `gorm:"not null" json:"itemCount"`
	TransferredAt time.Time    `gorm:"not null;index" json:"transferredAt"`
}

func (Transfer) TableName() string { return "transfers" }
