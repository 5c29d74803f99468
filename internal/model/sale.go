package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// Sale records one sale to a customer. The referenced units are removed
// from inventory as part of the sale, so Items is the only surviving
// description of what was sold. CustomerName, Warehouse, Price and
// Description remain editable; the item snapshots do not.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	CustomerName string          `gorm:"not null" json:"customerName"`
	Items        ItemList        `gorm:"type:jsonb;not null" json:"items"`
	ItemCount    int             `gorm:"not null" json:"itemCount"`
	Warehouse    warehouse.ID    `gorm:"not null" json:"warehouse"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	ReleaseDate  string          `gorm:"not null" json:"releaseDate"` // calendar date, YYYY-MM-DD
	SoldAt       time.Time       `gorm:"not null;index" json:"soldAt"`
}

func (Sale) TableName() string { return "sales" }
