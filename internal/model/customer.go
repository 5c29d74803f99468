package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is one entry in a customer's purchase history, snapshotted
// from the sale that produced it.
type Purchase struct {
	SaleID      string          `json:"saleId"`
	Items       []ItemSnapshot  `json:"items"`
	ItemCount   int             `json:"itemCount"`
	Warehouse   string          `json:"warehouse"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate string          `json:"releaseDate"`
	PurchasedAt time.Time       `json:"purchasedAt"`
}

// PurchaseList stores a purchase history as a JSONB column.
type PurchaseList []Purchase

func (l PurchaseList) Value() (driver.Value, error) {
	if l == nil {
		l = PurchaseList{}
	}
	return json.Marshal(l)
}

func (l *PurchaseList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("purchase_history: unsupported column type %T", value)
	}
	return json.Unmarshal(raw, l)
}

// Customer is the running purchase ledger for one buyer, keyed by the
// normalized (trimmed, case-folded) form of the name they were first
// sold to under. Invariant: TotalPurchases equals the sum of ItemCount
// over PurchaseHistory.
type Customer struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	TenantID        uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_customers_tenant_name" json:"-"`
	NormalizedName  string       `gorm:"not null;uniqueIndex:idx_customers_tenant_name" json:"normalizedName"`
	Name            string       `gorm:"not null" json:"name"` // display form: trimmed, original casing
	CreatedAt       time.Time    `json:"createdAt"`
	LastPurchase    time.Time    `json:"lastPurchase"`
	TotalPurchases  int          `gorm:"not null;default:0" json:"totalPurchases"`
	PurchaseHistory PurchaseList `gorm:"type:jsonb;not null" json:"purchaseHistory"`
}

func (Customer) TableName() string { return "customers" }
