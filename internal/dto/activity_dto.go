package dto

import "github.com/shopspring/decimal"

// ─── Transfer ────────────────────────────────────────────────────────────────

type TransferRequest struct {
	UnitIDs       []string `json:"unit_ids"       validate:"required,min=1,dive,uuid"`
	FromWarehouse string   `json:"from_warehouse" validate:"required"`
	ToWarehouse   string   `json:"to_warehouse"   validate:"required"`
}

// EditTransferRequest corrects a transfer record's destination and item
// count. It never re-touches the transferred units.
type EditTransferRequest struct {
	ToWarehouse string `json:"to_warehouse" validate:"required"`
	ItemCount   int    `json:"item_count"   validate:"required,min=1"`
}

// ─── Sale ────────────────────────────────────────────────────────────────────

type SellRequest struct {
	UnitIDs      []string        `json:"unit_ids"      validate:"required,min=1,dive,uuid"`
	CustomerName string          `json:"customer_name" validate:"required"`
	Warehouse    string          `json:"warehouse"     validate:"required"`
	ReleaseDate  string          `json:"release_date"  validate:"required"`
	Price        decimal.Decimal `json:"price"         validate:"min=0"` // absent → 0
	Description  string          `json:"description"`
}

type EditSaleRequest struct {
	CustomerName string          `json:"customer_name" validate:"required"`
	Warehouse    string          `json:"warehouse"     validate:"required"`
	Price        decimal.Decimal `json:"price"         validate:"min=0"`
	Description  string          `json:"description"`
}

// ─── Notifications ───────────────────────────────────────────────────────────

type TestNotificationRequest struct {
	Recipient string `json:"recipient"` // empty = configured default
}
