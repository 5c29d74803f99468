package dto

import (
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
)

// ─── Filter / List ───────────────────────────────────────────────────────────

// UnitFilter is bound from the query string of GET /v1/units.
type UnitFilter struct {
	Search    string `form:"search"`    // matches serial number or product name
	Warehouse string `form:"warehouse"` // empty = all warehouses
	Name      string `form:"name"`      // exact product name (case-insensitive)
}

type UnitListResponse struct {
	Data  []model.Unit `json:"data"`
	Total int          `json:"total"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AddUnitsRequest creates one unit per serial index in [from_serial,
// to_serial]. The serial prefix plus the synthesis rule determine each
// unit's serial number.
type AddUnitsRequest struct {
	SerialPrefix string `json:"serial_prefix" validate:"required"`
	Name         string `json:"name"          validate:"required"`
	Warehouse    string `json:"warehouse"     validate:"required"`
	FromSerial   int    `json:"from_serial"   validate:"required"`
	ToSerial     int    `json:"to_serial"     validate:"required"`
}

type EditUnitRequest struct {
	Name      string `json:"name"      validate:"required"`
	Warehouse string `json:"warehouse" validate:"required"`
}

type DeleteByNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AddUnitsResponse struct {
	Created int    `json:"created"`
	First   string `json:"first_serial"`
	Last    string `json:"last_serial"`
}

type DeleteByNameResponse struct {
	Deleted int `json:"deleted"`
}

type MigrateResponse struct {
	Migrated int `json:"migrated_records"`
	Created  int `json:"created_units"`
	Skipped  int `json:"skipped_records"`
}
