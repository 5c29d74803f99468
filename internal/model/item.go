package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ItemSnapshot is a frozen copy of a unit at the moment an activity
// record was written. It is a value, never a reference: later changes
// to the unit (impossible for sold units anyway) must not show through.
type ItemSnapshot struct {
	SerialNumber string `json:"serialNumber"`
	Name         string `json:"name"`
	Warehouse    string `json:"warehouse,omitempty"`
}

// ItemList stores a snapshot list as a JSONB column.
type ItemList []ItemSnapshot

func (l ItemList) Value() (driver.Value, error) {
	if l == nil {
		l = ItemList{}
	}
	return json.Marshal(l)
}

func (l *ItemList) Scan(value interface{}) error {
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
		return fmt.Errorf("items: unsupported column type %T", value)
	}
	return json.Unmarshal(raw, l)
}
