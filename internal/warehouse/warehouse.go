// Package warehouse holds the fixed warehouse enumeration. The three
// identifiers are the Arabic names the stored data has always used;
// everything else (English aliases, export codes) is derived mapping.
package warehouse

import "strings"

// ID identifies one of the three warehouses.
type ID string

const (
	Faisal   ID = "فيصل"
	Bini     ID = "البيني"
	BabAlWaq ID = "باب الوق"
)

// All lists every valid warehouse id, in display order.
var All = []ID{Faisal, Bini, BabAlWaq}

// displayNames maps both the canonical ids and the English names found
// in legacy imports to their Arabic labels.
var displayNames = map[string]string{
	string(Faisal):   "فيصل",
	string(Bini):     "البيني",
	string(BabAlWaq): "باب الوق",
	"Central":        "المركزي",
	"Downtown":       "داون تاون",
	"Faisal":         "فيصل",
}

// DisplayName returns the Arabic label for a warehouse, falling back to
// the input itself when unmapped. Never errors.
func DisplayName(id string) string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return id
}

// Valid reports whether id is one of the enumerated warehouses.
func Valid(id ID) bool {
	switch id {
	case Faisal, Bini, BabAlWaq:
		return true
	}
	return false
}

// Resolve maps free-form warehouse text from spreadsheet imports to a
// canonical id. It tolerates English names, partial Arabic matches and
// common misspellings; anything unrecognizable lands in Faisal, the
// default receiving warehouse.
func Resolve(name string) ID {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return Faisal
	}
	switch {
	case strings.Contains(lower, "فيصل") || lower == "faisal":
		return Faisal
	case strings.Contains(lower, "البيني") || strings.Contains(lower, "بني") ||
		lower == "bini" || lower == "beni" || lower == "al-bini":
		return Bini
	case strings.Contains(lower, "باب") || strings.Contains(lower, "وق") ||
		lower == "downtown" || lower == "bab" || lower == "bab al-waq":
		return BabAlWaq
	}
	return Faisal
}

// Code returns the single-letter code used in spreadsheet exports
// (F = Faisal, B = Bini, W = Bab Al-Waq), or "" for anything else.
func Code(id ID) string {
	switch id {
	case Faisal:
		return "F"
	case Bini:
		return "B"
	case BabAlWaq:
		return "W"
	}
	return ""
}
