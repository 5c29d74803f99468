// Package serial implements serial-number synthesis for bulk unit
// creation and the parser for the retired range-encoded format.
//
// Both synthesis rules are load-bearing: serials produced here must be
// byte-identical to what is already stored, so do not "clean up" the
// padding behaviour.
package serial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Abd-ElghanyMohammed/myflash/internal/errs"
	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

const (
	// SentinelName selects the dedicated numbering scheme used for the
	// 12/100 product line.
	SentinelName = "12/100"

	// MaxSerial is the highest addressable serial index.
	MaxSerial = 99999

	// MaxBatch caps how many units one Add may create.
	MaxBatch = 1000

	// legacyDelimiter joins the two endpoints of a retired range record.
	legacyDelimiter = " to "

	// sentinelBase offsets the 12/100 counter so every serial carries a
	// fixed-width 6-digit suffix starting at 100001.
	sentinelBase = 100000
)

// Intent describes one unit to be created. The caller owns persistence
// and must commit a whole batch atomically.
type Intent struct {
	SerialNumber string
	Index        int // becomes both fromSerial and toSerial
}

// Number synthesizes the serial for index i of a batch ending at `to`.
// For the 12/100 line: prefix + (100000+i), e.g. PCD0401TR25100001.
// For everything else the destination-dependent encoding applies:
// prefix + to zero-padded to 2 + i zero-padded to 5, so every serial in
// the batch embeds the batch's upper bound.
func Number(prefix, productName string, i, to int) string {
	if productName == SentinelName {
		return prefix + strconv.Itoa(sentinelBase+i)
	}
	return fmt.Sprintf("%s%02d%05d", prefix, to, i)
}

// ExpandRange validates the bounds and produces one Intent per serial
// index in [from, to]. On a bounds violation it returns a
// ValidationError naming the violated bound and produces nothing.
func ExpandRange(prefix, productName string, from, to int, wh warehouse.ID) ([]Intent, error) {
	if !warehouse.Valid(wh) {
		return nil, errs.NewValidation("unknown warehouse %q", wh)
	}
	if from < 1 {
		return nil, errs.NewValidation("from serial must be at least 1, got %d", from)
	}
	if to > MaxSerial {
		return nil, errs.NewValidation("to serial must not exceed %d, got %d", MaxSerial, to)
	}
	if from > to {
		return nil, errs.NewValidation("from serial %d is greater than to serial %d", from, to)
	}
	if n := to - from + 1; n > MaxBatch {
		return nil, errs.NewValidation("maximum %d units per batch, requested %d", MaxBatch, n)
	}

	intents := make([]Intent, 0, to-from+1)
	for i := from; i <= to; i++ {
		intents = append(intents, Intent{
			SerialNumber: Number(prefix, productName, i, to),
			Index:        i,
		})
	}
	return intents, nil
}

// LegacyRange is a parsed range-encoded serial string from the retired
// aggregate format ("<first> to <last>").
type LegacyRange struct {
	Prefix string // endpoint with the trailing 6-digit counter removed
	From   int    // unit index of the first endpoint
	To     int    // unit index of the last endpoint
}

// IsLegacy reports whether a record still uses the retired aggregate
// encoding: the 12/100 sentinel name plus a two-endpoint serial string.
func IsLegacy(productName, serialNumber string) bool {
	return productName == SentinelName && strings.Contains(serialNumber, legacyDelimiter)
}

// ParseLegacyRange splits a range string into its prefix and unit
// indices. It returns false when the string does not split into exactly
// two endpoints, an endpoint is too short to carry the 6-digit counter,
// or the trailing 5 characters of either endpoint are not numeric —
// callers skip such records rather than fail the sweep.
func ParseLegacyRange(serialNumber string) (LegacyRange, bool) {
	parts := strings.Split(serialNumber, legacyDelimiter)
	if len(parts) != 2 {
		return LegacyRange{}, false
	}
	first, last := parts[0], parts[1]
	if len(first) < 6 || len(last) < 6 {
		return LegacyRange{}, false
	}
	from, err := strconv.Atoi(first[len(first)-5:])
	if err != nil {
		return LegacyRange{}, false
	}
	to, err := strconv.Atoi(last[len(last)-5:])
	if err != nil {
		return LegacyRange{}, false
	}
	return LegacyRange{
		Prefix: first[:len(first)-6],
		From:   from,
		To:     to,
	}, true
}

// Expand re-synthesizes the individual serials a legacy range stood
// for, using the same 12/100 rule that produced them originally.
func (r LegacyRange) Expand() []Intent {
	if r.From > r.To {
		return nil
	}
	intents := make([]Intent, 0, r.To-r.From+1)
	for i := r.From; i <= r.To; i++ {
		intents = append(intents, Intent{
			SerialNumber: Number(r.Prefix, SentinelName, i, r.To),
			Index:        i,
		})
	}
	return intents
}
