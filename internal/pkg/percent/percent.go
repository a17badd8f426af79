// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package percent computes formatted percentage changes between two values
// that may be missing.
package percent

import (
	"github.com/shopspring/decimal"
)

// Unavailable is the rendered value when a percentage change cannot be computed.
const Unavailable = "unavailable"

// Change returns the percentage change from oldValue to newValue formatted
// to two decimal places with a "%" suffix (e.g., "10.00%").
//
// Returns Unavailable when either value is missing or when oldValue is zero
// (the change is undefined, not infinite).
func Change(oldValue decimal.NullDecimal, newValue decimal.NullDecimal) string {
	if !oldValue.Valid || !newValue.Valid {
		return Unavailable
	}
	if oldValue.Decimal.IsZero() {
		return Unavailable
	}
	change := newValue.Decimal.
		Sub(oldValue.Decimal).
		Div(oldValue.Decimal).
		Mul(decimal.NewFromInt(100))
	return change.StringFixed(2) + "%"
}
