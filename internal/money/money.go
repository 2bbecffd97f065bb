// Package money holds helpers for amounts stored as int64 minor units
// (kobo, cents). Amounts never pass through floating point.
package money

import "github.com/shopspring/decimal"

const minorExponent = -2

// Format renders minor units as a fixed two-decimal major-unit string,
// e.g. 150050 -> "1500.50".
func Format(minor int64) string {
	return decimal.New(minor, minorExponent).StringFixed(2)
}
