// Package moneypkg provides common money amount functionality for apps.
package moneypkg

import (
	"github.com/shopspring/decimal"
)

// IsPositive returns true if s parses as a decimal number greater than zero.
func IsPositive(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}

	return d.GreaterThan(decimal.Zero)
}

// IsNonNegative returns true if s parses as a decimal number of at least zero.
func IsNonNegative(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}

	return d.GreaterThanOrEqual(decimal.Zero)
}
