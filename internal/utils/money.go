package utils

import (
	"math"
	"strconv"
)

// DollarsToCents converts a major-unit amount to the minor-unit integer
// Stripe expects. Amounts are rounded to the nearest cent.
func DollarsToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FormatCents renders a minor-unit amount with two decimals: 250000 -> "2500.00".
func FormatCents(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

// FormatDollars renders a major-unit amount without trailing zeros,
// matching what the donation form submits: 2500 -> "2500", 25.5 -> "25.5".
func FormatDollars(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
