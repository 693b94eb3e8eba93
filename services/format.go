package services

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder replaces any blank text field in a generated document.
const Placeholder = "---"

// FormatMoney formats an amount as a dollar-prefixed string with exactly two
// decimal places and no grouping (e.g. $1234.50).
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatAmount formats an amount followed by a currency suffix, as used on
// the total lines (e.g. "$36.50 MN").
func FormatAmount(amount float64, currency string) string {
	if currency == "" {
		return FormatMoney(amount)
	}
	return FormatMoney(amount) + " " + currency
}

// formatQty returns the shortest decimal form of a quantity: 3 -> "3",
// 2.5 -> "2.5".
func formatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}

// orPlaceholder returns s, or Placeholder when s is blank.
func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
