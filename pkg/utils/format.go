// Package utils provides shared display formatting helpers.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// Decimal places used by the results view.
const (
	WholeDecimals    = 0 // notional, multiplier, contract counts
	PriceDecimals    = 2 // prices, premiums, costs
	QuantityDecimals = 3 // raw contract quantities
)

// NotAvailable is shown for undefined values.
const NotAvailable = "n/a"

// FormatNumber formats a value with a fixed number of decimals and
// comma-grouped thousands.
func FormatNumber(value float64, places int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NotAvailable
	}

	str := fmt.Sprintf("%.*f", places, value)
	negative := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")

	intPart, decPart, hasDec := strings.Cut(str, ".")
	result := groupThousands(intPart)
	if hasDec {
		result += "." + decPart
	}

	// Avoid "-0.00" for values that round to zero.
	if negative && strings.Trim(result, "0.,") != "" {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatMoney formats an amount with the currency symbol in front.
func FormatMoney(symbol string, amount float64, places int) string {
	formatted := FormatNumber(amount, places)
	if formatted == NotAvailable {
		return formatted
	}
	if strings.HasPrefix(formatted, "-") {
		return "-" + symbol + formatted[1:]
	}
	return symbol + formatted
}

// FormatWhole formats notional-class values with no decimals.
func FormatWhole(value float64) string {
	return FormatNumber(value, WholeDecimals)
}

// FormatPrice formats prices and costs with two decimals.
func FormatPrice(value float64) string {
	return FormatNumber(value, PriceDecimals)
}

// FormatQuantity formats a raw contract quantity with three decimals.
func FormatQuantity(qty float64) string {
	return FormatNumber(qty, QuantityDecimals)
}

// FormatPercent formats a percentage with an explicit sign, zero included.
func FormatPercent(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%+.2f%%", value)
}

// FormatSignedPercent is FormatPercent for an optional value.
func FormatSignedPercent(value *float64) string {
	if value == nil {
		return NotAvailable
	}
	return FormatPercent(*value)
}
