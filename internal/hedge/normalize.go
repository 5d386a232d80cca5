// Package hedge sizes protective-put hedges: it normalizes raw calculator
// input, computes per-option solutions and orders them by expiry.
package hedge

import (
	"math"
	"strconv"
	"strings"

	"github.com/amtfdev/hedgecalculator/internal/models"
)

// ParseOrZero converts a raw field value to a float64.
// Empty, non-numeric, NaN and infinite values all become 0. Underscores
// between digits are accepted; commas are not, so "1,5" is 0 rather than 15.
func ParseOrZero(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "_", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Normalize turns raw inputs into HedgeInputs. Option rows without an expiry
// or with a non-positive strike are dropped; they are not an error.
func Normalize(raw models.RawInputs) models.HedgeInputs {
	inputs := models.HedgeInputs{
		CurrencySymbol: raw.Currency,
		IndexName:      raw.Index,
		Multiplier:     ParseOrZero(raw.Multiplier),
		Notional:       ParseOrZero(raw.Notional),
		SpotPrice:      ParseOrZero(raw.Spot),
		Options:        make([]models.OptionCandidate, 0, len(raw.Options)),
	}

	for _, row := range raw.Options {
		if c, ok := NormalizeOption(row); ok {
			inputs.Options = append(inputs.Options, c)
		}
	}

	return inputs
}

// NormalizeOption converts a single row and reports whether it is kept.
func NormalizeOption(row models.RawOption) (models.OptionCandidate, bool) {
	c := models.OptionCandidate{
		Expiry:   strings.TrimSpace(row.Expiry),
		Strike:   ParseOrZero(row.Strike),
		AskPrice: ParseOrZero(row.Ask),
	}
	if c.Expiry == "" || c.Strike <= 0 {
		return models.OptionCandidate{}, false
	}
	return c, true
}
