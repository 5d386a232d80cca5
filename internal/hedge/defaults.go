package hedge

import (
	"time"

	"github.com/amtfdev/hedgecalculator/internal/models"
	"github.com/amtfdev/hedgecalculator/pkg/utils"
)

// Reset-state field values.
const (
	DefaultCurrency   = "£"
	DefaultIndex      = "FTSE 100"
	DefaultMultiplier = "10"
	DefaultNotional   = "100000"
	DefaultSpot       = "9500"
)

// DefaultRows returns the three example put rows, expiring today, in 30 days
// and in 60 days relative to now.
func DefaultRows(now time.Time) OptionRows {
	return OptionRows{
		{Expiry: utils.FormatDate(now), Strike: "9000", Ask: "20"},
		{Expiry: utils.AddDays(now, 30), Strike: "9200", Ask: "60"},
		{Expiry: utils.AddDays(now, 60), Strike: "9300", Ask: "90"},
	}
}

// DefaultRaw returns the calculator reset state.
func DefaultRaw(now time.Time) models.RawInputs {
	return models.RawInputs{
		Currency:   DefaultCurrency,
		Index:      DefaultIndex,
		Multiplier: DefaultMultiplier,
		Notional:   DefaultNotional,
		Spot:       DefaultSpot,
		Options:    DefaultRows(now),
	}
}
