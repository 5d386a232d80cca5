package hedge

import (
	"time"

	"github.com/amtfdev/hedgecalculator/internal/chart"
	"github.com/amtfdev/hedgecalculator/internal/models"
)

// Result is everything the presenters need after one recomputation.
type Result struct {
	Inputs    models.HedgeInputs        `json:"inputs"`
	Summary   models.Summary            `json:"summary"`
	Solutions []models.ComputedSolution `json:"solutions"`
	Chart     chart.Payload             `json:"chart"`

	// ShowResults is false when there are no solutions; the results
	// view is then hidden rather than rendered empty.
	ShowResults bool `json:"showResults"`
	// Dropped counts option rows removed by normalization.
	Dropped int `json:"dropped"`
}

// Recompute runs the full pipeline on raw inputs:
// normalize, calculate, sort, then build the chart payload.
func Recompute(raw models.RawInputs, now time.Time) Result {
	inputs := Normalize(raw)
	solutions := SortByExpiry(Calculate(inputs))

	return Result{
		Inputs:      inputs,
		Summary:     SummaryOf(inputs),
		Solutions:   solutions,
		Chart:       chart.Build(solutions, inputs.SpotPrice, now),
		ShowResults: len(solutions) > 0,
		Dropped:     len(raw.Options) - len(inputs.Options),
	}
}

// SummaryOf echoes the header fields of inputs.
func SummaryOf(inputs models.HedgeInputs) models.Summary {
	return models.Summary{
		CurrencySymbol: inputs.CurrencySymbol,
		IndexName:      inputs.IndexName,
		Multiplier:     inputs.Multiplier,
		SpotPrice:      inputs.SpotPrice,
		Notional:       inputs.Notional,
	}
}
