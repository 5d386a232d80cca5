package hedge

import (
	"math"

	"github.com/amtfdev/hedgecalculator/internal/models"
)

// Coverage tiers as fractions of notional.
const (
	TierFull  = 1.0
	TierHalf  = 0.5
	TierTenth = 0.1
)

// Calculate computes one solution per option candidate, in input order.
func Calculate(inputs models.HedgeInputs) []models.ComputedSolution {
	out := make([]models.ComputedSolution, 0, len(inputs.Options))
	for _, opt := range inputs.Options {
		out = append(out, computeSolution(opt, inputs.Multiplier, inputs.Notional, inputs.SpotPrice))
	}
	return out
}

func computeSolution(opt models.OptionCandidate, multiplier, notional, spot float64) models.ComputedSolution {
	s := models.ComputedSolution{OptionCandidate: opt}

	s.PremiumPerContract = finiteOrZero(opt.AskPrice * multiplier)
	s.PerContractNotional = finiteOrZero(opt.Strike * multiplier)

	// A non-positive contract notional collapses every quantity and cost to 0.
	if s.PerContractNotional > 0 {
		s.QtyFull = notional / s.PerContractNotional
	}
	s.QtyHalf = s.QtyFull * TierHalf
	s.QtyTenth = s.QtyFull * TierTenth

	s.CostFull = s.PremiumPerContract * s.QtyFull
	s.CostHalf = s.PremiumPerContract * s.QtyHalf
	s.CostTenth = s.PremiumPerContract * s.QtyTenth

	// Figures beyond float64 range collapse the same way.
	if !allFinite(s.QtyFull, s.CostFull, s.CostHalf, s.CostTenth) {
		s.QtyFull, s.QtyHalf, s.QtyTenth = 0, 0, 0
		s.CostFull, s.CostHalf, s.CostTenth = 0, 0, 0
	}
	s.QtyFullFloor = math.Floor(s.QtyFull)
	s.QtyFullCeil = math.Ceil(s.QtyFull)

	s.PercentFromSpot = PercentFromSpot(opt.Strike, spot)

	return s
}

// PercentFromSpot returns the signed distance of strike from spot in percent,
// or nil when spot is zero and the ratio is undefined.
func PercentFromSpot(strike, spot float64) *float64 {
	if spot == 0 {
		return nil
	}
	pct := (strike - spot) / spot * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return nil
	}
	return &pct
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func allFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
