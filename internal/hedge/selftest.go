package hedge

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/amtfdev/hedgecalculator/internal/models"
)

// SelfTestReport is the outcome of SelfTest.
type SelfTestReport struct {
	OK      bool     `json:"ok"`
	Results []string `json:"results"`
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// SelfTest runs a fixed set of sanity scenarios against the engine.
func SelfTest(now time.Time) SelfTestReport {
	report := SelfTestReport{OK: true}
	check := func(name string, ok bool) {
		status := "ok"
		if !ok {
			status = "FAILED"
			report.OK = false
		}
		report.Results = append(report.Results, fmt.Sprintf("%s: %s", name, status))
	}

	// 100,000 / (9,000 * 10)
	res := Recompute(models.RawInputs{
		Multiplier: "10",
		Notional:   "100000",
		Spot:       "9500",
		Options:    []models.RawOption{{Expiry: "2025-01-01", Strike: "9000", Ask: "20"}},
	}, now)
	ok := len(res.Solutions) == 1
	if ok {
		s := res.Solutions[0]
		ok = approx(s.PremiumPerContract, 200, 1e-9) &&
			approx(s.PerContractNotional, 90000, 1e-9) &&
			approx(s.QtyFull, 100000.0/90000.0, 1e-12) &&
			s.QtyFullFloor == 1 && s.QtyFullCeil == 2 &&
			approx(s.CostFull, 222.2222222, 1e-6) &&
			s.PercentFromSpot != nil && approx(*s.PercentFromSpot, -5.2631578, 1e-6)
	}
	check("single option sizing", ok)

	zeroMult := Recompute(models.RawInputs{
		Multiplier: "0",
		Notional:   "100000",
		Spot:       "9500",
		Options:    []models.RawOption{{Expiry: "2025-01-01", Strike: "9000", Ask: "20"}},
	}, now)
	ok = len(zeroMult.Solutions) == 1
	if ok {
		s := zeroMult.Solutions[0]
		ok = s.QtyFull == 0 && s.QtyHalf == 0 && s.QtyTenth == 0 &&
			s.CostFull == 0 && s.CostHalf == 0 && s.CostTenth == 0
	}
	check("zero multiplier guard", ok)

	zeroSpot := Recompute(models.RawInputs{
		Multiplier: "10",
		Notional:   "100000",
		Spot:       "",
		Options:    []models.RawOption{{Expiry: "2025-01-01", Strike: "9000", Ask: "20"}},
	}, now)
	check("zero spot percent undefined",
		len(zeroSpot.Solutions) == 1 && zeroSpot.Solutions[0].PercentFromSpot == nil)

	filtered := Recompute(models.RawInputs{
		Multiplier: "10",
		Notional:   "100000",
		Spot:       "9500",
		Options: []models.RawOption{
			{Expiry: "", Strike: "9000", Ask: "20"},
			{Expiry: "2025-01-01", Strike: "0", Ask: "20"},
			{Expiry: "2025-01-01", Strike: "abc", Ask: "20"},
		},
	}, now)
	check("incomplete rows dropped", len(filtered.Solutions) == 0 && !filtered.ShowResults && filtered.Chart.Empty)

	first := Recompute(DefaultRaw(now), now)
	second := Recompute(DefaultRaw(now), now)
	check("reset is deterministic", len(first.Solutions) == 3 && reflect.DeepEqual(first, second))

	return report
}
