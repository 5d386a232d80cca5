package hedge

import (
	"testing"

	"github.com/amtfdev/hedgecalculator/internal/models"
)

func TestRecompute_SortsAndBuildsChart(t *testing.T) {
	raw := models.RawInputs{
		Currency:   "£",
		Index:      "FTSE 100",
		Multiplier: "10",
		Notional:   "100000",
		Spot:       "9500",
		Options: []models.RawOption{
			{Expiry: "2025-03-01", Strike: "9300", Ask: "90"},
			{Expiry: "", Strike: "9100", Ask: "40"},
			{Expiry: "2025-01-01", Strike: "9000", Ask: "20"},
		},
	}

	res := Recompute(raw, fixedClock())

	if !res.ShowResults || len(res.Solutions) != 2 || res.Dropped != 1 {
		t.Fatalf("solutions %d dropped %d show %v", len(res.Solutions), res.Dropped, res.ShowResults)
	}
	if res.Solutions[0].Expiry != "2025-01-01" {
		t.Errorf("first expiry = %s, want 2025-01-01", res.Solutions[0].Expiry)
	}
	if res.Chart.SpotLine.X0 != "2025-01-01" || res.Chart.SpotLine.X1 != "2025-03-01" {
		t.Errorf("spot line = %+v", res.Chart.SpotLine)
	}
	if len(res.Chart.Markers) != 2 || res.Chart.Markers[0].Label != "9000" {
		t.Errorf("markers = %+v", res.Chart.Markers)
	}
}

func TestRecompute_NoOptions(t *testing.T) {
	res := Recompute(models.RawInputs{Multiplier: "10", Notional: "100000", Spot: "9500"}, fixedClock())

	if res.ShowResults || len(res.Solutions) != 0 {
		t.Errorf("ShowResults = %v with %d solutions", res.ShowResults, len(res.Solutions))
	}
	if !res.Chart.Empty || len(res.Chart.Markers) != 0 {
		t.Errorf("chart = %+v", res.Chart)
	}
	if res.Chart.SpotLine.X0 != "2025-01-01" || res.Chart.SpotLine.X0 != res.Chart.SpotLine.X1 {
		t.Errorf("fallback spot line = %+v", res.Chart.SpotLine)
	}
}
