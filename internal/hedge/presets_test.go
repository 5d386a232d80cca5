package hedge

import (
	"testing"

	apperrors "github.com/amtfdev/hedgecalculator/internal/errors"
	"github.com/amtfdev/hedgecalculator/internal/models"
)

func TestPresets_Lookup(t *testing.T) {
	p := BuiltinPresets()

	got, err := p.Lookup(" ftse100 ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Multiplier != 10 || got.Currency != "£" {
		t.Errorf("FTSE100 = %+v", got)
	}

	if _, err := p.Lookup("DAX"); !apperrors.Is(err, apperrors.ErrUnknownIndex) {
		t.Errorf("Lookup(DAX) err = %v, want ErrUnknownIndex", err)
	}
}

func TestPresets_MergeAndSorted(t *testing.T) {
	merged := BuiltinPresets().Merge(map[string]models.IndexPreset{
		"dax": {Name: "DAX (Eurex)", Multiplier: 5, Currency: "€"},
		"es":  {Name: "E-mini", Multiplier: 50, Currency: "$"},
	})

	dax, err := merged.Lookup("DAX")
	if err != nil || dax.Key != "DAX" || dax.Multiplier != 5 {
		t.Errorf("DAX = %+v, %v", dax, err)
	}
	if es, _ := merged.Lookup("ES"); es.Name != "E-mini" {
		t.Errorf("ES override not applied: %+v", es)
	}
	if _, ok := BuiltinPresets()["DAX"]; ok {
		t.Error("Merge mutated the builtin catalogue")
	}

	sorted := merged.Sorted()
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Key > sorted[i].Key {
			t.Errorf("Sorted() out of order at %d: %s > %s", i, sorted[i-1].Key, sorted[i].Key)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	raw := ApplyPreset(models.RawInputs{Multiplier: "10", Notional: "5"}, models.IndexPreset{
		Name: "S&P 500 E-mini (CME)", Multiplier: 50, Currency: "$",
	})
	if raw.Multiplier != "50" || raw.Currency != "$" || raw.Index != "S&P 500 E-mini (CME)" || raw.Notional != "5" {
		t.Errorf("ApplyPreset() = %+v", raw)
	}
}
