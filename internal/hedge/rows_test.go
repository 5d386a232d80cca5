package hedge

import (
	"testing"

	"github.com/amtfdev/hedgecalculator/internal/models"
)

func TestOptionRows_EditsReturnNewLists(t *testing.T) {
	base := OptionRows{
		{Expiry: "2025-01-01", Strike: "9000", Ask: "20"},
		{Expiry: "2025-02-01", Strike: "9200", Ask: "60"},
	}

	added := base.AddBlank()
	if len(added) != 3 || added[2] != (models.RawOption{}) {
		t.Errorf("AddBlank() = %+v", added)
	}
	if len(base) != 2 {
		t.Errorf("AddBlank mutated receiver: %+v", base)
	}

	removed := base.Remove(0)
	if len(removed) != 1 || removed[0].Strike != "9200" {
		t.Errorf("Remove(0) = %+v", removed)
	}
	if base[0].Strike != "9000" {
		t.Errorf("Remove mutated receiver: %+v", base)
	}

	set := base.Set(1, models.RawOption{Expiry: "2025-03-01", Strike: "9300", Ask: "90"})
	if set[1].Strike != "9300" || base[1].Strike != "9200" {
		t.Errorf("Set(1) = %+v, base = %+v", set, base)
	}
}

func TestOptionRows_OutOfRangeIsNoop(t *testing.T) {
	base := OptionRows{{Expiry: "2025-01-01", Strike: "9000", Ask: "20"}}

	for _, i := range []int{-1, 1, 42} {
		if got := base.Remove(i); len(got) != 1 || got[0] != base[0] {
			t.Errorf("Remove(%d) = %+v", i, got)
		}
		if got := base.Set(i, models.RawOption{Strike: "1"}); got[0] != base[0] {
			t.Errorf("Set(%d) = %+v", i, got)
		}
	}
}

func TestOptionRows_AddDoesNotAlias(t *testing.T) {
	base := make(OptionRows, 1, 4)
	base[0] = models.RawOption{Strike: "1"}

	a := base.Add(models.RawOption{Strike: "2"})
	b := base.Add(models.RawOption{Strike: "3"})
	if a[1].Strike != "2" || b[1].Strike != "3" {
		t.Errorf("Add aliased backing array: a=%+v b=%+v", a, b)
	}
}
