package hedge

import (
	"sort"
	"strings"
	"time"

	"github.com/amtfdev/hedgecalculator/internal/models"
)

// Accepted expiry layouts, tried in order.
var expiryLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006/01/02",
	"02-Jan-2006",
}

// ParseExpiry parses an expiry date in any of the accepted layouts.
func ParseExpiry(expiry string) (time.Time, bool) {
	s := strings.TrimSpace(expiry)
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByExpiry returns a copy of solutions ordered by ascending expiry date.
// Equal expiries keep their input order. Expiries that cannot be parsed
// go last, also in input order.
func SortByExpiry(solutions []models.ComputedSolution) []models.ComputedSolution {
	type keyed struct {
		at time.Time
		ok bool
	}

	keys := make([]keyed, len(solutions))
	for i, s := range solutions {
		t, ok := ParseExpiry(s.Expiry)
		keys[i] = keyed{at: t, ok: ok}
	}

	idx := make([]int, len(solutions))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		if !ka.ok {
			return false
		}
		return ka.at.Before(kb.at)
	})

	sorted := make([]models.ComputedSolution, len(solutions))
	for i, j := range idx {
		sorted[i] = solutions[j]
	}
	return sorted
}
