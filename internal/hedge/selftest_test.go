package hedge

import (
	"strings"
	"testing"
)

func TestSelfTest_AllPass(t *testing.T) {
	report := SelfTest(fixedClock())
	if !report.OK {
		t.Errorf("SelfTest failed:\n%s", strings.Join(report.Results, "\n"))
	}
	if len(report.Results) != 5 {
		t.Errorf("SelfTest ran %d checks, want 5", len(report.Results))
	}
}
