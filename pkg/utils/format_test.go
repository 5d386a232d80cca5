package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   string
	}{
		{100000, 0, "100,000"},
		{1234567.891, 2, "1,234,567.89"},
		{1.1111111, 3, "1.111"},
		{222.2222, 2, "222.22"},
		{999.995, 2, "1,000.00"},
		{-1234.5, 2, "-1,234.50"},
		{-0.001, 2, "0.00"},
		{0, 3, "0.000"},
		{12, 0, "12"},
		{math.NaN(), 2, "n/a"},
		{math.Inf(1), 2, "n/a"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.value, tt.places); got != tt.want {
			t.Errorf("FormatNumber(%v, %d) = %q, want %q", tt.value, tt.places, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney("£", 222.2222, 2); got != "£222.22" {
		t.Errorf("got %q", got)
	}
	if got := FormatMoney("$", -1500, 0); got != "-$1,500" {
		t.Errorf("got %q", got)
	}
}

func TestFieldFormatters(t *testing.T) {
	if got := FormatWhole(90000); got != "90,000" {
		t.Errorf("FormatWhole = %q", got)
	}
	if got := FormatPrice(200); got != "200.00" {
		t.Errorf("FormatPrice = %q", got)
	}
	if got := FormatQuantity(100000.0 / 90000.0); got != "1.111" {
		t.Errorf("FormatQuantity = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{-5.2631578, "-5.26%"},
		{3.5, "+3.50%"},
		{0, "+0.00%"},
		{math.NaN(), "n/a"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.value); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}

	if got := FormatSignedPercent(nil); got != NotAvailable {
		t.Errorf("FormatSignedPercent(nil) = %q", got)
	}
}

func TestDates(t *testing.T) {
	now := time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)
	if got := FormatDate(now); got != "2025-01-01" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := AddDays(now, 60); got != "2025-03-02" {
		t.Errorf("AddDays(60) = %q", got)
	}
}

// Grouped output keeps the value and uses three-digit groups.
func TestProperty_FormatNumberGrouping(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	pattern := regexp.MustCompile(`^-?\d{1,3}(,\d{3})*\.\d{2}$`)

	properties.Property("valid grouping and value preserved", prop.ForAll(
		func(v float64) bool {
			s := FormatNumber(v, 2)
			if !pattern.MatchString(s) {
				t.Logf("bad format for %v: %s", v, s)
				return false
			}
			parsed, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
			return err == nil && math.Abs(parsed-v) <= 0.005+1e-9*math.Abs(v)
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("percent always signed", prop.ForAll(
		func(v float64) bool {
			s := FormatPercent(v)
			return strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
		},
		gen.Float64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}
