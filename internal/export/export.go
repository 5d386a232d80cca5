// Package export builds a self-describing snapshot of one hedge calculation
// for archiving or sharing, serialised as JSON or YAML.
package export

import (
	"encoding/json"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	apperrors "github.com/amtfdev/hedgecalculator/internal/errors"
	"github.com/amtfdev/hedgecalculator/internal/hedge"
	"github.com/amtfdev/hedgecalculator/internal/models"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// moneyPlaces is the precision of money amounts in a document.
const moneyPlaces = 2

// Document is an exported calculation.
type Document struct {
	ID          string  `json:"id" yaml:"id"`
	GeneratedAt string  `json:"generatedAt" yaml:"generatedAt"`
	Index       string  `json:"index" yaml:"index"`
	Currency    string  `json:"currency" yaml:"currency"`
	Inputs      Inputs  `json:"inputs" yaml:"inputs"`
	Summary     Summary `json:"summary" yaml:"summary"`
	Rows        []Row   `json:"rows" yaml:"rows"`
	Notes       string  `json:"notes" yaml:"notes"`
}

// Inputs echoes the normalized scalar inputs.
type Inputs struct {
	Notional   float64 `json:"notional" yaml:"notional"`
	Spot       float64 `json:"spot" yaml:"spot"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
	Options    int     `json:"options" yaml:"options"`
	Dropped    int     `json:"dropped" yaml:"dropped"`
}

// Summary aggregates the rows for quick comparison.
type Summary struct {
	Solutions      int    `json:"solutions" yaml:"solutions"`
	CheapestExpiry string `json:"cheapestExpiry,omitempty" yaml:"cheapestExpiry,omitempty"`
	CheapestCost   Money  `json:"cheapestCost" yaml:"cheapestCost"`
}

// Row is one solution with money rounded to cents.
type Row struct {
	Expiry              string   `json:"expiry" yaml:"expiry"`
	Strike              float64  `json:"strike" yaml:"strike"`
	Ask                 float64  `json:"ask" yaml:"ask"`
	PremiumPerContract  Money    `json:"premiumPerContract" yaml:"premiumPerContract"`
	PerContractNotional Money    `json:"perContractNotional" yaml:"perContractNotional"`
	QtyFull             float64  `json:"qtyFull" yaml:"qtyFull"`
	QtyHalf             float64  `json:"qtyHalf" yaml:"qtyHalf"`
	QtyTenth            float64  `json:"qtyTenth" yaml:"qtyTenth"`
	QtyFullFloor        float64  `json:"qtyFullFloor" yaml:"qtyFullFloor"`
	QtyFullCeil         float64  `json:"qtyFullCeil" yaml:"qtyFullCeil"`
	CostFull            Money    `json:"costFull" yaml:"costFull"`
	CostHalf            Money    `json:"costHalf" yaml:"costHalf"`
	CostTenth           Money    `json:"costTenth" yaml:"costTenth"`
	PercentFromSpot     *float64 `json:"percentFromSpot" yaml:"percentFromSpot"`
}

// Money is a fixed-point amount serialised as a decimal string.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds v to cents. NaN and infinities become zero.
func NewMoney(v float64) Money {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{decimal.Zero}
	}
	return Money{decimal.NewFromFloat(v).Round(moneyPlaces)}
}

// MarshalJSON renders the amount as a quoted fixed-point string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.StringFixed(moneyPlaces))
}

// MarshalYAML renders the amount as a fixed-point string.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.StringFixed(moneyPlaces), nil
}

// Build assembles a document from a pipeline result.
func Build(res hedge.Result, notes string, now time.Time) Document {
	doc := Document{
		ID:          uuid.NewString(),
		GeneratedAt: now.UTC().Truncate(time.Second).Format(time.RFC3339),
		Index:       res.Summary.IndexName,
		Currency:    res.Summary.CurrencySymbol,
		Inputs: Inputs{
			Notional:   res.Inputs.Notional,
			Spot:       res.Inputs.SpotPrice,
			Multiplier: res.Inputs.Multiplier,
			Options:    len(res.Inputs.Options),
			Dropped:    res.Dropped,
		},
		Rows:  make([]Row, 0, len(res.Solutions)),
		Notes: SanitizeNotes(notes),
	}

	var cheapest *models.ComputedSolution
	for i, s := range res.Solutions {
		doc.Rows = append(doc.Rows, rowOf(s))
		if s.QtyFull > 0 && (cheapest == nil || s.CostFull < cheapest.CostFull) {
			cheapest = &res.Solutions[i]
		}
	}

	doc.Summary.Solutions = len(res.Solutions)
	doc.Summary.CheapestCost = NewMoney(0)
	if cheapest != nil {
		doc.Summary.CheapestExpiry = cheapest.Expiry
		doc.Summary.CheapestCost = NewMoney(cheapest.CostFull)
	}

	return doc
}

func rowOf(s models.ComputedSolution) Row {
	return Row{
		Expiry:              s.Expiry,
		Strike:              s.Strike,
		Ask:                 s.AskPrice,
		PremiumPerContract:  NewMoney(s.PremiumPerContract),
		PerContractNotional: NewMoney(s.PerContractNotional),
		QtyFull:             s.QtyFull,
		QtyHalf:             s.QtyHalf,
		QtyTenth:            s.QtyTenth,
		QtyFullFloor:        s.QtyFullFloor,
		QtyFullCeil:         s.QtyFullCeil,
		CostFull:            NewMoney(s.CostFull),
		CostHalf:            NewMoney(s.CostHalf),
		CostTenth:           NewMoney(s.CostTenth),
		PercentFromSpot:     s.PercentFromSpot,
	}
}

// Write serialises doc to w in the requested format.
func Write(w io.Writer, doc Document, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return apperrors.Wrapf(apperrors.ErrUnsupportedFormat, "%q", format)
	}
}
