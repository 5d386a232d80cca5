// Package chart projects computed hedge solutions into a renderer-agnostic
// plot description: strike markers, a spot reference line, per-expiry
// vertical guides and annotations.
package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/amtfdev/hedgecalculator/internal/models"
	"github.com/amtfdev/hedgecalculator/pkg/utils"
)

// Vertical guides extend 20% beyond the tightest bounding value.
const (
	LowerPad = 0.8
	UpperPad = 1.2
)

// Annotation placement relative to its marker, in pixels.
const (
	AnnotationOffsetY = -30
	AnnotationArrow   = 2
)

// Payload is the complete chart description handed to a renderer.
type Payload struct {
	Empty       bool         `json:"empty"`
	XAxisTitle  string       `json:"xAxisTitle"`
	YAxisTitle  string       `json:"yAxisTitle"`
	SpotLine    Line         `json:"spotLine"`
	Markers     []Marker     `json:"markers"`
	Verticals   []Line       `json:"verticals"`
	Annotations []Annotation `json:"annotations"`
	YRange      Range        `json:"yRange"`
}

// Line is a straight segment between two (x, y) points; x is a date.
type Line struct {
	X0 string  `json:"x0"`
	X1 string  `json:"x1"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
}

// Marker is a labelled strike point.
type Marker struct {
	X     string  `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Annotation is a text callout anchored above a marker.
type Annotation struct {
	X       string  `json:"x"`
	Y       float64 `json:"y"`
	Text    string  `json:"text"`
	OffsetY int     `json:"offsetY"`
	Arrow   int     `json:"arrowHead"`
}

// Range is an inclusive value interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Build derives the chart payload from solutions already sorted by expiry.
// now is only used to anchor the spot line when there are no solutions.
func Build(solutions []models.ComputedSolution, spot float64, now time.Time) Payload {
	p := Payload{
		Empty:       len(solutions) == 0,
		XAxisTitle:  "Expiry",
		YAxisTitle:  "Index Level",
		Markers:     make([]Marker, 0, len(solutions)),
		Verticals:   make([]Line, 0, len(solutions)),
		Annotations: make([]Annotation, 0, len(solutions)),
	}

	p.YRange = Bounds(solutions, spot)

	if p.Empty {
		today := utils.FormatDate(now)
		p.SpotLine = Line{X0: today, X1: today, Y0: spot, Y1: spot}
		return p
	}

	p.SpotLine = Line{
		X0: solutions[0].Expiry,
		X1: solutions[len(solutions)-1].Expiry,
		Y0: spot,
		Y1: spot,
	}

	for _, s := range solutions {
		label := fmt.Sprintf("%.0f", s.Strike)
		p.Markers = append(p.Markers, Marker{X: s.Expiry, Y: s.Strike, Label: label})
		p.Verticals = append(p.Verticals, Line{
			X0: s.Expiry,
			X1: s.Expiry,
			Y0: p.YRange.Min,
			Y1: p.YRange.Max,
		})
		p.Annotations = append(p.Annotations, Annotation{
			X:       s.Expiry,
			Y:       s.Strike,
			Text:    fmt.Sprintf("%s (%s)", label, utils.FormatSignedPercent(s.PercentFromSpot)),
			OffsetY: AnnotationOffsetY,
			Arrow:   AnnotationArrow,
		})
	}

	return p
}

// Bounds returns the padded vertical span covering spot and every strike.
func Bounds(solutions []models.ComputedSolution, spot float64) Range {
	lo, hi := spot, spot
	for _, s := range solutions {
		lo = math.Min(lo, s.Strike)
		hi = math.Max(hi, s.Strike)
	}
	return Range{Min: pad(lo, LowerPad), Max: pad(hi, UpperPad)}
}

// pad scales v, keeping v itself when the product leaves float64 range.
func pad(v, factor float64) float64 {
	if p := v * factor; !math.IsInf(p, 0) {
		return p
	}
	return v
}
