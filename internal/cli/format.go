package cli

import (
	"fmt"

	"github.com/amtfdev/hedgecalculator/internal/chart"
	"github.com/amtfdev/hedgecalculator/internal/hedge"
	"github.com/amtfdev/hedgecalculator/internal/models"
	"github.com/amtfdev/hedgecalculator/pkg/utils"
)

// solutionHeaders are the results table columns.
var solutionHeaders = []string{
	"Expiry", "Strike", "Ask", "vs Spot", "Premium/Ct", "Notional/Ct",
	"Qty 100%", "Floor/Ceil", "Cost 100%", "Qty 50%", "Cost 50%", "Qty 10%", "Cost 10%",
}

// summaryLines echoes the inputs shown above the results.
func summaryLines(s models.Summary, dropped int) []string {
	lines := []string{
		fmt.Sprintf("Index:      %s", s.IndexName),
		fmt.Sprintf("Multiplier: %s", utils.FormatWhole(s.Multiplier)),
		fmt.Sprintf("Spot:       %s", utils.FormatPrice(s.SpotPrice)),
		fmt.Sprintf("Notional:   %s", utils.FormatMoney(s.CurrencySymbol, s.Notional, utils.WholeDecimals)),
	}
	if dropped > 0 {
		lines = append(lines, fmt.Sprintf("Skipped:    %d incomplete row(s)", dropped))
	}
	return lines
}

// solutionCells formats one solution as table cells.
func solutionCells(o *Output, currency string, s models.ComputedSolution) []string {
	money := func(v float64) string { return utils.FormatMoney(currency, v, utils.PriceDecimals) }

	pct := utils.FormatSignedPercent(s.PercentFromSpot)
	if s.PercentFromSpot != nil {
		pct = o.Signed(*s.PercentFromSpot, pct)
	}

	return []string{
		s.Expiry,
		utils.FormatPrice(s.Strike),
		utils.FormatPrice(s.AskPrice),
		pct,
		money(s.PremiumPerContract),
		money(s.PerContractNotional),
		utils.FormatQuantity(s.QtyFull),
		fmt.Sprintf("%s / %s", utils.FormatWhole(s.QtyFullFloor), utils.FormatWhole(s.QtyFullCeil)),
		money(s.CostFull),
		utils.FormatQuantity(s.QtyHalf),
		money(s.CostHalf),
		utils.FormatQuantity(s.QtyTenth),
		money(s.CostTenth),
	}
}

// renderResult prints the summary and, when there is anything to show,
// the results table.
func renderResult(o *Output, res hedge.Result) {
	o.Box("Hedge Summary", summaryLines(res.Summary, res.Dropped))
	o.Println()

	if !res.ShowResults {
		o.Warning("No valid option rows. Enter an expiry and a positive strike.")
		return
	}

	table := NewTable(o, solutionHeaders...)
	for _, s := range res.Solutions {
		table.AddRow(solutionCells(o, res.Summary.CurrencySymbol, s)...)
	}
	table.Render()
}

// renderChart prints the chart payload as a text listing.
func renderChart(o *Output, p chart.Payload) {
	o.Bold("%s vs %s", p.YAxisTitle, p.XAxisTitle)
	o.Printf("  Y range:   %s to %s\n", utils.FormatPrice(p.YRange.Min), utils.FormatPrice(p.YRange.Max))
	if p.SpotLine.X0 == p.SpotLine.X1 {
		o.Printf("  Spot line: %s at %s\n", utils.FormatPrice(p.SpotLine.Y0), p.SpotLine.X0)
	} else {
		o.Printf("  Spot line: %s from %s to %s\n", utils.FormatPrice(p.SpotLine.Y0), p.SpotLine.X0, p.SpotLine.X1)
	}
	if p.Empty {
		o.Dim("  No strikes to plot.")
		return
	}

	o.Println()
	table := NewTable(o, "Expiry", "Strike", "Label")
	for i, m := range p.Markers {
		label := m.Label
		if i < len(p.Annotations) {
			label = p.Annotations[i].Text
		}
		table.AddRow(m.X, utils.FormatPrice(m.Y), label)
	}
	table.Render()
}

// renderPresets prints the index preset catalogue.
func renderPresets(o *Output, presets []models.IndexPreset) {
	table := NewTable(o, "Key", "Name", "Multiplier", "Currency")
	for _, p := range presets {
		table.AddRow(p.Key, p.Name, utils.FormatWhole(p.Multiplier), p.Currency)
	}
	table.Render()
}

// renderSelfTest prints one line per check.
func renderSelfTest(o *Output, report hedge.SelfTestReport) {
	for _, line := range report.Results {
		o.Println("  " + line)
	}
	if report.OK {
		o.Success("All self tests passed")
	} else {
		o.Error("Self test failed")
	}
}
