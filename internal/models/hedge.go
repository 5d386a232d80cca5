package models

// RawInputs holds the calculator fields as loosely-typed text.
type RawInputs struct {
	Currency   string      `json:"currency"`
	Index      string      `json:"index"`
	Multiplier string      `json:"multiplier"`
	Notional   string      `json:"notional"`
	Spot       string      `json:"spot"`
	Options    []RawOption `json:"options"`
}

// HedgeInputs is the typed, normalized input to the calculation engine.
type HedgeInputs struct {
	CurrencySymbol string            `json:"currencySymbol" yaml:"currencySymbol"`
	IndexName      string            `json:"indexName" yaml:"indexName"`
	Multiplier     float64           `json:"multiplier" yaml:"multiplier"`
	Notional       float64           `json:"notional" yaml:"notional"`
	SpotPrice      float64           `json:"spotPrice" yaml:"spotPrice"`
	Options        []OptionCandidate `json:"options" yaml:"options"`
}

// ComputedSolution is one option candidate with its hedge sizing figures.
type ComputedSolution struct {
	OptionCandidate `yaml:",inline"`

	PremiumPerContract  float64 `json:"premiumPerContract" yaml:"premiumPerContract"`
	PerContractNotional float64 `json:"perContractNotional" yaml:"perContractNotional"`

	QtyFull      float64 `json:"qtyFull" yaml:"qtyFull"`
	QtyHalf      float64 `json:"qtyHalf" yaml:"qtyHalf"`
	QtyTenth     float64 `json:"qtyTenth" yaml:"qtyTenth"`
	QtyFullFloor float64 `json:"qtyFullFloor" yaml:"qtyFullFloor"`
	QtyFullCeil  float64 `json:"qtyFullCeil" yaml:"qtyFullCeil"`

	CostFull  float64 `json:"costFull" yaml:"costFull"`
	CostHalf  float64 `json:"costHalf" yaml:"costHalf"`
	CostTenth float64 `json:"costTenth" yaml:"costTenth"`

	// PercentFromSpot is nil when spot is zero.
	PercentFromSpot *float64 `json:"percentFromSpot" yaml:"percentFromSpot"`
}

// Summary echoes the header fields shown above the results table.
type Summary struct {
	CurrencySymbol string  `json:"currencySymbol"`
	IndexName      string  `json:"indexName"`
	Multiplier     float64 `json:"multiplier"`
	SpotPrice      float64 `json:"spotPrice"`
	Notional       float64 `json:"notional"`
}
