package models

// OptionCandidate is a put option offered as a hedge.
// Expiry is kept in its textual ISO form (YYYY-MM-DD).
type OptionCandidate struct {
	Expiry   string  `json:"expiry" yaml:"expiry"`
	Strike   float64 `json:"strike" yaml:"strike"`
	AskPrice float64 `json:"askPrice" yaml:"askPrice"`
}

// RawOption is an option row exactly as entered, before normalization.
type RawOption struct {
	Expiry string `json:"expiry" csv:"expiry"`
	Strike string `json:"strike" csv:"strike"`
	Ask    string `json:"ask" csv:"ask"`
}
