// Package models provides domain models for the hedge calculator.
package models

// IndexPreset describes a tradable index's option contract conventions.
type IndexPreset struct {
	Key        string  `json:"key" yaml:"key" mapstructure:"-"`
	Name       string  `json:"name" yaml:"name" mapstructure:"name"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier" mapstructure:"multiplier"`
	Currency   string  `json:"currency" yaml:"currency" mapstructure:"currency"`
}
