package hedge

import (
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/amtfdev/hedgecalculator/internal/errors"
	"github.com/amtfdev/hedgecalculator/internal/models"
)

// Presets is a catalogue of index presets keyed by upper-case key.
type Presets map[string]models.IndexPreset

// BuiltinPresets returns the bundled index presets.
func BuiltinPresets() Presets {
	return Presets{
		"FTSE100": {Key: "FTSE100", Name: "FTSE 100 (ICE)", Multiplier: 10, Currency: "£"},
		"ES":      {Key: "ES", Name: "S&P 500 E-mini (CME)", Multiplier: 50, Currency: "$"},
		"SPX":     {Key: "SPX", Name: "S&P 500 (SPX options)", Multiplier: 100, Currency: "$"},
		"CUSTOM":  {Key: "CUSTOM", Name: "Custom Index", Multiplier: 1, Currency: "£"},
	}
}

// Merge returns a new catalogue where overrides replace or extend p.
func (p Presets) Merge(overrides map[string]models.IndexPreset) Presets {
	out := make(Presets, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		key := strings.ToUpper(strings.TrimSpace(k))
		v.Key = key
		out[key] = v
	}
	return out
}

// Lookup finds a preset by key, ignoring case.
func (p Presets) Lookup(key string) (models.IndexPreset, error) {
	preset, ok := p[strings.ToUpper(strings.TrimSpace(key))]
	if !ok {
		return models.IndexPreset{}, apperrors.Wrapf(apperrors.ErrUnknownIndex, "%q", key)
	}
	return preset, nil
}

// Sorted returns the presets ordered by key.
func (p Presets) Sorted() []models.IndexPreset {
	out := make([]models.IndexPreset, 0, len(p))
	for _, v := range p {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ApplyPreset returns raw with the preset's label, currency and multiplier.
func ApplyPreset(raw models.RawInputs, preset models.IndexPreset) models.RawInputs {
	raw.Index = preset.Name
	raw.Currency = preset.Currency
	raw.Multiplier = strconv.FormatFloat(preset.Multiplier, 'f', -1, 64)
	return raw
}
