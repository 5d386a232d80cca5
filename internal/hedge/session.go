package hedge

import (
	"time"

	"github.com/amtfdev/hedgecalculator/internal/models"
)

// Field names a scalar calculator input.
type Field string

const (
	FieldCurrency   Field = "currency"
	FieldIndex      Field = "index"
	FieldMultiplier Field = "multiplier"
	FieldNotional   Field = "notional"
	FieldSpot       Field = "spot"
)

// Session holds the current raw inputs of one calculator and the result of
// the last recomputation. Every edit recomputes from scratch through
// Recompute. A Session is not safe for concurrent use.
type Session struct {
	clock  func() time.Time
	raw    models.RawInputs
	result Result
}

// NewSession creates an empty session. A nil clock means time.Now.
func NewSession(clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{clock: clock}
}

// Init puts the session in its reset state and computes it immediately.
func (s *Session) Init() Result {
	return s.Reset()
}

// Reset restores the default inputs and recomputes.
func (s *Session) Reset() Result {
	s.raw = DefaultRaw(s.clock())
	return s.Recompute()
}

// Load replaces every input and recomputes.
func (s *Session) Load(raw models.RawInputs) Result {
	raw.Options = OptionRows(raw.Options).clone()
	s.raw = raw
	return s.Recompute()
}

// SetField updates one scalar input and recomputes.
// Unknown fields leave the inputs unchanged.
func (s *Session) SetField(field Field, value string) Result {
	switch field {
	case FieldCurrency:
		s.raw.Currency = value
	case FieldIndex:
		s.raw.Index = value
	case FieldMultiplier:
		s.raw.Multiplier = value
	case FieldNotional:
		s.raw.Notional = value
	case FieldSpot:
		s.raw.Spot = value
	}
	return s.Recompute()
}

// ApplyPreset switches to an index preset and recomputes.
func (s *Session) ApplyPreset(preset models.IndexPreset) Result {
	s.raw = ApplyPreset(s.raw, preset)
	return s.Recompute()
}

// AddRow appends an option row and recomputes.
func (s *Session) AddRow(row models.RawOption) Result {
	s.raw.Options = OptionRows(s.raw.Options).Add(row)
	return s.Recompute()
}

// RemoveRow deletes the option row at index i and recomputes.
func (s *Session) RemoveRow(i int) Result {
	s.raw.Options = OptionRows(s.raw.Options).Remove(i)
	return s.Recompute()
}

// SetRow replaces the option row at index i and recomputes.
func (s *Session) SetRow(i int, row models.RawOption) Result {
	s.raw.Options = OptionRows(s.raw.Options).Set(i, row)
	return s.Recompute()
}

// Recompute runs the pipeline on the current inputs.
func (s *Session) Recompute() Result {
	s.result = Recompute(s.raw, s.clock())
	return s.result
}

// Raw returns a copy of the current raw inputs.
func (s *Session) Raw() models.RawInputs {
	raw := s.raw
	raw.Options = OptionRows(s.raw.Options).clone()
	return raw
}

// Result returns the last computed result.
func (s *Session) Result() Result {
	return s.result
}
