package api

import (
	"bytes"
	"encoding/json"

	"github.com/amtfdev/hedgecalculator/internal/models"
)

// looseString accepts a JSON string, number, boolean or null and keeps its
// text so that numeric coercion happens in one place, hedge.ParseOrZero.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = ""
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			// objects and arrays degrade to an empty field
			*s = ""
			return nil
		}
		*s = looseString(n.String())
	}
	return nil
}

type optionRequest struct {
	Expiry looseString `json:"expiry"`
	Strike looseString `json:"strike"`
	Ask    looseString `json:"ask"`
}

// calcRequest is the body of /calc, /chart and the inputs of /export.
type calcRequest struct {
	Preset     string          `json:"preset"`
	Currency   looseString     `json:"currency"`
	Index      looseString     `json:"index"`
	Multiplier looseString     `json:"multiplier"`
	Notional   looseString     `json:"notional"`
	Spot       looseString     `json:"spot"`
	Options    []optionRequest `json:"options"`
}

type exportRequest struct {
	Inputs calcRequest `json:"inputs"`
	Notes  string      `json:"notes"`
	Format string      `json:"format"`
}

func (r calcRequest) raw() models.RawInputs {
	raw := models.RawInputs{
		Currency:   string(r.Currency),
		Index:      string(r.Index),
		Multiplier: string(r.Multiplier),
		Notional:   string(r.Notional),
		Spot:       string(r.Spot),
		Options:    make([]models.RawOption, 0, len(r.Options)),
	}
	for _, o := range r.Options {
		raw.Options = append(raw.Options, models.RawOption{
			Expiry: string(o.Expiry),
			Strike: string(o.Strike),
			Ask:    string(o.Ask),
		})
	}
	return raw
}

// errorResponse is the JSON body of every non-2xx reply.
type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}
