package cli

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	apperrors "github.com/amtfdev/hedgecalculator/internal/errors"
	"github.com/amtfdev/hedgecalculator/internal/hedge"
	"github.com/amtfdev/hedgecalculator/internal/models"
)

// inputFlags are the calculator fields accepted by calc, chart and export.
type inputFlags struct {
	currency    string
	index       string
	multiplier  string
	notional    string
	spot        string
	options     []string
	optionsFile string
	preset      string
	noDefaults  bool
}

func addInputFlags(cmd *cobra.Command, f *inputFlags) {
	cmd.Flags().StringVar(&f.currency, "currency", "", "currency symbol shown with money values")
	cmd.Flags().StringVar(&f.index, "index", "", "index label")
	cmd.Flags().StringVar(&f.multiplier, "multiplier", "", "contract multiplier")
	cmd.Flags().StringVar(&f.notional, "notional", "", "notional exposure to hedge")
	cmd.Flags().StringVar(&f.spot, "spot", "", "current index level")
	cmd.Flags().StringArrayVarP(&f.options, "option", "o", nil, `put candidate as "expiry,strike,ask" (repeatable)`)
	cmd.Flags().StringVar(&f.optionsFile, "options-file", "", "CSV file with expiry,strike,ask columns")
	cmd.Flags().StringVarP(&f.preset, "index-preset", "p", "", "apply an index preset (see 'hedger indexes')")
	cmd.Flags().BoolVar(&f.noDefaults, "no-default-rows", false, "do not fall back to the example option rows")
}

// rawInputs builds the raw calculator fields from config defaults, an
// optional preset and the flags the user set, in that order of precedence.
func (app *App) rawInputs(cmd *cobra.Command, f *inputFlags, now time.Time) (models.RawInputs, error) {
	raw := app.Config.DefaultRaw(nil)

	if f.preset != "" {
		preset, err := app.Presets.Lookup(f.preset)
		if err != nil {
			return models.RawInputs{}, err
		}
		raw = hedge.ApplyPreset(raw, preset)
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("currency", &raw.Currency, f.currency)
	override("index", &raw.Index, f.index)
	override("multiplier", &raw.Multiplier, f.multiplier)
	override("notional", &raw.Notional, f.notional)
	override("spot", &raw.Spot, f.spot)

	var rows hedge.OptionRows
	if f.optionsFile != "" {
		fileRows, err := readOptionsFile(f.optionsFile)
		if err != nil {
			return models.RawInputs{}, err
		}
		rows = append(rows, fileRows...)
	}
	for _, s := range f.options {
		row, err := parseOptionFlag(s)
		if err != nil {
			return models.RawInputs{}, err
		}
		rows = rows.Add(row)
	}
	if len(rows) == 0 && !f.noDefaults {
		rows = hedge.DefaultRows(now)
	}
	raw.Options = rows

	return raw, nil
}

// parseOptionFlag splits "expiry,strike,ask". Values stay as text; numeric
// coercion happens during normalization.
func parseOptionFlag(s string) (models.RawOption, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return models.RawOption{}, apperrors.Wrapf(apperrors.ErrInvalidOptionFlag,
			"%q: want expiry,strike,ask", s)
	}
	return models.RawOption{
		Expiry: strings.TrimSpace(parts[0]),
		Strike: strings.TrimSpace(parts[1]),
		Ask:    strings.TrimSpace(parts[2]),
	}, nil
}

// readOptionsFile loads option rows from a CSV file with a header line
// naming the expiry, strike and ask columns.
func readOptionsFile(path string) ([]models.RawOption, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewInputError(path, "open options file", errors.Join(apperrors.ErrInputFile, err))
	}
	defer f.Close()

	var rows []models.RawOption
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, apperrors.NewInputError(path, "parse options CSV", errors.Join(apperrors.ErrInputFile, err))
	}
	return rows, nil
}
