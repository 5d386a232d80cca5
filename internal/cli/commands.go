package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amtfdev/hedgecalculator/internal/api"
	"github.com/amtfdev/hedgecalculator/internal/export"
	"github.com/amtfdev/hedgecalculator/internal/hedge"
	"github.com/amtfdev/hedgecalculator/internal/logging"
)

// addHedgeCommands adds the calculator commands.
func addHedgeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newCalcCmd(app))
	rootCmd.AddCommand(newChartCmd(app))
	rootCmd.AddCommand(newDefaultsCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newIndexesCmd(app))
	rootCmd.AddCommand(newSelfTestCmd(app))
	rootCmd.AddCommand(newServeCmd(app))
}

// recompute resolves the flags and runs the pipeline through a session.
func (app *App) recompute(cmd *cobra.Command, f *inputFlags) (hedge.Result, error) {
	raw, err := app.rawInputs(cmd, f, app.Clock())
	if err != nil {
		return hedge.Result{}, err
	}

	session := hedge.NewSession(app.Clock)
	res := session.Load(raw)
	logging.LogRecompute(logging.WithIndex(app.Logger, res.Summary.IndexName),
		cmd.Name(), len(raw.Options), len(res.Solutions), res.Dropped)
	return res, nil
}

func newCalcCmd(app *App) *cobra.Command {
	var f inputFlags
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Size a protective put hedge",
		Long: `Compute contracts and cost to hedge 100%, 50% and 10% of the notional
for each candidate put, sorted by expiry.

Rows without an expiry or with a non-positive strike are skipped.
Non-numeric values count as zero.`,
		Example: `  hedger calc --notional 250000 --spot 9500 -o 2025-03-21,9000,45 -o 2025-06-20,9000,110
  hedger calc -p ES --notional 1000000 --spot 5000 --options-file puts.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.recompute(cmd, &f)
			if err != nil {
				return err
			}
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(res)
			}
			renderResult(output, res)
			return nil
		},
	}
	addInputFlags(cmd, &f)
	return cmd
}

func newChartCmd(app *App) *cobra.Command {
	var f inputFlags
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show chart geometry for the candidate strikes",
		Long: `Print the strike-versus-expiry chart data: the spot reference line,
one marker and annotation per strike, and the padded Y axis range.
Use --json to feed the payload to an external renderer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.recompute(cmd, &f)
			if err != nil {
				return err
			}
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(res.Chart)
			}
			renderChart(output, res.Chart)
			return nil
		},
	}
	addInputFlags(cmd, &f)
	return cmd
}

func newDefaultsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Show the reset state of the calculator",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.Clock()
			session := hedge.NewSession(app.Clock)
			res := session.Load(app.Config.DefaultRaw(hedge.DefaultRows(now)))

			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(struct {
					Raw    interface{}  `json:"raw"`
					Result hedge.Result `json:"result"`
				}{session.Raw(), res})
			}
			output.Bold("Example rows")
			for _, row := range session.Raw().Options {
				output.Printf("  %s  strike %s  ask %s\n", row.Expiry, row.Strike, row.Ask)
			}
			output.Println()
			renderResult(output, res)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var (
		f       inputFlags
		notes   string
		format  string
		outPath string
	)
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export the calculation as a JSON or YAML document",
		Example: `  hedger export --notes "Q1 hedge review" --format yaml --output hedge.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.recompute(cmd, &f)
			if err != nil {
				return err
			}
			doc := export.Build(res, notes, app.Clock())

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer file.Close()
				w = file
			}
			if err := export.Write(w, doc, format); err != nil {
				return err
			}

			if outPath != "" {
				app.Logger.Info().Str("path", outPath).Str("id", doc.ID).Msg("Export written")
			}
			return nil
		},
	}
	addInputFlags(cmd, &f)
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes stored with the export")
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatJSON, "document format: json or yaml")
	cmd.Flags().StringVar(&outPath, "output", "", "write to file instead of stdout")
	return cmd
}

func newIndexesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "indexes",
		Aliases: []string{"presets"},
		Short:   "List index presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			presets := app.Presets.Sorted()
			if output.IsJSON() {
				return output.JSON(presets)
			}
			renderPresets(output, presets)
			return nil
		},
	}
}

func newSelfTestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the built-in calculation checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := hedge.SelfTest(app.Clock())
			output := app.output(cmd)
			if output.IsJSON() {
				if err := output.JSON(report); err != nil {
					return err
				}
			} else {
				renderSelfTest(output, report)
			}
			if !report.OK {
				return fmt.Errorf("self test failed")
			}
			return nil
		},
	}
}

func newServeCmd(app *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(app.Config, app.Logger, app.Presets, app.Clock)
			return srv.ListenAndServe(ctx, api.Addr(app.Config, addr))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
