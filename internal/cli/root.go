package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amtfdev/hedgecalculator/internal/config"
	"github.com/amtfdev/hedgecalculator/internal/hedge"
	"github.com/amtfdev/hedgecalculator/pkg/utils"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-01-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Presets hedge.Presets
	Clock   func() time.Time
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	return newRootCmd(&App{
		Config:  cfg,
		Logger:  logger,
		Presets: hedge.BuiltinPresets().Merge(cfg.Presets),
		Clock:   time.Now,
	})
}

func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hedger",
		Short: "Protective put hedge calculator",
		Long: `hedger sizes protective put hedges for an index exposure.

Given a notional, the index spot level, the contract multiplier and a set of
candidate puts, it shows how many contracts hedge 100%, 50% and 10% of the
notional, what each tier costs and how far each strike sits from spot.

Run 'hedger calc' with no flags to see the example inputs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dir, _ := cmd.Flags().GetString("config"); dir != "" {
				loaded, err := config.Load(dir)
				if err != nil {
					return err
				}
				app.Config = loaded
				app.Presets = hedge.BuiltinPresets().Merge(loaded.Presets)
			}

			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/hedgecalculator)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addHedgeCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
}

func (app *App) output(cmd *cobra.Command) *Output {
	return NewOutput(cmd, app.Config.UI.ColorEnabled)
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("hedger v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			dir, _ := cmd.Flags().GetString("config")
			if dir == "" {
				dir = config.DefaultConfigDir()
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": dir})
			}
			output.Println(dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Defaults")
	output.Printf("  Currency:        %s\n", cfg.Defaults.Currency)
	output.Printf("  Index:           %s\n", cfg.Defaults.Index)
	output.Printf("  Multiplier:      %s\n", cfg.Defaults.Multiplier)
	output.Printf("  Notional:        %s\n", cfg.Defaults.Notional)
	output.Printf("  Spot:            %s\n", cfg.Defaults.Spot)
	output.Println()

	output.Bold("Server")
	output.Printf("  Address:         %s\n", cfg.Server.Addr)
	output.Printf("  Compress:        %v\n", cfg.Server.Compress)
	output.Printf("  Read timeout:    %s\n", cfg.Server.ReadTimeout)
	output.Printf("  Write timeout:   %s\n", cfg.Server.WriteTimeout)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %v\n", cfg.Logging.File)
	if cfg.Logging.File {
		output.Printf("  Path:            %s\n", cfg.Logging.FilePath)
	}

	if len(cfg.Presets) > 0 {
		output.Println()
		output.Bold("Preset overrides")
		for _, p := range (hedge.Presets{}).Merge(cfg.Presets).Sorted() {
			output.Printf("  %-8s %s x%s %s\n", p.Key, p.Name, utils.FormatWhole(p.Multiplier), p.Currency)
		}
	}
}
