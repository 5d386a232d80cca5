// Command hedger sizes protective put hedges from the terminal or over HTTP.
package main

import (
	"os"

	"github.com/amtfdev/hedgecalculator/internal/cli"
	"github.com/amtfdev/hedgecalculator/internal/config"
	"github.com/amtfdev/hedgecalculator/internal/logging"
)

func main() {
	cfg, cfgErr := config.Load("")
	if cfgErr != nil {
		cfg = config.Default()
	}

	logger := logging.NewLoggerWithConfig(cfg.LogConfig())
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("Using default configuration")
	}

	if err := cli.NewRootCmd(cfg, logger).Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
