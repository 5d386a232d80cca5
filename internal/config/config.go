// Package config provides configuration management for the hedge calculator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/amtfdev/hedgecalculator/internal/errors"
	"github.com/amtfdev/hedgecalculator/internal/logging"
	"github.com/amtfdev/hedgecalculator/internal/models"
)

// EnvPrefix prefixes environment variable overrides, e.g. HEDGER_DEFAULTS_SPOT.
const EnvPrefix = "HEDGER"

// Config holds all application configuration.
type Config struct {
	Defaults DefaultsConfig                `mapstructure:"defaults"`
	UI       UIConfig                      `mapstructure:"ui"`
	Server   ServerConfig                  `mapstructure:"server"`
	Logging  LoggingConfig                 `mapstructure:"logging"`
	Presets  map[string]models.IndexPreset `mapstructure:"presets"`
}

// DefaultsConfig holds the calculator's starting field values.
// Values are text so they pass through the same parse-or-zero path as
// user input.
type DefaultsConfig struct {
	Currency   string `mapstructure:"currency"`
	Index      string `mapstructure:"index"`
	Multiplier string `mapstructure:"multiplier"`
	Notional   string `mapstructure:"notional"`
	Spot       string `mapstructure:"spot"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// ServerConfig holds HTTP adapter configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Compress        bool          `mapstructure:"compress"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/hedgecalculator"
	}
	return filepath.Join(home, ".config", "hedgecalculator")
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	logCfg := logging.DefaultLogConfig()
	return &Config{
		Defaults: DefaultsConfig{
			Currency:   "£",
			Index:      "FTSE 100",
			Multiplier: "10",
			Notional:   "100000",
			Spot:       "9500",
		},
		UI: UIConfig{ColorEnabled: true},
		Server: ServerConfig{
			Addr:            ":8080",
			Compress:        true,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      logCfg.Level,
			File:       logCfg.File,
			FilePath:   logCfg.FilePath,
			MaxSize:    logCfg.MaxSize,
			MaxBackups: logCfg.MaxBackups,
			MaxAge:     logCfg.MaxAge,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config file is replaced by a commented template and defaults are used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// newViper returns a viper instance seeded with defaults and env overrides.
func newViper() *viper.Viper {
	d := Default()
	v := viper.New()

	v.SetDefault("defaults.currency", d.Defaults.Currency)
	v.SetDefault("defaults.index", d.Defaults.Index)
	v.SetDefault("defaults.multiplier", d.Defaults.Multiplier)
	v.SetDefault("defaults.notional", d.Defaults.Notional)
	v.SetDefault("defaults.spot", d.Defaults.Spot)
	v.SetDefault("ui.color_enabled", d.UI.ColorEnabled)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.compress", d.Server.Compress)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.file_path", d.Logging.FilePath)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age", d.Logging.MaxAge)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return apperrors.NewValidationError("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}

	// Defaults are parsed leniently, but an explicit negative value is
	// almost certainly a typo in the file.
	for field, value := range map[string]string{
		"defaults.multiplier": c.Defaults.Multiplier,
		"defaults.notional":   c.Defaults.Notional,
		"defaults.spot":       c.Defaults.Spot,
	} {
		if strings.HasPrefix(strings.TrimSpace(value), "-") {
			return apperrors.NewValidationError(field, value, "must not be negative")
		}
	}

	for key, p := range c.Presets {
		if p.Multiplier <= 0 {
			return apperrors.NewValidationError("presets."+key+".multiplier", p.Multiplier, "must be positive")
		}
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return apperrors.NewValidationError("server", c.Server, "timeouts must be non-negative")
	}

	return nil
}

// LogConfig converts the logging section for the logging package.
func (c *Config) LogConfig() logging.LogConfig {
	return logging.LogConfig{
		Level:      c.Logging.Level,
		Console:    true,
		File:       c.Logging.File,
		FilePath:   c.Logging.FilePath,
		MaxSize:    c.Logging.MaxSize,
		MaxBackups: c.Logging.MaxBackups,
		MaxAge:     c.Logging.MaxAge,
	}
}

// DefaultRaw returns the configured starting inputs with the given option rows.
func (c *Config) DefaultRaw(rows []models.RawOption) models.RawInputs {
	return models.RawInputs{
		Currency:   c.Defaults.Currency,
		Index:      c.Defaults.Index,
		Multiplier: c.Defaults.Multiplier,
		Notional:   c.Defaults.Notional,
		Spot:       c.Defaults.Spot,
		Options:    rows,
	}
}
