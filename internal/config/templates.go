package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Hedge Calculator Configuration

[defaults]
# Display-only currency symbol
currency = "£"
# Display-only index label
index = "FTSE 100"
# Currency value of one index point per contract
multiplier = "10"
# Exposure to hedge
notional = "100000"
# Current index level
spot = "9500"

[ui]
# Enable colored output
color_enabled = true

[server]
addr = ":8080"
# Compress responses with zstd when the client accepts it
compress = true
read_timeout = "10s"
write_timeout = "10s"
shutdown_timeout = "5s"

[logging]
# debug, info, warn, error
level = "info"
# Also write a rotated log file
file = false
max_size = 20
max_backups = 3
max_age = 30

# Extra or overriding index presets, selected with --index-preset.
# [presets.DAX]
# name = "DAX (Eurex)"
# multiplier = 5
# currency = "€"
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
