package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/plume/internal/log"
)

// DefaultConfigTemplate returns the default config file content with
// comments documenting every option.
func DefaultConfigTemplate() string {
	return `# plume configuration
# Lookup order: .plume/config.yaml in the working directory, then
# ~/.config/plume/config.yaml

# Editor behavior
editor:
  tab_width: 4        # Display width of a tab stop (1-16)
  auto_reload: true   # Reload when the file changes on disk and the buffer is clean
  scroll_margin: 3    # Rows kept visible above and below the cursor (0-20)

# Theme
theme:
  mode: auto          # auto, dark, or light (Ctrl+T cycles and saves here)
  # Override individual color tokens with hex values:
  # colors:
  #   selection:
  #     bg: "#44475A"
  #   cursor:
  #     fg: "#282A36"
  #     bg: "#F8F8F2"

# Cursor persistence across runs
session:
  restore: true       # Reopen files at their last cursor position
  # db_path: /absolute/path/to/sessions.db  # default: ~/.config/plume/sessions.db

# Distributed tracing
# Spans cover buffer commits, saves, reloads, and session store round trips
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, or otlp
#   file_path: ~/.config/plume/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # for the otlp exporter
#   sample_rate: 1.0               # fraction of traces kept, 0.0-1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
