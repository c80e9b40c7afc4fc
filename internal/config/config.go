// Package config provides configuration types, defaults, and persistence
// for plume.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/plume/internal/tracing"
)

// Config holds all configuration options for plume.
type Config struct {
	Editor  EditorConfig   `mapstructure:"editor"`
	Theme   ThemeConfig    `mapstructure:"theme"`
	Session SessionConfig  `mapstructure:"session"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// EditorConfig holds buffer and display behavior.
type EditorConfig struct {
	// TabWidth is the display width of a tab stop, in cells.
	TabWidth int `mapstructure:"tab_width"`

	// AutoReload reloads the buffer when the file changes on disk and
	// there are no unsaved edits.
	AutoReload bool `mapstructure:"auto_reload"`

	// ScrollMargin keeps this many rows visible above and below the
	// cursor while scrolling.
	ScrollMargin int `mapstructure:"scroll_margin"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Mode forces light or dark colors. "auto" or empty uses terminal
	// background detection.
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     selection:
	//       bg: "#44475A"
	// Or quoted dot notation:
	//   colors:
	//     "selection.bg": "#44475A"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// SessionConfig controls cursor persistence across runs.
type SessionConfig struct {
	// Restore re-opens files at their last cursor position.
	Restore bool `mapstructure:"restore"`

	// DBPath overrides the session database location.
	// Default: ~/.config/plume/sessions.db
	DBPath string `mapstructure:"db_path"`
}

// DefaultEditorConfig returns the default editor configuration.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		TabWidth:     4,
		AutoReload:   true,
		ScrollMargin: 3,
	}
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		Mode: "auto",
	}
}

// DefaultSessionConfig returns the default session configuration.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Restore: true,
	}
}

// DefaultConfig returns the complete default configuration.
func DefaultConfig() Config {
	return Config{
		Editor:  DefaultEditorConfig(),
		Theme:   DefaultThemeConfig(),
		Session: DefaultSessionConfig(),
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/plume/traces/traces.jsonl or empty string if home dir
// unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "plume", "traces", "traces.jsonl")
}

// DefaultSessionDBPath returns the default path for the session database.
// Returns ~/.config/plume/sessions.db or empty string if home dir
// unavailable.
func DefaultSessionDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "plume", "sessions.db")
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(cfg EditorConfig) error {
	if cfg.TabWidth < 1 || cfg.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", cfg.TabWidth)
	}
	if cfg.ScrollMargin < 0 || cfg.ScrollMargin > 20 {
		return fmt.Errorf("editor.scroll_margin must be between 0 and 20, got %d", cfg.ScrollMargin)
	}
	return nil
}

// ValidateTheme checks theme configuration for errors.
func ValidateTheme(cfg ThemeConfig) error {
	switch cfg.Mode {
	case "", "auto", "dark", "light":
		return nil
	default:
		return fmt.Errorf("theme.mode must be \"auto\", \"dark\", or \"light\", got %q", cfg.Mode)
	}
}

// ValidateSession checks session configuration for errors.
func ValidateSession(cfg SessionConfig) error {
	if cfg.DBPath != "" && !filepath.IsAbs(cfg.DBPath) {
		return fmt.Errorf("session.db_path must be an absolute path, got %q", cfg.DBPath)
	}
	return nil
}

// Validate checks every section of the configuration.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidateSession(c.Session); err != nil {
		return err
	}
	return c.Tracing.Validate()
}
