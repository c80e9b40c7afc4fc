// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Mode   string
	Colors map[string]string
}

// ResolveMode maps "auto" (or empty) to "dark" or "light" by querying the
// terminal background; explicit modes pass through unchanged.
func ResolveMode(mode string) string {
	switch mode {
	case ModeDark, ModeLight:
		return mode
	default:
		if termenv.HasDarkBackground() {
			return ModeDark
		}
		return ModeLight
	}
}

// Apply applies a complete theme configuration.
// Order of application:
// 1. Resolve the mode and start from that palette
// 2. Apply individual color overrides
// 3. Rebuild all Style objects
func Apply(cfg ThemeConfig) error {
	mode := ResolveMode(cfg.Mode)
	palette, ok := Palettes[mode]
	if !ok {
		return fmt.Errorf("unknown theme mode: %s", mode)
	}
	colors := maps.Clone(palette.Colors)

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Collapse to the same color for both modes: the palette choice has
	// already decided light versus dark.
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	// Text hierarchy
	if c, ok := colors[TokenTextPrimary]; ok {
		TextPrimaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextMuted]; ok {
		TextMutedColor = makeColor(c)
	}

	// Gutter
	if c, ok := colors[TokenGutterLine]; ok {
		GutterLineColor = makeColor(c)
	}
	if c, ok := colors[TokenGutterCurrent]; ok {
		GutterCurrentColor = makeColor(c)
	}

	// Selection and carets
	if c, ok := colors[TokenSelectionBg]; ok {
		SelectionBgColor = makeColor(c)
	}
	if c, ok := colors[TokenCursorBg]; ok {
		CursorBgColor = makeColor(c)
	}
	if c, ok := colors[TokenCursorFg]; ok {
		CursorFgColor = makeColor(c)
	}
	if c, ok := colors[TokenCaretExtraBg]; ok {
		CaretExtraBgColor = makeColor(c)
	}

	// Status bar
	if c, ok := colors[TokenStatusBarBg]; ok {
		StatusBarBgColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusBarFg]; ok {
		StatusBarFgColor = makeColor(c)
	}

	// Mode badges
	if c, ok := colors[TokenModeText]; ok {
		ModeTextColor = makeColor(c)
	}
	if c, ok := colors[TokenModeNormal]; ok {
		ModeNormalColor = makeColor(c)
	}
	if c, ok := colors[TokenModeInsert]; ok {
		ModeInsertColor = makeColor(c)
	}
	if c, ok := colors[TokenModeVisual]; ok {
		ModeVisualColor = makeColor(c)
	}
	if c, ok := colors[TokenModeVisualLine]; ok {
		ModeVisualLineColor = makeColor(c)
	}

	// Dirty stats
	if c, ok := colors[TokenDiffAdded]; ok {
		DiffAddedColor = makeColor(c)
	}
	if c, ok := colors[TokenDiffRemoved]; ok {
		DiffRemovedColor = makeColor(c)
	}

	// Messages
	if c, ok := colors[TokenStatusError]; ok {
		StatusErrorColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusSuccess]; ok {
		StatusSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusWarning]; ok {
		StatusWarningColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusInfo]; ok {
		StatusInfoColor = makeColor(c)
	}

	// Overlays
	if c, ok := colors[TokenOverlayTitle]; ok {
		OverlayTitleColor = makeColor(c)
	}
	if c, ok := colors[TokenOverlayBorder]; ok {
		OverlayBorderColor = makeColor(c)
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	GutterStyle = lipgloss.NewStyle().Foreground(GutterLineColor)
	GutterCurrentStyle = lipgloss.NewStyle().Foreground(GutterCurrentColor)

	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)
	CursorStyle = lipgloss.NewStyle().Foreground(CursorFgColor).Background(CursorBgColor)
	CaretExtraStyle = lipgloss.NewStyle().Foreground(CursorFgColor).Background(CaretExtraBgColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(StatusBarFgColor).
		Background(StatusBarBgColor)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
