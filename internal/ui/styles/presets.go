// Package styles contains Lip Gloss style definitions.
package styles

// Palette is a complete color theme for one background mode.
type Palette struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Palettes contains the built-in palettes, keyed by mode.
var Palettes = map[string]Palette{
	ModeDark:  DarkPalette,
	ModeLight: LightPalette,
}

// DarkPalette is the default theme for dark terminal backgrounds.
var DarkPalette = Palette{
	Name:        ModeDark,
	Description: "Default theme for dark backgrounds",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary: "#CCCCCC",
		TokenTextMuted:   "#696969",

		// Gutter
		TokenGutterLine:    "#5C6370",
		TokenGutterCurrent: "#ABB2BF",

		// Selection and carets
		TokenSelectionBg:  "#3E4451",
		TokenCursorBg:     "#CCCCCC",
		TokenCursorFg:     "#1E1E1E",
		TokenCaretExtraBg: "#4B6A88",

		// Status bar
		TokenStatusBarBg: "#2D3436",
		TokenStatusBarFg: "#BBBBBB",

		// Mode badges
		TokenModeText:       "#FFFFFF",
		TokenModeNormal:     "#54A0FF",
		TokenModeInsert:     "#2E8B57",
		TokenModeVisual:     "#9B59B6",
		TokenModeVisualLine: "#7D56F4",

		// Dirty stats
		TokenDiffAdded:   "#73F59F",
		TokenDiffRemoved: "#FF8787",

		// Messages
		TokenStatusError:   "#FF8787",
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FFD787",
		TokenStatusInfo:    "#87AFFF",

		// Overlays
		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",
	},
}

// LightPalette is the default theme for light terminal backgrounds.
var LightPalette = Palette{
	Name:        ModeLight,
	Description: "Default theme for light backgrounds",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary: "#2C2C2C",
		TokenTextMuted:   "#9A9A9A",

		// Gutter
		TokenGutterLine:    "#B0B0B0",
		TokenGutterCurrent: "#4A4A4A",

		// Selection and carets
		TokenSelectionBg:  "#D7DCE4",
		TokenCursorBg:     "#2C2C2C",
		TokenCursorFg:     "#FFFFFF",
		TokenCaretExtraBg: "#9FB6CC",

		// Status bar
		TokenStatusBarBg: "#E4E4E4",
		TokenStatusBarFg: "#4A4A4A",

		// Mode badges
		TokenModeText:       "#FFFFFF",
		TokenModeNormal:     "#1A5276",
		TokenModeInsert:     "#1E7A45",
		TokenModeVisual:     "#8839EF",
		TokenModeVisualLine: "#6C3FC5",

		// Dirty stats
		TokenDiffAdded:   "#43BF6D",
		TokenDiffRemoved: "#E74C3C",

		// Messages
		TokenStatusError:   "#E74C3C",
		TokenStatusSuccess: "#43BF6D",
		TokenStatusWarning: "#B7791F",
		TokenStatusInfo:    "#2E86C1",

		// Overlays
		TokenOverlayTitle:  "#3A3A3A",
		TokenOverlayBorder: "#8C8C8C",
	},
}
