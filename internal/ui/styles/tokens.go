// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextMuted   ColorToken = "text.muted"

	// Gutter
	TokenGutterLine    ColorToken = "gutter.line"
	TokenGutterCurrent ColorToken = "gutter.current"

	// Selection and carets
	TokenSelectionBg  ColorToken = "selection.bg"
	TokenCursorBg     ColorToken = "cursor.bg"
	TokenCursorFg     ColorToken = "cursor.fg"
	TokenCaretExtraBg ColorToken = "caret.extra.bg"

	// Status bar
	TokenStatusBarBg ColorToken = "statusbar.bg"
	TokenStatusBarFg ColorToken = "statusbar.fg"

	// Mode badges
	TokenModeText       ColorToken = "mode.text"
	TokenModeNormal     ColorToken = "mode.normal"
	TokenModeInsert     ColorToken = "mode.insert"
	TokenModeVisual     ColorToken = "mode.visual"
	TokenModeVisualLine ColorToken = "mode.visualline"

	// Dirty stats
	TokenDiffAdded   ColorToken = "diff.added"
	TokenDiffRemoved ColorToken = "diff.removed"

	// Messages
	TokenStatusError   ColorToken = "status.error"
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusInfo    ColorToken = "status.info"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Text hierarchy
		TokenTextPrimary,
		TokenTextMuted,

		// Gutter
		TokenGutterLine,
		TokenGutterCurrent,

		// Selection and carets
		TokenSelectionBg,
		TokenCursorBg,
		TokenCursorFg,
		TokenCaretExtraBg,

		// Status bar
		TokenStatusBarBg,
		TokenStatusBarFg,

		// Mode badges
		TokenModeText,
		TokenModeNormal,
		TokenModeInsert,
		TokenModeVisual,
		TokenModeVisualLine,

		// Dirty stats
		TokenDiffAdded,
		TokenDiffRemoved,

		// Messages
		TokenStatusError,
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusInfo,

		// Overlays
		TokenOverlayTitle,
		TokenOverlayBorder,
	}
}
