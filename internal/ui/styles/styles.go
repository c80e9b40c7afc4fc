// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Color variables, one per token. Defaults pair the light and dark palette
// values so rendering is sensible before Apply runs; Apply collapses each
// variable to the resolved mode's palette.
var (
	// Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#2C2C2C", Dark: "#CCCCCC"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#9A9A9A", Dark: "#696969"}

	// Gutter
	GutterLineColor    = lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#5C6370"}
	GutterCurrentColor = lipgloss.AdaptiveColor{Light: "#4A4A4A", Dark: "#ABB2BF"}

	// Selection and carets
	SelectionBgColor  = lipgloss.AdaptiveColor{Light: "#D7DCE4", Dark: "#3E4451"}
	CursorBgColor     = lipgloss.AdaptiveColor{Light: "#2C2C2C", Dark: "#CCCCCC"}
	CursorFgColor     = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E1E"}
	CaretExtraBgColor = lipgloss.AdaptiveColor{Light: "#9FB6CC", Dark: "#4B6A88"}

	// Status bar
	StatusBarBgColor = lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#2D3436"}
	StatusBarFgColor = lipgloss.AdaptiveColor{Light: "#4A4A4A", Dark: "#BBBBBB"}

	// Mode badges
	ModeTextColor       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ModeNormalColor     = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#54A0FF"}
	ModeInsertColor     = lipgloss.AdaptiveColor{Light: "#1E7A45", Dark: "#2E8B57"}
	ModeVisualColor     = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#9B59B6"}
	ModeVisualLineColor = lipgloss.AdaptiveColor{Light: "#6C3FC5", Dark: "#7D56F4"}

	// Dirty stats
	DiffAddedColor   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	DiffRemovedColor = lipgloss.AdaptiveColor{Light: "#E74C3C", Dark: "#FF8787"}

	// Messages
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#E74C3C", Dark: "#FF8787"}
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#FFD787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#2E86C1", Dark: "#87AFFF"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#3A3A3A", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#8C8C8C"}
)

// Derived styles shared across views. Rebuilt by Apply because lipgloss
// styles capture colors at creation time.
var (
	GutterStyle        = lipgloss.NewStyle().Foreground(GutterLineColor)
	GutterCurrentStyle = lipgloss.NewStyle().Foreground(GutterCurrentColor)

	SelectionStyle  = lipgloss.NewStyle().Background(SelectionBgColor)
	CursorStyle     = lipgloss.NewStyle().Foreground(CursorFgColor).Background(CursorBgColor)
	CaretExtraStyle = lipgloss.NewStyle().Foreground(CursorFgColor).Background(CaretExtraBgColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(StatusBarFgColor).
			Background(StatusBarBgColor)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Hints and footer help text
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)
