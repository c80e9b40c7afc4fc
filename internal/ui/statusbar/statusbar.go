// Package statusbar renders the single-line bar at the bottom of the
// editor: mode badge, file path with dirty stats, transient message, and
// cursor position.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/plume/internal/ui/styles"
	"github.com/zjrosen/plume/internal/vim"
)

// MessageKind classifies the transient status message.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageInfo
	MessageSuccess
	MessageError
)

// Props carries everything the bar displays for one frame.
type Props struct {
	Mode        vim.Mode
	Path        string
	Dirty       bool
	Added       int // Lines added relative to disk
	Removed     int // Lines removed relative to disk
	Pending     int // Buffered count prefix, 0 when none
	Row, Col    int // Primary cursor, display coordinates
	CaretCount  int
	Message     string
	MessageKind MessageKind
}

// Render builds the status bar at exactly the given width.
func Render(width int, p Props) string {
	if width <= 0 {
		return ""
	}

	left := renderBadge(p.Mode) + renderFile(p)
	right := renderRight(p)

	avail := width - lipgloss.Width(left) - lipgloss.Width(right)
	middle := renderMiddle(p, avail)

	bar := left + middle + right
	if lipgloss.Width(bar) > width {
		// Degenerate widths: cut the whole bar rather than wrap.
		bar = truncate.String(bar, uint(width)) //nolint:gosec // G115: width checked positive
	}
	return bar
}

// renderBadge renders the mode indicator.
func renderBadge(mode vim.Mode) string {
	badge := lipgloss.NewStyle().
		Foreground(styles.ModeTextColor).
		Background(modeColor(mode)).
		Bold(true).
		Padding(0, 1)
	return badge.Render(mode.String())
}

func modeColor(mode vim.Mode) lipgloss.TerminalColor {
	switch mode {
	case vim.ModeInsert:
		return styles.ModeInsertColor
	case vim.ModeVisual:
		return styles.ModeVisualColor
	case vim.ModeVisualLine:
		return styles.ModeVisualLineColor
	default:
		return styles.ModeNormalColor
	}
}

// renderFile renders the path segment with dirty marker and diff stats.
func renderFile(p Props) string {
	path := p.Path
	// Long paths lose their head, not their tail.
	if maxPath := 40; lipgloss.Width(path) > maxPath {
		path = ansi.TruncateLeft(path, lipgloss.Width(path)-maxPath+1, "…")
	}

	seg := " " + path
	if p.Dirty {
		seg += " [+]"
	}
	out := styles.StatusBarStyle.Render(seg)

	if p.Dirty && (p.Added > 0 || p.Removed > 0) {
		addedStyle := lipgloss.NewStyle().
			Foreground(styles.DiffAddedColor).
			Background(styles.StatusBarBgColor)
		removedStyle := lipgloss.NewStyle().
			Foreground(styles.DiffRemovedColor).
			Background(styles.StatusBarBgColor)
		out += addedStyle.Render(fmt.Sprintf(" +%d", p.Added))
		out += removedStyle.Render(fmt.Sprintf(" -%d", p.Removed))
	}
	return out
}

// renderRight renders pending count, caret count and cursor position.
func renderRight(p Props) string {
	var parts []string
	if p.Pending > 0 {
		parts = append(parts, fmt.Sprintf("%d", p.Pending))
	}
	if p.CaretCount > 1 {
		parts = append(parts, fmt.Sprintf("%d carets", p.CaretCount))
	}
	parts = append(parts, fmt.Sprintf("%d:%d", p.Row+1, p.Col+1))
	return styles.StatusBarStyle.Render(" " + strings.Join(parts, "  ") + " ")
}

// renderMiddle fills the space between file and position with a transient
// message, or a help hint when there is none.
func renderMiddle(p Props, avail int) string {
	if avail <= 0 {
		return ""
	}

	text := p.Message
	fg := messageColor(p.MessageKind)
	if text == "" {
		text = "? help"
		fg = styles.TextMutedColor
	}

	// Leave one space on each side of the message.
	if w := lipgloss.Width(text) + 2; w > avail {
		if avail <= 3 {
			return styles.StatusBarStyle.Render(strings.Repeat(" ", avail))
		}
		text = truncate.StringWithTail(text, uint(avail-3), "…") //nolint:gosec // G115: avail checked above
	}

	msgStyle := lipgloss.NewStyle().
		Foreground(fg).
		Background(styles.StatusBarBgColor)

	rendered := msgStyle.Render(" " + text)
	pad := avail - lipgloss.Width(rendered)
	if pad > 0 {
		rendered += styles.StatusBarStyle.Render(strings.Repeat(" ", pad))
	}
	return rendered
}

func messageColor(kind MessageKind) lipgloss.TerminalColor {
	switch kind {
	case MessageError:
		return styles.StatusErrorColor
	case MessageSuccess:
		return styles.StatusSuccessColor
	case MessageInfo:
		return styles.StatusInfoColor
	default:
		return styles.StatusBarFgColor
	}
}
