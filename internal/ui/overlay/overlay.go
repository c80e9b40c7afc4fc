// Package overlay composites modal content over the editor view
// without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Place renders fg centered on top of bg within a width x height viewport.
// Both strings may carry ANSI styling; the background is cut around the
// foreground with ANSI-aware truncation so colors survive on either side.
// A foreground larger than the viewport is anchored at the top-left corner.
func Place(width, height int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	// Pad background to full height
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	fgWidth := lipgloss.Width(fg)
	startX := max((width-fgWidth)/2, 0)
	startY := max((height-len(fgLines))/2, 0)

	for i, fgLine := range fgLines {
		bgY := startY + i
		if bgY >= len(bgLines) {
			break
		}

		bgLine := bgLines[bgY]
		fgLineWidth := ansi.StringWidth(fgLine)

		// Left portion of the background, ANSI-aware
		leftPart := ansi.Truncate(bgLine, startX, "")
		if w := ansi.StringWidth(leftPart); w < startX {
			leftPart += strings.Repeat(" ", startX-w)
		}

		// Right portion of the background after the overlay
		endX := startX + fgLineWidth
		var rightPart string
		if endX < ansi.StringWidth(bgLine) {
			rightPart = ansi.TruncateLeft(bgLine, endX, "")
		}

		bgLines[bgY] = leftPart + fgLine + rightPart
	}

	return strings.Join(bgLines, "\n")
}
