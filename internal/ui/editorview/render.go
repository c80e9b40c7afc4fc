package editorview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/plume/internal/display"
	"github.com/zjrosen/plume/internal/ui/styles"
	"github.com/zjrosen/plume/internal/vim"
)

// cellClass says how one display cell is painted. Precedence when a cell
// qualifies for more than one: cursor over selection over plain.
type cellClass int

const (
	classPlain cellClass = iota
	classSelected
	classCursor
	classExtraCaret
)

func styleRun(class cellClass, text string) string {
	switch class {
	case classSelected:
		return styles.SelectionStyle.Render(text)
	case classCursor:
		return styles.CursorStyle.Render(text)
	case classExtraCaret:
		return styles.CaretExtraStyle.Render(text)
	default:
		return text
	}
}

// colSpan is a selected column interval [start, end) on one row. end may
// run one past the line width: the line-end stop renders as a highlighted
// cell when the selection consumes the newline.
type colSpan struct {
	start, end int
}

// rowIntervals projects the selection spans onto one row. A row the span
// continues past keeps its newline cell selected, and a covered-but-empty
// row still shows a single cell — the cursor on an empty line must read as
// selected.
func rowIntervals(spans []display.Range, row, lineLen int) []colSpan {
	var out []colSpan
	for _, sp := range spans {
		if row < sp.Start.Row || row > sp.End.Row {
			continue
		}
		var iv colSpan
		if row == sp.Start.Row {
			iv.start = sp.Start.Col
		}
		if row == sp.End.Row {
			iv.end = sp.End.Col
		} else {
			iv.end = lineLen + 1
		}
		if iv.end <= iv.start {
			iv.end = iv.start + 1
		}
		out = append(out, iv)
	}
	return out
}

// View renders the visible window: gutter, text, selection highlight, and
// one painted cell per caret. Every row is zone-marked for click handling
// and padded to the full width so zones cover clicks past the line end.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	dm := m.ed.Map()
	gw := m.gutterWidth()
	textWidth := max(0, m.width-gw)
	lineCount := m.ed.LineCount()

	sels := m.session.Selections()
	primary := sels[0].Head()
	extras := make(map[display.Point]bool, len(sels)-1)
	for _, sel := range sels[1:] {
		extras[sel.Head()] = true
	}

	mode := m.session.Mode()
	var spans []display.Range
	if mode == vim.ModeVisual || mode == vim.ModeVisualLine {
		lineMode := mode == vim.ModeVisualLine
		spans = make([]display.Range, len(sels))
		for i, sel := range sels {
			spans[i] = vim.SelectionSpan(dm, sel, lineMode)
		}
	}

	rows := make([]string, 0, m.height)
	for i := 0; i < m.height; i++ {
		row := m.topRow + i
		if row >= lineCount {
			rows = append(rows, m.padRow(styles.GutterStyle.Render("~")))
			continue
		}
		line := m.renderGutter(row, gw, row == primary.Row) +
			m.renderRow(row, textWidth, spans, primary, extras)
		rows = append(rows, zone.Mark(rowZoneID(row), m.padRow(line)))
	}
	return strings.Join(rows, "\n")
}

// gutterWidth is the digits of the last line number plus one padding cell.
func (m Model) gutterWidth() int {
	digits := len(fmt.Sprintf("%d", m.ed.LineCount()))
	return digits + 1
}

func (m Model) renderGutter(row, gw int, current bool) string {
	num := fmt.Sprintf("%*d ", gw-1, row+1)
	if current {
		return styles.GutterCurrentStyle.Render(num)
	}
	return styles.GutterStyle.Render(num)
}

// padRow fills the rendered line to the full viewport width.
func (m Model) padRow(line string) string {
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

// renderRow paints one buffer row windowed to [leftCol, leftCol+textWidth).
// Cells are classified and batched into runs so consecutive same-class
// cells share one style span. A wide glyph straddling a window edge renders
// as spaces to keep columns aligned.
func (m Model) renderRow(row, textWidth int, spans []display.Range, primary display.Point, extras map[display.Point]bool) string {
	dm := m.ed.Map()
	lineLen := dm.LineLen(row)
	intervals := rowIntervals(spans, row, lineLen)
	limit := m.leftCol + textWidth

	classAt := func(col int) cellClass {
		p := display.Point{Row: row, Col: col}
		switch {
		case p == primary:
			return classCursor
		case extras[p]:
			return classExtraCaret
		}
		for _, iv := range intervals {
			if col >= iv.start && col < iv.end {
				return classSelected
			}
		}
		return classPlain
	}

	var out strings.Builder
	current := classPlain
	var run strings.Builder
	emit := func(class cellClass, text string) {
		if class != current {
			if run.Len() > 0 {
				out.WriteString(styleRun(current, run.String()))
				run.Reset()
			}
			current = class
		}
		run.WriteString(text)
	}

	for _, c := range dm.Cells(row) {
		if c.Col+c.Width <= m.leftCol {
			continue
		}
		if c.Col >= limit {
			break
		}
		text := c.Cluster
		if text == "\t" {
			text = strings.Repeat(" ", c.Width)
		}
		switch {
		case c.Col < m.leftCol:
			text = strings.Repeat(" ", c.Col+c.Width-m.leftCol)
		case c.Col+c.Width > limit:
			text = strings.Repeat(" ", limit-c.Col)
		}
		emit(classAt(c.Col), text)
	}

	// The line-end stop gets a cell of its own when a caret rests there or
	// the selection runs through the newline.
	if lineLen >= m.leftCol && lineLen < limit {
		if class := classAt(lineLen); class != classPlain {
			emit(class, " ")
		}
	}

	if run.Len() > 0 {
		out.WriteString(styleRun(current, run.String()))
	}
	return out.String()
}
