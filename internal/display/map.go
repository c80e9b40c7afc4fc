package display

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/plume/internal/cachemanager"
)

// DefaultTabWidth is used when no tab width is configured.
const DefaultTabWidth = 4

// Content is the text source a Map lays out. The buffer package satisfies
// it. Content always holds at least one line; an empty document is a
// single empty line.
type Content interface {
	Line(row int) string
	LineCount() int
}

// Cell describes one grapheme cluster as laid out on a row.
type Cell struct {
	Cluster string // the grapheme cluster
	Col     int    // display column of the cluster's first cell
	Width   int    // display cells occupied; tabs expand to the next stop
}

// rowLayout is the laid-out form of one line. Caret stops are each cell's
// Col plus the line-end stop at Width.
type rowLayout struct {
	Cells []Cell
	Width int
}

// Map is a live view translating between the buffer's text and display
// space. It reads lines through Content on every call, so it never goes
// stale after an edit; row layouts are memoized keyed by line content,
// which makes the cache self-invalidating.
type Map struct {
	content  Content
	tabWidth int
	layouts  *cachemanager.ReadThroughCache[string, rowLayout, string]
}

// NewMap creates a map over content with the given tab width.
func NewMap(content Content, tabWidth int) *Map {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	m := &Map{content: content, tabWidth: tabWidth}
	cache := cachemanager.NewInMemoryCacheManager[string, rowLayout](
		"row-layout", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)
	m.layouts = cachemanager.NewReadThroughCache[string, rowLayout, string](cache, func(line string) (rowLayout, error) {
		return layoutRow(line, tabWidth), nil
	}, false)
	return m
}

// layoutRow walks the line's grapheme clusters assigning display columns.
// A tab advances to the next multiple of tabWidth; every other cluster
// takes its runewidth, floored at one cell so stops stay strictly
// increasing.
func layoutRow(line string, tabWidth int) rowLayout {
	var cells []Cell
	col := 0
	state := -1
	for len(line) > 0 {
		cluster, rest, _, newState := uniseg.StepString(line, state)
		var w int
		if cluster == "\t" {
			w = tabWidth - col%tabWidth
		} else {
			w = runewidth.StringWidth(cluster)
			if w < 1 {
				w = 1
			}
		}
		cells = append(cells, Cell{Cluster: cluster, Col: col, Width: w})
		col += w
		line = rest
		state = newState
	}
	return rowLayout{Cells: cells, Width: col}
}

func (m *Map) layout(row int) rowLayout {
	line := m.content.Line(row)
	l, _ := m.layouts.Get(line, line, cachemanager.NoExpiration)
	return l
}

func (m *Map) clampRow(row int) int {
	last := m.content.LineCount() - 1
	if last < 0 {
		return 0
	}
	return max(0, min(row, last))
}

// TabWidth returns the configured tab width.
func (m *Map) TabWidth() int {
	return m.tabWidth
}

// LineCount returns the number of lines in the underlying content.
func (m *Map) LineCount() int {
	return m.content.LineCount()
}

// LineLen returns the display width of row.
func (m *Map) LineLen(row int) int {
	return m.layout(m.clampRow(row)).Width
}

// MaxPoint returns the last row at its line-end stop.
func (m *Map) MaxPoint() Point {
	row := m.clampRow(m.content.LineCount() - 1)
	return Point{Row: row, Col: m.layout(row).Width}
}

// Cells returns row's laid-out grapheme clusters. Callers must not mutate
// the returned slice.
func (m *Map) Cells(row int) []Cell {
	return m.layout(m.clampRow(row)).Cells
}

// ClipPoint snaps p to a valid caret stop. The clip is loose: the line-end
// stop one past the last grapheme is valid, so callers that must keep the
// cursor on a character follow up with ClipAtLineEnd. Columns inside a
// glyph resolve per bias; rows clamp to the document.
func (m *Map) ClipPoint(p Point, bias Bias) Point {
	lineCount := m.content.LineCount()
	if lineCount == 0 {
		return Point{}
	}
	if p.Row < 0 {
		return Point{Row: 0, Col: 0}
	}
	if p.Row >= lineCount {
		return m.MaxPoint()
	}
	return Point{Row: p.Row, Col: clipCol(m.layout(p.Row), p.Col, bias)}
}

func clipCol(l rowLayout, col int, bias Bias) int {
	if col <= 0 {
		return 0
	}
	if col >= l.Width {
		return l.Width
	}
	for _, c := range l.Cells {
		if col == c.Col {
			return col
		}
		if col < c.Col+c.Width {
			if bias == BiasLeft {
				return c.Col
			}
			return c.Col + c.Width
		}
	}
	return l.Width
}

// ClipAtLineEnd pulls a position resting on a non-empty line's end stop
// back onto its last grapheme. Other positions clip left and pass through.
func (m *Map) ClipAtLineEnd(p Point) Point {
	p = m.ClipPoint(p, BiasLeft)
	l := m.layout(p.Row)
	if len(l.Cells) > 0 && p.Col >= l.Width {
		return Point{Row: p.Row, Col: l.Cells[len(l.Cells)-1].Col}
	}
	return p
}

// PrevLineBoundary returns the start of the line containing p.
func (m *Map) PrevLineBoundary(p Point) Point {
	return Point{Row: m.clampRow(p.Row), Col: 0}
}

// NextLineBoundary returns the line-end stop of the line containing p.
func (m *Map) NextLineBoundary(p Point) Point {
	row := m.clampRow(p.Row)
	return Point{Row: row, Col: m.layout(row).Width}
}

// GraphemeIndex returns the index of the grapheme whose span contains p,
// or the row's grapheme count when p is at or past the line end. This is
// the bridge into the buffer's grapheme coordinates.
func (m *Map) GraphemeIndex(p Point) int {
	l := m.layout(m.clampRow(p.Row))
	if p.Col >= l.Width {
		return len(l.Cells)
	}
	if p.Col <= 0 {
		return 0
	}
	idx := 0
	for i, c := range l.Cells {
		if p.Col < c.Col {
			break
		}
		idx = i
	}
	return idx
}

// PointAt returns the display position of the grapheme at index on row.
// index equal to the grapheme count gives the line-end stop.
func (m *Map) PointAt(row, index int) Point {
	row = m.clampRow(row)
	l := m.layout(row)
	if index >= len(l.Cells) {
		return Point{Row: row, Col: l.Width}
	}
	if index < 0 {
		index = 0
	}
	return Point{Row: row, Col: l.Cells[index].Col}
}

// GraphemeAt returns the cluster whose span contains p, or "" when p sits
// at or past the line end.
func (m *Map) GraphemeAt(p Point) string {
	l := m.layout(m.clampRow(p.Row))
	idx := m.GraphemeIndex(p)
	if idx >= len(l.Cells) {
		return ""
	}
	return l.Cells[idx].Cluster
}
