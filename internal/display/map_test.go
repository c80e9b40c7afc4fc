package display

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// stubContent satisfies Content for tests without pulling in the buffer
// package.
type stubContent []string

func (s stubContent) Line(row int) string {
	if row < 0 || row >= len(s) {
		return ""
	}
	return s[row]
}

func (s stubContent) LineCount() int { return len(s) }

func newTestMap(lines ...string) *Map {
	return NewMap(stubContent(lines), 4)
}

func TestMap_AsciiLayout(t *testing.T) {
	m := newTestMap("fox jumps over")

	require.Equal(t, 14, m.LineLen(0))
	require.Equal(t, Point{0, 14}, m.MaxPoint())

	cells := m.Cells(0)
	require.Len(t, cells, 14)
	require.Equal(t, "f", cells[0].Cluster)
	require.Equal(t, 5, cells[5].Col)
}

func TestMap_TabExpansion(t *testing.T) {
	m := newTestMap("a\tb")

	// "a" at 0, tab spans columns 1-3 to reach the next stop, "b" at 4.
	require.Equal(t, 5, m.LineLen(0))
	cells := m.Cells(0)
	require.Equal(t, []Cell{
		{Cluster: "a", Col: 0, Width: 1},
		{Cluster: "\t", Col: 1, Width: 3},
		{Cluster: "b", Col: 4, Width: 1},
	}, cells)

	require.Equal(t, Point{0, 1}, m.ClipPoint(Point{0, 2}, BiasLeft))
	require.Equal(t, Point{0, 4}, m.ClipPoint(Point{0, 2}, BiasRight))
	require.Equal(t, Point{0, 1}, m.ClipPoint(Point{0, 3}, BiasLeft))
	require.Equal(t, Point{0, 4}, m.ClipPoint(Point{0, 3}, BiasRight))
}

func TestMap_WideGlyphs(t *testing.T) {
	m := newTestMap("日本語")

	require.Equal(t, 6, m.LineLen(0))
	require.Equal(t, Point{0, 0}, m.ClipPoint(Point{0, 1}, BiasLeft))
	require.Equal(t, Point{0, 2}, m.ClipPoint(Point{0, 1}, BiasRight))
	require.Equal(t, "本", m.GraphemeAt(Point{0, 2}))
	require.Equal(t, "本", m.GraphemeAt(Point{0, 3}), "second cell maps to the same cluster")
}

func TestMap_ClipPoint_LooseAtLineEnd(t *testing.T) {
	m := newTestMap("dog")

	// The line-end stop is a valid clip target for both biases.
	require.Equal(t, Point{0, 3}, m.ClipPoint(Point{0, 3}, BiasLeft))
	require.Equal(t, Point{0, 3}, m.ClipPoint(Point{0, 3}, BiasRight))
	// Past the end clamps to the end stop.
	require.Equal(t, Point{0, 3}, m.ClipPoint(Point{0, 42}, BiasRight))
}

func TestMap_ClipPoint_RowClamping(t *testing.T) {
	m := newTestMap("ab", "cdef")

	require.Equal(t, Point{0, 0}, m.ClipPoint(Point{-3, 2}, BiasLeft))
	require.Equal(t, Point{1, 4}, m.ClipPoint(Point{9, 0}, BiasLeft), "past last row clamps to max point")
}

func TestMap_ClipAtLineEnd(t *testing.T) {
	m := newTestMap("dog", "", "日本")

	require.Equal(t, Point{0, 2}, m.ClipAtLineEnd(Point{0, 3}), "line end pulls back to last grapheme")
	require.Equal(t, Point{0, 1}, m.ClipAtLineEnd(Point{0, 1}), "interior position passes through")
	require.Equal(t, Point{1, 0}, m.ClipAtLineEnd(Point{1, 0}), "empty line keeps column zero")
	require.Equal(t, Point{2, 2}, m.ClipAtLineEnd(Point{2, 4}), "wide last glyph keeps its start column")
}

func TestMap_LineBoundaries(t *testing.T) {
	m := newTestMap("The quick brown", "fox jumps over")

	require.Equal(t, Point{1, 0}, m.PrevLineBoundary(Point{1, 9}))
	require.Equal(t, Point{1, 14}, m.NextLineBoundary(Point{1, 9}))
	require.Equal(t, Point{0, 15}, m.NextLineBoundary(Point{0, 0}))
}

func TestMap_GraphemeIndexAndPointAt(t *testing.T) {
	m := newTestMap("a\t日x")

	// Layout: a@0(1), tab@1(3), 日@4(2), x@6(1); width 7.
	require.Equal(t, 0, m.GraphemeIndex(Point{0, 0}))
	require.Equal(t, 1, m.GraphemeIndex(Point{0, 2}), "inside the tab span")
	require.Equal(t, 2, m.GraphemeIndex(Point{0, 5}), "second cell of the wide glyph")
	require.Equal(t, 4, m.GraphemeIndex(Point{0, 7}), "line end gives the grapheme count")

	require.Equal(t, Point{0, 4}, m.PointAt(0, 2))
	require.Equal(t, Point{0, 7}, m.PointAt(0, 4), "index at count gives the line-end stop")
}

func TestMap_ReClipIsIdempotent(t *testing.T) {
	lines := []string{"The quick brown", "a\tb\tc", "日本語 text", "", "x"}
	m := newTestMap(lines...)

	rapid.Check(t, func(t *rapid.T) {
		p := Point{
			Row: rapid.IntRange(-2, len(lines)+2).Draw(t, "row"),
			Col: rapid.IntRange(-3, 30).Draw(t, "col"),
		}
		bias := BiasLeft
		if rapid.Bool().Draw(t, "right") {
			bias = BiasRight
		}

		clipped := m.ClipPoint(p, bias)
		require.Equal(t, clipped, m.ClipPoint(clipped, bias), "re-clip must be a no-op")
		require.Equal(t, clipped, m.ClipPoint(clipped, BiasLeft), "stops are bias-independent")

		// The result is a real caret stop: a cell start or the line end.
		l := m.layout(clipped.Row)
		valid := clipped.Col == l.Width
		for _, c := range l.Cells {
			if c.Col == clipped.Col {
				valid = true
			}
		}
		require.True(t, valid, "clipped to %v which is not a caret stop", clipped)

		rest := m.ClipAtLineEnd(clipped)
		if len(l.Cells) > 0 {
			require.Less(t, rest.Col, l.Width, "ClipAtLineEnd must land on a grapheme")
		}
	})
}
