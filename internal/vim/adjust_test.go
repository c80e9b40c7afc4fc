package vim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/plume/internal/display"
	"github.com/zjrosen/plume/internal/motion"
	"github.com/zjrosen/plume/internal/selection"
)

// ============================================================================
// Selection Adjuster Unit Tests
// ============================================================================

type stubContent []string

func (s stubContent) Line(row int) string {
	if row < 0 || row >= len(s) {
		return ""
	}
	return s[row]
}

func (s stubContent) LineCount() int { return len(s) }

func newTestMap(lines ...string) *display.Map {
	return display.NewMap(stubContent(lines), 4)
}

func pt(row, col int) display.Point {
	return display.Point{Row: row, Col: col}
}

// TestExtendByMotion_ForwardGrowsEnd tests that extending away from the
// anchor moves only the head-side boundary.
func TestExtendByMotion_ForwardGrowsEnd(t *testing.T) {
	dm := newTestMap("abcdef")
	sel := selection.New(1, pt(0, 2))

	extendByMotion(dm, sel, motion.Right)

	assert.Equal(t, pt(0, 2), sel.Start)
	assert.Equal(t, pt(0, 3), sel.End)
	assert.False(t, sel.Reversed)
	assert.Equal(t, pt(0, 3), sel.Head())

	extendByMotion(dm, sel, motion.Right)
	assert.Equal(t, pt(0, 4), sel.End)
	assert.Equal(t, pt(0, 2), sel.Start, "anchor must not move")
}

// TestExtendByMotion_FlipToReversed tests the head crossing the anchor
// leftward: End is pushed one past the anchor character so the exclusive
// range still covers it.
func TestExtendByMotion_FlipToReversed(t *testing.T) {
	dm := newTestMap("abcdef")
	sel := selection.New(1, pt(0, 3))

	extendByMotion(dm, sel, motion.Left)

	assert.True(t, sel.Reversed)
	assert.Equal(t, pt(0, 2), sel.Start)
	assert.Equal(t, pt(0, 4), sel.End, "anchor character stays inside the exclusive range")
	assert.Equal(t, pt(0, 2), sel.Head())
}

// TestExtendByMotion_FlipBackToForward tests the return trip: the head
// walks back onto the anchor and then past it, and Start is pulled back
// onto the anchor character.
func TestExtendByMotion_FlipBackToForward(t *testing.T) {
	dm := newTestMap("abcdef")
	sel := selection.New(1, pt(0, 3))
	extendByMotion(dm, sel, motion.Left) // head on 'c', anchored at 'd'

	// Back onto the anchor: still reversed, head and anchor coincide.
	extendByMotion(dm, sel, motion.Right)
	assert.True(t, sel.Reversed)
	assert.Equal(t, pt(0, 3), sel.Start)
	assert.Equal(t, pt(0, 4), sel.End)
	assert.Equal(t, pt(0, 3), sel.Head())

	// Past the anchor: forward again, Start back on the anchor character.
	extendByMotion(dm, sel, motion.Right)
	assert.False(t, sel.Reversed)
	assert.Equal(t, pt(0, 3), sel.Start)
	assert.Equal(t, pt(0, 4), sel.End)
	assert.Equal(t, pt(0, 4), sel.Head())
}

func TestExtendByMotion_FlipAcrossRows(t *testing.T) {
	dm := newTestMap("abc", "def")
	sel := selection.New(1, pt(1, 1))

	extendByMotion(dm, sel, motion.Up)

	assert.True(t, sel.Reversed)
	assert.Equal(t, pt(0, 1), sel.Start)
	assert.Equal(t, pt(1, 2), sel.End)
}

// TestExtendByMotion_WideGlyphAnchor tests the flip repair landing inside a
// double-width cluster: the boundary snaps outward so the anchor glyph
// stays covered.
func TestExtendByMotion_WideGlyphAnchor(t *testing.T) {
	dm := newTestMap("日本語")
	sel := selection.New(1, pt(0, 2)) // anchored on 本

	extendByMotion(dm, sel, motion.Left)

	assert.True(t, sel.Reversed)
	assert.Equal(t, pt(0, 0), sel.Start)
	assert.Equal(t, pt(0, 4), sel.End)
}

// TestSwapEnds_RoundTrip tests that swapping anchor and head twice restores
// the original selection, and that the displayed span never changes.
func TestSwapEnds_RoundTrip(t *testing.T) {
	dm := newTestMap("abcdef")
	sel := &selection.Selection{ID: 1, Start: pt(0, 1), End: pt(0, 3), Goal: 3}
	span := SelectionSpan(dm, sel, false)

	swapEnds(dm, sel)
	assert.True(t, sel.Reversed)
	assert.Equal(t, pt(0, 1), sel.Start)
	assert.Equal(t, pt(0, 4), sel.End)
	assert.Equal(t, pt(0, 1), sel.Head())
	assert.Equal(t, 1, sel.Goal)
	assert.Equal(t, span, SelectionSpan(dm, sel, false))

	swapEnds(dm, sel)
	assert.False(t, sel.Reversed)
	assert.Equal(t, pt(0, 1), sel.Start)
	assert.Equal(t, pt(0, 3), sel.End)
	assert.Equal(t, pt(0, 3), sel.Head())
	assert.Equal(t, 3, sel.Goal)
	assert.Equal(t, span, SelectionSpan(dm, sel, false))
}

func TestSwapEnds_EmptySelectionIsNoop(t *testing.T) {
	dm := newTestMap("abc")
	sel := selection.New(1, pt(0, 1))

	swapEnds(dm, sel)

	assert.False(t, sel.Reversed)
	assert.True(t, sel.IsEmpty())
	assert.Equal(t, pt(0, 1), sel.Head())
}

// TestCharwiseExtend_BiasPicksTheGlyphFate tests the one place delete and
// change differ: a head resting on a double-width glyph.
func TestCharwiseExtend_BiasPicksTheGlyphFate(t *testing.T) {
	dm := newTestMap("a日b")

	del := selection.New(1, pt(0, 1))
	charwiseExtend(dm, del, display.BiasRight)
	assert.Equal(t, pt(0, 3), del.End, "delete consumes the whole glyph")

	chg := selection.New(2, pt(0, 1))
	charwiseExtend(dm, chg, display.BiasLeft)
	assert.Equal(t, pt(0, 1), chg.End, "change never reaches past the displayed columns")
}

func TestCharwiseExtend_AtLineEnd(t *testing.T) {
	dm := newTestMap("abc")
	sel := selection.New(1, pt(0, 2))

	charwiseExtend(dm, sel, display.BiasRight)

	assert.Equal(t, pt(0, 3), sel.End)
}

func TestCharwiseExtend_ReversedAlreadyExact(t *testing.T) {
	dm := newTestMap("abcdef")
	sel := &selection.Selection{ID: 1, Start: pt(0, 1), End: pt(0, 4), Reversed: true, Goal: 1}

	charwiseExtend(dm, sel, display.BiasRight)

	assert.Equal(t, pt(0, 4), sel.End)
}

func TestLinewiseExtend_MidDocumentTakesTrailingNewline(t *testing.T) {
	dm := newTestMap("aaa", "bbb", "ccc")
	sel := &selection.Selection{ID: 1, Start: pt(1, 1), End: pt(1, 2), Goal: 2}

	linewiseExtend(dm, sel)

	assert.Equal(t, pt(1, 0), sel.Start)
	assert.Equal(t, pt(2, 0), sel.End)
}

// TestLinewiseExtend_LastLineMergesBackward tests that a range ending on
// the final line takes the preceding newline instead, since no trailing one
// exists.
func TestLinewiseExtend_LastLineMergesBackward(t *testing.T) {
	dm := newTestMap("aaa", "bbb", "ccc")
	sel := &selection.Selection{ID: 1, Start: pt(2, 1), End: pt(2, 1), Goal: 1}

	linewiseExtend(dm, sel)

	assert.Equal(t, pt(1, 3), sel.Start)
	assert.Equal(t, pt(2, 3), sel.End)
}

func TestLinewiseExtend_SpanEndingOnLastLine(t *testing.T) {
	dm := newTestMap("aaa", "bbb", "ccc")
	sel := &selection.Selection{ID: 1, Start: pt(1, 2), End: pt(2, 1), Goal: 1}

	linewiseExtend(dm, sel)

	assert.Equal(t, pt(0, 3), sel.Start)
	assert.Equal(t, pt(2, 3), sel.End)
}

func TestLinewiseExtend_WholeDocument(t *testing.T) {
	dm := newTestMap("abc")
	sel := &selection.Selection{ID: 1, Start: pt(0, 1), End: pt(0, 1), Goal: 1}

	linewiseExtend(dm, sel)

	assert.Equal(t, pt(0, 0), sel.Start)
	assert.Equal(t, pt(0, 3), sel.End, "no adjacent newline exists; the document empties to one line")
}

func TestRecordColumns_SnapshotsHeads(t *testing.T) {
	fwd := &selection.Selection{ID: 7, Start: pt(0, 1), End: pt(0, 5), Goal: 5}
	rev := &selection.Selection{ID: 9, Start: pt(2, 2), End: pt(2, 4), Reversed: true, Goal: 2}

	cols := recordColumns([]*selection.Selection{fwd, rev})

	assert.Equal(t, map[int]int{7: 5, 9: 2}, cols)
}

func TestSelectionSpan_CharwiseWidensForwardHead(t *testing.T) {
	dm := newTestMap("abcdef")
	sel := &selection.Selection{ID: 1, Start: pt(0, 1), End: pt(0, 3), Goal: 3}

	span := SelectionSpan(dm, sel, false)

	assert.Equal(t, display.Range{Start: pt(0, 1), End: pt(0, 4)}, span)
	assert.Equal(t, pt(0, 3), sel.End, "the live selection is untouched")
}

func TestSelectionSpan_Linewise(t *testing.T) {
	dm := newTestMap("aaa", "bbbbb")
	sel := &selection.Selection{ID: 1, Start: pt(0, 1), End: pt(1, 2), Goal: 2}

	span := SelectionSpan(dm, sel, true)

	assert.Equal(t, display.Range{Start: pt(0, 0), End: pt(1, 5)}, span)
}

func TestAssertOrdered_PanicsOnInversion(t *testing.T) {
	require.Panics(t, func() {
		assertOrdered(&selection.Selection{ID: 1, Start: pt(0, 5), End: pt(0, 2)})
	})
}

// TestExtendByMotion_AnchorInvariant drives a selection through random
// motion sequences and checks the core guarantees: boundaries stay ordered,
// the head always rests on a character, and the anchor character never
// escapes the highlighted span no matter how many times the direction
// flips.
func TestExtendByMotion_AnchorInvariant(t *testing.T) {
	dm := newTestMap(
		"The quick brown",
		"fox\tjumps 日本",
		"the lazy dog",
		"",
		"  indented tail",
	)
	motions := []motion.Motion{
		motion.Left, motion.Right, motion.Up, motion.Down,
		motion.NextWordStart, motion.PrevWordStart, motion.NextWordEnd,
		motion.StartOfLine, motion.FirstNonBlank, motion.EndOfLine,
		motion.StartOfDocument, motion.EndOfDocument,
	}
	anchorRows := []int{0, 1, 2, 4} // rows with at least one character

	rapid.Check(t, func(t *rapid.T) {
		row := rapid.SampledFrom(anchorRows).Draw(t, "anchorRow")
		col := rapid.IntRange(0, 20).Draw(t, "anchorCol")
		anchor := dm.ClipAtLineEnd(dm.ClipPoint(pt(row, col), display.BiasLeft))
		sel := selection.New(1, anchor)

		steps := rapid.SliceOfN(rapid.SampledFrom(motions), 1, 40).Draw(t, "motions")
		for _, mo := range steps {
			extendByMotion(dm, sel, mo)

			require.False(t, sel.End.Before(sel.Start), "inverted: %s..%s", sel.Start, sel.End)
			if sel.IsEmpty() {
				require.False(t, sel.Reversed, "empty selections are never reversed")
			}
			head := sel.Head()
			require.Equal(t, dm.ClipAtLineEnd(dm.ClipPoint(head, display.BiasLeft)), head,
				"head %s is not a resting position", head)

			span := SelectionSpan(dm, sel, false)
			require.False(t, anchor.Before(span.Start), "anchor %s slipped before span %s", anchor, span)
			require.True(t, anchor.Before(span.End), "anchor %s slipped past span %s", anchor, span)
		}
	})
}
