package vim

import (
	"fmt"

	"github.com/zjrosen/plume/internal/display"
	"github.com/zjrosen/plume/internal/motion"
	"github.com/zjrosen/plume/internal/selection"
)

// ============================================================================
// Selection Adjusters
// The pure range arithmetic behind motions and operations: motion extension
// with direction-flip repair, and the characterwise/linewise widening that
// turns an inclusive visual selection into the exact exclusive range to
// remove.
// ============================================================================

// extendByMotion applies one motion to a selection's head. The target is
// clipped so the head rests on a character, the head moves with flip
// detection, and the anchor-side boundary is repaired when the direction
// flipped so the anchor character stays inside the selection.
func extendByMotion(dm *display.Map, sel *selection.Selection, mo motion.Motion) {
	newHead, newGoal := motion.Move(dm, mo, sel.Head(), sel.Goal)
	newHead = dm.ClipAtLineEnd(newHead)

	wasReversed := sel.Reversed
	sel.SetHead(newHead, newGoal)
	repairFlip(dm, sel, wasReversed)
	assertOrdered(sel)
}

// repairFlip adjusts the anchor-side boundary after the head crossed the
// anchor. Flipping to reversed leaves the anchor character at End, which the
// exclusive range would drop — push End one past it. Flipping back to
// forward leaves Start one past the anchor character — pull it back.
func repairFlip(dm *display.Map, sel *selection.Selection, wasReversed bool) {
	switch {
	case wasReversed && !sel.Reversed:
		sel.Start.Col = max(0, sel.Start.Col-1)
		sel.Start = dm.ClipPoint(sel.Start, display.BiasLeft)
	case !wasReversed && sel.Reversed:
		sel.End.Col++
		sel.End = dm.ClipPoint(sel.End, display.BiasRight)
	}
}

// swapEnds exchanges a selection's anchor and head in place, keeping the
// displayed range. Only End moves in storage: it holds the cursor character
// on a forward selection and one past the anchor character on a reversed
// one.
func swapEnds(dm *display.Map, sel *selection.Selection) {
	if sel.IsEmpty() {
		return
	}
	if sel.Reversed {
		sel.Reversed = false
		sel.End.Col = max(0, sel.End.Col-1)
		sel.End = dm.ClipPoint(sel.End, display.BiasLeft)
	} else {
		sel.Reversed = true
		sel.End.Col++
		sel.End = dm.ClipPoint(sel.End, display.BiasRight)
	}
	sel.Goal = sel.Head().Col
	assertOrdered(sel)
}

// charwiseExtend widens a forward selection to cover the character under
// the head. Delete clips Right — greedy, a head resting on a wide glyph
// consumes the whole glyph. Change clips Left so it never removes further
// than the inclusive display showed. Reversed selections already include
// the head character and are left alone.
func charwiseExtend(dm *display.Map, sel *selection.Selection, bias display.Bias) {
	if !sel.Reversed {
		sel.End.Col++
		sel.End = dm.ClipPoint(sel.End, bias)
	}
	assertOrdered(sel)
}

// linewiseExtend expands a selection to whole-line boundaries, picking the
// adjacent newline the deletion consumes. Mid-document ranges take the
// trailing newline so the following line is promoted in place. A range
// ending on the last line merges backward through the preceding newline
// instead, and a range spanning the whole document clears it to a single
// empty line.
func linewiseExtend(dm *display.Map, sel *selection.Selection) {
	sel.Start = dm.PrevLineBoundary(sel.Start)
	switch {
	case sel.End.Row < dm.MaxPoint().Row:
		sel.End = display.Point{Row: sel.End.Row + 1}
	case sel.Start.Row > 0:
		sel.Start = display.Point{Row: sel.Start.Row - 1, Col: dm.LineLen(sel.Start.Row - 1)}
		sel.End = dm.NextLineBoundary(sel.End)
	default:
		sel.End = dm.NextLineBoundary(sel.End)
	}
	assertOrdered(sel)
}

// recordColumns snapshots every head's display column keyed by selection
// ID. It must run for the whole batch before any range is mutated; the
// columns feed the post-edit cursor fix-up.
func recordColumns(sels []*selection.Selection) map[int]int {
	cols := make(map[int]int, len(sels))
	for _, sel := range sels {
		cols[sel.ID] = sel.Head().Col
	}
	return cols
}

// SelectionSpan returns the exclusive display range a selection covers
// under the inclusive display convention. Renderers highlight exactly this
// span. Charwise it equals what a delete would remove; linewise it stops
// at the last line's end and leaves the consumed newline undrawn.
func SelectionSpan(dm *display.Map, sel *selection.Selection, lineMode bool) display.Range {
	if lineMode {
		return display.Range{
			Start: dm.PrevLineBoundary(sel.Start),
			End:   dm.NextLineBoundary(sel.End),
		}
	}
	c := sel.Clone()
	charwiseExtend(dm, c, display.BiasRight)
	return c.Range()
}

// assertOrdered panics when an adjuster inverted a selection. That is an
// engine bug, never a recoverable condition.
func assertOrdered(sel *selection.Selection) {
	if sel.End.Before(sel.Start) {
		panic(fmt.Sprintf("vim: selection %d inverted: %s..%s", sel.ID, sel.Start, sel.End))
	}
}
