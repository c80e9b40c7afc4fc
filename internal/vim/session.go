package vim

import (
	"strings"

	"github.com/zjrosen/plume/internal/buffer"
	"github.com/zjrosen/plume/internal/display"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/motion"
	"github.com/zjrosen/plume/internal/selection"
)

// maxCount caps buffered count prefixes so a stray key run cannot queue an
// absurd repetition.
const maxCount = 9999

// Session is the operation driver. It owns the mode, the selection batch,
// and the pending count, and sequences every operation over its
// collaborators: the display map for clipping, the buffer for atomic batch
// edits, and the clipboard for register traffic.
type Session struct {
	dm   *display.Map
	buf  Buffer
	clip Clipboard

	mode         Mode
	committing   bool
	pendingCount int
	sels         []*selection.Selection
	nextID       int

	modeObservers []func(from, to Mode)
}

// NewSession creates a session in Normal mode with a single caret at the
// document origin.
func NewSession(dm *display.Map, buf Buffer, clip Clipboard) *Session {
	s := &Session{dm: dm, buf: buf, clip: clip, mode: ModeNormal}
	s.sels = []*selection.Selection{selection.New(s.newID(), display.Point{})}
	return s
}

func (s *Session) newID() int {
	s.nextID++
	return s.nextID
}

// Mode returns the current editing mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Phase reports the driver's position within the visual-mode state machine.
func (s *Session) Phase() Phase {
	switch {
	case s.committing:
		return PhaseCommitting
	case s.pendingCount > 0:
		return PhaseMotionPending
	default:
		return PhaseIdle
	}
}

// PendingCount returns the buffered count prefix, 0 when none.
func (s *Session) PendingCount() int {
	return s.pendingCount
}

// Selections returns the selection batch in document order. The elements
// are live; callers must not mutate them.
func (s *Session) Selections() []*selection.Selection {
	return append([]*selection.Selection(nil), s.sels...)
}

// PrimaryCursor is the head of the first selection — what the status bar
// reports and the viewport follows.
func (s *Session) PrimaryCursor() display.Point {
	return s.sels[0].Head()
}

// OnModeChange registers an observer invoked on every mode transition, in
// registration order, after the transition's edits have been applied.
func (s *Session) OnModeChange(fn func(from, to Mode)) {
	s.modeObservers = append(s.modeObservers, fn)
}

func (s *Session) setMode(m Mode) {
	if m == s.mode {
		return
	}
	from := s.mode
	s.mode = m
	log.Debug(log.CatVim, "mode change", "from", from, "to", m)
	for _, fn := range s.modeObservers {
		fn(from, m)
	}
}

// ============================================================================
// Mode Transitions
// ============================================================================

// EnterVisual toggles characterwise visual mode ('v'): from Normal the
// carets become anchors in place, from VisualLine the selection is kept,
// from Visual itself the mode exits back to Normal.
func (s *Session) EnterVisual() {
	s.toggleVisual(ModeVisual)
}

// EnterVisualLine toggles linewise visual mode ('V').
func (s *Session) EnterVisualLine() {
	s.toggleVisual(ModeVisualLine)
}

func (s *Session) toggleVisual(m Mode) {
	s.pendingCount = 0
	switch s.mode {
	case ModeInsert:
		return
	case m:
		s.collapseToHeads()
		s.setMode(ModeNormal)
	default:
		s.setMode(m)
	}
}

// Escape cancels: visual modes collapse to their heads, Insert returns to
// Normal pulling carets off line ends, and Normal drops back to a single
// caret.
func (s *Session) Escape() {
	s.pendingCount = 0
	switch s.mode {
	case ModeVisual, ModeVisualLine:
		s.collapseToHeads()
		s.setMode(ModeNormal)
	case ModeInsert:
		for _, sel := range s.sels {
			p := s.dm.ClipAtLineEnd(s.dm.ClipPoint(sel.Head(), display.BiasLeft))
			sel.CollapseTo(p, p.Col)
		}
		s.sels = selection.Merge(s.sels)
		s.setMode(ModeNormal)
	default:
		if len(s.sels) > 1 {
			s.sels = s.sels[:1]
		}
	}
}

func (s *Session) collapseToHeads() {
	for _, sel := range s.sels {
		p := s.dm.ClipAtLineEnd(sel.Head())
		sel.CollapseTo(p, p.Col)
	}
	s.sels = selection.Merge(s.sels)
}

// EnterInsert enters Insert mode at each caret ('i').
func (s *Session) EnterInsert() {
	if s.mode != ModeNormal {
		return
	}
	s.setMode(ModeInsert)
}

// EnterInsertAfter enters Insert mode one position past each caret ('a').
func (s *Session) EnterInsertAfter() {
	if s.mode != ModeNormal {
		return
	}
	for _, sel := range s.sels {
		p := sel.Head()
		if s.dm.LineLen(p.Row) > 0 {
			np := s.dm.PointAt(p.Row, s.dm.GraphemeIndex(p)+1)
			sel.CollapseTo(np, np.Col)
		}
	}
	s.sels = selection.Merge(s.sels)
	s.setMode(ModeInsert)
}

// ============================================================================
// Counts and Motions
// ============================================================================

// Digit feeds a typed digit, reporting whether it was consumed as part of a
// count prefix. A leading 0 is not a count — it belongs to the
// start-of-line motion.
func (s *Session) Digit(d int) bool {
	if s.mode == ModeInsert || d < 0 || d > 9 {
		return false
	}
	if d == 0 && s.pendingCount == 0 {
		return false
	}
	s.pendingCount = min(s.pendingCount*10+d, maxCount)
	return true
}

func (s *Session) takeCount() int {
	n := s.pendingCount
	s.pendingCount = 0
	return max(1, n)
}

// Motion applies a motion, repeated by any pending count. In Normal mode
// the carets collapse-move with the line-end rule; in the visual modes each
// selection's head extends with flip repair.
func (s *Session) Motion(mo motion.Motion) {
	count := s.takeCount()
	switch s.mode {
	case ModeNormal:
		for i := 0; i < count; i++ {
			for _, sel := range s.sels {
				np, ng := motion.Move(s.dm, mo, sel.Head(), sel.Goal)
				np = s.dm.ClipAtLineEnd(np)
				sel.CollapseTo(np, ng)
			}
		}
		s.sels = selection.Merge(s.sels)
	case ModeVisual, ModeVisualLine:
		for i := 0; i < count; i++ {
			for _, sel := range s.sels {
				extendByMotion(s.dm, sel, mo)
			}
		}
		s.sels = selection.Merge(s.sels)
	}
}

// MoveInsert moves each caret one step without leaving Insert mode. The
// caret may rest on the line-end stop here, since that is where
// end-of-line insertion happens.
func (s *Session) MoveInsert(mo motion.Motion) {
	if s.mode != ModeInsert {
		return
	}
	for _, sel := range s.sels {
		np, ng := motion.Move(s.dm, mo, sel.Head(), sel.Goal)
		sel.CollapseTo(np, ng)
	}
	s.sels = selection.Merge(s.sels)
}

// SwapEnds exchanges anchor and head on every selection ('o' in the visual
// modes), keeping the displayed range.
func (s *Session) SwapEnds() {
	if s.mode != ModeVisual && s.mode != ModeVisualLine {
		return
	}
	for _, sel := range s.sels {
		swapEnds(s.dm, sel)
	}
}

// ============================================================================
// Operations
// ============================================================================

type commitKind int

const (
	commitDelete commitKind = iota
	commitChange
)

func (k commitKind) String() string {
	if k == commitChange {
		return "change"
	}
	return "delete"
}

// Delete removes the selected text ('d'/'x' in the visual modes) and
// returns to Normal mode.
func (s *Session) Delete() {
	s.commit(commitDelete)
}

// Change removes the selected text ('c'/'s' in the visual modes) and
// enters Insert mode at the collapsed cursors.
func (s *Session) Change() {
	s.commit(commitChange)
}

// commit drives the five-step operation sequence: adjust the ranges, copy
// the doomed text to the clipboard, apply one atomic batch edit, fix up the
// collapsed cursors, and switch mode.
func (s *Session) commit(kind commitKind) {
	if s.mode != ModeVisual && s.mode != ModeVisualLine {
		return
	}
	s.pendingCount = 0
	s.committing = true
	defer func() { s.committing = false }()
	lineMode := s.mode == ModeVisualLine

	// Adjust. Linewise records every head's column before any range moves.
	var originalColumns map[int]int
	if lineMode {
		originalColumns = recordColumns(s.sels)
		for _, sel := range s.sels {
			linewiseExtend(s.dm, sel)
		}
	} else {
		bias := display.BiasRight
		if kind == commitChange {
			bias = display.BiasLeft
		}
		for _, sel := range s.sels {
			charwiseExtend(s.dm, sel, bias)
		}
	}
	s.sels = selection.Merge(s.sels)

	// Copy.
	s.clip.Copy(s.sels, lineMode)

	// Replace: one atomic batch, earlier deletions shift later carets.
	edits := make([]TextEdit, len(s.sels))
	for i, sel := range s.sels {
		edits[i] = TextEdit{Range: sel.Range()}
	}
	carets := s.buf.Replace(edits)

	// Fix-up. Linewise restores each cursor's recorded column; delete pulls
	// the cursor off the line end, change leaves it there for insertion.
	for i, sel := range s.sels {
		caret := carets[i]
		if lineMode {
			if col, ok := originalColumns[sel.ID]; ok {
				caret.Col = col
			}
		}
		caret = s.dm.ClipPoint(caret, display.BiasLeft)
		if kind == commitDelete {
			caret = s.dm.ClipAtLineEnd(caret)
		}
		sel.CollapseTo(caret, caret.Col)
	}
	// Adjacent linewise ranges collapse onto the same promoted line; fold
	// the coinciding carets so later edits are not doubled.
	s.sels = selection.Merge(s.sels)

	log.Debug(log.CatVim, "commit", "kind", kind, "linewise", lineMode, "selections", len(s.sels))

	if kind == commitDelete {
		s.setMode(ModeNormal)
	} else {
		s.setMode(ModeInsert)
	}
}

// Yank copies the selected text ('y' in the visual modes) without editing:
// the register receives exactly what a delete would have removed, then each
// selection collapses to its start and the session returns to Normal mode.
func (s *Session) Yank() {
	if s.mode != ModeVisual && s.mode != ModeVisualLine {
		return
	}
	s.pendingCount = 0
	lineMode := s.mode == ModeVisualLine

	clones := make([]*selection.Selection, len(s.sels))
	for i, sel := range s.sels {
		clones[i] = sel.Clone()
	}
	if lineMode {
		for _, c := range clones {
			linewiseExtend(s.dm, c)
		}
	} else {
		for _, c := range clones {
			charwiseExtend(s.dm, c, display.BiasRight)
		}
	}
	clones = selection.Merge(clones)
	s.clip.Copy(clones, lineMode)

	for _, sel := range s.sels {
		p := sel.Start
		if lineMode {
			p = s.dm.PrevLineBoundary(p)
		}
		p = s.dm.ClipAtLineEnd(s.dm.ClipPoint(p, display.BiasLeft))
		sel.CollapseTo(p, p.Col)
	}
	s.sels = selection.Merge(s.sels)
	s.setMode(ModeNormal)
}

// ============================================================================
// Paste
// ============================================================================

// PasteAfter pastes the register after the cursor ('p'): charwise after the
// cursor's grapheme, linewise below the cursor's line.
func (s *Session) PasteAfter() {
	s.paste(true)
}

// PasteBefore pastes the register before the cursor ('P'): charwise at the
// cursor's grapheme, linewise above the cursor's line. Pasting before
// immediately after a delete restores the removed span.
func (s *Session) PasteBefore() {
	s.paste(false)
}

func (s *Session) paste(after bool) {
	if s.mode != ModeNormal {
		return
	}
	text, linewise, ok := s.clip.Paste()
	if !ok {
		return
	}
	if linewise {
		s.pasteLinewise(text, after)
		return
	}
	if text == "" {
		return
	}
	s.pasteCharwise(text, after)
}

func (s *Session) pasteCharwise(text string, after bool) {
	edits := make([]TextEdit, len(s.sels))
	for i, sel := range s.sels {
		at := sel.Head()
		if after && s.dm.LineLen(at.Row) > 0 {
			at = s.dm.PointAt(at.Row, s.dm.GraphemeIndex(at)+1)
		}
		edits[i] = TextEdit{Range: display.Range{Start: at, End: at}, Text: text}
	}
	carets := s.buf.Replace(edits)

	// The cursor lands on the last pasted grapheme.
	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]
	for i, sel := range s.sels {
		start := carets[i]
		var target display.Point
		if len(lines) == 1 {
			target = s.dm.PointAt(start.Row, s.dm.GraphemeIndex(start)+buffer.GraphemeCount(text)-1)
		} else {
			target = s.dm.PointAt(start.Row+len(lines)-1, max(0, buffer.GraphemeCount(last)-1))
		}
		target = s.dm.ClipAtLineEnd(s.dm.ClipPoint(target, display.BiasLeft))
		sel.CollapseTo(target, target.Col)
	}
	s.sels = selection.Merge(s.sels)
	log.Debug(log.CatVim, "paste", "linewise", false, "after", after)
}

func (s *Session) pasteLinewise(text string, after bool) {
	edits := make([]TextEdit, len(s.sels))
	for i, sel := range s.sels {
		row := sel.Head().Row
		if after {
			at := s.dm.NextLineBoundary(display.Point{Row: row})
			edits[i] = TextEdit{Range: display.Range{Start: at, End: at}, Text: "\n" + text}
		} else {
			at := display.Point{Row: row}
			edits[i] = TextEdit{Range: display.Range{Start: at, End: at}, Text: text + "\n"}
		}
	}
	carets := s.buf.Replace(edits)

	// The cursor lands on the first non-blank of the first pasted line.
	for i, sel := range s.sels {
		row := carets[i].Row
		if after {
			row++
		}
		target, _ := motion.Move(s.dm, motion.FirstNonBlank, display.Point{Row: row}, 0)
		target = s.dm.ClipAtLineEnd(target)
		sel.CollapseTo(target, target.Col)
	}
	s.sels = selection.Merge(s.sels)
	log.Debug(log.CatVim, "paste", "linewise", true, "after", after)
}

// ============================================================================
// Insert Mode Editing
// ============================================================================

// InsertText types text at every caret. Newlines split lines; the caret
// lands after the inserted text and may rest on a line end.
func (s *Session) InsertText(text string) {
	if s.mode != ModeInsert || text == "" {
		return
	}
	edits := make([]TextEdit, len(s.sels))
	for i, sel := range s.sels {
		p := sel.Head()
		edits[i] = TextEdit{Range: display.Range{Start: p, End: p}, Text: text}
	}
	carets := s.buf.Replace(edits)

	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]
	for i, sel := range s.sels {
		start := carets[i]
		var target display.Point
		if len(lines) == 1 {
			target = s.dm.PointAt(start.Row, s.dm.GraphemeIndex(start)+buffer.GraphemeCount(text))
		} else {
			target = s.dm.PointAt(start.Row+len(lines)-1, buffer.GraphemeCount(last))
		}
		sel.CollapseTo(target, target.Col)
	}
	s.sels = selection.Merge(s.sels)
}

// Backspace deletes the grapheme before each caret, joining lines when the
// caret sits at a line start.
func (s *Session) Backspace() {
	if s.mode != ModeInsert {
		return
	}
	edits := make([]TextEdit, len(s.sels))
	for i, sel := range s.sels {
		p := sel.Head()
		switch {
		case p.Col > 0:
			prev := s.dm.PointAt(p.Row, s.dm.GraphemeIndex(p)-1)
			edits[i] = TextEdit{Range: display.Range{Start: prev, End: p}}
		case p.Row > 0:
			join := s.dm.NextLineBoundary(display.Point{Row: p.Row - 1})
			edits[i] = TextEdit{Range: display.Range{Start: join, End: p}}
		default:
			edits[i] = TextEdit{Range: display.Range{Start: p, End: p}}
		}
	}
	carets := s.buf.Replace(edits)
	for i, sel := range s.sels {
		c := s.dm.ClipPoint(carets[i], display.BiasLeft)
		sel.CollapseTo(c, c.Col)
	}
	s.sels = selection.Merge(s.sels)
}

// ============================================================================
// Caret Management
// ============================================================================

// AddCaretBelow adds a cursor on the line below the bottom caret, aiming at
// its goal column. Normal mode only.
func (s *Session) AddCaretBelow() {
	s.addCaret(1)
}

// AddCaretAbove adds a cursor on the line above the top caret.
func (s *Session) AddCaretAbove() {
	s.addCaret(-1)
}

func (s *Session) addCaret(dir int) {
	if s.mode != ModeNormal {
		return
	}
	src := s.sels[0]
	if dir > 0 {
		src = s.sels[len(s.sels)-1]
	}
	row := src.Head().Row + dir
	if row < 0 || row >= s.dm.LineCount() {
		return
	}
	p := s.dm.ClipAtLineEnd(s.dm.ClipPoint(display.Point{Row: row, Col: src.Goal}, display.BiasLeft))
	ns := selection.New(s.newID(), p)
	ns.Goal = src.Goal
	s.sels = selection.Merge(append(s.sels, ns))
}

// AddCaretAt adds a cursor at p, clipped to a valid resting position.
// Normal mode only; this is what alt+click does.
func (s *Session) AddCaretAt(p display.Point) {
	if s.mode != ModeNormal {
		return
	}
	p = s.dm.ClipAtLineEnd(s.dm.ClipPoint(p, display.BiasLeft))
	s.sels = selection.Merge(append(s.sels, selection.New(s.newID(), p)))
}

// ResetCaret replaces the batch with a single caret at p, clipped to a
// valid resting position, and returns to Normal mode. Used after external
// buffer reloads and when restoring a saved session.
func (s *Session) ResetCaret(p display.Point) {
	p = s.dm.ClipAtLineEnd(s.dm.ClipPoint(p, display.BiasLeft))
	s.sels = []*selection.Selection{selection.New(s.newID(), p)}
	s.pendingCount = 0
	if s.mode != ModeNormal {
		s.setMode(ModeNormal)
	}
}
