// Package vim implements the modal editing engine: anchor/head selections
// extended by motions in the visual modes, characterwise and linewise range
// adjustment for delete/change/yank, and the operation driver sequencing
// adjust → copy → replace → fix-up → mode switch over a multi-cursor batch.
//
// Selections store their endpoints in exclusive form while the visual modes
// display them inclusively — the character under the cursor reads as
// selected. A forward selection's End is the cursor's character (widened by
// one at commit); a reversed selection's [Start, End) already covers the
// displayed range because the direction-flip repair pushed End one past the
// anchor character.
package vim

import (
	"github.com/zjrosen/plume/internal/display"
	"github.com/zjrosen/plume/internal/selection"
)

// Mode is the editing mode a session is in.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeVisualLine
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "VISUAL LINE"
	default:
		return "UNKNOWN"
	}
}

// Phase reports where a visual-mode session stands within an operation:
// idle, holding a buffered count prefix, or inside the commit sequence.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMotionPending
	PhaseCommitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMotionPending:
		return "motion-pending"
	case PhaseCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// TextEdit replaces the text within a display-space range. An empty range
// inserts, empty text deletes.
type TextEdit struct {
	Range display.Range
	Text  string
}

// Buffer is the text store the session edits. Replace applies all edits as
// one atomic batch, sorted ascending and non-overlapping, and returns each
// edit's post-edit caret: the range's start shifted by the edits before it.
// Slice reads the text a range covers.
type Buffer interface {
	Replace(edits []TextEdit) []display.Point
	Slice(r display.Range) string
}

// Clipboard records removed or yanked text and hands it back for paste.
// Copy reads each selection's range out of the buffer; linewise entries are
// flagged so paste reinserts whole lines.
type Clipboard interface {
	Copy(sels []*selection.Selection, linewise bool)
	Paste() (text string, linewise bool, ok bool)
}
