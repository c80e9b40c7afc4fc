// Package editorview renders the buffer with the modal editing overlay and
// routes raw input to the vim session: motions, operators, counts, and text
// entry by mode, plus mouse click-to-position through per-row zones.
//
// The view owns only scroll state. Text, selections, and mode live in the
// editor and the session, so a frame is always rendered from current state
// and nothing here can go stale after an edit or an external reload.
package editorview

import (
	"regexp"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/plume/internal/display"
	"github.com/zjrosen/plume/internal/editor"
	"github.com/zjrosen/plume/internal/keys"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/motion"
	"github.com/zjrosen/plume/internal/vim"
)

// wheelScrollLines is how many rows one wheel notch moves the viewport.
const wheelScrollLines = 3

// zoneRowPrefix prefixes the bubblezone ID marking each visible row for
// mouse click detection.
const zoneRowPrefix = "editor:row:"

func rowZoneID(row int) string {
	return zoneRowPrefix + strconv.Itoa(row)
}

// mouseEscapePattern matches SGR mouse tracking sequences that arrive as
// runes when the terminal emits events bubbletea did not parse. They look
// like "[<65;87;15M" or "<65;87;15M" and must never be inserted as text.
var mouseEscapePattern = regexp.MustCompile(`^\[?<\d+;\d+;\d+[Mm]$`)

func isMouseEscapeSequence(runes []rune) bool {
	if len(runes) < 6 {
		return false
	}
	return mouseEscapePattern.MatchString(string(runes))
}

// Model is the editor viewport. It reads the buffer through the editor and
// the selection batch through the session; both are shared with the app.
type Model struct {
	ed      *editor.Editor
	session *vim.Session

	width  int
	height int

	topRow       int // first visible buffer row
	leftCol      int // first visible display column of the text area
	scrollMargin int

	pendingG bool // saw "g", waiting for the second one
}

// New creates a view over an open editor and its session. Size starts at
// zero; the app sets it from the first WindowSizeMsg.
func New(ed *editor.Editor, session *vim.Session) Model {
	return Model{ed: ed, session: session}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize sets the viewport dimensions and re-anchors the scroll so the
// primary cursor stays visible.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// TopRow returns the first visible buffer row.
func (m Model) TopRow() int {
	return m.topRow
}

// SetScrollMargin keeps n rows visible above and below the cursor while
// scrolling. Margins larger than the window shrink to fit.
func (m *Model) SetScrollMargin(n int) {
	m.scrollMargin = max(0, n)
	m.ensureVisible()
}

// FollowCursor snaps the scroll back onto the primary cursor. The app calls
// it after moving the caret itself, e.g. on session restore or reload.
func (m *Model) FollowCursor() {
	m.ensureVisible()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m = m.handleKey(msg)
		m.ensureVisible()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

// handleKey routes one key press. Caret bindings work in any mode the
// session permits; everything else dispatches on the current mode.
func (m Model) handleKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, keys.App.CaretBelow):
		m.session.AddCaretBelow()
		return m
	case key.Matches(msg, keys.App.CaretAbove):
		m.session.AddCaretAbove()
		return m
	}

	if m.session.Mode() == vim.ModeInsert {
		return m.handleInsertKey(msg)
	}
	return m.handleModalKey(msg)
}

// handleInsertKey feeds text entry to the session. Multi-rune messages
// (bracketed paste) insert whole; alt-modified runes are chrome, not text.
func (m Model) handleInsertKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt || isMouseEscapeSequence(msg.Runes) {
			return m
		}
		m.session.InsertText(string(msg.Runes))
	case tea.KeySpace:
		m.session.InsertText(" ")
	case tea.KeyTab:
		m.session.InsertText("\t")
	case tea.KeyEnter:
		m.session.InsertText("\n")
	case tea.KeyBackspace:
		m.session.Backspace()
	case tea.KeyLeft:
		m.session.MoveInsert(motion.Left)
	case tea.KeyRight:
		m.session.MoveInsert(motion.Right)
	case tea.KeyUp:
		m.session.MoveInsert(motion.Up)
	case tea.KeyDown:
		m.session.MoveInsert(motion.Down)
	case tea.KeyEscape:
		m.session.Escape()
	}
	return m
}

// handleModalKey dispatches Normal and visual mode keys. The session guards
// each operation by mode, so keys that do not apply fall through silently —
// "d" outside the visual modes, "o" outside a selection.
func (m Model) handleModalKey(msg tea.KeyMsg) Model {
	k := msg.String()

	// An open "g" sequence either completes as a document-start motion or
	// swallows the stray follower.
	if m.pendingG {
		m.pendingG = false
		if k == "g" {
			m.session.Motion(motion.StartOfDocument)
		}
		return m
	}

	if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
		if m.session.Digit(int(k[0] - '0')) {
			return m
		}
		// A leading 0 is not a count; it falls through to start-of-line.
	}

	switch k {
	case "h", "left":
		m.session.Motion(motion.Left)
	case "l", "right":
		m.session.Motion(motion.Right)
	case "k", "up":
		m.session.Motion(motion.Up)
	case "j", "down":
		m.session.Motion(motion.Down)
	case "w":
		m.session.Motion(motion.NextWordStart)
	case "b":
		m.session.Motion(motion.PrevWordStart)
	case "e":
		m.session.Motion(motion.NextWordEnd)
	case "0":
		m.session.Motion(motion.StartOfLine)
	case "^":
		m.session.Motion(motion.FirstNonBlank)
	case "$":
		m.session.Motion(motion.EndOfLine)
	case "G":
		m.session.Motion(motion.EndOfDocument)
	case "g":
		m.pendingG = true
	case "v":
		m.session.EnterVisual()
	case "V":
		m.session.EnterVisualLine()
	case "i":
		m.session.EnterInsert()
	case "a":
		m.session.EnterInsertAfter()
	case "o":
		m.session.SwapEnds()
	case "d", "x":
		m.session.Delete()
	case "c", "s":
		m.session.Change()
	case "y":
		m.session.Yank()
	case "p":
		m.session.PasteAfter()
	case "P":
		m.session.PasteBefore()
	case "esc":
		m.session.Escape()
	}
	return m
}

// handleMouse scrolls on wheel events and positions the caret on left
// click: plain click resets to a single caret, alt+click adds one.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelScrollLines)
		return m
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelScrollLines)
		return m
	}

	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m
	}

	gw := m.gutterWidth()
	last := min(m.topRow+m.height, m.ed.LineCount())
	for row := m.topRow; row < last; row++ {
		z := zone.Get(rowZoneID(row))
		if z == nil || z.IsZero() || !z.InBounds(msg) {
			continue
		}
		// A click in the gutter lands on column 0; the session clips the
		// column onto a legal caret stop.
		col := max(0, msg.X-z.StartX-gw+m.leftCol)
		p := display.Point{Row: row, Col: col}
		if msg.Alt {
			m.session.AddCaretAt(p)
		} else {
			m.session.ResetCaret(p)
		}
		log.Debug(log.CatUI, "click to position", "row", row, "col", col, "alt", msg.Alt)
		break
	}
	return m
}

// scrollBy moves the viewport without touching the cursor. The next motion
// snaps the scroll back via ensureVisible.
func (m *Model) scrollBy(delta int) {
	maxTop := max(0, m.ed.LineCount()-m.height)
	m.topRow = max(0, min(m.topRow+delta, maxTop))
}

// ensureVisible adjusts the scroll so the primary cursor is on screen,
// vertically and horizontally.
func (m *Model) ensureVisible() {
	if m.height <= 0 || m.width <= 0 {
		return
	}
	cur := m.session.PrimaryCursor()

	margin := min(m.scrollMargin, max(0, (m.height-1)/2))
	m.topRow = min(m.topRow, cur.Row-margin)
	if cur.Row+margin >= m.topRow+m.height {
		m.topRow = cur.Row + margin - m.height + 1
	}
	maxTop := max(0, m.ed.LineCount()-m.height)
	m.topRow = max(0, min(m.topRow, maxTop))

	textWidth := m.width - m.gutterWidth()
	if textWidth <= 0 {
		m.leftCol = 0
		return
	}
	m.leftCol = min(m.leftCol, cur.Col)
	if cur.Col >= m.leftCol+textWidth {
		m.leftCol = cur.Col - textWidth + 1
	}
	m.leftCol = max(0, m.leftCol)
}
