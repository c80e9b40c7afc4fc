package editorview

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plume/internal/display"
	"github.com/zjrosen/plume/internal/editor"
	"github.com/zjrosen/plume/internal/vim"
)

// TestMain initializes the global zone manager for all tests in this package.
func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// newView opens a temp file with the given content and builds a sized view
// over it, wired to a fresh session the way the app wires one.
func newView(t *testing.T, content string, width, height int) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "view.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	ed, err := editor.Open(path)
	require.NoError(t, err)
	m := New(ed, vim.NewSession(ed.Map(), ed, ed))
	m.SetSize(width, height)
	return m
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press feeds a string of single-rune keys one at a time.
func press(m Model, keys string) Model {
	for _, r := range keys {
		m, _ = m.Update(keyMsg(r))
	}
	return m
}

func pt(row, col int) display.Point {
	return display.Point{Row: row, Col: col}
}

// ============================================================================
// Construction
// ============================================================================

func TestNew_StartsAtOrigin(t *testing.T) {
	m := newView(t, "alpha\nbravo\n", 40, 10)

	assert.Nil(t, m.Init())
	assert.Equal(t, 0, m.TopRow())
	assert.Equal(t, 0, m.leftCol)
	assert.Equal(t, pt(0, 0), m.session.PrimaryCursor())
}

// ============================================================================
// Motions
// ============================================================================

func TestKeys_CharMotions(t *testing.T) {
	m := newView(t, "hello\nworld\n", 40, 10)

	m = press(m, "ll")
	assert.Equal(t, pt(0, 2), m.session.PrimaryCursor())

	m = press(m, "j")
	assert.Equal(t, pt(1, 2), m.session.PrimaryCursor())

	m = press(m, "h")
	assert.Equal(t, pt(1, 1), m.session.PrimaryCursor())

	m = press(m, "k")
	assert.Equal(t, pt(0, 1), m.session.PrimaryCursor())
}

func TestKeys_ArrowsMoveToo(t *testing.T) {
	m := newView(t, "hello\nworld\n", 40, 10)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, pt(1, 1), m.session.PrimaryCursor())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, pt(0, 0), m.session.PrimaryCursor())
}

func TestKeys_WordMotions(t *testing.T) {
	m := newView(t, "hello brave world\n", 40, 10)

	m = press(m, "w")
	assert.Equal(t, pt(0, 6), m.session.PrimaryCursor())

	m = press(m, "e")
	assert.Equal(t, pt(0, 10), m.session.PrimaryCursor())

	m = press(m, "b")
	assert.Equal(t, pt(0, 6), m.session.PrimaryCursor())
}

func TestKeys_LineMotions(t *testing.T) {
	m := newView(t, "  indented line\n", 40, 10)

	m = press(m, "$")
	assert.Equal(t, pt(0, 14), m.session.PrimaryCursor())

	m = press(m, "0")
	assert.Equal(t, pt(0, 0), m.session.PrimaryCursor())

	m = press(m, "^")
	assert.Equal(t, pt(0, 2), m.session.PrimaryCursor())
}

func TestKeys_DocumentMotions(t *testing.T) {
	m := newView(t, "one\ntwo\nthree\nfour\n", 40, 10)

	m = press(m, "G")
	assert.Equal(t, 3, m.session.PrimaryCursor().Row)

	m = press(m, "gg")
	assert.Equal(t, 0, m.session.PrimaryCursor().Row)
}

func TestKeys_AbortedGSequenceSwallowsFollower(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "gl")
	assert.Equal(t, pt(0, 0), m.session.PrimaryCursor(), "the key after a stray g is swallowed")

	m = press(m, "l")
	assert.Equal(t, pt(0, 1), m.session.PrimaryCursor(), "dispatch resumes on the next key")
}

func TestKeys_CountPrefixMultipliesMotion(t *testing.T) {
	m := newView(t, "abcdefghij\n", 40, 10)

	m = press(m, "3l")
	assert.Equal(t, pt(0, 3), m.session.PrimaryCursor())

	m = press(m, "12l")
	assert.Equal(t, pt(0, 9), m.session.PrimaryCursor(), "count overshoot clamps at line end")
}

func TestKeys_PendingCountVisibleWhileBuffered(t *testing.T) {
	m := newView(t, "abcdefghij\n", 40, 10)

	m = press(m, "42")
	assert.Equal(t, 42, m.session.PendingCount())

	m = press(m, "l")
	assert.Equal(t, 0, m.session.PendingCount())
}

func TestKeys_LeadingZeroIsStartOfLine(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "$0")
	assert.Equal(t, pt(0, 0), m.session.PrimaryCursor())
}

// ============================================================================
// Modes
// ============================================================================

func TestKeys_VisualModeToggles(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "v")
	assert.Equal(t, vim.ModeVisual, m.session.Mode())

	m = press(m, "V")
	assert.Equal(t, vim.ModeVisualLine, m.session.Mode())

	m = press(m, "V")
	assert.Equal(t, vim.ModeNormal, m.session.Mode())
}

func TestKeys_EscapeCollapsesVisual(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "vll")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	assert.Equal(t, vim.ModeNormal, m.session.Mode())
	sels := m.session.Selections()
	require.Len(t, sels, 1)
	assert.True(t, sels[0].IsEmpty())
}

func TestKeys_InsertAndAppend(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "i")
	assert.Equal(t, vim.ModeInsert, m.session.Mode())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, vim.ModeNormal, m.session.Mode())

	m = press(m, "a")
	assert.Equal(t, vim.ModeInsert, m.session.Mode())
	assert.Equal(t, pt(0, 1), m.session.PrimaryCursor(), "a enters one past the caret")
}

// ============================================================================
// Insert mode editing
// ============================================================================

func TestInsert_TypingAndEscape(t *testing.T) {
	m := newView(t, "world\n", 40, 10)

	m = press(m, "i")
	m = press(m, "hi ")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	assert.Equal(t, "hi world", m.ed.Line(0))
	assert.Equal(t, vim.ModeNormal, m.session.Mode())
	assert.Equal(t, pt(0, 3), m.session.PrimaryCursor(), "mid-line the caret stays where typing left it")
}

func TestInsert_EscapeAtLineEndPullsBack(t *testing.T) {
	m := newView(t, "ab\n", 40, 10)

	m = press(m, "$a") // append leaves the caret on the line-end stop
	m = press(m, "c")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	assert.Equal(t, "abc", m.ed.Line(0))
	assert.Equal(t, pt(0, 2), m.session.PrimaryCursor(), "escape clips the caret off the line end")
}

func TestInsert_SpaceTabEnter(t *testing.T) {
	m := newView(t, "ab\n", 40, 10)

	m = press(m, "i")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, " \t", m.ed.Line(0))
	assert.Equal(t, "ab", m.ed.Line(1))
	assert.Equal(t, pt(1, 0), m.session.PrimaryCursor())
}

func TestInsert_BracketedPasteInsertsWhole(t *testing.T) {
	m := newView(t, "\n", 40, 10)

	m = press(m, "i")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pasted text")})

	assert.Equal(t, "pasted text", m.ed.Line(0))
}

func TestInsert_BackspaceJoinsLines(t *testing.T) {
	m := newView(t, "ab\ncd\n", 40, 10)

	m = press(m, "ji")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "abcd", m.ed.Line(0))
	assert.Equal(t, 1, m.ed.LineCount())
}

func TestInsert_IgnoresMouseEscapeRunes(t *testing.T) {
	m := newView(t, "clean\n", 40, 10)

	m = press(m, "i")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[<65;87;15M")})

	assert.Equal(t, "clean", m.ed.Line(0))
}

func TestInsert_IgnoresAltModifiedRunes(t *testing.T) {
	m := newView(t, "clean\n", 40, 10)

	m = press(m, "i")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})

	assert.Equal(t, "clean", m.ed.Line(0))
}

// ============================================================================
// Operations
// ============================================================================

func TestVisual_DeleteRemovesInclusiveRange(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "vld")

	assert.Equal(t, "llo", m.ed.Line(0))
	assert.Equal(t, vim.ModeNormal, m.session.Mode())
	assert.Equal(t, pt(0, 0), m.session.PrimaryCursor())
}

func TestVisual_XAliasesDelete(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "vx")

	assert.Equal(t, "ello", m.ed.Line(0))
}

func TestVisual_ChangeEntersInsert(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "vlc")
	assert.Equal(t, vim.ModeInsert, m.session.Mode())
	assert.Equal(t, "llo", m.ed.Line(0))

	m = press(m, "xy")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, "xyllo", m.ed.Line(0))
}

func TestVisual_SAliasesChange(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "vs")

	assert.Equal(t, vim.ModeInsert, m.session.Mode())
	assert.Equal(t, "ello", m.ed.Line(0))
}

func TestVisual_LinewiseDeleteRestoresColumn(t *testing.T) {
	m := newView(t, "alpha\nbravo\ncharlie\n", 40, 10)

	m = press(m, "3l")
	m = press(m, "Vd")

	assert.Equal(t, "bravo", m.ed.Line(0), "the following line is promoted in place")
	assert.Equal(t, 2, m.ed.LineCount())
	assert.Equal(t, pt(0, 3), m.session.PrimaryCursor(), "the caret returns to its column on the promoted line")
}

func TestVisual_YankThenPasteBeforeRoundTrips(t *testing.T) {
	m := newView(t, "hello world\n", 40, 10)

	m = press(m, "veyP")

	assert.Equal(t, "hellohello world", m.ed.Line(0))
}

func TestVisual_LinewiseYankPasteBelow(t *testing.T) {
	m := newView(t, "alpha\nbravo\n", 40, 10)

	m = press(m, "Vyp")

	assert.Equal(t, "alpha", m.ed.Line(0))
	assert.Equal(t, "alpha", m.ed.Line(1))
	assert.Equal(t, "bravo", m.ed.Line(2))
	assert.Equal(t, pt(1, 0), m.session.PrimaryCursor())
}

func TestVisual_SwapEndsMovesCursorToAnchor(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "vll")
	assert.Equal(t, pt(0, 2), m.session.PrimaryCursor())

	m = press(m, "o")
	assert.Equal(t, pt(0, 0), m.session.PrimaryCursor())

	m = press(m, "o")
	assert.Equal(t, pt(0, 2), m.session.PrimaryCursor())
}

func TestNormal_OperatorKeysAreInert(t *testing.T) {
	m := newView(t, "hello\n", 40, 10)

	m = press(m, "dcy")

	assert.Equal(t, "hello", m.ed.Line(0))
	assert.Equal(t, vim.ModeNormal, m.session.Mode())
}

// ============================================================================
// Carets
// ============================================================================

func TestKeys_AddCaretBelowAndAbove(t *testing.T) {
	m := newView(t, "one\ntwo\nthree\n", 40, 10)

	m = press(m, "j")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	assert.Len(t, m.session.Selections(), 2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp, Alt: true})
	assert.Len(t, m.session.Selections(), 3)
}

func TestKeys_EscapeDropsExtraCarets(t *testing.T) {
	m := newView(t, "one\ntwo\n", 40, 10)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	require.Len(t, m.session.Selections(), 2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Len(t, m.session.Selections(), 1)
}

// ============================================================================
// Scrolling
// ============================================================================

func lines(n int) string {
	var b []byte
	for i := 0; i < n; i++ {
		b = append(b, []byte("line\n")...)
	}
	return string(b)
}

func TestScroll_FollowsCursorDown(t *testing.T) {
	m := newView(t, lines(10), 40, 3)

	m = press(m, "G")
	assert.Equal(t, 7, m.TopRow(), "the last line scrolls into the bottom row")

	m = press(m, "gg")
	assert.Equal(t, 0, m.TopRow())
}

func TestScroll_MarginKeepsRowsBelowCursor(t *testing.T) {
	m := newView(t, lines(20), 30, 9)
	m.SetScrollMargin(2)

	m = press(m, "jjjjjj")
	assert.Equal(t, 0, m.TopRow(), "six rows down still clears the margin")

	m = press(m, "j")
	assert.Equal(t, 1, m.TopRow(), "the seventh would enter the bottom margin")
}

func TestScroll_MarginKeepsRowsAboveCursor(t *testing.T) {
	m := newView(t, lines(20), 30, 9)
	m.SetScrollMargin(2)

	m = press(m, "G")
	require.Equal(t, 11, m.TopRow())

	m = press(m, "kkkkkkkk")
	assert.Equal(t, 9, m.TopRow(), "the cursor stays two rows clear of the top edge")
}

func TestScroll_MarginShrinksToFitSmallWindows(t *testing.T) {
	m := newView(t, lines(10), 30, 3)
	m.SetScrollMargin(50)

	m = press(m, "jj")
	assert.Equal(t, 1, m.TopRow(), "a window of three rows caps the margin at one")
}

func TestScroll_StaysPutWithinWindow(t *testing.T) {
	m := newView(t, lines(10), 40, 5)

	m = press(m, "jj")
	assert.Equal(t, 0, m.TopRow())
}

func TestScroll_WheelMovesViewportNotCursor(t *testing.T) {
	m := newView(t, lines(20), 40, 5)

	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 3, m.TopRow())
	assert.Equal(t, pt(0, 0), m.session.PrimaryCursor())

	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, m.TopRow())
}

func TestScroll_WheelClampsAtDocumentEnd(t *testing.T) {
	m := newView(t, lines(6), 40, 5)

	for i := 0; i < 4; i++ {
		m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	}
	assert.Equal(t, 1, m.TopRow())
}

func TestScroll_NextKeySnapsBackToCursor(t *testing.T) {
	m := newView(t, lines(20), 40, 5)

	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.Equal(t, 6, m.TopRow())

	m = press(m, "l")
	assert.Equal(t, 0, m.TopRow(), "cursor at the origin pulls the viewport back")
}

func TestScroll_HorizontalFollowsCursor(t *testing.T) {
	m := newView(t, "abcdefghijklmnopqrstuvwxyz\n", 7, 3)

	// gutter "1 " leaves five text columns
	m = press(m, "$")
	assert.Equal(t, 21, m.leftCol, "line end lands on the window's last column")

	m = press(m, "0")
	assert.Equal(t, 0, m.leftCol)
}

func TestFollowCursor_ReanchorsAfterExternalMove(t *testing.T) {
	m := newView(t, lines(20), 40, 5)

	m.session.ResetCaret(pt(15, 0))
	m.FollowCursor()

	assert.Equal(t, 11, m.TopRow())
}

// ============================================================================
// Mouse click-to-position
// ============================================================================

// registerRowZone renders until the zone for a row is registered. Zone
// registration is asynchronous via a channel worker in bubblezone, so give
// it a moment to catch up.
func registerRowZone(t *testing.T, m Model, row int) *zone.ZoneInfo {
	t.Helper()
	var z *zone.ZoneInfo
	for retries := 0; retries < 20; retries++ {
		_ = zone.Scan(m.View())
		z = zone.Get(rowZoneID(row))
		if z != nil && !z.IsZero() {
			return z
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("zone for row %d never registered", row)
	return nil
}

func leftClick(x, y int, alt bool) tea.MouseMsg {
	return tea.MouseMsg{
		X:      x,
		Y:      y,
		Alt:    alt,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	}
}

func TestMouse_ClickMovesCaret(t *testing.T) {
	m := newView(t, "alpha\nbravo\ncharlie\n", 30, 5)
	z := registerRowZone(t, m, 1)

	m, _ = m.Update(leftClick(z.StartX+m.gutterWidth()+2, z.StartY, false))

	assert.Equal(t, pt(1, 2), m.session.PrimaryCursor())
	assert.Len(t, m.session.Selections(), 1)
}

func TestMouse_ClickCollapsesVisualMode(t *testing.T) {
	m := newView(t, "alpha\nbravo\n", 30, 5)
	m = press(m, "vl")
	require.Equal(t, vim.ModeVisual, m.session.Mode())
	z := registerRowZone(t, m, 1)

	m, _ = m.Update(leftClick(z.StartX+m.gutterWidth(), z.StartY, false))

	assert.Equal(t, vim.ModeNormal, m.session.Mode())
	assert.Equal(t, pt(1, 0), m.session.PrimaryCursor())
}

func TestMouse_AltClickAddsCaret(t *testing.T) {
	m := newView(t, "alpha\nbravo\n", 30, 5)
	z := registerRowZone(t, m, 1)

	m, _ = m.Update(leftClick(z.StartX+m.gutterWidth()+1, z.StartY, true))

	sels := m.session.Selections()
	require.Len(t, sels, 2)
	assert.Equal(t, pt(0, 0), sels[0].Head())
	assert.Equal(t, pt(1, 1), sels[1].Head())
}

func TestMouse_ClickPastLineEndClipsToLastChar(t *testing.T) {
	m := newView(t, "ab\n", 30, 5)
	z := registerRowZone(t, m, 0)

	m, _ = m.Update(leftClick(z.StartX+m.gutterWidth()+15, z.StartY, false))

	assert.Equal(t, pt(0, 1), m.session.PrimaryCursor())
}

func TestMouse_ClickInGutterLandsOnLineStart(t *testing.T) {
	m := newView(t, "alpha\nbravo\n", 30, 5)
	z := registerRowZone(t, m, 1)

	m, _ = m.Update(leftClick(z.StartX, z.StartY, false))

	assert.Equal(t, pt(1, 0), m.session.PrimaryCursor())
}

func TestMouse_NonLeftButtonsIgnored(t *testing.T) {
	m := newView(t, "alpha\n", 30, 5)
	_ = registerRowZone(t, m, 0)

	m, _ = m.Update(tea.MouseMsg{
		X: 5, Y: 0,
		Button: tea.MouseButtonRight,
		Action: tea.MouseActionRelease,
	})

	assert.Equal(t, pt(0, 0), m.session.PrimaryCursor())
}
