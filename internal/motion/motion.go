// Package motion computes cursor targets for the editor's motion commands.
// All positions are display-space points; a motion is a pure function of
// the display map, the current position, and the sticky goal column. Counts
// are applied by the caller through repetition.
package motion

import (
	"unicode"
	"unicode/utf8"

	"github.com/zjrosen/plume/internal/display"
)

// Motion identifies one motion command.
type Motion int

const (
	Left Motion = iota
	Right
	Up
	Down
	NextWordStart
	PrevWordStart
	NextWordEnd
	StartOfLine
	FirstNonBlank
	EndOfLine
	StartOfDocument
	EndOfDocument
)

func (m Motion) String() string {
	switch m {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case NextWordStart:
		return "next-word-start"
	case PrevWordStart:
		return "prev-word-start"
	case NextWordEnd:
		return "next-word-end"
	case StartOfLine:
		return "start-of-line"
	case FirstNonBlank:
		return "first-non-blank"
	case EndOfLine:
		return "end-of-line"
	case StartOfDocument:
		return "start-of-document"
	case EndOfDocument:
		return "end-of-document"
	default:
		return "unknown"
	}
}

// Move computes the target of one application of m from p. The returned
// position is clipped loosely — it may rest on a line-end stop; callers
// decide whether that is a legal resting place. The returned goal is the
// new sticky column: horizontal motions re-target it, vertical motions
// preserve the one given.
func Move(dm *display.Map, m Motion, p display.Point, goal int) (display.Point, int) {
	switch m {
	case Left:
		np := dm.ClipPoint(display.Point{Row: p.Row, Col: max(0, p.Col-1)}, display.BiasLeft)
		return np, np.Col
	case Right:
		np := dm.ClipPoint(display.Point{Row: p.Row, Col: p.Col + 1}, display.BiasRight)
		return np, np.Col
	case Up:
		if p.Row == 0 {
			return p, goal
		}
		return dm.ClipPoint(display.Point{Row: p.Row - 1, Col: goal}, display.BiasLeft), goal
	case Down:
		if p.Row >= dm.LineCount()-1 {
			return p, goal
		}
		return dm.ClipPoint(display.Point{Row: p.Row + 1, Col: goal}, display.BiasLeft), goal
	case NextWordStart:
		np := nextWordStart(dm, p)
		return np, np.Col
	case PrevWordStart:
		np := prevWordStart(dm, p)
		return np, np.Col
	case NextWordEnd:
		np := nextWordEnd(dm, p)
		return np, np.Col
	case StartOfLine:
		np := dm.PrevLineBoundary(p)
		return np, np.Col
	case FirstNonBlank:
		np := firstNonBlank(dm, p.Row)
		return np, np.Col
	case EndOfLine:
		np := dm.NextLineBoundary(p)
		return np, np.Col
	case StartOfDocument:
		np := firstNonBlank(dm, 0)
		return np, np.Col
	case EndOfDocument:
		np := firstNonBlank(dm, dm.LineCount()-1)
		return np, np.Col
	default:
		return p, goal
	}
}

type charClass int

const (
	classBlank charClass = iota
	classWord
	classPunct
)

// classify buckets a grapheme cluster the way word motions see it: word
// characters (letters, digits, underscore), punctuation, or blanks.
func classify(cluster string) charClass {
	r, _ := utf8.DecodeRuneInString(cluster)
	switch {
	case unicode.IsSpace(r):
		return classBlank
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

// cellIndexAt returns the index of the cell containing col, or len(cells)
// when col is at or past the line-end stop.
func cellIndexAt(cells []display.Cell, col int) int {
	for i, c := range cells {
		if col < c.Col+c.Width {
			return i
		}
	}
	return len(cells)
}

func nextWordStart(dm *display.Map, p display.Point) display.Point {
	row := p.Row
	cells := dm.Cells(row)
	i := cellIndexAt(cells, p.Col)

	// Step off the word under the cursor first.
	if i < len(cells) {
		if cls := classify(cells[i].Cluster); cls != classBlank {
			for i < len(cells) && classify(cells[i].Cluster) == cls {
				i++
			}
		}
	}

	for {
		for i < len(cells) && classify(cells[i].Cluster) == classBlank {
			i++
		}
		if i < len(cells) {
			return display.Point{Row: row, Col: cells[i].Col}
		}
		if row >= dm.LineCount()-1 {
			return dm.MaxPoint()
		}
		row++
		cells = dm.Cells(row)
		i = 0
		// An empty line counts as a word.
		if len(cells) == 0 {
			return display.Point{Row: row, Col: 0}
		}
	}
}

func prevWordStart(dm *display.Map, p display.Point) display.Point {
	row := p.Row
	cells := dm.Cells(row)
	i := cellIndexAt(cells, p.Col)

	for {
		if i > 0 {
			i--
		} else {
			if row == 0 {
				return display.Point{}
			}
			row--
			cells = dm.Cells(row)
			if len(cells) == 0 {
				return display.Point{Row: row}
			}
			i = len(cells) - 1
		}
		cls := classify(cells[i].Cluster)
		if cls == classBlank {
			continue
		}
		for i > 0 && classify(cells[i-1].Cluster) == cls {
			i--
		}
		return display.Point{Row: row, Col: cells[i].Col}
	}
}

func nextWordEnd(dm *display.Map, p display.Point) display.Point {
	row := p.Row
	cells := dm.Cells(row)
	i := cellIndexAt(cells, p.Col)

	for {
		i++
		if i >= len(cells) {
			if row >= dm.LineCount()-1 {
				if len(cells) > 0 {
					return display.Point{Row: row, Col: cells[len(cells)-1].Col}
				}
				return display.Point{Row: row}
			}
			row++
			cells = dm.Cells(row)
			i = -1
			continue
		}
		cls := classify(cells[i].Cluster)
		if cls == classBlank {
			continue
		}
		for i+1 < len(cells) && classify(cells[i+1].Cluster) == cls {
			i++
		}
		return display.Point{Row: row, Col: cells[i].Col}
	}
}

// firstNonBlank targets the first non-blank cell of row, falling back to
// the line-end stop when the row is blank.
func firstNonBlank(dm *display.Map, row int) display.Point {
	for _, c := range dm.Cells(row) {
		if classify(c.Cluster) != classBlank {
			return display.Point{Row: row, Col: c.Col}
		}
	}
	return dm.NextLineBoundary(display.Point{Row: row})
}
