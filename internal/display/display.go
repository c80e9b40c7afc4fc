// Package display models positions in display space.
//
// plume distinguishes three units of text measurement:
//
//  1. Bytes: the storage unit of Go strings. A single grapheme can span
//     many bytes.
//
//  2. Graphemes: the logical unit users perceive as one character. The
//     buffer package addresses text by grapheme index.
//
//  3. Display columns: terminal cells as laid out on screen, after tab
//     expansion and with double-width graphemes (CJK, emoji) occupying two
//     cells. Everything in this package works in display columns.
//
// Not every display column is a caret stop: the cursor may rest on a
// grapheme's first cell or on the line-end stop one past the last grapheme,
// but never inside a tab span or on the second cell of a wide glyph.
// Clipping snaps arbitrary positions to the nearest stop, with a Bias
// choosing the direction when the position falls inside a glyph.
package display

import "fmt"

// Point is a position in display space. Ordering is row-major.
type Point struct {
	Row int
	Col int
}

// Cmp returns -1, 0, or 1 as p orders before, equal to, or after other.
func (p Point) Cmp(other Point) int {
	if p.Row != other.Row {
		if p.Row < other.Row {
			return -1
		}
		return 1
	}
	if p.Col != other.Col {
		if p.Col < other.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether p orders strictly before other.
func (p Point) Before(other Point) bool {
	return p.Cmp(other) < 0
}

// After reports whether p orders strictly after other.
func (p Point) After(other Point) bool {
	return p.Cmp(other) > 0
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Bias resolves positions that fall inside a multi-column glyph toward the
// previous (BiasLeft) or next (BiasRight) caret stop.
type Bias int

const (
	BiasLeft Bias = iota
	BiasRight
)

func (b Bias) String() string {
	if b == BiasRight {
		return "right"
	}
	return "left"
}

// Range is a half-open span [Start, End) in display space.
type Range struct {
	Start Point
	End   Point
}

// IsEmpty reports whether the range covers no cells.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}
