package buffer

import (
	"fmt"
	"strings"
)

// Pos addresses a grapheme within the buffer: Row is the line index, Idx
// the grapheme index within that line. Idx equal to the line's grapheme
// count is the position just past the last cluster.
type Pos struct {
	Row int
	Idx int
}

// Cmp returns -1, 0, or 1 as p orders before, equal to, or after other.
func (p Pos) Cmp(other Pos) int {
	if p.Row != other.Row {
		if p.Row < other.Row {
			return -1
		}
		return 1
	}
	if p.Idx != other.Idx {
		if p.Idx < other.Idx {
			return -1
		}
		return 1
	}
	return 0
}

// Span is a half-open range [Start, End) of buffer positions.
type Span struct {
	Start Pos
	End   Pos
}

// Edit replaces the text in Span with Text. An empty Span inserts, empty
// Text deletes.
type Edit struct {
	Span Span
	Text string
}

// Buffer holds document text as lines without terminators. A buffer always
// has at least one line; the empty document is a single empty line.
// Whether the underlying file ended with a newline is remembered so Text
// can reproduce it.
type Buffer struct {
	lines           []string
	trailingNewline bool
}

// New creates a buffer from the given lines. No lines means one empty
// line.
func New(lines ...string) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Buffer{lines: append([]string(nil), lines...)}
}

// NewFromString creates a buffer by splitting text on newlines. A trailing
// newline is treated as the last line's terminator, not an extra empty
// line.
func NewFromString(text string) *Buffer {
	lines := strings.Split(text, "\n")
	trailing := false
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
		trailing = true
	}
	return &Buffer{lines: lines, trailingNewline: trailing}
}

// Line returns the line at row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// LineCount returns the number of lines. Always at least one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Text reassembles the document, restoring the trailing newline when the
// source had one.
func (b *Buffer) Text() string {
	text := strings.Join(b.lines, "\n")
	if b.trailingNewline {
		text += "\n"
	}
	return text
}

// clampPos clamps p to addressable positions.
func (b *Buffer) clampPos(p Pos) Pos {
	if p.Row < 0 {
		return Pos{0, 0}
	}
	if p.Row >= len(b.lines) {
		last := len(b.lines) - 1
		return Pos{last, GraphemeCount(b.lines[last])}
	}
	count := GraphemeCount(b.lines[p.Row])
	return Pos{p.Row, max(0, min(p.Idx, count))}
}

// Slice returns the text covered by sp, with lines joined by newlines.
func (b *Buffer) Slice(sp Span) string {
	start := b.clampPos(sp.Start)
	end := b.clampPos(sp.End)
	if end.Cmp(start) <= 0 {
		return ""
	}

	if start.Row == end.Row {
		return SliceByGraphemes(b.lines[start.Row], start.Idx, end.Idx)
	}

	var sb strings.Builder
	first := b.lines[start.Row]
	sb.WriteString(SliceByGraphemes(first, start.Idx, GraphemeCount(first)))
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteString("\n")
		sb.WriteString(b.lines[row])
	}
	sb.WriteString("\n")
	sb.WriteString(SliceByGraphemes(b.lines[end.Row], 0, end.Idx))
	return sb.String()
}

// Replace applies all edits as one atomic batch and returns, for each
// edit, the post-edit position of its span's start — earlier edits shift
// later starts. Edits must be sorted ascending and non-overlapping; a
// violation is an engine bug and panics.
func (b *Buffer) Replace(edits []Edit) []Pos {
	if len(edits) == 0 {
		return nil
	}

	clamped := make([]Edit, len(edits))
	for i, e := range edits {
		clamped[i] = Edit{
			Span: Span{Start: b.clampPos(e.Span.Start), End: b.clampPos(e.Span.End)},
			Text: e.Text,
		}
		if clamped[i].Span.End.Cmp(clamped[i].Span.Start) < 0 {
			panic(fmt.Sprintf("buffer: edit %d has end before start: %+v", i, clamped[i].Span))
		}
		if i > 0 && clamped[i].Span.Start.Cmp(clamped[i-1].Span.End) < 0 {
			panic(fmt.Sprintf("buffer: edit %d overlaps edit %d", i, i-1))
		}
	}

	carets := b.caretsFor(clamped)

	// Apply back to front so earlier spans keep their coordinates.
	for i := len(clamped) - 1; i >= 0; i-- {
		b.apply(clamped[i])
	}

	return carets
}

// caretsFor walks the edits in order, tracking how each shifts the
// coordinates of everything after it.
func (b *Buffer) caretsFor(edits []Edit) []Pos {
	carets := make([]Pos, len(edits))
	prevEndOrig := Pos{Row: -1}
	prevEndNew := Pos{Row: -1}

	for i, e := range edits {
		s := e.Span.Start
		var sNew Pos
		if s.Row == prevEndOrig.Row {
			// Same line as the previous edit's end: column shifts too.
			sNew = Pos{prevEndNew.Row, prevEndNew.Idx + (s.Idx - prevEndOrig.Idx)}
		} else {
			sNew = Pos{s.Row + (prevEndNew.Row - prevEndOrig.Row), s.Idx}
		}
		carets[i] = sNew

		textLines := strings.Split(e.Text, "\n")
		var endNew Pos
		if len(textLines) == 1 {
			endNew = Pos{sNew.Row, sNew.Idx + GraphemeCount(e.Text)}
		} else {
			endNew = Pos{sNew.Row + len(textLines) - 1, GraphemeCount(textLines[len(textLines)-1])}
		}
		prevEndOrig = e.Span.End
		prevEndNew = endNew
	}

	return carets
}

// apply performs a single edit in current buffer coordinates.
func (b *Buffer) apply(e Edit) {
	start, end := e.Span.Start, e.Span.End
	startLine := b.lines[start.Row]
	endLine := b.lines[end.Row]

	prefix := SliceByGraphemes(startLine, 0, start.Idx)
	suffix := SliceByGraphemes(endLine, end.Idx, GraphemeCount(endLine))
	merged := strings.Split(prefix+e.Text+suffix, "\n")

	result := make([]string, 0, len(b.lines)-(end.Row-start.Row+1)+len(merged))
	result = append(result, b.lines[:start.Row]...)
	result = append(result, merged...)
	result = append(result, b.lines[end.Row+1:]...)
	b.lines = result
}
