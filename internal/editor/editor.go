// Package editor owns one open file: the text buffer, the display map that
// translates between terminal cells and graphemes, and the registers the
// modal session yanks into. It is the glue between the vim engine's
// display-space edits and the buffer's grapheme-space storage, and the only
// code that touches the file on disk.
package editor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/plume/internal/buffer"
	"github.com/zjrosen/plume/internal/display"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/register"
	"github.com/zjrosen/plume/internal/selection"
	"github.com/zjrosen/plume/internal/tracing"
	"github.com/zjrosen/plume/internal/vim"
)

// DefaultTabWidth is the cell width of a tab stop when none is configured.
const DefaultTabWidth = 4

// Editor is a single open file. It implements display.Content, vim.Buffer,
// and vim.Clipboard, so a session wired to it edits the real buffer and the
// display map always reflects the current text.
type Editor struct {
	path     string
	tabWidth int
	fileMode fs.FileMode

	buf  *buffer.Buffer
	dm   *display.Map
	regs *register.Registers

	tracer trace.Tracer

	// diskText is the buffer's serialized form as of the last read or
	// write, so dirtiness is a plain string comparison.
	diskText string
}

// Option configures an Editor at Open time.
type Option func(*Editor)

// WithTabWidth sets the cell width of a tab stop.
func WithTabWidth(width int) Option {
	return func(e *Editor) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithTracer sets the tracer used for edit, save, and reload spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Editor) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// Open loads path into a new Editor. A missing file opens as an empty,
// clean buffer; the file is created on the first save.
func Open(path string, opts ...Option) (*Editor, error) {
	e := &Editor{
		path:     path,
		tabWidth: DefaultTabWidth,
		fileMode: 0o644,
		regs:     register.New(),
		tracer:   noop.NewTracerProvider().Tracer("editor"),
	}
	for _, opt := range opts {
		opt(e)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if info, statErr := os.Stat(path); statErr == nil {
			e.fileMode = info.Mode().Perm()
		}
		e.buf = buffer.NewFromString(string(data))
	case os.IsNotExist(err):
		e.buf = buffer.New()
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	e.diskText = e.buf.Text()
	e.dm = display.NewMap(e, e.tabWidth)
	return e, nil
}

// Path returns the file's path as given to Open.
func (e *Editor) Path() string {
	return e.path
}

// Map returns the display map over the current buffer.
func (e *Editor) Map() *display.Map {
	return e.dm
}

// Text returns the buffer serialized the way Save writes it.
func (e *Editor) Text() string {
	return e.buf.Text()
}

// Line returns the text of one row.
func (e *Editor) Line(row int) string {
	return e.buf.Line(row)
}

// LineCount returns the number of rows in the buffer.
func (e *Editor) LineCount() int {
	return e.buf.LineCount()
}

// Dirty reports whether the buffer differs from the file on disk as of the
// last read or write.
func (e *Editor) Dirty() bool {
	return e.buf.Text() != e.diskText
}

// DiffStats returns the number of lines added and removed relative to the
// last saved state, computed with a line-granularity diff.
func (e *Editor) DiffStats() (added, removed int) {
	text := e.buf.Text()
	if text == e.diskText {
		return 0, 0
	}

	dmp := diffmatchpatch.New()
	a, b, lineText := dmp.DiffLinesToChars(e.diskText, text)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineText)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += countLines(d.Text)
		}
	}
	return added, removed
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

// Replace applies a batch of display-space edits to the buffer and returns
// the post-edit caret for each. This is the vim.Buffer contract: edits
// arrive sorted ascending and non-overlapping, and each caret is the edit's
// start shifted by the edits before it.
func (e *Editor) Replace(edits []vim.TextEdit) []display.Point {
	_, span := e.tracer.Start(context.Background(), tracing.SpanReplace,
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrFilePath, e.path),
		attribute.Int(tracing.AttrEditCount, len(edits)),
	)

	bedits := make([]buffer.Edit, len(edits))
	for i, ed := range edits {
		bedits[i] = buffer.Edit{Span: e.span(ed.Range), Text: ed.Text}
	}
	carets := e.buf.Replace(bedits)
	log.Debug(log.CatBuffer, "batch edit applied", "edits", len(edits), "lines", e.buf.LineCount())

	out := make([]display.Point, len(carets))
	for i, c := range carets {
		out[i] = e.dm.PointAt(c.Row, c.Idx)
	}
	span.SetAttributes(attribute.Int(tracing.AttrBufferLines, e.buf.LineCount()))
	return out
}

// Slice reads the text a display-space range covers.
func (e *Editor) Slice(r display.Range) string {
	return e.buf.Slice(e.span(r))
}

// span converts a display-space range to grapheme offsets against the
// current layout. Conversion has to happen before any edit in the batch is
// applied, which is why Replace converts everything up front.
func (e *Editor) span(r display.Range) buffer.Span {
	return buffer.Span{
		Start: buffer.Pos{Row: r.Start.Row, Idx: e.dm.GraphemeIndex(r.Start)},
		End:   buffer.Pos{Row: r.End.Row, Idx: e.dm.GraphemeIndex(r.End)},
	}
}

// Copy records the selections' text in the unnamed register, one chunk per
// selection joined by newlines. Linewise chunks carry their row content
// only; the surrounding newlines taken by the range adjustment are
// stripped so paste can rebuild them for the target position.
func (e *Editor) Copy(sels []*selection.Selection, linewise bool) {
	chunks := make([]string, len(sels))
	for i, sel := range sels {
		chunk := e.Slice(sel.Range())
		if linewise {
			chunk = strings.TrimSuffix(chunk, "\n")
			chunk = strings.TrimPrefix(chunk, "\n")
		}
		chunks[i] = chunk
	}
	e.regs.Write(register.Entry{Text: strings.Join(chunks, "\n"), Linewise: linewise})
}

// Paste returns the unnamed register's contents.
func (e *Editor) Paste() (string, bool, bool) {
	entry, ok := e.regs.Read()
	return entry.Text, entry.Linewise, ok
}

// Save writes the buffer to disk, preserving the file's permission bits.
func (e *Editor) Save() error {
	_, span := e.tracer.Start(context.Background(), tracing.SpanSave,
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	text := e.buf.Text()
	span.SetAttributes(
		attribute.String(tracing.AttrFilePath, e.path),
		attribute.Int(tracing.AttrFileBytes, len(text)),
	)

	if err := os.WriteFile(e.path, []byte(text), e.fileMode); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return fmt.Errorf("save %s: %w", e.path, err)
	}
	e.diskText = text
	span.SetStatus(codes.Ok, "")
	return nil
}

// Reload replaces the buffer with the file's current contents, discarding
// unsaved edits. The display map stays valid because it reads the buffer
// through the editor on every lookup.
func (e *Editor) Reload() error {
	_, span := e.tracer.Start(context.Background(), tracing.SpanReload,
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrFilePath, e.path))

	data, err := os.ReadFile(e.path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return fmt.Errorf("reload %s: %w", e.path, err)
	}
	e.buf = buffer.NewFromString(string(data))
	e.diskText = e.buf.Text()
	span.SetAttributes(attribute.Int(tracing.AttrBufferLines, e.buf.LineCount()))
	span.SetStatus(codes.Ok, "")
	return nil
}
