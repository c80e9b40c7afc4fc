package tracing

// Span names used by plume's instrumented call sites.
const (
	SpanReplace        = "editor.replace"
	SpanSave           = "editor.save"
	SpanReload         = "editor.reload"
	SpanSessionSave    = "store.session.save"
	SpanSessionRestore = "store.session.restore"
)

// Attribute keys attached to those spans.
const (
	AttrFilePath       = "file.path"
	AttrFileBytes      = "file.bytes"
	AttrBufferLines    = "buffer.lines"
	AttrEditCount      = "edit.count"
	AttrSelectionCount = "selection.count"
	AttrLinewise       = "operation.linewise"
	AttrSessionID      = "session.id"
)
