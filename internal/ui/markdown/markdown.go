// Package markdown provides styled markdown rendering for the help overlay.
package markdown

import (
	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/plume/internal/ui/styles"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with plume-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width and theme mode
// ("dark" or "light"; anything else falls back to dark). The explicit
// style path avoids WithAutoStyle(), which queries the terminal background
// and leaks escape sequence responses into the input stream.
func New(width int, mode string) (*Renderer, error) {
	style := styles.ModeDark
	if mode == styles.ModeLight {
		style = styles.ModeLight
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
