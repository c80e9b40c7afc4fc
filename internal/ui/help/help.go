// Package help contains the help overlay component. The content is the
// embedded help document rendered through glamour at the current theme mode.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/plume/internal/docs"
	"github.com/zjrosen/plume/internal/ui/markdown"
	"github.com/zjrosen/plume/internal/ui/overlay"
	"github.com/zjrosen/plume/internal/ui/styles"
)

const (
	boxMaxWidth       = 80 // Help is a document; cap the line length
	boxMinWidth       = 40
	viewportMinHeight = 5
)

// CloseMsg is sent when the overlay should be closed.
type CloseMsg struct{}

// Model holds the help overlay state.
type Model struct {
	visible   bool
	width     int
	height    int
	themeMode string
	viewport  viewport.Model
}

// New creates a help overlay rendering at the given theme mode
// ("dark" or "light").
func New(themeMode string) Model {
	return Model{themeMode: themeMode}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			m.viewport.ScrollDown(1)
			return m, nil

		case "k", "up":
			m.viewport.ScrollUp(1)
			return m, nil

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil

		case "ctrl+c":
			return m, tea.Quit

		case "?", "esc":
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshViewport()
	}

	return m, nil
}

// View renders the help overlay content.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()
	contentWidth := m.contentWidth()

	dividerStyle := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", contentWidth))
	footer := styles.HelpStyle.Render("Press ? or Esc to close")

	var inner strings.Builder
	inner.WriteString(m.viewport.View())
	inner.WriteString("\n")
	inner.WriteString(divider)
	inner.WriteString("\n")
	inner.WriteString(footer)

	boxHeight := m.viewport.Height + 4 // viewport + divider + footer + borders
	return styles.RenderWithTitleBorder(
		inner.String(), "Help", boxWidth, boxHeight,
		styles.OverlayTitleColor, styles.OverlayBorderColor,
	)
}

// Overlay renders the help overlay centered on the given background.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(m.width, m.height, m.View(), bg)
}

// Visible returns whether the overlay is currently visible.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle toggles the overlay visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refreshViewport()
	}
}

// Show makes the overlay visible.
func (m *Model) Show() {
	m.visible = true
	m.refreshViewport()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize updates the overlay's knowledge of viewport size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refreshViewport()
}

// SetThemeMode switches the glamour style used for rendering.
func (m *Model) SetThemeMode(mode string) {
	m.themeMode = mode
	if m.visible {
		m.refreshViewport()
	}
}

// refreshViewport re-renders the document and rebuilds the viewport.
func (m *Model) refreshViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentWidth := m.contentWidth()
	rendered := m.renderDoc(contentWidth)

	// Shrink the box when the document is shorter than the screen allows.
	lines := strings.Count(rendered, "\n") + 1
	viewportHeight := min(m.height-6, lines)
	viewportHeight = max(viewportHeight, viewportMinHeight)

	m.viewport = viewport.New(contentWidth, viewportHeight)
	m.viewport.SetContent(rendered)
}

// renderDoc renders the embedded help document at the given width, falling
// back to the raw markdown when glamour cannot initialize.
func (m Model) renderDoc(width int) string {
	r, err := markdown.New(width-2, m.themeMode)
	if err != nil {
		return docs.Help()
	}
	out, err := r.Render(docs.Help())
	if err != nil {
		return docs.Help()
	}
	return strings.TrimRight(out, "\n")
}

// boxWidth returns the calculated box width based on screen size.
func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

// contentWidth returns the content width (box width minus borders).
func (m Model) contentWidth() int {
	return m.boxWidth() - 2
}
