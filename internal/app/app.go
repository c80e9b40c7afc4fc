// Package app contains the root application model.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/plume/internal/config"
	"github.com/zjrosen/plume/internal/display"
	"github.com/zjrosen/plume/internal/editor"
	"github.com/zjrosen/plume/internal/infrastructure/sqlite"
	"github.com/zjrosen/plume/internal/keys"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/ui/editorview"
	"github.com/zjrosen/plume/internal/ui/help"
	"github.com/zjrosen/plume/internal/ui/logoverlay"
	"github.com/zjrosen/plume/internal/ui/statusbar"
	"github.com/zjrosen/plume/internal/ui/styles"
	"github.com/zjrosen/plume/internal/vim"
	"github.com/zjrosen/plume/internal/watcher"
)

const (
	// messageTTL is how long a transient status message stays visible.
	messageTTL = 3 * time.Second
	// storeTimeout bounds session store calls during startup and shutdown.
	storeTimeout = 2 * time.Second
	// sessionKeepDays is the retention window for remembered cursor positions.
	sessionKeepDays = 90
)

// fileEventMsg carries one file watcher notification into the update loop.
type fileEventMsg struct {
	event watcher.Event
}

// clearMessageMsg expires the transient status message.
type clearMessageMsg struct{}

// Model is the root application state.
type Model struct {
	// Editing core
	editor  *editor.Editor
	session *vim.Session
	view    editorview.Model

	// Configuration
	cfg        config.Config
	configPath string
	themeMode  string

	// Global state
	width      int
	height     int
	quitWarned bool

	// Transient status bar message
	message     string
	messageKind statusbar.MessageKind

	help help.Model

	debugMode   bool
	logOverlay  logoverlay.Model
	logCancel   context.CancelFunc
	logListener *log.LogListener

	// File watcher for auto-reload
	watcherHandle *watcher.Watcher
	watcherEvents <-chan watcher.Event

	// Session store; nil when the database is unavailable
	db    *sqlite.DB
	store *sqlite.SessionRepository
}

// New creates the root application model editing the file held by ed.
// db may be nil when the session store is unavailable. configPath is the
// config file used when persisting theme changes; debugMode enables the
// log overlay (Ctrl+X toggle).
func New(ed *editor.Editor, cfg config.Config, db *sqlite.DB, tracer trace.Tracer, configPath string, debugMode bool) Model {
	session := vim.NewSession(ed.Map(), ed, ed)

	view := editorview.New(ed, session)
	view.SetScrollMargin(cfg.Editor.ScrollMargin)

	// Session store: restore the last cursor position for this file and
	// drop entries that haven't been touched in a long time.
	var store *sqlite.SessionRepository
	if db != nil {
		var opts []sqlite.Option
		if tracer != nil {
			opts = append(opts, sqlite.WithTracer(tracer))
		}
		store = db.SessionRepository(opts...)

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		if n, err := store.PruneOlderThan(ctx, time.Now().AddDate(0, 0, -sessionKeepDays)); err != nil {
			log.Warn(log.CatStore, "session prune failed", "error", err)
		} else if n > 0 {
			log.Debug(log.CatStore, "pruned stale sessions", "count", n)
		}

		if cfg.Session.Restore {
			switch stored, err := store.FindByPath(ctx, ed.Path()); {
			case err == nil:
				// ResetCaret clips the stored point, so positions from an
				// older version of the file stay inside the document.
				session.ResetCaret(display.Point{Row: stored.Row, Col: stored.Col})
				log.Info(log.CatStore, "restored session", "path", ed.Path(), "row", stored.Row, "col", stored.Col)
			case errors.Is(err, sqlite.ErrNoSession):
				// First time opening this file
			default:
				log.Warn(log.CatStore, "session restore failed", "error", err)
			}
		}
		cancel()
	}

	// Initialize the file watcher if auto-reload is enabled
	var (
		watcherHandle *watcher.Watcher
		watcherEvents <-chan watcher.Event
	)
	if cfg.Editor.AutoReload {
		w, err := watcher.New(watcher.DefaultConfig(ed.Path()))
		if err == nil {
			if ch, err := w.Start(); err == nil {
				watcherHandle = w
				watcherEvents = ch
			} else {
				// Cleanup on start failure
				_ = w.Stop()
			}
		}
		// Silently ignore watcher init errors - the editor works fine
		// without auto-reload
	}

	// Subscribe to log events when the overlay can be opened
	var (
		logCancel   context.CancelFunc
		logListener *log.LogListener
	)
	if debugMode {
		var logCtx context.Context
		logCtx, logCancel = context.WithCancel(context.Background())
		logListener = log.NewListener(logCtx)
	}

	themeMode := styles.ResolveMode(cfg.Theme.Mode)

	return Model{
		editor:        ed,
		session:       session,
		view:          view,
		cfg:           cfg,
		configPath:    configPath,
		themeMode:     themeMode,
		help:          help.New(themeMode),
		debugMode:     debugMode,
		logOverlay:    logoverlay.New(),
		logCancel:     logCancel,
		logListener:   logListener,
		watcherHandle: watcherHandle,
		watcherEvents: watcherEvents,
		db:            db,
		store:         store,
	}
}

// Init implements tea.Model. Starts the watcher and log listeners when
// configured.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.view.Init()}

	if m.watcherEvents != nil {
		cmds = append(cmds, m.listenWatcher())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.listenLogs())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// The status bar takes the bottom row
		m.view.SetSize(msg.Width, msg.Height-1)
		m.help.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)

		return m, nil

	case tea.MouseMsg:
		// Overlays swallow mouse input while visible
		if m.help.Visible() || (m.debugMode && m.logOverlay.Visible()) {
			return m, nil
		}

	case log.LogEvent:
		m.logOverlay.AppendEntry(msg.Payload)
		return m, m.listenLogs()

	case tea.KeyMsg:
		// Any key other than quit rearms the unsaved-changes warning
		if !key.Matches(msg, keys.App.Quit) {
			m.quitWarned = false
		}

		if m.debugMode && key.Matches(msg, keys.App.LogOverlay) {
			m.logOverlay.Toggle()
			return m, nil
		}

		// A visible overlay takes precedence for key input
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		if m.help.Visible() {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.App.Quit):
			return m.handleQuit()

		case key.Matches(msg, keys.App.Save):
			return m.handleSave()

		case key.Matches(msg, keys.App.ThemeCycle):
			return m.cycleTheme()

		case key.Matches(msg, keys.App.Help) && m.session.Mode() != vim.ModeInsert:
			// In insert mode "?" is text, not a chrome binding
			m.help.Toggle()
			return m, nil
		}

	case fileEventMsg:
		return m.handleFileEvent(msg)

	case clearMessageMsg:
		m.message = ""
		m.messageKind = statusbar.MessageNone
		return m, nil

	case help.CloseMsg:
		m.help.Hide()
		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil
	}

	// Everything else is editing input for the view
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// handleQuit quits immediately when the buffer is clean. A dirty buffer
// warns once; a second quit discards the unsaved changes.
func (m Model) handleQuit() (tea.Model, tea.Cmd) {
	if m.editor.Dirty() && !m.quitWarned {
		m.quitWarned = true
		var cmd tea.Cmd
		m, cmd = m.withMessage(statusbar.MessageError, "unsaved changes: ctrl+s to save, quit again to discard")
		return m, cmd
	}
	return m, tea.Quit
}

// handleSave writes the buffer to disk.
func (m Model) handleSave() (tea.Model, tea.Cmd) {
	if err := m.editor.Save(); err != nil {
		log.ErrorErr(log.CatEditor, "save failed", err, "path", m.editor.Path())
		var cmd tea.Cmd
		m, cmd = m.withMessage(statusbar.MessageError, "save failed: "+err.Error())
		return m, cmd
	}

	log.Info(log.CatEditor, "saved", "path", m.editor.Path(), "lines", m.editor.LineCount())
	written := fmt.Sprintf("%q %dL written", filepath.Base(m.editor.Path()), m.editor.LineCount())
	var cmd tea.Cmd
	m, cmd = m.withMessage(statusbar.MessageSuccess, written)
	return m, cmd
}

// cycleTheme switches between the dark and light themes and persists the
// choice to the config file.
func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	next := styles.ModeDark
	if m.themeMode == styles.ModeDark {
		next = styles.ModeLight
	}

	if err := styles.Apply(styles.ThemeConfig{Mode: next, Colors: m.cfg.Theme.FlattenedColors()}); err != nil {
		log.ErrorErr(log.CatConfig, "theme apply failed", err)
		var cmd tea.Cmd
		m, cmd = m.withMessage(statusbar.MessageError, "theme: "+err.Error())
		return m, cmd
	}

	m.themeMode = next
	m.help.SetThemeMode(next)

	if m.configPath != "" {
		if err := config.SaveThemeMode(m.configPath, next); err != nil {
			log.Warn(log.CatConfig, "theme not persisted", "error", err)
		}
	}

	log.Info(log.CatConfig, "theme changed", "mode", next)
	var cmd tea.Cmd
	m, cmd = m.withMessage(statusbar.MessageInfo, "theme: "+next)
	return m, cmd
}

// handleFileEvent reacts to the file changing outside the editor. A clean
// buffer reloads in place; a dirty buffer keeps the unsaved edits and
// warns instead.
func (m Model) handleFileEvent(msg fileEventMsg) (tea.Model, tea.Cmd) {
	rearm := m.listenWatcher()

	if msg.event == watcher.Removed {
		log.Warn(log.CatWatch, "file removed on disk", "path", m.editor.Path())
		var cmd tea.Cmd
		m, cmd = m.withMessage(statusbar.MessageError, "file removed on disk")
		return m, tea.Batch(cmd, rearm)
	}

	if m.editor.Dirty() {
		log.Warn(log.CatWatch, "file changed on disk, keeping unsaved buffer", "path", m.editor.Path())
		var cmd tea.Cmd
		m, cmd = m.withMessage(statusbar.MessageError, "file changed on disk; buffer has unsaved edits")
		return m, tea.Batch(cmd, rearm)
	}

	if err := m.editor.Reload(); err != nil {
		log.ErrorErr(log.CatWatch, "reload failed", err, "path", m.editor.Path())
		var cmd tea.Cmd
		m, cmd = m.withMessage(statusbar.MessageError, "reload failed: "+err.Error())
		return m, tea.Batch(cmd, rearm)
	}

	// The cursor may sit past the end of the reloaded document
	m.session.ResetCaret(m.session.PrimaryCursor())
	m.view.FollowCursor()

	log.Info(log.CatWatch, "reloaded from disk", "path", m.editor.Path(), "lines", m.editor.LineCount())
	var cmd tea.Cmd
	m, cmd = m.withMessage(statusbar.MessageInfo, "file changed on disk; reloaded")
	return m, tea.Batch(cmd, rearm)
}

// withMessage sets the transient status message and schedules its expiry.
func (m Model) withMessage(kind statusbar.MessageKind, text string) (Model, tea.Cmd) {
	m.message = text
	m.messageKind = kind
	return m, clearMessageAfter(messageTTL)
}

func clearMessageAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearMessageMsg{} })
}

// listenWatcher waits for the next file watcher notification.
func (m Model) listenWatcher() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.watcherEvents
		if !ok {
			return nil
		}
		return fileEventMsg{event: ev}
	}
}

// listenLogs waits for the next log entry for the overlay.
func (m Model) listenLogs() tea.Cmd {
	if m.logListener == nil {
		return nil
	}
	return m.logListener.Listen()
}

// statusProps assembles the status bar contents for the current frame.
func (m Model) statusProps() statusbar.Props {
	dirty := m.editor.Dirty()

	// Diffing is too expensive to run on clean buffers every frame
	var added, removed int
	if dirty {
		added, removed = m.editor.DiffStats()
	}

	cur := m.session.PrimaryCursor()
	return statusbar.Props{
		Mode:        m.session.Mode(),
		Path:        m.editor.Path(),
		Dirty:       dirty,
		Added:       added,
		Removed:     removed,
		Pending:     m.session.PendingCount(),
		Row:         cur.Row,
		Col:         cur.Col,
		CaretCount:  len(m.session.Selections()),
		Message:     m.message,
		MessageKind: m.messageKind,
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	frame := m.view.View() + "\n" + statusbar.Render(m.width, m.statusProps())

	if m.help.Visible() {
		frame = m.help.Overlay(frame)
	}
	if m.debugMode && m.logOverlay.Visible() {
		frame = m.logOverlay.Overlay(frame)
	}

	// Resolve click zones against the final frame
	return zone.Scan(frame)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.logCancel != nil {
		m.logCancel()
	}

	// Record the cursor position before the store goes away
	m.saveSession()

	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}

	if m.db != nil {
		return m.db.Close()
	}

	return nil
}

// saveSession records the primary cursor position for the next visit.
func (m *Model) saveSession() {
	if m.store == nil {
		return
	}

	cur := m.session.PrimaryCursor()
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	err := m.store.Save(ctx, &sqlite.Session{
		Path: m.editor.Path(),
		Row:  cur.Row,
		Col:  cur.Col,
		Mode: m.session.Mode().String(),
	})
	if err != nil {
		log.Warn(log.CatStore, "session save failed", "error", err)
		return
	}
	log.Debug(log.CatStore, "session saved", "path", m.editor.Path(), "row", cur.Row, "col", cur.Col)
}
