// Package app contains the root application model.
package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/fold/internal/config"
	"github.com/zjrosen/fold/internal/docfile"
	"github.com/zjrosen/fold/internal/keys"
	"github.com/zjrosen/fold/internal/log"
	"github.com/zjrosen/fold/internal/sessions"
	sessiondomain "github.com/zjrosen/fold/internal/sessions/domain"
	"github.com/zjrosen/fold/internal/watcher"

	"github.com/zjrosen/fold/internal/display"
	"github.com/zjrosen/fold/internal/document"
	"github.com/zjrosen/fold/internal/editor"
	"github.com/zjrosen/fold/internal/ui/editorview"
	"github.com/zjrosen/fold/internal/ui/help"
	"github.com/zjrosen/fold/internal/ui/logoverlay"
	"github.com/zjrosen/fold/internal/ui/statusbar"
	"github.com/zjrosen/fold/internal/ui/toaster"
)

// toastDuration is how long notices stay on screen.
const toastDuration = 3 * time.Second

// fileChangedMsg reports an external modification of the opened file.
type fileChangedMsg struct {
	change watcher.Change
}

// Options configures the root model.
type Options struct {
	Config   config.Config
	FilePath string
	Document *document.Document

	// Sessions is optional; nil disables cursor persistence.
	Sessions *sessions.Service

	// DebugMode enables the log overlay.
	DebugMode bool
}

// Model is the root application state.
type Model struct {
	editorView editorview.Model
	statusBar  statusbar.Model
	help       help.Model
	logOverlay logoverlay.Model
	toaster    toaster.Model

	keys keys.KeyMap
	cfg  config.Config

	filePath string
	width    int
	height   int
	showHelp bool

	debugMode   bool
	logListener *log.LogListener

	// suppressNextChange swallows the watcher notification our own save
	// triggers, so the cursor survives a ctrl+s.
	suppressNextChange bool

	sessions *sessions.Service
	session  *sessiondomain.Session

	watcherHandle *watcher.Watcher
	watcherCh     <-chan watcher.Change
	listenerStop  context.CancelFunc
}

// New creates the root model around an already loaded document.
func New(opts Options) Model {
	cfg := opts.Config

	ed := editor.New(opts.Document)
	if cfg.Editor.RevealCodes {
		ed.SetRevealCodes(true)
	}

	m := Model{
		editorView: editorview.New(display.New(ed), cfg),
		statusBar:  statusbar.New(cfg.UI.ShowBreadcrumbs).SetFile(displayName(opts.FilePath)),
		help:       help.New(cfg.UI.MarkdownStyle),
		logOverlay: logoverlay.New(),
		toaster:    toaster.New(),
		keys:       keys.DefaultKeyMap(),
		cfg:        cfg,
		filePath:   opts.FilePath,
		debugMode:  opts.DebugMode,
		sessions:   opts.Sessions,
	}

	if opts.Sessions != nil && opts.FilePath != "" && cfg.Sessions.Restore {
		session, err := opts.Sessions.OpenForFile(context.Background(), opts.FilePath)
		if err != nil {
			log.Warn(log.CatSession, "Session open failed", "error", err.Error())
		} else {
			m.session = session
			if opts.Sessions.RestoreEditorState(session, ed) {
				log.Debug(log.CatSession, "Session restored", "file", opts.FilePath)
			}
		}
	}

	if opts.FilePath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.FilePath))
		if err != nil {
			log.Warn(log.CatWatcher, "Watcher init failed", "error", err.Error())
		} else if ch, err := w.Start(); err != nil {
			log.Warn(log.CatWatcher, "Watcher start failed", "error", err.Error())
			_ = w.Stop()
		} else {
			m.watcherHandle = w
			m.watcherCh = ch
		}
	}

	if opts.DebugMode {
		ctx, cancel := context.WithCancel(context.Background())
		m.logListener = log.NewListener(ctx)
		m.listenerStop = cancel
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcherCh != nil {
		cmds = append(cmds, m.waitForFileChange())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// waitForFileChange blocks on the watcher channel and re-arms after every
// notification.
func (m Model) waitForFileChange() tea.Cmd {
	ch := m.watcherCh
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{change: change}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.editorView = m.editorView.SetSize(msg.Width, m.editorHeight())
		m.statusBar = m.statusBar.SetSize(msg.Width)
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)

		return m.syncStatus(), nil

	case log.LogEvent:
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()
		return m, nil

	case fileChangedMsg:
		return m.handleFileChanged(msg.change)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.editorView, cmd = m.editorView.Update(msg)
		return m.syncStatus(), cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.persistSession()
		return m, tea.Quit
	}

	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	if m.debugMode && key.Matches(msg, m.keys.LogOverlay) {
		m.logOverlay.Toggle()
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.Reload):
		return m.reload(toaster.StyleInfo, "Reloaded from disk")

	case key.Matches(msg, m.keys.Escape):
		m.toaster = m.toaster.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.editorView, cmd = m.editorView.Update(msg)
	return m.syncStatus(), cmd
}

// handleFileChanged reacts to an external modification. A clean buffer with
// auto reload on is replaced silently; anything else asks the user.
func (m Model) handleFileChanged(change watcher.Change) (tea.Model, tea.Cmd) {
	rearm := m.waitForFileChange()

	if m.suppressNextChange {
		m.suppressNextChange = false
		return m, rearm
	}

	if change.Removed {
		m.toaster = m.toaster.Show("File removed on disk", toaster.StyleWarn)
		return m, tea.Batch(rearm, toaster.ScheduleDismiss(toastDuration))
	}

	if m.cfg.AutoReload && !m.editorView.Dirty() {
		log.Info(log.CatWatcher, "Auto reloading",
			"added", change.LinesAdded, "removed", change.LinesRemoved)
		model, cmd := m.reload(toaster.StyleInfo, "Reloaded after external change")
		return model, tea.Batch(rearm, cmd)
	}

	m.toaster = m.toaster.Show("File changed on disk (F5 to reload)", toaster.StyleWarn)
	return m, tea.Batch(rearm, toaster.ScheduleDismiss(toastDuration))
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.filePath == "" {
		m.toaster = m.toaster.Show("No file to save to", toaster.StyleWarn)
		return m, toaster.ScheduleDismiss(toastDuration)
	}

	if err := docfile.Save(m.filePath, m.editorView.Editor().Document()); err != nil {
		log.ErrorErr(log.CatUI, "Save failed", err, "path", m.filePath)
		m.toaster = m.toaster.Show("Save failed: "+err.Error(), toaster.StyleError)
		return m, toaster.ScheduleDismiss(toastDuration)
	}

	m.editorView = m.editorView.MarkSaved()
	m.suppressNextChange = true
	m.toaster = m.toaster.Show("Saved "+displayName(m.filePath), toaster.StyleSuccess)
	return m.syncStatus(), toaster.ScheduleDismiss(toastDuration)
}

func (m Model) reload(style toaster.Style, notice string) (Model, tea.Cmd) {
	if m.filePath == "" {
		return m, nil
	}

	doc, err := docfile.Load(m.filePath)
	if err != nil {
		log.ErrorErr(log.CatUI, "Reload failed", err, "path", m.filePath)
		m.toaster = m.toaster.Show("Reload failed: "+err.Error(), toaster.StyleError)
		return m, toaster.ScheduleDismiss(toastDuration)
	}

	m.editorView = m.editorView.ReplaceDocument(doc)
	m.toaster = m.toaster.Show(notice, style)
	return m.syncStatus(), toaster.ScheduleDismiss(toastDuration)
}

// syncStatus mirrors the editor state into the status bar.
func (m Model) syncStatus() Model {
	line, column := m.editorView.CursorPosition()
	m.statusBar = m.statusBar.
		SetCursor(line, column).
		SetDirty(m.editorView.Dirty()).
		SetBreadcrumbs(m.editorView.Breadcrumbs()).
		SetReveal(m.editorView.RevealCodes())
	return m
}

// editorHeight is the window height minus status bar chrome.
func (m Model) editorHeight() int {
	h := m.height
	if m.cfg.UI.ShowStatusBar {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h
}

// persistSession records the cursor position for the next open.
func (m Model) persistSession() {
	if m.sessions == nil || m.session == nil {
		return
	}
	if err := m.sessions.SaveEditorState(context.Background(), m.session, m.editorView.Editor()); err != nil {
		log.Warn(log.CatSession, "Session save failed", "error", err.Error())
	}
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.editorView.View()
	if m.cfg.UI.ShowStatusBar {
		view += "\n" + m.statusBar.View()
	}

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.persistSession()

	if m.listenerStop != nil {
		m.listenerStop()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}

func displayName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
