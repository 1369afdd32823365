// Package editorview is the main editing surface: it renders the wrapped
// document, maps keybindings onto editor and display operations, and
// translates mouse clicks into cursor pointers.
package editorview

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/fold/internal/config"
	"github.com/zjrosen/fold/internal/display"
	"github.com/zjrosen/fold/internal/document"
	"github.com/zjrosen/fold/internal/editor"
	"github.com/zjrosen/fold/internal/keys"
	"github.com/zjrosen/fold/internal/layout"
	"github.com/zjrosen/fold/internal/log"
	"github.com/zjrosen/fold/internal/ui/styles"
)

// ZoneID is the bubblezone id of the editing surface.
const ZoneID = "editorview"

// wheelScrollLines is how far one wheel tick scrolls.
const wheelScrollLines = 3

// doubleClickTimeout bounds how far apart presses on the same cell still
// count as one multi-click.
const doubleClickTimeout = 400 * time.Millisecond

// typeCycle is the order ctrl+t walks plain paragraph types.
var typeCycle = []document.ParagraphType{
	document.Text,
	document.Header1,
	document.Header2,
	document.Header3,
	document.Quote,
	document.CodeBlock,
}

// Model holds the editing surface state. The selection anchor is the fixed
// end of an active selection; the cursor is the moving end. The drag anchor
// is where a left press landed, promoted to a selection anchor once the
// mouse moves.
type Model struct {
	display   *display.Display
	keys      keys.KeyMap
	cfg       config.Config
	width     int
	height    int
	scrollTop int
	dirty     bool

	selectionAnchor *editor.CursorPointer
	dragAnchor      *editor.CursorPointer

	lastClickTime time.Time
	lastClickX    int
	lastClickY    int
	clickCount    int
}

// New creates an editing surface over a display.
func New(d *display.Display, cfg config.Config) Model {
	return Model{
		display: d,
		keys:    keys.DefaultKeyMap(),
		cfg:     cfg,
	}
}

// Display exposes the wrapped display for programmatic focus changes.
func (m Model) Display() *display.Display {
	return m.display
}

// Editor exposes the wrapped editor.
func (m Model) Editor() *editor.Editor {
	return m.display.Editor()
}

// Dirty reports whether the document has unsaved changes.
func (m Model) Dirty() bool {
	return m.dirty
}

// MarkSaved clears the dirty flag after a successful save.
func (m Model) MarkSaved() Model {
	m.dirty = false
	return m
}

// MarkDirty sets the dirty flag, used when a mutation happens outside the
// view's own key handling.
func (m Model) MarkDirty() Model {
	m.dirty = true
	return m
}

// ReplaceDocument swaps in a new document tree, e.g. after an external
// reload, and resets the view state that depended on the old tree.
func (m Model) ReplaceDocument(doc *document.Document) Model {
	m.display.Editor().SetDocument(doc)
	m.display.ClearRenderCache()
	m.display.SetCursorFollowing(true)
	m.scrollTop = 0
	m.dirty = false
	m.selectionAnchor = nil
	m.dragAnchor = nil
	return m
}

// Selection returns the active pointer range ordered by document position,
// or nil when nothing is selected.
func (m Model) Selection() *layout.Selection {
	return m.currentSelection()
}

// prepareSelection pins the anchor at the cursor before an extending move,
// or drops it before a plain one.
func (m *Model) prepareSelection(extend bool) {
	if !extend {
		m.selectionAnchor = nil
		return
	}
	if m.selectionAnchor == nil {
		anchor := m.display.Editor().CursorPointer()
		m.selectionAnchor = &anchor
	}
}

// currentSelection orders the anchor and the cursor. An anchor the document
// no longer contains is dropped.
func (m *Model) currentSelection() *layout.Selection {
	if m.selectionAnchor == nil {
		return nil
	}
	ed := m.display.Editor()
	focus := ed.CursorPointer()
	cmp, ok := ed.ComparePointers(*m.selectionAnchor, focus)
	if !ok {
		m.selectionAnchor = nil
		return nil
	}
	switch {
	case cmp < 0:
		return &layout.Selection{Start: *m.selectionAnchor, End: focus}
	case cmp > 0:
		return &layout.Selection{Start: focus, End: *m.selectionAnchor}
	}
	return nil
}

// SetSize updates the surface dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.display.SetViewport(display.Viewport{X: 0, Y: 0, Width: width, Height: height})
	return m.syncScroll()
}

// CursorPosition returns the 1-based content line and column for the
// status bar.
func (m Model) CursorPosition() (line, column int) {
	pos, ok := m.display.LastCursorPosition()
	if !ok {
		return 1, 1
	}
	return pos.ContentLine + 1, pos.ContentColumn + 1
}

// Breadcrumbs returns the cursor's paragraph trail, outermost first.
func (m Model) Breadcrumbs() []string {
	crumbs, ok := m.display.Editor().CursorBreadcrumbs()
	if !ok {
		return nil
	}
	return crumbs
}

// RevealCodes reports whether reveal codes mode is on.
func (m Model) RevealCodes() bool {
	return m.display.Editor().RevealCodes()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key and mouse input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	ed := m.display.Editor()

	switch {
	// Movement
	case key.Matches(msg, m.keys.Up):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.MoveCursorVertical(-1)
	case key.Matches(msg, m.keys.Down):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.MoveCursorVertical(1)
	case key.Matches(msg, m.keys.Left):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.ClearPreferredColumn()
		ed.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.ClearPreferredColumn()
		ed.MoveRight()
	case key.Matches(msg, m.keys.WordLeft):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.ClearPreferredColumn()
		ed.MoveWordLeft()
	case key.Matches(msg, m.keys.WordRight):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.ClearPreferredColumn()
		ed.MoveWordRight()
	case key.Matches(msg, m.keys.LineStart):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.MoveToVisualLineStart()
	case key.Matches(msg, m.keys.LineEnd):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.MoveToVisualLineEnd()
	case key.Matches(msg, m.keys.PageUp):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.MovePage(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.prepareSelection(false)
		m.display.SetCursorFollowing(true)
		m.display.MovePage(1)

	// Selection
	case key.Matches(msg, m.keys.SelectUp):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.MoveCursorVertical(-1)
	case key.Matches(msg, m.keys.SelectDown):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.MoveCursorVertical(1)
	case key.Matches(msg, m.keys.SelectLeft):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.ClearPreferredColumn()
		ed.MoveLeft()
	case key.Matches(msg, m.keys.SelectRight):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.ClearPreferredColumn()
		ed.MoveRight()
	case key.Matches(msg, m.keys.SelectWordLeft):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.ClearPreferredColumn()
		ed.MoveWordLeft()
	case key.Matches(msg, m.keys.SelectWordRight):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.ClearPreferredColumn()
		ed.MoveWordRight()
	case key.Matches(msg, m.keys.SelectLineStart):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.MoveToVisualLineStart()
	case key.Matches(msg, m.keys.SelectLineEnd):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.MoveToVisualLineEnd()
	case key.Matches(msg, m.keys.SelectPageUp):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.MovePage(-1)
	case key.Matches(msg, m.keys.SelectPageDown):
		m.prepareSelection(true)
		m.display.SetCursorFollowing(true)
		m.display.MovePage(1)

	// Editing
	case key.Matches(msg, m.keys.Enter):
		m = m.mutate(ed.InsertParagraphBreak())
	case key.Matches(msg, m.keys.EnterSibling):
		m = m.mutate(ed.InsertParagraphBreakAsSibling())
	case key.Matches(msg, m.keys.Backspace):
		m = m.mutate(ed.Backspace())
	case key.Matches(msg, m.keys.Delete):
		m = m.mutate(ed.Delete())
	case key.Matches(msg, m.keys.DeleteWordBackward):
		m = m.mutate(ed.DeleteWordBackward())
	case key.Matches(msg, m.keys.DeleteWordForward):
		m = m.mutate(ed.DeleteWordForward())

	// Structure
	case key.Matches(msg, m.keys.IndentMore):
		m = m.mutate(ed.IndentCurrentParagraph())
	case key.Matches(msg, m.keys.IndentLess):
		m = m.mutate(ed.UnindentCurrentParagraph())
	case key.Matches(msg, m.keys.CycleType):
		m = m.mutate(m.cycleParagraphType())
	case key.Matches(msg, m.keys.ToggleChecked):
		m = m.mutate(ed.ToggleChecklistItem())

	// Inline styles
	case key.Matches(msg, m.keys.Bold):
		m = m.styleKey(document.StyleBold)
	case key.Matches(msg, m.keys.Italic):
		m = m.styleKey(document.StyleItalic)
	case key.Matches(msg, m.keys.Underline):
		m = m.styleKey(document.StyleUnderline)
	case key.Matches(msg, m.keys.Strike):
		m = m.styleKey(document.StyleStrike)
	case key.Matches(msg, m.keys.Highlight):
		m = m.styleKey(document.StyleHighlight)
	case key.Matches(msg, m.keys.Code):
		m = m.styleKey(document.StyleCode)
	case key.Matches(msg, m.keys.Link):
		m = m.styleKey(document.StyleLink)

	// View
	case key.Matches(msg, m.keys.RevealCodes):
		m.display.SetRevealCodes(!ed.RevealCodes())
		m.display.SetCursorFollowing(true)

	default:
		if msg.Type == tea.KeyRunes && !msg.Alt {
			m.prepareSelection(false)
			for _, ch := range msg.Runes {
				if ed.InsertRune(ch) {
					m.dirty = true
				}
			}
			m.display.SetCursorFollowing(true)
		} else if msg.Type == tea.KeySpace {
			m = m.mutate(ed.InsertRune(' '))
		}
	}

	return m.syncScroll(), nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.cfg.UI.MouseEnabled {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.display.SetCursorFollowing(false)
		m.scrollTop -= wheelScrollLines
	case msg.Button == tea.MouseButtonWheelDown:
		m.display.SetCursorFollowing(false)
		m.scrollTop += wheelScrollLines
	case msg.Action == tea.MouseActionRelease:
		m.dragAnchor = nil
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m = m.handleMousePress(msg)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionMotion:
		m = m.handleMouseDrag(msg)
	}

	return m.syncScroll(), nil
}

func (m Model) handleMousePress(msg tea.MouseMsg) Model {
	z := zone.Get(ZoneID)
	if z == nil || !z.InBounds(msg) {
		if !msg.Shift {
			m.selectionAnchor = nil
		}
		m.dragAnchor = nil
		return m
	}
	x, y := z.Pos(msg)
	pointer, ok := m.display.PointerFromMouse(x, y, m.scrollTop)
	if !ok {
		if !msg.Shift {
			m.selectionAnchor = nil
		}
		m.dragAnchor = nil
		return m
	}

	switch m.registerClick(x, y) {
	case 1:
		m.singleClick(pointer, msg.Shift)
	case 2:
		m.doubleClick(pointer)
	case 3:
		m.tripleClick(pointer, m.scrollTop+y)
	}
	log.Debug(log.CatDisplay, "mouse focus", "x", x, "y", y, "clicks", m.clickCount)
	return m
}

func (m Model) handleMouseDrag(msg tea.MouseMsg) Model {
	if m.dragAnchor == nil {
		return m
	}
	z := zone.Get(ZoneID)
	if z == nil || !z.InBounds(msg) {
		return m
	}
	x, y := z.Pos(msg)
	pointer, ok := m.display.PointerFromMouse(x, y, m.scrollTop)
	if !ok {
		return m
	}
	m.dragTo(pointer)
	return m
}

// registerClick counts successive presses on the same cell, capping at a
// triple click.
func (m *Model) registerClick(x, y int) int {
	now := time.Now()
	samePlace := x == m.lastClickX && y == m.lastClickY
	if samePlace && m.clickCount > 0 && now.Sub(m.lastClickTime) <= doubleClickTimeout {
		m.clickCount++
		if m.clickCount > 3 {
			m.clickCount = 3
		}
	} else {
		m.clickCount = 1
	}
	m.lastClickTime = now
	m.lastClickX, m.lastClickY = x, y
	return m.clickCount
}

// singleClick places the cursor. A shift press extends the selection from
// the old cursor; a plain press arms a drag from the clicked pointer.
func (m *Model) singleClick(pointer editor.CursorPointer, shift bool) {
	if shift {
		m.prepareSelection(true)
		m.dragAnchor = nil
	} else {
		m.selectionAnchor = nil
		anchor := pointer
		m.dragAnchor = &anchor
	}
	m.display.FocusPointer(pointer)
}

// doubleClick selects the word under the pointer.
func (m *Model) doubleClick(pointer editor.CursorPointer) {
	m.dragAnchor = nil
	from, to, ok := m.display.Editor().WordBoundariesAt(pointer)
	if !ok {
		m.selectionAnchor = nil
		m.display.FocusPointer(pointer)
		return
	}
	anchor := from
	m.selectionAnchor = &anchor
	m.display.FocusPointer(to)
}

// tripleClick selects the whole visual line under the pointer.
func (m *Model) tripleClick(pointer editor.CursorPointer, line int) {
	m.dragAnchor = nil
	first, last, ok := m.display.VisualLineBoundaries(line)
	if !ok {
		m.selectionAnchor = nil
		m.display.FocusPointer(pointer)
		return
	}
	anchor := first.Pointer
	m.selectionAnchor = &anchor
	m.display.FocusPointer(last.Pointer)
}

// dragTo grows the selection from the drag anchor to the pointer under the
// moving mouse.
func (m *Model) dragTo(pointer editor.CursorPointer) {
	if m.dragAnchor == nil {
		return
	}
	if m.selectionAnchor == nil {
		anchor := *m.dragAnchor
		m.selectionAnchor = &anchor
	}
	m.display.FocusPointer(pointer)
}

// mutate marks the document dirty when the operation changed it, collapses
// any selection, and keeps the viewport on the cursor.
func (m Model) mutate(changed bool) Model {
	m.selectionAnchor = nil
	m.dragAnchor = nil
	if changed {
		m.dirty = true
	}
	m.display.SetCursorFollowing(true)
	return m
}

// styleKey applies an inline style from a key chord and records the result.
func (m Model) styleKey(style document.InlineStyle) Model {
	if m.applyStyle(style) {
		m.dirty = true
	}
	m.display.SetCursorFollowing(true)
	return m
}

// applyStyle styles the active selection, or the word under the cursor when
// nothing is selected. Styling a selection collapses it and leaves the
// cursor at its end.
func (m *Model) applyStyle(style document.InlineStyle) bool {
	ed := m.display.Editor()
	if sel := m.currentSelection(); sel != nil {
		if !ed.ApplyInlineStyleToSelection(sel.Start, sel.End, style) {
			return false
		}
		m.selectionAnchor = nil
		m.display.ClearPreferredColumn()
		ed.MoveToPointer(sel.End)
		return true
	}
	from, to, ok := ed.WordBoundariesAt(ed.CursorPointer())
	if !ok {
		return false
	}
	return ed.ApplyInlineStyleToSelection(from, to, style)
}

// cycleParagraphType advances the current paragraph through the plain
// types. List and checklist paragraphs revert to text.
func (m Model) cycleParagraphType() bool {
	ed := m.display.Editor()
	if !ed.CanChangeParagraphType() {
		return false
	}
	current, ok := ed.CurrentParagraphType()
	if !ok {
		return false
	}
	next := typeCycle[0]
	for i, t := range typeCycle {
		if t == current {
			next = typeCycle[(i+1)%len(typeCycle)]
			break
		}
	}
	return ed.SetParagraphType(next)
}

// render lays out the document at the current geometry with the active
// selection, if any.
func (m Model) render() *layout.Result {
	pad := m.cfg.Editor.LeftPadding
	wrap := m.cfg.WrapWidthFor(m.width - pad)
	return m.display.Render(wrap, pad, m.currentSelection())
}

// syncScroll clamps the scroll offset and keeps the cursor line visible
// while following is on.
func (m Model) syncScroll() Model {
	if m.width <= 0 || m.height <= 0 {
		return m
	}
	result := m.render()

	maxTop := result.TotalLines - m.height
	if maxTop < 0 {
		maxTop = 0
	}
	if m.scrollTop > maxTop {
		m.scrollTop = maxTop
	}
	if m.scrollTop < 0 {
		m.scrollTop = 0
	}

	if m.display.CursorFollowing() && result.Cursor != nil {
		if result.Cursor.Line < m.scrollTop {
			m.scrollTop = result.Cursor.Line
		}
		if result.Cursor.Line >= m.scrollTop+m.height {
			m.scrollTop = result.Cursor.Line - m.height + 1
		}
	}
	return m
}

// View renders the visible slice of the document.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	result := m.render()

	end := m.scrollTop + m.height
	if end > len(result.Lines) {
		end = len(result.Lines)
	}
	start := m.scrollTop
	if start > end {
		start = end
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteByte('\n')
		}
		if result.Cursor != nil && result.Cursor.Line == i {
			b.WriteString(renderLineWithCursor(result.Lines[i], result.Cursor.Column))
		} else {
			b.WriteString(renderLine(result.Lines[i]))
		}
	}

	body := b.String()
	if rows := end - start; rows < m.height {
		body += strings.Repeat("\n", m.height-rows)
	}

	return zone.Mark(ZoneID, body)
}

// renderLine styles each run of a line.
func renderLine(line layout.Line) string {
	var b strings.Builder
	for _, run := range line.Runs {
		b.WriteString(styleFor(run.Style).Render(run.Text))
	}
	return b.String()
}

// renderLineWithCursor styles a line and inverts the cell at the cursor
// column. A cursor past the end of the text renders as a styled space.
func renderLineWithCursor(line layout.Line, col int) string {
	var b strings.Builder
	pos := 0
	placed := false
	for _, run := range line.Runs {
		w := runewidth.StringWidth(run.Text)
		if placed || col >= pos+w {
			b.WriteString(styleFor(run.Style).Render(run.Text))
			pos += w
			continue
		}

		before, cell, after := splitAtColumn(run.Text, col-pos)
		st := styleFor(run.Style)
		if before != "" {
			b.WriteString(st.Render(before))
		}
		if cell == "" {
			cell = " "
		}
		b.WriteString(styles.CursorStyle.Render(cell))
		if after != "" {
			b.WriteString(st.Render(after))
		}
		pos += w
		placed = true
	}
	if !placed {
		b.WriteString(styles.CursorStyle.Render(" "))
	}
	return b.String()
}

// splitAtColumn cuts text around the rune covering the given cell column.
func splitAtColumn(text string, col int) (before, cell, after string) {
	w := 0
	for i, r := range text {
		rw := runewidth.RuneWidth(r)
		if w+rw > col {
			size := utf8.RuneLen(r)
			return text[:i], text[i : i+size], text[i+size:]
		}
		w += rw
	}
	return text, "", ""
}

// styleFor maps the layout engine's semantic run flags onto the theme.
func styleFor(rs layout.RunStyle) lipgloss.Style {
	var st lipgloss.Style
	switch {
	case rs.Reveal:
		st = styles.RevealMarkerStyle
	case rs.Highlight:
		st = styles.HighlightStyle
	case rs.Link:
		st = styles.LinkStyle
	case rs.Dim:
		st = styles.CodeStyle
	default:
		st = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	}
	if rs.Bold {
		st = st.Bold(true)
	}
	if rs.Italic {
		st = st.Italic(true)
	}
	if rs.Underline {
		st = st.Underline(true)
	}
	if rs.Strike {
		st = st.Strikethrough(true)
	}
	if rs.Selected {
		st = st.Background(styles.SelectionBackgroundColor)
	}
	return st
}
