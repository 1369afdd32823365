package editorview

import (
	"fmt"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/fold/internal/config"
	"github.com/zjrosen/fold/internal/display"
	"github.com/zjrosen/fold/internal/document"
	"github.com/zjrosen/fold/internal/editor"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newTestView(paragraphs ...document.Paragraph) Model {
	if len(paragraphs) == 0 {
		paragraphs = []document.Paragraph{document.NewTextParagraph("hello world")}
	}
	doc := document.New().WithParagraphs(paragraphs...)
	d := display.New(editor.New(doc))
	m := New(d, config.Defaults())
	return m.SetSize(40, 10)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_StartsClean(t *testing.T) {
	m := newTestView()
	assert.False(t, m.Dirty())
}

func TestView_RendersDocumentText(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "hello world")
}

func TestView_FillsHeight(t *testing.T) {
	m := newTestView(document.NewTextParagraph("one line"))

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	assert.Len(t, lines, 10)
}

func TestView_EmptyBeforeSize(t *testing.T) {
	doc := document.New().WithParagraphs(document.NewTextParagraph("x"))
	m := New(display.New(editor.New(doc)), config.Defaults())

	assert.Empty(t, m.View())
}

func TestUpdate_InsertRuneMarksDirty(t *testing.T) {
	m := newTestView()

	m, _ = m.Update(keyRunes("x"))

	assert.True(t, m.Dirty())
	assert.Contains(t, ansi.Strip(m.View()), "x")
}

func TestUpdate_SpaceInserts(t *testing.T) {
	m := newTestView(document.NewTextParagraph(""))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})

	assert.True(t, m.Dirty())
}

func TestUpdate_MovementStaysClean(t *testing.T) {
	m := newTestView()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.False(t, m.Dirty())
}

func TestUpdate_BackspaceMarksDirty(t *testing.T) {
	m := newTestView()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.True(t, m.Dirty())
}

func TestUpdate_BackspaceAtDocumentStartStaysClean(t *testing.T) {
	m := newTestView()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.False(t, m.Dirty())
}

func TestUpdate_EnterSplitsParagraph(t *testing.T) {
	m := newTestView(document.NewTextParagraph("ab"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.Dirty())
	assert.Len(t, m.Editor().Document().Paragraphs, 2)
}

func TestUpdate_BoldStylesWordUnderCursor(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})

	require.True(t, m.Dirty())
	var styled *document.Span
	for i, span := range m.Editor().Document().Paragraphs[0].Content {
		if span.Style == document.StyleBold {
			styled = &m.Editor().Document().Paragraphs[0].Content[i]
		}
	}
	require.NotNil(t, styled, "expected a bold span after ctrl+b")
	assert.Equal(t, "hello", styled.Text)
}

func TestUpdate_CycleParagraphType(t *testing.T) {
	m := newTestView(document.NewTextParagraph("title"))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	got, ok := m.Editor().CurrentParagraphType()
	require.True(t, ok)
	assert.Equal(t, document.Header1, got)
	assert.True(t, m.Dirty())
}

func TestUpdate_CycleParagraphTypeWrapsAround(t *testing.T) {
	m := newTestView(document.NewParagraph(document.CodeBlock).WithContent(document.NewTextSpan("code")))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	got, ok := m.Editor().CurrentParagraphType()
	require.True(t, ok)
	assert.Equal(t, document.Text, got)
}

func TestUpdate_RevealCodesToggle(t *testing.T) {
	m := newTestView()
	require.False(t, m.RevealCodes())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.True(t, m.RevealCodes())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.False(t, m.RevealCodes())
}

func longDocument(n int) []document.Paragraph {
	paragraphs := make([]document.Paragraph, 0, n)
	for i := 0; i < n; i++ {
		paragraphs = append(paragraphs, document.NewTextParagraph(fmt.Sprintf("paragraph %03d", i)))
	}
	return paragraphs
}

func TestScroll_FollowsCursorPastBottom(t *testing.T) {
	m := newTestView(longDocument(30)...)
	m = m.SetSize(40, 5)

	for i := 0; i < 20; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Greater(t, m.scrollTop, 0)
	assert.Contains(t, ansi.Strip(m.View()), "paragraph 020")
}

func TestMouse_WheelScrolls(t *testing.T) {
	m := newTestView(longDocument(30)...)
	m = m.SetSize(40, 5)

	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})

	assert.Equal(t, wheelScrollLines, m.scrollTop)
	assert.False(t, m.Display().CursorFollowing())
}

func TestMouse_WheelClampsAtTop(t *testing.T) {
	m := newTestView(longDocument(30)...)
	m = m.SetSize(40, 5)

	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})

	assert.Equal(t, 0, m.scrollTop)
}

func TestMouse_IgnoredWhenDisabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.UI.MouseEnabled = false
	doc := document.New().WithParagraphs(longDocument(30)...)
	m := New(display.New(editor.New(doc)), cfg).SetSize(40, 5)

	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})

	assert.Equal(t, 0, m.scrollTop)
}

func TestCursorPosition_StartsAtOrigin(t *testing.T) {
	m := newTestView()

	line, column := m.CursorPosition()
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, column)
}

func TestCursorPosition_TracksMovement(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello"))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	_, column := m.CursorPosition()
	assert.Equal(t, 2, column)
}

func TestBreadcrumbs_NamesCurrentParagraph(t *testing.T) {
	m := newTestView(document.NewParagraph(document.Header1).WithContent(document.NewTextSpan("Title")))

	crumbs := m.Breadcrumbs()
	require.NotEmpty(t, crumbs)
}

func TestMarkSaved_ClearsDirty(t *testing.T) {
	m := newTestView()
	m, _ = m.Update(keyRunes("x"))
	require.True(t, m.Dirty())

	m = m.MarkSaved()
	assert.False(t, m.Dirty())
}

func TestReplaceDocument_ResetsState(t *testing.T) {
	m := newTestView(longDocument(30)...)
	m = m.SetSize(40, 5)
	m, _ = m.Update(keyRunes("x"))
	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})

	m = m.ReplaceDocument(document.New().WithParagraphs(document.NewTextParagraph("fresh")))

	assert.False(t, m.Dirty())
	assert.Equal(t, 0, m.scrollTop)
	assert.Contains(t, ansi.Strip(m.View()), "fresh")
}

func textPointerAt(offset int) editor.CursorPointer {
	return editor.CursorPointer{
		ParagraphPath: editor.NewRootPath(0),
		SpanPath:      editor.NewSpanPath(0),
		Offset:        offset,
		SegmentKind:   editor.SegmentText,
	}
}

func TestSelection_ShiftRightExtends(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))

	for i := 0; i < 3; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	}

	sel := m.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, 0, sel.Start.Offset)
	assert.Equal(t, 3, sel.End.Offset)
	assert.False(t, m.Dirty())
}

func TestSelection_PlainMovementCollapses(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	require.NotNil(t, m.Selection())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	assert.Nil(t, m.Selection())
}

func TestSelection_TypingCollapses(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	require.NotNil(t, m.Selection())

	m, _ = m.Update(keyRunes("x"))

	assert.Nil(t, m.Selection())
	assert.True(t, m.Dirty())
}

func TestSelection_ShiftLeftAfterShiftRightCollapses(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})

	// Anchor and cursor coincide again, so no selection remains.
	assert.Nil(t, m.Selection())
}

func TestSelection_ShiftDownSpansParagraphs(t *testing.T) {
	m := newTestView(
		document.NewTextParagraph("first"),
		document.NewTextParagraph("second"),
	)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})

	sel := m.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, 0, sel.Start.ParagraphPath.RootIndex())
	assert.Equal(t, 1, sel.End.ParagraphPath.RootIndex())
}

func TestSelection_HighlightsRenderedRuns(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))

	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	}

	var selected strings.Builder
	for _, line := range m.render().Lines {
		for _, run := range line.Runs {
			if run.Style.Selected {
				selected.WriteString(run.Text)
			}
		}
	}
	assert.Equal(t, "hello", selected.String())
}

func TestSelection_BoldAppliesToSelection(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))
	for i := 0; i < 3; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})

	require.True(t, m.Dirty())
	assert.Nil(t, m.Selection())
	var styled *document.Span
	for i, span := range m.Editor().Document().Paragraphs[0].Content {
		if span.Style == document.StyleBold {
			styled = &m.Editor().Document().Paragraphs[0].Content[i]
		}
	}
	require.NotNil(t, styled, "expected a bold span after ctrl+b")
	assert.Equal(t, "hel", styled.Text)
}

func TestMouse_DoubleClickSelectsWord(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))

	m.doubleClick(textPointerAt(7))

	sel := m.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, 6, sel.Start.Offset)
	assert.Equal(t, 11, sel.End.Offset)
	assert.Equal(t, 11, m.Editor().CursorPointer().Offset)
}

func TestMouse_TripleClickSelectsVisualLine(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))

	m.tripleClick(textPointerAt(7), 0)

	sel := m.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, 0, sel.Start.Offset)
	assert.Equal(t, 11, sel.End.Offset)
}

func TestMouse_DragExtendsSelection(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))

	m.singleClick(textPointerAt(2), false)
	require.Nil(t, m.Selection())

	m.dragTo(textPointerAt(8))

	sel := m.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, 2, sel.Start.Offset)
	assert.Equal(t, 8, sel.End.Offset)
}

func TestMouse_ShiftClickExtendsFromCursor(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))

	m.singleClick(textPointerAt(5), true)

	sel := m.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, 0, sel.Start.Offset)
	assert.Equal(t, 5, sel.End.Offset)
}

func TestMouse_ReleaseEndsDrag(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))
	m.singleClick(textPointerAt(2), false)
	require.NotNil(t, m.dragAnchor)

	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	assert.Nil(t, m.dragAnchor)
}

func TestMouse_PressOutsideViewCollapsesSelection(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hello world"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	require.NotNil(t, m.Selection())

	// No zone scan has placed the editing surface, so the press misses it.
	m, _ = m.Update(tea.MouseMsg{X: 5, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	assert.Nil(t, m.Selection())
}

func TestRegisterClick_CountsMultiClicks(t *testing.T) {
	m := newTestView()

	assert.Equal(t, 1, m.registerClick(3, 1))
	assert.Equal(t, 2, m.registerClick(3, 1))
	assert.Equal(t, 3, m.registerClick(3, 1))

	// A press on a different cell restarts the count.
	assert.Equal(t, 1, m.registerClick(4, 1))
}

func TestView_RendersCursorCell(t *testing.T) {
	m := newTestView(document.NewTextParagraph("hi"))

	// The cursor cell carries its own escape sequence, so the raw frame is
	// longer than the stripped text alone would produce.
	raw := m.View()
	assert.Contains(t, ansi.Strip(raw), "hi")
	assert.Contains(t, raw, "\x1b[")
}
