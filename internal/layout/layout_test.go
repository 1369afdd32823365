package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/fold/internal/document"
	"github.com/zjrosen/fold/internal/editor"
)

func textParagraph(text string) document.Paragraph {
	return document.NewTextParagraph(text)
}

func unorderedList(items ...string) document.Paragraph {
	entries := make([][]document.Paragraph, len(items))
	for i, text := range items {
		entries[i] = []document.Paragraph{textParagraph(text)}
	}
	return document.NewParagraph(document.UnorderedList).WithEntries(entries...)
}

func docOf(paragraphs ...document.Paragraph) *document.Document {
	return document.New().WithParagraphs(paragraphs...)
}

func textPointer(path editor.ParagraphPath, offset int) editor.CursorPointer {
	return editor.CursorPointer{
		ParagraphPath: path,
		SpanPath:      editor.NewSpanPath(0),
		Offset:        offset,
		SegmentKind:   editor.SegmentText,
	}
}

func lineTexts(result *Result) []string {
	texts := make([]string, len(result.Lines))
	for i, line := range result.Lines {
		texts[i] = line.Text()
	}
	return texts
}

func positionOf(t *testing.T, result *Result, pointer editor.CursorPointer) Position {
	t.Helper()
	for _, pp := range result.Positions {
		if pp.Pointer.Equal(pointer) {
			return pp.Position
		}
	}
	t.Fatalf("no position tracked for %s", pointer)
	return Position{}
}

// ============================================================================
// Wrapping
// ============================================================================

func TestRenderSingleLine(t *testing.T) {
	result := RenderDocument(docOf(textParagraph("Hello")), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"Hello"}, lineTexts(result))
	assert.Equal(t, 1, result.TotalLines)
}

// TestRenderWrapAtExactWidth verifies an overwide word splits one column
// short of the wrap width and the cursor lands after the split.
func TestRenderWrapAtExactWidth(t *testing.T) {
	cursor := textPointer(editor.NewRootPath(0), 10)
	result := RenderDocument(docOf(textParagraph("abcdefghij z")), Options{
		WrapWidth: 10,
		Cursor:    &cursor,
	}, nil)

	assert.Equal(t, []string{"abcdefghi", "j z"}, lineTexts(result))
	require.NotNil(t, result.Cursor)
	assert.Equal(t, Position{Line: 1, Column: 1, ContentLine: 1, ContentColumn: 1}, *result.Cursor)
}

func TestRenderBlankLineBetweenParagraphs(t *testing.T) {
	result := RenderDocument(docOf(textParagraph("one"), textParagraph("two")), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"one", "", "two"}, lineTexts(result))
}

// TestRenderWrappedContinuationStart verifies a pointer at the head of a
// wrapped word resolves to the continuation line's first content column.
func TestRenderWrappedContinuationStart(t *testing.T) {
	result := RenderDocument(docOf(textParagraph("Alpha Beta")), Options{
		WrapWidth: 7,
		TrackAll:  true,
	}, nil)

	require.Equal(t, []string{"Alpha", "Beta"}, lineTexts(result))
	pos := positionOf(t, result, textPointer(editor.NewRootPath(0), 6))
	assert.Equal(t, Position{Line: 1, Column: 0, ContentLine: 1, ContentColumn: 0}, pos)
}

func TestRenderTrackAllCoversEveryOffset(t *testing.T) {
	result := RenderDocument(docOf(textParagraph("Hi")), Options{
		WrapWidth: 80,
		TrackAll:  true,
	}, nil)

	require.Len(t, result.Positions, 3)
	for offset := 0; offset <= 2; offset++ {
		pos := positionOf(t, result, textPointer(editor.NewRootPath(0), offset))
		assert.Equal(t, offset, pos.Column)
	}
}

func TestRenderLeftPadding(t *testing.T) {
	cursor := textPointer(editor.NewRootPath(0), 0)
	result := RenderDocument(docOf(textParagraph("Hello")), Options{
		WrapWidth:   80,
		LeftPadding: 2,
		Cursor:      &cursor,
	}, nil)

	assert.Equal(t, []string{"  Hello"}, lineTexts(result))
	require.NotNil(t, result.Cursor)
	assert.Equal(t, 2, result.Cursor.Column)
	assert.Equal(t, 0, result.Cursor.ContentColumn)
}

func TestRenderEmptyParagraph(t *testing.T) {
	result := RenderDocument(docOf(textParagraph("")), Options{
		WrapWidth: 80,
		TrackAll:  true,
	}, nil)

	assert.Equal(t, []string{""}, lineTexts(result))
	pos := positionOf(t, result, textPointer(editor.NewRootPath(0), 0))
	assert.Equal(t, Position{}, pos)
}

// ============================================================================
// Paragraph types
// ============================================================================

func TestRenderUnorderedList(t *testing.T) {
	result := RenderDocument(docOf(unorderedList("First item", "Second item")), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"• First item", "", "• Second item"}, lineTexts(result))
}

// TestRenderListEntryParagraphs verifies extra entry paragraphs hang under
// the marker indentation.
func TestRenderListEntryParagraphs(t *testing.T) {
	entry := []document.Paragraph{textParagraph("First paragraph."), textParagraph("Second paragraph.")}
	list := document.NewParagraph(document.UnorderedList).WithEntries(entry)
	result := RenderDocument(docOf(list), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"• First paragraph.", "", "  Second paragraph."}, lineTexts(result))
}

// TestRenderCursorIgnoresListChrome verifies content coordinates skip the
// bullet and the blank separator while visual coordinates include them.
func TestRenderCursorIgnoresListChrome(t *testing.T) {
	path := editor.NewRootPath(0)
	path.PushEntry(1, 0)
	cursor := textPointer(path, 0)

	result := RenderDocument(docOf(unorderedList("First item", "Second item")), Options{
		WrapWidth: 80,
		Cursor:    &cursor,
	}, nil)

	require.NotNil(t, result.Cursor)
	assert.Equal(t, Position{Line: 2, Column: 2, ContentLine: 1, ContentColumn: 0}, *result.Cursor)
}

func TestRenderOrderedList(t *testing.T) {
	entries := [][]document.Paragraph{
		{textParagraph("first")},
		{textParagraph("second")},
	}
	list := document.NewParagraph(document.OrderedList).WithEntries(entries...)
	result := RenderDocument(docOf(list), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"1. first", "", "2. second"}, lineTexts(result))
}

func TestRenderHeaderUnderline(t *testing.T) {
	header := document.NewParagraph(document.Header2).WithContent(document.NewTextSpan("Title"))
	result := RenderDocument(docOf(header), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"Title", "====="}, lineTexts(result))
	assert.True(t, result.Lines[0].Runs[0].Style.Bold)
}

func TestRenderHeader3Underline(t *testing.T) {
	header := document.NewParagraph(document.Header3).WithContent(document.NewTextSpan("Sub"))
	result := RenderDocument(docOf(header), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"Sub", "---"}, lineTexts(result))
}

// TestRenderCodeBlock verifies fence rows and that code lines never wrap.
func TestRenderCodeBlock(t *testing.T) {
	code := document.NewParagraph(document.CodeBlock).WithContent(document.NewTextSpan("let total = 0;"))
	result := RenderDocument(docOf(code), Options{WrapWidth: 10}, nil)

	assert.Equal(t, []string{"----------", "let total = 0;", "----------"}, lineTexts(result))
}

func TestRenderQuote(t *testing.T) {
	quote := document.NewParagraph(document.Quote).WithChildren(
		textParagraph("one"),
		textParagraph("two"),
	)
	result := RenderDocument(docOf(quote), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"| one", "| ", "| two"}, lineTexts(result))
}

func TestRenderChecklist(t *testing.T) {
	checklist := document.NewParagraph(document.Checklist).WithItems(
		document.NewChecklistItem(false).WithContent(document.NewTextSpan("write tests")),
		document.NewChecklistItem(true).WithContent(document.NewTextSpan("ship it")),
	)
	result := RenderDocument(docOf(checklist), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"[ ] write tests", "", "[✓] ship it"}, lineTexts(result))
}

func TestRenderNestedChecklist(t *testing.T) {
	checklist := document.NewParagraph(document.Checklist).WithItems(
		document.NewChecklistItem(false).
			WithContent(document.NewTextSpan("parent")).
			WithChildren(document.NewChecklistItem(false).WithContent(document.NewTextSpan("child"))),
	)
	result := RenderDocument(docOf(checklist), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"[ ] parent", "", "    [ ] child"}, lineTexts(result))
}

// ============================================================================
// Reveal codes
// ============================================================================

// TestRenderRevealCodes verifies style boundaries render as visible tags and
// their positions borrow the neighboring text content column.
func TestRenderRevealCodes(t *testing.T) {
	paragraph := document.NewParagraph(document.Text).WithContent(
		document.NewTextSpan("Hello "),
		document.NewStyledSpan("World", document.StyleBold),
		document.NewTextSpan("!"),
	)
	result := RenderDocument(docOf(paragraph), Options{
		WrapWidth:   80,
		RevealCodes: true,
		TrackAll:    true,
	}, nil)

	require.Equal(t, []string{"Hello [Bold>World<Bold]!"}, lineTexts(result))

	startTag := editor.CursorPointer{
		ParagraphPath: editor.NewRootPath(0),
		SpanPath:      editor.NewSpanPath(1),
		Offset:        0,
		SegmentKind:   editor.SegmentRevealStart,
		Style:         document.StyleBold,
	}
	pos := positionOf(t, result, startTag)
	assert.Equal(t, 6, pos.Column)
	assert.Equal(t, 6, pos.ContentColumn)

	pastStartTag := startTag
	pastStartTag.Offset = 1
	pos = positionOf(t, result, pastStartTag)
	assert.Equal(t, 12, pos.Column)
	assert.Equal(t, 6, pos.ContentColumn)

	endTag := startTag
	endTag.SegmentKind = editor.SegmentRevealEnd
	endTag.Offset = 1
	pos = positionOf(t, result, endTag)
	assert.Equal(t, 23, pos.Column)
	assert.Equal(t, 11, pos.ContentColumn)
}

func TestRenderWithoutRevealCodesHidesTags(t *testing.T) {
	paragraph := document.NewParagraph(document.Text).WithContent(
		document.NewTextSpan("Hello "),
		document.NewStyledSpan("World", document.StyleBold),
	)
	result := RenderDocument(docOf(paragraph), Options{WrapWidth: 80}, nil)

	assert.Equal(t, []string{"Hello World"}, lineTexts(result))
	require.Len(t, result.Lines[0].Runs, 2)
	assert.True(t, result.Lines[0].Runs[1].Style.Bold)
}

// ============================================================================
// Selection
// ============================================================================

func TestRenderSelectionHighlightsRange(t *testing.T) {
	sel := &Selection{
		Start: textPointer(editor.NewRootPath(0), 6),
		End:   textPointer(editor.NewRootPath(0), 11),
	}
	result := RenderDocument(docOf(textParagraph("Hello World")), Options{
		WrapWidth: 80,
		Selection: sel,
	}, nil)

	require.Len(t, result.Lines[0].Runs, 2)
	assert.Equal(t, "Hello ", result.Lines[0].Runs[0].Text)
	assert.False(t, result.Lines[0].Runs[0].Style.Selected)
	assert.Equal(t, "World", result.Lines[0].Runs[1].Text)
	assert.True(t, result.Lines[0].Runs[1].Style.Selected)
}

// TestRenderSelectionSpansParagraphs verifies paragraphs strictly between
// the endpoints render fully selected.
func TestRenderSelectionSpansParagraphs(t *testing.T) {
	sel := &Selection{
		Start: textPointer(editor.NewRootPath(0), 0),
		End:   textPointer(editor.NewRootPath(2), 3),
	}
	result := RenderDocument(docOf(
		textParagraph("one"),
		textParagraph("middle"),
		textParagraph("three"),
	), Options{WrapWidth: 80, Selection: sel}, nil)

	middle := result.Lines[2]
	require.NotEmpty(t, middle.Runs)
	assert.Equal(t, "middle", middle.Runs[0].Text)
	assert.True(t, middle.Runs[0].Style.Selected)
}
