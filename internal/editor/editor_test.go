package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/fold/internal/document"
)

// ============================================================================
// Test helpers
// ============================================================================

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

func textPointer(path ParagraphPath, offset int) CursorPointer {
	return CursorPointer{
		ParagraphPath: path,
		SpanPath:      NewSpanPath(0),
		Offset:        offset,
		SegmentKind:   SegmentText,
	}
}

func rootText(t *testing.T, e *Editor, idx int) string {
	t.Helper()
	require.Less(t, idx, len(e.Document().Paragraphs))
	paragraph := e.Document().Paragraphs[idx]
	require.NotEmpty(t, paragraph.Content)
	return paragraph.Content[0].Text
}

// ============================================================================
// Typing
// ============================================================================

func TestInsertRune(t *testing.T) {
	e := New(docOf(textParagraph("Hello")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 2)))

	assert.True(t, e.InsertRune('X'))

	assert.Equal(t, "HeXllo", rootText(t, e, 0))
	assert.Equal(t, 3, e.CursorPointer().Offset)
}

func TestInsertRuneIntoEmptyDocument(t *testing.T) {
	e := New(document.New())

	assert.True(t, e.InsertRune('a'))

	assert.Equal(t, "a", rootText(t, e, 0))
	assert.Equal(t, 1, e.CursorPointer().Offset)
}

func TestInsertRuneMultibyte(t *testing.T) {
	e := New(docOf(textParagraph("ab")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 1)))

	assert.True(t, e.InsertRune('é'))

	assert.Equal(t, "aéb", rootText(t, e, 0))
	assert.Equal(t, 2, e.CursorPointer().Offset)
}

// ============================================================================
// Backspace
// ============================================================================

func TestBackspaceWithinSegment(t *testing.T) {
	e := New(docOf(textParagraph("Hello")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 3)))

	assert.True(t, e.Backspace())

	assert.Equal(t, "Helo", rootText(t, e, 0))
	assert.Equal(t, 2, e.CursorPointer().Offset)
}

// TestBackspaceAcrossParagraphBoundary verifies backspace at the start of a
// paragraph deletes the previous paragraph's last character.
func TestBackspaceAcrossParagraphBoundary(t *testing.T) {
	e := New(docOf(textParagraph("Hello"), textParagraph("World")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(1), 0)))

	assert.True(t, e.Backspace())

	assert.Equal(t, "Hell", rootText(t, e, 0))
	assert.Equal(t, 0, e.CursorPointer().ParagraphPath.RootIndex())
	assert.Equal(t, 4, e.CursorPointer().Offset)
}

func TestBackspaceAtDocumentStart(t *testing.T) {
	e := New(docOf(textParagraph("Hello")))

	assert.False(t, e.Backspace())
	assert.Equal(t, "Hello", rootText(t, e, 0))
}

// TestBackspaceRemovesEmptyParagraph verifies an empty paragraph collapses
// onto the previous one.
func TestBackspaceRemovesEmptyParagraph(t *testing.T) {
	e := New(docOf(textParagraph("Hello"), textParagraph(""), textParagraph("World")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(1), 0)))

	assert.True(t, e.Backspace())

	require.Len(t, e.Document().Paragraphs, 2)
	assert.Equal(t, "Hello", rootText(t, e, 0))
	assert.Equal(t, "World", rootText(t, e, 1))
	assert.Equal(t, 0, e.CursorPointer().ParagraphPath.RootIndex())
	assert.Equal(t, 5, e.CursorPointer().Offset)
}

// ============================================================================
// Delete
// ============================================================================

func TestDeleteWithinSegment(t *testing.T) {
	e := New(docOf(textParagraph("Hello")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 1)))

	assert.True(t, e.Delete())

	assert.Equal(t, "Hllo", rootText(t, e, 0))
	assert.Equal(t, 1, e.CursorPointer().Offset)
}

// TestDeleteMergesNextParagraph verifies delete at the end of a paragraph
// pulls the next paragraph's content up.
func TestDeleteMergesNextParagraph(t *testing.T) {
	e := New(docOf(textParagraph("Hello"), textParagraph("World")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 5)))

	assert.True(t, e.Delete())

	require.Len(t, e.Document().Paragraphs, 1)
	assert.Equal(t, "HelloWorld", rootText(t, e, 0))
	assert.Equal(t, 5, e.CursorPointer().Offset)
}

// TestDeleteMergesListEntry verifies delete before a list pulls the first
// entry's content up and drops the entry.
func TestDeleteMergesListEntry(t *testing.T) {
	e := New(docOf(textParagraph("before"), unorderedList("first", "second")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 6)))

	assert.True(t, e.Delete())

	require.Len(t, e.Document().Paragraphs, 2)
	assert.Equal(t, "beforefirst", rootText(t, e, 0))
	list := e.Document().Paragraphs[1]
	require.Equal(t, document.UnorderedList, list.Type)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "second", list.Entries[0][0].Content[0].Text)
}

func TestDeleteDoesNotMergeQuoteWholesale(t *testing.T) {
	quote := document.NewParagraph(document.Quote).WithChildren(
		textParagraph("nested one"),
		textParagraph("nested two"),
	)
	e := New(docOf(textParagraph("before"), quote))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 6)))

	// Only the quote's first leaf merges; the quote survives with the rest.
	assert.True(t, e.Delete())

	require.Len(t, e.Document().Paragraphs, 2)
	assert.Equal(t, "beforenested one", rootText(t, e, 0))
	require.Equal(t, document.Quote, e.Document().Paragraphs[1].Type)
	require.Len(t, e.Document().Paragraphs[1].Children, 1)
}

func TestDeleteAtDocumentEnd(t *testing.T) {
	e := New(docOf(textParagraph("Hello")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 5)))

	assert.False(t, e.Delete())
	assert.Equal(t, "Hello", rootText(t, e, 0))
}

// ============================================================================
// Word deletion
// ============================================================================

func TestDeleteWordBackward(t *testing.T) {
	e := New(docOf(textParagraph("foo bar baz")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 11)))

	assert.True(t, e.DeleteWordBackward())

	assert.Equal(t, "foo bar ", rootText(t, e, 0))
	assert.Equal(t, 8, e.CursorPointer().Offset)
}

func TestDeleteWordForward(t *testing.T) {
	e := New(docOf(textParagraph("foo bar baz")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 4)))

	assert.True(t, e.DeleteWordForward())

	assert.Equal(t, "foo baz", rootText(t, e, 0))
	assert.Equal(t, 4, e.CursorPointer().Offset)
}

// ============================================================================
// Paragraph break
// ============================================================================

func TestInsertParagraphBreak(t *testing.T) {
	e := New(docOf(textParagraph("HelloWorld")))
	require.True(t, e.MoveToPointer(textPointer(NewRootPath(0), 5)))

	assert.True(t, e.InsertParagraphBreak())

	require.Len(t, e.Document().Paragraphs, 2)
	assert.Equal(t, "Hello", rootText(t, e, 0))
	assert.Equal(t, "World", rootText(t, e, 1))
	assert.Equal(t, 1, e.CursorPointer().ParagraphPath.RootIndex())
	assert.Equal(t, 0, e.CursorPointer().Offset)
}

// TestInsertParagraphBreakInListEntry verifies the trailing half becomes a
// new entry.
func TestInsertParagraphBreakInListEntry(t *testing.T) {
	e := New(docOf(unorderedList("firstsecond")))
	path := NewRootPath(0)
	path.PushEntry(0, 0)
	require.True(t, e.MoveToPointer(textPointer(path, 5)))

	assert.True(t, e.InsertParagraphBreak())

	list := e.Document().Paragraphs[0]
	require.Len(t, list.Entries, 2)
	assert.Equal(t, "first", list.Entries[0][0].Content[0].Text)
	assert.Equal(t, "second", list.Entries[1][0].Content[0].Text)
}

// TestInsertParagraphBreakAsSiblingKeepsEntry verifies the sibling variant
// splits within the same entry.
func TestInsertParagraphBreakAsSiblingKeepsEntry(t *testing.T) {
	e := New(docOf(unorderedList("firstsecond")))
	path := NewRootPath(0)
	path.PushEntry(0, 0)
	require.True(t, e.MoveToPointer(textPointer(path, 5)))

	assert.True(t, e.InsertParagraphBreakAsSibling())

	list := e.Document().Paragraphs[0]
	require.Len(t, list.Entries, 1)
	require.Len(t, list.Entries[0], 2)
	assert.Equal(t, "first", list.Entries[0][0].Content[0].Text)
	assert.Equal(t, "second", list.Entries[0][1].Content[0].Text)
}

// TestChecklistSplitPreservesChecked verifies the new item inherits the
// checked state of the item it split from.
func TestChecklistSplitPreservesChecked(t *testing.T) {
	checklist := document.NewParagraph(document.Checklist).WithItems(
		document.NewChecklistItem(true).WithContent(document.NewTextSpan("Task one")),
	)
	e := New(docOf(checklist))
	path := NewRootPath(0)
	path.PushChecklistItem(0)
	require.True(t, e.MoveToPointer(textPointer(path, 4)))

	assert.True(t, e.InsertParagraphBreak())

	items := e.Document().Paragraphs[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "Task", items[0].Content[0].Text)
	assert.Equal(t, " one", items[1].Content[0].Text)
	assert.True(t, items[0].Checked)
	assert.True(t, items[1].Checked)
}

// ============================================================================
// Checklist state
// ============================================================================

func TestToggleChecklistItem(t *testing.T) {
	checklist := document.NewParagraph(document.Checklist).WithItems(
		document.NewChecklistItem(false).WithContent(document.NewTextSpan("Task")),
	)
	e := New(docOf(checklist))

	checked, ok := e.CurrentChecklistItemState()
	require.True(t, ok)
	assert.False(t, checked)

	assert.True(t, e.ToggleChecklistItem())
	checked, ok = e.CurrentChecklistItemState()
	require.True(t, ok)
	assert.True(t, checked)

	assert.True(t, e.SetCurrentChecklistItemChecked(false))
	checked, _ = e.CurrentChecklistItemState()
	assert.False(t, checked)
}

func TestChecklistStateOffChecklist(t *testing.T) {
	e := New(docOf(textParagraph("Hello")))

	_, ok := e.CurrentChecklistItemState()
	assert.False(t, ok)
	assert.False(t, e.ToggleChecklistItem())
}

// ============================================================================
// Reveal codes
// ============================================================================

func TestSetRevealCodesExposesBoundaries(t *testing.T) {
	paragraph := document.NewParagraph(document.Text).WithContent(
		document.NewTextSpan("Hello "),
		document.NewStyledSpan("bold", document.StyleBold),
		document.NewTextSpan(" end"),
	)
	e := New(docOf(paragraph))
	require.Len(t, e.Segments(), 3)

	e.SetRevealCodes(true)
	require.True(t, e.RevealCodes())

	segments := e.Segments()
	require.Len(t, segments, 5)
	assert.Equal(t, SegmentText, segments[0].Kind)
	assert.Equal(t, SegmentRevealStart, segments[1].Kind)
	assert.Equal(t, document.StyleBold, segments[1].Style)
	assert.Equal(t, SegmentText, segments[2].Kind)
	assert.Equal(t, SegmentRevealEnd, segments[3].Kind)
	assert.Equal(t, SegmentText, segments[4].Kind)

	e.SetRevealCodes(false)
	assert.Len(t, e.Segments(), 3)
}

// TestBackspaceRemovesRevealTag verifies deleting a boundary unstyles the
// span and merges the remnants.
func TestBackspaceRemovesRevealTag(t *testing.T) {
	paragraph := document.NewParagraph(document.Text).WithContent(
		document.NewTextSpan("Hello "),
		document.NewStyledSpan("bold", document.StyleBold),
	)
	e := New(docOf(paragraph))
	e.SetRevealCodes(true)

	// Park just past the reveal end tag.
	pointer := CursorPointer{
		ParagraphPath: NewRootPath(0),
		SpanPath:      NewSpanPath(1),
		Offset:        1,
		SegmentKind:   SegmentRevealEnd,
		Style:         document.StyleBold,
	}
	require.True(t, e.MoveToPointer(pointer))

	assert.True(t, e.Backspace())

	content := e.Document().Paragraphs[0].Content
	require.Len(t, content, 1)
	assert.Equal(t, "Hello bold", content[0].Text)
	assert.Equal(t, document.StyleNone, content[0].Style)
}
