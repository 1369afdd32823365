// Package layout turns a document tree into wrapped visual lines and maps
// cursor pointers to visual positions. It is terminal-agnostic: output is
// styled runs, columns, and line numbers, never escape sequences.
package layout

import (
	"fmt"
	"strings"

	"github.com/zjrosen/fold/internal/document"
	"github.com/zjrosen/fold/internal/editor"
)

// codeWrapWidth effectively disables wrapping inside code blocks.
const codeWrapWidth = 1 << 30

// Position is a resolved visual location. Line and Column include layout
// chrome (prefixes, padding, reveal tags); ContentLine and ContentColumn
// count only lines and columns that carry words, so the status bar can show
// stable coordinates that ignore indentation.
type Position struct {
	Line          int
	Column        int
	ContentLine   int
	ContentColumn int
}

// PointerPosition pairs a tracked cursor pointer with where it landed.
type PointerPosition struct {
	Pointer  editor.CursorPointer
	Position Position
}

// Selection is an ordered pointer range; Start must not come after End in
// document order.
type Selection struct {
	Start editor.CursorPointer
	End   editor.CursorPointer
}

// Options configures one document render.
type Options struct {
	WrapWidth   int
	LeftPadding int
	RevealCodes bool
	// Cursor, when set, is resolved to Result.Cursor.
	Cursor *editor.CursorPointer
	// Selection renders the covered range with the Selected flag and
	// bypasses the cache for the paragraphs it touches.
	Selection *Selection
	// TrackAll resolves a position for every addressable pointer.
	TrackAll bool
}

// Result is a rendered document.
type Result struct {
	Lines      []Line
	TotalLines int
	Cursor     *Position
	Positions  []PointerPosition
}

type relEvent struct {
	line  int
	event locatedEvent
}

// paragraphLayout is one top-level paragraph's render, with line-relative
// coordinates so it can be cached and stitched at any vertical offset.
type paragraphLayout struct {
	lines  []Line
	flags  []bool
	events []relEvent
}

type paragraphRenderer struct {
	wrapWidth       int
	wrapLimit       int
	revealCodes     bool
	track           *tracker
	selectionActive bool
	out             paragraphLayout
}

func newParagraphRenderer(wrapWidth int, revealCodes bool, track *tracker, selectionActive bool) *paragraphRenderer {
	limit := wrapWidth - 1
	if limit < 1 {
		limit = 1
	}
	return &paragraphRenderer{
		wrapWidth:       wrapWidth,
		wrapLimit:       limit,
		revealCodes:     revealCodes,
		track:           track,
		selectionActive: selectionActive,
	}
}

func (r *paragraphRenderer) consume(built []builtLine) {
	for _, line := range built {
		index := len(r.out.lines)
		r.out.lines = append(r.out.lines, line.line)
		r.out.flags = append(r.out.flags, line.hasWord)
		for _, event := range line.events {
			r.out.events = append(r.out.events, relEvent{line: index, event: event})
		}
	}
}

func (r *paragraphRenderer) pushPlainLine(text string) {
	r.out.lines = append(r.out.lines, Line{Runs: []Run{{Text: text}}})
	r.out.flags = append(r.out.flags, false)
}

func (r *paragraphRenderer) pushBlankLine() {
	r.out.lines = append(r.out.lines, Line{Runs: []Run{{}}})
	r.out.flags = append(r.out.flags, false)
}

// renderText wraps a span forest at the given width and appends the lines.
func (r *paragraphRenderer) renderText(spans []document.Span, parPath editor.ParagraphPath, width int, firstPrefix, contPrefix string, base RunStyle) {
	var items []fragmentItem
	for index := range spans {
		spanPath := editor.NewSpanPath(index)
		collectSpanFragments(&spans[index], base, parPath, &spanPath, r.revealCodes, r.track, &items)
	}
	items = trimLayoutFragments(items)

	built, active := wrapFragments(items, width, firstPrefix, contPrefix, RunStyle{}, r.selectionActive)
	r.selectionActive = active
	r.consume(built)
}

func (r *paragraphRenderer) renderParagraph(par *document.Paragraph, path *editor.ParagraphPath, prefix string) {
	switch par.Type {
	case document.Header1:
		start := len(r.out.lines)
		r.renderText(par.Content, *path, r.wrapLimit, prefix, prefix, RunStyle{Bold: true})
		// Only the first line of a big header renders bold.
		for i := start + 1; i < len(r.out.lines); i++ {
			for ri := range r.out.lines[i].Runs {
				r.out.lines[i].Runs[ri].Style.Bold = false
			}
		}
	case document.Header2:
		r.renderHeaderWithUnderline(par, path, prefix, '=')
	case document.Header3:
		r.renderHeaderWithUnderline(par, path, prefix, '-')
	case document.CodeBlock:
		fenceWidth := r.wrapWidth - visibleWidth(prefix)
		if fenceWidth < 4 {
			fenceWidth = 4
		}
		fence := prefix + strings.Repeat("-", fenceWidth)
		r.pushPlainLine(fence)
		r.renderText(par.Content, *path, codeWrapWidth, prefix, prefix, RunStyle{Dim: true})
		r.pushPlainLine(fence)
	case document.Quote:
		r.renderQuote(par, path, prefix)
	case document.UnorderedList:
		for entryIndex := range par.Entries {
			if entryIndex > 0 {
				r.pushBlankLine()
			}
			r.renderListEntry(par.Entries[entryIndex], path, entryIndex, prefix+"• ", prefix+"  ")
		}
	case document.OrderedList:
		for entryIndex := range par.Entries {
			if entryIndex > 0 {
				r.pushBlankLine()
			}
			marker := fmt.Sprintf("%d. ", entryIndex+1)
			continuation := prefix + strings.Repeat(" ", len(marker))
			r.renderListEntry(par.Entries[entryIndex], path, entryIndex, prefix+marker, continuation)
		}
	case document.Checklist:
		r.renderChecklistItems(par.Items, path, nil, prefix)
	default:
		r.renderText(par.Content, *path, r.wrapLimit, prefix, prefix, RunStyle{})
	}
}

func (r *paragraphRenderer) renderHeaderWithUnderline(par *document.Paragraph, path *editor.ParagraphPath, prefix string, ch rune) {
	r.renderText(par.Content, *path, r.wrapLimit, prefix, prefix, RunStyle{Bold: true})

	width := 1
	if len(r.out.lines) > 0 {
		last := visibleWidth(r.out.lines[len(r.out.lines)-1].Text()) - visibleWidth(prefix)
		if last > width {
			width = last
		}
	}
	r.pushPlainLine(prefix + strings.Repeat(string(ch), width))
}

func (r *paragraphRenderer) renderQuote(par *document.Paragraph, path *editor.ParagraphPath, prefix string) {
	inner := prefix + "| "
	hasContent := len(par.Content) > 0

	if hasContent {
		r.renderText(par.Content, *path, r.wrapLimit, inner, inner, RunStyle{})
	}
	for childIndex := range par.Children {
		if childIndex > 0 || hasContent {
			r.pushPlainLine(inner)
		}
		path.PushChild(childIndex)
		r.renderParagraph(&par.Children[childIndex], path, inner)
		path.Pop()
	}
}

// renderListEntry lays out one list entry: the first text paragraph shares
// the marker line, everything else hangs under the continuation prefix.
func (r *paragraphRenderer) renderListEntry(entry []document.Paragraph, path *editor.ParagraphPath, entryIndex int, firstPrefix, contPrefix string) {
	if len(entry) == 0 {
		r.pushPlainLine(firstPrefix)
		return
	}
	for paragraphIndex := range entry {
		path.PushEntry(entryIndex, paragraphIndex)
		par := &entry[paragraphIndex]
		switch {
		case paragraphIndex == 0 && par.Type == document.Text:
			r.renderText(par.Content, *path, r.wrapLimit, firstPrefix, contPrefix, RunStyle{})
		case paragraphIndex == 0:
			r.pushPlainLine(firstPrefix)
			r.renderParagraph(par, path, contPrefix)
		default:
			r.pushBlankLine()
			r.renderParagraph(par, path, contPrefix)
		}
		path.Pop()
	}
}

func (r *paragraphRenderer) renderChecklistItems(items []document.ChecklistItem, path *editor.ParagraphPath, chain []int, prefix string) {
	for itemIndex := range items {
		if itemIndex > 0 {
			r.pushBlankLine()
		}
		item := &items[itemIndex]
		indices := append(append([]int(nil), chain...), itemIndex)

		marker := "[ ] "
		if item.Checked {
			marker = "[✓] "
		}
		path.PushChecklistItem(indices...)
		r.renderText(item.Content, *path, r.wrapLimit, prefix+marker, prefix+"    ", RunStyle{})
		path.Pop()

		if len(item.Children) > 0 {
			r.pushBlankLine()
			r.renderChecklistItems(item.Children, path, indices, prefix+"    ")
		}
	}
}

// RenderDocument lays out the whole document. When cache is non-nil,
// unchanged paragraphs reuse their previous layout; the paragraph holding
// the cursor and any paragraph touched by the selection always re-render.
func RenderDocument(doc *document.Document, opts Options, cache *Cache) *Result {
	cursorRoot := -1
	if opts.Cursor != nil {
		cursorRoot = opts.Cursor.ParagraphPath.RootIndex()
	}
	selStartRoot, selEndRoot := -1, -1
	if opts.Selection != nil {
		selStartRoot = opts.Selection.Start.ParagraphPath.RootIndex()
		selEndRoot = opts.Selection.End.ParagraphPath.RootIndex()
	}

	trackAll := opts.TrackAll || cache != nil

	layouts := make([]*paragraphLayout, len(doc.Paragraphs))
	for idx := range doc.Paragraphs {
		par := &doc.Paragraphs[idx]
		selectionTouches := opts.Selection != nil && idx >= selStartRoot && idx <= selEndRoot

		var hash uint64
		if cache != nil {
			hash = paragraphHash(par)
		}
		if cache != nil {
			if !selectionTouches && idx != cursorRoot {
				if entry, ok := cache.lookup(idx, hash, opts.WrapWidth, opts.LeftPadding); ok {
					layouts[idx] = entry
					continue
				}
			}
			cache.metrics.Misses++
		}

		track := &tracker{trackAll: trackAll}
		if cache == nil {
			track.cursor = opts.Cursor
		}
		initialActive := false
		if opts.Selection != nil && selectionTouches {
			track.selStart = &opts.Selection.Start
			track.selEnd = &opts.Selection.End
			initialActive = idx > selStartRoot
		}

		renderer := newParagraphRenderer(opts.WrapWidth, opts.RevealCodes, track, initialActive)
		path := editor.NewRootPath(idx)
		renderer.renderParagraph(par, &path, "")
		layouts[idx] = &renderer.out

		if cache != nil && !selectionTouches {
			cache.store(idx, hash, opts.WrapWidth, opts.LeftPadding, &renderer.out)
		}
	}

	return stitch(layouts, opts, cache)
}

// stitch concatenates paragraph layouts with blank separators, applies left
// padding, numbers content lines, and resolves tracked positions.
func stitch(layouts []*paragraphLayout, opts Options, cache *Cache) *Result {
	result := &Result{}
	padding := strings.Repeat(" ", opts.LeftPadding)

	var flags []bool
	for idx, layout := range layouts {
		if idx > 0 {
			result.Lines = append(result.Lines, Line{Runs: []Run{{}}})
			flags = append(flags, false)
		}
		base := len(result.Lines)
		for i, line := range layout.lines {
			if opts.LeftPadding > 0 && lineHasText(line) {
				runs := make([]Run, 0, len(line.Runs)+1)
				runs = append(runs, Run{Text: padding})
				runs = append(runs, line.Runs...)
				line = Line{Runs: runs}
			}
			result.Lines = append(result.Lines, line)
			flags = append(flags, layout.flags[i])
		}
		for _, rel := range layout.events {
			position := Position{
				Line:          base + rel.line,
				Column:        rel.event.column + opts.LeftPadding,
				ContentColumn: rel.event.contentColumn,
			}
			if rel.event.kind == eventCursor {
				cursor := position
				result.Cursor = &cursor
				continue
			}
			result.Positions = append(result.Positions, PointerPosition{
				Pointer:  rel.event.pointer,
				Position: position,
			})
		}
		if cache != nil {
			cache.setLineRange(idx, base, len(layout.lines))
		}
	}

	if len(result.Lines) == 0 {
		result.Lines = []Line{{Runs: []Run{{}}}}
		flags = []bool{false}
	}
	result.TotalLines = len(result.Lines)

	// Content line numbers: each position's content line is the number of
	// word-bearing lines above its line.
	prefixCounts := make([]int, len(result.Lines))
	count := 0
	for i, hasWord := range flags {
		prefixCounts[i] = count
		if hasWord {
			count++
		}
	}
	for i := range result.Positions {
		result.Positions[i].Position.ContentLine = prefixCounts[result.Positions[i].Position.Line]
	}
	if result.Cursor != nil {
		result.Cursor.ContentLine = prefixCounts[result.Cursor.Line]
	}

	adjustRevealContentColumns(result.Positions)

	if result.Cursor == nil && opts.Cursor != nil {
		for i := range result.Positions {
			if result.Positions[i].Pointer.Equal(*opts.Cursor) {
				cursor := result.Positions[i].Position
				result.Cursor = &cursor
				break
			}
		}
	}
	if !opts.TrackAll {
		result.Positions = nil
	}
	return result
}

// adjustRevealContentColumns gives reveal boundary positions the content
// column of the nearest text position on the same content line, so cursor
// coordinates stay stable while stepping through tags.
func adjustRevealContentColumns(positions []PointerPosition) {
	for i := range positions {
		if positions[i].Pointer.SegmentKind == editor.SegmentText {
			continue
		}
		line := positions[i].Position.ContentLine
		found := false
		for j := i + 1; j < len(positions) && !found; j++ {
			if positions[j].Pointer.SegmentKind == editor.SegmentText && positions[j].Position.ContentLine == line {
				positions[i].Position.ContentColumn = positions[j].Position.ContentColumn
				found = true
			}
		}
		for j := i - 1; j >= 0 && !found; j-- {
			if positions[j].Pointer.SegmentKind == editor.SegmentText && positions[j].Position.ContentLine == line {
				positions[i].Position.ContentColumn = positions[j].Position.ContentColumn
				found = true
			}
		}
	}
}

func lineHasText(line Line) bool {
	for _, run := range line.Runs {
		if run.Text != "" {
			return true
		}
	}
	return false
}
