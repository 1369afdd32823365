package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/fold/internal/document"
	"github.com/zjrosen/fold/internal/editor"
)

// RunStyle is the semantic style of one rendered run. The terminal layer
// maps these flags onto its own color scheme; the layout engine never deals
// in escape sequences.
type RunStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Highlight bool
	Dim       bool
	Link      bool
	Reveal    bool
	Selected  bool
}

func (s RunStyle) withInline(style document.InlineStyle) RunStyle {
	switch style {
	case document.StyleBold:
		s.Bold = true
	case document.StyleItalic:
		s.Italic = true
	case document.StyleHighlight:
		s.Highlight = true
	case document.StyleUnderline:
		s.Underline = true
	case document.StyleStrike:
		s.Strike = true
	case document.StyleLink:
		s.Underline = true
		s.Link = true
	case document.StyleCode:
		s.Dim = true
	}
	return s
}

func (s RunStyle) selected() RunStyle {
	s.Selected = true
	return s
}

type fragmentKind int

const (
	fragmentWord fragmentKind = iota
	fragmentWhitespace
	fragmentRevealTag
)

type revealKind int

const (
	revealNone revealKind = iota
	revealStart
	revealEnd
)

type eventKind int

const (
	eventTracked eventKind = iota
	eventCursor
	eventSelectionStart
	eventSelectionEnd
)

// textEvent is a position request anchored inside a fragment at a display
// width offset. Reveal tag events carry explicit hints because the tag text
// has no corresponding logical characters.
type textEvent struct {
	offset        int
	contentOffset int
	hasHints      bool
	hintOffset    int
	hintContent   int
	kind          eventKind
	pointer       editor.CursorPointer
}

type fragment struct {
	text         string
	style        RunStyle
	kind         fragmentKind
	width        int
	contentWidth int
	events       []textEvent
	reveal       revealKind
}

type fragmentItem struct {
	isBreak bool
	token   fragment
}

// spanEvent is an event still anchored at a rune offset inside one span's
// text, before tokenization converts it to a width anchor.
type spanEvent struct {
	runeOffset  int
	kind        eventKind
	pointer     editor.CursorPointer
	hasHints    bool
	hintOffset  int
	hintContent int
}

// tracker decides which pointers get position events during fragment
// collection. TrackAll emits one event per addressable offset, which is what
// the render cache stores; cursor and selection events are only attached on
// uncached renders.
type tracker struct {
	trackAll bool
	cursor   *editor.CursorPointer
	selStart *editor.CursorPointer
	selEnd   *editor.CursorPointer
}

func pointerTargets(pointer *editor.CursorPointer, parPath editor.ParagraphPath, spanPath editor.SpanPath, kind editor.SegmentKind, style document.InlineStyle) bool {
	if pointer == nil {
		return false
	}
	if pointer.SegmentKind != kind || pointer.Style != style {
		return false
	}
	return pointer.ParagraphPath.Equal(parPath) && pointer.SpanPath.Equal(spanPath)
}

func (t *tracker) textEventsFor(parPath editor.ParagraphPath, spanPath editor.SpanPath, runeLen int) []spanEvent {
	var events []spanEvent
	if t.trackAll {
		for offset := 0; offset <= runeLen; offset++ {
			events = append(events, spanEvent{
				runeOffset: offset,
				kind:       eventTracked,
				pointer: editor.CursorPointer{
					ParagraphPath: parPath.Clone(),
					SpanPath:      spanPath.Clone(),
					Offset:        offset,
					SegmentKind:   editor.SegmentText,
				},
			})
		}
	}
	if pointerTargets(t.cursor, parPath, spanPath, editor.SegmentText, document.StyleNone) {
		events = append(events, spanEvent{
			runeOffset: min(t.cursor.Offset, runeLen),
			kind:       eventCursor,
		})
	}
	if pointerTargets(t.selStart, parPath, spanPath, editor.SegmentText, document.StyleNone) {
		events = append(events, spanEvent{
			runeOffset: min(t.selStart.Offset, runeLen),
			kind:       eventSelectionStart,
		})
	}
	if pointerTargets(t.selEnd, parPath, spanPath, editor.SegmentText, document.StyleNone) {
		events = append(events, spanEvent{
			runeOffset: min(t.selEnd.Offset, runeLen),
			kind:       eventSelectionEnd,
		})
	}
	return events
}

// revealEventsFor produces events for a 1-length reveal boundary segment.
// Offset 0 anchors at the tag's left edge, offset 1 past its right edge;
// content hints are placeholders later replaced by the adjacent text
// position's content column.
func (t *tracker) revealEventsFor(parPath editor.ParagraphPath, spanPath editor.SpanPath, kind editor.SegmentKind, style document.InlineStyle, tagWidth int) []textEvent {
	hint := func(offset int) (int, int) {
		if offset == 0 {
			return 0, 1
		}
		return tagWidth, 1
	}

	var events []textEvent
	if t.trackAll {
		for offset := 0; offset <= 1; offset++ {
			col, content := hint(offset)
			events = append(events, textEvent{
				hasHints:    true,
				hintOffset:  col,
				hintContent: content,
				kind:        eventTracked,
				pointer: editor.CursorPointer{
					ParagraphPath: parPath.Clone(),
					SpanPath:      spanPath.Clone(),
					Offset:        offset,
					SegmentKind:   kind,
					Style:         style,
				},
			})
		}
	}
	if pointerTargets(t.cursor, parPath, spanPath, kind, style) {
		col, content := hint(min(t.cursor.Offset, 1))
		events = append(events, textEvent{
			hasHints:    true,
			hintOffset:  col,
			hintContent: content,
			kind:        eventCursor,
		})
	}
	return events
}

func inlineStyleName(style document.InlineStyle) string {
	switch style {
	case document.StyleBold:
		return "Bold"
	case document.StyleItalic:
		return "Italic"
	case document.StyleHighlight:
		return "Highlight"
	case document.StyleUnderline:
		return "Underline"
	case document.StyleStrike:
		return "Strikethrough"
	case document.StyleLink:
		return "Link"
	case document.StyleCode:
		return "Code"
	default:
		return "Text"
	}
}

func revealTagText(style document.InlineStyle, kind revealKind) string {
	name := inlineStyleName(style)
	if kind == revealStart {
		return "[" + name + ">"
	}
	return "<" + name + "]"
}

// collectSpanFragments flattens one span subtree into fragments, mirroring
// the segment index traversal: start tag, own text, children depth-first,
// end tag.
func collectSpanFragments(span *document.Span, base RunStyle, parPath editor.ParagraphPath, spanPath *editor.SpanPath, revealCodes bool, track *tracker, out *[]fragmentItem) {
	style := base.withInline(span.Style)
	styled := span.Style != document.StyleNone

	if revealCodes && styled {
		text := revealTagText(span.Style, revealStart)
		width := visibleWidth(text)
		*out = append(*out, fragmentItem{token: fragment{
			text:   text,
			style:  RunStyle{Reveal: true},
			kind:   fragmentRevealTag,
			width:  width,
			events: track.revealEventsFor(parPath, *spanPath, editor.SegmentRevealStart, span.Style, width),
			reveal: revealStart,
		}})
	}

	// A childless leaf always yields a token run (even when empty, so its
	// offset-0 position stays addressable); a span with children only for
	// its own non-empty text.
	if len(span.Children) == 0 || span.Text != "" {
		events := track.textEventsFor(parPath, *spanPath, runeLen(span.Text))
		tokenizeText(span.Text, style, events, out)
	}

	for childIndex := range span.Children {
		spanPath.Push(childIndex)
		collectSpanFragments(&span.Children[childIndex], style, parPath, spanPath, revealCodes, track, out)
		spanPath.Pop()
	}

	if revealCodes && styled {
		text := revealTagText(span.Style, revealEnd)
		width := visibleWidth(text)
		*out = append(*out, fragmentItem{token: fragment{
			text:   text,
			style:  RunStyle{Reveal: true},
			kind:   fragmentRevealTag,
			width:  width,
			events: track.revealEventsFor(parPath, *spanPath, editor.SegmentRevealEnd, span.Style, width),
			reveal: revealEnd,
		}})
	}
}

// tokenizeText splits span text into maximal word/whitespace runs, expanding
// tabs to four spaces and emitting explicit line breaks for \n. Pending
// events attach to the token receiving the next character, or anchor at the
// end of the final token.
func tokenizeText(text string, style RunStyle, events []spanEvent, out *[]fragmentItem) {
	var builder *tokenBuilder
	var pending []spanEvent

	next := 0
	takePending := func(runeIdx int) {
		for next < len(events) && events[next].runeOffset <= runeIdx {
			pending = append(pending, events[next])
			next++
		}
	}

	flushBuilder := func() {
		if builder != nil {
			builder.addEvents(&pending)
			*out = append(*out, fragmentItem{token: builder.finish()})
			builder = nil
		} else if len(pending) > 0 {
			*out = append(*out, fragmentItem{token: fragment{
				style:  style,
				kind:   fragmentWord,
				events: drainEvents(&pending),
			}})
		}
	}

	runeIdx := 0
	for _, ch := range text {
		takePending(runeIdx)
		runeIdx++

		if ch == '\r' {
			continue
		}
		if ch == '\n' {
			flushBuilder()
			*out = append(*out, fragmentItem{isBreak: true})
			continue
		}

		expanded := []rune{ch}
		if ch == '\t' {
			expanded = []rune{' ', ' ', ' ', ' '}
		}
		for _, actual := range expanded {
			whitespace := isSpaceRune(actual)
			if builder != nil && builder.matches(whitespace) {
				builder.addEvents(&pending)
				builder.push(actual)
				continue
			}
			if builder != nil {
				*out = append(*out, fragmentItem{token: builder.finish()})
			}
			builder = newTokenBuilder(style, whitespace)
			builder.addEvents(&pending)
			builder.push(actual)
		}
	}

	takePending(runeIdx)
	for next < len(events) {
		pending = append(pending, events[next])
		next++
	}
	flushBuilder()
}

func drainEvents(pending *[]spanEvent) []textEvent {
	events := make([]textEvent, 0, len(*pending))
	for _, event := range *pending {
		events = append(events, spanEventToText(event, 0, 0))
	}
	*pending = nil
	return events
}

func spanEventToText(event spanEvent, offset, contentOffset int) textEvent {
	out := textEvent{
		offset:        offset,
		contentOffset: contentOffset,
		kind:          event.kind,
		pointer:       event.pointer,
	}
	if event.hasHints {
		out.hasHints = true
		out.hintOffset = event.hintOffset
		out.hintContent = event.hintContent
	}
	return out
}

type tokenBuilder struct {
	text         []rune
	style        RunStyle
	kind         fragmentKind
	width        int
	contentWidth int
	events       []textEvent
}

func newTokenBuilder(style RunStyle, whitespace bool) *tokenBuilder {
	kind := fragmentWord
	if whitespace {
		kind = fragmentWhitespace
	}
	return &tokenBuilder{style: style, kind: kind}
}

func (b *tokenBuilder) matches(whitespace bool) bool {
	return (b.kind == fragmentWhitespace) == whitespace
}

func (b *tokenBuilder) addEvents(pending *[]spanEvent) {
	for _, event := range *pending {
		b.events = append(b.events, spanEventToText(event, b.width, b.contentWidth))
	}
	*pending = (*pending)[:0]
}

func (b *tokenBuilder) push(ch rune) {
	b.text = append(b.text, ch)
	width := runewidth.RuneWidth(ch)
	b.width += width
	b.contentWidth += width
}

func (b *tokenBuilder) finish() fragment {
	return fragment{
		text:         string(b.text),
		style:        b.style,
		kind:         b.kind,
		width:        b.width,
		contentWidth: b.contentWidth,
		events:       b.events,
	}
}

// trimLayoutFragments strips leading and trailing pure-whitespace tokens and
// line breaks that carry no position events.
func trimLayoutFragments(items []fragmentItem) []fragmentItem {
	start := 0
	for start < len(items) && isLayoutFragment(items[start]) {
		start++
	}
	if start == len(items) {
		return nil
	}
	end := len(items)
	for end > start && isLayoutFragment(items[end-1]) {
		end--
	}
	return items[start:end]
}

func isLayoutFragment(item fragmentItem) bool {
	if item.isBreak {
		return true
	}
	return item.token.kind == fragmentWhitespace && len(item.token.events) == 0
}

func isSpaceRune(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x85, 0xA0:
		return true
	}
	return false
}

func visibleWidth(text string) int {
	total := 0
	for _, ch := range text {
		total += runewidth.RuneWidth(ch)
	}
	return total
}

func runeLen(text string) int {
	count := 0
	for range text {
		count++
	}
	return count
}
