package layout

import (
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/fold/internal/editor"
)

// Run is one styled slice of a rendered line.
type Run struct {
	Text  string
	Style RunStyle
}

// Line is one visual row of the rendered document.
type Line struct {
	Runs []Run
}

// Text returns the line's concatenated text without styling.
func (l Line) Text() string {
	var out []byte
	for _, run := range l.Runs {
		out = append(out, run.Text...)
	}
	return string(out)
}

// locatedEvent is a position event resolved to a column on one built line.
type locatedEvent struct {
	column        int
	contentColumn int
	kind          eventKind
	pointer       editor.CursorPointer
}

// builtLine pairs a finished line with its located events and whether any
// word content landed on it.
type builtLine struct {
	line    Line
	events  []locatedEvent
	hasWord bool
}

// lineBuilder accumulates one visual line. The prefix counts toward layout
// width but never toward content columns.
type lineBuilder struct {
	runs            []Run
	width           int
	contentWidth    int
	events          []locatedEvent
	hasWord         bool
	selectionActive bool
}

func newLineBuilder(prefix string, prefixStyle RunStyle, selectionActive bool) *lineBuilder {
	b := &lineBuilder{selectionActive: selectionActive}
	if prefix != "" {
		b.runs = append(b.runs, Run{Text: prefix, Style: prefixStyle})
		b.width = visibleWidth(prefix)
	}
	return b
}

// appendToken adds a fragment, splitting its text into runs at selection
// boundaries and resolving its events to absolute columns.
func (b *lineBuilder) appendToken(token fragment) {
	events := append([]textEvent(nil), token.events...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].offset < events[j].offset
	})

	baseWidth := b.width
	baseContent := b.contentWidth

	style := token.style
	if b.selectionActive {
		style = style.selected()
	}

	var segment []rune
	flushSegment := func() {
		if len(segment) > 0 {
			b.runs = append(b.runs, Run{Text: string(segment), Style: style})
			segment = nil
		}
	}

	next := 0
	offsetInToken := 0
	takeEvents := func() {
		for next < len(events) && events[next].offset <= offsetInToken {
			event := events[next]
			next++
			switch event.kind {
			case eventSelectionStart:
				flushSegment()
				b.selectionActive = true
				style = token.style.selected()
			case eventSelectionEnd:
				flushSegment()
				b.selectionActive = false
				style = token.style
			default:
				column := baseWidth + event.offset
				content := baseContent + event.contentOffset
				if event.hasHints {
					column = baseWidth + event.hintOffset
					content = baseContent + event.hintContent
				}
				b.events = append(b.events, locatedEvent{
					column:        column,
					contentColumn: content,
					kind:          event.kind,
					pointer:       event.pointer,
				})
			}
		}
	}

	takeEvents()
	for _, ch := range token.text {
		segment = append(segment, ch)
		offsetInToken += runewidth.RuneWidth(ch)
		takeEvents()
	}
	flushSegment()
	offsetInToken = token.width
	takeEvents()

	b.width += token.width
	b.contentWidth += token.contentWidth
	if token.kind == fragmentWord && token.width > 0 {
		b.hasWord = true
	}
}

func (b *lineBuilder) build() builtLine {
	runs := coalesceRuns(b.runs)
	if len(runs) == 0 {
		runs = []Run{{}}
	}
	events := b.events
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].column < events[j].column
	})
	return builtLine{
		line:    Line{Runs: runs},
		events:  events,
		hasWord: b.hasWord,
	}
}

// coalesceRuns merges adjacent runs with identical styling.
func coalesceRuns(runs []Run) []Run {
	var out []Run
	for _, run := range runs {
		if n := len(out); n > 0 && out[n-1].Style == run.Style {
			out[n-1].Text += run.Text
			continue
		}
		out = append(out, run)
	}
	return out
}

// wrapFragments greedily packs fragments into lines no wider than width.
// Whitespace runs are buffered and only committed when a following word
// fits; overwide words at line start are hard-split at a rune boundary,
// except reveal tags which are never split.
func wrapFragments(items []fragmentItem, width int, firstPrefix, continuationPrefix string, prefixStyle RunStyle, selectionActive bool) ([]builtLine, bool) {
	var lines []builtLine

	current := newLineBuilder(firstPrefix, prefixStyle, selectionActive)
	prefixWidth := current.width
	var pendingWhitespace []fragment
	pendingWidth := 0

	flushLine := func(prefix string) {
		selectionActive = current.selectionActive
		lines = append(lines, current.build())
		current = newLineBuilder(prefix, prefixStyle, selectionActive)
		prefixWidth = current.width
		pendingWhitespace = nil
		pendingWidth = 0
	}

	consumePending := func() {
		for _, ws := range pendingWhitespace {
			current.appendToken(ws)
		}
		pendingWhitespace = nil
		pendingWidth = 0
	}

	for _, item := range items {
		if item.isBreak {
			consumePending()
			flushLine(continuationPrefix)
			continue
		}
		token := item.token
		if token.kind == fragmentWhitespace {
			pendingWhitespace = append(pendingWhitespace, token)
			pendingWidth += token.width
			continue
		}

		if current.width > prefixWidth && current.width+pendingWidth+token.width > width {
			// Whitespace dropped at the wrap point keeps its events; they
			// re-anchor at the start of the continuation line.
			var carried []textEvent
			for _, ws := range pendingWhitespace {
				for _, event := range ws.events {
					event.offset = 0
					event.contentOffset = 0
					carried = append(carried, event)
				}
			}
			flushLine(continuationPrefix)
			if len(carried) > 0 {
				current.appendToken(fragment{kind: fragmentWord, style: token.style, events: carried})
			}
		}

		if current.width == prefixWidth && prefixWidth+token.width > width {
			// Overwide token at line start. Reveal tags stay whole;
			// everything else splits at a rune boundary.
			if token.kind == fragmentRevealTag {
				consumePending()
				current.appendToken(token)
				continue
			}
			consumePending()
			rest := token
			for prefixWidth+rest.width > width {
				head, tail := splitFragment(rest, width-prefixWidth)
				current.appendToken(head)
				flushLine(continuationPrefix)
				rest = tail
			}
			current.appendToken(rest)
			continue
		}

		consumePending()
		current.appendToken(token)
	}

	consumePending()
	active := current.selectionActive
	lines = append(lines, current.build())
	return lines, active
}

// splitFragment cuts a fragment at the widest rune boundary not exceeding
// maxWidth, keeping at least one rune in the head. Events anchored before
// the cut stay with the head; the rest are rebased onto the tail.
func splitFragment(token fragment, maxWidth int) (fragment, fragment) {
	headWidth := 0
	headBytes := 0
	headContent := 0
	count := 0
	for i, ch := range token.text {
		w := runewidth.RuneWidth(ch)
		if count > 0 && headWidth+w > maxWidth {
			headBytes = i
			break
		}
		headWidth += w
		headContent += w
		count++
		headBytes = i + len(string(ch))
	}

	head := fragment{
		text:         token.text[:headBytes],
		style:        token.style,
		kind:         token.kind,
		width:        headWidth,
		contentWidth: headContent,
		reveal:       token.reveal,
	}
	tail := fragment{
		text:         token.text[headBytes:],
		style:        token.style,
		kind:         token.kind,
		width:        token.width - headWidth,
		contentWidth: token.contentWidth - headContent,
		reveal:       token.reveal,
	}
	for _, event := range token.events {
		if event.offset < headWidth {
			head.events = append(head.events, event)
		} else {
			event.offset -= headWidth
			event.contentOffset -= headContent
			tail.events = append(tail.events, event)
		}
	}
	return head, tail
}
