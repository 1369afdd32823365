package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zjrosen/fold/internal/document"
)

// insertCharAt inserts ch at a rune offset in the span a pointer addresses.
func insertCharAt(doc *document.Document, pointer CursorPointer, offset int, ch rune) bool {
	span := spanForPointer(doc, pointer)
	if span == nil {
		return false
	}
	runes := []rune(span.Text)
	clamped := min(offset, len(runes))
	var b strings.Builder
	b.Grow(len(span.Text) + utf8.RuneLen(ch))
	b.WriteString(string(runes[:clamped]))
	b.WriteRune(ch)
	b.WriteString(string(runes[clamped:]))
	span.Text = b.String()
	return true
}

// removeCharAt deletes the rune at offset in the span a pointer addresses.
func removeCharAt(doc *document.Document, pointer CursorPointer, offset int) bool {
	span := spanForPointer(doc, pointer)
	if span == nil {
		return false
	}
	runes := []rune(span.Text)
	if offset >= len(runes) {
		return false
	}
	span.Text = string(runes[:offset]) + string(runes[offset+1:])
	return true
}

// spanForPointer resolves the mutable span a pointer addresses, through
// either a checklist item or a paragraph.
func spanForPointer(doc *document.Document, pointer CursorPointer) *document.Span {
	if item := checklistItemRef(doc, pointer.ParagraphPath); item != nil {
		return spanRefFromItem(item, pointer.SpanPath)
	}
	paragraph := paragraphRef(doc, pointer.ParagraphPath)
	if paragraph == nil {
		return nil
	}
	return spanRef(paragraph, pointer.SpanPath)
}

func isWordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

// PreviousWordBoundary returns the offset one word back from offset: skip
// trailing whitespace, then a word run, else a punctuation run.
func PreviousWordBoundary(text string, offset int) int {
	return previousWordBoundary(text, offset)
}

func previousWordBoundary(text string, offset int) int {
	chars := []rune(text)
	idx := min(offset, len(chars))
	if idx == 0 {
		return 0
	}

	for idx > 0 && unicode.IsSpace(chars[idx-1]) {
		idx--
	}
	if idx == 0 {
		return 0
	}

	for idx > 0 && isWordChar(chars[idx-1]) {
		idx--
	}
	for idx > 0 && !isWordChar(chars[idx-1]) && !unicode.IsSpace(chars[idx-1]) {
		idx--
	}
	return idx
}

// WordStartBoundary returns the start of the word under offset, for
// double-click selection.
func WordStartBoundary(text string, offset int) int {
	chars := []rune(text)
	idx := min(offset, len(chars))
	if idx == 0 {
		return 0
	}

	if idx < len(chars) && unicode.IsSpace(chars[idx]) {
		for idx > 0 && unicode.IsSpace(chars[idx-1]) {
			idx--
		}
		if idx == 0 {
			return 0
		}
	}

	checkIdx := idx
	if checkIdx >= len(chars) {
		checkIdx = idx - 1
	}

	if checkIdx < len(chars) && isWordChar(chars[checkIdx]) {
		for idx > 0 && isWordChar(chars[idx-1]) {
			idx--
		}
		return idx
	}

	if checkIdx < len(chars) && !unicode.IsSpace(chars[checkIdx]) && !isWordChar(chars[checkIdx]) {
		for idx > 0 && !unicode.IsSpace(chars[idx-1]) && !isWordChar(chars[idx-1]) {
			idx--
		}
		return idx
	}

	return idx
}

// NextWordBoundary returns the offset one word ahead of offset: a word run
// plus any trailing punctuation and whitespace, mirroring editor forward
// word motion.
func NextWordBoundary(text string, offset int) int {
	return nextWordBoundary(text, offset)
}

func nextWordBoundary(text string, offset int) int {
	chars := []rune(text)
	length := len(chars)
	idx := min(offset, length)
	if idx >= length {
		return length
	}

	if unicode.IsSpace(chars[idx]) {
		for idx < length && unicode.IsSpace(chars[idx]) {
			idx++
		}
		return idx
	}

	if isWordChar(chars[idx]) {
		for idx < length && isWordChar(chars[idx]) {
			idx++
		}
		for idx < length && !unicode.IsSpace(chars[idx]) && !isWordChar(chars[idx]) {
			idx++
		}
		for idx < length && unicode.IsSpace(chars[idx]) {
			idx++
		}
		return idx
	}

	for idx < length && !unicode.IsSpace(chars[idx]) && !isWordChar(chars[idx]) {
		idx++
	}
	for idx < length && unicode.IsSpace(chars[idx]) {
		idx++
	}
	return idx
}

// WordEndBoundary returns the end of the word under offset, for
// double-click selection.
func WordEndBoundary(text string, offset int) int {
	chars := []rune(text)
	length := len(chars)
	idx := min(offset, length)
	if idx >= length {
		return length
	}

	if unicode.IsSpace(chars[idx]) {
		for idx < length && unicode.IsSpace(chars[idx]) {
			idx++
		}
		if idx >= length {
			return length
		}
	}

	if isWordChar(chars[idx]) {
		for idx < length && isWordChar(chars[idx]) {
			idx++
		}
		return idx
	}

	for idx < length && !unicode.IsSpace(chars[idx]) && !isWordChar(chars[idx]) {
		idx++
	}
	return idx
}

func skipLeadingWhitespace(text string) int {
	count := 0
	for _, ch := range text {
		if !unicode.IsSpace(ch) {
			break
		}
		count++
	}
	return count
}

// applyStyleToSpanPath descends to the leaf a span path addresses and
// replaces it with up to three spans: unstyled left, styled middle,
// unstyled right. start/end are rune offsets within the leaf.
func applyStyleToSpanPath(spans *[]document.Span, path []int, start, end int, style document.InlineStyle) bool {
	if len(path) == 0 {
		return false
	}
	idx := path[0]
	if idx >= len(*spans) {
		return false
	}
	if len(path) == 1 {
		return applyStyleToLeafSpan(spans, idx, start, end, style)
	}
	return applyStyleToSpanPath(&(*spans)[idx].Children, path[1:], start, end, style)
}

func applyStyleToLeafSpan(spans *[]document.Span, idx, start, end int, style document.InlineStyle) bool {
	original := (*spans)[idx].Clone()
	length := utf8.RuneCountInString(original.Text)
	if length == 0 {
		return false
	}
	clampedEnd := min(end, length)
	clampedStart := min(start, clampedEnd)
	if clampedStart >= clampedEnd {
		return false
	}

	beforeEnd, rightText := splitText(original.Text, clampedEnd)
	leftText, midText := splitText(beforeEnd, clampedStart)
	if midText == "" {
		return false
	}

	var replacements []document.Span

	if leftText != "" {
		left := original.Clone()
		left.Text = leftText
		left.Children = nil
		replacements = append(replacements, left)
	}

	mid := original.Clone()
	mid.Text = midText
	mid.Children = nil
	mid.Style = style
	if mid.Style != document.StyleLink {
		mid.LinkTarget = ""
	}
	replacements = append(replacements, mid)

	if rightText != "" {
		right := original.Clone()
		right.Text = rightText
		right.Children = nil
		replacements = append(replacements, right)
	}

	out := make([]document.Span, 0, len(*spans)-1+len(replacements))
	out = append(out, (*spans)[:idx]...)
	out = append(out, replacements...)
	out = append(out, (*spans)[idx+1:]...)
	*spans = out
	return true
}

// pruneAndMergeSpans removes empty spans and coalesces adjacent leaves that
// share style and link target.
func pruneAndMergeSpans(spans *[]document.Span) {
	idx := 0
	for idx < len(*spans) {
		pruneAndMergeSpans(&(*spans)[idx].Children)
		if (*spans)[idx].Text == "" && len((*spans)[idx].Children) == 0 {
			*spans = append((*spans)[:idx], (*spans)[idx+1:]...)
		} else {
			idx++
		}
	}

	i := 0
	for i+1 < len(*spans) {
		if canMergeSpans((*spans)[i], (*spans)[i+1]) {
			(*spans)[i].Text += (*spans)[i+1].Text
			*spans = append((*spans)[:i+1], (*spans)[i+2:]...)
		} else {
			i++
		}
	}
}

func canMergeSpans(left, right document.Span) bool {
	return left.Style == right.Style &&
		left.LinkTarget == right.LinkTarget &&
		len(left.Children) == 0 &&
		len(right.Children) == 0
}

// splitSpans cuts the span list at a (path, offset) point, truncating in
// place and returning the trailing spans for the new paragraph.
func splitSpans(spans *[]document.Span, path []int, offset int) []document.Span {
	if len(path) == 0 {
		return nil
	}

	idx := path[0]
	if idx >= len(*spans) {
		return nil
	}

	var trailing []document.Span
	if idx+1 < len(*spans) {
		trailing = append(trailing, (*spans)[idx+1:]...)
		*spans = (*spans)[:idx+1]
	}

	original := (*spans)[idx].Clone()

	var newSpan *document.Span
	if len(path) == 1 {
		leftText, rightText := splitText(original.Text, offset)
		(*spans)[idx].Text = leftText
		if rightText != "" || len(original.Children) > 0 {
			candidate := original
			candidate.Text = rightText
			if !spanIsEmpty(candidate) {
				newSpan = &candidate
			}
		}
	} else {
		childTail := splitSpans(&(*spans)[idx].Children, path[1:], offset)
		if len(childTail) > 0 {
			candidate := original
			candidate.Children = childTail
			candidate.Text = ""
			if !spanIsEmpty(candidate) {
				newSpan = &candidate
			}
		}
	}

	if newSpan != nil {
		trailing = append([]document.Span{*newSpan}, trailing...)
	}

	return trailing
}

func splitText(text string, offset int) (string, string) {
	runes := []rune(text)
	clamped := min(offset, len(runes))
	return string(runes[:clamped]), string(runes[clamped:])
}

func spanIsEmpty(span document.Span) bool {
	if span.Text != "" {
		return false
	}
	for _, child := range span.Children {
		if !spanIsEmpty(child) {
			return false
		}
	}
	return true
}

func checklistItemIsEmpty(item document.ChecklistItem) bool {
	for _, span := range item.Content {
		if !spanIsEmpty(span) {
			return false
		}
	}
	for _, child := range item.Children {
		if !checklistItemIsEmpty(child) {
			return false
		}
	}
	return true
}
