package editor

import (
	"unicode/utf8"

	"github.com/zjrosen/fold/internal/document"
)

// EnsureCursorSelectable parks the cursor on the first segment, synthesizing
// a placeholder span when the document has nothing addressable.
func (e *Editor) EnsureCursorSelectable() {
	if len(e.segments) == 0 {
		e.ensurePlaceholderSegment()
		e.segments = collectSegments(e.doc, e.revealCodes)
	}
	if len(e.segments) > 0 {
		first := e.segments[0]
		e.cursor = CursorPointer{
			ParagraphPath: first.ParagraphPath.Clone(),
			SpanPath:      first.SpanPath.Clone(),
			Offset:        min(e.cursor.Offset, first.Len),
			SegmentKind:   first.Kind,
			Style:         first.Style,
		}
		e.cursorSegment = 0
	} else {
		e.cursor = CursorPointer{}
		e.cursorSegment = 0
	}
}

// CursorPointer returns the current cursor position.
func (e *Editor) CursorPointer() CursorPointer {
	return e.cursor.Clone()
}

// CursorStablePointer returns the cursor normalized away from reveal
// boundaries, suitable for remembering across a reveal-codes toggle.
func (e *Editor) CursorStablePointer() CursorPointer {
	return e.StablePointer(e.cursor)
}

// StablePointer maps a reveal-boundary pointer to the nearest text pointer;
// text pointers pass through unchanged.
func (e *Editor) StablePointer(pointer CursorPointer) CursorPointer {
	if len(e.segments) == 0 || pointer.SegmentKind == SegmentText {
		return pointer.Clone()
	}
	if stable, ok := e.nearestTextPointerFor(pointer); ok {
		return stable
	}
	return pointer.Clone()
}

// WordBoundariesAt returns the word-start and word-end pointers around a
// text pointer, for double-click selection.
func (e *Editor) WordBoundariesAt(pointer CursorPointer) (CursorPointer, CursorPointer, bool) {
	var segment *Segment
	for i := range e.segments {
		if e.segments[i].matchesPointer(pointer) {
			segment = &e.segments[i]
			break
		}
	}
	if segment == nil || segment.Kind != SegmentText {
		return CursorPointer{}, CursorPointer{}, false
	}
	text, ok := e.spanTextForPointer(pointer)
	if !ok || text == "" {
		return CursorPointer{}, CursorPointer{}, false
	}
	length := utf8.RuneCountInString(text)
	offset := min(pointer.Offset, length)
	start := pointer.Clone()
	start.Offset = previousWordBoundary(text, offset)
	end := pointer.Clone()
	end.Offset = nextWordBoundary(text, offset)
	return start, end, true
}

func (e *Editor) spanTextForPointer(pointer CursorPointer) (string, bool) {
	if item := checklistItemRef(e.doc, pointer.ParagraphPath); item != nil {
		span := spanRefFromItem(item, pointer.SpanPath)
		if span == nil {
			return "", false
		}
		return span.Text, true
	}
	paragraph := paragraphRef(e.doc, pointer.ParagraphPath)
	if paragraph == nil {
		return "", false
	}
	span := spanRef(paragraph, pointer.SpanPath)
	if span == nil {
		return "", false
	}
	return span.Text, true
}

// CursorBreadcrumbs returns human-readable labels for the cursor's
// structural position, outermost first.
func (e *Editor) CursorBreadcrumbs() ([]string, bool) {
	return breadcrumbsForPointer(e.doc, e.cursor)
}

// MoveToPointer jumps the cursor to a pointer, clamping the offset to the
// target segment. Returns false when the pointer does not resolve.
func (e *Editor) MoveToPointer(pointer CursorPointer) bool {
	for index := range e.segments {
		if !e.segments[index].matchesPointer(pointer) {
			continue
		}
		moved := pointer.Clone()
		if moved.Offset > e.segments[index].Len {
			moved.Offset = e.segments[index].Len
		}
		e.cursor = moved
		e.cursorSegment = index
		return true
	}
	return false
}

// MoveLeft steps the caret one position backward.
func (e *Editor) MoveLeft() bool {
	if len(e.segments) == 0 {
		return false
	}
	crossedBoundary := false
	switch {
	case e.cursor.Offset > 0:
		e.cursor.Offset--
	case e.shiftToPreviousSegment():
		crossedBoundary = true
	default:
		return false
	}
	e.normalizeCursorAfterBackwardMove(crossedBoundary)
	return true
}

// MoveRight steps the caret one position forward.
func (e *Editor) MoveRight() bool {
	if len(e.segments) == 0 {
		return false
	}
	if e.cursor.Offset < e.currentSegmentLen() {
		e.cursor.Offset++
	} else {
		if !e.shiftToNextSegment() {
			return false
		}
		e.skipForwardRevealSegments()
	}
	e.normalizeCursorAfterForwardMove()
	return true
}

// MoveUp moves to the previous paragraph, keeping the offset when possible.
func (e *Editor) MoveUp() bool {
	if len(e.segments) == 0 {
		return false
	}
	preferredOffset := e.cursor.Offset
	targetPath, ok := e.previousParagraphPath()
	if !ok {
		return false
	}
	return e.moveToParagraphPath(targetPath, true, preferredOffset)
}

// MoveDown moves to the next paragraph, keeping the offset when possible.
func (e *Editor) MoveDown() bool {
	if len(e.segments) == 0 {
		return false
	}
	preferredOffset := e.cursor.Offset
	targetPath, ok := e.nextParagraphPath()
	if !ok {
		return false
	}
	return e.moveToParagraphPath(targetPath, false, preferredOffset)
}

func (e *Editor) previousParagraphPath() (ParagraphPath, bool) {
	if len(e.segments) == 0 {
		return ParagraphPath{}, false
	}
	current := e.cursor.ParagraphPath
	for idx := e.cursorSegment - 1; idx >= 0; idx-- {
		if !e.segments[idx].ParagraphPath.Equal(current) {
			return e.segments[idx].ParagraphPath.Clone(), true
		}
	}
	return ParagraphPath{}, false
}

func (e *Editor) nextParagraphPath() (ParagraphPath, bool) {
	if len(e.segments) == 0 {
		return ParagraphPath{}, false
	}
	current := e.cursor.ParagraphPath
	for idx := e.cursorSegment + 1; idx < len(e.segments); idx++ {
		if !e.segments[idx].ParagraphPath.Equal(current) {
			return e.segments[idx].ParagraphPath.Clone(), true
		}
	}
	return ParagraphPath{}, false
}

func (e *Editor) moveToParagraphPath(paragraphPath ParagraphPath, preferTrailing bool, preferredOffset int) bool {
	if index, segment, ok := selectTextInParagraph(e.segments, paragraphPath, preferTrailing); ok {
		e.cursorSegment = index
		e.cursor = CursorPointer{
			ParagraphPath: segment.ParagraphPath.Clone(),
			SpanPath:      segment.SpanPath.Clone(),
			Offset:        min(preferredOffset, segment.Len),
			SegmentKind:   SegmentText,
		}
		e.clampCursorOffset()
		return true
	}

	for index := range e.segments {
		segment := e.segments[index]
		if !segment.ParagraphPath.Equal(paragraphPath) {
			continue
		}
		e.cursorSegment = index
		e.cursor = CursorPointer{
			ParagraphPath: segment.ParagraphPath.Clone(),
			SpanPath:      segment.SpanPath.Clone(),
			Offset:        min(preferredOffset, segment.Len),
			SegmentKind:   segment.Kind,
			Style:         segment.Style,
		}
		e.clampCursorOffset()
		return true
	}

	return false
}

// MoveWordLeft jumps to the previous word boundary, crossing segments.
func (e *Editor) MoveWordLeft() bool {
	if len(e.segments) == 0 {
		return false
	}

	if text, ok := e.currentSpanText(); ok {
		currentOffset := min(e.cursor.Offset, utf8.RuneCountInString(text))
		newOffset := previousWordBoundary(text, currentOffset)
		if newOffset < currentOffset {
			e.cursor.Offset = newOffset
			return true
		}
	}

	for e.shiftToPreviousSegment() {
		length := e.currentSegmentLen()
		e.cursor.Offset = length
		if length == 0 {
			continue
		}
		if text, ok := e.currentSpanText(); ok {
			e.cursor.Offset = previousWordBoundary(text, length)
		}
		return true
	}

	return false
}

// MoveWordRight jumps to the next word boundary, crossing segments.
func (e *Editor) MoveWordRight() bool {
	if len(e.segments) == 0 {
		return false
	}

	if text, ok := e.currentSpanText(); ok {
		length := utf8.RuneCountInString(text)
		currentOffset := min(e.cursor.Offset, length)
		newOffset := nextWordBoundary(text, currentOffset)
		if newOffset > currentOffset {
			e.cursor.Offset = newOffset
			return true
		}
	}

	for e.shiftToNextSegment() {
		length := e.currentSegmentLen()
		e.cursor.Offset = 0
		if length == 0 {
			continue
		}
		if text, ok := e.currentSpanText(); ok {
			e.cursor.Offset = min(skipLeadingWhitespace(text), length)
		}
		return true
	}

	return false
}

// MoveToSegmentStart snaps the offset to the segment's first position.
func (e *Editor) MoveToSegmentStart() {
	e.cursor.Offset = 0
}

// MoveToSegmentEnd snaps the offset past the segment's last character.
func (e *Editor) MoveToSegmentEnd() {
	e.cursor.Offset = e.currentSegmentLen()
}

// fallbackMoveToText relocates a pointer whose exact segment vanished after a
// mutation: exact span, then span-path descendants, then paragraph-path
// descendants, then any text segment in the paragraph.
func (e *Editor) fallbackMoveToText(pointer CursorPointer, preferTrailing bool) bool {
	for index := range e.segments {
		segment := e.segments[index]
		if !segment.ParagraphPath.Equal(pointer.ParagraphPath) ||
			!segment.SpanPath.Equal(pointer.SpanPath) ||
			segment.Kind != SegmentText {
			continue
		}
		e.setCursorToTextSegment(index, segment, pointer.Offset)
		return true
	}

	foundDescendant := false
	var descendantIndex int
	var descendantSegment Segment
	for index := range e.segments {
		segment := e.segments[index]
		if !segment.ParagraphPath.Equal(pointer.ParagraphPath) {
			continue
		}
		if segment.Kind != SegmentText {
			continue
		}
		if !SpanPathIsPrefix(pointer.SpanPath.Indices(), segment.SpanPath.Indices()) {
			continue
		}
		descendantIndex, descendantSegment = index, segment
		foundDescendant = true
		if !preferTrailing {
			break
		}
	}
	if foundDescendant {
		e.setCursorToTextSegment(descendantIndex, descendantSegment, pointer.Offset)
		return true
	}

	foundNested := false
	var nestedIndex int
	var nestedSegment Segment
	for index := range e.segments {
		segment := e.segments[index]
		if segment.Kind != SegmentText {
			continue
		}
		if segment.ParagraphPath.Equal(pointer.ParagraphPath) {
			continue
		}
		if !PathIsPrefix(pointer.ParagraphPath, segment.ParagraphPath) {
			continue
		}
		nestedIndex, nestedSegment = index, segment
		foundNested = true
		if !preferTrailing {
			break
		}
	}
	if foundNested {
		e.setCursorToTextSegment(nestedIndex, nestedSegment, pointer.Offset)
		return true
	}

	if index, segment, ok := selectTextInParagraph(e.segments, pointer.ParagraphPath, preferTrailing); ok {
		e.setCursorToTextSegment(index, segment, pointer.Offset)
		return true
	}

	return false
}

func (e *Editor) setCursorToTextSegment(index int, segment Segment, offset int) {
	e.cursorSegment = index
	e.cursor = CursorPointer{
		ParagraphPath: segment.ParagraphPath.Clone(),
		SpanPath:      segment.SpanPath.Clone(),
		Offset:        min(offset, segment.Len),
		SegmentKind:   SegmentText,
	}
	e.clampCursorOffset()
}

func (e *Editor) pointerKey(pointer CursorPointer) (PointerKey, bool) {
	for index := range e.segments {
		if e.segments[index].matchesPointer(pointer) {
			return PointerKey{
				SegmentIndex: index,
				Offset:       min(pointer.Offset, e.segments[index].Len),
			}, true
		}
	}
	return PointerKey{}, false
}

func (e *Editor) shiftToPreviousSegment() bool {
	if e.cursorSegment == 0 || len(e.segments) == 0 {
		return false
	}
	e.cursorSegment--
	segment := e.segments[e.cursorSegment]
	e.cursor.updateFromSegment(segment)
	e.cursor.Offset = segment.Len
	return true
}

func (e *Editor) shiftToNextSegment() bool {
	if e.cursorSegment+1 >= len(e.segments) {
		return false
	}
	e.cursorSegment++
	segment := e.segments[e.cursorSegment]
	e.cursor.updateFromSegment(segment)
	e.cursor.Offset = 0
	return true
}

func (e *Editor) skipForwardRevealSegments() {
	for {
		kind, ok := e.currentSegmentKind()
		if !ok || kind == SegmentText {
			return
		}
		if !e.shiftToNextSegment() {
			return
		}
	}
}

func (e *Editor) currentSegmentLen() int {
	if e.cursorSegment < len(e.segments) {
		return e.segments[e.cursorSegment].Len
	}
	return 0
}

// findPreviousTextSegmentInParagraph scans backward for a text segment in the
// same paragraph as startIdx.
func (e *Editor) findPreviousTextSegmentInParagraph(startIdx int) (int, bool) {
	if len(e.segments) == 0 || startIdx == 0 || startIdx >= len(e.segments) {
		return 0, false
	}
	paragraphPath := e.segments[startIdx].ParagraphPath
	for idx := startIdx - 1; idx >= 0; idx-- {
		segment := e.segments[idx]
		if !segment.ParagraphPath.Equal(paragraphPath) {
			continue
		}
		if segment.Kind == SegmentText {
			return idx, true
		}
	}
	return 0, false
}

func (e *Editor) currentSegmentKind() (SegmentKind, bool) {
	if e.cursorSegment < len(e.segments) {
		return e.segments[e.cursorSegment].Kind, true
	}
	return SegmentText, false
}

func (e *Editor) nextSegmentKind() (SegmentKind, bool) {
	if e.cursorSegment+1 < len(e.segments) {
		return e.segments[e.cursorSegment+1].Kind, true
	}
	return SegmentText, false
}

// normalizeCursorAfterForwardMove walks the caret past zero-progress reveal
// positions so each reveal tag is visited exactly once.
func (e *Editor) normalizeCursorAfterForwardMove() {
	for {
		currentLen := e.currentSegmentLen()
		if e.cursor.Offset < currentLen {
			return
		}
		if kind, ok := e.currentSegmentKind(); ok && kind != SegmentText {
			if !e.shiftToNextSegment() {
				return
			}
			continue
		}
		if kind, ok := e.nextSegmentKind(); ok && kind != SegmentText {
			if !e.shiftToNextSegment() {
				return
			}
			continue
		}
		return
	}
}

func (e *Editor) normalizeCursorAfterBackwardMove(crossedBoundary bool) {
	if e.cursorSegment >= len(e.segments) {
		return
	}
	segment := e.segments[e.cursorSegment]
	switch segment.Kind {
	case SegmentRevealStart, SegmentRevealEnd:
		if e.cursor.Offset > 0 {
			e.cursor.Offset = 0
		}
	case SegmentText:
		if crossedBoundary {
			if segment.Len == 0 {
				return
			}
			if e.cursor.Offset >= segment.Len {
				e.cursor.Offset = segment.Len - 1
			}
		}
	}
}

func (e *Editor) currentSpanText() (string, bool) {
	if e.cursorSegment >= len(e.segments) {
		return "", false
	}
	if e.segments[e.cursorSegment].Kind != SegmentText {
		return "", false
	}
	return e.spanTextForPointer(e.cursor)
}

func (e *Editor) segmentText(segment Segment) (string, bool) {
	if segment.Kind != SegmentText {
		return "", false
	}
	if item := checklistItemRef(e.doc, segment.ParagraphPath); item != nil {
		span := spanRefFromItem(item, segment.SpanPath)
		if span == nil {
			return "", false
		}
		return span.Text, true
	}
	paragraph := paragraphRef(e.doc, segment.ParagraphPath)
	if paragraph == nil {
		return "", false
	}
	span := spanRef(paragraph, segment.SpanPath)
	if span == nil {
		return "", false
	}
	return span.Text, true
}

// previousWordPosition finds the pointer one word back, without moving.
func (e *Editor) previousWordPosition() (int, CursorPointer, bool) {
	if len(e.segments) == 0 {
		return 0, CursorPointer{}, false
	}

	if text, ok := e.currentSpanText(); ok {
		length := utf8.RuneCountInString(text)
		currentOffset := min(e.cursor.Offset, length)
		newOffset := previousWordBoundary(text, currentOffset)
		if newOffset < currentOffset {
			pointer := e.cursor.Clone()
			pointer.Offset = newOffset
			return e.cursorSegment, pointer, true
		}
	}

	for idx := e.cursorSegment - 1; idx >= 0; idx-- {
		segment := e.segments[idx]
		if segment.Len == 0 {
			continue
		}
		text, ok := e.segmentText(segment)
		if !ok {
			continue
		}
		pointer := CursorPointer{
			ParagraphPath: segment.ParagraphPath.Clone(),
			SpanPath:      segment.SpanPath.Clone(),
			Offset:        min(previousWordBoundary(text, segment.Len), segment.Len),
			SegmentKind:   segment.Kind,
			Style:         segment.Style,
		}
		return idx, pointer, true
	}

	return 0, CursorPointer{}, false
}

// nextWordPosition finds the pointer one word ahead, without moving.
func (e *Editor) nextWordPosition() (int, CursorPointer, bool) {
	if len(e.segments) == 0 {
		return 0, CursorPointer{}, false
	}

	if text, ok := e.currentSpanText(); ok {
		length := utf8.RuneCountInString(text)
		currentOffset := min(e.cursor.Offset, length)
		newOffset := nextWordBoundary(text, currentOffset)
		if newOffset > currentOffset {
			pointer := e.cursor.Clone()
			pointer.Offset = min(newOffset, length)
			return e.cursorSegment, pointer, true
		}
	}

	for idx := e.cursorSegment + 1; idx < len(e.segments); idx++ {
		segment := e.segments[idx]
		if segment.Len == 0 {
			continue
		}
		text, ok := e.segmentText(segment)
		if !ok {
			continue
		}
		pointer := CursorPointer{
			ParagraphPath: segment.ParagraphPath.Clone(),
			SpanPath:      segment.SpanPath.Clone(),
			Offset:        min(nextWordBoundary(text, 0), segment.Len),
			SegmentKind:   segment.Kind,
			Style:         segment.Style,
		}
		return idx, pointer, true
	}

	return 0, CursorPointer{}, false
}

// countBackwardSteps counts caret positions between the cursor and an
// earlier (segment, offset) target.
func (e *Editor) countBackwardSteps(targetSegment, targetOffset int) int {
	if len(e.segments) == 0 {
		return 0
	}

	if e.cursorSegment == targetSegment {
		length := e.currentSegmentLen()
		clampedTarget := min(targetOffset, length)
		return max(0, min(e.cursor.Offset, length)-clampedTarget)
	}

	if e.cursorSegment < targetSegment {
		return 0
	}

	count := e.cursor.Offset
	for idx := e.cursorSegment - 1; idx >= targetSegment; idx-- {
		segment := e.segments[idx]
		if idx == targetSegment {
			clampedTarget := min(targetOffset, segment.Len)
			count += max(0, segment.Len-clampedTarget)
		} else {
			count += segment.Len
		}
	}
	return count
}

// countForwardSteps counts caret positions between the cursor and a later
// (segment, offset) target.
func (e *Editor) countForwardSteps(targetSegment, targetOffset int) int {
	if len(e.segments) == 0 {
		return 0
	}

	if e.cursorSegment == targetSegment {
		length := e.currentSegmentLen()
		clampedTarget := min(targetOffset, length)
		return max(0, clampedTarget-min(e.cursor.Offset, length))
	}

	if e.cursorSegment > targetSegment {
		return 0
	}

	length := e.currentSegmentLen()
	count := max(0, length-min(e.cursor.Offset, length))
	for idx := e.cursorSegment + 1; idx < targetSegment; idx++ {
		count += e.segments[idx].Len
	}
	if targetSegment < len(e.segments) {
		count += min(targetOffset, e.segments[targetSegment].Len)
	}
	return count
}

func (e *Editor) rebuildSegments() {
	e.segments = collectSegments(e.doc, e.revealCodes)
	if len(e.segments) == 0 {
		e.ensurePlaceholderSegment()
		e.segments = collectSegments(e.doc, e.revealCodes)
	}
	if len(e.segments) == 0 {
		e.cursor = CursorPointer{}
		e.cursorSegment = 0
		return
	}
	e.syncCursorSegment()
	e.clampCursorOffset()
}

// updateSegmentsForParagraph splices fresh segments for one paragraph tree
// into the index instead of rebuilding everything. Much cheaper than
// rebuildSegments for localized edits.
func (e *Editor) updateSegmentsForParagraph(rootPath ParagraphPath) {
	startIdx, endIdx := findParagraphSegmentRange(e.segments, rootPath)
	fresh := collectSegmentsForParagraphTree(e.doc, rootPath, e.revealCodes)

	spliced := make([]Segment, 0, len(e.segments)-(endIdx-startIdx)+len(fresh))
	spliced = append(spliced, e.segments[:startIdx]...)
	spliced = append(spliced, fresh...)
	spliced = append(spliced, e.segments[endIdx:]...)
	e.segments = spliced

	if len(e.segments) == 0 {
		e.ensurePlaceholderSegment()
		e.segments = collectSegments(e.doc, e.revealCodes)
	}
	if len(e.segments) == 0 {
		e.cursor = CursorPointer{}
		e.cursorSegment = 0
		return
	}
	e.syncCursorSegment()
	e.clampCursorOffset()
}

// ensurePlaceholderSegment guarantees the document has a selectable span: an
// empty document gets one empty text paragraph, and an empty leading leaf
// paragraph gets one empty span.
func (e *Editor) ensurePlaceholderSegment() {
	if len(e.doc.Paragraphs) == 0 {
		e.doc.Paragraphs = append(e.doc.Paragraphs, document.NewTextParagraph(""))
		return
	}
	first := &e.doc.Paragraphs[0]
	if first.Type.IsPlain() && len(first.Content) == 0 {
		first.Content = append(first.Content, document.NewTextSpan(""))
	}
}

func (e *Editor) syncCursorSegment() {
	for index := range e.segments {
		if e.segments[index].matchesPointer(e.cursor) {
			e.cursorSegment = index
			return
		}
	}
	if len(e.segments) > 0 {
		e.cursorSegment = 0
		e.cursor.updateFromSegment(e.segments[0])
	}
}

func (e *Editor) clampCursorOffset() {
	if length := e.currentSegmentLen(); e.cursor.Offset > length {
		e.cursor.Offset = length
	}
}

// nearestTextPointerFor resolves a reveal pointer to the text position a
// user would expect: forward of a start tag, backward of an end tag.
func (e *Editor) nearestTextPointerFor(pointer CursorPointer) (CursorPointer, bool) {
	index := -1
	for i := range e.segments {
		if e.segments[i].matchesPointer(pointer) {
			index = i
			break
		}
	}
	if index < 0 {
		return CursorPointer{}, false
	}
	switch pointer.SegmentKind {
	case SegmentRevealStart:
		if p, ok := e.findTextPointerForward(index + 1); ok {
			return p, true
		}
		return e.findTextPointerBackward(index)
	case SegmentRevealEnd:
		if p, ok := e.findTextPointerBackward(index); ok {
			return p, true
		}
		return e.findTextPointerForward(index + 1)
	default:
		return CursorPointer{}, false
	}
}

func (e *Editor) findTextPointerForward(startIndex int) (CursorPointer, bool) {
	for idx := startIndex; idx < len(e.segments); idx++ {
		segment := e.segments[idx]
		if segment.Kind == SegmentText {
			return CursorPointer{
				ParagraphPath: segment.ParagraphPath.Clone(),
				SpanPath:      segment.SpanPath.Clone(),
				Offset:        0,
				SegmentKind:   SegmentText,
			}, true
		}
	}
	return CursorPointer{}, false
}

func (e *Editor) findTextPointerBackward(startIndex int) (CursorPointer, bool) {
	for idx := min(startIndex, len(e.segments)) - 1; idx >= 0; idx-- {
		segment := e.segments[idx]
		if segment.Kind == SegmentText {
			return CursorPointer{
				ParagraphPath: segment.ParagraphPath.Clone(),
				SpanPath:      segment.SpanPath.Clone(),
				Offset:        segment.Len,
				SegmentKind:   SegmentText,
			}, true
		}
	}
	return CursorPointer{}, false
}

// selectTextInParagraph finds the first (or last, when preferTrailing) text
// segment whose paragraph path equals the target exactly.
func selectTextInParagraph(segments []Segment, paragraphPath ParagraphPath, preferTrailing bool) (int, Segment, bool) {
	foundIndex := -1
	for index := range segments {
		segment := segments[index]
		if !segment.ParagraphPath.Equal(paragraphPath) {
			continue
		}
		if segment.Kind != SegmentText {
			continue
		}
		if !preferTrailing {
			return index, segment, true
		}
		foundIndex = index
	}
	if foundIndex >= 0 {
		return foundIndex, segments[foundIndex], true
	}
	return 0, Segment{}, false
}
