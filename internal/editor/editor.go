package editor

import (
	"unicode/utf8"

	"github.com/zjrosen/fold/internal/document"
)

// Editor owns a document tree, the flattened segment index over it, and the
// cursor. All mutations keep the three consistent: edit the tree, refresh
// the segments (incrementally when the edit touched one paragraph), then
// restore the cursor.
type Editor struct {
	doc           *document.Document
	segments      []Segment
	cursor        CursorPointer
	cursorSegment int
	revealCodes   bool
}

// New wraps a document in an editor with the cursor on the first segment.
func New(doc *document.Document) *Editor {
	if doc == nil {
		doc = document.New()
	}
	e := &Editor{doc: doc}
	ensureDocumentInitialized(e.doc)
	e.rebuildSegments()
	e.EnsureCursorSelectable()
	return e
}

// Document returns the underlying tree. Mutating it directly leaves the
// segment index stale; use SetDocument for wholesale replacement.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// SetDocument swaps in a new tree, keeping the cursor position when it
// still resolves.
func (e *Editor) SetDocument(doc *document.Document) {
	if doc == nil {
		doc = document.New()
	}
	stable := e.CursorStablePointer()
	e.doc = doc
	ensureDocumentInitialized(e.doc)
	e.rebuildSegments()
	if !e.MoveToPointer(stable) && !e.fallbackMoveToText(stable, false) {
		e.EnsureCursorSelectable()
	}
}

// Segments returns the current segment index. Callers must not mutate it.
func (e *Editor) Segments() []Segment {
	return e.segments
}

// CursorSegmentIndex returns the index of the segment under the cursor.
func (e *Editor) CursorSegmentIndex() int {
	return e.cursorSegment
}

// RevealCodes reports whether style boundaries are addressable.
func (e *Editor) RevealCodes() bool {
	return e.revealCodes
}

// SetRevealCodes toggles reveal codes mode, rebuilding the segment index and
// keeping the cursor on the same text position.
func (e *Editor) SetRevealCodes(enabled bool) {
	if e.revealCodes == enabled {
		return
	}
	stable := e.CursorStablePointer()
	e.revealCodes = enabled
	e.rebuildSegments()
	if !e.MoveToPointer(stable) && !e.fallbackMoveToText(stable, false) {
		e.EnsureCursorSelectable()
	}
}

// CurrentParagraphType returns the type of the paragraph (or containing
// checklist) under the cursor.
func (e *Editor) CurrentParagraphType() (document.ParagraphType, bool) {
	if checklistItemRef(e.doc, e.cursor.ParagraphPath) != nil {
		return document.Checklist, true
	}
	if paragraph := paragraphRef(e.doc, e.cursor.ParagraphPath); paragraph != nil {
		return paragraph.Type, true
	}
	return document.Text, false
}

// InsertRune types one character at the cursor.
func (e *Editor) InsertRune(ch rune) bool {
	changed := ensureListEntryHasParagraph(e.doc, e.cursor.ParagraphPath)
	if ensureChecklistItemHasContent(e.doc, e.cursor.ParagraphPath) {
		changed = true
	}
	if changed {
		e.rebuildSegments()
	}
	if !e.prepareCursorForTextInsertion() {
		return false
	}
	if !insertCharAt(e.doc, e.cursor, e.cursor.Offset, ch) {
		return false
	}
	e.cursor.Offset++
	e.updateSegmentsForParagraph(NewRootPath(e.cursor.ParagraphPath.RootIndex()))
	return true
}

// prepareCursorForTextInsertion moves a reveal-boundary cursor to the text
// position typing should land on: before a start tag, after an end tag.
func (e *Editor) prepareCursorForTextInsertion() bool {
	kind, ok := e.currentSegmentKind()
	if !ok {
		return false
	}
	switch kind {
	case SegmentText:
		return true
	case SegmentRevealStart:
		if idx, ok := e.findPreviousTextSegmentInParagraph(e.cursorSegment); ok {
			e.setCursorToTextSegment(idx, e.segments[idx], e.segments[idx].Len)
			return true
		}
		pointer := e.cursor.Clone()
		pointer.SegmentKind = SegmentText
		pointer.Style = document.StyleNone
		pointer.Offset = 0
		return e.fallbackMoveToText(pointer, false)
	case SegmentRevealEnd:
		pointer := e.cursor.Clone()
		pointer.SegmentKind = SegmentText
		pointer.Style = document.StyleNone
		if text, ok := e.spanTextForPointer(pointer); ok {
			pointer.Offset = utf8.RuneCountInString(text)
		}
		return e.fallbackMoveToText(pointer, true)
	default:
		return false
	}
}

// Backspace deletes the character (or reveal tag) before the cursor, merging
// paragraphs when the cursor sits at a boundary.
func (e *Editor) Backspace() bool {
	if e.CurrentParagraphIsEmpty() {
		return e.removeCurrentParagraph(removeBackward)
	}

	if e.cursor.Offset == 0 {
		if e.tryMergeChecklistItemWithPreviousParagraph() {
			return true
		}
		if !e.shiftToPreviousSegment() {
			return false
		}
		length := e.currentSegmentLen()
		if length == 0 {
			return false
		}
		e.cursor.Offset = length - 1
	} else {
		e.cursor.Offset--
	}

	if kind, ok := e.currentSegmentKind(); ok && kind != SegmentText {
		return e.removeRevealTagAndRestore(e.cursorSegment)
	}

	if removeCharAt(e.doc, e.cursor, e.cursor.Offset) {
		e.updateSegmentsForParagraph(NewRootPath(e.cursor.ParagraphPath.RootIndex()))
		return true
	}
	return false
}

// Delete deletes the character (or reveal tag) after the cursor, merging
// with the next paragraph at the end of the current one.
func (e *Editor) Delete() bool {
	if e.CurrentParagraphIsEmpty() {
		return e.removeCurrentParagraph(removeForward)
	}

	if e.cursor.Offset < e.currentSegmentLen() {
		if kind, ok := e.currentSegmentKind(); ok && kind != SegmentText {
			return e.removeRevealTagAndRestore(e.cursorSegment)
		}
		if removeCharAt(e.doc, e.cursor, e.cursor.Offset) {
			e.updateSegmentsForParagraph(NewRootPath(e.cursor.ParagraphPath.RootIndex()))
			return true
		}
		return false
	}

	if e.cursorSegment+1 >= len(e.segments) {
		return false
	}
	next := e.segments[e.cursorSegment+1]
	if next.isReveal() {
		return e.removeRevealTagAndRestore(e.cursorSegment + 1)
	}
	if !next.ParagraphPath.Equal(e.cursor.ParagraphPath) {
		return e.tryMergeWithNextParagraph()
	}

	pointer := CursorPointer{
		ParagraphPath: next.ParagraphPath.Clone(),
		SpanPath:      next.SpanPath.Clone(),
		SegmentKind:   SegmentText,
	}
	if removeCharAt(e.doc, pointer, 0) {
		e.updateSegmentsForParagraph(NewRootPath(pointer.ParagraphPath.RootIndex()))
		return true
	}
	return false
}

// removeRevealTagAndRestore deletes a style boundary by unstyling its span,
// then re-parks the cursor on the text the tag wrapped.
func (e *Editor) removeRevealTagAndRestore(segmentIdx int) bool {
	pointer, ok := e.removeRevealTagSegment(segmentIdx)
	if !ok {
		return false
	}
	e.rebuildSegments()
	if !e.MoveToPointer(pointer) {
		e.fallbackMoveToText(pointer, true)
	}
	return true
}

// removeRevealTagSegment clears the style (and link target) of the span a
// reveal segment belongs to, merging the unstyled remnants into their
// neighbors. Returns the text pointer the cursor should land on.
func (e *Editor) removeRevealTagSegment(segmentIdx int) (CursorPointer, bool) {
	if segmentIdx >= len(e.segments) {
		return CursorPointer{}, false
	}
	segment := e.segments[segmentIdx]
	if !segment.isReveal() {
		return CursorPointer{}, false
	}

	pointer := CursorPointer{
		ParagraphPath: segment.ParagraphPath.Clone(),
		SpanPath:      segment.SpanPath.Clone(),
		SegmentKind:   SegmentText,
	}
	span := spanForPointer(e.doc, pointer)
	if span == nil {
		return CursorPointer{}, false
	}
	textLen := utf8.RuneCountInString(span.Text)
	span.Style = document.StyleNone
	span.LinkTarget = ""

	if item := checklistItemRef(e.doc, segment.ParagraphPath); item != nil {
		pruneAndMergeSpans(&item.Content)
		if len(item.Content) == 0 {
			item.Content = append(item.Content, document.NewTextSpan(""))
		}
	} else if paragraph := paragraphRef(e.doc, segment.ParagraphPath); paragraph != nil {
		pruneAndMergeSpans(&paragraph.Content)
		if len(paragraph.Content) == 0 {
			paragraph.Content = append(paragraph.Content, document.NewTextSpan(""))
		}
	}

	if segment.Kind == SegmentRevealEnd {
		pointer.Offset = textLen
	}
	return pointer, true
}

// DeleteWordBackward deletes from the cursor back to the previous word
// boundary, crossing segment and paragraph boundaries like repeated
// backspaces would.
func (e *Editor) DeleteWordBackward() bool {
	targetSegment, target, ok := e.previousWordPosition()
	if !ok {
		return false
	}
	steps := e.countBackwardSteps(targetSegment, target.Offset)
	if steps == 0 {
		return false
	}
	for i := 0; i < steps; i++ {
		if e.cursor.Equal(target) {
			break
		}
		if !e.Backspace() {
			break
		}
	}
	if !e.cursor.Equal(target) {
		e.MoveToPointer(target)
	}
	return true
}

// DeleteWordForward deletes from the cursor forward to the next word
// boundary.
func (e *Editor) DeleteWordForward() bool {
	start := e.cursor.Clone()
	targetSegment, target, ok := e.nextWordPosition()
	if !ok {
		return false
	}
	steps := e.countForwardSteps(targetSegment, target.Offset)
	if steps == 0 {
		return false
	}

	if !e.MoveToPointer(target) {
		if targetSegment >= len(e.segments) {
			return false
		}
		e.cursorSegment = targetSegment
		e.cursor = target.Clone()
		e.clampCursorOffset()
	}

	for i := 0; i < steps; i++ {
		if e.cursor.Equal(start) {
			break
		}
		if !e.Backspace() {
			break
		}
	}
	if !e.cursor.Equal(start) {
		e.MoveToPointer(start)
	}
	return true
}

// CurrentParagraphIsEmpty reports whether the paragraph or checklist item
// under the cursor has no content at all.
func (e *Editor) CurrentParagraphIsEmpty() bool {
	if item := checklistItemRef(e.doc, e.cursor.ParagraphPath); item != nil {
		if len(item.Children) > 0 {
			return false
		}
		for _, span := range item.Content {
			if !spanIsEmpty(span) {
				return false
			}
		}
		return true
	}
	if paragraph := paragraphRef(e.doc, e.cursor.ParagraphPath); paragraph != nil {
		return paragraphIsEmpty(paragraph)
	}
	return false
}

type removalDirection int

const (
	removeBackward removalDirection = iota
	removeForward
)

// currentParagraphSegmentRange returns the half-open segment range sharing
// the cursor's exact paragraph path.
func (e *Editor) currentParagraphSegmentRange() (int, int) {
	start := e.cursorSegment
	end := e.cursorSegment + 1
	if start >= len(e.segments) {
		return len(e.segments), len(e.segments)
	}
	path := e.segments[start].ParagraphPath
	for start > 0 && e.segments[start-1].ParagraphPath.Equal(path) {
		start--
	}
	for end < len(e.segments) && e.segments[end].ParagraphPath.Equal(path) {
		end++
	}
	return start, end
}

// removeCurrentParagraph drops the empty paragraph under the cursor and
// parks the cursor on the neighbor the removal direction prefers.
func (e *Editor) removeCurrentParagraph(direction removalDirection) bool {
	if len(e.segments) == 0 {
		return false
	}
	start, end := e.currentParagraphSegmentRange()

	pointerAt := func(idx, offset int) CursorPointer {
		segment := e.segments[idx]
		return CursorPointer{
			ParagraphPath: segment.ParagraphPath.Clone(),
			SpanPath:      segment.SpanPath.Clone(),
			Offset:        offset,
			SegmentKind:   segment.Kind,
			Style:         segment.Style,
		}
	}

	var target CursorPointer
	hasTarget := false
	if direction == removeBackward {
		if start > 0 {
			target = pointerAt(start-1, e.segments[start-1].Len)
			hasTarget = true
		} else if end < len(e.segments) {
			target = pointerAt(end, 0)
			hasTarget = true
		}
	} else {
		if end < len(e.segments) {
			target = pointerAt(end, 0)
			hasTarget = true
		} else if start > 0 {
			target = pointerAt(start-1, e.segments[start-1].Len)
			hasTarget = true
		}
	}

	removedPath := e.cursor.ParagraphPath.Clone()
	removedRoot := removedPath.RootIndex()
	topLevelRemoved := false

	if ctx, ok := extractChecklistItemContext(removedPath); ok && len(ctx.tailSteps) == 0 {
		if _, ok := takeChecklistItemAt(e.doc, ctx); !ok {
			return false
		}
		if len(ctx.indices) == 1 {
			if checklist := paragraphRef(e.doc, ctx.checklistPath); checklist != nil && len(checklist.Items) == 0 {
				if removeParagraphByPath(e.doc, ctx.checklistPath) && ctx.checklistPath.Len() == 1 {
					topLevelRemoved = true
					removedRoot = ctx.checklistPath.RootIndex()
				}
			}
		}
	} else {
		if !removeParagraphByPath(e.doc, removedPath) {
			return false
		}
		topLevelRemoved = removedPath.Len() == 1
	}

	e.rebuildSegments()

	if hasTarget {
		if topLevelRemoved && target.ParagraphPath.RootIndex() > removedRoot {
			steps := append([]PathStep(nil), target.ParagraphPath.Steps()...)
			steps[0].Index--
			target.ParagraphPath = PathFromSteps(steps...)
		}
		if e.MoveToPointer(target) {
			return true
		}
		if e.fallbackMoveToText(target, direction == removeBackward) {
			return true
		}
	}
	e.EnsureCursorSelectable()
	return true
}

// spansTextLength counts the runes across a span tree.
func spansTextLength(spans []document.Span) int {
	total := 0
	for _, span := range spans {
		total += utf8.RuneCountInString(span.Text)
		total += spansTextLength(span.Children)
	}
	return total
}

func containerTextLength(doc *document.Document, path ParagraphPath) int {
	if item := checklistItemRef(doc, path); item != nil {
		return spansTextLength(item.Content)
	}
	if paragraph := paragraphRef(doc, path); paragraph != nil {
		return spansTextLength(paragraph.Content)
	}
	return 0
}

// pointerAtParagraphCharOffset maps a flat character offset within one
// paragraph to the (span, offset) pointer at that position.
func (e *Editor) pointerAtParagraphCharOffset(path ParagraphPath, charOffset int) (CursorPointer, bool) {
	remaining := charOffset
	lastIdx := -1
	for idx := range e.segments {
		segment := e.segments[idx]
		if segment.Kind != SegmentText || !segment.ParagraphPath.Equal(path) {
			continue
		}
		lastIdx = idx
		if remaining <= segment.Len {
			return CursorPointer{
				ParagraphPath: segment.ParagraphPath.Clone(),
				SpanPath:      segment.SpanPath.Clone(),
				Offset:        remaining,
				SegmentKind:   SegmentText,
			}, true
		}
		remaining -= segment.Len
	}
	if lastIdx >= 0 {
		segment := e.segments[lastIdx]
		return CursorPointer{
			ParagraphPath: segment.ParagraphPath.Clone(),
			SpanPath:      segment.SpanPath.Clone(),
			Offset:        segment.Len,
			SegmentKind:   SegmentText,
		}, true
	}
	return CursorPointer{}, false
}

// appendContentToContainer splices spans onto the end of a paragraph's or
// checklist item's content, merging compatible neighbors.
func appendContentToContainer(doc *document.Document, path ParagraphPath, spans []document.Span) bool {
	if item := checklistItemRef(doc, path); item != nil {
		item.Content = append(item.Content, spans...)
		pruneAndMergeSpans(&item.Content)
		if len(item.Content) == 0 {
			item.Content = append(item.Content, document.NewTextSpan(""))
		}
		return true
	}
	if paragraph := paragraphRef(doc, path); paragraph != nil && paragraph.Type.IsPlain() {
		paragraph.Content = append(paragraph.Content, spans...)
		pruneAndMergeSpans(&paragraph.Content)
		if len(paragraph.Content) == 0 {
			paragraph.Content = append(paragraph.Content, document.NewTextSpan(""))
		}
		return true
	}
	return false
}

func (e *Editor) containerCanAbsorb(path ParagraphPath) bool {
	if checklistItemRef(e.doc, path) != nil {
		return true
	}
	if paragraph := paragraphRef(e.doc, path); paragraph != nil && paragraph.Type.IsPlain() {
		return true
	}
	return false
}

// tryMergeWithNextParagraph pulls the next paragraph's content onto the end
// of the current one. Only leaf content merges; containers stay put. The
// emptied host (list, checklist, quote) is removed when the merge drains it.
func (e *Editor) tryMergeWithNextParagraph() bool {
	currentPath := e.cursor.ParagraphPath.Clone()
	if !e.containerCanAbsorb(currentPath) {
		return false
	}
	nextPath, ok := e.nextParagraphPath()
	if !ok {
		return false
	}
	targetLen := containerTextLength(e.doc, currentPath)

	steps := nextPath.Steps()
	if len(steps) == 0 {
		return false
	}
	last := steps[len(steps)-1]

	switch last.Kind {
	case StepEntry:
		if last.ParagraphIndex != 0 {
			return false
		}
		ctx, ok := extractEntryContext(nextPath)
		if !ok || len(ctx.tailSteps) > 0 {
			return false
		}
		list := paragraphRef(e.doc, ctx.listPath)
		if list == nil || !list.Type.IsList() || ctx.entryIndex >= len(list.Entries) {
			return false
		}
		entry := list.Entries[ctx.entryIndex]
		if len(entry) == 0 || !entry[0].Type.IsPlain() {
			return false
		}
		taken, becameEmpty, ok := takeListEntry(e.doc, ctx)
		if !ok {
			return false
		}
		if becameEmpty {
			removeParagraphByPath(e.doc, ctx.listPath)
		}
		if !appendContentToContainer(e.doc, currentPath, taken[0].Content) {
			return false
		}
		insertAfter := currentPath.Clone()
		for _, rest := range taken[1:] {
			if newPath, ok := insertParagraphAfterParent(e.doc, insertAfter, rest); ok {
				insertAfter = newPath
			}
		}
	case StepChecklistItem:
		ctx, ok := extractChecklistItemContext(nextPath)
		if !ok || len(ctx.tailSteps) > 0 {
			return false
		}
		item, ok := takeChecklistItemAt(e.doc, ctx)
		if !ok {
			return false
		}
		if len(ctx.indices) == 1 {
			if checklist := paragraphRef(e.doc, ctx.checklistPath); checklist != nil && len(checklist.Items) == 0 {
				removeParagraphByPath(e.doc, ctx.checklistPath)
			}
		}
		if !appendContentToContainer(e.doc, currentPath, item.Content) {
			return false
		}
		if len(item.Children) > 0 {
			if currentItem := checklistItemRef(e.doc, currentPath); currentItem != nil {
				currentItem.Children = append(currentItem.Children, item.Children...)
			} else {
				checklist := document.NewParagraph(document.Checklist).WithItems(item.Children...)
				insertParagraphAfterParent(e.doc, currentPath, checklist)
			}
		}
	default:
		paragraph := paragraphRef(e.doc, nextPath)
		if paragraph == nil || !paragraph.Type.IsPlain() {
			return false
		}
		taken, ok := takeParagraphAt(e.doc, nextPath)
		if !ok {
			return false
		}
		if last.Kind == StepChild {
			if parentPath, hasParent := nextPath.Parent(); hasParent {
				if quote := paragraphRef(e.doc, parentPath); quote != nil &&
					quote.Type == document.Quote && len(quote.Children) == 0 {
					removeParagraphByPath(e.doc, parentPath)
				}
			}
		}
		if !appendContentToContainer(e.doc, currentPath, taken.Content) {
			return false
		}
	}

	e.rebuildSegments()
	if pointer, ok := e.pointerAtParagraphCharOffset(currentPath, targetLen); ok {
		if !e.MoveToPointer(pointer) {
			e.fallbackMoveToText(pointer, true)
		}
	} else if !e.fallbackMoveToText(e.cursor, true) {
		e.EnsureCursorSelectable()
	}
	return true
}

// tryMergeChecklistItemWithPreviousParagraph handles backspace at the very
// start of a checklist item: the item's content joins the previous sibling
// item, or the paragraph before the checklist.
func (e *Editor) tryMergeChecklistItemWithPreviousParagraph() bool {
	if e.cursor.SegmentKind != SegmentText || e.cursor.Offset != 0 {
		return false
	}
	ctx, ok := extractChecklistItemContext(e.cursor.ParagraphPath)
	if !ok || len(ctx.tailSteps) > 0 {
		return false
	}

	for idx := e.cursorSegment - 1; idx >= 0; idx-- {
		segment := e.segments[idx]
		if !segment.ParagraphPath.Equal(e.cursor.ParagraphPath) {
			break
		}
		if segment.Kind == SegmentText && segment.Len > 0 {
			return false
		}
	}

	var targetPath ParagraphPath
	if prev, ok := previousSiblingPath(e.cursor.ParagraphPath); ok {
		targetPath = prev
	} else {
		found := false
		for idx := e.cursorSegment - 1; idx >= 0; idx-- {
			segment := e.segments[idx]
			if segment.Kind != SegmentText {
				continue
			}
			if segment.ParagraphPath.Equal(e.cursor.ParagraphPath) {
				continue
			}
			targetPath = segment.ParagraphPath.Clone()
			found = true
			break
		}
		if !found {
			return false
		}
	}
	if !e.containerCanAbsorb(targetPath) {
		return false
	}

	targetLen := containerTextLength(e.doc, targetPath)

	item, ok := takeChecklistItemAt(e.doc, ctx)
	if !ok {
		return false
	}
	if len(ctx.indices) == 1 {
		if checklist := paragraphRef(e.doc, ctx.checklistPath); checklist != nil && len(checklist.Items) == 0 {
			removeParagraphByPath(e.doc, ctx.checklistPath)
		}
	}

	if !appendContentToContainer(e.doc, targetPath, item.Content) {
		return false
	}
	if len(item.Children) > 0 {
		if targetItem := checklistItemRef(e.doc, targetPath); targetItem != nil {
			targetItem.Children = append(targetItem.Children, item.Children...)
		} else {
			checklist := document.NewParagraph(document.Checklist).WithItems(item.Children...)
			insertParagraphAfterParent(e.doc, targetPath, checklist)
		}
	}

	e.rebuildSegments()
	if pointer, ok := e.pointerAtParagraphCharOffset(targetPath, targetLen); ok {
		if !e.MoveToPointer(pointer) {
			e.fallbackMoveToText(pointer, true)
		}
	} else if !e.fallbackMoveToText(e.cursor, true) {
		e.EnsureCursorSelectable()
	}
	return true
}

// CurrentChecklistItemState reports the checked state of the item under the
// cursor; ok is false off-checklist.
func (e *Editor) CurrentChecklistItemState() (bool, bool) {
	item := checklistItemRef(e.doc, e.cursor.ParagraphPath)
	if item == nil {
		return false, false
	}
	return item.Checked, true
}

// SetCurrentChecklistItemChecked sets the checked state of the item under
// the cursor.
func (e *Editor) SetCurrentChecklistItemChecked(checked bool) bool {
	item := checklistItemRef(e.doc, e.cursor.ParagraphPath)
	if item == nil {
		return false
	}
	item.Checked = checked
	return true
}

// ToggleChecklistItem flips the checked state of the item under the cursor.
func (e *Editor) ToggleChecklistItem() bool {
	item := checklistItemRef(e.doc, e.cursor.ParagraphPath)
	if item == nil {
		return false
	}
	item.Checked = !item.Checked
	return true
}

// CanIndentMore reports whether the paragraph under the cursor has a
// previous sibling (or ancestor sibling) it could nest under.
func (e *Editor) CanIndentMore() bool {
	if _, ok := findIndentTarget(e.doc, e.cursor.ParagraphPath); ok {
		return true
	}
	if ctx, ok := extractEntryContext(e.cursor.ParagraphPath); ok {
		if _, ok := findContainerIndentTarget(e.doc, ctx.listPath); ok {
			return true
		}
	}
	return false
}

// CanIndentLess reports whether the paragraph under the cursor is nested.
func (e *Editor) CanIndentLess() bool {
	if ctx, ok := extractChecklistItemContext(e.cursor.ParagraphPath); ok {
		return len(ctx.indices) > 1
	}
	return e.cursor.ParagraphPath.Len() > 1
}

// CanChangeParagraphType reports whether retyping applies at the cursor.
// Nested checklist items must be unindented first.
func (e *Editor) CanChangeParagraphType() bool {
	if ctx, ok := extractChecklistItemContext(e.cursor.ParagraphPath); ok {
		return len(ctx.indices) <= 1
	}
	return true
}

// IndentCurrentParagraph nests the paragraph under the cursor into the
// container the previous sibling offers.
func (e *Editor) IndentCurrentParagraph() bool {
	path := e.cursor.ParagraphPath.Clone()
	stable := e.CursorStablePointer()

	target, ok := findIndentTarget(e.doc, path)
	entryCtx, hasEntryCtx := extractEntryContext(path)
	if !ok {
		if hasEntryCtx {
			target, ok = findContainerIndentTarget(e.doc, entryCtx.listPath)
		}
		if !ok {
			return false
		}
	}

	var newPointer CursorPointer
	moved := false

	switch {
	case target.kind == indentIntoListEntry && hasEntryCtx:
		if entryHasMultipleParagraphs(e.doc, entryCtx) {
			newPointer, moved = indentParagraphWithinEntry(e.doc, stable, entryCtx)
		} else {
			newPointer, moved = indentListEntryIntoEntry(e.doc, stable, entryCtx, target.entryIndex)
		}
	case target.kind == indentIntoChecklistItem:
		if itemCtx, ok := extractChecklistItemContext(path); ok && len(itemCtx.tailSteps) == 0 {
			newPointer, moved = indentChecklistItemIntoItem(e.doc, stable, target.path)
		} else if paragraph, ok := takeParagraphAt(e.doc, path); ok {
			if newPath, ok := appendParagraphAsChecklistChild(e.doc, target.path, paragraph); ok {
				newPointer = CursorPointer{
					ParagraphPath: newPath,
					SpanPath:      stable.SpanPath.Clone(),
					Offset:        stable.Offset,
					SegmentKind:   SegmentText,
				}
				moved = true
			}
		}
	case target.kind == indentIntoList && hasEntryCtx && isSingleParagraphEntry(e.doc, path):
		newPointer, moved = indentListEntryIntoForeignList(e.doc, stable, entryCtx, target.path)
	default:
		paragraph, ok := takeParagraphAt(e.doc, path)
		if !ok {
			return false
		}
		var newPath ParagraphPath
		placed := false
		switch target.kind {
		case indentIntoQuote:
			newPath, placed = appendParagraphToQuote(e.doc, target.path, paragraph)
		case indentIntoList:
			if !hasEntryCtx {
				if entryIndex, found := listEntryAppendTarget(e.doc, target.path); found {
					newPath, placed = appendParagraphToEntry(e.doc, target.path, entryIndex, paragraph)
				}
			}
			if !placed {
				newPath, placed = appendParagraphToList(e.doc, target.path, paragraph)
			}
		case indentIntoListEntry:
			newPath, placed = appendParagraphToEntry(e.doc, target.path, target.entryIndex, paragraph)
		}
		if placed {
			newPointer = CursorPointer{
				ParagraphPath: newPath,
				SpanPath:      stable.SpanPath.Clone(),
				Offset:        stable.Offset,
				SegmentKind:   SegmentText,
			}
			moved = true
		}
	}

	e.rebuildSegments()
	restore := stable
	if moved {
		restore = newPointer
	}
	if !e.MoveToPointer(restore) && !e.fallbackMoveToText(restore, false) {
		e.EnsureCursorSelectable()
	}
	return moved
}

// UnindentCurrentParagraph promotes the paragraph under the cursor one
// nesting level up.
func (e *Editor) UnindentCurrentParagraph() bool {
	if pointer, ok := unindentChecklistItem(e.doc, e.cursor); ok {
		e.rebuildSegments()
		if !e.MoveToPointer(pointer) && !e.fallbackMoveToText(pointer, false) {
			e.EnsureCursorSelectable()
		}
		return true
	}

	path := e.cursor.ParagraphPath.Clone()
	if path.Len() <= 1 {
		return false
	}
	steps := path.Steps()
	if steps[len(steps)-1].Kind == StepEntry {
		return e.unindentListEntry()
	}

	parentPath, ok := path.Parent()
	if !ok {
		return false
	}
	stable := e.CursorStablePointer()
	paragraph, ok := takeParagraphAt(e.doc, path)
	if !ok {
		return false
	}
	newPath, ok := insertParagraphAfterParent(e.doc, parentPath, paragraph)
	if !ok {
		return false
	}
	pointer := CursorPointer{
		ParagraphPath: newPath,
		SpanPath:      stable.SpanPath.Clone(),
		Offset:        stable.Offset,
		SegmentKind:   SegmentText,
	}
	e.rebuildSegments()
	if !e.MoveToPointer(pointer) && !e.fallbackMoveToText(pointer, false) {
		e.EnsureCursorSelectable()
	}
	return true
}

func (e *Editor) unindentListEntry() bool {
	ctx, ok := extractEntryContext(e.cursor.ParagraphPath)
	if !ok || len(ctx.tailSteps) > 0 {
		return false
	}
	stable := e.CursorStablePointer()

	var pointer CursorPointer
	if ctx.paragraphIndex > 0 {
		paragraph, ok := takeParagraphAt(e.doc, e.cursor.ParagraphPath)
		if !ok {
			return false
		}
		newPath, ok := insertParagraphAfterParent(e.doc, ctx.listPath, paragraph)
		if !ok {
			return false
		}
		pointer = CursorPointer{
			ParagraphPath: newPath,
			SpanPath:      stable.SpanPath.Clone(),
			Offset:        stable.Offset,
			SegmentKind:   SegmentText,
		}
	} else if promoted, ok := promoteListEntryToParent(e.doc, stable, ctx, ctx.paragraphIndex); ok {
		pointer = promoted
	} else {
		currentType := document.Text
		if paragraph := paragraphRef(e.doc, e.cursor.ParagraphPath); paragraph != nil {
			currentType = paragraph.Type
		}
		broken, ok := breakListEntryForNonListTarget(e.doc, e.cursor.ParagraphPath, currentType)
		if !ok {
			return false
		}
		pointer = broken
	}

	e.rebuildSegments()
	if !e.MoveToPointer(pointer) && !e.fallbackMoveToText(pointer, false) {
		e.EnsureCursorSelectable()
	}
	return true
}

// SetParagraphType retypes the paragraph under the cursor, converting
// between leaf, quote, list, and checklist shapes and coalescing the result
// with adjacent lists of the same type.
func (e *Editor) SetParagraphType(target document.ParagraphType) bool {
	stable := e.CursorStablePointer()
	workingPath := e.cursor.ParagraphPath.Clone()

	if ctx, ok := extractChecklistItemContext(workingPath); ok && len(ctx.indices) > 1 {
		return false
	}

	if scope, ok := determineParentScope(e.doc, workingPath); ok {
		promote := scope.relation == relationChild || !isListType(target)
		if promote && promoteSingleChildIntoParent(e.doc, scope) {
			workingPath = scope.parentPath.Clone()
		}
	}

	inChecklistContext := false
	if _, ok := extractChecklistItemContext(workingPath); ok {
		inChecklistContext = true
	}

	var (
		replacement    CursorPointer
		hasReplacement bool
		handled        bool
		listPath       ParagraphPath
		hasListPath    bool
	)

	switch {
	case inChecklistContext && target != document.Checklist:
		pointer, ok := breakListEntryForNonListTarget(e.doc, workingPath, target)
		if !ok {
			return false
		}
		replacement, hasReplacement = pointer, true
		handled = true
	case inChecklistContext && target == document.Checklist:
		handled = true
	case !isListType(target) && isSingleParagraphEntry(e.doc, workingPath):
		pointer, ok := breakListEntryForNonListTarget(e.doc, workingPath, target)
		if !ok {
			return false
		}
		replacement, hasReplacement = pointer, true
		handled = true
	case isListType(target):
		if ancestor, ok := findListAncestorPath(e.doc, workingPath); ok {
			if !updateExistingListType(e.doc, ancestor, target) {
				return false
			}
			listPath, hasListPath = ancestor, true
		} else {
			pointer, ok := convertParagraphIntoList(e.doc, workingPath, target)
			if !ok {
				return false
			}
			replacement, hasReplacement = pointer, true
			listPath, hasListPath = workingPath.Clone(), true
		}
	default:
		if !updateParagraphType(e.doc, workingPath, target) {
			return false
		}
	}

	var (
		postMerge    CursorPointer
		hasPostMerge bool
	)
	if isListType(target) && !handled && hasListPath {
		basePath := stable.ParagraphPath
		if hasReplacement {
			basePath = replacement.ParagraphPath
		}
		if ctx, ok := extractEntryContext(basePath); ok {
			if mergedPath, mergedEntryIdx, ok := mergeAdjacentLists(e.doc, listPath, ctx.entryIndex); ok {
				steps := append([]PathStep(nil), mergedPath.Steps()...)
				if target == document.Checklist {
					steps = append(steps, ChecklistItemStep(mergedEntryIdx))
				} else {
					steps = append(steps, EntryStep(mergedEntryIdx, ctx.paragraphIndex))
				}
				steps = append(steps, ctx.tailSteps...)
				spanPath := stable.SpanPath.Clone()
				offset := stable.Offset
				if hasReplacement {
					spanPath = replacement.SpanPath.Clone()
					offset = replacement.Offset
				}
				postMerge = CursorPointer{
					ParagraphPath: PathFromSteps(steps...),
					SpanPath:      spanPath,
					Offset:        offset,
					SegmentKind:   SegmentText,
				}
				hasPostMerge = true
			}
		}
	}

	var hint CursorPointer
	hasHint := false
	if !handled && !hasReplacement {
		switch {
		case isListType(target) && hasListPath:
			if ctx, ok := extractEntryContext(stable.ParagraphPath); ok {
				steps := append([]PathStep(nil), listPath.Steps()...)
				if target == document.Checklist {
					steps = append(steps, ChecklistItemStep(ctx.entryIndex))
				} else {
					steps = append(steps, EntryStep(ctx.entryIndex, ctx.paragraphIndex))
				}
				steps = append(steps, ctx.tailSteps...)
				hint = CursorPointer{
					ParagraphPath: PathFromSteps(steps...),
					SpanPath:      stable.SpanPath.Clone(),
					Offset:        stable.Offset,
					SegmentKind:   SegmentText,
				}
				hasHint = true
			}
		case target == document.Quote:
			steps := append([]PathStep(nil), workingPath.Steps()...)
			steps = append(steps, ChildStep(0))
			hint = CursorPointer{
				ParagraphPath: PathFromSteps(steps...),
				SpanPath:      stable.SpanPath.Clone(),
				Offset:        stable.Offset,
				SegmentKind:   SegmentText,
			}
			hasHint = true
		default:
			hint = CursorPointer{
				ParagraphPath: workingPath.Clone(),
				SpanPath:      stable.SpanPath.Clone(),
				Offset:        stable.Offset,
				SegmentKind:   SegmentText,
			}
			hasHint = true
		}
	}

	e.rebuildSegments()

	var candidates []CursorPointer
	if hasReplacement {
		candidates = append(candidates, replacement)
	}
	if hasPostMerge {
		candidates = append(candidates, postMerge)
	}
	if hasHint {
		candidates = append(candidates, hint)
	}
	candidates = append(candidates, stable)

	for _, candidate := range candidates {
		if e.MoveToPointer(candidate) {
			return true
		}
	}
	for _, candidate := range candidates {
		if e.fallbackMoveToText(candidate, false) {
			return true
		}
	}
	e.EnsureCursorSelectable()
	return true
}

// InsertParagraphBreak splits the paragraph at the cursor. Inside a list
// entry the trailing half becomes a new entry.
func (e *Editor) InsertParagraphBreak() bool {
	return e.insertParagraphBreak(false)
}

// InsertParagraphBreakAsSibling splits the paragraph at the cursor, keeping
// the trailing half inside the same list entry.
func (e *Editor) InsertParagraphBreakAsSibling() bool {
	return e.insertParagraphBreak(true)
}

func (e *Editor) insertParagraphBreak(preferEntrySibling bool) bool {
	pointer := e.CursorStablePointer()
	newPointer, ok := splitParagraphBreak(e.doc, pointer, preferEntrySibling)
	if !ok {
		return false
	}
	e.cursor = newPointer
	e.rebuildSegments()
	if !e.MoveToPointer(newPointer) && !e.fallbackMoveToText(newPointer, false) {
		e.EnsureCursorSelectable()
	}
	return true
}
