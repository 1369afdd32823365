package editor

import (
	"github.com/zjrosen/fold/internal/document"
)

type inlineStyleScope int

const (
	styledNothing inlineStyleScope = iota
	styledParagraph
	styledChecklist
)

// ApplyInlineStyleToSelection styles every character between two pointers.
// Partially covered spans are split so only the selected text carries the
// style; segments are walked in reverse so earlier span indices stay valid
// across the splits.
func (e *Editor) ApplyInlineStyleToSelection(from, to CursorPointer, style document.InlineStyle) bool {
	if len(e.segments) == 0 {
		return false
	}

	start := from.Clone()
	end := to.Clone()
	if order, ok := e.ComparePointers(start, end); ok && order > 0 {
		start, end = end, start
	}

	startKey, ok := e.pointerKey(start)
	if !ok {
		return false
	}
	endKey, ok := e.pointerKey(end)
	if !ok {
		return false
	}
	if endKey.Less(startKey) {
		return false
	}

	snapshot := make([]Segment, len(e.segments))
	copy(snapshot, e.segments)

	changed := false
	var touchedParagraphs []ParagraphPath
	var touchedChecklists []ParagraphPath

	for segmentIndex := endKey.SegmentIndex; segmentIndex >= startKey.SegmentIndex; segmentIndex-- {
		if segmentIndex >= len(snapshot) {
			continue
		}
		segment := snapshot[segmentIndex]
		if segment.Len == 0 || segment.Kind != SegmentText {
			continue
		}

		segStart := 0
		if segmentIndex == startKey.SegmentIndex {
			segStart = min(startKey.Offset, segment.Len)
		}
		segEnd := segment.Len
		if segmentIndex == endKey.SegmentIndex {
			segEnd = min(endKey.Offset, segment.Len)
		}
		if segStart >= segEnd {
			continue
		}

		switch e.applyInlineStyleToSegment(segment, segStart, segEnd, style) {
		case styledParagraph:
			changed = true
			touchedParagraphs = appendUniquePath(touchedParagraphs, segment.ParagraphPath)
		case styledChecklist:
			changed = true
			touchedChecklists = appendUniquePath(touchedChecklists, segment.ParagraphPath)
		}
	}

	if !changed {
		return false
	}

	var uniqueRoots []ParagraphPath
	for _, path := range touchedParagraphs {
		if paragraph := paragraphRef(e.doc, path); paragraph != nil {
			pruneAndMergeSpans(&paragraph.Content)
		}
		uniqueRoots = appendUniquePath(uniqueRoots, NewRootPath(path.RootIndex()))
	}
	for _, path := range touchedChecklists {
		if item := checklistItemRef(e.doc, path); item != nil {
			pruneAndMergeSpans(&item.Content)
		}
		uniqueRoots = appendUniquePath(uniqueRoots, NewRootPath(path.RootIndex()))
	}

	if len(uniqueRoots) == 1 {
		e.updateSegmentsForParagraph(uniqueRoots[0])
	} else if len(uniqueRoots) > 1 {
		e.rebuildSegments()
	}
	return true
}

func (e *Editor) applyInlineStyleToSegment(segment Segment, start, end int, style document.InlineStyle) inlineStyleScope {
	if item := checklistItemRef(e.doc, segment.ParagraphPath); item != nil {
		if applyStyleToSpanPath(&item.Content, segment.SpanPath.Indices(), start, end, style) {
			return styledChecklist
		}
		return styledNothing
	}
	paragraph := paragraphRef(e.doc, segment.ParagraphPath)
	if paragraph == nil {
		return styledNothing
	}
	if applyStyleToSpanPath(&paragraph.Content, segment.SpanPath.Indices(), start, end, style) {
		return styledParagraph
	}
	return styledNothing
}

func appendUniquePath(paths []ParagraphPath, path ParagraphPath) []ParagraphPath {
	for _, existing := range paths {
		if existing.Equal(path) {
			return paths
		}
	}
	return append(paths, path.Clone())
}
