package editor

import (
	"unicode/utf8"

	"github.com/zjrosen/fold/internal/document"
)

// SegmentKind distinguishes real text segments from the zero-width reveal
// pseudo-segments that mark style boundaries in reveal codes mode.
type SegmentKind int

const (
	// SegmentText is a run of addressable characters in a leaf span.
	SegmentText SegmentKind = iota
	// SegmentRevealStart marks the opening boundary of a styled span.
	SegmentRevealStart
	// SegmentRevealEnd marks the closing boundary of a styled span.
	SegmentRevealEnd
)

// Segment is one addressable unit of cursor movement. The ordered segment
// list is the single source of truth for previous/next cursor positions; it
// must be rebuilt (fully or incrementally) after any tree mutation.
type Segment struct {
	ParagraphPath ParagraphPath
	SpanPath      SpanPath
	Len           int
	Kind          SegmentKind
	// Style is the styled span's style for reveal segments, StyleNone for
	// text segments.
	Style document.InlineStyle
}

// matchesPointer reports whether the segment is the one a pointer addresses
// (offset aside).
func (s Segment) matchesPointer(pointer CursorPointer) bool {
	return s.Kind == pointer.SegmentKind &&
		s.Style == pointer.Style &&
		s.ParagraphPath.Equal(pointer.ParagraphPath) &&
		s.SpanPath.Equal(pointer.SpanPath)
}

// isReveal reports whether the segment is a zero-width style boundary.
func (s Segment) isReveal() bool {
	return s.Kind == SegmentRevealStart || s.Kind == SegmentRevealEnd
}

// collectSegments flattens the whole document into segments in document
// order. The traversal must exactly mirror the layout engine's: segment N+1
// is the next thing the user sees when pressing Right.
func collectSegments(doc *document.Document, revealCodes bool) []Segment {
	var out []Segment
	for idx := range doc.Paragraphs {
		path := NewRootPath(idx)
		collectParagraphSegments(&doc.Paragraphs[idx], &path, revealCodes, &out)
	}
	return out
}

// collectSegmentsForParagraphTree flattens a single paragraph subtree. Used
// by the incremental update path when only one paragraph changed.
func collectSegmentsForParagraphTree(doc *document.Document, rootPath ParagraphPath, revealCodes bool) []Segment {
	var out []Segment
	paragraph := paragraphRef(doc, rootPath)
	if paragraph == nil {
		return out
	}
	path := rootPath.Clone()
	collectParagraphSegments(paragraph, &path, revealCodes, &out)
	return out
}

func collectParagraphSegments(paragraph *document.Paragraph, path *ParagraphPath, revealCodes bool, out *[]Segment) {
	for index := range paragraph.Content {
		spanPath := NewSpanPath(index)
		collectSpanSegments(&paragraph.Content[index], *path, &spanPath, revealCodes, out)
	}
	for childIndex := range paragraph.Children {
		path.PushChild(childIndex)
		collectParagraphSegments(&paragraph.Children[childIndex], path, revealCodes, out)
		path.Pop()
	}
	for entryIndex := range paragraph.Entries {
		for childIndex := range paragraph.Entries[entryIndex] {
			path.PushEntry(entryIndex, childIndex)
			collectParagraphSegments(&paragraph.Entries[entryIndex][childIndex], path, revealCodes, out)
			path.Pop()
		}
	}
	if paragraph.Type == document.Checklist {
		for itemIndex := range paragraph.Items {
			collectChecklistItemSegments(&paragraph.Items[itemIndex], path, []int{itemIndex}, revealCodes, out)
		}
	}
}

func collectChecklistItemSegments(item *document.ChecklistItem, path *ParagraphPath, indices []int, revealCodes bool, out *[]Segment) {
	path.PushChecklistItem(indices...)
	for index := range item.Content {
		spanPath := NewSpanPath(index)
		collectSpanSegments(&item.Content[index], *path, &spanPath, revealCodes, out)
	}
	path.Pop()

	for childIndex := range item.Children {
		childIndices := append(append([]int(nil), indices...), childIndex)
		collectChecklistItemSegments(&item.Children[childIndex], path, childIndices, revealCodes, out)
	}
}

func collectSpanSegments(span *document.Span, paragraphPath ParagraphPath, spanPath *SpanPath, revealCodes bool, out *[]Segment) {
	styled := span.Style != document.StyleNone
	if revealCodes && styled {
		*out = append(*out, Segment{
			ParagraphPath: paragraphPath.Clone(),
			SpanPath:      spanPath.Clone(),
			Len:           1,
			Kind:          SegmentRevealStart,
			Style:         span.Style,
		})
	}

	// A leaf always yields a text segment (even when empty, so the span
	// stays selectable); a span with children yields one only for its own
	// non-empty text.
	if len(span.Children) == 0 || span.Text != "" {
		*out = append(*out, Segment{
			ParagraphPath: paragraphPath.Clone(),
			SpanPath:      spanPath.Clone(),
			Len:           utf8.RuneCountInString(span.Text),
			Kind:          SegmentText,
		})
	}

	for childIndex := range span.Children {
		spanPath.Push(childIndex)
		collectSpanSegments(&span.Children[childIndex], paragraphPath, spanPath, revealCodes, out)
		spanPath.Pop()
	}

	if revealCodes && styled {
		*out = append(*out, Segment{
			ParagraphPath: paragraphPath.Clone(),
			SpanPath:      spanPath.Clone(),
			Len:           1,
			Kind:          SegmentRevealEnd,
			Style:         span.Style,
		})
	}
}

// findParagraphSegmentRange locates the half-open index range of segments
// whose paragraph path has rootPath as a prefix. Returns start == end when
// no segment belongs to the subtree; start is then the insertion point that
// keeps document order.
func findParagraphSegmentRange(segments []Segment, rootPath ParagraphPath) (int, int) {
	start := -1
	end := -1
	for i, segment := range segments {
		if PathIsPrefix(rootPath, segment.ParagraphPath) {
			if start < 0 {
				start = i
			}
			end = i + 1
		} else if start >= 0 {
			break
		}
	}
	if start < 0 {
		// Insertion point: first segment belonging to a later root.
		rootIndex := rootPath.RootIndex()
		for i, segment := range segments {
			if segment.ParagraphPath.RootIndex() > rootIndex {
				return i, i
			}
		}
		return len(segments), len(segments)
	}
	return start, end
}
