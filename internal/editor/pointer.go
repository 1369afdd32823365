package editor

import (
	"fmt"

	"github.com/zjrosen/fold/internal/document"
)

// CursorPointer addresses one caret position: a span (by paragraph path and
// span path), a character offset inside it, and the segment kind so reveal
// boundaries are addressable distinctly from the text they wrap.
type CursorPointer struct {
	ParagraphPath ParagraphPath
	SpanPath      SpanPath
	Offset        int
	SegmentKind   SegmentKind
	// Style qualifies reveal pointers; StyleNone for text pointers.
	Style document.InlineStyle
}

// Equal reports tuple equality of every pointer component.
func (p CursorPointer) Equal(other CursorPointer) bool {
	return p.Offset == other.Offset &&
		p.SegmentKind == other.SegmentKind &&
		p.Style == other.Style &&
		p.ParagraphPath.Equal(other.ParagraphPath) &&
		p.SpanPath.Equal(other.SpanPath)
}

// Clone deep-copies the pointer.
func (p CursorPointer) Clone() CursorPointer {
	out := p
	out.ParagraphPath = p.ParagraphPath.Clone()
	out.SpanPath = p.SpanPath.Clone()
	return out
}

// IsValid reports whether the pointer addresses something at all.
func (p CursorPointer) IsValid() bool {
	return !p.ParagraphPath.IsEmpty() && !p.SpanPath.IsEmpty()
}

func (p CursorPointer) String() string {
	return fmt.Sprintf("%s:%v@%d", p.ParagraphPath, p.SpanPath.Indices(), p.Offset)
}

// updateFromSegment repoints the cursor at a segment, keeping the offset for
// the caller to set.
func (p *CursorPointer) updateFromSegment(segment Segment) {
	p.ParagraphPath = segment.ParagraphPath.Clone()
	p.SpanPath = segment.SpanPath.Clone()
	p.SegmentKind = segment.Kind
	p.Style = segment.Style
}

// PointerKey orders pointers by document position: segment index first, then
// offset within the segment.
type PointerKey struct {
	SegmentIndex int
	Offset       int
}

// Less reports strict document-order precedence.
func (k PointerKey) Less(other PointerKey) bool {
	if k.SegmentIndex != other.SegmentIndex {
		return k.SegmentIndex < other.SegmentIndex
	}
	return k.Offset < other.Offset
}

// ComparePointers orders two pointers by document position. Returns -1, 0, or
// +1; ok is false when either pointer does not resolve against the current
// segment list.
func (e *Editor) ComparePointers(a, b CursorPointer) (int, bool) {
	keyA, okA := e.pointerKey(a)
	keyB, okB := e.pointerKey(b)
	if !okA || !okB {
		return 0, false
	}
	switch {
	case keyA.Less(keyB):
		return -1, true
	case keyB.Less(keyA):
		return 1, true
	default:
		return 0, true
	}
}
