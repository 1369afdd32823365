// Package editor implements the addressing and mutation model for
// structured documents: tree-path addressing, the flattened segment index
// that linearizes the tree for cursor movement, and the structural edit
// algorithms (split, merge, indent, retype) built on top of both.
package editor

import (
	"fmt"
	"strings"

	"github.com/zjrosen/fold/internal/document"
)

// StepKind discriminates the path step variants.
type StepKind int

const (
	// StepRoot addresses a top-level paragraph by index.
	StepRoot StepKind = iota
	// StepChild addresses the nth child of a quote.
	StepChild
	// StepEntry addresses a paragraph inside a list entry.
	StepEntry
	// StepChecklistItem addresses a (possibly nested) checklist item by a
	// chain of sibling indices, one per nesting level.
	StepChecklistItem
)

// PathStep is one hop of a ParagraphPath. The populated fields depend on
// Kind: Index for Root/Child, EntryIndex+ParagraphIndex for Entry, Indices
// for ChecklistItem.
type PathStep struct {
	Kind           StepKind
	Index          int
	EntryIndex     int
	ParagraphIndex int
	Indices        []int
}

// RootStep returns a Root step.
func RootStep(idx int) PathStep {
	return PathStep{Kind: StepRoot, Index: idx}
}

// ChildStep returns a quote-child step.
func ChildStep(idx int) PathStep {
	return PathStep{Kind: StepChild, Index: idx}
}

// EntryStep returns a list-entry step.
func EntryStep(entryIndex, paragraphIndex int) PathStep {
	return PathStep{Kind: StepEntry, EntryIndex: entryIndex, ParagraphIndex: paragraphIndex}
}

// ChecklistItemStep returns a checklist-item step for the given index chain.
func ChecklistItemStep(indices ...int) PathStep {
	return PathStep{Kind: StepChecklistItem, Indices: indices}
}

// Equal reports exact step equality.
func (s PathStep) Equal(other PathStep) bool {
	if s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case StepRoot, StepChild:
		return s.Index == other.Index
	case StepEntry:
		return s.EntryIndex == other.EntryIndex && s.ParagraphIndex == other.ParagraphIndex
	case StepChecklistItem:
		if len(s.Indices) != len(other.Indices) {
			return false
		}
		for i, idx := range s.Indices {
			if other.Indices[i] != idx {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone deep-copies the step.
func (s PathStep) Clone() PathStep {
	out := s
	if s.Indices != nil {
		out.Indices = append([]int(nil), s.Indices...)
	}
	return out
}

func (s PathStep) String() string {
	switch s.Kind {
	case StepRoot:
		return fmt.Sprintf("Root(%d)", s.Index)
	case StepChild:
		return fmt.Sprintf("Child(%d)", s.Index)
	case StepEntry:
		return fmt.Sprintf("Entry(%d,%d)", s.EntryIndex, s.ParagraphIndex)
	case StepChecklistItem:
		parts := make([]string, len(s.Indices))
		for i, idx := range s.Indices {
			parts[i] = fmt.Sprintf("%d", idx)
		}
		return fmt.Sprintf("Item(%s)", strings.Join(parts, ","))
	default:
		return "?"
	}
}

// ParagraphPath locates a paragraph node from the document root. A resolved
// path always begins with exactly one Root step.
type ParagraphPath struct {
	steps []PathStep
}

// NewRootPath returns a path addressing the idx-th top-level paragraph.
func NewRootPath(idx int) ParagraphPath {
	return ParagraphPath{steps: []PathStep{RootStep(idx)}}
}

// PathFromSteps builds a path from explicit steps.
func PathFromSteps(steps ...PathStep) ParagraphPath {
	cloned := make([]PathStep, len(steps))
	for i, s := range steps {
		cloned[i] = s.Clone()
	}
	return ParagraphPath{steps: cloned}
}

// PushChild appends a quote-child step.
func (p *ParagraphPath) PushChild(idx int) {
	p.steps = append(p.steps, ChildStep(idx))
}

// PushEntry appends a list-entry step.
func (p *ParagraphPath) PushEntry(entryIndex, paragraphIndex int) {
	p.steps = append(p.steps, EntryStep(entryIndex, paragraphIndex))
}

// PushChecklistItem appends a checklist-item step.
func (p *ParagraphPath) PushChecklistItem(indices ...int) {
	p.steps = append(p.steps, ChecklistItemStep(indices...))
}

// Pop removes the last step. The Root step is never removed.
func (p *ParagraphPath) Pop() {
	if len(p.steps) > 1 {
		p.steps = p.steps[:len(p.steps)-1]
	}
}

// Steps returns the step slice. Callers must not mutate it.
func (p ParagraphPath) Steps() []PathStep {
	return p.steps
}

// Len returns the number of steps.
func (p ParagraphPath) Len() int {
	return len(p.steps)
}

// IsEmpty reports whether the path has no steps (an unresolved pointer).
func (p ParagraphPath) IsEmpty() bool {
	return len(p.steps) == 0
}

// RootIndex returns the top-level paragraph index, or -1 when the path is
// empty or malformed.
func (p ParagraphPath) RootIndex() int {
	if len(p.steps) > 0 && p.steps[0].Kind == StepRoot {
		return p.steps[0].Index
	}
	return -1
}

// NumericSteps flattens the path into bare indices, useful in tests and
// log lines. Entry steps contribute paragraph index then entry index;
// checklist steps contribute their whole chain.
func (p ParagraphPath) NumericSteps() []int {
	nums := make([]int, 0, len(p.steps))
	for _, step := range p.steps {
		switch step.Kind {
		case StepRoot, StepChild:
			nums = append(nums, step.Index)
		case StepEntry:
			nums = append(nums, step.ParagraphIndex, step.EntryIndex)
		case StepChecklistItem:
			nums = append(nums, step.Indices...)
		}
	}
	return nums
}

// Equal reports exact path equality.
func (p ParagraphPath) Equal(other ParagraphPath) bool {
	if len(p.steps) != len(other.steps) {
		return false
	}
	for i, s := range p.steps {
		if !s.Equal(other.steps[i]) {
			return false
		}
	}
	return true
}

// Clone deep-copies the path.
func (p ParagraphPath) Clone() ParagraphPath {
	return PathFromSteps(p.steps...)
}

// Parent returns the path with the last step removed, and false when the
// path is already a bare root (or empty).
func (p ParagraphPath) Parent() (ParagraphPath, bool) {
	if len(p.steps) <= 1 {
		return ParagraphPath{}, false
	}
	return PathFromSteps(p.steps[:len(p.steps)-1]...), true
}

func (p ParagraphPath) String() string {
	parts := make([]string, len(p.steps))
	for i, s := range p.steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}

// PathIsPrefix reports whether prefix's steps are a leading run of target's.
func PathIsPrefix(prefix, target ParagraphPath) bool {
	if len(prefix.steps) > len(target.steps) {
		return false
	}
	for i, s := range prefix.steps {
		if !s.Equal(target.steps[i]) {
			return false
		}
	}
	return true
}

// SpanPath locates an inline span inside a paragraph's content tree by a
// chain of child indices.
type SpanPath struct {
	indices []int
}

// NewSpanPath builds a span path from child indices.
func NewSpanPath(indices ...int) SpanPath {
	return SpanPath{indices: append([]int(nil), indices...)}
}

// Push appends a child index.
func (p *SpanPath) Push(idx int) {
	p.indices = append(p.indices, idx)
}

// Pop removes the last child index.
func (p *SpanPath) Pop() {
	if len(p.indices) > 0 {
		p.indices = p.indices[:len(p.indices)-1]
	}
}

// Indices returns the index chain. Callers must not mutate it.
func (p SpanPath) Indices() []int {
	return p.indices
}

// Len returns the chain length.
func (p SpanPath) Len() int {
	return len(p.indices)
}

// IsEmpty reports whether the span path has no indices.
func (p SpanPath) IsEmpty() bool {
	return len(p.indices) == 0
}

// Equal reports exact span path equality.
func (p SpanPath) Equal(other SpanPath) bool {
	if len(p.indices) != len(other.indices) {
		return false
	}
	for i, idx := range p.indices {
		if other.indices[i] != idx {
			return false
		}
	}
	return true
}

// Clone deep-copies the span path.
func (p SpanPath) Clone() SpanPath {
	return NewSpanPath(p.indices...)
}

// SpanPathIsPrefix reports whether prefix is a leading run of target.
func SpanPathIsPrefix(prefix, target []int) bool {
	if len(prefix) > len(target) {
		return false
	}
	for i, idx := range prefix {
		if target[i] != idx {
			return false
		}
	}
	return true
}

// paragraphRef resolves a path to a paragraph node. ChecklistItem steps do
// not resolve here; use checklistItemRef for item addresses.
func paragraphRef(doc *document.Document, path ParagraphPath) *document.Paragraph {
	steps := path.Steps()
	if len(steps) == 0 || steps[0].Kind != StepRoot {
		return nil
	}
	if steps[0].Index >= len(doc.Paragraphs) {
		return nil
	}
	paragraph := &doc.Paragraphs[steps[0].Index]
	for _, step := range steps[1:] {
		switch step.Kind {
		case StepChild:
			if paragraph.Type != document.Quote || step.Index >= len(paragraph.Children) {
				return nil
			}
			paragraph = &paragraph.Children[step.Index]
		case StepEntry:
			if !paragraph.Type.IsList() || step.EntryIndex >= len(paragraph.Entries) {
				return nil
			}
			entry := paragraph.Entries[step.EntryIndex]
			if step.ParagraphIndex >= len(entry) {
				return nil
			}
			paragraph = &paragraph.Entries[step.EntryIndex][step.ParagraphIndex]
		default:
			return nil
		}
	}
	return paragraph
}

// checklistItemRef resolves a path ending in a ChecklistItem step to the
// addressed item.
func checklistItemRef(doc *document.Document, path ParagraphPath) *document.ChecklistItem {
	steps := path.Steps()
	itemStep := -1
	for i, s := range steps {
		if s.Kind == StepChecklistItem {
			itemStep = i
			break
		}
	}
	if itemStep < 0 || len(steps[itemStep].Indices) == 0 {
		return nil
	}
	paragraph := paragraphRef(doc, PathFromSteps(steps[:itemStep]...))
	if paragraph == nil {
		return nil
	}
	indices := steps[itemStep].Indices
	if indices[0] >= len(paragraph.Items) {
		return nil
	}
	item := &paragraph.Items[indices[0]]
	for _, idx := range indices[1:] {
		if idx >= len(item.Children) {
			return nil
		}
		item = &item.Children[idx]
	}
	return item
}

// spanRef resolves a span path inside a paragraph's content.
func spanRef(paragraph *document.Paragraph, path SpanPath) *document.Span {
	return spanRefIn(paragraph.Content, path)
}

// spanRefFromItem resolves a span path inside a checklist item's content.
func spanRefFromItem(item *document.ChecklistItem, path SpanPath) *document.Span {
	return spanRefIn(item.Content, path)
}

func spanRefIn(spans []document.Span, path SpanPath) *document.Span {
	indices := path.Indices()
	if len(indices) == 0 || indices[0] >= len(spans) {
		return nil
	}
	span := &spans[indices[0]]
	for _, idx := range indices[1:] {
		if idx >= len(span.Children) {
			return nil
		}
		span = &span.Children[idx]
	}
	return span
}
