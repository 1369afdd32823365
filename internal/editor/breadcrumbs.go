package editor

import (
	"github.com/zjrosen/fold/internal/document"
)

// breadcrumbsForPointer builds outermost-first labels for a pointer's
// structural position: the containing paragraph types, then the inline
// styles along the span path. A plain text paragraph that is the sole child
// of a quote or the sole paragraph of a list entry contributes no label of
// its own.
func breadcrumbsForPointer(doc *document.Document, pointer CursorPointer) ([]string, bool) {
	if pointer.ParagraphPath.IsEmpty() {
		return nil, false
	}

	labels, item, paragraph, ok := collectParagraphLabels(doc, pointer.ParagraphPath)
	if !ok {
		return nil, false
	}

	var content []document.Span
	if item != nil {
		content = item.Content
	} else {
		content = paragraph.Content
	}
	inline, ok := collectInlineLabels(content, pointer.SpanPath)
	if !ok {
		return nil, false
	}
	return append(labels, inline...), true
}

func collectParagraphLabels(doc *document.Document, path ParagraphPath) ([]string, *document.ChecklistItem, *document.Paragraph, bool) {
	var labels []string
	var current *document.Paragraph
	var currentItem *document.ChecklistItem
	var traversed []PathStep

	for _, step := range path.Steps() {
		traversed = append(traversed, step.Clone())

		var paragraph *document.Paragraph
		switch step.Kind {
		case StepRoot:
			if step.Index >= len(doc.Paragraphs) {
				return nil, nil, nil, false
			}
			paragraph = &doc.Paragraphs[step.Index]
		case StepChild:
			if current == nil || step.Index >= len(current.Children) {
				return nil, nil, nil, false
			}
			paragraph = &current.Children[step.Index]
		case StepEntry:
			if current == nil || step.EntryIndex >= len(current.Entries) {
				return nil, nil, nil, false
			}
			entry := current.Entries[step.EntryIndex]
			if step.ParagraphIndex >= len(entry) {
				return nil, nil, nil, false
			}
			paragraph = &current.Entries[step.EntryIndex][step.ParagraphIndex]
		case StepChecklistItem:
			// One label per nesting level beyond the checklist itself.
			for i := 1; i < len(step.Indices); i++ {
				labels = append(labels, "Checklist")
			}
			if len(labels) == 0 {
				labels = append(labels, "Checklist")
			}
			currentItem = checklistItemRef(doc, PathFromSteps(traversed...))
			continue
		default:
			return nil, nil, nil, false
		}

		if !hideTextLabel(doc, PathFromSteps(traversed...)) {
			labels = append(labels, paragraphTypeLabel(paragraph.Type))
		}
		current = paragraph
		currentItem = nil
	}

	if currentItem != nil {
		return labels, currentItem, nil, true
	}
	if current == nil {
		return nil, nil, nil, false
	}
	return labels, nil, current, true
}

// hideTextLabel reports whether a text paragraph is effectively its parent:
// the only child of a quote, or the only paragraph of a list entry.
func hideTextLabel(doc *document.Document, path ParagraphPath) bool {
	paragraph := paragraphRef(doc, path)
	if paragraph == nil || paragraph.Type != document.Text {
		return false
	}
	steps := path.Steps()
	if len(steps) <= 1 {
		return false
	}
	last := steps[len(steps)-1]
	parent := paragraphRef(doc, PathFromSteps(steps[:len(steps)-1]...))
	if parent == nil {
		return false
	}
	switch last.Kind {
	case StepChild:
		return len(parent.Children) == 1
	case StepEntry:
		if last.EntryIndex >= len(parent.Entries) {
			return false
		}
		return len(parent.Entries[last.EntryIndex]) == 1
	default:
		return false
	}
}

func collectInlineLabels(spans []document.Span, spanPath SpanPath) ([]string, bool) {
	var labels []string
	if spanPath.IsEmpty() {
		return labels, true
	}
	current := spans
	for _, idx := range spanPath.Indices() {
		if idx >= len(current) {
			return nil, false
		}
		span := current[idx]
		if label, ok := inlineStyleLabel(span.Style); ok {
			labels = append(labels, label)
		}
		current = span.Children
	}
	return labels, true
}

func paragraphTypeLabel(kind document.ParagraphType) string {
	switch kind {
	case document.Text:
		return "Text"
	case document.Header1:
		return "Header 1"
	case document.Header2:
		return "Header 2"
	case document.Header3:
		return "Header 3"
	case document.CodeBlock:
		return "Code Block"
	case document.Quote:
		return "Quote"
	case document.UnorderedList:
		return "Unordered List"
	case document.OrderedList:
		return "Ordered List"
	case document.Checklist:
		return "Checklist"
	default:
		return "Unknown"
	}
}

func inlineStyleLabel(style document.InlineStyle) (string, bool) {
	switch style {
	case document.StyleBold:
		return "Bold", true
	case document.StyleItalic:
		return "Italic", true
	case document.StyleHighlight:
		return "Highlight", true
	case document.StyleUnderline:
		return "Underline", true
	case document.StyleStrike:
		return "Strikethrough", true
	case document.StyleLink:
		return "Link", true
	case document.StyleCode:
		return "Code", true
	default:
		return "", false
	}
}
