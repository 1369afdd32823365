// Package docfile reads and writes fold documents as YAML. The schema is
// shared with the starter templates: paragraphs carry a type, an inline
// span tree, nested children, list entries, and checklist items.
package docfile

import (
	"fmt"

	"github.com/zjrosen/fold/internal/document"
)

// ParagraphSpec is the YAML shape of one paragraph. Text is shorthand for
// a single unstyled span.
type ParagraphSpec struct {
	Type     string            `yaml:"type,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	Spans    []SpanSpec        `yaml:"spans,omitempty"`
	Children []ParagraphSpec   `yaml:"children,omitempty"`
	Entries  [][]ParagraphSpec `yaml:"entries,omitempty"`
	Items    []ItemSpec        `yaml:"items,omitempty"`
}

// SpanSpec is the YAML shape of one inline span node.
type SpanSpec struct {
	Text  string     `yaml:"text,omitempty"`
	Style string     `yaml:"style,omitempty"`
	Link  string     `yaml:"link,omitempty"`
	Spans []SpanSpec `yaml:"spans,omitempty"`
}

// ItemSpec is the YAML shape of one checklist item.
type ItemSpec struct {
	Text     string     `yaml:"text,omitempty"`
	Spans    []SpanSpec `yaml:"spans,omitempty"`
	Checked  bool       `yaml:"checked,omitempty"`
	Children []ItemSpec `yaml:"children,omitempty"`
}

// BuildParagraph materializes one paragraph spec into the document tree.
func BuildParagraph(spec ParagraphSpec) (document.Paragraph, error) {
	ptype, err := ParagraphTypeFromName(spec.Type)
	if err != nil {
		return document.Paragraph{}, err
	}
	paragraph := document.NewParagraph(ptype)

	spans, err := BuildContent(spec.Text, spec.Spans)
	if err != nil {
		return document.Paragraph{}, err
	}
	paragraph = paragraph.WithContent(spans...)

	if len(spec.Children) > 0 {
		children := make([]document.Paragraph, 0, len(spec.Children))
		for _, c := range spec.Children {
			child, err := BuildParagraph(c)
			if err != nil {
				return document.Paragraph{}, err
			}
			children = append(children, child)
		}
		paragraph = paragraph.WithChildren(children...)
	}

	if len(spec.Entries) > 0 {
		entries := make([][]document.Paragraph, 0, len(spec.Entries))
		for _, e := range spec.Entries {
			entry := make([]document.Paragraph, 0, len(e))
			for _, p := range e {
				built, err := BuildParagraph(p)
				if err != nil {
					return document.Paragraph{}, err
				}
				entry = append(entry, built)
			}
			entries = append(entries, entry)
		}
		paragraph = paragraph.WithEntries(entries...)
	}

	if len(spec.Items) > 0 {
		items := make([]document.ChecklistItem, 0, len(spec.Items))
		for _, i := range spec.Items {
			item, err := BuildItem(i)
			if err != nil {
				return document.Paragraph{}, err
			}
			items = append(items, item)
		}
		paragraph = paragraph.WithItems(items...)
	}

	return paragraph, nil
}

// BuildItem materializes one checklist item spec.
func BuildItem(spec ItemSpec) (document.ChecklistItem, error) {
	item := document.NewChecklistItem(spec.Checked)

	spans, err := BuildContent(spec.Text, spec.Spans)
	if err != nil {
		return document.ChecklistItem{}, err
	}
	item = item.WithContent(spans...)

	for _, c := range spec.Children {
		child, err := BuildItem(c)
		if err != nil {
			return document.ChecklistItem{}, err
		}
		item.Children = append(item.Children, child)
	}
	return item, nil
}

// BuildContent returns the span list for a node. A plain text field is
// shorthand for a single unstyled span; every paragraph and item carries at
// least one span so the cursor has somewhere to land.
func BuildContent(text string, specs []SpanSpec) ([]document.Span, error) {
	if len(specs) == 0 {
		return []document.Span{document.NewTextSpan(text)}, nil
	}
	spans := make([]document.Span, 0, len(specs))
	for _, s := range specs {
		span, err := BuildSpan(s)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	return spans, nil
}

// BuildSpan materializes one span spec, recursively.
func BuildSpan(spec SpanSpec) (document.Span, error) {
	style, err := InlineStyleFromName(spec.Style)
	if err != nil {
		return document.Span{}, err
	}
	span := document.Span{Text: spec.Text, Style: style, LinkTarget: spec.Link}
	for _, c := range spec.Spans {
		child, err := BuildSpan(c)
		if err != nil {
			return document.Span{}, err
		}
		span.Children = append(span.Children, child)
	}
	return span, nil
}

// EncodeParagraph converts a paragraph back into its YAML spec.
func EncodeParagraph(par document.Paragraph) ParagraphSpec {
	spec := ParagraphSpec{Type: paragraphTypeName(par.Type)}
	spec.Text, spec.Spans = encodeContent(par.Content)

	for _, c := range par.Children {
		spec.Children = append(spec.Children, EncodeParagraph(c))
	}
	for _, entry := range par.Entries {
		encoded := make([]ParagraphSpec, 0, len(entry))
		for _, p := range entry {
			encoded = append(encoded, EncodeParagraph(p))
		}
		spec.Entries = append(spec.Entries, encoded)
	}
	for _, item := range par.Items {
		spec.Items = append(spec.Items, encodeItem(item))
	}
	return spec
}

func encodeItem(item document.ChecklistItem) ItemSpec {
	spec := ItemSpec{Checked: item.Checked}
	spec.Text, spec.Spans = encodeContent(item.Content)
	for _, c := range item.Children {
		spec.Children = append(spec.Children, encodeItem(c))
	}
	return spec
}

// encodeContent reverses the text shorthand: a single unstyled leaf span
// round-trips through the text field, everything else through spans.
func encodeContent(spans []document.Span) (string, []SpanSpec) {
	if len(spans) == 1 && spans[0].Style == document.StyleNone &&
		len(spans[0].Children) == 0 && spans[0].LinkTarget == "" {
		return spans[0].Text, nil
	}
	encoded := make([]SpanSpec, 0, len(spans))
	for _, s := range spans {
		encoded = append(encoded, encodeSpan(s))
	}
	return "", encoded
}

func encodeSpan(span document.Span) SpanSpec {
	spec := SpanSpec{
		Text:  span.Text,
		Style: inlineStyleName(span.Style),
		Link:  span.LinkTarget,
	}
	for _, c := range span.Children {
		spec.Spans = append(spec.Spans, encodeSpan(c))
	}
	return spec
}

// ParagraphTypeFromName maps a YAML type name to its paragraph type. An
// empty name means plain text.
func ParagraphTypeFromName(name string) (document.ParagraphType, error) {
	switch name {
	case "", "text":
		return document.Text, nil
	case "header1":
		return document.Header1, nil
	case "header2":
		return document.Header2, nil
	case "header3":
		return document.Header3, nil
	case "code":
		return document.CodeBlock, nil
	case "quote":
		return document.Quote, nil
	case "unordered_list":
		return document.UnorderedList, nil
	case "ordered_list":
		return document.OrderedList, nil
	case "checklist":
		return document.Checklist, nil
	default:
		return document.Text, fmt.Errorf("unknown paragraph type %q", name)
	}
}

func paragraphTypeName(t document.ParagraphType) string {
	switch t {
	case document.Text:
		return "" // Plain text is the default, keep files quiet
	case document.Header1:
		return "header1"
	case document.Header2:
		return "header2"
	case document.Header3:
		return "header3"
	case document.CodeBlock:
		return "code"
	case document.Quote:
		return "quote"
	case document.UnorderedList:
		return "unordered_list"
	case document.OrderedList:
		return "ordered_list"
	case document.Checklist:
		return "checklist"
	default:
		return ""
	}
}

// InlineStyleFromName maps a YAML style name to its inline style. An empty
// name means unstyled text.
func InlineStyleFromName(name string) (document.InlineStyle, error) {
	switch name {
	case "":
		return document.StyleNone, nil
	case "bold":
		return document.StyleBold, nil
	case "italic":
		return document.StyleItalic, nil
	case "highlight":
		return document.StyleHighlight, nil
	case "underline":
		return document.StyleUnderline, nil
	case "strikethrough":
		return document.StyleStrike, nil
	case "link":
		return document.StyleLink, nil
	case "code":
		return document.StyleCode, nil
	default:
		return document.StyleNone, fmt.Errorf("unknown span style %q", name)
	}
}

func inlineStyleName(s document.InlineStyle) string {
	switch s {
	case document.StyleBold:
		return "bold"
	case document.StyleItalic:
		return "italic"
	case document.StyleHighlight:
		return "highlight"
	case document.StyleUnderline:
		return "underline"
	case document.StyleStrike:
		return "strikethrough"
	case document.StyleLink:
		return "link"
	case document.StyleCode:
		return "code"
	default:
		return ""
	}
}
