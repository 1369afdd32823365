// Package document defines the structured document tree: paragraphs,
// inline styled span trees, and nested checklist items. The tree is the
// ground truth for every editor operation; parsing and serialization live
// outside this module and hand trees in and out opaquely.
package document

// ParagraphType discriminates the paragraph variants.
type ParagraphType int

const (
	Text ParagraphType = iota
	Header1
	Header2
	Header3
	CodeBlock
	Quote
	UnorderedList
	OrderedList
	Checklist
)

func (t ParagraphType) String() string {
	switch t {
	case Text:
		return "text"
	case Header1:
		return "header1"
	case Header2:
		return "header2"
	case Header3:
		return "header3"
	case CodeBlock:
		return "codeblock"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	case Checklist:
		return "checklist"
	default:
		return "unknown"
	}
}

// IsList reports whether the type carries entries.
func (t ParagraphType) IsList() bool {
	return t == UnorderedList || t == OrderedList
}

// IsPlain reports whether the type is a leaf text-like paragraph, one that
// holds only inline content (no children, entries, or items).
func (t ParagraphType) IsPlain() bool {
	switch t {
	case Text, Header1, Header2, Header3, CodeBlock:
		return true
	default:
		return false
	}
}

// InlineStyle is the style applied to a span (and inherited by its children).
type InlineStyle int

const (
	StyleNone InlineStyle = iota
	StyleBold
	StyleItalic
	StyleHighlight
	StyleUnderline
	StyleStrike
	StyleLink
	StyleCode
)

func (s InlineStyle) String() string {
	switch s {
	case StyleNone:
		return "Text"
	case StyleBold:
		return "Bold"
	case StyleItalic:
		return "Italic"
	case StyleHighlight:
		return "Highlight"
	case StyleUnderline:
		return "Underline"
	case StyleStrike:
		return "Strikethrough"
	case StyleLink:
		return "Link"
	case StyleCode:
		return "Code"
	default:
		return "Unknown"
	}
}

// Span is one node of a paragraph's inline content tree. A span may carry
// text, child spans, or both; children inherit the parent's style.
type Span struct {
	Text       string
	Style      InlineStyle
	LinkTarget string
	Children   []Span
}

// NewTextSpan returns an unstyled leaf span.
func NewTextSpan(text string) Span {
	return Span{Text: text}
}

// NewStyledSpan returns a leaf span with the given style.
func NewStyledSpan(text string, style InlineStyle) Span {
	return Span{Text: text, Style: style}
}

// Clone deep-copies the span and its children.
func (s Span) Clone() Span {
	out := s
	out.Children = CloneSpans(s.Children)
	return out
}

// CloneSpans deep-copies a span slice.
func CloneSpans(spans []Span) []Span {
	if spans == nil {
		return nil
	}
	out := make([]Span, len(spans))
	for i, s := range spans {
		out[i] = s.Clone()
	}
	return out
}

// ChecklistItem is one checkbox row. Items nest arbitrarily deep through
// Children.
type ChecklistItem struct {
	Checked  bool
	Content  []Span
	Children []ChecklistItem
}

// NewChecklistItem returns an item with the given checked state and no content.
func NewChecklistItem(checked bool) ChecklistItem {
	return ChecklistItem{Checked: checked}
}

// WithContent sets the item's inline content.
func (c ChecklistItem) WithContent(spans ...Span) ChecklistItem {
	c.Content = spans
	return c
}

// WithChildren sets the item's nested items.
func (c ChecklistItem) WithChildren(children ...ChecklistItem) ChecklistItem {
	c.Children = children
	return c
}

// Clone deep-copies the item and its subtree.
func (c ChecklistItem) Clone() ChecklistItem {
	out := c
	out.Content = CloneSpans(c.Content)
	if c.Children != nil {
		out.Children = make([]ChecklistItem, len(c.Children))
		for i, child := range c.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// Paragraph is one node of the document's structural tree. Which fields are
// populated depends on Type: plain types carry Content; Quote carries
// Content and Children; lists carry Entries (each entry is an ordered run
// of paragraphs); Checklist carries Items.
type Paragraph struct {
	Type     ParagraphType
	Content  []Span
	Children []Paragraph
	Entries  [][]Paragraph
	Items    []ChecklistItem
}

// NewParagraph returns an empty paragraph of the given type.
func NewParagraph(t ParagraphType) Paragraph {
	return Paragraph{Type: t}
}

// NewTextParagraph returns a plain paragraph with a single unstyled span.
func NewTextParagraph(text string) Paragraph {
	return Paragraph{Type: Text, Content: []Span{NewTextSpan(text)}}
}

// WithContent sets the paragraph's inline content.
func (p Paragraph) WithContent(spans ...Span) Paragraph {
	p.Content = spans
	return p
}

// WithChildren sets a quote's child paragraphs.
func (p Paragraph) WithChildren(children ...Paragraph) Paragraph {
	p.Children = children
	return p
}

// WithEntries sets a list's entries.
func (p Paragraph) WithEntries(entries ...[]Paragraph) Paragraph {
	p.Entries = entries
	return p
}

// WithItems sets a checklist's items.
func (p Paragraph) WithItems(items ...ChecklistItem) Paragraph {
	p.Items = items
	return p
}

// Clone deep-copies the paragraph subtree.
func (p Paragraph) Clone() Paragraph {
	out := p
	out.Content = CloneSpans(p.Content)
	if p.Children != nil {
		out.Children = make([]Paragraph, len(p.Children))
		for i, child := range p.Children {
			out.Children[i] = child.Clone()
		}
	}
	if p.Entries != nil {
		out.Entries = make([][]Paragraph, len(p.Entries))
		for i, entry := range p.Entries {
			out.Entries[i] = make([]Paragraph, len(entry))
			for j, ep := range entry {
				out.Entries[i][j] = ep.Clone()
			}
		}
	}
	if p.Items != nil {
		out.Items = make([]ChecklistItem, len(p.Items))
		for i, item := range p.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

// Document is an ordered run of top-level paragraphs.
type Document struct {
	Paragraphs []Paragraph
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// WithParagraphs sets the document's paragraphs.
func (d *Document) WithParagraphs(paragraphs ...Paragraph) *Document {
	d.Paragraphs = paragraphs
	return d
}

// Clone deep-copies the whole document.
func (d *Document) Clone() *Document {
	out := &Document{}
	if d.Paragraphs != nil {
		out.Paragraphs = make([]Paragraph, len(d.Paragraphs))
		for i, p := range d.Paragraphs {
			out.Paragraphs[i] = p.Clone()
		}
	}
	return out
}
