// Package markdown provides styled markdown rendering for the TUI.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
// It inherits from the selected style but overrides margin to 0.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with fold-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width, using
// auto dark/light detection.
func New(width int) (*Renderer, error) {
	return newRenderer(width, glamour.WithAutoStyle())
}

// NewWithStyle creates a markdown renderer using a named glamour style
// (dark, light, notty, ...). An empty or "auto" style falls back to
// auto detection.
func NewWithStyle(width int, style string) (*Renderer, error) {
	if style == "" || style == "auto" {
		return New(width)
	}
	return newRenderer(width, glamour.WithStandardStyle(style))
}

func newRenderer(width int, styleOpt glamour.TermRendererOption) (*Renderer, error) {
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
