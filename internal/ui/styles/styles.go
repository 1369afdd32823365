// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#CCCCCC"} // Document text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Secondary info, status bar
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, chrome, fences

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#FFFFFF"} // Focused borders

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Selection and cursor
	SelectionIndicatorColor  = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#FFFFFF"}
	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#ADD6FF", Dark: "#264F78"}
	CursorBackgroundColor    = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#FFFFFF"}
	CursorTextColor          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}

	// Inline style colors
	HighlightBgColor   = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	HighlightTextColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#1A1A1A"}
	LinkColor          = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	CodeColor          = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Reveal codes marker color
	RevealMarkerColor = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FF731A"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Status bar colors
	StatusBarBgColor    = lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#2D3436"}
	StatusBarTextColor  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	StatusBarDirtyColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}

	// Selection indicator style (used for ">" prefix in pickers)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Cursor cell
	CursorStyle = lipgloss.NewStyle().
			Foreground(CursorTextColor).
			Background(CursorBackgroundColor)

	// Selected text
	SelectionStyle = lipgloss.NewStyle().Background(SelectionBackgroundColor)

	// Inline style rendering
	HighlightStyle = lipgloss.NewStyle().
			Foreground(HighlightTextColor).
			Background(HighlightBgColor)
	LinkStyle = lipgloss.NewStyle().Foreground(LinkColor).Underline(true)
	CodeStyle = lipgloss.NewStyle().Foreground(CodeColor)

	// Reveal codes marker, e.g. [b] ... [/b]
	RevealMarkerStyle = lipgloss.NewStyle().Foreground(RevealMarkerColor)

	// Document chrome (list bullets, fences, quote bars)
	ChromeStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(StatusBarTextColor).
			Background(StatusBarBgColor).
			Padding(0, 1)

	StatusBarDirtyStyle = lipgloss.NewStyle().
				Foreground(StatusBarDirtyColor).
				Background(StatusBarBgColor).
				Bold(true)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
