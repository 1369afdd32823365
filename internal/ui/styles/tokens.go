// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"
	TokenStatusInfo    ColorToken = "status.info"

	// Selection and cursor
	TokenSelectionIndicator  ColorToken = "selection.indicator"
	TokenSelectionBackground ColorToken = "selection.background"
	TokenCursorBackground    ColorToken = "cursor.background"
	TokenCursorText          ColorToken = "cursor.text"

	// Inline styles
	TokenStyleHighlightBg   ColorToken = "style.highlight.bg"
	TokenStyleHighlightText ColorToken = "style.highlight.text"
	TokenStyleLink          ColorToken = "style.link"
	TokenStyleCode          ColorToken = "style.code"

	// Reveal codes markers
	TokenRevealMarker ColorToken = "reveal.marker"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Status bar
	TokenStatusBarBg    ColorToken = "statusbar.bg"
	TokenStatusBarText  ColorToken = "statusbar.text"
	TokenStatusBarDirty ColorToken = "statusbar.dirty"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Text hierarchy
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		// Borders
		TokenBorderDefault,
		TokenBorderFocus,

		// Status indicators
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,
		TokenStatusInfo,

		// Selection and cursor
		TokenSelectionIndicator,
		TokenSelectionBackground,
		TokenCursorBackground,
		TokenCursorText,

		// Inline styles
		TokenStyleHighlightBg,
		TokenStyleHighlightText,
		TokenStyleLink,
		TokenStyleCode,

		// Reveal codes markers
		TokenRevealMarker,

		// Overlays
		TokenOverlayTitle,
		TokenOverlayBorder,

		// Status bar
		TokenStatusBarBg,
		TokenStatusBarText,
		TokenStatusBarDirty,
	}
}
