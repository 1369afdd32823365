// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock fold color scheme.
// Color values match the styles.go AdaptiveColor definitions (Dark values).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default fold theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",
		TokenStatusInfo:    "#54A0FF",

		TokenSelectionIndicator:  "#FFFFFF",
		TokenSelectionBackground: "#264F78",
		TokenCursorBackground:    "#FFFFFF",
		TokenCursorText:          "#000000",

		TokenStyleHighlightBg:   "#FECA57",
		TokenStyleHighlightText: "#1A1A1A",
		TokenStyleLink:          "#54A0FF",
		TokenStyleCode:          "#999999",

		TokenRevealMarker: "#FF731A",

		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		TokenStatusBarBg:    "#2D3436",
		TokenStatusBarText:  "#BBBBBB",
		TokenStatusBarDirty: "#FECA57",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
// Mocha flavor - warm, cozy dark theme with pastel colors.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CDD6F4", // text
		TokenTextSecondary: "#BAC2DE", // subtext1
		TokenTextMuted:     "#6C7086", // overlay0

		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#CDD6F4", // text

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red
		TokenStatusInfo:    "#89B4FA", // blue

		TokenSelectionIndicator:  "#CDD6F4", // text
		TokenSelectionBackground: "#45475A", // surface1
		TokenCursorBackground:    "#F5E0DC", // rosewater
		TokenCursorText:          "#1E1E2E", // base

		TokenStyleHighlightBg:   "#F9E2AF", // yellow
		TokenStyleHighlightText: "#1E1E2E", // base
		TokenStyleLink:          "#89B4FA", // blue
		TokenStyleCode:          "#A6ADC8", // subtext0

		TokenRevealMarker: "#FAB387", // peach

		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0

		TokenStatusBarBg:    "#313244", // surface0
		TokenStatusBarText:  "#BAC2DE", // subtext1
		TokenStatusBarDirty: "#F9E2AF", // yellow
	},
}

// CatppuccinLattePreset is the Catppuccin Latte (light) theme.
// Colors from: https://catppuccin.com/palette
// Latte flavor - light theme for bright environments.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#4C4F69", // text
		TokenTextSecondary: "#5C5F77", // subtext1
		TokenTextMuted:     "#9CA0B0", // overlay0

		TokenBorderDefault: "#9CA0B0", // overlay0
		TokenBorderFocus:   "#4C4F69", // text

		TokenStatusSuccess: "#40A02B", // green
		TokenStatusWarning: "#DF8E1D", // yellow
		TokenStatusError:   "#D20F39", // red
		TokenStatusInfo:    "#1E66F5", // blue

		TokenSelectionIndicator:  "#4C4F69", // text
		TokenSelectionBackground: "#BCC0CC", // surface1
		TokenCursorBackground:    "#DC8A78", // rosewater
		TokenCursorText:          "#EFF1F5", // base

		TokenStyleHighlightBg:   "#DF8E1D", // yellow
		TokenStyleHighlightText: "#EFF1F5", // base
		TokenStyleLink:          "#1E66F5", // blue
		TokenStyleCode:          "#6C6F85", // subtext0

		TokenRevealMarker: "#FE640B", // peach

		TokenOverlayTitle:  "#4C4F69", // text
		TokenOverlayBorder: "#9CA0B0", // overlay0

		TokenStatusBarBg:    "#CCD0DA", // surface0
		TokenStatusBarText:  "#5C5F77", // subtext1
		TokenStatusBarDirty: "#DF8E1D", // yellow
	},
}

// DraculaPreset is the classic Dracula dark theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#F8F8F2", // foreground
		TokenTextSecondary: "#F8F8F2", // foreground
		TokenTextMuted:     "#6272A4", // comment

		TokenBorderDefault: "#6272A4", // comment
		TokenBorderFocus:   "#F8F8F2", // foreground

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red
		TokenStatusInfo:    "#8BE9FD", // cyan

		TokenSelectionIndicator:  "#F8F8F2", // foreground
		TokenSelectionBackground: "#44475A", // current line
		TokenCursorBackground:    "#F8F8F2", // foreground
		TokenCursorText:          "#282A36", // background

		TokenStyleHighlightBg:   "#F1FA8C", // yellow
		TokenStyleHighlightText: "#282A36", // background
		TokenStyleLink:          "#8BE9FD", // cyan
		TokenStyleCode:          "#6272A4", // comment

		TokenRevealMarker: "#FFB86C", // orange

		TokenOverlayTitle:  "#F8F8F2", // foreground
		TokenOverlayBorder: "#6272A4", // comment

		TokenStatusBarBg:    "#44475A", // current line
		TokenStatusBarText:  "#F8F8F2", // foreground
		TokenStatusBarDirty: "#F1FA8C", // yellow
	},
}

// NordPreset is the Nord arctic theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4", // snow storm 3
		TokenTextSecondary: "#E5E9F0", // snow storm 2
		TokenTextMuted:     "#4C566A", // polar night 4

		TokenBorderDefault: "#4C566A", // polar night 4
		TokenBorderFocus:   "#ECEFF4", // snow storm 3

		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red
		TokenStatusInfo:    "#88C0D0", // frost 2

		TokenSelectionIndicator:  "#ECEFF4", // snow storm 3
		TokenSelectionBackground: "#434C5E", // polar night 3
		TokenCursorBackground:    "#D8DEE9", // snow storm 1
		TokenCursorText:          "#2E3440", // polar night 1

		TokenStyleHighlightBg:   "#EBCB8B", // aurora yellow
		TokenStyleHighlightText: "#2E3440", // polar night 1
		TokenStyleLink:          "#88C0D0", // frost 2
		TokenStyleCode:          "#8FBCBB", // frost 1

		TokenRevealMarker: "#D08770", // aurora orange

		TokenOverlayTitle:  "#ECEFF4", // snow storm 3
		TokenOverlayBorder: "#4C566A", // polar night 4

		TokenStatusBarBg:    "#3B4252", // polar night 2
		TokenStatusBarText:  "#E5E9F0", // snow storm 2
		TokenStatusBarDirty: "#EBCB8B", // aurora yellow
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#CCCCCC", // slightly dimmed but still readable

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00", // bright yellow for focus

		TokenStatusSuccess: "#00FF00", // pure green
		TokenStatusWarning: "#FFFF00", // pure yellow
		TokenStatusError:   "#FF0000", // pure red
		TokenStatusInfo:    "#00FFFF", // cyan

		TokenSelectionIndicator:  "#FFFF00", // yellow for visibility
		TokenSelectionBackground: "#0000FF", // pure blue
		TokenCursorBackground:    "#FFFFFF",
		TokenCursorText:          "#000000",

		TokenStyleHighlightBg:   "#FFFF00",
		TokenStyleHighlightText: "#000000",
		TokenStyleLink:          "#00FFFF",
		TokenStyleCode:          "#CCCCCC",

		TokenRevealMarker: "#FF00FF", // magenta

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		TokenStatusBarBg:    "#000000",
		TokenStatusBarText:  "#FFFFFF",
		TokenStatusBarDirty: "#FFFF00",
	},
}
