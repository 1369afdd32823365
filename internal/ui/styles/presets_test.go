package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAllPresetsDefineAllTokens ensures no preset ships with a missing
// token, which would silently fall back to the default preset's color.
func TestAllPresetsDefineAllTokens(t *testing.T) {
	for name, preset := range Presets {
		t.Run(name, func(t *testing.T) {
			for _, token := range AllTokens() {
				_, ok := preset.Colors[token]
				require.True(t, ok, "preset %s missing token %s", name, token)
			}
		})
	}
}

func TestAllPresetsUseValidHexColors(t *testing.T) {
	for name, preset := range Presets {
		t.Run(name, func(t *testing.T) {
			for token, hex := range preset.Colors {
				require.True(t, isValidHexColor(hex),
					"preset %s token %s has invalid hex %q", name, token, hex)
			}
		})
	}
}

func TestPresetsRegistry(t *testing.T) {
	expected := []string{
		"default",
		"catppuccin-mocha",
		"catppuccin-latte",
		"dracula",
		"nord",
		"high-contrast",
	}
	require.Len(t, Presets, len(expected))
	for _, name := range expected {
		preset, ok := Presets[name]
		require.True(t, ok, "missing preset %s", name)
		require.Equal(t, name, preset.Name)
		require.NotEmpty(t, preset.Description)
	}
}

// TestAllPresetsApplyCleanly runs every preset through ApplyTheme so a bad
// token or color cannot ship.
func TestAllPresetsApplyCleanly(t *testing.T) {
	for name := range Presets {
		t.Run(name, func(t *testing.T) {
			cfg := ThemeConfig{Preset: name}
			if name == "default" {
				cfg.Preset = "" // Empty preset means default
			}
			require.NoError(t, ApplyTheme(cfg))
		})
	}

	// Restore defaults for other tests
	require.NoError(t, ApplyTheme(ThemeConfig{}))
}

func TestSelectionBackgroundPerPreset(t *testing.T) {
	expectedColors := map[string]string{
		"default":          "#264F78",
		"catppuccin-mocha": "#45475A", // surface1
		"catppuccin-latte": "#BCC0CC", // surface1 (light)
		"dracula":          "#44475A", // current line
		"nord":             "#434C5E", // polar night 3
		"high-contrast":    "#0000FF", // pure blue
	}

	require.Equal(t, len(Presets), len(expectedColors),
		"Test should cover all presets (expected %d, got %d)", len(expectedColors), len(Presets))

	for name, want := range expectedColors {
		require.Equal(t, want, Presets[name].Colors[TokenSelectionBackground],
			"preset %s selection.background", name)
	}
}
