package help

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_New(t *testing.T) {
	m := New("dark")

	// Verify model is created with keys populated
	assert.NotEmpty(t, m.keys.Up.Keys(), "expected Up keys to be set")
	assert.NotEmpty(t, m.keys.Down.Keys(), "expected Down keys to be set")
	assert.NotEmpty(t, m.keys.Bold.Keys(), "expected Bold keys to be set")
	assert.NotEmpty(t, m.keys.RevealCodes.Keys(), "expected RevealCodes keys to be set")
	assert.NotEmpty(t, m.keys.Help.Keys(), "expected Help keys to be set")
	assert.NotEmpty(t, m.keys.Quit.Keys(), "expected Quit keys to be set")
}

func TestHelp_New_RendersGuide(t *testing.T) {
	m := New("dark")

	require.NotEmpty(t, m.guide, "guide should render")
	assert.Contains(t, m.guide, "Reveal codes")
}

func TestHelp_New_AutoStyle(t *testing.T) {
	m := New("")

	assert.Contains(t, m.guide, "Reveal codes")
}

func TestHelp_SetSize(t *testing.T) {
	m := New("dark")

	m = m.SetSize(120, 40)

	assert.Equal(t, 120, m.width, "expected width to be 120")
	assert.Equal(t, 40, m.height, "expected height to be 40")
}

func TestHelp_View_ContainsTitle(t *testing.T) {
	m := New("dark").SetSize(120, 40)

	view := m.View()

	assert.Contains(t, view, "Keybindings")
}

func TestHelp_View_ContainsSections(t *testing.T) {
	m := New("dark").SetSize(120, 40)

	view := m.View()

	for _, section := range []string{"Movement", "Selection", "Editing", "Structure", "Styles", "General"} {
		assert.Contains(t, view, section, "expected section %s", section)
	}
}

func TestHelp_View_ContainsKeyDescriptions(t *testing.T) {
	m := New("dark").SetSize(120, 40)

	view := m.View()

	assert.Contains(t, view, "bold")
	assert.Contains(t, view, "reveal codes")
	assert.Contains(t, view, "indent")
	assert.Contains(t, view, "save")
	assert.Contains(t, view, "split paragraph")
}

func TestHelp_View_ContainsFooter(t *testing.T) {
	m := New("dark").SetSize(120, 40)

	view := m.View()

	assert.Contains(t, view, "Press F1 or Esc to close")
}

func TestHelp_View_HasBorder(t *testing.T) {
	m := New("dark").SetSize(120, 40)

	view := m.View()

	assert.Contains(t, view, "╭")
	assert.Contains(t, view, "╯")
}

func TestHelp_Overlay_EmptyBackgroundCenters(t *testing.T) {
	m := New("dark").SetSize(140, 50)

	result := m.Overlay("")

	require.NotEmpty(t, result)
	assert.Contains(t, result, "Keybindings")
}

func TestHelp_Overlay_PlacesOnBackground(t *testing.T) {
	m := New("dark").SetSize(140, 50)

	bg := strings.Repeat(strings.Repeat(".", 140)+"\n", 50)
	bg = strings.TrimSuffix(bg, "\n")

	result := m.Overlay(bg)

	assert.Contains(t, result, "Keybindings")
	assert.NotEqual(t, bg, result)
	// Background should still be visible around the box
	assert.Contains(t, result, "....")
}
