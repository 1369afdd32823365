// Package help contains the help overlay component.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/fold/internal/keys"
	"github.com/zjrosen/fold/internal/ui/markdown"
	"github.com/zjrosen/fold/internal/ui/overlay"
	"github.com/zjrosen/fold/internal/ui/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// sectionNames labels the rows returned by keys.KeyMap.FullHelp, in order.
var sectionNames = []string{"Movement", "Selection", "Editing", "Structure", "Styles", "General"}

// guideWidth is the word wrap width for the rendered guide text.
const guideWidth = 64

// guideMarkdown is the short usage guide rendered below the keybinding
// columns.
const guideMarkdown = `**Reveal codes** (ctrl+r) shows style markers like ` + "`[b]`...`[/b]`" + `
inline, so the cursor can land on them and delete them directly.

Style keys apply to the selection, or to the word under the cursor
when nothing is selected. Select with shift plus any movement key,
or with the mouse: drag, double-click a word, triple-click a line.

Enter splits the current paragraph; tab and shift+tab move it
deeper or shallower in the outline.`

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	guide  string
	width  int
	height int
}

// New creates a new help view. markdownStyle selects the glamour style
// used for the usage guide (dark, light, auto).
func New(markdownStyle string) Model {
	m := Model{keys: keys.DefaultKeyMap()}

	if r, err := markdown.NewWithStyle(guideWidth, markdownStyle); err == nil {
		if rendered, err := r.Render(guideMarkdown); err == nil {
			m.guide = strings.TrimRight(rendered, "\n")
		}
	}
	return m
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay (standalone, no background).
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box content.
func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	rows := m.keys.FullHelp()
	rendered := make([]string, 0, len(rows))
	for i, row := range rows {
		var col strings.Builder
		name := ""
		if i < len(sectionNames) {
			name = sectionNames[i]
		}
		col.WriteString(sectionStyle.Render(name))
		col.WriteString("\n")
		for _, binding := range row {
			col.WriteString(renderBinding(binding))
		}
		if i == len(rows)-1 {
			// Last column doesn't need right margin
			rendered = append(rendered, col.String())
		} else {
			rendered = append(rendered, columnStyle.Render(col.String()))
		}
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	// Box width follows the widest section
	columnsWidth := lipgloss.Width(columns)
	guideSection := ""
	if m.guide != "" {
		guideSection = "\n" + m.guide
		if w := lipgloss.Width(m.guide); w > columnsWidth {
			columnsWidth = w
		}
	}
	boxWidth := columnsWidth + 4 // Horizontal padding (2 each side)

	body := contentStyle.Render(columns + guideSection + "\n" + footerStyle.Render("Press F1 or Esc to close"))

	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func renderBinding(b key.Binding) string {
	help := b.Help()
	return keyStyle.Render(help.Key) + descStyle.Render(help.Desc) + "\n"
}
