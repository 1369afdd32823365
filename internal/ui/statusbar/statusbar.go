// Package statusbar renders the single-line bar at the bottom of the
// editor: file name, dirty marker, cursor breadcrumbs, and the current
// line/column position.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/fold/internal/ui/styles"
)

const (
	// crumbSeparator joins breadcrumb titles.
	crumbSeparator = " › "
	// maxCrumbLen bounds a single breadcrumb title, in grapheme clusters.
	maxCrumbLen = 24
)

// Model holds the status bar state.
type Model struct {
	width           int
	fileName        string
	breadcrumbs     []string
	line            int
	column          int
	dirty           bool
	reveal          bool
	showBreadcrumbs bool
}

// New creates a status bar. showBreadcrumbs controls whether the cursor
// breadcrumb trail is rendered between the file name and the position.
func New(showBreadcrumbs bool) Model {
	return Model{showBreadcrumbs: showBreadcrumbs}
}

// SetSize updates the bar width.
func (m Model) SetSize(width int) Model {
	m.width = width
	return m
}

// SetFile updates the displayed file name.
func (m Model) SetFile(name string) Model {
	m.fileName = name
	return m
}

// SetCursor updates the displayed position. Line and column are 1-based.
func (m Model) SetCursor(line, column int) Model {
	m.line = line
	m.column = column
	return m
}

// SetDirty updates the unsaved-changes marker.
func (m Model) SetDirty(dirty bool) Model {
	m.dirty = dirty
	return m
}

// SetBreadcrumbs updates the cursor breadcrumb trail.
func (m Model) SetBreadcrumbs(crumbs []string) Model {
	m.breadcrumbs = crumbs
	return m
}

// SetReveal updates the reveal-codes indicator.
func (m Model) SetReveal(reveal bool) Model {
	m.reveal = reveal
	return m
}

// View renders the bar at the configured width.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	// StatusBarStyle pads one cell each side
	contentWidth := m.width - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	right := m.renderRight()
	rightWidth := lipgloss.Width(right)

	leftAvail := contentWidth - rightWidth - 1
	if leftAvail < 0 {
		leftAvail = 0
	}
	left := truncate.StringWithTail(m.renderLeft(), uint(leftAvail), "…") //nolint:gosec // G115: leftAvail is clamped non-negative

	gap := contentWidth - lipgloss.Width(left) - rightWidth
	if gap < 1 {
		gap = 1
	}

	return styles.StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderLeft builds the file name, dirty marker, and breadcrumb trail.
func (m Model) renderLeft() string {
	var b strings.Builder

	name := m.fileName
	if name == "" {
		name = "[untitled]"
	}
	b.WriteString(name)

	if m.dirty {
		b.WriteString(" ")
		b.WriteString(styles.StatusBarDirtyStyle.Render("●"))
	}

	if m.showBreadcrumbs && len(m.breadcrumbs) > 0 {
		shortened := make([]string, len(m.breadcrumbs))
		for i, crumb := range m.breadcrumbs {
			shortened[i] = shortenCrumb(crumb, maxCrumbLen)
		}
		b.WriteString("  ")
		b.WriteString(strings.Join(shortened, crumbSeparator))
	}

	return b.String()
}

// renderRight builds the reveal indicator and cursor position.
func (m Model) renderRight() string {
	pos := fmt.Sprintf("Ln %d, Col %d", m.line, m.column)
	if m.reveal {
		return styles.RevealMarkerStyle.Render("REVEAL") + "  " + pos
	}
	return pos
}

// shortenCrumb cuts a title after max grapheme clusters, so multi-rune
// clusters are never split mid-sequence.
func shortenCrumb(s string, max int) string {
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	count := 0
	for g.Next() && count < max-1 {
		b.WriteString(g.Str())
		count++
	}
	b.WriteString("…")
	return b.String()
}
