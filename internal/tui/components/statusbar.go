package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

// Flash is a transient status message.
type Flash struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom bar: key hints on the left, a flash
// message or data age on the right.
func RenderStatusBar(width int, hints, right string, flash Flash) string {
	t := theme.Active
	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if flash.Text != "" {
		c := t.Income
		if flash.Error {
			c = t.Expense
		}
		right = lipgloss.NewStyle().Foreground(c).Background(t.Surface).Bold(true).Render(flash.Text)
	} else {
		right = base.Render(right)
	}
	left := base.Render(" " + hints)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-1, 0)
	return left + base.Render(strings.Repeat(" ", gap)) + right + base.Render(" ")
}
