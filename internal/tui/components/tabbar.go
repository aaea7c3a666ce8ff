package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

// Tab is one entry of the tab bar. Name is a catalog key; the caller
// translates it.
type Tab struct {
	Name string
	Key  string
}

// Tabs lists the dashboard tabs in order.
var Tabs = []Tab{
	{Name: "Overview", Key: "o"},
	{Name: "Entries", Key: "e"},
	{Name: "Fixed", Key: "f"},
	{Name: "Goals", Key: "g"},
	{Name: "Plan", Key: "p"},
}

// TabLabel is the text shown for a tab, e.g. "Goals [g]".
func TabLabel(name, key string) string {
	return name + " [" + key + "]"
}

// TabVisualWidth is the rendered width of one tab including its padding.
func TabVisualWidth(label string) int {
	return lipgloss.Width(label) + 2
}

// RenderTabBar renders the translated tab labels on one row.
func RenderTabBar(labels []string, activeIdx, width int) string {
	t := theme.Active

	active := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Padding(0, 1)
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == activeIdx {
			parts[i] = active.Render(l)
		} else {
			parts[i] = inactive.Render(l)
		}
	}
	row := strings.Join(parts, sep)
	if gap := width - lipgloss.Width(row); gap > 0 {
		row += lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap))
	}
	return row
}

// TabAt returns the tab under column x, or -1.
func TabAt(labels []string, x int) int {
	pos := 0
	for i, l := range labels {
		w := TabVisualWidth(l)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}
