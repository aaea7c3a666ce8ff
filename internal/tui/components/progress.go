package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

// ColorForProgress moves from accent to income green as a goal fills up.
func ColorForProgress(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 100:
		return t.Income
	case pct >= 50:
		return t.AccentBright
	default:
		return t.Accent
	}
}

// GoalBar renders a goal's progress (0-100) with its percentage.
func GoalBar(pct float64, width int) string {
	t := theme.Active
	pct = min(max(pct, 0), 100)

	bar := progress.New(
		progress.WithSolidFill(string(ColorForProgress(pct))),
		progress.WithWidth(max(width-7, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(ColorForProgress(pct)).Background(t.Surface).Bold(true)
	return bar.ViewAs(pct/100) + lipgloss.NewStyle().Background(t.Surface).Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}
