package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetboard/internal/goals"
	"github.com/theirongolddev/budgetboard/internal/tui/components"
	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

func (a App) updateGoalsKey(key string) (tea.Model, tea.Cmd) {
	if key == "a" {
		cmd := a.openGoalForm()
		return a, cmd
	}
	if len(a.data.goals) == 0 {
		return a, nil
	}
	name := a.data.goals[a.cursor[tabGoals]].Goal.Name
	switch key {
	case "s":
		cmd := a.openContributeForm(name)
		return a, cmd
	case "d":
		cmd := a.confirmDelete(name, func(ctx context.Context) error {
			return a.ctrl.RemoveGoal(ctx, name)
		})
		return a, cmd
	}
	return a, nil
}

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	tr := a.tr
	views := a.data.goals

	if len(views) == 0 {
		return components.FocusCard(tr.T("Saving Goals"),
			lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(tr.T("No saving goals yet. Add your first goal!")), cw)
	}

	cols := 1
	if cw >= 110 {
		cols = 2
	}
	widths := components.LayoutRow(cw, cols)

	var rows []string
	for i := 0; i < len(views); i += cols {
		var cards []string
		for j := 0; j < cols && i+j < len(views); j++ {
			cards = append(cards, a.goalCard(views[i+j], widths[j], i+j == a.cursor[tabGoals]))
		}
		rows = append(rows, components.CardRow(cards))
	}
	return strings.Join(rows, "\n")
}

func (a App) goalCard(v goals.View, w int, focused bool) string {
	t := theme.Active
	tr := a.tr
	g := v.Goal
	inner := components.CardInnerWidth(w)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	statusColor := t.Info
	switch v.Status.Kind {
	case goals.StatusReached:
		statusColor = t.Income
	case goals.StatusOverdue, goals.StatusInvalidDate:
		statusColor = t.Expense
	}
	status := lipgloss.NewStyle().Foreground(statusColor).Background(t.Surface).Render(tr.GoalStatus(v.Status))

	lines := []string{
		muted.Render(tr.T("Saved")+" ") + value.Render(tr.Money(g.CurrentSaved)) +
			muted.Render(" / "+tr.Money(g.TargetAmount)),
		components.GoalBar(v.ProgressPercent, inner),
		muted.Render(tr.T("Remaining")+" ") + value.Render(tr.Money(v.Remaining)) +
			muted.Render("  "+tr.T("Target Date")+" "+formatDay(g.TargetDate)),
		status,
	}
	if v.Status.Kind == goals.StatusRemaining {
		lines = append(lines, muted.Render(fmt.Sprintf("%s / %s", tr.Money(g.RequiredPerFrequency), tr.FrequencyUnit(g.Frequency))))
	}

	title := g.Emoji + " " + g.Name
	body := strings.Join(lines, "\n")
	if focused {
		return components.FocusCard(title, body, w)
	}
	return components.ContentCard(title, body, w)
}
