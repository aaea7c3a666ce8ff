package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/tui/components"
	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

func (a App) updateFixedKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		cmd := a.openFixedForm()
		return a, cmd
	case "d":
		fixed := a.data.dash.Fixed
		if len(fixed) == 0 {
			return a, nil
		}
		name := fixed[a.cursor[tabFixed]].Name
		cmd := a.confirmDelete(name, func(ctx context.Context) error {
			return a.ctrl.RemoveFixedExpense(ctx, name)
		})
		return a, cmd
	}
	return a, nil
}

func (a App) renderFixedTab(cw int) string {
	t := theme.Active
	tr := a.tr
	fixed := a.data.dash.Fixed

	if len(fixed) == 0 {
		return components.FocusCard(tr.T("Fixed Expenses"),
			lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(tr.T("No fixed expenses yet. Add some!")), cw)
	}

	total := decimal.Zero
	tbl := listTable{
		headers:   []string{tr.T("Name"), tr.T("Amount")},
		rightCols: map[int]bool{1: true},
		cursor:    a.cursor[tabFixed],
	}
	for _, f := range fixed {
		total = total.Add(f.Amount)
		tbl.rows = append(tbl.rows, []string{f.Name, tr.Money(f.Amount)})
	}

	m := a.data.dash.Metrics
	summary := components.MetricCardRow([]components.Metric{
		{Label: tr.T("Total Fixed Expenses"), Value: tr.Money(total), Color: t.Expense},
		{Label: tr.T("Balance After Fixed Expenses"), Value: tr.Money(m.RemainingAfterFixed)},
	}, cw)
	list := components.FocusCard(tr.T("Fixed Expenses"), tbl.render(components.CardInnerWidth(cw)), cw)
	return summary + "\n" + list
}
