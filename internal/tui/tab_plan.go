package tui

import (
	"context"
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/tui/components"
	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func (a App) updatePlanKey(key string) (tea.Model, tea.Cmd) {
	p := a.data.plan
	switch key {
	case "[", "]":
		// Options are newest first.
		idx := -1
		for i, m := range p.Options {
			if m.Equal(p.Month) {
				idx = i
			}
		}
		if key == "[" {
			idx++
		} else {
			idx--
		}
		if idx < 0 || idx >= len(p.Options) {
			return a, nil
		}
		a.planMonth = p.Options[idx]
		a.cursor[tabPlan] = 0
		a.selected = make(map[string]bool)
		return a.reload()
	case "i":
		cmd := a.openIncomeForm(p.Month)
		return a, cmd
	case "a":
		cmd := a.openPlanExpenseForm(p.Month)
		return a, cmd
	}

	if len(p.Expenses) == 0 {
		return a, nil
	}
	item := p.Expenses[a.cursor[tabPlan]]
	switch key {
	case "d":
		id := item.ID
		cmd := a.confirmDelete(item.Name, func(ctx context.Context) error {
			return a.ctrl.RemovePlanItem(ctx, id)
		})
		return a, cmd
	case " ", "space":
		if !p.PaymentWindowOpen || item.IsPaid {
			return a, nil
		}
		sel := make(map[string]bool, len(a.selected)+1)
		for id := range a.selected {
			sel[id] = true
		}
		if sel[item.ID] {
			delete(sel, item.ID)
		} else {
			sel[item.ID] = true
		}
		a.selected = sel
		return a, nil
	case "enter":
		if !p.PaymentWindowOpen {
			cmd := a.setFlash(a.tr.T("Payment management opens on day %d of the current month.", a.ctrl.Payday()), true)
			return a, cmd
		}
		ids := make([]string, 0, len(a.selected))
		for id := range a.selected {
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			cmd := a.setFlash(a.tr.T("Nothing selected."), true)
			return a, cmd
		}
		sort.Strings(ids)
		a.selected = make(map[string]bool)
		ctrl, tr := a.ctrl, a.tr
		return a, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			defer cancel()
			n, err := ctrl.ActivatePayments(ctx, ids)
			if err != nil {
				return writeMsg{err: err}
			}
			return writeMsg{text: tr.T("Paid %d items", n)}
		}
	}
	return a, nil
}

func (a App) renderPlanTab(cw, h int) string {
	t := theme.Active
	tr := a.tr
	p := a.data.plan
	s := p.Summary

	income := "-"
	if p.Income != nil {
		income = tr.Money(p.Income.Amount)
	}
	netColor := t.Income
	if s.Net.IsNegative() {
		netColor = t.Expense
	}
	summary := components.MetricCardRow([]components.Metric{
		{Label: tr.T("Expected Salary"), Value: income, Color: t.Income},
		{Label: tr.T("Planned Expenses"), Value: tr.Money(s.Expense), Hint: fmt.Sprintf("%d/%d %s", s.PaidItems, s.Items, tr.T("Paid")), Color: t.Expense},
		{Label: tr.T("Unpaid"), Value: tr.Money(s.Unpaid), Color: t.Warning},
		{Label: tr.T("Net"), Value: tr.Money(s.Net), Color: netColor},
	}, cw)

	title := tr.T("Plan for Next Month") + "  " +
		lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Render(tr.MonthYear(p.Month))

	var notice string
	switch {
	case p.PaymentWindowOpen:
		notice = lipgloss.NewStyle().Foreground(t.Income).Background(t.Surface).
			Render(tr.T("It's time to manage expenses for %s!", tr.MonthYear(p.Month)))
	case p.IsCurrentMonth:
		notice = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(tr.T("Payment management opens on day %d of the current month.", a.ctrl.Payday()))
	}

	var body string
	if len(p.Expenses) == 0 {
		body = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(tr.T("No expenses to manage for this month."))
	} else {
		tbl := listTable{
			headers:   []string{"", tr.T("Name"), tr.T("Category"), tr.T("Amount"), tr.T("Paid"), tr.T("Date Paid")},
			rightCols: map[int]bool{3: true},
			flex:      1,
			cursor:    a.cursor[tabPlan],
			height:    max(h-12, 3),
		}
		for _, it := range p.Expenses {
			mark := "[ ]"
			switch {
			case it.IsPaid:
				mark = "[✓]"
			case a.selected[it.ID]:
				mark = "[•]"
			}
			paid := ""
			if it.IsPaid {
				paid = "✓"
			}
			tbl.rows = append(tbl.rows, []string{mark, it.Name, tr.Category(it.Category), tr.Money(it.Amount), paid, formatDay(it.DatePaid)})
			c := lipgloss.Color("")
			if it.IsPaid {
				c = t.TextMuted
			} else if it.Category == model.CategoryFixedExpense {
				c = t.Info
			}
			tbl.colors = append(tbl.colors, c)
		}
		body = tbl.render(components.CardInnerWidth(cw))
	}
	if notice != "" {
		body = notice + "\n\n" + body
	}
	return summary + "\n" + components.FocusCard(title, body, cw)
}
