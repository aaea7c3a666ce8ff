package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/pipeline"
	"github.com/theirongolddev/budgetboard/internal/tui/components"
	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

var granularities = []pipeline.Granularity{pipeline.Daily, pipeline.Weekly, pipeline.Monthly, pipeline.Yearly}

func cycle[T comparable](all []T, cur T, delta int) T {
	for i, v := range all {
		if v == cur {
			return all[(i+delta+len(all))%len(all)]
		}
	}
	return all[0]
}

func (a App) updateOverviewKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "[":
		a.period = cycle(pipeline.Periods, a.period, -1)
	case "]":
		a.period = cycle(pipeline.Periods, a.period, 1)
	case "{":
		a.gran = cycle(granularities, a.gran, -1)
	case "}":
		a.gran = cycle(granularities, a.gran, 1)
	case "a":
		cmd := a.openEntryForm()
		return a, cmd
	default:
		return a, nil
	}
	return a.reload()
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	d := a.data.dash
	m := d.Metrics
	tr := a.tr

	balanceColor := t.Income
	if m.Balance.IsNegative() {
		balanceColor = t.Expense
	}
	dailyColor := t.TextPrimary
	if !m.SuggestedDaily.IsPositive() {
		dailyColor = t.Warning
	}

	top := components.MetricCardRow([]components.Metric{
		{Label: tr.T("Income"), Value: tr.Money(m.Income), Color: t.Income},
		{Label: tr.T("Expense"), Value: tr.Money(m.Expense), Color: t.Expense},
		{Label: tr.T("Balance"), Value: tr.Money(m.Balance), Color: balanceColor},
	}, cw)
	bottom := components.MetricCardRow([]components.Metric{
		{Label: tr.T("Total Fixed Expenses"), Value: tr.Money(m.TotalFixed)},
		{Label: tr.T("Balance After Fixed Expenses"), Value: tr.Money(m.RemainingAfterFixed)},
		{Label: tr.T("Suggested Daily Spend"), Value: tr.Money(m.SuggestedDaily), Color: dailyColor},
		{
			Label: tr.T("Days Until Payday"),
			Value: fmt.Sprintf("%d", m.DaysUntilPayday),
			Hint:  m.PaydayTarget.Format("2006-01-02"),
			Color: t.Info,
		},
	}, cw)

	adviceColor := t.Income
	switch d.Advice {
	case model.AdviceOverspending:
		adviceColor = t.Expense
	case model.AdviceHighExpenseRatio:
		adviceColor = t.Warning
	}
	advice := components.ContentCard(tr.T("Smart Suggestion"),
		lipgloss.NewStyle().Foreground(adviceColor).Background(t.Surface).Render(tr.Advice(d.Advice)), cw)

	widths := components.LayoutRow(cw, 2)
	period := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).
		Render(fmt.Sprintf("%s · %s", tr.T(d.Period.String()), tr.T(d.Granularity.String())))

	charts := components.CardRow([]string{
		components.ContentCard(tr.T("Expense Distribution by Category")+"  "+period,
			a.categoryChart(components.CardInnerWidth(widths[0])), widths[0]),
		components.ContentCard(tr.T("Spending Over Time"),
			a.spendingChart(components.CardInnerWidth(widths[1])), widths[1]),
	})

	return strings.Join([]string{top, bottom, advice, charts}, "\n")
}

func (a App) emptyNote() string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(a.tr.T("No data for the selected period."))
}

func (a App) categoryChart(w int) string {
	shares := a.data.dash.Categories
	if len(shares) == 0 {
		return a.emptyNote()
	}
	bars := make([]components.Bar, 0, len(shares))
	for _, s := range shares {
		bars = append(bars, components.Bar{
			Label: a.tr.Category(s.Category),
			Value: s.Total.InexactFloat64(),
			Note:  fmt.Sprintf("%5.1f%%", s.SharePercent),
		})
	}
	return components.HBarChart(bars, theme.Active.Expense, w)
}

func (a App) spendingChart(w int) string {
	points := a.data.dash.Spending
	if len(points) == 0 {
		return a.emptyNote()
	}
	values := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		values[i] = p.Total.InexactFloat64()
		labels[i] = p.Label
	}
	return components.BarChart(values, labels, theme.Active.Accent, w, 8)
}
