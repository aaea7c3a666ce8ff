package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/pipeline"
	"github.com/theirongolddev/budgetboard/internal/tui/components"
	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

var entryViews = []pipeline.EntryView{pipeline.ViewDay, pipeline.ViewWeek, pipeline.ViewMonth}

// isMaterializedFixed reports whether t was derived from a fixed expense
// rather than stored.
func isMaterializedFixed(t model.Transaction) bool {
	return t.Category == model.CategoryFixedExpense && strings.HasPrefix(t.Note, pipeline.FixedExpenseNote)
}

func (a App) updateEntriesKey(key string) (tea.Model, tea.Cmd) {
	page := a.data.entries
	switch key {
	case "v":
		a.entryView = cycle(entryViews, a.entryView, 1)
		a.entryKey = ""
		a.cursor[tabEntries] = 0
		return a.reload()
	case "[", "]":
		// Periods are newest first, so older is further along the slice.
		idx := -1
		for i, p := range page.Periods {
			if p.Key == page.Key {
				idx = i
			}
		}
		if key == "[" {
			idx++
		} else {
			idx--
		}
		if idx < 0 || idx >= len(page.Periods) {
			return a, nil
		}
		a.entryKey = page.Periods[idx].Key
		a.cursor[tabEntries] = 0
		return a.reload()
	case "a":
		cmd := a.openEntryForm()
		return a, cmd
	case "d":
		if len(page.Rows) == 0 {
			return a, nil
		}
		row := page.Rows[a.cursor[tabEntries]]
		if isMaterializedFixed(row) {
			cmd := a.setFlash(a.tr.T("Fixed expense rows are edited on the Fixed tab."), true)
			return a, cmd
		}
		label := fmt.Sprintf("%s %s %s", row.Date.Format("2006-01-02"), a.tr.Category(row.Category), a.tr.Money(row.Amount))
		cmd := a.confirmDelete(label, func(ctx context.Context) error {
			return a.ctrl.DeleteTransaction(ctx, row)
		})
		return a, cmd
	}
	return a, nil
}

func (a App) renderEntriesTab(cw, h int) string {
	t := theme.Active
	tr := a.tr
	page := a.data.entries

	var views []string
	for _, v := range entryViews {
		st := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		if v == page.View {
			st = st.Foreground(t.Accent).Bold(true)
		}
		views = append(views, st.Render(tr.T(v.String())))
	}
	sep := lipgloss.NewStyle().Background(t.Surface).Render(" · ")
	title := tr.T("Entries for %s", page.Key) + "  " + strings.Join(views, sep)

	if len(page.Rows) == 0 {
		return components.FocusCard(title,
			lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(tr.T("No entries.")), cw)
	}

	tbl := listTable{
		headers:   []string{tr.T("Date"), tr.T("Type"), tr.T("Category"), tr.T("Amount"), tr.T("Note")},
		rightCols: map[int]bool{3: true},
		flex:      4,
		cursor:    a.cursor[tabEntries],
		height:    max(h-6, 3),
	}
	for _, r := range page.Rows {
		tbl.rows = append(tbl.rows, []string{
			r.Date.Format("2006-01-02"),
			tr.Kind(r.Kind),
			tr.Category(r.Category),
			tr.Money(r.Amount),
			r.Note,
		})
		c := t.Expense
		if r.Kind == model.KindIncome {
			c = t.Income
		}
		tbl.colors = append(tbl.colors, c)
	}
	return components.FocusCard(title, tbl.render(components.CardInnerWidth(cw)), cw)
}
