package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/session"
)

const customCategory = "\x00custom"

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimPrefix(s, "฿")
	return decimal.NewFromString(s)
}

func validateAmount(s string) error {
	d, err := parseAmount(s)
	if err != nil {
		return errors.New("enter a number")
	}
	if !d.IsPositive() {
		return errors.New("must be greater than zero")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

type entryValues struct {
	date, kind, category, custom, amount, note string
}

// openEntryForm adds a transaction; the category list is whatever the
// ledger already uses plus a free-text choice.
func (a *App) openEntryForm() tea.Cmd {
	v := &entryValues{
		date:     a.ctrl.Today().Format(time.DateOnly),
		kind:     string(model.KindExpense),
		category: model.CategoryFood,
	}
	kinds := []huh.Option[string]{
		huh.NewOption(a.tr.Kind(model.KindExpense), string(model.KindExpense)),
		huh.NewOption(a.tr.Kind(model.KindIncome), string(model.KindIncome)),
	}
	cats := make([]huh.Option[string], 0, len(a.data.categories)+1)
	for _, c := range a.data.categories {
		cats = append(cats, huh.NewOption(a.tr.Category(c), c))
	}
	cats = append(cats, huh.NewOption(a.tr.T("Custom category"), customCategory))

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(a.tr.T("Add Entry")),
			huh.NewInput().Title(a.tr.T("Date")).Value(&v.date).Validate(validateDate),
			huh.NewSelect[string]().Title(a.tr.T("Type")).Options(kinds...).Value(&v.kind),
			huh.NewSelect[string]().Title(a.tr.T("Category")).Options(cats...).Value(&v.category),
		),
		huh.NewGroup(
			huh.NewInput().Title(a.tr.T("Custom category")).Value(&v.custom).
				Validate(func(s string) error {
					if v.category == customCategory {
						return required(s)
					}
					return nil
				}),
			huh.NewInput().Title(a.tr.T("Amount")).Value(&v.amount).Validate(validateAmount),
			huh.NewInput().Title(a.tr.T("Note")).Value(&v.note),
		),
	)
	return a.openForm(f, func() tea.Cmd {
		day, _ := time.Parse(time.DateOnly, strings.TrimSpace(v.date))
		amount, _ := parseAmount(v.amount)
		cat := v.category
		if cat == customCategory {
			cat = v.custom
		}
		t := model.Transaction{Date: day, Kind: model.Kind(v.kind), Category: cat, Amount: amount, Note: v.note}
		return a.writeCmd(a.tr.T("Entry saved!"), func(ctx context.Context) error {
			return a.ctrl.AddTransaction(ctx, t)
		})
	})
}

type fixedValues struct{ name, amount string }

func (a *App) openFixedForm() tea.Cmd {
	v := &fixedValues{}
	f := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(a.tr.T("Add Fixed Expense")),
		huh.NewInput().Title(a.tr.T("Name")).Value(&v.name).Validate(required),
		huh.NewInput().Title(a.tr.T("Amount")).Value(&v.amount).Validate(validateAmount),
	))
	return a.openForm(f, func() tea.Cmd {
		amount, _ := parseAmount(v.amount)
		return a.writeCmd(a.tr.T("Fixed expense added successfully!"), func(ctx context.Context) error {
			return a.ctrl.AddFixedExpense(ctx, v.name, amount)
		})
	})
}

type goalValues struct {
	name, target, emoji, date, freq string
}

func (a *App) openGoalForm() tea.Cmd {
	today := a.ctrl.Today()
	v := &goalValues{
		emoji: model.DefaultEmoji,
		date:  today.AddDate(0, 6, 0).Format(time.DateOnly),
		freq:  string(model.FrequencyMonthly),
	}
	emojis := huh.NewOptions(model.GoalEmojis...)
	freqs := make([]huh.Option[string], 0, len(model.Frequencies))
	for _, fr := range model.Frequencies {
		freqs = append(freqs, huh.NewOption(a.tr.T(string(fr)), string(fr)))
	}
	f := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(a.tr.T("Add Saving Goal")),
		huh.NewInput().Title(a.tr.T("Name")).Value(&v.name).Validate(required),
		huh.NewInput().Title(a.tr.T("Target")).Value(&v.target).Validate(validateAmount),
		huh.NewSelect[string]().Title(a.tr.T("Emoji")).Options(emojis...).Value(&v.emoji),
		huh.NewInput().Title(a.tr.T("Target Date")).Value(&v.date).Validate(validateDate),
		huh.NewSelect[string]().Title(a.tr.T("Frequency")).Options(freqs...).Value(&v.freq),
	))
	return a.openForm(f, func() tea.Cmd {
		target, _ := parseAmount(v.target)
		day, _ := time.Parse(time.DateOnly, strings.TrimSpace(v.date))
		in := session.GoalInput{
			Name:       v.name,
			Target:     target,
			Emoji:      v.emoji,
			TargetDate: day,
			Frequency:  model.ParseFrequency(v.freq),
		}
		return a.writeCmd(a.tr.T("Goal added successfully!"), func(ctx context.Context) error {
			return a.ctrl.AddGoal(ctx, in)
		})
	})
}

func (a *App) openContributeForm(goal string) tea.Cmd {
	amount := new(string)
	f := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(a.tr.T("Save to Goal")).Description(goal),
		huh.NewInput().Title(a.tr.T("Amount")).Value(amount).Validate(validateAmount),
	))
	return a.openForm(f, func() tea.Cmd {
		d, _ := parseAmount(*amount)
		return a.writeCmd(a.tr.T("Saved %s to %s", a.tr.Money(d), goal), func(ctx context.Context) error {
			return a.ctrl.SaveToGoal(ctx, goal, d)
		})
	})
}

func (a *App) openIncomeForm(month time.Time) tea.Cmd {
	amount := new(string)
	if a.data.plan.Income != nil {
		*amount = a.data.plan.Income.Amount.String()
	}
	f := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(a.tr.T("Expected Monthly Salary")).Description(a.tr.MonthYear(month)),
		huh.NewInput().Title(a.tr.T("Amount")).Value(amount).Validate(func(s string) error {
			d, err := parseAmount(s)
			if err != nil || d.IsNegative() {
				return errors.New("enter zero or more")
			}
			return nil
		}),
	))
	return a.openForm(f, func() tea.Cmd {
		d, _ := parseAmount(*amount)
		return a.writeCmd(a.tr.T("Planned income saved successfully!"), func(ctx context.Context) error {
			return a.ctrl.SetPlanIncome(ctx, month, d)
		})
	})
}

type planExpenseValues struct{ name, category, amount string }

func (a *App) openPlanExpenseForm(month time.Time) tea.Cmd {
	v := &planExpenseValues{category: model.CategoryOthers}
	cats := make([]huh.Option[string], 0, len(model.CanonicalCategories))
	for _, c := range model.CanonicalCategories {
		if c == model.CategoryIncome {
			continue
		}
		cats = append(cats, huh.NewOption(a.tr.Category(c), c))
	}
	f := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(a.tr.T("Add Planned Expense")).Description(a.tr.MonthYear(month)),
		huh.NewInput().Title(a.tr.T("Name")).Value(&v.name).Validate(required),
		huh.NewSelect[string]().Title(a.tr.T("Category")).Options(cats...).Value(&v.category),
		huh.NewInput().Title(a.tr.T("Amount")).Value(&v.amount).Validate(validateAmount),
	))
	return a.openForm(f, func() tea.Cmd {
		d, _ := parseAmount(v.amount)
		return a.writeCmd(a.tr.T("Planned expenses saved successfully!"), func(ctx context.Context) error {
			return a.ctrl.AddPlanExpense(ctx, month, v.name, v.category, d)
		})
	})
}

// confirmDelete asks before running del.
func (a *App) confirmDelete(label string, del func(ctx context.Context) error) tea.Cmd {
	ok := new(bool)
	f := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(a.tr.T("Delete %s?", label)).Affirmative("Yes").Negative("No").Value(ok),
	))
	return a.openForm(f, func() tea.Cmd {
		if !*ok {
			return nil
		}
		return a.writeCmd(a.tr.T("Deleted %s", label), del)
	})
}
