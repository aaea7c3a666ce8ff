package session

import (
	"context"
	"time"

	"github.com/theirongolddev/budgetboard/internal/goals"
	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/pipeline"
	"github.com/theirongolddev/budgetboard/internal/plan"
)

// Dashboard is the overview screen: headline metrics plus both charts for
// the selected period.
type Dashboard struct {
	Today       time.Time
	Metrics     model.Metrics
	Advice      model.Advice
	Period      pipeline.Period
	Granularity pipeline.Granularity
	Categories  []model.CategoryShare
	Spending    []model.SpendingPoint
	Fixed       []model.FixedExpense
}

// Dashboard computes the overview. Metrics always cover the whole ledger;
// the charts cover the selected period only.
func (c *Controller) Dashboard(ctx context.Context, p pipeline.Period, g pipeline.Granularity) (Dashboard, error) {
	s, err := c.Snapshot(ctx)
	today := c.now()
	ledger := pipeline.Ledger(s.Transactions, s.Fixed, today)
	m := pipeline.Compute(ledger, s.Fixed, today, c.payday)
	charted := pipeline.FilterByPeriod(ledger, p, today)
	return Dashboard{
		Today:       today,
		Metrics:     m,
		Advice:      pipeline.Advise(m),
		Period:      p,
		Granularity: g,
		Categories:  pipeline.ExpenseByCategory(charted),
		Spending:    pipeline.SpendingOverTime(charted, g),
		Fixed:       s.Fixed,
	}, err
}

// EntriesPage is one group of the entries table.
type EntriesPage struct {
	View    pipeline.EntryView
	Key     string
	Periods []pipeline.EntryPeriod
	Rows    []model.Transaction
}

// Entries returns the rows of one day, week or month. An empty key selects
// the default group.
func (c *Controller) Entries(ctx context.Context, v pipeline.EntryView, key string) (EntriesPage, error) {
	s, err := c.Snapshot(ctx)
	today := c.now()
	ledger := pipeline.Ledger(s.Transactions, s.Fixed, today)
	periods := pipeline.EntryPeriods(ledger, v)
	if key == "" {
		key = pipeline.DefaultEntryKey(periods, v, today)
	}
	return EntriesPage{
		View:    v,
		Key:     key,
		Periods: periods,
		Rows:    pipeline.Entries(ledger, v, key),
	}, err
}

// Goals returns a view of every goal.
func (c *Controller) Goals(ctx context.Context) ([]goals.View, error) {
	s, err := c.Snapshot(ctx)
	today := c.now()
	views := make([]goals.View, 0, len(s.Goals))
	for _, g := range s.Goals {
		views = append(views, goals.NewView(g, today))
	}
	return views, err
}

// PlanPage is one plan month plus the months that can be selected.
type PlanPage struct {
	plan.View
	Options []time.Time
}

// Plan returns the reconciled plan of month. A zero month selects next month.
func (c *Controller) Plan(ctx context.Context, month time.Time) (PlanPage, error) {
	s, err := c.Snapshot(ctx)
	now := c.now()
	if month.IsZero() {
		month = plan.DefaultMonth(now)
	}
	return PlanPage{
		View:    plan.NewView(s.Plans, s.Fixed, month, now, c.payday),
		Options: plan.MonthOptions(s.Plans, now),
	}, err
}

// Categories returns the categories offered for a new transaction.
func (c *Controller) Categories(ctx context.Context) ([]string, error) {
	s, err := c.Snapshot(ctx)
	return pipeline.CategoryOptions(s.Transactions), err
}
