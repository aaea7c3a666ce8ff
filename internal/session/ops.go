package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/goals"
	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/plan"
	"github.com/theirongolddev/budgetboard/internal/store"
)

func one(t store.Table) []store.Table { return []store.Table{t} }

func validateTransaction(t model.Transaction) error {
	if t.Date.IsZero() {
		return invalid("date", "is required")
	}
	if t.Kind != model.KindIncome && t.Kind != model.KindExpense {
		return invalid("type", "must be Income or Expense")
	}
	if strings.TrimSpace(t.Category) == "" {
		return invalid("category", "is required")
	}
	if !t.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return nil
}

// AddTransaction appends one entry. A zero date means today.
func (c *Controller) AddTransaction(ctx context.Context, t model.Transaction) error {
	if t.Date.IsZero() {
		t.Date = c.now()
	}
	t.Date = model.Day(t.Date)
	t.Category = strings.TrimSpace(t.Category)
	t.Note = strings.TrimSpace(t.Note)
	if err := validateTransaction(t); err != nil {
		return err
	}
	return c.write(ctx, "add transaction", func(_ *Snapshot) ([]store.Table, bool, error) {
		return one(store.Transactions), false, c.store.AppendRow(ctx, store.Transactions, store.EncodeTransaction(t))
	})
}

// ReplaceTransactions rewrites the whole transaction table, as after a bulk
// edit. Every row must be valid.
func (c *Controller) ReplaceTransactions(ctx context.Context, txns []model.Transaction) error {
	for _, t := range txns {
		if err := validateTransaction(t); err != nil {
			return err
		}
	}
	return c.write(ctx, "replace transactions", func(_ *Snapshot) ([]store.Table, bool, error) {
		return one(store.Transactions), false, c.store.ClearAndRewrite(ctx, store.Transactions, store.EncodeTransactions(txns))
	})
}

// DeleteTransaction removes the first stored transaction equal to t.
func (c *Controller) DeleteTransaction(ctx context.Context, t model.Transaction) error {
	return c.write(ctx, "delete transaction", func(s *Snapshot) ([]store.Table, bool, error) {
		idx := -1
		for i, x := range s.Transactions {
			if x.Date.Equal(t.Date) && x.Kind == t.Kind && x.Category == t.Category && x.Amount.Equal(t.Amount) && x.Note == t.Note {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, false, invalid("transaction", "not found")
		}
		rest := make([]model.Transaction, 0, len(s.Transactions)-1)
		rest = append(rest, s.Transactions[:idx]...)
		rest = append(rest, s.Transactions[idx+1:]...)
		return one(store.Transactions), false, c.store.ClearAndRewrite(ctx, store.Transactions, store.EncodeTransactions(rest))
	})
}

func validateFixed(f model.FixedExpense) error {
	if f.Name == "" {
		return invalid("name", "is required")
	}
	if !f.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return nil
}

// AddFixedExpense appends a recurring monthly cost.
func (c *Controller) AddFixedExpense(ctx context.Context, name string, amount decimal.Decimal) error {
	f := model.FixedExpense{Name: strings.TrimSpace(name), Amount: amount}
	if err := validateFixed(f); err != nil {
		return err
	}
	return c.write(ctx, "add fixed expense", func(_ *Snapshot) ([]store.Table, bool, error) {
		return one(store.FixedExpenses), false, c.store.AppendRow(ctx, store.FixedExpenses, store.EncodeFixedExpenses([]model.FixedExpense{f})[0])
	})
}

// ReplaceFixedExpenses rewrites the fixed expense table.
func (c *Controller) ReplaceFixedExpenses(ctx context.Context, fs []model.FixedExpense) error {
	clean := make([]model.FixedExpense, 0, len(fs))
	for _, f := range fs {
		f.Name = strings.TrimSpace(f.Name)
		if err := validateFixed(f); err != nil {
			return err
		}
		clean = append(clean, f)
	}
	return c.write(ctx, "replace fixed expenses", func(_ *Snapshot) ([]store.Table, bool, error) {
		return one(store.FixedExpenses), false, c.store.ClearAndRewrite(ctx, store.FixedExpenses, store.EncodeFixedExpenses(clean))
	})
}

// RemoveFixedExpense deletes every fixed expense with the given name.
func (c *Controller) RemoveFixedExpense(ctx context.Context, name string) error {
	return c.write(ctx, "remove fixed expense", func(s *Snapshot) ([]store.Table, bool, error) {
		rest := make([]model.FixedExpense, 0, len(s.Fixed))
		for _, f := range s.Fixed {
			if f.Name != name {
				rest = append(rest, f)
			}
		}
		if len(rest) == len(s.Fixed) {
			return nil, false, invalid("name", "no fixed expense named "+name)
		}
		return one(store.FixedExpenses), false, c.store.ClearAndRewrite(ctx, store.FixedExpenses, store.EncodeFixedExpenses(rest))
	})
}

// GoalInput is the user-editable part of a saving goal.
type GoalInput struct {
	Name       string
	Target     decimal.Decimal
	Emoji      string
	TargetDate time.Time
	Frequency  model.Frequency
}

// AddGoal creates a goal with nothing saved.
func (c *Controller) AddGoal(ctx context.Context, in GoalInput) error {
	g, err := goals.NewGoal(in.Name, in.Target, in.Emoji, in.TargetDate, in.Frequency, c.now())
	if err != nil {
		return invalidErr("goal", err)
	}
	return c.write(ctx, "add goal", func(s *Snapshot) ([]store.Table, bool, error) {
		if goals.Find(s.Goals, g.Name) >= 0 {
			return nil, false, invalid("name", "a goal named "+g.Name+" already exists")
		}
		return one(store.SavingGoals), false, c.store.AppendRow(ctx, store.SavingGoals, store.EncodeSavingGoals([]model.SavingGoal{g})[0])
	})
}

// ReplaceGoals rewrites the goal table after a bulk edit, recomputing every
// derived requirement.
func (c *Controller) ReplaceGoals(ctx context.Context, gs []model.SavingGoal) error {
	seen := make(map[string]struct{}, len(gs))
	for _, g := range gs {
		if strings.TrimSpace(g.Name) == "" {
			return invalid("name", "is required")
		}
		if _, dup := seen[g.Name]; dup {
			return invalid("name", "duplicate goal "+g.Name)
		}
		seen[g.Name] = struct{}{}
		if g.TargetAmount.IsNegative() || g.CurrentSaved.IsNegative() {
			return invalid("amount", "must not be negative")
		}
	}
	updated := goals.RecomputeAll(gs, c.now())
	return c.write(ctx, "replace goals", func(_ *Snapshot) ([]store.Table, bool, error) {
		return one(store.SavingGoals), false, c.store.ClearAndRewrite(ctx, store.SavingGoals, store.EncodeSavingGoals(updated))
	})
}

// RemoveGoal deletes the named goal. Transfers already recorded stay.
func (c *Controller) RemoveGoal(ctx context.Context, name string) error {
	return c.write(ctx, "remove goal", func(s *Snapshot) ([]store.Table, bool, error) {
		idx := goals.Find(s.Goals, name)
		if idx < 0 {
			return nil, false, invalid("name", "no goal named "+name)
		}
		rest := make([]model.SavingGoal, 0, len(s.Goals)-1)
		rest = append(rest, s.Goals[:idx]...)
		rest = append(rest, s.Goals[idx+1:]...)
		return one(store.SavingGoals), false, c.store.ClearAndRewrite(ctx, store.SavingGoals, store.EncodeSavingGoals(rest))
	})
}

// SaveToGoal moves amount into the named goal: the goal's saved total grows
// and a matching expense is recorded so the balance reflects the transfer.
func (c *Controller) SaveToGoal(ctx context.Context, name string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return c.write(ctx, "save to goal", func(s *Snapshot) ([]store.Table, bool, error) {
		updated, tx, err := goals.Contribute(s.Goals, name, amount, c.now())
		if err != nil {
			return nil, false, invalidErr("goal", err)
		}
		if err := c.store.ClearAndRewrite(ctx, store.SavingGoals, store.EncodeSavingGoals(updated)); err != nil {
			return nil, false, err
		}
		if err := c.store.AppendRow(ctx, store.Transactions, store.EncodeTransaction(tx)); err != nil {
			return nil, true, err
		}
		return []store.Table{store.SavingGoals, store.Transactions}, false, nil
	})
}

// SetPlanIncome replaces the expected income of a month.
func (c *Controller) SetPlanIncome(ctx context.Context, month time.Time, amount decimal.Decimal) error {
	if month.IsZero() {
		return invalid("month", "is required")
	}
	if amount.IsNegative() {
		return invalid("amount", "must not be negative")
	}
	return c.write(ctx, "set plan income", func(s *Snapshot) ([]store.Table, bool, error) {
		items := plan.SetIncome(s.Plans, month, amount)
		return one(store.MonthlyPlans), false, c.store.ClearAndRewrite(ctx, store.MonthlyPlans, store.EncodePlanItems(items))
	})
}

// SavePlanExpenses replaces a month's planned expenses with the edited rows.
func (c *Controller) SavePlanExpenses(ctx context.Context, month time.Time, edits []plan.ExpenseEdit) error {
	if month.IsZero() {
		return invalid("month", "is required")
	}
	return c.write(ctx, "save plan expenses", func(s *Snapshot) ([]store.Table, bool, error) {
		items := plan.ApplyExpenseEdits(s.Plans, month, edits)
		return one(store.MonthlyPlans), false, c.store.ClearAndRewrite(ctx, store.MonthlyPlans, store.EncodePlanItems(items))
	})
}

// AddPlanExpense appends one planned expense to a month, keeping the rest.
func (c *Controller) AddPlanExpense(ctx context.Context, month time.Time, name, category string, amount decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("name", "is required")
	}
	if !amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return c.write(ctx, "add plan expense", func(s *Snapshot) ([]store.Table, bool, error) {
		all := plan.MergeFixedInto(s.Plans, s.Fixed, month)
		_, existing := plan.Partition(plan.Bucket(all, month))
		edits := editsOf(existing)
		edits = append(edits, plan.ExpenseEdit{Name: name, Category: strings.TrimSpace(category), Amount: amount})
		items := plan.ApplyExpenseEdits(all, month, edits)
		return one(store.MonthlyPlans), false, c.store.ClearAndRewrite(ctx, store.MonthlyPlans, store.EncodePlanItems(items))
	})
}

// RemovePlanItem deletes one plan item by ID.
func (c *Controller) RemovePlanItem(ctx context.Context, id string) error {
	return c.write(ctx, "remove plan item", func(s *Snapshot) ([]store.Table, bool, error) {
		rest := make([]model.PlanItem, 0, len(s.Plans))
		for _, it := range s.Plans {
			if it.ID != id {
				rest = append(rest, it)
			}
		}
		if len(rest) == len(s.Plans) {
			if name, ok := projectedFixed(s, id, c.now()); ok {
				return nil, false, invalid("id", fmt.Sprintf("%s is projected from fixed expense %q; remove the fixed expense instead", id, name))
			}
			return nil, false, invalid("id", "no plan item "+id)
		}
		return one(store.MonthlyPlans), false, c.store.ClearAndRewrite(ctx, store.MonthlyPlans, store.EncodePlanItems(rest))
	})
}

// projectedFixed reports which fixed expense a not yet stored plan item ID
// was projected from, across every month the plan views offer.
func projectedFixed(s *Snapshot, id string, now time.Time) (string, bool) {
	for _, month := range plan.MonthOptions(s.Plans, now) {
		for _, f := range s.Fixed {
			if plan.FixedItemID(month, f.Name) == id {
				return f.Name, true
			}
		}
	}
	return "", false
}

func editsOf(items []model.PlanItem) []plan.ExpenseEdit {
	out := make([]plan.ExpenseEdit, 0, len(items)+1)
	for _, it := range items {
		out = append(out, plan.ExpenseEdit{ID: it.ID, Name: it.Name, Category: it.Category, Amount: it.Amount})
	}
	return out
}

// ActivatePayments marks the selected items of the current month as paid
// and records one expense per newly paid item. It returns the number of
// items paid.
func (c *Controller) ActivatePayments(ctx context.Context, ids []string) (int, error) {
	var paid int
	err := c.write(ctx, "activate payments", func(s *Snapshot) ([]store.Table, bool, error) {
		now := c.now()
		month := model.MonthStart(now)
		all := plan.MergeFixedInto(s.Plans, s.Fixed, month)
		items, txns, err := plan.ActivatePayments(all, month, ids, now, c.payday)
		if err != nil {
			return nil, false, invalidErr("payment", err)
		}
		if len(txns) == 0 {
			return nil, false, nil
		}
		if err := c.store.ClearAndRewrite(ctx, store.MonthlyPlans, store.EncodePlanItems(items)); err != nil {
			return nil, false, err
		}
		for _, tx := range txns {
			if err := c.store.AppendRow(ctx, store.Transactions, store.EncodeTransaction(tx)); err != nil {
				return nil, true, err
			}
		}
		paid = len(txns)
		return []store.Table{store.MonthlyPlans, store.Transactions}, false, nil
	})
	return paid, err
}
