// Package plan reconciles month-ahead spending plans with fixed expenses,
// user edits and payments.
package plan

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/model"
)

// ErrPaymentWindowClosed is returned when payments are activated before
// payday or for a month other than the current one.
var ErrPaymentWindowClosed = errors.New("payment window is closed")

// PaidNote prefixes the note of the transaction emitted for a paid item.
const PaidNote = "Paid planned expense: "

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Bucket returns the items of one month in stored order.
func Bucket(items []model.PlanItem, month time.Time) []model.PlanItem {
	var out []model.PlanItem
	for _, it := range items {
		if sameMonth(it.Month, month) {
			out = append(out, it)
		}
	}
	return out
}

// Partition splits a bucket into its income line and expense lines.
// If several income lines exist, the last one wins.
func Partition(bucket []model.PlanItem) (income *model.PlanItem, expenses []model.PlanItem) {
	for i := range bucket {
		switch bucket[i].Type {
		case model.KindIncome:
			it := bucket[i]
			income = &it
		default:
			expenses = append(expenses, bucket[i])
		}
	}
	return income, expenses
}

// replaceBucket swaps the month's items in all for bucket, keeping every
// other month in place.
func replaceBucket(all []model.PlanItem, month time.Time, bucket []model.PlanItem) []model.PlanItem {
	out := make([]model.PlanItem, 0, len(all)+len(bucket))
	for _, it := range all {
		if !sameMonth(it.Month, month) {
			out = append(out, it)
		}
	}
	return append(out, bucket...)
}

// FixedItemID is the stable ID of the projected item for a fixed expense.
func FixedItemID(month time.Time, name string) string {
	return model.DeriveItemID("fixed", model.MonthKey(month), name)
}

// IncomeItemID is the stable ID of a month's income line.
func IncomeItemID(month time.Time) string {
	return model.DeriveItemID("income", model.MonthKey(month))
}

// MergeFixed projects every fixed expense into the bucket unless an expense
// item with the same name and the Fixed Expense category is already there.
// Running it twice yields the same bucket.
func MergeFixed(bucket []model.PlanItem, fixed []model.FixedExpense, month time.Time) []model.PlanItem {
	month = model.MonthStart(month)
	have := make(map[string]struct{})
	for _, it := range bucket {
		if it.Type == model.KindExpense && it.Category == model.CategoryFixedExpense {
			have[it.Name] = struct{}{}
		}
	}

	out := make([]model.PlanItem, len(bucket), len(bucket)+len(fixed))
	copy(out, bucket)
	for _, f := range fixed {
		if _, ok := have[f.Name]; ok {
			continue
		}
		have[f.Name] = struct{}{}
		out = append(out, model.PlanItem{
			ID:       FixedItemID(month, f.Name),
			Month:    month,
			Type:     model.KindExpense,
			Name:     f.Name,
			Amount:   f.Amount,
			Category: model.CategoryFixedExpense,
		})
	}
	return out
}

// MergeFixedInto applies MergeFixed to one month of the full item list.
func MergeFixedInto(all []model.PlanItem, fixed []model.FixedExpense, month time.Time) []model.PlanItem {
	return replaceBucket(all, month, MergeFixed(Bucket(all, month), fixed, month))
}

// ExpenseEdit is one row of the expense editor. ID is empty for new rows.
type ExpenseEdit struct {
	ID       string
	Name     string
	Category string
	Amount   decimal.Decimal
}

type tripleKey struct {
	name, category, amount string
}

func keyOf(name, category string, amount decimal.Decimal) tripleKey {
	return tripleKey{name, category, amount.String()}
}

// ApplyExpenseEdits replaces the month's expense items with the edited rows.
// Rows with an empty name or a non-positive amount are dropped. Payment state
// is carried over from the prior item with the same ID, or failing that from
// an unclaimed prior item with the same name, category and amount. A row whose
// ID is already taken in the bucket gets a fresh one. The income line and
// other months are untouched.
func ApplyExpenseEdits(all []model.PlanItem, month time.Time, edits []ExpenseEdit) []model.PlanItem {
	month = model.MonthStart(month)
	income, prior := Partition(Bucket(all, month))

	byID := make(map[string]int, len(prior))
	byKey := make(map[tripleKey][]int)
	for i, it := range prior {
		if it.ID != "" {
			byID[it.ID] = i
		}
		k := keyOf(it.Name, it.Category, it.Amount)
		byKey[k] = append(byKey[k], i)
	}
	var valid []ExpenseEdit
	for _, e := range edits {
		e.Name = strings.TrimSpace(e.Name)
		e.Category = strings.TrimSpace(e.Category)
		if e.Name == "" || !e.Amount.IsPositive() {
			continue
		}
		valid = append(valid, e)
	}

	// IDs bind before triples so an earlier duplicate row cannot take an
	// item that a later row names explicitly.
	claimed := make([]bool, len(prior))
	match := make([]int, len(valid))
	for j, e := range valid {
		match[j] = -1
		if i, ok := byID[e.ID]; ok && e.ID != "" && !claimed[i] {
			claimed[i] = true
			match[j] = i
		}
	}
	for j, e := range valid {
		if match[j] >= 0 {
			continue
		}
		for _, i := range byKey[keyOf(e.Name, e.Category, e.Amount)] {
			if !claimed[i] {
				claimed[i] = true
				match[j] = i
				break
			}
		}
	}

	var bucket []model.PlanItem
	used := make(map[string]bool, len(valid)+1)
	if income != nil {
		bucket = append(bucket, *income)
		used[income.ID] = true
	}
	for j, e := range valid {
		it := model.PlanItem{
			ID:       e.ID,
			Month:    month,
			Type:     model.KindExpense,
			Name:     e.Name,
			Amount:   e.Amount,
			Category: e.Category,
		}
		if i := match[j]; i >= 0 {
			it.ID = prior[i].ID
			it.IsPaid = prior[i].IsPaid
			it.DatePaid = prior[i].DatePaid
		}
		if it.ID == "" || used[it.ID] {
			it.ID = model.NewItemID()
		}
		used[it.ID] = true
		bucket = append(bucket, it)
	}
	return replaceBucket(all, month, bucket)
}

// SetIncome replaces the month's income line with a single Expected Salary item.
func SetIncome(all []model.PlanItem, month time.Time, amount decimal.Decimal) []model.PlanItem {
	month = model.MonthStart(month)
	bucket := []model.PlanItem{{
		ID:     IncomeItemID(month),
		Month:  month,
		Type:   model.KindIncome,
		Name:   model.ExpectedSalary,
		Amount: amount,
	}}
	for _, it := range Bucket(all, month) {
		if it.Type != model.KindIncome {
			bucket = append(bucket, it)
		}
	}
	return replaceBucket(all, month, bucket)
}

// PaymentWindowOpen reports whether payments for month can be activated now.
func PaymentWindowOpen(month, now time.Time, payday int) bool {
	if payday <= 0 {
		payday = 25
	}
	if n := model.DaysIn(now); payday > n {
		payday = n
	}
	return sameMonth(month, now) && now.Day() >= payday
}

// ActivatePayments marks the selected unpaid expense items of month as paid
// and returns one expense transaction per newly paid item. Items already paid
// and unknown IDs are left alone.
func ActivatePayments(all []model.PlanItem, month time.Time, ids []string, now time.Time, payday int) ([]model.PlanItem, []model.Transaction, error) {
	if !PaymentWindowOpen(month, now, payday) {
		return nil, nil, ErrPaymentWindowClosed
	}
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	out := make([]model.PlanItem, len(all))
	copy(out, all)
	var txns []model.Transaction
	for i, it := range out {
		if !sameMonth(it.Month, month) || it.Type != model.KindExpense || it.IsPaid {
			continue
		}
		if _, ok := selected[it.ID]; !ok {
			continue
		}
		out[i].IsPaid = true
		out[i].DatePaid = now
		txns = append(txns, model.Transaction{
			Date:     model.Day(now),
			Kind:     model.KindExpense,
			Category: it.Category,
			Amount:   it.Amount,
			Note:     PaidNote + it.Name,
		})
	}
	return out, txns, nil
}

// DefaultMonth is the month a new plan is drafted for: next month.
func DefaultMonth(today time.Time) time.Time {
	return model.MonthStart(today).AddDate(0, 1, 0)
}

// MonthOptions lists every month with a stored plan plus the current and
// next month, newest first.
func MonthOptions(items []model.PlanItem, today time.Time) []time.Time {
	set := map[time.Time]struct{}{
		model.MonthStart(today): {},
		DefaultMonth(today):     {},
	}
	for _, it := range items {
		if !it.Month.IsZero() {
			set[model.MonthStart(it.Month)] = struct{}{}
		}
	}
	out := make([]time.Time, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}

// Summarize totals a bucket.
func Summarize(bucket []model.PlanItem) model.PlanSummary {
	var s model.PlanSummary
	for _, it := range bucket {
		if it.Type == model.KindIncome {
			s.Income = s.Income.Add(it.Amount)
			continue
		}
		s.Items++
		s.Expense = s.Expense.Add(it.Amount)
		if it.IsPaid {
			s.PaidItems++
			s.Paid = s.Paid.Add(it.Amount)
		} else {
			s.Unpaid = s.Unpaid.Add(it.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// View is the reconciled plan month handed to the UI surfaces.
type View struct {
	Month             time.Time
	Income            *model.PlanItem
	Expenses          []model.PlanItem
	Summary           model.PlanSummary
	PaymentWindowOpen bool
	IsCurrentMonth    bool
}

// NewView merges the fixed expenses into the month and summarizes it.
func NewView(all []model.PlanItem, fixed []model.FixedExpense, month, now time.Time, payday int) View {
	month = model.MonthStart(month)
	bucket := MergeFixed(Bucket(all, month), fixed, month)
	income, expenses := Partition(bucket)
	return View{
		Month:             month,
		Income:            income,
		Expenses:          expenses,
		Summary:           Summarize(bucket),
		PaymentWindowOpen: PaymentWindowOpen(month, now, payday),
		IsCurrentMonth:    sameMonth(month, now),
	}
}
