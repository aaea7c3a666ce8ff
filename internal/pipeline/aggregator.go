// Package pipeline turns stored records into the ledger and the derived
// dashboard numbers: totals, payday allowance, category split and trends.
package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/model"
)

// DefaultPayday is the day of the month income is expected.
const DefaultPayday = 25

// FixedExpenseNote prefixes the note of a materialized fixed expense.
const FixedExpenseNote = "Fixed Monthly Expense: "

var hundred = decimal.NewFromInt(100)

// Materialize turns fixed expenses into synthetic expense transactions dated
// the first day of today's month. The result is never persisted.
func Materialize(fixed []model.FixedExpense, today time.Time) []model.Transaction {
	if len(fixed) == 0 {
		return nil
	}
	first := model.MonthStart(today)
	out := make([]model.Transaction, 0, len(fixed))
	for _, f := range fixed {
		out = append(out, model.Transaction{
			Date:     first,
			Kind:     model.KindExpense,
			Category: model.CategoryFixedExpense,
			Amount:   f.Amount,
			Note:     FixedExpenseNote + f.Name,
		})
	}
	return out
}

// Ledger concatenates stored transactions with the materialized fixed
// expenses and sorts the result by date, keeping insertion order for ties.
func Ledger(txns []model.Transaction, fixed []model.FixedExpense, today time.Time) []model.Transaction {
	ledger := make([]model.Transaction, 0, len(txns)+len(fixed))
	ledger = append(ledger, txns...)
	ledger = append(ledger, Materialize(fixed, today)...)
	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Date.Before(ledger[j].Date)
	})
	return ledger
}

// Compute derives the headline metrics from a ledger. Fixed expenses are
// passed separately because they are reported on their own line.
func Compute(ledger []model.Transaction, fixed []model.FixedExpense, today time.Time, payday int) model.Metrics {
	var m model.Metrics
	for _, t := range ledger {
		switch t.Kind {
		case model.KindIncome:
			m.Income = m.Income.Add(t.Amount)
		case model.KindExpense:
			m.Expense = m.Expense.Add(t.Amount)
		}
	}
	m.Balance = m.Income.Sub(m.Expense)

	for _, f := range fixed {
		m.TotalFixed = m.TotalFixed.Add(f.Amount)
	}
	m.RemainingAfterFixed = m.Balance.Sub(m.TotalFixed)

	m.PaydayTarget = PaydayTarget(today, payday)
	m.DaysUntilPayday = daysUntil(today, m.PaydayTarget)
	if m.DaysUntilPayday <= 0 {
		m.DaysUntilPayday = 1
	}
	m.SuggestedDaily = m.Balance.Div(decimal.NewFromInt(int64(m.DaysUntilPayday))).Round(2)
	if m.SuggestedDaily.IsNegative() {
		m.SuggestedDaily = decimal.Zero
	}
	return m
}

// daysUntil counts the whole days from now until midnight of target. The
// partial current day is not counted, so at 14:30 on the 10th the 25th is
// 14 days away. now is read by its wall clock.
func daysUntil(now, target time.Time) int {
	wall := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
	d := target.Sub(wall)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// PaydayTarget returns the next payday on or after today. A payday past the
// end of a short month falls on that month's last day.
func PaydayTarget(today time.Time, payday int) time.Time {
	if payday <= 0 {
		payday = DefaultPayday
	}
	d := model.Day(today)
	this := paydayOf(d, payday)
	if d.Day() <= this.Day() {
		return this
	}
	return paydayOf(model.MonthStart(d).AddDate(0, 1, 0), payday)
}

func paydayOf(month time.Time, payday int) time.Time {
	day := payday
	if n := model.DaysIn(month); day > n {
		day = n
	}
	return time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
}

// Advise classifies spending health. A negative balance always wins.
func Advise(m model.Metrics) model.Advice {
	if m.Balance.IsNegative() {
		return model.AdviceOverspending
	}
	if m.Income.IsPositive() && m.Expense.Div(m.Income).GreaterThan(decimal.RequireFromString("0.7")) {
		return model.AdviceHighExpenseRatio
	}
	return model.AdviceHealthy
}

// ExpenseByCategory totals expenses per category, largest first.
func ExpenseByCategory(ledger []model.Transaction) []model.CategoryShare {
	totals := make(map[string]decimal.Decimal)
	var grand decimal.Decimal
	for _, t := range ledger {
		if t.Kind != model.KindExpense {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		grand = grand.Add(t.Amount)
	}

	shares := make([]model.CategoryShare, 0, len(totals))
	for cat, total := range totals {
		cs := model.CategoryShare{Category: cat, Total: total}
		if grand.IsPositive() {
			cs.SharePercent = total.Div(grand).Mul(hundred).InexactFloat64()
		}
		shares = append(shares, cs)
	}
	sort.Slice(shares, func(i, j int) bool {
		if c := shares[i].Total.Cmp(shares[j].Total); c != 0 {
			return c > 0
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}
