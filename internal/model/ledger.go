// Package model defines the budget domain types shared by every layer.
package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes money coming in from money going out.
type Kind string

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// ParseKind maps a stored label to a Kind. Anything unrecognized is an expense.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindIncome)) {
		return KindIncome
	}
	return KindExpense
}

// Canonical categories.
const (
	CategoryFood         = "Food"
	CategoryTravel       = "Travel"
	CategoryUtilities    = "Utilities"
	CategoryIncome       = "Income"
	CategoryOthers       = "Others"
	CategoryFixedExpense = "Fixed Expense"
)

// CanonicalCategories lists the built-in categories in display order.
var CanonicalCategories = []string{
	CategoryFood,
	CategoryTravel,
	CategoryUtilities,
	CategoryIncome,
	CategoryOthers,
	CategoryFixedExpense,
}

// SavingGoalPrefix marks transactions that move money into a saving goal.
const SavingGoalPrefix = "Saving Goal: "

// SavingGoalCategory returns the category used for transfers into a goal.
func SavingGoalCategory(goal string) string {
	return SavingGoalPrefix + goal
}

// Transaction is one income or expense line in the ledger.
type Transaction struct {
	Date     time.Time
	Kind     Kind
	Category string
	Amount   decimal.Decimal
	Note     string
}

// IsSavingTransfer reports whether the transaction was produced by a goal contribution.
func (t Transaction) IsSavingTransfer() bool {
	return strings.HasPrefix(t.Category, SavingGoalPrefix)
}

// FixedExpense is a recurring monthly cost.
type FixedExpense struct {
	Name   string
	Amount decimal.Decimal
}

// Day truncates t to its calendar date in UTC so that day arithmetic is
// independent of time zone offsets and daylight saving shifts.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first calendar day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b.
// The result is negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
