package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the cadence at which a saving goal is funded.
type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

// Frequencies lists every supported cadence.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// ParseFrequency returns the matching Frequency, falling back to Daily.
func ParseFrequency(s string) Frequency {
	for _, f := range Frequencies {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f
		}
	}
	return FrequencyDaily
}

// SavingGoal is a named savings target with a deadline.
type SavingGoal struct {
	Name         string
	TargetAmount decimal.Decimal
	Emoji        string
	CurrentSaved decimal.Decimal
	TargetDate   time.Time // zero when unknown
	Frequency    Frequency

	// RequiredPerFrequency is derived from the fields above.
	RequiredPerFrequency decimal.Decimal
}

// DefaultEmoji is used when a goal has no icon.
const DefaultEmoji = "💰"

// GoalEmojis are the icons offered when creating a goal.
var GoalEmojis = []string{
	"💰", "🏠", "✈️", "🚗", "🎓", "💍", "👶", "🏥", "💻", "📚",
	"🎁", "💖", "🍔", "☕", "🛒", "💡", "📈", "🏖️", "🎉",
}

// ExpectedSalary is the name of the single income line in a plan month.
const ExpectedSalary = "Expected Salary"

// PlanItem is one planned income or expense line for a month.
type PlanItem struct {
	ID       string
	Month    time.Time // first day of the month
	Type     Kind
	Name     string
	Amount   decimal.Decimal
	Category string
	IsPaid   bool
	DatePaid time.Time // zero while unpaid
}

// MonthKey formats a plan month as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonthKey parses YYYY-MM or a full YYYY-MM-DD date into a month start.
func ParseMonthKey(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthStart(t), true
		}
	}
	return time.Time{}, false
}
