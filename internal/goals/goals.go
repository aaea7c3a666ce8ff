// Package goals computes saving-goal cadence, progress and status, and
// applies contributions.
package goals

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/model"
)

// ErrGoalNotFound is returned when a contribution names an unknown goal.
var ErrGoalNotFound = errors.New("saving goal not found")

// ContributionNote prefixes the note of a goal contribution transaction.
const ContributionNote = "Saved for goal: "

var (
	seven        = decimal.NewFromInt(7)
	avgMonthDays = decimal.RequireFromString("30.44")
	hundred      = decimal.NewFromInt(100)
)

// RequiredPerFrequency returns how much must be set aside each period to
// reach target by targetDate. It is zero once the goal is met, when the
// date is unknown, or when the date is not in the future.
func RequiredPerFrequency(target, saved decimal.Decimal, targetDate time.Time, freq model.Frequency, today time.Time) decimal.Decimal {
	remaining := target.Sub(saved)
	if !remaining.IsPositive() || targetDate.IsZero() {
		return decimal.Zero
	}
	days := model.DaysBetween(today, targetDate)
	if days <= 0 {
		return decimal.Zero
	}
	d := decimal.NewFromInt(int64(days))

	var req decimal.Decimal
	switch freq {
	case model.FrequencyWeekly:
		// remaining / (days/7), kept exact by multiplying first.
		req = remaining.Mul(seven).Div(d)
	case model.FrequencyMonthly:
		req = remaining.Mul(avgMonthDays).Div(d)
	default:
		req = remaining.Div(d)
	}
	return req.Round(2)
}

// Recompute refreshes the derived RequiredPerFrequency field.
func Recompute(g model.SavingGoal, today time.Time) model.SavingGoal {
	g.RequiredPerFrequency = RequiredPerFrequency(g.TargetAmount, g.CurrentSaved, g.TargetDate, g.Frequency, today)
	return g
}

// RecomputeAll refreshes every goal.
func RecomputeAll(gs []model.SavingGoal, today time.Time) []model.SavingGoal {
	out := make([]model.SavingGoal, len(gs))
	for i, g := range gs {
		out[i] = Recompute(g, today)
	}
	return out
}

// Progress returns saved/target as a percentage clamped to [0, 100].
func Progress(g model.SavingGoal) float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	p := g.CurrentSaved.Div(g.TargetAmount).Mul(hundred).InexactFloat64()
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// StatusKind is the coarse state of a goal.
type StatusKind int

const (
	StatusRemaining StatusKind = iota
	StatusReached
	StatusInvalidDate
	StatusOverdue
)

// Status is a goal's state plus the days left when it is still running.
type Status struct {
	Kind          StatusKind
	DaysRemaining int
}

func (s Status) String() string {
	switch s.Kind {
	case StatusReached:
		return "Reached"
	case StatusInvalidDate:
		return "Invalid date"
	case StatusOverdue:
		return "Overdue"
	default:
		return fmt.Sprintf("Remaining %d days", s.DaysRemaining)
	}
}

// Classify reports the status of g on today.
func Classify(g model.SavingGoal, today time.Time) Status {
	if g.CurrentSaved.GreaterThanOrEqual(g.TargetAmount) {
		return Status{Kind: StatusReached}
	}
	if g.TargetDate.IsZero() {
		return Status{Kind: StatusInvalidDate}
	}
	days := model.DaysBetween(today, g.TargetDate)
	if days < 0 {
		return Status{Kind: StatusOverdue, DaysRemaining: days}
	}
	return Status{Kind: StatusRemaining, DaysRemaining: days}
}

// NewGoal validates the user-supplied fields and returns a goal with
// nothing saved yet.
func NewGoal(name string, target decimal.Decimal, emoji string, targetDate time.Time, freq model.Frequency, today time.Time) (model.SavingGoal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SavingGoal{}, errors.New("goal name is required")
	}
	if !target.IsPositive() {
		return model.SavingGoal{}, errors.New("target amount must be positive")
	}
	if targetDate.IsZero() {
		return model.SavingGoal{}, errors.New("target date is required")
	}
	if emoji == "" {
		emoji = model.DefaultEmoji
	}
	g := model.SavingGoal{
		Name:         name,
		TargetAmount: target,
		Emoji:        emoji,
		TargetDate:   model.Day(targetDate),
		Frequency:    freq,
	}
	return Recompute(g, today), nil
}

// Find returns the index of the named goal, or -1.
func Find(gs []model.SavingGoal, name string) int {
	for i, g := range gs {
		if g.Name == name {
			return i
		}
	}
	return -1
}

// Contribute adds amount to the named goal and returns the updated goal list
// together with the expense transaction that moves the money out of the
// spendable balance. The input slice is not modified.
func Contribute(gs []model.SavingGoal, name string, amount decimal.Decimal, today time.Time) ([]model.SavingGoal, model.Transaction, error) {
	if !amount.IsPositive() {
		return nil, model.Transaction{}, errors.New("contribution must be positive")
	}
	idx := Find(gs, name)
	if idx < 0 {
		return nil, model.Transaction{}, fmt.Errorf("%w: %q", ErrGoalNotFound, name)
	}

	out := make([]model.SavingGoal, len(gs))
	copy(out, gs)
	g := out[idx]
	g.CurrentSaved = g.CurrentSaved.Add(amount)
	out[idx] = Recompute(g, today)

	tx := model.Transaction{
		Date:     model.Day(today),
		Kind:     model.KindExpense,
		Category: model.SavingGoalCategory(name),
		Amount:   amount,
		Note:     ContributionNote + name,
	}
	return out, tx, nil
}

// View is the goal card shown by the UI surfaces.
type View struct {
	Goal            model.SavingGoal
	ProgressPercent float64
	Status          Status
	Remaining       decimal.Decimal
}

// NewView builds the presentation model of g.
func NewView(g model.SavingGoal, today time.Time) View {
	g = Recompute(g, today)
	remaining := g.TargetAmount.Sub(g.CurrentSaved)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return View{
		Goal:            g,
		ProgressPercent: Progress(g),
		Status:          Classify(g, today),
		Remaining:       remaining,
	}
}
