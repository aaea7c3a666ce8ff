package goals

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRequiredPerFrequency_WeeklyHundredDays(t *testing.T) {
	today := mustDate(t, "2025-01-01")
	due := today.AddDate(0, 0, 100)

	got := RequiredPerFrequency(dec("10000"), dec("2500"), due, model.FrequencyWeekly, today)
	if !got.Equal(dec("525")) {
		t.Fatalf("weekly requirement = %s, want 525.00", got.StringFixed(2))
	}
}

func TestRequiredPerFrequency(t *testing.T) {
	today := mustDate(t, "2025-01-01")
	tests := []struct {
		name   string
		target string
		saved  string
		due    time.Time
		freq   model.Frequency
		want   string
	}{
		{"daily", "1000", "0", today.AddDate(0, 0, 10), model.FrequencyDaily, "100"},
		{"monthly", "3044", "0", today.AddDate(0, 0, 100), model.FrequencyMonthly, "926.59"},
		{"already met", "1000", "1000", today.AddDate(0, 0, 10), model.FrequencyDaily, "0"},
		{"oversaved", "1000", "1500", today.AddDate(0, 0, 10), model.FrequencyDaily, "0"},
		{"due today", "1000", "0", today, model.FrequencyDaily, "0"},
		{"overdue", "1000", "0", today.AddDate(0, 0, -3), model.FrequencyWeekly, "0"},
		{"no date", "1000", "0", time.Time{}, model.FrequencyMonthly, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredPerFrequency(dec(tt.target), dec(tt.saved), tt.due, tt.freq, today)
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("RequiredPerFrequency = %s, want %s", got, tt.want)
			}
			if got.IsNegative() {
				t.Fatal("requirement is negative")
			}
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		target, saved string
		want          float64
	}{
		{"1000", "250", 25},
		{"1000", "2500", 100},
		{"0", "100", 0},
		{"1000", "-50", 0},
	}
	for _, tt := range tests {
		g := model.SavingGoal{TargetAmount: dec(tt.target), CurrentSaved: dec(tt.saved)}
		if got := Progress(g); got != tt.want {
			t.Errorf("Progress(%s/%s) = %.2f, want %.2f", tt.saved, tt.target, got, tt.want)
		}
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	today := mustDate(t, "2025-03-10")
	tests := []struct {
		name string
		goal model.SavingGoal
		want string
	}{
		{
			"reached beats invalid date",
			model.SavingGoal{TargetAmount: dec("100"), CurrentSaved: dec("100")},
			"Reached",
		},
		{
			"invalid date",
			model.SavingGoal{TargetAmount: dec("100"), CurrentSaved: dec("10")},
			"Invalid date",
		},
		{
			"overdue",
			model.SavingGoal{TargetAmount: dec("100"), TargetDate: mustDate(t, "2025-03-01")},
			"Overdue",
		},
		{
			"remaining",
			model.SavingGoal{TargetAmount: dec("100"), TargetDate: mustDate(t, "2025-03-20")},
			"Remaining 10 days",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.goal, today).String(); got != tt.want {
				t.Fatalf("Classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContribute(t *testing.T) {
	today := mustDate(t, "2025-01-01")
	orig := []model.SavingGoal{
		{Name: "Trip", TargetAmount: dec("7000"), TargetDate: today.AddDate(0, 0, 70), Frequency: model.FrequencyWeekly},
		{Name: "Car", TargetAmount: dec("10000"), CurrentSaved: dec("2500"), TargetDate: today.AddDate(0, 0, 100), Frequency: model.FrequencyWeekly},
	}

	updated, tx, err := Contribute(orig, "Car", dec("500"), today)
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if !updated[1].CurrentSaved.Equal(dec("3000")) {
		t.Fatalf("CurrentSaved = %s, want 3000", updated[1].CurrentSaved)
	}
	if !updated[1].RequiredPerFrequency.Equal(dec("490")) {
		t.Fatalf("RequiredPerFrequency = %s, want 490", updated[1].RequiredPerFrequency)
	}
	if !orig[1].CurrentSaved.Equal(dec("2500")) {
		t.Fatal("Contribute mutated its input")
	}
	if tx.Kind != model.KindExpense || tx.Category != "Saving Goal: Car" || tx.Note != "Saved for goal: Car" {
		t.Fatalf("transaction = %+v", tx)
	}
	if !tx.Amount.Equal(dec("500")) || !tx.Date.Equal(today) {
		t.Fatalf("transaction amount/date = %s %s", tx.Amount, tx.Date)
	}
}

func TestContribute_Rejects(t *testing.T) {
	today := mustDate(t, "2025-01-01")
	gs := []model.SavingGoal{{Name: "Car", TargetAmount: dec("100")}}

	if _, _, err := Contribute(gs, "Car", dec("0"), today); err == nil {
		t.Fatal("zero contribution accepted")
	}
	if _, _, err := Contribute(gs, "Boat", dec("10"), today); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("unknown goal err = %v, want ErrGoalNotFound", err)
	}
}

func TestNewGoal(t *testing.T) {
	today := mustDate(t, "2025-01-01")
	g, err := NewGoal("  House ", dec("1000"), "", today.AddDate(0, 0, 10), model.FrequencyDaily, today)
	if err != nil {
		t.Fatalf("NewGoal: %v", err)
	}
	if g.Name != "House" || g.Emoji != model.DefaultEmoji || !g.CurrentSaved.IsZero() {
		t.Fatalf("goal = %+v", g)
	}
	if !g.RequiredPerFrequency.Equal(dec("100")) {
		t.Fatalf("RequiredPerFrequency = %s, want 100", g.RequiredPerFrequency)
	}

	if _, err := NewGoal("", dec("1"), "", today, model.FrequencyDaily, today); err == nil {
		t.Fatal("empty name accepted")
	}
	if _, err := NewGoal("x", dec("0"), "", today, model.FrequencyDaily, today); err == nil {
		t.Fatal("zero target accepted")
	}
	if _, err := NewGoal("x", dec("1"), "", time.Time{}, model.FrequencyDaily, today); err == nil {
		t.Fatal("missing date accepted")
	}
}
