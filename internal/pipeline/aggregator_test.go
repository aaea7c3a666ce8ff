package pipeline

import (
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

func txn(t *testing.T, date string, kind model.Kind, cat, amount string) model.Transaction {
	t.Helper()
	return model.Transaction{Date: mustDate(t, date), Kind: kind, Category: cat, Amount: dec(amount)}
}

func TestCompute_BalanceAndRemainingAfterFixed(t *testing.T) {
	ledger := []model.Transaction{
		txn(t, "2025-06-01", model.KindIncome, model.CategoryIncome, "50000"),
		txn(t, "2025-06-03", model.KindExpense, model.CategoryFood, "20000"),
	}
	fixed := []model.FixedExpense{
		{Name: "Rent", Amount: dec("8000")},
		{Name: "Phone", Amount: dec("500")},
	}

	m := Compute(ledger, fixed, mustDate(t, "2025-06-10"), DefaultPayday)

	if !m.Balance.Equal(dec("30000")) {
		t.Fatalf("Balance = %s, want 30000", m.Balance)
	}
	if !m.TotalFixed.Equal(dec("8500")) {
		t.Fatalf("TotalFixed = %s, want 8500", m.TotalFixed)
	}
	if !m.RemainingAfterFixed.Equal(dec("21500")) {
		t.Fatalf("RemainingAfterFixed = %s, want 21500", m.RemainingAfterFixed)
	}
	if m.DaysUntilPayday != 15 {
		t.Fatalf("DaysUntilPayday = %d, want 15", m.DaysUntilPayday)
	}
	if !m.SuggestedDaily.Equal(dec("2000")) {
		t.Fatalf("SuggestedDaily = %s, want 2000", m.SuggestedDaily)
	}
}

func TestCompute_EmptyLedger(t *testing.T) {
	m := Compute(nil, nil, mustDate(t, "2025-06-10"), DefaultPayday)
	if !m.Income.IsZero() || !m.Expense.IsZero() || !m.Balance.IsZero() || !m.SuggestedDaily.IsZero() {
		t.Fatalf("empty ledger metrics = %+v, want zeros", m)
	}
}

func TestCompute_NegativeBalanceClampsDailySpend(t *testing.T) {
	ledger := []model.Transaction{
		txn(t, "2025-06-01", model.KindExpense, model.CategoryFood, "900"),
	}
	m := Compute(ledger, nil, mustDate(t, "2025-06-10"), DefaultPayday)
	if !m.Balance.Equal(dec("-900")) {
		t.Fatalf("Balance = %s, want -900", m.Balance)
	}
	if !m.SuggestedDaily.IsZero() {
		t.Fatalf("SuggestedDaily = %s, want 0", m.SuggestedDaily)
	}
}

func TestCompute_PartialDayIsNotCounted(t *testing.T) {
	ledger := []model.Transaction{
		txn(t, "2026-10-01", model.KindIncome, model.CategoryIncome, "1500"),
	}
	now := time.Date(2026, time.October, 10, 14, 30, 0, 0, time.Local)
	m := Compute(ledger, nil, now, DefaultPayday)
	if m.DaysUntilPayday != 14 {
		t.Fatalf("DaysUntilPayday = %d, want 14", m.DaysUntilPayday)
	}
	if !m.SuggestedDaily.Equal(dec("107.14")) {
		t.Fatalf("SuggestedDaily = %s, want 107.14", m.SuggestedDaily)
	}

	payday := time.Date(2026, time.October, 25, 9, 0, 0, 0, time.Local)
	if m := Compute(ledger, nil, payday, DefaultPayday); m.DaysUntilPayday != 1 {
		t.Fatalf("payday morning DaysUntilPayday = %d, want 1", m.DaysUntilPayday)
	}
}

func TestDaysUntil(t *testing.T) {
	target := time.Date(2026, time.October, 25, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, time.October, 10, 0, 0, 0, 0, time.UTC), 15},
		{time.Date(2026, time.October, 10, 0, 0, 1, 0, time.UTC), 14},
		{time.Date(2026, time.October, 24, 23, 59, 0, 0, time.UTC), 0},
		{time.Date(2026, time.October, 25, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, time.October, 25, 12, 0, 0, 0, time.UTC), -1},
	}
	for _, tt := range tests {
		if got := daysUntil(tt.now, target); got != tt.want {
			t.Fatalf("daysUntil(%s) = %d, want %d", tt.now.Format(time.DateTime), got, tt.want)
		}
	}
}

func TestPaydayTarget(t *testing.T) {
	tests := []struct {
		today string
		want  string
	}{
		{"2025-06-10", "2025-06-25"},
		{"2025-06-25", "2025-06-25"},
		{"2025-06-26", "2025-07-25"},
		{"2025-12-31", "2026-01-25"},
	}
	for _, tt := range tests {
		got := PaydayTarget(mustDate(t, tt.today), DefaultPayday)
		if !got.Equal(mustDate(t, tt.want)) {
			t.Errorf("PaydayTarget(%s) = %s, want %s", tt.today, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestPaydayTarget_ShortMonth(t *testing.T) {
	got := PaydayTarget(mustDate(t, "2025-02-10"), 31)
	if want := mustDate(t, "2025-02-28"); !got.Equal(want) {
		t.Fatalf("PaydayTarget = %s, want 2025-02-28", got.Format("2006-01-02"))
	}
}

func TestCompute_PaydayItselfCountsAsOneDay(t *testing.T) {
	ledger := []model.Transaction{
		txn(t, "2025-06-01", model.KindIncome, model.CategoryIncome, "1000"),
	}
	m := Compute(ledger, nil, mustDate(t, "2025-06-25"), DefaultPayday)
	if m.DaysUntilPayday != 1 {
		t.Fatalf("DaysUntilPayday = %d, want 1", m.DaysUntilPayday)
	}
	if !m.SuggestedDaily.Equal(dec("1000")) {
		t.Fatalf("SuggestedDaily = %s, want 1000", m.SuggestedDaily)
	}
}

func TestLedger_MaterializesFixedAtMonthStart(t *testing.T) {
	today := mustDate(t, "2025-06-10")
	txns := []model.Transaction{
		txn(t, "2025-06-05", model.KindExpense, model.CategoryFood, "120"),
		txn(t, "2025-05-20", model.KindIncome, model.CategoryIncome, "900"),
	}
	fixed := []model.FixedExpense{{Name: "Rent", Amount: dec("8000")}}

	ledger := Ledger(txns, fixed, today)
	if len(ledger) != 3 {
		t.Fatalf("len(ledger) = %d, want 3", len(ledger))
	}
	if !ledger[0].Date.Equal(mustDate(t, "2025-05-20")) {
		t.Fatalf("ledger[0].Date = %s, want 2025-05-20", ledger[0].Date)
	}
	rent := ledger[1]
	if rent.Category != model.CategoryFixedExpense || rent.Note != "Fixed Monthly Expense: Rent" {
		t.Fatalf("materialized row = %+v", rent)
	}
	if !rent.Date.Equal(mustDate(t, "2025-06-01")) {
		t.Fatalf("materialized date = %s, want 2025-06-01", rent.Date)
	}
	if len(txns) != 2 {
		t.Fatal("Ledger mutated its input")
	}
}

func TestAdvise(t *testing.T) {
	tests := []struct {
		name    string
		income  string
		expense string
		want    model.Advice
	}{
		{"healthy", "1000", "500", model.AdviceHealthy},
		{"ratio at threshold", "1000", "700", model.AdviceHealthy},
		{"high ratio", "1000", "800", model.AdviceHighExpenseRatio},
		{"overspending", "0", "10", model.AdviceOverspending},
		{"nothing recorded", "0", "0", model.AdviceHealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := model.Metrics{Income: dec(tt.income), Expense: dec(tt.expense)}
			m.Balance = m.Income.Sub(m.Expense)
			if got := Advise(m); got != tt.want {
				t.Fatalf("Advise = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpenseByCategory(t *testing.T) {
	ledger := []model.Transaction{
		txn(t, "2025-06-01", model.KindExpense, model.CategoryFood, "200"),
		txn(t, "2025-06-02", model.KindExpense, model.CategoryTravel, "100"),
		txn(t, "2025-06-03", model.KindExpense, model.CategoryFood, "100"),
		txn(t, "2025-06-04", model.KindIncome, model.CategoryIncome, "5000"),
	}
	shares := ExpenseByCategory(ledger)
	if len(shares) != 2 {
		t.Fatalf("len(shares) = %d, want 2", len(shares))
	}
	if shares[0].Category != model.CategoryFood || !shares[0].Total.Equal(dec("300")) {
		t.Fatalf("shares[0] = %+v, want Food 300", shares[0])
	}
	if shares[0].SharePercent != 75 {
		t.Fatalf("Food share = %.2f, want 75", shares[0].SharePercent)
	}
	if shares[1].SharePercent != 25 {
		t.Fatalf("Travel share = %.2f, want 25", shares[1].SharePercent)
	}
}
