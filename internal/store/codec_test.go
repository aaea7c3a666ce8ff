package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/model"
)

func TestDecodeTransactions_CoercesBadCells(t *testing.T) {
	rows := [][]string{
		{"2025-06-01", "รายรับ", "รายได้", "1,500.50", "salary"},
		{"not a date", "Expense", "อาหาร", "abc", ""},
		{"2025-06-03", "Expense"},
		{"2025-06-04", "Expense", "Food", "-250", ""},
	}
	txns := DecodeTransactions(rows)
	if len(txns) != 4 {
		t.Fatalf("len = %d, want 4", len(txns))
	}
	if txns[0].Kind != model.KindIncome || !txns[0].Amount.Equal(decimal.RequireFromString("1500.50")) {
		t.Fatalf("row 0 = %+v", txns[0])
	}
	if !txns[1].Date.IsZero() || !txns[1].Amount.IsZero() || txns[1].Category != model.CategoryFood {
		t.Fatalf("row 1 = %+v, want zero date, zero amount, Food", txns[1])
	}
	if txns[2].Category != "" || !txns[2].Amount.IsZero() {
		t.Fatalf("short row = %+v", txns[2])
	}
	if !txns[3].Amount.IsZero() {
		t.Fatalf("negative amount = %s, want 0", txns[3].Amount)
	}
}

func TestDecodePlanItems(t *testing.T) {
	rows := [][]string{
		{"2025-06-01", "Expense", "Rent", "8000", "Fixed Expense", "TRUE", "2025-06-25 10:11:12.123456", "id-1"},
		{"", "Expense", "Orphan", "10", "Others", "false", "", ""},
		{"2025-06-01", "Income", "Expected Salary", "40000", "", "false", "", ""},
		{"2025-07-01", "Expense", "Gym", "900", "Others", "true", "", ""},
	}
	items := DecodePlanItems(rows)
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3 (row without month dropped)", len(items))
	}
	if !items[0].IsPaid || items[0].DatePaid.Format("2006-01-02") != "2025-06-25" || items[0].ID != "id-1" {
		t.Fatalf("paid item = %+v", items[0])
	}
	if items[1].ID == "" {
		t.Fatal("legacy row got no ID")
	}
	again := DecodePlanItems(rows)
	if again[1].ID != items[1].ID {
		t.Fatal("legacy ID is not stable across decodes")
	}
	if !items[2].IsPaid || items[2].DatePaid.IsZero() {
		t.Fatalf("paid row without date = %+v, want a DatePaid", items[2])
	}
}

func TestSavingGoalsRoundTrip(t *testing.T) {
	g := model.SavingGoal{
		Name:                 "Car",
		TargetAmount:         decimal.RequireFromString("10000"),
		Emoji:                "🚗",
		CurrentSaved:         decimal.RequireFromString("2500"),
		TargetDate:           time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Frequency:            model.FrequencyWeekly,
		RequiredPerFrequency: decimal.RequireFromString("525"),
	}
	rows := EncodeSavingGoals([]model.SavingGoal{g})
	if rows[0][6] != "525.00" {
		t.Fatalf("SavingAmountPerFreq cell = %q, want 525.00", rows[0][6])
	}
	got := DecodeSavingGoals(rows)[0]
	if got.Name != g.Name || !got.TargetDate.Equal(g.TargetDate) || got.Frequency != g.Frequency || !got.CurrentSaved.Equal(g.CurrentSaved) {
		t.Fatalf("decoded = %+v, want %+v", got, g)
	}
}

func TestDecodeSavingGoals_Defaults(t *testing.T) {
	got := DecodeSavingGoals([][]string{{"Trip", "1000", "", "-5", "bad", "Fortnightly", ""}})[0]
	if got.Emoji != model.DefaultEmoji || !got.CurrentSaved.IsZero() || !got.TargetDate.IsZero() || got.Frequency != model.FrequencyDaily {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestTableByName(t *testing.T) {
	tbl, err := TableByName("monthly_plans")
	if err != nil || tbl.Name != MonthlyPlans.Name {
		t.Fatalf("TableByName = %v, %v", tbl.Name, err)
	}
	if _, err := TableByName("nope"); err == nil {
		t.Fatal("unknown table accepted")
	}
	for _, tb := range Tables {
		if len(tb.Header) != len(tb.Columns) {
			t.Fatalf("%s: header and columns differ in length", tb.Name)
		}
	}
}
