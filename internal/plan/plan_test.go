package plan

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

func expense(month time.Time, id, name, cat, amount string) model.PlanItem {
	return model.PlanItem{ID: id, Month: month, Type: model.KindExpense, Name: name, Category: cat, Amount: dec(amount)}
}

func TestMergeFixed_Idempotent(t *testing.T) {
	month := mustDate(t, "2025-07-01")
	fixed := []model.FixedExpense{
		{Name: "Rent", Amount: dec("8000")},
		{Name: "Phone", Amount: dec("500")},
	}
	bucket := []model.PlanItem{expense(month, "a", "Rent", model.CategoryFixedExpense, "7500")}

	once := MergeFixed(bucket, fixed, month)
	twice := MergeFixed(once, fixed, month)

	if len(once) != 2 {
		t.Fatalf("len(once) = %d, want 2 (Rent kept, Phone projected)", len(once))
	}
	if len(twice) != len(once) {
		t.Fatalf("second merge changed size: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID || !once[i].Amount.Equal(twice[i].Amount) {
			t.Fatalf("item %d differs after second merge: %+v vs %+v", i, once[i], twice[i])
		}
	}
	if !once[0].Amount.Equal(dec("7500")) {
		t.Fatal("existing Rent item was overwritten")
	}
	phone := once[1]
	if phone.IsPaid || !phone.DatePaid.IsZero() || phone.Category != model.CategoryFixedExpense {
		t.Fatalf("projected item = %+v", phone)
	}
	if phone.ID != FixedItemID(month, "Phone") {
		t.Fatalf("projected ID = %s, want deterministic FixedItemID", phone.ID)
	}
}

func TestApplyExpenseEdits_CarriesPaidStateByID(t *testing.T) {
	month := mustDate(t, "2025-06-01")
	paidAt := mustDate(t, "2025-06-25")
	rent := expense(month, "rent-id", "Rent", model.CategoryFixedExpense, "8000")
	rent.IsPaid = true
	rent.DatePaid = paidAt
	other := expense(mustDate(t, "2025-05-01"), "old", "Gym", model.CategoryOthers, "900")
	income := model.PlanItem{ID: "inc", Month: month, Type: model.KindIncome, Name: model.ExpectedSalary, Amount: dec("40000")}
	all := []model.PlanItem{other, income, rent}

	edits := []ExpenseEdit{
		{ID: "rent-id", Name: "Rent", Category: model.CategoryFixedExpense, Amount: dec("8200")},
		{Name: "Gift", Category: model.CategoryOthers, Amount: dec("300")},
		{Name: "", Category: model.CategoryOthers, Amount: dec("10")},
		{Name: "Zero", Category: model.CategoryOthers, Amount: dec("0")},
	}
	got := ApplyExpenseEdits(all, month, edits)

	bucket := Bucket(got, month)
	inc, exps := Partition(bucket)
	if inc == nil || inc.ID != "inc" {
		t.Fatalf("income line lost: %+v", inc)
	}
	if len(exps) != 2 {
		t.Fatalf("expense rows = %d, want 2", len(exps))
	}
	if !exps[0].IsPaid || !exps[0].DatePaid.Equal(paidAt) {
		t.Fatalf("amount edit cleared paid state: %+v", exps[0])
	}
	if !exps[0].Amount.Equal(dec("8200")) {
		t.Fatalf("edited amount = %s, want 8200", exps[0].Amount)
	}
	if exps[1].IsPaid || exps[1].ID == "" {
		t.Fatalf("new row = %+v, want unpaid with an ID", exps[1])
	}
	if len(Bucket(got, mustDate(t, "2025-05-01"))) != 1 {
		t.Fatal("other month was touched")
	}
}

func TestApplyExpenseEdits_FallsBackToTriple(t *testing.T) {
	month := mustDate(t, "2025-06-01")
	paid := expense(month, "x", "Internet", model.CategoryUtilities, "600")
	paid.IsPaid = true
	paid.DatePaid = mustDate(t, "2025-06-26")

	got := ApplyExpenseEdits([]model.PlanItem{paid}, month, []ExpenseEdit{
		{Name: "Internet", Category: model.CategoryUtilities, Amount: dec("600.00")},
	})
	if len(got) != 1 || !got[0].IsPaid || got[0].ID != "x" {
		t.Fatalf("triple match failed: %+v", got)
	}

	changed := ApplyExpenseEdits([]model.PlanItem{paid}, month, []ExpenseEdit{
		{Name: "Internet", Category: model.CategoryUtilities, Amount: dec("650")},
	})
	if changed[0].IsPaid {
		t.Fatal("row without ID and with a new amount kept paid state")
	}
}

func TestApplyExpenseEdits_IDBeatsEarlierDuplicateRow(t *testing.T) {
	month := mustDate(t, "2025-06-01")
	rent := expense(month, "x", "Rent", model.CategoryFixedExpense, "8000")
	rent.IsPaid = true
	rent.DatePaid = mustDate(t, "2025-06-25")

	got := ApplyExpenseEdits([]model.PlanItem{rent}, month, []ExpenseEdit{
		{Name: "Rent", Category: model.CategoryFixedExpense, Amount: dec("8000")},
		{ID: "x", Name: "Rent", Category: model.CategoryFixedExpense, Amount: dec("9000")},
	})
	if len(got) != 2 {
		t.Fatalf("items = %d, want 2", len(got))
	}
	dup, edited := got[0], got[1]
	if edited.ID != "x" || !edited.IsPaid || !edited.Amount.Equal(dec("9000")) {
		t.Fatalf("edited row = %+v, want id x, paid, 9000", edited)
	}
	if dup.ID == "x" || dup.ID == "" || dup.IsPaid {
		t.Fatalf("duplicate row = %+v, want fresh unpaid ID", dup)
	}
}

func TestApplyExpenseEdits_RepeatedIDGetsFreshID(t *testing.T) {
	month := mustDate(t, "2025-06-01")
	prior := expense(month, "x", "Gym", model.CategoryOthers, "900")

	got := ApplyExpenseEdits([]model.PlanItem{prior}, month, []ExpenseEdit{
		{ID: "x", Name: "Gym", Category: model.CategoryOthers, Amount: dec("900")},
		{ID: "x", Name: "Yoga", Category: model.CategoryOthers, Amount: dec("700")},
	})
	if len(got) != 2 {
		t.Fatalf("items = %d, want 2", len(got))
	}
	if got[0].ID != "x" || got[1].ID == "x" || got[1].ID == "" {
		t.Fatalf("IDs = %q, %q, want x and a fresh one", got[0].ID, got[1].ID)
	}
}

func TestSetIncome_ReplacesWholesale(t *testing.T) {
	month := mustDate(t, "2025-06-01")
	all := []model.PlanItem{
		{ID: "a", Month: month, Type: model.KindIncome, Name: model.ExpectedSalary, Amount: dec("100")},
		{ID: "b", Month: month, Type: model.KindIncome, Name: "Bonus", Amount: dec("50")},
		expense(month, "c", "Rent", model.CategoryFixedExpense, "10"),
	}
	got := SetIncome(all, month, dec("45000"))
	inc, exps := Partition(got)
	if len(got) != 2 || inc == nil || len(exps) != 1 {
		t.Fatalf("SetIncome result = %+v", got)
	}
	if inc.Name != model.ExpectedSalary || !inc.Amount.Equal(dec("45000")) || inc.Category != "" {
		t.Fatalf("income = %+v", inc)
	}
}

func TestActivatePayments(t *testing.T) {
	month := mustDate(t, "2025-06-01")
	firstPaid := mustDate(t, "2025-06-25")
	alreadyPaid := expense(month, "p", "Rent", model.CategoryFixedExpense, "8000")
	alreadyPaid.IsPaid = true
	alreadyPaid.DatePaid = firstPaid
	all := []model.PlanItem{
		alreadyPaid,
		expense(month, "u", "Water", model.CategoryUtilities, "300"),
		expense(month, "v", "Gift", model.CategoryOthers, "200"),
	}
	now := time.Date(2025, 6, 27, 9, 30, 0, 0, time.UTC)

	got, txns, err := ActivatePayments(all, month, []string{"p", "u", "nope"}, now, 25)
	if err != nil {
		t.Fatalf("ActivatePayments: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("transactions = %d, want 1", len(txns))
	}
	if txns[0].Note != "Paid planned expense: Water" || txns[0].Category != model.CategoryUtilities || !txns[0].Amount.Equal(dec("300")) {
		t.Fatalf("transaction = %+v", txns[0])
	}
	if !got[0].DatePaid.Equal(firstPaid) {
		t.Fatal("already paid item was re-stamped")
	}
	if !got[1].IsPaid || !got[1].DatePaid.Equal(now) {
		t.Fatalf("selected item = %+v, want paid at now", got[1])
	}
	if got[2].IsPaid {
		t.Fatal("unselected item was paid")
	}
	if all[1].IsPaid {
		t.Fatal("ActivatePayments mutated its input")
	}
}

func TestActivatePayments_WindowClosed(t *testing.T) {
	month := mustDate(t, "2025-06-01")
	all := []model.PlanItem{expense(month, "u", "Water", model.CategoryUtilities, "300")}

	tests := []struct {
		name  string
		month time.Time
		now   time.Time
	}{
		{"before payday", month, mustDate(t, "2025-06-24")},
		{"next month bucket", mustDate(t, "2025-07-01"), mustDate(t, "2025-06-26")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ActivatePayments(all, tt.month, []string{"u"}, tt.now, 25)
			if !errors.Is(err, ErrPaymentWindowClosed) {
				t.Fatalf("err = %v, want ErrPaymentWindowClosed", err)
			}
		})
	}
}

func TestMonthOptions(t *testing.T) {
	today := mustDate(t, "2025-06-10")
	items := []model.PlanItem{
		{Month: mustDate(t, "2025-03-01")},
		{Month: mustDate(t, "2025-06-01")},
	}
	got := MonthOptions(items, today)
	want := []string{"2025-07", "2025-06", "2025-03"}
	if len(got) != len(want) {
		t.Fatalf("MonthOptions = %v", got)
	}
	for i := range want {
		if model.MonthKey(got[i]) != want[i] {
			t.Fatalf("MonthOptions[%d] = %s, want %s", i, model.MonthKey(got[i]), want[i])
		}
	}
	if model.MonthKey(DefaultMonth(mustDate(t, "2025-12-31"))) != "2026-01" {
		t.Fatal("DefaultMonth does not roll into the next year")
	}
}

func TestNewView(t *testing.T) {
	month := mustDate(t, "2025-06-01")
	all := []model.PlanItem{
		{ID: "i", Month: month, Type: model.KindIncome, Name: model.ExpectedSalary, Amount: dec("30000")},
	}
	fixed := []model.FixedExpense{{Name: "Rent", Amount: dec("8000")}}

	v := NewView(all, fixed, month, mustDate(t, "2025-06-25"), 25)
	if !v.PaymentWindowOpen || !v.IsCurrentMonth {
		t.Fatalf("window flags = %v %v, want both true", v.PaymentWindowOpen, v.IsCurrentMonth)
	}
	if len(v.Expenses) != 1 || !v.Summary.Net.Equal(dec("22000")) {
		t.Fatalf("view = %+v", v)
	}
	if !v.Summary.Unpaid.Equal(dec("8000")) {
		t.Fatalf("Unpaid = %s, want 8000", v.Summary.Unpaid)
	}
}
