package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/config"
	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/session"
	"github.com/theirongolddev/budgetboard/internal/store"
	"github.com/theirongolddev/budgetboard/internal/tui/components"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestApp returns a loaded 120x40 dashboard over a seeded in-memory store.
func newTestApp(t *testing.T, now time.Time) (App, *session.Controller) {
	t.Helper()
	ctx := context.Background()
	ctrl := session.New(store.NewMemory(), session.Options{
		Payday: 25,
		Now:    func() time.Time { return now },
		Logger: zerolog.Nop(),
	})
	if err := ctrl.AddTransaction(ctx, model.Transaction{
		Date: now, Kind: model.KindIncome, Category: model.CategoryIncome, Amount: dec("40000"), Note: "salary",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := ctrl.AddFixedExpense(ctx, "Rent", dec("8000")); err != nil {
		t.Fatalf("AddFixedExpense: %v", err)
	}
	if err := ctrl.AddGoal(ctx, session.GoalInput{
		Name: "Japan Trip", Target: dec("30000"), TargetDate: now.AddDate(0, 3, 0), Frequency: model.FrequencyMonthly,
	}); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	a := NewApp(ctrl, Options{Config: config.DefaultConfig(), Logger: zerolog.Nop()})
	a = step(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	a = step(t, a, a.loadCmd()())
	return a, ctrl
}

func step(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	return m.(App)
}

// stepCmd applies msg and returns the command it produced.
func stepCmd(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func TestLoadPopulatesOverview(t *testing.T) {
	a, _ := newTestApp(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	if !a.loaded {
		t.Fatal("app not loaded after dataMsg")
	}
	if got := a.data.dash.Metrics.Balance; !got.Equal(dec("32000")) {
		t.Fatalf("balance = %s, want 32000", got)
	}
	if a.entryKey != "June 2025" {
		t.Fatalf("entryKey = %q, want June 2025", a.entryKey)
	}
	view := a.View()
	for _, want := range []string{"Balance", "฿32,000.00", "Smart Suggestion"} {
		if !strings.Contains(view, want) {
			t.Fatalf("overview missing %q", want)
		}
	}
}

func TestTabKeys(t *testing.T) {
	a, _ := newTestApp(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	cases := []struct {
		key  string
		want int
	}{
		{"e", tabEntries},
		{"f", tabFixed},
		{"g", tabGoals},
		{"p", tabPlan},
		{"o", tabOverview},
	}
	for _, tc := range cases {
		a = step(t, a, runes(tc.key))
		if a.activeTab != tc.want {
			t.Fatalf("after %q activeTab = %d, want %d", tc.key, a.activeTab, tc.want)
		}
	}

	a = step(t, a, runes("g"))
	if !strings.Contains(a.View(), "Japan Trip") {
		t.Fatal("goals tab does not show the goal")
	}
	a = step(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabPlan {
		t.Fatalf("right from goals = %d, want %d", a.activeTab, tabPlan)
	}
	a = step(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabOverview {
		t.Fatalf("right from plan = %d, want wrap to overview", a.activeTab)
	}
}

func TestPeriodCycleReloads(t *testing.T) {
	a, _ := newTestApp(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	a, cmd := stepCmd(t, a, runes("]"))
	if cmd == nil {
		t.Fatal("period change returned no reload")
	}
	a = step(t, a, cmd())
	if got := a.data.dash.Period.String(); got != "Last 3 Months" {
		t.Fatalf("period = %q, want Last 3 Months", got)
	}
}

func TestMouseClickSwitchesTab(t *testing.T) {
	a, _ := newTestApp(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	labels := a.tabLabels()
	x := -1
	for i := 0; i < 120; i++ {
		if components.TabAt(labels, i) == tabGoals {
			x = i
			break
		}
	}
	if x < 0 {
		t.Fatal("no column maps to the goals tab")
	}
	a = step(t, a, tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if a.activeTab != tabGoals {
		t.Fatalf("activeTab = %d, want %d", a.activeTab, tabGoals)
	}
}

func TestFormCapturesInputUntilEscape(t *testing.T) {
	a, _ := newTestApp(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	a = step(t, a, runes("f"))
	a = step(t, a, runes("a"))
	if a.form == nil {
		t.Fatal("a on fixed tab did not open a form")
	}
	a = step(t, a, runes("g"))
	if a.activeTab != tabFixed {
		t.Fatal("tab key leaked past the open form")
	}
	a = step(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.form != nil {
		t.Fatal("esc did not close the form")
	}
}

func TestPlanPayments(t *testing.T) {
	ctx := context.Background()
	a, ctrl := newTestApp(t, time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC))
	a = step(t, a, runes("p"))

	if got := model.MonthKey(a.data.plan.Month); got != "2025-07" {
		t.Fatalf("default plan month = %s, want 2025-07", got)
	}
	a, _ = stepCmd(t, a, runes(" "))
	if len(a.selected) != 0 {
		t.Fatal("selection allowed while payment window is closed")
	}

	// Step back to the current month.
	a, cmd := stepCmd(t, a, runes("["))
	if cmd == nil {
		t.Fatal("month change returned no reload")
	}
	a = step(t, a, cmd())
	if got := model.MonthKey(a.data.plan.Month); got != "2025-06" {
		t.Fatalf("plan month = %s, want 2025-06", got)
	}
	if !a.data.plan.PaymentWindowOpen {
		t.Fatal("payment window closed on June 26")
	}
	if len(a.data.plan.Expenses) != 1 || a.data.plan.Expenses[0].Name != "Rent" {
		t.Fatalf("plan expenses = %+v, want the merged Rent item", a.data.plan.Expenses)
	}

	a = step(t, a, tea.KeyMsg{Type: tea.KeySpace})
	if len(a.selected) != 1 {
		t.Fatalf("selected = %d, want 1", len(a.selected))
	}
	if !strings.Contains(a.View(), "[•]") {
		t.Fatal("selected row is not marked")
	}

	a, cmd = stepCmd(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no payment command")
	}
	msg, ok := cmd().(writeMsg)
	if !ok {
		t.Fatal("payment command did not return a writeMsg")
	}
	if msg.err != nil || msg.text != "Paid 1 items" {
		t.Fatalf("payment result = %+v, want Paid 1 items", msg)
	}

	page, err := ctrl.Plan(ctx, a.data.plan.Month)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !page.Expenses[0].IsPaid {
		t.Fatal("Rent not marked paid")
	}
}

func TestEntriesRefuseFixedRowDelete(t *testing.T) {
	a, _ := newTestApp(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	a = step(t, a, runes("e"))

	idx := -1
	for i, r := range a.data.entries.Rows {
		if isMaterializedFixed(r) {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("entries do not include the materialized Rent row")
	}
	a.cursor[tabEntries] = idx
	a = step(t, a, runes("d"))
	if a.form != nil {
		t.Fatal("delete confirmation opened for a fixed expense row")
	}
	if !a.flash.Error {
		t.Fatal("no error flash for fixed expense row delete")
	}
}

func TestNarrowTerminal(t *testing.T) {
	a, _ := newTestApp(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	a = step(t, a, tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(a.View(), "Terminal too narrow") {
		t.Fatal("narrow terminal warning missing")
	}
}

func TestCursorClamps(t *testing.T) {
	a, _ := newTestApp(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	a = step(t, a, runes("g"))
	for range 5 {
		a = step(t, a, runes("j"))
	}
	if a.cursor[tabGoals] != 0 {
		t.Fatalf("cursor = %d, want 0 with one goal", a.cursor[tabGoals])
	}
}

func TestWindow(t *testing.T) {
	cases := []struct {
		n, cursor, height int
		start, end        int
	}{
		{5, 0, 10, 0, 5},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
	}
	for _, tc := range cases {
		start, end := window(tc.n, tc.cursor, tc.height)
		if start != tc.start || end != tc.end {
			t.Fatalf("window(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tc.n, tc.cursor, tc.height, start, end, tc.start, tc.end)
		}
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := newSetupValues(cfg)
	v.locale = "th"
	v.payday = " 28 "
	v.backend = store.BackendSheets
	v.sheetID = " abc123 "

	got := v.apply(cfg)
	if got.General.Locale != "th" || got.General.Payday != 28 {
		t.Fatalf("general = %+v, want th/28", got.General)
	}
	if got.Store.Backend != store.BackendSheets || got.Sheets.SpreadsheetID != "abc123" {
		t.Fatalf("store = %+v sheets = %+v", got.Store, got.Sheets)
	}
	if err := validatePayday("32"); err == nil {
		t.Fatal("payday 32 accepted")
	}
}
