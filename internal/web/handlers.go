package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/export"
	"github.com/theirongolddev/budgetboard/internal/goals"
	"github.com/theirongolddev/budgetboard/internal/model"
	"github.com/theirongolddev/budgetboard/internal/pipeline"
	"github.com/theirongolddev/budgetboard/internal/plan"
	"github.com/theirongolddev/budgetboard/internal/session"
	"github.com/theirongolddev/budgetboard/internal/store"
)

const dateLayout = "2006-01-02"

type transactionJSON struct {
	Date     string          `json:"date"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note,omitempty"`
}

type fixedJSON struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type goalJSON struct {
	Name       string          `json:"name"`
	Target     decimal.Decimal `json:"target"`
	Emoji      string          `json:"emoji,omitempty"`
	Saved      decimal.Decimal `json:"saved"`
	TargetDate string          `json:"target_date,omitempty"`
	Frequency  string          `json:"frequency"`
	Required   decimal.Decimal `json:"required_per_frequency"`

	ProgressPercent float64          `json:"progress_percent"`
	Status          string           `json:"status,omitempty"`
	DaysRemaining   int              `json:"days_remaining"`
	Remaining       *decimal.Decimal `json:"remaining,omitempty"`
}

type planItemJSON struct {
	ID       string          `json:"id"`
	Month    string          `json:"month"`
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	IsPaid   bool            `json:"is_paid"`
	DatePaid string          `json:"date_paid,omitempty"`
}

type amountJSON struct {
	Amount decimal.Decimal `json:"amount"`
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// parseDay parses an optional YYYY-MM-DD field.
func parseDay(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &session.ValidationError{Field: field, Reason: "must be YYYY-MM-DD", Err: err}
	}
	return t, nil
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &session.ValidationError{Field: "body", Reason: err.Error(), Err: err}
	}
	return nil
}

func toTransactionJSON(t model.Transaction) transactionJSON {
	return transactionJSON{Date: formatDay(t.Date), Type: string(t.Kind), Category: t.Category, Amount: t.Amount, Note: t.Note}
}

func (j transactionJSON) model() (model.Transaction, error) {
	d, err := parseDay("date", j.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	k := model.ParseKind(j.Type)
	if !strings.EqualFold(strings.TrimSpace(j.Type), string(k)) {
		return model.Transaction{}, &session.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown type %q", j.Type)}
	}
	return model.Transaction{Date: d, Kind: k, Category: strings.TrimSpace(j.Category), Amount: j.Amount, Note: j.Note}, nil
}

func toPlanItemJSON(it model.PlanItem) planItemJSON {
	return planItemJSON{
		ID: it.ID, Month: model.MonthKey(it.Month), Type: string(it.Type), Name: it.Name,
		Amount: it.Amount, Category: it.Category, IsPaid: it.IsPaid, DatePaid: formatDay(it.DatePaid),
	}
}

func (s *Service) goalJSON(v goals.View) goalJSON {
	g := v.Goal
	rem := v.Remaining
	return goalJSON{
		Name: g.Name, Target: g.TargetAmount, Emoji: g.Emoji, Saved: g.CurrentSaved,
		TargetDate: formatDay(g.TargetDate), Frequency: string(g.Frequency), Required: g.RequiredPerFrequency,
		ProgressPercent: v.ProgressPercent,
		Status:          s.tr.GoalStatus(v.Status),
		DaysRemaining:   v.Status.DaysRemaining,
		Remaining:       &rem,
	}
}

// monthParam reads the {month} path segment as YYYY-MM.
func monthParam(r *http.Request) (time.Time, error) {
	raw := chi.URLParam(r, "month")
	m, ok := model.ParseMonthKey(raw)
	if !ok {
		return time.Time{}, &session.ValidationError{Field: "month", Reason: fmt.Sprintf("%q is not YYYY-MM", raw)}
	}
	return m, nil
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, g := pipeline.PeriodCurrentMonth, pipeline.Daily
	if v := q.Get("period"); v != "" {
		var ok bool
		if p, ok = pipeline.ParsePeriod(v); !ok {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown period %q", v))
			return
		}
	}
	if v := q.Get("granularity"); v != "" {
		var ok bool
		if g, ok = pipeline.ParseGranularity(v); !ok {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown granularity %q", v))
			return
		}
	}

	d, err := s.ctrl.Dashboard(r.Context(), p, g)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	type share struct {
		Category     string          `json:"category"`
		Label        string          `json:"label"`
		Total        decimal.Decimal `json:"total"`
		SharePercent float64         `json:"share_percent"`
	}
	type point struct {
		Label string          `json:"label"`
		Start string          `json:"start"`
		Total decimal.Decimal `json:"total"`
	}
	shares := make([]share, 0, len(d.Categories))
	for _, c := range d.Categories {
		shares = append(shares, share{c.Category, s.tr.Category(c.Category), c.Total, c.SharePercent})
	}
	points := make([]point, 0, len(d.Spending))
	for _, sp := range d.Spending {
		points = append(points, point{sp.Label, formatDay(sp.Start), sp.Total})
	}
	fixed := make([]fixedJSON, 0, len(d.Fixed))
	for _, f := range d.Fixed {
		fixed = append(fixed, fixedJSON{f.Name, f.Amount})
	}

	m := d.Metrics
	WriteJSON(w, http.StatusOK, map[string]any{
		"today":       formatDay(d.Today),
		"period":      d.Period.String(),
		"granularity": d.Granularity.String(),
		"metrics": map[string]any{
			"income":                m.Income,
			"expense":               m.Expense,
			"balance":               m.Balance,
			"total_fixed":           m.TotalFixed,
			"remaining_after_fixed": m.RemainingAfterFixed,
			"suggested_daily":       m.SuggestedDaily,
			"days_until_payday":     m.DaysUntilPayday,
			"payday":                formatDay(m.PaydayTarget),
		},
		"advice":     s.tr.Advice(d.Advice),
		"categories": shares,
		"spending":   points,
		"fixed":      fixed,
	})
}

func (s *Service) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	snap, err := s.ctrl.Snapshot(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	out := make([]transactionJSON, 0, len(snap.Transactions))
	for _, t := range snap.Transactions {
		out = append(out, toTransactionJSON(t))
	}
	WriteJSON(w, http.StatusOK, out)
}

func (s *Service) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var in transactionJSON
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	t, err := in.model()
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if err := s.ctrl.AddTransaction(r.Context(), t); err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"message": s.tr.T("Entry saved!")})
}

func (s *Service) handleReplaceTransactions(w http.ResponseWriter, r *http.Request) {
	var in []transactionJSON
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	txns := make([]model.Transaction, 0, len(in))
	for _, j := range in {
		t, err := j.model()
		if err != nil {
			writeErr(w, r, err)
			return
		}
		txns = append(txns, t)
	}
	if err := s.ctrl.ReplaceTransactions(r.Context(), txns); err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"rows": len(txns)})
}

func (s *Service) handleEntries(w http.ResponseWriter, r *http.Request) {
	v := pipeline.ViewMonth
	if raw := r.URL.Query().Get("view"); raw != "" {
		var ok bool
		if v, ok = pipeline.ParseEntryView(raw); !ok {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown view %q", raw))
			return
		}
	}
	page, err := s.ctrl.Entries(r.Context(), v, r.URL.Query().Get("key"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	keys := make([]string, 0, len(page.Periods))
	for _, p := range page.Periods {
		keys = append(keys, p.Key)
	}
	rows := make([]transactionJSON, 0, len(page.Rows))
	for _, t := range page.Rows {
		rows = append(rows, toTransactionJSON(t))
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"view":    page.View.String(),
		"key":     page.Key,
		"periods": keys,
		"rows":    rows,
	})
}

func (s *Service) handleListFixed(w http.ResponseWriter, r *http.Request) {
	snap, err := s.ctrl.Snapshot(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	out := make([]fixedJSON, 0, len(snap.Fixed))
	for _, f := range snap.Fixed {
		out = append(out, fixedJSON{f.Name, f.Amount})
	}
	WriteJSON(w, http.StatusOK, out)
}

func (s *Service) handleAddFixed(w http.ResponseWriter, r *http.Request) {
	var in fixedJSON
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	if err := s.ctrl.AddFixedExpense(r.Context(), in.Name, in.Amount); err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"message": s.tr.T("Fixed expense added successfully!")})
}

func (s *Service) handleReplaceFixed(w http.ResponseWriter, r *http.Request) {
	var in []fixedJSON
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	fs := make([]model.FixedExpense, 0, len(in))
	for _, f := range in {
		fs = append(fs, model.FixedExpense{Name: f.Name, Amount: f.Amount})
	}
	if err := s.ctrl.ReplaceFixedExpenses(r.Context(), fs); err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"rows": len(fs)})
}

func (s *Service) handleListGoals(w http.ResponseWriter, r *http.Request) {
	views, err := s.ctrl.Goals(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	out := make([]goalJSON, 0, len(views))
	for _, v := range views {
		out = append(out, s.goalJSON(v))
	}
	WriteJSON(w, http.StatusOK, out)
}

func (s *Service) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var in goalJSON
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	d, err := parseDay("target_date", in.TargetDate)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	err = s.ctrl.AddGoal(r.Context(), session.GoalInput{
		Name:       in.Name,
		Target:     in.Target,
		Emoji:      in.Emoji,
		TargetDate: d,
		Frequency:  model.ParseFrequency(in.Frequency),
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"message": s.tr.T("Goal added successfully!")})
}

func (s *Service) handleReplaceGoals(w http.ResponseWriter, r *http.Request) {
	var in []goalJSON
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	gs := make([]model.SavingGoal, 0, len(in))
	for _, j := range in {
		d, err := parseDay("target_date", j.TargetDate)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		gs = append(gs, model.SavingGoal{
			Name: j.Name, TargetAmount: j.Target, Emoji: j.Emoji, CurrentSaved: j.Saved,
			TargetDate: d, Frequency: model.ParseFrequency(j.Frequency),
		})
	}
	if err := s.ctrl.ReplaceGoals(r.Context(), gs); err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"rows": len(gs)})
}

func (s *Service) handleContribute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var in amountJSON
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	if err := s.ctrl.SaveToGoal(r.Context(), name, in.Amount); err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"message": s.tr.T("Saved %s to %s", s.tr.Money(in.Amount), name)})
}

func (s *Service) handleListPlans(w http.ResponseWriter, r *http.Request) {
	page, err := s.ctrl.Plan(r.Context(), time.Time{})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	months := make([]string, 0, len(page.Options))
	for _, m := range page.Options {
		months = append(months, model.MonthKey(m))
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"default": model.MonthKey(page.Month),
		"months":  months,
	})
}

func (s *Service) writePlan(w http.ResponseWriter, r *http.Request, status int, month time.Time) {
	page, err := s.ctrl.Plan(r.Context(), month)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var income *planItemJSON
	if page.Income != nil {
		j := toPlanItemJSON(*page.Income)
		income = &j
	}
	expenses := make([]planItemJSON, 0, len(page.Expenses))
	for _, it := range page.Expenses {
		expenses = append(expenses, toPlanItemJSON(it))
	}
	sum := page.Summary
	WriteJSON(w, status, map[string]any{
		"month":               model.MonthKey(page.Month),
		"label":               s.tr.MonthYear(page.Month),
		"income":              income,
		"expenses":            expenses,
		"payment_window_open": page.PaymentWindowOpen,
		"is_current_month":    page.IsCurrentMonth,
		"summary": map[string]any{
			"income":     sum.Income,
			"expense":    sum.Expense,
			"paid":       sum.Paid,
			"unpaid":     sum.Unpaid,
			"net":        sum.Net,
			"items":      sum.Items,
			"paid_items": sum.PaidItems,
		},
	})
}

func (s *Service) handlePlan(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	s.writePlan(w, r, http.StatusOK, month)
}

func (s *Service) handlePlanIncome(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var in amountJSON
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	if err := s.ctrl.SetPlanIncome(r.Context(), month, in.Amount); err != nil {
		writeErr(w, r, err)
		return
	}
	s.writePlan(w, r, http.StatusOK, month)
}

func (s *Service) handlePlanExpenses(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var in []planItemJSON
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	edits := make([]plan.ExpenseEdit, 0, len(in))
	for _, j := range in {
		edits = append(edits, plan.ExpenseEdit{ID: j.ID, Name: j.Name, Category: j.Category, Amount: j.Amount})
	}
	if err := s.ctrl.SavePlanExpenses(r.Context(), month, edits); err != nil {
		writeErr(w, r, err)
		return
	}
	s.writePlan(w, r, http.StatusOK, month)
}

func (s *Service) handlePayments(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if !month.Equal(model.MonthStart(s.ctrl.Today())) {
		WriteError(w, http.StatusConflict, "payments can only be activated for the current month")
		return
	}
	var in struct {
		IDs []string `json:"ids"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	n, err := s.ctrl.ActivatePayments(r.Context(), in.IDs)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"paid": n})
}

func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
	t, err := store.TableByName(chi.URLParam(r, "table"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	wb, err := export.ForTable(t)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	snap, err := s.ctrl.Snapshot(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, t, snap, s.tr); err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", wb.FileName))
	_, _ = w.Write(buf.Bytes())
}
