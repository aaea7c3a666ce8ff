package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/locale"
	"github.com/theirongolddev/budgetboard/internal/model"
)

const dateLayout = "2006-01-02"

// Layouts accepted when reading dates written by other tools.
var dateLayouts = []string{
	dateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	time.RFC3339,
	"2006-01",
	"1/2/2006",
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// ParseAmount reads a money cell. Grouping commas and the currency sign are
// ignored; anything unparseable is zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.NewReplacer(",", "", locale.CurrencySymbol, "", " ", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate reads a date cell, returning the zero time when it cannot be parsed.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Day(t)
		}
	}
	return time.Time{}
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// EncodeTransaction returns the row for a transaction.
func EncodeTransaction(t model.Transaction) []string {
	return []string{formatDate(t.Date), string(t.Kind), t.Category, t.Amount.String(), t.Note}
}

// DecodeTransactions converts rows to transactions, coercing bad cells.
func DecodeTransactions(rows [][]string) []model.Transaction {
	out := make([]model.Transaction, 0, len(rows))
	for _, r := range rows {
		t := model.Transaction{
			Date:     ParseDate(cell(r, 0)),
			Kind:     model.ParseKind(locale.Canonical(cell(r, 1))),
			Category: locale.Canonical(cell(r, 2)),
			Amount:   ParseAmount(cell(r, 3)),
			Note:     cell(r, 4),
		}
		if t.Amount.IsNegative() {
			t.Amount = decimal.Zero
		}
		out = append(out, t)
	}
	return out
}

// EncodeTransactions returns the rows for txns.
func EncodeTransactions(txns []model.Transaction) [][]string {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, EncodeTransaction(t))
	}
	return rows
}

// EncodeFixedExpenses returns the rows for fixed expenses.
func EncodeFixedExpenses(fs []model.FixedExpense) [][]string {
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		rows = append(rows, []string{f.Name, f.Amount.String()})
	}
	return rows
}

// DecodeFixedExpenses converts rows to fixed expenses.
func DecodeFixedExpenses(rows [][]string) []model.FixedExpense {
	out := make([]model.FixedExpense, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.FixedExpense{Name: cell(r, 0), Amount: ParseAmount(cell(r, 1))})
	}
	return out
}

// EncodeSavingGoals returns the rows for goals.
func EncodeSavingGoals(gs []model.SavingGoal) [][]string {
	rows := make([][]string, 0, len(gs))
	for _, g := range gs {
		rows = append(rows, []string{
			g.Name,
			g.TargetAmount.String(),
			g.Emoji,
			g.CurrentSaved.String(),
			formatDate(g.TargetDate),
			string(g.Frequency),
			g.RequiredPerFrequency.StringFixed(2),
		})
	}
	return rows
}

// DecodeSavingGoals converts rows to goals. A missing emoji becomes the
// default icon and a negative saved amount is clamped to zero.
func DecodeSavingGoals(rows [][]string) []model.SavingGoal {
	out := make([]model.SavingGoal, 0, len(rows))
	for _, r := range rows {
		g := model.SavingGoal{
			Name:                 cell(r, 0),
			TargetAmount:         ParseAmount(cell(r, 1)),
			Emoji:                cell(r, 2),
			CurrentSaved:         ParseAmount(cell(r, 3)),
			TargetDate:           ParseDate(cell(r, 4)),
			Frequency:            model.ParseFrequency(cell(r, 5)),
			RequiredPerFrequency: ParseAmount(cell(r, 6)),
		}
		if g.Emoji == "" {
			g.Emoji = model.DefaultEmoji
		}
		if g.CurrentSaved.IsNegative() {
			g.CurrentSaved = decimal.Zero
		}
		out = append(out, g)
	}
	return out
}

// EncodePlanItems returns the rows for plan items.
func EncodePlanItems(items []model.PlanItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			formatDate(it.Month),
			string(it.Type),
			it.Name,
			it.Amount.String(),
			it.Category,
			formatBool(it.IsPaid),
			formatDate(it.DatePaid),
			it.ID,
		})
	}
	return rows
}

// DecodePlanItems converts rows to plan items. Rows without a parseable
// month are dropped. Rows written before item IDs existed get an ID derived
// from their content and position so it is stable across reloads.
func DecodePlanItems(rows [][]string) []model.PlanItem {
	out := make([]model.PlanItem, 0, len(rows))
	for i, r := range rows {
		month := ParseDate(cell(r, 0))
		if month.IsZero() {
			continue
		}
		it := model.PlanItem{
			ID:       cell(r, 7),
			Month:    model.MonthStart(month),
			Type:     model.ParseKind(locale.Canonical(cell(r, 1))),
			Name:     cell(r, 2),
			Amount:   ParseAmount(cell(r, 3)),
			Category: locale.Canonical(cell(r, 4)),
			IsPaid:   parseBool(cell(r, 5)),
			DatePaid: ParseDate(cell(r, 6)),
		}
		if it.IsPaid && it.DatePaid.IsZero() {
			it.DatePaid = it.Month
		}
		if it.ID == "" {
			it.ID = model.DeriveItemID("row", strconv.Itoa(i), strings.Join(normalize(r, 7), "|"))
		}
		out = append(out, it)
	}
	return out
}
