// Package locale holds the static Thai/English label tables and formats
// money and dates for display. Nothing outside the presentation layer
// should branch on the active language.
package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/theirongolddev/budgetboard/internal/goals"
	"github.com/theirongolddev/budgetboard/internal/model"
)

// Supported language codes.
const (
	English = "en"
	Thai    = "th"
)

// CurrencySymbol prefixes formatted money.
const CurrencySymbol = "฿"

// canonical maps every localized record label back to its stored form.
var canonical = func() map[string]string {
	m := make(map[string]string)
	for _, c := range model.CanonicalCategories {
		if th, ok := thai[c]; ok {
			m[th] = c
		}
	}
	for _, k := range []model.Kind{model.KindIncome, model.KindExpense} {
		m[thai[string(k)]] = string(k)
	}
	return m
}()

// Canonical returns the stored English form of a possibly localized label.
// Unknown labels are returned trimmed but otherwise unchanged.
func Canonical(label string) string {
	label = strings.TrimSpace(label)
	if c, ok := canonical[label]; ok {
		return c
	}
	return label
}

// Translator renders labels in one language.
type Translator struct {
	lang    string
	printer *message.Printer
}

// New returns a translator for lang. Unknown languages fall back to English.
func New(lang string) *Translator {
	lang = strings.ToLower(strings.TrimSpace(lang))
	tag := language.English
	if lang == Thai {
		tag = language.Thai
	} else {
		lang = English
	}
	return &Translator{lang: lang, printer: message.NewPrinter(tag)}
}

// Lang returns the language code.
func (t *Translator) Lang() string { return t.lang }

// T translates a UI string. Args are applied as with fmt.Sprintf.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Category translates a stored category. Custom categories pass through.
func (t *Translator) Category(c string) string {
	if t.lang == Thai {
		if th, ok := thai[c]; ok {
			return th
		}
	}
	return c
}

// Kind translates a transaction kind.
func (t *Translator) Kind(k model.Kind) string {
	return t.Category(string(k))
}

// Money formats d as ฿1,234.50 with the locale's digit grouping.
func (t *Translator) Money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + CurrencySymbol + t.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Number formats d with two decimals and grouping but no currency symbol.
func (t *Translator) Number(d decimal.Decimal) string {
	return t.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// MonthYear formats a month as "June 2025" or its Thai equivalent.
func (t *Translator) MonthYear(m time.Time) string {
	if t.lang == Thai {
		return fmt.Sprintf("%s %d", months[m.Month()-1], m.Year())
	}
	return m.Format("January 2006")
}

// Advice renders the smart suggestion.
func (t *Translator) Advice(a model.Advice) string {
	switch a {
	case model.AdviceOverspending:
		return t.T("⚠️ You're overspending! Reduce expenses.")
	case model.AdviceHighExpenseRatio:
		return t.T("💡 Expenses >70%% of income. Recheck your goals.")
	default:
		return t.T("👍 Great money management!")
	}
}

// GoalStatus renders a goal's status line.
func (t *Translator) GoalStatus(s goals.Status) string {
	switch s.Kind {
	case goals.StatusReached:
		return t.T("Goal Reached!")
	case goals.StatusInvalidDate:
		return t.T("Invalid Target Date")
	case goals.StatusOverdue:
		return t.T("Overdue")
	default:
		return t.T("Remaining %d days", s.DaysRemaining)
	}
}

// FrequencyUnit renders the per-period unit of a goal, e.g. "week".
func (t *Translator) FrequencyUnit(f model.Frequency) string {
	switch f {
	case model.FrequencyWeekly:
		return t.T("week")
	case model.FrequencyMonthly:
		return t.T("month")
	default:
		return t.T("day")
	}
}
