// Package cli renders budget figures as styled terminal text.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/locale"
)

// FormatPercent formats a 0-100 share as "42.5%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatDelta formats a signed money delta, always carrying a sign.
func FormatDelta(tr *locale.Translator, d decimal.Decimal) string {
	if d.IsNegative() {
		return tr.Money(d)
	}
	return "+" + tr.Money(d)
}

// FormatDate formats a day as YYYY-MM-DD, or "-" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// FormatDays renders a day count with its unit.
func FormatDays(tr *locale.Translator, n int) string {
	return fmt.Sprintf("%d %s", n, tr.T("day"))
}

// Truncate shortens s to at most n runes, appending "…".
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
