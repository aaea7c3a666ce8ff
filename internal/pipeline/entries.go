package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/budgetboard/internal/model"
)

// EntryView is the grouping used by the entries table.
type EntryView int

const (
	ViewDay EntryView = iota
	ViewWeek
	ViewMonth
)

func (v EntryView) String() string {
	switch v {
	case ViewDay:
		return "Day"
	case ViewWeek:
		return "Week"
	default:
		return "Month"
	}
}

// ParseEntryView accepts "day", "week" or "month".
func ParseEntryView(s string) (EntryView, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily":
		return ViewDay, true
	case "week", "weekly":
		return ViewWeek, true
	case "month", "monthly", "":
		return ViewMonth, true
	}
	return ViewMonth, false
}

// EntryPeriod is one selectable group of the entries table.
type EntryPeriod struct {
	Key   string
	Start time.Time
}

// EntryKey returns the group key of t under the view.
func EntryKey(t time.Time, v EntryView) string {
	switch v {
	case ViewDay:
		return t.Format("2006-01-02")
	case ViewWeek:
		return WeekLabel(t)
	default:
		return t.Format("January 2006")
	}
}

// EntryPeriods lists the distinct groups present in the ledger, newest first.
func EntryPeriods(ledger []model.Transaction, v EntryView) []EntryPeriod {
	seen := make(map[string]time.Time)
	for _, t := range ledger {
		if t.Date.IsZero() {
			continue
		}
		k := EntryKey(t.Date, v)
		d := model.Day(t.Date)
		if prev, ok := seen[k]; !ok || d.Before(prev) {
			seen[k] = d
		}
	}
	periods := make([]EntryPeriod, 0, len(seen))
	for k, start := range seen {
		periods = append(periods, EntryPeriod{Key: k, Start: start})
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start.After(periods[j].Start)
	})
	return periods
}

// DefaultEntryKey picks today's group when it has entries, otherwise the newest.
func DefaultEntryKey(periods []EntryPeriod, v EntryView, today time.Time) string {
	current := EntryKey(today, v)
	if v == ViewDay {
		return current
	}
	for _, p := range periods {
		if p.Key == current {
			return current
		}
	}
	if len(periods) > 0 {
		return periods[0].Key
	}
	return ""
}

// Entries returns the ledger rows of one group, omitting goal transfers.
func Entries(ledger []model.Transaction, v EntryView, key string) []model.Transaction {
	var out []model.Transaction
	for _, t := range ledger {
		if t.Date.IsZero() || t.IsSavingTransfer() {
			continue
		}
		if EntryKey(t.Date, v) == key {
			out = append(out, t)
		}
	}
	return out
}

// CategoryOptions returns the categories offered when adding a transaction:
// the built-in ones except Fixed Expense plus any custom category already
// used. Goal transfers are not offered.
func CategoryOptions(txns []model.Transaction) []string {
	set := make(map[string]struct{})
	for _, c := range model.CanonicalCategories {
		if c != model.CategoryFixedExpense {
			set[c] = struct{}{}
		}
	}
	for _, t := range txns {
		c := strings.TrimSpace(t.Category)
		if c == "" || c == model.CategoryFixedExpense || t.IsSavingTransfer() {
			continue
		}
		set[c] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
