package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/model"
)

// Period selects the slice of the ledger shown in the charts.
type Period int

const (
	PeriodCurrentMonth Period = iota
	PeriodLast3Months
	PeriodCurrentYear
	PeriodAllTime
)

// Periods lists every chart period in display order.
var Periods = []Period{PeriodCurrentMonth, PeriodLast3Months, PeriodCurrentYear, PeriodAllTime}

func (p Period) String() string {
	switch p {
	case PeriodCurrentMonth:
		return "Current Month"
	case PeriodLast3Months:
		return "Last 3 Months"
	case PeriodCurrentYear:
		return "Current Year"
	default:
		return "All Time"
	}
}

// ParsePeriod accepts the display name or a short slug such as "month" or "3m".
func ParsePeriod(s string) (Period, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current month", "month", "current-month":
		return PeriodCurrentMonth, true
	case "last 3 months", "3m", "last-3-months", "quarter":
		return PeriodLast3Months, true
	case "current year", "year", "current-year":
		return PeriodCurrentYear, true
	case "all time", "all", "all-time", "":
		return PeriodAllTime, true
	}
	return PeriodAllTime, false
}

// FilterByPeriod returns the transactions that fall within the period
// relative to today. "Last 3 Months" means the trailing 90 days.
func FilterByPeriod(ledger []model.Transaction, p Period, today time.Time) []model.Transaction {
	if p == PeriodAllTime {
		return ledger
	}
	d := model.Day(today)
	var result []model.Transaction
	for _, t := range ledger {
		if t.Date.IsZero() {
			continue
		}
		td := model.Day(t.Date)
		keep := false
		switch p {
		case PeriodCurrentMonth:
			keep = td.Year() == d.Year() && td.Month() == d.Month()
		case PeriodLast3Months:
			keep = !td.Before(d.AddDate(0, 0, -90))
		case PeriodCurrentYear:
			keep = td.Year() == d.Year()
		}
		if keep {
			result = append(result, t)
		}
	}
	return result
}

// Granularity is the bucket width of the spending-over-time series.
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
	Yearly
)

// Granularities lists every bucket width in display order.
var Granularities = []Granularity{Daily, Weekly, Monthly, Yearly}

func (g Granularity) String() string {
	switch g {
	case Weekly:
		return "Weekly"
	case Monthly:
		return "Monthly"
	case Yearly:
		return "Yearly"
	default:
		return "Daily"
	}
}

// ParseGranularity accepts names like "daily" or "week".
func ParseGranularity(s string) (Granularity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "":
		return Daily, true
	case "weekly", "week":
		return Weekly, true
	case "monthly", "month":
		return Monthly, true
	case "yearly", "year":
		return Yearly, true
	}
	return Daily, false
}

// WeekLabel formats t as YYYY-Www using Sunday-first week numbers, where
// days before the year's first Sunday belong to week 00.
func WeekLabel(t time.Time) string {
	return fmt.Sprintf("%d-W%02d", t.Year(), sundayWeek(t))
}

func sundayWeek(t time.Time) int {
	return (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
}

// bucketStart returns the first day of the bucket containing t. Weekly
// buckets start on Monday.
func bucketStart(t time.Time, g Granularity) time.Time {
	d := model.Day(t)
	switch g {
	case Weekly:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case Monthly:
		return model.MonthStart(d)
	case Yearly:
		return time.Date(d.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

func bucketLabel(start time.Time, g Granularity) string {
	switch g {
	case Weekly:
		return WeekLabel(start)
	case Monthly:
		return start.Format("January 2006")
	case Yearly:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}

// SpendingOverTime totals expenses into chronological buckets.
func SpendingOverTime(ledger []model.Transaction, g Granularity) []model.SpendingPoint {
	byStart := make(map[time.Time]decimal.Decimal)
	for _, t := range ledger {
		if t.Kind != model.KindExpense || t.Date.IsZero() {
			continue
		}
		s := bucketStart(t.Date, g)
		byStart[s] = byStart[s].Add(t.Amount)
	}

	points := make([]model.SpendingPoint, 0, len(byStart))
	for s, total := range byStart {
		points = append(points, model.SpendingPoint{Label: bucketLabel(s, g), Start: s, Total: total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Start.Before(points[j].Start)
	})
	return points
}
