package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metrics holds the headline numbers of the dashboard.
type Metrics struct {
	Income              decimal.Decimal
	Expense             decimal.Decimal
	Balance             decimal.Decimal
	TotalFixed          decimal.Decimal
	RemainingAfterFixed decimal.Decimal
	SuggestedDaily      decimal.Decimal
	DaysUntilPayday     int
	PaydayTarget        time.Time
}

// CategoryShare is one slice of the expense distribution.
type CategoryShare struct {
	Category     string
	Total        decimal.Decimal
	SharePercent float64
}

// SpendingPoint is one bucket of the spending-over-time series.
type SpendingPoint struct {
	Label string
	Start time.Time
	Total decimal.Decimal
}

// Advice is the coarse health verdict shown under the metrics.
type Advice int

const (
	AdviceHealthy Advice = iota
	AdviceHighExpenseRatio
	AdviceOverspending
)

// PlanSummary totals one plan month.
type PlanSummary struct {
	Income    decimal.Decimal
	Expense   decimal.Decimal
	Paid      decimal.Decimal
	Unpaid    decimal.Decimal
	Net       decimal.Decimal
	Items     int
	PaidItems int
}
