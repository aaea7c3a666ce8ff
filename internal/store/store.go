// Package store persists the four budget tables behind a tabular
// RecordStore interface with Google Sheets, SQLite, Postgres and in-memory
// backends.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTable is returned for a table name that is not one of Tables.
var ErrUnknownTable = errors.New("unknown table")

// Table describes one logical table. Header is the fixed column order of
// every row; Columns are the matching SQL column names.
type Table struct {
	Name    string
	SQLName string
	Header  []string
	Columns []string
}

// The four budget tables.
var (
	Transactions = Table{
		Name:    "Transactions",
		SQLName: "transactions",
		Header:  []string{"Date", "Type", "Category", "Amount", "Note"},
		Columns: []string{"date", "type", "category", "amount", "note"},
	}
	FixedExpenses = Table{
		Name:    "FixedExpenses",
		SQLName: "fixed_expenses",
		Header:  []string{"Name", "Amount"},
		Columns: []string{"name", "amount"},
	}
	SavingGoals = Table{
		Name:    "SavingGoals",
		SQLName: "saving_goals",
		Header:  []string{"GoalName", "GoalAmount", "Emoji", "CurrentSaved", "TargetDate", "SavingFrequency", "SavingAmountPerFreq"},
		Columns: []string{"goal_name", "goal_amount", "emoji", "current_saved", "target_date", "saving_frequency", "saving_amount_per_freq"},
	}
	MonthlyPlans = Table{
		Name:    "MonthlyPlans",
		SQLName: "monthly_plans",
		Header:  []string{"MonthYear", "ItemType", "ItemName", "Amount", "Category", "IsPaid", "DatePaid", "ItemID"},
		Columns: []string{"month_year", "item_type", "item_name", "amount", "category", "is_paid", "date_paid", "item_id"},
	}
)

// Tables lists every table in load order.
var Tables = []Table{Transactions, FixedExpenses, SavingGoals, MonthlyPlans}

// TableByName looks a table up case-insensitively by Name or SQLName.
func TableByName(name string) (Table, error) {
	for _, t := range Tables {
		if strings.EqualFold(t.Name, name) || strings.EqualFold(t.SQLName, name) {
			return t, nil
		}
	}
	return Table{}, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

// RecordStore is a remote tabular store addressed by table. Rows are cell
// strings in Header order; the header itself is never returned.
type RecordStore interface {
	ReadAll(ctx context.Context, t Table) ([][]string, error)
	AppendRow(ctx context.Context, t Table, row []string) error
	ClearAndRewrite(ctx context.Context, t Table, rows [][]string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSheets   = "sheets"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string

	SQLitePath  string
	PostgresURL string

	SpreadsheetID   string
	CredentialsFile string
	// TabNames overrides the sheet tab used for a table, keyed by Table.Name.
	TabNames map[string]string
}

// Open connects to the configured backend.
func Open(ctx context.Context, opts Options) (RecordStore, error) {
	switch strings.ToLower(opts.Backend) {
	case BackendSheets:
		return OpenSheets(ctx, opts.SpreadsheetID, opts.CredentialsFile, opts.TabNames)
	case BackendSQLite, "":
		return OpenSQLite(opts.SQLitePath)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.PostgresURL)
	case BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
}

// normalize pads or truncates row to width cells.
func normalize(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
