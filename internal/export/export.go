// Package export writes the budget tables as Excel workbooks, locally or to
// a Cloud Storage bucket.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/budgetboard/internal/locale"
	"github.com/theirongolddev/budgetboard/internal/session"
	"github.com/theirongolddev/budgetboard/internal/store"
)

// Workbook names one exported file.
type Workbook struct {
	FileName string
	Table    store.Table
}

// Workbooks lists every export in a stable order.
var Workbooks = []Workbook{
	{FileName: "budget_data.xlsx", Table: store.Transactions},
	{FileName: "fixed_expenses.xlsx", Table: store.FixedExpenses},
	{FileName: "saving_goals.xlsx", Table: store.SavingGoals},
	{FileName: "monthly_plans.xlsx", Table: store.MonthlyPlans},
}

// ForTable returns the workbook of t.
func ForTable(t store.Table) (Workbook, error) {
	for _, wb := range Workbooks {
		if wb.Table.Name == t.Name {
			return wb, nil
		}
	}
	return Workbook{}, fmt.Errorf("%w: %q", store.ErrUnknownTable, t.Name)
}

func dateCell(d time.Time) any {
	if d.IsZero() {
		return nil
	}
	return d.Format("2006-01-02")
}

// rows renders the table as display rows, translating type and category
// labels. Amounts stay numeric so the sheet can sum them.
func rows(t store.Table, s *session.Snapshot, tr *locale.Translator) ([]string, [][]any) {
	var (
		header []string
		out    [][]any
	)
	switch t.Name {
	case store.Transactions.Name:
		header = []string{tr.T("Date"), tr.T("Type"), tr.T("Category"), tr.T("Amount"), tr.T("Note")}
		for _, x := range s.Transactions {
			out = append(out, []any{dateCell(x.Date), tr.Kind(x.Kind), tr.Category(x.Category), x.Amount.InexactFloat64(), x.Note})
		}
	case store.FixedExpenses.Name:
		header = []string{tr.T("Name"), tr.T("Amount")}
		for _, f := range s.Fixed {
			out = append(out, []any{f.Name, f.Amount.InexactFloat64()})
		}
	case store.SavingGoals.Name:
		header = []string{tr.T("Name"), tr.T("Target"), tr.T("Emoji"), tr.T("Saved"), tr.T("Target Date"), tr.T("Frequency"), tr.T("Required/Freq")}
		for _, g := range s.Goals {
			out = append(out, []any{
				g.Name, g.TargetAmount.InexactFloat64(), g.Emoji, g.CurrentSaved.InexactFloat64(),
				dateCell(g.TargetDate), tr.T(string(g.Frequency)), g.RequiredPerFrequency.InexactFloat64(),
			})
		}
	case store.MonthlyPlans.Name:
		header = []string{tr.T("Month"), tr.T("Type"), tr.T("Name"), tr.T("Amount"), tr.T("Category"), tr.T("Paid"), tr.T("Date Paid")}
		for _, it := range s.Plans {
			out = append(out, []any{
				tr.MonthYear(it.Month), tr.Kind(it.Type), it.Name, it.Amount.InexactFloat64(),
				tr.Category(it.Category), it.IsPaid, dateCell(it.DatePaid),
			})
		}
	}
	return header, out
}

// Build renders one table into a new workbook. The caller closes it.
func Build(t store.Table, s *session.Snapshot, tr *locale.Translator) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := t.Name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header, data := rows(t, s, tr)
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		_ = f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheet, "A1", last, bold)
	}

	for i, r := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// Write renders one table and writes the xlsx bytes to w.
func Write(w io.Writer, t store.Table, s *session.Snapshot, tr *locale.Translator) error {
	f, err := Build(t, s, tr)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = f.WriteTo(w)
	return err
}

// ToDir writes every workbook into dir and returns the written paths.
func ToDir(dir string, s *session.Snapshot, tr *locale.Translator) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}
	var paths []string
	for _, wb := range Workbooks {
		var buf bytes.Buffer
		if err := Write(&buf, wb.Table, s, tr); err != nil {
			return paths, fmt.Errorf("exporting %s: %w", wb.FileName, err)
		}
		p := filepath.Join(dir, wb.FileName)
		if err := os.WriteFile(p, buf.Bytes(), 0o600); err != nil {
			return paths, fmt.Errorf("writing %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// ToBucket uploads every workbook through up and returns the object URIs.
func ToBucket(ctx context.Context, up Uploader, s *session.Snapshot, tr *locale.Translator) ([]string, error) {
	var uris []string
	for _, wb := range Workbooks {
		var buf bytes.Buffer
		if err := Write(&buf, wb.Table, s, tr); err != nil {
			return uris, fmt.Errorf("exporting %s: %w", wb.FileName, err)
		}
		uri, err := up.Upload(ctx, wb.FileName, &buf)
		if err != nil {
			return uris, err
		}
		uris = append(uris, uri)
	}
	return uris, nil
}
