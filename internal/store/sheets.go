package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultTransactionsTab is the tab holding transactions in a spreadsheet
// created by hand: the first sheet keeps its default name.
const DefaultTransactionsTab = "Sheet1"

// Sheets stores each table as one tab of a Google Sheets spreadsheet.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	tabs          map[string]string

	mu    sync.Mutex
	ready map[string]bool
}

// OpenSheets authenticates with a service-account credentials file. When
// credentialsFile is empty, application default credentials are used.
func OpenSheets(ctx context.Context, spreadsheetID, credentialsFile string, tabs map[string]string) (*Sheets, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	names := map[string]string{Transactions.Name: DefaultTransactionsTab}
	for k, v := range tabs {
		if v != "" {
			names[k] = v
		}
	}
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID, tabs: names, ready: make(map[string]bool)}, nil
}

// Close is a no-op; the HTTP client needs no teardown.
func (s *Sheets) Close() error { return nil }

func (s *Sheets) tab(t Table) string {
	if name, ok := s.tabs[t.Name]; ok {
		return name
	}
	return t.Name
}

func a1(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

// ensureTab creates the tab with its header row when the spreadsheet does
// not have it yet.
func (s *Sheets) ensureTab(ctx context.Context, t Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab := s.tab(t)
	if s.ready[tab] {
		return nil
	}

	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tab {
			s.ready[tab] = true
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: tab}},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("creating tab %s: %w", tab, err)
	}
	header := &sheets.ValueRange{Values: [][]any{toCells(t.Header)}}
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, a1(tab)+"!A1", header).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("writing header of %s: %w", tab, err)
	}
	s.ready[tab] = true
	return nil
}

func toCells(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// ReadAll returns the data rows of t, skipping the header row.
func (s *Sheets) ReadAll(ctx context.Context, t Table) ([][]string, error) {
	if err := s.ensureTab(ctx, t); err != nil {
		return nil, err
	}
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, a1(s.tab(t))).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", t.Name, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make([]string, len(t.Header))
		for i := 0; i < len(row) && i < len(raw); i++ {
			row[i] = fmt.Sprint(raw[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends one row below the last data row.
func (s *Sheets) AppendRow(ctx context.Context, t Table, row []string) error {
	if err := s.ensureTab(ctx, t); err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: [][]any{toCells(normalize(row, len(t.Header)))}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, a1(s.tab(t))+"!A1", vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending to %s: %w", t.Name, err)
	}
	return nil
}

// ClearAndRewrite clears the tab and writes the header followed by rows.
func (s *Sheets) ClearAndRewrite(ctx context.Context, t Table, rows [][]string) error {
	if err := s.ensureTab(ctx, t); err != nil {
		return err
	}
	tab := a1(s.tab(t))
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, tab, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clearing %s: %w", t.Name, err)
	}

	values := make([][]any, 0, len(rows)+1)
	values = append(values, toCells(t.Header))
	for _, r := range rows {
		values = append(values, toCells(normalize(r, len(t.Header))))
	}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, tab+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("rewriting %s: %w", t.Name, err)
	}
	return nil
}
