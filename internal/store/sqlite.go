package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite keeps the tables in a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(dbPath string) (*SQLite, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func quotedColumns(t Table) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = `"` + c + `"`
	}
	return strings.Join(cols, ", ")
}

func placeholders(n int, dollar bool) string {
	ph := make([]string, n)
	for i := range ph {
		if dollar {
			ph[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ph[i] = "?"
		}
	}
	return strings.Join(ph, ", ")
}

func insertSQL(t Table, dollar bool) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.SQLName, quotedColumns(t), placeholders(len(t.Columns), dollar))
}

func args(row []string, width int) []any {
	row = normalize(row, width)
	out := make([]any, width)
	for i, v := range row {
		out[i] = v
	}
	return out
}

// ReadAll returns every row of t in insertion order.
func (s *SQLite) ReadAll(ctx context.Context, t Table) ([][]string, error) {
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY row_id", quotedColumns(t), t.SQLName)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", t.Name, err)
	}
	defer func() { _ = rows.Close() }()

	var result [][]string
	for rows.Next() {
		cells := make([]string, len(t.Columns))
		ptrs := make([]any, len(cells))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("reading %s: %w", t.Name, err)
		}
		result = append(result, cells)
	}
	return result, rows.Err()
}

// AppendRow inserts one row at the end of t.
func (s *SQLite) AppendRow(ctx context.Context, t Table, row []string) error {
	if _, err := s.db.ExecContext(ctx, insertSQL(t, false), args(row, len(t.Columns))...); err != nil {
		return fmt.Errorf("appending to %s: %w", t.Name, err)
	}
	return nil
}

// ClearAndRewrite replaces the contents of t in a single transaction.
func (s *SQLite) ClearAndRewrite(ctx context.Context, t Table, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.SQLName); err != nil {
		return fmt.Errorf("clearing %s: %w", t.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(t, false))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, args(r, len(t.Columns))...); err != nil {
			return fmt.Errorf("rewriting %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

// RowCount returns the number of rows in t.
func (s *SQLite) RowCount(ctx context.Context, t Table) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.SQLName).Scan(&n)
	return n, err
}
