package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps the tables in a PostgreSQL database.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and creates the schema if needed.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("postgres url is empty")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// ReadAll returns every row of t in insertion order.
func (p *Postgres) ReadAll(ctx context.Context, t Table) ([][]string, error) {
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY row_id", quotedColumns(t), t.SQLName)
	rows, err := p.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", t.Name, err)
	}
	defer rows.Close()

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
func (p *Postgres) AppendRow(ctx context.Context, t Table, row []string) error {
	if _, err := p.pool.Exec(ctx, insertSQL(t, true), args(row, len(t.Columns))...); err != nil {
		return fmt.Errorf("appending to %s: %w", t.Name, err)
	}
	return nil
}

// ClearAndRewrite replaces the contents of t in one transaction, bulk
// loading the new rows with COPY.
func (p *Postgres) ClearAndRewrite(ctx context.Context, t Table, rows [][]string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM "+t.SQLName); err != nil {
		return fmt.Errorf("clearing %s: %w", t.Name, err)
	}

	src := make([][]any, len(rows))
	for i, r := range rows {
		src[i] = args(r, len(t.Columns))
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{t.SQLName}, t.Columns, pgx.CopyFromRows(src)); err != nil {
		return fmt.Errorf("rewriting %s: %w", t.Name, err)
	}
	return tx.Commit(ctx)
}
