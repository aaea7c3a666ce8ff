package store

import (
	"context"
	"sync"
)

// Memory is an in-process RecordStore used for demos and tests.
type Memory struct {
	mu     sync.Mutex
	tables map[string][][]string
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string][][]string)}
}

func copyRows(rows [][]string, width int) [][]string {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = normalize(r, width)
	}
	return out
}

// ReadAll returns a copy of the rows of t.
func (m *Memory) ReadAll(_ context.Context, t Table) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyRows(m.tables[t.Name], len(t.Header)), nil
}

// AppendRow appends a copy of row.
func (m *Memory) AppendRow(_ context.Context, t Table, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[t.Name] = append(m.tables[t.Name], normalize(row, len(t.Header)))
	return nil
}

// ClearAndRewrite replaces the rows of t.
func (m *Memory) ClearAndRewrite(_ context.Context, t Table, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[t.Name] = copyRows(rows, len(t.Header))
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
