package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetboard/internal/locale"
)

func TestRenderTable_AlignsThaiCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"หมวดหมู่", "Amount"},
		Rows: [][]string{
			{"อาหาร", "฿120.00"},
			{"---"},
			{"Others", "฿1,000.00"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines = %d, want 7:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Fatalf("line %d width = %d, want %d:\n%s", i, w, want, out)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestFormatDelta(t *testing.T) {
	tr := locale.New(locale.English)
	if got := FormatDelta(tr, decimal.NewFromInt(1500)); got != "+฿1,500.00" {
		t.Fatalf("FormatDelta(1500) = %q", got)
	}
	if got := FormatDelta(tr, decimal.NewFromInt(-20)); got != "-฿20.00" {
		t.Fatalf("FormatDelta(-20) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"groceries", 20, "groceries"},
		{"groceries", 5, "groc…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 7, 14}); got != "▁▄█" {
		t.Fatalf("RenderSparkline = %q, want ▁▄█", got)
	}
}
