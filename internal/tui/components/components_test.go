package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests.
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	if len(got) != 3 || got[0] != 4 || got[1] != 3 || got[2] != 3 {
		t.Fatalf("LayoutRow(10, 3) = %v, want [4 3 3]", got)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(10, 0) should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4", 22)
	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Fatalf("line %d width = %d, want %d", i, w, want)
		}
		if i >= shortLines && !strings.Contains(line, "\x1b[") {
			t.Fatalf("padding line %d has no styling: %q", i, line)
		}
	}
}

func TestTabAtMatchesRenderedWidths(t *testing.T) {
	labels := []string{TabLabel("Overview", "o"), TabLabel("รายการ", "e"), TabLabel("Plan", "p")}
	bar := RenderTabBar(labels, 1, 0)
	if got, want := lipgloss.Width(bar), TabVisualWidth(labels[0])+TabVisualWidth(labels[1])+TabVisualWidth(labels[2])+2; got != want {
		t.Fatalf("tab bar width = %d, want %d", got, want)
	}

	pos := 0
	for i, l := range labels {
		w := TabVisualWidth(l)
		if got := TabAt(labels, pos+w/2); got != i {
			t.Fatalf("TabAt(mid of %d) = %d", i, got)
		}
		pos += w
		if got := TabAt(labels, pos); i < len(labels)-1 && got != -1 {
			t.Fatalf("TabAt(separator after %d) = %d, want -1", i, got)
		}
		pos++
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		peak, want float64
	}{
		{0, 1},
		{50, 10},
		{15000, 2000},
		{21500, 5000},
	}
	for _, tt := range tests {
		if got := ChartTickStep(tt.peak); got != tt.want {
			t.Fatalf("ChartTickStep(%v) = %v, want %v", tt.peak, got, tt.want)
		}
	}
}

func TestFormatAxis(t *testing.T) {
	tests := map[float64]string{
		15000:   "15k",
		1500:    "1.5k",
		2000000: "2M",
		250:     "250",
		0.5:     "0.50",
	}
	for v, want := range tests {
		if got := FormatAxis(v); got != want {
			t.Fatalf("FormatAxis(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestBarChartHeight(t *testing.T) {
	out := BarChart([]float64{100, 400, 250}, []string{"Jan", "Feb", "Mar"}, theme.Active.Expense, 40, 8)
	lines := strings.Split(out, "\n")
	// bars, x axis, labels
	if len(lines) < 4 {
		t.Fatalf("chart has %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[len(lines)-1], "Jan") {
		t.Fatalf("last line %q missing labels", lines[len(lines)-1])
	}
}

func TestHBarChartScalesToPeak(t *testing.T) {
	out := HBarChart([]Bar{{Label: "Food", Value: 100, Note: "66.7%"}, {Label: "Travel", Value: 50, Note: "33.3%"}}, theme.Active.Expense, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	full := strings.Count(lines[0], "█")
	half := strings.Count(lines[1], "█")
	if full != 2*half {
		t.Fatalf("bar lengths %d and %d, want 2:1", full, half)
	}
}
