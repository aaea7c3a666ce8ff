package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

// listTable is a cursor-driven table drawn inside a card.
type listTable struct {
	headers   []string
	rows      [][]string
	colors    []lipgloss.Color // per row value color; empty uses primary text
	rightCols map[int]bool
	flex      int // column that shrinks when the table is too wide
	cursor    int
	height    int // visible rows, 0 for all
}

func (l listTable) render(width int) string {
	t := theme.Active

	widths := make([]int, len(l.headers))
	for i, h := range l.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range l.rows {
		for i, c := range r {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	if over := total - width; over > 0 && l.flex < len(widths) {
		widths[l.flex] = max(widths[l.flex]-over, 4)
	}

	cell := func(s string, i int) string {
		s = truncateCell(s, widths[i])
		pad := strings.Repeat(" ", max(widths[i]-lipgloss.Width(s), 0))
		if l.rightCols[i] {
			return pad + s
		}
		return s + pad
	}
	line := func(cols []string) string {
		out := make([]string, len(cols))
		for i, c := range cols {
			out[i] = cell(c, i)
		}
		return strings.Join(out, " ")
	}

	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	var b strings.Builder
	b.WriteString(head.Render(line(l.headers)))

	start, end := window(len(l.rows), l.cursor, l.height)
	for i := start; i < end; i++ {
		color := t.TextPrimary
		if i < len(l.colors) && l.colors[i] != "" {
			color = l.colors[i]
		}
		st := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
		if i == l.cursor {
			st = st.Background(t.SurfaceHover).Bold(true)
		}
		b.WriteString("\n" + st.Render(line(l.rows[i])))
	}
	return b.String()
}

func truncateCell(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
