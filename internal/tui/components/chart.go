package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as one line of block characters.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * 7)
		buf.WriteRune(blocks[1+min(max(idx, 0), 7)])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// yScale is the vertical layout of a bar chart.
type yScale struct {
	ceiling     float64
	rowsPerTick int
	intervals   int
}

func (s yScale) rows() int { return s.rowsPerTick * s.intervals }

func newYScale(peak float64, height int) yScale {
	step := ChartTickStep(peak)
	limit := max(height/2, 2)
	for int(math.Ceil(peak/step)) > limit {
		step *= 2
	}
	ceiling := math.Ceil(peak/step) * step
	n := max(int(math.Round(ceiling/step)), 1)
	return yScale{ceiling: ceiling, rowsPerTick: max(height/n, 2), intervals: n}
}

// BarChart renders a vertical bar chart with a money axis. Labels, when
// given, must match values one to one.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}
	sc := newYScale(peak, height)
	step := sc.ceiling / float64(sc.intervals)

	yLabelW := max(len(FormatAxis(sc.ceiling))+1, 4)
	chartW := max(width-yLabelW-1, 5)

	n := len(values)
	gap := 1
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else {
		gap = 0
	}
	if barW < 2 && n > 1 {
		values, labels = sample(values, labels, max((chartW+1)/3, 2))
		n = len(values)
		barW = 2
	}
	barW = min(barW, 6)
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var b strings.Builder
	chartH := sc.rows()
	for row := chartH; row >= 1; row-- {
		top := sc.ceiling * float64(row) / float64(chartH)
		bottom := sc.ceiling * float64(row-1) / float64(chartH)

		label := ""
		if row%sc.rowsPerTick == 0 {
			label = FormatAxis(step * float64(row/sc.rowsPerTick))
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := min(max(int((v-bottom)/(top-bottom)*8), 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└", yLabelW, "0") + strings.Repeat("─", axisLen)))
	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(xAxis(labels, barW, gap, axisLen)))
	}
	return b.String()
}

func sample(values []float64, labels []string, n int) ([]float64, []string) {
	out := make([]float64, n)
	var outLabels []string
	if len(labels) == len(values) {
		outLabels = make([]string, n)
	}
	for i := range out {
		src := i * (len(values) - 1) / (n - 1)
		out[i] = values[src]
		if outLabels != nil {
			outLabels[i] = labels[src]
		}
	}
	return out, outLabels
}

// xAxis lays labels under their bars, skipping any that would overlap.
func xAxis(labels []string, barW, gap, axisLen int) string {
	buf := []rune(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		pos := i * (barW + gap)
		r := []rune(lbl)
		if pos <= lastEnd || pos+len(r) > axisLen {
			continue
		}
		copy(buf[pos:], r)
		lastEnd = pos + len(r)
	}
	return strings.TrimRight(string(buf), " ")
}

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	Note  string // shown after the bar, e.g. a percentage
}

// HBarChart renders labelled horizontal bars scaled to the largest value.
func HBarChart(bars []Bar, color lipgloss.Color, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, noteW, peak := 0, 0, 0.0
	for _, br := range bars {
		labelW = max(labelW, lipgloss.Width(br.Label))
		noteW = max(noteW, lipgloss.Width(br.Note))
		peak = max(peak, br.Value)
	}
	barMax := max(width-labelW-noteW-3, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	lines := make([]string, len(bars))
	for i, br := range bars {
		n := 0
		if peak > 0 {
			n = int(br.Value / peak * float64(barMax))
		}
		pad := strings.Repeat(" ", labelW-lipgloss.Width(br.Label))
		lines[i] = labelStyle.Render(br.Label+pad+" ") +
			barStyle.Render(strings.Repeat("█", n)+strings.Repeat(" ", barMax-n)) +
			noteStyle.Render(" "+br.Note)
	}
	return strings.Join(lines, "\n")
}

// ChartTickStep picks a round tick interval giving about five ticks.
func ChartTickStep(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	rough := peak / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// FormatAxis abbreviates an axis value, e.g. 15000 as "15k".
func FormatAxis(v float64) string {
	for _, u := range []struct {
		div    float64
		suffix string
	}{{1e6, "M"}, {1e3, "k"}} {
		if v >= u.div {
			if v == math.Trunc(v/u.div)*u.div {
				return fmt.Sprintf("%.0f%s", v/u.div, u.suffix)
			}
			return fmt.Sprintf("%.1f%s", v/u.div, u.suffix)
		}
	}
	if v >= 1 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
