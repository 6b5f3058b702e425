package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as a row of block characters scaled to the peak.
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
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(len(sparkBlocks)-1, idx))
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// BarChart renders a vertical bar chart with a labeled Y axis. labels, when
// given, must be as long as values. Narrow or short areas fall back to a
// sparkline. A positive target draws a dashed reference line.
func BarChart(values []float64, labels []string, target float64, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := target
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	step := chartTickStep(peak)
	for math.Ceil(peak/step) > float64(max(2, height/2)) {
		step *= 2
	}
	intervals := max(1, int(math.Ceil(peak/step)))
	ceiling := step * float64(intervals)
	rowsPerTick := max(2, height/intervals)
	chartH := rowsPerTick * intervals

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	chartW := max(5, width-yLabelW-1)

	values, labels = fitBars(values, labels, chartW)
	n := len(values)
	gap := 1
	if n == 1 {
		gap = 0
	}
	barW := min(6, max(1, (chartW-(n-1)*gap)/n))
	axisLen := n*barW + (n-1)*gap

	surface := lipgloss.NewStyle().Background(t.Surface)
	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	ref := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)
	eighths := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	targetRow := -1
	if target > 0 {
		targetRow = int(math.Round(target / ceiling * float64(chartH)))
	}

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		label := ""
		if row%rowsPerTick == 0 {
			label = formatChartLabel(step * float64(row/rowsPerTick))
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, v := range values {
			if i > 0 {
				b.WriteString(surface.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= top:
				b.WriteString(bar.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := max(1, min(8, int((v-bottom)/(top-bottom)*8)))
				b.WriteString(bar.Render(strings.Repeat(string(eighths[idx]), barW)))
			case row == targetRow:
				b.WriteString(ref.Render(strings.Repeat("╌", barW)))
			default:
				b.WriteString(surface.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(surface.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axis.Render(strings.TrimRight(placeLabels(labels, barW+gap, axisLen), " ")))
	}
	return b.String()
}

// fitBars downsamples so every bar gets at least one column plus a gap.
func fitBars(values []float64, labels []string, chartW int) ([]float64, []string) {
	n := len(values)
	maxN := max(2, (chartW+1)/2)
	if n <= maxN {
		return values, labels
	}
	sv := make([]float64, maxN)
	var sl []string
	if len(labels) == n {
		sl = make([]string, maxN)
	}
	for i := range sv {
		src := i * (n - 1) / (maxN - 1)
		sv[i] = values[src]
		if sl != nil {
			sl[i] = labels[src]
		}
	}
	return sv, sl
}

// placeLabels lays labels out under their bars, skipping any that would
// collide with the previous one.
func placeLabels(labels []string, pitch, axisLen int) string {
	buf := []rune(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		pos := i * pitch
		r := []rune(lbl)
		if pos <= lastEnd || pos+len(r) > axisLen {
			continue
		}
		copy(buf[pos:], r)
		lastEnd = pos + len(r)
	}
	return string(buf)
}

// chartTickStep picks a 1/2/5 interval giving about five ticks.
func chartTickStep(peak float64) float64 {
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

func formatChartLabel(v float64) string {
	trim := func(x float64, suffix string) string {
		if x == math.Trunc(x) {
			return fmt.Sprintf("%.0f%s", x, suffix)
		}
		return fmt.Sprintf("%.1f%s", x, suffix)
	}
	switch {
	case v >= 1e6:
		return trim(v/1e6, "M")
	case v >= 1e3:
		return trim(v/1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
