package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	costStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	accentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	overStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output. The first column is
// left-aligned, the rest right-aligned. A row holding the single cell "---"
// renders as a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  []string // optional totals row under a separator
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	// Cells may carry ANSI styling or multi-byte currency signs, so widths
	// are measured as displayed.
	widths := make([]int, numCols)
	measure := func(row []string) {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	measure(t.Footer)

	rule := func(left, mid, right string) string {
		parts := make([]string, numCols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
	}
	line := func(row []string, style lipgloss.Style, leftAll bool) string {
		var b strings.Builder
		sep := dimStyle.Render("│")
		b.WriteString(sep)
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			gap := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 || leftAll {
				cell += gap
			} else {
				cell = gap + cell
			}
			b.WriteString(style.Render(" " + cell + " "))
			b.WriteString(sep)
		}
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, headerStyle, true))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, valueStyle, false))
	}
	if len(t.Footer) > 0 {
		b.WriteString(rule("├", "┼", "┤"))
		b.WriteString(line(t.Footer, headerStyle, false))
	}
	b.WriteString(rule("╰", "┴", "╯"))

	return b.String()
}

// RenderUsageBar renders spend against a target as a bar with the amounts,
// in red once the target is passed.
func RenderUsageBar(current, target float64, width int, c model.Currency) string {
	if width <= 0 {
		width = 20
	}
	base := target
	if base == 0 {
		base = 1
	}
	pct := math.Max(0, math.Min(1, current/base))

	filled := int(pct * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := costStyle
	if current > target {
		style = overStyle
	}
	return fmt.Sprintf("[%s] %s / %s",
		style.Render(bar),
		FormatMoney(current, c),
		FormatMoney(target, c),
	)
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = max(0, min(len(blocks)-1, idx))
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders one labeled bar of a horizontal bar chart.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	barLen := 0
	if maxValue > 0 {
		barLen = int(value / maxValue * float64(maxWidth))
	}
	barLen = max(0, min(maxWidth, barLen))
	return fmt.Sprintf("  %-8s %s", label, accentStyle.Render(strings.Repeat("█", barLen)))
}

// RenderStatus colors a spend status or variance label.
func RenderStatus(status string, good bool) string {
	if good {
		return costStyle.Render(status)
	}
	return overStyle.Render(status)
}

// CategoryColor returns the display color for an expense category.
func CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.CategoryNeed:
		return ColorBlue
	case model.CategoryWant:
		return ColorPurple
	case model.CategoryExcess:
		return ColorOrange
	case model.CategorySaving:
		return ColorGreen
	}
	return ColorTextMuted
}

// RenderCategory renders a category name in its color.
func RenderCategory(c model.Category) string {
	return RenderCategoryLabel(c, string(c))
}

// RenderCategoryLabel renders label in the color of category c.
func RenderCategoryLabel(c model.Category, label string) string {
	return lipgloss.NewStyle().Foreground(CategoryColor(c)).Render(label)
}
