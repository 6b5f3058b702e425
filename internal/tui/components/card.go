// Package components provides reusable widgets for the ratio dashboard.
package components

import (
	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one tile in a MetricCardRow. An empty Color uses the primary
// text color.
type Metric struct {
	Label string
	Value string
	Note  string
	Color lipgloss.Color
}

// LayoutRow splits totalWidth into n widths summing to exactly totalWidth.
// The first items take the remainder.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base, rem := totalWidth/n, totalWidth%n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < rem {
			widths[i]++
		}
	}
	return widths
}

func cardStyle(outerWidth int, border lipgloss.Color) lipgloss.Style {
	inner := outerWidth - 2
	if inner < 10 {
		inner = 10
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(theme.Active.Background).
		Background(theme.Active.Surface).
		Width(inner).
		Padding(0, 1)
}

// MetricCard renders a labeled value with an optional note line.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active

	color := m.Color
	if color == "" {
		color = t.TextPrimary
	}
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	note := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	body := label.Render(m.Label) + "\n" + value.Render(m.Value)
	if m.Note != "" {
		body += "\n" + note.Render(m.Note)
	}
	return cardStyle(outerWidth, t.Border).Render(body)
}

// MetricCardRow renders metric cards side by side across totalWidth.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = MetricCard(m, widths[i])
	}
	return CardRow(cards)
}

// ContentCard renders a bordered card with an optional title.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	content := body
	if title != "" {
		titleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
		content = titleStyle.Render(title) + "\n" + body
	}
	return cardStyle(outerWidth, t.Border).Render(content)
}

// CardRow joins rendered cards horizontally. Shorter cards are padded with
// the surface color so the row has no unstyled gaps.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	tallest := 0
	for _, c := range cards {
		tallest = max(tallest, lipgloss.Height(c))
	}
	padded := make([]string, len(cards))
	for i, c := range cards {
		padded[i] = lipgloss.PlaceVertical(tallest, lipgloss.Top, c,
			lipgloss.WithWhitespaceBackground(theme.Active.Background))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth is the usable text width inside a card of outerWidth.
func CardInnerWidth(outerWidth int) int {
	return max(10, outerWidth-4)
}
