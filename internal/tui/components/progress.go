package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForUsage picks the bar color for a bucket that is fill of the way to
// its target. Passing the target is always Bad.
func ColorForUsage(fill float64, over bool) lipgloss.Color {
	t := theme.Active
	switch {
	case over:
		return t.Bad
	case fill >= 0.9:
		return t.Warn
	default:
		return t.Good
	}
}

// TargetBar renders "label [bar] note" where the bar shows fill (0-1) of a
// target. fill is clamped.
func TargetBar(label string, fill float64, over bool, note string, labelW, barW int) string {
	t := theme.Active
	fill = max(0, min(1, fill))
	color := ColorForUsage(fill, over)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		space + bar.ViewAs(fill) + space +
		noteStyle.Render(note)
}

// ScoreBar renders the efficiency score as a bar with a "NN/100" suffix.
func ScoreBar(score, width int) string {
	t := theme.Active
	pct := float64(score) / 100
	var color lipgloss.Color
	switch {
	case score >= 80:
		color = t.Good
	case score >= 50:
		color = t.Warn
	default:
		color = t.Bad
	}

	filled := max(0, min(width, int(pct*float64(width))))
	filledStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	scoreStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) +
		scoreStyle.Render(fmt.Sprintf(" %d/100", score))
}
