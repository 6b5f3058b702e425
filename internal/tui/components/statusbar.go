package components

import (
	"strings"

	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left, the flash
// message and ledger info on the right.
func RenderStatusBar(width int, flash string, flashErr bool, info string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	flashStyle := lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface).Bold(true)
	if flashErr {
		flashStyle = flashStyle.Foreground(t.Bad)
	}

	left := base.Render(" [?]help  [a]dd  [i]ncome  [q]uit")
	right := ""
	if flash != "" {
		right = flashStyle.Render(flash) + base.Render("  ")
	}
	if info != "" {
		right += base.Render(info + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = max(0, width-lipgloss.Width(left))
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}
