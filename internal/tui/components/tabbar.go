package components

import (
	"strings"

	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry of the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // index of the shortcut in Name, -1 when it is not in the name
}

// Tabs defines the dashboard tabs in order.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Trends", Key: 't', KeyPos: 0},
	{Name: "Expenses", Key: 'e', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1},
}

func tabStyles() (active, inactive, key, dimKey lipgloss.Style) {
	t := theme.Active
	active = lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true).Padding(0, 1)
	inactive = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dimKey = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return
}

func renderTab(tab Tab, active bool) string {
	activeStyle, inactiveStyle, keyStyle, dimKeyStyle := tabStyles()
	if active {
		return activeStyle.Render(tab.Name)
	}
	pad := inactiveStyle.Render(" ")
	if tab.KeyPos < 0 || tab.KeyPos >= len(tab.Name) {
		return pad + inactiveStyle.Render(tab.Name) +
			dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]") + pad
	}
	return pad +
		inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
		keyStyle.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
		inactiveStyle.Render(tab.Name[tab.KeyPos+1:]) +
		pad
}

// TabVisualWidth is the rendered width of tab, matching RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders a single-line tab bar with one separator column
// between tabs, padded to width.
func RenderTabBar(activeIdx, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	bar := strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(bar)
}

// TabIdxByKey returns the tab index for a shortcut key, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
