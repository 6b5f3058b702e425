package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/tui/components"
	"github.com/theirongolddev/ratio/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listState is the cursor and scroll position of the expense list.
type listState struct {
	cursor int
	offset int
}

func (s *listState) clamp(n int) {
	s.cursor = max(0, min(s.cursor, n-1))
	s.offset = max(0, min(s.offset, s.cursor))
}

func (s *listState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

// window returns the [start, end) range of rows to draw so the cursor stays
// visible in a list of n rows with room for visible of them.
func (s *listState) window(n, visible int) (int, int) {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}
	return s.offset, min(n, s.offset+visible)
}

func (a App) updateExpensesKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.expenses)
	switch key {
	case "j", "down":
		a.list.move(1, n)
	case "k", "up":
		a.list.move(-1, n)
	case "g", "home":
		a.list = listState{}
	case "G", "end":
		a.list.cursor = n - 1
		a.list.clamp(n)
	case "d", "delete", "backspace":
		if n == 0 {
			return a, nil, true
		}
		m, cmd := a.openDeleteForm(a.expenses[a.list.cursor])
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderExpensesTab(cw, h int) string {
	t := theme.Active
	cur := a.ledger.Currency
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	title := fmt.Sprintf("Expenses · %s (%d)", a.viewLabel(), len(a.expenses))
	if len(a.expenses) == 0 {
		return components.ContentCard(title, muted.Render("No expenses in this view. Press [a] to add one."), cw)
	}

	listW := cw
	detailW := 0
	if !a.isCompactLayout() {
		detailW = max(36, cw/3)
		listW = cw - detailW
	}
	inner := components.CardInnerWidth(listW)

	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selected := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)

	const dateW, catW, amtW, idW = 10, 15, 14, 8
	descW := max(8, inner-dateW-catW-amtW-idW-4)

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-*s %-*s %*s %-*s %-*s",
		dateW, "Date", catW, "Category", amtW, "Amount", descW, "Description", idW, "ID")))
	b.WriteString("\n")

	visible := max(3, h-5) // border, title, header, hint
	list := a.list
	start, end := list.window(len(a.expenses), visible)
	for i := start; i < end; i++ {
		e := a.expenses[i]
		cat := fmt.Sprintf("%-*s", catW, truncStr(string(e.Category), catW))
		amount := padLeft(cli.FormatMoney(e.Amount.InexactFloat64(), cur), amtW)
		rest := fmt.Sprintf(" %s %-*s %-*s", amount, descW, truncStr(e.Description, descW), idW, cli.ShortID(e.ID))
		date := fmt.Sprintf("%-*s ", dateW, cli.FormatDate(e.Date))

		catStyle := lipgloss.NewStyle().Foreground(t.Category(e.Category)).Background(t.Surface)
		style := row
		if i == list.cursor {
			style = selected
			catStyle = catStyle.Background(t.SurfaceBright).Bold(true)
		}
		b.WriteString(style.Render(date) + catStyle.Render(cat) + style.Render(rest))
		b.WriteString("\n")
	}
	b.WriteString(muted.Render("[j/k] move  [d] delete  [a] add"))

	listCard := components.ContentCard(title, b.String(), listW)
	if detailW == 0 {
		return listCard
	}
	sel := a.expenses[list.cursor]
	return components.CardRow([]string{listCard, a.renderExpenseDetail(sel, detailW)})
}

func (a App) renderExpenseDetail(e model.Expense, w int) string {
	t := theme.Active
	cur := a.ledger.Currency
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	inner := components.CardInnerWidth(w)

	field := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-12s", name)) + value.Render(truncStr(v, inner-12)) + "\n"
	}

	var b strings.Builder
	b.WriteString(field("Amount", cli.FormatMoney(e.Amount.InexactFloat64(), cur)))
	catStyle := lipgloss.NewStyle().Foreground(t.Category(e.Category)).Background(t.Surface).Bold(true)
	b.WriteString(label.Render(fmt.Sprintf("%-12s", "Category")) + catStyle.Render(string(e.Category)) + "\n")
	b.WriteString(field("Date", e.Date.Format("Mon, 02 Jan 2006")))
	desc := e.Description
	if desc == "" {
		desc = "-"
	}
	b.WriteString(field("Description", desc))
	b.WriteString(field("ID", e.ID))

	if income := a.res.Income; income > 0 {
		share := e.Amount.InexactFloat64() / income * 100
		b.WriteString("\n")
		b.WriteString(label.Render(fmt.Sprintf("%s of %s income", cli.FormatPercent(share), a.viewLabel())))
	}
	return components.ContentCard("Expense "+cli.ShortID(e.ID), b.String(), w)
}
