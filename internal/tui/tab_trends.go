package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/tui/components"
	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// maxTrendMonths caps the monthly table to the most recent months.
const maxTrendMonths = 12

func (a App) renderTrendsTab(cw int) string {
	t := theme.Active
	cur := a.ledger.Currency

	values := make([]float64, len(a.days))
	total := 0.0
	for i, d := range a.days {
		values[i] = d.Total
		total += d.Total
	}

	// Daily pace that would spend the month's income on needs and wants.
	pace := 0.0
	if len(a.targets) > 0 {
		last := a.targets[len(a.targets)-1]
		pace = (last.Needs + last.Wants) / 30
	}

	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}
	var b strings.Builder
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Daily spending (%dd) · %s", len(a.days), cli.FormatMoney(total, cur)),
		components.BarChart(values, chartDateLabels(a.days), pace, t.Accent, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Monthly by bucket (spent / target)", a.renderMonthlyTable(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) renderMonthlyTable(w int) string {
	t := theme.Active
	cur := a.ledger.Currency
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	if len(a.months) == 0 {
		return muted.Render("No expenses recorded yet.")
	}

	start := max(0, len(a.months)-maxTrendMonths)
	months, targets := a.months[start:], a.targets[start:]

	const monthW = 9
	colW := max(14, (w-monthW-14)/3)

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-*s%*s%*s%*s%*s",
		monthW, "Month", colW, "Needs", colW, "Wants", colW, "Savings", 14, "Total")))
	b.WriteString("\n")

	totals := make([]float64, len(months))
	for i, m := range months {
		tg := targets[i]
		totals[i] = m.Total
		b.WriteString(value.Render(fmt.Sprintf("%-*s", monthW, cli.FormatMonth(m.Month))))
		b.WriteString(bucketCell(categoryTotal(m, model.CategoryNeed), tg.Needs, true, colW, cur))
		// Excess counts against the wants target.
		b.WriteString(bucketCell(m.Wants+m.Excess, tg.Wants, true, colW, cur))
		b.WriteString(bucketCell(categoryTotal(m, model.CategorySaving), tg.Savings, false, colW, cur))
		b.WriteString(value.Render(padLeft(cli.FormatMoney(m.Total, cur), 14)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(muted.Render("Totals ") + components.Sparkline(totals, t.Accent))
	if n := len(totals); n >= 2 {
		b.WriteString(muted.Render("  vs prior month " + cli.FormatDelta(totals[n-1], totals[n-2], cur)))
	}
	return b.String()
}

// bucketCell renders "spent/target" right-aligned in width. Spending buckets
// turn red past their target; savings turn red short of theirs.
func bucketCell(spent, target float64, isSpend bool, width int, cur model.Currency) string {
	t := theme.Active
	bad := spent > target
	if !isSpend {
		bad = spent < target
	}
	color := t.Good
	if bad {
		color = t.Bad
	}
	text := cli.FormatWhole(spent, cur) + "/" + cli.FormatWhole(target, cur)
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(padLeft(text, width))
}

// categoryTotal is the spend of one bucket in a month row.
func categoryTotal(m model.MonthTotal, c model.Category) float64 {
	switch c {
	case model.CategoryNeed:
		return m.Needs
	case model.CategoryWant:
		return m.Wants
	case model.CategoryExcess:
		return m.Excess
	case model.CategorySaving:
		return m.Savings
	}
	return 0
}
