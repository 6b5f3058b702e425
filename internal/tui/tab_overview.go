package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/pipeline"
	"github.com/theirongolddev/ratio/internal/tui/components"
	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	res := a.res
	cur := a.ledger.Currency
	money := func(v float64) string { return cli.FormatMoney(v, cur) }

	if res.Income <= 0 && res.TotalAllocated == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Nothing here yet",
			muted.Render("Press [i] to set your income, then [a] to add an expense."), cw)
	}

	status := pipeline.SpendStatus(res)
	statusColor := t.Good
	if status == pipeline.StatusOverBudget {
		statusColor = t.Bad
	}
	remainingColor := t.TextPrimary
	if res.Remaining < 0 {
		remainingColor = t.Bad
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Income", Value: money(res.Income), Note: a.viewLabel()},
		{Label: "Spent", Value: money(res.ExpensesTotal), Note: status, Color: statusColor},
		{Label: "Remaining", Value: money(res.Remaining), Color: remainingColor,
			Note: "set aside " + money(res.Breakdown.Savings)},
		{Label: "Actual savings", Value: money(res.TotalActualSavings),
			Note: cli.FormatPercent(res.SavingsRate) + " of income"},
	}, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}
	alloc := components.ContentCard(
		"Allocation vs target ("+cli.FormatRatio(a.ledger.Mode.Ratios())+")",
		a.renderAllocation(components.CardInnerWidth(halves[0])), halves[0])
	variance := components.ContentCard("Deviation", a.renderVariances(components.CardInnerWidth(halves[1])), halves[1])

	if a.isCompactLayout() {
		b.WriteString(alloc + "\n" + variance + "\n")
	} else {
		b.WriteString(components.CardRow([]string{alloc, variance}) + "\n")
	}

	b.WriteString(components.ContentCard("Where the money went", a.renderDistribution(components.CardInnerWidth(cw)), cw))
	return b.String()
}

// renderAllocation draws one target bar per bucket. Excess has no target of
// its own and counts against wants, so it is shown as a plain figure.
func (a App) renderAllocation(w int) string {
	t := theme.Active
	cur := a.ledger.Currency
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	const labelW = 8
	noteW := 26
	barW := max(10, w-labelW-noteW-2)

	var b strings.Builder
	for _, c := range pipeline.Comparison(a.res) {
		fill, over := pipeline.Usage(c.Spent, c.Target)
		note := cli.FormatMoney(c.Spent, cur) + " / " + cli.FormatMoney(c.Target, cur)
		b.WriteString(components.TargetBar(c.Name, fill, over, note, labelW, barW))
		b.WriteString("\n")
	}
	b.WriteString(muted.Render(fmt.Sprintf("%-*s ", labelW, "Excess")))
	b.WriteString(lipgloss.NewStyle().Foreground(t.Excess).Background(t.Surface).
		Render(cli.FormatMoney(a.res.Breakdown.Excess, cur)))
	b.WriteString(muted.Render("  (counted in wants)"))
	return b.String()
}

func (a App) renderVariances(w int) string {
	t := theme.Active
	cur := a.ledger.Currency
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	for _, v := range pipeline.Variances(a.res) {
		color := t.Good
		switch v.Status {
		case pipeline.VarianceOver:
			color = t.Bad
		case pipeline.VarianceUnder:
			color = t.Warn
		}
		status := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
		b.WriteString(muted.Render(fmt.Sprintf("%-9s", v.Label)))
		b.WriteString(value.Render(padLeft(cli.FormatSigned(v.Amount, cur), 16) + "  "))
		b.WriteString(status.Render(v.Status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("%-9s", "Score")))
	b.WriteString(components.ScoreBar(a.res.EfficiencyScore, max(10, w-19)))
	return b.String()
}

// renderDistribution shows each outflow slice as a share of total outflow.
func (a App) renderDistribution(w int) string {
	t := theme.Active
	cur := a.ledger.Currency
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	slices := pipeline.Distribution(a.res)
	if len(slices) == 0 {
		return muted.Render("No outflow in this view.")
	}
	total := 0.0
	for _, s := range slices {
		total += s.Value
	}

	colors := map[string]lipgloss.Color{"Needs": t.Needs, "Wants": t.Wants, "Excess": t.Excess}
	const labelW, noteW = 8, 24
	barW := max(10, w-labelW-noteW-2)

	var b strings.Builder
	for i, s := range slices {
		share := s.Value / total
		n := int(share * float64(barW))
		bar := lipgloss.NewStyle().Foreground(colors[s.Name]).Background(t.Surface).Render(strings.Repeat("█", n))
		pad := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", barW-n))
		b.WriteString(muted.Render(fmt.Sprintf("%-*s ", labelW, s.Name)) + bar + pad)
		b.WriteString(muted.Render(fmt.Sprintf(" %6s  %s", cli.FormatPercent(share*100), cli.FormatMoney(s.Value, cur))))
		if i < len(slices)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
