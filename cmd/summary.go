package cmd

import (
	"fmt"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget summary for the selected month or all time",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	period, err := selectedPeriod()
	if err != nil {
		return err
	}
	l, err := loadLedger(cmd.Context())
	if err != nil {
		return err
	}

	res := pipeline.Calculate(l, period)
	cur := l.Currency
	money := func(v float64) string { return cli.FormatMoney(v, cur) }

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RATIO BUDGET  %s  ·  %s", viewLabel(period), l.Mode)))
	fmt.Println()

	if res.Income <= 0 && res.TotalAllocated == 0 {
		fmt.Println("  No income or expenses recorded yet.")
		hint("Set an income with `ratio income 3000`, then `ratio add 42.50 need groceries`.")
		return nil
	}

	status := pipeline.SpendStatus(res)
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Income", money(res.Income)},
			{"Spent", money(res.ExpensesTotal) + "  " + cli.RenderStatus(status, status == pipeline.StatusOnTrack)},
			{"Set aside", money(res.Breakdown.Savings)},
			{"Remaining", money(res.Remaining)},
			{"---"},
			{"Actual savings", money(res.TotalActualSavings)},
			{"Savings rate", cli.FormatPercent(res.SavingsRate)},
			{"Efficiency", cli.FormatScore(res.EfficiencyScore)},
		},
	}))
	fmt.Println()

	rows := [][]string{
		allocationRow("Needs", model.CategoryNeed, res.Breakdown.Needs, res.Percentages.Needs, res.Ideal.Needs, cur),
		allocationRow("Wants", model.CategoryWant, res.Breakdown.Wants, res.Percentages.Wants, res.Ideal.Wants, cur),
		allocationRow("Excess", model.CategoryExcess, res.Breakdown.Excess, res.Percentages.Excess, 0, cur),
		allocationRow("Savings", model.CategorySaving, res.TotalActualSavings, res.Percentages.Savings, res.Ideal.Savings, cur),
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Allocation  (" + cli.FormatRatio(l.Mode.Ratios()) + ")",
		Headers: []string{"Bucket", "Actual", "% Income", "Target"},
		Rows:    rows,
	}))
	fmt.Println()

	vrows := make([][]string, 0, 3)
	for _, v := range pipeline.Variances(res) {
		vrows = append(vrows, []string{
			v.Label,
			cli.FormatSigned(v.Amount, cur),
			cli.RenderStatus(v.Status, v.Status == pipeline.VarianceOptimal),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Deviation from target",
		Headers: []string{"Bucket", "Variance", "Status"},
		Rows:    vrows,
	}))
	fmt.Println()

	for _, c := range pipeline.Comparison(res) {
		fmt.Printf("  %-8s %s\n", c.Name, cli.RenderUsageBar(c.Spent, c.Target, 24, cur))
	}
	fmt.Println()

	return nil
}

func allocationRow(label string, c model.Category, actual, pct, target float64, cur model.Currency) []string {
	t := "-"
	if target > 0 {
		t = cli.FormatMoney(target, cur)
	}
	return []string{
		cli.RenderCategoryLabel(c, label),
		cli.FormatMoney(actual, cur),
		cli.FormatPercent(pct),
		t,
	}
}
