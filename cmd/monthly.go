package cmd

import (
	"fmt"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/pipeline"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Spending per month with the targets for each month's income",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(cmd *cobra.Command, _ []string) error {
	l, err := loadLedger(cmd.Context())
	if err != nil {
		return err
	}

	months := pipeline.AggregateByMonth(l.Expenses)
	if len(months) == 0 {
		fmt.Println("\n  No expenses recorded yet.")
		return nil
	}
	targets := pipeline.MonthlyTargets(l, months)

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTHLY SPENDING  " + string(l.Mode)))
	fmt.Println()

	money := func(v float64) string { return cli.FormatMoney(v, l.Currency) }
	rows := make([][]string, 0, len(months))
	totals := make([]float64, len(months))
	for i, m := range months {
		t := targets[i]
		totals[i] = m.Total
		rows = append(rows, []string{
			cli.FormatMonth(m.Month),
			money(t.Income),
			money(m.Needs) + " / " + money(t.Needs),
			money(m.Wants+m.Excess) + " / " + money(t.Wants),
			money(m.Savings) + " / " + money(t.Savings),
			money(m.Total),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Income", "Needs / Target", "Wants+Excess / Target", "Savings / Target", "Total"},
		Rows:    rows,
	}))

	if n := len(months); n > 1 {
		fmt.Printf("\n  %s  %s vs %s\n",
			cli.RenderSparkline(totals),
			cli.FormatDelta(months[n-1].Total, months[n-2].Total, l.Currency),
			cli.FormatMonth(months[n-2].Month),
		)
	}
	fmt.Println()

	return nil
}
