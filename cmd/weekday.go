package cmd

import (
	"fmt"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/pipeline"

	"github.com/spf13/cobra"
)

var weekdayCmd = &cobra.Command{
	Use:   "weekday",
	Short: "Spending by day of the week",
	RunE:  runWeekday,
}

func init() {
	rootCmd.AddCommand(weekdayCmd)
}

func runWeekday(cmd *cobra.Command, _ []string) error {
	period, err := selectedPeriod()
	if err != nil {
		return err
	}
	l, err := loadLedger(cmd.Context())
	if err != nil {
		return err
	}

	expenses := pipeline.FilterByPeriod(l.Expenses, period)
	if len(expenses) == 0 {
		fmt.Printf("\n  No expenses for %s.\n", viewLabel(period))
		return nil
	}
	days := pipeline.AggregateByWeekday(expenses)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDING BY WEEKDAY  %s", viewLabel(period))))
	fmt.Println()

	peak := days[0]
	for _, d := range days[1:] {
		if d.Total > peak.Total {
			peak = d
		}
	}

	const maxBarWidth = 36
	for _, d := range days {
		fmt.Printf("%s %s\n",
			cli.RenderHorizontalBar(cli.FormatDayOfWeek(int(d.Weekday)), d.Total, peak.Total, maxBarWidth),
			cli.FormatMoney(d.Total, l.Currency),
		)
	}

	fmt.Printf("\n  Peak: %s (%s across %d expenses)\n\n",
		peak.Weekday, cli.FormatMoney(peak.Total, l.Currency), peak.Count)

	return nil
}
