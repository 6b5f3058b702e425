package cmd

import (
	"fmt"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagListLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "expenses"},
	Short:   "List expenses, newest first",
	RunE:    runList,
}

func init() {
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "n", 0, "Show at most N expenses (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	period, err := selectedPeriod()
	if err != nil {
		return err
	}
	l, err := loadLedger(cmd.Context())
	if err != nil {
		return err
	}

	expenses := pipeline.SortNewestFirst(pipeline.FilterByPeriod(l.Expenses, period))
	if len(expenses) == 0 {
		fmt.Printf("\n  No expenses for %s.\n", viewLabel(period))
		return nil
	}
	if flagListLimit > 0 && len(expenses) > flagListLimit {
		expenses = expenses[:flagListLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("EXPENSES  %s", viewLabel(period))))
	fmt.Println()

	rows := make([][]string, 0, len(expenses))
	var total float64
	for _, e := range expenses {
		amount := e.Amount.InexactFloat64()
		total += amount
		rows = append(rows, []string{
			cli.ShortID(e.ID),
			cli.FormatDate(e.Date),
			cli.RenderCategory(e.Category),
			e.Description,
			cli.FormatMoney(amount, l.Currency),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Date", "Category", "Description", "Amount"},
		Rows:    rows,
		Footer:  []string{fmt.Sprintf("%d shown", len(rows)), "", "", "", cli.FormatMoney(total, l.Currency)},
	}))
	fmt.Println()

	return nil
}
