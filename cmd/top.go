package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagTopLimit int

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank expense descriptions by total spent",
	RunE:  runTop,
}

func init() {
	topCmd.Flags().IntVarP(&flagTopLimit, "limit", "n", 10, "Show at most N rows (0 = all)")
	rootCmd.AddCommand(topCmd)
}

func runTop(cmd *cobra.Command, _ []string) error {
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
	payees := pipeline.AggregateByDescription(expenses)

	var outflow float64
	for _, p := range payees {
		outflow += p.Total
	}
	if flagTopLimit > 0 && len(payees) > flagTopLimit {
		payees = payees[:flagTopLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TOP DESCRIPTIONS  %s", viewLabel(period))))
	fmt.Println()

	rows := make([][]string, 0, len(payees))
	for _, p := range payees {
		share := 0.0
		if outflow > 0 {
			share = p.Total / outflow * 100
		}
		rows = append(rows, []string{
			truncate(p.Description, 24),
			cli.RenderCategory(p.Category),
			strconv.Itoa(p.Count),
			cli.FormatMoney(p.Total, l.Currency),
			cli.FormatPercent(share),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Description", "Category", "Count", "Total", "Share"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
