package cmd

import (
	"fmt"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/model"

	"github.com/spf13/cobra"
)

var incomeCmd = &cobra.Command{
	Use:   "income AMOUNT",
	Short: "Set the income for the selected month (and the default income)",
	Long: "Set the income. With a month selected (the default view, or --month)\n" +
		"the amount becomes that month's income and the new default for months\n" +
		"without their own. With --all only the default income changes.",
	Args: cobra.ExactArgs(1),
	RunE: runIncome,
}

func init() {
	rootCmd.AddCommand(incomeCmd)
}

func runIncome(cmd *cobra.Command, args []string) error {
	amount, err := model.ParseAmount(args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}
	period, err := selectedPeriod()
	if err != nil {
		return err
	}

	l, err := updateLedger(cmd.Context(), func(l model.Ledger) (model.Ledger, error) {
		return l.WithIncomeFor(amount, period), nil
	})
	if err != nil {
		return err
	}

	hint("Income for %s set to %s", viewLabel(period), cli.FormatMoney(amount.InexactFloat64(), l.Currency))
	return nil
}
