package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/model"

	"github.com/spf13/cobra"
)

var flagDate string

var addCmd = &cobra.Command{
	Use:   "add AMOUNT CATEGORY [DESCRIPTION...]",
	Short: "Record an expense",
	Long: "Record an expense. CATEGORY is one of need, want, excess or saving\n" +
		"(\"Saving/Invested\"); matching is case-insensitive.",
	Example: "  ratio add 42.50 need groceries\n  ratio add 200 saving --date 2024-03-01",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagDate, "date", "", "Expense date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := model.ParseAmount(args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}
	category, err := model.ParseCategory(args[1])
	if err != nil {
		return fmt.Errorf("%q: %w (want need, want, excess or saving)", args[1], err)
	}
	date := time.Now()
	if flagDate != "" {
		if date, err = model.ParseDate(flagDate); err != nil {
			return fmt.Errorf("invalid --date %q: %w", flagDate, err)
		}
	}

	e := model.NewExpense(amount, category, strings.Join(args[2:], " "), date)
	l, err := updateLedger(cmd.Context(), func(l model.Ledger) (model.Ledger, error) {
		return l.WithExpense(e), nil
	})
	if err != nil {
		return err
	}

	hint("Added %s %s on %s (id %s)",
		cli.FormatMoney(e.Amount.InexactFloat64(), l.Currency),
		e.Category, cli.FormatDate(e.Date), cli.ShortID(e.ID))
	return nil
}
