package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/model"

	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:       "mode MODE",
	Short:     "Switch the budget mode (50-30-20 or 65-20-15)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: modeNames(),
	RunE:      runMode,
}

var currencyCmd = &cobra.Command{
	Use:       "currency CODE",
	Short:     "Switch the display currency (USD, EUR, GBP, INR, JPY)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: currencyNames(),
	RunE:      runCurrency,
}

func init() {
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(currencyCmd)
}

func runMode(cmd *cobra.Command, args []string) error {
	m, err := model.ParseMode(args[0])
	if err != nil {
		return fmt.Errorf("%q: %w (want %s)", args[0], err, strings.Join(modeNames(), " or "))
	}
	if _, err := updateLedger(cmd.Context(), func(l model.Ledger) (model.Ledger, error) {
		return l.WithMode(m), nil
	}); err != nil {
		return err
	}
	hint("Budget mode set to %s (%s)", m, cli.FormatRatio(m.Ratios()))
	return nil
}

func runCurrency(cmd *cobra.Command, args []string) error {
	c, err := model.ParseCurrency(args[0])
	if err != nil {
		return fmt.Errorf("%q: %w (want one of %s)", args[0], err, strings.Join(currencyNames(), ", "))
	}
	if _, err := updateLedger(cmd.Context(), func(l model.Ledger) (model.Ledger, error) {
		return l.WithCurrency(c), nil
	}); err != nil {
		return err
	}
	hint("Currency set to %s (%s)", c, c.Symbol())
	return nil
}

func modeNames() []string {
	out := make([]string, len(model.Modes))
	for i, m := range model.Modes {
		out[i] = string(m)
	}
	return out
}

func currencyNames() []string {
	out := make([]string, len(model.Currencies))
	for i, c := range model.Currencies {
		out[i] = string(c)
	}
	return out
}
