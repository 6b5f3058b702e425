package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/ratio/internal/config"
	"github.com/theirongolddev/ratio/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all income, expenses and settings from the ledger",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !flagYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Clear the whole ledger?").
			Description(ledgerPath() + "\nThis removes every expense and income. It cannot be undone.").
			Affirmative("Clear").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			hint("Nothing changed.")
			return nil
		}
	}

	if _, err := updateLedger(cmd.Context(), func(model.Ledger) (model.Ledger, error) {
		return config.NewLedger(appCfg), nil
	}); err != nil {
		return err
	}
	hint("Ledger cleared.")
	return nil
}
