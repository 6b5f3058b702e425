package cmd

import (
	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete an expense by id or unique id prefix",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	e, err := store.DeleteExpense(cmd.Context(), s, args[0])
	if err != nil {
		return err
	}
	logger.Info("expense deleted", zap.String("id", e.ID))

	hint("Deleted %s  %s  %s", cli.ShortID(e.ID), cli.FormatDate(e.Date), e.Category)
	return nil
}
