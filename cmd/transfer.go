package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/ratio/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the ledger with a JSON ledger document",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write the ledger as a JSON document (stdout when FILE is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	l, err := store.ReadLedger(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	s, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Save(cmd.Context(), l); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	logger.Info("ledger imported", zap.String("from", args[0]), zap.Int("expenses", len(l.Expenses)))

	hint("Imported %d expenses and %d monthly incomes from %s", len(l.Expenses), len(l.MonthlyIncomes), args[0])
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	l, err := loadLedger(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return store.WriteLedger(os.Stdout, l)
	}

	doc, err := store.OpenDocument(args[0])
	if err != nil {
		return err
	}
	if err := doc.Save(cmd.Context(), l); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	hint("Exported %d expenses to %s", len(l.Expenses), args[0])
	return nil
}
