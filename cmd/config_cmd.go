// Package cmd implements the ratio CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/ratio/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	switch {
	case !config.Exists():
		fmt.Println("  Status: using defaults (no config file)")
	case config.Validate(cfg) != nil:
		fmt.Println("  Status: invalid")
		fmt.Printf("    %v\n", config.Validate(cfg))
	default:
		fmt.Println("  Status: loaded")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Ledger:       %s (%s)\n", ledgerPath(), ledgerSource(cfg))
	fmt.Printf("    Window days:  %d\n", cfg.General.DefaultWindowDays)
	fmt.Printf("    Default view: %s\n", cfg.General.DefaultView)
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Mode:     %s\n", cfg.Budget.Mode)
	fmt.Printf("    Currency: %s\n", cfg.Budget.Currency)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Interval:      %ds\n", cfg.Server.IntervalSec)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level:  %s\n", config.LogLevel(cfg))
	fmt.Printf("    Format: %s\n", cfg.Logging.Format)
	if cfg.Logging.OutputFile != "" {
		fmt.Printf("    Output: %s\n", cfg.Logging.OutputFile)
	}
	fmt.Println()

	fmt.Println("  Run `ratio setup` to reconfigure.")
	return nil
}

// ledgerSource names where the active ledger path came from.
func ledgerSource(cfg config.Config) string {
	switch {
	case flagLedger != "":
		return "--ledger"
	case os.Getenv(config.EnvLedgerPath) != "":
		return config.EnvLedgerPath
	case cfg.General.LedgerPath != "":
		return "config"
	default:
		return "default"
	}
}
