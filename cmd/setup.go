package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/ratio/internal/config"
	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupAnswers mirrors the form fields; numbers stay strings until validated.
type setupAnswers struct {
	ledgerPath string
	mode       string
	currency   string
	view       string
	window     string
	theme      string
	income     string
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg := appCfg

	ans := setupAnswers{
		ledgerPath: cfg.General.LedgerPath,
		mode:       cfg.Budget.Mode,
		currency:   cfg.Budget.Currency,
		view:       cfg.General.DefaultView,
		window:     strconv.Itoa(cfg.General.DefaultWindowDays),
		theme:      cfg.Appearance.Theme,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to ratio!").
				Description("Budget your income as needs, wants and savings."),
			huh.NewInput().
				Title("Ledger path").
				Description("Ends in .json for a plain document, anything else is SQLite.").
				Placeholder(config.DefaultLedgerPath()).
				Value(&ans.ledgerPath),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Budget mode").
				Options(modeOptions()...).
				Value(&ans.mode),
			huh.NewSelect[string]().
				Title("Currency").
				Options(currencyOptions()...).
				Value(&ans.currency),
			huh.NewInput().
				Title("Monthly income").
				Description("Leave blank to set it later with `ratio income`.").
				Validate(validateOptionalAmount).
				Value(&ans.income),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default view").
				Options(
					huh.NewOption("Current month", config.ViewMonth),
					huh.NewOption("All time", config.ViewAll),
				).
				Value(&ans.view),
			huh.NewInput().
				Title("Daily window (days)").
				Validate(validateWindow).
				Value(&ans.window),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions()...).
				Value(&ans.theme),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("setup: %w", err)
	}

	cfg = applySetup(cfg, ans)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	appCfg = cfg
	logger.Info("config saved", zap.String("path", config.ConfigPath()))

	if strings.TrimSpace(ans.income) != "" {
		amount, err := model.ParseAmount(ans.income)
		if err != nil {
			return err
		}
		if _, err := updateLedger(cmd.Context(), func(l model.Ledger) (model.Ledger, error) {
			return l.WithIncome(amount), nil
		}); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Printf("  Ledger: %s\n", ledgerPath())
	fmt.Println("  Run `ratio setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func applySetup(cfg config.Config, ans setupAnswers) config.Config {
	cfg.General.LedgerPath = strings.TrimSpace(ans.ledgerPath)
	cfg.General.DefaultView = ans.view
	if n, err := strconv.Atoi(strings.TrimSpace(ans.window)); err == nil {
		cfg.General.DefaultWindowDays = n
	}
	cfg.Budget.Mode = ans.mode
	cfg.Budget.Currency = ans.currency
	cfg.Appearance.Theme = ans.theme
	return cfg
}

func modeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.Modes))
	for _, m := range model.Modes {
		opts = append(opts, huh.NewOption(string(m), string(m)))
	}
	return opts
}

func currencyOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.Currencies))
	for _, c := range model.Currencies {
		opts = append(opts, huh.NewOption(c.Symbol()+" "+string(c), string(c)))
	}
	return opts
}

func themeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		opts = append(opts, huh.NewOption(t.Name, t.Name))
	}
	return opts
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := model.ParseAmount(s)
	return err
}

func validateWindow(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 366 {
		return errors.New("enter a whole number of days between 1 and 366")
	}
	return nil
}
