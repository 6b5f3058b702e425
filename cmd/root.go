package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/theirongolddev/ratio/internal/config"
	"github.com/theirongolddev/ratio/internal/logging"
	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagLedger   string
	flagMonth    string
	flagAll      bool
	flagQuiet    bool
	flagLogLevel string
)

var (
	appCfg = config.DefaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ratio",
	Short: "Ratio budgeting calculator",
	Long: "Track expenses against a 50-30-20 or 65-20-15 split of your income:\n" +
		"needs, wants, excess and savings, with deviations and an efficiency score.",
	RunE:              runSummary,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { _ = logger.Sync() },
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLedger, "ledger", "l", "", "Ledger path (.db for SQLite, .json for a document file)")
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "m", "", "Restrict to a month (YYYY-MM)")
	rootCmd.PersistentFlags().BoolVarP(&flagAll, "all", "a", false, "Use the all-time view")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress hints and confirmations")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

// initRuntime loads .env, the config file and the logger before any command.
func initRuntime(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load() // optional .env in the working directory

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		// setup and config must still run so a broken file can be fixed
		if cmd.Name() != setupCmd.Name() && cmd.Name() != configCmd.Name() {
			return fmt.Errorf("invalid config %s: %w", config.ConfigPath(), err)
		}
		cfg = config.DefaultConfig()
	}
	appCfg = cfg

	level := flagLogLevel
	if level == "" {
		level = config.LogLevel(cfg)
	}
	l, err := logging.New(cfg.Logging, level)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func ledgerPath() string {
	if flagLedger != "" {
		return flagLedger
	}
	return config.LedgerPath(appCfg)
}

// openLedger opens the active store. A ledger that did not exist yet is
// seeded with the configured mode and currency.
func openLedger(ctx context.Context) (store.LedgerStore, error) {
	path := ledgerPath()
	_, statErr := os.Stat(path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	s, err := store.OpenAuto(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	logger.Debug("ledger opened", zap.String("path", path), zap.Bool("fresh", fresh))

	if fresh {
		if err := s.Save(ctx, config.NewLedger(appCfg)); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("initializing ledger %s: %w", path, err)
		}
	}
	return s, nil
}

// loadLedger is the shared read path used by reporting commands.
func loadLedger(ctx context.Context) (model.Ledger, error) {
	s, err := openLedger(ctx)
	if err != nil {
		return model.Ledger{}, err
	}
	defer func() { _ = s.Close() }()

	start := time.Now()
	l, err := s.Load(ctx)
	if err != nil {
		return model.Ledger{}, err
	}
	logger.Debug("ledger loaded",
		zap.Int("expenses", len(l.Expenses)),
		zap.Int("monthly_incomes", len(l.MonthlyIncomes)),
		zap.Duration("took", time.Since(start)),
	)
	return l, nil
}

// updateLedger applies fn to the stored ledger and persists the result.
func updateLedger(ctx context.Context, fn func(model.Ledger) (model.Ledger, error)) (model.Ledger, error) {
	s, err := openLedger(ctx)
	if err != nil {
		return model.Ledger{}, err
	}
	defer func() { _ = s.Close() }()

	l, err := store.Update(ctx, s, fn)
	if err != nil {
		return model.Ledger{}, err
	}
	logger.Info("ledger saved", zap.String("path", ledgerPath()), zap.Int("expenses", len(l.Expenses)))
	return l, nil
}

// selectedPeriod resolves the view from --all, --month and the configured
// default. nil is the all-time view.
func selectedPeriod() (*model.Period, error) {
	if flagAll && flagMonth != "" {
		return nil, errors.New("--all and --month are mutually exclusive")
	}
	if flagAll {
		return nil, nil
	}
	if flagMonth != "" {
		p, err := model.ParsePeriod(flagMonth)
		if err != nil {
			return nil, err
		}
		return &p, nil
	}
	if appCfg.General.DefaultView == config.ViewAll {
		return nil, nil
	}
	p := model.CurrentPeriod(time.Now())
	return &p, nil
}

func viewLabel(p *model.Period) string {
	if p == nil {
		return "All time"
	}
	return p.Label()
}

func hint(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf("  "+format+"\n", args...)
}
