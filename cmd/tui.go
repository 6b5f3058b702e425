package cmd

import (
	"fmt"

	"github.com/theirongolddev/ratio/internal/tui"
	"github.com/theirongolddev/ratio/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	period, err := selectedPeriod()
	if err != nil {
		return err
	}

	theme.SetActive(appCfg.Appearance.Theme)

	// Without a forced profile lipgloss may fall back to Ascii and drop
	// every background color.
	lipgloss.SetColorProfile(termenv.TrueColor)

	s, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	logger.Debug("starting dashboard", zap.String("ledger", ledgerPath()), zap.String("view", viewLabel(period)))

	app := tui.NewApp(s, ledgerPath(), appCfg, period)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
