package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagWindow int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily spending over a trailing window",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagWindow, "window", "w", 0, "Window in days (default from config)")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	l, err := loadLedger(cmd.Context())
	if err != nil {
		return err
	}

	window := flagWindow
	if window <= 0 {
		window = appCfg.General.DefaultWindowDays
	}
	days := pipeline.AggregateByDay(l.Expenses, window)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY SPENDING  Last %dd", len(days))))
	fmt.Println()

	values := make([]float64, len(days))
	rows := make([][]string, 0, len(days))
	var total float64
	for i, d := range days {
		values[i] = d.Total
		total += d.Total
		weekday := "???"
		if t, err := time.Parse(model.DayLayout, d.Date); err == nil {
			weekday = cli.FormatDayOfWeek(int(t.Weekday()))
		}
		rows = append(rows, []string{d.Date, weekday, cli.FormatMoney(d.Total, l.Currency)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Total"},
		Rows:    rows,
		Footer:  []string{"Total", "", cli.FormatMoney(total, l.Currency)},
	}))
	fmt.Println()
	fmt.Printf("  %s\n\n", cli.RenderSparkline(values))

	return nil
}
