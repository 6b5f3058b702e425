// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats an amount with the currency's symbol and grouping,
// e.g. 1234.5 USD -> "$1,234.50", 1500 JPY -> "¥1,500".
func FormatMoney(v float64, c model.Currency) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	format := "#,###.##"
	if c.FractionDigits() == 0 {
		format = "#,###."
	}
	s := humanize.FormatFloat(format, v)
	if s == "0" || s == "0.00" {
		sign = ""
	}
	return sign + c.Symbol() + s
}

// FormatWhole formats an amount rounded to whole currency units, for narrow
// table cells.
func FormatWhole(v float64, c model.Currency) string {
	r := math.Round(v)
	sign := ""
	if r < 0 {
		sign = "-"
		r = -r
	}
	return sign + c.Symbol() + humanize.FormatFloat("#,###.", r)
}

// FormatSigned formats an amount with an explicit sign, for deviations.
func FormatSigned(v float64, c model.Currency) string {
	if v >= 0 {
		return "+" + FormatMoney(v, c)
	}
	return FormatMoney(v, c)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatScore renders an efficiency score as "87/100".
func FormatScore(score int) string {
	return fmt.Sprintf("%d/100", score)
}

// FormatDelta formats the change between two amounts with sign.
func FormatDelta(current, previous float64, c model.Currency) string {
	return FormatSigned(current-previous, c)
}

// FormatRatio renders mode ratios as e.g. "50 / 30 / 20".
func FormatRatio(r model.Ratios) string {
	return fmt.Sprintf("%.0f / %.0f / %.0f",
		math.Round(r.Needs*100), math.Round(r.Wants*100), math.Round(r.Savings*100))
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatDate renders an expense date for tables. The zero time (an
// unparsable date in an imported document) shows as a dash.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(model.DayLayout)
}

// FormatMonth turns a YYYY-MM key into "Mar 2024"; unknown keys pass through.
func FormatMonth(key string) string {
	p, err := model.ParsePeriod(key)
	if err != nil {
		return key
	}
	return p.Label()
}

// ShortID returns the leading part of an expense id, enough to reference it
// on the command line.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
