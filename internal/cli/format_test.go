package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		v    float64
		c    model.Currency
		want string
	}{
		{1234.5, model.USD, "$1,234.50"},
		{0, model.EUR, "€0.00"},
		{-50, model.GBP, "-£50.00"},
		{1500, model.JPY, "¥1,500"},
		{2500000, model.INR, "₹2,500,000.00"},
		{12, model.Currency("XYZ"), "$12.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.v, tt.c), "%v %s", tt.v, tt.c)
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+$10.00", FormatSigned(10, model.USD))
	assert.Equal(t, "-$10.00", FormatSigned(-10, model.USD))
	assert.Equal(t, "+$0.00", FormatSigned(0, model.USD))
	assert.Equal(t, "-$5.00", FormatDelta(10, 15, model.USD))
}

func TestFormatMisc(t *testing.T) {
	assert.Equal(t, "40.0%", FormatPercent(40))
	assert.Equal(t, "88/100", FormatScore(88))
	assert.Equal(t, "65 / 20 / 15", FormatRatio(model.Mode652015.Ratios()))
	assert.Equal(t, "Mon", FormatDayOfWeek(1))
	assert.Equal(t, "???", FormatDayOfWeek(9))
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "2024-03-05", FormatDate(time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Mar 2024", FormatMonth("2024-03"))
	assert.Equal(t, "0001-01x", FormatMonth("0001-01x"))
	assert.Equal(t, "abcdef12", ShortID("abcdef12-3456"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Totals",
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"Need", "€1,200.00"},
			{"---"},
			{"Want", "€3.00"},
		},
		Footer: []string{"Total", "€1,203.00"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, out, "Totals")

	// Every bordered line has the same display width.
	w := lipgloss.Width(lines[1])
	for _, l := range lines[1:] {
		assert.Equal(t, w, lipgloss.Width(l), l)
	}
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "▁▄█", RenderSparkline([]float64{0, 50, 100}))
	assert.Equal(t, "▁▁", RenderSparkline([]float64{0, 0}))
	assert.Empty(t, RenderSparkline(nil))
}

func TestRenderUsageBar(t *testing.T) {
	out := RenderUsageBar(600, 500, 10, model.USD)
	assert.Contains(t, out, strings.Repeat("█", 10))
	assert.Contains(t, out, "$600.00 / $500.00")

	out = RenderUsageBar(0, 0, 4, model.USD)
	assert.Contains(t, out, "░░░░")
}
