// Package pipeline turns a ledger into derived budget figures: the per-view
// calculation and the daily and monthly time series used by charts.
//
// Every function here is pure. Callers recompute on each ledger or filter
// change instead of caching results.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultWindowDays is the trailing window used by AggregateByDay when the
// caller does not ask for a specific size.
const DefaultWindowDays = 30

// AggregateByDay buckets expenses into the trailing window of calendar days
// ending today, local time.
func AggregateByDay(expenses []model.Expense, window int) []model.DayTotal {
	return AggregateByDayAt(expenses, window, time.Now())
}

// AggregateByDayAt buckets expenses into the window calendar days ending on
// now's date (inclusive), in now's location. The result always has exactly
// window rows in ascending date order; days without spending are zero.
// Expenses dated outside the window are ignored.
func AggregateByDayAt(expenses []model.Expense, window int, now time.Time) []model.DayTotal {
	if window <= 0 {
		window = DefaultWindowDays
	}

	// Seed every day in the range so the chart shows gaps as zeros. Days are
	// stepped at noon: local midnight does not exist on some DST switch days.
	dayMap := make(map[string]decimal.Decimal, window)
	for i := 0; i < window; i++ {
		d := time.Date(now.Year(), now.Month(), now.Day()-i, 12, 0, 0, 0, now.Location())
		dayMap[d.Format(model.DayLayout)] = decimal.Zero
	}

	for _, e := range expenses {
		key := e.DayKey()
		if total, ok := dayMap[key]; ok {
			dayMap[key] = total.Add(e.Amount)
		}
	}

	days := make([]model.DayTotal, 0, len(dayMap))
	for key, total := range dayMap {
		days = append(days, model.DayTotal{Date: key, Total: total.InexactFloat64()})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	return days
}

// AggregateByMonth computes per-month spending split by category, one row per
// month that has at least one expense, ascending by month. Months without
// activity are not filled in, and undated expenses belong to no month.
func AggregateByMonth(expenses []model.Expense) []model.MonthTotal {
	type bucket struct {
		total  decimal.Decimal
		totals categoryTotals
	}
	monthMap := make(map[string]*bucket)

	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		key := e.MonthKey()
		b, ok := monthMap[key]
		if !ok {
			b = &bucket{}
			monthMap[key] = b
		}
		b.total = b.total.Add(e.Amount)
		b.totals.add(e)
	}

	months := make([]model.MonthTotal, 0, len(monthMap))
	for key, b := range monthMap {
		months = append(months, model.MonthTotal{
			Month:   key,
			Total:   b.total.InexactFloat64(),
			Needs:   b.totals.needs.InexactFloat64(),
			Wants:   b.totals.wants.InexactFloat64(),
			Savings: b.totals.savings.InexactFloat64(),
			Excess:  b.totals.excess.InexactFloat64(),
		})
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})

	return months
}

// MonthlyTargets resolves each month's income with the same override rule as
// Calculate and multiplies it by the ledger's mode ratios.
func MonthlyTargets(l model.Ledger, months []model.MonthTotal) []model.MonthTarget {
	ratios := l.Mode.Ratios()
	targets := make([]model.MonthTarget, 0, len(months))
	for _, m := range months {
		income := ResolveIncome(l, m.Month).InexactFloat64()
		targets = append(targets, model.MonthTarget{
			Month:   m.Month,
			Income:  income,
			Needs:   income * ratios.Needs,
			Wants:   income * ratios.Wants,
			Savings: income * ratios.Savings,
		})
	}
	return targets
}

// SortNewestFirst returns a copy of expenses ordered by date, most recent
// first. Ties keep their ledger order.
func SortNewestFirst(expenses []model.Expense) []model.Expense {
	out := make([]model.Expense, len(expenses))
	copy(out, expenses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// NoDescription labels expenses recorded without a description.
const NoDescription = "(no description)"

// AggregateByWeekday sums spending by day of the week. The result always has
// seven rows, Sunday first.
func AggregateByWeekday(expenses []model.Expense) []model.WeekdayTotal {
	var totals [7]decimal.Decimal
	days := make([]model.WeekdayTotal, 7)
	for i := range days {
		days[i].Weekday = time.Weekday(i)
	}

	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		wd := e.Date.Weekday()
		totals[wd] = totals[wd].Add(e.Amount)
		days[wd].Count++
	}
	for i := range days {
		days[i].Total = totals[i].InexactFloat64()
	}
	return days
}

// AggregateByDescription ranks expense descriptions by total spent,
// largest first. Descriptions are matched ignoring case and surrounding
// space; the first spelling seen is kept for display.
func AggregateByDescription(expenses []model.Expense) []model.PayeeTotal {
	type bucket struct {
		name       string
		count      int
		total      decimal.Decimal
		byCategory map[model.Category]decimal.Decimal
	}
	payeeMap := make(map[string]*bucket)

	for _, e := range expenses {
		name := strings.TrimSpace(e.Description)
		if name == "" {
			name = NoDescription
		}
		key := strings.ToLower(name)
		b, ok := payeeMap[key]
		if !ok {
			b = &bucket{name: name, byCategory: make(map[model.Category]decimal.Decimal)}
			payeeMap[key] = b
		}
		b.count++
		b.total = b.total.Add(e.Amount)
		b.byCategory[e.Category] = b.byCategory[e.Category].Add(e.Amount)
	}

	payees := make([]model.PayeeTotal, 0, len(payeeMap))
	for _, b := range payeeMap {
		payees = append(payees, model.PayeeTotal{
			Description: b.name,
			Count:       b.count,
			Total:       b.total.InexactFloat64(),
			Category:    dominantCategory(b.byCategory),
		})
	}
	sort.Slice(payees, func(i, j int) bool {
		if payees[i].Total != payees[j].Total {
			return payees[i].Total > payees[j].Total
		}
		return payees[i].Description < payees[j].Description
	})

	return payees
}

// dominantCategory picks the category with the largest amount, breaking ties
// by the order of model.Categories.
func dominantCategory(m map[model.Category]decimal.Decimal) model.Category {
	var best model.Category
	bestAmt := decimal.NewFromInt(-1)
	for _, c := range model.Categories {
		if v, ok := m[c]; ok && v.GreaterThan(bestAmt) {
			best, bestAmt = c, v
		}
	}
	if best != "" {
		return best
	}
	// Only unrecognized categories: report whichever sorts first.
	for c := range m {
		if best == "" || c < best {
			best = c
		}
	}
	return best
}
