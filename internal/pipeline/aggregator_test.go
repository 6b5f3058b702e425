package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dates(days []model.DayTotal) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Date
	}
	return out
}

func TestAggregateByDayAt_WindowShape(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	exps := []model.Expense{
		expense("a", 5, model.CategoryNeed, "2024-03-10T23:00:00Z"),
		expense("b", 7, model.CategoryWant, "2024-03-10"),
		expense("c", 99, model.CategoryNeed, "2024-03-03"), // day before the window
		expense("d", 3, model.CategoryExcess, "2024-03-05T01:00:00+09:00"),
		expense("e", 11, model.CategorySaving, "2024-03-11"), // future
	}

	days := AggregateByDayAt(exps, 7, now)

	require.Len(t, days, 7)
	assert.Equal(t, []string{
		"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07",
		"2024-03-08", "2024-03-09", "2024-03-10",
	}, dates(days))
	assert.InDelta(t, 3, days[1].Total, eps)
	assert.InDelta(t, 12, days[6].Total, eps)
	assert.Zero(t, days[0].Total)
}

func TestAggregateByDayAt_CrossesMonthBoundary(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	days := AggregateByDayAt(nil, 5, now)

	assert.Equal(t, []string{
		"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02",
	}, dates(days))
}

func TestAggregateByDayAt_DefaultWindow(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Len(t, AggregateByDayAt(nil, 0, now), DefaultWindowDays)
	assert.Len(t, AggregateByDayAt(nil, -4, now), DefaultWindowDays)
}

func TestAggregateByDay_EndsToday(t *testing.T) {
	before := time.Now().Format(model.DayLayout)
	days := AggregateByDay(nil, 7)
	after := time.Now().Format(model.DayLayout)

	require.Len(t, days, 7)
	last := days[len(days)-1].Date
	assert.Contains(t, []string{before, after}, last)
	for i := 1; i < len(days); i++ {
		assert.Less(t, days[i-1].Date, days[i].Date)
		assert.Zero(t, days[i].Total)
	}
}

func TestAggregateByMonth(t *testing.T) {
	exps := []model.Expense{
		expense("a", 100, model.CategoryNeed, "2024-03-05"),
		expense("b", 40, model.CategoryWant, "2024-01-02"),
		expense("c", 10, model.CategoryExcess, "2024-03-20"),
		expense("d", 60, model.CategorySaving, "2024-03-21"),
		expense("e", 25, model.Category("Gift"), "2024-03-22"),
	}

	months := AggregateByMonth(exps)

	require.Len(t, months, 2, "February has no activity and is not filled in")
	assert.Equal(t, "2024-01", months[0].Month)
	assert.InDelta(t, 40, months[0].Wants, eps)

	mar := months[1]
	assert.Equal(t, "2024-03", mar.Month)
	assert.InDelta(t, 195, mar.Total, eps, "unknown category counted in total")
	assert.InDelta(t, 100, mar.Needs, eps)
	assert.InDelta(t, 10, mar.Excess, eps)
	assert.InDelta(t, 60, mar.Savings, eps)
	assert.Less(t, mar.Needs+mar.Wants+mar.Savings+mar.Excess, mar.Total)
}

func TestAggregateByMonth_Empty(t *testing.T) {
	assert.Empty(t, AggregateByMonth(nil))
}

func TestMonthlyTargets(t *testing.T) {
	l := ledger(1000).WithMonthlyIncome("2024-02", dec(2000)).WithMode(model.Mode652015)
	months := []model.MonthTotal{{Month: "2024-01"}, {Month: "2024-02"}}

	targets := MonthlyTargets(l, months)

	require.Len(t, targets, 2)
	assert.InDelta(t, 1000, targets[0].Income, eps)
	assert.InDelta(t, 650, targets[0].Needs, eps)
	assert.InDelta(t, 2000, targets[1].Income, eps)
	assert.InDelta(t, 300, targets[1].Savings, eps)
}

func TestSortNewestFirst(t *testing.T) {
	exps := []model.Expense{
		expense("old", 1, model.CategoryNeed, "2024-01-01"),
		expense("new", 1, model.CategoryNeed, "2024-03-01"),
		expense("tie1", 1, model.CategoryNeed, "2024-02-01"),
		expense("tie2", 1, model.CategoryNeed, "2024-02-01"),
	}

	sorted := SortNewestFirst(exps)

	ids := make([]string, len(sorted))
	for i, e := range sorted {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"new", "tie1", "tie2", "old"}, ids)
	assert.Equal(t, "old", exps[0].ID)
}

func TestAggregateByWeekday(t *testing.T) {
	// The 4th and 11th are Mondays, the 9th a Saturday; "d" has no date.
	exps := []model.Expense{
		expense("a", 10, model.CategoryNeed, "2024-03-04"),
		expense("b", 5.5, model.CategoryWant, "2024-03-11"),
		expense("c", 20, model.CategoryExcess, "2024-03-09"),
		{ID: "d", Amount: dec(99), Category: model.CategoryNeed},
	}

	days := AggregateByWeekday(exps)

	require.Len(t, days, 7)
	assert.Equal(t, time.Sunday, days[0].Weekday)
	assert.Equal(t, time.Saturday, days[6].Weekday)
	assert.InDelta(t, 15.5, days[time.Monday].Total, eps)
	assert.Equal(t, 2, days[time.Monday].Count)
	assert.InDelta(t, 20, days[time.Saturday].Total, eps)
	assert.Zero(t, days[time.Sunday].Total)
}

func TestAggregateByDescription(t *testing.T) {
	withDesc := func(e model.Expense, d string) model.Expense {
		e.Description = d
		return e
	}
	exps := []model.Expense{
		withDesc(expense("a", 12, model.CategoryWant, "2024-03-01"), "Coffee"),
		withDesc(expense("b", 8, model.CategoryExcess, "2024-03-02"), " coffee "),
		withDesc(expense("c", 4, model.CategoryExcess, "2024-03-03"), "COFFEE"),
		withDesc(expense("d", 900, model.CategoryNeed, "2024-03-01"), "Rent"),
		withDesc(expense("e", 3, model.CategoryNeed, "2024-03-05"), ""),
		withDesc(expense("f", 3, model.CategoryNeed, "2024-03-06"), "Bus"),
	}

	payees := AggregateByDescription(exps)

	require.Len(t, payees, 4)
	assert.Equal(t, "Rent", payees[0].Description)
	assert.Equal(t, "Coffee", payees[1].Description, "first spelling wins")
	assert.Equal(t, 3, payees[1].Count)
	assert.InDelta(t, 24, payees[1].Total, eps)
	assert.Equal(t, model.CategoryWant, payees[1].Category)
	// equal totals order by name
	assert.Equal(t, NoDescription, payees[2].Description)
	assert.Equal(t, "Bus", payees[3].Description)
}

func TestAggregateByDayAt_DSTSkipsMidnight(t *testing.T) {
	// Both zones jump from 00:00 to 01:00, so local midnight of the switch
	// day does not exist.
	tests := []struct {
		zone    string
		now     time.Time
		switchD string
	}{
		{"America/Havana", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), "2026-03-08"},
		{"America/Santiago", time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC), "2026-09-06"},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			loc, err := time.LoadLocation(tt.zone)
			if err != nil {
				t.Skipf("time zone data unavailable: %v", err)
			}
			now := tt.now.In(loc)
			exps := []model.Expense{expense("a", 9, model.CategoryNeed, tt.switchD)}

			days := AggregateByDayAt(exps, 7, now)

			require.Len(t, days, 7)
			want := make([]string, 7)
			for i := range want {
				want[i] = time.Date(now.Year(), now.Month(), now.Day()-6+i, 12, 0, 0, 0, time.UTC).Format(model.DayLayout)
			}
			assert.Equal(t, want, dates(days))

			var total float64
			for _, d := range days {
				if d.Date == tt.switchD {
					total = d.Total
				}
			}
			assert.InDelta(t, 9, total, eps)
		})
	}
}

func TestAggregateByMonth_SkipsUndated(t *testing.T) {
	exps := []model.Expense{
		expense("a", 10, model.CategoryNeed, "2024-03-04"),
		{ID: "b", Amount: dec(5), Category: model.CategoryWant},
	}

	months := AggregateByMonth(exps)

	require.Len(t, months, 1)
	assert.Equal(t, "2024-03", months[0].Month)
	assert.InDelta(t, 10, months[0].Total, eps)
}
