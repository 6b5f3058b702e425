package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func expense(id string, amount float64, cat model.Category, date string) model.Expense {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return model.Expense{ID: id, Amount: dec(amount), Category: cat, Date: d}
}

func ledger(income float64, exps ...model.Expense) model.Ledger {
	l := model.DefaultLedger().WithIncome(dec(income))
	for _, e := range exps {
		l = l.WithExpense(e)
	}
	return l
}

func period(t *testing.T, key string) *model.Period {
	t.Helper()
	p, err := model.ParsePeriod(key)
	require.NoError(t, err)
	return &p
}

func TestCalculate_SingleNeed(t *testing.T) {
	l := ledger(1000, expense("a", 400, model.CategoryNeed, "2024-03-05T10:00:00Z"))

	res := Calculate(l, nil)

	assert.InDelta(t, 1000, res.Income, eps)
	assert.InDelta(t, 400, res.Breakdown.Needs, eps)
	assert.InDelta(t, 500, res.Ideal.Needs, eps)
	assert.InDelta(t, -100, res.Deviations.Needs, eps)
	assert.InDelta(t, 600, res.Remaining, eps)
	assert.InDelta(t, 600, res.TotalActualSavings, eps)
	assert.InDelta(t, 60, res.SavingsRate, eps)
	assert.InDelta(t, 40, res.Percentages.Needs, eps)
	// Only the savings shortfall (200 below target) is penalized: 0.2*60.
	assert.Equal(t, 88, res.EfficiencyScore)
}

func TestCalculate_OverAllocated(t *testing.T) {
	l := ledger(1000,
		expense("a", 500, model.CategoryNeed, "2024-03-05"),
		expense("b", 600, model.CategoryWant, "2024-03-06"),
	)

	res := Calculate(l, nil)

	assert.InDelta(t, 1100, res.ExpensesTotal, eps)
	assert.InDelta(t, -100, res.Remaining, eps)
	assert.InDelta(t, 0, res.TotalActualSavings, eps)
	assert.InDelta(t, 0, res.SavingsRate, eps)
	// 10 for overspend, 0 for needs (exactly on target), 12 for savings shortfall.
	assert.Equal(t, 78, res.EfficiencyScore)
	assert.Equal(t, StatusOverBudget, SpendStatus(res))
}

func TestCalculate_MonthlyOverride(t *testing.T) {
	l := ledger(1000).WithMonthlyIncome("2024-03", dec(2000))

	month, year := 2, 2024
	p, err := model.PeriodFromIndex(&month, &year)
	require.NoError(t, err)

	res := Calculate(l, p)

	assert.InDelta(t, 2000, res.Income, eps)
	assert.InDelta(t, 2000, res.Ideal.Income, eps)
	assert.InDelta(t, 1000, res.Ideal.Needs, eps)
}

func TestCalculate_FilteredMonthFallsBackToDefault(t *testing.T) {
	l := ledger(1000,
		expense("a", 100, model.CategoryNeed, "2024-03-05"),
		expense("b", 250, model.CategoryWant, "2024-04-01"),
	).WithMonthlyIncome("2024-03", dec(2000))

	res := Calculate(l, period(t, "2024-04"))

	assert.InDelta(t, 1000, res.Income, eps)
	assert.InDelta(t, 0, res.Breakdown.Needs, eps)
	assert.InDelta(t, 250, res.Breakdown.Wants, eps)
}

func TestCalculate_EmptyZeroIncome(t *testing.T) {
	res := Calculate(model.DefaultLedger(), nil)

	assert.Zero(t, res.Income)
	assert.Zero(t, res.EfficiencyScore)
	assert.Equal(t, model.Breakdown{}, res.Percentages)
	assert.Zero(t, res.SavingsRate)
}

func TestCalculate_NoExpensesUsesDefaultIncome(t *testing.T) {
	res := Calculate(ledger(1500), nil)
	assert.InDelta(t, 1500, res.Income, eps)
	assert.InDelta(t, 1500, res.TotalActualSavings, eps)
}

func TestCalculate_AllTimeSumsDistinctMonths(t *testing.T) {
	l := ledger(1000,
		expense("a", 10, model.CategoryNeed, "2024-01-03"),
		expense("b", 20, model.CategoryNeed, "2024-01-20"),
		expense("c", 30, model.CategoryWant, "2024-01-31T23:00:00Z"),
		expense("d", 40, model.CategoryWant, "2024-02-14"),
	).WithMonthlyIncome("2024-02", dec(3000)).
		WithMonthlyIncome("2023-12", dec(9999)) // no expenses that month

	res := Calculate(l, nil)

	// January counted once at the default, February at its override.
	assert.InDelta(t, 4000, res.Income, eps)
}

func TestCalculate_AllTimeIgnoresUndatedMonths(t *testing.T) {
	l := ledger(1000,
		model.Expense{ID: "x", Amount: dec(40), Category: model.CategoryNeed},
		expense("a", 100, model.CategoryNeed, "2024-03-05"),
	)

	res := Calculate(l, nil)
	assert.InDelta(t, 1000, res.Income, eps)
	assert.InDelta(t, 140, res.Breakdown.Needs, eps, "undated spend still counts")

	onlyUndated := ledger(1000, model.Expense{ID: "x", Amount: dec(40), Category: model.CategoryNeed})
	assert.InDelta(t, 1000, Calculate(onlyUndated, nil).Income, eps)
}

func TestCalculate_NegativeIncomeGuardsDivision(t *testing.T) {
	l := ledger(-500, expense("a", 100, model.CategoryNeed, "2024-03-05"))

	res := Calculate(l, nil)

	assert.Equal(t, model.Breakdown{}, res.Percentages)
	assert.Zero(t, res.SavingsRate)
	assert.Zero(t, res.EfficiencyScore)
	assert.InDelta(t, -600, res.Remaining, eps)
}

func TestCalculate_SpentExcludesSavings(t *testing.T) {
	l := ledger(2000,
		expense("a", 300, model.CategoryNeed, "2024-03-01"),
		expense("b", 200, model.CategoryWant, "2024-03-02"),
		expense("c", 50, model.CategoryExcess, "2024-03-03"),
		expense("d", 400, model.CategorySaving, "2024-03-04"),
	)

	res := Calculate(l, nil)

	assert.InDelta(t, 550, res.ExpensesTotal, eps)
	assert.InDelta(t, res.ExpensesTotal, res.TotalSpent, eps)
	assert.InDelta(t, 950, res.TotalAllocated, eps)
	assert.InDelta(t, 1050, res.Remaining, eps)
	assert.InDelta(t, 1450, res.TotalActualSavings, eps)
	assert.GreaterOrEqual(t, res.TotalActualSavings, res.Breakdown.Savings)
}

func TestCalculate_SavingsPercentAndDeviationDiffer(t *testing.T) {
	l := ledger(1000,
		expense("a", 200, model.CategoryNeed, "2024-03-01"),
		expense("b", 100, model.CategorySaving, "2024-03-02"),
	)

	res := Calculate(l, nil)

	// The percentage counts leftover income as saved; the deviation does not.
	assert.InDelta(t, 80, res.Percentages.Savings, eps)
	assert.InDelta(t, -100, res.Deviations.Savings, eps)
}

func TestCalculate_ExcessFoldsIntoWantsDeviation(t *testing.T) {
	l := ledger(1000,
		expense("a", 100, model.CategoryWant, "2024-03-01"),
		expense("b", 100, model.CategoryExcess, "2024-03-02"),
	)

	res := Calculate(l, nil)

	assert.InDelta(t, -100, res.Deviations.Wants, eps)
	assert.InDelta(t, 10, res.Percentages.Wants, eps)
	assert.InDelta(t, 10, res.Percentages.Excess, eps)
	// Excess penalty min(20, 0.1*50)=5, savings shortfall 0.2*60=12.
	assert.Equal(t, 83, res.EfficiencyScore)
}

func TestCalculate_ScoreClampsAtZero(t *testing.T) {
	l := ledger(100, expense("a", 1000, model.CategoryNeed, "2024-03-01"))
	assert.Zero(t, Calculate(l, nil).EfficiencyScore)
}

func TestCalculate_ScorePerfectBudget(t *testing.T) {
	l := ledger(1000,
		expense("a", 500, model.CategoryNeed, "2024-03-01"),
		expense("b", 300, model.CategoryWant, "2024-03-02"),
		expense("c", 200, model.CategorySaving, "2024-03-03"),
	)
	assert.Equal(t, 100, Calculate(l, nil).EfficiencyScore)
}

func TestCalculate_UnknownCategoryIgnored(t *testing.T) {
	l := ledger(1000,
		expense("a", 100, model.CategoryNeed, "2024-03-01"),
		expense("b", 900, model.Category("Gift"), "2024-03-02"),
	)

	res := Calculate(l, nil)

	assert.InDelta(t, 100, res.ExpensesTotal, eps)
	assert.InDelta(t, 100, res.TotalAllocated, eps)
}

func TestCalculate_ModeRatios(t *testing.T) {
	l := ledger(1000).WithMode(model.Mode652015)

	res := Calculate(l, nil)

	assert.InDelta(t, 650, res.Ideal.Needs, eps)
	assert.InDelta(t, 200, res.Ideal.Wants, eps)
	assert.InDelta(t, 150, res.Ideal.Savings, eps)
}

func TestCalculate_DoesNotMutateLedger(t *testing.T) {
	l := ledger(1000,
		expense("b", 20, model.CategoryWant, "2024-03-02"),
		expense("a", 10, model.CategoryNeed, "2024-03-01"),
	)
	before := []string{l.Expenses[0].ID, l.Expenses[1].ID}

	_ = Calculate(l, period(t, "2024-03"))
	_ = AggregateByMonth(l.Expenses)
	_ = SortNewestFirst(l.Expenses)

	assert.Equal(t, before, []string{l.Expenses[0].ID, l.Expenses[1].ID})
}

func TestCalculate_TotalsMatchAggregators(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	l := ledger(1000,
		expense("a", 12.5, model.CategoryNeed, "2024-02-10"),
		expense("b", 7.25, model.CategoryWant, "2024-02-29"),
		expense("c", 30, model.CategoryExcess, "2024-03-01"),
		expense("d", 100, model.CategorySaving, "2024-03-31T08:00:00Z"),
	)

	res := Calculate(l, nil)
	want := res.ExpensesTotal + res.Breakdown.Savings

	var monthSum float64
	for _, m := range AggregateByMonth(l.Expenses) {
		monthSum += m.Total
	}
	var daySum float64
	for _, d := range AggregateByDayAt(l.Expenses, 60, now) {
		daySum += d.Total
	}

	assert.InDelta(t, want, monthSum, eps)
	assert.InDelta(t, want, daySum, eps)
}

func TestViews(t *testing.T) {
	l := ledger(1000,
		expense("a", 600, model.CategoryNeed, "2024-03-01"),
		expense("b", 100, model.CategoryExcess, "2024-03-02"),
		expense("c", 200, model.CategorySaving, "2024-03-03"),
	)
	res := Calculate(l, nil)

	cmp := Comparison(res)
	require.Len(t, cmp, 3)
	assert.InDelta(t, 100, cmp[1].Spent, eps, "wants includes excess")
	assert.InDelta(t, 300, cmp[1].Target, eps)

	dist := Distribution(res)
	require.Len(t, dist, 2, "empty wants slice dropped, savings never included")
	assert.Equal(t, "Needs", dist[0].Name)
	assert.Equal(t, "Excess", dist[1].Name)

	vars := Variances(res)
	assert.Equal(t, VarianceOver, vars[0].Status)
	assert.Equal(t, VarianceUnder, vars[1].Status)
	assert.Equal(t, VarianceOptimal, vars[2].Status)

	fill, over := Usage(res.Breakdown.Needs, res.Ideal.Needs)
	assert.InDelta(t, 1, fill, eps)
	assert.True(t, over)

	fill, over = Usage(5, 0)
	assert.InDelta(t, 1, fill, eps)
	assert.True(t, over)
}
