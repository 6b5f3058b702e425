package pipeline

import (
	"math"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/shopspring/decimal"
)

// ResolveIncome returns the income for a YYYY-MM key: the monthly override
// when one exists, otherwise the ledger's default income.
func ResolveIncome(l model.Ledger, monthKey string) decimal.Decimal {
	if v, ok := l.MonthlyIncomes[monthKey]; ok {
		return v
	}
	return l.Income
}

// EffectiveIncome is the income a view is measured against. For a single
// month it is that month's resolved income. For the all-time view (nil) it
// is the sum of resolved incomes over every distinct month that has at least
// one dated expense, or the default income when there is none.
func EffectiveIncome(l model.Ledger, p *model.Period) decimal.Decimal {
	if p != nil {
		return ResolveIncome(l, p.Key())
	}

	active := make(map[string]struct{})
	total := decimal.Zero
	for _, e := range l.Expenses {
		if e.Date.IsZero() {
			continue
		}
		key := e.MonthKey()
		if _, seen := active[key]; seen {
			continue
		}
		active[key] = struct{}{}
		total = total.Add(ResolveIncome(l, key))
	}
	if len(active) == 0 {
		return l.Income
	}
	return total
}

// FilterByPeriod returns the expenses recorded in p, or all of them for nil.
func FilterByPeriod(expenses []model.Expense, p *model.Period) []model.Expense {
	if p == nil {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if p.Contains(e.Date) {
			result = append(result, e)
		}
	}
	return result
}

// categoryTotals sums expense amounts into the four named buckets.
// Unrecognized categories are skipped.
type categoryTotals struct {
	needs, wants, savings, excess decimal.Decimal
}

func (c *categoryTotals) add(e model.Expense) {
	switch e.Category {
	case model.CategoryNeed:
		c.needs = c.needs.Add(e.Amount)
	case model.CategoryWant:
		c.wants = c.wants.Add(e.Amount)
	case model.CategorySaving:
		c.savings = c.savings.Add(e.Amount)
	case model.CategoryExcess:
		c.excess = c.excess.Add(e.Amount)
	}
}

// Calculate derives the dashboard figures for one view of the ledger.
// A nil period is the all-time view. Calculate never fails: malformed
// amounts were already coerced to zero when the ledger was loaded, unknown
// categories are ignored, and every division is guarded against a
// non-positive income.
func Calculate(l model.Ledger, p *model.Period) model.CalculationResult {
	income := EffectiveIncome(l, p).InexactFloat64()
	ratios := l.Mode.Ratios()

	var totals categoryTotals
	for _, e := range FilterByPeriod(l.Expenses, p) {
		totals.add(e)
	}

	breakdown := model.Breakdown{
		Needs:   totals.needs.InexactFloat64(),
		Wants:   totals.wants.InexactFloat64(),
		Savings: totals.savings.InexactFloat64(),
		Excess:  totals.excess.InexactFloat64(),
	}

	// Savings are set aside, not spent.
	expensesTotal := totals.needs.Add(totals.wants).Add(totals.excess).InexactFloat64()
	totalAllocated := totals.needs.Add(totals.wants).Add(totals.excess).Add(totals.savings).InexactFloat64()
	remaining := income - totalAllocated

	// Income left unallocated at period end counts as saved.
	totalActualSavings := breakdown.Savings + math.Max(0, remaining)

	ideal := model.Targets{
		Income:  income,
		Needs:   income * ratios.Needs,
		Wants:   income * ratios.Wants,
		Savings: income * ratios.Savings,
	}

	percentages := model.Breakdown{
		Needs:   percentOf(breakdown.Needs, income),
		Wants:   percentOf(breakdown.Wants, income),
		Savings: percentOf(totalActualSavings, income),
		Excess:  percentOf(breakdown.Excess, income),
	}

	// Excess counts against the wants target; savings variance uses only
	// explicitly tagged savings.
	deviations := model.Deviations{
		Needs:   breakdown.Needs - ideal.Needs,
		Wants:   breakdown.Wants + breakdown.Excess - ideal.Wants,
		Savings: breakdown.Savings - ideal.Savings,
	}

	return model.CalculationResult{
		TotalSpent:         expensesTotal,
		Remaining:          remaining,
		Income:             income,
		ExpensesTotal:      expensesTotal,
		TotalAllocated:     totalAllocated,
		TotalActualSavings: totalActualSavings,
		Breakdown:          breakdown,
		Percentages:        percentages,
		Ideal:              ideal,
		Deviations:         deviations,
		EfficiencyScore:    efficiencyScore(income, remaining, breakdown.Excess, deviations),
		SavingsRate:        percentOf(totalActualSavings, income),
	}
}

// efficiencyScore rates adherence to the mode on a 0-100 scale. Each penalty
// is measured against the full 100 baseline and subtracted in turn.
func efficiencyScore(income, remaining, excess float64, dev model.Deviations) int {
	if income <= 0 {
		return 0
	}

	score := 100.0
	if remaining < 0 {
		score -= math.Min(30, math.Abs(remaining)/income*100)
	}
	if excess > 0 {
		score -= math.Min(20, excess/income*50)
	}
	score -= math.Max(0, dev.Needs/income)*40 + math.Max(0, -dev.Savings/income)*60

	score = math.Max(0, math.Min(100, score))
	return int(math.Floor(score + 0.5)) // half up
}

// percentOf returns part as a 0-100 share of whole, or 0 when whole <= 0.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
