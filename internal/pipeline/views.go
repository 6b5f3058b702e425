package pipeline

import "github.com/theirongolddev/ratio/internal/model"

// Spend status labels shown on the spend tile.
const (
	StatusOverBudget = "OVER BUDGET"
	StatusOnTrack    = "ON TRACK"
)

// SpendStatus reports whether spending exceeded the view's income.
func SpendStatus(res model.CalculationResult) string {
	if res.ExpensesTotal > res.Income {
		return StatusOverBudget
	}
	return StatusOnTrack
}

// Comparison pairs actual allocation with target for each bucket. Wants
// includes excess, matching how deviations are measured.
func Comparison(res model.CalculationResult) []model.Comparison {
	b := res.Breakdown
	return []model.Comparison{
		{Name: "Needs", Spent: b.Needs, Target: res.Ideal.Needs},
		{Name: "Wants", Spent: b.Wants + b.Excess, Target: res.Ideal.Wants},
		{Name: "Savings", Spent: b.Savings, Target: res.Ideal.Savings},
	}
}

// Distribution splits outflow across needs, wants and excess, dropping empty
// slices. Savings are not outflow and never appear.
func Distribution(res model.CalculationResult) []model.Slice {
	b := res.Breakdown
	all := []model.Slice{
		{Name: "Needs", Value: b.Needs},
		{Name: "Wants", Value: b.Wants},
		{Name: "Excess", Value: b.Excess},
	}
	var slices []model.Slice
	for _, s := range all {
		if s.Value > 0 {
			slices = append(slices, s)
		}
	}
	return slices
}

// Variance status labels.
const (
	VarianceOver    = "DEVIATION"
	VarianceUnder   = "UNDERLOAD"
	VarianceOptimal = "OPTIMAL"
)

// varianceTolerance is the band, in currency units, treated as on target.
const varianceTolerance = 1.0

// Variances labels each deviation as over target, under target, or within
// one currency unit of it.
func Variances(res model.CalculationResult) []model.Variance {
	d := res.Deviations
	return []model.Variance{
		{Label: "Needs", Amount: d.Needs, Status: varianceStatus(d.Needs)},
		{Label: "Wants", Amount: d.Wants, Status: varianceStatus(d.Wants)},
		{Label: "Savings", Amount: d.Savings, Status: varianceStatus(d.Savings)},
	}
}

func varianceStatus(v float64) string {
	switch {
	case v > varianceTolerance:
		return VarianceOver
	case v < -varianceTolerance:
		return VarianceUnder
	default:
		return VarianceOptimal
	}
}

// Usage returns how full a target bar is (0-1) and whether current has
// passed the target. A zero target is treated as 1 to avoid dividing by zero.
func Usage(current, target float64) (fill float64, over bool) {
	if target == 0 {
		target = 1
	}
	fill = current / target
	return max(0, min(1, fill)), current > target
}
