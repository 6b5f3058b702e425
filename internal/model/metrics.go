package model

import "time"

// Breakdown holds per-category amounts (or percentages) for a view.
type Breakdown struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
	Excess  float64 `json:"excess"`
}

// Targets holds the ideal allocation of an income under a budget mode.
type Targets struct {
	Income  float64 `json:"income"`
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// Deviations are signed differences from target in currency units.
// Positive Needs/Wants means over target; positive Savings means surplus.
type Deviations struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// CalculationResult is everything a dashboard shows for one view of the
// ledger. It is derived on demand and never persisted.
type CalculationResult struct {
	TotalSpent         float64    `json:"totalSpent"`
	Remaining          float64    `json:"remaining"`
	Income             float64    `json:"income"`
	ExpensesTotal      float64    `json:"expensesTotal"`
	TotalAllocated     float64    `json:"totalAllocated"`
	TotalActualSavings float64    `json:"totalActualSavings"`
	Breakdown          Breakdown  `json:"breakdown"`
	Percentages        Breakdown  `json:"percentages"`
	Ideal              Targets    `json:"ideal"`
	Deviations         Deviations `json:"deviations"`
	EfficiencyScore    int        `json:"efficiencyScore"`
	SavingsRate        float64    `json:"savingsRate"`
}

// DayTotal is one bucket of the trailing-window daily series.
type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// MonthTotal is one calendar month of spending split by category. Total also
// includes expenses whose category is not recognized.
type MonthTotal struct {
	Month   string  `json:"month"`
	Total   float64 `json:"total"`
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
	Excess  float64 `json:"excess"`
}

// MonthTarget is the resolved income of a month and its mode targets, used
// as the overlay on per-category trend charts.
type MonthTarget struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Needs   float64 `json:"targetNeeds"`
	Wants   float64 `json:"targetWants"`
	Savings float64 `json:"targetSavings"`
}

// Comparison pairs actual spend with the target for one allocation bucket.
type Comparison struct {
	Name   string  `json:"name"`
	Spent  float64 `json:"spent"`
	Target float64 `json:"target"`
}

// Slice is one segment of the outflow distribution.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Variance is a labeled deviation with a status of DEVIATION, UNDERLOAD or OPTIMAL.
type Variance struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// WeekdayTotal is spending on one day of the week, Sunday = 0.
type WeekdayTotal struct {
	Weekday time.Weekday `json:"weekday"`
	Count   int          `json:"count"`
	Total   float64      `json:"total"`
}

// PayeeTotal groups expenses that share a description.
type PayeeTotal struct {
	Description string   `json:"description"`
	Count       int      `json:"count"`
	Total       float64  `json:"total"`
	Category    Category `json:"category"` // category of the largest share
}
