package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/shopspring/decimal"
)

// benchLedger builds a ledger of n expenses spread over two years.
func benchLedger(n int) model.Ledger {
	start := time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)
	l := model.DefaultLedger().WithIncome(decimal.NewFromInt(5000))
	expenses := make([]model.Expense, n)
	for i := range expenses {
		expenses[i] = model.Expense{
			ID:          fmt.Sprintf("e%06d", i),
			Amount:      decimal.New(int64(100+i%5000), -2),
			Category:    model.Categories[i%len(model.Categories)],
			Description: fmt.Sprintf("payee %d", i%50),
			Date:        start.AddDate(0, 0, i%730),
		}
	}
	l.Expenses = expenses
	for m := 1; m <= 12; m += 3 {
		l = l.WithMonthlyIncome(fmt.Sprintf("2024-%02d", m), decimal.NewFromInt(5500))
	}
	return l
}

func BenchmarkCalculate(b *testing.B) {
	l := benchLedger(20000)
	p := model.NewPeriod(2024, time.March)

	b.Run("month", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Calculate(l, &p)
		}
	})
	b.Run("all-time", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Calculate(l, nil)
		}
	})
}

func BenchmarkAggregateByMonth(b *testing.B) {
	l := benchLedger(20000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		months := AggregateByMonth(l.Expenses)
		_ = MonthlyTargets(l, months)
	}
}

func BenchmarkAggregateByDescription(b *testing.B) {
	l := benchLedger(20000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AggregateByDescription(l.Expenses)
	}
}
