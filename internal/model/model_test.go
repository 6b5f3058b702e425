package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Need", CategoryNeed},
		{"wants", CategoryWant},
		{" EXCESS ", CategoryExcess},
		{"saving/invested", CategorySaving},
		{"savings", CategorySaving},
		{"invested", CategorySaving},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCategory("gift")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.False(t, Category("Gift").Known())
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("12,50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))

	for _, in := range []string{"", "  ", "abc", "-3"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`42.5`, "42.5"},
		{`"17"`, "17"},
		{`" 8.25 "`, "8.25"},
		{`null`, "0"},
		{``, "0"},
		{`"abc"`, "0"},
		{`true`, "0"},
		{`{}`, "0"},
	}
	for _, tt := range tests {
		got := CoerceAmount(json.RawMessage(tt.raw))
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s -> %s", tt.raw, got)
	}
}

func TestDecodeLedger_Lenient(t *testing.T) {
	doc := `{
		"income": "3000",
		"monthlyIncomes": {"2024-03": 4500, "2024-04": "bad"},
		"expenses": [
			{"id": "x1", "amount": "12.5", "category": "Need", "date": "2024-03-05T10:00:00Z"},
			{"id": "x2", "amount": null, "category": "Gift", "date": "2024-03-06"},
			{"id": "x3", "amount": 4, "category": 7, "date": "not a date"}
		],
		"mode": "70-20-10",
		"currency": "XYZ"
	}`

	l, err := DecodeLedger([]byte(doc))
	require.NoError(t, err)

	assert.True(t, l.Income.Equal(decimal.NewFromInt(3000)))
	assert.True(t, l.MonthlyIncomes["2024-03"].Equal(decimal.NewFromInt(4500)))
	assert.True(t, l.MonthlyIncomes["2024-04"].IsZero())
	assert.Equal(t, Mode503020, l.Mode)
	assert.Equal(t, USD, l.Currency)

	require.Len(t, l.Expenses, 3)
	assert.True(t, l.Expenses[0].Amount.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, l.Expenses[1].Amount.IsZero())
	assert.Equal(t, Category("Gift"), l.Expenses[1].Category)
	assert.Equal(t, Category(""), l.Expenses[2].Category)
	assert.True(t, l.Expenses[2].Date.IsZero())
}

func TestDecodeLedger_NegativeAmountsBecomeZero(t *testing.T) {
	doc := `{"income": 1000, "expenses": [
		{"id": "n1", "amount": -50, "category": "Need", "date": "2024-03-01"},
		{"id": "n2", "amount": "-7.5", "category": "Want", "date": "2024-03-02"},
		{"id": "n3", "amount": 20, "category": "Want", "date": "2024-03-03"}
	]}`

	l, err := DecodeLedger([]byte(doc))
	require.NoError(t, err)

	require.Len(t, l.Expenses, 3)
	assert.True(t, l.Expenses[0].Amount.IsZero())
	assert.True(t, l.Expenses[1].Amount.IsZero())
	assert.True(t, l.Expenses[2].Amount.Equal(decimal.NewFromInt(20)))
}

func TestDecodeLedger_EmptyAndMissing(t *testing.T) {
	l, err := DecodeLedger(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLedger(), l)

	l, err = DecodeLedger([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, l.Expenses)
	assert.NotNil(t, l.MonthlyIncomes)
	assert.True(t, l.Income.IsZero())

	_, err = DecodeLedger([]byte(`{not json`))
	assert.Error(t, err)
}

func TestLedgerJSONShape(t *testing.T) {
	date := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	l := DefaultLedger().
		WithIncome(decimal.NewFromInt(1000)).
		WithMonthlyIncome("2024-03", decimal.RequireFromString("1250.75")).
		WithCurrency(EUR).
		WithExpense(Expense{ID: "e1", Amount: decimal.RequireFromString("19.99"), Category: CategoryWant, Date: date})

	data, err := json.Marshal(l)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(1000), raw["income"])
	assert.Equal(t, "EUR", raw["currency"])
	assert.Equal(t, "50-30-20", raw["mode"])
	exp := raw["expenses"].([]any)[0].(map[string]any)
	assert.Equal(t, 19.99, exp["amount"])
	assert.Equal(t, "Want", exp["category"])
	assert.Equal(t, "2024-03-05T10:00:00Z", exp["date"])

	back, err := DecodeLedger(data)
	require.NoError(t, err)
	assert.True(t, back.MonthlyIncomes["2024-03"].Equal(decimal.RequireFromString("1250.75")))
	assert.True(t, back.Expenses[0].Date.Equal(date))
}

func TestLedgerImmutableUpdates(t *testing.T) {
	base := DefaultLedger().WithExpense(NewExpense(decimal.NewFromInt(5), CategoryNeed, " lunch ", time.Now()))
	id := base.Expenses[0].ID
	assert.NotEmpty(t, id)
	assert.Equal(t, "lunch", base.Expenses[0].Description)

	added := base.WithExpense(NewExpense(decimal.NewFromInt(6), CategoryWant, "", time.Now()))
	assert.Len(t, base.Expenses, 1)
	assert.Len(t, added.Expenses, 2)
	assert.NotEqual(t, added.Expenses[0].ID, added.Expenses[1].ID)

	removed, ok := added.WithoutExpense(id)
	assert.True(t, ok)
	assert.Len(t, removed.Expenses, 1)
	assert.Len(t, added.Expenses, 2)

	_, ok = removed.WithoutExpense("missing")
	assert.False(t, ok)

	withMonth := base.WithMonthlyIncome("2024-03", decimal.NewFromInt(1))
	assert.Empty(t, base.MonthlyIncomes)
	assert.Len(t, withMonth.MonthlyIncomes, 1)

	_, found := base.FindExpense(id)
	assert.True(t, found)
}

func TestWithIncomeFor(t *testing.T) {
	p := NewPeriod(2024, time.March)
	v := decimal.NewFromInt(2500)

	l := DefaultLedger().WithIncomeFor(v, &p)
	assert.True(t, l.Income.Equal(v))
	assert.True(t, l.MonthlyIncomes["2024-03"].Equal(v))

	all := DefaultLedger().WithIncomeFor(v, nil)
	assert.True(t, all.Income.Equal(v))
	assert.Empty(t, all.MonthlyIncomes)
}

func TestModesAndCurrencies(t *testing.T) {
	assert.Equal(t, Mode652015, Mode503020.Next())
	assert.Equal(t, Mode503020, Mode652015.Next())
	assert.Equal(t, Ratios{Needs: 0.5, Wants: 0.3, Savings: 0.2}, BudgetMode("bogus").Ratios())

	_, err := ParseMode("40-40-20")
	assert.ErrorIs(t, err, ErrUnknownMode)

	c, err := ParseCurrency("jpy")
	require.NoError(t, err)
	assert.Equal(t, JPY, c)
	assert.Equal(t, "¥", c.Symbol())
	assert.Zero(t, c.FractionDigits())
	assert.Equal(t, USD, JPY.Next())
	assert.Equal(t, "$", Currency("XYZ").Symbol())
}

func TestPeriods(t *testing.T) {
	p, err := ParsePeriod("2024-12")
	require.NoError(t, err)
	assert.Equal(t, "2025-01", p.Next().Key())
	assert.Equal(t, "2024-11", p.Prev().Key())
	assert.Equal(t, "Dec 2024", p.Label())
	assert.Equal(t, "2023-12", NewPeriod(2024, time.January).Prev().Key())

	_, err = ParsePeriod("2024/12")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	month, year := 11, 2024
	got, err := PeriodFromIndex(&month, &year)
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	got, err = PeriodFromIndex(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = PeriodFromIndex(&month, nil)
	assert.ErrorIs(t, err, ErrPartialPeriod)
	_, err = PeriodFromIndex(nil, &year)
	assert.ErrorIs(t, err, ErrPartialPeriod)

	bad := 12
	_, err = PeriodFromIndex(&bad, &year)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriodContainsUsesOwnLocation(t *testing.T) {
	p := NewPeriod(2024, time.March)
	tokyo := time.FixedZone("JST", 9*3600)

	assert.True(t, p.Contains(time.Date(2024, 3, 1, 0, 30, 0, 0, tokyo)))
	assert.False(t, p.Contains(time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC)))
}
