package model

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Ledger is the complete persisted budget document. Values are treated as
// immutable: every With* method returns a new Ledger and leaves the receiver's
// slice and map untouched.
type Ledger struct {
	Income         decimal.Decimal
	MonthlyIncomes map[string]decimal.Decimal
	Expenses       []Expense
	Mode           BudgetMode
	Currency       Currency
}

// DefaultLedger is the empty ledger used on first start and after a reset.
func DefaultLedger() Ledger {
	return Ledger{
		Income:         decimal.Zero,
		MonthlyIncomes: map[string]decimal.Decimal{},
		Expenses:       []Expense{},
		Mode:           Mode503020,
		Currency:       USD,
	}
}

func (l Ledger) clone() Ledger {
	out := l
	out.MonthlyIncomes = maps.Clone(l.MonthlyIncomes)
	if out.MonthlyIncomes == nil {
		out.MonthlyIncomes = map[string]decimal.Decimal{}
	}
	out.Expenses = slices.Clone(l.Expenses)
	if out.Expenses == nil {
		out.Expenses = []Expense{}
	}
	return out
}

// WithExpense appends e.
func (l Ledger) WithExpense(e Expense) Ledger {
	out := l.clone()
	out.Expenses = append(out.Expenses, e)
	return out
}

// WithoutExpense removes the expense with the given id. The second result
// reports whether anything was removed.
func (l Ledger) WithoutExpense(id string) (Ledger, bool) {
	out := l.clone()
	n := len(out.Expenses)
	out.Expenses = slices.DeleteFunc(out.Expenses, func(e Expense) bool { return e.ID == id })
	return out, len(out.Expenses) != n
}

// WithIncome sets the default income.
func (l Ledger) WithIncome(v decimal.Decimal) Ledger {
	out := l.clone()
	out.Income = v
	return out
}

// WithMonthlyIncome sets the income override for a YYYY-MM key.
func (l Ledger) WithMonthlyIncome(key string, v decimal.Decimal) Ledger {
	out := l.clone()
	out.MonthlyIncomes[key] = v
	return out
}

// WithIncomeFor applies an income edit made while viewing p. Editing a month
// stores the override for that month and also makes it the new default;
// editing the all-time view (nil) changes only the default.
func (l Ledger) WithIncomeFor(v decimal.Decimal, p *Period) Ledger {
	if p == nil {
		return l.WithIncome(v)
	}
	return l.WithMonthlyIncome(p.Key(), v).WithIncome(v)
}

// WithMode switches the budget mode.
func (l Ledger) WithMode(m BudgetMode) Ledger {
	out := l.clone()
	out.Mode = m
	return out
}

// WithCurrency switches the display currency.
func (l Ledger) WithCurrency(c Currency) Ledger {
	out := l.clone()
	out.Currency = c
	return out
}

// FindExpense returns the expense with the given id.
func (l Ledger) FindExpense(id string) (Expense, bool) {
	i := slices.IndexFunc(l.Expenses, func(e Expense) bool { return e.ID == id })
	if i < 0 {
		return Expense{}, false
	}
	return l.Expenses[i], true
}

type ledgerDoc struct {
	Income         json.RawMessage            `json:"income"`
	MonthlyIncomes map[string]json.RawMessage `json:"monthlyIncomes"`
	Expenses       []Expense                  `json:"expenses"`
	Mode           BudgetMode                 `json:"mode"`
	Currency       Currency                   `json:"currency"`
}

// MarshalJSON writes the ledger in the persisted document shape.
func (l Ledger) MarshalJSON() ([]byte, error) {
	incomes := make(map[string]json.RawMessage, len(l.MonthlyIncomes))
	for k, v := range l.MonthlyIncomes {
		incomes[k] = json.RawMessage(v.String())
	}
	exps := l.Expenses
	if exps == nil {
		exps = []Expense{}
	}
	return json.Marshal(ledgerDoc{
		Income:         json.RawMessage(l.Income.String()),
		MonthlyIncomes: incomes,
		Expenses:       exps,
		Mode:           l.Mode,
		Currency:       l.Currency,
	})
}

// UnmarshalJSON reads a ledger document. Missing collections become empty,
// unknown modes and currencies fall back to the defaults, and malformed
// amounts become zero.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var doc ledgerDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	out := DefaultLedger()
	out.Income = CoerceAmount(doc.Income)
	for k, raw := range doc.MonthlyIncomes {
		out.MonthlyIncomes[k] = CoerceAmount(raw)
	}
	if doc.Expenses != nil {
		out.Expenses = doc.Expenses
	}
	if doc.Mode.Valid() {
		out.Mode = doc.Mode
	}
	if doc.Currency.Valid() {
		out.Currency = doc.Currency
	}

	*l = out
	return nil
}

// DecodeLedger parses a ledger document. Empty input yields DefaultLedger.
func DecodeLedger(data []byte) (Ledger, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultLedger(), nil
	}
	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return Ledger{}, err
	}
	return l, nil
}
