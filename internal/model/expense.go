// Package model defines domain types for the ratio budget ledger and its derived metrics.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies an expense into one of the allocation buckets.
//
// In memory only the four constants below are produced by this package's
// constructors. Documents loaded from disk may carry other labels; those are
// kept verbatim so they survive a save, but Known reports false and they are
// never counted in a named bucket.
type Category string

const (
	CategoryNeed   Category = "Need"
	CategoryWant   Category = "Want"
	CategoryExcess Category = "Excess"
	CategorySaving Category = "Saving/Invested"
)

// Categories lists the known categories in display order.
var Categories = []Category{CategoryNeed, CategoryWant, CategoryExcess, CategorySaving}

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
)

// Known reports whether c is one of the four defined categories.
func (c Category) Known() bool {
	switch c {
	case CategoryNeed, CategoryWant, CategoryExcess, CategorySaving:
		return true
	}
	return false
}

// ParseCategory resolves user input to a known category. Matching is
// case-insensitive and accepts a few shorthands for Saving/Invested.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "need", "needs":
		return CategoryNeed, nil
	case "want", "wants":
		return CategoryWant, nil
	case "excess":
		return CategoryExcess, nil
	case "saving/invested", "saving", "savings", "invested":
		return CategorySaving, nil
	}
	return "", ErrUnknownCategory
}

// Expense is a single categorized ledger entry. Expenses are never edited;
// they are created with NewExpense and removed by ID.
type Expense struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	Category    Category
	Date        time.Time
}

// NewExpense builds an expense with a freshly generated ID.
func NewExpense(amount decimal.Decimal, category Category, description string, date time.Time) Expense {
	return Expense{
		ID:          uuid.NewString(),
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Category:    category,
		Date:        date,
	}
}

// DayKey returns the expense's calendar date as YYYY-MM-DD.
func (e Expense) DayKey() string {
	return e.Date.Format(DayLayout)
}

// MonthKey returns the expense's calendar month as YYYY-MM.
func (e Expense) MonthKey() string {
	return e.Date.Format(MonthLayout)
}

// ParseAmount parses a user-entered amount. Both "12.50" and "12,50" are
// accepted; negative values are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// CoerceAmount converts a raw JSON amount into a decimal. Numbers and numeric
// strings are accepted; anything else (null, missing, garbage) becomes zero.
func CoerceAmount(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
		s = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NonNegative clamps an expense amount read from storage to zero or more.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// dateLayouts are tried in order when reading expense dates from documents.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DayLayout,
}

// ParseDate reads an ISO-8601 date or timestamp. Offsets are preserved, so
// the calendar date is the one the timestamp was recorded in.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

type expenseDoc struct {
	ID          string          `json:"id"`
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description,omitempty"`
	Category    json.RawMessage `json:"category"`
	Date        string          `json:"date"`
}

// MarshalJSON writes the expense in the ledger document shape, with the
// amount as a bare JSON number.
func (e Expense) MarshalJSON() ([]byte, error) {
	cat, err := json.Marshal(string(e.Category))
	if err != nil {
		return nil, err
	}
	return json.Marshal(expenseDoc{
		ID:          e.ID,
		Amount:      json.RawMessage(e.Amount.String()),
		Description: e.Description,
		Category:    cat,
		Date:        e.Date.Format(time.RFC3339Nano),
	})
}

// UnmarshalJSON reads an expense leniently: malformed or negative amounts
// become zero, unrecognized categories are kept verbatim, and an unparsable
// date becomes the zero time.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var doc expenseDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var cat string
	if len(doc.Category) > 0 {
		_ = json.Unmarshal(doc.Category, &cat) // non-string labels stay empty
	}

	date, _ := ParseDate(doc.Date)

	*e = Expense{
		ID:          doc.ID,
		Amount:      NonNegative(CoerceAmount(doc.Amount)),
		Description: doc.Description,
		Category:    Category(cat),
		Date:        date,
	}
	return nil
}
