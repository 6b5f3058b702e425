package model

import (
	"errors"
	"strings"
)

// BudgetMode names a fixed needs/wants/savings allocation target.
type BudgetMode string

const (
	Mode503020 BudgetMode = "50-30-20"
	Mode652015 BudgetMode = "65-20-15"
)

// Modes lists the supported budget modes in display order.
var Modes = []BudgetMode{Mode503020, Mode652015}

// Ratios holds the target fractions of income for each allocation bucket.
// The three fractions sum to 1.
type Ratios struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

var modeRatios = map[BudgetMode]Ratios{
	Mode503020: {Needs: 0.50, Wants: 0.30, Savings: 0.20},
	Mode652015: {Needs: 0.65, Wants: 0.20, Savings: 0.15},
}

var (
	ErrUnknownMode     = errors.New("unknown budget mode")
	ErrUnknownCurrency = errors.New("unknown currency")
)

// Ratios returns the allocation targets for the mode. Unknown modes use 50-30-20.
func (m BudgetMode) Ratios() Ratios {
	if r, ok := modeRatios[m]; ok {
		return r
	}
	return modeRatios[Mode503020]
}

// Valid reports whether m is one of the defined modes.
func (m BudgetMode) Valid() bool {
	_, ok := modeRatios[m]
	return ok
}

// Next cycles to the following mode.
func (m BudgetMode) Next() BudgetMode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// ParseMode validates a user-supplied mode name.
func ParseMode(s string) (BudgetMode, error) {
	m := BudgetMode(strings.TrimSpace(s))
	if !m.Valid() {
		return "", ErrUnknownMode
	}
	return m, nil
}

// Currency is a display currency. No conversion is ever performed.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	INR Currency = "INR"
	JPY Currency = "JPY"
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{USD, EUR, GBP, INR, JPY}

var currencySymbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	INR: "₹",
	JPY: "¥",
}

// Symbol returns the currency sign, "$" for unknown currencies.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return "$"
}

// FractionDigits is the number of minor-unit digits shown for the currency.
func (c Currency) FractionDigits() int {
	if c == JPY {
		return 0
	}
	return 2
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	_, ok := currencySymbols[c]
	return ok
}

// Next cycles to the following currency.
func (c Currency) Next() Currency {
	for i, cur := range Currencies {
		if cur == c {
			return Currencies[(i+1)%len(Currencies)]
		}
	}
	return Currencies[0]
}

// ParseCurrency validates a user-supplied currency code.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrUnknownCurrency
	}
	return c, nil
}
