package model

import (
	"errors"
	"fmt"
	"time"
)

// Key layouts for calendar buckets. Both are zero-padded, so lexical order
// matches chronological order.
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

var (
	ErrPartialPeriod = errors.New("month and year must be given together")
	ErrInvalidPeriod = errors.New("invalid month")
)

// Period selects a single calendar month. A nil *Period means the all-time view.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod normalizes year/month, so month 13 of 2024 is January 2025.
func NewPeriod(year int, month time.Month) Period {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Year: t.Year(), Month: t.Month()}
}

// CurrentPeriod returns the month containing now.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: now.Month()}
}

// ParsePeriod parses a YYYY-MM key.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Period{}, fmt.Errorf("%w %q: want YYYY-MM", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// PeriodFromIndex builds a filter from a 0-based month index and a year.
// Both must be present, or both absent for the all-time view (nil, nil).
func PeriodFromIndex(monthIndex, year *int) (*Period, error) {
	switch {
	case monthIndex == nil && year == nil:
		return nil, nil
	case monthIndex == nil || year == nil:
		return nil, ErrPartialPeriod
	}
	if *monthIndex < 0 || *monthIndex > 11 {
		return nil, fmt.Errorf("%w: index %d out of range 0-11", ErrInvalidPeriod, *monthIndex)
	}
	p := Period{Year: *year, Month: time.Month(*monthIndex + 1)}
	return &p, nil
}

// Key returns the YYYY-MM key used for monthly income overrides.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Contains reports whether t falls in the period's calendar month, read in
// t's own location.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// Next returns the following month.
func (p Period) Next() Period {
	return NewPeriod(p.Year, p.Month+1)
}

// Prev returns the preceding month.
func (p Period) Prev() Period {
	return NewPeriod(p.Year, p.Month-1)
}

// Label renders the period as e.g. "Mar 2024".
func (p Period) Label() string {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

func (p Period) String() string {
	return p.Key()
}
