package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/ratio/internal/model"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrAmbiguousID     = errors.New("expense id prefix matches more than one expense")
)

// Update loads the ledger, applies fn, and saves the result. Nothing is
// written when fn returns an error.
func Update(ctx context.Context, s LedgerStore, fn func(model.Ledger) (model.Ledger, error)) (model.Ledger, error) {
	l, err := s.Load(ctx)
	if err != nil {
		return model.Ledger{}, err
	}
	next, err := fn(l)
	if err != nil {
		return l, err
	}
	if err := s.Save(ctx, next); err != nil {
		return l, fmt.Errorf("saving ledger: %w", err)
	}
	return next, nil
}

// ResolveExpenseID returns the full id of the expense whose id equals ref or
// uniquely starts with it.
func ResolveExpenseID(l model.Ledger, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrExpenseNotFound
	}
	if _, ok := l.FindExpense(ref); ok {
		return ref, nil
	}

	var match string
	for _, e := range l.Expenses {
		if !strings.HasPrefix(e.ID, ref) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %q", ErrAmbiguousID, ref)
		}
		match = e.ID
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrExpenseNotFound, ref)
	}
	return match, nil
}

// DeleteExpense removes the expense identified by ref (full id or unique
// prefix) and returns the removed entry.
func DeleteExpense(ctx context.Context, s LedgerStore, ref string) (model.Expense, error) {
	var removed model.Expense
	_, err := Update(ctx, s, func(l model.Ledger) (model.Ledger, error) {
		id, err := ResolveExpenseID(l, ref)
		if err != nil {
			return l, err
		}
		removed, _ = l.FindExpense(id)
		next, _ := l.WithoutExpense(id)
		return next, nil
	})
	return removed, err
}
