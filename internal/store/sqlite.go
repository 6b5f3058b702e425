// Package store persists the ledger document. Two backends are provided: a
// SQLite database (the default) and a plain JSON document file in the shape
// used by import and export.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// LedgerStore loads and saves the whole ledger document. Save replaces
// everything previously stored.
type LedgerStore interface {
	Load(ctx context.Context) (model.Ledger, error)
	Save(ctx context.Context, l model.Ledger) error
	Close() error
}

// OpenAuto opens a document store for .json paths and a SQLite store for
// anything else.
func OpenAuto(path string) (LedgerStore, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return OpenDocument(path)
	}
	return Open(path)
}

// DB is the SQLite ledger store.
type DB struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (s *DB) Close() error {
	return s.db.Close()
}

// Load reads the ledger. A fresh database yields model.DefaultLedger.
func (s *DB) Load(ctx context.Context) (model.Ledger, error) {
	l := model.DefaultLedger()

	var income, mode, currency string
	err := s.db.QueryRowContext(ctx, "SELECT income, mode, currency FROM ledger WHERE id = 1").
		Scan(&income, &mode, &currency)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return l, nil
	case err != nil:
		return model.Ledger{}, fmt.Errorf("reading ledger: %w", err)
	}

	l.Income = parseDecimal(income)
	if m := model.BudgetMode(mode); m.Valid() {
		l.Mode = m
	}
	if c := model.Currency(currency); c.Valid() {
		l.Currency = c
	}

	if l.MonthlyIncomes, err = s.loadMonthlyIncomes(ctx); err != nil {
		return model.Ledger{}, err
	}
	if l.Expenses, err = s.loadExpenses(ctx); err != nil {
		return model.Ledger{}, err
	}
	return l, nil
}

func (s *DB) loadMonthlyIncomes(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT month, income FROM monthly_incomes")
	if err != nil {
		return nil, fmt.Errorf("reading monthly incomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var month, income string
		if err := rows.Scan(&month, &income); err != nil {
			return nil, err
		}
		result[month] = parseDecimal(income)
	}
	return result, rows.Err()
}

func (s *DB) loadExpenses(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, amount, description, category, date
		FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("reading expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	expenses := []model.Expense{}
	for rows.Next() {
		var e model.Expense
		var amount, category, date string
		if err := rows.Scan(&e.ID, &amount, &e.Description, &category, &date); err != nil {
			return nil, err
		}
		e.Amount = model.NonNegative(parseDecimal(amount))
		e.Category = model.Category(category)
		if date != "" {
			e.Date, _ = time.Parse(time.RFC3339Nano, date)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Save replaces the stored ledger in a single transaction.
func (s *DB) Save(ctx context.Context, l model.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO ledger (id, income, mode, currency, updated_at)
		VALUES (1, ?, ?, ?, ?)`,
		l.Income.String(), string(l.Mode), string(l.Currency), now)
	if err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM monthly_incomes"); err != nil {
		return err
	}
	for month, income := range l.MonthlyIncomes {
		_, err = tx.ExecContext(ctx, "INSERT INTO monthly_incomes (month, income) VALUES (?, ?)",
			month, income.String())
		if err != nil {
			return fmt.Errorf("writing income for %s: %w", month, err)
		}
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO expenses
		(id, position, amount, description, category, date)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range l.Expenses {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format(time.RFC3339Nano)
		}
		_, err = stmt.ExecContext(ctx, e.ID, i, e.Amount.String(), e.Description, string(e.Category), date)
		if err != nil {
			return fmt.Errorf("writing expense %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// ExpenseCount returns the number of stored expenses.
func (s *DB) ExpenseCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses").Scan(&count)
	return count, err
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
