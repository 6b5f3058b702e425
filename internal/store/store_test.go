package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger() model.Ledger {
	d1 := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 6, 9, 30, 0, 0, time.FixedZone("", 2*3600))
	return model.DefaultLedger().
		WithIncome(decimal.NewFromInt(3000)).
		WithMonthlyIncome("2024-03", decimal.RequireFromString("3250.50")).
		WithMode(model.Mode652015).
		WithCurrency(model.GBP).
		WithExpense(model.Expense{ID: "aaa-1", Amount: decimal.RequireFromString("12.34"), Category: model.CategoryNeed, Description: "bus", Date: d1}).
		WithExpense(model.Expense{ID: "bbb-2", Amount: decimal.NewFromInt(200), Category: model.CategorySaving, Date: d2}).
		WithExpense(model.Expense{ID: "aaa-3", Amount: decimal.NewFromInt(7), Category: model.Category("Gift"), Date: d1})
}

func assertSameLedger(t *testing.T, want, got model.Ledger) {
	t.Helper()
	assert.True(t, want.Income.Equal(got.Income), "income %s != %s", want.Income, got.Income)
	assert.Equal(t, want.Mode, got.Mode)
	assert.Equal(t, want.Currency, got.Currency)
	require.Len(t, got.MonthlyIncomes, len(want.MonthlyIncomes))
	for k, v := range want.MonthlyIncomes {
		assert.True(t, v.Equal(got.MonthlyIncomes[k]), k)
	}
	require.Len(t, got.Expenses, len(want.Expenses))
	for i, e := range want.Expenses {
		g := got.Expenses[i]
		assert.Equal(t, e.ID, g.ID)
		assert.True(t, e.Amount.Equal(g.Amount), e.ID)
		assert.Equal(t, e.Category, g.Category)
		assert.Equal(t, e.Description, g.Description)
		assert.True(t, e.Date.Equal(g.Date), e.ID)
		assert.Equal(t, e.DayKey(), g.DayKey(), "calendar day preserved")
	}
}

func TestSQLiteFreshLoadsDefault(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nested", "ledger.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	l, err := db.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLedger(), l)
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	db, err := Open(path)
	require.NoError(t, err)
	want := sampleLedger()
	require.NoError(t, db.Save(ctx, want))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	got, err := db.Load(ctx)
	require.NoError(t, err)
	assertSameLedger(t, want, got)

	n, err := db.ExpenseCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSQLiteSaveReplaces(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.Save(ctx, sampleLedger()))
	require.NoError(t, db.Save(ctx, model.DefaultLedger()))

	got, err := db.Load(ctx)
	require.NoError(t, err)
	assertSameLedger(t, model.DefaultLedger(), got)
}

func TestDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")

	doc, err := OpenDocument(path)
	require.NoError(t, err)

	missing, err := doc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLedger(), missing)

	want := sampleLedger()
	require.NoError(t, doc.Save(ctx, want))
	got, err := doc.Load(ctx)
	require.NoError(t, err)
	assertSameLedger(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file cleaned up")
}

func TestDocumentMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	doc, err := OpenDocument(path)
	require.NoError(t, err)
	_, err = doc.Load(context.Background())
	assert.Error(t, err)
}

func TestDocumentCanceledContext(t *testing.T) {
	doc, err := OpenDocument(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, doc.Save(ctx, model.DefaultLedger()), context.Canceled)
}

func TestOpenAuto(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenAuto(filepath.Join(dir, "ledger.JSON"))
	require.NoError(t, err)
	assert.IsType(t, &Document{}, s)
	require.NoError(t, s.Close())

	s, err = OpenAuto(filepath.Join(dir, "ledger.db"))
	require.NoError(t, err)
	assert.IsType(t, &DB{}, s)
	require.NoError(t, s.Close())
}

func TestReadWriteLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, sampleLedger()))
	assert.Contains(t, buf.String(), `"monthlyIncomes"`)

	got, err := ReadLedger(&buf)
	require.NoError(t, err)
	assertSameLedger(t, sampleLedger(), got)
}

func TestResolveExpenseID(t *testing.T) {
	l := sampleLedger()

	id, err := ResolveExpenseID(l, "bbb")
	require.NoError(t, err)
	assert.Equal(t, "bbb-2", id)

	id, err = ResolveExpenseID(l, "aaa-3")
	require.NoError(t, err)
	assert.Equal(t, "aaa-3", id)

	_, err = ResolveExpenseID(l, "aaa")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = ResolveExpenseID(l, "zzz")
	assert.ErrorIs(t, err, ErrExpenseNotFound)

	_, err = ResolveExpenseID(l, " ")
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	require.NoError(t, db.Save(ctx, sampleLedger()))

	removed, err := DeleteExpense(ctx, db, "bbb")
	require.NoError(t, err)
	assert.Equal(t, "bbb-2", removed.ID)

	_, err = DeleteExpense(ctx, db, "bbb")
	assert.ErrorIs(t, err, ErrExpenseNotFound)

	got, err := db.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Expenses, 2)
	assert.Equal(t, "aaa-1", got.Expenses[0].ID)
	assert.Equal(t, "aaa-3", got.Expenses[1].ID)
}
