package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cashflow/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cashflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	want := sampleExpenses()
	require.NoError(t, store.SaveExpenses(ctx, want))

	got, err := store.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteStore_EmptyDatabase(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	expenses, err := store.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	budgets, err := store.LoadBudgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	require.NoError(t, store.SaveExpenses(ctx, sampleExpenses()))

	replacement := []model.Expense{
		model.NewExpense(10, 4.20, model.Category{Kind: model.CategoryTransport}, "bus", date(2024, 3, 3), nil),
	}
	require.NoError(t, store.SaveExpenses(ctx, replacement))

	got, err := store.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestSQLiteStore_BudgetsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	want := []model.Budget{
		{Category: model.Category{Kind: model.CategoryEntertainment}, MonthlyLimit: 120},
		{Category: model.Category{Kind: model.CategoryOther, Label: "gym"}, MonthlyLimit: 55.5},
	}
	require.NoError(t, store.SaveBudgets(ctx, want))

	got, err := store.LoadBudgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cashflow.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveExpenses(ctx, sampleExpenses()))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleExpenses(), got)
}
