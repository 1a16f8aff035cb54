package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sampleExpenses() []model.Expense {
	monthly := model.Monthly
	return []model.Expense{
		model.NewExpense(1, 12.5, model.Category{Kind: model.CategoryFood}, "coffee, large", date(2024, 1, 1), nil),
		model.NewExpense(2, 9.99, model.Category{Kind: model.CategorySubscriptions}, "streaming", date(2024, 1, 15), &monthly),
		model.NewExpense(3, 30, model.Category{Kind: model.CategoryOther, Label: "rent split"}, "flatmate", date(2024, 2, 1), nil),
	}
}

func TestCSVStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewCSVStore(t.TempDir())
	require.NoError(t, err)

	want := sampleExpenses()
	require.NoError(t, store.SaveExpenses(ctx, want))

	got, err := store.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, e := range got {
		assert.True(t, e.Consistent())
	}
}

func TestCSVStore_LoadMissingFilesIsEmpty(t *testing.T) {
	ctx := context.Background()
	store, err := NewCSVStore(t.TempDir())
	require.NoError(t, err)

	expenses, err := store.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	budgets, err := store.LoadBudgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestCSVStore_CorruptRowIsStoreError(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewCSVStore(dir)
	require.NoError(t, err)

	contents := "id,amount,category,description,date,is_recurring,recurrence\n" +
		"1,notanumber,Food,coffee,2024-01-01,false,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "expenses.csv"), []byte(contents), 0o600))

	_, err = store.LoadExpenses(ctx)
	require.Error(t, err)
	var storeErr *common.StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestCSVStore_RejectsMismatchedRecurrencePairing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		row  string
	}{
		{"recurring without recurrence", "1,5,Food,coffee,2024-01-01,true,"},
		{"recurrence on non-recurring", "1,5,Food,coffee,2024-01-01,false,Monthly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := NewCSVStore(dir)
			require.NoError(t, err)

			contents := "id,amount,category,description,date,is_recurring,recurrence\n" + tt.row + "\n"
			require.NoError(t, os.WriteFile(filepath.Join(dir, "expenses.csv"), []byte(contents), 0o600))

			_, err = store.LoadExpenses(ctx)
			require.Error(t, err)
			var storeErr *common.StoreError
			assert.ErrorAs(t, err, &storeErr)
		})
	}
}

func TestCSVStore_BudgetsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewCSVStore(t.TempDir())
	require.NoError(t, err)

	want := []model.Budget{
		{Category: model.Category{Kind: model.CategoryFood}, MonthlyLimit: 400},
		{Category: model.Category{Kind: model.CategoryOther, Label: "gym"}, MonthlyLimit: 55.5},
	}
	require.NoError(t, store.SaveBudgets(ctx, want))

	got, err := store.LoadBudgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestImportCSV_ReassignsIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "incoming.csv")
	contents := "id,amount,category,description,date,is_recurring,recurrence\n" +
		"900,5,Food,bagel,2024-03-01,false,\n" +
		"901,15,Transport,train,2024-03-02,false,\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	existing := []model.Expense{
		model.NewExpense(7, 1, model.Category{Kind: model.CategoryFood}, "old", date(2024, 1, 1), nil),
	}

	combined, count, err := ImportCSV(path, existing)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, combined, 3)
	assert.Equal(t, uint64(8), combined[1].ID, "imported ids restart at nextID")
	assert.Equal(t, uint64(9), combined[2].ID)
	assert.Equal(t, "bagel", combined[1].Description)
}

func TestImportCSV_MalformedRowAbortsWholeImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "incoming.csv")
	contents := "id,amount,category,description,date,is_recurring,recurrence\n" +
		"1,5,Food,bagel,2024-03-01,false,\n" +
		"2,oops,Food,bad,2024-03-02,false,\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	existing := []model.Expense{
		model.NewExpense(7, 1, model.Category{Kind: model.CategoryFood}, "old", date(2024, 1, 1), nil),
	}

	combined, count, err := ImportCSV(path, existing)
	require.Error(t, err)
	var importErr *common.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, 2, importErr.Row)
	assert.Equal(t, 0, count)
	assert.Equal(t, existing, combined, "no partial apply")
}

func TestImportCSV_MissingFile(t *testing.T) {
	_, count, err := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"), nil)
	require.Error(t, err)
	var importErr *common.ImportError
	assert.ErrorAs(t, err, &importErr)
	assert.Zero(t, count)
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 5, 30, 9, 4, 5, 0, time.UTC)

	path, err := ExportCSV(dir, sampleExpenses(), now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export_20240530_090405.csv"), path)

	// The export uses the persisted layout, so it can be re-imported.
	combined, count, err := ImportCSV(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, combined, 3)
}
