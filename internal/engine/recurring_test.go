package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cashflow/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func template(id uint64, amount float64, description string, d time.Time, r model.Recurrence) model.Expense {
	return model.NewExpense(id, amount, model.Category{Kind: model.CategoryFood}, description, d, &r)
}

func TestMaterializeDue_MonthlyScenario(t *testing.T) {
	expenses := []model.Expense{
		template(1, 12.00, "coffee", date(2024, 1, 1), model.Monthly),
	}

	all, created := MaterializeDue(expenses, date(2024, 4, 1))

	require.Len(t, created, 3)
	assert.Equal(t, date(2024, 2, 1), created[0].Date)
	assert.Equal(t, date(2024, 3, 1), created[1].Date)
	assert.Equal(t, date(2024, 4, 1), created[2].Date)

	for i, e := range created {
		assert.Equal(t, uint64(2+i), e.ID, "ids are a contiguous block from nextID")
		assert.False(t, e.IsRecurring, "occurrences are not templates")
		assert.Nil(t, e.Recurrence)
		assert.True(t, e.Consistent())
		assert.Equal(t, 12.00, e.Amount)
		assert.Equal(t, "coffee", e.Description)
	}
	assert.Len(t, all, 4)
}

func TestMaterializeDue_Idempotent(t *testing.T) {
	expenses := []model.Expense{
		template(1, 12.00, "coffee", date(2024, 1, 1), model.Monthly),
		template(2, 5.00, "vpn", date(2024, 2, 10), model.Weekly),
	}
	today := date(2024, 4, 1)

	all, created := MaterializeDue(expenses, today)
	require.NotEmpty(t, created)

	again, createdAgain := MaterializeDue(all, today)
	assert.Empty(t, createdAgain, "second run with the same today generates nothing")
	assert.Equal(t, all, again)
}

func TestMaterializeDue_NeverBeyondToday(t *testing.T) {
	expenses := []model.Expense{
		template(1, 3.00, "paper", date(2024, 3, 20), model.Daily),
	}
	today := date(2024, 3, 25)

	_, created := MaterializeDue(expenses, today)

	require.Len(t, created, 5)
	for _, e := range created {
		assert.False(t, e.Date.After(today))
	}
}

func TestMaterializeDue_AnchorSkipsExistingOccurrences(t *testing.T) {
	// The template already has materialized occurrences through March; only
	// April is missing.
	expenses := []model.Expense{
		template(1, 12.00, "coffee", date(2024, 1, 1), model.Monthly),
		model.NewExpense(2, 12.00, model.Category{Kind: model.CategoryFood}, "coffee", date(2024, 2, 1), nil),
		model.NewExpense(3, 12.00, model.Category{Kind: model.CategoryFood}, "coffee", date(2024, 3, 1), nil),
	}

	_, created := MaterializeDue(expenses, date(2024, 4, 15))

	require.Len(t, created, 1)
	assert.Equal(t, date(2024, 4, 1), created[0].Date)
	assert.Equal(t, uint64(4), created[0].ID)
}

func TestMaterializeDue_SharedIDCounterAcrossTemplates(t *testing.T) {
	expenses := []model.Expense{
		template(10, 12.00, "coffee", date(2024, 2, 1), model.Monthly),
		template(11, 9.99, "streaming", date(2024, 2, 15), model.Monthly),
	}

	_, created := MaterializeDue(expenses, date(2024, 4, 20))

	require.Len(t, created, 4)
	seen := make(map[uint64]bool)
	for i, e := range created {
		assert.Equal(t, uint64(12+i), e.ID)
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}

func TestMaterializeDue_NothingDue(t *testing.T) {
	today := date(2024, 4, 1)
	expenses := []model.Expense{
		model.NewExpense(1, 20.00, model.Category{Kind: model.CategoryShopping}, "socks", date(2024, 3, 1), nil),
		template(2, 8.00, "gym", today, model.Monthly),
	}

	all, created := MaterializeDue(expenses, today)
	assert.Empty(t, created)
	assert.Equal(t, expenses, all)
}

// recordingStore counts saves so tests can assert the persist-on-generate
// contract.
type recordingStore struct {
	saved [][]model.Expense
}

func (s *recordingStore) LoadExpenses(_ context.Context) ([]model.Expense, error) { return nil, nil }
func (s *recordingStore) SaveExpenses(_ context.Context, expenses []model.Expense) error {
	s.saved = append(s.saved, expenses)
	return nil
}
func (s *recordingStore) LoadBudgets(_ context.Context) ([]model.Budget, error)  { return nil, nil }
func (s *recordingStore) SaveBudgets(_ context.Context, _ []model.Budget) error  { return nil }
func (s *recordingStore) Close() error                                           { return nil }

func TestCatchUp_PersistsOnlyWhenGenerated(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}

	expenses := []model.Expense{
		template(1, 12.00, "coffee", date(2024, 1, 1), model.Monthly),
	}

	all, err := CatchUp(ctx, store, expenses, date(2024, 4, 1))
	require.NoError(t, err)
	require.Len(t, store.saved, 1, "generation triggers exactly one save")
	assert.Equal(t, all, store.saved[0])

	_, err = CatchUp(ctx, store, all, date(2024, 4, 1))
	require.NoError(t, err)
	assert.Len(t, store.saved, 1, "a caught-up run writes nothing")
}
