// Package service defines the interfaces between the application core and
// its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/cashflow/internal/model"
)

// Store persists the full expense and budget sets. Saves are full
// overwrites; loads return empty slices when no backing data exists yet.
type Store interface {
	LoadExpenses(ctx context.Context) ([]model.Expense, error)
	SaveExpenses(ctx context.Context, expenses []model.Expense) error
	LoadBudgets(ctx context.Context) ([]model.Budget, error)
	SaveBudgets(ctx context.Context, budgets []model.Budget) error
	Close() error
}

// NextID returns the id for the next new expense: max existing id plus one,
// or 1 for an empty set. Manual adds, imports and the recurrence engine all
// assign ids through this so they never collide.
func NextID(expenses []model.Expense) uint64 {
	var maxID uint64
	for _, e := range expenses {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}
