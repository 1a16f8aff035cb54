// Package engine materializes recurring expense templates into concrete
// occurrences.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/service"
)

// MaterializeDue generates every missing occurrence of each recurring
// template up to and including today, and returns the extended expense set
// together with the newly created occurrences.
//
// A template is any expense with IsRecurring set and a recurrence attached.
// Generation starts from the template's anchor: the latest date among
// expenses sharing its (description, category, amount) triple. Previously
// materialized occurrences carry the same triple, so the anchor advances
// with them and a caught-up template generates nothing. Occurrences are
// created non-recurring, which keeps them from ever becoming templates
// themselves.
//
// Ids are assigned from a single counter starting at the next free id, so
// the block stays contiguous across templates.
func MaterializeDue(expenses []model.Expense, today time.Time) ([]model.Expense, []model.Expense) {
	var templates []model.Expense
	for _, e := range expenses {
		if e.IsRecurring && e.Recurrence != nil {
			templates = append(templates, e)
		}
	}

	var created []model.Expense
	nextID := service.NextID(expenses)

	for _, template := range templates {
		anchor := template.Date
		for _, e := range expenses {
			if template.SameSeries(e) && e.Date.After(anchor) {
				anchor = e.Date
			}
		}

		next := template.Recurrence.NextDate(anchor)
		for !next.After(today) {
			created = append(created, model.NewExpense(
				nextID,
				template.Amount,
				template.Category,
				template.Description,
				next,
				nil,
			))
			nextID++
			next = template.Recurrence.NextDate(next)
		}
	}

	if len(created) == 0 {
		return expenses, nil
	}
	return append(expenses, created...), created
}

// CatchUp runs MaterializeDue and, when anything was generated, persists
// the extended set through the store before returning it. A save failure is
// reported but does not roll back the in-memory set.
func CatchUp(ctx context.Context, store service.Store, expenses []model.Expense, today time.Time) ([]model.Expense, error) {
	all, created := MaterializeDue(expenses, today)
	if len(created) == 0 {
		return all, nil
	}

	slog.Info("materialized recurring expenses", "count", len(created))
	if err := store.SaveExpenses(ctx, all); err != nil {
		return all, err
	}
	return all, nil
}
