// Package viewmodel holds the derived view state for the expense list: the
// filtered, sorted index view and its selection cursor.
package viewmodel

import (
	"sort"
	"strings"

	"github.com/Veraticus/cashflow/internal/model"
)

// ExpenseList is the filtered, date-sorted view over the owned expense
// slice. It stores indices into that slice, never copies, so it must be
// recomputed after every mutation that can change membership or ordering.
type ExpenseList struct {
	Query         string
	Indices       []int
	Cursor        int
	RecurringOnly bool
}

// Matches reports whether the expense passes the active filter: the
// recurring-only flag first, then a case-insensitive substring match of the
// query against the description or the category display string.
func (v *ExpenseList) Matches(e model.Expense) bool {
	if v.RecurringOnly && !e.IsRecurring {
		return false
	}
	if v.Query == "" {
		return true
	}
	query := strings.ToLower(v.Query)
	return strings.Contains(strings.ToLower(e.Description), query) ||
		strings.Contains(strings.ToLower(e.Category.String()), query)
}

// Recompute rebuilds the index view from the full expense slice: filter,
// then a stable sort by date descending so equal-date expenses keep their
// original relative order. The cursor is clamped into the new bounds, and
// reset to 0 when the view is empty.
func (v *ExpenseList) Recompute(expenses []model.Expense) {
	v.Indices = v.Indices[:0]
	for i, e := range expenses {
		if v.Matches(e) {
			v.Indices = append(v.Indices, i)
		}
	}

	sort.SliceStable(v.Indices, func(a, b int) bool {
		return expenses[v.Indices[a]].Date.After(expenses[v.Indices[b]].Date)
	})

	switch {
	case len(v.Indices) == 0:
		v.Cursor = 0
	case v.Cursor >= len(v.Indices):
		v.Cursor = len(v.Indices) - 1
	}
}

// Len returns the number of expenses in the view.
func (v *ExpenseList) Len() int {
	return len(v.Indices)
}

// MoveNext advances the cursor, wrapping past the end.
func (v *ExpenseList) MoveNext() {
	if len(v.Indices) > 0 {
		v.Cursor = (v.Cursor + 1) % len(v.Indices)
	}
}

// MovePrev moves the cursor back, wrapping past the start.
func (v *ExpenseList) MovePrev() {
	if len(v.Indices) > 0 {
		v.Cursor = (v.Cursor + len(v.Indices) - 1) % len(v.Indices)
	}
}

// Selected returns the expense under the cursor, or false when the view is
// empty.
func (v *ExpenseList) Selected(expenses []model.Expense) (model.Expense, bool) {
	if v.Cursor >= len(v.Indices) {
		return model.Expense{}, false
	}
	return expenses[v.Indices[v.Cursor]], true
}

// SelectedIndex returns the cursor's index into the owning slice, or false
// when the view is empty.
func (v *ExpenseList) SelectedIndex() (int, bool) {
	if v.Cursor >= len(v.Indices) {
		return 0, false
	}
	return v.Indices[v.Cursor], true
}
