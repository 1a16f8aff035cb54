// Package report provides read-only aggregation queries over the expense
// set for the dashboard and monthly views.
package report

import (
	"sort"
	"time"

	"github.com/Veraticus/cashflow/internal/model"
)

// CategoryTotal is one row of a per-category spending breakdown.
type CategoryTotal struct {
	Category string
	Total    float64
}

// ExpensesForMonth returns the expenses dated in the given month.
func ExpensesForMonth(expenses []model.Expense, year int, month time.Month) []model.Expense {
	var out []model.Expense
	for _, e := range expenses {
		if e.Date.Year() == year && e.Date.Month() == month {
			out = append(out, e)
		}
	}
	return out
}

// TotalForMonth sums the amounts of the month's expenses.
func TotalForMonth(expenses []model.Expense, year int, month time.Month) float64 {
	var total float64
	for _, e := range ExpensesForMonth(expenses, year, month) {
		total += e.Amount
	}
	return total
}

// TotalForYear sums the amounts of the year's expenses.
func TotalForYear(expenses []model.Expense, year int) float64 {
	var total float64
	for _, e := range expenses {
		if e.Date.Year() == year {
			total += e.Amount
		}
	}
	return total
}

// SpendingByCategory groups the month's expenses by category display string
// and returns the totals sorted by amount descending. Equal totals order by
// name so the breakdown is stable across runs.
func SpendingByCategory(expenses []model.Expense, year int, month time.Month) []CategoryTotal {
	totals := make(map[string]float64)
	for _, e := range ExpensesForMonth(expenses, year, month) {
		totals[e.Category.String()] += e.Amount
	}

	out := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		out = append(out, CategoryTotal{Category: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DailySpending returns the spend for each of the last days calendar days
// ending at today inclusive, oldest first. Each day's sum is truncated to
// an integer for compact chart display; fractional cents are dropped, not
// rounded.
func DailySpending(expenses []model.Expense, today time.Time, days int) []uint64 {
	out := make([]uint64, days)
	for i := range out {
		day := today.AddDate(0, 0, -(days - 1 - i))
		var total float64
		for _, e := range expenses {
			if sameDay(e.Date, day) {
				total += e.Amount
			}
		}
		out[i] = uint64(total)
	}
	return out
}

// BudgetFor returns the first budget limit recorded for the category.
func BudgetFor(budgets []model.Budget, category model.Category) (float64, bool) {
	for _, b := range budgets {
		if b.Category == category {
			return b.MonthlyLimit, true
		}
	}
	return 0, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
