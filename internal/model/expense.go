// Package model defines the core domain types for the expense tracker.
package model

import (
	"fmt"
	"strings"
	"time"
)

// CategoryKind identifies a category variant.
type CategoryKind int

// Category variants. CategoryOther carries a free-text label.
const (
	CategoryFood CategoryKind = iota
	CategoryTransport
	CategoryRent
	CategoryUtilities
	CategoryEntertainment
	CategoryShopping
	CategoryHealth
	CategoryEducation
	CategorySubscriptions
	CategoryOther
)

// Category is a tagged expense category. Label is only meaningful for
// CategoryOther; it is part of the category's identity, so Other("gym")
// and Other("rent split") are distinct categories.
type Category struct {
	Label string
	Kind  CategoryKind
}

var categoryNames = []string{
	"Food",
	"Transport",
	"Rent",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Health",
	"Education",
	"Subscriptions",
	"Other",
}

// CategoryNames returns the display names of all category variants, in
// form-cycling order.
func CategoryNames() []string {
	return categoryNames
}

// NewCategory builds a category from its variant index. The label is only
// used when the index names the Other variant.
func NewCategory(index int, label string) Category {
	if index < 0 || index >= int(CategoryOther) {
		return Category{Kind: CategoryOther, Label: label}
	}
	return Category{Kind: CategoryKind(index)}
}

// Index returns the variant index, matching the order of CategoryNames.
func (c Category) Index() int {
	return int(c.Kind)
}

// String returns the textual form used everywhere the category is shown or
// persisted: the variant name, "Other(label)", or bare "Other" when the
// label is empty.
func (c Category) String() string {
	if c.Kind == CategoryOther {
		if c.Label == "" {
			return "Other"
		}
		return fmt.Sprintf("Other(%s)", c.Label)
	}
	if int(c.Kind) < len(categoryNames) {
		return categoryNames[c.Kind]
	}
	return "Other"
}

// ParseCategory parses the textual form produced by String. Unrecognized
// input folds into the Other variant with the raw text as its label, so
// parsing never fails and String/ParseCategory round-trip exactly.
func ParseCategory(s string) Category {
	for i, name := range categoryNames[:CategoryOther] {
		if s == name {
			return Category{Kind: CategoryKind(i)}
		}
	}
	if inner, ok := strings.CutPrefix(s, "Other("); ok {
		if label, ok := strings.CutSuffix(inner, ")"); ok {
			return Category{Kind: CategoryOther, Label: label}
		}
	}
	if s == "Other" {
		return Category{Kind: CategoryOther}
	}
	return Category{Kind: CategoryOther, Label: s}
}

// Recurrence is the repeat interval of a recurring expense.
type Recurrence int

// Recurrence variants.
const (
	Daily Recurrence = iota
	Weekly
	Monthly
	Yearly
)

var recurrenceNames = []string{"Daily", "Weekly", "Monthly", "Yearly"}

// RecurrenceNames returns the display names of all recurrence variants.
func RecurrenceNames() []string {
	return recurrenceNames
}

func (r Recurrence) String() string {
	if r >= Daily && r <= Yearly {
		return recurrenceNames[r]
	}
	return fmt.Sprintf("Recurrence(%d)", int(r))
}

// ParseRecurrence parses a recurrence display name.
func ParseRecurrence(s string) (Recurrence, bool) {
	for i, name := range recurrenceNames {
		if s == name {
			return Recurrence(i), true
		}
	}
	return Daily, false
}

// NextDate computes the next occurrence after from.
//
// Monthly and Yearly cap the day of month at 28 so the result is always a
// valid date; a template created on the 31st lands on the 28th of every
// following month. That shift is the documented schedule, not something to
// correct to end-of-month. If date construction still lands outside the
// target month or year, a flat 30 or 365 days is added instead.
func (r Recurrence) NextDate(from time.Time) time.Time {
	switch r {
	case Daily:
		return from.AddDate(0, 0, 1)
	case Weekly:
		return from.AddDate(0, 0, 7)
	case Monthly:
		year, month, day := from.Date()
		if day > 28 {
			day = 28
		}
		year, month = nextMonth(year, month)
		next := time.Date(year, month, day, 0, 0, 0, 0, from.Location())
		if next.Month() != month {
			return from.AddDate(0, 0, 30)
		}
		return next
	case Yearly:
		year, month, day := from.Date()
		if day > 28 {
			day = 28
		}
		next := time.Date(year+1, month, day, 0, 0, 0, 0, from.Location())
		if next.Month() != month {
			return from.AddDate(0, 0, 365)
		}
		return next
	default:
		return from.AddDate(0, 0, 1)
	}
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// DateLayout is the calendar date format used in files and forms.
const DateLayout = "2006-01-02"

// Expense is a single recorded expense. Recurrence is set exactly when
// IsRecurring is true.
type Expense struct {
	Date        time.Time
	Description string
	Recurrence  *Recurrence
	ID          uint64
	Amount      float64
	Category    Category
	IsRecurring bool
}

// NewExpense constructs an expense, keeping the IsRecurring/Recurrence
// pairing consistent.
func NewExpense(id uint64, amount float64, category Category, description string, date time.Time, recurrence *Recurrence) Expense {
	return Expense{
		ID:          id,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
		IsRecurring: recurrence != nil,
		Recurrence:  recurrence,
	}
}

// Consistent reports whether the recurrence pairing invariant holds.
func (e Expense) Consistent() bool {
	return e.IsRecurring == (e.Recurrence != nil)
}

// SameSeries reports whether other belongs to the same recurring series as
// e: equal description, category and amount. Materialized occurrences carry
// the template's triple, so this links them back to their template.
func (e Expense) SameSeries(other Expense) bool {
	return e.Description == other.Description &&
		e.Category == other.Category &&
		e.Amount == other.Amount
}
