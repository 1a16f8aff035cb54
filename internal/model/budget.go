package model

// Budget is a monthly spending limit for a category. At most one budget per
// category is meaningful; lookups take the first match.
type Budget struct {
	Category     Category
	MonthlyLimit float64
}
