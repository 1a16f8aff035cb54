package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/cashflow/internal/model"
)

func TestNextID(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	expense := func(id uint64) model.Expense {
		return model.NewExpense(id, 1, model.Category{Kind: model.CategoryFood}, "x", day, nil)
	}

	assert.Equal(t, uint64(1), NextID(nil))
	assert.Equal(t, uint64(1), NextID([]model.Expense{}))
	assert.Equal(t, uint64(4), NextID([]model.Expense{expense(3)}))
	assert.Equal(t, uint64(10), NextID([]model.Expense{expense(9), expense(2), expense(5)}),
		"ids need not be sorted or contiguous")
}
