package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
)

func TestFormToExpense(t *testing.T) {
	today := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)

	t.Run("valid one-off expense", func(t *testing.T) {
		f := NewFormState(today)
		f.amount.SetValue("12.50")
		f.description.SetValue("lunch")

		e, err := f.ToExpense(3)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), e.ID)
		assert.Equal(t, 12.50, e.Amount)
		assert.Equal(t, "lunch", e.Description)
		assert.Equal(t, today, e.Date)
		assert.False(t, e.IsRecurring)
		assert.Nil(t, e.Recurrence)
		assert.True(t, e.Consistent())
	})

	t.Run("recurring pairs the recurrence", func(t *testing.T) {
		f := NewFormState(today)
		f.amount.SetValue("9.99")
		f.isRecurring = true
		f.recurrenceIndex = int(model.Monthly)

		e, err := f.ToExpense(1)
		require.NoError(t, err)
		assert.True(t, e.IsRecurring)
		require.NotNil(t, e.Recurrence)
		assert.Equal(t, model.Monthly, *e.Recurrence)
		assert.True(t, e.Consistent())
	})

	t.Run("custom category keeps its label", func(t *testing.T) {
		f := NewFormState(today)
		f.amount.SetValue("55")
		f.categoryIndex = int(model.CategoryOther)
		f.custom.SetValue("gym")

		e, err := f.ToExpense(1)
		require.NoError(t, err)
		assert.Equal(t, model.Category{Kind: model.CategoryOther, Label: "gym"}, e.Category)
	})

	t.Run("rejects unparseable amount", func(t *testing.T) {
		f := NewFormState(today)
		f.amount.SetValue("abc")

		_, err := f.ToExpense(1)
		assert.ErrorIs(t, err, common.ErrInvalidAmount)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		for _, value := range []string{"0", "-5"} {
			f := NewFormState(today)
			f.amount.SetValue(value)

			_, err := f.ToExpense(1)
			assert.ErrorIs(t, err, common.ErrInvalidAmount, "amount %q", value)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		f := NewFormState(today)
		f.amount.SetValue("5")
		f.date.SetValue("05/30/2024")

		_, err := f.ToExpense(1)
		assert.ErrorIs(t, err, common.ErrInvalidDate)
	})
}

func TestFormFromExpense(t *testing.T) {
	today := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)
	weekly := model.Weekly
	original := model.NewExpense(7, 42.5,
		model.Category{Kind: model.CategoryOther, Label: "hobby"},
		"paint", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), &weekly)

	f := FormFromExpense(original, today)
	e, err := f.ToExpense(7)
	require.NoError(t, err)
	assert.Equal(t, original, e)
}

func TestFormFieldCycle(t *testing.T) {
	f := FieldAmount
	for i := 0; i < formFieldCount; i++ {
		f = f.Next()
	}
	assert.Equal(t, FieldAmount, f, "Next wraps after a full cycle")

	assert.Equal(t, FormField(formFieldCount-1), FieldAmount.Prev())
}
