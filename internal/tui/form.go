package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
)

// FormField identifies the active field of the add/edit form.
type FormField int

// Form fields, in tab order.
const (
	FieldAmount FormField = iota
	FieldCategory
	FieldDescription
	FieldDate
	FieldRecurring
	FieldRecurrenceType
)

const formFieldCount = 6

// Next returns the field after f, wrapping.
func (f FormField) Next() FormField {
	return (f + 1) % formFieldCount
}

// Prev returns the field before f, wrapping.
func (f FormField) Prev() FormField {
	return (f + formFieldCount - 1) % formFieldCount
}

// FormState holds the in-progress add/edit form. Input is kept as entered
// so a rejected submission leaves everything in place for correction.
type FormState struct {
	editingID       *uint64
	amount          textinput.Model
	description     textinput.Model
	date            textinput.Model
	custom          textinput.Model
	categoryIndex   int
	recurrenceIndex int
	field           FormField
	isRecurring     bool
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

// NewFormState returns an empty form with the date prefilled to today.
func NewFormState(today time.Time) FormState {
	f := FormState{
		amount:      newTextInput("0.00", 16),
		description: newTextInput("description", 64),
		date:        newTextInput(model.DateLayout, 10),
		custom:      newTextInput("custom category", 32),
	}
	f.date.SetValue(today.Format(model.DateLayout))
	f.amount.Focus()
	return f
}

// FormFromExpense returns a form prefilled from an existing expense, for
// editing in place.
func FormFromExpense(e model.Expense, today time.Time) FormState {
	f := NewFormState(today)
	id := e.ID
	f.editingID = &id
	f.amount.SetValue(fmt.Sprintf("%.2f", e.Amount))
	f.categoryIndex = e.Category.Index()
	if e.Category.Kind == model.CategoryOther {
		f.custom.SetValue(e.Category.Label)
	}
	f.description.SetValue(e.Description)
	f.date.SetValue(e.Date.Format(model.DateLayout))
	f.isRecurring = e.IsRecurring
	if e.Recurrence != nil {
		f.recurrenceIndex = int(*e.Recurrence)
	}
	return f
}

// ToExpense validates the form and builds the expense it describes. The
// amount must parse and be positive, the date must be YYYY-MM-DD; on
// failure the form is left untouched and the error says which check
// failed.
func (f *FormState) ToExpense(id uint64) (model.Expense, error) {
	amount, err := strconv.ParseFloat(f.amount.Value(), 64)
	if err != nil || amount <= 0 {
		return model.Expense{}, fmt.Errorf("%w: %q", common.ErrInvalidAmount, f.amount.Value())
	}

	date, err := time.Parse(model.DateLayout, f.date.Value())
	if err != nil {
		return model.Expense{}, fmt.Errorf("%w: %q", common.ErrInvalidDate, f.date.Value())
	}

	category := model.NewCategory(f.categoryIndex, f.custom.Value())

	var recurrence *model.Recurrence
	if f.isRecurring {
		r := model.Recurrence(f.recurrenceIndex)
		recurrence = &r
	}

	return model.NewExpense(id, amount, category, f.description.Value(), date, recurrence), nil
}

// activeInput returns the text input backing the active field, if any.
func (f *FormState) activeInput() *textinput.Model {
	switch f.field {
	case FieldAmount:
		return &f.amount
	case FieldDescription:
		return &f.description
	case FieldDate:
		return &f.date
	case FieldCategory:
		if f.categoryIndex == int(model.CategoryOther) {
			return &f.custom
		}
	}
	return nil
}

// focusField moves focus to the active field's input.
func (f *FormState) focusField() {
	for _, ti := range []*textinput.Model{&f.amount, &f.description, &f.date, &f.custom} {
		ti.Blur()
	}
	if ti := f.activeInput(); ti != nil {
		ti.Focus()
	}
}

// handleKey updates the form for one keypress that was not a submit or
// cancel.
func (f *FormState) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		f.field = f.field.Next()
		f.focusField()
		return nil
	case "shift+tab":
		f.field = f.field.Prev()
		f.focusField()
		return nil
	}

	switch f.field {
	case FieldCategory:
		count := len(model.CategoryNames())
		switch msg.String() {
		case "left":
			f.categoryIndex = (f.categoryIndex + count - 1) % count
			f.focusField()
			return nil
		case "right":
			f.categoryIndex = (f.categoryIndex + 1) % count
			f.focusField()
			return nil
		}
	case FieldRecurring:
		if msg.String() == " " {
			f.isRecurring = !f.isRecurring
		}
		return nil
	case FieldRecurrenceType:
		if !f.isRecurring {
			return nil
		}
		count := len(model.RecurrenceNames())
		switch msg.String() {
		case "left":
			f.recurrenceIndex = (f.recurrenceIndex + count - 1) % count
		case "right":
			f.recurrenceIndex = (f.recurrenceIndex + 1) % count
		}
		return nil
	}

	if ti := f.activeInput(); ti != nil {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return cmd
	}
	return nil
}
