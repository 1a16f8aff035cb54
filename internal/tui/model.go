package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/service"
	"github.com/Veraticus/cashflow/internal/storage"
	"github.com/Veraticus/cashflow/internal/tui/themes"
	"github.com/Veraticus/cashflow/internal/tui/viewmodel"
)

// Tab identifies one of the top-level views.
type Tab int

// Tabs, in display order.
const (
	TabDashboard Tab = iota
	TabExpenses
	TabMonthly
)

const tabCount = 3

// InputMode is the current key-dispatch mode.
type InputMode int

// Input modes.
const (
	ModeNormal InputMode = iota
	ModeSearch
	ModeForm
	ModeHelp
	ModeConfirmDelete
)

// Config holds everything the TUI needs to run. Expenses and budgets are
// the already-loaded (and recurrence-materialized) state.
type Config struct {
	Store    service.Store
	DataDir  string
	Expenses []model.Expense
	Budgets  []model.Budget
	Currency model.Currency
	Today    time.Time
	Theme    themes.Theme
}

// Model is the top-level TUI state. It exclusively owns the expense and
// budget slices; the list view model only holds indices into them.
type Model struct {
	store     service.Store
	dataDir   string
	today     time.Time
	status    string
	expenses  []model.Expense
	budgets   []model.Budget
	list      viewmodel.ExpenseList
	form      FormState
	search    textinput.Model
	budgetBar progress.Model
	keymap    KeyMap
	theme     themes.Theme
	currency  model.Currency
	selYear   int
	width     int
	height    int
	selMonth  time.Month
	tab       Tab
	mode      InputMode
	statusErr bool
	quitting  bool
}

// NewModel creates the initial TUI state and computes the first filtered
// view.
func NewModel(cfg Config) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/"

	m := Model{
		store:     cfg.Store,
		dataDir:   cfg.DataDir,
		today:     cfg.Today,
		expenses:  cfg.Expenses,
		budgets:   cfg.Budgets,
		currency:  cfg.Currency,
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		search:    search,
		budgetBar: bar,
		form:      NewFormState(cfg.Today),
		selYear:   cfg.Today.Year(),
		selMonth:  cfg.Today.Month(),
	}
	m.list.Recompute(m.expenses)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Any keypress clears the previous status message.
		m.status = ""
		m.statusErr = false

		switch m.mode {
		case ModeNormal:
			return m.updateNormal(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeForm:
			return m.updateForm(msg)
		case ModeHelp:
			return m.updateHelp(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.mode = ModeHelp

	case key.Matches(msg, m.keymap.Dashboard):
		m.tab = TabDashboard
	case key.Matches(msg, m.keymap.Expenses):
		m.tab = TabExpenses
	case key.Matches(msg, m.keymap.Monthly):
		m.tab = TabMonthly
	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % tabCount
	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount

	case key.Matches(msg, m.keymap.Add):
		m.form = NewFormState(m.today)
		m.mode = ModeForm

	case key.Matches(msg, m.keymap.Export):
		m.export()

	case m.tab == TabExpenses:
		return m.updateExpensesTab(msg)

	case m.tab == TabMonthly:
		switch {
		case key.Matches(msg, m.keymap.PrevMonth):
			m.prevMonth()
		case key.Matches(msg, m.keymap.NextMonth):
			m.nextMonth()
		}
	}
	return m, nil
}

func (m Model) updateExpensesTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Down):
		m.list.MoveNext()
	case key.Matches(msg, m.keymap.Up):
		m.list.MovePrev()
	case key.Matches(msg, m.keymap.Search):
		m.search.SetValue(m.list.Query)
		m.search.Focus()
		m.mode = ModeSearch
		return m, textinput.Blink
	case key.Matches(msg, m.keymap.Edit):
		if e, ok := m.list.Selected(m.expenses); ok {
			m.form = FormFromExpense(e, m.today)
			m.mode = ModeForm
		}
	case key.Matches(msg, m.keymap.Delete):
		if _, ok := m.list.Selected(m.expenses); ok {
			m.mode = ModeConfirmDelete
		}
	case key.Matches(msg, m.keymap.ToggleRecurring):
		m.list.RecurringOnly = !m.list.RecurringOnly
		m.list.Recompute(m.expenses)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.list.Query = m.search.Value()
	m.list.Recompute(m.expenses)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil
	case "enter":
		return m.submitForm()
	}
	cmd := m.form.handleKey(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	editing := m.form.editingID
	id := service.NextID(m.expenses)
	if editing != nil {
		id = *editing
	}

	expense, err := m.form.ToExpense(id)
	if err != nil {
		// Rejected submission: the form stays open with its input intact.
		m.setError(fmt.Sprintf("Invalid form data: %v", err))
		return m, nil
	}

	if editing != nil {
		m.updateExpense(*editing, expense)
		m.setInfo("Expense updated")
	} else {
		m.addExpense(expense)
		m.setInfo("Expense added")
	}
	m.mode = ModeNormal
	return m, nil
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.deleteSelected()
		m.setInfo("Expense deleted")
	}
	m.mode = ModeNormal
	return m, nil
}

// addExpense appends an expense, recomputes the view and persists.
func (m *Model) addExpense(e model.Expense) {
	m.expenses = append(m.expenses, e)
	m.list.Recompute(m.expenses)
	m.persist()
}

// updateExpense replaces the expense with the given id in place.
func (m *Model) updateExpense(id uint64, updated model.Expense) {
	for i := range m.expenses {
		if m.expenses[i].ID == id {
			m.expenses[i] = updated
			m.list.Recompute(m.expenses)
			m.persist()
			return
		}
	}
}

// deleteSelected removes the expense under the cursor.
func (m *Model) deleteSelected() {
	idx, ok := m.list.SelectedIndex()
	if !ok {
		return
	}
	m.expenses = append(m.expenses[:idx], m.expenses[idx+1:]...)
	m.list.Recompute(m.expenses)
	m.persist()
}

// persist writes the full state through the store. Failures surface as a
// status message; the in-memory state is kept.
func (m *Model) persist() {
	ctx := context.Background()
	if err := m.store.SaveExpenses(ctx, m.expenses); err != nil {
		common.LogError(err, "failed to save expenses", nil)
		m.setError(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := m.store.SaveBudgets(ctx, m.budgets); err != nil {
		common.LogError(err, "failed to save budgets", nil)
		m.setError(fmt.Sprintf("Save failed: %v", err))
	}
}

func (m *Model) export() {
	path, err := storage.ExportCSV(m.dataDir, m.expenses, time.Now())
	if err != nil {
		m.setError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	m.setInfo(fmt.Sprintf("Exported to %s", path))
}

func (m *Model) prevMonth() {
	if m.selMonth == time.January {
		m.selMonth = time.December
		m.selYear--
		return
	}
	m.selMonth--
}

func (m *Model) nextMonth() {
	if m.selMonth == time.December {
		m.selMonth = time.January
		m.selYear++
		return
	}
	m.selMonth++
}

func (m *Model) setInfo(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}
