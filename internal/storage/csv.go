// Package storage implements the Store backends and the CSV interchange
// format shared by import and export.
package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
)

// Column order of the expense file. Fixed; import and export use the same
// layout.
var expenseHeader = []string{"id", "amount", "category", "description", "date", "is_recurring", "recurrence"}

var budgetHeader = []string{"category", "monthly_limit"}

// CSVStore persists expenses and budgets as CSV files in a data directory.
type CSVStore struct {
	dir string
}

// NewCSVStore creates a CSV store rooted at dir, creating the directory if
// needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

func (s *CSVStore) expensesPath() string {
	return filepath.Join(s.dir, "expenses.csv")
}

func (s *CSVStore) budgetsPath() string {
	return filepath.Join(s.dir, "budgets.csv")
}

// LoadExpenses reads the expense file, returning an empty slice when the
// file does not exist yet.
func (s *CSVStore) LoadExpenses(_ context.Context) ([]model.Expense, error) {
	path := s.expensesPath()
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return []model.Expense{}, nil
	}

	expenses := make([]model.Expense, 0, len(rows))
	for i, row := range rows {
		e, err := decodeExpense(row)
		if err != nil {
			return nil, common.NewStoreError("parse", path, fmt.Errorf("row %d: %w", i+1, err))
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// SaveExpenses overwrites the expense file with the full set.
func (s *CSVStore) SaveExpenses(_ context.Context, expenses []model.Expense) error {
	return writeExpenseFile(s.expensesPath(), expenses)
}

// LoadBudgets reads the budget file, returning an empty slice when the file
// does not exist yet.
func (s *CSVStore) LoadBudgets(_ context.Context) ([]model.Budget, error) {
	path := s.budgetsPath()
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return []model.Budget{}, nil
	}

	budgets := make([]model.Budget, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, common.NewStoreError("parse", path, fmt.Errorf("row %d: expected 2 columns, got %d", i+1, len(row)))
		}
		limit, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, common.NewStoreError("parse", path, fmt.Errorf("row %d: %w", i+1, err))
		}
		budgets = append(budgets, model.Budget{
			Category:     model.ParseCategory(row[0]),
			MonthlyLimit: limit,
		})
	}
	return budgets, nil
}

// SaveBudgets overwrites the budget file with the full set.
func (s *CSVStore) SaveBudgets(_ context.Context, budgets []model.Budget) error {
	path := s.budgetsPath()
	f, err := os.Create(path)
	if err != nil {
		return common.NewStoreError("write", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(budgetHeader); err != nil {
		return common.NewStoreError("write", path, err)
	}
	for _, b := range budgets {
		row := []string{b.Category.String(), strconv.FormatFloat(b.MonthlyLimit, 'f', -1, 64)}
		if err := w.Write(row); err != nil {
			return common.NewStoreError("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return common.NewStoreError("write", path, err)
	}
	return f.Close()
}

// Close is a no-op for the CSV store.
func (s *CSVStore) Close() error {
	return nil
}

// readRows returns the data rows of a headered CSV file, or nil when the
// file does not exist.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, common.NewStoreError("open", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, common.NewStoreError("parse", path, err)
	}
	if len(rows) <= 1 {
		return [][]string{}, nil
	}
	return rows[1:], nil
}

func writeExpenseFile(path string, expenses []model.Expense) error {
	f, err := os.Create(path)
	if err != nil {
		return common.NewStoreError("write", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(expenseHeader); err != nil {
		return common.NewStoreError("write", path, err)
	}
	for _, e := range expenses {
		if err := w.Write(encodeExpense(e)); err != nil {
			return common.NewStoreError("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return common.NewStoreError("write", path, err)
	}
	return f.Close()
}

func encodeExpense(e model.Expense) []string {
	recurrence := ""
	if e.Recurrence != nil {
		recurrence = e.Recurrence.String()
	}
	return []string{
		strconv.FormatUint(e.ID, 10),
		strconv.FormatFloat(e.Amount, 'f', -1, 64),
		e.Category.String(),
		e.Description,
		e.Date.Format(model.DateLayout),
		strconv.FormatBool(e.IsRecurring),
		recurrence,
	}
}

func decodeExpense(row []string) (model.Expense, error) {
	if len(row) < 6 {
		return model.Expense{}, fmt.Errorf("expected %d columns, got %d", len(expenseHeader), len(row))
	}

	id, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return model.Expense{}, fmt.Errorf("bad id %q: %w", row[0], err)
	}
	amount, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return model.Expense{}, fmt.Errorf("bad amount %q: %w", row[1], err)
	}
	date, err := time.Parse(model.DateLayout, row[4])
	if err != nil {
		return model.Expense{}, fmt.Errorf("bad date %q: %w", row[4], err)
	}
	isRecurring, err := strconv.ParseBool(row[5])
	if err != nil {
		return model.Expense{}, fmt.Errorf("bad is_recurring %q: %w", row[5], err)
	}

	var recurrence *model.Recurrence
	if len(row) > 6 && row[6] != "" {
		r, ok := model.ParseRecurrence(row[6])
		if !ok {
			return model.Expense{}, fmt.Errorf("unknown recurrence %q", row[6])
		}
		recurrence = &r
	}

	// Recurrence is set exactly when is_recurring is; a row violating the
	// pairing is rejected rather than loaded inconsistent.
	if isRecurring && recurrence == nil {
		return model.Expense{}, fmt.Errorf("recurring row has no recurrence")
	}
	if !isRecurring && recurrence != nil {
		return model.Expense{}, fmt.Errorf("recurrence %q on a non-recurring row", row[6])
	}

	return model.Expense{
		ID:          id,
		Amount:      amount,
		Category:    model.ParseCategory(row[2]),
		Description: row[3],
		Date:        date,
		IsRecurring: isRecurring,
		Recurrence:  recurrence,
	}, nil
}
