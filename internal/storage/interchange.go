package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/service"
)

// ImportCSV parses an expense CSV file and appends its rows to existing,
// reassigning ids as a contiguous block starting at the next free id. The
// import is all-or-nothing: any malformed row aborts it and existing is
// returned unchanged.
func ImportCSV(path string, existing []model.Expense) ([]model.Expense, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return existing, 0, common.NewImportError(path, 0, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return existing, 0, common.NewImportError(path, 0, err)
	}
	if len(rows) <= 1 {
		return existing, 0, nil
	}

	imported := make([]model.Expense, 0, len(rows)-1)
	for i, row := range rows[1:] {
		e, err := decodeExpense(row)
		if err != nil {
			return existing, 0, common.NewImportError(path, i+1, err)
		}
		imported = append(imported, e)
	}

	next := service.NextID(existing)
	combined := append(existing, imported...)
	for i := range imported {
		combined[len(existing)+i].ID = next
		next++
	}
	return combined, len(imported), nil
}

// ExportCSV writes the full expense set to a timestamped file in dir and
// returns its path.
func ExportCSV(dir string, expenses []model.Expense, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("export_%s.csv", now.Format("20060102_150405")))
	if err := writeExpenseFile(path, expenses); err != nil {
		return "", err
	}
	return path, nil
}
