package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists expenses and budgets in a SQLite database. The
// tables mirror the CSV columns so the two backends stay interchangeable;
// CSV remains the import/export format.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS expenses (
	id INTEGER PRIMARY KEY,
	amount REAL NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	date TEXT NOT NULL,
	is_recurring INTEGER NOT NULL,
	recurrence TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS budgets (
	category TEXT NOT NULL,
	monthly_limit REAL NOT NULL
);
`

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadExpenses returns all expenses ordered by id.
func (s *SQLiteStore) LoadExpenses(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, category, description, date, is_recurring, recurrence
		FROM expenses ORDER BY id
	`)
	if err != nil {
		return nil, common.NewStoreError("query", s.path, err)
	}
	defer func() { _ = rows.Close() }()

	expenses := []model.Expense{}
	for rows.Next() {
		var (
			e           model.Expense
			category    string
			date        string
			isRecurring int
			recurrence  string
		)
		if err := rows.Scan(&e.ID, &e.Amount, &category, &e.Description, &date, &isRecurring, &recurrence); err != nil {
			return nil, common.NewStoreError("scan", s.path, err)
		}
		e.Category = model.ParseCategory(category)
		e.Date, err = time.Parse(model.DateLayout, date)
		if err != nil {
			return nil, common.NewStoreError("parse", s.path, err)
		}
		e.IsRecurring = isRecurring != 0
		if recurrence != "" {
			r, ok := model.ParseRecurrence(recurrence)
			if !ok {
				return nil, common.NewStoreError("parse", s.path, fmt.Errorf("unknown recurrence %q", recurrence))
			}
			e.Recurrence = &r
		}
		if !e.Consistent() {
			return nil, common.NewStoreError("parse", s.path, fmt.Errorf("expense %d breaks the recurrence pairing", e.ID))
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStoreError("query", s.path, err)
	}
	return expenses, nil
}

// SaveExpenses replaces the stored expense set with the given one.
func (s *SQLiteStore) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewStoreError("write", s.path, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return common.NewStoreError("write", s.path, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expenses (id, amount, category, description, date, is_recurring, recurrence)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return common.NewStoreError("write", s.path, err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range expenses {
		recurrence := ""
		if e.Recurrence != nil {
			recurrence = e.Recurrence.String()
		}
		isRecurring := 0
		if e.IsRecurring {
			isRecurring = 1
		}
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Amount, e.Category.String(), e.Description,
			e.Date.Format(model.DateLayout), isRecurring, recurrence,
		); err != nil {
			return common.NewStoreError("write", s.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return common.NewStoreError("write", s.path, err)
	}
	return nil
}

// LoadBudgets returns all budgets.
func (s *SQLiteStore) LoadBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, monthly_limit FROM budgets`)
	if err != nil {
		return nil, common.NewStoreError("query", s.path, err)
	}
	defer func() { _ = rows.Close() }()

	budgets := []model.Budget{}
	for rows.Next() {
		var (
			category string
			limit    float64
		)
		if err := rows.Scan(&category, &limit); err != nil {
			return nil, common.NewStoreError("scan", s.path, err)
		}
		budgets = append(budgets, model.Budget{
			Category:     model.ParseCategory(category),
			MonthlyLimit: limit,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStoreError("query", s.path, err)
	}
	return budgets, nil
}

// SaveBudgets replaces the stored budget set with the given one.
func (s *SQLiteStore) SaveBudgets(ctx context.Context, budgets []model.Budget) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewStoreError("write", s.path, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
		return common.NewStoreError("write", s.path, err)
	}
	for _, b := range budgets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (category, monthly_limit) VALUES (?, ?)`,
			b.Category.String(), b.MonthlyLimit,
		); err != nil {
			return common.NewStoreError("write", s.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return common.NewStoreError("write", s.path, err)
	}
	return nil
}
