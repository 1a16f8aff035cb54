package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/engine"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/service"
	"github.com/Veraticus/cashflow/internal/storage"
	"github.com/Veraticus/cashflow/internal/tui"
	"github.com/Veraticus/cashflow/internal/tui/themes"
)

// openStore creates the configured store backend. The returned directory is
// the data dir, also used for exports.
func openStore() (service.Store, string, error) {
	dir := config.DataDir()
	store, err := storage.Open(viper.GetString("storage.backend"), dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, dir, nil
}

// loadState reads expenses and budgets, degrading to empty sets when the
// backing data is missing or unreadable so first runs (and corrupt files)
// still reach the dashboard.
func loadState(ctx context.Context, store service.Store) ([]model.Expense, []model.Budget) {
	expenses, err := store.LoadExpenses(ctx)
	if err != nil {
		slog.Warn("could not load expenses, starting empty", "error", err)
		expenses = []model.Expense{}
	}
	budgets, err := store.LoadBudgets(ctx)
	if err != nil {
		slog.Warn("could not load budgets, starting empty", "error", err)
		budgets = []model.Budget{}
	}
	return expenses, budgets
}

// launchTUI materializes due recurring expenses and hands control to the
// dashboard.
func launchTUI(ctx context.Context, store service.Store, dir string, expenses []model.Expense, budgets []model.Budget) error {
	today := time.Now()

	expenses, err := engine.CatchUp(ctx, store, expenses, today)
	if err != nil {
		// Best effort: the occurrences exist in memory, saving retries on
		// the next mutation.
		slog.Warn("could not persist materialized expenses", "error", err)
	}

	return tui.Run(tui.Config{
		Store:    store,
		DataDir:  dir,
		Expenses: expenses,
		Budgets:  budgets,
		Currency: model.ParseCurrency(viper.GetString("display.currency")),
		Today:    today,
		Theme:    themes.Default,
	})
}

func closeStore(store service.Store) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}
