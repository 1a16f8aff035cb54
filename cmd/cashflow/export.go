package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/storage"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export all expenses to a timestamped CSV file",
		RunE:  runExport,
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, dir, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	expenses, err := store.LoadExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	path, err := storage.ExportCSV(dir, expenses, time.Now())
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	fmt.Printf("Exported %d expenses to %s\n", len(expenses), path) //nolint:forbidigo // User-facing output
	return nil
}
