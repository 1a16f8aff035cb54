package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage per-category monthly budgets",
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetListCmd())

	return cmd
}

func budgetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <monthly-limit>",
		Short: "Set the monthly budget for a category",
		Long: `Set the monthly spending limit for a category.

The category uses the same textual form as the expense file, so both plain
variants (Food, Transport, ...) and Other(label) work:

  cashflow budget set Food 400
  cashflow budget set "Other(gym)" 50`,
		Args: cobra.ExactArgs(2),
		RunE: runBudgetSet,
	}
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	limit, err := strconv.ParseFloat(args[1], 64)
	if err != nil || limit <= 0 {
		return fmt.Errorf("monthly limit must be a positive number, got %q", args[1])
	}
	category := model.ParseCategory(args[0])

	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	budgets, err := store.LoadBudgets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}

	replaced := false
	for i := range budgets {
		if budgets[i].Category == category {
			budgets[i].MonthlyLimit = limit
			replaced = true
			break
		}
	}
	if !replaced {
		budgets = append(budgets, model.Budget{Category: category, MonthlyLimit: limit})
	}

	if err := store.SaveBudgets(ctx, budgets); err != nil {
		return fmt.Errorf("failed to save budgets: %w", err)
	}

	fmt.Printf("Budget for %s set to %s\n", category, args[1]) //nolint:forbidigo // User-facing output
	return nil
}

func budgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all category budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(store)

			budgets, err := store.LoadBudgets(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load budgets: %w", err)
			}

			if len(budgets) == 0 {
				fmt.Println("No budgets set.") //nolint:forbidigo // User-facing output
				return nil
			}
			for _, b := range budgets {
				fmt.Printf("%-20s %.2f\n", b.Category, b.MonthlyLimit) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}
}
