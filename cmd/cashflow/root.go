package main

import (
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, dir, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	expenses, budgets := loadState(ctx, store)
	return launchTUI(ctx, store, dir, expenses, budgets)
}
