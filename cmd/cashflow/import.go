package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/ofx"
	"github.com/Veraticus/cashflow/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import expenses from CSV or OFX files",
		Long: `Import expenses from external files and append them to your records.

CSV files must use the cashflow column layout:
  id,amount,category,description,date,is_recurring,recurrence

OFX/QFX bank statements are also supported with --format ofx; debits become
non-recurring expenses. Imported rows get fresh ids. A malformed file aborts
the whole import and leaves your records untouched.

Examples:
  cashflow import backup.csv
  cashflow import --format ofx ~/Downloads/chase_*.qfx
  cashflow import --no-tui backup.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("format", "csv", "import format (csv, ofx)")
	cmd.Flags().Bool("no-tui", false, "import and exit without launching the dashboard")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	format, _ := cmd.Flags().GetString("format")
	noTUI, _ := cmd.Flags().GetBool("no-tui")

	if format != "csv" && format != "ofx" {
		return fmt.Errorf("unsupported import format: %q", format)
	}

	files, err := expandArgs(args)
	if err != nil {
		return err
	}

	store, dir, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	expenses, budgets := loadState(ctx, store)

	var bar *progressbar.ProgressBar
	if noTUI {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Importing expenses..."),
		)
	}

	total := 0
	for _, path := range files {
		var count int
		switch format {
		case "csv":
			expenses, count, err = storage.ImportCSV(path, expenses)
		case "ofx":
			expenses, count, err = ofx.ImportFile(path, expenses)
		}
		if err != nil {
			return fmt.Errorf("failed to import from %s: %w", path, err)
		}
		total += count
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if err := store.SaveExpenses(ctx, expenses); err != nil {
		return fmt.Errorf("failed to save imported expenses: %w", err)
	}

	if noTUI {
		fmt.Fprintf(os.Stderr, "\nImported %d expenses from %d file(s)\n", total, len(files))
		return nil
	}
	return launchTUI(ctx, store, dir, expenses, budgets)
}

// expandArgs resolves glob patterns and verifies every named file exists.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("no files found matching %s", pattern)
			}
			matches = []string{pattern}
		}
		files = append(files, matches...)
	}
	return files, nil
}
