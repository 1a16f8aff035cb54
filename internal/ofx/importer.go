// Package ofx imports expenses from OFX/QFX bank statement files.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/service"
)

// ImportFile parses an OFX/QFX statement and appends its debits to existing
// as non-recurring expenses with ids assigned from the next free id. Credits
// (deposits, refunds) are skipped; only money leaving the account is an
// expense. Like CSV import, a parse failure aborts the whole import.
func ImportFile(path string, existing []model.Expense) ([]model.Expense, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return existing, 0, common.NewImportError(path, 0, err)
	}
	defer func() { _ = f.Close() }()

	expenses, err := parse(f)
	if err != nil {
		return existing, 0, common.NewImportError(path, 0, err)
	}

	next := service.NextID(existing)
	for i := range expenses {
		expenses[i].ID = next
		next++
	}
	return append(existing, expenses...), len(expenses), nil
}

func parse(reader io.Reader) ([]model.Expense, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var expenses []model.Expense
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			expenses = append(expenses, convert(stmt.BankTranList.Transactions)...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			expenses = append(expenses, convert(stmt.BankTranList.Transactions)...)
		}
	}

	slog.Info("parsed OFX statement", "expenses", len(expenses))
	return expenses, nil
}

// preprocess trims leading whitespace so SGML-style headers parse.
func preprocess(content string) string {
	return strings.TrimLeft(content, " \t\r\n")
}

func convert(transactions []ofxgo.Transaction) []model.Expense {
	var expenses []model.Expense
	for _, tx := range transactions {
		// OFX uses negative amounts for debits.
		amount, _ := tx.TrnAmt.Float64()
		if amount >= 0 {
			continue
		}

		description := string(tx.Name)
		if description == "" {
			description = string(tx.Memo)
		}

		expenses = append(expenses, model.NewExpense(
			0,
			-amount,
			model.Category{Kind: model.CategoryOther},
			description,
			tx.DtPosted.Time,
			nil,
		))
	}
	return expenses
}
