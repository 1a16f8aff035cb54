package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/report"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.mode {
	case ModeForm:
		b.WriteString(m.renderForm())
	case ModeHelp:
		b.WriteString(m.renderHelp())
	case ModeConfirmDelete:
		b.WriteString(m.renderConfirmDelete())
	default:
		switch m.tab {
		case TabDashboard:
			b.WriteString(m.renderDashboard())
		case TabExpenses:
			b.WriteString(m.renderExpenses())
		case TabMonthly:
			b.WriteString(m.renderMonthly())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderTabs() string {
	titles := []string{"Dashboard [1]", "Expenses [2]", "Monthly [3]"}
	parts := make([]string, len(titles))
	for i, title := range titles {
		if Tab(i) == m.tab {
			parts[i] = m.theme.TabActive.Render(title)
		} else {
			parts[i] = m.theme.TabInactive.Render(title)
		}
	}
	row := m.theme.Title.Render(" Cashflow ") + "  " + strings.Join(parts, "  ")
	return m.theme.Box.Render(row)
}

func (m Model) renderDashboard() string {
	year, month := m.today.Year(), m.today.Month()
	monthTotal := report.TotalForMonth(m.expenses, year, month)
	yearTotal := report.TotalForYear(m.expenses, year)

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("This Month") + "  " + m.theme.Bold.Render(m.currency.Format(monthTotal)))
	b.WriteString("   ")
	b.WriteString(m.theme.Title.Render("This Year") + "  " + m.theme.Bold.Render(m.currency.Format(yearTotal)))
	b.WriteString("\n\n")

	b.WriteString(m.theme.Subtitle.Render("Last 30 days"))
	b.WriteString("\n")
	b.WriteString(renderSparkline(report.DailySpending(m.expenses, m.today, 30)))
	b.WriteString("\n\n")

	b.WriteString(m.theme.Subtitle.Render("Budgets"))
	b.WriteString("\n")
	b.WriteString(m.renderBudgets(year, month))

	return m.theme.Box.Render(b.String())
}

func (m Model) renderBudgets(year int, month time.Month) string {
	if len(m.budgets) == 0 {
		return m.theme.Muted.Render("No budgets set. Try: cashflow budget set Food 400")
	}

	var b strings.Builder
	for _, budget := range m.budgets {
		spent := 0.0
		for _, row := range report.SpendingByCategory(m.expenses, year, month) {
			if row.Category == budget.Category.String() {
				spent = row.Total
				break
			}
		}

		ratio := 0.0
		if budget.MonthlyLimit > 0 {
			ratio = spent / budget.MonthlyLimit
		}
		bar := m.budgetBar.ViewAs(min(ratio, 1.0))

		amounts := fmt.Sprintf("%s / %s", m.currency.Format(spent), m.currency.Format(budget.MonthlyLimit))
		style := m.theme.WithinBudget
		if spent > budget.MonthlyLimit {
			style = m.theme.OverBudget
		}

		b.WriteString(fmt.Sprintf("%-16s %s %s\n",
			budget.Category.String(), bar, style.Render(amounts)))
	}
	return b.String()
}

func (m Model) renderExpenses() string {
	var b strings.Builder

	if m.mode == ModeSearch || m.list.Query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if m.list.RecurringOnly {
		b.WriteString(m.theme.Subtitle.Render("[recurring only]"))
		b.WriteString("\n")
	}

	if m.list.Len() == 0 {
		b.WriteString(m.theme.Muted.Render("No expenses. Press 'a' to add one."))
		return m.theme.Box.Render(b.String())
	}

	header := fmt.Sprintf("%-12s %-12s %-18s %-30s %s", "Date", "Amount", "Category", "Description", "Recurs")
	b.WriteString(m.theme.Subtitle.Render(header))
	b.WriteString("\n")

	for pos, idx := range m.list.Indices {
		e := m.expenses[idx]
		recurs := ""
		if e.Recurrence != nil {
			recurs = e.Recurrence.String()
		}
		row := fmt.Sprintf("%-12s %-12s %-18s %-30s %s",
			e.Date.Format(model.DateLayout),
			m.currency.Format(e.Amount),
			truncate(e.Category.String(), 18),
			truncate(e.Description, 30),
			recurs,
		)
		if pos == m.list.Cursor {
			b.WriteString(m.theme.Selected.Render(row))
		} else {
			b.WriteString(m.theme.Normal.Render(row))
		}
		b.WriteString("\n")
	}
	return m.theme.Box.Render(b.String())
}

func (m Model) renderMonthly() string {
	total := report.TotalForMonth(m.expenses, m.selYear, m.selMonth)
	rows := report.SpendingByCategory(m.expenses, m.selYear, m.selMonth)

	var b strings.Builder
	heading := fmt.Sprintf("%s %d", m.selMonth, m.selYear)
	b.WriteString(m.theme.Title.Render(heading))
	b.WriteString(m.theme.Muted.Render("  (←/→ to change month)"))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(m.theme.Muted.Render("No expenses this month."))
		return m.theme.Box.Render(b.String())
	}

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-20s %s\n", truncate(row.Category, 20), m.currency.Format(row.Total)))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Bold.Render(fmt.Sprintf("%-20s %s", "Total", m.currency.Format(total))))
	return m.theme.Box.Render(b.String())
}

func (m Model) renderForm() string {
	title := "Add Expense"
	if m.form.editingID != nil {
		title = "Edit Expense"
	}

	category := model.CategoryNames()[m.form.categoryIndex]
	if m.form.categoryIndex == int(model.CategoryOther) {
		category = "Other: " + m.form.custom.View()
	}

	recurring := "[ ]"
	if m.form.isRecurring {
		recurring = "[x]"
	}
	recurrence := m.theme.Muted.Render("-")
	if m.form.isRecurring {
		recurrence = model.RecurrenceNames()[m.form.recurrenceIndex]
	}

	rows := []struct {
		label string
		value string
		field FormField
	}{
		{"Amount", m.form.amount.View(), FieldAmount},
		{"Category", category + m.theme.Muted.Render("  ←/→"), FieldCategory},
		{"Description", m.form.description.View(), FieldDescription},
		{"Date", m.form.date.View(), FieldDate},
		{"Recurring", recurring + m.theme.Muted.Render("  space toggles"), FieldRecurring},
		{"Repeats", recurrence, FieldRecurrenceType},
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")
	for _, row := range rows {
		label := m.theme.FieldLabel.Render(row.label)
		if row.field == m.form.field {
			label = m.theme.FieldActive.Render(fmt.Sprintf("%-12s", row.label))
		}
		b.WriteString(label + " " + row.value + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("Enter saves · Esc cancels · Tab moves"))
	return m.theme.Box.Render(b.String())
}

func (m Model) renderHelp() string {
	lines := []string{
		"1/2/3, Tab     switch tabs",
		"j/k or ↓/↑     move selection",
		"a              add expense",
		"e              edit selected",
		"d              delete selected",
		"/              search",
		"r              toggle recurring only",
		"x              export CSV",
		"h/l or ←/→     change month (Monthly tab)",
		"?              close help",
		"q              quit",
	}
	body := m.theme.Title.Render("Keys") + "\n\n" + strings.Join(lines, "\n")
	return m.theme.Box.Render(body)
}

func (m Model) renderConfirmDelete() string {
	e, ok := m.list.Selected(m.expenses)
	if !ok {
		return ""
	}
	body := fmt.Sprintf("Delete %q (%s)?\n\n%s",
		e.Description,
		m.currency.Format(e.Amount),
		m.theme.Muted.Render("y confirms, any other key cancels"))
	return m.theme.Box.Render(body)
}

func (m Model) renderStatusBar() string {
	if m.status != "" {
		if m.statusErr {
			return m.theme.StatusError.Render(m.status)
		}
		return m.theme.StatusInfo.Render(m.status)
	}
	return m.theme.Muted.Render("? for help · q to quit")
}

func renderSparkline(daily []uint64) string {
	var peak uint64 = 1
	for _, v := range daily {
		if v > peak {
			peak = v
		}
	}

	runes := make([]rune, len(daily))
	for i, v := range daily {
		level := int(v * uint64(len(sparkRunes)-1) / peak)
		runes[i] = sparkRunes[level]
	}
	return string(runes)
}

// truncate shortens s to limit runes, ending in an ellipsis. Slicing by
// runes keeps multi-byte descriptions and labels intact.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
