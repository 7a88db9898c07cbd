// Package ledger derives summary views from a transaction set. Everything
// here is a pure function over an in-memory slice: no state, no store access,
// recomputed from a fresh read on every request so the views can never drift
// from the underlying transactions.
package ledger

import (
	"sort"
	"time"

	"github.com/jinzhu/now"

	"smartfinance-server/src/models"
)

type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// CategoryTotal is one row of a ranked spending breakdown. Percent is the
// share of total expenses, 0 when there are no expenses.
type CategoryTotal struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

type MonthlySummary struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	Income        float64         `json:"income"`
	Expense       float64         `json:"expense"`
	Balance       float64         `json:"balance"`
	IncomeCount   int             `json:"incomeCount"`
	ExpenseCount  int             `json:"expenseCount"`
	SavingsRate   float64         `json:"savingsRate"`
	SpendingRate  float64         `json:"spendingRate"`
	TopCategories []CategoryTotal `json:"topCategories"`
}

func ComputeTotals(transactions []models.Transaction) Totals {
	var t Totals
	for _, tx := range transactions {
		switch tx.Type {
		case models.TypeIncome:
			t.Income += tx.Amount
		case models.TypeExpense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// SumByCategory maps category name to summed amount, restricted to one type.
// Amounts are keyed by the snapshot name the transaction was recorded under.
func SumByCategory(transactions []models.Transaction, transactionType string) map[string]float64 {
	sums := make(map[string]float64)
	for _, tx := range transactions {
		if tx.Type == transactionType {
			sums[tx.CategoryName] += tx.Amount
		}
	}
	return sums
}

// MonthSlice filters to transactions whose timestamp falls within the given
// calendar month, bounds inclusive, compared in local time.
func MonthSlice(transactions []models.Transaction, year, month int) []models.Transaction {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := now.New(start).EndOfMonth()

	sliced := make([]models.Transaction, 0)
	for _, tx := range transactions {
		if !tx.CreatedAt.Before(start) && !tx.CreatedAt.After(end) {
			sliced = append(sliced, tx)
		}
	}
	return sliced
}

// TopCategories ranks expense categories by amount, descending. Equal amounts
// are ordered by name so the ranking is deterministic.
func TopCategories(transactions []models.Transaction, n int) []CategoryTotal {
	sums := SumByCategory(transactions, models.TypeExpense)
	totalExpense := 0.0
	for _, amount := range sums {
		totalExpense += amount
	}

	ranked := make([]CategoryTotal, 0, len(sums))
	for name, amount := range sums {
		percent := 0.0
		if totalExpense > 0 {
			percent = amount / totalExpense * 100
		}
		ranked = append(ranked, CategoryTotal{Name: name, Amount: amount, Percent: percent})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Name < ranked[j].Name
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// SummarizeMonth builds the month overview the dashboard shows: totals,
// per-type counts, savings/spending rates and the top three categories.
func SummarizeMonth(transactions []models.Transaction, year, month int) MonthlySummary {
	sliced := MonthSlice(transactions, year, month)
	totals := ComputeTotals(sliced)

	summary := MonthlySummary{
		Year:          year,
		Month:         month,
		Income:        totals.Income,
		Expense:       totals.Expense,
		Balance:       totals.Balance,
		TopCategories: TopCategories(sliced, 3),
	}
	for _, tx := range sliced {
		switch tx.Type {
		case models.TypeIncome:
			summary.IncomeCount++
		case models.TypeExpense:
			summary.ExpenseCount++
		}
	}
	if totals.Income > 0 {
		summary.SavingsRate = totals.Balance / totals.Income * 100
		summary.SpendingRate = totals.Expense / totals.Income * 100
	}
	return summary
}
