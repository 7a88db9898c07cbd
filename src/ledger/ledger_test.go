package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartfinance-server/src/models"
)

func tx(category, txType string, amount float64, created time.Time) models.Transaction {
	return models.Transaction{
		CategoryName: category,
		Type:         txType,
		Amount:       amount,
		CreatedAt:    created,
	}
}

func TestComputeTotals_BalanceIdentity(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		tx("Salary", models.TypeIncome, 3000, now),
		tx("Freelance", models.TypeIncome, 420.5, now),
		tx("Food", models.TypeExpense, 150, now),
		tx("Rent", models.TypeExpense, 900.25, now),
	}

	totals := ComputeTotals(transactions)

	assert.Equal(t, 3420.5, totals.Income)
	assert.Equal(t, 1050.25, totals.Expense)
	assert.Equal(t, totals.Income-totals.Expense, totals.Balance)
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.Equal(t, 0.0, totals.Income)
	assert.Equal(t, 0.0, totals.Expense)
	assert.Equal(t, 0.0, totals.Balance)
}

func TestSumByCategory_FiltersByType(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		tx("Food", models.TypeExpense, 100, now),
		tx("Food", models.TypeExpense, 50, now),
		tx("Transport", models.TypeExpense, 30, now),
		tx("Salary", models.TypeIncome, 3000, now),
	}

	sums := SumByCategory(transactions, models.TypeExpense)

	assert.Equal(t, map[string]float64{"Food": 150, "Transport": 30}, sums)
}

func TestMonthSlice_CalendarBoundaries(t *testing.T) {
	firstInstant := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	lastInstant := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.Local)
	nextMonth := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local)
	previousYear := time.Date(2023, time.December, 31, 23, 59, 59, 0, time.Local)

	transactions := []models.Transaction{
		tx("Food", models.TypeExpense, 1, firstInstant),
		tx("Food", models.TypeExpense, 2, lastInstant),
		tx("Food", models.TypeExpense, 4, nextMonth),
		tx("Food", models.TypeExpense, 8, previousYear),
	}

	sliced := MonthSlice(transactions, 2024, 1)

	assert.Len(t, sliced, 2)
	assert.Equal(t, 3.0, ComputeTotals(sliced).Expense)
}

func TestTopCategories_RanksAndTruncates(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		tx("Food", models.TypeExpense, 150, now),
		tx("Rent", models.TypeExpense, 600, now),
		tx("Transport", models.TypeExpense, 50, now),
		tx("Salary", models.TypeIncome, 3000, now),
	}

	top := TopCategories(transactions, 2)

	assert.Len(t, top, 2)
	assert.Equal(t, "Rent", top[0].Name)
	assert.Equal(t, 600.0, top[0].Amount)
	assert.InDelta(t, 75.0, top[0].Percent, 0.0001)
	assert.Equal(t, "Food", top[1].Name)
	assert.InDelta(t, 18.75, top[1].Percent, 0.0001)
}

func TestTopCategories_TieBreaksByName(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		tx("Zoo", models.TypeExpense, 100, now),
		tx("Aquarium", models.TypeExpense, 100, now),
	}

	top := TopCategories(transactions, 0)

	assert.Equal(t, "Aquarium", top[0].Name)
	assert.Equal(t, "Zoo", top[1].Name)
}

func TestTopCategories_NoExpenses(t *testing.T) {
	transactions := []models.Transaction{
		tx("Salary", models.TypeIncome, 3000, time.Now()),
	}

	assert.Empty(t, TopCategories(transactions, 5))
}

func TestLedgerScenario_DeleteCategoryReassignsToDefault(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		tx("Salary", models.TypeIncome, 3000, now),
		tx("Food", models.TypeExpense, 150, now),
	}

	totals := ComputeTotals(transactions)
	assert.Equal(t, 3000.0, totals.Income)
	assert.Equal(t, 150.0, totals.Expense)
	assert.Equal(t, 2850.0, totals.Balance)

	// After the Food category is deleted, its transaction carries the
	// expense default's snapshot instead.
	transactions[1].CategoryName = "Default"

	sums := SumByCategory(transactions, models.TypeExpense)
	assert.Equal(t, map[string]float64{"Default": 150}, sums)
	assert.Equal(t, totals, ComputeTotals(transactions))
}

func TestSummarizeMonth(t *testing.T) {
	created := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	transactions := []models.Transaction{
		tx("Salary", models.TypeIncome, 2000, created),
		tx("Food", models.TypeExpense, 300, created),
		tx("Rent", models.TypeExpense, 700, created),
		tx("Food", models.TypeExpense, 100, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local)),
	}

	summary := SummarizeMonth(transactions, 2024, 6)

	assert.Equal(t, 2000.0, summary.Income)
	assert.Equal(t, 1000.0, summary.Expense)
	assert.Equal(t, 1000.0, summary.Balance)
	assert.Equal(t, 1, summary.IncomeCount)
	assert.Equal(t, 2, summary.ExpenseCount)
	assert.InDelta(t, 50.0, summary.SavingsRate, 0.0001)
	assert.InDelta(t, 50.0, summary.SpendingRate, 0.0001)
	assert.Equal(t, "Rent", summary.TopCategories[0].Name)
}

func TestSummarizeMonth_NoIncome(t *testing.T) {
	created := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	transactions := []models.Transaction{
		tx("Food", models.TypeExpense, 300, created),
	}

	summary := SummarizeMonth(transactions, 2024, 6)

	assert.Equal(t, 0.0, summary.SavingsRate)
	assert.Equal(t, 0.0, summary.SpendingRate)
}
