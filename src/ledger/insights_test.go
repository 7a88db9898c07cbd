package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfinance-server/src/models"
)

func TestInsights_FullRuleSet(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		tx("Salary", models.TypeIncome, 3000, now),
		tx("Food", models.TypeExpense, 150, now),
		tx("Entertainment", models.TypeExpense, 100, now),
	}

	insights := Insights(transactions)

	require.Len(t, insights, 5)
	assert.Equal(t,
		"Your average expense per transaction is $125.00. Try to keep it under control by setting a daily budget.",
		insights[0])
	assert.Equal(t,
		"Your top spending category is Food with $150.00 (60.0% of total expenses). Consider optimizing this area.",
		insights[1])
	assert.Equal(t,
		"Great job! Your current balance is positive at $2750.00. Keep up this positive trend!",
		insights[2])
	assert.Equal(t,
		"You're spending $100.00 on entertainment. If you reduced this by 20%, you could save $20.00.",
		insights[3])
	assert.Equal(t,
		"You have expenses in 2 categories. Good diversification! Track each category carefully.",
		insights[4])
}

func TestInsights_EmptyLedger(t *testing.T) {
	assert.Empty(t, Insights(nil))
}

func TestInsights_IncomeOnly(t *testing.T) {
	transactions := []models.Transaction{
		tx("Salary", models.TypeIncome, 3000, time.Now()),
	}

	insights := Insights(transactions)

	require.Len(t, insights, 1)
	assert.Equal(t,
		"Great job! Your current balance is positive at $3000.00. Keep up this positive trend!",
		insights[0])
}

func TestInsights_NegativeBalance(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		tx("Salary", models.TypeIncome, 100, now),
		tx("Rent", models.TypeExpense, 350.50, now),
	}

	insights := Insights(transactions)

	assert.Contains(t, insights,
		"Your expenses exceed income by $250.50. Consider reducing discretionary spending.")
}

func TestInsights_BalancedLedgerSkipsBalanceNote(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		tx("Salary", models.TypeIncome, 100, now),
		tx("Food", models.TypeExpense, 100, now),
	}

	insights := Insights(transactions)

	for _, insight := range insights {
		assert.NotContains(t, insight, "balance")
		assert.NotContains(t, insight, "exceed income")
	}
}

func TestInsights_Deterministic(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		tx("Salary", models.TypeIncome, 3000, now),
		tx("Food", models.TypeExpense, 150, now),
		tx("Transport", models.TypeExpense, 150, now),
	}

	first := Insights(transactions)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Insights(transactions))
	}
}
