package ledger

import (
	"fmt"
	"math"

	"smartfinance-server/src/models"
)

// Suggestions is the fixed actionable-tips list shown alongside insights.
var Suggestions = []string{
	"Set monthly budgets for each spending category",
	"Track your daily expenses to identify spending patterns",
	"Create savings goals and automate transfers",
	"Review and adjust categories monthly",
	"Look for subscription services you might not be using",
}

type insightStats struct {
	totals            Totals
	expenseByCategory map[string]float64
	expenseCount      int
	top               []CategoryTotal
}

type insightRule struct {
	applies func(insightStats) bool
	render  func(insightStats) string
}

// insightRules is evaluated in order; each rule contributes at most one
// sentence. The order is part of the contract: average expense, then top
// category, then balance, then the entertainment callout, then
// diversification.
var insightRules = []insightRule{
	{
		applies: func(s insightStats) bool { return s.expenseCount > 0 },
		render: func(s insightStats) string {
			avg := s.totals.Expense / float64(s.expenseCount)
			return fmt.Sprintf(
				"Your average expense per transaction is $%.2f. Try to keep it under control by setting a daily budget.",
				avg,
			)
		},
	},
	{
		applies: func(s insightStats) bool { return len(s.top) > 0 },
		render: func(s insightStats) string {
			return fmt.Sprintf(
				"Your top spending category is %s with $%.2f (%.1f%% of total expenses). Consider optimizing this area.",
				s.top[0].Name, s.top[0].Amount, s.top[0].Percent,
			)
		},
	},
	{
		applies: func(s insightStats) bool { return s.totals.Balance != 0 },
		render: func(s insightStats) string {
			if s.totals.Balance > 0 {
				return fmt.Sprintf(
					"Great job! Your current balance is positive at $%.2f. Keep up this positive trend!",
					s.totals.Balance,
				)
			}
			return fmt.Sprintf(
				"Your expenses exceed income by $%.2f. Consider reducing discretionary spending.",
				math.Abs(s.totals.Balance),
			)
		},
	},
	{
		applies: func(s insightStats) bool { _, ok := s.expenseByCategory["Entertainment"]; return ok },
		render: func(s insightStats) string {
			spend := s.expenseByCategory["Entertainment"]
			return fmt.Sprintf(
				"You're spending $%.2f on entertainment. If you reduced this by 20%%, you could save $%.2f.",
				spend, spend*0.2,
			)
		},
	},
	{
		applies: func(s insightStats) bool { return len(s.expenseByCategory) >= 1 },
		render: func(s insightStats) string {
			return fmt.Sprintf(
				"You have expenses in %d categories. Good diversification! Track each category carefully.",
				len(s.expenseByCategory),
			)
		},
	},
}

// Insights generates the rule-based recommendation sentences for a
// transaction set. Deterministic: same input, same output, same order.
func Insights(transactions []models.Transaction) []string {
	stats := insightStats{
		totals:            ComputeTotals(transactions),
		expenseByCategory: SumByCategory(transactions, models.TypeExpense),
		top:               TopCategories(transactions, 1),
	}
	for _, tx := range transactions {
		if tx.Type == models.TypeExpense {
			stats.expenseCount++
		}
	}

	insights := make([]string, 0, len(insightRules))
	for _, rule := range insightRules {
		if rule.applies(stats) {
			insights = append(insights, rule.render(stats))
		}
	}
	return insights
}
