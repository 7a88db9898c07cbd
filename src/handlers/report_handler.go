package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	chart "github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"

	"smartfinance-server/src/apperr"
	db "smartfinance-server/src/db/sql"
	"smartfinance-server/src/ledger"
	"smartfinance-server/src/logger"
	"smartfinance-server/src/models"
)

const topCategoryLimit = 5

// GetSummary recomputes the full-ledger aggregate view from a fresh read.
func GetSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		transactions, err := db.ListTransactions(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to list transactions", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"totals":            ledger.ComputeTotals(transactions),
			"expenseByCategory": ledger.SumByCategory(transactions, models.TypeExpense),
			"topCategories":     ledger.TopCategories(transactions, topCategoryLimit),
			"transactionCount":  len(transactions),
		})
	}
}

func GetMonthlySummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		n := time.Now()
		year, month := n.Year(), int(n.Month())
		if v := r.URL.Query().Get("year"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid month or year"))
				return
			}
			year = parsed
		}
		if v := r.URL.Query().Get("month"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 1 || parsed > 12 {
				apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid month or year"))
				return
			}
			month = parsed
		}

		transactions, err := db.ListTransactions(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to list transactions", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"summary": ledger.SummarizeMonth(transactions, year, month),
		})
	}
}

func GetInsights(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		transactions, err := db.ListTransactions(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to list transactions", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"insights":    ledger.Insights(transactions),
			"suggestions": ledger.Suggestions,
		})
	}
}

// GetSpendingChart renders the top expense categories as a PNG bar chart.
func GetSpendingChart(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		transactions, err := db.ListTransactions(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to list transactions", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		top := ledger.TopCategories(transactions, 8)
		if len(top) == 0 {
			apperr.Write(w, apperr.New(http.StatusBadRequest, "no expense data to chart"))
			return
		}

		bars := make([]chart.Value, 0, len(top))
		for _, c := range top {
			bars = append(bars, chart.Value{Value: c.Amount, Label: c.Name})
		}

		graph := chart.BarChart{
			Title:  "Top spending categories",
			Width:  800,
			Height: 400,
			Background: chart.Style{
				Padding: chart.Box{Top: 40},
			},
			BarWidth: 60,
			Bars:     bars,
		}

		var buf bytes.Buffer
		if err := graph.Render(chart.PNG, &buf); err != nil {
			logger.Error("failed to render spending chart", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}
}
