package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"smartfinance-server/src/apperr"
	db "smartfinance-server/src/db/sql"
	"smartfinance-server/src/logger"
	"smartfinance-server/src/models"
	"smartfinance-server/src/util"
)

// Budgets are informational caps. Nothing here rejects transactions that
// exceed a limit.

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var req models.CreateBudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create budget request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		if req.CategoryID == "" || req.Limit == nil {
			apperr.Write(w, apperr.ErrMissingFields)
			return
		}
		if !util.ValidAmount(*req.Limit) {
			apperr.Write(w, apperr.ErrInvalidAmount)
			return
		}
		if req.Month == 0 && req.Year == 0 {
			n := time.Now()
			req.Month = int(n.Month())
			req.Year = n.Year()
		}
		if !util.ValidMonth(req.Month) || req.Year <= 0 {
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid month or year"))
			return
		}

		category, err := db.GetCategoryForUser(r.Context(), pool, userID, req.CategoryID)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		budget := &models.Budget{
			ID:         uuid.NewString(),
			UserID:     userID,
			CategoryID: category.ID,
			Limit:      *req.Limit,
			Month:      req.Month,
			Year:       req.Year,
		}

		if err := db.CreateBudget(r.Context(), pool, budget); err != nil {
			logger.Error("failed to create budget", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("budget created",
			zap.String("userID", userID),
			zap.String("budgetID", budget.ID),
			zap.String("categoryID", budget.CategoryID))

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"budgetId": budget.ID,
			"budget":   budget,
		})
	}
}

func GetBudgetByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		budgetID := chi.URLParam(r, "budget_id")

		budget, err := db.GetBudgetByID(r.Context(), pool, userID, budgetID)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"budget": budget})
	}
}

func GetAllBudgetsForUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		budgets, err := db.GetAllBudgetsForUser(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to list budgets", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		if budgets == nil {
			budgets = []models.Budget{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"budgets": budgets})
	}
}

func UpdateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		budgetID := chi.URLParam(r, "budget_id")

		var req models.UpdateBudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update budget request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		if req.CategoryID == nil && req.Limit == nil && req.Month == nil && req.Year == nil {
			apperr.Write(w, apperr.ErrNothingToUpdate)
			return
		}

		fields := map[string]interface{}{}
		if req.Limit != nil {
			if !util.ValidAmount(*req.Limit) {
				apperr.Write(w, apperr.ErrInvalidAmount)
				return
			}
			fields["month_limit"] = *req.Limit
		}
		if req.Month != nil {
			if !util.ValidMonth(*req.Month) {
				apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid month or year"))
				return
			}
			fields["month"] = *req.Month
		}
		if req.Year != nil {
			if *req.Year <= 0 {
				apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid month or year"))
				return
			}
			fields["year"] = *req.Year
		}
		if req.CategoryID != nil {
			category, err := db.GetCategoryForUser(r.Context(), pool, userID, *req.CategoryID)
			if err != nil {
				apperr.Write(w, err)
				return
			}
			fields["category_id"] = category.ID
		}

		budget, err := db.UpdateBudget(r.Context(), pool, userID, budgetID, fields)
		if err != nil {
			logger.Error("failed to update budget",
				zap.String("userID", userID),
				zap.String("budgetID", budgetID),
				zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("budget updated", zap.String("userID", userID), zap.String("budgetID", budgetID))
		writeJSON(w, http.StatusOK, map[string]interface{}{"budget": budget})
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		budgetID := chi.URLParam(r, "budget_id")

		if err := db.DeleteBudget(r.Context(), pool, userID, budgetID); err != nil {
			logger.Error("failed to delete budget",
				zap.String("userID", userID),
				zap.String("budgetID", budgetID),
				zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("budget deleted", zap.String("userID", userID), zap.String("budgetID", budgetID))
		writeJSON(w, http.StatusOK, map[string]string{"message": "budget deleted"})
	}
}
