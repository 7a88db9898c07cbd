package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"

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

func validCurrentAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount >= 0
}

func CreateSavingGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var req models.CreateSavingGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create saving goal request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.TargetAmount == nil {
			apperr.Write(w, apperr.ErrMissingFields)
			return
		}
		if !util.ValidAmount(*req.TargetAmount) {
			apperr.Write(w, apperr.ErrInvalidAmount)
			return
		}

		goal := &models.SavingGoal{
			ID:           uuid.NewString(),
			UserID:       userID,
			Name:         req.Name,
			TargetAmount: *req.TargetAmount,
			Deadline:     req.Deadline,
		}
		if req.CurrentAmount != nil {
			if !validCurrentAmount(*req.CurrentAmount) {
				apperr.Write(w, apperr.ErrInvalidAmount)
				return
			}
			goal.CurrentAmount = *req.CurrentAmount
		}

		if err := db.CreateSavingGoal(r.Context(), pool, goal); err != nil {
			logger.Error("failed to create saving goal", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("saving goal created", zap.String("userID", userID), zap.String("goalID", goal.ID))
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"goalId": goal.ID,
			"goal":   goal,
		})
	}
}

func GetSavingGoals(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		goals, err := db.GetAllSavingGoalsForUser(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to list saving goals", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		if goals == nil {
			goals = []models.SavingGoal{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"goals": goals})
	}
}

func UpdateSavingGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		goalID := chi.URLParam(r, "goal_id")

		var req models.UpdateSavingGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update saving goal request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		if req.Name == nil && req.TargetAmount == nil && req.CurrentAmount == nil && req.Deadline == nil {
			apperr.Write(w, apperr.ErrNothingToUpdate)
			return
		}

		fields := map[string]interface{}{}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				apperr.Write(w, apperr.ErrMissingFields)
				return
			}
			fields["name"] = strings.TrimSpace(*req.Name)
		}
		if req.TargetAmount != nil {
			if !util.ValidAmount(*req.TargetAmount) {
				apperr.Write(w, apperr.ErrInvalidAmount)
				return
			}
			fields["target_amount"] = *req.TargetAmount
		}
		if req.CurrentAmount != nil {
			if !validCurrentAmount(*req.CurrentAmount) {
				apperr.Write(w, apperr.ErrInvalidAmount)
				return
			}
			fields["current_amount"] = *req.CurrentAmount
		}
		if req.Deadline != nil {
			fields["deadline"] = *req.Deadline
		}

		goal, err := db.UpdateSavingGoal(r.Context(), pool, userID, goalID, fields)
		if err != nil {
			logger.Error("failed to update saving goal",
				zap.String("userID", userID),
				zap.String("goalID", goalID),
				zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("saving goal updated", zap.String("userID", userID), zap.String("goalID", goalID))
		writeJSON(w, http.StatusOK, map[string]interface{}{"goal": goal})
	}
}

func DeleteSavingGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		goalID := chi.URLParam(r, "goal_id")

		if err := db.DeleteSavingGoal(r.Context(), pool, userID, goalID); err != nil {
			logger.Error("failed to delete saving goal",
				zap.String("userID", userID),
				zap.String("goalID", goalID),
				zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("saving goal deleted", zap.String("userID", userID), zap.String("goalID", goalID))
		writeJSON(w, http.StatusOK, map[string]string{"message": "saving goal deleted"})
	}
}
