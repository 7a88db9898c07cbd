package handlers

import (
	"encoding/json"
	"net/http"

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

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var req models.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create transaction request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		if req.Amount == nil || req.Type == "" || req.CategoryID == "" || req.Description == "" {
			apperr.Write(w, apperr.ErrMissingFields)
			return
		}
		if !models.ValidType(req.Type) {
			apperr.Write(w, apperr.ErrInvalidType)
			return
		}
		if !util.ValidAmount(*req.Amount) {
			apperr.Write(w, apperr.ErrInvalidAmount)
			return
		}

		category, err := db.GetCategoryForUser(r.Context(), pool, userID, req.CategoryID)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		if category.Type != req.Type {
			apperr.Write(w, apperr.ErrInvalidType)
			return
		}

		transaction := &models.Transaction{
			ID:           uuid.NewString(),
			UserID:       userID,
			CategoryID:   category.ID,
			CategoryName: category.Name,
			CategoryIcon: category.Icon,
			Type:         req.Type,
			Amount:       *req.Amount,
			Description:  req.Description,
		}

		if err := db.CreateTransaction(r.Context(), pool, transaction); err != nil {
			logger.Error("failed to create transaction", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("transaction created",
			zap.String("userID", userID),
			zap.String("transactionID", transaction.ID),
			zap.Float64("amount", transaction.Amount))

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"transactionId": transaction.ID,
			"transaction":   transaction,
		})
	}
}

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		transactions, err := db.ListTransactions(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to list transactions", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		if transactions == nil {
			transactions = []models.Transaction{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": transactions})
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		transactionID := chi.URLParam(r, "transaction_id")

		var req models.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update transaction request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		if !req.HasUpdates() {
			apperr.Write(w, apperr.ErrNothingToUpdate)
			return
		}
		if req.Amount != nil && !util.ValidAmount(*req.Amount) {
			apperr.Write(w, apperr.ErrInvalidAmount)
			return
		}
		if req.Type != nil && !models.ValidType(*req.Type) {
			apperr.Write(w, apperr.ErrInvalidType)
			return
		}

		existing, err := db.GetTransactionForUser(r.Context(), pool, userID, transactionID)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		fields := map[string]interface{}{}
		if req.Amount != nil {
			fields["amount"] = *req.Amount
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}

		// Touching either the type or the category re-checks the combined
		// invariant: a transaction's type always matches its category's type.
		if req.Type != nil || req.CategoryID != nil {
			finalType := existing.Type
			if req.Type != nil {
				finalType = *req.Type
			}
			categoryID := existing.CategoryID
			if req.CategoryID != nil {
				categoryID = *req.CategoryID
			}

			category, err := db.GetCategoryForUser(r.Context(), pool, userID, categoryID)
			if err != nil {
				apperr.Write(w, err)
				return
			}
			if category.Type != finalType {
				apperr.Write(w, apperr.ErrInvalidType)
				return
			}

			fields["type"] = finalType
			if req.CategoryID != nil {
				fields["category_id"] = category.ID
				fields["category_name"] = category.Name
				fields["category_icon"] = category.Icon
			}
		}

		transaction, err := db.UpdateTransactionFields(r.Context(), pool, userID, transactionID, fields)
		if err != nil {
			logger.Error("failed to update transaction",
				zap.String("userID", userID),
				zap.String("transactionID", transactionID),
				zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("transaction updated", zap.String("userID", userID), zap.String("transactionID", transactionID))
		writeJSON(w, http.StatusOK, map[string]interface{}{"transaction": transaction})
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		transactionID := chi.URLParam(r, "transaction_id")

		if err := db.DeleteTransaction(r.Context(), pool, userID, transactionID); err != nil {
			logger.Error("failed to delete transaction",
				zap.String("userID", userID),
				zap.String("transactionID", transactionID),
				zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("transaction deleted", zap.String("userID", userID), zap.String("transactionID", transactionID))
		writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
	}
}
