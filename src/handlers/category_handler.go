package handlers

import (
	"encoding/json"
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
)

func GetCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		categories, err := db.ListCategories(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to list categories", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		if categories == nil {
			categories = []models.Category{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
	}
}

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var req models.CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create category request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.Icon == "" || req.Type == "" {
			apperr.Write(w, apperr.ErrMissingFields)
			return
		}
		if !models.ValidType(req.Type) {
			apperr.Write(w, apperr.ErrInvalidType)
			return
		}

		category := &models.Category{
			ID:     uuid.NewString(),
			UserID: userID,
			Name:   req.Name,
			Icon:   req.Icon,
			Type:   req.Type,
		}

		if err := db.CreateCategory(r.Context(), pool, category); err != nil {
			logger.Error("failed to create category", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("category created",
			zap.String("userID", userID),
			zap.String("categoryID", category.ID),
			zap.String("name", category.Name))

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"categoryId": category.ID,
			"category":   category,
		})
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		categoryID := chi.URLParam(r, "category_id")

		var req models.UpdateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update category request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		if req.Name == nil && req.Icon == nil && req.Type == nil {
			apperr.Write(w, apperr.ErrNothingToUpdate)
			return
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			apperr.Write(w, apperr.ErrMissingFields)
			return
		}
		if req.Type != nil && !models.ValidType(*req.Type) {
			apperr.Write(w, apperr.ErrInvalidType)
			return
		}

		category, err := db.UpdateCategory(r.Context(), pool, userID, categoryID, req)
		if err != nil {
			logger.Error("failed to update category",
				zap.String("userID", userID),
				zap.String("categoryID", categoryID),
				zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("category updated", zap.String("userID", userID), zap.String("categoryID", categoryID))
		writeJSON(w, http.StatusOK, map[string]interface{}{"category": category})
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		categoryID := chi.URLParam(r, "category_id")

		if err := db.DeleteCategoryCascade(r.Context(), pool, userID, categoryID); err != nil {
			logger.Error("failed to delete category",
				zap.String("userID", userID),
				zap.String("categoryID", categoryID),
				zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("category deleted", zap.String("userID", userID), zap.String("categoryID", categoryID))
		writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
	}
}
