package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"smartfinance-server/src/apperr"
	cache "smartfinance-server/src/db"
	db "smartfinance-server/src/db/sql"
	"smartfinance-server/src/logger"
	"smartfinance-server/src/models"
	"smartfinance-server/src/util"
)

func GetUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to get user", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}

func UpdateUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var req models.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update user request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		if req.Name == nil && req.Avatar == nil {
			apperr.Write(w, apperr.ErrNothingToUpdate)
			return
		}
		if req.Name != nil && *req.Name == "" {
			apperr.Write(w, apperr.ErrMissingFields)
			return
		}

		user, err := db.UpdateUser(r.Context(), pool, userID, req)
		if err != nil {
			logger.Error("failed to update user", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		cache.DelUserCache(cache.UserCacheKey(userID))

		logger.Info("user profile updated", zap.String("userID", userID))
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}

func ChangePassword(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		var req models.ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode change password request body", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		if req.CurrentPassword == "" || req.NewPassword == "" {
			apperr.Write(w, apperr.ErrMissingFields)
			return
		}
		if !util.ValidatePassword(req.NewPassword) {
			apperr.Write(w, apperr.New(http.StatusBadRequest, "password must be at least 6 characters"))
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			logger.Error("failed to get user", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			apperr.Write(w, apperr.New(http.StatusUnauthorized, "current password is incorrect"))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash password", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		if err := db.UpdateUserPassword(r.Context(), pool, userID, string(hashed)); err != nil {
			logger.Error("failed to update password", zap.String("userID", userID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		cache.DelUserCache(cache.UserCacheKey(userID))

		logger.Info("password changed", zap.String("userID", userID))
		writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
	}
}
