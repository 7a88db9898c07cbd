package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"smartfinance-server/src/apperr"
	db "smartfinance-server/src/db/sql"
	"smartfinance-server/src/logger"
	"smartfinance-server/src/models"
	"smartfinance-server/src/util"
)

const tokenLifetime = 7 * 24 * time.Hour

func Register(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode register request body", zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Name = strings.TrimSpace(req.Name)

		if req.Email == "" || req.Password == "" || req.Name == "" {
			apperr.Write(w, apperr.ErrMissingFields)
			return
		}

		if !util.ValidateEmail(req.Email) {
			logger.Warn("registration with malformed email", zap.String("email", req.Email))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid email format"))
			return
		}

		if !util.ValidatePassword(req.Password) {
			apperr.Write(w, apperr.New(http.StatusBadRequest, "password must be at least 6 characters"))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash password", zap.Error(err))
			apperr.Write(w, err)
			return
		}

		user := &models.User{
			ID:           uuid.NewString(),
			Email:        strings.ToLower(req.Email),
			Name:         req.Name,
			PasswordHash: string(hashedPassword),
			Role:         "Client",
		}

		// The user and their default category set are created together, so
		// the cascade targets exist from the first request on.
		if err := db.CreateUserWithDefaults(r.Context(), pool, user, db.DefaultCategories(user.ID)); err != nil {
			logger.Error("failed to create user", zap.String("email", user.Email), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("user registered", zap.String("userID", user.ID), zap.String("email", user.Email))

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"userId": user.ID,
			"user":   user,
		})
	}
}

func Login(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode login request body", zap.Error(err))
			apperr.Write(w, apperr.New(http.StatusBadRequest, "invalid request"))
			return
		}

		if req.Email == "" || req.Password == "" {
			apperr.Write(w, apperr.ErrMissingFields)
			return
		}

		// Unknown email and wrong password produce the same response, so the
		// login endpoint cannot be used to enumerate registered emails. Store
		// failures fall through as internal errors.
		user, err := db.GetUserByEmail(r.Context(), pool, strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			logger.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			logger.Warn("invalid password attempt",
				zap.String("email", req.Email),
				zap.String("remoteAddr", r.RemoteAddr))
			apperr.Write(w, apperr.ErrInvalidCredentials)
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID,
			"role":    user.Role,
			"exp":     time.Now().Add(tokenLifetime).Unix(),
		})

		tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			logger.Error("failed to sign token", zap.String("userID", user.ID), zap.Error(err))
			apperr.Write(w, err)
			return
		}

		logger.Info("user logged in", zap.String("userID", user.ID))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"token": tokenString,
			"_id":   user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		})
	}
}
