package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartfinance-server/src/apperr"
	cache "smartfinance-server/src/db"
	db "smartfinance-server/src/db/sql"
)

// ParseTokenFromRequest extracts and validates the bearer token, returning
// its claims if valid.
func ParseTokenFromRequest(r *http.Request) (jwt.MapClaims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// JWTAuthMiddleware authenticates the request and confirms the subject still
// exists. The existence check goes through the user cache first so the common
// path costs no extra database round-trip.
func JWTAuthMiddleware(pool *pgxpool.Pool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ParseTokenFromRequest(r)
			if err != nil {
				apperr.Write(w, apperr.ErrUnauthorized)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				apperr.Write(w, apperr.ErrUnauthorized)
				return
			}
			role, _ := claims["role"].(string)

			cacheKey := cache.UserCacheKey(userID)
			if _, found := cache.GetUserCache(cacheKey); !found {
				user, err := db.GetUserByID(r.Context(), pool, userID)
				if err != nil {
					apperr.Write(w, apperr.ErrUnauthorized)
					return
				}
				cache.SetUserCache(cacheKey, user)
			}

			ctx := context.WithValue(r.Context(), "user_id", userID)
			ctx = context.WithValue(ctx, "role", role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
