package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-shopcart/apierr"
	"go-shopcart/models"
	"go-shopcart/store"
	"go-shopcart/utils"
)

type contextKey string

const userContextKey = contextKey("user")

// Auth verifies the Bearer token and resolves the full user record onto the
// request context, so handlers receive an already-authenticated user.
func Auth(users store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w)
				return
			}

			claims, err := utils.ParseJWT(parts[1])
			if err != nil {
				writeUnauthorized(w)
				return
			}

			user, err := resolveUser(r.Context(), users, claims)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func resolveUser(ctx context.Context, users store.UserStore, claims *utils.Claims) (models.User, error) {
	user, err := users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user set by Auth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(apierr.Unauthorized("Please authenticate"))
}
