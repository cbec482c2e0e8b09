// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/egghunt/auth"
)

type contextKey struct{}

var userIDKey contextKey

// WithUserID returns a context carrying the authenticated user id
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user id set by RequireAuth
func UserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(userIDKey).(string)
	return id, ok && id != ""
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth returns middleware that accepts only requests carrying a valid
// token for a user that still exists.
func RequireAuth(db *sql.DB, secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				ErrorResponse(w, http.StatusUnauthorized, "Not authorized, no token provided")
				return
			}

			claims, err := auth.ParseToken(token, secret, time.Now())
			if errors.Is(err, auth.ErrTokenExpired) {
				ErrorResponse(w, http.StatusUnauthorized, "Not authorized, token expired")
				return
			}
			if err != nil {
				ErrorResponse(w, http.StatusUnauthorized, "Not authorized, token failed verification")
				return
			}

			var exists bool
			err = db.QueryRowContext(r.Context(),
				"SELECT EXISTS (SELECT 1 FROM app_user WHERE id = $1)", claims.UserID,
			).Scan(&exists)
			if err != nil {
				slog.Error("failed to look up token user", "error", err)
				ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
			if !exists {
				ErrorResponse(w, http.StatusUnauthorized, "Not authorized, user not found")
				return
			}

			next(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		}
	}
}
