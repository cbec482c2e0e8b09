// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/egghunt/auth"
	"github.com/danielhkuo/egghunt/db"
	"github.com/danielhkuo/egghunt/models"
)

const testSecret = "middleware-secret"

func setupAuthDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.CreateSchema(conn); err != nil {
		t.Fatal(err)
	}

	userID := auth.NewID()
	now := time.Now().UTC()
	_, err = conn.Exec(`INSERT INTO app_user (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`, userID, "hunter@example.com", "x", now, now)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return conn, userID
}

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc.def", "abc.def", true},
		{"Bearer ", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"abc.def", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		got, ok := BearerToken(req)
		if got != tc.want || ok != tc.ok {
			t.Errorf("BearerToken(%q) = %q, %v; want %q, %v", tc.header, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	conn, userID := setupAuthDB(t)
	now := time.Now()

	valid, _ := auth.IssueToken(userID, testSecret, time.Hour, now)
	expired, _ := auth.IssueToken(userID, testSecret, time.Hour, now.Add(-2*time.Hour))
	foreign, _ := auth.IssueToken(userID, "other-secret", time.Hour, now)
	ghost, _ := auth.IssueToken(auth.NewID(), testSecret, time.Hour, now)

	testCases := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
		{"no header", "", http.StatusUnauthorized, "Not authorized, no token provided"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Not authorized, token expired"},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized, "Not authorized, token failed verification"},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized, "Not authorized, token failed verification"},
		{"deleted user", "Bearer " + ghost, http.StatusUnauthorized, "Not authorized, user not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			handler := RequireAuth(conn, testSecret)(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = UserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/api/items", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantStatus == http.StatusOK {
				if seen != userID {
					t.Errorf("Expected user %s in context, got %q", userID, seen)
				}
				return
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Message != tc.wantMessage {
				t.Errorf("Expected message '%s', got '%s'", tc.wantMessage, resp.Message)
			}
		})
	}
}

func TestUserIDMissing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := UserID(req); ok {
		t.Error("Expected no user id on a bare request")
	}

	req = req.WithContext(WithUserID(req.Context(), "u1"))
	if id, ok := UserID(req); !ok || id != "u1" {
		t.Errorf("Expected u1, got %q", id)
	}
}
