// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/egghunt/auth"
	"github.com/danielhkuo/egghunt/models"
	"github.com/danielhkuo/egghunt/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAuthHandler(db, cfg)

	testutil.CreateTestUser(t, db, "taken@example.com", "secret123")

	tests := []struct {
		name           string
		request        models.RegisterRequest
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "valid registration",
			request:        models.RegisterRequest{Email: "New.User@Example.com", Password: "secret123"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing password",
			request:        models.RegisterRequest{Email: "someone@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Please provide email and password",
		},
		{
			name:           "invalid email",
			request:        models.RegisterRequest{Email: "not-an-email", Password: "secret123"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Please fill a valid email address",
		},
		{
			name:           "short password",
			request:        models.RegisterRequest{Email: "short@example.com", Password: "abc"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Password must be at least 6 characters long",
		},
		{
			name:           "duplicate email",
			request:        models.RegisterRequest{Email: "TAKEN@example.com", Password: "secret123"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "User already exists with this email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/auth/register", tt.request, nil)
			w := httptest.NewRecorder()

			handler.Register(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusCreated {
				var errResp models.ErrorResponse
				testutil.AssertJSON(t, w, &errResp)
				if errResp.Message != tt.expectedMsg {
					t.Errorf("Expected message %q, got %q", tt.expectedMsg, errResp.Message)
				}
				return
			}

			var resp models.AuthResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.User.Email != "new.user@example.com" {
				t.Errorf("Expected normalized email, got %s", resp.User.Email)
			}
			if !auth.ValidID(resp.User.ID) {
				t.Errorf("Expected a UUID user id, got %s", resp.User.ID)
			}

			claims, err := auth.ParseToken(resp.Token, cfg.TokenSecret, time.Now())
			if err != nil {
				t.Fatalf("Expected a valid token, got %v", err)
			}
			if claims.UserID != resp.User.ID {
				t.Errorf("Expected token for %s, got %s", resp.User.ID, claims.UserID)
			}
		})
	}
}

func TestRegisterInvalidJSON(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAuthHandler(db, testutil.GetTestConfig())

	req := httptest.NewRequest("POST", "/api/auth/register", nil)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestRegisterDoesNotExposePasswordHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAuthHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/auth/register",
		models.RegisterRequest{Email: "hash@example.com", Password: "secret123"}, nil)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
	var raw struct {
		User map[string]any `json:"user"`
	}
	testutil.AssertJSON(t, w, &raw)
	if len(raw.User) == 0 {
		t.Fatal("Expected a user object in the response")
	}
	for key := range raw.User {
		if key == "password_hash" || key == "PasswordHash" {
			t.Errorf("Expected password hash to stay out of the response")
		}
	}
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAuthHandler(db, cfg)

	userID := testutil.CreateTestUser(t, db, "player@example.com", "secret123")

	tests := []struct {
		name           string
		request        models.LoginRequest
		expectedStatus int
	}{
		{"valid credentials", models.LoginRequest{Email: "Player@example.com", Password: "secret123"}, http.StatusOK},
		{"wrong password", models.LoginRequest{Email: "player@example.com", Password: "wrong-one"}, http.StatusUnauthorized},
		{"unknown user", models.LoginRequest{Email: "nobody@example.com", Password: "secret123"}, http.StatusUnauthorized},
		{"malformed email", models.LoginRequest{Email: "player", Password: "secret123"}, http.StatusUnauthorized},
		{"missing fields", models.LoginRequest{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/auth/login", tt.request, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			switch tt.expectedStatus {
			case http.StatusOK:
				var resp models.AuthResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.User.ID != userID {
					t.Errorf("Expected user %s, got %s", userID, resp.User.ID)
				}
				if resp.Token == "" {
					t.Error("Expected a token")
				}
			case http.StatusUnauthorized:
				var errResp models.ErrorResponse
				testutil.AssertJSON(t, w, &errResp)
				if errResp.Message != "Invalid email or password" {
					t.Errorf("Expected generic credentials message, got %q", errResp.Message)
				}
			}
		})
	}
}
