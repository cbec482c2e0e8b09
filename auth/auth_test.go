// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()

	if !ValidID(id1) {
		t.Errorf("NewID() produced invalid UUID %q", id1)
	}
	if id1 == id2 {
		t.Error("NewID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"uuid", "6f1c2a8e-3b7d-4f0a-9c5e-2d8b1a7f4e63", true},
		{"empty", "", false},
		{"object id", "507f1f77bcf86cd799439011", false},
		{"garbage", "not-an-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidID(tt.id); got != tt.want {
				t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "hunter@example.com", "hunter@example.com", false},
		{"trims and lowers", "  Hunter@Example.COM ", "hunter@example.com", false},
		{"dotted local part", "egg.hunter@mail.example.ca", "egg.hunter@mail.example.ca", false},
		{"missing at", "hunter.example.com", "", true},
		{"missing domain", "hunter@", "", true},
		{"long tld", "hunter@example.museum", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmail(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEmail) {
					t.Errorf("Expected ErrInvalidEmail, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeEmail() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret!" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("Expected a bcrypt hash, got %q", hash)
	}

	if err := CheckPassword(hash, "s3cret!"); err != nil {
		t.Errorf("CheckPassword() with correct password error = %v", err)
	}
	if err := CheckPassword(hash, "wrong!"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("Expected ErrWrongPassword, got %v", err)
	}

	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected ErrPasswordTooShort, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2025, 4, 20, 12, 0, 0, 0, time.UTC)

	token, err := IssueToken("user-1", "secret", 24*time.Hour, now)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("Token should be URL-safe without padding: %s", token)
	}

	claims, err := ParseToken(token, "secret", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("Expected user-1, got %s", claims.UserID)
	}
	if claims.ExpiresAt != now.Add(24*time.Hour).Unix() {
		t.Errorf("Unexpected expiry %d", claims.ExpiresAt)
	}
}

func TestParseTokenFailures(t *testing.T) {
	now := time.Date(2025, 4, 20, 12, 0, 0, 0, time.UTC)
	token, _ := IssueToken("user-1", "secret", time.Hour, now)
	body, sig, _ := strings.Cut(token, ".")

	tests := []struct {
		name  string
		token string
		at    time.Time
		want  error
	}{
		{"empty", "", now, ErrInvalidToken},
		{"no separator", body, now, ErrInvalidToken},
		{"missing signature", body + ".", now, ErrInvalidToken},
		{"tampered payload", "x" + body + "." + sig, now, ErrTokenSignature},
		{"tampered signature", body + "." + sig + "x", now, ErrTokenSignature},
		{"expired", token, now.Add(time.Hour), ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, "secret", tt.at)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := ParseToken(token, "other-secret", now); !errors.Is(err, ErrTokenSignature) {
		t.Errorf("Token should not verify under another secret, got %v", err)
	}
}
