// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/danielhkuo/egghunt/auth"
	"github.com/danielhkuo/egghunt/cliparse"
	"github.com/danielhkuo/egghunt/db"
	"github.com/danielhkuo/egghunt/game"
	"github.com/danielhkuo/egghunt/images"
	"github.com/danielhkuo/egghunt/models"
	"github.com/danielhkuo/egghunt/session"
)

// TestDBURL is the connection string for the test database
const TestDBURL = "file::memory:"

// TestPasscode wins games built by NewTestSessions
const TestPasscode = "123CF"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3001,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		TokenSecret:  "test-token-secret",
		TokenTTL:     time.Hour,
	}
}

// GetTestGameConfig returns a small game: 1x2 puzzles and a five minute timer
func GetTestGameConfig() cliparse.GameConfig {
	return cliparse.GameConfig{
		Passcode:   TestPasscode,
		Timer:      "05:00",
		PuzzleRows: 1,
		PuzzleCols: 2,
		SessionTTL: time.Hour,
	}
}

// ImageFS returns an in-memory image directory holding a 200x100 PNG for
// every image of the default album
func ImageFS(t *testing.T) *images.FS {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 200, 100))); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}

	fsys := fstest.MapFS{}
	for _, def := range game.DefaultAlbum(1, 1) {
		fsys[def.Image] = &fstest.MapFile{Data: buf.Bytes()}
	}
	return images.New(fsys)
}

// NewTestSessions builds a session manager over GetTestGameConfig games.
// The manager reads the time from *now, so tests move the clock by
// assigning to it.
func NewTestSessions(t *testing.T, conn *sql.DB, now *time.Time) *session.Manager {
	t.Helper()

	gameCfg := GetTestGameConfig()
	src := ImageFS(t)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	return session.NewManager(session.Config{
		NewGame: func(id string) (*game.Game, error) {
			return game.New(game.Config{
				Album:      game.DefaultAlbum(gameCfg.PuzzleRows, gameCfg.PuzzleCols),
				FinalHint:  game.DefaultFinalHint,
				Passcode:   gameCfg.Passcode,
				TimerStart: gameCfg.Timer,
				Source:     src,
				Rand:       rand.New(rand.NewPCG(7, 11)),
				Logger:     quiet,
			})
		},
		TTL:    gameCfg.SessionTTL,
		Record: db.RecordGameResult(conn),
		Now:    func() time.Time { return *now },
	})
}

// CreateTestUser inserts a user with the given password and returns its id
func CreateTestUser(t *testing.T, conn *sql.DB, email, password string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	userID := auth.NewID()
	now := time.Now().UTC()
	_, err = conn.Exec(`
		INSERT INTO app_user (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, email, hash, now, now)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// AuthHeader returns an Authorization header for userID signed with cfg
func AuthHeader(t *testing.T, cfg cliparse.Config, userID string) map[string]string {
	t.Helper()

	token, err := auth.IssueToken(userID, cfg.TokenSecret, cfg.TokenTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// CreateTestItem inserts an item owned by userID and returns its id
func CreateTestItem(t *testing.T, conn *sql.DB, userID, name, description string) string {
	t.Helper()

	itemID := auth.NewID()
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO item (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, itemID, userID, name, description, now, now)
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}

	return itemID
}

// CorrectDrop returns the drop that places p on its home cell
func CorrectDrop(p models.PieceView) models.DropRequest {
	return models.DropRequest{PieceID: p.ID, Row: p.Row, Col: p.Col}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
