// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/egghunt/auth"
	"github.com/danielhkuo/egghunt/cliparse"
	"github.com/danielhkuo/egghunt/game"
	"github.com/danielhkuo/egghunt/jigsaw"
	"github.com/danielhkuo/egghunt/middleware"
	"github.com/danielhkuo/egghunt/models"
	"github.com/danielhkuo/egghunt/selector"
	"github.com/danielhkuo/egghunt/session"
)

// ResultsLimit caps the results list
const ResultsLimit = 50

type GameHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	sessions *session.Manager
}

func NewGameHandler(db *sql.DB, cfg cliparse.Config, sessions *session.Manager) *GameHandler {
	return &GameHandler{db: db, cfg: cfg, sessions: sessions}
}

// action is one request's change to a game
type action func(ctx context.Context, g *game.Game, now time.Time) error

// withGame resolves the caller and the {id} game, runs fn under the game lock
// and returns a snapshot taken right after. On failure it writes the error
// response and returns false.
func (h *GameHandler) withGame(w http.ResponseWriter, r *http.Request, fn action) (models.GameSnapshot, bool) {
	var snap models.GameSnapshot

	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized, user ID missing")
		return snap, false
	}

	gameID := r.PathValue("id")
	if !auth.ValidID(gameID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid game ID format")
		return snap, false
	}

	ctx := r.Context()
	err := h.sessions.Do(ctx, gameID, userID, func(g *game.Game, now time.Time) error {
		if fn != nil {
			if err := fn(ctx, g, now); err != nil {
				return err
			}
		}
		snap = snapshot(gameID, g, now)
		return nil
	})
	if err != nil {
		writeGameError(w, gameID, err)
		return snap, false
	}
	return snap, true
}

// writeGameError maps game errors to HTTP statuses
func writeGameError(w http.ResponseWriter, gameID string, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Game not found")
	case errors.Is(err, game.ErrWrongStage):
		middleware.ErrorResponse(w, http.StatusConflict, "Action not allowed in the current stage")
	case errors.Is(err, jigsaw.ErrNotComplete):
		middleware.ErrorResponse(w, http.StatusConflict, "Puzzle is not complete")
	case errors.Is(err, game.ErrNothingToLoad):
		middleware.ErrorResponse(w, http.StatusConflict, "Puzzle is already loaded")
	case errors.Is(err, game.ErrSelectorIndex):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Selector index out of range")
	case errors.Is(err, game.ErrImageLoad):
		slog.Error("puzzle image failed to load", "game_id", gameID, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to load puzzle image")
	default:
		slog.Error("game action failed", "game_id", gameID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to process game action")
	}
}

// ignoreLoadErr keeps the game moving when only the image load failed. The
// failure is reported in the snapshot and can be retried with LoadPuzzle.
func ignoreLoadErr(g *game.Game, err error) error {
	if err != nil && g.LoadErr() != nil && errors.Is(err, g.LoadErr()) {
		return nil
	}
	return err
}

// CreateGame handles POST /api/games
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized, user ID missing")
		return
	}

	gameID, err := h.sessions.Create(userID)
	if err != nil {
		slog.Error("failed to create game", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create game")
		return
	}

	var snap models.GameSnapshot
	err = h.sessions.Do(r.Context(), gameID, userID, func(g *game.Game, now time.Time) error {
		snap = snapshot(gameID, g, now)
		return nil
	})
	if err != nil {
		writeGameError(w, gameID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, snap)
}

// GetGame handles GET /api/games/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.withGame(w, r, nil)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// StartGame handles POST /api/games/{id}/start
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.withGame(w, r, func(ctx context.Context, g *game.Game, now time.Time) error {
		return ignoreLoadErr(g, g.Start(ctx, now))
	})
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// LoadPuzzle handles POST /api/games/{id}/load, retrying a failed image load
func (h *GameHandler) LoadPuzzle(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.withGame(w, r, func(ctx context.Context, g *game.Game, now time.Time) error {
		return g.Load(ctx)
	})
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// DropPiece handles POST /api/games/{id}/drops
func (h *GameHandler) DropPiece(w http.ResponseWriter, r *http.Request) {
	var req models.DropRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var accepted bool
	snap, ok := h.withGame(w, r, func(ctx context.Context, g *game.Game, now time.Time) error {
		var err error
		accepted, err = g.Drop(req.PieceID, jigsaw.Position{Row: req.Row, Col: req.Col})
		return err
	})
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DropResponse{Accepted: accepted, Game: snap})
}

// NextPuzzle handles POST /api/games/{id}/next
func (h *GameHandler) NextPuzzle(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.withGame(w, r, func(ctx context.Context, g *game.Game, now time.Time) error {
		return ignoreLoadErr(g, g.Next(ctx))
	})
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// ScrollTray handles POST /api/games/{id}/tray: scroll buttons, wheel
// gestures and resizes of the piece tray
func (h *GameHandler) ScrollTray(w http.ResponseWriter, r *http.Request) {
	var req models.TrayRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch req.Action {
	case models.TrayScrollLeft, models.TrayScrollRight, models.TrayWheel:
	case models.TrayResize:
		if req.Width <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Width must be positive")
			return
		}
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown tray action")
		return
	}

	handled := true
	snap, ok := h.withGame(w, r, func(ctx context.Context, g *game.Game, now time.Time) error {
		t, err := g.ActiveTray()
		if err != nil {
			return err
		}
		switch req.Action {
		case models.TrayScrollLeft:
			t.ScrollLeft()
		case models.TrayScrollRight:
			t.ScrollRight()
		case models.TrayWheel:
			handled = t.Wheel(req.DeltaX, req.DeltaY)
		case models.TrayResize:
			t.Resize(req.Width, now)
		}
		return nil
	})
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.InputResponse{Handled: handled, Game: snap})
}

// selectorIndex parses the {index} path value
func selectorIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid selector index")
		return 0, false
	}
	return index, true
}

// SelectorInput handles POST /api/games/{id}/selectors/{index}/input:
// pointer drags, wheel scrolls and arrow keys on one code selector
func (h *GameHandler) SelectorInput(w http.ResponseWriter, r *http.Request) {
	index, ok := selectorIndex(w, r)
	if !ok {
		return
	}

	var req models.SelectorInputRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	switch req.Event {
	case models.InputPointerDown, models.InputPointerMove, models.InputPointerUp,
		models.InputPointerLeave, models.InputWheel, models.InputKey:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown selector event")
		return
	}

	handled := true
	snap, ok := h.withGame(w, r, func(ctx context.Context, g *game.Game, now time.Time) error {
		s, err := g.Selector(index)
		if err != nil {
			return err
		}
		switch req.Event {
		case models.InputPointerDown:
			handled = s.PointerDown(req.Y)
		case models.InputPointerMove:
			handled = s.Dragging()
			s.PointerMove(req.Y)
		case models.InputPointerUp:
			handled = s.Dragging()
			s.PointerUp(now)
		case models.InputPointerLeave:
			handled = s.Dragging()
			s.PointerLeave(now)
		case models.InputWheel:
			handled = s.Wheel(req.DeltaY, now)
		case models.InputKey:
			handled = s.Key(selector.KeyFromName(req.Key), now)
		}
		return nil
	})
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.InputResponse{Handled: handled, Game: snap})
}

// StepSelector handles POST /api/games/{id}/selectors/{index}/step
func (h *GameHandler) StepSelector(w http.ResponseWriter, r *http.Request) {
	index, ok := selectorIndex(w, r)
	if !ok {
		return
	}

	var req models.StepRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var dir selector.Direction
	switch req.Direction {
	case models.DirectionUp:
		dir = selector.Up
	case models.DirectionDown:
		dir = selector.Down
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Direction must be 'up' or 'down'")
		return
	}

	var moved bool
	snap, ok := h.withGame(w, r, func(ctx context.Context, g *game.Game, now time.Time) error {
		var err error
		moved, err = g.Step(index, dir, now)
		return err
	})
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StepResponse{Moved: moved, Game: snap})
}

// SubmitCode handles POST /api/games/{id}/submit. Selectors commit a step
// when its animation ends (selector.AnimationDuration), so a submit sent
// sooner after a step is judged on the code from before that step.
func (h *GameHandler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.withGame(w, r, func(ctx context.Context, g *game.Game, now time.Time) error {
		_, err := g.Submit(now)
		return err
	})
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// ListResults handles GET /api/games/results
func (h *GameHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized, user ID missing")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, user_id, outcome, puzzles_completed, code_submitted,
		       seconds_remaining, started_at, finished_at
		FROM game_result
		WHERE user_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`, userID, ResultsLimit)
	if err != nil {
		slog.Error("failed to query game results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	now := time.Now()
	results := []models.GameResult{}
	for rows.Next() {
		var res models.GameResult
		err := rows.Scan(&res.ID, &res.UserID, &res.Outcome, &res.PuzzlesCompleted,
			&res.CodeSubmitted, &res.SecondsRemaining, &res.StartedAt, &res.FinishedAt)
		if err != nil {
			slog.Error("failed to scan game result", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		res.Finished = humanize.RelTime(res.FinishedAt, now, "ago", "from now")
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate game results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
