// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/egghunt/cliparse"
	"github.com/danielhkuo/egghunt/handlers"
	"github.com/danielhkuo/egghunt/middleware"
	"github.com/danielhkuo/egghunt/session"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, sessions *session.Manager) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	itemHandler := handlers.NewItemHandler(db, cfg)
	gameHandler := handlers.NewGameHandler(db, cfg, sessions)

	requireAuth := middleware.RequireAuth(db, cfg.TokenSecret)
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(requireAuth(h))
	}

	// Health check
	health := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
	mux.HandleFunc("GET /health", health)
	mux.HandleFunc("GET /api/health", health)

	// Accounts (public)
	mux.HandleFunc("POST /api/auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authHandler.Login))

	// Items
	mux.HandleFunc("GET /api/items", protected(itemHandler.ListItems))
	mux.HandleFunc("POST /api/items", protected(itemHandler.CreateItem))
	mux.HandleFunc("GET /api/items/{id}", protected(itemHandler.GetItem))
	mux.HandleFunc("PUT /api/items/{id}", protected(itemHandler.UpdateItem))
	mux.HandleFunc("DELETE /api/items/{id}", protected(itemHandler.DeleteItem))

	// Games
	mux.HandleFunc("POST /api/games", protected(gameHandler.CreateGame))
	mux.HandleFunc("GET /api/games/results", protected(gameHandler.ListResults))
	mux.HandleFunc("GET /api/games/{id}", protected(gameHandler.GetGame))
	mux.HandleFunc("POST /api/games/{id}/start", protected(gameHandler.StartGame))
	mux.HandleFunc("POST /api/games/{id}/load", protected(gameHandler.LoadPuzzle))
	mux.HandleFunc("POST /api/games/{id}/drops", protected(gameHandler.DropPiece))
	mux.HandleFunc("POST /api/games/{id}/next", protected(gameHandler.NextPuzzle))
	mux.HandleFunc("POST /api/games/{id}/tray", protected(gameHandler.ScrollTray))
	mux.HandleFunc("POST /api/games/{id}/selectors/{index}/step", protected(gameHandler.StepSelector))
	mux.HandleFunc("POST /api/games/{id}/selectors/{index}/input", protected(gameHandler.SelectorInput))
	mux.HandleFunc("POST /api/games/{id}/submit", protected(gameHandler.SubmitCode))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("egghunt API v1"))
	})

	return mux
}
