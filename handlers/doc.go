// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the egghunt API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Registration and login
  - ItemHandler: CRUD for a user's hidden items
  - GameHandler: Puzzle hunt play and finished game results

Handlers are created via constructor functions:

	authHandler := handlers.NewAuthHandler(db, cfg)
	gameHandler := handlers.NewGameHandler(db, cfg, sessions)

# Authentication

Item and game handlers read the caller from the request context, where
middleware.RequireAuth stores it. Items owned by someone else are reported
as 404 on read and 403 on change. Games of other users are always 404.

# Game Play

Every game request runs under the session lock of that game. The game is
ticked to the current time first, so the countdown and animations are up to
date, then the action is applied and a models.GameSnapshot is returned:

	intro -> countdown -> puzzle (x5) -> code_entry -> won | lost

A failed image load keeps the game in countdown with the error in the
snapshot; POST /api/games/{id}/load retries it. Stage violations are 409.
*/
package handlers
