// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the egghunt API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, sessions)

# Endpoints

Health:

	GET /health
	GET /api/health

Accounts (public):

	POST /api/auth/register - Create account, returns token
	POST /api/auth/login    - Exchange credentials for a token

Items (requires Authorization: Bearer <token>):

	GET    /api/items      - List own items
	POST   /api/items      - Create item
	GET    /api/items/{id} - Get item
	PUT    /api/items/{id} - Update item
	DELETE /api/items/{id} - Delete item

Games (requires Authorization: Bearer <token>):

	POST /api/games                               - Create game
	GET  /api/games/results                       - Finished games of the caller
	GET  /api/games/{id}                          - Current snapshot
	POST /api/games/{id}/start                    - Start countdown, load first puzzle
	POST /api/games/{id}/load                     - Retry a failed image load
	POST /api/games/{id}/drops                    - Drop a piece on a cell
	POST /api/games/{id}/next                     - Move past a completed puzzle
	POST /api/games/{id}/tray                     - Scroll, wheel or resize the piece tray
	POST /api/games/{id}/selectors/{index}/step   - Step a code selector up or down
	POST /api/games/{id}/selectors/{index}/input  - Pointer, wheel or key input on a selector
	POST /api/games/{id}/submit                   - Submit the entered code

Protected routes run through middleware.RequireAuth, then middleware.WithLogging.
*/
package router
