// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the egghunt API server.

egghunt is a timed puzzle hunt: a player solves five jigsaw puzzles, each
revealing a hint word, then dials a five-symbol code on scroll selectors
before the countdown runs out. Accounts and a small item store sit next to
the game.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first:

	DATABASE_URL=file:egghunt.db JWT_SECRET=... GAME_PASSCODE=123CF go run .

Or with flags:

	go run . -p 3001 -t postgres -d "postgres://..." -token-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - JWT_SECRET (-token-secret): Secret for signing session tokens
  - GAME_PASSCODE: Five-symbol code that wins the game

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - JWT_EXPIRES_IN (-token-ttl): Token lifetime, e.g. 1d or 12h
  - ASSETS_DIR (-assets): Directory holding the puzzle images
  - GAME_TIMER: Countdown start, MM:SS or HH:MM:SS (default: 59:59)
  - GAME_PUZZLE_ROWS, GAME_PUZZLE_COLS: Puzzle grid (default: 3x4)
  - GAME_SESSION_TTL: Idle time before a game is evicted (default: 2h)
  - LOG_LEVEL: debug, info, warn or error

# Architecture

The game logic lives in clock-driven packages with no I/O of their own:

  - selector: Scrolling symbol picker with snap animations
  - timer: Countdown clock
  - jigsaw: Puzzle pieces and drop validation
  - tray: Scrolling strip of unplaced pieces
  - game: Stage flow from intro to won or lost

The server hosts them:

  - session: Live games, per-game locking, idle eviction, result recording
  - images: Image dimensions from the assets directory
  - handlers: HTTP request handlers (auth, items, games)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer token auth, JSON helpers
  - models: Request/response types
  - auth: Passwords, ids and signed tokens
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
