// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with the server settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

ParseGameConfig returns the hunt settings, read from the environment only:

	gameCfg, err := cliparse.ParseGameConfig()

# .env Files

LoadDotEnv copies variables from a .env file into the process environment
before parsing. Variables already set win over the file, and a missing file
is not an error.

# Config Fields

  - Port: Server listen port (default: 3001)
  - DatabaseURL: Connection string or SQLite file (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - TokenSecret: Token signing secret (required)
  - TokenTTL: Token lifetime (default: 1 day)
  - AssetsDir: Directory of puzzle images (default: assets)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	--assets       Puzzle image directory
	--token-secret Token signing secret
	--token-ttl    Token lifetime (Go duration or "7d")

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ASSETS_DIR     → --assets
	JWT_SECRET     → --token-secret
	JWT_EXPIRES_IN → --token-ttl

CLI flags take precedence over environment variables.

GameConfig is parsed from:

	GAME_PASSCODE     five-symbol code that wins the hunt (required)
	GAME_TIMER        countdown start, MM:SS or HH:MM:SS (default 59:59)
	GAME_PUZZLE_ROWS  rows per puzzle (default 3)
	GAME_PUZZLE_COLS  columns per puzzle (default 4)
	GAME_SESSION_TTL  idle time before a live game is evicted (default 2h)

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - JWT_SECRET must be provided
  - JWT_EXPIRES_IN must be a positive duration

ParseGameConfig rejects a passcode of the wrong length and a malformed
timer, so the zero-length countdown fallback of the timer package is never
reached from configuration.
*/
package cliparse
