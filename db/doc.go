// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connections

Open selects the driver by type and pings the server:

	conn, err := db.Open(ctx, "sqlite", "file:egghunt.db")
	conn, err := db.Open(ctx, "postgres", "postgres://...")

SQLite is served by modernc.org/sqlite (pure Go, no cgo) and PostgreSQL by
github.com/lib/pq. Queries use $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - app_user: Accounts with bcrypt password hashes
  - item: Named items owned by a user
  - game_result: One row per finished hunt

# Relationships

	app_user 1──* item
	app_user 1──* game_result

All foreign keys use ON DELETE CASCADE.
*/
package db
