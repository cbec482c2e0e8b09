// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest, LoginRequest: email, password
  - CreateItemRequest: name, description
  - UpdateItemRequest: optional name, optional description
  - DropRequest: piece_id, row, col
  - StepRequest: direction ("up" or "down")

# Response Types

Types for JSON responses:

  - AuthResponse: user, token
  - MessageResponse: message
  - DropResponse: accepted, game
  - StepResponse: moved, game
  - ErrorResponse: error, message

# Domain Types

  - User: account (password hash never serialized)
  - Item: named item owned by a user
  - GameResult: one finished hunt

# Game Snapshots

GameSnapshot is the full view of a live game returned by every game
endpoint. Puzzle is present while a puzzle is active and Code during code
entry. Every piece carries its home cell, which clients need to crop the
image; tray pieces are listed in tray order.

# Constants

Outcomes:

	OutcomeWon  = "won"
	OutcomeLost = "lost"

Selector directions:

	DirectionUp   = "up"
	DirectionDown = "down"
*/
package models
