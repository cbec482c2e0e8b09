// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/egghunt/models"
)

// RecordGameResult returns a function that stores finished games in conn.
// Inserting the same result id twice is a no-op.
func RecordGameResult(conn *sql.DB) func(ctx context.Context, r models.GameResult) error {
	return func(ctx context.Context, r models.GameResult) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO game_result (id, user_id, outcome, puzzles_completed, code_submitted,
				seconds_remaining, started_at, finished_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, r.ID, r.UserID, r.Outcome, r.PuzzlesCompleted, r.CodeSubmitted,
			r.SecondsRemaining, r.StartedAt.UTC(), r.FinishedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert game result: %w", err)
		}
		return nil
	}
}
